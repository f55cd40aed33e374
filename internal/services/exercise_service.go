package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fitlog/internal/models"
	"fitlog/internal/repositories"
	"fitlog/internal/validation"
)

const msgDuplicateExercise = "An exercise with this name already exists for this muscle."

// ExerciseRequest carries a full exercise body for create and replace.
type ExerciseRequest struct {
	Muscle uint    `json:"muscle" validate:"required"`
	Name   string  `json:"name" validate:"required,max=255"`
	Note   *string `json:"note"`
}

// ExercisePatch carries the fields of a partial update. Nil fields are left unchanged.
type ExercisePatch struct {
	Muscle *uint   `json:"muscle"`
	Name   *string `json:"name" validate:"omitempty,max=255"`
	Note   *string `json:"note"`
}

// ExerciseService handles business logic related to a user's exercises.
type ExerciseService struct {
	exerciseRepo repositories.ExerciseRepository
	muscleRepo   repositories.MuscleRepository
	validate     *validation.Validator
}

// NewExerciseService creates a new ExerciseService.
func NewExerciseService(exerciseRepo repositories.ExerciseRepository, muscleRepo repositories.MuscleRepository) *ExerciseService {
	return &ExerciseService{
		exerciseRepo: exerciseRepo,
		muscleRepo:   muscleRepo,
		validate:     validation.New(),
	}
}

// GetAllExercises lists the user's exercises, optionally restricted to one muscle.
func (s *ExerciseService) GetAllExercises(ctx context.Context, userID uint, muscleID *uint) ([]models.Exercise, error) {
	return s.exerciseRepo.GetAll(ctx, userID, muscleID)
}

// GetExerciseByID retrieves one of the user's exercises.
func (s *ExerciseService) GetExerciseByID(ctx context.Context, userID, id uint) (*models.Exercise, error) {
	return s.exerciseRepo.GetByID(ctx, userID, id)
}

// CreateExercise stores a new exercise owned by userID.
func (s *ExerciseService) CreateExercise(ctx context.Context, userID uint, req ExerciseRequest) (*models.Exercise, error) {
	req.Name = strings.TrimSpace(req.Name)
	errs := s.validate.Struct(req)

	exercise := &models.Exercise{
		UserID:   userID,
		MuscleID: req.Muscle,
		Name:     req.Name,
		Note:     req.Note,
	}
	if err := s.check(ctx, exercise, errs); err != nil {
		return nil, err
	}

	if err := s.exerciseRepo.Create(ctx, exercise); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, newConflict("name", msgDuplicateExercise)
		}
		return nil, fmt.Errorf("failed to create exercise: %w", err)
	}
	return exercise, nil
}

// ReplaceExercise overwrites every writable field of an existing exercise.
func (s *ExerciseService) ReplaceExercise(ctx context.Context, userID, id uint, req ExerciseRequest) (*models.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	req.Name = strings.TrimSpace(req.Name)
	errs := s.validate.Struct(req)
	exercise.MuscleID = req.Muscle
	exercise.Name = req.Name
	exercise.Note = req.Note
	return s.update(ctx, exercise, errs)
}

// PatchExercise applies the non-nil fields of patch to an existing exercise.
func (s *ExerciseService) PatchExercise(ctx context.Context, userID, id uint, patch ExercisePatch) (*models.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		patch.Name = &name
	}
	errs := s.validate.Struct(patch)
	if patch.Muscle != nil {
		exercise.MuscleID = *patch.Muscle
	}
	if patch.Name != nil {
		if *patch.Name == "" {
			errs.Add("name", "This field may not be blank.")
		}
		exercise.Name = *patch.Name
	}
	if patch.Note != nil {
		exercise.Note = patch.Note
	}
	return s.update(ctx, exercise, errs)
}

// DeleteExercise removes an exercise and every training logged for it.
func (s *ExerciseService) DeleteExercise(ctx context.Context, userID, id uint) error {
	return s.exerciseRepo.Delete(ctx, userID, id)
}

func (s *ExerciseService) update(ctx context.Context, exercise *models.Exercise, errs validation.Errors) (*models.Exercise, error) {
	if err := s.check(ctx, exercise, errs); err != nil {
		return nil, err
	}

	if err := s.exerciseRepo.Update(ctx, exercise); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, newConflict("name", msgDuplicateExercise)
		}
		return nil, fmt.Errorf("failed to update exercise: %w", err)
	}
	return exercise, nil
}

// check adds the muscle and uniqueness errors to errs and returns them if any were collected.
func (s *ExerciseService) check(ctx context.Context, exercise *models.Exercise, errs validation.Errors) error {
	if exercise.MuscleID != 0 && !errs.Has("muscle") {
		if _, err := s.muscleRepo.GetByID(ctx, exercise.MuscleID); err != nil {
			if !errors.Is(err, repositories.ErrNotFound) {
				return err
			}
			errs.Add("muscle", fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", exercise.MuscleID))
		}
	}
	if exercise.MuscleID == 0 && !errs.Has("muscle") {
		errs.Add("muscle", "This field is required.")
	}

	if !errs.Has("muscle") && !errs.Has("name") && exercise.Name != "" {
		taken, err := s.exerciseRepo.ExistsByName(ctx, exercise.UserID, exercise.MuscleID, exercise.Name, exercise.ID)
		if err != nil {
			return err
		}
		if taken {
			errs.Add("name", msgDuplicateExercise)
		}
	}
	return errs.Err()
}
