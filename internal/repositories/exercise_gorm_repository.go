package repositories

import (
	"context"
	"errors"
	"fmt"

	"fitlog/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMExerciseRepository is a GORM implementation of ExerciseRepository.
type GORMExerciseRepository struct {
	db *gorm.DB
}

// NewGORMExerciseRepository creates a new instance of GORMExerciseRepository.
func NewGORMExerciseRepository(db *gorm.DB) *GORMExerciseRepository {
	return &GORMExerciseRepository{
		db: db,
	}
}

// GetAll returns the user's exercises, optionally limited to one muscle group.
func (r *GORMExerciseRepository) GetAll(ctx context.Context, userID uint, muscleID *uint) ([]models.Exercise, error) {
	query := r.db.WithContext(ctx).Preload("Muscle").Where("user_id = ?", userID)
	if muscleID != nil {
		query = query.Where("muscle_id = ?", *muscleID)
	}

	var exercises []models.Exercise
	if err := query.Order("id").Find(&exercises).Error; err != nil {
		return nil, fmt.Errorf("failed to get exercises for user %d: %w", userID, err)
	}
	return exercises, nil
}

// GetByID retrieves one of the user's exercises.
func (r *GORMExerciseRepository) GetByID(ctx context.Context, userID, id uint) (*models.Exercise, error) {
	var exercise models.Exercise
	err := r.db.WithContext(ctx).
		Preload("Muscle").
		First(&exercise, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("exercise with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get exercise by ID %d: %w", id, err)
	}
	return &exercise, nil
}

// ExistsByName reports whether the user already has an exercise with this
// name for the muscle group, ignoring the exercise with ID excludeID.
func (r *GORMExerciseRepository) ExistsByName(ctx context.Context, userID, muscleID uint, name string, excludeID uint) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Exercise{}).
		Where("user_id = ? AND muscle_id = ? AND name = ?", userID, muscleID, name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check exercise name %q: %w", name, err)
	}
	return count > 0, nil
}

// Create inserts the exercise and reloads it with its muscle group.
func (r *GORMExerciseRepository) Create(ctx context.Context, exercise *models.Exercise) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(exercise).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("failed to create exercise %q: %w", exercise.Name, ErrDuplicate)
		}
		return fmt.Errorf("failed to create exercise: %w", err)
	}
	return r.reload(ctx, exercise)
}

// Update saves the muscle, name and note of an existing exercise.
func (r *GORMExerciseRepository) Update(ctx context.Context, exercise *models.Exercise) error {
	res := r.db.WithContext(ctx).
		Model(exercise).
		Omit(clause.Associations).
		Where("user_id = ?", exercise.UserID).
		Select("MuscleID", "Name", "Note", "UpdatedAt").
		Updates(exercise)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return fmt.Errorf("failed to update exercise %d: %w", exercise.ID, ErrDuplicate)
		}
		return fmt.Errorf("failed to update exercise: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("exercise with ID %d for update: %w", exercise.ID, ErrNotFound)
	}
	return r.reload(ctx, exercise)
}

// Delete removes the exercise together with its trainings.
func (r *GORMExerciseRepository) Delete(ctx context.Context, userID, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("exercise_id = ? AND user_id = ?", id, userID).Delete(&models.Training{}).Error; err != nil {
			return fmt.Errorf("failed to delete trainings of exercise %d: %w", id, err)
		}
		res := tx.Delete(&models.Exercise{}, "id = ? AND user_id = ?", id, userID)
		if res.Error != nil {
			return fmt.Errorf("failed to delete exercise: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("exercise with ID %d for deletion: %w", id, ErrNotFound)
		}
		return nil
	})
}

func (r *GORMExerciseRepository) reload(ctx context.Context, exercise *models.Exercise) error {
	if err := r.db.WithContext(ctx).Preload("Muscle").First(exercise, exercise.ID).Error; err != nil {
		return fmt.Errorf("failed to reload exercise %d: %w", exercise.ID, err)
	}
	return nil
}
