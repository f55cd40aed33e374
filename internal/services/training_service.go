package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"fitlog/internal/models"
	"fitlog/internal/repositories"
	"fitlog/internal/validation"

	log "github.com/sirupsen/logrus"
)

// Routing keys of the events published for trainings.
const (
	EventTrainingCreated = "training.created"
	EventTrainingDeleted = "training.deleted"
)

const msgForeignExercise = "You can only create trainings for your own exercises."

// EventPublisher delivers domain events to a message broker.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// TrainingEvent is the body of a published training event.
type TrainingEvent struct {
	TrainingID uint      `json:"training_id"`
	UserID     uint      `json:"user_id"`
	ExerciseID uint      `json:"exercise_id"`
	Weight     float64   `json:"weight"`
	Sets       int       `json:"sets"`
	Reps       int       `json:"repetitions"`
	Datetime   time.Time `json:"datetime"`
}

// TrainingRequest carries a full training body for create and replace.
type TrainingRequest struct {
	Exercise    uint     `json:"exercise" validate:"required"`
	Weight      *Weight  `json:"weight" validate:"required,gt=0,lt=10000"`
	Sets        *int     `json:"sets" validate:"required,gt=0"`
	Repetitions *int     `json:"repetitions" validate:"required,gt=0"`
}

// TrainingPatch carries the fields of a partial update. Nil fields are left unchanged.
type TrainingPatch struct {
	Exercise    *uint    `json:"exercise"`
	Weight      *Weight  `json:"weight" validate:"omitempty,gt=0,lt=10000"`
	Sets        *int     `json:"sets" validate:"omitempty,gt=0"`
	Repetitions *int     `json:"repetitions" validate:"omitempty,gt=0"`
}

// HistoryQuery narrows the training history. Zero fields are ignored.
type HistoryQuery struct {
	Period     Period
	ExerciseID *uint
	MuscleID   *uint
}

// TrainingService handles business logic related to logged trainings.
type TrainingService struct {
	trainingRepo repositories.TrainingRepository
	exerciseRepo repositories.ExerciseRepository
	publisher    EventPublisher
	validate     *validation.Validator
	location     *time.Location
	now          func() time.Time
}

// TrainingOption customizes a TrainingService.
type TrainingOption func(*TrainingService)

// WithPublisher publishes training events through p.
func WithPublisher(p EventPublisher) TrainingOption {
	return func(s *TrainingService) { s.publisher = p }
}

// WithLocation computes calendar weeks in loc.
func WithLocation(loc *time.Location) TrainingOption {
	return func(s *TrainingService) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) TrainingOption {
	return func(s *TrainingService) { s.now = now }
}

// NewTrainingService creates a new TrainingService.
func NewTrainingService(trainingRepo repositories.TrainingRepository, exerciseRepo repositories.ExerciseRepository, opts ...TrainingOption) *TrainingService {
	s := &TrainingService{
		trainingRepo: trainingRepo,
		exerciseRepo: exerciseRepo,
		validate:     validation.New(),
		location:     time.UTC,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetAllTrainings lists every training of the user, most recent first.
func (s *TrainingService) GetAllTrainings(ctx context.Context, userID uint) ([]models.Training, error) {
	return s.trainingRepo.GetAll(ctx, userID, repositories.TrainingFilter{})
}

// GetTrainingByID retrieves one of the user's trainings.
func (s *TrainingService) GetTrainingByID(ctx context.Context, userID, id uint) (*models.Training, error) {
	return s.trainingRepo.GetByID(ctx, userID, id)
}

// CreateTraining logs a session of one of the user's exercises at the current time.
func (s *TrainingService) CreateTraining(ctx context.Context, userID uint, req TrainingRequest) (*models.Training, error) {
	errs := s.validate.Struct(req)
	training := &models.Training{
		UserID:     userID,
		ExerciseID: req.Exercise,
		Datetime:   s.now().UTC(),
	}
	if req.Weight != nil {
		training.Weight = float64(*req.Weight)
	}
	if req.Sets != nil {
		training.Sets = *req.Sets
	}
	if req.Repetitions != nil {
		training.Repetitions = *req.Repetitions
	}
	if err := s.check(ctx, training, errs); err != nil {
		return nil, err
	}

	if err := s.trainingRepo.Create(ctx, training); err != nil {
		return nil, fmt.Errorf("failed to create training: %w", err)
	}
	s.publish(EventTrainingCreated, training)
	return training, nil
}

// ReplaceTraining overwrites the exercise, weight, sets and repetitions of a training.
func (s *TrainingService) ReplaceTraining(ctx context.Context, userID, id uint, req TrainingRequest) (*models.Training, error) {
	training, err := s.trainingRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	errs := s.validate.Struct(req)
	training.ExerciseID = req.Exercise
	if req.Weight != nil {
		training.Weight = float64(*req.Weight)
	}
	if req.Sets != nil {
		training.Sets = *req.Sets
	}
	if req.Repetitions != nil {
		training.Repetitions = *req.Repetitions
	}
	return s.update(ctx, training, errs)
}

// PatchTraining applies the non-nil fields of patch to a training.
func (s *TrainingService) PatchTraining(ctx context.Context, userID, id uint, patch TrainingPatch) (*models.Training, error) {
	training, err := s.trainingRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	errs := s.validate.Struct(patch)
	if patch.Exercise != nil {
		training.ExerciseID = *patch.Exercise
	}
	if patch.Weight != nil {
		training.Weight = float64(*patch.Weight)
	}
	if patch.Sets != nil {
		training.Sets = *patch.Sets
	}
	if patch.Repetitions != nil {
		training.Repetitions = *patch.Repetitions
	}
	return s.update(ctx, training, errs)
}

// DeleteTraining removes one of the user's trainings.
func (s *TrainingService) DeleteTraining(ctx context.Context, userID, id uint) error {
	training, err := s.trainingRepo.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.trainingRepo.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.publish(EventTrainingDeleted, training)
	return nil
}

// History returns the user's trainings matching q, most recent first.
func (s *TrainingService) History(ctx context.Context, userID uint, q HistoryQuery) ([]models.Training, error) {
	filter := repositories.TrainingFilter{
		ExerciseID: q.ExerciseID,
		MuscleID:   q.MuscleID,
	}
	if q.Period != "" {
		filter.From, filter.To = q.Period.Window(s.now().In(s.location))
	}
	return s.trainingRepo.GetAll(ctx, userID, filter)
}

// Stats aggregates the user's trainings per exercise. Only the exercise and
// muscle filters of q apply.
func (s *TrainingService) Stats(ctx context.Context, userID uint, q HistoryQuery) ([]models.ExerciseStats, error) {
	trainings, err := s.trainingRepo.GetAll(ctx, userID, repositories.TrainingFilter{
		ExerciseID: q.ExerciseID,
		MuscleID:   q.MuscleID,
	})
	if err != nil {
		return nil, err
	}
	return ComputeStats(trainings), nil
}

func (s *TrainingService) update(ctx context.Context, training *models.Training, errs validation.Errors) (*models.Training, error) {
	if err := s.check(ctx, training, errs); err != nil {
		return nil, err
	}
	if err := s.trainingRepo.Update(ctx, training); err != nil {
		return nil, fmt.Errorf("failed to update training: %w", err)
	}
	return training, nil
}

// check normalizes the weight, verifies exercise ownership and returns the collected errors.
func (s *TrainingService) check(ctx context.Context, training *models.Training, errs validation.Errors) error {
	if !errs.Has("weight") && training.Weight > 0 {
		cents := training.Weight * 100
		if math.Abs(cents-math.Round(cents)) > 1e-6 {
			errs.Add("weight", "Ensure that there are no more than 2 decimal places.")
		}
		training.Weight = math.Round(cents) / 100
	}

	if training.ExerciseID != 0 && !errs.Has("exercise") {
		exercise, err := s.exerciseRepo.GetByID(ctx, training.UserID, training.ExerciseID)
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			errs.Add("exercise", msgForeignExercise)
		case err != nil:
			return err
		default:
			training.Exercise = exercise
		}
	}
	if training.ExerciseID == 0 && !errs.Has("exercise") {
		errs.Add("exercise", "This field is required.")
	}
	return errs.Err()
}

func (s *TrainingService) publish(routingKey string, training *models.Training) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(TrainingEvent{
		TrainingID: training.ID,
		UserID:     training.UserID,
		ExerciseID: training.ExerciseID,
		Weight:     training.Weight,
		Sets:       training.Sets,
		Reps:       training.Repetitions,
		Datetime:   training.Datetime,
	})
	if err != nil {
		log.WithError(err).Error("Failed to marshal training event")
		return
	}
	if err := s.publisher.Publish(routingKey, body); err != nil {
		log.WithError(err).WithField("routing_key", routingKey).Warn("Failed to publish training event")
	}
}
