package repositories

import (
	"context"
	"time"

	"fitlog/internal/models"
)

// TrainingFilter narrows a training listing. Zero values disable a condition;
// From and To are both inclusive.
type TrainingFilter struct {
	ExerciseID *uint
	MuscleID   *uint
	From       time.Time
	To         time.Time
}

// TrainingRepository defines the interface for training data access.
// Listings are ordered most recent first.
type TrainingRepository interface {
	GetAll(ctx context.Context, userID uint, filter TrainingFilter) ([]models.Training, error)
	GetByID(ctx context.Context, userID, id uint) (*models.Training, error)
	Create(ctx context.Context, training *models.Training) error
	Update(ctx context.Context, training *models.Training) error
	Delete(ctx context.Context, userID, id uint) error
}
