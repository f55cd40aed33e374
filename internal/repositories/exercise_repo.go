package repositories

import (
	"context"

	"fitlog/internal/models"
)

// ExerciseRepository defines the interface for exercise data access.
// Every method is scoped to the owning user.
type ExerciseRepository interface {
	GetAll(ctx context.Context, userID uint, muscleID *uint) ([]models.Exercise, error)
	GetByID(ctx context.Context, userID, id uint) (*models.Exercise, error)
	ExistsByName(ctx context.Context, userID, muscleID uint, name string, excludeID uint) (bool, error)
	Create(ctx context.Context, exercise *models.Exercise) error
	Update(ctx context.Context, exercise *models.Exercise) error
	Delete(ctx context.Context, userID, id uint) error
}
