package repositories

import (
	"context"
	"errors"
	"fmt"

	"fitlog/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MuscleRepository defines the interface for muscle group data access.
type MuscleRepository interface {
	GetAll(ctx context.Context) ([]models.Muscle, error)
	GetByID(ctx context.Context, id uint) (*models.Muscle, error)
	Seed(ctx context.Context) (int, error)
}

// GORMMuscleRepository is a GORM implementation of MuscleRepository.
type GORMMuscleRepository struct {
	db *gorm.DB
}

// NewGORMMuscleRepository creates a new instance of GORMMuscleRepository.
func NewGORMMuscleRepository(db *gorm.DB) *GORMMuscleRepository {
	return &GORMMuscleRepository{
		db: db,
	}
}

// GetAll returns every muscle group ordered by ID.
func (r *GORMMuscleRepository) GetAll(ctx context.Context) ([]models.Muscle, error) {
	var muscles []models.Muscle
	if err := r.db.WithContext(ctx).Order("id").Find(&muscles).Error; err != nil {
		return nil, fmt.Errorf("failed to get all muscles: %w", err)
	}
	return muscles, nil
}

// GetByID retrieves a single muscle group.
func (r *GORMMuscleRepository) GetByID(ctx context.Context, id uint) (*models.Muscle, error) {
	var muscle models.Muscle
	if err := r.db.WithContext(ctx).First(&muscle, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("muscle with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get muscle by ID %d: %w", id, err)
	}
	return &muscle, nil
}

// Seed inserts the missing muscle groups and returns how many were created.
func (r *GORMMuscleRepository) Seed(ctx context.Context) (int, error) {
	created := 0
	for _, name := range models.AllMuscles {
		muscle := models.Muscle{Name: name}
		res := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
			Create(&muscle)
		if res.Error != nil {
			return created, fmt.Errorf("failed to seed muscle %s: %w", name, res.Error)
		}
		if res.RowsAffected > 0 {
			created++
		}
	}
	return created, nil
}
