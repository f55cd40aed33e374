package repositories

import (
	"context"
	"errors"
	"fmt"

	"fitlog/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const trainingOrder = "training.datetime DESC, training.id DESC"

// GORMTrainingRepository is a GORM implementation of TrainingRepository.
type GORMTrainingRepository struct {
	db *gorm.DB
}

// NewGORMTrainingRepository creates a new instance of GORMTrainingRepository.
func NewGORMTrainingRepository(db *gorm.DB) *GORMTrainingRepository {
	return &GORMTrainingRepository{
		db: db,
	}
}

// GetAll returns the user's trainings matching filter, most recent first.
func (r *GORMTrainingRepository) GetAll(ctx context.Context, userID uint, filter TrainingFilter) ([]models.Training, error) {
	query := r.db.WithContext(ctx).
		Preload("Exercise.Muscle").
		Where("training.user_id = ?", userID)

	if filter.ExerciseID != nil {
		query = query.Where("training.exercise_id = ?", *filter.ExerciseID)
	}
	if filter.MuscleID != nil {
		query = query.Where(
			"training.exercise_id IN (?)",
			r.db.Model(&models.Exercise{}).Select("id").Where("muscle_id = ?", *filter.MuscleID),
		)
	}
	if !filter.From.IsZero() {
		query = query.Where("training.datetime >= ?", filter.From.UTC())
	}
	if !filter.To.IsZero() {
		query = query.Where("training.datetime <= ?", filter.To.UTC())
	}

	var trainings []models.Training
	if err := query.Order(trainingOrder).Find(&trainings).Error; err != nil {
		return nil, fmt.Errorf("failed to get trainings for user %d: %w", userID, err)
	}
	return trainings, nil
}

// GetByID retrieves one of the user's trainings.
func (r *GORMTrainingRepository) GetByID(ctx context.Context, userID, id uint) (*models.Training, error) {
	var training models.Training
	err := r.db.WithContext(ctx).
		Preload("Exercise.Muscle").
		First(&training, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("training with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get training by ID %d: %w", id, err)
	}
	return &training, nil
}

// Create inserts the training and reloads it with its exercise and muscle.
func (r *GORMTrainingRepository) Create(ctx context.Context, training *models.Training) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(training).Error; err != nil {
		return fmt.Errorf("failed to create training: %w", err)
	}
	return r.reload(ctx, training)
}

// Update saves the exercise, weight, sets and repetitions. Datetime is never touched.
func (r *GORMTrainingRepository) Update(ctx context.Context, training *models.Training) error {
	res := r.db.WithContext(ctx).
		Model(training).
		Omit(clause.Associations).
		Where("user_id = ?", training.UserID).
		Select("ExerciseID", "Weight", "Sets", "Repetitions").
		Updates(training)
	if res.Error != nil {
		return fmt.Errorf("failed to update training: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("training with ID %d for update: %w", training.ID, ErrNotFound)
	}
	return r.reload(ctx, training)
}

// Delete removes one of the user's trainings.
func (r *GORMTrainingRepository) Delete(ctx context.Context, userID, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Training{}, "id = ? AND user_id = ?", id, userID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete training: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("training with ID %d for deletion: %w", id, ErrNotFound)
	}
	return nil
}

func (r *GORMTrainingRepository) reload(ctx context.Context, training *models.Training) error {
	if err := r.db.WithContext(ctx).Preload("Exercise.Muscle").First(training, training.ID).Error; err != nil {
		return fmt.Errorf("failed to reload training %d: %w", training.ID, err)
	}
	return nil
}
