package services

import (
	"context"

	"fitlog/internal/models"
	"fitlog/internal/repositories"

	log "github.com/sirupsen/logrus"
)

// MuscleService exposes the read-only muscle vocabulary.
type MuscleService struct {
	muscleRepo repositories.MuscleRepository
}

// NewMuscleService creates a new MuscleService.
func NewMuscleService(muscleRepo repositories.MuscleRepository) *MuscleService {
	return &MuscleService{
		muscleRepo: muscleRepo,
	}
}

// GetAllMuscles retrieves every muscle group.
func (s *MuscleService) GetAllMuscles(ctx context.Context) ([]models.Muscle, error) {
	return s.muscleRepo.GetAll(ctx)
}

// GetMuscleByID retrieves a single muscle group.
func (s *MuscleService) GetMuscleByID(ctx context.Context, id uint) (*models.Muscle, error) {
	return s.muscleRepo.GetByID(ctx, id)
}

// SeedMuscles makes sure every known muscle group exists.
func (s *MuscleService) SeedMuscles(ctx context.Context) error {
	created, err := s.muscleRepo.Seed(ctx)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"created":         created,
		"already_present": len(models.AllMuscles) - created,
	}).Info("Muscle groups seeded")
	return nil
}
