package services_test

import (
	"context"

	"fitlog/internal/models"
	"fitlog/internal/repositories"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil {
		user.ID = 1
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockMuscleRepository struct {
	mock.Mock
}

func (m *MockMuscleRepository) GetAll(ctx context.Context) ([]models.Muscle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Muscle), args.Error(1)
}

func (m *MockMuscleRepository) GetByID(ctx context.Context, id uint) (*models.Muscle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Muscle), args.Error(1)
}

func (m *MockMuscleRepository) Seed(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockExerciseRepository struct {
	mock.Mock
}

func (m *MockExerciseRepository) GetAll(ctx context.Context, userID uint, muscleID *uint) ([]models.Exercise, error) {
	args := m.Called(ctx, userID, muscleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Exercise), args.Error(1)
}

func (m *MockExerciseRepository) GetByID(ctx context.Context, userID, id uint) (*models.Exercise, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Exercise), args.Error(1)
}

func (m *MockExerciseRepository) ExistsByName(ctx context.Context, userID, muscleID uint, name string, excludeID uint) (bool, error) {
	args := m.Called(ctx, userID, muscleID, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockExerciseRepository) Create(ctx context.Context, exercise *models.Exercise) error {
	args := m.Called(ctx, exercise)
	return args.Error(0)
}

func (m *MockExerciseRepository) Update(ctx context.Context, exercise *models.Exercise) error {
	args := m.Called(ctx, exercise)
	return args.Error(0)
}

func (m *MockExerciseRepository) Delete(ctx context.Context, userID, id uint) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

type MockTrainingRepository struct {
	mock.Mock
}

func (m *MockTrainingRepository) GetAll(ctx context.Context, userID uint, filter repositories.TrainingFilter) ([]models.Training, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Training), args.Error(1)
}

func (m *MockTrainingRepository) GetByID(ctx context.Context, userID, id uint) (*models.Training, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Training), args.Error(1)
}

func (m *MockTrainingRepository) Create(ctx context.Context, training *models.Training) error {
	args := m.Called(ctx, training)
	return args.Error(0)
}

func (m *MockTrainingRepository) Update(ctx context.Context, training *models.Training) error {
	args := m.Called(ctx, training)
	return args.Error(0)
}

func (m *MockTrainingRepository) Delete(ctx context.Context, userID, id uint) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

// MockPublisher records published events.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(routingKey string, body []byte) error {
	args := m.Called(routingKey, body)
	return args.Error(0)
}
