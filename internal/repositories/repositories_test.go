package repositories_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"fitlog/internal/database"
	"fitlog/internal/models"
	"fitlog/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())
	db, err := database.Open(database.DriverSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	_, err = repositories.NewGORMMuscleRepository(db).Seed(context.Background())
	require.NoError(t, err)
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Email:    username + "@example.com",
		Username: username,
		Password: "hash",
		IsActive: true,
	}
	require.NoError(t, repositories.NewGORMUserRepository(db).Create(context.Background(), user))
	return user
}

func TestMuscleRepository_Seed(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMMuscleRepository(db)
	ctx := context.Background()

	created, err := repo.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, created, "muscles were already seeded")

	muscles, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, muscles, len(models.AllMuscles))
	assert.Equal(t, models.MuscleBack, muscles[0].Name)

	_, err = repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestUserRepository(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMUserRepository(db)
	ctx := context.Background()

	user := createUser(t, db, "lifter")
	assert.NotZero(t, user.ID)
	assert.False(t, user.DateJoined.IsZero())

	byEmail, err := repo.GetByEmail(ctx, "lifter@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byName, err := repo.GetByUsername(ctx, "lifter")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	_, err = repo.GetByID(ctx, user.ID+100)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	err = repo.Create(ctx, &models.User{Email: "other@example.com", Username: "lifter", Password: "x"})
	assert.ErrorIs(t, err, repositories.ErrDuplicate)
}

func TestExerciseRepository_ScopedCRUD(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMExerciseRepository(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	bench := &models.Exercise{UserID: alice.ID, MuscleID: 3, Name: "Bench press"}
	require.NoError(t, repo.Create(ctx, bench))
	require.NotNil(t, bench.Muscle)
	assert.Equal(t, models.MuscleChest, bench.Muscle.Name)

	row := &models.Exercise{UserID: alice.ID, MuscleID: 1, Name: "Barbell row"}
	require.NoError(t, repo.Create(ctx, row))

	// same name and muscle for another user is allowed
	require.NoError(t, repo.Create(ctx, &models.Exercise{UserID: bob.ID, MuscleID: 3, Name: "Bench press"}))

	err := repo.Create(ctx, &models.Exercise{UserID: alice.ID, MuscleID: 3, Name: "Bench press"})
	assert.ErrorIs(t, err, repositories.ErrDuplicate)

	exists, err := repo.ExistsByName(ctx, alice.ID, 3, "Bench press", 0)
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = repo.ExistsByName(ctx, alice.ID, 3, "Bench press", bench.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	all, err := repo.GetAll(ctx, alice.ID, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	chest := uint(3)
	chestOnly, err := repo.GetAll(ctx, alice.ID, &chest)
	require.NoError(t, err)
	require.Len(t, chestOnly, 1)
	assert.Equal(t, bench.ID, chestOnly[0].ID)

	_, err = repo.GetByID(ctx, bob.ID, bench.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	note := "flat bench"
	bench.Note = &note
	bench.Name = "Flat bench press"
	require.NoError(t, repo.Update(ctx, bench))
	reloaded, err := repo.GetByID(ctx, alice.ID, bench.ID)
	require.NoError(t, err)
	assert.Equal(t, "Flat bench press", reloaded.Name)
	require.NotNil(t, reloaded.Note)
	assert.Equal(t, "flat bench", *reloaded.Note)

	stolen := *bench
	stolen.UserID = bob.ID
	assert.ErrorIs(t, repo.Update(ctx, &stolen), repositories.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, bob.ID, bench.ID), repositories.ErrNotFound)
	require.NoError(t, repo.Delete(ctx, alice.ID, bench.ID))
	_, err = repo.GetByID(ctx, alice.ID, bench.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestExerciseRepository_DeleteCascadesTrainings(t *testing.T) {
	db := setupDB(t)
	exercises := repositories.NewGORMExerciseRepository(db)
	trainings := repositories.NewGORMTrainingRepository(db)
	ctx := context.Background()

	user := createUser(t, db, "carol")
	squat := &models.Exercise{UserID: user.ID, MuscleID: 7, Name: "Squat"}
	require.NoError(t, exercises.Create(ctx, squat))

	for i := 0; i < 3; i++ {
		require.NoError(t, trainings.Create(ctx, &models.Training{
			UserID: user.ID, ExerciseID: squat.ID, Weight: 100, Sets: 5, Repetitions: 5,
			Datetime: time.Now().UTC(),
		}))
	}

	require.NoError(t, exercises.Delete(ctx, user.ID, squat.ID))

	left, err := trainings.GetAll(ctx, user.ID, repositories.TrainingFilter{})
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestTrainingRepository_FiltersAndOrder(t *testing.T) {
	db := setupDB(t)
	exercises := repositories.NewGORMExerciseRepository(db)
	repo := repositories.NewGORMTrainingRepository(db)
	ctx := context.Background()

	user := createUser(t, db, "dave")
	other := createUser(t, db, "erin")

	curl := &models.Exercise{UserID: user.ID, MuscleID: 2, Name: "Curl"}
	require.NoError(t, exercises.Create(ctx, curl))
	press := &models.Exercise{UserID: user.ID, MuscleID: 5, Name: "Overhead press"}
	require.NoError(t, exercises.Create(ctx, press))
	foreign := &models.Exercise{UserID: other.ID, MuscleID: 2, Name: "Curl"}
	require.NoError(t, exercises.Create(ctx, foreign))

	base := time.Date(2026, 10, 5, 10, 0, 0, 0, time.UTC)
	logged := []models.Training{
		{UserID: user.ID, ExerciseID: curl.ID, Weight: 12.5, Sets: 3, Repetitions: 10, Datetime: base},
		{UserID: user.ID, ExerciseID: press.ID, Weight: 40, Sets: 3, Repetitions: 8, Datetime: base.Add(24 * time.Hour)},
		{UserID: user.ID, ExerciseID: curl.ID, Weight: 15, Sets: 3, Repetitions: 8, Datetime: base.Add(48 * time.Hour)},
		{UserID: other.ID, ExerciseID: foreign.ID, Weight: 20, Sets: 3, Repetitions: 8, Datetime: base.Add(48 * time.Hour)},
	}
	for i := range logged {
		require.NoError(t, repo.Create(ctx, &logged[i]))
	}

	all, err := repo.GetAll(ctx, user.ID, repositories.TrainingFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, logged[2].ID, all[0].ID, "most recent first")
	assert.Equal(t, logged[0].ID, all[2].ID)
	require.NotNil(t, all[0].Exercise)
	require.NotNil(t, all[0].Exercise.Muscle)
	assert.Equal(t, "Curl", all[0].Exercise.Name)
	assert.Equal(t, models.MuscleBiceps, all[0].Exercise.Muscle.Name)

	byExercise, err := repo.GetAll(ctx, user.ID, repositories.TrainingFilter{ExerciseID: &press.ID})
	require.NoError(t, err)
	require.Len(t, byExercise, 1)
	assert.Equal(t, logged[1].ID, byExercise[0].ID)

	biceps := uint(2)
	byMuscle, err := repo.GetAll(ctx, user.ID, repositories.TrainingFilter{MuscleID: &biceps})
	require.NoError(t, err)
	assert.Len(t, byMuscle, 2)

	window, err := repo.GetAll(ctx, user.ID, repositories.TrainingFilter{
		From: base.Add(time.Hour),
		To:   base.Add(24 * time.Hour),
	})
	require.NoError(t, err)
	require.Len(t, window, 1)
	assert.Equal(t, logged[1].ID, window[0].ID, "bounds are inclusive")

	_, err = repo.GetByID(ctx, other.ID, logged[0].ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	moved := logged[0]
	moved.Weight = 14
	moved.Datetime = base.Add(1000 * time.Hour)
	require.NoError(t, repo.Update(ctx, &moved))
	reloaded, err := repo.GetByID(ctx, user.ID, logged[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 14.0, reloaded.Weight)
	assert.True(t, base.Equal(reloaded.Datetime), "datetime is immutable")

	assert.ErrorIs(t, repo.Delete(ctx, other.ID, logged[0].ID), repositories.ErrNotFound)
	require.NoError(t, repo.Delete(ctx, user.ID, logged[0].ID))
}

func TestExerciseRepository_ConcurrentDuplicateCreate(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "fitlog.db") + "?_busy_timeout=5000&_foreign_keys=1"
	db, err := database.Open(database.DriverSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	_, err = repositories.NewGORMMuscleRepository(db).Seed(context.Background())
	require.NoError(t, err)

	user := createUser(t, db, "frank")
	repo := repositories.NewGORMExerciseRepository(db)

	const attempts = 2
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			errs[i] = repo.Create(context.Background(), &models.Exercise{UserID: user.ID, MuscleID: 7, Name: "Deadlift"})
		}(i)
	}
	close(start)
	wg.Wait()

	succeeded, duplicates := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, repositories.ErrDuplicate):
			duplicates++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, duplicates)

	all, err := repo.GetAll(context.Background(), user.ID, nil)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
