package services_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"fitlog/internal/models"
	"fitlog/internal/repositories"
	"fitlog/internal/services"
	"fitlog/internal/validation"

	"github.com/dgrijalva/jwt-go"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test_jwt_secret"

// TestMain is used to setup test environment
func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	goleak.VerifyTestMain(m)
}

func notFound() error {
	return repositories.ErrNotFound
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestAuthService_RegisterUser(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, 0)

	req := services.RegisterRequest{
		Email:     "  Test@Example.com ",
		Password:  "Squat!Deep42",
		Username:  "testuser",
		FirstName: "Test",
		LastName:  "User",
	}

	mockRepo.On("GetByEmail", ctx, "test@example.com").Return(nil, notFound()).Once()
	mockRepo.On("GetByUsername", ctx, "testuser").Return(nil, notFound()).Once()
	mockRepo.On("Create", ctx, mock.AnythingOfType("*models.User")).Return(nil).Once()

	user, err := authService.RegisterUser(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "test@example.com", user.Email)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, req.Password, user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)))
	mockRepo.AssertExpectations(t)
}

func TestAuthService_RegisterUser_CollectsAllErrors(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, 0)

	mockRepo.On("GetByEmail", ctx, "taken@example.com").Return(&models.User{ID: 7}, nil).Once()
	mockRepo.On("GetByUsername", ctx, "taken").Return(&models.User{ID: 8}, nil).Once()

	_, err := authService.RegisterUser(ctx, services.RegisterRequest{
		Email:    "taken@example.com",
		Password: "1234",
		Username: "taken",
	})

	var errs validation.Errors
	require.True(t, errors.As(err, &errs))
	assert.Equal(t, []string{"A user with this email already exists."}, errs["email"])
	assert.Equal(t, []string{"A user with this nickname already exists."}, errs["username"])
	assert.Equal(t, []string{"Password must be at least 8 characters long."}, errs["password"])
	assert.Equal(t, []string{"This field is required."}, errs["first_name"])
	assert.Equal(t, []string{"This field is required."}, errs["last_name"])
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_RegisterUser_WeakPassword(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, 0)

	mockRepo.On("GetByEmail", ctx, mock.Anything).Return(nil, notFound())
	mockRepo.On("GetByUsername", ctx, mock.Anything).Return(nil, notFound())

	_, err := authService.RegisterUser(ctx, services.RegisterRequest{
		Email:     "john@example.com",
		Password:  "johnsmith1",
		Username:  "johnsmith",
		FirstName: "John",
		LastName:  "Smith",
	})

	var errs validation.Errors
	require.True(t, errors.As(err, &errs))
	assert.Equal(t, []string{"The password is too similar to the username."}, errs["password"])
}

func TestAuthService_RegisterUser_StorageConflict(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, 0)

	mockRepo.On("GetByEmail", ctx, mock.Anything).Return(nil, notFound())
	mockRepo.On("GetByUsername", ctx, mock.Anything).Return(nil, notFound())
	mockRepo.On("Create", ctx, mock.Anything).Return(repositories.ErrDuplicate)

	_, err := authService.RegisterUser(ctx, services.RegisterRequest{
		Email:     "race@example.com",
		Password:  "Squat!Deep42",
		Username:  "racer",
		FirstName: "Race",
		LastName:  "Condition",
	})

	var conflict *services.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.True(t, conflict.Fields.Has(validation.NonFieldErrors))
}

func TestAuthService_LoginUser(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, time.Hour)

	user := &models.User{
		ID:       42,
		Username: "testuser",
		Email:    "test@example.com",
		Password: hashed(t, "password123"),
		IsActive: true,
	}

	// By email, case-insensitive.
	mockRepo.On("GetByEmail", ctx, "test@example.com").Return(user, nil).Once()
	token, got, err := authService.LoginUser(ctx, "TEST@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user, got)

	claims, err := authService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "test@example.com", claims.Email)
	assert.NotEmpty(t, claims.Id)
	assert.Equal(t, claims.IssuedAt+int64(time.Hour.Seconds()), claims.ExpiresAt)

	// By username after the email lookup misses.
	mockRepo.On("GetByEmail", ctx, "testuser").Return(nil, notFound()).Once()
	mockRepo.On("GetByUsername", ctx, "testuser").Return(user, nil).Once()
	_, _, err = authService.LoginUser(ctx, "testuser", "password123")
	require.NoError(t, err)

	// Wrong password.
	mockRepo.On("GetByEmail", ctx, "testuser").Return(nil, notFound()).Once()
	mockRepo.On("GetByUsername", ctx, "testuser").Return(user, nil).Once()
	_, _, err = authService.LoginUser(ctx, "testuser", "wrongpassword")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	// Unknown user.
	mockRepo.On("GetByEmail", ctx, "ghost").Return(nil, notFound()).Once()
	mockRepo.On("GetByUsername", ctx, "ghost").Return(nil, notFound()).Once()
	_, _, err = authService.LoginUser(ctx, "ghost", "password123")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginUser_Inactive(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, 0)

	user := &models.User{ID: 3, Email: "off@example.com", Password: hashed(t, "password123")}
	mockRepo.On("GetByEmail", ctx, "off@example.com").Return(user, nil).Once()

	_, _, err := authService.LoginUser(ctx, "off@example.com", "password123")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestAuthService_ValidateToken(t *testing.T) {
	authService := services.NewAuthService(new(MockUserRepository), testJWTSecret, 0)
	user := &models.User{ID: 5, Email: "five@example.com"}

	token, err := authService.GenerateToken(user)
	require.NoError(t, err)
	claims, err := authService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(5), claims.UserID)

	_, err = authService.ValidateToken("invalid.token.string")
	assert.ErrorIs(t, err, services.ErrTokenInvalid)

	other := services.NewAuthService(new(MockUserRepository), "another_secret", 0)
	foreign, err := other.GenerateToken(user)
	require.NoError(t, err)
	_, err = authService.ValidateToken(foreign)
	assert.ErrorIs(t, err, services.ErrTokenInvalid)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": 5}).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	_, err = authService.ValidateToken(noExpiry)
	assert.ErrorIs(t, err, services.ErrTokenInvalid)

	realTimeFunc := jwt.TimeFunc
	jwt.TimeFunc = func() time.Time { return time.Now().Add(-48 * time.Hour) }
	expired, err := authService.GenerateToken(user)
	jwt.TimeFunc = realTimeFunc
	require.NoError(t, err)
	_, err = authService.ValidateToken(expired)
	assert.ErrorIs(t, err, services.ErrTokenExpired)
}

func TestAuthService_Authenticate(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret, 0)

	active := &models.User{ID: 1, Email: "a@example.com", IsActive: true}
	inactive := &models.User{ID: 2, Email: "b@example.com"}
	deleted := &models.User{ID: 3, Email: "c@example.com"}

	mockRepo.On("GetByID", ctx, uint(1)).Return(active, nil)
	mockRepo.On("GetByID", ctx, uint(2)).Return(inactive, nil)
	mockRepo.On("GetByID", ctx, uint(3)).Return(nil, notFound())

	for _, tc := range []struct {
		name    string
		user    *models.User
		wantErr error
	}{
		{"active", active, nil},
		{"inactive", inactive, services.ErrUserInactive},
		{"deleted", deleted, services.ErrUserNotFound},
	} {
		t.Run(tc.name, func(t *testing.T) {
			token, err := authService.GenerateToken(tc.user)
			require.NoError(t, err)

			got, err := authService.Authenticate(ctx, token)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.user.ID, got.ID)
		})
	}
}
