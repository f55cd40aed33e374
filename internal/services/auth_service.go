package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fitlog/internal/models"
	"fitlog/internal/repositories"
	"fitlog/internal/validation"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// DefaultTokenDuration is used when no token lifetime is configured.
const DefaultTokenDuration = 24 * time.Hour

// Claims is the payload of an access token.
type Claims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.StandardClaims
}

// RegisterRequest carries the fields accepted on registration.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email,max=254"`
	Password  string `json:"password" validate:"required"`
	Username  string `json:"username" validate:"required,max=150,username"`
	FirstName string `json:"first_name" validate:"required,max=150"`
	LastName  string `json:"last_name" validate:"required,max=150"`
}

// AuthService handles business logic for authentication and authorization.
type AuthService struct {
	userRepo   repositories.UserRepository
	validate   *validation.Validator
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which JWT is valid
}

// NewAuthService creates a new AuthService. A zero tokenDuration falls back to DefaultTokenDuration.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, tokenDuration time.Duration) *AuthService {
	if tokenDuration <= 0 {
		tokenDuration = DefaultTokenDuration
	}
	return &AuthService{
		userRepo:   userRepo,
		validate:   validation.New(),
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: tokenDuration,
	}
}

// RegisterUser validates req, hashes the password and stores a new active user.
// All field problems are returned together as validation.Errors.
func (s *AuthService) RegisterUser(ctx context.Context, req RegisterRequest) (*models.User, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Username = strings.TrimSpace(req.Username)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)

	errs := s.validate.Struct(req)

	if req.Email != "" && !errs.Has("email") {
		taken, err := s.exists(ctx, s.userRepo.GetByEmail, req.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			errs.Add("email", "A user with this email already exists.")
		}
	}
	if req.Username != "" && !errs.Has("username") {
		taken, err := s.exists(ctx, s.userRepo.GetByUsername, req.Username)
		if err != nil {
			return nil, err
		}
		if taken {
			errs.Add("username", "A user with this nickname already exists.")
		}
	}
	if req.Password != "" {
		for _, msg := range validation.ValidatePassword(req.Password,
			validation.UserAttribute{Label: "username", Value: req.Username},
			validation.UserAttribute{Label: "email address", Value: req.Email},
			validation.UserAttribute{Label: "first name", Value: req.FirstName},
			validation.UserAttribute{Label: "last name", Value: req.LastName},
		) {
			errs.Add("password", msg)
		}
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  string(hashedPassword),
		IsActive:  true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, newConflict(validation.NonFieldErrors, "A user with this email or nickname already exists.")
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

func (s *AuthService) exists(ctx context.Context, lookup func(context.Context, string) (*models.User, error), value string) (bool, error) {
	_, err := lookup(ctx, value)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, repositories.ErrNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("failed to check existing user: %w", err)
	}
}

// LoginUser authenticates by email or username and returns a signed token.
// The identifier is tried as an email first.
func (s *AuthService) LoginUser(ctx context.Context, emailOrUsername, password string) (string, *models.User, error) {
	identifier := strings.TrimSpace(emailOrUsername)
	if identifier == "" || password == "" {
		return "", nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(identifier))
	if errors.Is(err, repositories.ErrNotFound) {
		user, err = s.userRepo.GetByUsername(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// GenerateToken signs an access token for user.
func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	now := jwt.TimeFunc()
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.NewString(),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(s.tokenDurat).Unix(),
		},
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, ErrTokenExpired
		}
		log.WithError(err).Debug("Token validation failed")
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == 0 || claims.ExpiresAt == 0 {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// Authenticate resolves the active user behind tokenString.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*models.User, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}
	return user, nil
}

// GetProfile returns the user with the given ID.
func (s *AuthService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return user, nil
}
