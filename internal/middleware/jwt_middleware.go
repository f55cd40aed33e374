package middleware

import (
	"context"
	"errors"
	"strings"

	"fitlog/internal/models"
	"fitlog/internal/services"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

const userKey = "user"

// Authenticator resolves the user a bearer token belongs to.
type Authenticator interface {
	Authenticate(ctx context.Context, tokenString string) (*models.User, error)
}

var authMessages = map[error]string{
	services.ErrTokenMissing:   "Authentication credentials were not provided",
	services.ErrTokenMalformed: "Authorization header format must be 'Bearer <token>'",
	services.ErrTokenInvalid:   "Invalid token",
	services.ErrTokenExpired:   "Token has expired",
	services.ErrUserNotFound:   "User not found",
	services.ErrUserInactive:   "User is inactive",
}

// AuthRequired is a Fiber middleware to check for a valid JWT token.
// The authenticated user is available to later handlers through CurrentUser.
func AuthRequired(authenticator Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return unauthorized(c, services.ErrTokenMissing)
		}

		// Expected format: "Bearer <token>", scheme case-insensitive
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return unauthorized(c, services.ErrTokenMalformed)
		}

		user, err := authenticator.Authenticate(c.UserContext(), parts[1])
		if err != nil {
			for sentinel := range authMessages {
				if errors.Is(err, sentinel) {
					log.WithError(err).Debug("JWT authentication failed")
					return unauthorized(c, sentinel)
				}
			}
			log.WithError(err).Error("Failed to authenticate request")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Internal server error",
			})
		}

		c.Locals(userKey, user)
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message": authMessages[err],
		"error":   err.Error(),
	})
}

// CurrentUser returns the user stored by AuthRequired, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userKey).(*models.User)
	return user
}

// UserID returns the ID of the authenticated user, or 0.
func UserID(c *fiber.Ctx) uint {
	if user := CurrentUser(c); user != nil {
		return user.ID
	}
	return 0
}
