package handlers

import (
	"errors"

	"fitlog/internal/metrics"
	"fitlog/internal/middleware"
	"fitlog/internal/services"
	"fitlog/internal/validation"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService    *services.AuthService
	metricsManager *metrics.Manager
	validate       *validation.Validator
}

// NewAuthHandler creates a new AuthHandler. metricsManager may be nil.
func NewAuthHandler(authService *services.AuthService, metricsManager *metrics.Manager) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		metricsManager: metricsManager,
		validate:       validation.New(),
	}
}

// RegisterRoutes registers the authentication routes. loginGuards run before the login handler.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler, loginGuards ...fiber.Handler) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", append(loginGuards, h.HandleLogin)...)
	authRoutes.Get("/profile", authRequired, h.HandleProfile)
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req services.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}

	user, err := h.authService.RegisterUser(c.UserContext(), req)
	if err != nil {
		return respondError(c, err, "User")
	}

	if h.metricsManager != nil {
		h.metricsManager.CounterRegistrations.Inc()
	}
	log.WithField("user_id", user.ID).Info("User registered")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    user,
	})
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	EmailOrUsername string `json:"email_or_username" validate:"required"`
	Password        string `json:"password" validate:"required"`
}

// HandleLogin handles user login and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}
	if errs := h.validate.Struct(req); errs.Err() != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errs)
	}

	token, user, err := h.authService.LoginUser(c.UserContext(), req.EmailOrUsername, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			h.countLogin("failure")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authentication failed",
				"error":   "Invalid email or password",
			})
		}
		return respondError(c, err, "User")
	}

	h.countLogin("success")
	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

// HandleProfile returns the authenticated user.
func (h *AuthHandler) HandleProfile(c *fiber.Ctx) error {
	user, err := h.authService.GetProfile(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return respondError(c, err, "User")
	}
	return c.JSON(user)
}

func (h *AuthHandler) countLogin(result string) {
	if h.metricsManager != nil {
		h.metricsManager.CounterLogins.WithLabelValues(result).Inc()
	}
}
