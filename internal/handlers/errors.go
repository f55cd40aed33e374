package handlers

import (
	"errors"

	"fitlog/internal/repositories"
	"fitlog/internal/services"
	"fitlog/internal/validation"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// respondError writes the response for an error returned by a service.
func respondError(c *fiber.Ctx, err error, resource string) error {
	var conflict *services.ConflictError
	var fieldErrs validation.Errors
	switch {
	case errors.As(err, &conflict):
		return c.Status(fiber.StatusConflict).JSON(conflict.Fields)
	case errors.As(err, &fieldErrs):
		return c.Status(fiber.StatusBadRequest).JSON(fieldErrs)
	case errors.Is(err, repositories.ErrNotFound):
		return notFound(c, resource)
	default:
		log.WithError(err).WithFields(log.Fields{
			"method": c.Method(),
			"path":   c.Path(),
		}).Error("Request failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal server error",
		})
	}
}

func invalidBody(c *fiber.Ctx, err error) error {
	log.WithError(err).Debug("Error parsing request body")
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		return c.Status(fiber.StatusBadRequest).JSON(fieldErrs)
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid request body",
		"error":   err.Error(),
	})
}

func methodNotAllowed(c *fiber.Ctx) error {
	return c.Status(fiber.StatusMethodNotAllowed).JSON(fiber.Map{
		"message": "Method \"" + c.Method() + "\" not allowed.",
	})
}

func notFound(c *fiber.Ctx, resource string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"message": resource + " not found",
	})
}
