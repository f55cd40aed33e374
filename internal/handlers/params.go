package handlers

import (
	"strconv"

	"fitlog/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// pathID parses the :id route parameter. ok is false for anything but a positive integer.
func pathID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// queryID parses an optional positive integer query parameter, adding a field error to errs when malformed.
func queryID(c *fiber.Ctx, key string, errs validation.Errors) *uint {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		errs.Add(key, "A valid integer is required.")
		return nil
	}
	v := uint(id)
	return &v
}
