package handlers

import (
	"fitlog/internal/middleware"
	"fitlog/internal/services"
	"fitlog/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ExerciseHandler handles HTTP requests for the caller's exercises.
type ExerciseHandler struct {
	exerciseService *services.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService *services.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{
		exerciseService: exerciseService,
	}
}

// RegisterRoutes registers the exercise routes with the Fiber app.
func (h *ExerciseHandler) RegisterRoutes(router fiber.Router) {
	exerciseRoutes := router.Group("/exercises")
	exerciseRoutes.Get("/", h.GetAllExercises)
	exerciseRoutes.Post("/", h.CreateExercise)
	exerciseRoutes.Get("/:id", h.GetExerciseByID)
	exerciseRoutes.Put("/:id", h.ReplaceExercise)
	exerciseRoutes.Patch("/:id", h.PatchExercise)
	exerciseRoutes.Delete("/:id", h.DeleteExercise)
}

// GetAllExercises lists the caller's exercises, optionally filtered by ?muscle=.
func (h *ExerciseHandler) GetAllExercises(c *fiber.Ctx) error {
	errs := validation.Errors{}
	muscleID := queryID(c, "muscle", errs)
	if errs.Err() != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errs)
	}

	exercises, err := h.exerciseService.GetAllExercises(c.UserContext(), middleware.UserID(c), muscleID)
	if err != nil {
		return respondError(c, err, "Exercise")
	}

	resp := make([]exerciseResponse, 0, len(exercises))
	for i := range exercises {
		resp = append(resp, newExerciseResponse(&exercises[i]))
	}
	return c.JSON(resp)
}

// GetExerciseByID returns one of the caller's exercises.
func (h *ExerciseHandler) GetExerciseByID(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c, "Exercise")
	}

	exercise, err := h.exerciseService.GetExerciseByID(c.UserContext(), middleware.UserID(c), id)
	if err != nil {
		return respondError(c, err, "Exercise")
	}
	return c.JSON(newExerciseResponse(exercise))
}

// CreateExercise creates an exercise owned by the caller.
func (h *ExerciseHandler) CreateExercise(c *fiber.Ctx) error {
	var req services.ExerciseRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}

	exercise, err := h.exerciseService.CreateExercise(c.UserContext(), middleware.UserID(c), req)
	if err != nil {
		return respondError(c, err, "Exercise")
	}
	return c.Status(fiber.StatusCreated).JSON(newExerciseResponse(exercise))
}

// ReplaceExercise handles PUT with a full exercise body.
func (h *ExerciseHandler) ReplaceExercise(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c, "Exercise")
	}
	var req services.ExerciseRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}

	exercise, err := h.exerciseService.ReplaceExercise(c.UserContext(), middleware.UserID(c), id, req)
	if err != nil {
		return respondError(c, err, "Exercise")
	}
	return c.JSON(newExerciseResponse(exercise))
}

// PatchExercise handles PATCH with any subset of the exercise fields.
func (h *ExerciseHandler) PatchExercise(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c, "Exercise")
	}
	var patch services.ExercisePatch
	if err := c.BodyParser(&patch); err != nil {
		return invalidBody(c, err)
	}

	exercise, err := h.exerciseService.PatchExercise(c.UserContext(), middleware.UserID(c), id, patch)
	if err != nil {
		return respondError(c, err, "Exercise")
	}
	return c.JSON(newExerciseResponse(exercise))
}

// DeleteExercise removes an exercise and its trainings.
func (h *ExerciseHandler) DeleteExercise(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c, "Exercise")
	}

	if err := h.exerciseService.DeleteExercise(c.UserContext(), middleware.UserID(c), id); err != nil {
		return respondError(c, err, "Exercise")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
