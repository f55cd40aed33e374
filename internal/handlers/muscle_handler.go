package handlers

import (
	"fitlog/internal/services"

	"github.com/gofiber/fiber/v2"
)

// MuscleHandler serves the read-only muscle group vocabulary.
type MuscleHandler struct {
	muscleService *services.MuscleService
}

// NewMuscleHandler creates a new MuscleHandler.
func NewMuscleHandler(muscleService *services.MuscleService) *MuscleHandler {
	return &MuscleHandler{
		muscleService: muscleService,
	}
}

// RegisterRoutes registers the muscle routes. Writes are rejected with 405.
func (h *MuscleHandler) RegisterRoutes(router fiber.Router) {
	muscleRoutes := router.Group("/muscles")
	muscleRoutes.Get("/", h.GetAllMuscles)
	muscleRoutes.Post("/", methodNotAllowed)
	muscleRoutes.Get("/:id", h.GetMuscleByID)
	muscleRoutes.Put("/:id", methodNotAllowed)
	muscleRoutes.Patch("/:id", methodNotAllowed)
	muscleRoutes.Delete("/:id", methodNotAllowed)
}

// GetAllMuscles lists every muscle group.
func (h *MuscleHandler) GetAllMuscles(c *fiber.Ctx) error {
	muscles, err := h.muscleService.GetAllMuscles(c.UserContext())
	if err != nil {
		return respondError(c, err, "Muscle")
	}

	resp := make([]muscleResponse, 0, len(muscles))
	for _, m := range muscles {
		resp = append(resp, newMuscleResponse(m))
	}
	return c.JSON(resp)
}

// GetMuscleByID returns a single muscle group.
func (h *MuscleHandler) GetMuscleByID(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c, "Muscle")
	}

	muscle, err := h.muscleService.GetMuscleByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "Muscle")
	}
	return c.JSON(newMuscleResponse(*muscle))
}
