package handlers

import (
	"fitlog/internal/metrics"
	"fitlog/internal/middleware"
	"fitlog/internal/services"
	"fitlog/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// TrainingHandler handles HTTP requests for logged trainings, their history and stats.
type TrainingHandler struct {
	trainingService *services.TrainingService
	metricsManager  *metrics.Manager
}

// NewTrainingHandler creates a new TrainingHandler. metricsManager may be nil.
func NewTrainingHandler(trainingService *services.TrainingService, metricsManager *metrics.Manager) *TrainingHandler {
	return &TrainingHandler{
		trainingService: trainingService,
		metricsManager:  metricsManager,
	}
}

// RegisterRoutes registers the training routes with the Fiber app.
func (h *TrainingHandler) RegisterRoutes(router fiber.Router) {
	trainingRoutes := router.Group("/trainings")
	trainingRoutes.Get("/", h.GetAllTrainings)
	trainingRoutes.Post("/", h.CreateTraining)
	// before /:id so they are not taken for IDs
	trainingRoutes.Get("/history", h.GetHistory)
	trainingRoutes.Get("/stats", h.GetStats)
	trainingRoutes.Get("/:id", h.GetTrainingByID)
	trainingRoutes.Put("/:id", h.ReplaceTraining)
	trainingRoutes.Patch("/:id", h.PatchTraining)
	trainingRoutes.Delete("/:id", h.DeleteTraining)
}

// GetAllTrainings lists the caller's trainings, most recent first.
func (h *TrainingHandler) GetAllTrainings(c *fiber.Ctx) error {
	trainings, err := h.trainingService.GetAllTrainings(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return respondError(c, err, "Training")
	}
	return c.JSON(newTrainingResponses(trainings))
}

// GetTrainingByID returns one of the caller's trainings.
func (h *TrainingHandler) GetTrainingByID(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c, "Training")
	}

	training, err := h.trainingService.GetTrainingByID(c.UserContext(), middleware.UserID(c), id)
	if err != nil {
		return respondError(c, err, "Training")
	}
	return c.JSON(newTrainingResponse(training))
}

// CreateTraining logs a training for one of the caller's exercises.
func (h *TrainingHandler) CreateTraining(c *fiber.Ctx) error {
	var req services.TrainingRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}

	training, err := h.trainingService.CreateTraining(c.UserContext(), middleware.UserID(c), req)
	if err != nil {
		return respondError(c, err, "Training")
	}

	if h.metricsManager != nil {
		h.metricsManager.CounterTrainingsLogged.Inc()
	}
	return c.Status(fiber.StatusCreated).JSON(newTrainingResponse(training))
}

// ReplaceTraining handles PUT with a full training body.
func (h *TrainingHandler) ReplaceTraining(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c, "Training")
	}
	var req services.TrainingRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}

	training, err := h.trainingService.ReplaceTraining(c.UserContext(), middleware.UserID(c), id, req)
	if err != nil {
		return respondError(c, err, "Training")
	}
	return c.JSON(newTrainingResponse(training))
}

// PatchTraining handles PATCH with any subset of the training fields.
func (h *TrainingHandler) PatchTraining(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c, "Training")
	}
	var patch services.TrainingPatch
	if err := c.BodyParser(&patch); err != nil {
		return invalidBody(c, err)
	}

	training, err := h.trainingService.PatchTraining(c.UserContext(), middleware.UserID(c), id, patch)
	if err != nil {
		return respondError(c, err, "Training")
	}
	return c.JSON(newTrainingResponse(training))
}

// DeleteTraining removes one of the caller's trainings.
func (h *TrainingHandler) DeleteTraining(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c, "Training")
	}

	if err := h.trainingService.DeleteTraining(c.UserContext(), middleware.UserID(c), id); err != nil {
		return respondError(c, err, "Training")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetHistory lists trainings filtered by ?period=, ?exercise= and ?muscle=.
func (h *TrainingHandler) GetHistory(c *fiber.Ctx) error {
	errs := validation.Errors{}
	q := services.HistoryQuery{
		ExerciseID: queryID(c, "exercise", errs),
		MuscleID:   queryID(c, "muscle", errs),
	}
	period, err := services.ParsePeriod(c.Query("period"))
	if err != nil {
		errs.Add("period", "Select a valid choice. Must be one of: current_week, last_week, last_month, last_year.")
	}
	q.Period = period
	if errs.Err() != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errs)
	}

	trainings, err := h.trainingService.History(c.UserContext(), middleware.UserID(c), q)
	if err != nil {
		return respondError(c, err, "Training")
	}
	return c.JSON(newTrainingResponses(trainings))
}

// GetStats returns per exercise weight statistics filtered by ?exercise= and ?muscle=.
func (h *TrainingHandler) GetStats(c *fiber.Ctx) error {
	errs := validation.Errors{}
	q := services.HistoryQuery{
		ExerciseID: queryID(c, "exercise", errs),
		MuscleID:   queryID(c, "muscle", errs),
	}
	if errs.Err() != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errs)
	}

	stats, err := h.trainingService.Stats(c.UserContext(), middleware.UserID(c), q)
	if err != nil {
		return respondError(c, err, "Training")
	}
	return c.JSON(stats)
}
