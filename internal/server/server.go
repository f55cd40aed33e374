package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"fitlog/internal/handlers"
	"fitlog/internal/metrics"
	"fitlog/internal/middleware"
	"fitlog/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// HealthCheck reports whether a dependency is usable.
type HealthCheck func(ctx context.Context) error

// Params collects everything the HTTP app is built from.
type Params struct {
	AuthService     *services.AuthService
	MuscleService   *services.MuscleService
	ExerciseService *services.ExerciseService
	TrainingService *services.TrainingService

	MetricsManager  *metrics.Manager
	MetricsGatherer prometheus.Gatherer

	// RateLimiter guards the login route when set.
	RateLimiter     middleware.RequestRateLimiter
	LoginRatePerMin int

	// RequestLogOutput receives one access log line per request when set.
	RequestLogOutput io.Writer

	HealthChecks map[string]HealthCheck
}

// New builds the Fiber app with every route of the API.
func New(p Params) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "fitlog",
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			log.Errorf("http: panic serving %s: %v", c.Path(), e)
		},
	}))
	if p.MetricsManager != nil {
		app.Use(middleware.RequestMetrics(p.MetricsManager))
	}
	if p.RequestLogOutput != nil {
		app.Use(logger.New(logger.Config{Output: p.RequestLogOutput}))
	}
	app.Use(cors.New())

	app.Get("/health", healthHandler(p.HealthChecks))
	if p.MetricsGatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(p.MetricsGatherer, promhttp.HandlerOpts{})))
	}

	authRequired := middleware.AuthRequired(p.AuthService)

	var loginGuards []fiber.Handler
	if p.RateLimiter != nil {
		loginGuards = append(loginGuards, middleware.RateLimit(p.RateLimiter, "login", p.LoginRatePerMin, p.MetricsManager))
	}
	handlers.NewAuthHandler(p.AuthService, p.MetricsManager).RegisterRoutes(app, authRequired, loginGuards...)

	protected := app.Group("", authRequired)
	handlers.NewMuscleHandler(p.MuscleService).RegisterRoutes(protected)
	handlers.NewExerciseHandler(p.ExerciseService).RegisterRoutes(protected)
	handlers.NewTrainingHandler(p.TrainingService, p.MetricsManager).RegisterRoutes(protected)

	return app
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	} else {
		log.WithError(err).WithField("path", c.Path()).Error("Unhandled request error")
	}
	return c.Status(code).JSON(fiber.Map{"message": message})
}

func healthHandler(checks map[string]HealthCheck) fiber.Handler {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		status := fiber.StatusOK
		body := fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		}
		for _, name := range names {
			if err := checks[name](ctx); err != nil {
				status = fiber.StatusServiceUnavailable
				body["status"] = "unhealthy"
				body[name] = fmt.Sprintf("error: %v", err)
				continue
			}
			body[name] = "ok"
		}
		return c.Status(status).JSON(body)
	}
}
