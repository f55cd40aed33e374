package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fitlog/internal/config"
	"fitlog/internal/database"
	"fitlog/internal/logging"
	"fitlog/internal/metrics"
	"fitlog/internal/repositories"
	"fitlog/internal/server"
	"fitlog/internal/services"
	"fitlog/pkg/rabbitmq"

	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logOutput := logging.Setup(logging.LoggerSetupParams{
		LogFileName:   cfg.LogFile,
		LogToStdout:   cfg.LogToStdout,
		LogLevel:      cfg.LogLevel,
		LogFormatJSON: cfg.LogFormatJSON,
	})

	ctx := context.Background()
	svc, err := newApplication(ctx, cfg, logOutput)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.WithField("env", cfg.AppEnv).Infof("Starting server on %s", cfg.AppPort)
		if err := svc.app.Listen(cfg.AppPort); err != nil {
			log.Errorf("Server stopped: %v", err)
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	log.Info("Shutting down server...")

	if err := svc.app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Errorf("Error during Fiber shutdown: %v", err)
	}
	if err := svc.Close(); err != nil {
		log.Errorf("Error releasing resources: %v", err)
	}
	log.Info("Server gracefully stopped")
}

// application owns the HTTP app and every connection it depends on.
type application struct {
	app   *fiber.App
	db    *gorm.DB
	mq    *rabbitmq.Client
	redis *redis.Client
}

func newApplication(ctx context.Context, cfg *config.Config, logOutput io.Writer) (*application, error) {
	db, err := database.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	a := &application{db: db}

	healthChecks := map[string]server.HealthCheck{
		"database": func(ctx context.Context) error { return database.Ping(ctx, db) },
	}

	userRepo := repositories.NewGORMUserRepository(db)
	muscleRepo := repositories.NewGORMMuscleRepository(db)
	exerciseRepo := repositories.NewGORMExerciseRepository(db)
	trainingRepo := repositories.NewGORMTrainingRepository(db)

	muscleService := services.NewMuscleService(muscleRepo)
	if err := muscleService.SeedMuscles(ctx); err != nil {
		return nil, multierr.Append(fmt.Errorf("failed to seed muscles: %w", err), a.Close())
	}

	trainingOpts := []services.TrainingOption{services.WithLocation(cfg.Location)}
	if cfg.RabbitMQURL != "" {
		a.mq, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: rabbitmq.DefaultQueue})
		if err != nil {
			return nil, multierr.Append(err, a.Close())
		}
		trainingOpts = append(trainingOpts, services.WithPublisher(a.mq))
		healthChecks["rabbitmq"] = a.mq.Check
	} else {
		log.Warn("RABBITMQ_URL not set, training events will not be published")
	}

	var rateLimiter *redis_rate.Limiter
	if cfg.RedisAddr != "" {
		a.redis = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		rateLimiter = redis_rate.NewLimiter(a.redis)
		healthChecks["redis"] = func(ctx context.Context) error { return a.redis.Ping(ctx).Err() }
	} else {
		log.Warn("REDIS_ADDR not set, login rate limiting disabled")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metricsManager := metrics.NewManager(cfg.MetricsNamespace, "server", reg)

	params := server.Params{
		AuthService:      services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiration),
		MuscleService:    muscleService,
		ExerciseService:  services.NewExerciseService(exerciseRepo, muscleRepo),
		TrainingService:  services.NewTrainingService(trainingRepo, exerciseRepo, trainingOpts...),
		MetricsManager:   metricsManager,
		MetricsGatherer:  reg,
		LoginRatePerMin:  cfg.LoginRatePerMin,
		RequestLogOutput: logOutput,
		HealthChecks:     healthChecks,
	}
	if rateLimiter != nil {
		params.RateLimiter = rateLimiter
	}
	a.app = server.New(params)

	return a, nil
}

// Close releases every connection, reporting all failures.
func (a *application) Close() error {
	var err error
	if a.mq != nil {
		err = multierr.Append(err, a.mq.Close())
	}
	if a.redis != nil {
		err = multierr.Append(err, a.redis.Close())
	}
	if a.db != nil {
		err = multierr.Append(err, database.Close(a.db))
	}
	return err
}
