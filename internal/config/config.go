package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config holds every setting of the service.
type Config struct {
	AppPort string
	AppEnv  string

	// database
	DBDriver    string
	DatabaseDSN string

	// auth
	JWTSecret       string
	JWTExpiration   time.Duration
	LoginRatePerMin int

	// TimeZone names the location calendar weeks are computed in.
	TimeZone string
	Location *time.Location

	// logging
	LogLevel      string
	LogFormatJSON bool
	LogFile       string
	LogToStdout   bool

	// integrations, empty disables them
	RabbitMQURL string
	RedisAddr   string

	MetricsNamespace string
}

// IsProduction reports whether the service runs in production.
func (c *Config) IsProduction() bool {
	switch strings.ToLower(c.AppEnv) {
	case "prod", "production":
		return true
	default:
		return false
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "fitlog.db?_foreign_keys=1")
	v.SetDefault("JWT_EXPIRATION", "24h")
	v.SetDefault("LOGIN_RATE_PER_MIN", 10)
	v.SetDefault("TIME_ZONE", "UTC")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT_JSON", false)
	v.SetDefault("LOG_FILE", "")
	v.SetDefault("LOG_TO_STDOUT", true)
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("METRICS_NAMESPACE", "fitlog")
}

// Load reads the configuration from defaults, an optional config file and the
// environment, in increasing order of precedence. A .env file is loaded into
// the environment first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debugln("No .env file found")
	}

	v := viper.New()
	setDefaults(v)

	if path := os.Getenv("FITLOG_CONFIG"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	v.AutomaticEnv()

	cfg := &Config{
		AppPort:          v.GetString("APP_PORT"),
		AppEnv:           v.GetString("APP_ENV"),
		DBDriver:         strings.ToLower(v.GetString("DB_DRIVER")),
		DatabaseDSN:      v.GetString("DATABASE_DSN"),
		JWTSecret:        v.GetString("JWT_SECRET"),
		JWTExpiration:    v.GetDuration("JWT_EXPIRATION"),
		LoginRatePerMin:  v.GetInt("LOGIN_RATE_PER_MIN"),
		TimeZone:         v.GetString("TIME_ZONE"),
		LogLevel:         v.GetString("LOG_LEVEL"),
		LogFormatJSON:    v.GetBool("LOG_FORMAT_JSON"),
		LogFile:          v.GetString("LOG_FILE"),
		LogToStdout:      v.GetBool("LOG_TO_STDOUT"),
		RabbitMQURL:      v.GetString("RABBITMQ_URL"),
		RedisAddr:        v.GetString("REDIS_ADDR"),
		MetricsNamespace: v.GetString("METRICS_NAMESPACE"),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	if cfg.JWTExpiration <= 0 {
		return nil, fmt.Errorf("JWT_EXPIRATION must be positive, got %q", v.GetString("JWT_EXPIRATION"))
	}
	if cfg.LoginRatePerMin <= 0 {
		return nil, fmt.Errorf("LOGIN_RATE_PER_MIN must be positive, got %d", cfg.LoginRatePerMin)
	}

	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIME_ZONE %q: %w", cfg.TimeZone, err)
	}
	cfg.Location = loc

	return cfg, nil
}
