package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Database drivers
const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port        string   `yaml:"port" env:"PORT" validate:"required"`
		Mode        string   `yaml:"mode" env:"SERVER_MODE" validate:"oneof=development production test"`
		CORSOrigins []string `yaml:"cors_origins" env:"CORS_ORIGINS"`
	} `yaml:"server"`

	Database struct {
		Driver         string `yaml:"driver" env:"DB_DRIVER" validate:"oneof=mongo memory"`
		URI            string `yaml:"uri" env:"MONGO_URI" validate:"required_if=Driver mongo"`
		Name           string `yaml:"name" env:"DB_NAME" validate:"required_if=Driver mongo"`
		ConnectTimeout string `yaml:"connect_timeout" env:"DB_CONNECT_TIMEOUT"`
	} `yaml:"database"`

	JWT struct {
		Secret     string `yaml:"secret" env:"ACCESS_TOKEN_SECRET" validate:"required"`
		Expiration string `yaml:"expiration" env:"JWT_EXPIRATION"`
		Issuer     string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Auth struct {
		// LegacyInvertedAdminCheck grants admin routes to every role except admin.
		LegacyInvertedAdminCheck bool `yaml:"legacy_inverted_admin_check" env:"AUTH_LEGACY_INVERTED_ADMIN_CHECK"`
	} `yaml:"auth"`

	Payment struct {
		StripeSecretKey string `yaml:"stripe_secret_key" env:"PAYMENT_SECRET_KEY"`
		StripeBaseURL   string `yaml:"stripe_base_url" env:"PAYMENT_BASE_URL" validate:"required,url"`
		Currency        string `yaml:"currency" env:"PAYMENT_CURRENCY" validate:"required,len=3"`
		Timeout         string `yaml:"timeout" env:"PAYMENT_TIMEOUT"`
	} `yaml:"payment"`

	Jobs struct {
		// ReconcileSchedule is a cron spec; empty disables the job.
		ReconcileSchedule string `yaml:"reconcile_schedule" env:"JOBS_RECONCILE_SCHEDULE"`
	} `yaml:"jobs"`

	Seed struct {
		AdminEmail string `yaml:"admin_email" env:"SEED_ADMIN_EMAIL" validate:"omitempty,email"`
		AdminName  string `yaml:"admin_name" env:"SEED_ADMIN_NAME"`
	} `yaml:"seed"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL" validate:"oneof=debug info warn error fatal"`
		Format string `yaml:"format" env:"LOG_FORMAT" validate:"oneof=json text"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "3000"
	config.Server.Mode = "development"
	config.Server.CORSOrigins = []string{"*"}

	config.Database.Driver = DriverMongo
	config.Database.URI = "mongodb://localhost:27017"
	config.Database.Name = "fitnesshub"
	config.Database.ConnectTimeout = "10s"

	config.JWT.Expiration = "24h"
	config.JWT.Issuer = "fitnesshub"

	config.Payment.StripeBaseURL = "https://api.stripe.com"
	config.Payment.Currency = "usd"
	config.Payment.Timeout = "15s"

	config.Jobs.ReconcileSchedule = "@every 15m"

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	config.Database.Driver = strings.ToLower(strings.TrimSpace(config.Database.Driver))

	if err := validator.New().Struct(config); err != nil {
		return err
	}

	durations := map[string]string{
		"jwt.expiration":           config.JWT.Expiration,
		"database.connect_timeout": config.Database.ConnectTimeout,
		"payment.timeout":          config.Payment.Timeout,
	}
	for name, value := range durations {
		if value == "" {
			continue
		}
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s format: %w", name, err)
		}
	}

	return nil
}

