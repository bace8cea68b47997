package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration, loaded from a YAML file and
// overridden by environment variables.
type Config struct {
	Server struct {
		Port            string `yaml:"port" env:"SERVER_PORT"`
		Mode            string `yaml:"mode" env:"SERVER_MODE"`
		ShutdownTimeout string `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxConns        int    `yaml:"max_conns" env:"DB_MAX_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		MigrationsDir   string `yaml:"migrations_dir" env:"DB_MIGRATIONS_DIR"`
	} `yaml:"database"`

	Engine struct {
		ReminderHorizonDays int  `yaml:"reminder_horizon_days" env:"ENGINE_REMINDER_HORIZON_DAYS"`
		DemoData            bool `yaml:"demo_data" env:"ENGINE_DEMO_DATA"`
	} `yaml:"engine"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables.
// A missing file is not an error; defaults plus environment apply.
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

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.ShutdownTimeout = "10s"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "examdesk"
	config.Database.SSLMode = "disable"
	config.Database.MaxConns = 10
	config.Database.ConnMaxLifetime = "1h"
	config.Database.MigrationsDir = "migrations"

	config.Engine.ReminderHorizonDays = 7
	config.Engine.DemoData = false

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// loadFromEnv overrides configuration with environment variables via the
// struct env tags.
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if config.Database.DBName == "" {
		return fmt.Errorf("database name is required")
	}
	if config.Engine.ReminderHorizonDays < 0 {
		return fmt.Errorf("reminder horizon cannot be negative")
	}
	if _, err := time.ParseDuration(config.Server.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown timeout format: %w", err)
	}
	if _, err := time.ParseDuration(config.Database.ConnMaxLifetime); err != nil {
		return fmt.Errorf("invalid connection lifetime format: %w", err)
	}
	return nil
}

// GetPostgresConnectionString returns the postgres connection string.
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}
