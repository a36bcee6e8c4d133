package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" toml:"port" env:"PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" toml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" toml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" toml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
	AllowedOrigins  []string      `yaml:"allowed_origins" toml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS"`
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	URL          string `yaml:"url" toml:"url" env:"DATABASE_URL"`
	MaxOpenConns int    `yaml:"max_open_conns" toml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
	MaxIdleConns int    `yaml:"max_idle_conns" toml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
}

// LoggerConfig contains logging configuration
type LoggerConfig struct {
	Level    string `yaml:"level" toml:"level" env:"LOG_LEVEL"`
	Format   string `yaml:"format" toml:"format" env:"LOG_FORMAT"`
	SaveToDB bool   `yaml:"save_to_db" toml:"save_to_db" env:"LOG_SAVE_DB"`

	// Persisted entries older than this are purged daily; 0 keeps them forever
	Retention time.Duration `yaml:"retention" toml:"retention" env:"LOG_RETENTION"`
}

// ReporterConfig contains the background progress reporter configuration
type ReporterConfig struct {
	Enabled  bool   `yaml:"enabled" toml:"enabled" env:"REPORTER_ENABLED"`
	Schedule string `yaml:"schedule" toml:"schedule" env:"REPORTER_SCHEDULE"`
}

// Config represents the complete configuration structure for YAML/TOML files
type Config struct {
	Server   ServerConfig   `yaml:"server" toml:"server"`
	Database DatabaseConfig `yaml:"database" toml:"database"`
	Logger   LoggerConfig   `yaml:"logger" toml:"logger"`
	Reporter ReporterConfig `yaml:"reporter" toml:"reporter"`
}

// Load builds the configuration from dir:
//  1. defaults
//  2. config/setforge.yaml, or config/setforge.toml when there is no YAML file
//  3. .env file, if present
//  4. environment variables, which override file values
//
// The result is validated before it is returned.
func Load(dir string) (*Config, error) {
	config := Default()

	if err := loadYAMLConfig(dir, config); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		if err := loadTOMLConfig(dir, config); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	envPath := filepath.Join(dir, ".env")
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	if err := applyEnv(config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            5000,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			AllowedOrigins:  []string{"*"},
		},
		Database: DatabaseConfig{
			URL:          "sqlite:mtg_sets.db",
			MaxOpenConns: 10,
			MaxIdleConns: 5,
		},
		Logger: LoggerConfig{
			Level:     "info",
			Format:    "json",
			SaveToDB:  false,
			Retention: 30 * 24 * time.Hour,
		},
		Reporter: ReporterConfig{
			Enabled:  true,
			Schedule: "@every 30m",
		},
	}
}

// loadYAMLConfig attempts to load configuration from YAML file
func loadYAMLConfig(dir string, config *Config) error {
	yamlPath := filepath.Join(dir, "config", "setforge.yaml")
	data, err := os.ReadFile(yamlPath)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse YAML config %s: %w", yamlPath, err)
	}

	return nil
}

// loadTOMLConfig attempts to load configuration from TOML file
func loadTOMLConfig(dir string, config *Config) error {
	tomlPath := filepath.Join(dir, "config", "setforge.toml")
	if _, err := os.Stat(tomlPath); err != nil {
		return err
	}

	if _, err := toml.DecodeFile(tomlPath, config); err != nil {
		return fmt.Errorf("failed to parse TOML config %s: %w", tomlPath, err)
	}

	return nil
}

// applyEnv overrides configuration values from environment variables
func applyEnv(config *Config) error {
	var err error

	if config.Server.Port, err = getEnvInt("PORT", config.Server.Port); err != nil {
		return err
	}
	if config.Server.ReadTimeout, err = getEnvDuration("SERVER_READ_TIMEOUT", config.Server.ReadTimeout); err != nil {
		return err
	}
	if config.Server.WriteTimeout, err = getEnvDuration("SERVER_WRITE_TIMEOUT", config.Server.WriteTimeout); err != nil {
		return err
	}
	if config.Server.ShutdownTimeout, err = getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", config.Server.ShutdownTimeout); err != nil {
		return err
	}
	config.Server.AllowedOrigins = getEnvStringSlice("CORS_ALLOWED_ORIGINS", config.Server.AllowedOrigins)

	config.Database.URL = getEnvString("DATABASE_URL", config.Database.URL)
	if config.Database.MaxOpenConns, err = getEnvInt("DB_MAX_OPEN_CONNS", config.Database.MaxOpenConns); err != nil {
		return err
	}
	if config.Database.MaxIdleConns, err = getEnvInt("DB_MAX_IDLE_CONNS", config.Database.MaxIdleConns); err != nil {
		return err
	}

	config.Logger.Level = getEnvString("LOG_LEVEL", config.Logger.Level)
	config.Logger.Format = getEnvString("LOG_FORMAT", config.Logger.Format)
	if config.Logger.SaveToDB, err = getEnvBool("LOG_SAVE_DB", config.Logger.SaveToDB); err != nil {
		return err
	}
	if config.Logger.Retention, err = getEnvDuration("LOG_RETENTION", config.Logger.Retention); err != nil {
		return err
	}

	if config.Reporter.Enabled, err = getEnvBool("REPORTER_ENABLED", config.Reporter.Enabled); err != nil {
		return err
	}
	config.Reporter.Schedule = getEnvString("REPORTER_SCHEDULE", config.Reporter.Schedule)

	return nil
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read_timeout must be positive, got %v", c.Server.ReadTimeout)
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write_timeout must be positive, got %v", c.Server.WriteTimeout)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server shutdown_timeout must be positive, got %v", c.Server.ShutdownTimeout)
	}

	if strings.TrimSpace(c.Database.URL) == "" {
		return fmt.Errorf("database url cannot be empty")
	}
	if c.Database.MaxOpenConns < 0 {
		return fmt.Errorf("database max_open_conns must be non-negative, got %d", c.Database.MaxOpenConns)
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database max_idle_conns must be non-negative, got %d", c.Database.MaxIdleConns)
	}

	if !isValidLogLevel(c.Logger.Level) {
		return fmt.Errorf("invalid logger level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}
	if !isValidLogFormat(c.Logger.Format) {
		return fmt.Errorf("invalid logger format: %s (must be json or console)", c.Logger.Format)
	}
	if c.Logger.Retention < 0 {
		return fmt.Errorf("logger retention must be non-negative, got %v", c.Logger.Retention)
	}

	if c.Reporter.Enabled {
		if _, err := cron.ParseStandard(c.Reporter.Schedule); err != nil {
			return fmt.Errorf("invalid reporter schedule %q: %w", c.Reporter.Schedule, err)
		}
	}

	return nil
}

func isValidLogLevel(level string) bool {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}

func isValidLogFormat(format string) bool {
	switch strings.ToLower(format) {
	case "json", "console":
		return true
	}
	return false
}

// Helper functions for environment variable parsing
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return intValue, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return boolValue, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
