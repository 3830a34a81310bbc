// Package config provides configuration management for the Super Predictor application.
package config

import "fmt"

// Config represents the complete application configuration
type Config struct {
	App          AppConfig          `mapstructure:"app" validate:"required"`
	FootballData FootballDataConfig `mapstructure:"football_data" validate:"required"`
	Model        ModelConfig        `mapstructure:"model" validate:"required"`
	Picks        PicksConfig        `mapstructure:"picks" validate:"required"`
	Storage      StorageConfig      `mapstructure:"storage" validate:"required"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Schedule     ScheduleConfig     `mapstructure:"schedule" validate:"required"`
	Metrics      MetricsConfig      `mapstructure:"metrics" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// FootballDataConfig represents the football-data.org provider configuration.
// APIToken has no default; ingestion refuses to start without it.
type FootballDataConfig struct {
	BaseURL         string   `mapstructure:"base_url" validate:"required,url"`
	APIToken        string   `mapstructure:"api_token"`
	Competitions    []string `mapstructure:"competitions" validate:"required,min=1,competitions"`
	RequestsPerSec  float64  `mapstructure:"requests_per_sec" validate:"required,gt=0"`
	MaxAttempts     int      `mapstructure:"max_attempts" validate:"required,gt=0"`
	CooldownSeconds int      `mapstructure:"cooldown_seconds" validate:"required,gt=0"`
	TimeoutSeconds  int      `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	CacheTTLMinutes int      `mapstructure:"cache_ttl_minutes" validate:"gte=0"`
}

// ModelConfig represents the analytical model configuration
type ModelConfig struct {
	GoalThreshold int `mapstructure:"goal_threshold" validate:"required,gt=0"`
	MaxGoals      int `mapstructure:"max_goals" validate:"required,gt=0"`
	LookAheadDays int `mapstructure:"look_ahead_days" validate:"required,gt=0"`
	LookBackDays  int `mapstructure:"look_back_days" validate:"required,gt=0"`
}

// PicksConfig represents the pick-selection thresholds
type PicksConfig struct {
	TopN                int     `mapstructure:"top_n" validate:"required,gt=0"`
	RateThreshold       float64 `mapstructure:"rate_threshold" validate:"required,gte=0,lte=1"`
	ConfidenceThreshold float64 `mapstructure:"confidence_threshold" validate:"required,gte=0,lte=1"`
}

// StorageConfig represents snapshot persistence configuration
type StorageConfig struct {
	Backend         string `mapstructure:"backend" validate:"required,oneof=csv postgres"`
	PredictionsPath string `mapstructure:"predictions_path"`
	HistoryPath     string `mapstructure:"history_path"`
}

// DatabaseConfig represents database connection configuration, used
// only when the storage backend is postgres
type DatabaseConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Name           string `mapstructure:"name"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	SSLMode        string `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable require verify-full"`
	MaxConnections int    `mapstructure:"max_connections" validate:"omitempty,gt=0"`
}

// ScheduleConfig represents daemon-mode scheduling
type ScheduleConfig struct {
	IngestCron string `mapstructure:"ingest_cron" validate:"required"`
}

// MetricsConfig represents metrics and health endpoint configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
