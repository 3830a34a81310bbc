// Package config provides configuration management for the Super Predictor application.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load reads and parses the configuration from file and environment variables.
// It expands environment variable placeholders in the YAML file (${VAR_NAME})
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the configuration (${VAR} syntax)
	expanded := os.ExpandEnv(string(data))

	v := newViper()
	if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// LoadWithDefaults loads configuration with default values for optional
// fields, so a minimal config file (or none at all, for the query-side
// CLI) still produces a usable Config.
func LoadWithDefaults(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	v := newViper()
	setDefaults(v)

	if data, err := os.ReadFile(configPath); err == nil {
		expanded := os.ExpandEnv(string(data))
		if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	// If file doesn't exist, continue with defaults and environment variables

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("SUPER_PREDICTOR")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "super-predictor")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("football_data.base_url", "https://api.football-data.org/v4/")
	v.SetDefault("football_data.competitions", []string{"PL", "BL1", "PD", "SA", "FL1", "CL"})
	v.SetDefault("football_data.requests_per_sec", 1.0)
	v.SetDefault("football_data.max_attempts", 3)
	v.SetDefault("football_data.cooldown_seconds", 60)
	v.SetDefault("football_data.timeout_seconds", 30)
	v.SetDefault("football_data.cache_ttl_minutes", 0)

	v.SetDefault("model.goal_threshold", 2)
	v.SetDefault("model.max_goals", 10)
	v.SetDefault("model.look_ahead_days", 3)
	v.SetDefault("model.look_back_days", 1)

	v.SetDefault("picks.top_n", 3)
	v.SetDefault("picks.rate_threshold", 0.70)
	v.SetDefault("picks.confidence_threshold", 0.70)

	v.SetDefault("storage.backend", "csv")
	v.SetDefault("storage.predictions_path", "data/predictions.csv")
	v.SetDefault("storage.history_path", "data/E0.csv")

	v.SetDefault("schedule.ingest_cron", "0 0 * * *")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("metrics.path", "/metrics")
}
