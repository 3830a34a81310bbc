package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadValidConfig(t *testing.T) {
	os.Setenv("TEST_API_TOKEN", "secret-token")
	defer os.Unsetenv("TEST_API_TOKEN")

	cfg, err := Load("testdata/valid.yaml")
	require.NoError(t, err)

	assert.Equal(t, "super-predictor", cfg.App.Name)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, "secret-token", cfg.FootballData.APIToken, "env placeholders must expand")
	assert.Equal(t, []string{"PL", "BL1"}, cfg.FootballData.Competitions)
	assert.Equal(t, 0.15, cfg.FootballData.RequestsPerSec)
	assert.Equal(t, 2, cfg.Model.GoalThreshold)
	assert.Equal(t, "csv", cfg.Storage.Backend)
	assert.Equal(t, "0 0 * * *", cfg.Schedule.IngestCron)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("testdata/does-not-exist.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLoadWithDefaultsNoFile(t *testing.T) {
	cfg, err := LoadWithDefaults(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "https://api.football-data.org/v4/", cfg.FootballData.BaseURL)
	assert.Equal(t, []string{"PL", "BL1", "PD", "SA", "FL1", "CL"}, cfg.FootballData.Competitions)
	assert.Equal(t, 3, cfg.FootballData.MaxAttempts)
	assert.Equal(t, 60, cfg.FootballData.CooldownSeconds)
	assert.Equal(t, 2, cfg.Model.GoalThreshold)
	assert.Equal(t, 10, cfg.Model.MaxGoals)
	assert.Equal(t, 3, cfg.Model.LookAheadDays)
	assert.Equal(t, 3, cfg.Picks.TopN)
	assert.Equal(t, 0.70, cfg.Picks.RateThreshold)
	assert.Equal(t, "0 0 * * *", cfg.Schedule.IngestCron)

	require.NoError(t, Validate(cfg), "defaults alone must form a valid config")
}

func TestValidateRejectsBadEnvironment(t *testing.T) {
	cfg, err := LoadWithDefaults(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	cfg.App.Environment = "sandbox"
	err = Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "development, staging, production")
}

func TestValidateRejectsBadCompetitionCode(t *testing.T) {
	cfg, err := LoadWithDefaults(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	cfg.FootballData.Competitions = []string{"PL", "premier-league"}
	require.Error(t, Validate(cfg))
}

func TestValidateRejectsPostgresWithoutConnection(t *testing.T) {
	cfg, err := LoadWithDefaults(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	cfg.Storage.Backend = "postgres"
	err = Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database host")
}

func TestValidateRejectsProductionWithoutSSL(t *testing.T) {
	cfg, err := LoadWithDefaults(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	cfg.App.Environment = "production"
	cfg.Storage.Backend = "postgres"
	cfg.Database.Host = "db.internal"
	cfg.Database.Name = "predictor"
	cfg.Database.User = "predictor"
	cfg.Database.SSLMode = "disable"
	err = Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SSL")
}

func TestValidateIngestionRequiresToken(t *testing.T) {
	cfg, err := LoadWithDefaults(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	cfg.FootballData.APIToken = ""
	err = ValidateIngestion(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api_token")

	cfg.FootballData.APIToken = "token"
	assert.NoError(t, ValidateIngestion(cfg))
}
