package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/super-predictor/internal/config"
	"github.com/yourusername/super-predictor/internal/footballdata"
	"github.com/yourusername/super-predictor/internal/service"
	"github.com/yourusername/super-predictor/internal/storage"
)

// A failed run must surface as an error so daemon mode can keep going
// and wait for the next scheduled attempt.
func TestRunOnceReportsPipelineError(t *testing.T) {
	cfg := &config.Config{
		App: config.AppConfig{Name: "super-predictor", Environment: "development", LogLevel: "error"},
		FootballData: config.FootballDataConfig{
			BaseURL:         "https://api.football-data.org/v4/",
			APIToken:        "", // unusable for ingestion
			Competitions:    []string{"PL"},
			RequestsPerSec:  1,
			MaxAttempts:     3,
			CooldownSeconds: 60,
			TimeoutSeconds:  30,
		},
		Model: config.ModelConfig{GoalThreshold: 2, MaxGoals: 10, LookAheadDays: 3, LookBackDays: 1},
		Picks: config.PicksConfig{TopN: 3, RateThreshold: 0.70, ConfidenceThreshold: 0.70},
		Storage: config.StorageConfig{
			Backend:         "csv",
			PredictionsPath: filepath.Join(t.TempDir(), "predictions.csv"),
		},
		Schedule: config.ScheduleConfig{IngestCron: "0 0 * * *"},
		Metrics:  config.MetricsConfig{Enabled: false, Port: 9090, Path: "/metrics"},
	}

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	store := storage.NewCSVStore(cfg.Storage.PredictionsPath)
	pipeline := service.NewIngestionPipeline(cfg, footballdata.NewClient(&cfg.FootballData, log), store, log)

	err := runOnce(context.Background(), pipeline, log)
	require.Error(t, err)
}
