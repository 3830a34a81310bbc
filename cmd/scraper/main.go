// Package main provides the entry point for the ingestion service. It
// runs one ingestion pass by default; with -daemon it keeps running and
// refreshes the snapshot on the configured cron schedule.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/super-predictor/internal/config"
	"github.com/yourusername/super-predictor/internal/database"
	"github.com/yourusername/super-predictor/internal/footballdata"
	"github.com/yourusername/super-predictor/internal/health"
	"github.com/yourusername/super-predictor/internal/logger"
	"github.com/yourusername/super-predictor/internal/metrics"
	"github.com/yourusername/super-predictor/internal/scheduler"
	"github.com/yourusername/super-predictor/internal/service"
	"github.com/yourusername/super-predictor/internal/storage"
	"github.com/yourusername/super-predictor/internal/tracing"
)

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "Path to config file")
		daemon     = flag.Bool("daemon", false, "Keep running and refresh on the configured cron schedule")
	)
	flag.Parse()

	cfg := loadConfigWithSecrets(*configPath)

	appLog := logger.NewLogger(cfg.App.LogLevel)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"log_level":   cfg.App.LogLevel,
		"daemon":      *daemon,
	}).Info("Super Predictor scraper starting")

	if err := config.ValidateIngestion(cfg); err != nil {
		appLog.WithError(err).Fatal("Configuration not usable for ingestion")
	}

	if err := tracing.Initialize(tracing.Config{
		ServiceName: cfg.App.Name,
		Enabled:     os.Getenv("AWS_XRAY_ENABLED") == "true",
		DaemonAddr:  os.Getenv("AWS_XRAY_DAEMON_ADDR"),
	}, appLog); err != nil {
		appLog.WithError(err).Fatal("Failed to initialize tracing")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, pinger, cleanup := buildStore(ctx, cfg, appLog)
	defer cleanup()

	pipeline := service.NewIngestionPipeline(cfg, buildFetcher(cfg, appLog), store, appLog)

	if !*daemon {
		if err := runOnce(ctx, pipeline, appLog); err != nil {
			appLog.WithError(err).Fatal("Ingestion run failed")
		}
		return
	}

	runDaemon(ctx, cancel, cfg, pipeline, pinger, appLog)
}

func loadConfigWithSecrets(path string) *config.Config {
	cfg, err := config.Load(path)
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			logrus.Fatalf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			logrus.Fatalf("Failed to load secrets: %v", err)
		}
	}
	if err := config.Validate(cfg); err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

func buildFetcher(cfg *config.Config, appLog *logrus.Logger) footballdata.Fetcher {
	client := footballdata.NewClient(&cfg.FootballData, appLog)
	if cfg.FootballData.CacheTTLMinutes > 0 {
		ttl := time.Duration(cfg.FootballData.CacheTTLMinutes) * time.Minute
		return footballdata.NewCachedClient(client, ttl, appLog)
	}
	return client
}

// buildStore selects the snapshot backend. The returned pinger is nil
// for the CSV backend.
func buildStore(ctx context.Context, cfg *config.Config, appLog *logrus.Logger) (storage.Store, health.DatabasePinger, func()) {
	switch cfg.Storage.Backend {
	case "postgres":
		db, err := database.New(ctx, &cfg.Database)
		if err != nil {
			appLog.WithError(err).Fatal("Failed to connect to database")
		}
		store, err := storage.NewPostgresStore(ctx, db)
		if err != nil {
			appLog.WithError(err).Fatal("Failed to prepare snapshot schema")
		}
		appLog.Info("Database connection established")
		return store, db, db.Close
	default:
		return storage.NewCSVStore(cfg.Storage.PredictionsPath), nil, func() {}
	}
}

func runOnce(ctx context.Context, pipeline *service.IngestionPipeline, appLog *logrus.Logger) error {
	ctx, closeSegment := tracing.Segment(ctx, "ingestion")
	runMetrics, err := pipeline.Run(ctx)
	closeSegment(err)
	if err != nil {
		return err
	}
	appLog.WithField("metrics", runMetrics.String()).Info("Ingestion run completed")
	return nil
}

func runDaemon(ctx context.Context, cancel context.CancelFunc, cfg *config.Config, pipeline *service.IngestionPipeline, pinger health.DatabasePinger, appLog *logrus.Logger) {
	metrics.InitRegistry()

	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		metricsHandler = metrics.Handler()
	}

	healthServer := health.NewServer(health.Config{
		ServiceName: cfg.App.Name,
		Port:        portString(cfg.Metrics.Port),
		Logger:      appLog,
		DB:          pinger,
		Metrics:     metricsHandler,
		MetricsPath: cfg.Metrics.Path,
	})
	if err := healthServer.Start(ctx); err != nil {
		appLog.WithError(err).Fatal("Failed to start health server")
	}

	sched := scheduler.NewScheduler(pipeline, appLog)
	if err := sched.ScheduleIngestion(cfg.Schedule.IngestCron); err != nil {
		appLog.WithError(err).Fatal("Failed to schedule ingestion")
	}
	if err := sched.Start(); err != nil {
		appLog.WithError(err).Fatal("Failed to start scheduler")
	}

	// Refresh immediately so the snapshot is never stale until the
	// first scheduled run. A failure here is not fatal; the schedule
	// retries.
	if err := runOnce(ctx, pipeline, appLog); err != nil {
		appLog.WithError(err).Error("Initial ingestion run failed")
	}
	healthServer.SetReady(true)

	appLog.WithField("next_run", sched.GetNextRun().Format(time.RFC3339)).Info("Scraper daemon running")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	appLog.WithField("signal", sig.String()).Info("Shutdown signal received")

	cancel()
	if err := sched.Stop(); err != nil {
		appLog.WithError(err).Error("Error stopping scheduler")
	}
	appLog.Info("Scraper daemon shut down")
}

func portString(port int) string {
	if port <= 0 {
		return ""
	}
	return strconv.Itoa(port)
}
