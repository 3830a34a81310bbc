// Package logger provides ingestion-specific logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// IngestionLogger provides dedicated logging for ingestion runs.
type IngestionLogger struct {
	*logrus.Entry
}

// NewIngestionLogger creates a new ingestion logger.
func NewIngestionLogger(baseLogger *logrus.Logger, runID string) *IngestionLogger {
	return &IngestionLogger{
		Entry: baseLogger.WithFields(logrus.Fields{
			"component": "ingestion",
			"run_id":    runID,
		}),
	}
}

// LogCompetitionProcessed logs the outcome of one competition.
func (il *IngestionLogger) LogCompetitionProcessed(competition string, historical, fixtures, results int, durationMs float64) {
	il.WithFields(logrus.Fields{
		"competition":     competition,
		"historical":      historical,
		"fixtures":        fixtures,
		"recent_results":  results,
		"fetch_duration_ms": durationMs,
	}).Info("Competition processed")
}

// LogCompetitionSkipped logs a competition that yielded no records.
func (il *IngestionLogger) LogCompetitionSkipped(competition string, reason string) {
	il.WithFields(logrus.Fields{
		"competition": competition,
		"reason":      reason,
	}).Warn("Competition skipped")
}

// LogRunComplete logs a finished ingestion run.
func (il *IngestionLogger) LogRunComplete(total, duplicates int, duration time.Duration) {
	il.WithFields(logrus.Fields{
		"records":    total,
		"duplicates": duplicates,
		"duration":   duration.String(),
	}).Info("Ingestion run complete")
}
