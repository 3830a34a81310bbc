package logger

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger() (*logrus.Logger, *bytes.Buffer) {
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.DebugLevel)
	return log, buf
}

func parseLogOutput(buf *bytes.Buffer) map[string]interface{} {
	var logEntry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &logEntry)
	if err != nil {
		return nil
	}
	return logEntry
}

func TestNewLoggerLevels(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, NewLogger("debug").GetLevel())
	assert.Equal(t, logrus.WarnLevel, NewLogger("warn").GetLevel())
	assert.Equal(t, logrus.InfoLevel, NewLogger("nonsense").GetLevel(), "invalid level falls back to info")
}

func TestIngestionLoggerCompetitionProcessed(t *testing.T) {
	log, buf := setupTestLogger()
	ilog := NewIngestionLogger(log, "run-123")

	ilog.LogCompetitionProcessed("PL", 380, 10, 4, 250.0)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "ingestion", logEntry["component"])
	assert.Equal(t, "run-123", logEntry["run_id"])
	assert.Equal(t, "PL", logEntry["competition"])
	assert.Equal(t, float64(380), logEntry["historical"])
	assert.Equal(t, float64(10), logEntry["fixtures"])
}

func TestIngestionLoggerCompetitionSkipped(t *testing.T) {
	log, buf := setupTestLogger()
	ilog := NewIngestionLogger(log, "run-123")

	ilog.LogCompetitionSkipped("BL1", "history fetch: no usable data from provider")

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "warning", logEntry["level"])
	assert.Equal(t, "BL1", logEntry["competition"])
}

func TestIngestionLoggerRunComplete(t *testing.T) {
	log, buf := setupTestLogger()
	ilog := NewIngestionLogger(log, "run-123")

	ilog.LogRunComplete(57, 2, 3*time.Second)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, float64(57), logEntry["records"])
	assert.Equal(t, float64(2), logEntry["duplicates"])
	assert.Equal(t, "3s", logEntry["duration"])
}
