// Package storage persists the prediction snapshot and reads the raw
// per-team history table.
package storage

import (
	"context"

	"github.com/yourusername/super-predictor/internal/models"
)

// Store persists the prediction dataset as a whole-snapshot replace.
// There is no partial update: every ingestion run supplies the complete
// new dataset and the previous one disappears.
type Store interface {
	// SaveSnapshot atomically replaces the persisted dataset. A reader
	// observes either the previous snapshot or the new one, never a
	// partial write.
	SaveSnapshot(ctx context.Context, records []models.PredictionRecord) error

	// LoadAll returns the current snapshot in persisted order.
	LoadAll(ctx context.Context) ([]models.PredictionRecord, error)
}
