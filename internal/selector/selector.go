// Package selector ranks prediction records into a bounded shortlist of
// high-confidence picks.
package selector

import (
	"sort"

	"github.com/yourusername/super-predictor/internal/models"
)

// Default pick criteria.
const (
	DefaultTopN                = 3
	DefaultRateThreshold       = 0.70
	DefaultConfidenceThreshold = 0.70
)

// Selector filters and ranks candidate records. Thresholds are fixed at
// construction so a selector is safe to share.
type Selector struct {
	topN          int
	rateThreshold float64
	confThreshold float64
}

// New creates a selector, substituting defaults for zero values.
func New(topN int, rateThreshold, confThreshold float64) *Selector {
	if topN <= 0 {
		topN = DefaultTopN
	}
	if rateThreshold <= 0 {
		rateThreshold = DefaultRateThreshold
	}
	if confThreshold <= 0 {
		confThreshold = DefaultConfidenceThreshold
	}
	return &Selector{
		topN:          topN,
		rateThreshold: rateThreshold,
		confThreshold: confThreshold,
	}
}

// TopPicks retains records where both team rates meet the rate
// threshold and the confidence meets the confidence threshold, sorts by
// confidence descending (stable, so ties keep input order and the
// selection is reproducible), and truncates to the configured N. An
// empty result is the normal outcome on a quiet day, not an error.
func (s *Selector) TopPicks(records []models.PredictionRecord) []models.PredictionRecord {
	var picks []models.PredictionRecord
	for _, r := range records {
		if r.MeetsThresholds(s.rateThreshold, s.confThreshold) {
			picks = append(picks, r)
		}
	}

	sort.SliceStable(picks, func(i, j int) bool {
		return picks[i].Confidence > picks[j].Confidence
	})

	if len(picks) > s.topN {
		picks = picks[:s.topN]
	}
	return picks
}

// OnDate narrows records to a single calendar date. Used by the query
// side to build the daily picks and results views.
func OnDate(records []models.PredictionRecord, date string) []models.PredictionRecord {
	var out []models.PredictionRecord
	for _, r := range records {
		if r.Date.Format(models.DateLayout) == date {
			out = append(out, r)
		}
	}
	return out
}
