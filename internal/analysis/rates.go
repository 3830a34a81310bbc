// Package analysis implements the analytical engine: empirical
// over-threshold rates, the confidence combination rule, and the
// independent-Poisson scoreline model.
package analysis

import "github.com/yourusername/super-predictor/internal/models"

// NeutralRate is returned when a team has no resolved history. It is a
// deliberate "no information" fallback, not an estimate from zero
// samples.
const NeutralRate = 0.5

// OverRate returns the fraction of a team's matches whose combined
// full-time score reached threshold goals, rounded to two decimals.
// Matches without a full-time score are treated as unresolved and
// excluded from both numerator and denominator. An empty subset yields
// NeutralRate.
func OverRate(matches []models.HistoricalMatch, team string, threshold int) float64 {
	var played, over int
	for i := range matches {
		m := &matches[i]
		if !m.Involves(team) || !m.HasResult() {
			continue
		}
		played++
		if m.TotalGoals() >= threshold {
			over++
		}
	}

	if played == 0 {
		return NeutralRate
	}
	return Round2(float64(over) / float64(played))
}

// CombineConfidence folds the two team rates into a single match
// confidence: the arithmetic mean, rounded to two decimals. This is the
// only place the weighting rule lives; change it here and both the
// ingestion path and any later inspection agree.
func CombineConfidence(rateHome, rateAway float64) float64 {
	return Round2((rateHome + rateAway) / 2)
}
