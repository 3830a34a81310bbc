package models

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date format used in the persisted snapshot
// and in dedup keys.
const DateLayout = "2006-01-02"

// PredictionRecord is one row of the persisted prediction snapshot. A
// record is either an upcoming fixture carrying model outputs, or a
// recently settled match carrying its final score and a zero confidence
// placeholder.
type PredictionRecord struct {
	Date         time.Time `db:"match_date" json:"date"`
	League       string    `db:"league" json:"league"`
	HomeTeam     string    `db:"home_team" json:"home_team"`
	AwayTeam     string    `db:"away_team" json:"away_team"`
	Kickoff      string    `db:"kickoff" json:"kickoff"` // HH:MM, UTC
	OverRateHome float64   `db:"over_rate_home" json:"over_rate_home" validate:"gte=0,lte=1"`
	OverRateAway float64   `db:"over_rate_away" json:"over_rate_away" validate:"gte=0,lte=1"`
	Confidence   float64   `db:"confidence" json:"confidence" validate:"gte=0,lte=1"`
	HomeScore    *int      `db:"home_score" json:"home_score"`
	AwayScore    *int      `db:"away_score" json:"away_score"`
}

// Key returns the dedup key. The snapshot holds at most one record per
// (date, home team, away team) tuple.
func (r *PredictionRecord) Key() string {
	return fmt.Sprintf("%s|%s|%s", r.Date.Format(DateLayout), r.HomeTeam, r.AwayTeam)
}

// IsSettled reports whether the record carries a final score.
func (r *PredictionRecord) IsSettled() bool {
	return r.HomeScore != nil && r.AwayScore != nil
}

// WentOver reports whether a settled match reached the total-goals
// threshold. Always false for unsettled records.
func (r *PredictionRecord) WentOver(threshold int) bool {
	return r.IsSettled() && *r.HomeScore+*r.AwayScore >= threshold
}

// MeetsThresholds checks the pick criteria: both team rates at or above
// rateMin and the combined confidence at or above confMin.
func (r *PredictionRecord) MeetsThresholds(rateMin, confMin float64) bool {
	return r.OverRateHome >= rateMin && r.OverRateAway >= rateMin && r.Confidence >= confMin
}
