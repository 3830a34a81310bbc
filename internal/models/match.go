package models

import "time"

// HistoricalMatch is a finished (or abandoned) match as reported by the
// provider. Goal counts are nil until the provider has a full-time score,
// so a match can appear in the FINISHED feed without contributing to
// threshold statistics yet.
type HistoricalMatch struct {
	Competition string `json:"competition"`
	HomeTeam    string `json:"home_team"`
	AwayTeam    string `json:"away_team"`
	HomeGoals   *int   `json:"home_goals"`
	AwayGoals   *int   `json:"away_goals"`
}

// HasResult reports whether both full-time goal counts are present.
func (m *HistoricalMatch) HasResult() bool {
	return m.HomeGoals != nil && m.AwayGoals != nil
}

// TotalGoals returns the combined full-time score. Only valid when
// HasResult is true.
func (m *HistoricalMatch) TotalGoals() int {
	return *m.HomeGoals + *m.AwayGoals
}

// Involves reports whether the named team played on either side.
func (m *HistoricalMatch) Involves(team string) bool {
	return m.HomeTeam == team || m.AwayTeam == team
}

// Fixture is a scheduled, not-yet-played match.
type Fixture struct {
	Competition string    `json:"competition"`
	League      string    `json:"league"`
	HomeTeam    string    `json:"home_team"`
	AwayTeam    string    `json:"away_team"`
	KickoffUTC  time.Time `json:"kickoff_utc"`
}
