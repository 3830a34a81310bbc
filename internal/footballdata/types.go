package footballdata

import (
	"time"

	"github.com/yourusername/super-predictor/internal/models"
)

// Match statuses used in provider queries.
const (
	StatusFinished  = "FINISHED"
	StatusScheduled = "SCHEDULED"
)

// Match is a normalized provider match, covering both finished matches
// and scheduled fixtures. Goal counts stay nil until the provider has a
// full-time score.
type Match struct {
	Competition string    `json:"competition"`
	League      string    `json:"league"`
	HomeTeam    string    `json:"home_team"`
	AwayTeam    string    `json:"away_team"`
	KickoffUTC  time.Time `json:"kickoff_utc"`
	Status      string    `json:"status"`
	HomeGoals   *int      `json:"home_goals"`
	AwayGoals   *int      `json:"away_goals"`
}

// ToHistorical projects the match onto the fields the rate aggregator
// consumes.
func (m *Match) ToHistorical() models.HistoricalMatch {
	return models.HistoricalMatch{
		Competition: m.Competition,
		HomeTeam:    m.HomeTeam,
		AwayTeam:    m.AwayTeam,
		HomeGoals:   m.HomeGoals,
		AwayGoals:   m.AwayGoals,
	}
}

// ToFixture projects a scheduled match onto the fixture model.
func (m *Match) ToFixture() models.Fixture {
	return models.Fixture{
		Competition: m.Competition,
		League:      m.League,
		HomeTeam:    m.HomeTeam,
		AwayTeam:    m.AwayTeam,
		KickoffUTC:  m.KickoffUTC,
	}
}

// matchesResponse mirrors the football-data.org v4 matches payload.
type matchesResponse struct {
	Matches []apiMatch `json:"matches"`
}

type apiMatch struct {
	UTCDate     time.Time `json:"utcDate"`
	Status      string    `json:"status"`
	Competition struct {
		Code string `json:"code"`
		Name string `json:"name"`
	} `json:"competition"`
	HomeTeam struct {
		Name string `json:"name"`
	} `json:"homeTeam"`
	AwayTeam struct {
		Name string `json:"name"`
	} `json:"awayTeam"`
	Score struct {
		FullTime struct {
			Home *int `json:"home"`
			Away *int `json:"away"`
		} `json:"fullTime"`
	} `json:"score"`
}

func (m *apiMatch) normalize(competitionCode string) Match {
	return Match{
		Competition: competitionCode,
		League:      m.Competition.Name,
		HomeTeam:    m.HomeTeam.Name,
		AwayTeam:    m.AwayTeam.Name,
		KickoffUTC:  m.UTCDate,
		Status:      m.Status,
		HomeGoals:   m.Score.FullTime.Home,
		AwayGoals:   m.Score.FullTime.Away,
	}
}
