package analysis

import (
	"errors"
	"fmt"

	"github.com/yourusername/super-predictor/internal/models"
)

// ErrNoHistory means a team has no resolved matches in the requested
// role, so no goal expectancy can be derived. The scoreline model must
// not be invoked with such an input.
var ErrNoHistory = errors.New("no historical matches for team")

// ExpectedGoals estimates a team's goal expectancy for the scoreline
// model: the mean of goals the team scored in the given role (home or
// away) across its resolved history. Unresolved matches are skipped.
func ExpectedGoals(matches []models.HistoricalMatch, team string, home bool) (float64, error) {
	var goals, played int
	for i := range matches {
		m := &matches[i]
		if !m.HasResult() {
			continue
		}
		switch {
		case home && m.HomeTeam == team:
			goals += *m.HomeGoals
			played++
		case !home && m.AwayTeam == team:
			goals += *m.AwayGoals
			played++
		}
	}

	if played == 0 {
		role := "away"
		if home {
			role = "home"
		}
		return 0, fmt.Errorf("%s (%s): %w", team, role, ErrNoHistory)
	}
	return float64(goals) / float64(played), nil
}

// RecentForm returns the last n resolved or unresolved matches
// involving a team, in input order.
func RecentForm(matches []models.HistoricalMatch, team string, n int) []models.HistoricalMatch {
	var involved []models.HistoricalMatch
	for i := range matches {
		if matches[i].Involves(team) {
			involved = append(involved, matches[i])
		}
	}
	if len(involved) > n {
		involved = involved[len(involved)-n:]
	}
	return involved
}
