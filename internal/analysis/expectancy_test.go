package analysis

import (
	"errors"
	"testing"

	"github.com/yourusername/super-predictor/internal/models"
)

func TestExpectedGoalsRoleSpecific(t *testing.T) {
	matches := []models.HistoricalMatch{
		match("Arsenal", "Chelsea", 3, 1),
		match("Arsenal", "Spurs", 1, 0),
		match("Everton", "Arsenal", 0, 2), // away match, must not count for home role
	}

	homeXG, err := ExpectedGoals(matches, "Arsenal", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if homeXG != 2.0 {
		t.Errorf("home expectancy = %v, want 2.0", homeXG)
	}

	awayXG, err := ExpectedGoals(matches, "Arsenal", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if awayXG != 2.0 {
		t.Errorf("away expectancy = %v, want 2.0", awayXG)
	}
}

func TestExpectedGoalsNoHistory(t *testing.T) {
	matches := []models.HistoricalMatch{
		match("Arsenal", "Chelsea", 3, 1),
	}

	_, err := ExpectedGoals(matches, "Chelsea", true)
	if !errors.Is(err, ErrNoHistory) {
		t.Errorf("got %v, want ErrNoHistory", err)
	}
}

func TestExpectedGoalsSkipsUnresolved(t *testing.T) {
	matches := []models.HistoricalMatch{
		match("Arsenal", "Chelsea", 4, 0),
		{HomeTeam: "Arsenal", AwayTeam: "Spurs"},
	}

	xg, err := ExpectedGoals(matches, "Arsenal", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if xg != 4.0 {
		t.Errorf("expectancy = %v, want 4.0", xg)
	}
}

func TestRecentFormReturnsLastN(t *testing.T) {
	matches := []models.HistoricalMatch{
		match("Arsenal", "A", 1, 0),
		match("B", "Arsenal", 0, 0),
		match("Arsenal", "C", 2, 2),
		match("D", "E", 1, 1), // not involved
		match("Arsenal", "F", 3, 1),
	}

	recent := RecentForm(matches, "Arsenal", 2)
	if len(recent) != 2 {
		t.Fatalf("got %d matches, want 2", len(recent))
	}
	if recent[0].AwayTeam != "C" || recent[1].AwayTeam != "F" {
		t.Errorf("wrong matches selected: %+v", recent)
	}
}
