package analysis

import (
	"errors"
	"math"
	"testing"
)

func TestOutcomeProbabilitiesReferenceValues(t *testing.T) {
	out, err := OutcomeProbabilities(1.4, 1.1, DefaultMaxGoals)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(out.HomeWin-0.438040) > 1e-3 {
		t.Errorf("home win = %f, want ~0.438", out.HomeWin)
	}
	if math.Abs(out.Draw-0.266345) > 1e-3 {
		t.Errorf("draw = %f, want ~0.266", out.Draw)
	}
	if math.Abs(out.AwayWin-0.295612) > 1e-3 {
		t.Errorf("away win = %f, want ~0.296", out.AwayWin)
	}
}

func TestOutcomeProbabilitiesSumNearOne(t *testing.T) {
	for _, xg := range []struct{ home, away float64 }{
		{0, 0},
		{0.5, 0.5},
		{1.4, 1.1},
		{2.7, 1.9},
		{3.5, 3.5},
	} {
		out, err := OutcomeProbabilities(xg.home, xg.away, DefaultMaxGoals)
		if err != nil {
			t.Fatalf("unexpected error for (%f, %f): %v", xg.home, xg.away, err)
		}
		sum := out.HomeWin + out.Draw + out.AwayWin
		if sum > 1.0 || sum < 0.99 {
			t.Errorf("sum for (%f, %f) = %f, want (0.99, 1.0]", xg.home, xg.away, sum)
		}
	}
}

func TestOutcomeProbabilitiesSymmetric(t *testing.T) {
	out, err := OutcomeProbabilities(1.5, 1.5, DefaultMaxGoals)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(out.HomeWin-out.AwayWin) > 1e-12 {
		t.Errorf("equal expectancies should give equal win probabilities: %f vs %f", out.HomeWin, out.AwayWin)
	}
}

func TestOutcomeProbabilitiesZeroExpectancy(t *testing.T) {
	out, err := OutcomeProbabilities(0, 0, DefaultMaxGoals)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(out.Draw-1.0) > 1e-12 {
		t.Errorf("zero expectancies should make 0-0 certain, draw = %f", out.Draw)
	}
}

func TestOutcomeProbabilitiesRejectsBadInput(t *testing.T) {
	if _, err := OutcomeProbabilities(-1, 1, DefaultMaxGoals); !errors.Is(err, ErrInvalidExpectedGoals) {
		t.Errorf("negative home expectancy: got %v, want ErrInvalidExpectedGoals", err)
	}
	if _, err := OutcomeProbabilities(1, math.NaN(), DefaultMaxGoals); !errors.Is(err, ErrInvalidExpectedGoals) {
		t.Errorf("NaN away expectancy: got %v, want ErrInvalidExpectedGoals", err)
	}
}

func TestOutcomeProbabilitiesDefaultsMaxGoals(t *testing.T) {
	explicit, err := OutcomeProbabilities(1.4, 1.1, DefaultMaxGoals)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defaulted, err := OutcomeProbabilities(1.4, 1.1, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if explicit != defaulted {
		t.Errorf("zero maxGoals should fall back to the default grid")
	}
}
