package analysis

import (
	"errors"
	"fmt"
	"math"
)

// DefaultMaxGoals truncates the joint scoreline distribution. Ten goals
// a side captures effectively all probability mass for realistic
// expected-goal values while keeping the grid cheap.
const DefaultMaxGoals = 10

// ErrInvalidExpectedGoals rejects expected-goals inputs the Poisson
// model cannot use. Callers deriving expectancies from history must
// check for an empty sample before invoking the model.
var ErrInvalidExpectedGoals = errors.New("expected goals must be a non-negative number")

// Outcome holds the three match-outcome probabilities. The values sum
// to 1 within the truncation tolerance, not exactly, because mass
// beyond maxGoals per side is discarded.
type Outcome struct {
	HomeWin float64
	Draw    float64
	AwayWin float64
}

// OutcomeProbabilities reduces the joint distribution of two
// independent Poisson goal counts to win/draw/loss probabilities. For
// every scoreline (i, j) with i, j < maxGoals the joint mass is the
// product of the marginal Poisson pmf values; it accumulates into the
// home-win, draw or away-win bucket by comparing i and j.
func OutcomeProbabilities(homeXG, awayXG float64, maxGoals int) (Outcome, error) {
	if math.IsNaN(homeXG) || homeXG < 0 {
		return Outcome{}, fmt.Errorf("home: %w", ErrInvalidExpectedGoals)
	}
	if math.IsNaN(awayXG) || awayXG < 0 {
		return Outcome{}, fmt.Errorf("away: %w", ErrInvalidExpectedGoals)
	}
	if maxGoals <= 0 {
		maxGoals = DefaultMaxGoals
	}

	homePMF := poissonPMFs(homeXG, maxGoals)
	awayPMF := poissonPMFs(awayXG, maxGoals)

	var out Outcome
	for i := 0; i < maxGoals; i++ {
		for j := 0; j < maxGoals; j++ {
			p := homePMF[i] * awayPMF[j]
			switch {
			case i > j:
				out.HomeWin += p
			case i == j:
				out.Draw += p
			default:
				out.AwayWin += p
			}
		}
	}

	return out, nil
}

// poissonPMFs returns the Poisson probability mass at 0..maxGoals-1 for
// mean lambda, computed iteratively: pmf(0) = e^-lambda and
// pmf(k) = pmf(k-1) * lambda / k. This avoids factorial overflow for
// large goal counts.
func poissonPMFs(lambda float64, maxGoals int) []float64 {
	pmf := make([]float64, maxGoals)
	pmf[0] = math.Exp(-lambda)
	for k := 1; k < maxGoals; k++ {
		pmf[k] = pmf[k-1] * lambda / float64(k)
	}
	return pmf
}
