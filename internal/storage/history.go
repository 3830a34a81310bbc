package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/yourusername/super-predictor/internal/models"
)

// LoadHistory reads a raw per-team match table in the
// football-data.co.uk layout (Date, HomeTeam, AwayTeam, FTHG, FTAG,
// possibly among other columns) and returns the matches in file order.
// This feeds the on-demand scoreline query; the caller owns any
// caching.
func LoadHistory(path string) ([]models.HistoricalMatch, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("history: open %q: %w", path, err)
	}
	defer f.Close()

	return ReadHistory(f)
}

// ReadHistory parses a raw history table from any reader.
func ReadHistory(r io.Reader) ([]models.HistoricalMatch, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // the upstream tables carry many extra columns

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("history: read header: %w", err)
	}

	idx := map[string]int{}
	for i, name := range header {
		idx[name] = i
	}
	maxIdx := 0
	for _, required := range []string{"HomeTeam", "AwayTeam", "FTHG", "FTAG"} {
		i, ok := idx[required]
		if !ok {
			return nil, fmt.Errorf("history: missing required column %q", required)
		}
		if i > maxIdx {
			maxIdx = i
		}
	}

	var matches []models.HistoricalMatch
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("history: read row: %w", err)
		}
		if len(row) <= maxIdx {
			// Truncated row, none of the required columns are safe.
			continue
		}

		m := models.HistoricalMatch{
			HomeTeam: row[idx["HomeTeam"]],
			AwayTeam: row[idx["AwayTeam"]],
		}
		if g, err := strconv.Atoi(row[idx["FTHG"]]); err == nil {
			m.HomeGoals = &g
		}
		if g, err := strconv.Atoi(row[idx["FTAG"]]); err == nil {
			m.AwayGoals = &g
		}
		matches = append(matches, m)
	}
	return matches, nil
}

// TeamNames returns the distinct home-team names in first-seen order,
// for listing selectable teams on the query side.
func TeamNames(matches []models.HistoricalMatch) []string {
	seen := map[string]bool{}
	var names []string
	for i := range matches {
		if name := matches[i].HomeTeam; name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}
