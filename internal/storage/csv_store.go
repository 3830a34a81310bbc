package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/yourusername/super-predictor/internal/models"
)

// snapshotHeader is the column contract with the display layer. Order
// and names must not change without coordinating with consumers.
var snapshotHeader = []string{
	"Date", "League", "HomeTeam", "AwayTeam", "Time",
	"Over15_Rate_Home", "Over15_Rate_Away", "Model_Prob",
	"HomeScore", "AwayScore",
}

// CSVStore persists the prediction snapshot as a single CSV file.
type CSVStore struct {
	path string
}

var _ Store = (*CSVStore)(nil)

// NewCSVStore creates a store writing to the given path. Intermediate
// directories are created automatically.
func NewCSVStore(path string) *CSVStore {
	return &CSVStore{path: path}
}

// SaveSnapshot writes the full dataset to a temporary file in the
// target directory and renames it over the previous snapshot. The
// rename is what makes the replace atomic; writing the temp file next
// to the target keeps both on one filesystem so the rename cannot
// degrade into a copy.
func (s *CSVStore) SaveSnapshot(ctx context.Context, records []models.PredictionRecord) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("csv: create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("csv: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	w := csv.NewWriter(tmp)
	if err := w.Write(snapshotHeader); err != nil {
		tmp.Close()
		return fmt.Errorf("csv: write header: %w", err)
	}

	for i := range records {
		if err := ctx.Err(); err != nil {
			tmp.Close()
			return err
		}
		if err := w.Write(recordToRow(&records[i])); err != nil {
			tmp.Close()
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("csv: flush: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("csv: close temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("csv: replace snapshot: %w", err)
	}
	return nil
}

// LoadAll reads the current snapshot. A missing file is an empty
// dataset, not an error: the first ingestion run has not happened yet.
func (s *CSVStore) LoadAll(ctx context.Context) ([]models.PredictionRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("csv: open snapshot: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: read snapshot: %w", err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}

	records := make([]models.PredictionRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec, err := rowToRecord(row)
		if err != nil {
			return nil, fmt.Errorf("csv: parse row: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func recordToRow(r *models.PredictionRecord) []string {
	return []string{
		r.Date.Format(models.DateLayout),
		r.League,
		r.HomeTeam,
		r.AwayTeam,
		r.Kickoff,
		strconv.FormatFloat(r.OverRateHome, 'f', 2, 64),
		strconv.FormatFloat(r.OverRateAway, 'f', 2, 64),
		strconv.FormatFloat(r.Confidence, 'f', 2, 64),
		scoreToField(r.HomeScore),
		scoreToField(r.AwayScore),
	}
}

func rowToRecord(row []string) (models.PredictionRecord, error) {
	if len(row) != len(snapshotHeader) {
		return models.PredictionRecord{}, fmt.Errorf("expected %d columns, got %d", len(snapshotHeader), len(row))
	}

	date, err := time.Parse(models.DateLayout, row[0])
	if err != nil {
		return models.PredictionRecord{}, fmt.Errorf("bad date %q: %w", row[0], err)
	}

	rateHome, err := strconv.ParseFloat(row[5], 64)
	if err != nil {
		return models.PredictionRecord{}, fmt.Errorf("bad home rate %q: %w", row[5], err)
	}
	rateAway, err := strconv.ParseFloat(row[6], 64)
	if err != nil {
		return models.PredictionRecord{}, fmt.Errorf("bad away rate %q: %w", row[6], err)
	}
	confidence, err := strconv.ParseFloat(row[7], 64)
	if err != nil {
		return models.PredictionRecord{}, fmt.Errorf("bad confidence %q: %w", row[7], err)
	}

	homeScore, err := fieldToScore(row[8])
	if err != nil {
		return models.PredictionRecord{}, fmt.Errorf("bad home score %q: %w", row[8], err)
	}
	awayScore, err := fieldToScore(row[9])
	if err != nil {
		return models.PredictionRecord{}, fmt.Errorf("bad away score %q: %w", row[9], err)
	}

	return models.PredictionRecord{
		Date:         date,
		League:       row[1],
		HomeTeam:     row[2],
		AwayTeam:     row[3],
		Kickoff:      row[4],
		OverRateHome: rateHome,
		OverRateAway: rateAway,
		Confidence:   confidence,
		HomeScore:    homeScore,
		AwayScore:    awayScore,
	}, nil
}

func scoreToField(score *int) string {
	if score == nil {
		return ""
	}
	return strconv.Itoa(*score)
}

func fieldToScore(field string) (*int, error) {
	if field == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(field)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
