package storage

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/super-predictor/internal/models"
)

func testRecords() []models.PredictionRecord {
	home, away := 2, 1
	return []models.PredictionRecord{
		{
			Date:         time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC),
			League:       "Premier League",
			HomeTeam:     "Arsenal",
			AwayTeam:     "Chelsea",
			Kickoff:      "15:00",
			OverRateHome: 0.75,
			OverRateAway: 0.7,
			Confidence:   0.73,
		},
		{
			Date:         time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC),
			League:       "Bundesliga",
			HomeTeam:     "Bayern",
			AwayTeam:     "Dortmund",
			Kickoff:      "18:30",
			OverRateHome: 0.9,
			OverRateAway: 0.85,
			Confidence:   0,
			HomeScore:    &home,
			AwayScore:    &away,
		},
	}
}

func TestCSVStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "predictions.csv")
	store := NewCSVStore(path)
	ctx := context.Background()

	require.NoError(t, store.SaveSnapshot(ctx, testRecords()))

	loaded, err := store.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	assert.Equal(t, "Arsenal", loaded[0].HomeTeam)
	assert.Equal(t, 0.75, loaded[0].OverRateHome)
	assert.Nil(t, loaded[0].HomeScore)

	require.NotNil(t, loaded[1].HomeScore)
	assert.Equal(t, 2, *loaded[1].HomeScore)
	assert.Equal(t, "2026-08-28", loaded[1].Date.Format(models.DateLayout))
}

func TestCSVStoreWritesContractHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "predictions.csv")
	store := NewCSVStore(path)

	require.NoError(t, store.SaveSnapshot(context.Background(), nil))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	header, err := csv.NewReader(f).Read()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Date", "League", "HomeTeam", "AwayTeam", "Time",
		"Over15_Rate_Home", "Over15_Rate_Away", "Model_Prob",
		"HomeScore", "AwayScore",
	}, header)
}

func TestCSVStoreReplacesPreviousSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "predictions.csv")
	store := NewCSVStore(path)
	ctx := context.Background()

	require.NoError(t, store.SaveSnapshot(ctx, testRecords()))
	require.NoError(t, store.SaveSnapshot(ctx, testRecords()[:1]))

	loaded, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded, 1, "second save must fully replace the first")

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files may remain after a save")
}

func TestCSVStoreLoadMissingFile(t *testing.T) {
	store := NewCSVStore(filepath.Join(t.TempDir(), "nope.csv"))

	loaded, err := store.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestCSVStoreCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "predictions.csv")
	store := NewCSVStore(path)

	require.NoError(t, store.SaveSnapshot(context.Background(), testRecords()))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}
