package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/super-predictor/internal/database"
	"github.com/yourusername/super-predictor/internal/models"
)

const predictionsSchema = `
CREATE TABLE IF NOT EXISTS predictions (
	match_date     DATE NOT NULL,
	league         TEXT NOT NULL,
	home_team      TEXT NOT NULL,
	away_team      TEXT NOT NULL,
	kickoff        TEXT NOT NULL,
	over_rate_home DOUBLE PRECISION NOT NULL,
	over_rate_away DOUBLE PRECISION NOT NULL,
	confidence     DOUBLE PRECISION NOT NULL,
	home_score     INTEGER,
	away_score     INTEGER,
	PRIMARY KEY (match_date, home_team, away_team)
)`

// PostgresStore persists the prediction snapshot in a single table. The
// whole-table replace happens inside one transaction, which gives the
// same reader guarantee as the CSV rename: old snapshot or new, never a
// mix.
type PostgresStore struct {
	db *database.DB
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore creates a store and ensures the schema exists.
func NewPostgresStore(ctx context.Context, db *database.DB) (*PostgresStore, error) {
	if _, err := db.Pool().Exec(ctx, predictionsSchema); err != nil {
		return nil, fmt.Errorf("postgres: ensure schema: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// SaveSnapshot replaces the table contents with the new dataset in one
// transaction.
func (s *PostgresStore) SaveSnapshot(ctx context.Context, records []models.PredictionRecord) error {
	tx, err := s.db.Pool().Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM predictions`); err != nil {
		return fmt.Errorf("postgres: clear snapshot: %w", err)
	}

	batch := &pgx.Batch{}
	for i := range records {
		r := &records[i]
		batch.Queue(
			`INSERT INTO predictions
			 (match_date, league, home_team, away_team, kickoff,
			  over_rate_home, over_rate_away, confidence, home_score, away_score)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
			r.Date, r.League, r.HomeTeam, r.AwayTeam, r.Kickoff,
			r.OverRateHome, r.OverRateAway, r.Confidence, r.HomeScore, r.AwayScore,
		)
	}

	br := tx.SendBatch(ctx, batch)
	for range records {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("postgres: insert record: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("postgres: close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

// LoadAll returns the snapshot ordered by date and kickoff.
func (s *PostgresStore) LoadAll(ctx context.Context) ([]models.PredictionRecord, error) {
	rows, err := s.db.Pool().Query(ctx,
		`SELECT match_date, league, home_team, away_team, kickoff,
		        over_rate_home, over_rate_away, confidence, home_score, away_score
		 FROM predictions
		 ORDER BY match_date, kickoff, home_team`)
	if err != nil {
		return nil, fmt.Errorf("postgres: query snapshot: %w", err)
	}
	defer rows.Close()

	var records []models.PredictionRecord
	for rows.Next() {
		var r models.PredictionRecord
		if err := rows.Scan(
			&r.Date, &r.League, &r.HomeTeam, &r.AwayTeam, &r.Kickoff,
			&r.OverRateHome, &r.OverRateAway, &r.Confidence, &r.HomeScore, &r.AwayScore,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
