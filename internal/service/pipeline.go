// Package service wires the provider client, the analytical engine and
// the snapshot store into the ingestion pipeline.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/super-predictor/internal/analysis"
	"github.com/yourusername/super-predictor/internal/config"
	"github.com/yourusername/super-predictor/internal/footballdata"
	"github.com/yourusername/super-predictor/internal/logger"
	"github.com/yourusername/super-predictor/internal/metrics"
	"github.com/yourusername/super-predictor/internal/models"
	"github.com/yourusername/super-predictor/internal/storage"
)

// kickoffLayout is the wall-clock portion of a record, UTC.
const kickoffLayout = "15:04"

// IngestionPipeline produces the prediction snapshot: per competition it
// fetches the finished-match history, the recently finished results and
// the upcoming fixtures, scores the fixtures, dedups across
// competitions and writes the whole dataset in one atomic replace.
type IngestionPipeline struct {
	cfg        *config.Config
	fetcher    footballdata.Fetcher
	store      storage.Store
	log        *logrus.Logger
	runMetrics *RunMetrics
	now        func() time.Time
}

// NewIngestionPipeline creates a pipeline from its collaborators.
func NewIngestionPipeline(cfg *config.Config, fetcher footballdata.Fetcher, store storage.Store, log *logrus.Logger) *IngestionPipeline {
	return &IngestionPipeline{
		cfg:        cfg,
		fetcher:    fetcher,
		store:      store,
		log:        log,
		runMetrics: NewRunMetrics(),
		now:        time.Now,
	}
}

// Run executes one full ingestion pass. A competition that yields no
// usable data is skipped and the rest still ingest; only configuration
// and persistence errors abort the run.
func (p *IngestionPipeline) Run(ctx context.Context) (*RunMetrics, error) {
	if err := config.ValidateIngestion(p.cfg); err != nil {
		return nil, err
	}

	p.runMetrics.Reset()
	start := p.now()

	runID := uuid.New().String()
	ilog := logger.NewIngestionLogger(p.log, runID)
	ilog.WithField("competitions", p.cfg.FootballData.Competitions).Info("Starting ingestion run")

	today := dateOf(p.now().UTC())
	lookBack := today.AddDate(0, 0, -p.cfg.Model.LookBackDays)
	horizon := today.AddDate(0, 0, p.cfg.Model.LookAheadDays)

	var records []models.PredictionRecord
	index := map[string]int{}

	for _, comp := range p.cfg.FootballData.Competitions {
		compRecords, err := p.processCompetition(ctx, ilog, comp, lookBack, today, horizon)
		if err != nil {
			p.runMetrics.RecordFailedCompetition()
			metrics.RecordCompetitionFailed()
			ilog.LogCompetitionSkipped(comp, err.Error())
			continue
		}
		p.runMetrics.RecordCompetition()

		for i := range compRecords {
			r := compRecords[i]
			if at, seen := index[r.Key()]; seen {
				// Last write wins; a match that changed status
				// mid-run keeps its freshest row.
				records[at] = r
				p.runMetrics.RecordDuplicate()
				metrics.DuplicatesDroppedTotal.Inc()
				continue
			}
			index[r.Key()] = len(records)
			records = append(records, r)
		}
	}

	p.runMetrics.mu.Lock()
	p.runMetrics.TotalRecords = len(records)
	p.runMetrics.Duration = p.now().Sub(start)
	p.runMetrics.mu.Unlock()

	// An empty run must not wipe the previous snapshot.
	if len(records) == 0 {
		if p.runMetrics.FailedCompetitions == len(p.cfg.FootballData.Competitions) {
			metrics.RecordIngestionRun("error", p.runMetrics.Duration.Seconds())
			return p.runMetrics, fmt.Errorf("all %d competitions failed, keeping previous snapshot", p.runMetrics.FailedCompetitions)
		}
		ilog.Warn("No records produced, keeping previous snapshot")
		metrics.RecordIngestionRun("success", p.runMetrics.Duration.Seconds())
		return p.runMetrics, nil
	}

	if err := p.store.SaveSnapshot(ctx, records); err != nil {
		metrics.RecordIngestionRun("error", p.now().Sub(start).Seconds())
		return p.runMetrics, fmt.Errorf("persist snapshot: %w", err)
	}

	metrics.SnapshotRecords.Set(float64(len(records)))
	metrics.RecordIngestionRun("success", p.now().Sub(start).Seconds())
	ilog.LogRunComplete(len(records), p.runMetrics.Duplicates, p.runMetrics.Duration)

	return p.runMetrics, nil
}

// processCompetition builds the record set for one competition. The
// history fetch is load-bearing (no history means no rates) so its
// failure skips the competition; the results and fixtures feeds degrade
// to empty independently.
func (p *IngestionPipeline) processCompetition(ctx context.Context, ilog *logger.IngestionLogger, comp string, lookBack, today, horizon time.Time) ([]models.PredictionRecord, error) {
	fetchStart := p.now()

	finished, err := p.fetcher.FinishedMatches(ctx, comp)
	if err != nil {
		metrics.ProviderRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("history fetch: %w", err)
	}
	metrics.ProviderRequestsTotal.WithLabelValues("success").Inc()

	history := make([]models.HistoricalMatch, 0, len(finished))
	for i := range finished {
		history = append(history, finished[i].ToHistorical())
	}

	recent, err := p.fetcher.FinishedMatchesBetween(ctx, comp, lookBack, today)
	if err != nil {
		metrics.ProviderRequestsTotal.WithLabelValues("error").Inc()
		ilog.WithField("competition", comp).WithError(err).Warn("Recent results unavailable")
		recent = nil
	} else {
		metrics.ProviderRequestsTotal.WithLabelValues("success").Inc()
	}

	scheduled, err := p.fetcher.ScheduledMatches(ctx, comp)
	if err != nil {
		metrics.ProviderRequestsTotal.WithLabelValues("error").Inc()
		ilog.WithField("competition", comp).WithError(err).Warn("Fixtures unavailable")
		scheduled = nil
	} else {
		metrics.ProviderRequestsTotal.WithLabelValues("success").Inc()
	}

	threshold := p.cfg.Model.GoalThreshold
	var records []models.PredictionRecord

	for i := range recent {
		m := &recent[i]
		records = append(records, models.PredictionRecord{
			Date:         dateOf(m.KickoffUTC),
			League:       m.League,
			HomeTeam:     m.HomeTeam,
			AwayTeam:     m.AwayTeam,
			Kickoff:      m.KickoffUTC.Format(kickoffLayout),
			OverRateHome: analysis.OverRate(history, m.HomeTeam, threshold),
			OverRateAway: analysis.OverRate(history, m.AwayTeam, threshold),
			Confidence:   0, // settled, nothing left to predict
			HomeScore:    m.HomeGoals,
			AwayScore:    m.AwayGoals,
		})
		p.runMetrics.RecordResult()
		metrics.RecordsIngestedTotal.WithLabelValues("result").Inc()
	}

	fixtures := 0
	for i := range scheduled {
		f := scheduled[i].ToFixture()
		if dateOf(f.KickoffUTC).After(horizon) {
			continue
		}

		rateHome := analysis.OverRate(history, f.HomeTeam, threshold)
		rateAway := analysis.OverRate(history, f.AwayTeam, threshold)
		records = append(records, models.PredictionRecord{
			Date:         dateOf(f.KickoffUTC),
			League:       f.League,
			HomeTeam:     f.HomeTeam,
			AwayTeam:     f.AwayTeam,
			Kickoff:      f.KickoffUTC.Format(kickoffLayout),
			OverRateHome: rateHome,
			OverRateAway: rateAway,
			Confidence:   analysis.CombineConfidence(rateHome, rateAway),
		})
		fixtures++
		p.runMetrics.RecordFixture()
		metrics.RecordsIngestedTotal.WithLabelValues("fixture").Inc()
	}

	ilog.LogCompetitionProcessed(comp, len(history), fixtures, len(recent), float64(p.now().Sub(fetchStart).Milliseconds()))
	return records, nil
}

// dateOf truncates a timestamp to its UTC calendar date.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
