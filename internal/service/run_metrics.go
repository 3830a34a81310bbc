package service

import (
	"fmt"
	"sync"
	"time"
)

// RunMetrics tracks statistics for a single ingestion run.
type RunMetrics struct {
	mu                 sync.RWMutex
	StartTime          time.Time
	Duration           time.Duration
	Competitions       int
	FailedCompetitions int
	Fixtures           int
	Results            int
	Duplicates         int
	TotalRecords       int
}

// NewRunMetrics creates a new metrics tracker.
func NewRunMetrics() *RunMetrics {
	return &RunMetrics{
		StartTime: time.Now(),
	}
}

// Reset resets all metrics.
func (m *RunMetrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.StartTime = time.Now()
	m.Duration = 0
	m.Competitions = 0
	m.FailedCompetitions = 0
	m.Fixtures = 0
	m.Results = 0
	m.Duplicates = 0
	m.TotalRecords = 0
}

// RecordCompetition increments the processed competition count.
func (m *RunMetrics) RecordCompetition() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Competitions++
}

// RecordFailedCompetition increments the failed competition count.
func (m *RunMetrics) RecordFailedCompetition() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FailedCompetitions++
}

// RecordFixture increments the fixture record count.
func (m *RunMetrics) RecordFixture() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Fixtures++
}

// RecordResult increments the settled result record count.
func (m *RunMetrics) RecordResult() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Results++
}

// RecordDuplicate increments the dedup drop count.
func (m *RunMetrics) RecordDuplicate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Duplicates++
}

// String returns a formatted representation of the run.
func (m *RunMetrics) String() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return fmt.Sprintf(
		"RunMetrics{Competitions=%d, Failed=%d, Fixtures=%d, Results=%d, Duplicates=%d, Records=%d, Duration=%v}",
		m.Competitions,
		m.FailedCompetitions,
		m.Fixtures,
		m.Results,
		m.Duplicates,
		m.TotalRecords,
		m.Duration,
	)
}
