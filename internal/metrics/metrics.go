package metrics

import (
	"sync"
	"time"
)

// Metrics tracks aggregation cycle statistics for the /metrics endpoint.
type Metrics struct {
	mu sync.RWMutex

	// Counters
	RawFetched         int64
	DuplicatesFiltered int64
	BlockedFiltered    int64
	SummariesGenerated int64
	SourceFailures     int64

	// Last aggregation cycle
	LastNewCount   int
	LastTotalCount int

	// Timings
	LastCycleTime    time.Duration
	AverageCycleTime time.Duration
	TotalCycleTime   time.Duration
	CycleCount       int64

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) AddRawFetched(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RawFetched += int64(n)
}

func (m *Metrics) AddDuplicatesFiltered(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesFiltered += int64(n)
}

func (m *Metrics) AddBlockedFiltered(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BlockedFiltered += int64(n)
}

func (m *Metrics) AddSummariesGenerated(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SummariesGenerated += int64(n)
}

func (m *Metrics) IncrementSourceFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SourceFailures++
}

// RecordCycle stores the outcome of one aggregation pass.
func (m *Metrics) RecordCycle(newCount, totalCount int, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastNewCount = newCount
	m.LastTotalCount = totalCount
	m.LastCycleTime = duration
	m.TotalCycleTime += duration
	m.CycleCount++
	m.AverageCycleTime = m.TotalCycleTime / time.Duration(m.CycleCount)
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

// LastCycle returns the new/total counts of the most recent aggregation pass.
func (m *Metrics) LastCycle() (newCount, totalCount int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.LastNewCount, m.LastTotalCount
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"raw_fetched":           m.RawFetched,
		"duplicates_filtered":   m.DuplicatesFiltered,
		"blocked_filtered":      m.BlockedFiltered,
		"summaries_generated":   m.SummariesGenerated,
		"source_failures":       m.SourceFailures,
		"last_new_count":        m.LastNewCount,
		"last_total_count":      m.LastTotalCount,
		"last_cycle_time_ms":    m.LastCycleTime.Milliseconds(),
		"average_cycle_time_ms": m.AverageCycleTime.Milliseconds(),
		"last_run_time":         m.LastRunTime.Format(time.RFC3339),
		"last_error_time":       m.LastErrorTime.Format(time.RFC3339),
		"last_error":            m.LastError,
		"is_healthy":            m.IsHealthy,
	}
}
