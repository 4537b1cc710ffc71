package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	FeedsFetched       int64
	FeedErrors         int64
	CandidatesSeen     int64
	CandidatesKept     int64
	DuplicatesFiltered int64
	LLMRequests        int64
	LLMErrors          int64
	PostsWritten       int64

	// Timings
	LastRunDuration time.Duration

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) IncrementFeedsFetched() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FeedsFetched++
}

func (m *Metrics) IncrementFeedErrors() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FeedErrors++
}

func (m *Metrics) AddCandidatesSeen(n int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CandidatesSeen += n
}

func (m *Metrics) AddCandidatesKept(n int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CandidatesKept += n
}

func (m *Metrics) IncrementDuplicatesFiltered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesFiltered++
}

func (m *Metrics) IncrementLLMRequests() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LLMRequests++
}

func (m *Metrics) IncrementLLMErrors() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LLMErrors++
}

func (m *Metrics) IncrementPostsWritten() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PostsWritten++
}

func (m *Metrics) RecordRunDuration(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunDuration = duration
}

func (m *Metrics) SetLastRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.IsHealthy = true
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
		"feeds_fetched":        m.FeedsFetched,
		"feed_errors":          m.FeedErrors,
		"candidates_seen":      m.CandidatesSeen,
		"candidates_kept":      m.CandidatesKept,
		"duplicates_filtered":  m.DuplicatesFiltered,
		"llm_requests":         m.LLMRequests,
		"llm_errors":           m.LLMErrors,
		"posts_written":        m.PostsWritten,
		"last_run_duration_ms": m.LastRunDuration.Milliseconds(),
		"last_run_time":        m.LastRunTime.Format(time.RFC3339),
		"last_error_time":      m.LastErrorTime.Format(time.RFC3339),
		"last_error":           m.LastError,
		"is_healthy":           m.IsHealthy,
	}
}
