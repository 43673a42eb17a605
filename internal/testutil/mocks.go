package testutil

import (
	"context"
	"sync"
	"time"

	"contestd/internal/models"
	"contestd/internal/notify"
	"contestd/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// CountByLevel returns how many entries were recorded at the level.
func (m *MockLogger) CountByLevel(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, e := range m.Logs {
		if e.Level == level {
			count++
		}
	}
	return count
}

// MockCompressor passes data through unmodified so persistence tests
// can inspect plain JSON on disk.
type MockCompressor struct{}

func (m *MockCompressor) Compress(val []byte) ([]byte, error)   { return val, nil }
func (m *MockCompressor) Decompress(val []byte) ([]byte, error) { return val, nil }
func (m *MockCompressor) Close()                                {}

// MockMetrics implements providers.MetricsProviderInterface and counts
// calls.
type MockMetrics struct {
	mu              sync.Mutex
	Ticks           int
	SourceFailures  map[string]int
	Notifications   int
	ContestsTracked int
	GroupsEnabled   int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits()                                    {}
func (m *MockMetrics) IncCacheMisses()                                  {}
func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (m *MockMetrics) ObserveTickDuration(_ time.Duration)              {}

func (m *MockMetrics) IncTicksTotal() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Ticks++
}

func (m *MockMetrics) IncSourceFailures(platform string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SourceFailures == nil {
		m.SourceFailures = make(map[string]int)
	}
	m.SourceFailures[platform]++
}

func (m *MockMetrics) IncNotificationsTotal() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Notifications++
}

func (m *MockMetrics) SetContestsTracked(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ContestsTracked = count
}

func (m *MockMetrics) SetGroupsEnabled(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GroupsEnabled = count
}

// Delivery is one recorded sink call.
type Delivery struct {
	GroupID string
	Payload notify.Payload
}

// MockSink records deliveries; FailAll makes every Deliver return an
// error without suppressing the recording.
type MockSink struct {
	mu         sync.Mutex
	Deliveries []Delivery
	FailAll    bool
}

type sinkError struct{}

func (sinkError) Error() string { return "sink unavailable" }

func (m *MockSink) Name() string { return "mock" }

func (m *MockSink) Deliver(_ context.Context, groupID string, payload notify.Payload) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Deliveries = append(m.Deliveries, Delivery{GroupID: groupID, Payload: payload})
	if m.FailAll {
		return sinkError{}
	}
	return nil
}

func (m *MockSink) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Deliveries)
}

// MockSource serves scripted batches, one per Fetch call; the last
// script entry repeats. A nil Batches entry with Err set simulates an
// unavailable platform for that call.
type MockSource struct {
	mu     sync.Mutex
	Plat   models.Platform
	Script []FetchResult
	calls  int
}

type FetchResult struct {
	Batch []models.RawContest
	Err   error
}

func (m *MockSource) Platform() models.Platform { return m.Plat }

func (m *MockSource) Fetch(_ context.Context) ([]models.RawContest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.Script) == 0 {
		return nil, nil
	}
	idx := m.calls
	if idx >= len(m.Script) {
		idx = len(m.Script) - 1
	}
	m.calls++
	res := m.Script[idx]
	return res.Batch, res.Err
}
