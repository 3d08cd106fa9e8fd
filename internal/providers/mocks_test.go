package providers

import (
	"sync"
	"time"
)

// local mocks; testutil imports this package

type testLogger struct {
	mu    sync.Mutex
	lines []string
	types []TypeEnum
}

func (m *testLogger) record(t TypeEnum, format string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines = append(m.lines, format)
	m.types = append(m.types, t)
}

func (m *testLogger) Errorf(t TypeEnum, format string, _ ...interface{}) { m.record(t, format) }
func (m *testLogger) Warnf(t TypeEnum, format string, _ ...interface{})  { m.record(t, format) }
func (m *testLogger) Debugf(t TypeEnum, format string, _ ...interface{}) { m.record(t, format) }
func (m *testLogger) Infof(t TypeEnum, format string, _ ...interface{})  { m.record(t, format) }
func (m *testLogger) Fatalf(t TypeEnum, format string, _ ...interface{}) { m.record(t, format) }
func (m *testLogger) Close()                                             {}

type testMetrics struct {
	noopMetrics
	endpoint string
	status   int
	requests int
	duration int
	hits     map[string]int
	misses   map[string]int
}

func newTestMetrics() *testMetrics {
	return &testMetrics{hits: map[string]int{}, misses: map[string]int{}}
}

func (m *testMetrics) IncRequestsTotal(endpoint string, status int) {
	m.endpoint = endpoint
	m.status = status
	m.requests++
}
func (m *testMetrics) ObserveRequestDuration(_ string, _ time.Duration) { m.duration++ }
func (m *testMetrics) IncCacheHits(cache string)                        { m.hits[cache]++ }
func (m *testMetrics) IncCacheMisses(cache string)                      { m.misses[cache]++ }
