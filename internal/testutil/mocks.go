package testutil

import (
	"context"
	"flixmap/internal/catalog"
	"flixmap/internal/models"
	"flixmap/internal/providers"
	"fmt"
	"sync"
	"time"

	json "github.com/goccy/go-json"
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

// CountLevel reports how many entries were logged at level.
func (m *MockLogger) CountLevel(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, l := range m.Logs {
		if l.Level == level {
			n++
		}
	}
	return n
}

// MockMetrics implements providers.MetricsProviderInterface with named counters.
type MockMetrics struct {
	mu     sync.Mutex
	counts map[string]int
	gauges map[string]int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{counts: map[string]int{}, gauges: map[string]int{}}
}

func (m *MockMetrics) inc(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[key]++
}

func (m *MockMetrics) set(key string, v int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gauges[key] = v
}

// Count returns a counter such as "resolve:forward:live" or "persist:mappings".
func (m *MockMetrics) Count(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[key]
}

// Gauge returns a gauge such as "records:mappings" or "position:movie".
func (m *MockMetrics) Gauge(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gauges[key]
}

func (m *MockMetrics) IncRequestsTotal(endpoint string, status int) {
	m.inc(fmt.Sprintf("request:%s:%d", endpoint, status))
}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits(cache string)                        { m.inc("hit:" + cache) }
func (m *MockMetrics) IncCacheMisses(cache string)                      { m.inc("miss:" + cache) }
func (m *MockMetrics) ObservePersistenceDuration(store string, _ time.Duration) {
	m.inc("persist:" + store)
}
func (m *MockMetrics) IncResolutions(direction, source string) {
	m.inc("resolve:" + direction + ":" + source)
}
func (m *MockMetrics) IncCrawlerOutcome(contentType, outcome string) {
	m.inc("crawl:" + contentType + ":" + outcome)
}
func (m *MockMetrics) SetCrawlerPosition(contentType string, id int) { m.set("position:"+contentType, id) }
func (m *MockMetrics) IncSkipSubmissions(outcome string)             { m.inc("skip:" + outcome) }
func (m *MockMetrics) SetRecordsTotal(store string, count int)       { m.set("records:"+store, count) }

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}

// MemorySnapshot implements models.Snapshotter in memory. Setting Err makes
// every Save fail.
type MemorySnapshot struct {
	mu    sync.Mutex
	data  []byte
	Saves int
	Err   error
}

func (m *MemorySnapshot) Save(v any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.data = b
	m.Saves++
	return nil
}

func (m *MemorySnapshot) Load(v any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return false, nil
	}
	return true, json.Unmarshal(m.data, v)
}

func (m *MemorySnapshot) Fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Err = err
}

// MockReference implements catalog.ReferenceCatalog from fixed data.
type MockReference struct {
	mu       sync.Mutex
	Metas    map[string]catalog.ReferenceMeta
	Results  map[string][]catalog.ReferenceMeta
	Errors   map[string][]error
	GetCalls int
	Searches int
}

func NewMockReference() *MockReference {
	return &MockReference{
		Metas:   map[string]catalog.ReferenceMeta{},
		Results: map[string][]catalog.ReferenceMeta{},
		Errors:  map[string][]error{},
	}
}

func refKey(id int, t models.ContentType) string {
	return fmt.Sprintf("%s:%d", t, id)
}

func (m *MockReference) Add(t models.ContentType, meta catalog.ReferenceMeta) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Metas[refKey(meta.ID, t)] = meta
}

// FailNext queues errors returned by the next GetByID calls for id.
func (m *MockReference) FailNext(t models.ContentType, id int, errs ...error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors[refKey(id, t)] = append(m.Errors[refKey(id, t)], errs...)
}

func (m *MockReference) GetByID(_ context.Context, id int, t models.ContentType) (catalog.ReferenceMeta, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCalls++
	key := refKey(id, t)
	if errs := m.Errors[key]; len(errs) > 0 {
		m.Errors[key] = errs[1:]
		return catalog.ReferenceMeta{}, errs[0]
	}
	meta, ok := m.Metas[key]
	if !ok {
		return catalog.ReferenceMeta{}, catalog.ErrNotFound
	}
	return meta, nil
}

func (m *MockReference) SearchByTitle(_ context.Context, title string, t models.ContentType) ([]catalog.ReferenceMeta, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Searches++
	if errs := m.Errors["search:"+title]; len(errs) > 0 {
		return nil, errs[0]
	}
	return m.Results[string(t)+":"+title], nil
}

// MockProvider implements catalog.ProviderCatalog from fixed data.
type MockProvider struct {
	mu          sync.Mutex
	Listings    map[string][]catalog.Listing
	Details     map[string]catalog.Detail
	SearchErr   error
	DetailErr   error
	Searches    int
	DetailCalls int
}

func NewMockProvider() *MockProvider {
	return &MockProvider{
		Listings: map[string][]catalog.Listing{},
		Details:  map[string]catalog.Detail{},
	}
}

func (m *MockProvider) SearchByTitle(_ context.Context, title string) ([]catalog.Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Searches++
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	return m.Listings[title], nil
}

func (m *MockProvider) GetDetails(_ context.Context, slug string) (catalog.Detail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DetailCalls++
	if m.DetailErr != nil {
		return catalog.Detail{}, m.DetailErr
	}
	d, ok := m.Details[slug]
	if !ok {
		return catalog.Detail{}, catalog.ErrNotFound
	}
	return d, nil
}

// Calls returns the number of search and detail requests so far.
func (m *MockProvider) Calls() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Searches, m.DetailCalls
}

// Year returns a pointer to y.
func Year(y int) *int {
	return &y
}
