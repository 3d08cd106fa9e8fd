package lifecycle

import (
	"context"
	"errors"
	"flixmap/internal/crawler"
	"flixmap/internal/lifecycle/interfaces"
	"flixmap/internal/models"
	"flixmap/internal/providers"
	"flixmap/internal/storage"
	"flixmap/internal/structures"
	"fmt"
	"sync"
)

// Manager owns the stores for the lifetime of a process: it takes the writer
// lock, loads both snapshots, runs the embedded crawler and flushes on exit.
type Manager struct {
	config   *structures.Config
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface
	mappings *models.MappingStore
	skips    *models.SkipStore
	lock     *storage.StoreLock
	crawler  *crawler.Crawler
	cancel   context.CancelFunc
	done     chan struct{}
	locked   bool
	restored bool
	opsMu    sync.Mutex
}

func NewManager(
	config *structures.Config,
	logger providers.Logger,
	metrics providers.MetricsProviderInterface,
	mappings *models.MappingStore,
	skips *models.SkipStore,
	lock *storage.StoreLock,
	crawler *crawler.Crawler,
) *Manager {
	return &Manager{
		config:   config,
		logger:   logger,
		metrics:  metrics,
		mappings: mappings,
		skips:    skips,
		lock:     lock,
		crawler:  crawler,
	}
}

var _ interfaces.ManagerInterface = (*Manager)(nil)

func (m *Manager) Restore() error {
	m.opsMu.Lock()
	defer m.opsMu.Unlock()

	if !m.locked {
		if err := m.lock.Acquire(); err != nil {
			return err
		}
		m.locked = true
	}
	if err := restoreStores(m.logger, m.metrics, m.mappings, m.skips); err != nil {
		return err
	}
	m.restored = true
	return nil
}

func restoreStores(logger providers.Logger, metrics providers.MetricsProviderInterface, mappings *models.MappingStore, skips *models.SkipStore) error {
	dropped, err := mappings.Restore()
	if err != nil {
		return fmt.Errorf("restore mappings: %w", err)
	}
	if dropped > 0 {
		logger.Warnf(providers.TypeApp, "Dropped %d duplicate mappings while restoring", dropped)
	}
	dropped, err = skips.Restore()
	if err != nil {
		return fmt.Errorf("restore skip submissions: %w", err)
	}
	if dropped > 0 {
		logger.Warnf(providers.TypeApp, "Dropped %d malformed skip episode keys while restoring", dropped)
	}

	metrics.SetRecordsTotal("mappings", mappings.Len())
	metrics.SetRecordsTotal("skip_episodes", skips.EpisodeCount())
	logger.Infof(providers.TypeApp, "Restored %d mappings and %d skip episodes", mappings.Len(), skips.EpisodeCount())
	return nil
}

// Init starts the embedded crawler when it is enabled.
func (m *Manager) Init() {
	if !m.config.Crawler.Enabled {
		return
	}
	t := models.ContentType(m.config.Crawler.Type)
	start := m.crawler.StartID(t, m.config.Crawler.Mode)

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.done = make(chan struct{})
	go func() {
		defer close(m.done)
		if err := m.crawler.Run(ctx, t, start); err != nil && !errors.Is(err, context.Canceled) {
			m.logger.Errorf(providers.TypeCrawler, "Crawler exited: %s", err)
		}
	}()
}

// Stop cancels the embedded crawler and waits for it to return.
func (m *Manager) Stop() {
	if m.cancel == nil {
		return
	}
	m.cancel()
	<-m.done
	m.cancel = nil
}

// Crawl runs the crawler in the foreground until ctx is cancelled, for the
// standalone crawl command. Restore must have been called.
func (m *Manager) Crawl(ctx context.Context, t models.ContentType, mode string) error {
	start := m.crawler.StartID(t, mode)
	err := m.crawler.Run(ctx, t, start)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Persist flushes both stores and releases the writer lock. Stores that were
// never restored are not written so a failed start cannot truncate them.
func (m *Manager) Persist() error {
	m.opsMu.Lock()
	defer m.opsMu.Unlock()

	var err error
	if m.restored {
		m.logger.Infof(providers.TypeApp, "Persisting stores...")
		err = errors.Join(m.mappings.Flush(), m.skips.Flush())
		if err != nil {
			m.logger.Errorf(providers.TypeApp, "Error while persisting data: %s", err)
		}
	}
	if m.locked {
		if unlockErr := m.lock.Release(); unlockErr != nil {
			err = errors.Join(err, unlockErr)
		}
		m.locked = false
	}
	return err
}
