package crawler

import (
	"context"
	"errors"
	"flixmap/internal/catalog"
	"flixmap/internal/models"
	"flixmap/internal/providers"
	"flixmap/internal/services"
	"flixmap/internal/structures"
	"fmt"
	"time"
)

const (
	ModeFillGaps = "fill-gaps"
	ModeResume   = "resume"
)

type outcome string

const (
	outcomeMapped    outcome = "mapped"
	outcomeSkipped   outcome = "skipped"
	outcomeAbsent    outcome = "absent"
	outcomeUnpopular outcome = "unpopular"
	outcomeNoMatch   outcome = "no_match"
	outcomeExists    outcome = "exists"
	outcomeTransient outcome = "transient"
	outcomeFailed    outcome = "failed"
)

// Crawler walks reference ids upwards for one content type and links every
// popular title to its provider entry.
type Crawler struct {
	conf      structures.CrawlerConfig
	store     *models.MappingStore
	reference catalog.ReferenceCatalog
	mapper    services.MappingServiceInterface
	logger    providers.Logger
	metrics   providers.MetricsProviderInterface
	matcher   services.Matcher
	backoff   RetryPolicy
	crash     RetryPolicy
	sleep     func(ctx context.Context, d time.Duration) error
}

func NewCrawler(
	conf *structures.Config,
	store *models.MappingStore,
	reference catalog.ReferenceCatalog,
	mapper services.MappingServiceInterface,
	logger providers.Logger,
	metrics providers.MetricsProviderInterface,
) *Crawler {
	return &Crawler{
		conf:      conf.Crawler,
		store:     store,
		reference: reference,
		mapper:    mapper,
		logger:    logger,
		metrics:   metrics,
		matcher:   services.CrawlerPolicy,
		backoff:   RetryPolicy{Interval: conf.Crawler.Backoff},
		crash:     RetryPolicy{Interval: conf.Crawler.CrashPause},
		sleep:     Sleep,
	}
}

// StartID returns 1 for fill-gaps and one past the highest mapped id of t for
// resume.
func (c *Crawler) StartID(t models.ContentType, mode string) int {
	if mode != ModeResume {
		return 1
	}
	if max, ok := c.store.MaxID(t); ok {
		return max + 1
	}
	return 1
}

// Run crawls from start until ctx is cancelled and returns ctx.Err().
func (c *Crawler) Run(ctx context.Context, t models.ContentType, start int) error {
	if !t.Valid() {
		return fmt.Errorf("crawl: unknown content type %q", t)
	}
	if start < 1 {
		start = 1
	}
	c.logger.Infof(providers.TypeCrawler, "Crawling %s from id %d", t, start)

	id, attempt := start, 0
	for {
		if err := ctx.Err(); err != nil {
			c.logger.Infof(providers.TypeCrawler, "Crawler for %s stopped at id %d", t, id)
			return err
		}
		c.metrics.SetCrawlerPosition(string(t), id)

		result, err := c.visit(ctx, t, id)
		c.metrics.IncCrawlerOutcome(string(t), string(result))

		var wait time.Duration
		advance := true
		switch result {
		case outcomeSkipped, outcomeAbsent, outcomeUnpopular:
		case outcomeMapped, outcomeNoMatch, outcomeExists:
			wait = c.conf.Delay
		case outcomeTransient, outcomeFailed:
			policy := c.backoff
			if result == outcomeFailed {
				policy = c.crash
				c.logger.Errorf(providers.TypeCrawler, "Crawling %s/%d failed: %s", t, id, err)
			} else {
				c.logger.Warnf(providers.TypeCrawler, "Reference lookup %s/%d failed, backing off: %s", t, id, err)
			}
			attempt++
			var retry bool
			wait, retry = policy.Next(attempt)
			advance = !retry
			if advance {
				c.logger.Errorf(providers.TypeCrawler, "Giving up on %s/%d after %d attempts", t, id, attempt)
			}
		}

		if advance {
			id++
			attempt = 0
		}
		if wait > 0 {
			if err := c.sleep(ctx, wait); err != nil {
				c.logger.Infof(providers.TypeCrawler, "Crawler for %s stopped at id %d", t, id)
				return err
			}
		}
	}
}

// visit handles one id. A panic anywhere below is reported as a failure so
// the loop keeps running.
func (c *Crawler) visit(ctx context.Context, t models.ContentType, id int) (result outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = outcomeFailed, fmt.Errorf("panic: %v", r)
		}
	}()

	if c.store.Has(id, t) {
		return outcomeSkipped, nil
	}

	meta, err := c.reference.GetByID(ctx, id, t)
	if catalog.IsNotFound(err) {
		return outcomeAbsent, nil
	}
	if err != nil {
		return outcomeTransient, err
	}
	meta.ID = id
	if meta.Popularity < c.conf.MinPopularity {
		return outcomeUnpopular, nil
	}

	candidate, ok, err := c.mapper.MatchCandidate(ctx, meta, t, c.matcher)
	if err != nil {
		return outcomeFailed, err
	}
	if !ok {
		c.logger.Debugf(providers.TypeCrawler, "No provider match for %s/%d %q", t, id, meta.Title)
		return outcomeNoMatch, nil
	}

	_, err = c.mapper.Link(ctx, meta, t, candidate)
	if errors.Is(err, models.ErrMappingExists) {
		c.logger.Debugf(providers.TypeCrawler, "%s already mapped, skipping %s/%d", candidate.Key, t, id)
		return outcomeExists, nil
	}
	if err != nil {
		return outcomeFailed, err
	}
	return outcomeMapped, nil
}
