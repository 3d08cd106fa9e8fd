package services

import (
	"context"
	"errors"
	"flixmap/internal/catalog"
	"flixmap/internal/models"
	"flixmap/internal/providers"
	"flixmap/internal/structures"
	"fmt"
	"strings"
)

type Source string

const (
	SourceCache       Source = "cache"
	SourceLive        Source = "live"
	SourceLiveReverse Source = "live_reverse"
)

type Resolution struct {
	Mapping models.Mapping
	Source  Source
}

type MappingServiceInterface interface {
	Resolve(ctx context.Context, id int, t models.ContentType) (Resolution, error)
	ResolveReverse(ctx context.Context, slug string) (Resolution, error)
	MatchCandidate(ctx context.Context, meta catalog.ReferenceMeta, t models.ContentType, matcher Matcher) (Candidate, bool, error)
	Link(ctx context.Context, meta catalog.ReferenceMeta, t models.ContentType, c Candidate) (models.Mapping, error)
}

type MappingService struct {
	store     *models.MappingStore
	reference catalog.ReferenceCatalog
	provider  catalog.ProviderCatalog
	logger    providers.Logger
	metrics   providers.MetricsProviderInterface
	siteURL   string
	forward   Matcher
	reverse   Matcher
}

func NewMappingService(
	conf *structures.Config,
	store *models.MappingStore,
	reference catalog.ReferenceCatalog,
	provider catalog.ProviderCatalog,
	logger providers.Logger,
	metrics providers.MetricsProviderInterface,
) *MappingService {
	return &MappingService{
		store:     store,
		reference: reference,
		provider:  provider,
		logger:    logger,
		metrics:   metrics,
		siteURL:   strings.TrimRight(conf.Provider.SiteURL, "/"),
		forward:   ForwardPolicy,
		reverse:   YearWindowMatcher{Window: 1},
	}
}

// Resolve maps a reference id to its provider entry, from the store when
// known and otherwise by searching the provider catalog.
func (s *MappingService) Resolve(ctx context.Context, id int, t models.ContentType) (Resolution, error) {
	if !t.Valid() {
		return Resolution{}, invalid("type", "must be movie or tv")
	}
	if id <= 0 {
		return Resolution{}, ErrInvalidID
	}
	if m, ok := s.store.Get(id, t); ok {
		s.metrics.IncResolutions("forward", string(SourceCache))
		return Resolution{Mapping: m, Source: SourceCache}, nil
	}

	meta, err := s.reference.GetByID(ctx, id, t)
	if err != nil {
		if !catalog.IsNotFound(err) {
			s.logger.Warnf(providers.TypeMapper, "Reference lookup %s/%d failed: %s", t, id, err)
		}
		s.metrics.IncResolutions("forward", "invalid_id")
		return Resolution{}, ErrInvalidID
	}
	meta.ID = id

	candidate, ok, err := s.MatchCandidate(ctx, meta, t, s.forward)
	if err != nil {
		s.logger.Warnf(providers.TypeMapper, "Provider search for %q failed: %s", meta.Title, err)
		s.metrics.IncResolutions("forward", "not_found")
		return Resolution{}, ErrNotFound
	}
	if !ok {
		s.logger.Infof(providers.TypeMapper, "No provider match for %s/%d %q", t, id, meta.Title)
		s.metrics.IncResolutions("forward", "not_found")
		return Resolution{}, ErrNotFound
	}
	if owner, taken := s.store.GetBySlug(candidate.Key); taken {
		return s.conflict(owner, id, t, candidate.Key)
	}

	m, err := s.build(ctx, meta, t, candidate, false)
	if err != nil {
		s.logger.Warnf(providers.TypeMapper, "Provider details for %s failed: %s", candidate.Key, err)
		s.metrics.IncResolutions("forward", "not_found")
		return Resolution{}, ErrNotFound
	}

	stored, err := s.store.Append(m)
	if errors.Is(err, models.ErrMappingExists) {
		return s.conflict(stored, id, t, candidate.Key)
	}
	if err != nil {
		s.logger.Errorf(providers.TypeMapper, "Saving mapping %s/%d failed: %s", t, id, err)
		return Resolution{}, err
	}
	s.afterAppend(stored)
	s.metrics.IncResolutions("forward", string(SourceLive))
	return Resolution{Mapping: stored, Source: SourceLive}, nil
}

// conflict resolves a lost append race. The same reference key means another
// request stored it first; a slug owned by another id is never remapped.
func (s *MappingService) conflict(existing models.Mapping, id int, t models.ContentType, slug string) (Resolution, error) {
	if existing.TmdbID == id && existing.Type == t {
		s.metrics.IncResolutions("forward", string(SourceCache))
		return Resolution{Mapping: existing, Source: SourceCache}, nil
	}
	s.logger.Warnf(providers.TypeMapper, "Slug %s already mapped to %s/%d, refusing %s/%d", slug, existing.Type, existing.TmdbID, t, id)
	s.metrics.IncResolutions("forward", "conflict")
	return Resolution{}, fmt.Errorf("%w: %s already mapped", ErrNotFound, slug)
}

// ResolveReverse maps a provider slug back to a reference entry.
func (s *MappingService) ResolveReverse(ctx context.Context, slug string) (Resolution, error) {
	slug = strings.Trim(strings.TrimSpace(slug), "/")
	if slug == "" {
		return Resolution{}, invalid("slug", "required")
	}
	if m, ok := s.store.GetBySlug(slug); ok {
		s.metrics.IncResolutions("reverse", string(SourceCache))
		return Resolution{Mapping: m, Source: SourceCache}, nil
	}

	detail, err := s.provider.GetDetails(ctx, slug)
	if err != nil {
		if !catalog.IsNotFound(err) {
			s.logger.Warnf(providers.TypeMapper, "Provider details for %s failed: %s", slug, err)
		}
		s.metrics.IncResolutions("reverse", "not_found")
		return Resolution{}, ErrNotFound
	}
	if strings.TrimSpace(detail.Title) == "" {
		s.metrics.IncResolutions("reverse", "not_found")
		return Resolution{}, ErrNotFound
	}

	t := models.SlugContentType(slug)
	year := detail.Year
	if year == nil {
		year = catalog.YearFromDate(detail.Released)
	}

	results, err := s.reference.SearchByTitle(ctx, detail.Title, t)
	if err != nil {
		s.logger.Warnf(providers.TypeMapper, "Reference search for %q failed: %s", detail.Title, err)
		s.metrics.IncResolutions("reverse", "not_found")
		return Resolution{}, ErrNotFound
	}
	candidates := make([]Candidate, len(results))
	for i, r := range results {
		candidates[i] = Candidate{Title: r.Title, Year: r.Year, Type: t}
	}
	idx, ok := s.reverse.Match(Target{Title: detail.Title, Year: year, Type: t}, candidates)
	if !ok {
		s.metrics.IncResolutions("reverse", "not_found")
		return Resolution{}, ErrNotFound
	}
	meta := results[idx]

	flixID := detail.ID
	if flixID == "" {
		flixID = models.SlugID(slug)
	}
	m := models.Mapping{
		TmdbID:      meta.ID,
		TmdbTitle:   meta.Title,
		Type:        t,
		FlixSlug:    slug,
		FlixID:      flixID,
		FlixTitle:   detail.Title,
		FlixYear:    year,
		FlixURL:     s.siteURL + "/" + slug,
		Description: detail.Description,
		Released:    detail.Released,
		Genres:      genres(detail.Genres),
	}

	stored, err := s.store.Append(m)
	if errors.Is(err, models.ErrMappingExists) {
		if stored.FlixSlug == slug {
			s.metrics.IncResolutions("reverse", string(SourceCache))
			return Resolution{Mapping: stored, Source: SourceCache}, nil
		}
		s.logger.Warnf(providers.TypeMapper, "Reference %s/%d already mapped to %s, refusing %s", stored.Type, stored.TmdbID, stored.FlixSlug, slug)
		s.metrics.IncResolutions("reverse", "conflict")
		return Resolution{}, fmt.Errorf("%w: %s/%d already mapped", ErrNotFound, stored.Type, stored.TmdbID)
	}
	if err != nil {
		s.logger.Errorf(providers.TypeMapper, "Saving mapping for %s failed: %s", slug, err)
		return Resolution{}, err
	}
	s.afterAppend(stored)
	s.metrics.IncResolutions("reverse", string(SourceLiveReverse))
	return Resolution{Mapping: stored, Source: SourceLiveReverse}, nil
}

// MatchCandidate searches the provider catalog by the reference title and
// applies matcher to the hits in provider order.
func (s *MappingService) MatchCandidate(ctx context.Context, meta catalog.ReferenceMeta, t models.ContentType, matcher Matcher) (Candidate, bool, error) {
	if strings.TrimSpace(meta.Title) == "" {
		return Candidate{}, false, nil
	}
	listings, err := s.provider.SearchByTitle(ctx, meta.Title)
	if err != nil {
		return Candidate{}, false, err
	}
	candidates := make([]Candidate, len(listings))
	for i, l := range listings {
		candidates[i] = Candidate{Key: l.Slug, Title: l.Title, Year: l.Year, Type: l.Type, Poster: l.Poster}
	}
	idx, ok := matcher.Match(Target{Title: meta.Title, Year: meta.Year, Type: t}, candidates)
	if !ok {
		return Candidate{}, false, nil
	}
	return candidates[idx], true, nil
}

// Link builds the crawler record for a matched candidate and stores it.
// models.ErrMappingExists is returned unchanged when either key is taken.
func (s *MappingService) Link(ctx context.Context, meta catalog.ReferenceMeta, t models.ContentType, c Candidate) (models.Mapping, error) {
	m, err := s.build(ctx, meta, t, c, true)
	if err != nil {
		return models.Mapping{}, err
	}
	stored, err := s.store.Append(m)
	if err != nil {
		return stored, err
	}
	s.afterAppend(stored)
	return stored, nil
}

// build assembles a complete mapping before anything is written. An absent
// provider detail falls back to the candidate data. Crawler records also fall
// back to the reference year, carry the poster and take the provider id and
// poster from the detail when there is one.
func (s *MappingService) build(ctx context.Context, meta catalog.ReferenceMeta, t models.ContentType, c Candidate, crawl bool) (models.Mapping, error) {
	detail, err := s.provider.GetDetails(ctx, c.Key)
	if err != nil && !catalog.IsNotFound(err) {
		return models.Mapping{}, err
	}
	hasDetail := err == nil

	year := c.Year
	if year == nil {
		year = catalog.YearFromDate(detail.Released)
	}
	if year == nil && crawl {
		year = meta.Year
	}

	m := models.Mapping{
		TmdbID:      meta.ID,
		TmdbTitle:   meta.Title,
		Type:        t,
		FlixSlug:    c.Key,
		FlixID:      models.SlugID(c.Key),
		FlixTitle:   c.Title,
		FlixYear:    year,
		FlixURL:     s.siteURL + "/" + c.Key,
		Description: detail.Description,
		Released:    detail.Released,
		Genres:      genres(detail.Genres),
	}
	if crawl {
		m.Poster = c.Poster
		if hasDetail {
			if detail.ID != "" {
				m.FlixID = detail.ID
			}
			if detail.Poster != "" {
				m.Poster = detail.Poster
			}
		}
	}
	return m, nil
}

func (s *MappingService) afterAppend(m models.Mapping) {
	s.logger.Infof(providers.TypeMapper, "Mapped %s/%d %q -> %s", m.Type, m.TmdbID, m.TmdbTitle, m.FlixSlug)
	s.metrics.SetRecordsTotal("mappings", s.store.Len())
}

func genres(g []string) []string {
	if g == nil {
		return []string{}
	}
	return g
}
