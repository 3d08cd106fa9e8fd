package services

import (
	"crypto/subtle"
	"errors"
	"flixmap/internal/models"
	"flixmap/internal/providers"
	"flixmap/internal/structures"
	"flixmap/internal/timecode"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	VoteUp   = "upvote"
	VoteDown = "downvote"
)

// RawInterval carries the boundaries as submitted, numbers or clock text.
type RawInterval struct {
	Start timecode.Value `json:"start"`
	End   timecode.Value `json:"end"`
}

type BestResult struct {
	Best models.SkipSubmission
	All  []models.SkipSubmission
}

type SkipServiceInterface interface {
	Submit(key models.EpisodeKey, intro, outro RawInterval) (models.SkipSubmission, error)
	BestFor(key models.EpisodeKey) (BestResult, error)
	Vote(id, direction string) (models.SkipSubmission, error)
	Verify(id, secret string) (models.SkipSubmission, error)
	PurgeEpisode(key models.EpisodeKey, secret string) (int, error)
	PurgeAll(secret string) (int, error)
}

type SkipService struct {
	store   *models.SkipStore
	conf    structures.SkipConfig
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
	now     func() time.Time
}

func NewSkipService(conf *structures.Config, store *models.SkipStore, logger providers.Logger, metrics providers.MetricsProviderInterface) *SkipService {
	skip := conf.Skip
	if skip.OutlierThreshold <= 0 {
		skip.OutlierThreshold = 30
	}
	if skip.MinTrusted <= 0 {
		skip.MinTrusted = 3
	}
	if skip.TrustedVotes <= 0 {
		skip.TrustedVotes = 3
	}
	return &SkipService{
		store:   store,
		conf:    skip,
		logger:  logger,
		metrics: metrics,
		now:     time.Now,
	}
}

func parseInterval(name string, raw RawInterval) (models.Interval, error) {
	if raw.Start.IsZero() || raw.End.IsZero() {
		return models.Interval{}, invalid(name, "start and end are required")
	}
	start, err := raw.Start.Seconds()
	if err != nil {
		return models.Interval{}, invalid(name+".start", err.Error())
	}
	end, err := raw.End.Seconds()
	if err != nil {
		return models.Interval{}, invalid(name+".end", err.Error())
	}
	if start < 0 || end < 0 {
		return models.Interval{}, invalid(name, "timestamps must not be negative")
	}
	if start >= end {
		return models.Interval{}, invalid(name, "start must be before end")
	}
	return models.Interval{Start: start, End: end}, nil
}

// Submit validates and stores a new submission. When enough trusted
// submissions exist a boundary further than the threshold from their mean
// marks the new one as an outlier with a starting score of -1.
func (s *SkipService) Submit(key models.EpisodeKey, intro, outro RawInterval) (models.SkipSubmission, error) {
	in, err := parseInterval("intro", intro)
	if err != nil {
		s.metrics.IncSkipSubmissions("rejected")
		return models.SkipSubmission{}, err
	}
	out, err := parseInterval("outro", outro)
	if err != nil {
		s.metrics.IncSkipSubmissions("rejected")
		return models.SkipSubmission{}, err
	}

	episode := key.String()
	created := s.now()
	sub, err := s.store.Append(episode, func(existing []models.SkipSubmission) (models.SkipSubmission, error) {
		votes := 0
		if s.isOutlier(in, out, s.trusted(existing)) {
			votes = -1
		}
		return models.SkipSubmission{
			ID:        fmt.Sprintf("%s-%d-%s", episode, created.UnixMilli(), strings.ReplaceAll(uuid.NewString(), "-", "")[:8]),
			Intro:     in,
			Outro:     out,
			Votes:     votes,
			Verified:  false,
			CreatedAt: created,
		}, nil
	})
	if err != nil {
		s.logger.Errorf(providers.TypeSkip, "Saving submission for %s failed: %s", episode, err)
		return models.SkipSubmission{}, err
	}

	outcome := "accepted"
	if sub.Votes < 0 {
		outcome = "outlier"
	}
	s.metrics.IncSkipSubmissions(outcome)
	s.metrics.SetRecordsTotal("skip_episodes", s.store.EpisodeCount())
	s.logger.Infof(providers.TypeSkip, "Stored submission %s (%s)", sub.ID, outcome)
	return sub, nil
}

// trusted returns the verified submissions, or when none are verified the
// ones that reached the trusted vote score.
func (s *SkipService) trusted(existing []models.SkipSubmission) []models.SkipSubmission {
	var verified, voted []models.SkipSubmission
	for _, sub := range existing {
		if sub.Verified {
			verified = append(verified, sub)
		}
		if sub.Votes >= s.conf.TrustedVotes {
			voted = append(voted, sub)
		}
	}
	if len(verified) > 0 {
		return verified
	}
	return voted
}

func (s *SkipService) isOutlier(in, out models.Interval, trusted []models.SkipSubmission) bool {
	if len(trusted) < s.conf.MinTrusted {
		return false
	}
	var sums [4]float64
	for _, t := range trusted {
		sums[0] += float64(t.Intro.Start)
		sums[1] += float64(t.Intro.End)
		sums[2] += float64(t.Outro.Start)
		sums[3] += float64(t.Outro.End)
	}
	values := [4]int{in.Start, in.End, out.Start, out.End}
	n := float64(len(trusted))
	limit := float64(s.conf.OutlierThreshold)
	for i, v := range values {
		if math.Abs(float64(v)-sums[i]/n) > limit {
			return true
		}
	}
	return false
}

// BestFor returns the highest scored visible submission, the earliest one on
// ties, together with every visible submission in insertion order.
func (s *SkipService) BestFor(key models.EpisodeKey) (BestResult, error) {
	var visible []models.SkipSubmission
	for _, sub := range s.store.List(key.String()) {
		if sub.Visible() {
			visible = append(visible, sub)
		}
	}
	if len(visible) == 0 {
		return BestResult{}, ErrNotFound
	}
	best := visible[0]
	for _, sub := range visible[1:] {
		if sub.Votes > best.Votes {
			best = sub
		}
	}
	return BestResult{Best: best, All: visible}, nil
}

func (s *SkipService) Vote(id, direction string) (models.SkipSubmission, error) {
	var delta int
	switch direction {
	case VoteUp:
		delta = 1
	case VoteDown:
		delta = -1
	default:
		return models.SkipSubmission{}, invalid("direction", "must be upvote or downvote")
	}
	if strings.TrimSpace(id) == "" {
		return models.SkipSubmission{}, invalid("id", "required")
	}

	sub, err := s.store.Update(id, func(v *models.SkipSubmission) { v.Votes += delta })
	if err != nil {
		return models.SkipSubmission{}, s.mutationError(id, err)
	}
	s.logger.Debugf(providers.TypeSkip, "%s on %s, score %d", direction, id, sub.Votes)
	return sub, nil
}

func (s *SkipService) Verify(id, secret string) (models.SkipSubmission, error) {
	if err := s.authorize(secret); err != nil {
		return models.SkipSubmission{}, err
	}
	sub, err := s.store.Update(id, func(v *models.SkipSubmission) { v.Verified = true })
	if err != nil {
		return models.SkipSubmission{}, s.mutationError(id, err)
	}
	s.logger.Infof(providers.TypeSkip, "Verified %s", id)
	return sub, nil
}

func (s *SkipService) PurgeEpisode(key models.EpisodeKey, secret string) (int, error) {
	if err := s.authorize(secret); err != nil {
		return 0, err
	}
	removed, err := s.store.DeleteEpisode(key.String())
	if err != nil {
		s.logger.Errorf(providers.TypeSkip, "Purging %s failed: %s", key, err)
		return 0, err
	}
	s.logger.Infof(providers.TypeSkip, "Purged %d submissions for %s", removed, key)
	s.metrics.SetRecordsTotal("skip_episodes", s.store.EpisodeCount())
	return removed, nil
}

func (s *SkipService) PurgeAll(secret string) (int, error) {
	if err := s.authorize(secret); err != nil {
		return 0, err
	}
	removed, err := s.store.Clear()
	if err != nil {
		s.logger.Errorf(providers.TypeSkip, "Purging all submissions failed: %s", err)
		return 0, err
	}
	s.logger.Infof(providers.TypeSkip, "Purged all %d submissions", removed)
	s.metrics.SetRecordsTotal("skip_episodes", 0)
	return removed, nil
}

// authorize compares the caller's secret with the configured one. An empty
// configured secret disables every admin operation.
func (s *SkipService) authorize(secret string) error {
	want := s.conf.AdminSecret
	if want == "" || subtle.ConstantTimeCompare([]byte(secret), []byte(want)) != 1 {
		s.logger.Warnf(providers.TypeSkip, "Rejected admin operation")
		return ErrForbidden
	}
	return nil
}

func (s *SkipService) mutationError(id string, err error) error {
	if errors.Is(err, models.ErrSubmissionNotFound) {
		return ErrNotFound
	}
	s.logger.Errorf(providers.TypeSkip, "Updating %s failed: %s", id, err)
	return err
}
