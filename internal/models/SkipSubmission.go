package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// HiddenVotes is the score at and below which a submission is no longer served.
const HiddenVotes = -2

type Interval struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type SkipSubmission struct {
	ID        string    `json:"id"`
	Intro     Interval  `json:"intro"`
	Outro     Interval  `json:"outro"`
	Votes     int       `json:"votes"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"created_at"`
}

func (s SkipSubmission) Visible() bool {
	return s.Votes > HiddenVotes
}

// EpisodeKey groups the submissions for one episode of one reference entry.
type EpisodeKey struct {
	TmdbID  int
	Season  int
	Episode int
}

func (k EpisodeKey) String() string {
	return fmt.Sprintf("%d:%d:%d", k.TmdbID, k.Season, k.Episode)
}

func ParseEpisodeKey(s string) (EpisodeKey, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return EpisodeKey{}, fmt.Errorf("episode key %q: want id:season:episode", s)
	}
	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return EpisodeKey{}, fmt.Errorf("episode key %q: bad field %q", s, p)
		}
		nums[i] = n
	}
	return EpisodeKey{TmdbID: nums[0], Season: nums[1], Episode: nums[2]}, nil
}
