package services

import (
	"flixmap/internal/models"
	"flixmap/internal/similarity"
)

// Candidate is one search hit from either catalog.
type Candidate struct {
	Key    string
	Title  string
	Year   *int
	Type   models.ContentType
	Poster string
}

// Target is what the candidates are matched against.
type Target struct {
	Title string
	Year  *int
	Type  models.ContentType
}

// Matcher picks the first acceptable candidate in the order given and
// returns its index.
type Matcher interface {
	Match(target Target, candidates []Candidate) (int, bool)
}

// SimilarityMatcher accepts a candidate of the target's type whose title
// similarity beats Strict outright, or beats Loose when the candidate year is
// unknown or within YearTolerance of the target year.
type SimilarityMatcher struct {
	Strict        float64
	Loose         float64
	YearTolerance int
}

var (
	ForwardPolicy = SimilarityMatcher{Strict: 0.95, Loose: 0.85, YearTolerance: 0}
	CrawlerPolicy = SimilarityMatcher{Strict: 0.98, Loose: 0.90, YearTolerance: 1}
)

func (m SimilarityMatcher) Match(target Target, candidates []Candidate) (int, bool) {
	for i, c := range candidates {
		if target.Type != "" && c.Type != target.Type {
			continue
		}
		score := similarity.Titles(target.Title, c.Title)
		if score > m.Strict {
			return i, true
		}
		if score > m.Loose && m.yearFits(c.Year, target.Year) {
			return i, true
		}
	}
	return -1, false
}

func (m SimilarityMatcher) yearFits(candidate, target *int) bool {
	if candidate == nil {
		return true
	}
	if target == nil {
		return false
	}
	return abs(*candidate-*target) <= m.YearTolerance
}

// YearWindowMatcher accepts the first candidate whose year is unknown or
// within Window of the target year. Without a target year only candidates
// with an unknown year are accepted. Titles are not compared.
type YearWindowMatcher struct {
	Window int
}

func (m YearWindowMatcher) Match(target Target, candidates []Candidate) (int, bool) {
	for i, c := range candidates {
		if c.Year == nil {
			return i, true
		}
		if target.Year != nil && abs(*c.Year-*target.Year) <= m.Window {
			return i, true
		}
	}
	return -1, false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
