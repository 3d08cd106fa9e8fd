package models

import (
	"strings"
)

type ContentType string

const (
	Movie  ContentType = "movie"
	Series ContentType = "tv"
)

func ParseContentType(s string) (ContentType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "movie", "movies":
		return Movie, true
	case "tv", "series", "tv series", "show", "tv-show":
		return Series, true
	}
	return "", false
}

func (t ContentType) Valid() bool {
	return t == Movie || t == Series
}

// Mapping links one reference-catalog entry to one provider-catalog entry.
// Stored mappings are never modified; callers must not mutate Genres.
type Mapping struct {
	TmdbID      int         `json:"tmdb_id"`
	TmdbTitle   string      `json:"tmdb_title"`
	Type        ContentType `json:"type"`
	FlixSlug    string      `json:"flix_slug"`
	FlixID      string      `json:"flix_id"`
	FlixTitle   string      `json:"flix_title"`
	FlixYear    *int        `json:"flix_year"`
	FlixURL     string      `json:"flix_url"`
	Description string      `json:"description"`
	Released    string      `json:"released"`
	Genres      []string    `json:"genres"`
	Poster      string      `json:"poster,omitempty"`
}

// SlugID derives the provider internal id from a slug such as
// "movie/watch-inception-19764" (-> "19764").
func SlugID(slug string) string {
	if i := strings.LastIndex(slug, "-"); i >= 0 {
		return slug[i+1:]
	}
	return slug
}

// SlugContentType reports movie when any path segment of the slug is "movie".
func SlugContentType(slug string) ContentType {
	for _, segment := range strings.Split(slug, "/") {
		if segment == "movie" {
			return Movie
		}
	}
	return Series
}
