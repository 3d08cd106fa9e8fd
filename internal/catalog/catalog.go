// Package catalog describes the two external catalogs the resolver works
// against: the reference catalog (TMDB) and the provider catalog reached
// through the scraping gateway.
package catalog

import (
	"context"
	"errors"
	"flixmap/internal/models"
	"strconv"
)

// ErrNotFound marks an id or slug the catalog does not know. Any other error
// from a catalog is transient.
var ErrNotFound = errors.New("not found in catalog")

type ReferenceMeta struct {
	ID         int     `json:"id"`
	Title      string  `json:"title"`
	Year       *int    `json:"year"`
	Popularity float64 `json:"popularity"`
}

// Listing is one provider search hit.
type Listing struct {
	Slug   string             `json:"slug"`
	Title  string             `json:"title"`
	Year   *int               `json:"year"`
	Type   models.ContentType `json:"type"`
	Poster string             `json:"poster"`
}

type Detail struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Year        *int     `json:"year"`
	Description string   `json:"description"`
	Released    string   `json:"released"`
	Genres      []string `json:"genres"`
	Poster      string   `json:"poster"`
}

type ReferenceCatalog interface {
	GetByID(ctx context.Context, id int, t models.ContentType) (ReferenceMeta, error)
	SearchByTitle(ctx context.Context, title string, t models.ContentType) ([]ReferenceMeta, error)
}

type ProviderCatalog interface {
	SearchByTitle(ctx context.Context, title string) ([]Listing, error)
	GetDetails(ctx context.Context, slug string) (Detail, error)
}

// YearFromDate reads the leading four-digit year of a date such as
// "2010-07-15". Anything shorter or non-numeric yields nil.
func YearFromDate(date string) *int {
	if len(date) < 4 {
		return nil
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil || year <= 0 {
		return nil
	}
	return &year
}
