package tmdb

import (
	"context"
	"flixmap/internal/catalog"
	"flixmap/internal/models"
	"flixmap/internal/providers"
	"flixmap/internal/structures"
	"fmt"
)

// Catalog adapts Client to catalog.ReferenceCatalog.
type Catalog struct {
	client *Client
}

func NewCatalog(client *Client) *Catalog {
	return &Catalog{client: client}
}

func toMeta(r Result) catalog.ReferenceMeta {
	return catalog.ReferenceMeta{
		ID:         r.ID,
		Title:      r.DisplayTitle(),
		Year:       catalog.YearFromDate(r.Date()),
		Popularity: r.Popularity,
	}
}

func (c *Catalog) GetByID(ctx context.Context, id int, t models.ContentType) (catalog.ReferenceMeta, error) {
	res, err := c.client.Details(ctx, string(t), id)
	if err != nil {
		return catalog.ReferenceMeta{}, err
	}
	return toMeta(*res), nil
}

func (c *Catalog) SearchByTitle(ctx context.Context, title string, t models.ContentType) ([]catalog.ReferenceMeta, error) {
	resp, err := c.client.Search(ctx, string(t), title)
	if err != nil {
		return nil, err
	}
	metas := make([]catalog.ReferenceMeta, 0, len(resp.Results))
	for _, r := range resp.Results {
		metas = append(metas, toMeta(r))
	}
	return metas, nil
}

// ProvideCatalog builds the cached TMDB reference catalog from config.
func ProvideCatalog(conf *structures.Config, cache providers.CacheProviderInterface) (catalog.ReferenceCatalog, error) {
	client, err := New(conf.Reference.APIKey, conf.Reference.BaseURL, conf.Reference.Language, WithTimeout(conf.Reference.Timeout))
	if err != nil {
		return nil, fmt.Errorf("%w (set reference.apiKey or TMDB_API_KEY)", err)
	}
	return catalog.NewCachedReference(NewCatalog(client), cache), nil
}
