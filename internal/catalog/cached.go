package catalog

import (
	"context"
	"errors"
	"flixmap/internal/models"
	"flixmap/internal/providers"
	"fmt"

	json "github.com/goccy/go-json"
)

// CachedReference keeps reference metadata lookups in the byte cache.
// Absent ids and transient failures are never cached.
type CachedReference struct {
	inner ReferenceCatalog
	cache providers.CacheProviderInterface
}

func NewCachedReference(inner ReferenceCatalog, cache providers.CacheProviderInterface) *CachedReference {
	return &CachedReference{inner: inner, cache: cache}
}

func metaKey(id int, t models.ContentType) string {
	return fmt.Sprintf("ref:%s:%d", t, id)
}

func (c *CachedReference) GetByID(ctx context.Context, id int, t models.ContentType) (ReferenceMeta, error) {
	key := metaKey(id, t)
	if raw, ok := c.cache.Get(key); ok {
		var meta ReferenceMeta
		if err := json.Unmarshal(raw, &meta); err == nil {
			return meta, nil
		}
	}

	meta, err := c.inner.GetByID(ctx, id, t)
	if err != nil {
		return meta, err
	}
	if raw, err := json.Marshal(meta); err == nil {
		c.cache.Set(key, raw)
	}
	return meta, nil
}

func (c *CachedReference) SearchByTitle(ctx context.Context, title string, t models.ContentType) ([]ReferenceMeta, error) {
	return c.inner.SearchByTitle(ctx, title, t)
}

// IsNotFound reports whether err marks an absent catalog entry.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
