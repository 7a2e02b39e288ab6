package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"folio-backend/internal/cache"
	"folio-backend/internal/content"
)

const (
	CacheKeyPrefix = "catalog:"
	cacheKeyAll    = CacheKeyPrefix + "all"
	cacheKeySlug   = CacheKeyPrefix + "slug:"
)

// CachedRepository fronts a slower source. Cache failures are logged and
// bypassed; not-found results are never cached.
type CachedRepository struct {
	next  Repository
	cache cache.Cache
	ttl   time.Duration
	log   *slog.Logger
}

func NewCachedRepository(next Repository, c cache.Cache, ttl time.Duration, log *slog.Logger) *CachedRepository {
	return &CachedRepository{next: next, cache: c, ttl: ttl, log: log}
}

func (r *CachedRepository) ListAll(ctx context.Context) ([]content.CaseStudy, error) {
	var items []content.CaseStudy
	if r.load(ctx, cacheKeyAll, &items) {
		return items, nil
	}

	items, err := r.next.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	r.store(ctx, cacheKeyAll, items)
	return items, nil
}

func (r *CachedRepository) FindBySlug(ctx context.Context, slug string) (content.CaseStudy, error) {
	key := cacheKeySlug + slug
	var item content.CaseStudy
	if r.load(ctx, key, &item) {
		return item, nil
	}

	item, err := r.next.FindBySlug(ctx, slug)
	if err != nil {
		return content.CaseStudy{}, err
	}
	r.store(ctx, key, item)
	return item, nil
}

// Purge drops every catalog entry this repository cached.
func (r *CachedRepository) Purge(ctx context.Context) error {
	return r.cache.DeletePrefix(ctx, CacheKeyPrefix)
}

func (r *CachedRepository) load(ctx context.Context, key string, dst any) bool {
	raw, ok, err := r.cache.Get(ctx, key)
	if err != nil {
		r.log.Warn("catalog cache: get failed", slog.String("key", key), slog.String("error", err.Error()))
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		r.log.Warn("catalog cache: corrupt entry", slog.String("key", key), slog.String("error", err.Error()))
		_ = r.cache.Delete(ctx, key)
		return false
	}
	return true
}

func (r *CachedRepository) store(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		r.log.Warn("catalog cache: encode failed", slog.String("key", key), slog.String("error", err.Error()))
		return
	}
	if err := r.cache.Set(ctx, key, raw, r.ttl); err != nil && !errors.Is(err, context.Canceled) {
		r.log.Warn("catalog cache: set failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}
