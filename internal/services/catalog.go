package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/retailcore/pos-gateway/internal/cache"
	"github.com/retailcore/pos-gateway/internal/catalog"
)

// CatalogService serves catalog snapshots, preferring the Redis copy and
// falling back to a fresh load from the inventory API on a miss.
type CatalogService struct {
	loader *catalog.Loader
	cache  cache.Cache
	ttl    time.Duration
	logger *slog.Logger
}

func NewCatalogService(loader *catalog.Loader, c cache.Cache, ttl time.Duration, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		loader: loader,
		cache:  c,
		ttl:    ttl,
		logger: logger,
	}
}

func (s *CatalogService) Snapshot(ctx context.Context) (*catalog.Snapshot, error) {

	var cached catalog.Snapshot

	found, err := s.cache.Get(ctx, cache.SnapshotKey(), &cached)
	if err != nil {
		// cache trouble should not take the catalog down
		s.logger.Warn("catalog cache read failed", slog.String("error", err.Error()))
	}

	if found {
		return &cached, nil
	}

	return s.Refresh(ctx)
}

// Refresh loads a fresh snapshot from the inventory API and replaces the
// cached copy.
func (s *CatalogService) Refresh(ctx context.Context) (*catalog.Snapshot, error) {

	snapshot, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cache.SnapshotKey(), snapshot, s.ttl); err != nil {
		s.logger.Warn("catalog cache write failed", slog.String("error", err.Error()))
	}

	return snapshot, nil
}

// Invalidate drops the cached snapshot. Called after any submission that
// changes stock upstream, so the next read reflects the new quantities.
func (s *CatalogService) Invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, cache.SnapshotKey()); err != nil {
		s.logger.Warn("catalog cache invalidation failed", slog.String("error", err.Error()))
	}
}
