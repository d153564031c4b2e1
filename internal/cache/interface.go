package cache

import (
	"context"
	"time"
)

type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

func Key(prefix string, id string) string {
	return prefix + ":" + id
}

const (
	CatalogKeyPrefix   = "catalog"
	DashboardKeyPrefix = "dashboard"
	SaleKeyPrefix      = "sale"
)

// SnapshotKey is the single cache slot holding the current catalog snapshot.
func SnapshotKey() string {
	return Key(CatalogKeyPrefix, "snapshot")
}
