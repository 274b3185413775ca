// Package metadata stores small key/value facts about the local cache,
// such as the catalog's total page count and the last full refresh time.
package metadata

import (
	"context"
	"time"
)

// Well-known keys.
const (
	// KeyTotalPages holds the last total page count reported by the catalog.
	KeyTotalPages = "total_pages"

	// KeyLastRefresh holds the completion time of the last successful refresh.
	KeyLastRefresh = "last_refresh"
)

type Repository interface {
	// Get returns the value for key; ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error

	GetInt(ctx context.Context, key string) (int, bool, error)
	SetInt(ctx context.Context, key string, value int) error
	GetTime(ctx context.Context, key string) (time.Time, bool, error)
	SetTime(ctx context.Context, key string, value time.Time) error
}
