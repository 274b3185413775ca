// Package pagekeys stores per-movie pagination keys used to resume
// loading backwards (PrevKey) and forwards (NextKey).
package pagekeys

import (
	"context"

	"github.com/dmitrijs2005/gophmovies/internal/client/models"
)

type Repository interface {
	// UpsertAll writes keys, replacing any existing row for the same movie.
	UpsertAll(ctx context.Context, keys []models.PageKey) error

	// Get returns the key for movieID or (nil, nil) when absent.
	Get(ctx context.Context, movieID int) (*models.PageKey, error)

	// Clear removes all keys.
	Clear(ctx context.Context) error

	Count(ctx context.Context) (int, error)
}
