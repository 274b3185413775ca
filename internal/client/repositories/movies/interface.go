package movies

import (
	"context"

	"github.com/dmitrijs2005/gophmovies/internal/client/models"
)

// Query describes one window read from the cache.
type Query struct {
	// Search is a case-insensitive title substring; empty matches all.
	Search string

	Filter models.Filter

	// Limit caps the window size; zero or negative means no limit.
	Limit  int
	Offset int
}

type Repository interface {
	// UpsertAll inserts movies or overwrites existing rows by id.
	UpsertAll(ctx context.Context, movies []models.CachedMovie) error

	Upsert(ctx context.Context, movie models.CachedMovie) error

	// ClearAll removes every cached movie.
	ClearAll(ctx context.Context) error

	// GetByID returns the cached row or (nil, nil) when absent.
	GetByID(ctx context.Context, id int) (*models.CachedMovie, error)

	// GetMovie returns the favourite-annotated view or (nil, nil) when absent.
	GetMovie(ctx context.Context, id int) (*models.Movie, error)

	// Query returns an ordered, filtered window of favourite-annotated movies.
	Query(ctx context.Context, q Query) ([]models.Movie, error)

	Count(ctx context.Context) (int, error)
}
