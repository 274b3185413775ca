package client

import (
	"context"
)

// Client is the remote movie catalog.
type Client interface {
	// FetchPage returns one page of the discover listing.
	FetchPage(ctx context.Context, req PageRequest) (*PageResponse, error)

	// FetchMovie returns details for a single movie.
	FetchMovie(ctx context.Context, id int) (*MovieDTO, error)

	// Ping reports whether the catalog is reachable with the configured token.
	Ping(ctx context.Context) error
}
