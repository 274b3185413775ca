// Package favourites persists the set of favourite movie ids.
//
// A row's presence marks a movie as favourite. Both Add and Remove are
// idempotent. Favourites are independent of the movie cache and survive
// a refresh that clears it.
package favourites

import "context"

type Repository interface {
	// Add marks id as favourite. Adding an existing favourite is a no-op.
	Add(ctx context.Context, id int) error

	// Remove unmarks id. Removing an absent favourite is a no-op.
	Remove(ctx context.Context, id int) error

	Exists(ctx context.Context, id int) (bool, error)

	// List returns favourite ids in ascending order.
	List(ctx context.Context) ([]int, error)
}
