// Package models defines client-side data models for the movie cache.
package models

// CachedMovie is one row of the local movie cache.
type CachedMovie struct {
	// ID is the catalog identifier; unique in the cache.
	ID int

	Title    string
	Overview string

	// PosterPath is the relative poster path returned by the catalog.
	PosterPath *string

	// Rating is the average vote, 0–10.
	Rating float64

	// ReleaseDate is an ISO date (yyyy-mm-dd) or nil when unknown.
	ReleaseDate *string

	// Page is the catalog page that last wrote this row.
	Page int
}

// Favourite marks a movie id as favourite. Presence is the whole payload.
type Favourite struct {
	MovieID int
}

// PageKey is the pagination bookkeeping stored per cached movie.
// A nil PrevKey means the movie came from the first page; a nil NextKey
// means no page follows.
type PageKey struct {
	MovieID int
	PrevKey *int
	NextKey *int
}

// Movie is the read view of a cached movie annotated with favourite state.
// It is rebuilt on every query and never stored.
type Movie struct {
	ID          int
	Title       string
	Overview    string
	PosterPath  *string
	Rating      float64
	ReleaseDate *string
	IsFavourite bool
}

// ToMovie converts a cache row into its view with the given favourite flag.
func (c CachedMovie) ToMovie(isFavourite bool) Movie {
	return Movie{
		ID:          c.ID,
		Title:       c.Title,
		Overview:    c.Overview,
		PosterPath:  c.PosterPath,
		Rating:      c.Rating,
		ReleaseDate: c.ReleaseDate,
		IsFavourite: isFavourite,
	}
}
