package client

import (
	"strings"

	"github.com/dmitrijs2005/gophmovies/internal/client/models"
)

// Default discover ordering. Filters are applied locally, so the remote
// listing is always fetched in this order.
const SortPopularityDesc = "popularity.desc"

// PageRequest selects one page of the discover listing.
type PageRequest struct {
	Page   int
	SortBy string

	// ReleaseYear and MinRating are optional remote-side filters.
	ReleaseYear *int
	MinRating   *float64
}

// PageResponse is one page of the discover listing.
type PageResponse struct {
	Page         int        `json:"page"`
	Results      []MovieDTO `json:"results"`
	TotalPages   int        `json:"total_pages"`
	TotalResults int        `json:"total_results"`
}

// MovieDTO is a movie as returned by the catalog.
type MovieDTO struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  *string `json:"poster_path"`
	VoteAverage float64 `json:"vote_average"`
	ReleaseDate string  `json:"release_date"`
}

// ToCached converts the DTO into a cache row written under page.
// Blank release dates become nil.
func (d MovieDTO) ToCached(page int) models.CachedMovie {
	m := models.CachedMovie{
		ID:         d.ID,
		Title:      d.Title,
		Overview:   d.Overview,
		PosterPath: d.PosterPath,
		Rating:     d.VoteAverage,
		Page:       page,
	}
	if date := strings.TrimSpace(d.ReleaseDate); date != "" {
		m.ReleaseDate = &date
	}
	return m
}
