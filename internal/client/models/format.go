package models

import "time"

const (
	// PosterBaseURL is the catalog image host.
	PosterBaseURL = "https://image.tmdb.org/t/p/"

	// PosterSizeMedium is the default poster width segment.
	PosterSizeMedium = "w500"
)

// PosterURL returns the absolute poster URL at the given size segment
// (PosterSizeMedium when empty), or "" when the movie has no poster.
func (m Movie) PosterURL(size string) string {
	if m.PosterPath == nil || *m.PosterPath == "" {
		return ""
	}
	if size == "" {
		size = PosterSizeMedium
	}
	return PosterBaseURL + size + *m.PosterPath
}

// FormatReleaseDate turns "2023-03-15" into "15 Mar 2023".
// Missing or malformed dates yield "".
func FormatReleaseDate(date *string) string {
	if date == nil || *date == "" {
		return ""
	}
	t, err := time.Parse(time.DateOnly, *date)
	if err != nil {
		return ""
	}
	return t.Format("02 Jan 2006")
}
