package models

import (
	"fmt"
	"strconv"
	"strings"
)

// SortMode selects the primary ordering of query results.
type SortMode string

const (
	SortNone            SortMode = "none"
	SortRatingDesc      SortMode = "rating_desc"
	SortReleaseDateDesc SortMode = "release_date_desc"
)

// ParseSortMode accepts the canonical names and the short CLI forms
// "rating", "release" and "date". The empty string means SortNone.
func ParseSortMode(s string) (SortMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return SortNone, nil
	case "rating", "rating_desc":
		return SortRatingDesc, nil
	case "release", "date", "release_date", "release_date_desc":
		return SortReleaseDateDesc, nil
	default:
		return SortNone, fmt.Errorf("unknown sort mode %q", s)
	}
}

// Filter narrows and orders a movie query. It is never persisted.
type Filter struct {
	// MinRating is an inclusive lower bound on rating.
	MinRating float64

	// ReleaseYear, when set, must equal the year of the release date.
	ReleaseYear *int

	Sort SortMode
}

// Equal reports whether two filters select the same rows in the same order.
func (f Filter) Equal(o Filter) bool {
	if f.MinRating != o.MinRating || f.sortMode() != o.sortMode() {
		return false
	}
	if (f.ReleaseYear == nil) != (o.ReleaseYear == nil) {
		return false
	}
	return f.ReleaseYear == nil || *f.ReleaseYear == *o.ReleaseYear
}

func (f Filter) sortMode() SortMode {
	if f.Sort == "" {
		return SortNone
	}
	return f.Sort
}

func (f Filter) String() string {
	year := "any"
	if f.ReleaseYear != nil {
		year = strconv.Itoa(*f.ReleaseYear)
	}
	return fmt.Sprintf("rating>=%.1f year=%s sort=%s", f.MinRating, year, f.sortMode())
}

// ParseFilter reads "key=value" tokens (rating, year, sort) on top of base.
// "year=any" clears the year.
func ParseFilter(base Filter, tokens []string) (Filter, error) {
	f := base
	for _, tok := range tokens {
		key, value, ok := strings.Cut(tok, "=")
		if !ok {
			return base, fmt.Errorf("expected key=value, got %q", tok)
		}
		switch strings.ToLower(key) {
		case "rating", "min_rating":
			r, err := strconv.ParseFloat(value, 64)
			if err != nil || r < 0 || r > 10 {
				return base, fmt.Errorf("rating must be a number between 0 and 10, got %q", value)
			}
			f.MinRating = r
		case "year":
			if value == "" || strings.EqualFold(value, "any") {
				f.ReleaseYear = nil
				continue
			}
			if len(value) != 4 {
				return base, fmt.Errorf("year must have four digits, got %q", value)
			}
			y, err := strconv.Atoi(value)
			if err != nil {
				return base, fmt.Errorf("year must have four digits, got %q", value)
			}
			f.ReleaseYear = &y
		case "sort":
			s, err := ParseSortMode(value)
			if err != nil {
				return base, err
			}
			f.Sort = s
		default:
			return base, fmt.Errorf("unknown filter %q", key)
		}
	}
	return f, nil
}
