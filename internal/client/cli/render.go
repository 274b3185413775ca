package cli

import (
	"fmt"
	"io"

	"github.com/dmitrijs2005/gophmovies/internal/client/models"
)

func formatMovie(i int, m models.Movie) string {
	fav := " "
	if m.IsFavourite {
		fav = "*"
	}
	date := models.FormatReleaseDate(m.ReleaseDate)
	if date == "" {
		date = "no date"
	}
	return fmt.Sprintf("%3d. %s %s (%s) %.1f [id %d]", i+1, fav, m.Title, date, m.Rating, m.ID)
}

func printDetails(w io.Writer, m models.Movie) {
	fmt.Fprintf(w, "%s [id %d]\n", m.Title, m.ID)
	if date := models.FormatReleaseDate(m.ReleaseDate); date != "" {
		fmt.Fprintf(w, "Released: %s\n", date)
	}
	fmt.Fprintf(w, "Rating: %.1f\n", m.Rating)
	fmt.Fprintf(w, "Favourite: %t\n", m.IsFavourite)
	if url := m.PosterURL(models.PosterSizeMedium); url != "" {
		fmt.Fprintf(w, "Poster: %s\n", url)
	}
	if m.Overview != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, m.Overview)
	}
}

func (a *App) printWindow() {
	p := a.stream.Pager
	if p == nil {
		return
	}
	items := p.Items()
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No movies.")
		return
	}
	for i, m := range items {
		fmt.Fprintln(a.out, formatMovie(i, m))
	}
	if p.Status().AppendEndReached {
		fmt.Fprintln(a.out, "(end of list)")
	}
}
