package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophmovies/internal/client/models"
	"github.com/dmitrijs2005/gophmovies/internal/client/paging"
	"github.com/dmitrijs2005/gophmovies/internal/common"
)

var errPipelineStopped = errors.New("search pipeline stopped")

// awaitStream switches to the next session published by the browser and
// loads its first window.
func (a *App) awaitStream(ctx context.Context) error {
	select {
	case s, ok := <-a.browser.Streams():
		if !ok {
			return errPipelineStopped
		}
		a.stream = s
	case <-ctx.Done():
		return ctx.Err()
	}

	err := a.stream.Pager.Refresh(ctx)
	a.printWindow()
	return err
}

func (a *App) pager(ctx context.Context) (*paging.Pager, error) {
	p := a.stream.Pager
	if p == nil {
		return nil, errPipelineStopped
	}
	if p.Status().State == paging.Idle {
		if err := p.Refresh(ctx); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// List prints the loaded window of the current session.
func (a *App) List(ctx context.Context) error {
	if _, err := a.pager(ctx); err != nil {
		return err
	}
	a.printWindow()
	return nil
}

// More loads the next page.
func (a *App) More(ctx context.Context) error {
	p, err := a.pager(ctx)
	if err != nil {
		return err
	}
	before := len(p.Items())
	if err := p.Append(ctx); err != nil {
		return err
	}
	if len(p.Items()) == before && p.Status().AppendEndReached {
		fmt.Fprintln(a.out, "End of list.")
		return nil
	}
	a.printWindow()
	return nil
}

// Prev loads the page before the first loaded one.
func (a *App) Prev(ctx context.Context) error {
	p, err := a.pager(ctx)
	if err != nil {
		return err
	}
	before := len(p.Items())
	if err := p.Prepend(ctx); err != nil {
		return err
	}
	if len(p.Items()) == before && p.Status().PrependEndReached {
		fmt.Fprintln(a.out, "Start of list.")
		return nil
	}
	a.printWindow()
	return nil
}

// Refresh reloads the session from the catalog. An optional 1-based
// position resumes near that movie.
func (a *App) Refresh(ctx context.Context, args []string) error {
	p := a.stream.Pager
	if p == nil {
		return errPipelineStopped
	}
	if len(args) > 0 {
		pos, err := strconv.Atoi(args[0])
		if err != nil || pos < 1 {
			return fmt.Errorf("position must be a positive number, got %q: %w", args[0], common.ErrorInvalidInput)
		}
		p.SetAnchor(pos - 1)
	}
	err := p.Refresh(ctx)
	a.printWindow()
	return err
}

// Search replaces the search text. An empty text clears it.
func (a *App) Search(ctx context.Context, args []string) error {
	q := strings.TrimSpace(strings.Join(args, " "))
	if q == a.stream.Query {
		fmt.Fprintln(a.out, "Search unchanged.")
		return nil
	}
	a.browser.SetQuery(q)
	return a.awaitStream(ctx)
}

// Filter prints the current filter, or applies key=value tokens on top of it.
func (a *App) Filter(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Filter:", a.stream.Filter)
		return nil
	}
	f, err := models.ParseFilter(a.stream.Filter, args)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrorInvalidInput, err)
	}
	if f.Equal(a.stream.Filter) {
		fmt.Fprintln(a.out, "Filter unchanged.")
		return nil
	}
	a.browser.SetFilter(f)
	return a.awaitStream(ctx)
}

// Clear resets both the search text and the filter.
func (a *App) Clear(ctx context.Context) error {
	if a.stream.Query != "" {
		a.browser.SetQuery("")
		if err := a.awaitStream(ctx); err != nil {
			return err
		}
	}
	if !a.stream.Filter.Equal(models.Filter{}) {
		a.browser.SetFilter(models.Filter{})
		return a.awaitStream(ctx)
	}
	return nil
}

// Show prints the details of one movie.
func (a *App) Show(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	m, err := a.svc.GetMovieByID(ctx, id)
	if err != nil {
		return err
	}
	if m == nil {
		return fmt.Errorf("movie %d: %w", id, common.ErrorNotFound)
	}
	printDetails(a.out, *m)
	return nil
}

func (a *App) Fav(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	if err := a.svc.AddToFavourites(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Movie %d added to favourites.\n", id)
	return nil
}

func (a *App) Unfav(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	if err := a.svc.RemoveFromFavourites(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Movie %d removed from favourites.\n", id)
	return nil
}

func (a *App) Toggle(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	on, err := a.svc.ToggleFavourite(ctx, id)
	if err != nil {
		return err
	}
	if on {
		fmt.Fprintf(a.out, "Movie %d added to favourites.\n", id)
	} else {
		fmt.Fprintf(a.out, "Movie %d removed from favourites.\n", id)
	}
	return nil
}

// Favs lists cached favourite movies.
func (a *App) Favs(ctx context.Context) error {
	favs, err := a.svc.Favourites(ctx)
	if err != nil {
		return err
	}
	if len(favs) == 0 {
		fmt.Fprintln(a.out, "No favourites yet.")
		return nil
	}
	for i, m := range favs {
		fmt.Fprintln(a.out, formatMovie(i, m))
	}
	return nil
}

// Status prints the connectivity mode, the session inputs and the time of
// the last full refresh.
func (a *App) Status(ctx context.Context) error {
	at, ok, err := a.svc.LastRefresh(ctx)
	if err != nil {
		return err
	}
	last := "never"
	if ok {
		last = at.Local().Format(time.DateTime)
	}

	mode := a.Mode()
	if mode == "" {
		mode = "unknown"
	}
	fmt.Fprintf(a.out, "Mode: %s\n", mode)
	fmt.Fprintf(a.out, "Search: %q\n", a.stream.Query)
	fmt.Fprintf(a.out, "Filter: %s\n", a.stream.Filter)
	fmt.Fprintf(a.out, "Last refresh: %s\n", last)

	if p := a.stream.Pager; p != nil {
		st := p.Status()
		fmt.Fprintf(a.out, "Session: %s (%s), %d loaded, start reached: %t, end reached: %t\n",
			st.State, st.Intent, len(p.Items()), st.PrependEndReached, st.AppendEndReached)
		if st.Err != nil {
			fmt.Fprintf(a.out, "Last error: %v\n", st.Err)
		}
	}
	return nil
}

func parseID(args []string) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("movie id is required: %w", common.ErrorInvalidInput)
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("movie id must be a positive number, got %q: %w", args[0], common.ErrorInvalidInput)
	}
	return id, nil
}
