package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophmovies/internal/client/client"
	"github.com/dmitrijs2005/gophmovies/internal/client/config"
	"github.com/dmitrijs2005/gophmovies/internal/client/services"
	"github.com/dmitrijs2005/gophmovies/internal/logging"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	client.Client

	mu      sync.Mutex
	pages   map[int]*client.PageResponse
	movies  map[int]client.MovieDTO
	pingErr error
}

func (f *fakeClient) FetchPage(ctx context.Context, req client.PageRequest) (*client.PageResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.pages[req.Page]; ok {
		return p, nil
	}
	return &client.PageResponse{Page: req.Page}, nil
}

func (f *fakeClient) FetchMovie(ctx context.Context, id int) (*client.MovieDTO, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.movies[id]
	if !ok {
		return nil, client.ErrNotFound
	}
	return &m, nil
}

func (f *fakeClient) Ping(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pingErr
}

func (f *fakeClient) setPingErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pingErr = err
}

func strptr(s string) *string { return &s }

func newCatalog() *fakeClient {
	page1 := []client.MovieDTO{
		{ID: 1, Title: "Alien", VoteAverage: 8.1, ReleaseDate: "1979-05-25"},
		{ID: 2, Title: "Aliens", VoteAverage: 7.9, ReleaseDate: "1986-07-18"},
		{ID: 3, Title: "Heat", VoteAverage: 8.3, ReleaseDate: "1995-12-15", Overview: "A group of professional bank robbers.", PosterPath: strptr("/heat.jpg")},
		{ID: 4, Title: "Up", VoteAverage: 7.0, ReleaseDate: "2009-05-28"},
		{ID: 5, Title: "Jaws", VoteAverage: 7.7, ReleaseDate: "1975-06-20"},
	}
	page2 := []client.MovieDTO{
		{ID: 6, Title: "Se7en", VoteAverage: 8.4, ReleaseDate: "1995-09-22"},
		{ID: 7, Title: "Fargo", VoteAverage: 7.3, ReleaseDate: "1996-03-08"},
		{ID: 8, Title: "Casino", VoteAverage: 8.0, ReleaseDate: "1995-11-22"},
		{ID: 9, Title: "Brazil", VoteAverage: 7.5, ReleaseDate: "1985-02-20"},
		{ID: 10, Title: "Ronin", VoteAverage: 6.9, ReleaseDate: "1998-09-25"},
	}

	fc := &fakeClient{
		pages: map[int]*client.PageResponse{
			1: {Page: 1, Results: page1, TotalPages: 2, TotalResults: 10},
			2: {Page: 2, Results: page2, TotalPages: 2, TotalResults: 10},
		},
		movies: map[int]client.MovieDTO{},
	}
	for _, m := range append(page1, page2...) {
		fc.movies[m.ID] = m
	}
	return fc
}

// startApp builds an App over an in-memory cache, runs its search pipeline
// and loads the first session.
func startApp(t *testing.T, fc *fakeClient) (*App, *bytes.Buffer) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	db, err := client.InitDatabase(ctx, ":memory:")
	require.NoError(t, err)

	cfg := &config.Config{
		PageSize:            5,
		SearchDebounce:      10 * time.Millisecond,
		RequestTimeout:      time.Second,
		OnlineCheckInterval: time.Hour,
	}
	svc := services.NewMovieService(fc, db, logging.NewNop(), cfg.PageSize)

	var out bytes.Buffer
	a := newApp(cfg, fc, svc, logging.NewNop(), bufio.NewReader(strings.NewReader("")), &out)

	done := make(chan struct{})
	go func() {
		a.browser.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
		_ = db.Close()
	})

	require.NoError(t, a.awaitStream(ctx))
	return a, &out
}
