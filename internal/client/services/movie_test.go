package services

import (
	"context"
	"database/sql"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophmovies/internal/client/client"
	"github.com/dmitrijs2005/gophmovies/internal/client/migrations"
	"github.com/dmitrijs2005/gophmovies/internal/client/models"
	"github.com/dmitrijs2005/gophmovies/internal/client/repositories/movies"
	"github.com/dmitrijs2005/gophmovies/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, migrations.Up(context.Background(), db))
	return db
}

type fakeClient struct {
	client.Client

	mu       sync.Mutex
	movie    *client.MovieDTO
	movieErr error
	page     *client.PageResponse
	gate     chan struct{}

	movieCalls atomic.Int32
}

func (f *fakeClient) FetchMovie(ctx context.Context, id int) (*client.MovieDTO, error) {
	f.movieCalls.Add(1)
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.movieErr != nil {
		return nil, f.movieErr
	}
	m := *f.movie
	return &m, nil
}

func (f *fakeClient) FetchPage(ctx context.Context, req client.PageRequest) (*client.PageResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.page == nil || req.Page != 1 {
		return &client.PageResponse{Page: req.Page}, nil
	}
	return f.page, nil
}

func strptr(s string) *string { return &s }

func newService(t *testing.T, fc *fakeClient) (MovieService, *sql.DB) {
	t.Helper()
	db := setupDB(t)
	return NewMovieService(fc, db, logging.NewNop(), 10), db
}

func TestGetMovieByID_RemoteThenCached(t *testing.T) {
	fc := &fakeClient{movie: &client.MovieDTO{
		ID: 603, Title: "The Matrix", Overview: "Neo", PosterPath: strptr("/m.jpg"),
		VoteAverage: 8.2, ReleaseDate: "1999-03-30",
	}}
	svc, db := newService(t, fc)
	ctx := context.Background()

	m, err := svc.GetMovieByID(ctx, 603)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "The Matrix", m.Title)
	assert.Equal(t, 8.2, m.Rating)
	assert.Equal(t, "1999-03-30", *m.ReleaseDate)
	assert.False(t, m.IsFavourite)

	cached, err := movies.NewSQLiteRepository(db).GetByID(ctx, 603)
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, 1, cached.Page)
}

func TestGetMovieByID_PreservesCachedPage(t *testing.T) {
	fc := &fakeClient{movie: &client.MovieDTO{ID: 5, Title: "New title", VoteAverage: 7}}
	svc, db := newService(t, fc)
	ctx := context.Background()

	repo := movies.NewSQLiteRepository(db)
	require.NoError(t, repo.Upsert(ctx, models.CachedMovie{ID: 5, Title: "Old", Page: 7}))
	require.NoError(t, svc.AddToFavourites(ctx, 5))

	m, err := svc.GetMovieByID(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "New title", m.Title)
	assert.True(t, m.IsFavourite)

	cached, err := repo.GetByID(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 7, cached.Page)
	assert.Equal(t, "New title", cached.Title)
}

func TestGetMovieByID_FallsBackToCache(t *testing.T) {
	for _, remoteErr := range []error{client.ErrUnavailable, client.ErrProtocol, client.ErrNotFound} {
		t.Run(remoteErr.Error(), func(t *testing.T) {
			fc := &fakeClient{movieErr: remoteErr}
			svc, db := newService(t, fc)
			ctx := context.Background()

			require.NoError(t, movies.NewSQLiteRepository(db).Upsert(ctx, models.CachedMovie{ID: 1, Title: "Cached", Page: 2}))

			m, err := svc.GetMovieByID(ctx, 1)
			require.NoError(t, err)
			require.NotNil(t, m)
			assert.Equal(t, "Cached", m.Title)

			missing, err := svc.GetMovieByID(ctx, 2)
			require.NoError(t, err)
			assert.Nil(t, missing)
		})
	}
}

func TestGetMovieByID_CoalescesConcurrentCalls(t *testing.T) {
	fc := &fakeClient{movie: &client.MovieDTO{ID: 9, Title: "Once"}, gate: make(chan struct{})}
	svc, _ := newService(t, fc)
	ctx := context.Background()

	const n = 5
	var wg sync.WaitGroup
	results := make([]*models.Movie, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m, err := svc.GetMovieByID(ctx, 9)
			assert.NoError(t, err)
			results[i] = m
		}(i)
	}

	require.Eventually(t, func() bool { return fc.movieCalls.Load() >= 1 }, time.Second, time.Millisecond)
	// let the remaining callers join the in-flight request
	time.Sleep(20 * time.Millisecond)
	close(fc.gate)
	wg.Wait()

	assert.Equal(t, int32(1), fc.movieCalls.Load())
	for _, m := range results {
		require.NotNil(t, m)
		assert.Equal(t, "Once", m.Title)
	}
}

func TestGetMovieByID_CancelledCallerDoesNotFailOthers(t *testing.T) {
	fc := &fakeClient{movie: &client.MovieDTO{ID: 9, Title: "Once"}, gate: make(chan struct{})}
	svc, _ := newService(t, fc)

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := svc.GetMovieByID(firstCtx, 9)
		firstErr <- err
	}()
	require.Eventually(t, func() bool { return fc.movieCalls.Load() == 1 }, time.Second, time.Millisecond)

	type result struct {
		m   *models.Movie
		err error
	}
	second := make(chan result, 1)
	go func() {
		m, err := svc.GetMovieByID(context.Background(), 9)
		second <- result{m, err}
	}()
	// let the second caller join the in-flight request
	time.Sleep(20 * time.Millisecond)

	cancelFirst()
	require.ErrorIs(t, <-firstErr, context.Canceled)

	close(fc.gate)
	got := <-second
	require.NoError(t, got.err)
	require.NotNil(t, got.m)
	assert.Equal(t, "Once", got.m.Title)
	assert.Equal(t, int32(1), fc.movieCalls.Load())
}

func TestFavourites_IdempotentAndToggle(t *testing.T) {
	svc, db := newService(t, &fakeClient{})
	ctx := context.Background()

	count := func() int {
		var n int
		require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM favourites WHERE movie_id = 4`).Scan(&n))
		return n
	}

	require.NoError(t, svc.AddToFavourites(ctx, 4))
	require.NoError(t, svc.AddToFavourites(ctx, 4))
	assert.Equal(t, 1, count())

	require.NoError(t, svc.RemoveFromFavourites(ctx, 4))
	require.NoError(t, svc.RemoveFromFavourites(ctx, 4))
	assert.Equal(t, 0, count())

	on, err := svc.ToggleFavourite(ctx, 4)
	require.NoError(t, err)
	assert.True(t, on)
	assert.Equal(t, 1, count())

	on, err = svc.ToggleFavourite(ctx, 4)
	require.NoError(t, err)
	assert.False(t, on)
	assert.Equal(t, 0, count())
}

func TestFavourites_ListsCachedOnly(t *testing.T) {
	svc, db := newService(t, &fakeClient{})
	ctx := context.Background()

	repo := movies.NewSQLiteRepository(db)
	require.NoError(t, repo.Upsert(ctx, models.CachedMovie{ID: 2, Title: "B", Page: 1}))
	require.NoError(t, repo.Upsert(ctx, models.CachedMovie{ID: 1, Title: "A", Page: 1}))
	for _, id := range []int{1, 2, 3} {
		require.NoError(t, svc.AddToFavourites(ctx, id))
	}

	favs, err := svc.Favourites(ctx)
	require.NoError(t, err)
	require.Len(t, favs, 2)
	assert.Equal(t, 1, favs[0].ID)
	assert.Equal(t, 2, favs[1].ID)
	assert.True(t, favs[0].IsFavourite)
}

func TestStream_LoadsThroughMediator(t *testing.T) {
	page := &client.PageResponse{Page: 1, TotalPages: 1}
	for id := 1; id <= 3; id++ {
		page.Results = append(page.Results, client.MovieDTO{ID: id, Title: "Movie", VoteAverage: float64(id * 3)})
	}
	fc := &fakeClient{page: page}
	svc, _ := newService(t, fc)
	ctx := context.Background()

	_, ok, err := svc.LastRefresh(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	p := svc.Stream("", models.Filter{MinRating: 5, Sort: models.SortRatingDesc})
	require.NoError(t, p.Refresh(ctx))

	items := p.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 3, items[0].ID)
	assert.Equal(t, 2, items[1].ID)

	at, ok, err := svc.LastRefresh(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.WithinDuration(t, time.Now(), at, time.Minute)
}
