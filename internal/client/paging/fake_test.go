package paging

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"

	"github.com/dmitrijs2005/gophmovies/internal/client/client"
	"github.com/dmitrijs2005/gophmovies/internal/client/migrations"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

// fakeClient serves canned pages. Embedding the interface keeps it
// compiling when the interface grows.
type fakeClient struct {
	client.Client

	mu    sync.Mutex
	pages map[int]*client.PageResponse
	errs  map[int]error
	calls []int
}

func newFakeClient() *fakeClient {
	return &fakeClient{pages: map[int]*client.PageResponse{}, errs: map[int]error{}}
}

func (f *fakeClient) FetchPage(ctx context.Context, req client.PageRequest) (*client.PageResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, req.Page)
	if err := f.errs[req.Page]; err != nil {
		return nil, err
	}
	if p, ok := f.pages[req.Page]; ok {
		return p, nil
	}
	return &client.PageResponse{Page: req.Page}, nil
}

func (f *fakeClient) setPage(page int, resp *client.PageResponse) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pages[page] = resp
}

func (f *fakeClient) setErr(page int, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[page] = err
}

func (f *fakeClient) Calls() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.calls...)
}

// makePage builds a page of n movies with ids firstID.. and ratings cycling
// through 1..10.
func makePage(page, n, firstID, totalPages int) *client.PageResponse {
	resp := &client.PageResponse{Page: page, TotalPages: totalPages, TotalResults: totalPages * n}
	for i := 0; i < n; i++ {
		id := firstID + i
		resp.Results = append(resp.Results, client.MovieDTO{
			ID:          id,
			Title:       fmt.Sprintf("Movie %d", id),
			Overview:    "overview",
			VoteAverage: float64(id%10 + 1),
			ReleaseDate: "2020-01-01",
		})
	}
	return resp
}

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, migrations.Up(context.Background(), db))
	return db
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
	return n
}
