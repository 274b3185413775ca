package paging

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gophmovies/internal/client/models"
	"github.com/dmitrijs2005/gophmovies/internal/client/repositories/movies"
	"github.com/dmitrijs2005/gophmovies/internal/dbx"
)

// Source reads windows of the current query from the local cache.
type Source interface {
	Load(ctx context.Context, offset, limit int) ([]models.Movie, error)
}

// QuerySource reads one (search, filter) query from the cache. Each window
// is read in its own read-only transaction, so it never mixes rows from
// before and after a concurrent mediator write.
type QuerySource struct {
	db     *sql.DB
	search string
	filter models.Filter
}

func NewQuerySource(db *sql.DB, search string, filter models.Filter) *QuerySource {
	return &QuerySource{db: db, search: search, filter: filter}
}

func (s *QuerySource) Load(ctx context.Context, offset, limit int) ([]models.Movie, error) {
	var out []models.Movie
	err := dbx.WithReadTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		out, err = movies.NewSQLiteRepository(tx).Query(ctx, movies.Query{
			Search: s.search,
			Filter: s.filter,
			Limit:  limit,
			Offset: offset,
		})
		return err
	})
	return out, err
}
