package services

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/gophmovies/internal/client/client"
	"github.com/dmitrijs2005/gophmovies/internal/client/models"
	"github.com/dmitrijs2005/gophmovies/internal/client/paging"
	"github.com/dmitrijs2005/gophmovies/internal/client/repositories/favourites"
	"github.com/dmitrijs2005/gophmovies/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophmovies/internal/client/repositories/movies"
	"github.com/dmitrijs2005/gophmovies/internal/dbx"
	"github.com/dmitrijs2005/gophmovies/internal/logging"
	"golang.org/x/sync/singleflight"
)

type MovieService interface {
	// Stream starts a lazy pagination session for the query. Nothing is
	// loaded until the pager is refreshed.
	Stream(query string, filter models.Filter) *paging.Pager

	// GetMovieByID fetches the movie from the catalog and caches it,
	// falling back to the cache when the catalog fails. A movie found in
	// neither place yields (nil, nil).
	GetMovieByID(ctx context.Context, id int) (*models.Movie, error)

	AddToFavourites(ctx context.Context, id int) error
	RemoveFromFavourites(ctx context.Context, id int) error

	// ToggleFavourite flips the favourite flag and returns the new state.
	ToggleFavourite(ctx context.Context, id int) (bool, error)

	// Favourites returns the cached favourite movies in id order.
	Favourites(ctx context.Context) ([]models.Movie, error)

	// LastRefresh reports when the cache was last fully refreshed.
	LastRefresh(ctx context.Context) (time.Time, bool, error)
}

type movieService struct {
	remote   client.Client
	db       *sql.DB
	mediator *paging.Mediator
	log      logging.Logger
	pageSize int

	group singleflight.Group
}

func NewMovieService(remote client.Client, db *sql.DB, log logging.Logger, pageSize int) MovieService {
	return &movieService{
		remote:   remote,
		db:       db,
		mediator: paging.NewMediator(remote, db, log),
		log:      log,
		pageSize: pageSize,
	}
}

func (s *movieService) Stream(query string, filter models.Filter) *paging.Pager {
	src := paging.NewQuerySource(s.db, query, filter)
	return paging.NewPager(src, s.mediator, s.log.With("query", query, "filter", filter.String()), s.pageSize)
}

func (s *movieService) GetMovieByID(ctx context.Context, id int) (*models.Movie, error) {
	// the shared fetch outlives any single caller; each caller stops
	// waiting on its own context
	ch := s.group.DoChan(strconv.Itoa(id), func() (any, error) {
		return s.getMovie(context.WithoutCancel(ctx), id)
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*models.Movie), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *movieService) getMovie(ctx context.Context, id int) (*models.Movie, error) {
	dto, err := s.remote.FetchMovie(ctx, id)
	if err != nil {
		s.log.Warn(ctx, "movie fetch failed, reading cache", "id", id, "error", err)
		m, err := movies.NewSQLiteRepository(s.db).GetMovie(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to read cached movie: %w", err)
		}
		return m, nil
	}
	if dto.ID == 0 {
		dto.ID = id
	}

	var view *models.Movie
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := movies.NewSQLiteRepository(tx)

		page := 1
		existing, err := repo.GetByID(ctx, dto.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			page = existing.Page
		}

		if err := repo.Upsert(ctx, dto.ToCached(page)); err != nil {
			return err
		}
		view, err = repo.GetMovie(ctx, dto.ID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to cache movie: %w", err)
	}
	return view, nil
}

func (s *movieService) AddToFavourites(ctx context.Context, id int) error {
	return favourites.NewSQLiteRepository(s.db).Add(ctx, id)
}

func (s *movieService) RemoveFromFavourites(ctx context.Context, id int) error {
	return favourites.NewSQLiteRepository(s.db).Remove(ctx, id)
}

func (s *movieService) ToggleFavourite(ctx context.Context, id int) (bool, error) {
	var now bool
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := favourites.NewSQLiteRepository(tx)
		exists, err := repo.Exists(ctx, id)
		if err != nil {
			return err
		}
		if exists {
			now = false
			return repo.Remove(ctx, id)
		}
		now = true
		return repo.Add(ctx, id)
	})
	if err != nil {
		return false, err
	}
	return now, nil
}

func (s *movieService) Favourites(ctx context.Context) ([]models.Movie, error) {
	var out []models.Movie
	err := dbx.WithReadTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		ids, err := favourites.NewSQLiteRepository(tx).List(ctx)
		if err != nil {
			return err
		}
		repo := movies.NewSQLiteRepository(tx)
		for _, id := range ids {
			m, err := repo.GetMovie(ctx, id)
			if err != nil {
				return err
			}
			// favourites of movies no longer cached have nothing to show
			if m != nil {
				out = append(out, *m)
			}
		}
		return nil
	})
	return out, err
}

func (s *movieService) LastRefresh(ctx context.Context) (time.Time, bool, error) {
	return metadata.NewSQLiteRepository(s.db).GetTime(ctx, metadata.KeyLastRefresh)
}
