package paging

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophmovies/internal/client/client"
	"github.com/dmitrijs2005/gophmovies/internal/client/models"
	"github.com/dmitrijs2005/gophmovies/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophmovies/internal/client/repositories/movies"
	"github.com/dmitrijs2005/gophmovies/internal/client/repositories/pagekeys"
	"github.com/dmitrijs2005/gophmovies/internal/dbx"
	"github.com/dmitrijs2005/gophmovies/internal/logging"
)

const firstPage = 1

// Loader performs one load intent against the backing store.
type Loader interface {
	Load(ctx context.Context, lt LoadType, st State) (Result, error)
}

// Mediator keeps the local cache filled from the remote catalog.
// Each successful load is written in a single transaction.
type Mediator struct {
	remote client.Client
	db     *sql.DB
	log    logging.Logger
	now    func() time.Time
}

func NewMediator(remote client.Client, db *sql.DB, log logging.Logger) *Mediator {
	return &Mediator{remote: remote, db: db, log: log, now: time.Now}
}

// Load resolves the page for lt, fetches it and writes it to the cache.
//
// Transport failures end pagination quietly: the result reports the end
// and the cache is left as it was. Any other fetch failure, and any
// storage failure, is returned and nothing is written.
func (m *Mediator) Load(ctx context.Context, lt LoadType, st State) (Result, error) {
	page, done, end, err := m.resolvePage(ctx, lt, st)
	if err != nil {
		return Result{}, err
	}
	if done {
		m.log.Debug(ctx, "no key to load from", "type", lt, "end", end)
		return Result{EndOfPaginationReached: end}, nil
	}

	resp, ok, err := m.fetch(ctx, lt, page)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		return Result{EndOfPaginationReached: true}, nil
	}

	// a resume page past the end of a shrunk catalog comes back empty;
	// restart from the last page the catalog still has instead of wiping
	// the cache with nothing
	if lt == Refresh && page > firstPage && len(resp.Results) == 0 {
		retry := firstPage
		if resp.TotalPages > 0 && resp.TotalPages < page {
			retry = resp.TotalPages
		}
		m.log.Info(ctx, "resume page is empty, retrying", "page", page, "retry", retry, "total_pages", resp.TotalPages)
		page = retry
		resp, ok, err = m.fetch(ctx, lt, page)
		if err != nil {
			return Result{}, err
		}
		if !ok {
			return Result{EndOfPaginationReached: true}, nil
		}
	}

	endReached := len(resp.Results) == 0

	err = dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return m.write(ctx, tx, lt, page, resp, endReached)
	})
	if err != nil {
		return Result{}, fmt.Errorf("failed to store page %d: %w", page, err)
	}

	m.log.Debug(ctx, "page stored", "type", lt, "page", page, "items", len(resp.Results), "end", endReached)
	return Result{EndOfPaginationReached: endReached}, nil
}

// fetch asks the catalog for page. ok is false when the catalog is
// unreachable, which ends pagination without an error.
func (m *Mediator) fetch(ctx context.Context, lt LoadType, page int) (*client.PageResponse, bool, error) {
	m.log.Debug(ctx, "fetching page", "type", lt, "page", page)

	resp, err := m.remote.FetchPage(ctx, client.PageRequest{Page: page, SortBy: client.SortPopularityDesc})
	if err != nil {
		if client.IsTransport(err) {
			m.log.Warn(ctx, "catalog unreachable, serving cache", "type", lt, "page", page, "error", err)
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to fetch page %d: %w", page, err)
	}
	return resp, true, nil
}

// resolvePage returns the page to fetch. When done is true there is
// nothing to fetch and end tells whether that means the end of data.
func (m *Mediator) resolvePage(ctx context.Context, lt LoadType, st State) (page int, done, end bool, err error) {
	keys := pagekeys.NewSQLiteRepository(m.db)

	switch lt {
	case Refresh:
		page = firstPage
		if st.Anchor != nil {
			if item := st.ClosestItemToPosition(*st.Anchor); item != nil {
				key, err := keys.Get(ctx, item.ID)
				if err != nil {
					return 0, false, false, err
				}
				if key != nil && key.NextKey != nil {
					page = *key.NextKey - 1
				}
			}
		}
		page, err = m.clampToTotal(ctx, page)
		return page, false, false, err

	case Prepend:
		key, err := m.keyFor(ctx, keys, st.FirstItem())
		if err != nil {
			return 0, false, false, err
		}
		if key == nil || key.PrevKey == nil {
			return 0, true, key != nil, nil
		}
		return *key.PrevKey, false, false, nil

	case Append:
		key, err := m.keyFor(ctx, keys, st.LastItem())
		if err != nil {
			return 0, false, false, err
		}
		if key == nil || key.NextKey == nil {
			return 0, true, key != nil, nil
		}
		return *key.NextKey, false, false, nil

	default:
		return 0, false, false, fmt.Errorf("unknown load type %d", lt)
	}
}

func (m *Mediator) keyFor(ctx context.Context, keys pagekeys.Repository, item *models.Movie) (*models.PageKey, error) {
	if item == nil {
		return nil, nil
	}
	return keys.Get(ctx, item.ID)
}

// clampToTotal caps page at the last known total page count, so a resume
// position from a larger catalog never asks for a page that is gone.
func (m *Mediator) clampToTotal(ctx context.Context, page int) (int, error) {
	total, ok, err := metadata.NewSQLiteRepository(m.db).GetInt(ctx, metadata.KeyTotalPages)
	if err != nil {
		return 0, err
	}
	if ok && total > 0 && page > total {
		m.log.Info(ctx, "resume page beyond catalog, clamping", "page", page, "total_pages", total)
		page = total
	}
	if page < firstPage {
		page = firstPage
	}
	return page, nil
}

func (m *Mediator) write(ctx context.Context, tx dbx.DBTX, lt LoadType, page int, resp *client.PageResponse, endReached bool) error {
	movieRepo := movies.NewSQLiteRepository(tx)
	keyRepo := pagekeys.NewSQLiteRepository(tx)
	metaRepo := metadata.NewSQLiteRepository(tx)

	if lt == Refresh {
		if err := keyRepo.Clear(ctx); err != nil {
			return err
		}
		if err := movieRepo.ClearAll(ctx); err != nil {
			return err
		}
	}

	var prevKey, nextKey *int
	if page != firstPage {
		p := page - 1
		prevKey = &p
	}
	if !endReached {
		n := page + 1
		nextKey = &n
	}

	keys := make([]models.PageKey, 0, len(resp.Results))
	cached := make([]models.CachedMovie, 0, len(resp.Results))
	for _, dto := range resp.Results {
		keys = append(keys, models.PageKey{MovieID: dto.ID, PrevKey: prevKey, NextKey: nextKey})
		cached = append(cached, dto.ToCached(page))
	}

	if err := keyRepo.UpsertAll(ctx, keys); err != nil {
		return err
	}
	if err := movieRepo.UpsertAll(ctx, cached); err != nil {
		return err
	}

	// an empty page writes no rows at all
	if !endReached && resp.TotalPages > 0 {
		if err := metaRepo.SetInt(ctx, metadata.KeyTotalPages, resp.TotalPages); err != nil {
			return err
		}
	}
	if lt == Refresh {
		if err := metaRepo.SetTime(ctx, metadata.KeyLastRefresh, m.now()); err != nil {
			return err
		}
	}
	return nil
}
