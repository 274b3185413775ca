package pagekeys

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophmovies/internal/client/models"
	"github.com/dmitrijs2005/gophmovies/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) UpsertAll(ctx context.Context, keys []models.PageKey) error {
	query := `
		INSERT INTO remote_keys (movie_id, prev_key, next_key) VALUES (?, ?, ?)
		ON CONFLICT(movie_id) DO UPDATE SET prev_key = excluded.prev_key,
			next_key = excluded.next_key
	`
	for _, k := range keys {
		if _, err := r.db.ExecContext(ctx, query, k.MovieID, k.PrevKey, k.NextKey); err != nil {
			return fmt.Errorf("failed to upsert page key %d: %w", k.MovieID, err)
		}
	}
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context, movieID int) (*models.PageKey, error) {
	var prev, next sql.NullInt64
	err := r.db.QueryRowContext(ctx,
		`SELECT prev_key, next_key FROM remote_keys WHERE movie_id = ?`, movieID).Scan(&prev, &next)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get page key %d: %w", movieID, err)
	}
	return &models.PageKey{
		MovieID: movieID,
		PrevKey: nullToPtr(prev),
		NextKey: nullToPtr(next),
	}, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM remote_keys`); err != nil {
		return fmt.Errorf("failed to clear page keys: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM remote_keys`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count page keys: %w", err)
	}
	return n, nil
}

func nullToPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}
