package favourites

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophmovies/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Add(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO favourites (movie_id) VALUES (?)
		ON CONFLICT(movie_id) DO NOTHING
	`, id)
	if err != nil {
		return fmt.Errorf("failed to add favourite %d: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) Remove(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM favourites WHERE movie_id = ?`, id); err != nil {
		return fmt.Errorf("failed to remove favourite %d: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM favourites WHERE movie_id = ?)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check favourite %d: %w", id, err)
	}
	return exists, nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT movie_id FROM favourites ORDER BY movie_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list favourites: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan favourite row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate favourite rows: %w", err)
	}
	return ids, nil
}
