package movies

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophmovies/internal/client/models"
	"github.com/dmitrijs2005/gophmovies/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const upsertQuery = `
	INSERT INTO movies (id, title, overview, poster_path, rating, release_date, page)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET title = excluded.title,
		overview = excluded.overview,
		poster_path = excluded.poster_path,
		rating = excluded.rating,
		release_date = excluded.release_date,
		page = excluded.page
`

const selectView = `
	SELECT m.id, m.title, m.overview, m.poster_path, m.rating, m.release_date,
		f.movie_id IS NOT NULL
	FROM movies m
	LEFT JOIN favourites f ON f.movie_id = m.id
`

func (r *SQLiteRepository) Upsert(ctx context.Context, m models.CachedMovie) error {
	_, err := r.db.ExecContext(ctx, upsertQuery,
		m.ID, m.Title, m.Overview, m.PosterPath, m.Rating, m.ReleaseDate, m.Page)
	if err != nil {
		return fmt.Errorf("failed to upsert movie %d: %w", m.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) UpsertAll(ctx context.Context, movies []models.CachedMovie) error {
	for _, m := range movies {
		if err := r.Upsert(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteRepository) ClearAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM movies`); err != nil {
		return fmt.Errorf("failed to clear movies: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int) (*models.CachedMovie, error) {
	query := `SELECT id, title, overview, poster_path, rating, release_date, page FROM movies WHERE id = ?`

	var (
		m       models.CachedMovie
		poster  sql.NullString
		release sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&m.ID, &m.Title, &m.Overview, &poster, &m.Rating, &release, &m.Page)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get movie %d: %w", id, err)
	}
	m.PosterPath = nullToPtr(poster)
	m.ReleaseDate = nullToPtr(release)
	return &m, nil
}

func (r *SQLiteRepository) GetMovie(ctx context.Context, id int) (*models.Movie, error) {
	row := r.db.QueryRowContext(ctx, selectView+` WHERE m.id = ?`, id)
	m, err := scanMovie(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get movie %d: %w", id, err)
	}
	return m, nil
}

func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM movies`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count movies: %w", err)
	}
	return n, nil
}

func (r *SQLiteRepository) Query(ctx context.Context, q Query) ([]models.Movie, error) {
	query, args := buildQuery(q)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query movies: %w", err)
	}
	defer rows.Close()

	result := make([]models.Movie, 0)
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movie row: %w", err)
		}
		result = append(result, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate movie rows: %w", err)
	}
	return result, nil
}

func buildQuery(q Query) (string, []any) {
	var (
		where []string
		args  []any
	)

	if q.Search != "" {
		where = append(where, `LOWER(m.title) LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(strings.ToLower(q.Search))+"%")
	}

	where = append(where, `m.rating >= ?`)
	args = append(args, q.Filter.MinRating)

	if q.Filter.ReleaseYear != nil {
		where = append(where, `substr(m.release_date, 1, 4) = ?`)
		args = append(args, fmt.Sprintf("%04d", *q.Filter.ReleaseYear))
	}

	var b strings.Builder
	b.WriteString(selectView)
	b.WriteString(" WHERE ")
	b.WriteString(strings.Join(where, " AND "))
	b.WriteString(" ORDER BY ")
	b.WriteString(orderBy(q.Filter.Sort))
	b.WriteString(" LIMIT ? OFFSET ?")

	limit := q.Limit
	if limit <= 0 {
		limit = -1
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}
	args = append(args, limit, offset)

	return b.String(), args
}

func orderBy(s models.SortMode) string {
	switch s {
	case models.SortRatingDesc:
		return "m.rating DESC, m.page ASC, m.id ASC"
	case models.SortReleaseDateDesc:
		return "m.release_date DESC, m.page ASC, m.id ASC"
	default:
		return "m.page ASC, m.id ASC"
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMovie(s scanner) (*models.Movie, error) {
	var (
		m       models.Movie
		poster  sql.NullString
		release sql.NullString
	)
	if err := s.Scan(&m.ID, &m.Title, &m.Overview, &poster, &m.Rating, &release, &m.IsFavourite); err != nil {
		return nil, err
	}
	m.PosterPath = nullToPtr(poster)
	m.ReleaseDate = nullToPtr(release)
	return &m, nil
}

func nullToPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
