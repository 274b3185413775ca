package client

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	"github.com/dmitrijs2005/gophmovies/internal/client/migrations"
	"github.com/dmitrijs2005/gophmovies/internal/filex"

	_ "modernc.org/sqlite"
)

const memoryDSN = ":memory:"

// DSN builds a modernc sqlite DSN for a database file with WAL journaling
// and a busy timeout, so readers are not blocked by a committing writer.
func DSN(path string) string {
	if path == memoryDSN {
		return memoryDSN
	}
	q := url.Values{}
	q.Add("_pragma", "busy_timeout(5000)")
	q.Add("_pragma", "journal_mode(WAL)")
	return "file:" + path + "?" + q.Encode()
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrations.Up(ctx, db)
}

// InitDatabase opens (creating when needed) the cache at path and applies
// migrations. ":memory:" opens a private in-memory database.
func InitDatabase(ctx context.Context, path string) (*sql.DB, error) {
	if path != memoryDSN {
		if err := filex.EnsureParentDir(path); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", DSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if path == memoryDSN {
		db.SetMaxOpenConns(1)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
