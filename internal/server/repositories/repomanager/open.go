package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// SQLitePrefix marks a DSN that selects the SQLite backend, e.g.
// "sqlite:auth.db" or "sqlite::memory:". Anything else is handed to pgx.
const SQLitePrefix = "sqlite:"

// Open connects to the database named by dsn, applies migrations and
// returns the matching RepositoryManager. The caller owns the *sql.DB.
func Open(ctx context.Context, dsn string) (*sql.DB, RepositoryManager, error) {
	var (
		db      *sql.DB
		manager RepositoryManager
		err     error
	)

	if path, ok := strings.CutPrefix(dsn, SQLitePrefix); ok {
		db, err = sql.Open("sqlite", path)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		// a single connection serialises writers and keeps :memory: databases alive
		db.SetMaxOpenConns(1)
		manager = NewSQLiteRepositoryManager()
	} else {
		db, err = sql.Open("pgx", dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		manager = NewPostgresRepositoryManager()
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}

	if err := manager.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}

	return db, manager, nil
}
