// Package database opens the libSQL file that backs the sqlite config store.
// The file holds a single config_entries table; see internal/migrations.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/tursodatabase/go-libsql"
)

// MemoryPath opens a private in-memory database, used by tests and by
// DB_PATH=:memory: for a throwaway sqlite store.
const MemoryPath = ":memory:"

// Open opens the config database at path, creating its parent directory
// when missing so the default DB_PATH works on a fresh checkout.
//
// The store writes whole batches from one process, so the connection only
// needs WAL and a busy timeout. A MemoryPath database is pinned to one
// connection because each new connection would get its own empty database.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating directory for %s: %w", path, err)
		}
	}

	db, err := sql.Open("libsql", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	if path == MemoryPath {
		db.SetMaxOpenConns(1)
	}

	// PRAGMAs that report a value fail under Exec with libSQL, so both go
	// through QueryContext.
	for _, p := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000"} {
		rows, err := db.QueryContext(ctx, p)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		rows.Close()
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging %s: %w", path, err)
	}
	return db, nil
}
