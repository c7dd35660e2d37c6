// Package migrations owns the schema of the sqlite config store: one
// config_entries table of JSON values keyed by configuration area.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var fs embed.FS

// Run brings the config_entries schema up to date and returns the resulting
// schema version. It uses a goose provider rather than the package-level
// API, so nothing is printed and concurrent callers share no state.
func Run(ctx context.Context, db *sql.DB) (int64, error) {
	p, err := goose.NewProvider(goose.DialectSQLite3, db, fs)
	if err != nil {
		return 0, fmt.Errorf("loading config schema: %w", err)
	}
	if _, err := p.Up(ctx); err != nil {
		return 0, fmt.Errorf("migrating config schema: %w", err)
	}
	v, err := p.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("reading config schema version: %w", err)
	}
	return v, nil
}
