package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SQLStore keeps entries in the config_entries table created by the
// migrations package. Values are stored as TEXT so that any blob written by
// an older client can be read back and judged by the caller.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM config_entries WHERE key = ?`, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", key, err)
	}
	return []byte(value), nil
}

func (s *SQLStore) Apply(ctx context.Context, b *Batch) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, o := range b.ops {
		if o.del {
			if _, err := tx.ExecContext(ctx,
				`DELETE FROM config_entries WHERE key = ?`, o.key,
			); err != nil {
				return fmt.Errorf("deleting %q: %w", o.key, err)
			}
			continue
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO config_entries (key, value, updated_at)
			 VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
			o.key, string(o.value),
		)
		if err != nil {
			return fmt.Errorf("writing %q: %w", o.key, err)
		}
	}

	return tx.Commit()
}

func (s *SQLStore) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }
