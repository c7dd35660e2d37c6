package migrations_test

import (
	"context"
	"testing"

	"github.com/playperu/alfred0/internal/database"
	"github.com/playperu/alfred0/internal/migrations"
)

func TestMigrations(t *testing.T) {
	ctx := context.Background()
	db, err := database.Open(ctx, database.MemoryPath)
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	defer db.Close()

	version, err := migrations.Run(ctx, db)
	if err != nil {
		t.Fatalf("running migrations: %v", err)
	}
	if version != 1 {
		t.Errorf("schema version = %d, want 1", version)
	}

	var name string
	err = db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name=?", "config_entries",
	).Scan(&name)
	if err != nil {
		t.Errorf("table %q not found: %v", "config_entries", err)
	}

	if _, err := db.Exec("INSERT INTO config_entries (key, value) VALUES (?, ?)", "settings", "{}"); err != nil {
		t.Errorf("inserting without updated_at: %v", err)
	}
}

func TestMigrationsIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := database.Open(ctx, database.MemoryPath)
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	defer db.Close()

	if _, err := migrations.Run(ctx, db); err != nil {
		t.Fatalf("first run: %v", err)
	}
	version, err := migrations.Run(ctx, db)
	if err != nil {
		t.Fatalf("second run (should be no-op): %v", err)
	}
	if version != 1 {
		t.Errorf("schema version after rerun = %d, want 1", version)
	}
}
