package main

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/playperu/alfred0/internal/config"
	"github.com/playperu/alfred0/internal/kv"
)

func TestOpenStore(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mr := miniredis.RunT(t)

	tests := []struct {
		name string
		cfg  config.Config
	}{
		{"memory", config.Config{StoreBackend: config.BackendMemory}},
		{"sqlite", config.Config{StoreBackend: config.BackendSQLite, DBPath: filepath.Join(t.TempDir(), "alfred0.db")}},
		{"sqlite missing data dir", config.Config{StoreBackend: config.BackendSQLite, DBPath: filepath.Join(t.TempDir(), "data", "alfred0.db")}},
		{"redis", config.Config{StoreBackend: config.BackendRedis, RedisURL: "redis://" + mr.Addr() + "/0", RedisPrefix: "t:"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store, closeStore, err := openStore(ctx, &tt.cfg, logger)
			if err != nil {
				t.Fatalf("openStore: %v", err)
			}
			defer closeStore()

			var b kv.Batch
			b.Put("k", []byte("v"))
			if err := store.Apply(ctx, &b); err != nil {
				t.Fatalf("Apply: %v", err)
			}
			got, err := store.Get(ctx, "k")
			if err != nil || string(got) != "v" {
				t.Errorf("Get = %q, %v", got, err)
			}
			if err := store.Ping(ctx); err != nil {
				t.Errorf("Ping: %v", err)
			}
		})
	}
}
