package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

// Storage backends accepted by STORE_BACKEND.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

type Config struct {
	HTTPAddr     string     `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel     slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	StoreBackend string     `env:"STORE_BACKEND" envDefault:"sqlite"`
	DBPath       string     `env:"DB_PATH" envDefault:"data/alfred0.db"`
	RedisURL     string     `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	RedisPrefix  string     `env:"REDIS_PREFIX" envDefault:"alfred0:"`
	SPADir       string     `env:"SPA_DIR" envDefault:"../web/dist"`
	SeedFile     string     `env:"SEED_FILE"`
	CORSOrigins  []string   `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	switch cfg.StoreBackend {
	case BackendSQLite, BackendRedis, BackendMemory:
	default:
		return nil, fmt.Errorf("unsupported STORE_BACKEND %q", cfg.StoreBackend)
	}
	return &cfg, nil
}
