// Package config reads run-time settings from the environment, the same
// direct os.Getenv style the teacher's main.go uses for PORT — no
// config-parsing library is introduced since the teacher never reaches
// for one either.
package config

import (
	"os"
	"strconv"
)

// Source selects which backend builds the in-memory Network at startup.
type Source string

const (
	SourcePostgres Source = "postgres"
	SourceGTFS     Source = "gtfs"
)

type Config struct {
	Port        string
	DatabaseURL string
	MaxRounds   int
	Source      Source
	GTFSPath    string
}

// Load reads Config from the environment, applying the teacher's
// fallback style (`if v == "" { v = default }`) for every optional
// setting.
func Load() Config {
	cfg := Config{
		Port:        os.Getenv("PORT"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		MaxRounds:   5,
		Source:      Source(os.Getenv("RAPTOR_SOURCE")),
		GTFSPath:    os.Getenv("GTFS_FEED_PATH"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Source == "" {
		cfg.Source = SourcePostgres
	}
	if v := os.Getenv("MAX_ROUNDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			cfg.MaxRounds = n
		}
	}

	return cfg
}
