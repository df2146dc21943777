// internal/config/config.go
//
// Environment configuration for the KinoGuessr server.
// Values come from the process environment; main loads a .env file first
// (godotenv) so local development can keep them in one place.
//
// Environment variables:
//   PORT=5175
//   LOG_LEVEL=info
//   GAME_VARIANT=pool | unbounded
//   CATALOG_SOURCE=local | sqlite | http
//   CATALOG_URL=http://localhost:8000        (http source)
//   CATALOG_TIMEOUT=10s                      (http source)
//   FILMS_FILE=/path/to/films.json           (local source, optional)
//   CATALOG_DB=./data/films.db               (sqlite source)
//   RANDOM_SEED=0                            (0 = seed from clock)
//   CLIENT_ORIGIN=http://localhost:3000

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Environment variable names.
const (
	EnvPort          = "PORT"
	EnvLogLevel      = "LOG_LEVEL"
	EnvVariant       = "GAME_VARIANT"
	EnvCatalogSource = "CATALOG_SOURCE"
	EnvCatalogURL    = "CATALOG_URL"
	EnvCatalogTO     = "CATALOG_TIMEOUT"
	EnvFilmsFile     = "FILMS_FILE"
	EnvCatalogDB     = "CATALOG_DB"
	EnvSeed          = "RANDOM_SEED"
	EnvClientOrigin  = "CLIENT_ORIGIN"
)

// Game variants.
const (
	VariantPool      = "pool"
	VariantUnbounded = "unbounded"
)

// Catalog sources.
const (
	SourceLocal  = "local"
	SourceSQLite = "sqlite"
	SourceHTTP   = "http"
)

// Config holds the parsed server configuration.
type Config struct {
	Port           string
	LogLevel       string
	Variant        string
	CatalogSource  string
	CatalogURL     string
	CatalogTimeout time.Duration
	FilmsFile      string
	CatalogDB      string
	Seed           int64
	ClientOrigin   string
}

// FromEnv parses configuration from environment variables, applying
// defaults for anything unset. Unknown variants or sources are errors.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:          getEnv(EnvPort, "5175"),
		LogLevel:      getEnv(EnvLogLevel, "info"),
		Variant:       getEnv(EnvVariant, VariantPool),
		CatalogSource: getEnv(EnvCatalogSource, SourceLocal),
		CatalogURL:    getEnv(EnvCatalogURL, "http://localhost:8000"),
		FilmsFile:     os.Getenv(EnvFilmsFile),
		CatalogDB:     getEnv(EnvCatalogDB, "./data/films.db"),
		ClientOrigin:  getEnv(EnvClientOrigin, "http://localhost:3000"),
	}

	switch cfg.Variant {
	case VariantPool, VariantUnbounded:
	default:
		return nil, fmt.Errorf("invalid %s value %q", EnvVariant, cfg.Variant)
	}

	switch cfg.CatalogSource {
	case SourceLocal, SourceSQLite, SourceHTTP:
	default:
		return nil, fmt.Errorf("invalid %s value %q", EnvCatalogSource, cfg.CatalogSource)
	}

	to, err := time.ParseDuration(getEnv(EnvCatalogTO, "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid %s value: %w", EnvCatalogTO, err)
	}
	cfg.CatalogTimeout = to

	if s := os.Getenv(EnvSeed); s != "" {
		seed, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s value: %w", EnvSeed, err)
		}
		cfg.Seed = seed
	}

	return cfg, nil
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
