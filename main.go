package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/kinoguessr/internal/catalog"
	"github.com/robalobadob/kinoguessr/internal/config"
	"github.com/robalobadob/kinoguessr/internal/httpserver"
	"github.com/robalobadob/kinoguessr/internal/randutil"
	"github.com/robalobadob/kinoguessr/internal/session"
)

// filmSource is what the controller needs from a catalog adapter.
type filmSource interface {
	catalog.Catalog
	catalog.NameIndex
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	variant, err := session.ParseVariant(cfg.Variant)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	if err := run(cfg, variant); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// run owns the catalog handle so it is closed before main exits.
func run(cfg *config.Config, variant session.Variant) error {
	src, closer, err := openCatalog(cfg)
	if err != nil {
		return fmt.Errorf("open %s film catalog: %w", cfg.CatalogSource, err)
	}
	defer func() {
		if err := closer.Close(); err != nil {
			log.Warn().Err(err).Msg("close film catalog")
		}
	}()

	logger := log.Logger
	ctrl := session.New(src, src, session.Options{
		Variant: variant,
		Rand:    randutil.FromSeed(cfg.Seed),
		Logger:  &logger,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := ctrl.Load(ctx); err != nil {
		// Start retries the pool load, so keep serving.
		log.Warn().Err(err).Msg("catalog warmup failed")
	}
	cancel()

	srv := httpserver.New(ctrl, cfg.ClientOrigin)
	log.Info().
		Str("port", cfg.Port).
		Str("variant", string(variant)).
		Str("source", cfg.CatalogSource).
		Msg("starting kinoguessr server")
	return srv.Start(":" + cfg.Port)
}

// openCatalog builds the configured catalog adapter. The catalog gets its own
// random source, derived from the configured seed.
func openCatalog(cfg *config.Config) (filmSource, io.Closer, error) {
	rng := randutil.FromSeed(0)
	if cfg.Seed != 0 {
		rng = randutil.New(cfg.Seed + 1)
	}

	switch cfg.CatalogSource {
	case config.SourceHTTP:
		return catalog.NewHTTPClient(cfg.CatalogURL, cfg.CatalogTimeout), noopCloser{}, nil

	case config.SourceSQLite:
		db, err := catalog.OpenSQLite(cfg.CatalogDB, rng)
		if err != nil {
			return nil, nil, err
		}
		if err := seedIfEmpty(db, cfg.FilmsFile); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return db, db, nil

	case config.SourceLocal:
		l, err := catalog.LoadLocal(cfg.FilmsFile, rng)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Int("films", l.Len()).Msg("local film catalog loaded")
		return l, noopCloser{}, nil
	}
	return nil, nil, errors.New("unknown catalog source " + cfg.CatalogSource)
}

// seedIfEmpty imports the local film list into an empty SQLite catalog.
func seedIfEmpty(db *catalog.SQLite, filmsFile string) error {
	ctx := context.Background()
	n, err := db.Count(ctx)
	if err != nil {
		return fmt.Errorf("count films: %w", err)
	}
	if n > 0 {
		log.Info().Int("films", n).Msg("sqlite film catalog ready")
		return nil
	}
	local, err := catalog.LoadLocal(filmsFile, randutil.FromSeed(0))
	if err != nil {
		return err
	}
	if err := db.Seed(ctx, local.Records()); err != nil {
		return fmt.Errorf("seed films: %w", err)
	}
	log.Info().Int("films", local.Len()).Msg("sqlite film catalog seeded")
	return nil
}

type noopCloser struct{}

func (noopCloser) Close() error { return nil }
