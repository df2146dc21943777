// internal/catalog/sqlite.go
//
// SQLite-backed film catalog.
// Responsibilities:
//   - Opening the SQLite database with safe defaults (WAL, busy timeout, foreign keys).
//   - Applying the embedded migrations (idempotent, recorded in _migrations).
//   - Serving Catalog and NameIndex from the films/film_actors tables.
//   - Seeding an empty database from a record list.

package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/kinoguessr/assets"
	"github.com/robalobadob/kinoguessr/internal/game"
)

// SQLite serves films from a SQLite database.
type SQLite struct {
	db *sql.DB

	mu  sync.Mutex // guards rng
	rng game.Rand
}

// OpenSQLite opens (creating if missing) the database at dsn and applies
// migrations.
func OpenSQLite(dsn string, rng game.Rand) (*SQLite, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}
	migrations, err := assets.Migrations()
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := migrate(db, migrations); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLite{db: db, rng: rng}, nil
}

// Close releases the database handle.
func (s *SQLite) Close() error { return s.db.Close() }

// openDB opens the SQLite file, ensuring its parent directory exists, with
// busy timeout, WAL journaling and foreign keys enforced.
func openDB(dsn string) (*sql.DB, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

// migrate applies *.sql files from fsys in lexical order.
//
//   - Uses a _migrations table to track applied files.
//   - Skips files already recorded.
//   - Each file runs in its own transaction together with its _migrations row,
//     so a failing script leaves nothing behind.
func migrate(db *sql.DB, fsys fs.FS) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		sqlBytes, err := fs.ReadFile(fsys, f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}
		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(sqlBytes)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

// Count returns the number of stored films.
func (s *SQLite) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM films`).Scan(&n)
	return n, err
}

// Seed inserts or replaces records in one transaction. Invalid records abort
// the whole seed.
func (s *SQLite) Seed(ctx context.Context, records []Record) error {
	for _, r := range records {
		if r.ID == "" {
			return fmt.Errorf("film %q has no id", r.Title)
		}
		if _, err := r.Film(); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, r := range records {
		if _, err := tx.ExecContext(ctx, `DELETE FROM film_actors WHERE film_id=?`, r.ID); err != nil {
			return fmt.Errorf("clear actors %s: %w", r.ID, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO films (id, title, poster) VALUES (?,?,?)
			 ON CONFLICT(id) DO UPDATE SET title=excluded.title, poster=excluded.poster`,
			r.ID, r.Title, r.Poster,
		); err != nil {
			return fmt.Errorf("insert film %s: %w", r.ID, err)
		}
		for pos, img := range r.Actors {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO film_actors (film_id, position, image) VALUES (?,?,?)`,
				r.ID, pos, img,
			); err != nil {
				return fmt.Errorf("insert actor %s/%d: %w", r.ID, pos, err)
			}
		}
	}
	return tx.Commit()
}

func (s *SQLite) ListFilmNames(ctx context.Context) ([]string, error) {
	return s.queryStrings(ctx, `SELECT title FROM films ORDER BY title`)
}

func (s *SQLite) ListFilmIdentifiers(ctx context.Context) ([]string, error) {
	return s.queryStrings(ctx, `SELECT id FROM films ORDER BY id`)
}

func (s *SQLite) GetFilmDetails(ctx context.Context, id string) (game.Film, error) {
	r := Record{ID: id}
	err := s.db.QueryRowContext(ctx, `SELECT title, poster FROM films WHERE id=?`, id).
		Scan(&r.Title, &r.Poster)
	if errors.Is(err, sql.ErrNoRows) {
		return game.Film{}, fmt.Errorf("film %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return game.Film{}, fmt.Errorf("film %s: %w", id, err)
	}

	actors, err := s.queryStrings(ctx,
		`SELECT image FROM film_actors WHERE film_id=? ORDER BY position`, id)
	if err != nil {
		return game.Film{}, fmt.Errorf("film %s actors: %w", id, err)
	}
	r.Actors = actors
	return r.Film()
}

func (s *SQLite) GetRandomFilm(ctx context.Context) (game.Film, error) {
	n, err := s.Count(ctx)
	if err != nil {
		return game.Film{}, err
	}
	if n == 0 {
		return game.Film{}, ErrEmpty
	}

	s.mu.Lock()
	offset := s.rng.IntN(n)
	s.mu.Unlock()

	var id string
	if err := s.db.QueryRowContext(ctx,
		`SELECT id FROM films ORDER BY id LIMIT 1 OFFSET ?`, offset,
	).Scan(&id); err != nil {
		return game.Film{}, fmt.Errorf("pick random film: %w", err)
	}
	return s.GetFilmDetails(ctx, id)
}

// queryStrings runs a single-column query.
func (s *SQLite) queryStrings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
