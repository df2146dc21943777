// internal/catalog/local.go
//
// In-process film catalog.
//
// Responsibilities:
//   - Load film records from FILMS_FILE or fall back to the embedded default.
//   - Serve the Catalog and NameIndex contracts from memory.
//
// File format: a JSON array of {"id","title","actors":[5 paths],"poster"}.
// Records that fail validation or repeat an id are rejected at load time so
// every lookup afterwards returns a complete film.

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/robalobadob/kinoguessr/assets"
	"github.com/robalobadob/kinoguessr/internal/game"
)

// Local serves films from memory.
type Local struct {
	records []Record
	byID    map[string]int // index into records

	mu  sync.Mutex // guards rng
	rng game.Rand
}

// LoadLocal reads records from path, or from the embedded default list when
// path is empty.
func LoadLocal(path string, rng game.Rand) (*Local, error) {
	var (
		data []byte
		err  error
	)
	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading films file: %w", err)
		}
	} else {
		data, err = assets.DefaultFilms()
		if err != nil {
			return nil, fmt.Errorf("reading embedded films: %w", err)
		}
	}
	records, err := ParseRecords(data)
	if err != nil {
		return nil, err
	}
	return NewLocal(records, rng)
}

// ParseRecords decodes a JSON film list.
func ParseRecords(data []byte) ([]Record, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing films: %w", err)
	}
	return records, nil
}

// NewLocal builds a catalog from records. Every record needs a unique id and
// a valid film.
func NewLocal(records []Record, rng game.Rand) (*Local, error) {
	l := &Local{
		records: make([]Record, 0, len(records)),
		byID:    make(map[string]int, len(records)),
		rng:     rng,
	}
	for _, r := range records {
		if r.ID == "" {
			return nil, fmt.Errorf("film %q has no id", r.Title)
		}
		if _, dup := l.byID[r.ID]; dup {
			return nil, fmt.Errorf("duplicate film id %s", r.ID)
		}
		if _, err := r.Film(); err != nil {
			return nil, err
		}
		l.byID[r.ID] = len(l.records)
		l.records = append(l.records, r)
	}
	return l, nil
}

// Records returns a copy of the loaded records.
func (l *Local) Records() []Record {
	return append([]Record(nil), l.records...)
}

// Len returns the number of films.
func (l *Local) Len() int { return len(l.records) }

func (l *Local) ListFilmNames(ctx context.Context) ([]string, error) {
	out := make([]string, 0, len(l.records))
	for _, r := range l.records {
		out = append(out, r.Title)
	}
	return out, nil
}

func (l *Local) ListFilmIdentifiers(ctx context.Context) ([]string, error) {
	out := make([]string, 0, len(l.records))
	for _, r := range l.records {
		out = append(out, r.ID)
	}
	return out, nil
}

func (l *Local) GetFilmDetails(ctx context.Context, id string) (game.Film, error) {
	if err := ctx.Err(); err != nil {
		return game.Film{}, err
	}
	i, ok := l.byID[id]
	if !ok {
		return game.Film{}, fmt.Errorf("film %s: %w", id, ErrNotFound)
	}
	return l.records[i].Film()
}

func (l *Local) GetRandomFilm(ctx context.Context) (game.Film, error) {
	if err := ctx.Err(); err != nil {
		return game.Film{}, err
	}
	if len(l.records) == 0 {
		return game.Film{}, ErrEmpty
	}
	l.mu.Lock()
	i := l.rng.IntN(len(l.records))
	l.mu.Unlock()
	return l.records[i].Film()
}
