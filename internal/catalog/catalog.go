// internal/catalog/catalog.go
//
// Contracts for the external film services the session controller consumes,
// plus the record shape shared by the adapters in this package.
//
// Adapters:
//   - HTTPClient: the KinoGuessr backend (/api/get_film_*).
//   - Local:      films from a JSON file or the embedded default list.
//   - SQLite:     films stored in a SQLite database.
//
// Every adapter validates films before returning them, so callers either get
// a complete game.Film or an error.

package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/robalobadob/kinoguessr/internal/game"
)

// ErrNotFound is returned when an identifier is unknown to the catalog.
var ErrNotFound = errors.New("film not found")

// ErrEmpty is returned by GetRandomFilm when the catalog holds no films.
var ErrEmpty = errors.New("catalog is empty")

// NameIndex lists every valid film title, for guess suggestions.
type NameIndex interface {
	ListFilmNames(ctx context.Context) ([]string, error)
}

// Catalog serves film metadata by identifier or at random.
type Catalog interface {
	// ListFilmIdentifiers returns every identifier, used by the pool variant.
	ListFilmIdentifiers(ctx context.Context) ([]string, error)

	// GetFilmDetails returns the film for id, or an error wrapping ErrNotFound.
	GetFilmDetails(ctx context.Context, id string) (game.Film, error)

	// GetRandomFilm returns an independently random film (unbounded variant).
	GetRandomFilm(ctx context.Context) (game.Film, error)
}

// Record is the on-disk/wire representation of one film.
type Record struct {
	ID     string   `json:"id,omitempty"`
	Title  string   `json:"title"`
	Actors []string `json:"actors"`
	Poster string   `json:"poster"`
}

// Film converts the record and validates the result.
func (r Record) Film() (game.Film, error) {
	f := game.Film{
		Title:       r.Title,
		ActorImages: append([]string(nil), r.Actors...),
		PosterImage: r.Poster,
	}
	if err := f.Validate(); err != nil {
		if r.ID == "" {
			return game.Film{}, err
		}
		return game.Film{}, fmt.Errorf("film %s: %w", r.ID, err)
	}
	return f, nil
}
