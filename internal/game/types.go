// internal/game/types.go
//
// Core type definitions for the film-guess engine.
// Defines:
//   - State: coarse lifecycle of a session (idle/in_progress/won/lost).
//   - Film: the round's target as delivered by a catalog.
//   - GuessAttempt: one immutable entry of the attempt log.
//   - Session: state for the single active round.

package game

import (
	"errors"
	"fmt"
)

const (
	// MaxAttempts is the hard cap on guesses per session.
	MaxAttempts = 5
	// ActorSlots is the number of actor portraits a film carries.
	ActorSlots = 5
	// PassGuess replaces blank input in the attempt log.
	PassGuess = "*Pass*"
	// MaxGuessLength is the longest guess, in characters, a client may send.
	MaxGuessLength = 40
)

// ErrInvalidFilm is returned by Film.Validate for incomplete catalog payloads.
var ErrInvalidFilm = errors.New("invalid film")

// State represents where a session is in its lifecycle.
type State string

const (
	StateIdle       State = "idle"
	StateInProgress State = "in_progress"
	StateWon        State = "won"
	StateLost       State = "lost"
)

// Terminal reports whether no further guesses are accepted.
func (s State) Terminal() bool {
	return s == StateWon || s == StateLost
}

func (s State) String() string { return string(s) }

// Film is read-only to the engine once a session has started.
type Film struct {
	Title       string   // Canonical answer, matched case-insensitively.
	ActorImages []string // Reveal order (shuffled at fetch time).
	PosterImage string
}

// Validate rejects films that are missing a title, a poster, or do not carry
// exactly ActorSlots actor images.
func (f Film) Validate() error {
	if f.Title == "" {
		return fmt.Errorf("%w: empty title", ErrInvalidFilm)
	}
	if len(f.ActorImages) != ActorSlots {
		return fmt.Errorf("%w: %q has %d actor images, want %d", ErrInvalidFilm, f.Title, len(f.ActorImages), ActorSlots)
	}
	for i, img := range f.ActorImages {
		if img == "" {
			return fmt.Errorf("%w: %q actor image %d is empty", ErrInvalidFilm, f.Title, i)
		}
	}
	if f.PosterImage == "" {
		return fmt.Errorf("%w: %q has no poster", ErrInvalidFilm, f.Title)
	}
	return nil
}

// clone returns a copy that shares no backing arrays with f.
func (f Film) clone() Film {
	f.ActorImages = append([]string(nil), f.ActorImages...)
	return f
}

// GuessAttempt is one entry of the attempt log. Entries are never mutated.
type GuessAttempt struct {
	Index           int    // 1-based.
	RawInput        string // As typed by the player.
	NormalizedGuess string // Title-cased input or PassGuess.
	IsCorrect       bool
}

// Line renders the attempt as a transcript line.
func (a GuessAttempt) Line() string {
	if a.IsCorrect {
		return fmt.Sprintf("%d. %s - Correct!", a.Index, a.NormalizedGuess)
	}
	return fmt.Sprintf("%d. %s", a.Index, a.NormalizedGuess)
}

// Session holds the state of the single active round.
// Values are treated as immutable: transitions return a new Session.
type Session struct {
	ID       string         // Round identifier, empty while idle.
	State    State          // Lifecycle state.
	Target   *Film          // Nil only while idle.
	Attempts []GuessAttempt // Append-only, at most MaxAttempts entries.
}
