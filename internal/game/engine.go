// internal/game/engine.go
//
// Core state machine for a single film-guess session.
// Responsibilities:
//   - Start a round from a catalog film.
//   - Normalize and match guesses, append to the attempt log.
//   - Track state transitions: idle → in_progress → won/lost → idle.
//
// Notes:
//   - Every transition is a value method returning the next Session; the
//     receiver is left untouched.
//   - Calls outside the accepting state are silent no-ops returning the
//     receiver, so late or duplicated UI events never corrupt a round.
package game

import "strings"

// NewSession returns an idle session.
func NewSession() Session {
	return Session{State: StateIdle}
}

// Start assigns the target film and clears the attempt log.
// Only valid from idle.
func (s Session) Start(id string, film Film) Session {
	if s.State != StateIdle {
		return s
	}
	f := film.clone()
	return Session{
		ID:       id,
		State:    StateInProgress,
		Target:   &f,
		Attempts: []GuessAttempt{},
	}
}

// Submit applies one guess.
//
// State transitions:
//   - Correct guess → won.
//   - Otherwise, once the log reaches MaxAttempts → lost.
func (s Session) Submit(raw string) Session {
	if s.State != StateInProgress || s.Target == nil {
		return s
	}

	guess := NormalizeGuess(raw)
	attempt := GuessAttempt{
		Index:           len(s.Attempts) + 1,
		RawInput:        raw,
		NormalizedGuess: guess,
		IsCorrect:       Matches(guess, s.Target.Title),
	}

	// Fresh backing array so earlier Session values keep their own log.
	entries := make([]GuessAttempt, len(s.Attempts), len(s.Attempts)+1)
	copy(entries, s.Attempts)
	entries = append(entries, attempt)

	next := s
	next.Attempts = entries
	switch {
	case attempt.IsCorrect:
		next.State = StateWon
	case len(entries) >= MaxAttempts:
		next.State = StateLost
	}
	return next
}

// Reset returns a finished session to idle.
func (s Session) Reset() Session {
	if !s.State.Terminal() {
		return s
	}
	return NewSession()
}

// Won reports whether some attempt matched the title.
func (s Session) Won() bool {
	for _, a := range s.Attempts {
		if a.IsCorrect {
			return true
		}
	}
	return false
}

// AttemptsLeft is the number of guesses still accepted.
func (s Session) AttemptsLeft() int {
	if s.State != StateInProgress {
		return 0
	}
	return MaxAttempts - len(s.Attempts)
}

// Transcript returns the ordered per-attempt result lines.
func (s Session) Transcript() []string {
	out := make([]string, 0, len(s.Attempts))
	for _, a := range s.Attempts {
		out = append(out, a.Line())
	}
	return out
}

// Reveal evaluates the reveal policy for the session.
func (s Session) Reveal() Revealed {
	return Reveal(s.State, len(s.Attempts), s.Won())
}

// NormalizeGuess maps blank input to PassGuess and title-cases anything else.
func NormalizeGuess(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return PassGuess
	}
	return TitleCase(raw)
}

// Matches compares a normalized guess with a title after lower-casing both.
// No partial or fuzzy matching.
func Matches(guess, title string) bool {
	return strings.ToLower(guess) == strings.ToLower(title)
}
