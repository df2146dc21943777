package session

import (
	"errors"
	"fmt"
)

// Controller errors
var (
	ErrPoolExhausted = errors.New("no more games: answer pool exhausted")
	ErrStartInFlight = errors.New("a game is already starting")
)

// FetchError reports a failed call to the film catalog. The session is left
// in the state it had before the call.
type FetchError struct {
	Op  string // catalog operation, e.g. "get film details"
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch failed: %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func fetchErr(op string, err error) error {
	return &FetchError{Op: op, Err: err}
}
