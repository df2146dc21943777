package session

import (
	"sync"

	"github.com/robalobadob/kinoguessr/internal/game"
)

// Pool is the finite set of film identifiers the pool variant draws from.
// It only ever shrinks: an identifier leaves the pool the moment it is drawn,
// whether or not the following detail fetch succeeds.
type Pool struct {
	mu     sync.Mutex
	loaded bool
	ids    []string
}

// Fill installs the identifiers on first call; later calls are ignored.
// Duplicate and empty identifiers are dropped.
func (p *Pool) Fill(ids []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.loaded {
		return
	}
	seen := make(map[string]struct{}, len(ids))
	p.ids = make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		p.ids = append(p.ids, id)
	}
	p.loaded = true
}

// Loaded reports whether Fill has run.
func (p *Pool) Loaded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loaded
}

// Remaining returns how many identifiers are left.
func (p *Pool) Remaining() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.ids)
}

// Exhausted reports whether a filled pool has no identifiers left.
func (p *Pool) Exhausted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loaded && len(p.ids) == 0
}

// Draw removes and returns a uniformly random identifier.
func (p *Pool) Draw(rng game.Rand) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.ids) == 0 {
		return "", ErrPoolExhausted
	}
	i := rng.IntN(len(p.ids))
	id := p.ids[i]
	last := len(p.ids) - 1
	p.ids[i] = p.ids[last]
	p.ids = p.ids[:last]
	return id, nil
}
