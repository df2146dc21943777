package session

import "github.com/robalobadob/kinoguessr/internal/game"

// Snapshot is the read-only view a presentation layer renders.
type Snapshot struct {
	RoundID      string
	Variant      Variant
	State        game.State
	Attempts     int
	AttemptsLeft int
	Transcript   []string
	Actors       []string // one entry per slot, "" while face down
	Poster       string   // "" while face down
	Title        string   // set once the round is over
	Starting     bool

	// Pool variant only.
	PoolRemaining int
	Exhausted     bool

	// CanStartNew is true exactly when Start would begin a round: the
	// session is idle, no start is outstanding and the pool is not empty.
	// A finished round has to be reset first; see CanReset.
	CanStartNew bool
	// CanReset is true when the round is over and Reset returns to idle.
	CanReset bool
}

func (c *Controller) snapshotLocked() Snapshot {
	s := c.session
	snap := Snapshot{
		RoundID:      s.ID,
		Variant:      c.variant,
		State:        s.State,
		Attempts:     len(s.Attempts),
		AttemptsLeft: s.AttemptsLeft(),
		Transcript:   s.Transcript(),
		Actors:       make([]string, game.ActorSlots),
		Starting:     c.starting,
	}

	if s.Target != nil {
		r := s.Reveal()
		for i, shown := range r.Actors {
			if shown && i < len(s.Target.ActorImages) {
				snap.Actors[i] = s.Target.ActorImages[i]
			}
		}
		if r.Poster {
			snap.Poster = s.Target.PosterImage
		}
		if s.State.Terminal() {
			snap.Title = s.Target.Title
		}
	}

	if c.variant == VariantPool {
		snap.PoolRemaining = c.pool.Remaining()
		snap.Exhausted = c.pool.Exhausted()
	}
	snap.CanStartNew = s.State == game.StateIdle && !c.starting && !snap.Exhausted
	snap.CanReset = s.State.Terminal()
	return snap
}
