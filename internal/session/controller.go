// internal/session/controller.go
//
// Session controller: sequences catalog calls and game.Session transitions
// for the single active round.
// Responsibilities:
//   - Pick the round's target (pool draw or random film) and fetch it.
//   - Guard against a second Start while a fetch is outstanding.
//   - Delegate guesses and resets to the state machine.
//   - One-time warmup of the name index and the answer pool.
//
// Notes:
//   - All session state sits behind one mutex; the catalog is never called
//     while it is held.
//   - A failed fetch leaves the session idle. In the pool variant the drawn
//     identifier is not returned to the pool.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/kinoguessr/internal/catalog"
	"github.com/robalobadob/kinoguessr/internal/game"
	"github.com/robalobadob/kinoguessr/internal/randutil"
)

// Variant selects how targets are chosen.
type Variant string

const (
	// VariantPool draws each target from a finite, shrinking identifier pool.
	VariantPool Variant = "pool"
	// VariantUnbounded fetches an independent random film every round.
	VariantUnbounded Variant = "unbounded"
)

// ParseVariant validates a variant name.
func ParseVariant(s string) (Variant, error) {
	switch v := Variant(s); v {
	case VariantPool, VariantUnbounded:
		return v, nil
	}
	return "", fmt.Errorf("unknown game variant %q", s)
}

// Options configure a Controller. Zero values pick sensible defaults.
type Options struct {
	Variant Variant         // default VariantPool
	Rand    game.Rand       // default clock-seeded source
	Logger  *zerolog.Logger // default disabled
	NewID   func() string   // round identifiers, default uuid.NewString
}

// Controller owns the single game session.
type Controller struct {
	cat     catalog.Catalog
	names   catalog.NameIndex
	variant Variant
	rng     game.Rand
	log     zerolog.Logger
	newID   func() string

	pool Pool

	mu       sync.Mutex
	session  game.Session
	starting bool
	nameList []string
}

// New builds a controller over cat. names may be nil, in which case no
// suggestions are offered.
func New(cat catalog.Catalog, names catalog.NameIndex, opts Options) *Controller {
	c := &Controller{
		cat:     cat,
		names:   names,
		variant: opts.Variant,
		rng:     opts.Rand,
		log:     zerolog.Nop(),
		newID:   opts.NewID,
		session: game.NewSession(),
	}
	if c.variant == "" {
		c.variant = VariantPool
	}
	if c.rng == nil {
		c.rng = randutil.FromSeed(0)
	}
	if opts.Logger != nil {
		c.log = opts.Logger.With().Str("component", "session").Str("variant", string(c.variant)).Logger()
	}
	if c.newID == nil {
		c.newID = uuid.NewString
	}
	return c
}

// Variant returns the configured target selection mode.
func (c *Controller) Variant() Variant { return c.variant }

// Load runs the one-time catalog loads concurrently: the name index and, in
// the pool variant, the identifier pool. A name index failure is logged and
// leaves suggestions empty; a pool failure is returned and Start retries it.
func (c *Controller) Load(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	if c.names != nil {
		g.Go(func() error {
			names, err := c.names.ListFilmNames(gctx)
			if err != nil {
				c.log.Warn().Err(err).Msg("load film names")
				return nil
			}
			c.mu.Lock()
			c.nameList = names
			c.mu.Unlock()
			c.log.Info().Int("names", len(names)).Msg("film names loaded")
			return nil
		})
	}

	if c.variant == VariantPool {
		g.Go(func() error {
			return c.ensurePool(gctx)
		})
	}

	return g.Wait()
}

// Start begins a new round.
//
//   - ErrStartInFlight while another Start is fetching.
//   - No-op returning the current snapshot unless the session is idle.
//   - ErrPoolExhausted once the pool variant has no identifiers left.
//   - *FetchError if the catalog call fails; the session stays idle.
func (c *Controller) Start(ctx context.Context) (Snapshot, error) {
	c.mu.Lock()
	if c.starting {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap, ErrStartInFlight
	}
	if c.session.State != game.StateIdle {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap, nil
	}
	c.starting = true
	c.mu.Unlock()

	film, err := c.fetchTarget(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.starting = false
	if err != nil {
		c.log.Warn().Err(err).Msg("start failed")
		return c.snapshotLocked(), err
	}

	film.ActorImages = game.Shuffle(film.ActorImages, c.rng)
	c.session = c.session.Start(c.newID(), film)
	c.log.Info().Str("round", c.session.ID).Int("poolRemaining", c.pool.Remaining()).Msg("round started")
	return c.snapshotLocked(), nil
}

// fetchTarget picks and fetches the next film. Runs without c.mu held; the
// starting flag keeps it single-flight.
func (c *Controller) fetchTarget(ctx context.Context) (game.Film, error) {
	var (
		film game.Film
		err  error
	)
	switch c.variant {
	case VariantUnbounded:
		film, err = c.cat.GetRandomFilm(ctx)
		if err != nil {
			return game.Film{}, fetchErr("get random film", err)
		}
	default:
		if err := c.ensurePool(ctx); err != nil {
			return game.Film{}, err
		}
		id, err := c.pool.Draw(c.rng)
		if err != nil {
			return game.Film{}, err
		}
		c.log.Debug().Str("film", id).Int("poolRemaining", c.pool.Remaining()).Msg("drew film")
		film, err = c.cat.GetFilmDetails(ctx, id)
		if err != nil {
			return game.Film{}, fetchErr("get film details", err)
		}
	}
	if err := film.Validate(); err != nil {
		return game.Film{}, fetchErr("validate film", err)
	}
	return film, nil
}

// ensurePool fills the pool from the catalog on first use.
func (c *Controller) ensurePool(ctx context.Context) error {
	if c.pool.Loaded() {
		return nil
	}
	ids, err := c.cat.ListFilmIdentifiers(ctx)
	if err != nil {
		return fetchErr("list film identifiers", err)
	}
	c.pool.Fill(ids)
	c.log.Info().Int("films", c.pool.Remaining()).Msg("answer pool loaded")
	return nil
}

// Guess submits one guess. Ignored unless a round is in progress.
func (c *Controller) Guess(raw string) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	before := len(c.session.Attempts)
	c.session = c.session.Submit(raw)
	if len(c.session.Attempts) > before {
		last := c.session.Attempts[len(c.session.Attempts)-1]
		c.log.Debug().
			Str("round", c.session.ID).
			Int("attempt", last.Index).
			Bool("correct", last.IsCorrect).
			Str("state", c.session.State.String()).
			Msg("guess")
	}
	return c.snapshotLocked()
}

// Reset returns a finished round to idle. The pool is untouched.
func (c *Controller) Reset() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = c.session.Reset()
	return c.snapshotLocked()
}

// Snapshot returns the current view of the session.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Session returns the current state machine value.
func (c *Controller) Session() game.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Suggest returns film names for the guess box.
func (c *Controller) Suggest(prefix string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return catalog.Suggest(c.nameList, prefix, catalog.SuggestLimit)
}

// Stats summarises what the controller has loaded.
type Stats struct {
	Variant       Variant
	Names         int
	PoolLoaded    bool
	PoolRemaining int
}

// Stats reports loaded name and pool counts.
func (c *Controller) Stats() Stats {
	c.mu.Lock()
	names := len(c.nameList)
	c.mu.Unlock()
	return Stats{
		Variant:       c.variant,
		Names:         names,
		PoolLoaded:    c.pool.Loaded(),
		PoolRemaining: c.pool.Remaining(),
	}
}
