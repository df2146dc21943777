package game

import (
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevealIdleShowsNothing(t *testing.T) {
	assert.Equal(t, Revealed{}, Reveal(StateIdle, 0, false))
}

func TestRevealFirstActorAtStart(t *testing.T) {
	r := Reveal(StateInProgress, 0, false)
	assert.Equal(t, [ActorSlots]bool{true, false, false, false, false}, r.Actors)
	assert.False(t, r.Poster)
}

func TestRevealProgressive(t *testing.T) {
	for attempts := 0; attempts <= MaxAttempts; attempts++ {
		r := Reveal(StateInProgress, attempts, false)
		for i := 0; i < ActorSlots; i++ {
			assert.Equal(t, attempts >= i, r.Actors[i], "attempts=%d slot=%d", attempts, i)
		}
		assert.Equal(t, attempts >= MaxAttempts, r.Poster, "attempts=%d", attempts)
	}
}

func TestRevealOneSlotPerWrongGuess(t *testing.T) {
	s := NewSession().Start("r1", testFilm("Heat"))
	assert.Equal(t, 1, s.Reveal().Count())

	s = s.Submit("alien")
	assert.Equal(t, [ActorSlots]bool{true, true, false, false, false}, s.Reveal().Actors)

	for _, g := range []string{"b", "c", "d"} {
		s = s.Submit(g)
	}
	r := s.Reveal()
	assert.Equal(t, ActorSlots, r.Count(), "all actors face up before the last guess")
	assert.False(t, r.Poster)

	s = s.Submit("e")
	assert.Equal(t, StateLost, s.State)
	assert.True(t, s.Reveal().Poster)
}

func TestRevealCorrectShowsAll(t *testing.T) {
	r := Reveal(StateWon, 1, true)
	assert.Equal(t, ActorSlots, r.Count())
	assert.True(t, r.Poster)
}

func TestRevealMonotonic(t *testing.T) {
	s := NewSession().Start("r1", testFilm("Heat"))
	prev := s.Reveal()
	for _, g := range []string{"a", "b", "c", "d", "e"} {
		s = s.Submit(g)
		cur := s.Reveal()
		for i := range cur.Actors {
			if prev.Actors[i] {
				assert.True(t, cur.Actors[i], "slot %d hidden again", i)
			}
		}
		assert.GreaterOrEqual(t, cur.Count(), prev.Count())
		prev = cur
	}
}

func TestShufflePermutes(t *testing.T) {
	in := []string{"a", "b", "c", "d", "e"}
	out := Shuffle(in, rand.New(rand.NewPCG(1, 2)))

	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, in, "input must not be modified")
	require.Len(t, out, len(in))
	sorted := append([]string(nil), out...)
	sort.Strings(sorted)
	assert.Equal(t, in, sorted)
}

func TestShuffleDeterministicUnderSeed(t *testing.T) {
	in := []string{"a", "b", "c", "d", "e"}
	a := Shuffle(in, rand.New(rand.NewPCG(7, 7)))
	b := Shuffle(in, rand.New(rand.NewPCG(7, 7)))
	assert.Equal(t, a, b)
}

// fixedRand always picks index 0, which rotates the slice left by one.
type fixedRand struct{}

func (fixedRand) IntN(int) int { return 0 }

func TestShuffleFisherYates(t *testing.T) {
	out := Shuffle([]string{"a", "b", "c", "d", "e"}, fixedRand{})
	assert.Equal(t, []string{"b", "c", "d", "e", "a"}, out)
}
