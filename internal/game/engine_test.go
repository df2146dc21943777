package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFilm(title string) Film {
	return Film{
		Title:       title,
		ActorImages: []string{"/a0.jpg", "/a1.jpg", "/a2.jpg", "/a3.jpg", "/a4.jpg"},
		PosterImage: "/poster.jpg",
	}
}

func TestNewSessionIsIdle(t *testing.T) {
	s := NewSession()
	assert.Equal(t, StateIdle, s.State)
	assert.Nil(t, s.Target)
	assert.Empty(t, s.Attempts)
	assert.Equal(t, Revealed{}, s.Reveal())
}

func TestIdleIgnoresSubmitAndReset(t *testing.T) {
	s := NewSession()
	assert.Equal(t, s, s.Submit("inception"))
	assert.Equal(t, s, s.Reset())
}

func TestStartAssignsTarget(t *testing.T) {
	s := NewSession().Start("r1", testFilm("Inception"))
	require.NotNil(t, s.Target)
	assert.Equal(t, StateInProgress, s.State)
	assert.Equal(t, "r1", s.ID)
	assert.Equal(t, "Inception", s.Target.Title)
	assert.Empty(t, s.Attempts)
	assert.Equal(t, MaxAttempts, s.AttemptsLeft())
}

func TestStartOnlyFromIdle(t *testing.T) {
	s := NewSession().Start("r1", testFilm("Inception"))
	again := s.Start("r2", testFilm("Heat"))
	assert.Equal(t, s, again)
}

func TestStartCopiesFilm(t *testing.T) {
	f := testFilm("Inception")
	s := NewSession().Start("r1", f)
	f.ActorImages[0] = "/mutated.jpg"
	assert.Equal(t, "/a0.jpg", s.Target.ActorImages[0])
}

func TestWinOnSecondAttempt(t *testing.T) {
	s := NewSession().Start("r1", testFilm("Inception"))
	s = s.Submit("incept")
	assert.Equal(t, StateInProgress, s.State)
	s = s.Submit("Inception")

	assert.Equal(t, StateWon, s.State)
	assert.Len(t, s.Attempts, 2)
	assert.Equal(t, []string{"1. Incept", "2. Inception - Correct!"}, s.Transcript())

	r := s.Reveal()
	assert.True(t, r.Actors[0])
	assert.True(t, r.Actors[1])
	assert.True(t, r.Poster)
}

func TestLoseAfterFiveWrong(t *testing.T) {
	s := NewSession().Start("r1", testFilm("Inception"))
	for i := 0; i < MaxAttempts; i++ {
		require.Equal(t, StateInProgress, s.State)
		s = s.Submit("heat")
	}
	assert.Equal(t, StateLost, s.State)
	assert.Len(t, s.Attempts, MaxAttempts)
	assert.Equal(t, 0, s.AttemptsLeft())

	r := s.Reveal()
	assert.Equal(t, ActorSlots, r.Count())
	assert.True(t, r.Poster)

	sixth := s.Submit("inception")
	assert.Equal(t, s, sixth)
	assert.Len(t, sixth.Attempts, MaxAttempts)
}

func TestCorrectOnLastAttemptWins(t *testing.T) {
	s := NewSession().Start("r1", testFilm("Heat"))
	for i := 0; i < MaxAttempts-1; i++ {
		s = s.Submit("")
	}
	s = s.Submit("HEAT")
	assert.Equal(t, StateWon, s.State)
	assert.True(t, s.Won())
}

func TestWonSessionIgnoresSubmit(t *testing.T) {
	s := NewSession().Start("r1", testFilm("Heat")).Submit("heat")
	require.Equal(t, StateWon, s.State)
	assert.Len(t, s.Submit("anything").Attempts, 1)
}

func TestBlankGuessIsPass(t *testing.T) {
	s := NewSession().Start("r1", testFilm("Heat"))
	s = s.Submit("")
	s = s.Submit("   ")
	require.Len(t, s.Attempts, 2)
	assert.Equal(t, PassGuess, s.Attempts[0].NormalizedGuess)
	assert.Equal(t, PassGuess, s.Attempts[1].NormalizedGuess)
	assert.Equal(t, "   ", s.Attempts[1].RawInput)
	assert.Equal(t, []string{"1. *Pass*", "2. *Pass*"}, s.Transcript())
}

func TestSubmitDoesNotAliasEarlierValues(t *testing.T) {
	s1 := NewSession().Start("r1", testFilm("Heat")).Submit("alien")
	s2 := s1.Submit("aliens")
	s3 := s1.Submit("brazil")

	assert.Len(t, s1.Attempts, 1)
	assert.Equal(t, "Aliens", s2.Attempts[1].NormalizedGuess)
	assert.Equal(t, "Brazil", s3.Attempts[1].NormalizedGuess)
}

func TestTranscriptIsAppendOnly(t *testing.T) {
	s := NewSession().Start("r1", testFilm("Heat"))
	prev := []string{}
	for _, g := range []string{"alien", "", "heat"} {
		s = s.Submit(g)
		cur := s.Transcript()
		require.Len(t, cur, len(prev)+1)
		assert.Equal(t, prev, cur[:len(prev)])
		prev = cur
	}
}

func TestResetFromTerminal(t *testing.T) {
	won := NewSession().Start("r1", testFilm("Heat")).Submit("heat")
	first := won.Reset()
	second := first.Reset()

	assert.Equal(t, NewSession(), first)
	assert.Equal(t, first, second)
}

func TestResetIgnoredInProgress(t *testing.T) {
	s := NewSession().Start("r1", testFilm("Heat")).Submit("alien")
	assert.Equal(t, s, s.Reset())
}

func TestAttemptsNeverExceedMax(t *testing.T) {
	s := NewSession().Start("r1", testFilm("Heat"))
	for i := 0; i < 20; i++ {
		s = s.Submit("nope")
		assert.LessOrEqual(t, len(s.Attempts), MaxAttempts)
	}
}

func TestFilmValidate(t *testing.T) {
	tests := []struct {
		name string
		film Film
		ok   bool
	}{
		{"complete", testFilm("Heat"), true},
		{"no title", Film{ActorImages: testFilm("").ActorImages, PosterImage: "/p.jpg"}, false},
		{"four actors", Film{Title: "Heat", ActorImages: []string{"a", "b", "c", "d"}, PosterImage: "/p.jpg"}, false},
		{"blank actor", Film{Title: "Heat", ActorImages: []string{"a", "b", "", "d", "e"}, PosterImage: "/p.jpg"}, false},
		{"no poster", Film{Title: "Heat", ActorImages: testFilm("").ActorImages}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.film.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidFilm)
			}
		})
	}
}
