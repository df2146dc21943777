package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitleCase(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"the matrix", "The Matrix"},
		{"X-MEN", "X-men"},
		{"tHE gODFATHER part ii", "The Godfather Part Ii"},
		{"amélie", "Amélie"},
		{"élan vital", "Élan Vital"},
		{"up  in the air", "Up  In The Air"},
		{"12 angry men", "12 Angry Men"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, TitleCase(tt.in))
		})
	}
}

func TestNormalizeGuess(t *testing.T) {
	assert.Equal(t, PassGuess, NormalizeGuess(""))
	assert.Equal(t, PassGuess, NormalizeGuess("  "))
	assert.Equal(t, PassGuess, NormalizeGuess("\t\n"))
	assert.Equal(t, "The Matrix", NormalizeGuess("the matrix"))
}

func TestMatches(t *testing.T) {
	assert.True(t, Matches("The Matrix", "the matrix"))
	assert.True(t, Matches("X-men", "X-Men"))
	assert.False(t, Matches("Incept", "Inception"))
	assert.False(t, Matches("The Matrix Reloaded", "The Matrix"))
	assert.False(t, Matches(PassGuess, "Inception"))
}
