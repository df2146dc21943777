package game

// Revealed lists which reveal slots are face up.
type Revealed struct {
	Actors [ActorSlots]bool
	Poster bool
}

// Reveal is the reveal policy as a pure function of the session state, the
// number of attempts made and whether one of them was correct.
//
// Actor slot i is shown once the round is live and either the film was
// guessed or at least i attempts were made, so slot 0 is visible from the
// start and each wrong guess turns one more slot. The poster is shown only on
// a win or after the last attempt.
func Reveal(state State, attempts int, correct bool) Revealed {
	var r Revealed
	if state == StateIdle {
		return r
	}
	for i := range r.Actors {
		r.Actors[i] = correct || attempts >= i
	}
	r.Poster = correct || attempts >= MaxAttempts
	return r
}

// Count returns the number of revealed actor slots.
func (r Revealed) Count() int {
	n := 0
	for _, v := range r.Actors {
		if v {
			n++
		}
	}
	return n
}
