package game

// Rand is the randomness the engine and controller draw from.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// Shuffle returns a Fisher–Yates permutation of images. The input is not
// modified.
func Shuffle(images []string, rng Rand) []string {
	out := append([]string(nil), images...)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
