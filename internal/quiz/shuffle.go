package quiz

import "math/rand"

// Shuffle returns a uniformly shuffled copy of in. The input is left untouched.
func Shuffle[T any](rng *rand.Rand, in []T) []T {
	out := append([]T(nil), in...)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
