package testlet

import "math/rand/v2"

// Source draws uniformly distributed integers in [0, n). *rand.Rand from
// math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

// ShuffleFunc permutes items in place using src.
type ShuffleFunc func(src Source, items []Item)

// ShuffleFullRange swaps every position i with a position drawn from the
// whole slice. Every output is a permutation, but the distribution over
// permutations is not exactly uniform for n > 2.
func ShuffleFullRange(src Source, items []Item) {
	n := len(items)
	for i := range n {
		j := src.IntN(n)
		items[i], items[j] = items[j], items[i]
	}
}

// ShuffleFisherYates is the decreasing-range shuffle; all permutations are
// equally likely.
func ShuffleFisherYates(src Source, items []Item) {
	for i := len(items) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

// newSource returns an independent generator seeded from the runtime's
// random source.
func newSource() Source {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
