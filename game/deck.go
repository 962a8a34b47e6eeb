package game

import (
	"errors"
	"fmt"

	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"
)

var ErrInsufficientPool = errors.New("not enough cards left to sample")

// Remaining returns the full deck minus the known cards, in canonical order.
func Remaining(known CardSet) []Card {
	pool := make([]Card, 0, DeckSize)
	for c := Card(0); int(c) < DeckSize; c++ {
		if !known.Contains(c) {
			pool = append(pool, c)
		}
	}
	return pool
}

// Sample draws k distinct cards uniformly at random from pool without replacement.
// The pool is left untouched.
func Sample(rng *rand.Rand, pool []Card, k int) ([]Card, error) {
	if k < 0 || k > len(pool) {
		return nil, fmt.Errorf("%w: want %d, have %d", ErrInsufficientPool, k, len(pool))
	}

	// Partial Fisher-Yates over a copy
	shuffled := slices.Clone(pool)
	for i := 0; i < k; i++ {
		j := i + rng.Intn(len(shuffled)-i)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled[:k:k], nil
}
