package game

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Strength reduces a 7-card hand to 1 if any rank appears at least twice, 0 otherwise.
// Two pair, trips, straights and flushes are not distinguished.
func Strength(cards []Card) int {
	var counts [len(Ranks)]int
	maxCount := 0
	for _, c := range cards {
		counts[c.Rank()]++
		maxCount = max(maxCount, counts[c.Rank()])
	}
	if maxCount >= 2 {
		return 1
	}
	return 0
}

// Showdown compares the hero's hole cards plus the board against the opponent's
// hole cards plus the board. Two hands with equal strength always draw.
func Showdown(s State) float64 {
	if !s.IsComplete() {
		panic(fmt.Sprintf("showdown needs %d cards, got %d", RiverSize, len(s)))
	}

	board := s.Board()
	hero := Strength(append(slices.Clone(s.Hero()), board...))
	opponent := Strength(append(slices.Clone(s.Opponent()), board...))

	switch {
	case hero > opponent:
		return Win
	case hero == opponent:
		return Draw
	default:
		return Loss
	}
}
