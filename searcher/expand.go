package searcher

import (
	"equity/game"

	"golang.org/x/exp/rand"
)

// draws is the number of cards each child of a node at the given street reveals.
func draws(street game.Street) int {
	switch street {
	case game.Seeded: // opponent's hole cards
		return 2
	case game.Dealt: // flop
		return 3
	case game.Flop, game.Turn: // turn, river
		return 1
	default:
		return 0
	}
}

// expand adds width children to a leaf, each revealing the next street drawn
// independently from the cards the leaf has not seen. Duplicate draws are kept.
// It returns the number of children added.
func (t *tree) expand(id int, rng *rand.Rand, width int) (int, error) {
	n := t.nodes[id]
	if len(n.children) > 0 {
		return 0, nil
	}
	k := draws(n.state.Street())
	if k == 0 {
		return 0, nil
	}

	pool := game.Remaining(n.state.Known())
	for i := 0; i < width; i++ {
		cards, err := game.Sample(rng, pool, k)
		if err != nil {
			return i, err
		}
		t.addChild(id, n.state.Extend(cards...))
	}
	return width, nil
}
