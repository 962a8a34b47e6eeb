package game

// State is the ordered list of revealed cards:
// [0,2) hero hole, [2,4) opponent hole, [4,7) flop, 7 turn, 8 river.
type State []Card

type Street int

const (
	Seeded   Street = iota // hero's hole cards only
	Dealt                  // opponent's hole cards revealed
	Flop
	Turn
	River
	Unreachable
)

// Lengths of a State at each street
const (
	HoleSize  = 2
	DealtSize = 2 * HoleSize
	FlopSize  = DealtSize + 3
	TurnSize  = FlopSize + 1
	RiverSize = TurnSize + 1
)

func (s State) Street() Street {
	switch len(s) {
	case HoleSize:
		return Seeded
	case DealtSize:
		return Dealt
	case FlopSize:
		return Flop
	case TurnSize:
		return Turn
	case RiverSize:
		return River
	default:
		return Unreachable
	}
}

func (s State) IsComplete() bool {
	return len(s) == RiverSize
}

func (s State) Known() CardSet {
	return NewCardSet(s...)
}

// Extend returns a new State with the given cards appended. The receiver is never aliased.
func (s State) Extend(cards ...Card) State {
	next := make(State, 0, len(s)+len(cards))
	next = append(next, s...)
	return append(next, cards...)
}

func (s State) Hero() []Card {
	return s[:HoleSize]
}

func (s State) Opponent() []Card {
	return s[HoleSize:DealtSize]
}

func (s State) Board() []Card {
	return s[DealtSize:]
}

func (st Street) String() string {
	switch st {
	case Seeded:
		return "seeded"
	case Dealt:
		return "dealt"
	case Flop:
		return "flop"
	case Turn:
		return "turn"
	case River:
		return "river"
	default:
		return "unreachable"
	}
}
