package game

import (
	"errors"
	"fmt"
	"math/bits"

	"golang.org/x/exp/slices"
)

const (
	Ranks = "23456789TJQKA"
	Suits = "shdc"

	DeckSize = len(Ranks) * len(Suits)
)

var (
	ErrInvalidCardToken = errors.New("invalid card token")
	ErrDuplicateCard    = errors.New("duplicate card")
)

// Card is an index into the canonical deck: rank-major, suit-minor (2s 2h 2d 2c 3s ...).
type Card uint8

// tokens[i] is the two-character name of Card(i)
var tokens = func() []string {
	names := make([]string, 0, DeckSize)
	for _, r := range Ranks {
		for _, s := range Suits {
			names = append(names, string(r)+string(s))
		}
	}
	return names
}()

func NewCard(rank, suit int) Card {
	return Card(rank*len(Suits) + suit)
}

// ParseCard converts a token such as "As" or "Kh" into a Card.
func ParseCard(token string) (Card, error) {
	i := slices.Index(tokens, token)
	if i < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCardToken, token)
	}
	return Card(i), nil
}

// ParseHole parses the hero's two hole cards.
func ParseHole(first, second string) (State, error) {
	c1, err := ParseCard(first)
	if err != nil {
		return nil, err
	}
	c2, err := ParseCard(second)
	if err != nil {
		return nil, err
	}
	if c1 == c2 {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateCard, c1)
	}
	return State{c1, c2}, nil
}

func (c Card) Rank() int {
	return int(c) / len(Suits)
}

func (c Card) Suit() int {
	return int(c) % len(Suits)
}

func (c Card) String() string {
	if int(c) >= DeckSize {
		return "??"
	}
	return tokens[c]
}

// CardSet is a bitset over the 52 cards.
type CardSet uint64

func NewCardSet(cards ...Card) CardSet {
	var set CardSet
	for _, c := range cards {
		set = set.Add(c)
	}
	return set
}

func (s CardSet) Add(c Card) CardSet {
	return s | 1<<c
}

func (s CardSet) Contains(c Card) bool {
	return s&(1<<c) != 0
}

func (s CardSet) Len() int {
	return bits.OnesCount64(uint64(s))
}
