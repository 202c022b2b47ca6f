package cards

import (
	"fmt"
	"math/rand/v2"

	appErr "video-poker-service/pkg/errors"
)

// MaxJokers is the largest number of jokers any deck carries.
const MaxJokers = 2

// Deck is an ordered run of unique cards. Dealing takes from the front.
type Deck []Card

// Build returns the 52 face cards in rank-major, suit-minor order
// (2♥ 2♦ 2♣ 2♠ 3♥ ... A♠) followed by jokerCount jokers.
func Build(jokerCount int) (Deck, error) {
	if jokerCount < 0 || jokerCount > MaxJokers {
		return nil, fmt.Errorf("%w: %d", appErr.ErrInvalidJokerCount, jokerCount)
	}
	d := make(Deck, 0, 52+jokerCount)
	for _, r := range Ranks {
		for _, s := range Suits {
			d = append(d, Card{Rank: r, Suit: s})
		}
	}
	for i := 1; i <= jokerCount; i++ {
		d = append(d, Card{Joker: uint8(i)})
	}
	return d, nil
}

// Shuffle returns a permuted copy of d. Each pass is a full Fisher-Yates
// shuffle drawing fresh values from rng; one pass is already uniform.
func Shuffle(d Deck, rng *rand.Rand, passes int) Deck {
	out := make(Deck, len(d))
	copy(out, d)
	if passes < 1 {
		passes = 1
	}
	for p := 0; p < passes; p++ {
		rng.Shuffle(len(out), func(i, j int) {
			out[i], out[j] = out[j], out[i]
		})
	}
	return out
}

// Deal splits off the first n cards. The returned slices do not alias d.
func Deal(d Deck, n int) ([]Card, Deck, error) {
	if n < 0 || n > len(d) {
		return nil, nil, fmt.Errorf("%w: need %d, have %d", appErr.ErrDeckTooSmall, n, len(d))
	}
	dealt := make([]Card, n)
	copy(dealt, d[:n])
	rest := make(Deck, len(d)-n)
	copy(rest, d[n:])
	return dealt, rest, nil
}

// DealHand deals five cards as a Hand.
func DealHand(d Deck) (Hand, Deck, error) {
	dealt, rest, err := Deal(d, HandSize)
	if err != nil {
		return Hand{}, nil, err
	}
	h, err := NewHand(dealt)
	if err != nil {
		return Hand{}, nil, err
	}
	return h, rest, nil
}

// Without returns d minus every card in cs, preserving order.
func (d Deck) Without(cs ...Card) Deck {
	var drop [54]bool
	for _, c := range cs {
		if c.valid() {
			drop[c.Index()] = true
		}
	}
	out := make(Deck, 0, len(d))
	for _, c := range d {
		if !drop[c.Index()] {
			out = append(out, c)
		}
	}
	return out
}

// Contains reports whether c is in the deck.
func (d Deck) Contains(c Card) bool {
	for _, dc := range d {
		if dc == c {
			return true
		}
	}
	return false
}

// Validate rejects invalid or duplicated cards.
func (d Deck) Validate() error {
	return validateUnique(d)
}
