package cards

import (
	"fmt"
	"strings"

	appErr "video-poker-service/pkg/errors"
)

// HandSize is the number of cards in every hand this package deals with.
const HandSize = 5

// Hand is exactly five cards. Order matters for display and for hold
// patterns, never for classification.
type Hand [HandSize]Card

// NewHand copies cs into a Hand, failing on a wrong length, an invalid card
// or a duplicate.
func NewHand(cs []Card) (Hand, error) {
	var h Hand
	if len(cs) != HandSize {
		return h, fmt.Errorf("%w: want %d cards, got %d", appErr.ErrInvalidHand, HandSize, len(cs))
	}
	if err := validateUnique(cs); err != nil {
		return h, err
	}
	copy(h[:], cs)
	return h, nil
}

// ParseHand parses a five card hand such as "A♥ K♥ Q♥ J♥ 10♥".
func ParseHand(s string) (Hand, error) {
	cs, err := ParseList(s)
	if err != nil {
		return Hand{}, err
	}
	return NewHand(cs)
}

// MustParseHand is ParseHand for literals in tests and tables.
func MustParseHand(s string) Hand {
	h, err := ParseHand(s)
	if err != nil {
		panic(err)
	}
	return h
}

// Cards returns the hand as a fresh slice.
func (h Hand) Cards() []Card {
	out := make([]Card, HandSize)
	copy(out, h[:])
	return out
}

// Wilds counts the jokers in the hand.
func (h Hand) Wilds() int {
	n := 0
	for _, c := range h {
		if c.IsWild() {
			n++
		}
	}
	return n
}

// Contains reports whether c is one of the hand's cards.
func (h Hand) Contains(c Card) bool {
	for _, hc := range h {
		if hc == c {
			return true
		}
	}
	return false
}

func (h Hand) String() string {
	parts := make([]string, HandSize)
	for i, c := range h {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

func validateUnique(cs []Card) error {
	var seen [54]bool
	for _, c := range cs {
		if !c.valid() {
			return fmt.Errorf("%w: %+v", appErr.ErrInvalidCard, c)
		}
		idx := c.Index()
		if seen[idx] {
			return fmt.Errorf("%w: %s", appErr.ErrDuplicateCard, c)
		}
		seen[idx] = true
	}
	return nil
}
