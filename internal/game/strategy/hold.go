package strategy

import (
	"fmt"
	"math/bits"
	"strings"

	"video-poker-service/internal/game/cards"
	appErr "video-poker-service/pkg/errors"
)

// HoldMask selects the dealt cards kept before the draw: bit i keeps hand[i].
type HoldMask uint8

const (
	DiscardAll HoldMask = 0
	HoldAll    HoldMask = 1<<cards.HandSize - 1
	// Patterns is the number of distinct hold masks.
	Patterns = 1 << cards.HandSize
)

// MaskOf builds a mask from per-position hold flags.
func MaskOf(held [cards.HandSize]bool) HoldMask {
	var m HoldMask
	for i, h := range held {
		if h {
			m |= 1 << i
		}
	}
	return m
}

// MaskFromPositions builds a mask from zero based positions.
func MaskFromPositions(positions []int) (HoldMask, error) {
	var m HoldMask
	for _, p := range positions {
		if p < 0 || p >= cards.HandSize {
			return 0, fmt.Errorf("%w: position %d", appErr.ErrInvalidHoldMask, p)
		}
		m |= 1 << p
	}
	return m, nil
}

func (m HoldMask) Valid() bool { return m <= HoldAll }

// Holds reports whether position i is kept.
func (m HoldMask) Holds(i int) bool { return m&(1<<i) != 0 }

// Kept is the number of held cards.
func (m HoldMask) Kept() int { return bits.OnesCount8(uint8(m)) }

// Draws is the number of replacement cards the mask asks for.
func (m HoldMask) Draws() int { return cards.HandSize - m.Kept() }

// Flags expands the mask into per-position hold flags.
func (m HoldMask) Flags() [cards.HandSize]bool {
	var out [cards.HandSize]bool
	for i := range out {
		out[i] = m.Holds(i)
	}
	return out
}

// String renders the mask as five characters, H for hold and - for discard,
// in hand order.
func (m HoldMask) String() string {
	var b strings.Builder
	for i := 0; i < cards.HandSize; i++ {
		if m.Holds(i) {
			b.WriteByte('H')
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}

// Held returns the kept cards in hand order.
func (m HoldMask) Held(h cards.Hand) []cards.Card {
	out := make([]cards.Card, 0, m.Kept())
	for i, c := range h {
		if m.Holds(i) {
			out = append(out, c)
		}
	}
	return out
}

// Describe names the pattern for display.
func (m HoldMask) Describe(h cards.Hand) string {
	switch m {
	case HoldAll:
		return "Hold all"
	case DiscardAll:
		return "Discard all, draw 5"
	}
	held := m.Held(h)
	names := make([]string, len(held))
	for i, c := range held {
		names[i] = c.String()
	}
	return fmt.Sprintf("Hold %s, draw %d", strings.Join(names, " "), m.Draws())
}

// ApplyHold fills the discarded positions of h, in hand order, with
// replacements. The replacement count must equal m.Draws().
func ApplyHold(h cards.Hand, m HoldMask, replacements []cards.Card) (cards.Hand, error) {
	if !m.Valid() {
		return h, fmt.Errorf("%w: %d", appErr.ErrInvalidHoldMask, m)
	}
	if len(replacements) != m.Draws() {
		return h, fmt.Errorf("%w: mask %s draws %d, got %d cards",
			appErr.ErrInvalidHoldMask, m, m.Draws(), len(replacements))
	}
	out := h
	j := 0
	for i := range out {
		if m.Holds(i) {
			continue
		}
		out[i] = replacements[j]
		j++
	}
	if _, err := cards.NewHand(out[:]); err != nil {
		return h, err
	}
	return out, nil
}
