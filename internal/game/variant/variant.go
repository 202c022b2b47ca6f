// Package variant holds the video poker variants: ordered rule tables that
// name a hand, and paytables that price it per wager level.
package variant

import (
	"fmt"

	"video-poker-service/internal/game/analyzer"
	"video-poker-service/internal/game/cards"
	appErr "video-poker-service/pkg/errors"
)

const (
	MinWager = 1
	MaxWager = 5
)

// Paytable maps a category to its payout at wager levels 1..5. Categories
// missing from the table pay nothing.
type Paytable map[Category][MaxWager]int

// Payouts is a paytable column flattened for one wager, indexed by Category.
type Payouts [NumCategories]int

// Of returns the payout for c, 0 when c is out of range.
func (p *Payouts) Of(c Category) int {
	if !c.Valid() {
		return 0
	}
	return p[c]
}

// Variant is one paytable configuration.
type Variant struct {
	ID         string
	Name       string
	Wild       analyzer.WildPolicy
	JokerCount int
	Rules      []Rule
	Paytable   Paytable
	// Jackpot is paid for a Royal Flush at MaxWager instead of the table.
	Jackpot int
}

// Analyze runs the analyzer with the variant's wild policy.
func (v *Variant) Analyze(h *cards.Hand) analyzer.Analysis {
	return analyzer.Analyze(h, v.Wild)
}

// Classify returns the first category whose rule matches, or None.
func (v *Variant) Classify(a *analyzer.Analysis) Category {
	for i := range v.Rules {
		if v.Rules[i].Match(a) {
			return v.Rules[i].Category
		}
	}
	return None
}

// ClassifyHand checks h against the variant's deck and classifies it.
func (v *Variant) ClassifyHand(h cards.Hand) (Category, error) {
	if err := v.CheckHand(h); err != nil {
		return None, err
	}
	a := v.Analyze(&h)
	return v.Classify(&a), nil
}

// CheckHand rejects hands that the variant's deck could not have dealt.
func (v *Variant) CheckHand(h cards.Hand) error {
	if _, err := cards.NewHand(h[:]); err != nil {
		return err
	}
	jokers := 0
	for _, c := range h {
		if !c.IsWild() {
			continue
		}
		jokers++
		if int(c.Joker) > v.JokerCount {
			return fmt.Errorf("%w: %s holds joker %d", appErr.ErrWildNotAllowed, v.ID, c.Joker)
		}
	}
	if jokers > v.JokerCount {
		return fmt.Errorf("%w: %s allows %d jokers", appErr.ErrWildNotAllowed, v.ID, v.JokerCount)
	}
	return nil
}

// Payout prices c at the wager level. The royal flush jackpot at MaxWager
// is applied here explicitly rather than read from the table.
func (v *Variant) Payout(c Category, wager int) (int, error) {
	if wager < MinWager || wager > MaxWager {
		return 0, fmt.Errorf("%w: %d", appErr.ErrInvalidWager, wager)
	}
	if !c.Valid() {
		return 0, fmt.Errorf("%w: %d", appErr.ErrUnknownCategory, c)
	}
	if c == RoyalFlush && wager == MaxWager {
		return v.Jackpot, nil
	}
	row, ok := v.Paytable[c]
	if !ok {
		return 0, nil
	}
	return row[wager-1], nil
}

// PayoutsFor flattens the paytable for one wager so hot loops can price a
// category with an array index.
func (v *Variant) PayoutsFor(wager int) (*Payouts, error) {
	var p Payouts
	for c := None; c < NumCategories; c++ {
		amount, err := v.Payout(c, wager)
		if err != nil {
			return nil, err
		}
		p[c] = amount
	}
	return &p, nil
}

// Categories lists the categories the variant can emit, best first.
func (v *Variant) Categories() []Category {
	out := make([]Category, len(v.Rules))
	for i, r := range v.Rules {
		out[i] = r.Category
	}
	return out
}

// Deck builds the fresh deck the variant deals from.
func (v *Variant) Deck() (cards.Deck, error) {
	return cards.Build(v.JokerCount)
}
