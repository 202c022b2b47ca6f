// Package strategy ranks the 32 hold patterns of a dealt hand by expected
// payout, enumerating every replacement draw from the remaining deck.
package strategy

import (
	"context"
	"fmt"
	"sort"

	"video-poker-service/internal/game/analyzer"
	"video-poker-service/internal/game/cards"
	"video-poker-service/internal/game/variant"
	appErr "video-poker-service/pkg/errors"
)

// MinRemaining is the smallest remaining deck a search accepts.
const MinRemaining = cards.HandSize

// Request is one search input. Remaining must be exactly the cards the
// player could still draw.
type Request struct {
	Hand      cards.Hand
	Remaining cards.Deck
	Variant   *variant.Variant
	Wager     int
}

// Outcome is the value of one hold pattern.
type Outcome struct {
	Mask        HoldMask     `json:"mask"`
	Pattern     string       `json:"pattern"`
	Held        []cards.Card `json:"held"`
	EV          float64      `json:"ev"`
	Draws       int          `json:"draws"`
	Hands       int          `json:"hands"`
	Description string       `json:"description"`
	// Frequencies counts the drawn hands per category.
	Frequencies map[variant.Category]int `json:"frequencies,omitempty"`
}

// Result holds all 32 outcomes, best first.
type Result struct {
	Outcomes []Outcome `json:"outcomes"`
}

// Best is the recommended hold.
func (r *Result) Best() Outcome { return r.Outcomes[0] }

// Current is the hold-all outcome, the value of standing pat.
func (r *Result) Current() Outcome {
	for _, o := range r.Outcomes {
		if o.Mask == HoldAll {
			return o
		}
	}
	return Outcome{}
}

// Progress is called after each pattern finishes, in evaluation order. done
// counts finished patterns including o.
type Progress func(o Outcome, done int)

// Search evaluates every hold pattern. It checks ctx before each pattern, so
// at most the pattern in flight completes after cancellation.
func Search(ctx context.Context, req Request) (*Result, error) {
	return SearchWithProgress(ctx, req, nil)
}

// SearchWithProgress is Search with a per-pattern callback.
func SearchWithProgress(ctx context.Context, req Request, progress Progress) (*Result, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}
	payouts, err := req.Variant.PayoutsFor(req.Wager)
	if err != nil {
		return nil, err
	}

	e := evaluator{
		hand:    req.Hand,
		deck:    req.Remaining,
		v:       req.Variant,
		payouts: payouts,
	}
	outcomes := make([]Outcome, 0, Patterns)
	for m := DiscardAll; m <= HoldAll; m++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		o := e.evaluate(m)
		outcomes = append(outcomes, o)
		if progress != nil {
			progress(o, len(outcomes))
		}
	}

	sort.SliceStable(outcomes, func(i, j int) bool {
		return outcomes[i].EV > outcomes[j].EV
	})
	return &Result{Outcomes: outcomes}, nil
}

// Validate checks a request without running it.
func Validate(req Request) error {
	v := req.Variant
	if v == nil {
		return fmt.Errorf("%w: nil variant", appErr.ErrUnknownVariant)
	}
	if req.Wager < variant.MinWager || req.Wager > variant.MaxWager {
		return fmt.Errorf("%w: %d", appErr.ErrInvalidWager, req.Wager)
	}
	if err := v.CheckHand(req.Hand); err != nil {
		return err
	}
	if len(req.Remaining) < MinRemaining {
		return fmt.Errorf("%w: %d cards remaining, need %d", appErr.ErrDeckTooSmall, len(req.Remaining), MinRemaining)
	}
	if err := req.Remaining.Validate(); err != nil {
		return err
	}
	for _, c := range req.Remaining {
		if req.Hand.Contains(c) {
			return fmt.Errorf("%w: %s is in the hand and the remaining deck", appErr.ErrDuplicateCard, c)
		}
		if c.IsWild() && int(c.Joker) > v.JokerCount {
			return fmt.Errorf("%w: %s deals no %s", appErr.ErrWildNotAllowed, v.ID, c)
		}
	}
	return nil
}

type evaluator struct {
	hand    cards.Hand
	deck    cards.Deck
	v       *variant.Variant
	payouts *variant.Payouts
}

func (e *evaluator) evaluate(m HoldMask) Outcome {
	o := Outcome{
		Mask:        m,
		Pattern:     m.String(),
		Held:        m.Held(e.hand),
		Draws:       m.Draws(),
		Description: m.Describe(e.hand),
	}

	var discards [cards.HandSize]int
	k := 0
	for i := 0; i < cards.HandSize; i++ {
		if !m.Holds(i) {
			discards[k] = i
			k++
		}
	}

	var counts [variant.NumCategories]int
	h := e.hand
	total := 0
	hands := 0
	it := newCombinations(len(e.deck), k)
	for it.next() {
		for j, idx := range it.indices() {
			h[discards[j]] = e.deck[idx]
		}
		a := analyzer.Analyze(&h, e.v.Wild)
		c := e.v.Classify(&a)
		counts[c]++
		total += e.payouts.Of(c)
		hands++
	}

	o.Hands = hands
	if hands > 0 {
		o.EV = float64(total) / float64(hands)
	}
	o.Frequencies = make(map[variant.Category]int)
	for c, n := range counts {
		if n > 0 {
			o.Frequencies[variant.Category(c)] = n
		}
	}
	return o
}
