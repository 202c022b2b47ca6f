// Package showdown classifies hands for the multiplayer joker game and
// orders players. There is no paytable: jokers are fully wild and hands only
// compete against each other.
package showdown

import (
	"fmt"
	"sort"

	"video-poker-service/internal/game/cards"
)

// Category is a multiplayer hand class, weakest first.
type Category uint8

const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	FiveOfAKind
)

var categoryNames = [...]string{
	HighCard:      "High Card",
	OnePair:       "One Pair",
	TwoPair:       "Two Pair",
	ThreeOfAKind:  "Three of a Kind",
	Straight:      "Straight",
	Flush:         "Flush",
	FullHouse:     "Full House",
	FourOfAKind:   "Four of a Kind",
	StraightFlush: "Straight Flush",
	FiveOfAKind:   "Five of a Kind",
}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("Category(%d)", c)
}

// Evaluation is a classified hand. RankValues is the tie-break vector,
// primary rank first, then kickers.
type Evaluation struct {
	Category    Category `json:"category"`
	DisplayName string   `json:"displayName"`
	RankValues  []int    `json:"rankValues"`
}

// hand is the working view of five cards split into naturals and jokers.
type hand struct {
	counts  [cards.Ace + 1]int
	values  []int // natural values, descending
	jokers  int
	suited  bool // every natural shares one suit
	maxSame int
}

func split(h cards.Hand) hand {
	var w hand
	suit := -1
	w.suited = true
	for _, c := range h {
		if c.IsWild() {
			w.jokers++
			continue
		}
		w.counts[c.Rank]++
		w.values = append(w.values, int(c.Rank))
		if suit == -1 {
			suit = int(c.Suit)
		} else if suit != int(c.Suit) {
			w.suited = false
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(w.values)))
	for _, n := range w.counts {
		if n > w.maxSame {
			w.maxSame = n
		}
	}
	return w
}

// highestReaching returns the highest natural rank whose count plus the
// available jokers reaches k, skipping exclude.
func (w *hand) highestReaching(k, jokers int, exclude cards.Rank) cards.Rank {
	for r := cards.Ace; r >= cards.Two; r-- {
		if r == exclude || w.counts[r] == 0 {
			continue
		}
		if w.counts[r]+jokers >= k {
			return r
		}
	}
	return 0
}

// kickers lists natural values outside the given ranks, descending.
func (w *hand) kickers(skip ...cards.Rank) []int {
	out := make([]int, 0, len(w.values))
next:
	for _, v := range w.values {
		for _, s := range skip {
			if v == int(s) {
				continue next
			}
		}
		out = append(out, v)
	}
	return out
}

// straightHigh returns the best straight the jokers can complete, 0 when none.
func (w *hand) straightHigh() int {
	if w.maxSame > 1 {
		return 0
	}
	for high := int(cards.Ace); high >= 5; high-- {
		low := high - 4
		fits := true
		for _, v := range w.values {
			if v == int(cards.Ace) && high == 5 {
				v = 1
			}
			if v < low || v > high {
				fits = false
				break
			}
		}
		if fits && cards.HandSize-len(w.values) <= w.jokers {
			return high
		}
	}
	return 0
}

// flushValues fills the jokers in as the highest values the naturals lack.
func (w *hand) flushValues() []int {
	out := append([]int(nil), w.values...)
	need := w.jokers
	for v := int(cards.Ace); v >= int(cards.Two) && need > 0; v-- {
		if w.counts[v] == 0 {
			out = append(out, v)
			need--
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

// Evaluate classifies h, trying categories from strongest to weakest.
func Evaluate(h cards.Hand) Evaluation {
	w := split(h)

	if w.maxSame+w.jokers >= 5 {
		r := w.highestReaching(5, w.jokers, 0)
		return Evaluation{FiveOfAKind, "Five " + r.Name(), []int{int(r)}}
	}

	high := w.straightHigh()
	if w.suited && high > 0 {
		name := fmt.Sprintf("Straight Flush, %s high", cards.Rank(high))
		if high == int(cards.Ace) {
			name = "Royal Flush"
		}
		return Evaluation{StraightFlush, name, []int{high}}
	}

	if r := w.highestReaching(4, w.jokers, 0); r != 0 {
		return Evaluation{FourOfAKind, "Four " + r.Name(), append([]int{int(r)}, w.kickers(r)...)}
	}

	if t := w.highestReaching(3, w.jokers, 0); t != 0 {
		left := w.jokers - max(0, 3-w.counts[t])
		if p := w.highestReaching(2, left, t); p != 0 && len(w.kickers(t, p)) == 0 {
			return Evaluation{FullHouse, fmt.Sprintf("Full House, %s over %s", t.Name(), p.Name()),
				[]int{int(t), int(p)}}
		}
	}

	if w.suited {
		vals := w.flushValues()
		return Evaluation{Flush, fmt.Sprintf("Flush, %s high", cards.Rank(vals[0])), vals}
	}

	if high > 0 {
		return Evaluation{Straight, fmt.Sprintf("Straight, %s high", cards.Rank(high)), []int{high}}
	}

	if t := w.highestReaching(3, w.jokers, 0); t != 0 {
		return Evaluation{ThreeOfAKind, "Three " + t.Name(), append([]int{int(t)}, w.kickers(t)...)}
	}

	// Past this point there is at most one joker: two would have made three
	// of a kind with any natural.
	if w.jokers == 0 {
		if hi := w.highestReaching(2, 0, 0); hi != 0 {
			if lo := w.highestReaching(2, 0, hi); lo != 0 {
				return Evaluation{TwoPair, fmt.Sprintf("Two Pair, %s and %s", hi.Name(), lo.Name()),
					append([]int{int(hi), int(lo)}, w.kickers(hi, lo)...)}
			}
		}
	}

	if p := w.highestReaching(2, w.jokers, 0); p != 0 {
		return Evaluation{OnePair, "Pair of " + p.Name(), append([]int{int(p)}, w.kickers(p)...)}
	}

	return Evaluation{HighCard, fmt.Sprintf("High Card, %s", cards.Rank(w.values[0])), w.kickers()}
}
