// Package analyzer derives the rank/suit facts of a five card hand under a
// wild card policy. It does not name hands; variant rule tables do that.
package analyzer

import (
	"video-poker-service/internal/game/cards"
)

// WildPolicy decides which cards count as wild.
type WildPolicy uint8

const (
	// WildNone treats every face card naturally. Jokers, if present, are
	// still wild.
	WildNone WildPolicy = iota
	// WildJokers makes only the jokers wild.
	WildJokers
	// WildDeuces turns every 2 into a wild before analysis.
	WildDeuces
)

func (p WildPolicy) String() string {
	switch p {
	case WildJokers:
		return "jokers"
	case WildDeuces:
		return "deuces"
	}
	return "none"
}

// Analysis is an immutable snapshot of one hand. Counts only cover natural
// (non-wild) cards; k-of-a-kind queries add the full wild count to every
// rank, so several ranks may claim the same wilds at once. Rule order in the
// variant tables decides which reading wins.
type Analysis struct {
	RankCounts [cards.Ace + 1]uint8
	SuitCounts [4]uint8
	Wilds      int

	// Distinct is the number of distinct natural ranks, MaxCount the size of
	// the largest natural group.
	Distinct int
	MaxCount int

	Flush        bool
	Straight     bool
	StraightHigh int
	// NaturalRoyal is A-K-Q-J-10 suited with no wild substitution.
	NaturalRoyal bool

	// FourRank is the highest rank that reaches four with wilds, Kicker the
	// highest natural rank outside it (0 when the fifth card is wild).
	FourRank cards.Rank
	Kicker   cards.Rank

	FiveOfAKind bool
	FiveRank    cards.Rank
}

// Analyze computes the Analysis of h. It allocates nothing.
func Analyze(h *cards.Hand, policy WildPolicy) Analysis {
	var a Analysis
	var values [cards.HandSize]int
	n := 0

	for _, c := range h {
		if c.IsWild() || (policy == WildDeuces && c.Rank == cards.Two) {
			a.Wilds++
			continue
		}
		a.RankCounts[c.Rank]++
		a.SuitCounts[c.Suit]++
		values[n] = int(c.Rank)
		n++
	}

	for r := cards.Two; r <= cards.Ace; r++ {
		cnt := int(a.RankCounts[r])
		if cnt == 0 {
			continue
		}
		a.Distinct++
		if cnt > a.MaxCount {
			a.MaxCount = cnt
		}
	}

	maxSuit := 0
	for _, cnt := range a.SuitCounts {
		if int(cnt) > maxSuit {
			maxSuit = int(cnt)
		}
	}
	a.Flush = maxSuit+a.Wilds >= cards.HandSize

	a.Straight, a.StraightHigh = straight(values[:n], a.Wilds, a.MaxCount)
	a.NaturalRoyal = a.Wilds == 0 && a.Flush && a.Straight && a.StraightHigh == int(cards.Ace)

	for r := cards.Ace; r >= cards.Two; r-- {
		if a.RankCounts[r] == 0 {
			continue
		}
		total := int(a.RankCounts[r]) + a.Wilds
		if total >= 5 && a.FiveRank == 0 {
			a.FiveOfAKind = true
			a.FiveRank = r
		}
		if total >= 4 && a.FourRank == 0 {
			a.FourRank = r
		}
	}
	if a.FourRank != 0 {
		for r := cards.Ace; r >= cards.Two; r-- {
			if r != a.FourRank && a.RankCounts[r] > 0 {
				a.Kicker = r
				break
			}
		}
	}
	return a
}

// straight checks the natural values (any order) for a run that the wilds
// can complete. Ace plays high first, then low as 1.
func straight(values []int, wilds, maxCount int) (bool, int) {
	if maxCount > 1 {
		return false, 0
	}
	if len(values) == 0 {
		return true, int(cards.Ace)
	}

	var sorted [cards.HandSize]int
	n := copy(sorted[:], values)
	sortDesc(sorted[:n])
	if gaps, ok := runGaps(sorted[:n], wilds); ok {
		high := sorted[0] + wilds - gaps
		if high > int(cards.Ace) {
			high = int(cards.Ace)
		}
		return true, high
	}

	if sorted[0] != int(cards.Ace) {
		return false, 0
	}
	// A-2-3-4-5: move the ace to the bottom as 1.
	copy(sorted[:n-1], sorted[1:n])
	sorted[n-1] = 1
	if _, ok := runGaps(sorted[:n], wilds); ok && sorted[0] <= 5 {
		return true, 5
	}
	return false, 0
}

// runGaps sums the holes between consecutive descending values and reports
// whether the wilds can fill them.
func runGaps(desc []int, wilds int) (int, bool) {
	gaps := 0
	for i := 0; i+1 < len(desc); i++ {
		d := desc[i] - desc[i+1]
		if d <= 0 {
			return 0, false
		}
		gaps += d - 1
	}
	return gaps, gaps <= wilds
}

func sortDesc(v []int) {
	for i := 1; i < len(v); i++ {
		for j := i; j > 0 && v[j] > v[j-1]; j-- {
			v[j], v[j-1] = v[j-1], v[j]
		}
	}
}

// OfAKind is the natural count of r plus every wild.
func (a *Analysis) OfAKind(r cards.Rank) int {
	return int(a.RankCounts[r]) + a.Wilds
}

// MaxOfAKind is the largest OfAKind over ranks present in the hand.
func (a *Analysis) MaxOfAKind() int {
	return a.MaxCount + a.Wilds
}

// HasOfAKind reports whether some natural rank in [lo, hi] reaches k with
// wilds.
func (a *Analysis) HasOfAKind(k int, lo, hi cards.Rank) bool {
	for r := lo; r <= hi; r++ {
		if a.RankCounts[r] > 0 && a.OfAKind(r) >= k {
			return true
		}
	}
	return false
}

// NaturalPairs counts ranks held at least twice without wilds.
func (a *Analysis) NaturalPairs() int {
	n := 0
	for r := cards.Two; r <= cards.Ace; r++ {
		if a.RankCounts[r] >= 2 {
			n++
		}
	}
	return n
}

// FullHouse reports whether the naturals split into exactly two ranks that
// the wilds can shape into three plus two.
func (a *Analysis) FullHouse() bool {
	return a.Distinct == 2 && a.MaxCount <= 3
}

// StraightFlush reports a straight and a flush together.
func (a *Analysis) StraightFlush() bool {
	return a.Straight && a.Flush
}

// RoyalRun reports a straight flush topped by an ace, wild or natural.
func (a *Analysis) RoyalRun() bool {
	return a.StraightFlush() && a.StraightHigh == int(cards.Ace)
}
