package variant

import (
	"video-poker-service/internal/game/analyzer"
	"video-poker-service/internal/game/cards"
)

// Predicate tests one fact about an analysed hand.
type Predicate func(a *analyzer.Analysis) bool

// Rule pairs a category with the predicate that earns it. A variant's rules
// are tested top to bottom and the first match wins.
type Rule struct {
	Category Category
	Match    Predicate
}

func isRoyalFlush(a *analyzer.Analysis) bool     { return a.NaturalRoyal }
func isWildRoyalFlush(a *analyzer.Analysis) bool { return a.RoyalRun() && a.Wilds > 0 }
func isStraightFlush(a *analyzer.Analysis) bool  { return a.StraightFlush() }
func isFullHouse(a *analyzer.Analysis) bool      { return a.FullHouse() }
func isFlush(a *analyzer.Analysis) bool          { return a.Flush }
func isStraight(a *analyzer.Analysis) bool       { return a.Straight }
func isTwoPair(a *analyzer.Analysis) bool        { return a.NaturalPairs() >= 2 }
func isFourOfAKind(a *analyzer.Analysis) bool    { return a.FourRank != 0 }
func isFiveOfAKind(a *analyzer.Analysis) bool    { return a.FiveOfAKind }

func isThreeOfAKind(a *analyzer.Analysis) bool {
	return a.HasOfAKind(3, cards.Two, cards.Ace)
}

// Deuce-wild decks carry no jokers, so every wild is a deuce.
func isFourDeuces(a *analyzer.Analysis) bool { return a.Wilds == 4 }

func isFourDeucesWithAce(a *analyzer.Analysis) bool {
	return a.Wilds == 4 && a.RankCounts[cards.Ace] == 1
}

func pairAtLeast(lo cards.Rank) Predicate {
	return func(a *analyzer.Analysis) bool {
		return a.HasOfAKind(2, lo, cards.Ace)
	}
}

func fourOf(lo, hi cards.Rank) Predicate {
	return func(a *analyzer.Analysis) bool {
		return a.HasOfAKind(4, lo, hi)
	}
}

func fiveOf(lo, hi cards.Rank) Predicate {
	return func(a *analyzer.Analysis) bool {
		return a.HasOfAKind(5, lo, hi)
	}
}

// Kicker bonuses only count natural quads.
func fourAcesWithLowKicker(a *analyzer.Analysis) bool {
	return a.Wilds == 0 && a.FourRank == cards.Ace &&
		a.Kicker >= cards.Two && a.Kicker <= cards.Four
}

func fourLowWithLowKicker(a *analyzer.Analysis) bool {
	if a.Wilds != 0 || a.FourRank < cards.Two || a.FourRank > cards.Four {
		return false
	}
	return a.Kicker == cards.Ace || (a.Kicker >= cards.Two && a.Kicker <= cards.Four)
}
