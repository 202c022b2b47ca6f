package variant

import (
	"fmt"

	"video-poker-service/internal/game/analyzer"
	"video-poker-service/internal/game/cards"
	appErr "video-poker-service/pkg/errors"
)

// Jackpot is the max-bet royal flush payout shared by every variant.
const Jackpot = 4000

// pays scales a one-coin payout across the five wager levels.
func pays(perCoin int) [MaxWager]int {
	var row [MaxWager]int
	for i := range row {
		row[i] = perCoin * (i + 1)
	}
	return row
}

// royal is the royal flush row; the fifth column is the jackpot, not 5x250.
var royal = [MaxWager]int{250, 500, 750, 1000, Jackpot}

var (
	ruleRoyalFlush     = Rule{RoyalFlush, isRoyalFlush}
	ruleWildRoyalFlush = Rule{WildRoyalFlush, isWildRoyalFlush}
	ruleStraightFlush  = Rule{StraightFlush, isStraightFlush}
	ruleFourOfAKind    = Rule{FourOfAKind, isFourOfAKind}
	ruleFullHouse      = Rule{FullHouse, isFullHouse}
	ruleFlush          = Rule{Flush, isFlush}
	ruleStraight       = Rule{Straight, isStraight}
	ruleThreeOfAKind   = Rule{ThreeOfAKind, isThreeOfAKind}
	ruleTwoPair        = Rule{TwoPair, isTwoPair}
	ruleJacksOrBetter  = Rule{JacksOrBetter, pairAtLeast(cards.Jack)}
	ruleFourAces       = Rule{FourAces, fourOf(cards.Ace, cards.Ace)}
	ruleFourLow        = Rule{FourTwosThroughFours, fourOf(cards.Two, cards.Four)}
	ruleFourMid        = Rule{FourFivesThroughKings, fourOf(cards.Five, cards.King)}
	ruleFiveOfAKind    = Rule{FiveOfAKind, isFiveOfAKind}
	ruleFourDeuces     = Rule{FourDeuces, isFourDeuces}
)

// lowerJacks is the shared tail of every jacks-or-better style table.
var lowerJacks = []Rule{ruleFullHouse, ruleFlush, ruleStraight, ruleThreeOfAKind, ruleTwoPair, ruleJacksOrBetter}

// deucesTail is the shared tail below the deuce-wild specials.
var deucesTail = []Rule{ruleStraightFlush, ruleFourOfAKind, ruleFullHouse, ruleFlush, ruleStraight, ruleThreeOfAKind}

func chain(parts ...[]Rule) []Rule {
	var out []Rule
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

var catalogue = []*Variant{
	{
		ID: "jacks_or_better", Name: "Jacks or Better",
		Rules: chain([]Rule{ruleRoyalFlush, ruleStraightFlush, ruleFourOfAKind}, lowerJacks),
		Paytable: Paytable{
			RoyalFlush: royal, StraightFlush: pays(50), FourOfAKind: pays(25), FullHouse: pays(9),
			Flush: pays(6), Straight: pays(4), ThreeOfAKind: pays(3), TwoPair: pays(2), JacksOrBetter: pays(1),
		},
	},
	{
		ID: "tens_or_better", Name: "Tens or Better",
		Rules: []Rule{
			ruleRoyalFlush, ruleStraightFlush, ruleFourOfAKind, ruleFullHouse, ruleFlush, ruleStraight,
			ruleThreeOfAKind, ruleTwoPair, {TensOrBetter, pairAtLeast(cards.Ten)},
		},
		Paytable: Paytable{
			RoyalFlush: royal, StraightFlush: pays(50), FourOfAKind: pays(25), FullHouse: pays(6),
			Flush: pays(5), Straight: pays(4), ThreeOfAKind: pays(3), TwoPair: pays(2), TensOrBetter: pays(1),
		},
	},
	{
		ID: "bonus_poker", Name: "Bonus Poker",
		Rules: chain([]Rule{ruleRoyalFlush, ruleStraightFlush, ruleFourAces, ruleFourLow, ruleFourMid}, lowerJacks),
		Paytable: Paytable{
			RoyalFlush: royal, StraightFlush: pays(50), FourAces: pays(80), FourTwosThroughFours: pays(40),
			FourFivesThroughKings: pays(25), FullHouse: pays(8), Flush: pays(5), Straight: pays(4),
			ThreeOfAKind: pays(3), TwoPair: pays(2), JacksOrBetter: pays(1),
		},
	},
	{
		ID: "bonus_poker_deluxe", Name: "Bonus Poker Deluxe",
		Rules: chain([]Rule{ruleRoyalFlush, ruleStraightFlush, ruleFourOfAKind}, lowerJacks),
		Paytable: Paytable{
			RoyalFlush: royal, StraightFlush: pays(50), FourOfAKind: pays(80), FullHouse: pays(9),
			Flush: pays(6), Straight: pays(4), ThreeOfAKind: pays(3), TwoPair: pays(1), JacksOrBetter: pays(1),
		},
	},
	{
		ID: "double_bonus", Name: "Double Bonus Poker",
		Rules: chain([]Rule{ruleRoyalFlush, ruleStraightFlush, ruleFourAces, ruleFourLow, ruleFourMid}, lowerJacks),
		Paytable: Paytable{
			RoyalFlush: royal, StraightFlush: pays(50), FourAces: pays(160), FourTwosThroughFours: pays(80),
			FourFivesThroughKings: pays(50), FullHouse: pays(10), Flush: pays(7), Straight: pays(5),
			ThreeOfAKind: pays(3), TwoPair: pays(1), JacksOrBetter: pays(1),
		},
	},
	{
		ID: "double_double_bonus", Name: "Double Double Bonus Poker",
		Rules: chain([]Rule{
			ruleRoyalFlush, ruleStraightFlush,
			{FourAcesWithLowKicker, fourAcesWithLowKicker},
			{FourLowWithLowKicker, fourLowWithLowKicker},
			ruleFourAces, ruleFourLow, ruleFourMid,
		}, lowerJacks),
		Paytable: Paytable{
			RoyalFlush: royal, StraightFlush: pays(50), FourAcesWithLowKicker: pays(400),
			FourLowWithLowKicker: pays(160), FourAces: pays(160), FourTwosThroughFours: pays(80),
			FourFivesThroughKings: pays(50), FullHouse: pays(9), Flush: pays(6), Straight: pays(4),
			ThreeOfAKind: pays(3), TwoPair: pays(1), JacksOrBetter: pays(1),
		},
	},
	{
		ID: "triple_double_bonus", Name: "Triple Double Bonus Poker",
		Rules: chain([]Rule{
			ruleRoyalFlush, ruleStraightFlush,
			{FourAcesWithLowKicker, fourAcesWithLowKicker},
			{FourLowWithLowKicker, fourLowWithLowKicker},
			ruleFourAces, ruleFourLow, ruleFourMid,
		}, lowerJacks),
		Paytable: Paytable{
			RoyalFlush: royal, StraightFlush: pays(50), FourAcesWithLowKicker: pays(800),
			FourLowWithLowKicker: pays(400), FourAces: pays(160), FourTwosThroughFours: pays(80),
			FourFivesThroughKings: pays(50), FullHouse: pays(9), Flush: pays(7), Straight: pays(4),
			ThreeOfAKind: pays(2), TwoPair: pays(1), JacksOrBetter: pays(1),
		},
	},
	{
		ID: "aces_and_faces", Name: "Aces and Faces",
		Rules: chain([]Rule{
			ruleRoyalFlush, ruleStraightFlush, ruleFourAces,
			{FourFaces, fourOf(cards.Jack, cards.King)},
			{FourTwosThroughTens, fourOf(cards.Two, cards.Ten)},
		}, lowerJacks),
		Paytable: Paytable{
			RoyalFlush: royal, StraightFlush: pays(50), FourAces: pays(80), FourFaces: pays(40),
			FourTwosThroughTens: pays(25), FullHouse: pays(8), Flush: pays(5), Straight: pays(4),
			ThreeOfAKind: pays(3), TwoPair: pays(2), JacksOrBetter: pays(1),
		},
	},
	{
		ID: "super_aces", Name: "Super Aces Bonus Poker",
		Rules: chain([]Rule{ruleRoyalFlush, ruleStraightFlush, ruleFourAces, ruleFourLow, ruleFourMid}, lowerJacks),
		Paytable: Paytable{
			RoyalFlush: royal, StraightFlush: pays(60), FourAces: pays(400), FourTwosThroughFours: pays(80),
			FourFivesThroughKings: pays(50), FullHouse: pays(8), Flush: pays(5), Straight: pays(4),
			ThreeOfAKind: pays(3), TwoPair: pays(1), JacksOrBetter: pays(1),
		},
	},
	{
		ID: "white_hot_aces", Name: "White Hot Aces",
		Rules: chain([]Rule{ruleRoyalFlush, ruleStraightFlush, ruleFourAces, ruleFourLow, ruleFourMid}, lowerJacks),
		Paytable: Paytable{
			RoyalFlush: royal, StraightFlush: pays(80), FourAces: pays(240), FourTwosThroughFours: pays(120),
			FourFivesThroughKings: pays(50), FullHouse: pays(8), Flush: pays(5), Straight: pays(4),
			ThreeOfAKind: pays(3), TwoPair: pays(1), JacksOrBetter: pays(1),
		},
	},
	{
		ID: "all_american", Name: "All American",
		Rules: chain([]Rule{ruleRoyalFlush, ruleStraightFlush, ruleFourOfAKind}, lowerJacks),
		Paytable: Paytable{
			RoyalFlush: royal, StraightFlush: pays(200), FourOfAKind: pays(40), FullHouse: pays(8),
			Flush: pays(8), Straight: pays(8), ThreeOfAKind: pays(3), TwoPair: pays(1), JacksOrBetter: pays(1),
		},
	},
	{
		ID: "super_double_bonus", Name: "Super Double Bonus Poker",
		Rules: chain([]Rule{
			ruleRoyalFlush, ruleStraightFlush, ruleFourAces,
			{FourFaces, fourOf(cards.Jack, cards.King)},
			ruleFourLow,
			{FourFivesThroughTens, fourOf(cards.Five, cards.Ten)},
		}, lowerJacks),
		Paytable: Paytable{
			RoyalFlush: royal, StraightFlush: pays(80), FourAces: pays(160), FourFaces: pays(120),
			FourTwosThroughFours: pays(80), FourFivesThroughTens: pays(50), FullHouse: pays(9),
			Flush: pays(5), Straight: pays(4), ThreeOfAKind: pays(3), TwoPair: pays(1), JacksOrBetter: pays(1),
		},
	},
	{
		ID: "deuces_wild", Name: "Deuces Wild", Wild: analyzer.WildDeuces,
		Rules: chain([]Rule{ruleRoyalFlush, ruleFourDeuces, ruleWildRoyalFlush, ruleFiveOfAKind}, deucesTail),
		Paytable: Paytable{
			RoyalFlush: royal, FourDeuces: pays(200), WildRoyalFlush: pays(25), FiveOfAKind: pays(15),
			StraightFlush: pays(9), FourOfAKind: pays(5), FullHouse: pays(3), Flush: pays(2),
			Straight: pays(2), ThreeOfAKind: pays(1),
		},
	},
	{
		ID: "bonus_deuces_wild", Name: "Bonus Deuces Wild", Wild: analyzer.WildDeuces,
		Rules: chain([]Rule{
			ruleRoyalFlush,
			{FourDeucesWithAce, isFourDeucesWithAce},
			ruleFourDeuces, ruleWildRoyalFlush,
			{FiveAces, fiveOf(cards.Ace, cards.Ace)},
			{FiveThreesThroughFives, fiveOf(cards.Three, cards.Five)},
			{FiveSixesThroughKings, fiveOf(cards.Six, cards.King)},
		}, deucesTail),
		Paytable: Paytable{
			RoyalFlush: royal, FourDeucesWithAce: pays(400), FourDeuces: pays(200), WildRoyalFlush: pays(25),
			FiveAces: pays(80), FiveThreesThroughFives: pays(40), FiveSixesThroughKings: pays(20),
			StraightFlush: pays(10), FourOfAKind: pays(4), FullHouse: pays(3), Flush: pays(3),
			Straight: pays(1), ThreeOfAKind: pays(1),
		},
	},
	{
		ID: "loose_deuces", Name: "Loose Deuces", Wild: analyzer.WildDeuces,
		Rules: chain([]Rule{ruleRoyalFlush, ruleFourDeuces, ruleWildRoyalFlush, ruleFiveOfAKind}, deucesTail),
		Paytable: Paytable{
			RoyalFlush: royal, FourDeuces: pays(500), WildRoyalFlush: pays(25), FiveOfAKind: pays(15),
			StraightFlush: pays(10), FourOfAKind: pays(4), FullHouse: pays(3), Flush: pays(2),
			Straight: pays(2), ThreeOfAKind: pays(1),
		},
	},
	{
		ID: "double_deuces", Name: "Double Deuces", Wild: analyzer.WildDeuces,
		Rules: chain([]Rule{ruleRoyalFlush, ruleFourDeuces, ruleWildRoyalFlush, ruleFiveOfAKind}, deucesTail),
		Paytable: Paytable{
			RoyalFlush: royal, FourDeuces: pays(400), WildRoyalFlush: pays(25), FiveOfAKind: pays(16),
			StraightFlush: pays(13), FourOfAKind: pays(4), FullHouse: pays(3), Flush: pays(2),
			Straight: pays(2), ThreeOfAKind: pays(1),
		},
	},
	{
		ID: "joker_poker", Name: "Joker Poker (Kings or Better)", Wild: analyzer.WildJokers, JokerCount: 1,
		Rules: []Rule{
			ruleRoyalFlush, ruleFiveOfAKind, ruleWildRoyalFlush, ruleStraightFlush, ruleFourOfAKind,
			ruleFullHouse, ruleFlush, ruleStraight, ruleThreeOfAKind, ruleTwoPair,
			{KingsOrBetter, pairAtLeast(cards.King)},
		},
		Paytable: Paytable{
			RoyalFlush: royal, FiveOfAKind: pays(200), WildRoyalFlush: pays(100), StraightFlush: pays(50),
			FourOfAKind: pays(20), FullHouse: pays(7), Flush: pays(5), Straight: pays(3),
			ThreeOfAKind: pays(2), TwoPair: pays(1), KingsOrBetter: pays(1),
		},
	},
	{
		ID: "double_joker", Name: "Double Joker Poker", Wild: analyzer.WildJokers, JokerCount: 2,
		Rules: []Rule{
			ruleRoyalFlush, ruleWildRoyalFlush, ruleFiveOfAKind, ruleStraightFlush, ruleFourOfAKind,
			ruleFullHouse, ruleFlush, ruleStraight, ruleThreeOfAKind, ruleTwoPair,
		},
		Paytable: Paytable{
			RoyalFlush: royal, WildRoyalFlush: pays(100), FiveOfAKind: pays(50), StraightFlush: pays(25),
			FourOfAKind: pays(9), FullHouse: pays(5), Flush: pays(4), Straight: pays(3),
			ThreeOfAKind: pays(2), TwoPair: pays(1),
		},
	},
}

var byID = func() map[string]*Variant {
	m := make(map[string]*Variant, len(catalogue))
	for _, v := range catalogue {
		if v.Jackpot == 0 {
			v.Jackpot = Jackpot
		}
		m[v.ID] = v
	}
	return m
}()

// Lookup returns the variant registered under id.
func Lookup(id string) (*Variant, error) {
	v, ok := byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", appErr.ErrUnknownVariant, id)
	}
	return v, nil
}

// All returns every variant in catalogue order.
func All() []*Variant {
	out := make([]*Variant, len(catalogue))
	copy(out, catalogue)
	return out
}
