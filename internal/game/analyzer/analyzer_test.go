package analyzer_test

import (
	"testing"

	"video-poker-service/internal/game/analyzer"
	"video-poker-service/internal/game/cards"

	"github.com/stretchr/testify/assert"
)

func analyze(s string, p analyzer.WildPolicy) analyzer.Analysis {
	h := cards.MustParseHand(s)
	return analyzer.Analyze(&h, p)
}

func TestHistograms(t *testing.T) {
	a := analyze("A♥ A♦ K♣ 7♠ 7♥", analyzer.WildNone)
	assert.Equal(t, uint8(2), a.RankCounts[cards.Ace])
	assert.Equal(t, uint8(1), a.RankCounts[cards.King])
	assert.Equal(t, uint8(2), a.RankCounts[cards.Seven])
	assert.Equal(t, uint8(2), a.SuitCounts[cards.Hearts])
	assert.Equal(t, 3, a.Distinct)
	assert.Equal(t, 2, a.MaxCount)
	assert.Equal(t, 2, a.NaturalPairs())
	assert.Zero(t, a.Wilds)
	assert.False(t, a.Flush)
	assert.False(t, a.Straight)
}

func TestStraights(t *testing.T) {
	cases := []struct {
		hand   string
		policy analyzer.WildPolicy
		ok     bool
		high   int
	}{
		{"9♣ 8♦ 7♣ 6♣ 5♣", analyzer.WildNone, true, 9},
		{"A♣ K♦ Q♣ J♣ 10♣", analyzer.WildNone, true, 14},
		{"A♣ 2♦ 3♣ 4♣ 5♣", analyzer.WildNone, true, 5},
		{"A♣ K♦ 3♣ 4♣ 5♣", analyzer.WildNone, false, 0},
		{"Q♣ K♦ A♣ 2♣ 3♣", analyzer.WildNone, false, 0},
		{"9♣ 8♦ 7♣ 6♣ 6♦", analyzer.WildNone, false, 0},
		// one gap, one joker
		{"9♣ 8♦ JK 6♣ 5♣", analyzer.WildJokers, true, 9},
		// spare joker extends upward
		{"K♣ Q♦ J♣ 10♣ JK", analyzer.WildJokers, true, 14},
		{"5♣ 4♦ 3♣ 6♣ JK", analyzer.WildJokers, true, 7},
		// ace low with deuce wilds
		{"A♣ 2♦ 3♣ 2♠ 5♣", analyzer.WildDeuces, true, 5},
		{"A♣ 2♦ 2♣ 2♠ 5♣", analyzer.WildDeuces, true, 5},
		// deuce is natural without the wild policy
		{"A♣ 2♦ 3♣ 2♠ 5♣", analyzer.WildNone, false, 0},
		{"A♣ 9♦ 2♣ 2♠ 5♣", analyzer.WildDeuces, false, 0},
	}
	for _, tc := range cases {
		a := analyze(tc.hand, tc.policy)
		assert.Equal(t, tc.ok, a.Straight, tc.hand)
		assert.Equal(t, tc.high, a.StraightHigh, tc.hand)
	}
}

func TestFlushWithWilds(t *testing.T) {
	assert.True(t, analyze("2♥ 9♥ K♥ 4♥ 7♥", analyzer.WildNone).Flush)
	assert.False(t, analyze("2♠ 9♥ K♥ 4♥ 7♥", analyzer.WildNone).Flush)
	assert.True(t, analyze("2♠ 9♥ K♥ 4♥ 7♥", analyzer.WildDeuces).Flush)
	assert.True(t, analyze("JK1 JK2 K♥ 4♥ 7♥", analyzer.WildJokers).Flush)
}

func TestRoyalDetection(t *testing.T) {
	a := analyze("A♥ K♥ Q♥ J♥ 10♥", analyzer.WildNone)
	assert.True(t, a.NaturalRoyal)
	assert.True(t, a.RoyalRun())

	a = analyze("A♥ K♥ Q♥ 2♣ 10♥", analyzer.WildDeuces)
	assert.False(t, a.NaturalRoyal)
	assert.True(t, a.RoyalRun())

	a = analyze("JK K♥ Q♥ J♥ 10♥", analyzer.WildJokers)
	assert.False(t, a.NaturalRoyal)
	assert.True(t, a.RoyalRun())

	a = analyze("9♣ 8♣ 7♣ 6♣ 5♣", analyzer.WildNone)
	assert.True(t, a.StraightFlush())
	assert.False(t, a.RoyalRun())
	assert.False(t, a.NaturalRoyal)
}

func TestFourAndKicker(t *testing.T) {
	a := analyze("A♥ A♦ A♣ A♠ K♥", analyzer.WildNone)
	assert.Equal(t, cards.Ace, a.FourRank)
	assert.Equal(t, cards.King, a.Kicker)
	assert.False(t, a.FiveOfAKind)

	a = analyze("3♥ 3♦ 3♣ 3♠ A♥", analyzer.WildNone)
	assert.Equal(t, cards.Three, a.FourRank)
	assert.Equal(t, cards.Ace, a.Kicker)

	// wilds reach four for both kings and fives; the higher rank wins
	a = analyze("K♥ 5♦ JK1 JK2 2♣", analyzer.WildDeuces)
	assert.Equal(t, 3, a.Wilds)
	assert.Equal(t, cards.King, a.FourRank)
	assert.Equal(t, cards.Five, a.Kicker)
	assert.Equal(t, 4, a.OfAKind(cards.Five))
}

func TestFiveOfAKind(t *testing.T) {
	a := analyze("2♥ 2♦ 2♣ 2♠ 7♥", analyzer.WildDeuces)
	assert.Equal(t, 4, a.Wilds)
	assert.True(t, a.FiveOfAKind)
	assert.Equal(t, cards.Seven, a.FiveRank)

	a = analyze("A♥ A♦ A♣ JK1 JK2", analyzer.WildJokers)
	assert.True(t, a.FiveOfAKind)
	assert.Equal(t, cards.Ace, a.FiveRank)

	a = analyze("A♥ A♦ A♣ 2♥ 2♦", analyzer.WildNone)
	assert.False(t, a.FiveOfAKind)
	assert.True(t, a.FullHouse())
}

func TestOverCountingAcrossRanks(t *testing.T) {
	// a single joker lifts every present rank at once
	a := analyze("Q♥ Q♦ 9♣ 9♠ JK", analyzer.WildJokers)
	assert.Equal(t, 3, a.OfAKind(cards.Queen))
	assert.Equal(t, 3, a.OfAKind(cards.Nine))
	assert.True(t, a.FullHouse())
	assert.True(t, a.HasOfAKind(3, cards.Two, cards.Ace))
	assert.False(t, a.HasOfAKind(4, cards.Two, cards.Ace))
}

func TestAnalyzeIsPure(t *testing.T) {
	h := cards.MustParseHand("2♥ 9♥ 2♣ 4♥ JK")
	first := analyzer.Analyze(&h, analyzer.WildDeuces)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, analyzer.Analyze(&h, analyzer.WildDeuces))
	}
	assert.Equal(t, cards.MustParseHand("2♥ 9♥ 2♣ 4♥ JK"), h)
}
