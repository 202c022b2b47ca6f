package strategy_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"video-poker-service/internal/game/cards"
	"video-poker-service/internal/game/strategy"
	"video-poker-service/internal/game/variant"
	appErr "video-poker-service/pkg/errors"
)

func request(t *testing.T, variantID, hand string, wager int) strategy.Request {
	t.Helper()
	v, err := variant.Lookup(variantID)
	require.NoError(t, err)
	h := cards.MustParseHand(hand)
	deck, err := v.Deck()
	require.NoError(t, err)
	return strategy.Request{Hand: h, Remaining: deck.Without(h[:]...), Variant: v, Wager: wager}
}

// smallRequest keeps the remaining deck short so every pattern is cheap.
func smallRequest(t *testing.T, variantID, hand, remaining string, wager int) strategy.Request {
	t.Helper()
	v, err := variant.Lookup(variantID)
	require.NoError(t, err)
	rem, err := cards.ParseList(remaining)
	require.NoError(t, err)
	return strategy.Request{Hand: cards.MustParseHand(hand), Remaining: rem, Variant: v, Wager: wager}
}

func TestFourToARoyal(t *testing.T) {
	req := request(t, "jacks_or_better", "A♥ K♥ Q♥ J♥ 3♣", 1)
	res, err := strategy.Search(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, res.Outcomes, strategy.Patterns)

	best := res.Best()
	assert.Equal(t, strategy.HoldMask(0b01111), best.Mask)
	assert.Equal(t, "HHHH-", best.Pattern)
	assert.InDelta(t, 322.0/47.0, best.EV, 1e-12)
	assert.Equal(t, 47, best.Hands)
	assert.Equal(t, 1, best.Frequencies[variant.RoyalFlush])
	assert.Equal(t, 8, best.Frequencies[variant.Flush])

	second := res.Outcomes[1]
	assert.Equal(t, strategy.HoldMask(0b01110), second.Mask)
	assert.InDelta(t, 794.0/1081.0, second.EV, 1e-12)

	assert.Zero(t, res.Current().EV)
	assert.Equal(t, "Hold A♥ K♥ Q♥ J♥, draw 1", best.Description)
}

func TestHoldAllMatchesPayout(t *testing.T) {
	cases := []struct {
		variant string
		hand    string
		wager   int
	}{
		{"jacks_or_better", "A♥ K♥ Q♥ J♥ 10♥", 5},
		{"jacks_or_better", "A♥ K♥ Q♥ J♥ 10♥", 3},
		{"bonus_poker", "A♥ A♦ A♣ A♠ K♥", 2},
		{"deuces_wild", "2♥ 2♦ 2♣ 2♠ 7♥", 1},
		{"joker_poker", "JK A♦ A♣ 9♥ 9♦", 4},
	}
	for _, tc := range cases {
		req := smallRequest(t, tc.variant, tc.hand, "3♠ 4♠ 5♦ 6♦ 7♣ 8♣", tc.wager)
		res, err := strategy.Search(context.Background(), req)
		require.NoError(t, err)

		cat, err := req.Variant.ClassifyHand(req.Hand)
		require.NoError(t, err)
		want, err := req.Variant.Payout(cat, tc.wager)
		require.NoError(t, err)

		cur := res.Current()
		assert.Equal(t, strategy.HoldAll, cur.Mask)
		assert.Equal(t, 1, cur.Hands)
		assert.Equal(t, float64(want), cur.EV, "%s %s", tc.variant, tc.hand)
	}
}

func TestRoyalStandsPat(t *testing.T) {
	req := smallRequest(t, "jacks_or_better", "A♥ K♥ Q♥ J♥ 10♥", "3♠ 4♠ 5♦ 6♦ 7♣ 8♣", 5)
	res, err := strategy.Search(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, strategy.HoldAll, res.Best().Mask)
	assert.Equal(t, 4000.0, res.Best().EV)
}

func TestEnumerationSize(t *testing.T) {
	req := smallRequest(t, "deuces_wild", "2♥ 9♦ 9♣ K♠ 4♥", "3♠ 4♠ 5♦ 6♦ 7♣ 8♣ J♥ Q♥", 1)
	res, err := strategy.Search(context.Background(), req)
	require.NoError(t, err)

	seen := map[strategy.HoldMask]bool{}
	for _, o := range res.Outcomes {
		assert.False(t, seen[o.Mask])
		seen[o.Mask] = true
		assert.Equal(t, strategy.Binomial(len(req.Remaining), o.Draws), o.Hands, o.Pattern)
		sum := 0
		for _, n := range o.Frequencies {
			sum += n
		}
		assert.Equal(t, o.Hands, sum, o.Pattern)
	}
	assert.Len(t, seen, strategy.Patterns)
}

func TestOutcomesSortedDescending(t *testing.T) {
	req := smallRequest(t, "double_double_bonus", "A♥ A♦ 3♣ 3♠ 9♥", "A♠ A♣ 3♦ 4♠ 5♦ 6♦ 7♣ 8♣", 1)
	res, err := strategy.Search(context.Background(), req)
	require.NoError(t, err)
	for i := 1; i < len(res.Outcomes); i++ {
		assert.GreaterOrEqual(t, res.Outcomes[i-1].EV, res.Outcomes[i].EV)
	}
}

func TestSearchIsReproducible(t *testing.T) {
	req := smallRequest(t, "bonus_deuces_wild", "2♥ 2♦ 9♣ K♠ 4♥", "3♠ 4♠ 5♦ 6♦ 7♣ 8♣ J♥ Q♥ A♠", 3)
	first, err := strategy.Search(context.Background(), req)
	require.NoError(t, err)
	second, err := strategy.Search(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

// bruteForce recomputes one pattern's EV by building every draw as a fresh
// slice, independent of the index iterator.
func bruteForce(t *testing.T, req strategy.Request, m strategy.HoldMask) float64 {
	t.Helper()
	var draws [][]cards.Card
	var pick func(start int, acc []cards.Card)
	pick = func(start int, acc []cards.Card) {
		if len(acc) == m.Draws() {
			draws = append(draws, append([]cards.Card(nil), acc...))
			return
		}
		for i := start; i < len(req.Remaining); i++ {
			pick(i+1, append(acc, req.Remaining[i]))
		}
	}
	pick(0, nil)

	total := 0
	for _, d := range draws {
		h, err := strategy.ApplyHold(req.Hand, m, d)
		require.NoError(t, err)
		cat, err := req.Variant.ClassifyHand(h)
		require.NoError(t, err)
		p, err := req.Variant.Payout(cat, req.Wager)
		require.NoError(t, err)
		total += p
	}
	return float64(total) / float64(len(draws))
}

func TestMatchesBruteForce(t *testing.T) {
	req := smallRequest(t, "double_joker", "JK1 7♦ 7♣ K♠ 4♥", "JK2 3♠ 4♠ 5♦ 6♦ 7♠ 8♣ K♥ Q♥", 2)
	res, err := strategy.Search(context.Background(), req)
	require.NoError(t, err)
	for _, o := range res.Outcomes {
		assert.InDelta(t, bruteForce(t, req, o.Mask), o.EV, 1e-9, o.Pattern)
	}
}

func TestSearchCancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calls := 0
	_, err := strategy.SearchWithProgress(ctx, request(t, "jacks_or_better", "A♥ K♥ Q♥ J♥ 3♣", 1),
		func(strategy.Outcome, int) { calls++ })
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Zero(t, calls)
}

func TestSearchCancelledBetweenPatterns(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	calls := 0
	req := smallRequest(t, "jacks_or_better", "A♥ K♥ Q♥ J♥ 3♣", "3♠ 4♠ 5♦ 6♦ 7♣ 8♣", 1)
	_, err := strategy.SearchWithProgress(ctx, req, func(_ strategy.Outcome, done int) {
		calls++
		if done == 3 {
			cancel()
		}
	})
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 3, calls)
}

func TestProgressSeesEveryPattern(t *testing.T) {
	req := smallRequest(t, "jacks_or_better", "A♥ K♥ Q♥ J♥ 3♣", "3♠ 4♠ 5♦ 6♦ 7♣ 8♣", 1)
	var masks []strategy.HoldMask
	_, err := strategy.SearchWithProgress(context.Background(), req, func(o strategy.Outcome, done int) {
		masks = append(masks, o.Mask)
		assert.Equal(t, len(masks), done)
	})
	require.NoError(t, err)
	require.Len(t, masks, strategy.Patterns)
	for i, m := range masks {
		assert.Equal(t, strategy.HoldMask(i), m)
	}
}

func TestValidate(t *testing.T) {
	base := smallRequest(t, "jacks_or_better", "A♥ K♥ Q♥ J♥ 3♣", "3♠ 4♠ 5♦ 6♦ 7♣ 8♣", 1)

	r := base
	r.Remaining = r.Remaining[:4]
	assert.True(t, errors.Is(strategy.Validate(r), appErr.ErrDeckTooSmall))

	r = base
	r.Remaining = append(cards.Deck{cards.MustParse("A♥")}, base.Remaining...)
	assert.True(t, errors.Is(strategy.Validate(r), appErr.ErrDuplicateCard))

	r = base
	r.Remaining = append(cards.Deck{cards.MustParse("3♠")}, base.Remaining...)
	assert.True(t, errors.Is(strategy.Validate(r), appErr.ErrDuplicateCard))

	r = base
	r.Remaining = append(cards.Deck{cards.MustParse("JK")}, base.Remaining...)
	assert.True(t, errors.Is(strategy.Validate(r), appErr.ErrWildNotAllowed))

	r = base
	r.Wager = 0
	assert.True(t, errors.Is(strategy.Validate(r), appErr.ErrInvalidWager))

	r = base
	r.Variant = nil
	assert.True(t, errors.Is(strategy.Validate(r), appErr.ErrUnknownVariant))

	assert.NoError(t, strategy.Validate(base))
}

func TestApplyHold(t *testing.T) {
	h := cards.MustParseHand("A♥ K♥ Q♥ J♥ 3♣")
	got, err := strategy.ApplyHold(h, 0b01111, []cards.Card{cards.MustParse("10♥")})
	require.NoError(t, err)
	assert.Equal(t, cards.MustParseHand("A♥ K♥ Q♥ J♥ 10♥"), got)

	got, err = strategy.ApplyHold(h, 0b10001, cards.MustParseHand("2♠ 3♠ 4♠ 5♠ 6♠").Cards()[:3])
	require.NoError(t, err)
	assert.Equal(t, cards.MustParseHand("A♥ 2♠ 3♠ 4♠ 3♣"), got)

	_, err = strategy.ApplyHold(h, 0b01111, nil)
	assert.True(t, errors.Is(err, appErr.ErrInvalidHoldMask))
	_, err = strategy.ApplyHold(h, 40, nil)
	assert.True(t, errors.Is(err, appErr.ErrInvalidHoldMask))
	_, err = strategy.ApplyHold(h, 0b01111, []cards.Card{cards.MustParse("A♥")})
	assert.True(t, errors.Is(err, appErr.ErrDuplicateCard))
}

func TestMaskHelpers(t *testing.T) {
	m, err := strategy.MaskFromPositions([]int{0, 2})
	require.NoError(t, err)
	assert.Equal(t, strategy.HoldMask(0b00101), m)
	assert.Equal(t, "H-H--", m.String())
	assert.Equal(t, 3, m.Draws())
	assert.Equal(t, m, strategy.MaskOf(m.Flags()))

	_, err = strategy.MaskFromPositions([]int{5})
	assert.True(t, errors.Is(err, appErr.ErrInvalidHoldMask))
}
