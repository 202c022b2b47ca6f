package videopoker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"video-poker-service/internal/game/cards"
	"video-poker-service/internal/game/strategy"
	"video-poker-service/internal/game/variant"
	"video-poker-service/internal/model"
	"video-poker-service/internal/service/wallet"
	appErr "video-poker-service/pkg/errors"
	"video-poker-service/pkg/logger"
	"video-poker-service/pkg/utils/random"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

type Options struct {
	ShufflePasses  int
	DefaultVariant string
	// Rand overrides the shuffle source; nil means a fresh crypto-seeded one.
	Rand *rand.Rand
}

type Service struct {
	db      *gorm.DB
	wallets *wallet.Service
	cache   StrategyCache
	group   singleflight.Group
	opts    Options

	mu  sync.Mutex
	rng *rand.Rand
}

// NewService wires the round and strategy operations. cache may be nil.
func NewService(db *gorm.DB, wallets *wallet.Service, cache StrategyCache, opts Options) *Service {
	if opts.ShufflePasses < 1 {
		opts.ShufflePasses = 1
	}
	if opts.DefaultVariant == "" {
		opts.DefaultVariant = "jacks_or_better"
	}
	rng := opts.Rand
	if rng == nil {
		rng = random.NewRand()
	}
	return &Service{
		db:      db,
		wallets: wallets,
		cache:   cache,
		opts:    opts,
		rng:     rng,
	}
}

func (s *Service) variant(id string) (*variant.Variant, error) {
	if id == "" {
		id = s.opts.DefaultVariant
	}
	return variant.Lookup(id)
}

func checkWager(wager int) error {
	if wager < variant.MinWager || wager > variant.MaxWager {
		return fmt.Errorf("%w: %d", appErr.ErrInvalidWager, wager)
	}
	return nil
}

type DealResult struct {
	RoundID   string           `json:"roundId"`
	VariantID string           `json:"variantId"`
	Wager     int              `json:"wager"`
	Hand      cards.Hand       `json:"hand"`
	Category  variant.Category `json:"category"`
	Balance   int64            `json:"balance"`
}

// Deal shuffles a fresh deck, takes the wager and opens a round.
func (s *Service) Deal(ctx context.Context, playerID int64, variantID string, wager int) (*DealResult, error) {
	v, err := s.variant(variantID)
	if err != nil {
		return nil, err
	}
	if err := checkWager(wager); err != nil {
		return nil, err
	}
	deck, err := v.Deck()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	shuffled := cards.Shuffle(deck, s.rng, s.opts.ShufflePasses)
	s.mu.Unlock()

	hand, rest, err := cards.DealHand(shuffled)
	if err != nil {
		return nil, err
	}
	category, err := v.ClassifyHand(hand)
	if err != nil {
		return nil, err
	}
	handJSON, err := json.Marshal(hand)
	if err != nil {
		return nil, err
	}
	restJSON, err := json.Marshal(rest)
	if err != nil {
		return nil, err
	}

	round := model.Round{
		ID:        uuid.NewString(),
		PlayerID:  playerID,
		VariantID: v.ID,
		Wager:     wager,
		Hand:      handJSON,
		Remaining: restJSON,
		Status:    model.RoundStatusDealt,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.wallets.Debit(ctx, tx, playerID, int64(wager)); err != nil {
			return err
		}
		return tx.Create(&round).Error
	})
	if err != nil {
		return nil, err
	}

	purse, err := s.wallets.GetWallet(ctx, playerID)
	if err != nil {
		return nil, err
	}
	logger.Log.Info("round dealt",
		zap.String("roundID", round.ID),
		zap.Int64("playerID", playerID),
		zap.String("variant", v.ID),
		zap.Int("wager", wager),
		zap.Stringer("hand", hand),
	)
	return &DealResult{
		RoundID:   round.ID,
		VariantID: v.ID,
		Wager:     wager,
		Hand:      hand,
		Category:  category,
		Balance:   purse.Balance,
	}, nil
}

type DrawResult struct {
	RoundID  string            `json:"roundId"`
	Hand     cards.Hand        `json:"hand"`
	Mask     strategy.HoldMask `json:"mask"`
	Pattern  string            `json:"pattern"`
	Final    cards.Hand        `json:"final"`
	Category variant.Category  `json:"category"`
	Payout   int               `json:"payout"`
	Balance  int64             `json:"balance"`
}

// Draw replaces the discarded cards from the top of the round's remaining
// deck, settles the round and pays the result.
func (s *Service) Draw(ctx context.Context, playerID int64, roundID string, mask strategy.HoldMask) (*DrawResult, error) {
	if !mask.Valid() {
		return nil, fmt.Errorf("%w: %d", appErr.ErrInvalidHoldMask, mask)
	}

	var out DrawResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var round model.Round
		err := tx.Where("id = ? AND player_id = ?", roundID, playerID).First(&round).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", appErr.ErrRoundNotFound, roundID)
			}
			return err
		}
		if round.Status != model.RoundStatusDealt {
			return fmt.Errorf("%w: %s", appErr.ErrRoundSettled, roundID)
		}

		v, err := variant.Lookup(round.VariantID)
		if err != nil {
			return err
		}
		var hand cards.Hand
		if err := json.Unmarshal(round.Hand, &hand); err != nil {
			return fmt.Errorf("decode hand of round %s: %w", roundID, err)
		}
		var remaining cards.Deck
		if err := json.Unmarshal(round.Remaining, &remaining); err != nil {
			return fmt.Errorf("decode deck of round %s: %w", roundID, err)
		}
		replacements, _, err := cards.Deal(remaining, mask.Draws())
		if err != nil {
			return err
		}
		final, err := strategy.ApplyHold(hand, mask, replacements)
		if err != nil {
			return err
		}
		category, err := v.ClassifyHand(final)
		if err != nil {
			return err
		}
		payout, err := v.Payout(category, round.Wager)
		if err != nil {
			return err
		}
		finalJSON, err := json.Marshal(final)
		if err != nil {
			return err
		}

		now := time.Now()
		held := uint8(mask)
		res := tx.Model(&model.Round{}).
			Where("id = ? AND status = ?", roundID, model.RoundStatusDealt).
			Updates(map[string]interface{}{
				"status":     model.RoundStatusSettled,
				"final":      finalJSON,
				"hold_mask":  &held,
				"category":   category.Slug(),
				"payout":     payout,
				"settled_at": &now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: %s", appErr.ErrRoundSettled, roundID)
		}

		record := model.PlayRecord{
			RoundID:   roundID,
			PlayerID:  playerID,
			VariantID: v.ID,
			Wager:     round.Wager,
			Category:  category.Slug(),
			Payout:    payout,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		if payout > 0 {
			if err := s.wallets.Credit(ctx, tx, playerID, int64(payout)); err != nil {
				return err
			}
		}

		out = DrawResult{
			RoundID:  roundID,
			Hand:     hand,
			Mask:     mask,
			Pattern:  mask.String(),
			Final:    final,
			Category: category,
			Payout:   payout,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	purse, err := s.wallets.GetWallet(ctx, playerID)
	if err != nil {
		return nil, err
	}
	out.Balance = purse.Balance
	logger.Log.Info("round settled",
		zap.String("roundID", roundID),
		zap.Int64("playerID", playerID),
		zap.String("mask", out.Pattern),
		zap.Stringer("final", out.Final),
		zap.String("category", out.Category.Slug()),
		zap.Int("payout", out.Payout),
	)
	return &out, nil
}

// GetRound returns one of the player's rounds.
func (s *Service) GetRound(ctx context.Context, playerID int64, roundID string) (*model.Round, error) {
	var round model.Round
	err := s.db.WithContext(ctx).Where("id = ? AND player_id = ?", roundID, playerID).First(&round).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", appErr.ErrRoundNotFound, roundID)
		}
		return nil, err
	}
	return &round, nil
}

type Evaluation struct {
	VariantID string           `json:"variantId"`
	Wager     int              `json:"wager"`
	Hand      cards.Hand       `json:"hand"`
	Category  variant.Category `json:"category"`
	Name      string           `json:"name"`
	Payout    int              `json:"payout"`
}

// Evaluate names and prices a hand without touching any wallet.
func (s *Service) Evaluate(variantID string, wager int, hand cards.Hand) (*Evaluation, error) {
	v, err := s.variant(variantID)
	if err != nil {
		return nil, err
	}
	category, err := v.ClassifyHand(hand)
	if err != nil {
		return nil, err
	}
	payout, err := v.Payout(category, wager)
	if err != nil {
		return nil, err
	}
	return &Evaluation{
		VariantID: v.ID,
		Wager:     wager,
		Hand:      hand,
		Category:  category,
		Name:      category.String(),
		Payout:    payout,
	}, nil
}

type StrategyInput struct {
	VariantID string
	Wager     int
	Hand      cards.Hand
	// Remaining defaults to the variant's full deck minus Hand.
	Remaining cards.Deck
}

type StrategyResult struct {
	VariantID string             `json:"variantId"`
	Wager     int                `json:"wager"`
	Hand      cards.Hand         `json:"hand"`
	Best      strategy.Outcome   `json:"best"`
	Current   strategy.Outcome   `json:"current"`
	Outcomes  []strategy.Outcome `json:"outcomes"`
	Cached    bool               `json:"cached"`
	Shared    bool               `json:"shared"`
}

// ParseStrategyInput reads the text form used by the HTTP, websocket and
// terminal front ends. A zero wager means one coin.
func ParseStrategyInput(variantID string, wager int, hand, remaining string) (StrategyInput, error) {
	h, err := cards.ParseHand(hand)
	if err != nil {
		return StrategyInput{}, err
	}
	if wager == 0 {
		wager = variant.MinWager
	}
	in := StrategyInput{VariantID: variantID, Wager: wager, Hand: h}
	if strings.TrimSpace(remaining) != "" {
		rest, err := cards.ParseList(remaining)
		if err != nil {
			return StrategyInput{}, err
		}
		in.Remaining = rest
	}
	return in, nil
}

func (s *Service) request(in StrategyInput) (strategy.Request, error) {
	v, err := s.variant(in.VariantID)
	if err != nil {
		return strategy.Request{}, err
	}
	remaining := in.Remaining
	if len(remaining) == 0 {
		deck, err := v.Deck()
		if err != nil {
			return strategy.Request{}, err
		}
		remaining = deck.Without(in.Hand[:]...)
	}
	req := strategy.Request{
		Hand:      in.Hand,
		Remaining: remaining,
		Variant:   v,
		Wager:     in.Wager,
	}
	if err := strategy.Validate(req); err != nil {
		return strategy.Request{}, err
	}
	return req, nil
}

func newStrategyResult(req strategy.Request, res *strategy.Result) *StrategyResult {
	return &StrategyResult{
		VariantID: req.Variant.ID,
		Wager:     req.Wager,
		Hand:      req.Hand,
		Best:      res.Best(),
		Current:   res.Current(),
		Outcomes:  res.Outcomes,
	}
}

// Strategy ranks every hold pattern. Identical concurrent requests share one
// search and finished searches are served from the cache.
func (s *Service) Strategy(ctx context.Context, in StrategyInput) (*StrategyResult, error) {
	req, err := s.request(in)
	if err != nil {
		return nil, err
	}
	key := cacheKey(req.Variant.ID, req.Wager, req.Hand, req.Remaining)

	if s.cache != nil {
		hit, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			logger.Log.Warn("strategy cache read failed", zap.String("key", key), zap.Error(err))
		} else if ok {
			out := newStrategyResult(req, hit)
			out.Cached = true
			return out, nil
		}
	}

	v, err, shared := s.group.Do(key, func() (interface{}, error) {
		return s.search(ctx, key, req, nil)
	})
	if err != nil && shared && errors.Is(err, context.Canceled) && ctx.Err() == nil {
		// The caller that led the shared search went away; run our own.
		res, err := s.search(ctx, key, req, nil)
		if err != nil {
			return nil, err
		}
		return newStrategyResult(req, res), nil
	}
	if err != nil {
		return nil, err
	}
	out := newStrategyResult(req, v.(*strategy.Result))
	out.Shared = shared
	return out, nil
}

// StreamStrategy runs a search of its own and reports each pattern as it
// finishes.
func (s *Service) StreamStrategy(ctx context.Context, in StrategyInput, progress strategy.Progress) (*StrategyResult, error) {
	req, err := s.request(in)
	if err != nil {
		return nil, err
	}
	key := cacheKey(req.Variant.ID, req.Wager, req.Hand, req.Remaining)
	res, err := s.search(ctx, key, req, progress)
	if err != nil {
		return nil, err
	}
	return newStrategyResult(req, res), nil
}

func (s *Service) search(ctx context.Context, key string, req strategy.Request, progress strategy.Progress) (*strategy.Result, error) {
	start := time.Now()
	res, err := strategy.SearchWithProgress(ctx, req, progress)
	if err != nil {
		logger.Log.Info("strategy search stopped", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	logger.Log.Debug("strategy search finished",
		zap.String("variant", req.Variant.ID),
		zap.Stringer("hand", req.Hand),
		zap.Duration("elapsed", time.Since(start)),
	)
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, res); err != nil {
			logger.Log.Warn("strategy cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return res, nil
}
