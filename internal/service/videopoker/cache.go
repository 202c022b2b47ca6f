package videopoker

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"slices"
	"strconv"
	"time"

	"video-poker-service/internal/game/cards"
	"video-poker-service/internal/game/strategy"

	"github.com/redis/go-redis/v9"
)

// StrategyCache stores finished searches by request key. A miss is
// (nil, false, nil).
type StrategyCache interface {
	Get(ctx context.Context, key string) (*strategy.Result, bool, error)
	Set(ctx context.Context, key string, res *strategy.Result) error
}

const cacheKeyPrefix = "vp:strategy:"

// RedisCache keeps results as JSON under a TTL.
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, key string) (*strategy.Result, bool, error) {
	raw, err := c.rdb.Get(ctx, cacheKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var res strategy.Result
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, false, err
	}
	return &res, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, res *strategy.Result) error {
	raw, err := json.Marshal(res)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, cacheKeyPrefix+key, raw, c.ttl).Err()
}

// cacheKey identifies a search. Hand order matters because masks are
// positional; the remaining deck is order-free.
func cacheKey(variantID string, wager int, hand cards.Hand, remaining cards.Deck) string {
	idx := make([]int, len(remaining))
	for i, c := range remaining {
		idx[i] = c.Index()
	}
	slices.Sort(idx)

	h := sha256.New()
	h.Write([]byte(variantID))
	h.Write([]byte{'|'})
	h.Write([]byte(strconv.Itoa(wager)))
	h.Write([]byte{'|'})
	for _, c := range hand {
		h.Write([]byte{byte(c.Index())})
	}
	h.Write([]byte{'|'})
	for _, i := range idx {
		h.Write([]byte{byte(i)})
	}
	return hex.EncodeToString(h.Sum(nil))
}
