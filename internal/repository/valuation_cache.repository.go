package repository

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jeff-stratofied/reporting-phase2/internal/domain"
	"github.com/jeff-stratofied/reporting-phase2/internal/util"
)

// ValuationCache memoizes valuation results keyed by an input hash. Misses
// and transport failures are both "not cached": valuation is cheap enough to
// recompute and must never fail because redis is down.
type ValuationCache interface {
	Fetch(ctx context.Context, key string) (*domain.ValuationResult, bool)
	Store(ctx context.Context, key string, result *domain.ValuationResult)
}

type redisValuationCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.SugaredLogger
}

func NewRedisValuationCache(addr string, ttl time.Duration, logger *zap.SugaredLogger) ValuationCache {
	return &redisValuationCache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
		logger: logger,
	}
}

// cachedValuation lifts the NaN-marked sentinel fields into pointers so they
// survive JSON, which has no NaN.
type cachedValuation struct {
	Result   domain.ValuationResult `json:"result"`
	NPV      *float64               `json:"npv"`
	NPVRatio *float64               `json:"npvRatio"`
	IRR      *float64               `json:"irr"`
}

func (c *redisValuationCache) Fetch(ctx context.Context, key string) (*domain.ValuationResult, bool) {
	raw, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warnw("valuation cache fetch failed", "error", err)
		}
		return nil, false
	}

	wrapper := cachedValuation{}
	if err := json.Unmarshal([]byte(raw), &wrapper); err != nil {
		c.logger.Warnw("discarding unreadable cached valuation", "key", key, "error", err)
		return nil, false
	}

	result := wrapper.Result
	result.NPV = fromPointer(wrapper.NPV)
	result.NPVRatio = fromPointer(wrapper.NPVRatio)
	result.IRR = fromPointer(wrapper.IRR)
	return &result, true
}

func (c *redisValuationCache) Store(ctx context.Context, key string, result *domain.ValuationResult) {
	wrapper := cachedValuation{
		Result:   *result,
		NPV:      util.FloatPointerOrNil(result.NPV),
		NPVRatio: util.FloatPointerOrNil(result.NPVRatio),
		IRR:      util.FloatPointerOrNil(result.IRR),
	}
	bytes, err := json.Marshal(wrapper)
	if err != nil {
		c.logger.Warnw("failed to serialize valuation for cache", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, string(bytes), c.ttl).Err(); err != nil {
		c.logger.Warnw("valuation cache store failed", "error", err)
	}
}

func fromPointer(p *float64) float64 {
	if p == nil {
		return math.NaN()
	}
	return *p
}
