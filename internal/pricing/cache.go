package pricing

import (
	"context"
	"errors"
	"lending-api/internal/infrastructure/monitoring"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const keyPrefix = "lending-api:car-price:"

type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// CachedOracle serves repeated quotes for the same model from redis. Cache
// errors degrade to a direct oracle call.
type CachedOracle struct {
	next   Oracle
	client redisClient
	ttl    time.Duration
	logger *slog.Logger
}

var _ Oracle = (*CachedOracle)(nil)

func NewCachedOracle(next Oracle, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedOracle {
	return newCachedOracle(next, client, ttl, logger)
}

func newCachedOracle(next Oracle, client redisClient, ttl time.Duration, logger *slog.Logger) *CachedOracle {
	return &CachedOracle{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: logger.With(slog.String("component", "cachedOracle")),
	}
}

func (c *CachedOracle) GetCarPrice(ctx context.Context, model string) (decimal.Decimal, error) {
	key := cacheKey(model)

	cached, err := c.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		if price, parseErr := decimal.NewFromString(cached); parseErr == nil && price.IsPositive() {
			monitoring.RecordPricingLookup("cache", "hit")
			return price, nil
		}
		c.logger.WarnContext(ctx, "Discarding malformed cached price", slog.String("key", key))
		monitoring.RecordPricingLookup("cache", "error")
	case errors.Is(err, redis.Nil):
		monitoring.RecordPricingLookup("cache", "miss")
	default:
		c.logger.WarnContext(ctx, "Price cache unavailable, querying oracle directly", slog.Any("error", err))
		monitoring.RecordPricingLookup("cache", "error")
	}

	price, err := c.next.GetCarPrice(ctx, model)
	if err != nil {
		return decimal.Zero, err
	}

	if err := c.client.Set(ctx, key, price.String(), c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "Failed to cache car price", slog.String("key", key), slog.Any("error", err))
	}
	return price, nil
}

// cacheKey folds case and whitespace so "toyota  Prius" and "Toyota Prius" share an entry.
func cacheKey(model string) string {
	return keyPrefix + strings.Join(strings.Fields(strings.ToLower(model)), " ")
}
