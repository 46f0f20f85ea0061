package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	trading "main/internal/domain/entity/trading"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// QuoteCache reads the per-user spread permissions and latest quotes that
// the market data tier maintains in Redis.
type QuoteCache struct {
	client redis.Cmdable
}

func NewQuoteCache(client redis.Cmdable) *QuoteCache {
	return &QuoteCache{client: client}
}

// Spreads returns the commodity -> spread mapping for the user. A missing
// hash yields an empty map, which permits nothing.
func (c *QuoteCache) Spreads(ctx context.Context, userUUID uuid.UUID) (trading.SpreadMap, error) {
	raw, err := c.client.HGetAll(ctx, trading.UserSpreadKey(userUUID)).Result()
	if err != nil {
		return nil, fmt.Errorf("read spread map: %w", err)
	}
	spreads := make(trading.SpreadMap, len(raw))
	for commodity, value := range raw {
		spread, err := decimal.NewFromString(value)
		if err != nil {
			return nil, fmt.Errorf("parse spread for %s: %w", commodity, err)
		}
		spreads[commodity] = spread
	}
	return spreads, nil
}

// Quotes returns the user's latest quote set. A missing key yields an
// empty set.
func (c *QuoteCache) Quotes(ctx context.Context, userUUID uuid.UUID) (trading.QuoteSet, error) {
	raw, err := c.client.Get(ctx, trading.UserQuotesKey(userUUID)).Result()
	if errors.Is(err, redis.Nil) {
		return trading.QuoteSet{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read quote set: %w", err)
	}
	var quotes trading.QuoteSet
	if err := json.Unmarshal([]byte(raw), &quotes); err != nil {
		return nil, fmt.Errorf("decode quote set: %w", err)
	}
	if quotes == nil {
		quotes = trading.QuoteSet{}
	}
	return quotes, nil
}
