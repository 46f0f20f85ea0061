package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	trading "main/internal/domain/entity/trading"

	"github.com/redis/go-redis/v9"
)

// PositionStore persists each user's PositionSet as one JSON blob. The
// whole blob is replaced on every write, so a write is atomic but costs
// O(set size); callers serialize access through the positions lock.
type PositionStore struct {
	client redis.Cmdable
}

func NewPositionStore(client redis.Cmdable) *PositionStore {
	return &PositionStore{client: client}
}

// Read loads the PositionSet stored under key. A missing key is an empty
// set, never an error.
func (s *PositionStore) Read(ctx context.Context, key string) (trading.PositionSet, error) {
	raw, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return trading.PositionSet{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read positions %s: %w", key, err)
	}
	var set trading.PositionSet
	if err := json.Unmarshal([]byte(raw), &set); err != nil {
		return nil, fmt.Errorf("decode positions %s: %w", key, err)
	}
	if set == nil {
		set = trading.PositionSet{}
	}
	return set, nil
}

// Write replaces the whole PositionSet stored under key.
func (s *PositionStore) Write(ctx context.Context, key string, set trading.PositionSet) error {
	data, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("encode positions %s: %w", key, err)
	}
	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("write positions %s: %w", key, err)
	}
	return nil
}
