package positions

import (
	"context"
	"errors"
	"sync"
	"testing"

	trading "main/internal/domain/entity/trading"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu       sync.Mutex
	data     map[string]trading.PositionSet
	writeErr error
}

func newMemStore() *memStore {
	return &memStore{data: map[string]trading.PositionSet{}}
}

func (s *memStore) Read(_ context.Context, key string) (trading.PositionSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := trading.PositionSet{}
	for id, pos := range s.data[key] {
		out[id] = pos
	}
	return out, nil
}

func (s *memStore) Write(_ context.Context, key string, set trading.PositionSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writeErr != nil {
		return s.writeErr
	}
	s.data[key] = set
	return nil
}

func testRequest(commodity string, lot int64) trading.TradeRequest {
	return trading.TradeRequest{
		RequestID:    uuid.New(),
		Commodity:    commodity,
		RequestType:  trading.RequestTypeBuy,
		RequestedLot: decimal.NewFromInt(lot),
	}
}

func TestOpenPositionOnEmptySet(t *testing.T) {
	store := newMemStore()
	svc := NewService(store)
	key := "positions_test"

	pos, err := svc.OpenPosition(context.Background(), key, testRequest("GOLD", 2), trading.OrderTypeBuy, decimal.NewFromInt(101))
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, pos.OrderID)
	assert.Equal(t, trading.OrderTypeBuy, pos.OrderType)
	assert.Equal(t, "GOLD", pos.Commodity)
	assert.True(t, pos.Lot.Equal(decimal.NewFromInt(2)))
	assert.True(t, pos.OpenPrice.Equal(decimal.NewFromInt(101)))

	set, err := svc.Open(context.Background(), key)
	require.NoError(t, err)
	require.Len(t, set, 1)
	assert.Equal(t, pos, set[pos.OrderID])
}

func TestOpenPositionPreservesExisting(t *testing.T) {
	store := newMemStore()
	svc := NewService(store)
	key := "positions_test"

	first, err := svc.OpenPosition(context.Background(), key, testRequest("GOLD", 1), trading.OrderTypeBuy, decimal.NewFromInt(101))
	require.NoError(t, err)
	second, err := svc.OpenPosition(context.Background(), key, testRequest("SILVER", 5), trading.OrderTypeSell, decimal.NewFromInt(17))
	require.NoError(t, err)

	assert.NotEqual(t, first.OrderID, second.OrderID)

	set, err := svc.Open(context.Background(), key)
	require.NoError(t, err)
	require.Len(t, set, 2)
	assert.Equal(t, first, set[first.OrderID])
	assert.Equal(t, second, set[second.OrderID])
}

func TestOpenPositionWriteFailure(t *testing.T) {
	store := newMemStore()
	store.writeErr = errors.New("store down")
	svc := NewService(store)

	_, err := svc.OpenPosition(context.Background(), "positions_test", testRequest("GOLD", 1), trading.OrderTypeBuy, decimal.NewFromInt(101))
	require.Error(t, err)

	set, err2 := svc.Open(context.Background(), "positions_test")
	require.NoError(t, err2)
	assert.Empty(t, set, "failed write must leave the set untouched")
}
