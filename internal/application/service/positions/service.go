package positions

import (
	"context"

	trading "main/internal/domain/entity/trading"
	interfaces "main/internal/domain/interfaces"

	"github.com/shopspring/decimal"
)

// Service is the position ledger: the read-modify-write cycle over a user's
// serialized PositionSet. Callers must hold the positions lock for the key
// across every call that touches the blob.
type Service struct {
	store interfaces.PositionStore
}

func NewService(store interfaces.PositionStore) *Service {
	return &Service{store: store}
}

// OpenPosition appends a freshly created position to the set stored under
// key and writes the whole set back as one unit. The open price comes from
// the validated quote; it is never re-derived here.
func (s *Service) OpenPosition(ctx context.Context, key string, req trading.TradeRequest, orderType trading.OrderType, openPrice decimal.Decimal) (trading.Position, error) {
	set, err := s.store.Read(ctx, key)
	if err != nil {
		return trading.Position{}, err
	}

	position := trading.NewPosition(orderType, req.Commodity, req.RequestedLot, openPrice)
	set.Add(position)

	if err := s.store.Write(ctx, key, set); err != nil {
		return trading.Position{}, err
	}
	return position, nil
}

// Open returns the current PositionSet stored under key.
func (s *Service) Open(ctx context.Context, key string) (trading.PositionSet, error) {
	return s.store.Read(ctx, key)
}
