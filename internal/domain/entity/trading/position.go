package trading

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderType is the direction a position was opened in.
type OrderType string

const (
	OrderTypeBuy  OrderType = "BUY"
	OrderTypeSell OrderType = "SELL"
)

// Position is one open position. Created exactly once at acceptance time
// and never edited afterwards.
type Position struct {
	OrderID   uuid.UUID       `json:"order_id"`
	OrderType OrderType       `json:"order_type"`
	Commodity string          `json:"commodity"`
	Lot       decimal.Decimal `json:"lot"`
	OpenPrice decimal.Decimal `json:"open_price"`
}

// NewPosition creates a position with a fresh order id.
func NewPosition(orderType OrderType, commodity string, lot, openPrice decimal.Decimal) Position {
	return Position{
		OrderID:   uuid.New(),
		OrderType: orderType,
		Commodity: commodity,
		Lot:       lot,
		OpenPrice: openPrice,
	}
}

// PositionSet is the complete collection of a user's open positions,
// persisted as a single serialized unit.
type PositionSet map[uuid.UUID]Position

// Add inserts the position keyed by its order id.
func (s PositionSet) Add(p Position) {
	s[p.OrderID] = p
}

// OfficePositions is the periodic snapshot of every registered user's open
// positions, published for dealer review.
type OfficePositions struct {
	OfficeID int64                  `json:"office_id"`
	Users    map[string]PositionSet `json:"users"`
}
