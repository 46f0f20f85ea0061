package execution

import (
	"testing"

	trading "main/internal/domain/entity/trading"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func testQuotes() trading.QuoteSet {
	return trading.QuoteSet{
		"GOLD": {Commodity: "GOLD", Bid: decimal.NewFromInt(99), Ask: decimal.NewFromInt(101)},
	}
}

func testSpreads() trading.SpreadMap {
	return trading.SpreadMap{
		"GOLD": decimal.NewFromFloat(0.5),
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		commodity string
		side      trading.RequestType
		spreads   trading.SpreadMap
		quotes    trading.QuoteSet
		reject    trading.ResponseStatus
		orderType trading.OrderType
		openPrice decimal.Decimal
	}{
		{
			name:      "buy fills at ask",
			commodity: "GOLD",
			side:      trading.RequestTypeBuy,
			spreads:   testSpreads(),
			quotes:    testQuotes(),
			orderType: trading.OrderTypeBuy,
			openPrice: decimal.NewFromInt(101),
		},
		{
			name:      "sell fills at bid",
			commodity: "GOLD",
			side:      trading.RequestTypeSell,
			spreads:   testSpreads(),
			quotes:    testQuotes(),
			orderType: trading.OrderTypeSell,
			openPrice: decimal.NewFromInt(99),
		},
		{
			name:      "commodity not permitted",
			commodity: "SILVER",
			side:      trading.RequestTypeSell,
			spreads:   testSpreads(),
			quotes:    testQuotes(),
			reject:    trading.StatusCommodityNotAllowed,
		},
		{
			name:      "permitted but no live quote",
			commodity: "SILVER",
			side:      trading.RequestTypeBuy,
			spreads:   trading.SpreadMap{"SILVER": decimal.NewFromFloat(0.3)},
			quotes:    testQuotes(),
			reject:    trading.StatusCommodityUnknown,
		},
		{
			name:      "permission checked before quote",
			commodity: "COPPER",
			side:      trading.RequestTypeBuy,
			spreads:   testSpreads(),
			quotes:    trading.QuoteSet{},
			reject:    trading.StatusCommodityNotAllowed,
		},
		{
			name:      "unsupported request type",
			commodity: "GOLD",
			side:      trading.RequestType("HOLD"),
			spreads:   testSpreads(),
			quotes:    testQuotes(),
			reject:    trading.StatusFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := trading.TradeRequest{
				RequestID:    uuid.New(),
				Commodity:    tt.commodity,
				RequestType:  tt.side,
				RequestedLot: decimal.NewFromInt(1),
			}
			decision := Validate(req, tt.spreads, tt.quotes)

			if tt.reject != "" {
				assert.False(t, decision.Accepted())
				assert.Equal(t, tt.reject, decision.Reject)
				return
			}
			assert.True(t, decision.Accepted())
			assert.Equal(t, tt.orderType, decision.OrderType)
			assert.True(t, tt.openPrice.Equal(decision.OpenPrice), "open price %s, want %s", decision.OpenPrice, tt.openPrice)
		})
	}
}
