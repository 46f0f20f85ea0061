package execution

import (
	trading "main/internal/domain/entity/trading"

	"github.com/shopspring/decimal"
)

// Decision is the validator outcome. An accepted decision carries the order
// type and fill price so the ledger never re-derives them.
type Decision struct {
	Reject    trading.ResponseStatus
	OrderType trading.OrderType
	OpenPrice decimal.Decimal
}

// Accepted reports whether the request passed validation.
func (d Decision) Accepted() bool {
	return d.Reject == ""
}

// Validate checks a request against the user's spread permissions and live
// quotes. Pure; first failing rule wins:
//
//  1. commodity not permitted -> COMMODITY_NOT_ALLOWED
//  2. commodity permitted but no live quote -> COMMODITY_UNKNOWN
//  3. request type neither BUY nor SELL -> FAILED
//
// A BUY fills at the ask, a SELL at the bid.
func Validate(req trading.TradeRequest, spreads trading.SpreadMap, quotes trading.QuoteSet) Decision {
	if !spreads.Allows(req.Commodity) {
		return Decision{Reject: trading.StatusCommodityNotAllowed}
	}
	quote, ok := quotes[req.Commodity]
	if !ok {
		return Decision{Reject: trading.StatusCommodityUnknown}
	}
	switch req.RequestType {
	case trading.RequestTypeBuy:
		return Decision{OrderType: trading.OrderTypeBuy, OpenPrice: quote.Ask}
	case trading.RequestTypeSell:
		return Decision{OrderType: trading.OrderTypeSell, OpenPrice: quote.Bid}
	default:
		return Decision{Reject: trading.StatusFailed}
	}
}
