package trading

import "github.com/shopspring/decimal"

// Quote is the latest market price pair for one commodity, refreshed
// out-of-band by market data processing.
type Quote struct {
	Commodity string          `json:"commodity"`
	Bid       decimal.Decimal `json:"bid"`
	Ask       decimal.Decimal `json:"ask"`
}

// QuoteSet maps commodity name to its latest quote, scoped to one user.
type QuoteSet map[string]Quote

// SpreadMap maps commodity name to the spread configured for one user.
// Presence of a key denotes permission to trade that commodity.
type SpreadMap map[string]decimal.Decimal

// Allows reports whether the user may trade the commodity.
func (m SpreadMap) Allows(commodity string) bool {
	_, ok := m[commodity]
	return ok
}
