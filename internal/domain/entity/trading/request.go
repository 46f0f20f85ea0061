package trading

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RequestType represents the BUY/SELL direction asked for by the client.
type RequestType string

const (
	RequestTypeBuy  RequestType = "BUY"
	RequestTypeSell RequestType = "SELL"
)

// TradeRequest is a single trade order submitted by a client through its
// office queue. Immutable once decoded.
type TradeRequest struct {
	RequestID    uuid.UUID       `json:"request_id"`
	Commodity    string          `json:"commodity"`
	RequestType  RequestType     `json:"request_type"`
	RequestedLot decimal.Decimal `json:"requested_lot"`
}

// ParseTradeRequest decodes the wire form of a trade request.
func ParseTradeRequest(body []byte) (TradeRequest, error) {
	var req TradeRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return TradeRequest{}, fmt.Errorf("decode trade request: %w", err)
	}
	return req, nil
}
