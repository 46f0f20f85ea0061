package trading

// ResponseStatus is the terminal outcome communicated back to the client.
type ResponseStatus string

const (
	StatusOK                  ResponseStatus = "OK"
	StatusCommodityNotAllowed ResponseStatus = "COMMODITY_NOT_ALLOWED"
	StatusCommodityUnknown    ResponseStatus = "COMMODITY_UNKNOWN"
	StatusFailed              ResponseStatus = "FAILED"
)

// TradeResponse pairs a request with its outcome. The status moves from
// unset to exactly one terminal value; later Resolve calls are ignored.
type TradeResponse struct {
	Request TradeRequest   `json:"request"`
	Status  ResponseStatus `json:"status"`
}

// NewTradeResponse builds the response shell for a freshly decoded request.
func NewTradeResponse(req TradeRequest) *TradeResponse {
	return &TradeResponse{Request: req}
}

// Resolve sets the terminal status. Only the first call takes effect; it
// reports whether the status was applied.
func (r *TradeResponse) Resolve(status ResponseStatus) bool {
	if r.Status != "" {
		return false
	}
	r.Status = status
	return true
}

// Resolved reports whether a terminal status has been set.
func (r *TradeResponse) Resolved() bool {
	return r.Status != ""
}

// ClientUpdate is the envelope published to a client's notification
// exchange.
type ClientUpdate struct {
	Response *TradeResponse `json:"response"`
}
