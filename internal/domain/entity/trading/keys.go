package trading

import "github.com/google/uuid"

// Deterministic key derivations from a user's stable uuid. Every process in
// the deployment derives the same names; that is what makes the two lock
// tiers and the positions blob shared resources across consumers.

// UserPositionsKey names the blob holding the user's serialized PositionSet.
func UserPositionsKey(userUUID uuid.UUID) string {
	return "positions_" + userUUID.String()
}

// UserSpreadKey names the commodity -> spread hash for the user.
func UserSpreadKey(userUUID uuid.UUID) string {
	return "spreads_" + userUUID.String()
}

// UserQuotesKey names the blob holding the user's serialized QuoteSet.
func UserQuotesKey(userUUID uuid.UUID) string {
	return "quotes_" + userUUID.String()
}

// UserProcessingLockKey names the outer lease serializing all request
// processing for the user.
func UserProcessingLockKey(userUUID uuid.UUID) string {
	return "lock_processing_" + userUUID.String()
}

// PositionsLockKey names the inner lease serializing mutation of the
// positions blob stored under positionsKey.
func PositionsLockKey(positionsKey string) string {
	return "lock_" + positionsKey
}
