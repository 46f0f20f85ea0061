package interfaces

import (
	"context"
	"time"

	accounts "main/internal/domain/entity/accounts"
	trading "main/internal/domain/entity/trading"

	"github.com/google/uuid"
)

// QuoteCache exposes the per-user market data written out-of-band by the
// quote processing tier. Read-only for this service.
type QuoteCache interface {
	Spreads(ctx context.Context, userUUID uuid.UUID) (trading.SpreadMap, error)
	Quotes(ctx context.Context, userUUID uuid.UUID) (trading.QuoteSet, error)
}

// PositionStore persists a user's PositionSet as one serialized blob under
// an opaque key. Callers must hold the positions lock for the key across a
// Read/Write cycle; the store itself does not enforce this.
type PositionStore interface {
	Read(ctx context.Context, key string) (trading.PositionSet, error)
	Write(ctx context.Context, key string, set trading.PositionSet) error
}

// Lease is a held distributed lock. Release is safe to call after the
// lease has already expired; an expired lease taken over by another holder
// is never deleted.
type Lease interface {
	Release(ctx context.Context) error
}

// Locker hands out named expiring leases over the shared coordination
// store. Acquire blocks up to acquireTimeout and returns ErrNotAcquired
// (from the implementing package) when the lease could not be obtained.
type Locker interface {
	Acquire(ctx context.Context, key string, acquireTimeout, leaseExpiry time.Duration) (Lease, error)
}

// ResponsePublisher delivers a trade outcome to the requesting client's
// notification exchange. At-most-once: failures are terminal.
type ResponsePublisher interface {
	PublishResponse(ctx context.Context, user *accounts.User, resp *trading.TradeResponse) error
}

// OfficePublisher posts the periodic office-wide positions snapshot to the
// dealer-out queue.
type OfficePublisher interface {
	PublishOfficePositions(ctx context.Context, snap trading.OfficePositions) error
}
