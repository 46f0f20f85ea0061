package positions

import (
	"context"
	"time"

	trading "main/internal/domain/entity/trading"
	interfaces "main/internal/domain/interfaces"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DispatcherConfig controls the office positions snapshot loop.
type DispatcherConfig struct {
	OfficeID    int64
	Interval    time.Duration
	LockAcquire time.Duration
	LockExpiry  time.Duration
}

// Dispatcher periodically publishes every registered user's open positions
// to the dealer-out queue for review.
type Dispatcher struct {
	cfg       DispatcherConfig
	registry  interfaces.UserRegistry
	locker    interfaces.Locker
	ledger    *Service
	publisher interfaces.OfficePublisher
	logger    *logrus.Entry
}

func NewDispatcher(cfg DispatcherConfig, registry interfaces.UserRegistry, locker interfaces.Locker, ledger *Service, publisher interfaces.OfficePublisher, logger *logrus.Logger) *Dispatcher {
	return &Dispatcher{
		cfg:       cfg,
		registry:  registry,
		locker:    locker,
		ledger:    ledger,
		publisher: publisher,
		logger:    logger.WithField("component", "positions_dispatcher"),
	}
}

// Run dispatches snapshots on the configured interval until the context
// ends.
func (d *Dispatcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.cfg.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			d.dispatch(ctx)
		}
	}
}

func (d *Dispatcher) dispatch(ctx context.Context) {
	snap := trading.OfficePositions{
		OfficeID: d.cfg.OfficeID,
		Users:    map[string]trading.PositionSet{},
	}

	for _, user := range d.registry.Snapshot() {
		set, err := d.readUnderLock(ctx, user.UUID)
		if err != nil {
			d.logger.WithError(err).WithField("user", user.Username).Warn("skipping user in office snapshot")
			continue
		}
		snap.Users[user.Username] = set
	}
	if len(snap.Users) == 0 {
		return
	}

	if err := d.publisher.PublishOfficePositions(ctx, snap); err != nil {
		d.logger.WithError(err).Error("publish office positions failed")
	}
}

func (d *Dispatcher) readUnderLock(ctx context.Context, userUUID uuid.UUID) (trading.PositionSet, error) {
	key := trading.UserPositionsKey(userUUID)
	lease, err := d.locker.Acquire(ctx, trading.PositionsLockKey(key), d.cfg.LockAcquire, d.cfg.LockExpiry)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := lease.Release(ctx); err != nil {
			d.logger.WithError(err).Warn("release positions lock failed")
		}
	}()
	return d.ledger.Open(ctx, key)
}
