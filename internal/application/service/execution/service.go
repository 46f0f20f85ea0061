package execution

import (
	"context"
	"time"

	"main/internal/application/service/positions"
	accounts "main/internal/domain/entity/accounts"
	trading "main/internal/domain/entity/trading"
	interfaces "main/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// Config carries the acquire timeouts and lease expiries for the two lock tiers.
type Config struct {
	ProcessingLockAcquire time.Duration
	ProcessingLockExpiry  time.Duration
	PositionsLockAcquire  time.Duration
	PositionsLockExpiry   time.Duration
}

// Service is the per-user serialized trade-execution pipeline. One call to
// HandleDelivery processes one inbound office message end to end:
// identity resolution, validation, two-tier locking, ledger update,
// acknowledgment, client notification.
type Service struct {
	cfg       Config
	directory interfaces.UserDirectory
	quotes    interfaces.QuoteCache
	locker    interfaces.Locker
	ledger    *positions.Service
	publisher interfaces.ResponsePublisher
	logger    *logrus.Entry
}

func NewService(cfg Config, directory interfaces.UserDirectory, quotes interfaces.QuoteCache, locker interfaces.Locker, ledger *positions.Service, publisher interfaces.ResponsePublisher, logger *logrus.Logger) *Service {
	return &Service{
		cfg:       cfg,
		directory: directory,
		quotes:    quotes,
		locker:    locker,
		ledger:    ledger,
		publisher: publisher,
		logger:    logger.WithField("component", "execution"),
	}
}

// HandleDelivery never propagates an error to the transport: every path
// acknowledges the message exactly once, and failures end in logging. A
// response is published only when the caller identity resolved to a user
// and processing reached a terminal status; contention leaves the client
// without a response by design.
func (s *Service) HandleDelivery(ctx context.Context, caller string, body []byte, ack func() error) {
	req, err := trading.ParseTradeRequest(body)
	if err != nil {
		s.logger.WithError(err).Error("malformed trade request")
		s.acknowledge(ack)
		return
	}
	resp := trading.NewTradeResponse(req)

	if caller == "" {
		// fire-and-forget message, nobody to answer
		s.acknowledge(ack)
		return
	}

	user, err := s.directory.ByUsername(ctx, caller)
	if err != nil {
		s.logger.WithError(err).WithField("caller", caller).Error("could not resolve user")
		s.acknowledge(ack)
		return
	}

	s.process(ctx, user, resp)

	s.acknowledge(ack)

	if !resp.Resolved() {
		return
	}
	if err := s.publisher.PublishResponse(ctx, user, resp); err != nil {
		s.logger.WithError(err).WithField("user", user.Username).Error("publish response failed")
	}
}

// process runs validation and, when accepted, the ledger update, all under
// the user-processing lock. It resolves resp on every outcome except lock
// contention, which is a silent drop.
func (s *Service) process(ctx context.Context, user *accounts.User, resp *trading.TradeResponse) {
	procLease, err := s.locker.Acquire(ctx, trading.UserProcessingLockKey(user.UUID), s.cfg.ProcessingLockAcquire, s.cfg.ProcessingLockExpiry)
	if err != nil {
		s.logger.WithError(err).WithField("user", user.Username).Warn("could not lock user for processing")
		return
	}
	defer s.release(ctx, procLease)

	spreads, err := s.quotes.Spreads(ctx, user.UUID)
	if err != nil {
		s.logger.WithError(err).WithField("user", user.Username).Error("read spread permissions failed")
		resp.Resolve(trading.StatusFailed)
		return
	}
	quotes, err := s.quotes.Quotes(ctx, user.UUID)
	if err != nil {
		s.logger.WithError(err).WithField("user", user.Username).Error("read quotes failed")
		resp.Resolve(trading.StatusFailed)
		return
	}

	decision := Validate(resp.Request, spreads, quotes)
	if !decision.Accepted() {
		resp.Resolve(decision.Reject)
		s.logger.WithFields(logrus.Fields{
			"user":      user.Username,
			"commodity": resp.Request.Commodity,
			"status":    decision.Reject,
		}).Warn("trade request rejected")
		return
	}

	positionsKey := trading.UserPositionsKey(user.UUID)
	posLease, err := s.locker.Acquire(ctx, trading.PositionsLockKey(positionsKey), s.cfg.PositionsLockAcquire, s.cfg.PositionsLockExpiry)
	if err != nil {
		s.logger.WithError(err).WithField("user", user.Username).Warn("could not lock user positions")
		return
	}
	defer s.release(ctx, posLease)

	position, err := s.ledger.OpenPosition(ctx, positionsKey, resp.Request, decision.OrderType, decision.OpenPrice)
	if err != nil {
		s.logger.WithError(err).WithField("user", user.Username).Error("position update failed")
		resp.Resolve(trading.StatusFailed)
		return
	}
	resp.Resolve(trading.StatusOK)

	s.logger.WithFields(logrus.Fields{
		"user":       user.Username,
		"order_id":   position.OrderID,
		"order_type": position.OrderType,
		"commodity":  position.Commodity,
		"lot":        position.Lot,
		"open_price": position.OpenPrice,
	}).Info("position opened")
}

func (s *Service) acknowledge(ack func() error) {
	if err := ack(); err != nil {
		s.logger.WithError(err).Error("ack failed")
	}
}

func (s *Service) release(ctx context.Context, lease interfaces.Lease) {
	if err := lease.Release(ctx); err != nil {
		s.logger.WithError(err).Warn("release lock failed")
	}
}
