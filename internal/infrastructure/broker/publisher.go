package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"main/internal/config"
	accounts "main/internal/domain/entity/accounts"
	trading "main/internal/domain/entity/trading"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// Publisher delivers trade responses to per-client notification exchanges
// and office snapshots to the dealer-out queue. Publishes are at-most-once;
// a failed publish is the caller's to log, never retried here.
type Publisher struct {
	cfg    config.AMQPConfig
	logger *logrus.Entry

	mu       sync.Mutex
	channel  *amqp.Channel
	declared map[string]struct{}
}

// NewPublisher opens a dedicated channel on the shared connection. The
// channel is serialized internally; amqp channels are not safe for
// concurrent publish.
func NewPublisher(conn *amqp.Connection, cfg config.AMQPConfig, logger *logrus.Logger) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open publisher channel: %w", err)
	}
	return &Publisher{
		cfg:      cfg,
		logger:   logger.WithField("component", "publisher"),
		channel:  ch,
		declared: map[string]struct{}{},
	}, nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel == nil {
		return nil
	}
	err := p.channel.Close()
	p.channel = nil
	return err
}

// PublishResponse serializes the ClientUpdate envelope and posts it to the
// client's exchange with the response routing key.
func (p *Publisher) PublishResponse(ctx context.Context, user *accounts.User, resp *trading.TradeResponse) error {
	body, err := json.Marshal(trading.ClientUpdate{Response: resp})
	if err != nil {
		return fmt.Errorf("encode client update: %w", err)
	}
	exchange := ClientExchangeName(user.UUID)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ensureClientExchange(exchange); err != nil {
		return err
	}
	return p.publish(ctx, exchange, responseRoutingKey, body)
}

// PublishOfficePositions posts the office snapshot to the dealer-out queue
// through the default exchange.
func (p *Publisher) PublishOfficePositions(ctx context.Context, snap trading.OfficePositions) error {
	body, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode office positions: %w", err)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.publish(ctx, "", p.cfg.DealerOutQueue, body)
}

func (p *Publisher) ensureClientExchange(name string) error {
	if _, ok := p.declared[name]; ok {
		return nil
	}
	if err := declareClientExchange(p.channel, name); err != nil {
		return err
	}
	p.declared[name] = struct{}{}
	p.logger.WithField("exchange", name).Debug("client exchange declared")
	return nil
}

func (p *Publisher) publish(ctx context.Context, exchange, key string, body []byte) error {
	err := p.channel.PublishWithContext(ctx, exchange, key, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		return fmt.Errorf("publish to %s/%s: %w", exchange, key, err)
	}
	return nil
}
