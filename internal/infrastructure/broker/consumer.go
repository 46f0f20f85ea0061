package broker

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"main/internal/application/service/execution"
	"main/internal/config"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// Consumer subscribes to the office request queue and hands every delivery
// to the execution pipeline. The pipeline owns acknowledgment: the consumer
// never acks or nacks on its own, so each message is acked exactly once and
// the transport never observes a processing failure.
type Consumer struct {
	cfg      config.AMQPConfig
	pipeline *execution.Service
	logger   *logrus.Logger

	conn    *amqp.Connection
	channel *amqp.Channel
	wg      sync.WaitGroup
}

// NewConsumer prepares a consumer for the given configuration.
func NewConsumer(cfg config.AMQPConfig, pipeline *execution.Service, logger *logrus.Logger) (*Consumer, error) {
	if cfg.URL == "" {
		return nil, errors.New("amqp url is required")
	}
	return &Consumer{
		cfg:      cfg,
		pipeline: pipeline,
		logger:   logger,
	}, nil
}

// Start establishes the AMQP connection, declares the office topology, and
// begins consuming trade requests.
func (c *Consumer) Start(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	conn, err := amqp.Dial(c.cfg.URL)
	if err != nil {
		return fmt.Errorf("connect to rabbitmq: %w", err)
	}
	c.conn = conn

	ch, err := conn.Channel()
	if err != nil {
		c.Close()
		return fmt.Errorf("open channel: %w", err)
	}
	c.channel = ch

	if err := declareOfficeTopology(ch, c.cfg); err != nil {
		c.Close()
		return err
	}

	prefetch := c.cfg.Prefetch
	if prefetch <= 0 {
		prefetch = 1
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		c.Close()
		return fmt.Errorf("set qos: %w", err)
	}

	deliveries, err := ch.Consume(c.cfg.RequestQueue, "", false, false, false, false, nil)
	if err != nil {
		c.Close()
		return fmt.Errorf("start consume: %w", err)
	}

	c.wg.Add(1)
	go c.consumeLoop(ctx, deliveries)

	c.logger.Infof("office consumer started: exchange=%s queue=%s", c.cfg.OfficeExchange, c.cfg.RequestQueue)
	return nil
}

// Close stops consumption and releases the connection.
func (c *Consumer) Close() error {
	if c.channel != nil {
		_ = c.channel.Close()
		c.channel = nil
	}
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
	c.wg.Wait()
	return nil
}

func (c *Consumer) consumeLoop(ctx context.Context, deliveries <-chan amqp.Delivery) {
	defer c.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case delivery, ok := <-deliveries:
			if !ok {
				return
			}
			// UserId is the opaque caller identity stamped by the
			// routing tier; empty means fire-and-forget.
			c.pipeline.HandleDelivery(ctx, delivery.UserId, delivery.Body, func() error {
				return delivery.Ack(false)
			})
		}
	}
}
