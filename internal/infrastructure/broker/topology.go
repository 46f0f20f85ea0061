package broker

import (
	"fmt"

	"main/internal/config"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	requestRoutingKey  = "request"
	responseRoutingKey = "response"
)

// ClientExchangeName derives the notification exchange for a client from
// its stable uuid. Clients bind their own queues to it.
func ClientExchangeName(userUUID uuid.UUID) string {
	return "client_" + userUUID.String()
}

func declareOfficeTopology(ch *amqp.Channel, cfg config.AMQPConfig) error {
	if err := ch.ExchangeDeclare(cfg.OfficeExchange, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", cfg.OfficeExchange, err)
	}
	if _, err := ch.QueueDeclare(cfg.RequestQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %s: %w", cfg.RequestQueue, err)
	}
	if err := ch.QueueBind(cfg.RequestQueue, requestRoutingKey, cfg.OfficeExchange, false, nil); err != nil {
		return fmt.Errorf("bind queue %s to %s: %w", cfg.RequestQueue, cfg.OfficeExchange, err)
	}
	if _, err := ch.QueueDeclare(cfg.DealerOutQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %s: %w", cfg.DealerOutQueue, err)
	}
	return nil
}

func declareClientExchange(ch *amqp.Channel, name string) error {
	if err := ch.ExchangeDeclare(name, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare client exchange %s: %w", name, err)
	}
	return nil
}
