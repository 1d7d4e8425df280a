package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/streadway/amqp"

	"github.com/guille-nat/Api-Compras-sub000/internal/application/inventory"
	"github.com/guille-nat/Api-Compras-sub000/internal/domain/entity"
)

// Ensure MovementPublisher implements inventory.MovementNotifier.
var _ inventory.MovementNotifier = (*MovementPublisher)(nil)

// MovementPublisher publica movimientos de inventario ya confirmados en un
// exchange RabbitMQ para consumidores de reportes/notificaciones.
// Best effort post-commit: nunca participa de la transacción de la operación.
type MovementPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

// movementEvent payload JSON publicado por movimiento.
type movementEvent struct {
	ID             string     `json:"id"`
	ProductID      int64      `json:"product_id"`
	BatchCode      *string    `json:"batch_code,omitempty"`
	ExpiryDate     *time.Time `json:"expiry_date,omitempty"`
	FromLocationID *int64     `json:"from_location_id,omitempty"`
	ToLocationID   *int64     `json:"to_location_id,omitempty"`
	Quantity       int        `json:"quantity"`
	Reason         string     `json:"reason"`
	ReferenceType  string     `json:"reference_type,omitempty"`
	ReferenceID    int64      `json:"reference_id,omitempty"`
	OccurredAt     time.Time  `json:"occurred_at"`
}

// NewMovementPublisher conecta a RabbitMQ y declara el exchange (topic, durable).
func NewMovementPublisher(url, exchange string) (*MovementPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial RabbitMQ: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	log.Info().Str("exchange", exchange).Msg("publicador de movimientos conectado a RabbitMQ")
	return &MovementPublisher{conn: conn, channel: channel, exchange: exchange}, nil
}

// PublishMovements publica un evento por movimiento con routing key
// inventory.movement.<reason>. Los errores se registran y se devuelven, pero
// el caller no revierte nada: la operación ya fue confirmada.
func (p *MovementPublisher) PublishMovements(_ context.Context, movements []*entity.StockMovement) error {
	for _, m := range movements {
		body, err := json.Marshal(movementEvent{
			ID:             m.ID,
			ProductID:      m.ProductID,
			BatchCode:      m.Batch.BatchCode,
			ExpiryDate:     m.Batch.ExpiryDate,
			FromLocationID: m.FromLocationID,
			ToLocationID:   m.ToLocationID,
			Quantity:       m.Quantity,
			Reason:         string(m.Reason),
			ReferenceType:  m.Reference.Type,
			ReferenceID:    m.Reference.ID,
			OccurredAt:     m.OccurredAt,
		})
		if err != nil {
			return fmt.Errorf("marshal movement event: %w", err)
		}
		routingKey := "inventory.movement." + string(m.Reason)
		err = p.channel.Publish(
			p.exchange,
			routingKey,
			false, // mandatory
			false, // immediate
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				Timestamp:    time.Now(),
				Body:         body,
			},
		)
		if err != nil {
			log.Error().Err(err).Str("routing_key", routingKey).Msg("fallo publicando movimiento")
			return fmt.Errorf("publish movement %s: %w", m.ID, err)
		}
	}
	return nil
}

// Close cierra canal y conexión.
func (p *MovementPublisher) Close() {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}
