// Package events publishes order lifecycle events.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront/internal/models"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const EventOrderCreated = "order.created"

type OrderEvent struct {
	Type          string    `json:"type"`
	TenantID      uuid.UUID `json:"tenant_id"`
	OrderID       uuid.UUID `json:"order_id"`
	Total         float64   `json:"total"`
	PaymentMethod string    `json:"payment_method"`
	PaymentStatus string    `json:"payment_status"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type Publisher interface {
	PublishOrderCreated(ctx context.Context, order *models.Order) error
	Close() error
}

// MessageWriter is the part of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer MessageWriter
	now    func() time.Time
}

func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
}

func NewKafkaPublisher(writer MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: writer, now: time.Now}
}

// PublishOrderCreated writes one message keyed by order so events of an order stay on one partition.
func (p *KafkaPublisher) PublishOrderCreated(ctx context.Context, order *models.Order) error {
	payload, err := json.Marshal(OrderEvent{
		Type:          EventOrderCreated,
		TenantID:      order.TenantID,
		OrderID:       order.ID,
		Total:         order.Total,
		PaymentMethod: order.PaymentMethod,
		PaymentStatus: order.PaymentStatus,
		OccurredAt:    p.now().UTC(),
	})
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("order-created-%s", order.ID)),
		Value: payload,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", EventOrderCreated, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher is used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishOrderCreated(context.Context, *models.Order) error { return nil }

func (NoopPublisher) Close() error { return nil }
