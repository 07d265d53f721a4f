package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"storefront/internal/models"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher_PublishOrderCreated(t *testing.T) {
	writer := &fakeWriter{}
	pub := NewKafkaPublisher(writer)
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	pub.now = func() time.Time { return at }

	order := &models.Order{
		ID:            uuid.New(),
		TenantID:      uuid.New(),
		Total:         200,
		PaymentMethod: models.PaymentMethodCash,
		PaymentStatus: models.PaymentStatusPending,
	}
	require.NoError(t, pub.PublishOrderCreated(context.Background(), order))

	require.Len(t, writer.messages, 1)
	msg := writer.messages[0]
	assert.Equal(t, "order-created-"+order.ID.String(), string(msg.Key))

	var event OrderEvent
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.Equal(t, OrderEvent{
		Type:          EventOrderCreated,
		TenantID:      order.TenantID,
		OrderID:       order.ID,
		Total:         200,
		PaymentMethod: "cash",
		PaymentStatus: "pending",
		OccurredAt:    at,
	}, event)

	require.NoError(t, pub.Close())
	assert.True(t, writer.closed)
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	pub := NewKafkaPublisher(&fakeWriter{err: errors.New("broker unavailable")})

	err := pub.PublishOrderCreated(context.Background(), &models.Order{ID: uuid.New()})
	assert.ErrorContains(t, err, "broker unavailable")
}
