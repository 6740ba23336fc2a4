// Package kafka publishes fulfillment domain events to a Kafka topic.
// Messages are keyed by order ID so that all events of one order land on
// the same partition and stay ordered for consumers.
package kafka

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"fulfillment/internal/core/domain/events"

	"github.com/segmentio/kafka-go"
)

// eventMessage is the wire representation of a domain event.
type eventMessage struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	OrderID    string `json:"order_id"`
	CourierID  string `json:"courier_id,omitempty"`
	Milestone  string `json:"milestone,omitempty"`
	OccurredAt string `json:"occurred_at"`
}

// EventPublisher implements ports.EventPublisher on top of kafka-go.
type EventPublisher struct {
	writer *kafka.Writer
}

// NewEventPublisher creates a publisher writing to the given topic.
// brokersSTR is a comma-separated broker list.
func NewEventPublisher(brokersSTR, topic string) *EventPublisher {
	brokers := strings.Split(brokersSTR, ",")

	return &EventPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
			Async:        false,
		},
	}
}

// Close flushes and closes the underlying writer.
func (p *EventPublisher) Close() error {
	return p.writer.Close()
}

// Publish writes one domain event to the topic.
func (p *EventPublisher) Publish(ctx context.Context, event events.Event) error {
	msg := eventMessage{
		ID:         event.ID.String(),
		Type:       string(event.Type),
		OrderID:    event.OrderID.String(),
		Milestone:  event.Milestone,
		OccurredAt: event.OccurredAt.Format(time.RFC3339Nano),
	}
	if event.CourierID != nil {
		msg.CourierID = event.CourierID.String()
	}

	value, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.OrderID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "content-type", Value: []byte("application/json")},
		},
	})
}
