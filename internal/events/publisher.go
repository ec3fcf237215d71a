package events

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	TypeOrderCreated   = "order.created"
	TypeOrderDelivered = "order.delivered"
	TypeOrderFailed    = "order.failed"
)

// OrderEvent is published on every order state transition.
type OrderEvent struct {
	Type       string    `json:"type"`
	OrderID    string    `json:"orderId"`
	Status     string    `json:"status"`
	Amount     int64     `json:"amount"` // cents
	OccurredAt time.Time `json:"occurredAt"`
}

type Publisher interface {
	Publish(ctx context.Context, ev OrderEvent) error
	Close() error
}

type KafkaPublisher struct {
	w *kafka.Writer
}

func NewKafkaPublisher(brokersCSV string, topic string) *KafkaPublisher {
	brokers := strings.Split(brokersCSV, ",")

	return &KafkaPublisher{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
			Async:        false,
		},
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, ev OrderEvent) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	return p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.OrderID),
		Value: b,
		Headers: []kafka.Header{
			{Key: "content-type", Value: []byte("application/json")},
		},
	})
}

func (p *KafkaPublisher) Close() error {
	return p.w.Close()
}

// NoopPublisher stands in when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, ev OrderEvent) error { return nil }
func (NoopPublisher) Close() error                                     { return nil }
