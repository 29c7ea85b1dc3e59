// Package events publishes order lifecycle events for the shop owner's
// notification pipeline. Publishing is best effort: a failed event never
// fails the submission that produced it.
package events

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"mawasim-api/internal/domain"
)

// Publisher emits order events.
type Publisher interface {
	OrderCreated(ctx context.Context, o domain.Order) error
	Close() error
}

type orderCreatedEvent struct {
	Type       string    `json:"type"`
	OrderID    string    `json:"orderId"`
	ShortID    string    `json:"shortId"`
	TotalCents int64     `json:"totalCents"`
	ItemCount  int       `json:"itemCount"`
	CreatedAt  time.Time `json:"createdAt"`
}

// KafkaPublisher writes order events to a Kafka topic.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafka builds a publisher from a comma-separated broker list.
func NewKafka(brokersCSV, topic string) *KafkaPublisher {
	var brokers []string
	for _, b := range strings.Split(brokersCSV, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *KafkaPublisher) OrderCreated(ctx context.Context, o domain.Order) error {
	payload, err := json.Marshal(orderCreatedEvent{
		Type:       "order.created",
		OrderID:    o.ID,
		ShortID:    o.ShortID(),
		TotalCents: o.TotalCents,
		ItemCount:  len(o.Items),
		CreatedAt:  o.CreatedAt,
	})
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(o.ID),
		Value: payload,
		Time:  time.Now().UTC(),
	})
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
