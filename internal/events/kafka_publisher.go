package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/SscSPs/dental_clinic_app/internal/core/domain"
	"github.com/segmentio/kafka-go"
)

// DefaultKafkaTopic receives one message per cash register status change.
const DefaultKafkaTopic = "cash_register_events"

// KafkaPublisher writes events to a topic for downstream consumers.
// Messages are keyed by cash register id so a shift's events stay ordered.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	if topic == "" {
		topic = DefaultKafkaTopic
	}
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.Hash{},
		},
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event domain.CashRegisterEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.CashRegisterID),
		Value: data,
	})
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
