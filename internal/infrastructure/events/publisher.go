package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MohdOwais22/subaku-backend/internal/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const source = "subaku-backend"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes domain events to Kafka, keyed by aggregate id.
type KafkaPublisher struct {
	writer messageWriter
}

func NewKafkaPublisher(brokers []string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Balancer:               &kafka.LeastBytes{},
			BatchSize:              100,
			BatchTimeout:           10 * time.Millisecond,
			WriteTimeout:           5 * time.Second,
			RequiredAcks:           kafka.RequireAll,
			AllowAutoTopicCreation: true,
		},
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, topic, aggregateID, aggregateType string, data any) error {
	event, err := NewEvent(topic, aggregateID, aggregateType, source, data)
	if err != nil {
		return fmt.Errorf("build event: %w", err)
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(aggregateID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "source", Value: []byte(source)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish event to %s: %w", topic, err)
	}

	logger.Debug("Event published",
		zap.String("topic", topic),
		zap.String("event_id", event.EventID),
		zap.String("aggregate_id", aggregateID),
	)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher drops events when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(_ context.Context, topic, aggregateID, _ string, _ any) error {
	logger.Debug("Event dropped, no broker configured",
		zap.String("topic", topic),
		zap.String("aggregate_id", aggregateID),
	)
	return nil
}

func (NoopPublisher) Close() error { return nil }
