package messaging

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Dasindu02/diapredict-main/pkg/events"
	"github.com/Dasindu02/diapredict-main/pkg/kafka"
)

// Message headers set on every published event.
const (
	HeaderEventID       = events.MetaEventID
	HeaderEventType     = events.MetaEventType
	HeaderAggregateType = events.MetaAggregateType
	HeaderOccurredAt    = events.MetaOccurredAt
	HeaderContentType   = "content_type"
)

// MessageProducer is the subset of kafka.Producer the publisher needs.
type MessageProducer interface {
	Publish(ctx context.Context, topic string, messages ...kafka.Message) error
}

// KafkaPublisher implements port.EventPublisher using Kafka. Events are keyed
// by aggregate ID so that all events of one prediction land on one partition.
type KafkaPublisher struct {
	producer MessageProducer
	topic    string
	logger   *slog.Logger
}

// NewKafkaPublisher creates a new Kafka event publisher.
func NewKafkaPublisher(producer MessageProducer, topic string, logger *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		producer: producer,
		topic:    topic,
		logger:   logger,
	}
}

// Publish sends domain events to Kafka in a single batch.
func (p *KafkaPublisher) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	if len(evts) == 0 {
		return nil
	}

	messages := make([]kafka.Message, 0, len(evts))
	for _, evt := range evts {
		messages = append(messages, ToMessage(evt))

		p.logger.DebugContext(ctx, "publishing event",
			slog.String("event_type", evt.EventType()),
			slog.String("event_id", evt.EventID().String()),
			slog.String("topic", p.topic),
			slog.Int("payload_size", len(evt.Payload())),
		)
	}

	if err := p.producer.Publish(ctx, p.topic, messages...); err != nil {
		return fmt.Errorf("failed to publish %d events: %w", len(evts), err)
	}
	return nil
}

// ToMessage converts a domain event into a Kafka message.
func ToMessage(evt events.DomainEvent) kafka.Message {
	headers := events.Metadata(evt)
	delete(headers, events.MetaAggregateID)
	headers[HeaderContentType] = "application/json"

	return kafka.Message{
		Key:     []byte(evt.AggregateID().String()),
		Value:   evt.Payload(),
		Headers: headers,
	}
}
