package messaging_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dasindu02/diapredict-main/internal/domain/event"
	"github.com/Dasindu02/diapredict-main/internal/domain/model"
	"github.com/Dasindu02/diapredict-main/internal/infrastructure/messaging"
	"github.com/Dasindu02/diapredict-main/pkg/kafka"
)

type mockProducer struct {
	topic    string
	messages []kafka.Message
	err      error
}

func (m *mockProducer) Publish(_ context.Context, topic string, messages ...kafka.Message) error {
	m.topic = topic
	m.messages = append(m.messages, messages...)
	return m.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func highRiskPrediction(t *testing.T) *model.Prediction {
	t.Helper()
	p, err := model.NewPrediction(model.FeatureVector{13, 1, 41, 1, 1, 5, 0, 0, 0, 1}, 2)
	require.NoError(t, err)
	return p
}

func TestKafkaPublisher_Publish(t *testing.T) {
	producer := &mockProducer{}
	publisher := messaging.NewKafkaPublisher(producer, "diapredict.risk.events", testLogger())

	p := highRiskPrediction(t)
	evts := p.DomainEvents()
	require.Len(t, evts, 2)

	require.NoError(t, publisher.Publish(context.Background(), evts...))

	assert.Equal(t, "diapredict.risk.events", producer.topic)
	require.Len(t, producer.messages, 2)

	for i, msg := range producer.messages {
		assert.Equal(t, p.ID().String(), string(msg.Key))
		assert.Equal(t, evts[i].Payload(), msg.Value)
		assert.Equal(t, evts[i].EventID().String(), msg.Headers[messaging.HeaderEventID])
		assert.Equal(t, event.AggregateTypePrediction, msg.Headers[messaging.HeaderAggregateType])
		assert.Equal(t, "application/json", msg.Headers[messaging.HeaderContentType])
		assert.NotContains(t, msg.Headers, "aggregate_id", "the message key already carries the aggregate id")
	}
	assert.Equal(t, event.EventTypePredictionCompleted, producer.messages[0].Headers[messaging.HeaderEventType])
	assert.Equal(t, event.EventTypeHighRiskPredicted, producer.messages[1].Headers[messaging.HeaderEventType])
}

func TestKafkaPublisher_PublishNothing(t *testing.T) {
	producer := &mockProducer{}
	publisher := messaging.NewKafkaPublisher(producer, "topic", testLogger())

	require.NoError(t, publisher.Publish(context.Background()))
	assert.Empty(t, producer.topic, "producer must not be called")
}

func TestKafkaPublisher_PublishError(t *testing.T) {
	producer := &mockProducer{err: errors.New("leader not available")}
	publisher := messaging.NewKafkaPublisher(producer, "topic", testLogger())

	err := publisher.Publish(context.Background(), highRiskPrediction(t).DomainEvents()...)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "leader not available")
}

func TestLogPublisher_Publish(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	publisher := messaging.NewLogPublisher(logger)

	p := highRiskPrediction(t)
	require.NoError(t, publisher.Publish(context.Background(), p.DomainEvents()...))

	assert.Contains(t, logs.String(), event.EventTypeHighRiskPredicted)
	assert.Contains(t, logs.String(), p.ID().String())
}
