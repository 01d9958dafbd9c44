//go:build integration

package messaging_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dasindu02/diapredict-main/internal/domain/event"
	"github.com/Dasindu02/diapredict-main/internal/infrastructure/messaging"
	"github.com/Dasindu02/diapredict-main/pkg/kafka"
	"github.com/Dasindu02/diapredict-main/pkg/testutil"
)

func TestKafkaPublisher_Integration(t *testing.T) {
	ctx := context.Background()

	kc := testutil.StartKafka(ctx, t)

	producer, err := kafka.NewProducer(kafka.Config{Brokers: kc.Brokers, WriteTimeout: 10 * time.Second})
	require.NoError(t, err)
	defer producer.Close()

	const topic = "diapredict.risk.events.test"
	publisher := messaging.NewKafkaPublisher(producer, topic, testLogger())

	p := testutil.NewPrediction(t, 2)
	require.NoError(t, publisher.Publish(ctx, p.DomainEvents()...))

	msgs := kc.ReadMessages(t, topic, 2, 30*time.Second)
	for _, msg := range msgs {
		assert.Equal(t, p.ID().String(), string(msg.Key))
	}

	types := map[string]bool{}
	for _, msg := range msgs {
		for _, h := range msg.Headers {
			if h.Key == messaging.HeaderEventType {
				types[string(h.Value)] = true
			}
		}
	}
	assert.True(t, types[event.EventTypePredictionCompleted])
	assert.True(t, types[event.EventTypeHighRiskPredicted])
}
