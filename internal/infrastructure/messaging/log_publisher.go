package messaging

import (
	"context"
	"log/slog"

	"github.com/Dasindu02/diapredict-main/pkg/events"
)

// LogPublisher implements port.EventPublisher by logging events. It is used
// when no Kafka brokers are configured.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher creates a new LogPublisher.
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish logs each event at debug level.
func (p *LogPublisher) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	for _, evt := range evts {
		md := events.Metadata(evt)
		attrs := make([]slog.Attr, 0, len(md))
		for k, v := range md {
			attrs = append(attrs, slog.String(k, v))
		}
		p.logger.LogAttrs(ctx, slog.LevelDebug, "event not published, no broker configured", attrs...)
	}
	return nil
}
