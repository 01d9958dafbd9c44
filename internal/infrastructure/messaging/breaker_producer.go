package messaging

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"github.com/Dasindu02/diapredict-main/pkg/kafka"
)

// ErrBrokerUnavailable is returned while the breaker is open and publishes
// are short-circuited.
var ErrBrokerUnavailable = errors.New("event broker unavailable: circuit breaker is open")

// BreakerSettings configures a BreakerProducer.
type BreakerSettings struct {
	Name string
	// ConsecutiveFailures trips the breaker. Defaults to 5.
	ConsecutiveFailures uint32
	// OpenTimeout is how long the breaker stays open before probing. Defaults to 30s.
	OpenTimeout time.Duration
}

// BreakerProducer guards a MessageProducer with a circuit breaker. While the
// breaker is open, Publish fails immediately with ErrBrokerUnavailable.
type BreakerProducer struct {
	next MessageProducer
	cb   *gobreaker.CircuitBreaker
}

// NewBreakerProducer wraps next.
func NewBreakerProducer(next MessageProducer, st BreakerSettings, logger *slog.Logger) *BreakerProducer {
	threshold := st.ConsecutiveFailures
	if threshold == 0 {
		threshold = 5
	}
	timeout := st.OpenTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        st.Name,
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})

	return &BreakerProducer{next: next, cb: cb}
}

// Publish forwards to the wrapped producer unless the breaker is open.
func (p *BreakerProducer) Publish(ctx context.Context, topic string, messages ...kafka.Message) error {
	_, err := p.cb.Execute(func() (any, error) {
		return nil, p.next.Publish(ctx, topic, messages...)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return ErrBrokerUnavailable
	}
	return err
}

// State reports the breaker state, for readiness reporting.
func (p *BreakerProducer) State() string {
	return p.cb.State().String()
}
