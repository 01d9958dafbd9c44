package event

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Dasindu02/diapredict-main/pkg/events"
)

const (
	// AggregateTypePrediction names the aggregate that emits these events.
	AggregateTypePrediction = "Prediction"

	// EventTypePredictionCompleted is emitted for every successful prediction.
	EventTypePredictionCompleted = "risk.prediction.completed"

	// EventTypeHighRiskPredicted is emitted when a prediction lands in the HIGH tier.
	EventTypeHighRiskPredicted = "risk.high_risk.predicted"
)

// PredictionCompleted is the payload published after a survey has been scored.
type PredictionCompleted struct {
	PredictionID uuid.UUID `json:"prediction_id"`
	RiskLevel    int       `json:"risk_level"`
	RiskText     string    `json:"risk_text"`
	Features     []float64 `json:"features"`
	PredictedAt  time.Time `json:"predicted_at"`
}

// HighRiskPredicted is the payload published when the classifier reports a
// label outside the LOW and MEDIUM tiers.
type HighRiskPredicted struct {
	PredictionID uuid.UUID `json:"prediction_id"`
	RiskLevel    int       `json:"risk_level"`
	PredictedAt  time.Time `json:"predicted_at"`
}

// NewPredictionCompleted builds the domain event for a finished prediction.
func NewPredictionCompleted(p PredictionCompleted) (events.DomainEvent, error) {
	return newEvent(EventTypePredictionCompleted, p.PredictionID, p.PredictedAt, p)
}

// NewHighRiskPredicted builds the domain event for a HIGH tier prediction.
func NewHighRiskPredicted(p HighRiskPredicted) (events.DomainEvent, error) {
	return newEvent(EventTypeHighRiskPredicted, p.PredictionID, p.PredictedAt, p)
}

func newEvent(eventType string, predictionID uuid.UUID, at time.Time, body any) (events.DomainEvent, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	return events.NewBaseEvent(eventType, predictionID, AggregateTypePrediction, at, payload), nil
}
