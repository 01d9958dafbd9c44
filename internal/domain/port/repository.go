package port

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Dasindu02/diapredict-main/internal/domain/model"
	"github.com/Dasindu02/diapredict-main/pkg/events"
)

// Predictor defines the port for the trained classifier.
type Predictor interface {
	// Predict returns the integer class label for one feature vector.
	Predict(ctx context.Context, features model.FeatureVector) (int, error)
}

// PredictionRepository defines the persistence port for the prediction audit log.
type PredictionRepository interface {
	// Save persists a completed prediction.
	Save(ctx context.Context, prediction *model.Prediction) error

	// FindByID retrieves a prediction by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*model.Prediction, error)
}

// EventPublisher defines the port for publishing domain events.
type EventPublisher interface {
	// Publish sends one or more domain events to the messaging infrastructure.
	Publish(ctx context.Context, evts ...events.DomainEvent) error
}

var (
	// ErrPredictionNotFound is returned when no stored prediction matches an ID.
	ErrPredictionNotFound = errors.New("prediction not found")

	// ErrAuditDisabled is returned by lookups when no audit store is configured.
	ErrAuditDisabled = errors.New("prediction audit store not configured")
)
