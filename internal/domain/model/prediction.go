package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Dasindu02/diapredict-main/internal/domain/event"
	"github.com/Dasindu02/diapredict-main/internal/domain/valueobject"
	"github.com/Dasindu02/diapredict-main/pkg/events"
)

// Prediction is the aggregate root for one scored survey.
type Prediction struct {
	events.EventCollector
	createdAt time.Time
	tier      valueobject.RiskTier
	features  FeatureVector
	label     int
	id        uuid.UUID
}

// NewPrediction records the classifier's label for a feature vector and
// emits PredictionCompleted, plus HighRiskPredicted for the HIGH tier.
func NewPrediction(features FeatureVector, label int) (*Prediction, error) {
	if err := features.Validate(); err != nil {
		return nil, err
	}

	p := &Prediction{
		id:        uuid.New(),
		features:  features,
		label:     label,
		tier:      valueobject.RiskTierFromLabel(label),
		createdAt: time.Now().UTC(),
	}

	completed, err := event.NewPredictionCompleted(event.PredictionCompleted{
		PredictionID: p.id,
		RiskLevel:    p.label,
		RiskText:     p.tier.String(),
		Features:     p.features.Slice(),
		PredictedAt:  p.createdAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build prediction event: %w", err)
	}
	p.Record(completed)

	if p.tier.Equal(valueobject.RiskTierHigh) {
		highRisk, err := event.NewHighRiskPredicted(event.HighRiskPredicted{
			PredictionID: p.id,
			RiskLevel:    p.label,
			PredictedAt:  p.createdAt,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to build high risk event: %w", err)
		}
		p.Record(highRisk)
	}

	return p, nil
}

// ReconstructPrediction rebuilds a Prediction from persisted data (no validation, no events).
func ReconstructPrediction(
	id uuid.UUID,
	features FeatureVector,
	label int,
	tier valueobject.RiskTier,
	createdAt time.Time,
) *Prediction {
	return &Prediction{
		id:        id,
		features:  features,
		label:     label,
		tier:      tier,
		createdAt: createdAt,
	}
}

// --- Accessors ---

func (p *Prediction) ID() uuid.UUID              { return p.id }
func (p *Prediction) Features() FeatureVector    { return p.features }
func (p *Prediction) Label() int                 { return p.label }
func (p *Prediction) Tier() valueobject.RiskTier { return p.tier }
func (p *Prediction) CreatedAt() time.Time       { return p.createdAt }

// DomainEvents returns all accumulated domain events and clears them.
func (p *Prediction) DomainEvents() []events.DomainEvent {
	return p.ClearEvents()
}
