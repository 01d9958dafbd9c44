package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/Dasindu02/diapredict-main/internal/domain/model"
	"github.com/Dasindu02/diapredict-main/internal/domain/port"
)

// NopPredictionRepository satisfies port.PredictionRepository without
// storing anything. It stands in when no database is configured.
type NopPredictionRepository struct{}

// Save discards the prediction.
func (NopPredictionRepository) Save(context.Context, *model.Prediction) error { return nil }

// FindByID always fails with port.ErrAuditDisabled.
func (NopPredictionRepository) FindByID(context.Context, uuid.UUID) (*model.Prediction, error) {
	return nil, port.ErrAuditDisabled
}
