package usecase

import (
	"context"
	"fmt"

	"github.com/Dasindu02/diapredict-main/internal/application/dto"
	"github.com/Dasindu02/diapredict-main/internal/domain/port"
)

// GetPrediction is the use case for retrieving an audited prediction.
type GetPrediction struct {
	repo port.PredictionRepository
}

// NewGetPrediction creates a new GetPrediction use case.
func NewGetPrediction(repo port.PredictionRepository) *GetPrediction {
	return &GetPrediction{repo: repo}
}

// Execute retrieves a prediction by ID. A missing row yields an error
// wrapping port.ErrPredictionNotFound.
func (uc *GetPrediction) Execute(ctx context.Context, req dto.GetPredictionRequest) (dto.PredictionRecordResponse, error) {
	prediction, err := uc.repo.FindByID(ctx, req.PredictionID)
	if err != nil {
		return dto.PredictionRecordResponse{}, fmt.Errorf("failed to find prediction: %w", err)
	}
	if prediction == nil {
		return dto.PredictionRecordResponse{}, fmt.Errorf("%w: %s", port.ErrPredictionNotFound, req.PredictionID)
	}

	return dto.RecordFromModel(prediction), nil
}
