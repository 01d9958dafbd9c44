package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/Dasindu02/diapredict-main/internal/domain/model"
)

// PredictRequest is the input DTO for the PredictRisk use case.
type PredictRequest struct {
	Survey model.SurveyRecord
}

// PredictionResponse is the output DTO returned after a prediction. Only the
// tier fields are part of the HTTP body.
type PredictionResponse struct {
	RiskText     string    `json:"risk_text"`
	RiskLevel    int       `json:"risk_level"`
	PredictionID uuid.UUID `json:"-"`
}

// GetPredictionRequest is the input DTO for retrieving an audited prediction.
type GetPredictionRequest struct {
	PredictionID uuid.UUID `json:"prediction_id"`
}

// PredictionRecordResponse is the audit view of a stored prediction.
type PredictionRecordResponse struct {
	CreatedAt time.Time `json:"created_at"`
	Features  []float64 `json:"features"`
	ID        uuid.UUID `json:"id"`
	RiskText  string    `json:"risk_text"`
	RiskLevel int       `json:"risk_level"`
}

// FromModel maps a prediction to the response DTO.
func FromModel(p *model.Prediction) PredictionResponse {
	return PredictionResponse{
		PredictionID: p.ID(),
		RiskLevel:    p.Label(),
		RiskText:     p.Tier().String(),
	}
}

// RecordFromModel maps a prediction to its audit view.
func RecordFromModel(p *model.Prediction) PredictionRecordResponse {
	return PredictionRecordResponse{
		ID:        p.ID(),
		RiskLevel: p.Label(),
		RiskText:  p.Tier().String(),
		Features:  p.Features().Slice(),
		CreatedAt: p.CreatedAt(),
	}
}
