package grpc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Dasindu02/diapredict-main/internal/application/dto"
	"github.com/Dasindu02/diapredict-main/internal/application/usecase"
	"github.com/Dasindu02/diapredict-main/internal/domain/model"
	"github.com/Dasindu02/diapredict-main/internal/domain/port"
)

// Compile-time assertion that RiskServiceHandler implements RiskServiceServer.
var _ RiskServiceServer = (*RiskServiceHandler)(nil)

// RiskServiceHandler implements the gRPC RiskServiceServer interface.
type RiskServiceHandler struct {
	UnimplementedRiskServiceServer
	predictRisk   *usecase.PredictRisk
	getPrediction *usecase.GetPrediction
	logger        *slog.Logger
}

// NewRiskServiceHandler creates a new gRPC handler.
func NewRiskServiceHandler(
	predictRisk *usecase.PredictRisk,
	getPrediction *usecase.GetPrediction,
	logger *slog.Logger,
) *RiskServiceHandler {
	return &RiskServiceHandler{
		predictRisk:   predictRisk,
		getPrediction: getPrediction,
		logger:        logger,
	}
}

// Proto-aligned request/response message types.

// PredictRequest is the survey record, in the same JSON shape as the body of
// POST /predict.
type PredictRequest struct {
	model.SurveyRecord
}

// PredictResponse represents the proto PredictResponse message.
type PredictResponse struct {
	RiskText     string `json:"risk_text"`
	PredictionID string `json:"prediction_id"`
	RiskLevel    int    `json:"risk_level"`
}

// GetPredictionRequest represents the proto GetPredictionRequest message.
type GetPredictionRequest struct {
	PredictionID string `json:"prediction_id"`
}

// GetPredictionResponse represents the proto GetPredictionResponse message.
type GetPredictionResponse struct {
	PredictionID string    `json:"prediction_id"`
	RiskText     string    `json:"risk_text"`
	CreatedAt    string    `json:"created_at"`
	Features     []float64 `json:"features"`
	RiskLevel    int       `json:"risk_level"`
}

// Predict scores one survey record. Every failure is reported as Internal
// with the underlying message, matching the HTTP surface.
func (h *RiskServiceHandler) Predict(ctx context.Context, req *PredictRequest) (*PredictResponse, error) {
	resp, err := h.predictRisk.Execute(ctx, dto.PredictRequest{Survey: req.SurveyRecord})
	if err != nil {
		h.logger.WarnContext(ctx, "prediction failed", "error", err)
		return nil, status.Error(codes.Internal, err.Error())
	}

	return &PredictResponse{
		PredictionID: resp.PredictionID.String(),
		RiskLevel:    resp.RiskLevel,
		RiskText:     resp.RiskText,
	}, nil
}

// GetPrediction retrieves an audited prediction.
func (h *RiskServiceHandler) GetPrediction(ctx context.Context, req *GetPredictionRequest) (*GetPredictionResponse, error) {
	id, err := uuid.Parse(req.PredictionID)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid prediction_id")
	}

	resp, err := h.getPrediction.Execute(ctx, dto.GetPredictionRequest{PredictionID: id})
	if err != nil {
		return nil, h.mapError(ctx, err)
	}

	return &GetPredictionResponse{
		PredictionID: resp.ID.String(),
		RiskLevel:    resp.RiskLevel,
		RiskText:     resp.RiskText,
		Features:     resp.Features,
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339Nano),
	}, nil
}

func (h *RiskServiceHandler) mapError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, port.ErrPredictionNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, port.ErrAuditDisabled):
		return status.Error(codes.Unavailable, err.Error())
	default:
		h.logger.ErrorContext(ctx, "failed to get prediction", "error", err)
		return status.Error(codes.Internal, "failed to get prediction")
	}
}
