package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/Dasindu02/diapredict-main/internal/application/dto"
	"github.com/Dasindu02/diapredict-main/internal/domain/model"
	"github.com/Dasindu02/diapredict-main/internal/domain/port"
	"github.com/Dasindu02/diapredict-main/internal/domain/service"
)

// RiskPredictor runs the PredictRisk use case.
type RiskPredictor interface {
	Execute(ctx context.Context, req dto.PredictRequest) (dto.PredictionResponse, error)
}

// PredictionFinder runs the GetPrediction use case.
type PredictionFinder interface {
	Execute(ctx context.Context, req dto.GetPredictionRequest) (dto.PredictionRecordResponse, error)
}

// PredictionHandler serves the prediction endpoints.
type PredictionHandler struct {
	predict RiskPredictor
	find    PredictionFinder
	logger  *slog.Logger
}

// NewPredictionHandler creates a new prediction handler.
func NewPredictionHandler(predict RiskPredictor, find PredictionFinder, logger *slog.Logger) *PredictionHandler {
	return &PredictionHandler{
		predict: predict,
		find:    find,
		logger:  logger,
	}
}

// RegisterRoutes registers prediction endpoints on the provided ServeMux.
func (h *PredictionHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /predict", h.Predict)
	mux.HandleFunc("GET /predictions/{id}", h.GetPrediction)
}

// Predict handles POST /predict. Every failure, whether a malformed body, a
// field that cannot be coerced or a classifier error, is reported as 500
// with the underlying message.
func (h *PredictionHandler) Predict(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	survey, err := model.DecodeSurveyRecord(body)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	resp, err := h.predict.Execute(r.Context(), dto.PredictRequest{Survey: survey})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetPrediction handles GET /predictions/{id}.
func (h *PredictionHandler) GetPrediction(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid prediction id")
		return
	}

	resp, err := h.find.Execute(r.Context(), dto.GetPredictionRequest{PredictionID: id})
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, resp)
	case errors.Is(err, port.ErrPredictionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, port.ErrAuditDisabled):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "failed to get prediction",
			"prediction_id", id,
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, "failed to get prediction")
	}
}

func (h *PredictionHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	level := slog.LevelError
	if errors.Is(err, service.ErrCoercion) || errors.Is(err, model.ErrNotAnObject) || errors.Is(err, errEmptyBody) {
		level = slog.LevelWarn
	}
	h.logger.Log(r.Context(), level, "prediction failed", "error", err)
	writeError(w, http.StatusInternalServerError, err.Error())
}
