package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dasindu02/diapredict-main/internal/application/dto"
	"github.com/Dasindu02/diapredict-main/internal/application/usecase"
	"github.com/Dasindu02/diapredict-main/internal/domain/model"
	"github.com/Dasindu02/diapredict-main/internal/domain/port"
	"github.com/Dasindu02/diapredict-main/internal/domain/valueobject"
	"github.com/Dasindu02/diapredict-main/pkg/testutil"
)

func TestGetPrediction_Execute(t *testing.T) {
	t.Run("returns the stored prediction", func(t *testing.T) {
		id := uuid.New()
		createdAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		stored := model.ReconstructPrediction(id, model.FeatureVector{3, 0, 27.5, 1, 0, 2, 1, 0, 1, 0}, 1, valueobject.RiskTierMedium, createdAt)

		repo := &mockPredictionRepository{
			findByIDFunc: func(_ context.Context, got uuid.UUID) (*model.Prediction, error) {
				assert.Equal(t, id, got)
				return stored, nil
			},
		}
		uc := usecase.NewGetPrediction(repo)

		resp, err := uc.Execute(context.Background(), dto.GetPredictionRequest{PredictionID: id})

		require.NoError(t, err)
		assert.Equal(t, id, resp.ID)
		assert.Equal(t, 1, resp.RiskLevel)
		assert.Equal(t, "MEDIUM", resp.RiskText)
		assert.Equal(t, []float64{3, 0, 27.5, 1, 0, 2, 1, 0, 1, 0}, resp.Features)
		assert.Equal(t, createdAt, resp.CreatedAt)
	})

	t.Run("nil result is not found", func(t *testing.T) {
		uc := usecase.NewGetPrediction(&mockPredictionRepository{})

		_, err := uc.Execute(context.Background(), dto.GetPredictionRequest{PredictionID: uuid.New()})

		require.Error(t, err)
		assert.ErrorIs(t, err, port.ErrPredictionNotFound)
	})

	t.Run("repository error is wrapped", func(t *testing.T) {
		repo := &mockPredictionRepository{
			findByIDFunc: func(_ context.Context, _ uuid.UUID) (*model.Prediction, error) {
				return nil, errors.New("connection refused")
			},
		}
		uc := usecase.NewGetPrediction(repo)

		_, err := uc.Execute(context.Background(), dto.GetPredictionRequest{PredictionID: uuid.New()})

		testutil.AssertErrorContains(t, err, "connection refused")
	})
}
