package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Dasindu02/diapredict-main/internal/domain/model"
	"github.com/Dasindu02/diapredict-main/internal/domain/valueobject"
	"github.com/Dasindu02/diapredict-main/pkg/postgres"
)

// PredictionRepository implements port.PredictionRepository using PostgreSQL.
type PredictionRepository struct {
	db postgres.Querier
}

// NewPredictionRepository creates a new PostgreSQL-backed prediction repository.
func NewPredictionRepository(db postgres.Querier) *PredictionRepository {
	return &PredictionRepository{db: db}
}

// Save appends a prediction to the audit log. Saving the same prediction
// twice is a no-op.
func (r *PredictionRepository) Save(ctx context.Context, prediction *model.Prediction) error {
	query := `
		INSERT INTO predictions (id, risk_level, risk_text, features, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query,
		prediction.ID(),
		prediction.Label(),
		prediction.Tier().String(),
		prediction.Features().Slice(),
		prediction.CreatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to save prediction: %w", err)
	}

	return nil
}

// FindByID retrieves a prediction by its unique identifier. It returns
// (nil, nil) when no row matches.
func (r *PredictionRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Prediction, error) {
	query := `
		SELECT id, risk_level, risk_text, features, created_at
		FROM predictions
		WHERE id = $1
	`

	var (
		predictionID uuid.UUID
		riskLevel    int
		riskText     string
		features     []float64
		createdAt    time.Time
	)

	err := r.db.QueryRow(ctx, query, id).Scan(&predictionID, &riskLevel, &riskText, &features, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan prediction: %w", err)
	}

	tier, err := valueobject.RiskTierFromString(riskText)
	if err != nil {
		return nil, fmt.Errorf("failed to parse risk tier: %w", err)
	}

	vector, err := model.FeatureVectorFromSlice(features)
	if err != nil {
		return nil, fmt.Errorf("failed to parse features: %w", err)
	}

	return model.ReconstructPrediction(predictionID, vector, riskLevel, tier, createdAt.UTC()), nil
}
