package ml

import (
	"fmt"

	"github.com/Dasindu02/diapredict-main/internal/domain/model"
)

// linear is a logistic regression. A single coefficient row is a binary
// model; otherwise there is one row per class.
type linear struct {
	weights    [][]float64
	intercepts []float64
}

func newLinear(coefficients [][]float64, intercepts []float64, numClasses int) (*linear, error) {
	rows := len(coefficients)
	switch {
	case rows == 1 && numClasses == 2:
	case rows == numClasses:
	default:
		return nil, fmt.Errorf("%w: %d coefficient rows for %d classes", ErrInvalidArtifact, rows, numClasses)
	}
	if len(intercepts) != rows {
		return nil, fmt.Errorf("%w: %d intercepts for %d coefficient rows", ErrInvalidArtifact, len(intercepts), rows)
	}
	for i, row := range coefficients {
		if len(row) != model.FeatureCount {
			return nil, fmt.Errorf("%w: coefficient row %d has %d weights, want %d", ErrInvalidArtifact, i, len(row), model.FeatureCount)
		}
	}
	return &linear{weights: coefficients, intercepts: intercepts}, nil
}

func (l *linear) classify(x []float64) int {
	scores := make([]float64, len(l.weights))
	for r, row := range l.weights {
		s := l.intercepts[r]
		for i, w := range row {
			s += w * x[i]
		}
		scores[r] = s
	}

	if len(scores) == 1 {
		if scores[0] > 0 {
			return 1
		}
		return 0
	}
	return argmax(scores)
}
