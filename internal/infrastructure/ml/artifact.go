package ml

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/Dasindu02/diapredict-main/internal/domain/model"
)

// Supported artifact formats.
const (
	FormatTreeEnsemble = "tree_ensemble"
	FormatLinear       = "linear"
)

// ErrInvalidArtifact is wrapped by every artifact validation failure.
var ErrInvalidArtifact = errors.New("invalid model artifact")

// artifact is the on-disk JSON form of a trained classifier.
type artifact struct {
	Format       string      `json:"format"`
	FeatureNames []string    `json:"feature_names"`
	Classes      []int       `json:"classes"`
	Trees        []treeSpec  `json:"trees,omitempty"`
	Coefficients [][]float64 `json:"coefficients,omitempty"`
	Intercepts   []float64   `json:"intercepts,omitempty"`
}

type treeSpec struct {
	Nodes []nodeSpec `json:"nodes"`
}

// nodeSpec is a split when Feature is set and a leaf when Value is set.
type nodeSpec struct {
	Feature   *int      `json:"feature,omitempty"`
	Threshold float64   `json:"threshold,omitempty"`
	Left      int       `json:"left,omitempty"`
	Right     int       `json:"right,omitempty"`
	Value     []float64 `json:"value,omitempty"`
}

// classifier maps a validated feature vector to an index into classes.
type classifier interface {
	classify(x []float64) int
}

// Model is a loaded classifier. It is read-only after Load and safe for
// concurrent use.
type Model struct {
	format  string
	classes []int
	clf     classifier
}

// Load reads and validates the artifact at path.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return m, nil
}

// Parse decodes and validates an artifact held in memory.
func Parse(data []byte) (*Model, error) {
	var a artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArtifact, err)
	}

	if err := validateHeader(a); err != nil {
		return nil, err
	}

	var clf classifier
	var err error
	switch a.Format {
	case FormatTreeEnsemble:
		clf, err = newTreeEnsemble(a.Trees, len(a.Classes))
	case FormatLinear:
		clf, err = newLinear(a.Coefficients, a.Intercepts, len(a.Classes))
	default:
		err = fmt.Errorf("%w: unknown format %q", ErrInvalidArtifact, a.Format)
	}
	if err != nil {
		return nil, err
	}

	return &Model{format: a.Format, classes: a.Classes, clf: clf}, nil
}

func validateHeader(a artifact) error {
	if len(a.FeatureNames) != model.FeatureCount {
		return fmt.Errorf("%w: expected %d feature names, got %d", ErrInvalidArtifact, model.FeatureCount, len(a.FeatureNames))
	}
	for i, name := range a.FeatureNames {
		if name != model.FeatureNames[i] {
			return fmt.Errorf("%w: feature %d is %q, want %q", ErrInvalidArtifact, i, name, model.FeatureNames[i])
		}
	}
	if len(a.Classes) < 2 {
		return fmt.Errorf("%w: at least two classes required, got %d", ErrInvalidArtifact, len(a.Classes))
	}
	return nil
}

// Format returns the artifact format the model was loaded from.
func (m *Model) Format() string { return m.format }

// Classes returns the class labels the model can emit.
func (m *Model) Classes() []int {
	out := make([]int, len(m.classes))
	copy(out, m.classes)
	return out
}

// Predict returns the class label for one feature vector.
func (m *Model) Predict(ctx context.Context, features model.FeatureVector) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := features.Validate(); err != nil {
		return 0, fmt.Errorf("invalid input: %w", err)
	}
	return m.classes[m.clf.classify(features.Slice())], nil
}

// argmax returns the first index holding the largest value.
func argmax(values []float64) int {
	best := 0
	for i := 1; i < len(values); i++ {
		if values[i] > values[best] {
			best = i
		}
	}
	return best
}
