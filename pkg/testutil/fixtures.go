package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Dasindu02/diapredict-main/internal/domain/model"
)

// SampleSurveyJSON is a fully specified survey record.
const SampleSurveyJSON = `{"Age":"30-34","Sex":"Female","BMI":27.5,"HighBP":"Yes","HighChol":"No",` +
	`"GenHlth":2,"PhysActivity":"Yes","Fruits":"No","Veggies":"Yes","DiffWalk":"No"}`

// SampleFeatures is the encoding of SampleSurveyJSON.
var SampleFeatures = model.FeatureVector{3, 0, 27.5, 1, 0, 2, 1, 0, 1, 0}

// NewPrediction builds a prediction for SampleFeatures with the given label.
func NewPrediction(t *testing.T, label int) *model.Prediction {
	t.Helper()
	p, err := model.NewPrediction(SampleFeatures, label)
	require.NoError(t, err)
	return p
}
