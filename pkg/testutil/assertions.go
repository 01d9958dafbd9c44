package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dasindu02/diapredict-main/internal/domain/model"
)

// AssertErrorContains checks that err contains the expected substring.
func AssertErrorContains(t *testing.T, err error, expected string) {
	t.Helper()
	require.Error(t, err)
	assert.Contains(t, err.Error(), expected)
}

// AssertPredictionEqual compares two predictions field by field. Timestamps
// are compared at microsecond precision, the resolution PostgreSQL stores.
func AssertPredictionEqual(t *testing.T, want, got *model.Prediction) {
	t.Helper()
	require.NotNil(t, got)
	assert.Equal(t, want.ID(), got.ID())
	assert.Equal(t, want.Label(), got.Label())
	assert.True(t, want.Tier().Equal(got.Tier()), "tier: want %s, got %s", want.Tier(), got.Tier())
	assert.Equal(t, want.Features(), got.Features())
	assert.WithinDuration(t, want.CreatedAt(), got.CreatedAt(), time.Microsecond)
}
