package aggregation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tensorplex-labs/pate/internal/tensor"
)

func TestLabelsFromScoresArgmax(t *testing.T) {
	scores, err := tensor.NewFloatFromSlice([]float64{
		0.1, 0.7, 0.2,
		0.5, 0.3, 0.2,
	}, 2, 3)
	require.NoError(t, err)

	labels, err := LabelsFromScores(scores)
	require.NoError(t, err)

	assert.Equal(t, []int{2}, labels.Shape())
	assert.Equal(t, []int32{1, 0}, labels.Data())
}

func TestLabelsFromScoresTieBreaksToLowestIndex(t *testing.T) {
	scores, err := tensor.NewFloatFromSlice([]float64{0.4, 0.4, 0.2}, 1, 3)
	require.NoError(t, err)

	labels, err := LabelsFromScores(scores)
	require.NoError(t, err)
	assert.Equal(t, int32(0), labels.At(0))
}

func TestLabelsFromScoresDropsTrailingAxis(t *testing.T) {
	// Logits for 2 teachers x 3 samples x 4 classes.
	scores := tensor.NewFloat(2, 3, 4)
	scores.Set(10.5, 1, 2, 3)
	scores.Set(-3.0, 0, 0, 1)

	labels, err := LabelsFromScores(scores)
	require.NoError(t, err)

	assert.Equal(t, []int{2, 3}, labels.Shape())
	assert.Equal(t, int32(3), labels.At(1, 2))
	// All-zero score rows argmax to index 0.
	assert.Equal(t, int32(0), labels.At(0, 0))
}

func TestLabelsFromScoresNegativeLogits(t *testing.T) {
	scores, err := tensor.NewFloatFromSlice([]float64{-5.0, -1.5, -9.0}, 1, 3)
	require.NoError(t, err)

	labels, err := LabelsFromScores(scores)
	require.NoError(t, err)
	assert.Equal(t, int32(1), labels.At(0))
}

func TestLabelsFromScoresRejectsMissingClassAxis(t *testing.T) {
	scores, err := tensor.NewFloatFromSlice([]float64{1, 2, 3}, 3)
	require.NoError(t, err)

	_, err = LabelsFromScores(scores)
	require.ErrorIs(t, err, ErrInvalidShape)

	_, err = LabelsFromScores(nil)
	require.ErrorIs(t, err, ErrInvalidShape)
}
