package dataio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tensorplex-labs/pate/internal/tensor"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	predictions, err := tensor.NewIntFromSlice([]int32{
		1, 2, 3,
		4, 5, 1,
		2, 2, 2,
		3, 1, 4,
	}, 2, 2, 3)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "predictions.json.zst")
	require.NoError(t, Save(path, predictions))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.True(t, loaded.Equal(predictions), "snapshot round trip changed the tensor")
}

func TestSaveRejectsNonRank3(t *testing.T) {
	rank2, err := tensor.NewIntFromSlice([]int32{1, 2, 3, 4}, 2, 2)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "bad.json.zst")
	require.Error(t, Save(path, rank2))
	require.Error(t, Save(path, nil))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json.zst"))
	require.Error(t, err)
}

func TestLoadRejectsCorruptPayload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.json.zst")
	require.NoError(t, os.WriteFile(path, []byte("not a zstd stream"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsInconsistentShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "predictions.json.zst")

	// Shape claims 3 labels but 4 are present.
	snap := PredictionSnapshot{Teachers: 3, Groups: 1, Samples: 1, Labels: []int32{1, 2, 3, 4}}
	require.NoError(t, saveSnapshot(path, &snap))

	_, err := Load(path)
	require.Error(t, err)
}
