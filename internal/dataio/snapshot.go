// Package dataio reads and writes teacher prediction snapshots so the
// aggregation step can run standalone from inference.
package dataio

import (
	"fmt"
	"io"
	"os"

	"github.com/bytedance/sonic"
	"github.com/klauspost/compress/zstd"

	"github.com/tensorplex-labs/pate/internal/tensor"
)

// PredictionSnapshot is the on-disk form of a [teachers, groups, samples]
// prediction tensor: zstd-compressed JSON with the labels flattened in
// row-major order, teacher axis outermost.
type PredictionSnapshot struct {
	Teachers int     `json:"teachers"`
	Groups   int     `json:"groups"`
	Samples  int     `json:"samples"`
	Labels   []int32 `json:"labels"`
}

// Save writes predictions to path.
func Save(path string, predictions *tensor.Int) error {
	if predictions == nil || predictions.Rank() != 3 {
		return fmt.Errorf("dataio: predictions must be a rank 3 tensor")
	}

	snap := PredictionSnapshot{
		Teachers: predictions.Dim(0),
		Groups:   predictions.Dim(1),
		Samples:  predictions.Dim(2),
		Labels:   predictions.Data(),
	}
	return saveSnapshot(path, &snap)
}

func saveSnapshot(path string, snap *PredictionSnapshot) error {
	payload, err := sonic.Marshal(snap)
	if err != nil {
		return fmt.Errorf("dataio: failed to marshal snapshot: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dataio: failed to create %s: %w", path, err)
	}

	w, err := zstd.NewWriter(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("dataio: failed to create zstd writer: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		w.Close()
		f.Close()
		return fmt.Errorf("dataio: failed to write snapshot: %w", err)
	}
	if err := w.Close(); err != nil {
		f.Close()
		return fmt.Errorf("dataio: failed to flush snapshot: %w", err)
	}
	return f.Close()
}

// Load reads a prediction snapshot from path.
func Load(path string) (*tensor.Int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataio: failed to open %s: %w", path, err)
	}
	defer f.Close()

	r, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("dataio: failed to create zstd reader: %w", err)
	}
	defer r.Close()

	payload, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("dataio: failed to decompress %s: %w", path, err)
	}

	var snap PredictionSnapshot
	if err := sonic.Unmarshal(payload, &snap); err != nil {
		return nil, fmt.Errorf("dataio: failed to unmarshal snapshot: %w", err)
	}

	if snap.Teachers < 0 || snap.Groups < 0 || snap.Samples < 0 {
		return nil, fmt.Errorf("dataio: snapshot has negative dimensions [%d, %d, %d]", snap.Teachers, snap.Groups, snap.Samples)
	}
	predictions, err := tensor.NewIntFromSlice(snap.Labels, snap.Teachers, snap.Groups, snap.Samples)
	if err != nil {
		return nil, fmt.Errorf("dataio: snapshot is inconsistent: %w", err)
	}
	return predictions, nil
}
