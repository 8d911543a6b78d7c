package aggregation

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/tensorplex-labs/pate/internal/tensor"
)

// LabelsFromScores converts per-class scores (softmax outputs or logits) on
// the trailing axis into discrete class indices. The result drops the trailing
// axis and holds the zero-based index of the maximum score; ties go to the
// lowest index. Behavior on an all-NaN score vector is undefined.
func LabelsFromScores(scores *tensor.Float) (*tensor.Int, error) {
	if scores == nil || scores.Rank() < 2 {
		return nil, fmt.Errorf("%w: scores need a class axis plus at least one sample axis", ErrInvalidShape)
	}

	shape := scores.Shape()
	numClasses := shape[len(shape)-1]
	if numClasses == 0 {
		return nil, fmt.Errorf("%w: trailing class axis is empty", ErrInvalidShape)
	}

	labels := tensor.NewInt(shape[:len(shape)-1]...)

	data := scores.Data()
	out := labels.Data()
	for i := range out {
		row := data[i*numClasses : (i+1)*numClasses]
		out[i] = int32(floats.MaxIdx(row))
	}
	return labels, nil
}
