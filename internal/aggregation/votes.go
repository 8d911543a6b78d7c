package aggregation

import (
	"fmt"

	"github.com/tensorplex-labs/pate/internal/tensor"
)

// CountVotes tallies teacher votes per sample per class. predictions must
// have shape [teachers, groups, samples] with every label in [0, numClasses];
// label 0 is a teacher abstaining and contributes to no class. The result has
// shape [numClasses, groups, samples] where element (c, n, s) is the number
// of teachers that voted class c+1 for sample (n, s).
//
// All validation happens before the output tensor is allocated.
func (a *Aggregator) CountVotes(predictions *tensor.Int) (*tensor.Int, error) {
	if err := a.validatePredictions(predictions); err != nil {
		return nil, err
	}

	teachers, groups, samples := predictions.Dim(0), predictions.Dim(1), predictions.Dim(2)

	counts := tensor.NewInt(a.numClasses, groups, samples)
	for t := 0; t < teachers; t++ {
		for n := 0; n < groups; n++ {
			for s := 0; s < samples; s++ {
				label := predictions.At(t, n, s)
				if label == 0 {
					continue
				}
				cls := int(label) - 1
				counts.Set(counts.At(cls, n, s)+1, cls, n, s)
			}
		}
	}
	return counts, nil
}

func (a *Aggregator) validatePredictions(predictions *tensor.Int) error {
	if a.numClasses <= 0 {
		return fmt.Errorf("%w: number of classes must be positive, got %d", ErrInvalidArgument, a.numClasses)
	}
	if predictions == nil {
		return fmt.Errorf("%w: nil predictions", ErrInvalidShape)
	}
	if predictions.Rank() != 3 {
		return fmt.Errorf("%w: predictions must be rank 3 [teachers, groups, samples], got rank %d",
			ErrInvalidShape, predictions.Rank())
	}
	if predictions.Dim(0) == 0 {
		return fmt.Errorf("%w: need at least one teacher", ErrInvalidShape)
	}
	for _, label := range predictions.Data() {
		if label < 0 || int(label) > a.numClasses {
			return fmt.Errorf("%w: teacher label %d outside [0, %d]", ErrInvalidArgument, label, a.numClasses)
		}
	}
	return nil
}
