// Package aggregation turns per-teacher class predictions into consensus
// labels. It implements the aggregation step of Private Aggregation of
// Teacher Ensembles (PATE): a deterministic plurality vote, and a
// report-noisy-max variant that adds independent Laplace noise to each
// class's vote count before selecting the winner, so that a student model
// can be trained without exposing any single teacher's decisions.
package aggregation

import (
	"fmt"
	"math/rand/v2"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/tensorplex-labs/pate/internal/noise"
	"github.com/tensorplex-labs/pate/internal/tensor"
)

// Aggregator holds the label-space size and noise configuration shared by
// the aggregation modes.
type Aggregator struct {
	numClasses int
	lapScale   float64
	src        rand.Source
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithNumClasses sets the number of valid classes. Teacher labels then range
// over 1..numClasses, with 0 still meaning "no vote".
func WithNumClasses(numClasses int) Option {
	return func(a *Aggregator) {
		a.numClasses = numClasses
	}
}

// WithLapScale sets the Laplace scale b used by NoisyMax. The privacy cost
// of each noisy-max query grows as 1/b.
func WithLapScale(lapScale float64) Option {
	return func(a *Aggregator) {
		a.lapScale = lapScale
	}
}

// WithSource sets the random source used for noise draws. A nil source
// selects the process-wide one.
func WithSource(src rand.Source) Option {
	return func(a *Aggregator) {
		a.src = src
	}
}

// New returns an Aggregator with the published defaults applied.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{
		numClasses: DefaultNumClasses,
		lapScale:   DefaultLapScale,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// NumClasses returns the configured label-space size.
func (a *Aggregator) NumClasses() int { return a.numClasses }

// MostFrequent selects, for every sample, the class with the highest raw
// vote count. predictions has shape [teachers, groups, samples]; the result
// has shape [groups, samples] with labels in 1..numClasses. Ties go to the
// lowest class index. Identical input always yields identical output.
func (a *Aggregator) MostFrequent(predictions *tensor.Int) (*tensor.Int, error) {
	counts, err := a.CountVotes(predictions)
	if err != nil {
		return nil, err
	}

	groups, samples := counts.Dim(1), counts.Dim(2)
	labels := tensor.NewInt(groups, samples)
	for n := 0; n < groups; n++ {
		for s := 0; s < samples; s++ {
			labels.Set(int32(argmaxClass(counts, n, s))+1, n, s)
		}
	}
	return labels, nil
}

// NoisyMax selects, for every sample, the class whose vote count is highest
// after adding one independent Laplace(0, lapScale) draw per class. The
// result has shape [groups, samples] with labels in 1..numClasses. When
// returnCleanVotes is set, the pre-noise vote counts are returned alongside
// the labels so an external accountant can compute the privacy spend; the
// clean counts are snapshotted before any noise is drawn.
//
// A non-positive lapScale is rejected with ErrInvalidArgument before any
// noise is drawn or output allocated.
func (a *Aggregator) NoisyMax(predictions *tensor.Int, returnCleanVotes bool) (*tensor.Int, *tensor.Int, error) {
	if a.lapScale <= 0 {
		return nil, nil, fmt.Errorf("%w: lap scale must be positive, got %v", ErrInvalidArgument, a.lapScale)
	}

	counts, err := a.CountVotes(predictions)
	if err != nil {
		return nil, nil, err
	}

	lap, err := noise.NewLaplace(a.lapScale, a.src)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	groups, samples := counts.Dim(1), counts.Dim(2)

	// One row per sample, one column per class. Rows are filled with the
	// clean counts, then perturbed in place so each (class, sample) pair
	// receives its own draw.
	noisy := mat.NewDense(max(groups*samples, 1), a.numClasses, nil)
	labels := tensor.NewInt(groups, samples)
	for n := 0; n < groups; n++ {
		if n%progressInterval == 0 {
			log.Debug().Msgf("aggregating vote groups %d to %d", n, min(n+progressInterval, groups)-1)
		}
		for s := 0; s < samples; s++ {
			row := noisy.RawRowView(n*samples + s)
			for c := 0; c < a.numClasses; c++ {
				row[c] = float64(counts.At(c, n, s))
			}
			lap.Perturb(row)
			labels.Set(int32(floats.MaxIdx(row))+1, n, s)
		}
	}

	if !returnCleanVotes {
		return labels, nil, nil
	}
	return labels, counts, nil
}

// argmaxClass returns the zero-based class with the highest count for sample
// (n, s), preferring the lowest index on ties.
func argmaxClass(counts *tensor.Int, n, s int) int {
	best := 0
	for c := 1; c < counts.Dim(0); c++ {
		if counts.At(c, n, s) > counts.At(best, n, s) {
			best = c
		}
	}
	return best
}

// CountVotes tallies votes with the default label space. See
// Aggregator.CountVotes.
func CountVotes(predictions *tensor.Int) (*tensor.Int, error) {
	return New().CountVotes(predictions)
}

// MostFrequent aggregates with the default label space. See
// Aggregator.MostFrequent.
func MostFrequent(predictions *tensor.Int) (*tensor.Int, error) {
	return New().MostFrequent(predictions)
}

// NoisyMax aggregates with the default label space, the given Laplace scale
// and the given random source. See Aggregator.NoisyMax.
func NoisyMax(predictions *tensor.Int, lapScale float64, returnCleanVotes bool, src rand.Source) (*tensor.Int, *tensor.Int, error) {
	return New(WithLapScale(lapScale), WithSource(src)).NoisyMax(predictions, returnCleanVotes)
}
