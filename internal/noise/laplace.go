// Package noise generates calibrated random noise for private aggregation.
package noise

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Laplace draws zero-mean Laplace noise with a fixed scale. The zero value is
// not usable; construct with NewLaplace.
type Laplace struct {
	dist distuv.Laplace
}

// NewLaplace returns a sampler for Laplace(0, scale) noise. src may be nil,
// in which case the process-wide random source is used.
func NewLaplace(scale float64, src rand.Source) (*Laplace, error) {
	if scale <= 0 {
		return nil, fmt.Errorf("noise: laplace scale must be positive, got %v", scale)
	}
	return &Laplace{dist: distuv.Laplace{Mu: 0, Scale: scale, Src: src}}, nil
}

// Scale returns the configured scale parameter b.
func (l *Laplace) Scale() float64 { return l.dist.Scale }

// Rand returns one independent draw.
func (l *Laplace) Rand() float64 { return l.dist.Rand() }

// Perturb adds an independent draw to every element of dst, in order.
func (l *Laplace) Perturb(dst []float64) {
	for i := range dst {
		dst[i] += l.dist.Rand()
	}
}
