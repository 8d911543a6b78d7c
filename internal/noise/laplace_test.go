package noise

import (
	"math"
	"math/rand/v2"
	"testing"
)

func TestNewLaplaceRejectsNonPositiveScale(t *testing.T) {
	if _, err := NewLaplace(0, nil); err == nil {
		t.Fatalf("expected error for zero scale")
	}
	if _, err := NewLaplace(-1.5, nil); err == nil {
		t.Fatalf("expected error for negative scale")
	}
}

func TestLaplaceSeededReproducibility(t *testing.T) {
	draw := func() []float64 {
		l, err := NewLaplace(2.0, rand.NewPCG(7, 11))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out := make([]float64, 16)
		l.Perturb(out)
		return out
	}

	a, b := draw(), draw()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed produced different draws at %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestLaplaceEmpiricalMoments(t *testing.T) {
	const (
		scale = 1.5
		n     = 200000
	)
	l, err := NewLaplace(scale, rand.NewPCG(1, 2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var sum, sumAbs float64
	for i := 0; i < n; i++ {
		x := l.Rand()
		sum += x
		sumAbs += math.Abs(x)
	}

	mean := sum / n
	if math.Abs(mean) > 0.05 {
		t.Fatalf("empirical mean %v too far from 0", mean)
	}
	// E|X| = scale for Laplace(0, scale).
	meanAbs := sumAbs / n
	if math.Abs(meanAbs-scale) > 0.05 {
		t.Fatalf("empirical mean absolute deviation %v too far from %v", meanAbs, scale)
	}
}

func TestPerturbAddsToExistingValues(t *testing.T) {
	l, err := NewLaplace(1e-12, rand.NewPCG(3, 4))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dst := []float64{10, 20, 30}
	l.Perturb(dst)
	want := []float64{10, 20, 30}
	for i := range dst {
		if math.Abs(dst[i]-want[i]) > 1e-6 {
			t.Fatalf("negligible noise moved element %d from %v to %v", i, want[i], dst[i])
		}
	}
}
