package gesture

import (
	"math"
	"testing"
)

func TestRubberBand_ZeroAndNegative(t *testing.T) {
	if got := RubberBand(0, 1, 0.55); got != 0 {
		t.Fatalf("RubberBand(0) = %v, want 0", got)
	}
	if got := RubberBand(-3, 1, 0.55); got != 0 {
		t.Fatalf("RubberBand(-3) = %v, want 0", got)
	}
}

func TestRubberBand_KnownValue(t *testing.T) {
	// f(1, 1, 0.55) = 0.55 / 1.55
	got := RubberBand(1, 1, 0.55)
	want := 0.55 / 1.55
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("RubberBand(1) = %v, want %v", got, want)
	}
}

func TestRubberBand_SubLinearAndMonotonic(t *testing.T) {
	prev := 0.0
	for x := 0.1; x < 50; x += 0.1 {
		got := RubberBand(x, 1, 0.55)
		if got >= x {
			t.Fatalf("RubberBand(%v) = %v, must stay below input", x, got)
		}
		if got <= prev {
			t.Fatalf("RubberBand(%v) = %v, must be strictly increasing (prev %v)", x, got, prev)
		}
		prev = got
	}
}

func TestRubberBand_BoundedByDimension(t *testing.T) {
	for _, x := range []float64{10, 100, 1e6} {
		if got := RubberBand(x, 1, 0.55); got >= 1 {
			t.Fatalf("RubberBand(%v) = %v, must stay below the dimension", x, got)
		}
	}
}

func TestSpring_ConvergesToRest(t *testing.T) {
	s := spring{
		position:  500,
		velocity:  0,
		stiffness: DefaultSpringStiffness,
		damping:   DefaultSpringDamping,
		mass:      DefaultSpringMass,
	}
	const dt = 1.0 / 60.0
	for i := 0; i < 600; i++ {
		if s.atRest() {
			return
		}
		s.step(dt)
	}
	t.Fatalf("spring did not come to rest: pos=%v vel=%v", s.position, s.velocity)
}
