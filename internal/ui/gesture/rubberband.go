package gesture

// Rubber-band constants for edge overscroll. The dimension bounds the
// asymptotic travel (one full stage step); the coefficient controls how
// quickly resistance builds.
const (
	DefaultRubberBandDimension   = 1.0
	DefaultRubberBandCoefficient = 0.55
)

// RubberBand maps an overscroll distance x beyond a navigation edge to a
// resisted visual distance. Strictly increasing, sub-linear, and bounded
// above by dimension: pushing harder yields diminishing travel.
func RubberBand(x, dimension, coefficient float64) float64 {
	if x <= 0 {
		return 0
	}
	return (x * dimension * coefficient) / (dimension + coefficient*x)
}
