package gesture

import "math"

// Spring constants for the settle animation, in pixel space.
const (
	DefaultSpringStiffness = 300.0
	DefaultSpringDamping   = 25.0
	DefaultSpringMass      = 1.0

	// Rest thresholds: below both, the settle snaps to the target.
	settleRestDistance = 0.5  // px
	settleRestVelocity = 10.0 // px/s
)

// spring is a damped spring integrated with semi-implicit Euler. Position
// is the displacement from the settle target in pixels.
type spring struct {
	position  float64
	velocity  float64
	stiffness float64
	damping   float64
	mass      float64
}

func (s *spring) step(dt float64) {
	accel := (-s.stiffness*s.position - s.damping*s.velocity) / s.mass
	s.velocity += accel * dt
	s.position += s.velocity * dt
}

func (s *spring) atRest() bool {
	return math.Abs(s.position) < settleRestDistance && math.Abs(s.velocity) < settleRestVelocity
}
