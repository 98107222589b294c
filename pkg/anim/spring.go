package anim

// SpringConfig parameterizes a spring simulation. Invalid inputs (any
// non-positive Mass, negative Stiffness/Damping/RestDelta/RestSpeed, or a
// MaxDeltaMs outside (0, 1]) make Step snap straight to the target instead
// of simulating.
type SpringConfig struct {
	Stiffness  float64 // >= 0
	Damping    float64 // >= 0
	Mass       float64 // > 0
	RestDelta  float64 // >= 0
	RestSpeed  float64 // >= 0
	MaxDeltaMs float64 // in (0, 1] seconds of clamp per step -- see Step
}

func (c SpringConfig) valid() bool {
	return c.Stiffness >= 0 && c.Damping >= 0 && c.Mass > 0 &&
		c.RestDelta >= 0 && c.RestSpeed >= 0 && c.MaxDeltaMs > 0 && c.MaxDeltaMs <= 1
}

// Spring steps a single scalar value toward Target using explicit Euler
// integration of a damped harmonic oscillator.
type Spring struct {
	Config   SpringConfig
	Value    float64
	Velocity float64
	Target   float64
}

// NewSpring returns a spring at rest at value, targeting target.
func NewSpring(cfg SpringConfig, value, target float64) *Spring {
	return &Spring{Config: cfg, Value: value, Velocity: 0, Target: target}
}

// Step advances the simulation by dtMs milliseconds using explicit Euler
// integration, clamping each sub-step to Config.MaxDeltaMs seconds so a long
// frame gap (e.g. after a stall) doesn't destabilize the integrator.
// Invalid configs snap Value straight to Target and zero Velocity.
func (s *Spring) Step(dtMs float64) {
	if !s.Config.valid() {
		s.Value = s.Target
		s.Velocity = 0
		return
	}
	remaining := dtMs / 1000.0
	if remaining < 0 {
		remaining = 0
	}
	maxStep := s.Config.MaxDeltaMs
	for remaining > 0 {
		dt := remaining
		if dt > maxStep {
			dt = maxStep
		}
		remaining -= dt

		displacement := s.Value - s.Target
		springForce := -s.Config.Stiffness * displacement
		dampingForce := -s.Config.Damping * s.Velocity
		accel := (springForce + dampingForce) / s.Config.Mass

		s.Velocity += accel * dt
		s.Value += s.Velocity * dt
	}
	if s.AtRest() {
		s.Value = s.Target
		s.Velocity = 0
	}
}

// AtRest reports whether the spring has settled: both the distance to
// target and the current speed are within their rest thresholds.
func (s *Spring) AtRest() bool {
	dist := s.Value - s.Target
	if dist < 0 {
		dist = -dist
	}
	speed := s.Velocity
	if speed < 0 {
		speed = -speed
	}
	return dist <= s.Config.RestDelta && speed <= s.Config.RestSpeed
}

// SetTarget retargets the spring in place, preserving its current value and
// velocity so a redirected animation doesn't jump.
func (s *Spring) SetTarget(target float64) {
	s.Target = target
}
