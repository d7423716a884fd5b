package nav

import "math"

// Params tunes search, plan execution and steering.
type Params struct {
	// Footprint is the agent's collision box, used for occupancy and for
	// every swept-shape test.
	Footprint Box

	// Search
	StepSize      float64 // grid cell size (1.0)
	GoalTolerance float64 // popped node counts as goal within this distance (0.8)
	MaxExpansions int     // search gives up after this many expansions

	// Plan execution
	ArrivalRadius float64 // GoTo completes within this distance (0.5)

	// Collision avoidance
	Lookahead          float64 // forward cast distance
	AvoidanceInflation float64 // footprint scale for the forward cast
	AvoidanceGain      float64 // deflection strength at unit time-of-impact
	BrakeRatio         float64 // share of the strength pushed back along the heading
	MinTimeOfImpact    float64 // clamps the 1/toi falloff
	RelativeEpsilon    float64 // below this a relative component counts as zero

	// Personal space
	PersonalSpaceRays int
	ComfortRadius     float64
	PersonalSpaceGain float64
	MinFalloff        float64 // clamps the 1/(d-comfort)^2 falloff

	// SnapAngle is the heading change, in radians, above which the correction
	// is amplified instead of passed through.
	SnapAngle float64
}

// DefaultParams returns the tuning used when no configuration overrides it.
func DefaultParams() Params {
	return Params{
		Footprint: Box{HalfW: 0.5, HalfH: 0.5},

		StepSize:      1.0,
		GoalTolerance: 0.8,
		MaxExpansions: 20000,

		ArrivalRadius: 0.5,

		Lookahead:          3.0,
		AvoidanceInflation: 1.2,
		AvoidanceGain:      1.5,
		BrakeRatio:         0.5,
		MinTimeOfImpact:    0.1,
		RelativeEpsilon:    1e-3,

		PersonalSpaceRays: 8,
		ComfortRadius:     1.5,
		PersonalSpaceGain: 0.05,
		MinFalloff:        0.25,

		SnapAngle: math.Pi / 4,
	}
}

// WithDefaults fills zero fields from DefaultParams.
func (p Params) WithDefaults() Params {
	d := DefaultParams()
	if p.Footprint.HalfW <= 0 || p.Footprint.HalfH <= 0 {
		p.Footprint = d.Footprint
	}
	if p.StepSize <= 0 {
		p.StepSize = d.StepSize
	}
	if p.GoalTolerance <= 0 {
		p.GoalTolerance = d.GoalTolerance
	}
	if p.MaxExpansions <= 0 {
		p.MaxExpansions = d.MaxExpansions
	}
	if p.ArrivalRadius <= 0 {
		p.ArrivalRadius = d.ArrivalRadius
	}
	if p.Lookahead <= 0 {
		p.Lookahead = d.Lookahead
	}
	if p.AvoidanceInflation <= 0 {
		p.AvoidanceInflation = d.AvoidanceInflation
	}
	if p.AvoidanceGain <= 0 {
		p.AvoidanceGain = d.AvoidanceGain
	}
	if p.BrakeRatio < 0 {
		p.BrakeRatio = d.BrakeRatio
	}
	if p.MinTimeOfImpact <= 0 {
		p.MinTimeOfImpact = d.MinTimeOfImpact
	}
	if p.RelativeEpsilon <= 0 {
		p.RelativeEpsilon = d.RelativeEpsilon
	}
	if p.PersonalSpaceRays <= 0 {
		p.PersonalSpaceRays = d.PersonalSpaceRays
	}
	if p.ComfortRadius <= 0 {
		p.ComfortRadius = d.ComfortRadius
	}
	if p.PersonalSpaceGain <= 0 {
		p.PersonalSpaceGain = d.PersonalSpaceGain
	}
	if p.MinFalloff <= 0 {
		p.MinFalloff = d.MinFalloff
	}
	if p.SnapAngle <= 0 {
		p.SnapAngle = d.SnapAngle
	}
	return p
}
