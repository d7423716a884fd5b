package prefabs

import (
	"math"

	"github.com/milk9111/pedestrians/nav"
)

const NavigationFile = "navigation.yaml"

// NavigationSpec is the on-disk form of nav.Params. Zero values keep the
// defaults.
type NavigationSpec struct {
	Footprint struct {
		HalfWidth  float64 `yaml:"half_width"`
		HalfHeight float64 `yaml:"half_height"`
	} `yaml:"footprint"`

	Search struct {
		StepSize      float64 `yaml:"step_size"`
		GoalTolerance float64 `yaml:"goal_tolerance"`
		MaxExpansions int     `yaml:"max_expansions"`
	} `yaml:"search"`

	Plan struct {
		ArrivalRadius float64 `yaml:"arrival_radius"`
	} `yaml:"plan"`

	Avoidance struct {
		Lookahead       float64  `yaml:"lookahead"`
		Inflation       float64  `yaml:"inflation"`
		Gain            float64  `yaml:"gain"`
		BrakeRatio      *float64 `yaml:"brake_ratio"`
		MinTimeOfImpact float64  `yaml:"min_time_of_impact"`
		RelativeEpsilon float64  `yaml:"relative_epsilon"`
	} `yaml:"avoidance"`

	PersonalSpace struct {
		Rays          int     `yaml:"rays"`
		ComfortRadius float64 `yaml:"comfort_radius"`
		Gain          float64 `yaml:"gain"`
		MinFalloff    float64 `yaml:"min_falloff"`
	} `yaml:"personal_space"`

	SnapAngleDegrees float64 `yaml:"snap_angle_degrees"`
}

func LoadNavigation(name string) (NavigationSpec, error) {
	if name == "" {
		name = NavigationFile
	}
	return LoadSpec[NavigationSpec](name)
}

func (s NavigationSpec) Params() nav.Params {
	p := nav.Params{
		Footprint: nav.Box{HalfW: s.Footprint.HalfWidth, HalfH: s.Footprint.HalfHeight},

		StepSize:      s.Search.StepSize,
		GoalTolerance: s.Search.GoalTolerance,
		MaxExpansions: s.Search.MaxExpansions,

		ArrivalRadius: s.Plan.ArrivalRadius,

		Lookahead:          s.Avoidance.Lookahead,
		AvoidanceInflation: s.Avoidance.Inflation,
		AvoidanceGain:      s.Avoidance.Gain,
		BrakeRatio:         -1,
		MinTimeOfImpact:    s.Avoidance.MinTimeOfImpact,
		RelativeEpsilon:    s.Avoidance.RelativeEpsilon,

		PersonalSpaceRays: s.PersonalSpace.Rays,
		ComfortRadius:     s.PersonalSpace.ComfortRadius,
		PersonalSpaceGain: s.PersonalSpace.Gain,
		MinFalloff:        s.PersonalSpace.MinFalloff,

		SnapAngle: s.SnapAngleDegrees * math.Pi / 180,
	}
	if s.Avoidance.BrakeRatio != nil {
		p.BrakeRatio = *s.Avoidance.BrakeRatio
	}
	return p.WithDefaults()
}
