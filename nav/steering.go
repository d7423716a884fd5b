package nav

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/pedestrians/common"
)

// BodyLookup resolves a body reported by a query to its current motion.
// ok is false when the body no longer exists; the steering treats such a
// hit as no obstruction.
type BodyLookup interface {
	Motion(id BodyID) (pos, vel cp.Vector, ok bool)
}

// SteerInput is one agent's view of the tick.
type SteerInput struct {
	Self     BodyID
	Position cp.Vector
	Velocity cp.Vector
	Intended cp.Vector
}

// Steering is the combined result. Desired is the normalized sum of the
// three terms; Heading is what the physics side should push along.
type Steering struct {
	Desired       cp.Vector
	Heading       cp.Vector
	Target        cp.Vector
	Avoidance     cp.Vector
	PersonalSpace cp.Vector
	Snapped       bool
}

// Steerer combines the planned direction with collision avoidance and
// personal space.
type Steerer struct {
	query  SpatialQuery
	bodies BodyLookup
	params Params
}

func NewSteerer(q SpatialQuery, bodies BodyLookup, p Params) *Steerer {
	return &Steerer{query: q, bodies: bodies, params: p.WithDefaults()}
}

func (s *Steerer) SetParams(p Params) {
	s.params = p.WithDefaults()
}

// Steer computes the final direction for one agent. A zero intended
// direction yields a zero result.
func (s *Steerer) Steer(in SteerInput) Steering {
	dir := common.NormalizeOrZero(in.Intended)
	if common.IsZero(dir) {
		return Steering{}
	}

	out := Steering{
		Target:        dir,
		Avoidance:     s.avoidance(in, dir),
		PersonalSpace: s.personalSpace(in, dir),
	}
	out.Desired = common.NormalizeOrZero(out.Target.Add(out.Avoidance).Add(out.PersonalSpace))
	out.Heading, out.Snapped = s.snap(out.Desired, in.Velocity)
	return out
}

// avoidance sweeps an inflated footprint ahead and, on meeting another
// moving body, deflects sideways with a strength that grows as the time to
// impact shrinks.
func (s *Steerer) avoidance(in SteerInput, dir cp.Vector) cp.Vector {
	p := s.params
	hit, ok := s.query.CastShape(in.Position, p.Footprint.Scale(p.AvoidanceInflation), dir, p.Lookahead, DynamicExcluding(in.Self))
	if !ok {
		return cp.Vector{}
	}
	otherPos, otherVel, alive := s.motion(hit.Body)
	if !alive {
		return cp.Vector{}
	}

	deflect := deflection(dir, otherPos.Sub(in.Position), otherVel.Sub(in.Velocity), p.RelativeEpsilon)
	strength := p.AvoidanceGain / math.Max(hit.TimeOfImpact, p.MinTimeOfImpact)
	return deflect.Mult(strength).Sub(dir.Mult(strength * p.BrakeRatio))
}

// deflection picks the side to swerve to: away from where the obstacle is
// heading across our path, else away from the side it sits on, else right.
func deflection(dir, relPos, relVel cp.Vector, eps float64) cp.Vector {
	left := common.LeftOf(dir)
	if side := common.Sign(relVel.Dot(left), eps); side != 0 {
		return left.Mult(-side)
	}
	if side := common.Sign(relPos.Dot(left), eps); side != 0 {
		return left.Mult(-side)
	}
	return common.RightOf(dir)
}

// personalSpace casts a ring of short rays starting at the heading and
// pushes back along every ray that meets a body inside the comfort radius.
func (s *Steerer) personalSpace(in SteerInput, dir cp.Vector) cp.Vector {
	p := s.params
	var sum cp.Vector
	step := 2 * math.Pi / float64(p.PersonalSpaceRays)
	for i := 0; i < p.PersonalSpaceRays; i++ {
		ray := common.Rotate(dir, step*float64(i))
		hit, ok := s.query.CastRay(in.Position, ray, p.ComfortRadius, true, AllExcluding(in.Self))
		if !ok || hit.Distance >= p.ComfortRadius {
			continue
		}
		if !hit.Static {
			if _, _, alive := s.motion(hit.Body); !alive {
				continue
			}
		}
		gap := hit.Distance - p.ComfortRadius
		push := p.PersonalSpaceGain / math.Max(gap*gap, p.MinFalloff)
		sum = sum.Sub(ray.Mult(push))
	}
	return sum
}

// snap amplifies large corrections: when the desired heading differs from
// the current direction of travel by more than SnapAngle, the heading is
// pushed past the desired one instead of blended towards it.
func (s *Steerer) snap(desired, velocity cp.Vector) (cp.Vector, bool) {
	current := common.NormalizeOrZero(velocity)
	if common.IsZero(current) || common.IsZero(desired) {
		return desired, false
	}
	if common.AngleBetween(desired, current) <= s.params.SnapAngle {
		return desired, false
	}
	return common.NormalizeOrZero(desired.Mult(2).Sub(current)), true
}

func (s *Steerer) motion(id BodyID) (cp.Vector, cp.Vector, bool) {
	if s.bodies == nil || id == NoBody {
		return cp.Vector{}, cp.Vector{}, false
	}
	return s.bodies.Motion(id)
}
