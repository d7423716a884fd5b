package nav

import (
	"errors"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/pedestrians/common"
)

var ErrNoRoute = errors.New("nav: no route found")

// Executor builds plans and drives them forward one tick at a time.
type Executor struct {
	query  SpatialQuery
	params Params
}

func NewExecutor(q SpatialQuery, p Params) *Executor {
	return &Executor{query: q, params: p.WithDefaults()}
}

func (e *Executor) Params() Params {
	return e.params
}

// SetParams swaps the tuning used by later calls.
func (e *Executor) SetParams(p Params) {
	e.params = p.WithDefaults()
}

// Build searches a route, simplifies it and turns every waypoint into a GoTo
// followed by a final Despawn. It returns ErrNoRoute when the search fails.
func (e *Executor) Build(from, goal cp.Vector) (*ActionPlan, error) {
	raw, ok := Search(e.query, from, goal, e.params)
	if !ok || len(raw) == 0 {
		return nil, ErrNoRoute
	}

	waypoints := raw
	if len(raw) >= 2 {
		waypoints = e.drivable(raw, Simplify(e.query, raw))
	}

	steps := make([]Action, 0, len(waypoints)+1)
	for _, p := range waypoints {
		steps = append(steps, GoTo(p))
	}
	steps = append(steps, Despawn())
	return NewActionPlan(steps...), nil
}

// drivable sweeps the inflated footprint over every simplified leg. A leg
// that fails is replaced by the grid points it skipped, thinned with the
// same sweep. Neighbouring grid points are always footprint-clear, so every
// leg of the result can be walked.
func (e *Executor) drivable(raw, simple []cp.Vector) []cp.Vector {
	margin := e.params.Footprint.Scale(math.Max(1, e.params.AvoidanceInflation))
	out := make([]cp.Vector, 0, len(raw))
	out = append(out, simple[0])
	from := 0
	for _, p := range simple[1:] {
		to := from + 1
		for to < len(raw) && raw[to] != p {
			to++
		}
		if to == len(raw) {
			return raw
		}
		if e.clearPath(raw[from], raw[to], margin) {
			out = append(out, p)
		} else {
			out = append(out, e.thin(raw[from:to+1], margin)[1:]...)
		}
		from = to
	}
	return out
}

// thin is the look-ahead pass of Simplify with a swept footprint instead of
// a ray.
func (e *Executor) thin(points []cp.Vector, shape Box) []cp.Vector {
	out := []cp.Vector{points[0]}
	for i := 1; i < len(points)-1; i++ {
		if !e.clearPath(out[len(out)-1], points[i+1], shape) {
			out = append(out, points[i])
		}
	}
	return append(out, points[len(points)-1])
}

// Progress reports what a single tick decided for a plan.
type Progress struct {
	Advanced bool
	Rebuild  bool
}

// Progress runs the stuck check and the advance check against the same
// position. A blocked leg holds the cursor where it is; the plan is about to
// be replaced.
func (e *Executor) Progress(plan *ActionPlan, pos cp.Vector) Progress {
	cur, ok := plan.Current()
	if !ok || cur.Kind != ActionGoTo {
		return Progress{}
	}

	out := Progress{Rebuild: e.legBlocked(cur, pos)}
	if !out.Rebuild && e.legComplete(plan, cur, pos) {
		out.Advanced = true
		plan.Next()
	}
	return out
}

func (e *Executor) legComplete(plan *ActionPlan, cur Action, pos cp.Vector) bool {
	arrived := pos.Distance(cur.Target) < e.params.ArrivalRadius
	if next, ok := plan.Peek(); ok && next.Kind == ActionGoTo {
		return arrived || e.clearPath(pos, next.Target, e.params.Footprint)
	}
	return arrived
}

// legBlocked sweeps the footprint over what is left of the current leg.
func (e *Executor) legBlocked(cur Action, pos cp.Vector) bool {
	return !e.clearPath(pos, cur.Target, e.params.Footprint)
}

func (e *Executor) clearPath(from, to cp.Vector, shape Box) bool {
	delta := to.Sub(from)
	dir := common.NormalizeOrZero(delta)
	if common.IsZero(dir) {
		return true
	}
	_, hit := e.query.CastShape(from, shape, dir, delta.Length(), StaticOnly())
	return !hit
}

// Effect is what executing the current action means for the agent.
type Effect struct {
	State   NavState
	Destroy bool
}

// Execute applies the current action. GoTo walks towards its target, Despawn
// exhausts the plan and asks for the agent to be destroyed, and an exhausted
// plan stands still.
func (e *Executor) Execute(plan *ActionPlan, pos cp.Vector) Effect {
	cur, ok := plan.Current()
	if !ok {
		return Effect{State: StandingState()}
	}
	switch cur.Kind {
	case ActionGoTo:
		return Effect{State: WalkingState(common.NormalizeOrZero(cur.Target.Sub(pos)))}
	case ActionDespawn:
		plan.Finish()
		return Effect{State: StandingState(), Destroy: true}
	}
	return Effect{State: StandingState()}
}
