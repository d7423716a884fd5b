package nav

import (
	"github.com/jakecoffman/cp"
)

// boxWorld is an in-memory SpatialQuery over axis-aligned boxes.
type boxWorld struct {
	bodies []*testBody
	nextID BodyID
}

type testBody struct {
	id     BodyID
	static bool
	pos    cp.Vector
	half   Box
	vel    cp.Vector
	dead   bool
}

func newBoxWorld() *boxWorld {
	return &boxWorld{nextID: 1}
}

// addWall adds a static rectangle given by two corners.
func (w *boxWorld) addWall(x0, y0, x1, y1 float64) BodyID {
	b := &testBody{
		id:     w.nextID,
		static: true,
		pos:    cp.Vector{X: (x0 + x1) / 2, Y: (y0 + y1) / 2},
		half:   Box{HalfW: (x1 - x0) / 2, HalfH: (y1 - y0) / 2},
	}
	w.nextID++
	w.bodies = append(w.bodies, b)
	return b.id
}

// addAgent adds a dynamic unit box.
func (w *boxWorld) addAgent(pos, vel cp.Vector) *testBody {
	b := &testBody{
		id:   w.nextID,
		pos:  pos,
		half: Box{HalfW: 0.5, HalfH: 0.5},
		vel:  vel,
	}
	w.nextID++
	w.bodies = append(w.bodies, b)
	return b
}

func (b *testBody) bounds() AABB {
	return BoxAt(b.pos, b.half)
}

func (w *boxWorld) CastShape(origin cp.Vector, shape Box, dir cp.Vector, maxDist float64, filter Filter) (ShapeHit, bool) {
	best := ShapeHit{}
	found := false
	for _, b := range w.bodies {
		if !filter.Accepts(b.id, b.static) {
			continue
		}
		t, ok := SweepBox(origin, shape, dir, maxDist, b.bounds())
		if ok && (!found || t < best.TimeOfImpact) {
			best = ShapeHit{Body: b.id, Static: b.static, TimeOfImpact: t}
			found = true
		}
	}
	return best, found
}

func (w *boxWorld) CastRay(origin, dir cp.Vector, maxDist float64, solid bool, filter Filter) (RayHit, bool) {
	best := RayHit{}
	found := false
	for _, b := range w.bodies {
		if !filter.Accepts(b.id, b.static) {
			continue
		}
		t, ok := SegmentHit(origin, dir, maxDist, b.bounds(), true)
		if ok && (!found || t < best.Distance) {
			best = RayHit{Body: b.id, Static: b.static, Distance: t}
			found = true
		}
	}
	return best, found
}

func (w *boxWorld) OverlapsAny(point cp.Vector, shape Box, filter Filter) bool {
	probe := BoxAt(point, shape)
	for _, b := range w.bodies {
		if filter.Accepts(b.id, b.static) && probe.Overlaps(b.bounds()) {
			return true
		}
	}
	return false
}

func (w *boxWorld) Motion(id BodyID) (cp.Vector, cp.Vector, bool) {
	for _, b := range w.bodies {
		if b.id == id && !b.dead {
			return b.pos, b.vel, true
		}
	}
	return cp.Vector{}, cp.Vector{}, false
}

func v(x, y float64) cp.Vector {
	return cp.Vector{X: x, Y: y}
}
