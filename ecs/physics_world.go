package ecs

import (
	"log"
	"math"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/pedestrians/nav"
)

const (
	collisionTypeStatic cp.CollisionType = iota + 1
	collisionTypePerson
)

// PhysicsConfig tunes the Chipmunk space.
type PhysicsConfig struct {
	// Damping is the fraction of velocity kept after one second.
	Damping float64
}

func DefaultPhysicsConfig() PhysicsConfig {
	return PhysicsConfig{Damping: 0.37}
}

// PhysicsWorld owns the Chipmunk space: static building boxes and one
// dynamic box per person. It answers nav.SpatialQuery and nav.BodyLookup
// from the space's current state and never moves anything while doing so.
type PhysicsWorld struct {
	space         *cp.Space
	handlersReady bool

	nextID  nav.BodyID
	bodies  map[nav.BodyID]*physicsBody
	byShape map[*cp.Shape]nav.BodyID
	byOwner map[Entity]nav.BodyID

	// alive hides bodies whose owner was destroyed but not yet pruned.
	alive func(Entity) bool

	contacts int
}

type physicsBody struct {
	id     nav.BodyID
	owner  Entity
	static bool
	body   *cp.Body
	shape  *cp.Shape
	half   nav.Box
	// bounds is fixed for static boxes.
	bounds nav.AABB
}

func NewPhysicsWorld(cfg PhysicsConfig) *PhysicsWorld {
	def := DefaultPhysicsConfig()
	if cfg.Damping <= 0 || cfg.Damping > 1 {
		cfg.Damping = def.Damping
	}

	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{})
	space.SetDamping(cfg.Damping)

	pw := &PhysicsWorld{
		space:   space,
		bodies:  make(map[nav.BodyID]*physicsBody),
		byShape: make(map[*cp.Shape]nav.BodyID),
		byOwner: make(map[Entity]nav.BodyID),
	}
	pw.setupHandlers()
	return pw
}

// SetLiveness installs the owner check queries use to skip bodies of
// destroyed entities. A nil check reports every body.
func (pw *PhysicsWorld) SetLiveness(alive func(Entity) bool) {
	if pw == nil {
		return
	}
	pw.alive = alive
}

func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

// AddStatic adds a fixed rectangle owned by e.
func (pw *PhysicsWorld) AddStatic(e Entity, bounds nav.AABB) nav.BodyID {
	if pw == nil || pw.space == nil {
		return nav.NoBody
	}
	if id, ok := pw.byOwner[e]; ok {
		return id
	}
	shape := cp.NewBox2(pw.space.StaticBody, cp.BB{L: bounds.MinX, B: bounds.MinY, R: bounds.MaxX, T: bounds.MaxY}, 0)
	shape.SetFriction(0)
	shape.SetCollisionType(collisionTypeStatic)
	pw.space.AddShape(shape)

	pb := &physicsBody{
		owner:  e,
		static: true,
		body:   pw.space.StaticBody,
		shape:  shape,
		half:   nav.Box{HalfW: (bounds.MaxX - bounds.MinX) / 2, HalfH: (bounds.MaxY - bounds.MinY) / 2},
		bounds: bounds,
	}
	return pw.register(pb)
}

// AddDynamic adds a rotation-locked box body of the given mass for e,
// centered at pos.
func (pw *PhysicsWorld) AddDynamic(e Entity, pos cp.Vector, half nav.Box, mass float64) (nav.BodyID, *cp.Body, *cp.Shape) {
	if pw == nil || pw.space == nil {
		return nav.NoBody, nil, nil
	}
	if id, ok := pw.byOwner[e]; ok {
		pb := pw.bodies[id]
		return id, pb.body, pb.shape
	}
	if mass <= 0 {
		mass = 1
	}

	body := cp.NewBody(mass, math.Inf(1))
	body.SetAngle(0)
	body.SetPosition(pos)
	shape := cp.NewBox(body, half.HalfW*2, half.HalfH*2, 0)
	shape.SetFriction(0)
	shape.SetElasticity(0)
	shape.SetCollisionType(collisionTypePerson)

	pw.space.AddBody(body)
	pw.space.AddShape(shape)

	pb := &physicsBody{owner: e, body: body, shape: shape, half: half}
	return pw.register(pb), body, shape
}

func (pw *PhysicsWorld) register(pb *physicsBody) nav.BodyID {
	pw.nextID++
	pb.id = pw.nextID
	pw.bodies[pb.id] = pb
	pw.byShape[pb.shape] = pb.id
	pw.byOwner[pb.owner] = pb.id
	return pb.id
}

// Remove drops every shape and body owned by e.
func (pw *PhysicsWorld) Remove(e Entity) bool {
	if pw == nil {
		return false
	}
	id, ok := pw.byOwner[e]
	if !ok {
		return false
	}
	pb := pw.bodies[id]
	pw.space.RemoveShape(pb.shape)
	if !pb.static {
		pw.space.RemoveBody(pb.body)
	}
	delete(pw.byShape, pb.shape)
	delete(pw.byOwner, e)
	delete(pw.bodies, id)
	return true
}

// Prune removes the bodies of owners for which alive reports false and
// returns those owners.
func (pw *PhysicsWorld) Prune(alive func(Entity) bool) []Entity {
	if pw == nil {
		return nil
	}
	var dead []Entity
	for e := range pw.byOwner {
		if !alive(e) {
			dead = append(dead, e)
		}
	}
	sort.Slice(dead, func(i, j int) bool { return dead[i] < dead[j] })
	for _, e := range dead {
		pw.Remove(e)
	}
	return dead
}

func (pw *PhysicsWorld) BodyOf(e Entity) (nav.BodyID, bool) {
	if pw == nil {
		return nav.NoBody, false
	}
	id, ok := pw.byOwner[e]
	return id, ok
}

func (pw *PhysicsWorld) Owner(id nav.BodyID) (Entity, bool) {
	if pw == nil {
		return 0, false
	}
	pb, ok := pw.bodies[id]
	if !ok {
		return 0, false
	}
	return pb.owner, true
}

func (pw *PhysicsWorld) Len() int {
	if pw == nil {
		return 0
	}
	return len(pw.bodies)
}

// Contacts counts person-to-person collisions that began so far.
func (pw *PhysicsWorld) Contacts() int {
	if pw == nil {
		return 0
	}
	return pw.contacts
}

// Step advances the physics simulation.
func (pw *PhysicsWorld) Step(dt float64) {
	if pw == nil || pw.space == nil {
		return
	}
	pw.space.Step(dt)
}

// Motion reports a body's position and velocity. Unknown ids are not ok.
func (pw *PhysicsWorld) Motion(id nav.BodyID) (cp.Vector, cp.Vector, bool) {
	if pw == nil {
		return cp.Vector{}, cp.Vector{}, false
	}
	pb, ok := pw.bodies[id]
	if !ok {
		return cp.Vector{}, cp.Vector{}, false
	}
	if pb.static {
		return pb.bounds.Center(), cp.Vector{}, true
	}
	return pb.body.Position(), pb.body.Velocity(), true
}

func (pb *physicsBody) aabb() nav.AABB {
	if pb.static {
		return pb.bounds
	}
	return nav.BoxAt(pb.body.Position(), pb.half)
}

// candidates returns the bodies a query over area may touch, in id order.
// Static shapes come from the space's index. Dynamic bodies are checked
// against their live position, since the index only catches up on Step.
// Bodies of dead owners are left out.
func (pw *PhysicsWorld) candidates(area nav.AABB, filter nav.Filter) []*physicsBody {
	var out []*physicsBody
	if filter.Static {
		bb := cp.BB{L: area.MinX, B: area.MinY, R: area.MaxX, T: area.MaxY}
		pw.space.BBQuery(bb, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, _ interface{}) {
			id, ok := pw.byShape[shape]
			if !ok {
				return
			}
			if pb := pw.bodies[id]; pb.static && filter.Accepts(id, true) && pw.owned(pb) {
				out = append(out, pb)
			}
		}, nil)
	}
	if filter.Dynamic {
		for id, pb := range pw.bodies {
			if pb.static || !filter.Accepts(id, false) || !pw.owned(pb) {
				continue
			}
			b := pb.aabb()
			if b.MaxX >= area.MinX && b.MinX <= area.MaxX && b.MaxY >= area.MinY && b.MinY <= area.MaxY {
				out = append(out, pb)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

func (pw *PhysicsWorld) owned(pb *physicsBody) bool {
	return pw.alive == nil || pw.alive(pb.owner)
}

// CastShape sweeps shape from origin along dir. Touching is not a hit.
func (pw *PhysicsWorld) CastShape(origin cp.Vector, shape nav.Box, dir cp.Vector, maxDist float64, filter nav.Filter) (nav.ShapeHit, bool) {
	if pw == nil || maxDist < 0 {
		return nav.ShapeHit{}, false
	}
	var best nav.ShapeHit
	found := false
	for _, pb := range pw.candidates(nav.SweepBounds(origin, shape, dir, maxDist), filter) {
		t, ok := nav.SweepBox(origin, shape, dir, maxDist, pb.aabb())
		if ok && (!found || t < best.TimeOfImpact) {
			best = nav.ShapeHit{Body: pb.id, Static: pb.static, TimeOfImpact: t}
			found = true
		}
	}
	return best, found
}

// CastRay casts a zero-width ray. Grazing counts. A solid ray starting inside
// a body hits at zero; a hollow one reports where it leaves the body.
func (pw *PhysicsWorld) CastRay(origin, dir cp.Vector, maxDist float64, solid bool, filter nav.Filter) (nav.RayHit, bool) {
	if pw == nil || maxDist < 0 {
		return nav.RayHit{}, false
	}
	var best nav.RayHit
	found := false
	area := nav.SweepBounds(origin, nav.Box{}, dir, maxDist)
	for _, pb := range pw.candidates(area, filter) {
		box := pb.aabb()
		t, ok := nav.SegmentHit(origin, dir, maxDist, box, true)
		if !ok {
			continue
		}
		if t == 0 && !solid {
			exit, inside := exitDistance(origin, dir, box)
			if !inside || exit > maxDist {
				continue
			}
			t = exit
		}
		if !found || t < best.Distance {
			best = nav.RayHit{Body: pb.id, Static: pb.static, Distance: t}
			found = true
		}
	}
	return best, found
}

// exitDistance is how far a ray starting inside box travels before leaving.
func exitDistance(origin, dir cp.Vector, box nav.AABB) (float64, bool) {
	if origin.X < box.MinX || origin.X > box.MaxX || origin.Y < box.MinY || origin.Y > box.MaxY {
		return 0, false
	}
	exit := math.Inf(1)
	if dir.X > 0 {
		exit = math.Min(exit, (box.MaxX-origin.X)/dir.X)
	} else if dir.X < 0 {
		exit = math.Min(exit, (box.MinX-origin.X)/dir.X)
	}
	if dir.Y > 0 {
		exit = math.Min(exit, (box.MaxY-origin.Y)/dir.Y)
	} else if dir.Y < 0 {
		exit = math.Min(exit, (box.MinY-origin.Y)/dir.Y)
	}
	return exit, !math.IsInf(exit, 1)
}

// OverlapsAny reports whether shape at point shares positive area with any
// accepted body.
func (pw *PhysicsWorld) OverlapsAny(point cp.Vector, shape nav.Box, filter nav.Filter) bool {
	if pw == nil {
		return false
	}
	probe := nav.BoxAt(point, shape)
	for _, pb := range pw.candidates(probe, filter) {
		if probe.Overlaps(pb.aabb()) {
			return true
		}
	}
	return false
}

func (pw *PhysicsWorld) setupHandlers() {
	if pw == nil || pw.space == nil || pw.handlersReady {
		return
	}

	personHandler := pw.space.NewCollisionHandler(collisionTypePerson, collisionTypePerson)
	personHandler.UserData = pw
	personHandler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*PhysicsWorld)
		if !ok || world == nil {
			return true
		}
		world.contacts++
		if debugPhysics {
			a, b := arb.Shapes()
			log.Printf("PhysicsWorld: contact between bodies %d and %d", world.byShape[a], world.byShape[b])
		}
		return true
	}

	pw.handlersReady = true
}

var debugPhysics bool

// SetPhysicsDebug enables per-contact logging.
func SetPhysicsDebug(enabled bool) {
	debugPhysics = enabled
}

var _ nav.SpatialQuery = (*PhysicsWorld)(nil)
var _ nav.BodyLookup = (*PhysicsWorld)(nil)
