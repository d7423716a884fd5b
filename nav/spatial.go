package nav

import "github.com/jakecoffman/cp"

// BodyID identifies a body known to a SpatialQuery. Zero means no body.
type BodyID uint64

const NoBody BodyID = 0

// Box is an axis-aligned footprint described by its half extents.
type Box struct {
	HalfW float64
	HalfH float64
}

// Scale returns the box grown (or shrunk) by factor f.
func (b Box) Scale(f float64) Box {
	return Box{HalfW: b.HalfW * f, HalfH: b.HalfH * f}
}

// Filter selects which bodies a query may report.
type Filter struct {
	Static  bool
	Dynamic bool
	Exclude BodyID
}

// StaticOnly matches fixed world geometry.
func StaticOnly() Filter {
	return Filter{Static: true}
}

// DynamicExcluding matches moving bodies other than self.
func DynamicExcluding(self BodyID) Filter {
	return Filter{Dynamic: true, Exclude: self}
}

// AllExcluding matches every body other than self.
func AllExcluding(self BodyID) Filter {
	return Filter{Static: true, Dynamic: true, Exclude: self}
}

// Accepts reports whether a body passes the filter.
func (f Filter) Accepts(id BodyID, static bool) bool {
	if id != NoBody && id == f.Exclude {
		return false
	}
	if static {
		return f.Static
	}
	return f.Dynamic
}

// ShapeHit is the first body met by a swept shape. TimeOfImpact is measured
// in world units along the (normalized) cast direction.
type ShapeHit struct {
	Body         BodyID
	Static       bool
	TimeOfImpact float64
}

// RayHit is the first body met by a ray.
type RayHit struct {
	Body     BodyID
	Static   bool
	Distance float64
}

// SpatialQuery answers occupancy and visibility questions about the world.
// Implementations must not mutate the world while answering.
type SpatialQuery interface {
	// CastShape sweeps shape from origin along dir for at most maxDist.
	// Merely touching a body is not a hit.
	CastShape(origin cp.Vector, shape Box, dir cp.Vector, maxDist float64, filter Filter) (ShapeHit, bool)
	// CastRay casts a zero-width ray. Grazing a boundary is a hit, and a
	// solid ray starting inside a body hits it at distance zero.
	CastRay(origin, dir cp.Vector, maxDist float64, solid bool, filter Filter) (RayHit, bool)
	// OverlapsAny reports whether shape placed at point intersects any body
	// with positive area.
	OverlapsAny(point cp.Vector, shape Box, filter Filter) bool
}
