package nav

import (
	"math"

	"github.com/jakecoffman/cp"
)

// AABB is an axis-aligned rectangle in world units.
type AABB struct {
	MinX, MinY, MaxX, MaxY float64
}

// BoxAt places a footprint at center.
func BoxAt(center cp.Vector, b Box) AABB {
	return AABB{
		MinX: center.X - b.HalfW,
		MinY: center.Y - b.HalfH,
		MaxX: center.X + b.HalfW,
		MaxY: center.Y + b.HalfH,
	}
}

// Center returns the midpoint of the rectangle.
func (a AABB) Center() cp.Vector {
	return cp.Vector{X: (a.MinX + a.MaxX) / 2, Y: (a.MinY + a.MaxY) / 2}
}

// Expand grows the rectangle by the half extents of b on every side.
func (a AABB) Expand(b Box) AABB {
	return AABB{
		MinX: a.MinX - b.HalfW,
		MinY: a.MinY - b.HalfH,
		MaxX: a.MaxX + b.HalfW,
		MaxY: a.MaxY + b.HalfH,
	}
}

// Overlaps reports a strictly positive-area intersection. Rectangles that
// only share an edge do not overlap.
func (a AABB) Overlaps(o AABB) bool {
	return a.MinX < o.MaxX && o.MinX < a.MaxX && a.MinY < o.MaxY && o.MinY < a.MaxY
}

// Union returns the smallest rectangle covering both.
func (a AABB) Union(o AABB) AABB {
	return AABB{
		MinX: math.Min(a.MinX, o.MinX),
		MinY: math.Min(a.MinY, o.MinY),
		MaxX: math.Max(a.MaxX, o.MaxX),
		MaxY: math.Max(a.MaxY, o.MaxY),
	}
}

// SweepBounds covers a footprint moved from origin by dir*maxDist.
func SweepBounds(origin cp.Vector, shape Box, dir cp.Vector, maxDist float64) AABB {
	end := origin.Add(dir.Mult(maxDist))
	return BoxAt(origin, shape).Union(BoxAt(end, shape))
}

// SegmentHit intersects the segment origin + dir*t, t in [0, maxDist], with
// target using the slab method. dir must be unit length. With touch set,
// grazing the boundary counts as a hit; otherwise the segment must pass
// through the interior. A segment that starts inside target hits at t = 0.
func SegmentHit(origin, dir cp.Vector, maxDist float64, target AABB, touch bool) (float64, bool) {
	tmin := math.Inf(-1)
	tmax := math.Inf(1)

	axes := [2]struct{ o, d, lo, hi float64 }{
		{origin.X, dir.X, target.MinX, target.MaxX},
		{origin.Y, dir.Y, target.MinY, target.MaxY},
	}
	for _, ax := range axes {
		if ax.d == 0 {
			if touch {
				if ax.o < ax.lo || ax.o > ax.hi {
					return 0, false
				}
			} else if ax.o <= ax.lo || ax.o >= ax.hi {
				return 0, false
			}
			continue
		}
		inv := 1.0 / ax.d
		t1 := (ax.lo - ax.o) * inv
		t2 := (ax.hi - ax.o) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
	}

	if touch {
		if tmin > tmax {
			return 0, false
		}
	} else if tmin >= tmax {
		return 0, false
	}
	if tmax < 0 || (!touch && tmax == 0) {
		return 0, false
	}
	if tmin > maxDist || (!touch && tmin == maxDist) {
		return 0, false
	}
	if tmin < 0 {
		return 0, true
	}
	return tmin, true
}

// SweepBox casts a moving footprint against a fixed rectangle. Touching is
// not a hit. When the footprint already overlaps target it only counts as
// a hit if dir heads towards the target's center, so a body pressed
// against a wall can still move away from it.
func SweepBox(origin cp.Vector, shape Box, dir cp.Vector, maxDist float64, target AABB) (float64, bool) {
	grown := target.Expand(shape)
	t, ok := SegmentHit(origin, dir, maxDist, grown, false)
	if !ok {
		return 0, false
	}
	if t == 0 && BoxAt(origin, shape).Overlaps(target) {
		toCenter := target.Center().Sub(origin)
		if toCenter.Dot(dir) <= 0 {
			return 0, false
		}
	}
	return t, true
}
