package nav

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/pedestrians/common"
)

// Simplify drops grid points that are redundant along a clear line of
// sight. It keeps the first point as the anchor and, for each candidate,
// looks one point ahead: when the anchor can see past the candidate, the
// candidate is skipped; otherwise it is kept and becomes the new anchor.
// The last point is always kept. Callers must pass at least two points.
func Simplify(q SpatialQuery, path []cp.Vector) []cp.Vector {
	if len(path) < 2 {
		panic("nav: simplify: path needs at least 2 points")
	}

	out := make([]cp.Vector, 0, len(path))
	out = append(out, path[0])
	for i := 1; i < len(path)-1; i++ {
		anchor := out[len(out)-1]
		if !LineOfSight(q, anchor, path[i+1]) {
			out = append(out, path[i])
		}
	}
	return append(out, path[len(path)-1])
}

// LineOfSight casts a zero-width ray between two points against static
// geometry. Grazing a boundary blocks sight. Coincident points see each other.
func LineOfSight(q SpatialQuery, from, to cp.Vector) bool {
	delta := to.Sub(from)
	dir := common.NormalizeOrZero(delta)
	if common.IsZero(dir) {
		return true
	}
	_, hit := q.CastRay(from, dir, delta.Length(), true, StaticOnly())
	return !hit
}
