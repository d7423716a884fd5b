package prefabs

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/paulmach/orb"
)

// edgeTolerance absorbs float error when checking that a door sits on an
// edge.
const edgeTolerance = 1e-6

// personClearance keeps spawn points a body's half width away from walls.
const personClearance = 0.5

var ErrInvalidTown = errors.New("prefabs: invalid town")

// ValidateTown checks the layout: buildings have area and do not overlap,
// doors sit on their building's edge and open onto free ground, and the
// player and placed people start outside every building.
func ValidateTown(t TownSpec) error {
	var errs []error
	bounds := make([]orb.Bound, len(t.Buildings))
	valid := make([]bool, len(t.Buildings))

	for i, b := range t.Buildings {
		if b.Width <= 0 || b.Height <= 0 {
			errs = append(errs, fmt.Errorf("building %s: size %vx%v", buildingName(i, b), b.Width, b.Height))
			continue
		}
		bounds[i] = buildingBound(b)
		valid[i] = true
		for j := 0; j < i; j++ {
			if !valid[j] {
				continue
			}
			if bounds[i].Pad(-edgeTolerance).Intersects(bounds[j].Pad(-edgeTolerance)) {
				errs = append(errs, fmt.Errorf("building %s overlaps %s", buildingName(i, b), buildingName(j, t.Buildings[j])))
			}
		}
	}

	offset := t.Spawner.DoorOffset
	if offset <= 0 {
		offset = defaultDoorOffset
	}
	for i, b := range t.Buildings {
		if !valid[i] {
			continue
		}
		for k, d := range b.Doors {
			pos, outward, err := d.Place(b)
			if err != nil {
				errs = append(errs, fmt.Errorf("building %s door %d: %w", buildingName(i, b), k, err))
				continue
			}
			if !onEdge(bounds[i], pos) {
				errs = append(errs, fmt.Errorf("building %s door %d at %v is not on its edge", buildingName(i, b), k, pos))
			}
			if j, hit := blocked(bounds, valid, pos.Add(outward.Mult(offset))); hit {
				errs = append(errs, fmt.Errorf("building %s door %d opens into %s", buildingName(i, b), k, buildingName(j, t.Buildings[j])))
			}
		}
	}

	if t.Player != nil {
		if j, hit := blocked(bounds, valid, t.Player.Vector()); hit {
			errs = append(errs, fmt.Errorf("player starts inside %s", buildingName(j, t.Buildings[j])))
		}
	}
	for k, p := range t.People {
		if j, hit := blocked(bounds, valid, cp.Vector{X: p.X, Y: p.Y}); hit {
			errs = append(errs, fmt.Errorf("person %d starts inside %s", k, buildingName(j, t.Buildings[j])))
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidTown, errors.Join(errs...))
}

func buildingBound(b BuildingSpec) orb.Bound {
	a := b.Bounds()
	return orb.Bound{Min: orb.Point{a.MinX, a.MinY}, Max: orb.Point{a.MaxX, a.MaxY}}
}

func onEdge(b orb.Bound, p cp.Vector) bool {
	pt := orb.Point{p.X, p.Y}
	return b.Pad(edgeTolerance).Contains(pt) && !b.Pad(-edgeTolerance).Contains(pt)
}

// blocked reports the first building whose padded bound holds p.
func blocked(bounds []orb.Bound, valid []bool, p cp.Vector) (int, bool) {
	pt := orb.Point{p.X, p.Y}
	for i, b := range bounds {
		if !valid[i] {
			continue
		}
		if b.Pad(personClearance - edgeTolerance).Contains(pt) {
			return i, true
		}
	}
	return 0, false
}

func buildingName(i int, b BuildingSpec) string {
	if b.Name != "" {
		return b.Name
	}
	return fmt.Sprintf("#%d", i)
}
