package prefabs

import (
	"fmt"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/pedestrians/nav"
)

const TownFile = "town.yaml"

// TownSpec describes a town: buildings with doors, decorative roads, the
// player, people placed at start and the periodic spawner.
type TownSpec struct {
	Name      string            `yaml:"name"`
	Buildings []BuildingSpec    `yaml:"buildings"`
	Roads     []RoadSpec        `yaml:"roads"`
	Player    *PointSpec        `yaml:"player"`
	People    []PersonPlaceSpec `yaml:"people"`
	Spawner   SpawnerSpec       `yaml:"spawner"`
	Physics   PhysicsSpec       `yaml:"physics"`
}

type BuildingSpec struct {
	Name   string     `yaml:"name"`
	X      float64    `yaml:"x"`
	Y      float64    `yaml:"y"`
	Width  float64    `yaml:"width"`
	Height float64    `yaml:"height"`
	Doors  []DoorSpec `yaml:"doors"`
	Color  *YAMLColor `yaml:"color"`
}

// DoorSpec places a door on one side of its building. Offset runs from -1
// to 1 along that side, 0 being its middle.
type DoorSpec struct {
	Side   string  `yaml:"side"`
	Offset float64 `yaml:"offset"`
}

type RoadSpec struct {
	Points []PointSpec `yaml:"points"`
	Loop   bool        `yaml:"loop"`
}

type PersonPlaceSpec struct {
	X    float64    `yaml:"x"`
	Y    float64    `yaml:"y"`
	Goal *PointSpec `yaml:"goal"`
}

type SpawnerSpec struct {
	Enabled        bool    `yaml:"enabled"`
	IntervalFrames int     `yaml:"interval_frames"`
	DoorOffset     float64 `yaml:"door_offset"`
	Script         string  `yaml:"script"`
	Seed           int64   `yaml:"seed"`
}

type PhysicsSpec struct {
	Mass        float64 `yaml:"mass"`
	Damping     float64 `yaml:"damping"`
	WalkImpulse float64 `yaml:"walk_impulse"`
	BrakeFactor float64 `yaml:"brake_factor"`
}

const (
	defaultSpawnInterval = 60
	defaultDoorOffset    = 2.0
	defaultMass          = 60.0
	defaultDamping       = 0.37
	defaultWalkImpulse   = 10.0
	defaultBrakeFactor   = 20.0
)

func LoadTown(name string) (TownSpec, error) {
	if name == "" {
		name = TownFile
	}
	spec, err := LoadSpec[TownSpec](name)
	if err != nil {
		return TownSpec{}, err
	}
	spec.applyDefaults()
	if err := ValidateTown(spec); err != nil {
		return TownSpec{}, fmt.Errorf("prefabs: town %s: %w", name, err)
	}
	return spec, nil
}

func (t *TownSpec) applyDefaults() {
	if t.Spawner.IntervalFrames <= 0 {
		t.Spawner.IntervalFrames = defaultSpawnInterval
	}
	if t.Spawner.DoorOffset <= 0 {
		t.Spawner.DoorOffset = defaultDoorOffset
	}
	if t.Physics.Mass <= 0 {
		t.Physics.Mass = defaultMass
	}
	if t.Physics.Damping <= 0 || t.Physics.Damping > 1 {
		t.Physics.Damping = defaultDamping
	}
	if t.Physics.WalkImpulse <= 0 {
		t.Physics.WalkImpulse = defaultWalkImpulse
	}
	if t.Physics.BrakeFactor <= 0 {
		t.Physics.BrakeFactor = defaultBrakeFactor
	}
}

// WithDefaults returns t with every unset spawner and physics field filled.
func (t TownSpec) WithDefaults() TownSpec {
	t.applyDefaults()
	return t
}

func (b BuildingSpec) Bounds() nav.AABB {
	return nav.BoxAt(cp.Vector{X: b.X, Y: b.Y}, nav.Box{HalfW: b.Width / 2, HalfH: b.Height / 2})
}

// Place returns the door's position on the building edge and the outward
// unit normal of that edge.
func (d DoorSpec) Place(b BuildingSpec) (pos, outward cp.Vector, err error) {
	if d.Offset < -1 || d.Offset > 1 {
		return cp.Vector{}, cp.Vector{}, fmt.Errorf("door offset %v outside [-1, 1]", d.Offset)
	}
	hw, hh := b.Width/2, b.Height/2
	center := cp.Vector{X: b.X, Y: b.Y}
	switch strings.ToLower(d.Side) {
	case "left":
		return center.Add(cp.Vector{X: -hw, Y: d.Offset * hh}), cp.Vector{X: -1}, nil
	case "right":
		return center.Add(cp.Vector{X: hw, Y: d.Offset * hh}), cp.Vector{X: 1}, nil
	case "bottom":
		return center.Add(cp.Vector{X: d.Offset * hw, Y: -hh}), cp.Vector{Y: -1}, nil
	case "top":
		return center.Add(cp.Vector{X: d.Offset * hw, Y: hh}), cp.Vector{Y: 1}, nil
	}
	return cp.Vector{}, cp.Vector{}, fmt.Errorf("unknown door side %q", d.Side)
}

func (p PointSpec) Vector() cp.Vector {
	return cp.Vector{X: p.X, Y: p.Y}
}
