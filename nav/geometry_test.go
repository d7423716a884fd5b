package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAABBOverlaps(t *testing.T) {
	a := AABB{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1}
	cases := []struct {
		name string
		b    AABB
		want bool
	}{
		{"inside", AABB{0.25, 0.25, 0.75, 0.75}, true},
		{"crossing", AABB{0.5, 0.5, 2, 2}, true},
		{"shared_edge", AABB{1, 0, 2, 1}, false},
		{"shared_corner", AABB{1, 1, 2, 2}, false},
		{"apart", AABB{3, 3, 4, 4}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, a.Overlaps(c.b))
			assert.Equal(t, c.want, c.b.Overlaps(a))
		})
	}
}

func TestSegmentHit(t *testing.T) {
	wall := AABB{MinX: 2, MinY: 0, MaxX: 3, MaxY: 1}
	cases := []struct {
		name    string
		x, y    float64
		dx, dy  float64
		maxDist float64
		touch   bool
		wantOK  bool
		wantT   float64
	}{
		{"through", 0, 0.5, 1, 0, 10, false, true, 2},
		{"short", 0, 0.5, 1, 0, 1.5, false, false, 0},
		{"grazing_touch", 0, 0, 1, 0, 10, true, true, 2},
		{"grazing_strict", 0, 0, 1, 0, 10, false, false, 0},
		{"away", 0, 0.5, -1, 0, 10, true, false, 0},
		{"inside", 2.5, 0.5, 1, 0, 10, false, true, 0},
		{"vertical", 2.5, -3, 0, 1, 10, false, true, 3},
		{"ends_on_face_touch", 0, 0.5, 1, 0, 2, true, true, 2},
		{"ends_on_face_strict", 0, 0.5, 1, 0, 2, false, false, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := SegmentHit(v(c.x, c.y), v(c.dx, c.dy), c.maxDist, wall, c.touch)
			assert.Equal(t, c.wantOK, ok)
			if c.wantOK {
				assert.InDelta(t, c.wantT, got, 1e-9)
			}
		})
	}
}

func TestSweepBox(t *testing.T) {
	unit := Box{HalfW: 0.5, HalfH: 0.5}

	t.Run("approach", func(t *testing.T) {
		got, ok := SweepBox(v(0, 0), unit, v(1, 0), 5, AABB{2, -0.5, 3, 0.5})
		assert.True(t, ok)
		assert.InDelta(t, 1.5, got, 1e-9)
	})

	t.Run("slide_along_edge", func(t *testing.T) {
		_, ok := SweepBox(v(0, 0), unit, v(1, 0), 5, AABB{-5, 0.5, 5, 1.5})
		assert.False(t, ok)
	})

	t.Run("overlapping_towards", func(t *testing.T) {
		got, ok := SweepBox(v(0, 0), unit, v(1, 0), 1, AABB{0.25, -1, 1.25, 1})
		assert.True(t, ok)
		assert.Equal(t, 0.0, got)
	})

	t.Run("overlapping_away", func(t *testing.T) {
		_, ok := SweepBox(v(0, 0), unit, v(-1, 0), 1, AABB{0.25, -1, 1.25, 1})
		assert.False(t, ok)
	})
}

func TestSweepBounds(t *testing.T) {
	got := SweepBounds(v(0, 0), Box{HalfW: 0.5, HalfH: 0.5}, v(1, 0), 3)
	assert.Equal(t, AABB{MinX: -0.5, MinY: -0.5, MaxX: 3.5, MaxY: 0.5}, got)
	assert.Equal(t, v(1.5, 0), got.Center())
}

func TestParamsWithDefaults(t *testing.T) {
	p := Params{StepSize: 2, BrakeRatio: 0}.WithDefaults()
	d := DefaultParams()

	assert.Equal(t, 2.0, p.StepSize)
	assert.Equal(t, 0.0, p.BrakeRatio)
	assert.Equal(t, d.Footprint, p.Footprint)
	assert.Equal(t, d.GoalTolerance, p.GoalTolerance)
	assert.Equal(t, d.PersonalSpaceRays, p.PersonalSpaceRays)

	p = Params{BrakeRatio: -1}.WithDefaults()
	assert.Equal(t, d.BrakeRatio, p.BrakeRatio)
}
