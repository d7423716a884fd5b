package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Epsilon is the length below which a vector is treated as zero.
const Epsilon = 1e-9

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// NormalizeOrZero returns the unit vector of v, or the zero vector when v has
// no meaningful length.
func NormalizeOrZero(v cp.Vector) cp.Vector {
	l := v.Length()
	if l < Epsilon || math.IsNaN(l) || math.IsInf(l, 0) {
		return cp.Vector{}
	}
	return cp.Vector{X: v.X / l, Y: v.Y / l}
}

// IsZero reports whether v is shorter than Epsilon.
func IsZero(v cp.Vector) bool {
	return v.LengthSq() < Epsilon*Epsilon
}

// Rotate turns v counter-clockwise by angle radians.
func Rotate(v cp.Vector, angle float64) cp.Vector {
	s, c := math.Sincos(angle)
	return cp.Vector{X: v.X*c - v.Y*s, Y: v.X*s + v.Y*c}
}

// LeftOf returns the counter-clockwise perpendicular of v.
func LeftOf(v cp.Vector) cp.Vector {
	return cp.Vector{X: -v.Y, Y: v.X}
}

// RightOf returns the clockwise perpendicular of v.
func RightOf(v cp.Vector) cp.Vector {
	return cp.Vector{X: v.Y, Y: -v.X}
}

// AngleBetween returns the unsigned angle between two non-zero vectors.
func AngleBetween(a, b cp.Vector) float64 {
	a = NormalizeOrZero(a)
	b = NormalizeOrZero(b)
	if IsZero(a) || IsZero(b) {
		return 0
	}
	d := a.Dot(b)
	if d > 1 {
		d = 1
	} else if d < -1 {
		d = -1
	}
	return math.Acos(d)
}

// Sign returns -1, 0 or 1 for x, treating |x| < eps as zero.
func Sign(x, eps float64) float64 {
	switch {
	case x > eps:
		return 1
	case x < -eps:
		return -1
	}
	return 0
}
