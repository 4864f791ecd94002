// Package spatialmath defines planar vector helpers used throughout the
// planner. Positions are represented as r3.Vector; planar operations ignore
// the Z component, which path points reuse as scratch space for potential
// values.
package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
)

// floatEpsilon is the tolerance below which two coordinates are considered equal.
const floatEpsilon = 1e-4

// PlanarDistance returns the Euclidean distance between a and b in the XY plane.
func PlanarDistance(a, b r3.Vector) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// PlanarNorm returns the magnitude of v in the XY plane.
func PlanarNorm(v r3.Vector) float64 {
	return math.Hypot(v.X, v.Y)
}

// PlanarUnit returns the unit vector along v in the XY plane, with Z zeroed.
// A vector with near-zero planar magnitude yields the zero vector.
func PlanarUnit(v r3.Vector) r3.Vector {
	norm := PlanarNorm(v)
	if norm <= floatEpsilon {
		return r3.Vector{}
	}
	return r3.Vector{X: v.X / norm, Y: v.Y / norm}
}

// PlanarDot returns the dot product of a and b in the XY plane.
func PlanarDot(a, b r3.Vector) float64 {
	return a.X*b.X + a.Y*b.Y
}

// R3VectorAlmostEqual compares two vectors for approximate equality in all
// three components.
func R3VectorAlmostEqual(a, b r3.Vector, epsilon float64) bool {
	return math.Abs(a.X-b.X) < epsilon && math.Abs(a.Y-b.Y) < epsilon && math.Abs(a.Z-b.Z) < epsilon
}

// PlanarAlmostEqual compares two vectors for approximate equality in the XY
// plane only, using the package tolerance.
func PlanarAlmostEqual(a, b r3.Vector) bool {
	return math.Abs(a.X-b.X) < floatEpsilon && math.Abs(a.Y-b.Y) < floatEpsilon
}
