package motionplan

import (
	"math"

	"github.com/golang/geo/r3"
)

// Spline is a Catmull-Rom interpolation over a path's waypoints, queryable at
// any normalized parameter in [0, 1]. Out-of-range neighbor indices clamp to
// the nearest real endpoint, which pins the curve to the path's first and
// last points and keeps the first derivative continuous across segment
// boundaries.
type Spline struct {
	pts []r3.Vector
}

// NewSpline builds a spline over the given path's waypoints.
func NewSpline(path Path) *Spline {
	return &Spline{pts: path.Waypoints()}
}

// Evaluate samples the curve at t in [0, 1]; t is clamped to that range.
// Evaluate(0) is the first waypoint and Evaluate(1) the last. With fewer than
// four waypoints the curve degrades to the nearest available point, and an
// empty spline evaluates to the origin.
func (s *Spline) Evaluate(t float64) r3.Vector {
	n := len(s.pts)
	if n == 0 {
		return r3.Vector{}
	}
	t = math.Max(0, math.Min(1, t))
	if n < 4 {
		return s.pts[int(math.Round(t*float64(n-1)))]
	}

	// with clamped virtual neighbors at both ends there is a segment between
	// each adjacent pair of real points
	segments := n - 1
	scaled := t * float64(segments)
	i := int(math.Floor(scaled))
	if i > segments-1 {
		i = segments - 1
	}
	u := scaled - float64(i)

	clamp := func(j int) r3.Vector {
		if j < 0 {
			j = 0
		}
		if j > n-1 {
			j = n - 1
		}
		return s.pts[j]
	}
	p0, p1, p2, p3 := clamp(i-1), clamp(i), clamp(i+1), clamp(i+2)

	u2 := u * u
	u3 := u2 * u
	blend := func(a0, a1, a2, a3 float64) float64 {
		return 0.5 * (2*a1 + (-a0+a2)*u + (2*a0-5*a1+4*a2-a3)*u2 + (-a0+3*a1-3*a2+a3)*u3)
	}
	return r3.Vector{
		X: blend(p0.X, p1.X, p2.X, p3.X),
		Y: blend(p0.Y, p1.Y, p2.Y, p3.Y),
	}
}

// Len returns the number of control points backing the spline.
func (s *Spline) Len() int {
	return len(s.pts)
}
