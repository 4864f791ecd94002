package potentialfield

import (
	"math"

	"github.com/golang/geo/r3"
)

// Snapshot is an immutable set of obstacles captured for the duration of one
// planning or field-evaluation call. It is passed by value into every
// evaluation so callers never share a mutable obstacle list with the planner.
type Snapshot []Obstacle

// NewSnapshot copies the given obstacles into an owned Snapshot.
func NewSnapshot(obstacles []Obstacle) Snapshot {
	snap := make(Snapshot, len(obstacles))
	copy(snap, obstacles)
	return snap
}

// PotentialAt returns the summed potential of all obstacles at the given
// point. Field values are additive, not maxed.
func (s Snapshot) PotentialAt(pt r3.Vector) float64 {
	var sum float64
	for _, o := range s {
		sum += o.Potential(pt)
	}
	return sum
}

// GradientAt returns the summed field gradient of all obstacles at the given
// point, pointing toward increasing potential.
func (s Snapshot) GradientAt(pt r3.Vector) r3.Vector {
	var sum r3.Vector
	for _, o := range s {
		sum = sum.Add(o.Gradient(pt))
	}
	return sum
}

// Nearest returns the obstacle whose center is closest to the given point and
// the planar distance to it. The second return is false for an empty snapshot.
func (s Snapshot) Nearest(pt r3.Vector) (Obstacle, float64, bool) {
	if len(s) == 0 {
		return Obstacle{}, 0, false
	}
	best := 0
	bestDist := math.Inf(1)
	for i, o := range s {
		if d := math.Hypot(pt.X-o.center.X, pt.Y-o.center.Y); d < bestDist {
			best, bestDist = i, d
		}
	}
	return s[best], bestDist, true
}
