// Package motionplan plans collision-avoiding 2D paths for a mobile robot
// among circular obstacles. A path is seeded as a straight line to the goal,
// relaxed out of high-potential regions by gradient descent against the
// obstacle field, pruned of redundant near-colinear points, and finally
// wrapped in a Catmull-Rom spline for the follower to sample.
package motionplan

import (
	"github.com/golang/geo/r3"

	"github.com/CouchPugtato/fieldplan/potentialfield"
	"github.com/CouchPugtato/fieldplan/spatialmath"
)

// PathPoint is one discrete sample of a planned path. Height carries the
// summed obstacle potential at the point's position; it is scratch space for
// the optimizer and is reset to zero once optimization ends.
type PathPoint struct {
	Position r3.Vector
	Height   float64
}

// newPathPoint creates a path point at the given planar position with its
// height evaluated against the obstacle snapshot.
func newPathPoint(x, y float64, obstacles potentialfield.Snapshot) PathPoint {
	pos := r3.Vector{X: x, Y: y}
	return PathPoint{Position: pos, Height: obstacles.PotentialAt(pos)}
}

// Path is an ordered sequence of path points. The first point is the robot's
// position at planning time and the last is the target; neither is ever
// removed by cleaning or pruning, and a path always holds at least two points.
type Path []PathPoint

// Start returns the path's first position.
func (p Path) Start() r3.Vector {
	if len(p) == 0 {
		return r3.Vector{}
	}
	return p[0].Position
}

// Goal returns the path's last position.
func (p Path) Goal() r3.Vector {
	if len(p) == 0 {
		return r3.Vector{}
	}
	return p[len(p)-1].Position
}

// Waypoints returns the positions of all path points in order.
func (p Path) Waypoints() []r3.Vector {
	pts := make([]r3.Vector, 0, len(p))
	for _, pp := range p {
		pts = append(pts, pp.Position)
	}
	return pts
}

// Length returns the total planar arc length of the path's segments.
func (p Path) Length() float64 {
	var total float64
	for i := 1; i < len(p); i++ {
		total += spatialmath.PlanarDistance(p[i-1].Position, p[i].Position)
	}
	return total
}

// clone returns a copy of the path so optimization never aliases a caller's
// slice.
func (p Path) clone() Path {
	out := make(Path, len(p))
	copy(out, p)
	return out
}
