package motionplan

import (
	"sort"

	"github.com/CouchPugtato/fieldplan/spatialmath"
)

// prunePath removes interior points that sit colinear with the path's global
// start-to-goal chord immediately before or after a genuine turn, trimming
// redundant nearly-straight runs left over from relaxation without reshaping
// the path. The first and last points are never removed and the path is never
// reduced below the minimum point count.
func (p *Planner) prunePath(path Path) Path {
	if len(path) <= p.opts.MinPathPoints {
		return path
	}

	first := path[0].Position
	last := path[len(path)-1].Position
	chord := spatialmath.PlanarUnit(last.Sub(first))
	if spatialmath.PlanarNorm(chord) == 0 {
		// start and goal coincide, no meaningful chord to prune against
		return path
	}
	nominalScale := spatialmath.PlanarDistance(first, last)
	windowDist := nominalScale * p.opts.PruneWindowFraction

	// colinear reports whether the direction from the first point to the
	// given position tracks the global chord. The first point itself has no
	// direction and counts as colinear so a fully straight path never
	// registers a transition.
	colinear := func(i int) bool {
		if spatialmath.PlanarAlmostEqual(path[i].Position, first) {
			return true
		}
		u := spatialmath.PlanarUnit(path[i].Position.Sub(first))
		return spatialmath.PlanarDot(u, chord) > p.opts.ColinearityThreshold
	}

	marked := map[int]bool{}
	for i := 1; i < len(path)-1; i++ {
		if marked[i] || !colinear(i) {
			continue
		}
		// a transition into or out of straight travel has exactly one
		// non-colinear neighbor
		if colinear(i-1) == colinear(i+1) {
			continue
		}
		for j := i; j >= 1 && spatialmath.PlanarDistance(path[j].Position, path[i].Position) < windowDist; j-- {
			marked[j] = true
		}
		for j := i; j <= len(path)-2 && spatialmath.PlanarDistance(path[j].Position, path[i].Position) < windowDist; j++ {
			marked[j] = true
		}
	}
	if len(marked) == 0 {
		return path
	}

	indices := make([]int, 0, len(marked))
	for i := range marked {
		indices = append(indices, i)
	}
	// descending order keeps earlier indices valid through removal
	sort.Sort(sort.Reverse(sort.IntSlice(indices)))
	for _, i := range indices {
		if len(path) <= p.opts.MinPathPoints {
			break
		}
		path = append(path[:i], path[i+1:]...)
	}
	return path
}
