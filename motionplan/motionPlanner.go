package motionplan

import (
	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"

	"github.com/CouchPugtato/fieldplan/potentialfield"
	"github.com/CouchPugtato/fieldplan/spatialmath"
)

// Planner generates and optimizes paths against an obstacle potential field.
// It is stateless between calls; every method takes the obstacle snapshot it
// should evaluate against.
type Planner struct {
	opts   *PlannerOptions
	logger golog.Logger
}

// NewPlanner creates a planner. A nil options pointer selects the defaults
// and a nil logger falls back to the global one.
func NewPlanner(opts *PlannerOptions, logger golog.Logger) *Planner {
	if opts == nil {
		opts = NewDefaultPlannerOptions()
	}
	if logger == nil {
		logger = golog.Global()
	}
	return &Planner{opts: opts, logger: logger}
}

// GeneratePath seeds a straight-line path from start to goal with the given
// number of segments, relaxes it away from the obstacles, and prunes
// redundant points. The returned path always begins at start and ends exactly
// at goal.
func (p *Planner) GeneratePath(
	start, goal r3.Vector,
	segmentCount int,
	obstacles potentialfield.Snapshot,
) (Path, error) {
	if segmentCount <= 0 {
		return nil, newInvalidSegmentCountError(segmentCount)
	}

	path := make(Path, 0, segmentCount+2)
	path = append(path, PathPoint{Position: r3.Vector{X: start.X, Y: start.Y}})

	dx := (goal.X - start.X) / float64(segmentCount)
	dy := (goal.Y - start.Y) / float64(segmentCount)
	for i := 1; i <= segmentCount; i++ {
		prev := path[i-1].Position
		path = append(path, newPathPoint(prev.X+dx, prev.Y+dy, obstacles))
	}

	// the goal is appended verbatim rather than trusting the last interpolated
	// step to land on it
	path = append(path, PathPoint{Position: r3.Vector{X: goal.X, Y: goal.Y}})

	stepDistance := spatialmath.PlanarNorm(r3.Vector{X: dx, Y: dy})
	path = p.cleanPath(path, stepDistance)

	path, err := p.OptimizePath(path, obstacles)
	if err != nil {
		return nil, err
	}
	return p.prunePath(path), nil
}

// cleanPath de-clumps a path: an interior point is merged into its
// neighboring segment when the gap left by removing it stays within the clean
// factor times the original seeding step. The first and last points are never
// removed and the path is never reduced below the minimum point count.
func (p *Planner) cleanPath(path Path, stepDistance float64) Path {
	threshold := stepDistance * p.opts.CleanFactor
	i := 1
	for i < len(path)-1 {
		if len(path) <= p.opts.MinPathPoints {
			break
		}
		gap := spatialmath.PlanarDistance(path[i-1].Position, path[i+1].Position)
		if gap < threshold {
			path = append(path[:i], path[i+1:]...)
		} else {
			i++
		}
	}
	return path
}
