package motionplan

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/CouchPugtato/fieldplan/potentialfield"
	"github.com/CouchPugtato/fieldplan/spatialmath"
)

// optimization states.
const (
	stateNotOptimized = iota
	stateRelaxing
	stateConverged
	stateExhausted
)

// OptimizePath relaxes the path's interior points out of high-potential
// regions by descending the summed obstacle gradient. The loop is bounded by
// the configured maximum iteration count; on exhaustion a single radial
// correction pass is applied and a warning logged, never an error. Heights
// are scratch space for the algorithm and are zeroed before returning, so a
// second call on an already-converged path changes nothing further.
func (p *Planner) OptimizePath(path Path, obstacles potentialfield.Snapshot) (Path, error) {
	if len(path) < 2 {
		return nil, errPathTooShort
	}
	path = path.clone()
	if len(path) == 2 {
		resetHeights(path)
		return path, nil
	}

	// heights may be stale (or zeroed by a previous optimization); evaluate
	// them against this call's snapshot before deciding anything
	for i := 1; i < len(path)-1; i++ {
		path[i].Height = obstacles.PotentialAt(path[i].Position)
	}

	originalStep := spatialmath.PlanarDistance(path[0].Position, path[1].Position)

	state := stateNotOptimized
	iterations := 0
	for iterations < p.opts.MaxIterations {
		if p.isPathOptimized(path, obstacles) {
			state = stateConverged
			break
		}
		state = stateRelaxing
		iterations++
		p.Step(path, obstacles)
		path = p.cleanPath(path, originalStep)
	}

	// the budget may run out on the very pass that converged
	if state == stateRelaxing && p.isPathOptimized(path, obstacles) {
		state = stateConverged
	}

	if state == stateRelaxing {
		state = stateExhausted
		p.logger.Warnf("path optimization did not converge after %d iterations; applying radial correction", iterations)
		p.correctUnsafePoints(path, obstacles)
	}

	if state == stateConverged {
		p.logger.Debugf("path optimized in %d iterations", iterations)
	}

	resetHeights(path)
	return path, nil
}

// Step runs one relaxation pass over the path's interior points in place,
// returning true when every point already satisfied the safety predicate.
// Callers that interleave relaxation with rendering can drive the optimizer
// one pass at a time through it.
func (p *Planner) Step(path Path, obstacles potentialfield.Snapshot) bool {
	if len(path) <= 2 {
		return true
	}

	allOptimized := true
	for i := 1; i < len(path)-1; i++ {
		point := &path[i]
		if p.isPointSafe(*point, obstacles) {
			continue
		}
		allOptimized = false

		var totalDx, totalDy float64
		if o, dist, ok := p.unsafeObstacle(*point, obstacles); ok {
			// inside an obstacle's unsafe radius: push straight out from its
			// center rather than following the (possibly tiny) gradient
			away := spatialmath.PlanarUnit(point.Position.Sub(o.Center()))
			if dist < 1e-9 {
				away = escapeDirection(path, i)
			}
			totalDx = away.X * p.opts.UnsafeStep
			totalDy = away.Y * p.opts.UnsafeStep
		} else {
			grad := obstacles.GradientAt(point.Position)
			totalDx = -grad.X
			totalDy = -grad.Y
		}

		// clamp a degenerate step to a minimum signed displacement so the
		// point always makes forward progress
		if math.Abs(totalDx) < p.opts.MinAdjust && math.Abs(totalDy) < p.opts.MinAdjust {
			if totalDx != 0 {
				totalDx = math.Copysign(p.opts.MinAdjust, totalDx)
			}
			if totalDy != 0 {
				totalDy = math.Copysign(p.opts.MinAdjust, totalDy)
			}
		}

		point.Position.X += totalDx
		point.Position.Y += totalDy
		point.Height = obstacles.PotentialAt(point.Position)
	}
	return allOptimized
}

// isPointSafe reports whether a single point satisfies the convergence
// predicate: potential at or below the optimization threshold and clearance
// of at least radius plus safety margin from every obstacle center.
func (p *Planner) isPointSafe(point PathPoint, obstacles potentialfield.Snapshot) bool {
	if point.Height > p.opts.OptimizationThreshold {
		return false
	}
	_, _, unsafe := p.unsafeObstacle(point, obstacles)
	return !unsafe
}

// unsafeObstacle returns the obstacle whose unsafe radius contains the point,
// if any, along with the point's distance from its center.
func (p *Planner) unsafeObstacle(point PathPoint, obstacles potentialfield.Snapshot) (potentialfield.Obstacle, float64, bool) {
	for _, o := range obstacles {
		dist := spatialmath.PlanarDistance(point.Position, o.Center())
		if dist < o.Radius()+p.opts.SafetyMargin {
			return o, dist, true
		}
	}
	return potentialfield.Obstacle{}, 0, false
}

// isPathOptimized reports whether every interior point satisfies the
// convergence predicate.
func (p *Planner) isPathOptimized(path Path, obstacles potentialfield.Snapshot) bool {
	for i := 1; i < len(path)-1; i++ {
		if !p.isPointSafe(path[i], obstacles) {
			return false
		}
	}
	return true
}

// correctUnsafePoints is the non-convergence fallback: each interior point
// still inside an unsafe radius is pushed radially away from its nearest
// obstacle by a fixed fraction of a unit distance.
func (p *Planner) correctUnsafePoints(path Path, obstacles potentialfield.Snapshot) {
	for i := 1; i < len(path)-1; i++ {
		point := &path[i]
		if p.isPointSafe(*point, obstacles) {
			continue
		}
		nearest, dist, ok := obstacles.Nearest(point.Position)
		if !ok {
			continue
		}
		away := spatialmath.PlanarUnit(point.Position.Sub(nearest.Center()))
		if dist < 1e-9 {
			away = escapeDirection(path, i)
		}
		point.Position.X += away.X * p.opts.CorrectionStep
		point.Position.Y += away.Y * p.opts.CorrectionStep
		point.Height = obstacles.PotentialAt(point.Position)
	}
}

// escapeDirection picks a push direction for a point sitting exactly on an
// obstacle center, where the radial direction is undefined: perpendicular to
// the local path direction, or +X if that is degenerate too.
func escapeDirection(path Path, i int) r3.Vector {
	local := spatialmath.PlanarUnit(path[i+1].Position.Sub(path[i-1].Position))
	if spatialmath.PlanarNorm(local) == 0 {
		return r3.Vector{X: 1}
	}
	return r3.Vector{X: -local.Y, Y: local.X}
}

func resetHeights(path Path) {
	for i := range path {
		path[i].Height = 0
	}
}
