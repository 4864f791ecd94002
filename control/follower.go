// Package control drives a robot along a planned path. A follower samples the
// path's spline at a fixed control cadence and emits velocity commands at the
// target speed; the robot integrates those commands into position every tick.
package control

import (
	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/CouchPugtato/fieldplan/motionplan"
	"github.com/CouchPugtato/fieldplan/spatialmath"
)

const (
	// defaultControlInterval is the simulated time between velocity decisions,
	// in seconds. Ticks arriving faster than this accumulate; the follower
	// only recomputes once the accumulator crosses the interval.
	defaultControlInterval = 0.02

	// searchStep is the parameter increment used when searching forward along
	// the spline for the point one control step's travel away.
	searchStep = 0.001

	// maxSearchIterations bounds the forward search so a degenerate spline can
	// never stall a tick.
	maxSearchIterations = 2000

	// minTargetDistance is the travel distance below which the search is
	// skipped and a single minimal increment taken instead, preventing stalls
	// at very low speeds.
	minTargetDistance = 1e-6
)

// Follower walks a path's spline at a constant target speed, producing one
// velocity command per control interval.
type Follower struct {
	spline          *motionplan.Spline
	targetSpeed     float64
	controlInterval float64

	progress  float64
	following bool
	accum     float64
	velocity  r3.Vector

	logger golog.Logger
}

// NewFollower creates a follower over the given path. The target speed must
// be positive and the path must hold at least two points.
func NewFollower(path motionplan.Path, targetSpeed float64, logger golog.Logger) (*Follower, error) {
	if targetSpeed <= 0 {
		return nil, errors.Errorf("target speed must be positive, got %f", targetSpeed)
	}
	if len(path) < 2 {
		return nil, errors.New("cannot follow a path with fewer than two points")
	}
	if logger == nil {
		logger = golog.Global()
	}
	return &Follower{
		spline:          motionplan.NewSpline(path),
		targetSpeed:     targetSpeed,
		controlInterval: defaultControlInterval,
		following:       true,
		logger:          logger,
	}, nil
}

// Progress returns the follower's normalized position along the spline.
func (f *Follower) Progress() float64 { return f.progress }

// Following reports whether the follower is still advancing along the path.
func (f *Follower) Following() bool { return f.following }

// Velocity returns the most recent velocity command.
func (f *Follower) Velocity() r3.Vector { return f.velocity }

// Step advances the follower by dt seconds of simulated time and returns the
// velocity command to apply. Between control intervals the previous command
// is repeated; once the accumulated time crosses the interval a new command
// is computed and the accumulator reset. dt may not be negative.
func (f *Follower) Step(dt float64) (r3.Vector, error) {
	if dt < 0 {
		return r3.Vector{}, errors.Errorf("dt must be non-negative, got %f", dt)
	}
	f.accum += dt
	if f.accum < f.controlInterval {
		return f.velocity, nil
	}
	elapsed := f.accum
	f.accum = 0
	f.controlStep(elapsed)
	return f.velocity, nil
}

// controlStep recomputes the velocity command for one control interval of
// elapsed seconds.
func (f *Follower) controlStep(elapsed float64) {
	if f.progress >= 1 {
		f.following = false
		f.velocity = r3.Vector{}
		return
	}

	current := f.spline.Evaluate(f.progress)
	targetDist := f.targetSpeed * elapsed

	t := f.progress
	forward := current
	if targetDist < minTargetDistance {
		// too slow to search by distance, take the minimal increment
		t += searchStep
		if t > 1 {
			t = 1
		}
		forward = f.spline.Evaluate(t)
	} else {
		found := false
		for i := 0; i < maxSearchIterations; i++ {
			t += searchStep
			if t >= 1 {
				t = 1
				forward = f.spline.Evaluate(t)
				found = true
				break
			}
			forward = f.spline.Evaluate(t)
			if spatialmath.PlanarDistance(current, forward) >= targetDist {
				found = true
				break
			}
		}
		if !found {
			f.logger.Warnf("spline forward search exhausted %d iterations before covering %f, proceeding with furthest point found",
				maxSearchIterations, targetDist)
		}
	}

	direction := spatialmath.PlanarUnit(forward.Sub(current))
	if spatialmath.PlanarNorm(direction) == 0 {
		// the remaining distance on the terminal step can fall under the planar
		// epsilon; hold the previous heading so speed does not drop while the
		// path is still being followed
		direction = spatialmath.PlanarUnit(f.velocity)
	}
	f.velocity = direction.Mul(f.targetSpeed)
	f.progress = t
	if f.progress >= 1 {
		f.progress = 1
	}
}
