package control

import (
	"testing"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/CouchPugtato/fieldplan/motionplan"
	"github.com/CouchPugtato/fieldplan/spatialmath"
)

func straightPath(t *testing.T, segments int) motionplan.Path {
	t.Helper()
	planner := motionplan.NewPlanner(nil, golog.NewTestLogger(t))
	path, err := planner.GeneratePath(r3.Vector{}, r3.Vector{X: 10}, segments, nil)
	test.That(t, err, test.ShouldBeNil)
	return path
}

func TestNewFollowerValidation(t *testing.T) {
	logger := golog.NewTestLogger(t)
	path := straightPath(t, 10)

	_, err := NewFollower(path, 0, logger)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = NewFollower(path, -2, logger)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = NewFollower(motionplan.Path{{Position: r3.Vector{}}}, 2, logger)
	test.That(t, err, test.ShouldNotBeNil)

	follower, err := NewFollower(path, 2, logger)
	test.That(t, err, test.ShouldBeNil)
	_, err = follower.Step(-0.01)
	test.That(t, err, test.ShouldNotBeNil)

	// a nil logger falls back to the global one
	_, err = NewFollower(path, 2, nil)
	test.That(t, err, test.ShouldBeNil)
}

func TestFollowerControlCadence(t *testing.T) {
	follower, err := NewFollower(straightPath(t, 10), 2, golog.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)

	// ticks below the control interval accumulate without a new decision
	for i := 0; i < 3; i++ {
		vel, err := follower.Step(0.005)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, vel, test.ShouldResemble, r3.Vector{})
		test.That(t, follower.Progress(), test.ShouldEqual, 0)
	}

	// the tick that crosses the interval triggers one
	vel, err := follower.Step(0.005)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, spatialmath.PlanarNorm(vel), test.ShouldAlmostEqual, 2, 1e-6)
	test.That(t, follower.Progress(), test.ShouldBeGreaterThan, 0)
}

func TestFollowerWalksPathToCompletion(t *testing.T) {
	const (
		targetSpeed = 2.0
		dt          = 0.02
	)
	follower, err := NewFollower(straightPath(t, 10), targetSpeed, golog.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)

	// path length 10 at speed 2 is 5 simulated seconds, 250 control steps;
	// allow generous slack before declaring a stall
	maxSteps := 4 * int(10/(targetSpeed*dt))
	lastProgress := 0.0
	steps := 0
	for ; steps < maxSteps; steps++ {
		vel, err := follower.Step(dt)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, follower.Progress(), test.ShouldBeGreaterThanOrEqualTo, lastProgress)
		lastProgress = follower.Progress()
		if !follower.Following() {
			break
		}
		// velocity magnitude holds the target speed while following
		test.That(t, spatialmath.PlanarNorm(vel), test.ShouldAlmostEqual, targetSpeed, 1e-6)
	}

	test.That(t, steps, test.ShouldBeLessThan, maxSteps)
	test.That(t, follower.Following(), test.ShouldBeFalse)
	test.That(t, follower.Progress(), test.ShouldEqual, 1)
	test.That(t, follower.Velocity(), test.ShouldResemble, r3.Vector{})
}

func TestFollowerKeepsHeadingOnTerminalStep(t *testing.T) {
	// sized so the second control step ends the path with a remaining distance
	// below the planar epsilon
	path := motionplan.Path{
		{Position: r3.Vector{X: 0}},
		{Position: r3.Vector{X: 0.01335}},
		{Position: r3.Vector{X: 0.0267}},
		{Position: r3.Vector{X: 0.04005}},
	}
	follower, err := NewFollower(path, 2, golog.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)

	vel, err := follower.Step(defaultControlInterval)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, spatialmath.PlanarNorm(vel), test.ShouldAlmostEqual, 2, 1e-6)
	test.That(t, follower.Progress(), test.ShouldBeLessThan, 1)

	// the terminal command holds the previous heading at full speed instead of
	// dropping to zero before the path is finished
	vel, err = follower.Step(defaultControlInterval)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, spatialmath.PlanarNorm(vel), test.ShouldAlmostEqual, 2, 1e-6)
	test.That(t, follower.Progress(), test.ShouldEqual, 1)

	vel, err = follower.Step(defaultControlInterval)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, vel, test.ShouldResemble, r3.Vector{})
	test.That(t, follower.Following(), test.ShouldBeFalse)
}

func TestFollowerTinySpeedStillAdvances(t *testing.T) {
	// target distance far below the minimal threshold falls back to a single
	// parameter increment instead of stalling
	follower, err := NewFollower(straightPath(t, 10), 1e-7, golog.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)

	_, err = follower.Step(defaultControlInterval)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, follower.Progress(), test.ShouldBeGreaterThan, 0)
}
