package control

import (
	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/CouchPugtato/fieldplan/motionplan"
)

// Robot holds the kinematic state of the agent: planar position, current
// velocity, and the follower driving it along the active path. State persists
// across ticks; Update integrates velocity into position every call while the
// follower gates its own decision cadence internally.
type Robot struct {
	position    r3.Vector
	velocity    r3.Vector
	targetSpeed float64
	follower    *Follower
	logger      golog.Logger
}

// NewRobot creates a robot at the given planar position.
func NewRobot(position r3.Vector, targetSpeed float64, logger golog.Logger) (*Robot, error) {
	if targetSpeed <= 0 {
		return nil, errors.Errorf("target speed must be positive, got %f", targetSpeed)
	}
	if logger == nil {
		logger = golog.Global()
	}
	return &Robot{
		position:    r3.Vector{X: position.X, Y: position.Y},
		targetSpeed: targetSpeed,
		logger:      logger,
	}, nil
}

// Position returns the robot's current planar position.
func (r *Robot) Position() r3.Vector { return r.position }

// Velocity returns the robot's current velocity.
func (r *Robot) Velocity() r3.Vector { return r.velocity }

// TargetSpeed returns the speed the robot tries to hold while following.
func (r *Robot) TargetSpeed() float64 { return r.targetSpeed }

// SetTargetSpeed updates the speed used by the next FollowPath call.
func (r *Robot) SetTargetSpeed(speed float64) error {
	if speed <= 0 {
		return errors.Errorf("target speed must be positive, got %f", speed)
	}
	r.targetSpeed = speed
	return nil
}

// FollowPath replaces any active path with the given one and starts
// following it from the beginning.
func (r *Robot) FollowPath(path motionplan.Path) error {
	follower, err := NewFollower(path, r.targetSpeed, r.logger)
	if err != nil {
		return err
	}
	r.follower = follower
	return nil
}

// Following reports whether the robot has a path it is still advancing along.
func (r *Robot) Following() bool {
	return r.follower != nil && r.follower.Following()
}

// Progress returns the normalized progress along the active path, or 1 when
// there is none.
func (r *Robot) Progress() float64 {
	if r.follower == nil {
		return 1
	}
	return r.follower.Progress()
}

// Update advances the robot by dt seconds: the follower emits the velocity
// command for this tick and the position integrates velocity times dt.
func (r *Robot) Update(dt float64) error {
	if dt < 0 {
		return errors.Errorf("dt must be non-negative, got %f", dt)
	}
	if r.follower != nil {
		velocity, err := r.follower.Step(dt)
		if err != nil {
			return err
		}
		r.velocity = velocity
	}
	r.position.X += r.velocity.X * dt
	r.position.Y += r.velocity.Y * dt
	return nil
}
