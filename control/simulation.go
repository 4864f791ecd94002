package control

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	"github.com/pkg/errors"
)

// Simulation ticks a robot along its path on a wall-clock cadence until the
// path is exhausted or the context is cancelled. The clock is injectable so
// tests can drive the loop with a mock.
type Simulation struct {
	robot    *Robot
	clock    clock.Clock
	interval time.Duration
	logger   golog.Logger
}

// NewSimulation creates a simulation ticking the robot every interval.
func NewSimulation(robot *Robot, c clock.Clock, interval time.Duration, logger golog.Logger) (*Simulation, error) {
	if robot == nil {
		return nil, errors.New("simulation requires a robot")
	}
	if interval <= 0 {
		return nil, errors.Errorf("tick interval must be positive, got %v", interval)
	}
	if c == nil {
		c = clock.New()
	}
	if logger == nil {
		logger = golog.Global()
	}
	return &Simulation{robot: robot, clock: c, interval: interval, logger: logger}, nil
}

// Run ticks the robot until it finishes following its path. It returns the
// context's error if cancelled first.
func (s *Simulation) Run(ctx context.Context) error {
	ticker := s.clock.Ticker(s.interval)
	defer ticker.Stop()

	dt := s.interval.Seconds()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		if err := s.robot.Update(dt); err != nil {
			return err
		}
		pos := s.robot.Position()
		vel := s.robot.Velocity()
		s.logger.Debugf("robot position (%.3f, %.3f) velocity (%.3f, %.3f) progress %.3f",
			pos.X, pos.Y, vel.X, vel.Y, s.robot.Progress())
		if !s.robot.Following() {
			return nil
		}
	}
}
