// Package config reads and validates JSON scene configurations for the
// planner: the workspace's obstacles, the robot's start, the target, and the
// planning and following parameters.
package config

import (
	"encoding/json"
	"os"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/CouchPugtato/fieldplan/potentialfield"
)

// Position is a planar coordinate pair in a scene file.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ObstacleConfig describes one circular obstacle in a scene file.
type ObstacleConfig struct {
	Position Position `json:"position"`
	Radius   float64  `json:"radius"`
}

// Scene is a complete scene configuration.
type Scene struct {
	Start        Position         `json:"start"`
	Target       Position         `json:"target"`
	SegmentCount int              `json:"segment_count"`
	TargetSpeed  float64          `json:"target_speed"`
	RobotRadius  float64          `json:"robot_radius"`
	// BufferRadius defaults to the potentialfield package default when omitted
	// or zero.
	BufferRadius  float64          `json:"buffer_radius,omitempty"`
	FieldStrategy string           `json:"field_strategy,omitempty"`
	Obstacles     []ObstacleConfig `json:"obstacles"`
}

// ReadScene loads and validates a scene from a JSON file.
func ReadScene(path string) (*Scene, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open scene config %q", path)
	}
	defer f.Close() //nolint:errcheck

	var scene Scene
	decoder := json.NewDecoder(f)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&scene); err != nil {
		return nil, errors.Wrapf(err, "cannot parse scene config %q", path)
	}
	if err := scene.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid scene config %q", path)
	}
	return &scene, nil
}

// Validate checks every field of the scene, reporting all problems at once.
func (s *Scene) Validate() error {
	var allErrs error
	if s.SegmentCount <= 0 {
		allErrs = multierr.Append(allErrs, errors.Errorf("segment_count must be a positive integer, got %d", s.SegmentCount))
	}
	if s.TargetSpeed <= 0 {
		allErrs = multierr.Append(allErrs, errors.Errorf("target_speed must be positive, got %f", s.TargetSpeed))
	}
	if s.RobotRadius < 0 {
		allErrs = multierr.Append(allErrs, errors.Errorf("robot_radius may not be negative, got %f", s.RobotRadius))
	}
	if s.BufferRadius < 0 {
		allErrs = multierr.Append(allErrs, errors.Errorf("buffer_radius may not be negative, got %f", s.BufferRadius))
	}
	if _, err := potentialfield.ParseFieldStrategy(s.FieldStrategy); err != nil {
		allErrs = multierr.Append(allErrs, err)
	}
	for i, o := range s.Obstacles {
		if o.Radius <= 0 {
			allErrs = multierr.Append(allErrs, errors.Errorf("obstacle %d: radius must be positive, got %f", i, o.Radius))
		}
	}
	return allErrs
}

// StartPosition returns the robot's starting position as a vector.
func (s *Scene) StartPosition() r3.Vector {
	return r3.Vector{X: s.Start.X, Y: s.Start.Y}
}

// TargetPosition returns the target position as a vector.
func (s *Scene) TargetPosition() r3.Vector {
	return r3.Vector{X: s.Target.X, Y: s.Target.Y}
}

// Snapshot builds the immutable obstacle snapshot described by the scene.
func (s *Scene) Snapshot() (potentialfield.Snapshot, error) {
	strategy, err := potentialfield.ParseFieldStrategy(s.FieldStrategy)
	if err != nil {
		return nil, err
	}
	buffer := s.BufferRadius
	if buffer == 0 {
		buffer = potentialfield.DefaultBufferRadius
	}

	obstacles := make([]potentialfield.Obstacle, 0, len(s.Obstacles))
	for i, oc := range s.Obstacles {
		o, err := potentialfield.NewObstacle(
			r3.Vector{X: oc.Position.X, Y: oc.Position.Y}, oc.Radius, s.RobotRadius, buffer, strategy)
		if err != nil {
			return nil, errors.Wrapf(err, "obstacle %d", i)
		}
		obstacles = append(obstacles, o)
	}
	return potentialfield.NewSnapshot(obstacles), nil
}
