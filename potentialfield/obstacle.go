// Package potentialfield models circular obstacles as smooth scalar bump
// functions over the plane. Each obstacle contributes a potential that is
// maximal at its center and has compact support beyond its calculation
// radius; the summed field and its analytic gradient are what the path
// optimizer descends.
package potentialfield

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/CouchPugtato/fieldplan/spatialmath"
)

const (
	// DefaultBufferRadius is the safety buffer added around an obstacle when
	// no explicit buffer is configured.
	DefaultBufferRadius = 0.1034

	// distEpsilon guards the gradient direction against division by zero when
	// a query point sits on an obstacle center.
	distEpsilon = 5e-5

	// boundaryEpsilon absorbs floating-point error in the support clamp so a
	// point constructed exactly at the calculation radius still takes the
	// in-support value.
	boundaryEpsilon = 1e-12

	// adjustRate damps gradient magnitudes so a single relaxation step moves
	// a path point a small fraction of a unit distance.
	adjustRate = 0.1
)

// FieldStrategy selects the bump function an obstacle contributes to the
// summed field.
type FieldStrategy int

const (
	// CosineBump is a half-cosine bump, maximal at the obstacle center.
	CosineBump FieldStrategy = iota
	// Gaussian is an exponentially decaying bump.
	Gaussian
)

// String returns the configuration name of the strategy.
func (s FieldStrategy) String() string {
	switch s {
	case CosineBump:
		return "cosine"
	case Gaussian:
		return "gaussian"
	default:
		return fmt.Sprintf("FieldStrategy(%d)", int(s))
	}
}

// ParseFieldStrategy maps a configuration name to a FieldStrategy.
func ParseFieldStrategy(name string) (FieldStrategy, error) {
	switch name {
	case "", "cosine":
		return CosineBump, nil
	case "gaussian":
		return Gaussian, nil
	default:
		return 0, errors.Errorf("unknown field strategy %q, expected one of [cosine gaussian]", name)
	}
}

// Obstacle is an immutable circular obstacle. Its effective safety boundary,
// the calculation radius, is the physical radius grown by the robot radius
// and a safety buffer.
type Obstacle struct {
	center            r3.Vector
	radius            float64
	robotRadius       float64
	bufferRadius      float64
	calculationRadius float64
	fieldScale        float64
	strategy          FieldStrategy
}

// NewObstacle creates an obstacle centered at the given planar position.
func NewObstacle(center r3.Vector, radius, robotRadius, bufferRadius float64, strategy FieldStrategy) (Obstacle, error) {
	if radius <= 0 {
		return Obstacle{}, errors.Errorf("obstacle radius must be positive, got %f", radius)
	}
	if robotRadius < 0 || bufferRadius < 0 {
		return Obstacle{}, errors.Errorf(
			"safety margins may not be negative, got robot radius %f and buffer radius %f", robotRadius, bufferRadius)
	}
	calculationRadius := radius + robotRadius + bufferRadius
	return Obstacle{
		center:            r3.Vector{X: center.X, Y: center.Y},
		radius:            radius,
		robotRadius:       robotRadius,
		bufferRadius:      bufferRadius,
		calculationRadius: calculationRadius,
		fieldScale:        calculationRadius * math.Pi,
		strategy:          strategy,
	}, nil
}

// Center returns the obstacle's planar center.
func (o Obstacle) Center() r3.Vector { return o.center }

// Radius returns the obstacle's physical radius.
func (o Obstacle) Radius() float64 { return o.radius }

// CalculationRadius returns the field's support boundary, radius grown by
// both safety margins.
func (o Obstacle) CalculationRadius() float64 { return o.calculationRadius }

// FieldScale returns the bump function's scale parameter, calculation radius
// times pi.
func (o Obstacle) FieldScale() float64 { return o.fieldScale }

// Potential returns the obstacle's scalar field value at the given point.
//
// The cosine bump is (fieldScale/2)*cos(pi*distance/fieldScale), clamped to
// zero strictly beyond the calculation radius. With this parameterization the
// bump does not decay to zero at the boundary, so the clamp leaves a small
// step there; a point at exactly the calculation radius takes the in-support
// value. The gaussian strategy decays smoothly and keeps the same clamp for
// consistency.
func (o Obstacle) Potential(pt r3.Vector) float64 {
	dist := spatialmath.PlanarDistance(pt, o.center)
	if dist > o.calculationRadius+boundaryEpsilon {
		return 0
	}
	switch o.strategy {
	case Gaussian:
		return o.fieldScale * math.Exp(-dist/o.calculationRadius)
	default:
		return o.fieldScale / 2 * math.Cos(math.Pi*dist/o.fieldScale)
	}
}

// Gradient returns the analytic gradient of the obstacle's field at the given
// point, pointing toward increasing potential (toward the obstacle center)
// and damped by the adjust rate. It is zero outside the calculation radius
// and at the center itself, where the direction is undefined. Descending the
// field means subtracting this vector.
func (o Obstacle) Gradient(pt r3.Vector) r3.Vector {
	dist := spatialmath.PlanarDistance(pt, o.center)
	if dist > o.calculationRadius+boundaryEpsilon || dist < distEpsilon {
		return r3.Vector{}
	}

	// unit vector from the obstacle center out to the point
	outward := r3.Vector{X: (pt.X - o.center.X) / dist, Y: (pt.Y - o.center.Y) / dist}

	var magnitude float64
	switch o.strategy {
	case Gaussian:
		magnitude = o.fieldScale / o.calculationRadius * math.Exp(-dist/o.calculationRadius) * adjustRate
	default:
		magnitude = math.Pi / 2 * math.Sin(math.Pi*dist/o.fieldScale) * adjustRate
	}
	return outward.Mul(-magnitude)
}
