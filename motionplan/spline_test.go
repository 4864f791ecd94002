package motionplan

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/CouchPugtato/fieldplan/spatialmath"
)

func TestSplineDegenerateFallbacks(t *testing.T) {
	// empty path evaluates to the origin
	empty := NewSpline(Path{})
	test.That(t, empty.Len(), test.ShouldEqual, 0)
	test.That(t, empty.Evaluate(0.5), test.ShouldResemble, r3.Vector{})

	// single point is returned for any parameter
	single := NewSpline(Path{{Position: r3.Vector{X: 3, Y: 4}}})
	test.That(t, single.Evaluate(0), test.ShouldResemble, r3.Vector{X: 3, Y: 4})
	test.That(t, single.Evaluate(1), test.ShouldResemble, r3.Vector{X: 3, Y: 4})

	// fewer than four points degrades to the nearest waypoint
	three := NewSpline(Path{
		{Position: r3.Vector{X: 0}},
		{Position: r3.Vector{X: 5}},
		{Position: r3.Vector{X: 10}},
	})
	test.That(t, three.Evaluate(0), test.ShouldResemble, r3.Vector{X: 0})
	test.That(t, three.Evaluate(0.5), test.ShouldResemble, r3.Vector{X: 5})
	test.That(t, three.Evaluate(1), test.ShouldResemble, r3.Vector{X: 10})
}

func TestSplineEndpoints(t *testing.T) {
	path := Path{
		{Position: r3.Vector{X: 0, Y: 0}},
		{Position: r3.Vector{X: 2, Y: 3}},
		{Position: r3.Vector{X: 5, Y: -1}},
		{Position: r3.Vector{X: 7, Y: 2}},
		{Position: r3.Vector{X: 10, Y: 0}},
	}
	spline := NewSpline(path)
	test.That(t, spline.Len(), test.ShouldEqual, len(path))

	test.That(t, spatialmath.PlanarAlmostEqual(spline.Evaluate(0), path.Start()), test.ShouldBeTrue)
	test.That(t, spatialmath.PlanarAlmostEqual(spline.Evaluate(1), path.Goal()), test.ShouldBeTrue)

	// out-of-range parameters clamp
	test.That(t, spatialmath.PlanarAlmostEqual(spline.Evaluate(-0.5), path.Start()), test.ShouldBeTrue)
	test.That(t, spatialmath.PlanarAlmostEqual(spline.Evaluate(1.5), path.Goal()), test.ShouldBeTrue)
}

func TestSplineInterpolatesWaypoints(t *testing.T) {
	path := Path{
		{Position: r3.Vector{X: 0, Y: 0}},
		{Position: r3.Vector{X: 1, Y: 2}},
		{Position: r3.Vector{X: 3, Y: 3}},
		{Position: r3.Vector{X: 6, Y: 1}},
		{Position: r3.Vector{X: 8, Y: -2}},
		{Position: r3.Vector{X: 10, Y: 0}},
	}
	spline := NewSpline(path)

	// Catmull-Rom passes exactly through each control point at its uniform
	// parameter
	n := len(path)
	for j, pp := range path {
		at := spline.Evaluate(float64(j) / float64(n-1))
		test.That(t, at.X, test.ShouldAlmostEqual, pp.Position.X, 1e-9)
		test.That(t, at.Y, test.ShouldAlmostEqual, pp.Position.Y, 1e-9)
	}
}

func TestSplineDerivativeContinuity(t *testing.T) {
	path := Path{
		{Position: r3.Vector{X: 0, Y: 0}},
		{Position: r3.Vector{X: 2, Y: 4}},
		{Position: r3.Vector{X: 5, Y: 5}},
		{Position: r3.Vector{X: 8, Y: 4}},
		{Position: r3.Vector{X: 10, Y: 0}},
	}
	spline := NewSpline(path)

	// finite differences straddling each interior segment boundary agree
	const h = 1e-6
	n := len(path)
	for j := 1; j < n-1; j++ {
		boundary := float64(j) / float64(n-1)
		left := spline.Evaluate(boundary).Sub(spline.Evaluate(boundary - h)).Mul(1 / h)
		right := spline.Evaluate(boundary + h).Sub(spline.Evaluate(boundary)).Mul(1 / h)
		test.That(t, scalar.EqualWithinAbs(left.X, right.X, 1e-3), test.ShouldBeTrue)
		test.That(t, scalar.EqualWithinAbs(left.Y, right.Y, 1e-3), test.ShouldBeTrue)
	}
}
