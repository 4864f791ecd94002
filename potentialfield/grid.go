package potentialfield

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// FieldSample is one grid sample of the summed field, with Height holding the
// potential at Position.
type FieldSample struct {
	Position r3.Vector
	Height   float64
}

// SampleGrid evaluates the snapshot's summed potential on a regular grid over
// the rectangle [min, max], stepping by the given resolution in both axes.
// Rows are ordered along Y, columns along X. External renderers consume the
// samples as elevation data; this package only produces them.
func (s Snapshot) SampleGrid(min, max r3.Vector, resolution float64) ([][]FieldSample, error) {
	if resolution <= 0 {
		return nil, errors.Errorf("grid resolution must be positive, got %f", resolution)
	}
	if max.X < min.X || max.Y < min.Y {
		return nil, errors.Errorf("grid bounds are inverted: min (%f, %f), max (%f, %f)", min.X, min.Y, max.X, max.Y)
	}

	var rows [][]FieldSample
	for y := min.Y; y <= max.Y; y += resolution {
		var row []FieldSample
		for x := min.X; x <= max.X; x += resolution {
			pt := r3.Vector{X: x, Y: y}
			row = append(row, FieldSample{Position: pt, Height: s.PotentialAt(pt)})
		}
		rows = append(rows, row)
	}
	return rows, nil
}
