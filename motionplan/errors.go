package motionplan

import "github.com/pkg/errors"

var errPathTooShort = errors.New("path must contain at least two points")

func newInvalidSegmentCountError(count int) error {
	return errors.Errorf("segment count must be a positive integer, got %d", count)
}
