package transform

import (
	"errors"
	"fmt"
)

// ErrNonInvertible is returned when the inverse of a transform with a
// (numerically) singular linear part is requested.
var ErrNonInvertible = errors.New("transform: matrix is not invertible")

// AxisError reports an axis that a transform requires but that is absent
// from the axes requested for materialization.
type AxisError struct {
	Axis string
}

func (e AxisError) Error() string {
	return fmt.Sprintf("transform: axis %q not present", e.Axis)
}
