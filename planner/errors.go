package planner

import "github.com/pkg/errors"

var (
	// ErrDegenerateAnchors is returned when the anchors are not strictly increasing in x once
	// moved into the vehicle frame, so no single-valued curve can pass through them.
	ErrDegenerateAnchors = errors.New("degenerate anchor set")
	// ErrPathLengthMismatch is returned when the previous path x and y sequences differ in length.
	ErrPathLengthMismatch = errors.New("previous path x and y lengths differ")
	// ErrNilLaneState is returned when no lane state is supplied.
	ErrNilLaneState = errors.New("lane state is required")
)

func newInvalidTargetError(targetLane int, targetSpeed float64) error {
	return errors.Errorf("invalid target lane %d or speed %g, both must be non-negative", targetLane, targetSpeed)
}
