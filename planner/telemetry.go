// Package planner synthesizes short-horizon drivable trajectories. Each cycle it fits a smooth
// curve from the end of the previously issued trajectory to future lane-center waypoints and
// samples it under a bounded per-step speed change.
package planner

import (
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

// Telemetry is the vehicle state observed at the start of a planning cycle.
type Telemetry struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	// Heading is in degrees, counterclockwise from +x.
	Heading float64 `json:"heading"`
	S       float64 `json:"s"`
	D       float64 `json:"d"`
	Speed   float64 `json:"speed"`

	// The unconsumed tail of the trajectory issued on the previous cycle.
	PreviousPathX []float64 `json:"previous_path_x"`
	PreviousPathY []float64 `json:"previous_path_y"`
}

func (tl *Telemetry) validate() error {
	if len(tl.PreviousPathX) != len(tl.PreviousPathY) {
		return errors.Wrapf(ErrPathLengthMismatch, "%d x values, %d y values", len(tl.PreviousPathX), len(tl.PreviousPathY))
	}
	return nil
}

// PreviousPath returns the previous path as points.
func (tl *Telemetry) PreviousPath() []r2.Point {
	n := len(tl.PreviousPathX)
	if len(tl.PreviousPathY) < n {
		n = len(tl.PreviousPathY)
	}
	points := make([]r2.Point, n)
	for i := range points {
		points[i] = r2.Point{X: tl.PreviousPathX[i], Y: tl.PreviousPathY[i]}
	}
	return points
}

// Trajectory is the ordered sequence of global positions handed to the controller, one per step.
type Trajectory struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
}

// Len returns the number of points in the trajectory.
func (t Trajectory) Len() int {
	return len(t.X)
}

// Points returns the trajectory as points.
func (t Trajectory) Points() []r2.Point {
	points := make([]r2.Point, len(t.X))
	for i := range points {
		points[i] = r2.Point{X: t.X[i], Y: t.Y[i]}
	}
	return points
}
