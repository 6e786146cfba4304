package planner

import (
	"github.com/golang/geo/r2"

	"go.viam.com/lanetraj/utils"
)

// StepBudget is the number of new points needed to refill the horizon. It is never negative.
func StepBudget(horizonCount, previousLen int) int {
	return utils.MaxInt(0, horizonCount-previousLen)
}

// Assemble emits the previous path verbatim followed by the newly generated points.
func Assemble(previous, fresh []r2.Point) Trajectory {
	n := len(previous) + len(fresh)
	traj := Trajectory{X: make([]float64, 0, n), Y: make([]float64, 0, n)}
	for _, points := range [][]r2.Point{previous, fresh} {
		for _, p := range points {
			traj.X = append(traj.X, p.X)
			traj.Y = append(traj.Y, p.Y)
		}
	}
	return traj
}
