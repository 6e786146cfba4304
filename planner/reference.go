package planner

import (
	"github.com/golang/geo/r2"

	"go.viam.com/lanetraj/spatialmath"
	"go.viam.com/lanetraj/utils"
)

// ReferenceState is the pose the new curve starts from and the point before it, which together
// fix the curve's starting tangent.
type ReferenceState struct {
	Reference spatialmath.Pose2D
	Previous  r2.Point
}

// ExtractReference picks the reference state. With fewer than two previous path points the
// vehicle pose is used and a previous point is synthesized one unit behind it; otherwise the
// last two previous path points are used.
func ExtractReference(tl *Telemetry) ReferenceState {
	path := tl.PreviousPath()
	n := len(path)
	if n < 2 {
		ref := spatialmath.NewPose2D(tl.X, tl.Y, utils.DegToRad(tl.Heading))
		return ReferenceState{Reference: ref, Previous: ref.Behind(1)}
	}
	last, prev := path[n-1], path[n-2]
	return ReferenceState{
		Reference: spatialmath.Pose2D{Point: last, Heading: spatialmath.HeadingBetween(prev, last)},
		Previous:  prev,
	}
}
