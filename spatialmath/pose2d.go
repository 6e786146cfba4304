// Package spatialmath defines planar poses and the rigid transforms used to move point sets
// between the global road frame and a vehicle-local frame.
package spatialmath

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
)

// Pose2D is a position in the plane plus a heading in radians, measured counterclockwise from +x.
type Pose2D struct {
	Point   r2.Point
	Heading float64
}

// NewPose2D creates a Pose2D from its components.
func NewPose2D(x, y, heading float64) Pose2D {
	return Pose2D{Point: r2.Point{X: x, Y: y}, Heading: heading}
}

// Behind returns the point dist units behind the pose, opposite its heading.
func (p Pose2D) Behind(dist float64) r2.Point {
	return r2.Point{
		X: p.Point.X - dist*math.Cos(p.Heading),
		Y: p.Point.Y - dist*math.Sin(p.Heading),
	}
}

func (p Pose2D) String() string {
	return fmt.Sprintf("{X:%.3f Y:%.3f Heading:%.4f}", p.Point.X, p.Point.Y, p.Heading)
}

// HeadingBetween returns the direction of travel from one point to the next.
func HeadingBetween(from, to r2.Point) float64 {
	return math.Atan2(to.Y-from.Y, to.X-from.X)
}

// PointAlmostEqual compares two points within epsilon on each axis.
func PointAlmostEqual(a, b r2.Point, epsilon float64) bool {
	return math.Abs(a.X-b.X) <= epsilon && math.Abs(a.Y-b.Y) <= epsilon
}
