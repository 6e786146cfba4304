package spatialmath

import (
	"math"

	"github.com/golang/geo/r2"
	"gonum.org/v1/gonum/mat"
)

// RigidTransform relates the global frame to a local frame whose origin sits at a reference
// position and whose x axis points along the reference heading.
type RigidTransform struct {
	origin  r2.Point
	heading float64
	sin     float64
	cos     float64
}

// NewRigidTransform returns the transform for the local frame anchored at ref.
func NewRigidTransform(ref Pose2D) RigidTransform {
	sin, cos := math.Sincos(ref.Heading)
	return RigidTransform{origin: ref.Point, heading: ref.Heading, sin: sin, cos: cos}
}

// Reference returns the pose the local frame is anchored at.
func (rt RigidTransform) Reference() Pose2D {
	return Pose2D{Point: rt.origin, Heading: rt.heading}
}

// PointToLocal translates p by the negated origin then rotates it by the negated heading.
func (rt RigidTransform) PointToLocal(p r2.Point) r2.Point {
	shifted := p.Sub(rt.origin)
	return r2.Point{
		X: shifted.X*rt.cos + shifted.Y*rt.sin,
		Y: -shifted.X*rt.sin + shifted.Y*rt.cos,
	}
}

// PointToGlobal rotates p by the heading then translates it by the origin.
func (rt RigidTransform) PointToGlobal(p r2.Point) r2.Point {
	return r2.Point{
		X: p.X*rt.cos - p.Y*rt.sin + rt.origin.X,
		Y: p.X*rt.sin + p.Y*rt.cos + rt.origin.Y,
	}
}

// ToLocal maps points into the local frame, preserving order. dst may alias points; if dst is
// too short a new slice is allocated.
func (rt RigidTransform) ToLocal(dst, points []r2.Point) []r2.Point {
	dst = ensureLen(dst, len(points))
	for i, p := range points {
		dst[i] = rt.PointToLocal(p)
	}
	return dst
}

// ToGlobal is the inverse of ToLocal.
func (rt RigidTransform) ToGlobal(dst, points []r2.Point) []r2.Point {
	dst = ensureLen(dst, len(points))
	for i, p := range points {
		dst[i] = rt.PointToGlobal(p)
	}
	return dst
}

// Homogeneous returns the 3x3 local-to-global matrix [R t; 0 1].
func (rt RigidTransform) Homogeneous() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		rt.cos, -rt.sin, rt.origin.X,
		rt.sin, rt.cos, rt.origin.Y,
		0, 0, 1,
	})
}

// InverseHomogeneous returns the 3x3 global-to-local matrix.
func (rt RigidTransform) InverseHomogeneous() *mat.Dense {
	tx := -(rt.cos*rt.origin.X + rt.sin*rt.origin.Y)
	ty := rt.sin*rt.origin.X - rt.cos*rt.origin.Y
	return mat.NewDense(3, 3, []float64{
		rt.cos, rt.sin, tx,
		-rt.sin, rt.cos, ty,
		0, 0, 1,
	})
}

// ToLocal is a convenience for NewRigidTransform(NewPose2D(refX, refY, refHeading)).ToLocal.
func ToLocal(points []r2.Point, refHeading, refX, refY float64) []r2.Point {
	return NewRigidTransform(NewPose2D(refX, refY, refHeading)).ToLocal(nil, points)
}

// ToGlobal is a convenience for NewRigidTransform(NewPose2D(refX, refY, refHeading)).ToGlobal.
func ToGlobal(points []r2.Point, refHeading, refX, refY float64) []r2.Point {
	return NewRigidTransform(NewPose2D(refX, refY, refHeading)).ToGlobal(nil, points)
}

// PointsToHomogeneous packs points into a 3xN matrix with a trailing row of ones.
func PointsToHomogeneous(points []r2.Point) *mat.Dense {
	if len(points) == 0 {
		return nil
	}
	m := mat.NewDense(3, len(points), nil)
	for i, p := range points {
		m.Set(0, i, p.X)
		m.Set(1, i, p.Y)
		m.Set(2, i, 1)
	}
	return m
}

// HomogeneousToPoints unpacks a 3xN homogeneous matrix, dividing through by the last row.
func HomogeneousToPoints(m mat.Matrix) []r2.Point {
	if m == nil {
		return nil
	}
	_, c := m.Dims()
	points := make([]r2.Point, c)
	for i := 0; i < c; i++ {
		w := m.At(2, i)
		points[i] = r2.Point{X: m.At(0, i) / w, Y: m.At(1, i) / w}
	}
	return points
}

func ensureLen(dst []r2.Point, n int) []r2.Point {
	if cap(dst) < n {
		return make([]r2.Point, n)
	}
	return dst[:n]
}
