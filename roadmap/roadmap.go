// Package roadmap provides road geometry collaborators that convert between Frenet (s, d)
// coordinates and global cartesian coordinates. Positive d is to the right of the direction of
// travel, and lane i is centered at d = laneWidth*i + laneWidth/2.
package roadmap

import (
	"math"

	"github.com/golang/geo/r2"
)

// Map converts road-relative Frenet coordinates to a global position.
type Map interface {
	ToCartesian(s, d float64) r2.Point
}

// FrenetMap is a Map that can also project a global position back onto the road.
type FrenetMap interface {
	Map
	ToFrenet(p r2.Point) (s, d float64)
}

// StraightMap is an infinitely long straight road starting at Origin and running along Heading.
type StraightMap struct {
	Origin  r2.Point
	Heading float64
}

// ToCartesian returns the position s along the road and d to its right.
func (m StraightMap) ToCartesian(s, d float64) r2.Point {
	sin, cos := math.Sincos(m.Heading)
	return r2.Point{
		X: m.Origin.X + s*cos + d*sin,
		Y: m.Origin.Y + s*sin - d*cos,
	}
}

// ToFrenet projects p onto the road.
func (m StraightMap) ToFrenet(p r2.Point) (s, d float64) {
	sin, cos := math.Sincos(m.Heading)
	v := p.Sub(m.Origin)
	return v.X*cos + v.Y*sin, v.X*sin - v.Y*cos
}

// CircleMap is a ring road of the given centerline Radius traveled counterclockwise. s = 0 is
// the southernmost point, where travel runs along +x.
type CircleMap struct {
	Center r2.Point
	Radius float64
}

// Length returns the length of one lap of the centerline.
func (m CircleMap) Length() float64 {
	return 2 * math.Pi * m.Radius
}

// ToCartesian returns the position s along the ring and d outward of the centerline.
func (m CircleMap) ToCartesian(s, d float64) r2.Point {
	theta := s/m.Radius - math.Pi/2
	sin, cos := math.Sincos(theta)
	return r2.Point{X: m.Center.X + (m.Radius+d)*cos, Y: m.Center.Y + (m.Radius+d)*sin}
}

// ToFrenet projects p onto the ring. s is reported in [0, Length()).
func (m CircleMap) ToFrenet(p r2.Point) (s, d float64) {
	v := p.Sub(m.Center)
	theta := math.Atan2(v.Y, v.X) + math.Pi/2
	return wrap(theta*m.Radius, m.Length()), v.Norm() - m.Radius
}

// wrap returns v in [0, period).
func wrap(v, period float64) float64 {
	if period <= 0 {
		return v
	}
	v = math.Mod(v, period)
	if v < 0 {
		v += period
	}
	return v
}
