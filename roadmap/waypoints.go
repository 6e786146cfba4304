package roadmap

import (
	"bufio"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

// Waypoint is a sampled point on the road centerline.
type Waypoint struct {
	Point r2.Point
	S     float64
	// Normal is the unit vector pointing to the right of travel. It is informational; geometry is
	// derived from consecutive waypoints.
	Normal r2.Point
}

// WaypointMap is a closed track described by centerline waypoints with increasing s. The final
// waypoint connects back to the first, and s wraps at MaxS.
type WaypointMap struct {
	waypoints []Waypoint
	maxS      float64
}

// NewWaypointMap builds a map from waypoints. If maxS is not positive, the lap length is the last
// waypoint's s plus the distance back to the first.
func NewWaypointMap(waypoints []Waypoint, maxS float64) (*WaypointMap, error) {
	if len(waypoints) < 2 {
		return nil, errors.Errorf("waypoint map needs at least 2 waypoints, got %d", len(waypoints))
	}
	for i := 1; i < len(waypoints); i++ {
		if !(waypoints[i].S > waypoints[i-1].S) {
			return nil, errors.Errorf("waypoint %d has s=%g, not after s=%g", i, waypoints[i].S, waypoints[i-1].S)
		}
	}
	last := waypoints[len(waypoints)-1]
	if maxS <= 0 {
		maxS = last.S + waypoints[0].Point.Sub(last.Point).Norm()
	}
	if maxS <= last.S {
		return nil, errors.Errorf("max s %g must exceed last waypoint s %g", maxS, last.S)
	}
	return &WaypointMap{waypoints: waypoints, maxS: maxS}, nil
}

// ReadWaypointMap loads a map from a whitespace separated "x y s dx dy" file.
func ReadWaypointMap(path string, maxS float64) (*WaypointMap, error) {
	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	waypoints, err := ParseWaypoints(f)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return NewWaypointMap(waypoints, maxS)
}

// ParseWaypoints reads "x y s dx dy" records, one per line. Blank lines and lines starting with
// '#' are skipped.
func ParseWaypoints(r io.Reader) ([]Waypoint, error) {
	var waypoints []Waypoint
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 5 {
			return nil, errors.Errorf("line %d: expected 5 fields, got %d", lineNum, len(fields))
		}
		var vals [5]float64
		for i, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", lineNum)
			}
			vals[i] = v
		}
		waypoints = append(waypoints, Waypoint{
			Point:  r2.Point{X: vals[0], Y: vals[1]},
			S:      vals[2],
			Normal: r2.Point{X: vals[3], Y: vals[4]},
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return waypoints, nil
}

// MaxS returns the lap length.
func (m *WaypointMap) MaxS() float64 {
	return m.maxS
}

// Waypoints returns the map's waypoints.
func (m *WaypointMap) Waypoints() []Waypoint {
	return m.waypoints
}

// segment returns the endpoints of segment i and the s at its start.
func (m *WaypointMap) segment(i int) (a, b r2.Point, s0 float64) {
	next := (i + 1) % len(m.waypoints)
	return m.waypoints[i].Point, m.waypoints[next].Point, m.waypoints[i].S
}

// ToCartesian places s along the segment containing it and d along that segment's right normal.
func (m *WaypointMap) ToCartesian(s, d float64) r2.Point {
	s = wrap(s, m.maxS)
	// index of the last waypoint at or before s
	i := sort.Search(len(m.waypoints), func(j int) bool { return m.waypoints[j].S > s }) - 1
	if i < 0 {
		// s before the first waypoint belongs to the closing segment
		i = len(m.waypoints) - 1
		s += m.maxS
	}
	a, b, s0 := m.segment(i)
	heading := math.Atan2(b.Y-a.Y, b.X-a.X)
	sin, cos := math.Sincos(heading)
	segS := s - s0
	return r2.Point{
		X: a.X + segS*cos + d*sin,
		Y: a.Y + segS*sin - d*cos,
	}
}

// ToFrenet projects p onto the nearest centerline segment.
func (m *WaypointMap) ToFrenet(p r2.Point) (s, d float64) {
	best := math.Inf(1)
	for i := range m.waypoints {
		a, b, s0 := m.segment(i)
		ab := b.Sub(a)
		length := ab.Norm()
		if length == 0 {
			continue
		}
		u := ab.Mul(1 / length)
		t := math.Max(0, math.Min(length, p.Sub(a).Dot(u)))
		foot := a.Add(u.Mul(t))
		dist := p.Sub(foot).Norm()
		if dist < best {
			best = dist
			right := r2.Point{X: u.Y, Y: -u.X}
			s = wrap(s0+t, m.maxS)
			d = p.Sub(a).Dot(right)
		}
	}
	return s, d
}
