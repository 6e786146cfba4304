package planner

import (
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"go.viam.com/lanetraj/roadmap"
	"go.viam.com/lanetraj/spatialmath"
)

const (
	// NumFutureAnchors is the number of lane-center waypoints requested ahead of the vehicle.
	NumFutureAnchors = 3
	// NumAnchors is the total anchor count: previous point, reference point, future waypoints.
	NumAnchors = NumFutureAnchors + 2
)

// AnchorSet holds the points a cycle's curve is fit through, in order.
type AnchorSet [NumAnchors]r2.Point

// FutureAnchors asks the map for lane-center waypoints ahead of s. The i-th waypoint sits
// targetSpeed*lookaheadFactor*(i+2) further along the road, so faster targets spread the anchors
// and flatten the curve.
func FutureAnchors(
	m roadmap.Map,
	s float64,
	lane int,
	targetSpeed float64,
	cfg Config,
) [NumFutureAnchors]r2.Point {
	var anchors [NumFutureAnchors]r2.Point
	d := LaneCenter(lane, cfg.LaneWidth)
	spacing := targetSpeed * cfg.LookaheadFactor
	for i := range anchors {
		anchors[i] = m.ToCartesian(s+spacing*float64(i+2), d)
	}
	return anchors
}

// NewAnchorSet orders the reference state and future waypoints into an AnchorSet.
func NewAnchorSet(ref ReferenceState, future [NumFutureAnchors]r2.Point) AnchorSet {
	var set AnchorSet
	set[0] = ref.Previous
	set[1] = ref.Reference.Point
	copy(set[2:], future[:])
	return set
}

// ToLocal returns the anchors expressed in the frame of rt.
func (a AnchorSet) ToLocal(rt spatialmath.RigidTransform) AnchorSet {
	var local AnchorSet
	rt.ToLocal(local[:], a[:])
	return local
}

// checkIncreasing reports ErrDegenerateAnchors unless x strictly increases across the set.
func (a AnchorSet) checkIncreasing() error {
	for i := 1; i < len(a); i++ {
		if !(a[i].X > a[i-1].X) {
			return errors.Wrapf(ErrDegenerateAnchors, "local x[%d]=%.4f does not exceed x[%d]=%.4f", i, a[i].X, i-1, a[i-1].X)
		}
	}
	return nil
}
