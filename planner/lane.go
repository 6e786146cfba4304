package planner

import "math"

// LaneState is the hysteresis carried between planning cycles for one vehicle. While Busy, a
// lane change toward PreferredLane is underway and new lane requests are ignored.
//
// A LaneState must be updated by one planning cycle at a time.
type LaneState struct {
	Busy          bool `json:"busy"`
	PreferredLane int  `json:"preferred_lane"`
}

// LaneOf returns the index of the lane containing lateral offset d.
func LaneOf(d, laneWidth float64) int {
	return int(math.Floor(d / laneWidth))
}

// LaneCenter returns the lateral offset of a lane's centerline.
func LaneCenter(lane int, laneWidth float64) float64 {
	return laneWidth/2 + laneWidth*float64(lane)
}

// bandEdges returns the centered band of a lane: the lane minus a quarter width on each side.
func bandEdges(lane int, laneWidth float64) (lo, hi float64) {
	base := laneWidth * float64(lane)
	return base + laneWidth/4, base + 3*laneWidth/4
}

// Update advances the hysteresis with the vehicle's current lateral offset and the lane the
// behavior layer is asking for.
//
// When idle, the requested lane is adopted and a lane change is considered started as soon as d
// leaves the centered band of the lane it is in. When busy, the change completes once d is
// strictly inside the centered band of the preferred lane.
func (ls *LaneState) Update(d float64, requestedLane int, laneWidth float64) (preferredLane int, busy bool) {
	if !ls.Busy {
		ls.PreferredLane = requestedLane
		lo, hi := bandEdges(LaneOf(d, laneWidth), laneWidth)
		if d < lo || d > hi {
			ls.Busy = true
		}
	} else {
		lo, hi := bandEdges(ls.PreferredLane, laneWidth)
		if d > lo && d < hi {
			ls.Busy = false
		}
	}
	return ls.PreferredLane, ls.Busy
}
