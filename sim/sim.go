// Package sim closes the loop around the planner. It stands in for the downstream controller,
// which drives the vehicle through the first points of each trajectory, and for the telemetry
// source, which reports the resulting pose and the unconsumed tail back to the next cycle.
package sim

import (
	"context"
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"go.viam.com/lanetraj/logging"
	"go.viam.com/lanetraj/planner"
	"go.viam.com/lanetraj/roadmap"
	"go.viam.com/lanetraj/spatialmath"
	"go.viam.com/lanetraj/utils"
)

// Step is the vehicle state after driving to one trajectory point.
type Step struct {
	Time  float64  `json:"time"`
	Point r2.Point `json:"point"`
	S     float64  `json:"s"`
	D     float64  `json:"d"`
	Speed float64  `json:"speed"`
}

// CycleRecord is the planner's lane state at the end of one cycle.
type CycleRecord struct {
	Cycle         int  `json:"cycle"`
	RequestedLane int  `json:"requested_lane"`
	PreferredLane int  `json:"preferred_lane"`
	Busy          bool `json:"busy"`
}

// Result is the full history of a run.
type Result struct {
	Steps   []Step        `json:"steps"`
	Cycles  []CycleRecord `json:"cycles"`
	Summary Summary       `json:"summary"`
}

// Run drives the vehicle for cfg.Cycles planning cycles on m.
func Run(ctx context.Context, cfg Config, m roadmap.FrenetMap, logger logging.Logger) (*Result, error) {
	if err := cfg.Validate("sim"); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewBlankLogger("sim")
	}
	p, err := planner.New(cfg.Planner, logger.Sublogger("planner"))
	if err != nil {
		return nil, err
	}
	dt := p.Config().StepDurationSec

	pos := m.ToCartesian(cfg.Start.S, cfg.Start.D)
	heading := spatialmath.HeadingBetween(pos, m.ToCartesian(cfg.Start.S+1, cfg.Start.D))
	s, d, speed := cfg.Start.S, cfg.Start.D, cfg.Start.Speed

	var state planner.LaneState
	var remaining []r2.Point
	result := &Result{
		Steps:  make([]Step, 0, cfg.Cycles*cfg.PointsPerCycle),
		Cycles: make([]CycleRecord, 0, cfg.Cycles),
	}
	elapsed := 0.
	for cycle := 0; cycle < cfg.Cycles; cycle++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		lane := cfg.requestedLane(cycle)
		prevX, prevY := planner.Points(remaining)
		tl := planner.Telemetry{
			X: pos.X, Y: pos.Y, Heading: utils.RadToDeg(heading),
			S: s, D: d, Speed: speed,
			PreviousPathX: prevX, PreviousPathY: prevY,
		}
		plan, err := p.Plan(&state, tl, m, lane, cfg.TargetSpeed)
		if err != nil {
			return nil, errors.Wrapf(err, "cycle %d", cycle)
		}
		result.Cycles = append(result.Cycles, CycleRecord{
			Cycle:         cycle,
			RequestedLane: lane,
			PreferredLane: plan.PreferredLane,
			Busy:          plan.Busy,
		})

		points := plan.Trajectory.Points()
		consumed := cfg.PointsPerCycle
		if consumed > len(points) {
			consumed = len(points)
		}
		for _, next := range points[:consumed] {
			step := next.Sub(pos)
			if dist := step.Norm(); dist > 0 {
				speed = dist / dt
				heading = math.Atan2(step.Y, step.X)
			} else {
				speed = 0
			}
			pos = next
			s, d = m.ToFrenet(pos)
			elapsed += dt
			result.Steps = append(result.Steps, Step{Time: elapsed, Point: pos, S: s, D: d, Speed: speed})
		}
		remaining = points[consumed:]
	}

	summary, err := Summarize(result, dt)
	if err != nil {
		return nil, err
	}
	result.Summary = summary
	logger.Infow("run complete",
		"cycles", cfg.Cycles,
		"distance", summary.Distance,
		"mean_speed", summary.MeanSpeed,
		"max_accel", summary.MaxAccel,
		"lane_changes", summary.LaneChanges,
	)
	return result, nil
}
