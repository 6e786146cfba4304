package planner

import (
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"go.viam.com/lanetraj/logging"
	"go.viam.com/lanetraj/roadmap"
	"go.viam.com/lanetraj/spatialmath"
	"go.viam.com/lanetraj/spline"
)

// Planner turns telemetry and a lane/speed target into the next trajectory. A Planner holds no
// per-vehicle state and may be shared; the LaneState passed to each call must not be.
type Planner struct {
	cfg    Config
	kind   spline.Kind
	logger logging.Logger
}

// Plan is a trajectory along with the intermediate state that produced it.
type Plan struct {
	Trajectory Trajectory
	// Speeds holds the profiled speed of each newly generated point.
	Speeds        []float64
	Reference     ReferenceState
	Anchors       AnchorSet
	PreferredLane int
	Busy          bool
	StepBudget    int
}

// New returns a Planner for cfg. Zero fields of cfg take their defaults.
func New(cfg Config, logger logging.Logger) (*Planner, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate("planner"); err != nil {
		return nil, err
	}
	kind, err := spline.ParseKind(cfg.Spline)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewBlankLogger("planner")
	}
	return &Planner{cfg: cfg, kind: kind, logger: logger}, nil
}

// Config returns the planner's effective config.
func (p *Planner) Config() Config {
	return p.cfg
}

// Generate returns the trajectory for this cycle. See Plan.
func (p *Planner) Generate(
	state *LaneState,
	tl Telemetry,
	m roadmap.Map,
	targetLane int,
	targetSpeed float64,
) (Trajectory, error) {
	plan, err := p.Plan(state, tl, m, targetLane, targetSpeed)
	if err != nil {
		return Trajectory{}, err
	}
	return plan.Trajectory, nil
}

// Plan runs one planning cycle: it updates state, then extends the previous path with points
// sampled from a curve through the reference state and three future lane-center waypoints.
func (p *Planner) Plan(
	state *LaneState,
	tl Telemetry,
	m roadmap.Map,
	targetLane int,
	targetSpeed float64,
) (*Plan, error) {
	if state == nil {
		return nil, ErrNilLaneState
	}
	if targetLane < 0 || targetSpeed < 0 {
		return nil, newInvalidTargetError(targetLane, targetSpeed)
	}
	if err := tl.validate(); err != nil {
		return nil, err
	}

	wasBusy := state.Busy
	lane, busy := state.Update(tl.D, targetLane, p.cfg.LaneWidth)
	if busy != wasBusy {
		if busy {
			p.logger.Infow("lane change started", "preferred_lane", lane, "d", tl.D)
		} else {
			p.logger.Infow("lane change complete", "lane", lane, "d", tl.D)
		}
	}

	previous := tl.PreviousPath()
	plan := &Plan{
		Reference:     ExtractReference(&tl),
		PreferredLane: lane,
		Busy:          busy,
		StepBudget:    StepBudget(p.cfg.HorizonCount, len(previous)),
	}
	if plan.StepBudget == 0 {
		plan.Trajectory = Assemble(previous, nil)
		return plan, nil
	}

	future := FutureAnchors(m, tl.S, lane, targetSpeed, p.cfg)
	plan.Anchors = NewAnchorSet(plan.Reference, future)

	rt := spatialmath.NewRigidTransform(plan.Reference.Reference)
	local := plan.Anchors.ToLocal(rt)
	if err := local.checkIncreasing(); err != nil {
		return nil, err
	}
	curve, err := spline.Fit(p.kind, local[:])
	if err != nil {
		return nil, errors.Wrap(ErrDegenerateAnchors, err.Error())
	}

	seed := SeedSpeed(&tl, p.cfg.StepDurationSec)
	profile := SampleCurve(curve, seed, targetSpeed, plan.StepBudget, p.cfg)
	plan.Speeds = profile.Speeds

	fresh := rt.ToGlobal(profile.Points, profile.Points)
	plan.Trajectory = Assemble(previous, fresh)

	p.logger.Debugw("planned cycle",
		"lane", lane,
		"busy", busy,
		"seed_speed", seed,
		"previous_points", len(previous),
		"new_points", len(fresh),
	)
	return plan, nil
}

// Points is a convenience that splits a point slice into the x and y sequences Telemetry expects.
func Points(points []r2.Point) (xs, ys []float64) {
	xs = make([]float64, len(points))
	ys = make([]float64, len(points))
	for i, pt := range points {
		xs[i], ys[i] = pt.X, pt.Y
	}
	return xs, ys
}
