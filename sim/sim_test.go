package sim

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/multierr"
	"go.viam.com/test"

	"go.viam.com/lanetraj/logging"
	"go.viam.com/lanetraj/planner"
	"go.viam.com/lanetraj/roadmap"
)

func laneChangeConfig() Config {
	return Config{
		Cycles:         300,
		PointsPerCycle: 5,
		TargetLane:     1,
		TargetSpeed:    10,
		Start:          Start{S: 0, D: 2, Speed: 0},
	}
}

func TestRunLaneChangeOnStraightRoad(t *testing.T) {
	logger, logs := logging.NewObservedTestLogger(t)
	result, err := Run(context.Background(), laneChangeConfig(), roadmap.StraightMap{}, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(result.Steps), test.ShouldEqual, 300*5)
	test.That(t, len(result.Cycles), test.ShouldEqual, 300)

	summary := result.Summary
	test.That(t, summary.FinalD, test.ShouldAlmostEqual, 6, 0.1)
	test.That(t, summary.LaneChanges, test.ShouldEqual, 1)
	test.That(t, summary.MaxSpeed, test.ShouldBeLessThan, 10.5)
	test.That(t, summary.MaxAccel, test.ShouldBeLessThan, 10)
	test.That(t, summary.Distance, test.ShouldBeGreaterThan, 200)
	test.That(t, summary.FinalS, test.ShouldAlmostEqual, result.Steps[len(result.Steps)-1].Point.X)

	last := result.Cycles[len(result.Cycles)-1]
	test.That(t, last.PreferredLane, test.ShouldEqual, 1)
	test.That(t, last.Busy, test.ShouldBeFalse)

	// Speed ramps with no step bigger than the configured delta, allowing for path curvature.
	for i := 1; i < len(result.Steps); i++ {
		test.That(t, math.Abs(result.Steps[i].Speed-result.Steps[i-1].Speed), test.ShouldBeLessThan, 0.2)
	}
	test.That(t, logs.FilterMessage("run complete").Len(), test.ShouldEqual, 1)
	test.That(t, logs.FilterMessage("lane change started").Len(), test.ShouldEqual, 1)
}

func TestRunRingRoadHoldsLane(t *testing.T) {
	cfg := Config{
		Cycles:         200,
		PointsPerCycle: 10,
		TargetLane:     1,
		TargetSpeed:    15,
		Start:          Start{D: 6, Speed: 15},
	}
	m := roadmap.CircleMap{Radius: 300}
	result, err := Run(context.Background(), cfg, m, nil)
	test.That(t, err, test.ShouldBeNil)
	for _, step := range result.Steps {
		test.That(t, step.D, test.ShouldAlmostEqual, 6, 0.3)
	}
	test.That(t, result.Summary.LaneChanges, test.ShouldEqual, 0)
	test.That(t, result.Summary.MeanSpeed, test.ShouldAlmostEqual, 15, 0.5)
}

func TestRunLaneSchedule(t *testing.T) {
	cfg := laneChangeConfig()
	cfg.TargetLane = 0
	cfg.Start.Speed = 10
	cfg.LaneSchedule = []LaneChange{{Cycle: 20, Lane: 1}, {Cycle: 200, Lane: 0}}
	cfg.Cycles = 400

	result, err := Run(context.Background(), cfg, roadmap.StraightMap{}, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, result.Cycles[10].RequestedLane, test.ShouldEqual, 0)
	test.That(t, result.Cycles[20].RequestedLane, test.ShouldEqual, 1)
	test.That(t, result.Cycles[250].RequestedLane, test.ShouldEqual, 0)
	test.That(t, result.Summary.LaneChanges, test.ShouldEqual, 2)
	test.That(t, result.Summary.FinalD, test.ShouldAlmostEqual, 2, 0.1)
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, laneChangeConfig(), roadmap.StraightMap{}, nil)
	test.That(t, err, test.ShouldEqual, context.Canceled)
}

func TestRunPlannerError(t *testing.T) {
	cfg := laneChangeConfig()
	cfg.TargetSpeed = 0
	_, err := Run(context.Background(), cfg, roadmap.StraightMap{}, nil)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "cycle 0")

	cfg = laneChangeConfig()
	cfg.Planner = planner.Config{SpeedDelta: -1}
	_, err = Run(context.Background(), cfg, roadmap.StraightMap{}, nil)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{
		Cycles:       0,
		TargetLane:   -1,
		TargetSpeed:  -2,
		LaneSchedule: []LaneChange{{Cycle: 5, Lane: 1}, {Cycle: 5, Lane: -1}},
	}
	err := cfg.Validate("run.json")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, len(multierr.Errors(err)), test.ShouldEqual, 6)

	good := laneChangeConfig()
	test.That(t, good.Validate("run.json"), test.ShouldBeNil)
}

func TestReadConfigAndPlots(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.json")
	raw := `{"cycles": 20, "points_per_cycle": 5, "target_lane": 0, "target_speed": 8,
		"start": {"s": 10, "d": 2, "speed": 0}, "planner": {"horizon_count": 30}}`
	test.That(t, os.WriteFile(path, []byte(raw), 0o600), test.ShouldBeNil)

	cfg, err := ReadConfig(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.Planner.HorizonCount, test.ShouldEqual, 30)
	test.That(t, cfg.Start.S, test.ShouldEqual, 10.)

	result, err := Run(context.Background(), cfg, roadmap.StraightMap{}, nil)
	test.That(t, err, test.ShouldBeNil)

	pathPlot := filepath.Join(dir, "path.png")
	speedPlot := filepath.Join(dir, "speed.png")
	test.That(t, SavePathPlot(result, pathPlot), test.ShouldBeNil)
	test.That(t, SaveSpeedPlot(result, speedPlot), test.ShouldBeNil)
	for _, f := range []string{pathPlot, speedPlot} {
		info, err := os.Stat(f)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, info.Size(), test.ShouldBeGreaterThan, 0)
	}

	test.That(t, SavePathPlot(&Result{}, pathPlot), test.ShouldNotBeNil)

	_, err = ReadConfig(filepath.Join(dir, "missing.json"))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestSummarizeEmpty(t *testing.T) {
	summary, err := Summarize(&Result{}, 0.02)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, summary, test.ShouldResemble, Summary{})
}

func TestSummaryTable(t *testing.T) {
	result := &Result{Steps: []Step{{Speed: 10}, {Speed: 10.5}, {Speed: 11, S: 4, D: 6}}}
	summary, err := Summarize(result, 0.02)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, summary.Distance, test.ShouldAlmostEqual, 31.5*0.02)
	test.That(t, summary.MaxAccel, test.ShouldAlmostEqual, 25.)

	rendered := summary.String()
	test.That(t, rendered, test.ShouldContainSubstring, "max speed")
	test.That(t, rendered, test.ShouldContainSubstring, "11.00")
	test.That(t, rendered, test.ShouldContainSubstring, "6.00")
}
