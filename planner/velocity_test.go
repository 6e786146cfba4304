package planner

import (
	"math"
	"testing"

	"go.viam.com/test"
)

type lineCurve struct{ slope float64 }

func (c lineCurve) Evaluate(x float64) float64 { return c.slope * x }

func TestSeedSpeed(t *testing.T) {
	tl := Telemetry{Speed: 7.5}
	test.That(t, SeedSpeed(&tl, DefaultStepDurationSec), test.ShouldEqual, 7.5)

	tl.PreviousPathX = []float64{1}
	tl.PreviousPathY = []float64{1}
	test.That(t, SeedSpeed(&tl, DefaultStepDurationSec), test.ShouldEqual, 7.5)

	tl.PreviousPathX = []float64{0, 0.3, 0.6}
	tl.PreviousPathY = []float64{0, 0.4, 0.8}
	test.That(t, SeedSpeed(&tl, DefaultStepDurationSec), test.ShouldAlmostEqual, 0.5/0.02)

	tl.PreviousPathX = []float64{2, 2}
	tl.PreviousPathY = []float64{3, 3}
	seed := SeedSpeed(&tl, DefaultStepDurationSec)
	test.That(t, seed, test.ShouldEqual, 0.)
	test.That(t, math.IsNaN(seed), test.ShouldBeFalse)
}

func TestSampleCurveRamp(t *testing.T) {
	cfg := DefaultConfig()
	for _, tc := range []struct {
		name          string
		seed, target  float64
		steps         int
		expectedFinal float64
	}{
		{"accelerate", 0, 10, 50, 50 * 0.13},
		{"reach target", 9.5, 10, 50, 10},
		{"decelerate", 20, 10, 30, 20 - 30*0.13},
		{"settle from above", 10.05, 10, 10, 10},
		{"hold", 10, 10, 5, 10},
	} {
		t.Run(tc.name, func(t *testing.T) {
			profile := SampleCurve(lineCurve{0.5}, tc.seed, tc.target, tc.steps, cfg)
			test.That(t, len(profile.Points), test.ShouldEqual, tc.steps)
			test.That(t, len(profile.Speeds), test.ShouldEqual, tc.steps)

			prevSpeed, prevX := tc.seed, 0.
			reached := false
			for i, speed := range profile.Speeds {
				test.That(t, math.Abs(speed-prevSpeed), test.ShouldBeLessThanOrEqualTo, cfg.SpeedDelta+1e-12)
				if reached {
					test.That(t, speed, test.ShouldEqual, tc.target)
				}
				if tc.seed <= tc.target {
					test.That(t, speed, test.ShouldBeLessThanOrEqualTo, tc.target)
				} else {
					test.That(t, speed, test.ShouldBeGreaterThanOrEqualTo, tc.target)
				}
				reached = reached || speed == tc.target

				p := profile.Points[i]
				test.That(t, p.X-prevX, test.ShouldAlmostEqual, speed*cfg.StepDurationSec)
				test.That(t, p.Y, test.ShouldAlmostEqual, 0.5*p.X)
				prevSpeed, prevX = speed, p.X
			}
			test.That(t, prevSpeed, test.ShouldAlmostEqual, tc.expectedFinal, 1e-9)
		})
	}
}

func TestSampleCurveNoSteps(t *testing.T) {
	for _, steps := range []int{0, -3} {
		profile := SampleCurve(lineCurve{1}, 3, 10, steps, DefaultConfig())
		test.That(t, profile.Points, test.ShouldBeEmpty)
		test.That(t, profile.Speeds, test.ShouldBeEmpty)
	}
}
