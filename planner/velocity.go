package planner

import (
	"math"

	"github.com/golang/geo/r2"

	"go.viam.com/lanetraj/utils"
)

// Curve is a single-valued function y(x) in the vehicle frame.
type Curve interface {
	Evaluate(x float64) float64
}

// SeedSpeed returns the speed the profile starts from: the reported speed when there is no usable
// previous path, else the speed implied by the previous path's last step. A zero-length last step
// yields zero.
func SeedSpeed(tl *Telemetry, stepDuration float64) float64 {
	path := tl.PreviousPath()
	n := len(path)
	if n < 2 {
		return tl.Speed
	}
	ds := path[n-1].Sub(path[n-2]).Norm()
	if ds == 0 || math.IsNaN(ds) || math.IsInf(ds, 0) {
		return 0
	}
	return ds / stepDuration
}

// Profile is a sampled stretch of curve in the vehicle frame.
type Profile struct {
	Points []r2.Point
	// Speeds[i] is the speed used to advance to Points[i].
	Speeds []float64
}

// SampleCurve walks steps points along curve. Every step the speed moves toward targetSpeed by at
// most cfg.SpeedDelta without passing it, and x advances by speed*cfg.StepDurationSec.
func SampleCurve(curve Curve, seedSpeed, targetSpeed float64, steps int, cfg Config) Profile {
	if steps <= 0 {
		return Profile{}
	}
	profile := Profile{
		Points: make([]r2.Point, steps),
		Speeds: make([]float64, steps),
	}
	speed := seedSpeed
	x := 0.
	for i := 0; i < steps; i++ {
		speed = utils.StepToward(speed, targetSpeed, cfg.SpeedDelta)
		x += speed * cfg.StepDurationSec
		profile.Points[i] = r2.Point{X: x, Y: curve.Evaluate(x)}
		profile.Speeds[i] = speed
	}
	return profile
}
