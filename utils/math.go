// Package utils contains small numeric helpers shared by the planner packages.
package utils

import (
	"math"
)

// DegToRad converts degrees to radians.
func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(radians float64) float64 {
	return radians * 180 / math.Pi
}

// WrapToPi returns the given angle in the [-pi, pi) range.
func WrapToPi(theta float64) float64 {
	return theta - 2*math.Pi*math.Floor((theta+math.Pi)/(2*math.Pi))
}

// StepToward moves current toward target by at most maxDelta and never past target.
func StepToward(current, target, maxDelta float64) float64 {
	switch {
	case current < target:
		return math.Min(current+maxDelta, target)
	case current > target:
		return math.Max(current-maxDelta, target)
	default:
		return current
	}
}

// MaxInt returns the larger of two ints.
func MaxInt(a, b int) int {
	if a < b {
		return b
	}
	return a
}

// Float64AlmostEqual compares two float64s within epsilon.
func Float64AlmostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) <= epsilon
}
