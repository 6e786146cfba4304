package planner

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestExtractReferenceFromVehicle(t *testing.T) {
	for _, heading := range []float64{0, 30, 90, -135, 359} {
		for _, path := range [][]float64{nil, {7}} {
			tl := Telemetry{X: 12, Y: -4, Heading: heading, PreviousPathX: path, PreviousPathY: path}
			ref := ExtractReference(&tl)
			rad := heading * math.Pi / 180
			test.That(t, ref.Reference.Point.X, test.ShouldEqual, 12.)
			test.That(t, ref.Reference.Point.Y, test.ShouldEqual, -4.)
			test.That(t, ref.Reference.Heading, test.ShouldAlmostEqual, rad)

			back := ref.Reference.Point.Sub(ref.Previous)
			test.That(t, back.Norm(), test.ShouldAlmostEqual, 1)
			test.That(t, back.X, test.ShouldAlmostEqual, math.Cos(rad))
			test.That(t, back.Y, test.ShouldAlmostEqual, math.Sin(rad))
		}
	}
}

func TestExtractReferenceFromPreviousPath(t *testing.T) {
	tl := Telemetry{
		X: 0, Y: 0, Heading: 90,
		PreviousPathX: []float64{1, 2, 3, 3.5},
		PreviousPathY: []float64{0, 0.1, 0.3, 0.9},
	}
	ref := ExtractReference(&tl)
	test.That(t, ref.Reference.Point.X, test.ShouldEqual, 3.5)
	test.That(t, ref.Reference.Point.Y, test.ShouldEqual, 0.9)
	test.That(t, ref.Previous.X, test.ShouldEqual, 3.)
	test.That(t, ref.Previous.Y, test.ShouldEqual, 0.3)
	test.That(t, ref.Reference.Heading, test.ShouldAlmostEqual, math.Atan2(0.9-0.3, 3.5-3))
}

func TestExtractReferenceRepeatedTail(t *testing.T) {
	tl := Telemetry{PreviousPathX: []float64{5, 5}, PreviousPathY: []float64{1, 1}}
	ref := ExtractReference(&tl)
	test.That(t, ref.Reference.Heading, test.ShouldEqual, math.Atan2(0, 0))
	test.That(t, math.IsNaN(ref.Reference.Heading), test.ShouldBeFalse)
}
