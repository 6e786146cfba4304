// Package spline fits smooth single-valued curves y = f(x) through a small set of anchor points.
package spline

import (
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/interp"
)

// Kind names a cubic interpolation scheme.
type Kind string

const (
	// Natural is a C2 cubic spline with zero second derivative at both ends.
	Natural Kind = "natural"
	// Akima is a C1 spline that resists overshoot near abrupt changes.
	Akima Kind = "akima"
	// FritschButland is a C1 monotone-preserving cubic.
	FritschButland Kind = "fritsch_butland"
)

// MinPoints is the fewest anchors any Kind can be fit through.
const MinPoints = 3

var (
	// ErrTooFewPoints is returned when fewer than MinPoints anchors are given.
	ErrTooFewPoints = errors.New("too few points to fit a spline")
	// ErrNotIncreasing is returned when anchor x values are not strictly increasing.
	ErrNotIncreasing = errors.New("spline x values are not strictly increasing")
	// ErrUnknownKind is returned for an unrecognized Kind.
	ErrUnknownKind = errors.New("unknown spline kind")
)

// ParseKind validates a Kind by name. The empty string selects Natural.
func ParseKind(name string) (Kind, error) {
	switch k := Kind(name); k {
	case "":
		return Natural, nil
	case Natural, Akima, FritschButland:
		return k, nil
	}
	return "", errors.Wrapf(ErrUnknownKind, "%q", name)
}

type cubic interface {
	Fit(xs, ys []float64) error
	Predict(x float64) float64
	PredictDerivative(x float64) float64
}

func newCubic(kind Kind) (cubic, error) {
	switch kind {
	case Natural, "":
		return &interp.NaturalCubic{}, nil
	case Akima:
		return &interp.AkimaSpline{}, nil
	case FritschButland:
		return &interp.FritschButland{}, nil
	}
	return nil, errors.Wrapf(ErrUnknownKind, "%q", kind)
}

// Spline is a fitted curve. Inside the anchor range it follows the cubic; outside it continues
// along the tangent at the nearest end, so value and slope stay continuous everywhere.
type Spline struct {
	kind   Kind
	c      cubic
	lo, hi r2.Point
	loDyDx float64
	hiDyDx float64
}

// Fit returns a Spline of the given Kind interpolating every point exactly.
func Fit(kind Kind, points []r2.Point) (*Spline, error) {
	if len(points) < MinPoints {
		return nil, errors.Wrapf(ErrTooFewPoints, "got %d, need %d", len(points), MinPoints)
	}
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		if i > 0 && !(p.X > points[i-1].X) {
			return nil, errors.Wrapf(ErrNotIncreasing, "x[%d]=%g after x[%d]=%g", i, p.X, i-1, points[i-1].X)
		}
		xs[i], ys[i] = p.X, p.Y
	}

	c, err := newCubic(kind)
	if err != nil {
		return nil, err
	}
	if err := c.Fit(xs, ys); err != nil {
		return nil, errors.Wrapf(err, "fitting %s spline", kind)
	}

	last := len(points) - 1
	return &Spline{
		kind:   kind,
		c:      c,
		lo:     points[0],
		hi:     points[last],
		loDyDx: c.PredictDerivative(xs[0]),
		hiDyDx: c.PredictDerivative(xs[last]),
	}, nil
}

// Evaluate returns y at x.
func (s *Spline) Evaluate(x float64) float64 {
	switch {
	case x < s.lo.X:
		return s.lo.Y + s.loDyDx*(x-s.lo.X)
	case x > s.hi.X:
		return s.hi.Y + s.hiDyDx*(x-s.hi.X)
	}
	return s.c.Predict(x)
}

// Slope returns dy/dx at x.
func (s *Spline) Slope(x float64) float64 {
	switch {
	case x < s.lo.X:
		return s.loDyDx
	case x > s.hi.X:
		return s.hiDyDx
	}
	return s.c.PredictDerivative(x)
}

// Domain returns the x range covered by the anchors.
func (s *Spline) Domain() (lo, hi float64) {
	return s.lo.X, s.hi.X
}

// Kind returns the interpolation scheme the spline was fit with.
func (s *Spline) Kind() Kind {
	return s.kind
}
