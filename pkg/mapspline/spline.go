// Package mapspline fits a natural cubic spline through a sequence of
// points parameterized by cumulative chord length, the way a lane
// border is resampled at arbitrary arc-length.
package mapspline

import (
	"sort"

	"github.com/go-roadmap/roadmap-core/pkg/maperr"
	"github.com/go-roadmap/roadmap-core/pkg/mapgeom"
)

// BorderSpline holds per-axis cubic coefficients over cumulative
// chord-length intervals. Zero value is not usable; build one with New.
type BorderSpline struct {
	distances []float64
	ax, bx, cx, dx []float64
	ay, by, cy, dy []float64
}

// New fits a spline through points, skipping consecutive duplicates
// (zero chord length). Returns InvalidInput if fewer than two distinct
// points remain after deduplication.
func New(points []mapgeom.MapPoint) (*BorderSpline, error) {
	if len(points) < 2 {
		return nil, maperr.New(maperr.InvalidInput, "insufficient points for spline calculation")
	}

	distances := make([]float64, 0, len(points))
	xs := make([]float64, 0, len(points))
	ys := make([]float64, 0, len(points))

	distances = append(distances, 0.0)
	xs = append(xs, points[0].X)
	ys = append(ys, points[0].Y)

	for i := 1; i < len(points); i++ {
		d := mapgeom.Distance2D(points[i-1], points[i])
		if d == 0.0 {
			continue
		}
		distances = append(distances, distances[len(distances)-1]+d)
		xs = append(xs, points[i].X)
		ys = append(ys, points[i].Y)
	}

	if len(distances) < 2 {
		return nil, maperr.New(maperr.InvalidInput, "insufficient unique points for spline calculation")
	}

	s := &BorderSpline{distances: distances}

	var err error
	s.ax, s.bx, s.cx, s.dx, err = coefficients(distances, xs)
	if err != nil {
		return nil, err
	}
	s.ay, s.by, s.cy, s.dy, err = coefficients(distances, ys)
	if err != nil {
		return nil, err
	}

	return s, nil
}

// coefficients computes natural-cubic-spline a,b,c,d coefficients for
// one axis over the shared distances, solving the tridiagonal system
// for c via the Thomas algorithm (the corpus has no linear-algebra
// dependency to reach for instead).
func coefficients(distances, values []float64) (a, b, c, d []float64, err error) {
	n := len(values) - 1

	a = make([]float64, n)
	b = make([]float64, n)
	c = make([]float64, n+1)
	d = make([]float64, n)

	// Tridiagonal system for c[0..n]: sub-diagonal lo, diagonal diag,
	// super-diagonal hi, right-hand side rhs. Natural boundary
	// conditions pin c[0]=0 and c[n]=0.
	lo := make([]float64, n+1)
	diag := make([]float64, n+1)
	hi := make([]float64, n+1)
	rhs := make([]float64, n+1)

	diag[0] = 1.0
	rhs[0] = 0.0
	diag[n] = 1.0
	rhs[n] = 0.0

	for i := 1; i < n; i++ {
		h1 := distances[i] - distances[i-1]
		h2 := distances[i+1] - distances[i]
		lo[i] = h1
		diag[i] = 2.0 * (h1 + h2)
		hi[i] = h2
		rhs[i] = 3.0 * ((values[i+1]-values[i])/h2 - (values[i]-values[i-1])/h1)
	}

	cVec, err := solveTridiagonal(lo, diag, hi, rhs)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	copy(c, cVec)

	for i := 0; i < n; i++ {
		h := distances[i+1] - distances[i]
		d[i] = (c[i+1] - c[i]) / (3.0 * h)
		b[i] = (values[i+1]-values[i])/h - (2.0*c[i]+c[i+1])*h/3.0
		a[i] = values[i]
	}

	return a, b, c, d, nil
}

// solveTridiagonal solves the system defined by sub-diagonal lo,
// diagonal diag, super-diagonal hi and right-hand side rhs using the
// Thomas algorithm, mutating neither input slice.
func solveTridiagonal(lo, diag, hi, rhs []float64) ([]float64, error) {
	n := len(diag)
	cPrime := make([]float64, n)
	dPrime := make([]float64, n)

	cPrime[0] = hi[0] / diag[0]
	dPrime[0] = rhs[0] / diag[0]

	for i := 1; i < n; i++ {
		denom := diag[i] - lo[i]*cPrime[i-1]
		if denom == 0 {
			return nil, maperr.New(maperr.NumericalFailure, "singular tridiagonal system")
		}
		if i < n-1 {
			cPrime[i] = hi[i] / denom
		}
		dPrime[i] = (rhs[i] - lo[i]*dPrime[i-1]) / denom
	}

	x := make([]float64, n)
	x[n-1] = dPrime[n-1]
	for i := n - 2; i >= 0; i-- {
		x[i] = dPrime[i] - cPrime[i]*x[i+1]
	}

	for _, v := range x {
		if isNaNOrInf(v) {
			return nil, maperr.New(maperr.NumericalFailure, "solution contains NaNs or Infs, unstable system")
		}
	}

	return x, nil
}

func isNaNOrInf(v float64) bool {
	return v != v || v > maxFinite || v < -maxFinite
}

const maxFinite = 1.7976931348623157e+308

// findInterval returns the coefficient-segment index covering s,
// clamping s into [distances[0], distances[last]] first.
func (s *BorderSpline) findInterval(arcLength float64) (int, float64) {
	clamped := arcLength
	if clamped < s.distances[0] {
		clamped = s.distances[0]
	}
	last := len(s.distances) - 1
	if clamped > s.distances[last] {
		clamped = s.distances[last]
	}

	i := sort.SearchFloat64s(s.distances, clamped)
	switch {
	case i == 0:
		return 0, clamped
	case i >= len(s.distances):
		return len(s.distances) - 2, clamped
	default:
		return i - 1, clamped
	}
}

func evaluateCubic(a, b, c, d, ds float64) float64 {
	return a + ds*(b+ds*(c+ds*d))
}

// PointAtS returns the interpolated point at arc-length s, clamped to
// the spline's domain.
func (s *BorderSpline) PointAtS(arcLength float64) mapgeom.MapPoint {
	i, clamped := s.findInterval(arcLength)
	ds := clamped - s.distances[i]
	x := evaluateCubic(s.ax[i], s.bx[i], s.cx[i], s.dx[i], ds)
	y := evaluateCubic(s.ay[i], s.by[i], s.cy[i], s.dy[i], ds)
	return mapgeom.NewMapPoint(x, y)
}

// XDerivativeAtS returns dx/ds at s.
func (s *BorderSpline) XDerivativeAtS(arcLength float64) float64 {
	i, clamped := s.findInterval(arcLength)
	ds := clamped - s.distances[i]
	return s.bx[i] + ds*(2.0*s.cx[i]+3.0*s.dx[i]*ds)
}

// YDerivativeAtS returns dy/ds at s.
func (s *BorderSpline) YDerivativeAtS(arcLength float64) float64 {
	i, clamped := s.findInterval(arcLength)
	ds := clamped - s.distances[i]
	return s.by[i] + ds*(2.0*s.cy[i]+3.0*s.dy[i]*ds)
}

// XSecondDerivativeAtS returns d2x/ds2 at s.
func (s *BorderSpline) XSecondDerivativeAtS(arcLength float64) float64 {
	i, clamped := s.findInterval(arcLength)
	ds := clamped - s.distances[i]
	return 2.0*s.cx[i] + 6.0*s.dx[i]*ds
}

// YSecondDerivativeAtS returns d2y/ds2 at s.
func (s *BorderSpline) YSecondDerivativeAtS(arcLength float64) float64 {
	i, clamped := s.findInterval(arcLength)
	ds := clamped - s.distances[i]
	return 2.0*s.cy[i] + 6.0*s.dy[i]*ds
}

// PointsAtSValues interpolates multiple arc-length values at once.
func (s *BorderSpline) PointsAtSValues(values []float64) []mapgeom.MapPoint {
	points := make([]mapgeom.MapPoint, len(values))
	for i, v := range values {
		points[i] = s.PointAtS(v)
	}
	return points
}

// TotalLength returns the spline's arc-length domain upper bound.
func (s *BorderSpline) TotalLength() float64 {
	return s.distances[len(s.distances)-1]
}
