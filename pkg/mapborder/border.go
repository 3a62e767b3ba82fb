// Package mapborder models a lane edge as an ordered polyline with an
// arc-length parameterization, an optional spline, and a uniformly
// resampled interpolation used for width queries and quadtree seeding.
package mapborder

import (
	"math"

	"github.com/go-roadmap/roadmap-core/pkg/maperr"
	"github.com/go-roadmap/roadmap-core/pkg/mapgeom"
	"github.com/go-roadmap/roadmap-core/pkg/mapspline"
)

// duplicateEpsilon is the arc-length gap below which two consecutive
// points are treated as the same point.
const duplicateEpsilon = 1e-6

// Border is a single polyline along a lane edge or a reference line.
type Border struct {
	Points             []mapgeom.MapPoint
	Spline             *mapspline.BorderSpline
	InterpolatedPoints []mapgeom.MapPoint
	Length             float64
}

// ComputeSValues assigns s = cumulative chord length to Points in
// place, dropping points within duplicateEpsilon of their predecessor.
func (b *Border) ComputeSValues() {
	if len(b.Points) == 0 {
		return
	}

	deduped := make([]mapgeom.MapPoint, 0, len(b.Points))
	first := b.Points[0]
	first.S = 0.0
	deduped = append(deduped, first)

	for i := 1; i < len(b.Points); i++ {
		prev := deduped[len(deduped)-1]
		ds := mapgeom.Distance2D(prev, b.Points[i])
		if ds < duplicateEpsilon {
			continue
		}
		p := b.Points[i]
		p.S = prev.S + ds
		deduped = append(deduped, p)
	}

	b.Points = deduped
}

// ComputeLength recomputes s-values and returns the resulting length.
func (b *Border) ComputeLength() float64 {
	b.ComputeSValues()
	if len(b.Points) == 0 {
		b.Length = 0
		return 0
	}
	b.Length = b.Points[len(b.Points)-1].S - b.Points[0].S
	return b.Length
}

// InitializeSpline builds a BorderSpline from Points.
func (b *Border) InitializeSpline() error {
	spline, err := mapspline.New(b.Points)
	if err != nil {
		return err
	}
	b.Spline = spline
	return nil
}

// InterpolateBorder evaluates the spline at each of sValues, producing
// InterpolatedPoints in order. Builds the spline first if absent.
func (b *Border) InterpolateBorder(sValues []float64) error {
	if b.Spline == nil {
		if err := b.InitializeSpline(); err != nil {
			return err
		}
	}

	points := b.Spline.PointsAtSValues(sValues)
	for i := range points {
		points[i].S = sValues[i]
	}
	b.InterpolatedPoints = points
	return nil
}

// turningAngle returns the signed angle in radians between segment
// (v1x,v1y) and segment (v2x,v2y).
func turningAngle(v1x, v1y, v2x, v2y float64) float64 {
	dot := v1x*v2x + v1y*v2y
	cross := v1x*v2y - v1y*v2x
	return math.Atan2(cross, dot)
}

// PreprocessPointsForSpline drops interior points whose incoming/
// outgoing turning angle exceeds angleThresholdDegrees, removing sharp
// kinks that would destabilize the spline fit.
func (b *Border) PreprocessPointsForSpline(angleThresholdDegrees float64) {
	if len(b.Points) < 3 {
		return
	}

	thresholdRad := angleThresholdDegrees * math.Pi / 180.0

	kept := make([]mapgeom.MapPoint, 0, len(b.Points))
	kept = append(kept, b.Points[0])

	for i := 1; i < len(b.Points)-1; i++ {
		prev := kept[len(kept)-1]
		cur := b.Points[i]
		next := b.Points[i+1]

		angle := turningAngle(cur.X-prev.X, cur.Y-prev.Y, next.X-cur.X, next.Y-cur.Y)
		if math.Abs(angle) > thresholdRad {
			continue
		}
		kept = append(kept, cur)
	}

	kept = append(kept, b.Points[len(b.Points)-1])
	b.Points = kept
	b.ComputeSValues()
}

// projectOntoSegment returns the s-value and distance of the closest
// point to p on segment a→c, where a.S and c.S bracket the result.
func projectOntoSegment(p, a, c mapgeom.MapPoint) (s, dist float64) {
	dx, dy := c.X-a.X, c.Y-a.Y
	segLenSq := dx*dx + dy*dy
	if segLenSq == 0 {
		return a.S, mapgeom.Distance2D(p, a)
	}

	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / segLenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	projX := a.X + t*dx
	projY := a.Y + t*dy
	return a.S + t*(c.S-a.S), mapgeom.DistanceXY(p.X, p.Y, projX, projY)
}

// FindNearestS returns the arc-length of the closest point to point on
// the current (un-interpolated) polyline, via piecewise-linear
// projection onto every segment. Ties break to the smaller s.
func (b *Border) FindNearestS(point mapgeom.MapPoint) float64 {
	if len(b.Points) == 0 {
		return 0
	}
	if len(b.Points) == 1 {
		return b.Points[0].S
	}

	bestDist := math.Inf(1)
	bestS := b.Points[0].S

	for i := 0; i < len(b.Points)-1; i++ {
		s, dist := projectOntoSegment(point, b.Points[i], b.Points[i+1])
		if dist < bestDist-1e-12 {
			bestDist = dist
			bestS = s
		} else if math.Abs(dist-bestDist) <= 1e-12 && s < bestS {
			bestS = s
		}
	}

	return bestS
}

// GetInterpolatedPoint evaluates the spline at s, building it first if
// absent, clamping s into the border's domain.
func (b *Border) GetInterpolatedPoint(s float64) (mapgeom.MapPoint, error) {
	if b.Spline == nil {
		if err := b.InitializeSpline(); err != nil {
			return mapgeom.MapPoint{}, err
		}
	}
	p := b.Spline.PointAtS(s)
	p.S = s
	return p, nil
}

// MakeClipped returns a new Border holding the subset of Points with
// s in [sStart, sEnd] (order-normalized), plus interpolated endpoints
// exactly at the boundaries.
func (b *Border) MakeClipped(sStart, sEnd float64) (Border, error) {
	lo, hi := sStart, sEnd
	if lo > hi {
		lo, hi = hi, lo
	}

	startPoint, err := b.GetInterpolatedPoint(lo)
	if err != nil {
		return Border{}, err
	}
	endPoint, err := b.GetInterpolatedPoint(hi)
	if err != nil {
		return Border{}, err
	}

	points := make([]mapgeom.MapPoint, 0, len(b.Points)+2)
	points = append(points, startPoint)
	for _, p := range b.Points {
		if p.S > lo && p.S < hi {
			points = append(points, p)
		}
	}
	points = append(points, endPoint)

	clipped := Border{Points: points}
	clipped.ComputeLength()
	return clipped, nil
}

// ReparameterizeBasedOnReference overwrites b's s-values with the
// arc-length of each point's nearest projection onto referenceLine, so
// b's s domain aligns with the reference line's.
func (b *Border) ReparameterizeBasedOnReference(referenceLine *Border) {
	if len(referenceLine.Points) == 0 {
		return
	}
	for i := range b.Points {
		b.Points[i].S = referenceLine.FindNearestS(b.Points[i])
	}
	if len(b.Points) > 0 {
		b.Length = b.Points[len(b.Points)-1].S - b.Points[0].S
	}
}

// Borders is the inner/outer/center triple that makes up one lane's
// geometry.
type Borders struct {
	Inner  Border
	Outer  Border
	Center Border
}

// sampleSValues returns evenly spaced arc-lengths from 0 to length,
// inclusive of length.
func sampleSValues(length, spacing float64) []float64 {
	if spacing <= 0 {
		spacing = 0.5
	}
	values := make([]float64, 0, int(length/spacing)+2)
	for s := 0.0; s < length; s += spacing {
		values = append(values, s)
	}
	values = append(values, length)
	return values
}

// InterpolateBorders resamples both Inner and Outer at a fixed spacing
// in place, recomputing their s-values and rebuilding their splines
// first.
func InterpolateBorders(borders *Borders, spacingS float64) error {
	for _, border := range []*Border{&borders.Inner, &borders.Outer} {
		border.ComputeSValues()
		if err := border.InitializeSpline(); err != nil {
			return err
		}
		sValues := sampleSValues(border.Spline.TotalLength(), spacingS)
		if err := border.InterpolateBorder(sValues); err != nil {
			return err
		}
	}
	return nil
}

// ProcessCenter derives Center as the pairwise mean of Inner and
// Outer's InterpolatedPoints, requiring InterpolateBorders to have run
// first.
func ProcessCenter(borders *Borders) error {
	inner := borders.Inner.InterpolatedPoints
	outer := borders.Outer.InterpolatedPoints

	n := len(inner)
	if len(outer) < n {
		n = len(outer)
	}
	if n == 0 {
		return maperr.New(maperr.InvalidInput, "cannot compute center from empty interpolated borders")
	}

	points := make([]mapgeom.MapPoint, n)
	for i := 0; i < n; i++ {
		points[i] = mapgeom.NewMapPoint((inner[i].X+outer[i].X)/2, (inner[i].Y+outer[i].Y)/2)
	}

	borders.Center = Border{Points: points}
	borders.Center.ComputeLength()
	borders.Center.InterpolatedPoints = append([]mapgeom.MapPoint(nil), borders.Center.Points...)
	return nil
}

// SetParentID stamps parentID onto every point of Inner, Outer and
// Center, including their interpolated samples.
func SetParentID(borders *Borders, parentID uint64) {
	setBorderParentID(&borders.Inner, parentID)
	setBorderParentID(&borders.Outer, parentID)
	setBorderParentID(&borders.Center, parentID)
}

func setBorderParentID(b *Border, parentID uint64) {
	for i := range b.Points {
		b.Points[i].ParentID = parentID
	}
	for i := range b.InterpolatedPoints {
		b.InterpolatedPoints[i].ParentID = parentID
	}
}
