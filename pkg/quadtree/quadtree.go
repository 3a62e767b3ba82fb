// Package quadtree implements a generic axis-aligned adaptive point
// index: insert, axis-aligned range query, radius query, and
// predicate-filtered best-first nearest-neighbor.
package quadtree

import (
	"math"
	"sort"
)

// DefaultCapacity is the point count a leaf holds before it subdivides.
const DefaultCapacity = 10

// Point is anything a Quadtree can index: a planar coordinate.
type Point interface {
	GetX() float64
	GetY() float64
}

// Boundary is an axis-aligned rectangle [XMin,XMax]x[YMin,YMax].
type Boundary struct {
	XMin, XMax, YMin, YMax float64
}

// Contains reports whether (x,y) lies within the boundary, inclusive.
func (b Boundary) Contains(x, y float64) bool {
	return x >= b.XMin && x <= b.XMax && y >= b.YMin && y <= b.YMax
}

// Intersects reports whether b and other overlap.
func (b Boundary) Intersects(other Boundary) bool {
	return !(other.XMin > b.XMax || other.XMax < b.XMin || other.YMin > b.YMax || other.YMax < b.YMin)
}

// DistanceToPoint returns the shortest distance from (x,y) to the
// boundary, zero if the point lies inside.
func (b Boundary) DistanceToPoint(x, y float64) float64 {
	dx := math.Max(math.Max(b.XMin-x, 0.0), x-b.XMax)
	dy := math.Max(math.Max(b.YMin-y, 0.0), y-b.YMax)
	return math.Hypot(dx, dy)
}

// IntersectsCircle reports whether the circle centered at (cx,cy) with
// the given radius touches the boundary.
func (b Boundary) IntersectsCircle(cx, cy, radius float64) bool {
	closestX := clamp(cx, b.XMin, b.XMax)
	closestY := clamp(cy, b.YMin, b.YMax)
	return math.Hypot(closestX-cx, closestY-cy) <= radius
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Quadtree is a node in the adaptive point index. The zero value is
// not usable; build one with New.
type Quadtree[P Point] struct {
	Boundary Boundary
	Capacity int

	points  []P
	divided bool

	northwest *Quadtree[P]
	northeast *Quadtree[P]
	southwest *Quadtree[P]
	southeast *Quadtree[P]
}

// New builds an empty leaf node over boundary with the given capacity.
// A capacity ≤ 0 falls back to DefaultCapacity.
func New[P Point](boundary Boundary, capacity int) *Quadtree[P] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Quadtree[P]{Boundary: boundary, Capacity: capacity}
}

// Insert adds point to the tree, subdividing this node if it is at
// capacity. Reports false if point falls outside the tree's boundary.
func (q *Quadtree[P]) Insert(point P) bool {
	if !q.Boundary.Contains(point.GetX(), point.GetY()) {
		return false
	}

	if len(q.points) < q.Capacity {
		q.points = append(q.points, point)
		return true
	}

	if !q.divided {
		q.subdivide()
	}

	return q.northwest.Insert(point) || q.northeast.Insert(point) ||
		q.southwest.Insert(point) || q.southeast.Insert(point)
}

func (q *Quadtree[P]) subdivide() {
	xMid := (q.Boundary.XMin + q.Boundary.XMax) / 2
	yMid := (q.Boundary.YMin + q.Boundary.YMax) / 2

	q.northwest = New[P](Boundary{q.Boundary.XMin, xMid, yMid, q.Boundary.YMax}, q.Capacity)
	q.northeast = New[P](Boundary{xMid, q.Boundary.XMax, yMid, q.Boundary.YMax}, q.Capacity)
	q.southwest = New[P](Boundary{q.Boundary.XMin, xMid, q.Boundary.YMin, yMid}, q.Capacity)
	q.southeast = New[P](Boundary{xMid, q.Boundary.XMax, q.Boundary.YMin, yMid}, q.Capacity)

	q.divided = true

	for _, p := range q.points {
		if !(q.northwest.Insert(p) || q.northeast.Insert(p) || q.southwest.Insert(p) || q.southeast.Insert(p)) {
			// Boundaries partition the parent exactly; a point that was
			// inside the parent is always inside exactly one child.
			panic("quadtree: point not contained by any child after subdivision")
		}
	}
	q.points = nil
}

// Query appends every point in the subtree contained in rng, in
// NW, NE, SW, SE depth-first order.
func (q *Quadtree[P]) Query(rng Boundary) []P {
	found := make([]P, 0)
	q.query(rng, &found)
	return found
}

func (q *Quadtree[P]) query(rng Boundary, found *[]P) {
	if !q.Boundary.Intersects(rng) {
		return
	}

	for _, p := range q.points {
		if rng.Contains(p.GetX(), p.GetY()) {
			*found = append(*found, p)
		}
	}

	if q.divided {
		q.northwest.query(rng, found)
		q.northeast.query(rng, found)
		q.southwest.query(rng, found)
		q.southeast.query(rng, found)
	}
}

// QueryRange appends every point within radius of (centerX,centerY),
// in NW, NE, SW, SE depth-first order.
func (q *Quadtree[P]) QueryRange(centerX, centerY, radius float64) []P {
	found := make([]P, 0)
	q.queryRange(centerX, centerY, radius, &found)
	return found
}

func (q *Quadtree[P]) queryRange(centerX, centerY, radius float64, found *[]P) {
	if !q.Boundary.IntersectsCircle(centerX, centerY, radius) {
		return
	}

	for _, p := range q.points {
		if math.Hypot(p.GetX()-centerX, p.GetY()-centerY) <= radius {
			*found = append(*found, p)
		}
	}

	if q.divided {
		q.northwest.queryRange(centerX, centerY, radius, found)
		q.northeast.queryRange(centerX, centerY, radius, found)
		q.southwest.queryRange(centerX, centerY, radius, found)
		q.southeast.queryRange(centerX, centerY, radius, found)
	}
}

type childDistance[P Point] struct {
	dist  float64
	child *Quadtree[P]
}

// GetNearestPoint returns the closest point to (queryX,queryY)
// satisfying filter (nil accepts every point), via best-first descent
// pruned by boundary distance. minDist is both the caller's starting
// cutoff (pass +Inf for an unfiltered search) and, on return, the
// distance to the result. Reports false if no point satisfies filter
// within the starting cutoff.
func (q *Quadtree[P]) GetNearestPoint(queryX, queryY float64, minDist *float64, filter func(P) bool) (P, bool) {
	var nearest P
	found := false

	for _, p := range q.points {
		if filter != nil && !filter(p) {
			continue
		}
		dist := math.Hypot(p.GetX()-queryX, p.GetY()-queryY)
		if dist < *minDist {
			*minDist = dist
			nearest = p
			found = true
		}
	}

	if q.divided {
		quadrants := []childDistance[P]{
			{q.northwest.Boundary.DistanceToPoint(queryX, queryY), q.northwest},
			{q.northeast.Boundary.DistanceToPoint(queryX, queryY), q.northeast},
			{q.southwest.Boundary.DistanceToPoint(queryX, queryY), q.southwest},
			{q.southeast.Boundary.DistanceToPoint(queryX, queryY), q.southeast},
		}
		sort.Slice(quadrants, func(i, j int) bool { return quadrants[i].dist < quadrants[j].dist })

		for _, cd := range quadrants {
			if cd.dist >= *minDist {
				break
			}
			if childNearest, ok := cd.child.GetNearestPoint(queryX, queryY, minDist, filter); ok {
				nearest = childNearest
				found = true
			}
		}
	}

	return nearest, found
}
