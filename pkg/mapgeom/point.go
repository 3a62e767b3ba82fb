// Package mapgeom holds the planar geometry primitives shared by every
// layer of the road-map core: points on a lane border, 2D poses, and
// plain chord-length distance.
package mapgeom

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// MapPoint is a 2D point in the projected metric frame, carrying the
// arc-length along its parent lane border and a back-reference to that
// lane's id. Two points are equal iff x,y are equal; s and parent_id are
// not part of identity.
type MapPoint struct {
	X        float64
	Y        float64
	S        float64 // arc-length along the parent border
	ParentID uint64  // id of the lane this point belongs to
	MaxSpeed *float64
}

// NewMapPoint builds a MapPoint with no lane association yet.
func NewMapPoint(x, y float64) MapPoint {
	return MapPoint{X: x, Y: y}
}

// Equal reports whether two points share the same coordinates.
func (p MapPoint) Equal(other MapPoint) bool {
	return p.X == other.X && p.Y == other.Y
}

func (p MapPoint) orbPoint() orb.Point {
	return orb.Point{p.X, p.Y}
}

// GetX and GetY satisfy quadtree.Point, letting MapPoint be indexed
// directly without an adapter type.
func (p MapPoint) GetX() float64 { return p.X }
func (p MapPoint) GetY() float64 { return p.Y }

// Pose2d is a 2D pose: position plus heading.
type Pose2d struct {
	X   float64
	Y   float64
	Yaw float64
}

// Distance2D returns the planar Euclidean distance between two points
// that expose X()/Y()-shaped coordinates as plain fields.
func Distance2D(a, b MapPoint) float64 {
	return planar.Distance(a.orbPoint(), b.orbPoint())
}

// DistanceXY is Distance2D for raw coordinate pairs, used by code that
// doesn't carry a full MapPoint (quadtree boundary pruning, etc).
func DistanceXY(ax, ay, bx, by float64) float64 {
	return planar.Distance(orb.Point{ax, ay}, orb.Point{bx, by})
}
