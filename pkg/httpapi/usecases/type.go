// Package usecases implements the query operations the HTTP API
// exposes over an assembled Map: nearest-lane lookup, routing, and
// submap extraction.
package usecases

import "github.com/go-roadmap/roadmap-core/pkg/roadmap"

// NearestLaneResult is the response body for GET /api/nearest-lane.
type NearestLaneResult struct {
	LaneID     uint64  `json:"lane_id"`
	Width      float64 `json:"width"`
	SpeedLimit float64 `json:"speed_limit"`
}

// RouteSectionResult mirrors route.RouteSection for wire encoding.
type RouteSectionResult struct {
	LaneID uint64  `json:"lane_id"`
	RouteS float64 `json:"route_s"`
	StartS float64 `json:"start_s"`
	EndS   float64 `json:"end_s"`
}

// CenterPointResult is one route_s-keyed sample of a route's center
// polyline.
type CenterPointResult struct {
	S float64 `json:"s"`
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// RouteResult is the response body for POST /api/route.
type RouteResult struct {
	Sections []RouteSectionResult `json:"sections"`
	Center   []CenterPointResult  `json:"center"`
}

// MapService is the query surface pkg/httpapi/controllers drives.
type MapService interface {
	NearestLane(x, y float64) (NearestLaneResult, error)
	BuildRoute(startX, startY, endX, endY float64) (RouteResult, error)
	Submap(x, y, width, height float64) (*roadmap.Map, error)
}
