// Package roadmap assembles the quadtree, lanes, roads and lane graph
// into the queryable structure a Route is built against.
package roadmap

import (
	"math"

	"github.com/go-roadmap/roadmap-core/pkg/mapgeom"
	"github.com/go-roadmap/roadmap-core/pkg/quadtree"
	"github.com/go-roadmap/roadmap-core/pkg/roadgraph"
	"github.com/go-roadmap/roadmap-core/pkg/roadlane"
)

// defaultSpeedLimit is returned by GetLaneSpeedLimit for an unknown
// lane id.
const defaultSpeedLimit = 13.6

// Map is the assembled, read-only-after-construction road map: a
// spatial index over lane center points, the lanes and roads
// themselves, and the directed graph connecting lanes.
type Map struct {
	Quadtree  *quadtree.Quadtree[mapgeom.MapPoint]
	LaneGraph *roadgraph.RoadGraph
	Roads     map[uint64]*roadlane.Road
	Lanes     map[uint64]*roadlane.Lane
}

// New builds an empty Map over boundary, ready to accept lanes.
func New(boundary quadtree.Boundary, capacity int) *Map {
	return &Map{
		Quadtree:  quadtree.New[mapgeom.MapPoint](boundary, capacity),
		LaneGraph: roadgraph.New(),
		Roads:     make(map[uint64]*roadlane.Road),
		Lanes:     make(map[uint64]*roadlane.Lane),
	}
}

// AddLane registers lane, seeds the quadtree with its center
// interpolated points, and records it against its road.
func (m *Map) AddLane(lane *roadlane.Lane) {
	m.Lanes[lane.ID] = lane
	for _, p := range lane.Borders.Center.InterpolatedPoints {
		m.Quadtree.Insert(p)
	}
	if road, ok := m.Roads[lane.RoadID]; ok {
		road.AddLane(lane.ID)
	}
}

// AddRoad registers road.
func (m *Map) AddRoad(road *roadlane.Road) {
	m.Roads[road.ID] = road
}

// GetLaneSpeedLimit returns laneID's derived speed limit, or
// defaultSpeedLimit when the lane is unknown.
func (m *Map) GetLaneSpeedLimit(laneID uint64) float64 {
	if lane, ok := m.Lanes[laneID]; ok {
		return lane.GetSpeedLimit()
	}
	return defaultSpeedLimit
}

// IsPointOnRoad reports whether point falls within half the width of
// its nearest lane's center line.
func (m *Map) IsPointOnRoad(point mapgeom.MapPoint) bool {
	minDist := math.Inf(1)
	nearest, ok := m.Quadtree.GetNearestPoint(point.X, point.Y, &minDist, nil)
	if !ok {
		return false
	}

	lane, ok := m.Lanes[nearest.ParentID]
	if !ok {
		return false
	}

	width := lane.GetWidth(nearest.S)
	return minDist < width/2
}

// GetSubmap windows the quadtree around (center, width, height),
// copies the lanes and roads reachable inside the window (shallow struct
// copies whose border slices are shared with m), rebuilds
// a submap quadtree from their center interpolated points, and
// restricts the lane graph to the surviving lane ids.
func (m *Map) GetSubmap(center mapgeom.MapPoint, width, height float64) *Map {
	queryBoundary := quadtree.Boundary{
		XMin: center.X - width/2.0,
		XMax: center.X + width/2.0,
		YMin: center.Y - height/2.0,
		YMax: center.Y + height/2.0,
	}

	submap := New(queryBoundary, m.Quadtree.Capacity)

	foundPoints := m.Quadtree.Query(queryBoundary)

	uniqueLaneIDs := make(map[uint64]struct{})
	for _, p := range foundPoints {
		uniqueLaneIDs[p.ParentID] = struct{}{}
	}

	laneIDs := make([]uint64, 0, len(uniqueLaneIDs))
	for laneID := range uniqueLaneIDs {
		laneID := laneID
		laneIDs = append(laneIDs, laneID)

		lane, ok := m.Lanes[laneID]
		if !ok {
			continue
		}

		copiedLane := *lane
		submap.Lanes[laneID] = &copiedLane

		for _, p := range copiedLane.Borders.Center.InterpolatedPoints {
			submap.Quadtree.Insert(p)
		}

		if road, ok := m.Roads[lane.RoadID]; ok {
			copiedRoad, exists := submap.Roads[road.ID]
			if !exists {
				roadCopy := *road
				roadCopy.LaneIDs = map[uint64]struct{}{laneID: {}}
				submap.Roads[road.ID] = &roadCopy
			} else {
				copiedRoad.LaneIDs[laneID] = struct{}{}
			}
		}
	}

	submap.LaneGraph = m.LaneGraph.CreateSubgraph(laneIDs)

	return submap
}
