package roadmap

import (
	"github.com/vmihailenco/msgpack/v5"

	"github.com/go-roadmap/roadmap-core/pkg/mapgeom"
	"github.com/go-roadmap/roadmap-core/pkg/quadtree"
	"github.com/go-roadmap/roadmap-core/pkg/roadgraph"
	"github.com/go-roadmap/roadmap-core/pkg/roadlane"
)

// snapshotLane is the wire-friendly projection of a roadlane.Lane: the
// fields needed to rebuild width/speed queries and the quadtree seed
// set, without the Map's internal pointers.
type snapshotLane struct {
	ID              uint64
	RoadID          uint64
	Type            roadlane.LaneType
	Material        roadlane.LaneMaterial
	LeftOfReference bool
	Length          float64
	SpeedLimit      float64
	CenterPoints    []mapgeom.MapPoint
	InnerPoints     []mapgeom.MapPoint
	OuterPoints     []mapgeom.MapPoint
}

type snapshotRoad struct {
	ID       uint64
	Name     string
	Category roadlane.RoadCategory
	OneWay   bool
	LaneIDs  []uint64
}

type snapshotConnection struct {
	FromID uint64
	ToID   uint64
	Weight float64
}

// Snapshot is a self-contained, msgpack-encodable copy of a Map (or
// submap) meant for transmission to a downstream consumer, e.g. an
// onboard vehicle bus.
type Snapshot struct {
	Boundary    quadtree.Boundary
	Capacity    int
	Lanes       []snapshotLane
	Roads       []snapshotRoad
	Connections []snapshotConnection
}

// Snapshot captures m as a Snapshot value.
func (m *Map) Snapshot() Snapshot {
	snap := Snapshot{
		Boundary: m.Quadtree.Boundary,
		Capacity: m.Quadtree.Capacity,
	}

	for _, lane := range m.Lanes {
		snap.Lanes = append(snap.Lanes, snapshotLane{
			ID:              lane.ID,
			RoadID:          lane.RoadID,
			Type:            lane.Type,
			Material:        lane.Material,
			LeftOfReference: lane.LeftOfReference,
			Length:          lane.Length,
			SpeedLimit:      lane.SpeedLimit,
			CenterPoints:    lane.Borders.Center.InterpolatedPoints,
			InnerPoints:     lane.Borders.Inner.InterpolatedPoints,
			OuterPoints:     lane.Borders.Outer.InterpolatedPoints,
		})
	}

	for _, road := range m.Roads {
		laneIDs := make([]uint64, 0, len(road.LaneIDs))
		for id := range road.LaneIDs {
			laneIDs = append(laneIDs, id)
		}
		snap.Roads = append(snap.Roads, snapshotRoad{
			ID:       road.ID,
			Name:     road.Name,
			Category: road.Category,
			OneWay:   road.OneWay,
			LaneIDs:  laneIDs,
		})
	}

	for _, lane := range m.Lanes {
		for _, successor := range m.LaneGraph.Successors(lane.ID) {
			connection, ok := m.LaneGraph.FindConnection(lane.ID, successor)
			if !ok {
				continue
			}
			snap.Connections = append(snap.Connections, snapshotConnection{
				FromID: connection.FromID,
				ToID:   connection.ToID,
				Weight: connection.Weight,
			})
		}
	}

	return snap
}

// EncodeSnapshot msgpack-encodes s.
func EncodeSnapshot(s Snapshot) ([]byte, error) {
	return msgpack.Marshal(s)
}

// DecodeSnapshot rebuilds a Map from a msgpack-encoded Snapshot,
// reseeding the quadtree from each lane's center interpolated points.
func DecodeSnapshot(data []byte) (*Map, error) {
	var snap Snapshot
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return nil, err
	}

	m := New(snap.Boundary, snap.Capacity)

	for _, road := range snap.Roads {
		laneIDs := make(map[uint64]struct{}, len(road.LaneIDs))
		for _, id := range road.LaneIDs {
			laneIDs[id] = struct{}{}
		}
		m.Roads[road.ID] = &roadlane.Road{
			ID:       road.ID,
			Name:     road.Name,
			Category: road.Category,
			OneWay:   road.OneWay,
			LaneIDs:  laneIDs,
		}
	}

	for _, sl := range snap.Lanes {
		lane := &roadlane.Lane{
			ID:              sl.ID,
			RoadID:          sl.RoadID,
			Type:            sl.Type,
			Material:        sl.Material,
			LeftOfReference: sl.LeftOfReference,
			Length:          sl.Length,
			SpeedLimit:      sl.SpeedLimit,
		}
		lane.Borders.Center.InterpolatedPoints = sl.CenterPoints
		lane.Borders.Inner.InterpolatedPoints = sl.InnerPoints
		lane.Borders.Outer.InterpolatedPoints = sl.OuterPoints
		if len(sl.InnerPoints) >= 2 && len(sl.OuterPoints) >= 2 {
			lane.Borders.Inner.Points = sl.InnerPoints
			lane.Borders.Outer.Points = sl.OuterPoints
			if err := lane.Borders.Inner.InitializeSpline(); err != nil {
				return nil, err
			}
			if err := lane.Borders.Outer.InitializeSpline(); err != nil {
				return nil, err
			}
		}

		m.Lanes[lane.ID] = lane
		for _, p := range lane.Borders.Center.InterpolatedPoints {
			m.Quadtree.Insert(p)
		}
	}

	for _, c := range snap.Connections {
		m.LaneGraph.AddConnection(roadgraph.Connection{FromID: c.FromID, ToID: c.ToID, Weight: c.Weight})
	}

	return m, nil
}
