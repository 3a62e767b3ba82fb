package roadmap

import (
	"testing"

	"github.com/go-roadmap/roadmap-core/pkg/mapborder"
	"github.com/go-roadmap/roadmap-core/pkg/mapgeom"
	"github.com/go-roadmap/roadmap-core/pkg/quadtree"
	"github.com/go-roadmap/roadmap-core/pkg/roadlane"
)

func straightBorder(y float64) mapborder.Border {
	return mapborder.Border{Points: []mapgeom.MapPoint{
		mapgeom.NewMapPoint(0, y),
		mapgeom.NewMapPoint(100, y),
	}}
}

func buildOneLaneMap(t *testing.T) (*Map, *roadlane.Lane) {
	t.Helper()

	inner := straightBorder(0)
	outer := straightBorder(4)
	lane, err := roadlane.NewLane(inner, outer, 1, 1, false)
	if err != nil {
		t.Fatalf("NewLane() error = %v", err)
	}
	lane.SetType("driving", roadlane.Town)

	m := New(quadtree.Boundary{XMin: -10, XMax: 110, YMin: -10, YMax: 10}, 10)
	road := roadlane.NewRoad("test-road", 1, "town", false)
	m.AddRoad(road)
	m.AddLane(lane)

	return m, lane
}

func TestGetLaneSpeedLimitKnownAndUnknown(t *testing.T) {
	m, lane := buildOneLaneMap(t)

	if got := m.GetLaneSpeedLimit(lane.ID); got != lane.SpeedLimit {
		t.Fatalf("GetLaneSpeedLimit() = %v, want %v", got, lane.SpeedLimit)
	}
	if got := m.GetLaneSpeedLimit(999); got != defaultSpeedLimit {
		t.Fatalf("GetLaneSpeedLimit(unknown) = %v, want %v", got, defaultSpeedLimit)
	}
}

func TestIsPointOnRoad(t *testing.T) {
	m, _ := buildOneLaneMap(t)

	if !m.IsPointOnRoad(mapgeom.NewMapPoint(50, 2)) {
		t.Fatalf("IsPointOnRoad(center) = false, want true")
	}
	if m.IsPointOnRoad(mapgeom.NewMapPoint(50, 9)) {
		t.Fatalf("IsPointOnRoad(far off lane) = true, want false")
	}
}

func TestGetSubmapContainsExpectedLane(t *testing.T) {
	m, lane := buildOneLaneMap(t)

	sub := m.GetSubmap(mapgeom.NewMapPoint(50, 2), 20, 20)
	if _, ok := sub.Lanes[lane.ID]; !ok {
		t.Fatalf("GetSubmap() missing lane %d", lane.ID)
	}
	if len(sub.Roads) != 1 {
		t.Fatalf("GetSubmap() roads = %d, want 1", len(sub.Roads))
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	m, lane := buildOneLaneMap(t)

	data, err := EncodeSnapshot(m.Snapshot())
	if err != nil {
		t.Fatalf("EncodeSnapshot() error = %v", err)
	}

	restored, err := DecodeSnapshot(data)
	if err != nil {
		t.Fatalf("DecodeSnapshot() error = %v", err)
	}

	if got := restored.GetLaneSpeedLimit(lane.ID); got != lane.SpeedLimit {
		t.Fatalf("restored speed limit = %v, want %v", got, lane.SpeedLimit)
	}
	if len(restored.Quadtree.Query(quadtree.Boundary{XMin: -10, XMax: 110, YMin: -10, YMax: 10})) == 0 {
		t.Fatalf("restored quadtree has no points")
	}
}
