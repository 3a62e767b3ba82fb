package feed

import (
	"testing"

	"github.com/go-roadmap/roadmap-core/pkg/mapgeom"
	"github.com/go-roadmap/roadmap-core/pkg/quadtree"
)

type fakeFeed struct {
	refLines    []ReferenceLineRecord
	laneBorders []LaneBorderRecord
}

func (f fakeFeed) ReferenceLines() ([]ReferenceLineRecord, error) { return f.refLines, nil }
func (f fakeFeed) LaneBorders() ([]LaneBorderRecord, error)       { return f.laneBorders, nil }

func straightPoints(y float64) []mapgeom.MapPoint {
	return []mapgeom.MapPoint{
		mapgeom.NewMapPoint(0, y),
		mapgeom.NewMapPoint(100, y),
	}
}

func TestBuildMapPairsBordersAndConnections(t *testing.T) {
	source := fakeFeed{
		refLines: []ReferenceLineRecord{
			{ID: 1, StreetName: "Main St", Category: "town", SuccessorID: 2},
			{ID: 2, StreetName: "Main St", Category: "town"},
		},
		laneBorders: []LaneBorderRecord{
			{ID: 10, ParentID: 1, Points: straightPoints(0), Material: "asphalt", LineType: "driving"},
			{ID: 11, ParentID: 1, Points: straightPoints(4), Material: "asphalt", LineType: "driving"},
			{ID: 12, ParentID: 2, Points: straightPoints(100), Material: "asphalt", LineType: "driving"},
			{ID: 13, ParentID: 2, Points: straightPoints(104), Material: "asphalt", LineType: "driving"},
		},
	}

	m, err := BuildMap(source, quadtree.Boundary{XMin: -10, XMax: 210, YMin: -10, YMax: 210}, 10, nil)
	if err != nil {
		t.Fatalf("BuildMap() error = %v", err)
	}

	if len(m.Lanes) != 2 {
		t.Fatalf("BuildMap() lanes = %d, want 2", len(m.Lanes))
	}
	if len(m.Roads) != 1 {
		t.Fatalf("BuildMap() roads = %d, want 1 (both lanes share a street name)", len(m.Roads))
	}

	if _, ok := m.LaneGraph.FindConnection(1, 2); !ok {
		t.Fatalf("BuildMap() missing lane graph connection 1 -> 2")
	}
}

func TestBuildMapReparameterizesBordersAgainstReferenceLine(t *testing.T) {
	source := fakeFeed{
		refLines: []ReferenceLineRecord{
			{ID: 1, StreetName: "Main St", Category: "town", Points: straightPoints(2)},
		},
		laneBorders: []LaneBorderRecord{
			{ID: 10, ParentID: 1, Points: straightPoints(0), Material: "asphalt", LineType: "driving"},
			{ID: 11, ParentID: 1, Points: straightPoints(4), Material: "asphalt", LineType: "driving"},
		},
	}

	m, err := BuildMap(source, quadtree.Boundary{XMin: -10, XMax: 110, YMin: -10, YMax: 10}, 10, nil)
	if err != nil {
		t.Fatalf("BuildMap() error = %v", err)
	}

	lane, ok := m.Lanes[1]
	if !ok {
		t.Fatalf("BuildMap() missing lane 1")
	}

	inner := lane.Borders.Inner.Points
	if len(inner) != 2 {
		t.Fatalf("lane 1 inner border has %d points, want 2", len(inner))
	}
	if inner[0].S != 0 || inner[1].S != 100 {
		t.Fatalf("lane 1 inner border s-values = [%v, %v], want [0, 100] from the reference line", inner[0].S, inner[1].S)
	}
}

func TestBuildMapSkipsReferenceLineMissingBorders(t *testing.T) {
	source := fakeFeed{
		refLines: []ReferenceLineRecord{
			{ID: 1, StreetName: "Main St", Category: "town"},
		},
		laneBorders: []LaneBorderRecord{
			{ID: 10, ParentID: 1, Points: straightPoints(0)},
		},
	}

	m, err := BuildMap(source, quadtree.Boundary{XMin: -10, XMax: 110, YMin: -10, YMax: 10}, 10, nil)
	if err != nil {
		t.Fatalf("BuildMap() error = %v", err)
	}
	if len(m.Lanes) != 0 {
		t.Fatalf("BuildMap() lanes = %d, want 0 (reference line had only one border)", len(m.Lanes))
	}
}
