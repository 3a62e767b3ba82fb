package quadtree

import (
	"math"
	"testing"
)

type point struct {
	x, y float64
}

func (p point) GetX() float64 { return p.x }
func (p point) GetY() float64 { return p.y }

func TestFourPointSquare(t *testing.T) {
	tree := New[point](Boundary{XMin: -2, XMax: 2, YMin: -2, YMax: 2}, 2)

	pts := []point{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	for _, p := range pts {
		if !tree.Insert(p) {
			t.Fatalf("Insert(%+v) = false, want true", p)
		}
	}

	minDist := math.Inf(1)
	nearest, ok := tree.GetNearestPoint(0.4, 0.4, &minDist, nil)
	if !ok {
		t.Fatalf("GetNearestPoint() found no point")
	}
	if nearest != (point{0, 0}) {
		t.Fatalf("GetNearestPoint() = %+v, want (0,0)", nearest)
	}

	found := tree.Query(Boundary{XMin: 0.5, XMax: 1.5, YMin: 0.5, YMax: 1.5})
	if len(found) != 1 || found[0] != (point{1, 1}) {
		t.Fatalf("Query() = %+v, want [(1,1)]", found)
	}
}

func TestInsertRejectsOutOfBoundary(t *testing.T) {
	tree := New[point](Boundary{XMin: 0, XMax: 1, YMin: 0, YMax: 1}, 10)
	if tree.Insert(point{5, 5}) {
		t.Fatalf("Insert() outside boundary = true, want false")
	}
}

func TestQueryRangeByRadius(t *testing.T) {
	tree := New[point](Boundary{XMin: -10, XMax: 10, YMin: -10, YMax: 10}, 4)
	tree.Insert(point{0, 0})
	tree.Insert(point{1, 0})
	tree.Insert(point{5, 5})

	found := tree.QueryRange(0, 0, 1.5)
	if len(found) != 2 {
		t.Fatalf("QueryRange() found %d points, want 2", len(found))
	}
}

func TestGetNearestPointWithFilter(t *testing.T) {
	tree := New[point](Boundary{XMin: -10, XMax: 10, YMin: -10, YMax: 10}, 1)
	tree.Insert(point{0, 0})
	tree.Insert(point{1, 0})
	tree.Insert(point{2, 0})

	minDist := math.Inf(1)
	nearest, ok := tree.GetNearestPoint(0, 0, &minDist, func(p point) bool { return p.x >= 2 })
	if !ok {
		t.Fatalf("GetNearestPoint() found no point")
	}
	if nearest != (point{2, 0}) {
		t.Fatalf("GetNearestPoint() = %+v, want (2,0)", nearest)
	}
}

func TestSubdivideRedistributesAllPoints(t *testing.T) {
	tree := New[point](Boundary{XMin: 0, XMax: 10, YMin: 0, YMax: 10}, 1)
	inserted := []point{{1, 1}, {9, 1}, {1, 9}, {9, 9}, {5, 5}}
	for _, p := range inserted {
		tree.Insert(p)
	}

	found := tree.Query(Boundary{XMin: 0, XMax: 10, YMin: 0, YMax: 10})
	if len(found) != len(inserted) {
		t.Fatalf("Query(full boundary) = %d points, want %d", len(found), len(inserted))
	}
}
