package usecases

import (
	"testing"

	"go.uber.org/zap"

	"github.com/go-roadmap/roadmap-core/pkg/blobstore"
	"github.com/go-roadmap/roadmap-core/pkg/mapborder"
	"github.com/go-roadmap/roadmap-core/pkg/mapcache"
	"github.com/go-roadmap/roadmap-core/pkg/mapgeom"
	"github.com/go-roadmap/roadmap-core/pkg/quadtree"
	"github.com/go-roadmap/roadmap-core/pkg/roadlane"
	"github.com/go-roadmap/roadmap-core/pkg/roadmap"
)

func straightBorder(y float64) mapborder.Border {
	return mapborder.Border{Points: []mapgeom.MapPoint{
		mapgeom.NewMapPoint(0, y),
		mapgeom.NewMapPoint(100, y),
	}}
}

func singleLaneMap(t *testing.T) *roadmap.Map {
	t.Helper()

	inner := straightBorder(0)
	outer := straightBorder(4)
	lane, err := roadlane.NewLane(inner, outer, 1, 1, false)
	if err != nil {
		t.Fatalf("NewLane() error = %v", err)
	}

	m := roadmap.New(quadtree.Boundary{XMin: -10, XMax: 110, YMin: -10, YMax: 10}, 10)
	m.AddRoad(roadlane.NewRoad("main", 1, "town", false))
	m.AddLane(lane)
	return m
}

func TestNearestLaneReturnsOwningLane(t *testing.T) {
	m := singleLaneMap(t)
	svc := New(zap.NewNop(), m, nil)

	result, err := svc.NearestLane(50, 1)
	if err != nil {
		t.Fatalf("NearestLane() error = %v", err)
	}
	if result.LaneID != 1 {
		t.Fatalf("NearestLane().LaneID = %v, want 1", result.LaneID)
	}
	if result.Width <= 0 {
		t.Fatalf("NearestLane().Width = %v, want > 0", result.Width)
	}
}

func TestNearestLaneNotFoundOnEmptyMap(t *testing.T) {
	m := roadmap.New(quadtree.Boundary{XMin: -10, XMax: 10, YMin: -10, YMax: 10}, 10)
	svc := New(zap.NewNop(), m, nil)

	if _, err := svc.NearestLane(0, 0); err == nil {
		t.Fatalf("NearestLane() on empty map: want error, got nil")
	}
}

func TestBuildRouteReturnsSectionsAndCenter(t *testing.T) {
	m := singleLaneMap(t)
	svc := New(zap.NewNop(), m, nil)

	result, err := svc.BuildRoute(0, 0, 100, 0)
	if err != nil {
		t.Fatalf("BuildRoute() error = %v", err)
	}
	if len(result.Sections) == 0 {
		t.Fatalf("BuildRoute() produced no sections")
	}
	if len(result.Center) == 0 {
		t.Fatalf("BuildRoute() produced no center polyline")
	}
	if result.Sections[0].LaneID != 1 {
		t.Fatalf("BuildRoute().Sections[0].LaneID = %v, want 1", result.Sections[0].LaneID)
	}
}

func TestBuildRouteNotFoundWhenMapEmpty(t *testing.T) {
	m := roadmap.New(quadtree.Boundary{XMin: -10, XMax: 10, YMin: -10, YMax: 10}, 10)
	svc := New(zap.NewNop(), m, nil)

	if _, err := svc.BuildRoute(0, 0, 5, 5); err == nil {
		t.Fatalf("BuildRoute() on empty map: want error, got nil")
	}
}

func TestSubmapWithoutCacheRecomputesEachCall(t *testing.T) {
	m := singleLaneMap(t)
	svc := New(zap.NewNop(), m, nil)

	sub, err := svc.Submap(50, 2, 200, 20)
	if err != nil {
		t.Fatalf("Submap() error = %v", err)
	}
	if _, ok := sub.Lanes[1]; !ok {
		t.Fatalf("Submap() missing expected lane 1")
	}

	again, err := svc.Submap(50, 2, 200, 20)
	if err != nil {
		t.Fatalf("second Submap() error = %v", err)
	}
	if _, ok := again.Lanes[1]; !ok {
		t.Fatalf("second Submap() missing expected lane 1")
	}
	if again == sub {
		t.Fatalf("second Submap() returned the same *Map, want a freshly computed one")
	}
}

func TestSubmapIsMemoizedThroughCache(t *testing.T) {
	m := singleLaneMap(t)

	dir := t.TempDir()
	store, err := blobstore.NewFileStore(dir, blobstore.DefaultCompressThreshold)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	cache, err := mapcache.New(dir, store, 4, 4, true)
	if err != nil {
		t.Fatalf("mapcache.New() error = %v", err)
	}

	svc := New(zap.NewNop(), m, cache)

	first, err := svc.Submap(50, 2, 200, 20)
	if err != nil {
		t.Fatalf("Submap() error = %v", err)
	}
	if cache.RAMLen() == 0 {
		t.Fatalf("Submap() did not populate the cache")
	}

	second, err := svc.Submap(50, 2, 200, 20)
	if err != nil {
		t.Fatalf("Submap() second call error = %v", err)
	}
	if _, ok := second.Lanes[1]; !ok {
		t.Fatalf("Submap() cached response missing expected lane 1")
	}
	if len(first.Lanes) != len(second.Lanes) {
		t.Fatalf("Submap() cached response lane count = %v, want %v", len(second.Lanes), len(first.Lanes))
	}
}
