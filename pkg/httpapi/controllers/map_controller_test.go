package controllers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"

	"github.com/go-roadmap/roadmap-core/pkg/httpapi/usecases"
	"github.com/go-roadmap/roadmap-core/pkg/maperr"
	"github.com/go-roadmap/roadmap-core/pkg/mapborder"
	"github.com/go-roadmap/roadmap-core/pkg/mapgeom"
	"github.com/go-roadmap/roadmap-core/pkg/quadtree"
	"github.com/go-roadmap/roadmap-core/pkg/roadlane"
	"github.com/go-roadmap/roadmap-core/pkg/roadmap"
)

// fakeMapService is a stand-in MapService whose results are set
// directly by each test, the way a hand-rolled test double would sit
// in for a database or a downstream client in the teacher's own tests.
type fakeMapService struct {
	nearestLaneResult usecases.NearestLaneResult
	nearestLaneErr    error
	routeResult       usecases.RouteResult
	routeErr          error
	submapResult      *roadmap.Map
	submapErr         error
}

func (f *fakeMapService) NearestLane(x, y float64) (usecases.NearestLaneResult, error) {
	return f.nearestLaneResult, f.nearestLaneErr
}

func (f *fakeMapService) BuildRoute(startX, startY, endX, endY float64) (usecases.RouteResult, error) {
	return f.routeResult, f.routeErr
}

func (f *fakeMapService) Submap(x, y, width, height float64) (*roadmap.Map, error) {
	return f.submapResult, f.submapErr
}

func newTestRouter(svc MapService) *httprouter.Router {
	router := httprouter.New()
	router.GET("/nearest-lane", New(svc, zap.NewNop()).nearestLane)
	router.POST("/route", New(svc, zap.NewNop()).buildRoute)
	router.GET("/submap", New(svc, zap.NewNop()).submap)
	return router
}

func TestNearestLaneHandlerReturnsResult(t *testing.T) {
	svc := &fakeMapService{nearestLaneResult: usecases.NearestLaneResult{LaneID: 7, Width: 3.5, SpeedLimit: 13.9}}
	router := newTestRouter(svc)

	req := httptest.NewRequest("GET", "/nearest-lane?x=1&y=2", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("status = %d, want 200: body=%s", w.Code, w.Body.String())
	}

	var body struct {
		Data usecases.NearestLaneResult `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body.Data.LaneID != 7 {
		t.Fatalf("Data.LaneID = %v, want 7", body.Data.LaneID)
	}
}

func TestNearestLaneHandlerMissingQueryParam(t *testing.T) {
	router := newTestRouter(&fakeMapService{})

	req := httptest.NewRequest("GET", "/nearest-lane?x=1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != 400 {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestNearestLaneHandlerNotFound(t *testing.T) {
	svc := &fakeMapService{nearestLaneErr: maperr.New(maperr.NotFound, "no lane near the given point")}
	router := newTestRouter(svc)

	req := httptest.NewRequest("GET", "/nearest-lane?x=1&y=2", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != 404 {
		t.Fatalf("status = %d, want 404: body=%s", w.Code, w.Body.String())
	}
}

func TestBuildRouteHandlerValidatesBody(t *testing.T) {
	router := newTestRouter(&fakeMapService{})

	req := httptest.NewRequest("POST", "/route", bytes.NewBufferString(`{"start_x":0,"start_y":0}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != 400 {
		t.Fatalf("status = %d, want 400: body=%s", w.Code, w.Body.String())
	}
}

func TestBuildRouteHandlerReturnsResult(t *testing.T) {
	svc := &fakeMapService{routeResult: usecases.RouteResult{
		Sections: []usecases.RouteSectionResult{{LaneID: 1, RouteS: 0, StartS: 0, EndS: 10}},
		Center:   []usecases.CenterPointResult{{S: 0, X: 0, Y: 0}},
	}}
	router := newTestRouter(svc)

	req := httptest.NewRequest("POST", "/route", bytes.NewBufferString(`{"start_x":0,"start_y":0,"end_x":10,"end_y":0}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("status = %d, want 200: body=%s", w.Code, w.Body.String())
	}
}

func testMap(t *testing.T) *roadmap.Map {
	t.Helper()
	inner := mapborder.Border{Points: []mapgeom.MapPoint{mapgeom.NewMapPoint(0, 0), mapgeom.NewMapPoint(100, 0)}}
	outer := mapborder.Border{Points: []mapgeom.MapPoint{mapgeom.NewMapPoint(0, 4), mapgeom.NewMapPoint(100, 4)}}
	lane, err := roadlane.NewLane(inner, outer, 1, 1, false)
	if err != nil {
		t.Fatalf("NewLane() error = %v", err)
	}
	m := roadmap.New(quadtree.Boundary{XMin: -10, XMax: 110, YMin: -10, YMax: 10}, 10)
	m.AddRoad(roadlane.NewRoad("main", 1, "town", false))
	m.AddLane(lane)
	return m
}

func TestSubmapHandlerReturnsJSONByDefault(t *testing.T) {
	svc := &fakeMapService{submapResult: testMap(t)}
	router := newTestRouter(svc)

	req := httptest.NewRequest("GET", "/submap?x=50&y=2&width=200&height=20", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("status = %d, want 200: body=%s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("Content-Type = %q, want application/json", ct)
	}
}

func TestSubmapHandlerHonorsMsgpackAccept(t *testing.T) {
	svc := &fakeMapService{submapResult: testMap(t)}
	router := newTestRouter(svc)

	req := httptest.NewRequest("GET", "/submap?x=50&y=2&width=200&height=20", nil)
	req.Header.Set("Accept", msgpackContentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("status = %d, want 200: body=%s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != msgpackContentType {
		t.Fatalf("Content-Type = %q, want %q", ct, msgpackContentType)
	}
	if w.Body.Len() == 0 {
		t.Fatalf("msgpack body is empty")
	}
}
