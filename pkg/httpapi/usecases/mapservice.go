package usecases

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/go-roadmap/roadmap-core/pkg/mapcache"
	"github.com/go-roadmap/roadmap-core/pkg/maperr"
	"github.com/go-roadmap/roadmap-core/pkg/mapgeom"
	"github.com/go-roadmap/roadmap-core/pkg/roadmap"
	"github.com/go-roadmap/roadmap-core/pkg/route"
)

// Service is the MapService implementation wrapping a single
// assembled Map. Submap windows are memoized through cache, the same
// two-level RAM/disk cache a downstream vehicle-facing tile server
// would sit behind.
type Service struct {
	log   *zap.Logger
	m     *roadmap.Map
	cache *mapcache.MapCache
}

// New builds a Service over m, logging through log and memoizing
// submap windows in cache. cache may be nil, in which case every
// Submap call recomputes its window directly.
func New(log *zap.Logger, m *roadmap.Map, cache *mapcache.MapCache) *Service {
	return &Service{log: log, m: m, cache: cache}
}

// NearestLane resolves (x,y) to its nearest lane and reports that
// lane's width at the projected point and its speed limit.
func (s *Service) NearestLane(x, y float64) (NearestLaneResult, error) {
	minDist := math.Inf(1)
	nearest, ok := s.m.Quadtree.GetNearestPoint(x, y, &minDist, nil)
	if !ok {
		return NearestLaneResult{}, maperr.New(maperr.NotFound, "no lane near the given point")
	}

	lane, ok := s.m.Lanes[nearest.ParentID]
	if !ok {
		return NearestLaneResult{}, maperr.New(maperr.NotFound, "nearest point has no owning lane")
	}

	return NearestLaneResult{
		LaneID:     lane.ID,
		Width:      lane.GetWidth(nearest.S),
		SpeedLimit: lane.GetSpeedLimit(),
	}, nil
}

// BuildRoute computes the best path between (startX,startY) and
// (endX,endY) and returns its sections and center polyline.
func (s *Service) BuildRoute(startX, startY, endX, endY float64) (RouteResult, error) {
	r := route.New(mapgeom.NewMapPoint(startX, startY), mapgeom.NewMapPoint(endX, endY), s.m)
	if len(r.Sections) == 0 {
		return RouteResult{}, maperr.New(maperr.NotFound, "no route between the given points")
	}

	result := RouteResult{
		Sections: make([]RouteSectionResult, 0, len(r.Sections)),
	}
	for _, sec := range r.Sections {
		result.Sections = append(result.Sections, RouteSectionResult{
			LaneID: sec.LaneID,
			RouteS: sec.RouteS,
			StartS: sec.StartS,
			EndS:   sec.EndS,
		})
	}

	for _, p := range r.GetShortenedRoute(0, r.GetLength()) {
		result.Center = append(result.Center, CenterPointResult{S: p.S, X: p.X, Y: p.Y})
	}

	return result, nil
}

// Submap windows the underlying Map around (x,y), serving a memoized
// encoding out of cache when one is configured and already holds this
// window.
func (s *Service) Submap(x, y, width, height float64) (*roadmap.Map, error) {
	if s.cache == nil {
		return s.m.GetSubmap(mapgeom.NewMapPoint(x, y), width, height), nil
	}

	key := submapCacheKey(x, y, width, height)
	if blob, ok := s.cache.TryGet(key); ok {
		sub, err := roadmap.DecodeSnapshot(blob)
		if err == nil {
			return sub, nil
		}
		s.log.Warn("discarding corrupt submap cache entry", zap.String("key", key), zap.Error(err))
	}

	sub := s.m.GetSubmap(mapgeom.NewMapPoint(x, y), width, height)

	blob, err := roadmap.EncodeSnapshot(sub.Snapshot())
	if err != nil {
		s.log.Warn("failed to encode submap for caching", zap.String("key", key), zap.Error(err))
		return sub, nil
	}
	s.cache.Put(key, blob)

	return sub, nil
}

func submapCacheKey(x, y, width, height float64) string {
	return fmt.Sprintf("submap_%.3f_%.3f_%.3f_%.3f", x, y, width, height)
}
