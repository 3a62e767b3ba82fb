// Package route builds an ordered traversal over a Map's lane graph
// between two world points, and projects arbitrary states onto the
// resulting route arc-length.
package route

import (
	"math"
	"sort"

	"github.com/go-roadmap/roadmap-core/pkg/mapgeom"
	"github.com/go-roadmap/roadmap-core/pkg/roadmap"
)

// RouteSection is the portion of a single lane traversed by the route,
// carrying both local (lane) and global (route) arc-length coordinates.
type RouteSection struct {
	LaneID  uint64
	RouteS  float64
	StartS  float64
	EndS    float64
}

type centerLaneSample struct {
	S     float64
	Point mapgeom.MapPoint
}

// Route is an ordered sequence of RouteSections along the best path
// between Start and Destination over Map.
type Route struct {
	LaneToSections map[uint64]*RouteSection
	Sections       []*RouteSection
	Start          mapgeom.MapPoint
	Destination    mapgeom.MapPoint
	Map            *roadmap.Map

	centerLane []centerLaneSample
}

// New finds the nearest lane to start and end, computes the best path
// between them over m's lane graph, and builds the resulting route
// sections and center polyline. The nearest-lane search has no
// distance cutoff. Returns an empty Route (no sections) if the map has
// no lane point to match an endpoint to, or no path connects them.
func New(start, end mapgeom.MapPoint, m *roadmap.Map) *Route {
	r := &Route{
		LaneToSections: make(map[uint64]*RouteSection),
		Start:          start,
		Destination:    end,
		Map:            m,
	}

	if m == nil {
		return r
	}

	minStartDist := math.Inf(1)
	nearestStart, okStart := m.Quadtree.GetNearestPoint(start.X, start.Y, &minStartDist, nil)
	minEndDist := math.Inf(1)
	nearestEnd, okEnd := m.Quadtree.GetNearestPoint(end.X, end.Y, &minEndDist, nil)

	if !okStart || !okEnd {
		return r
	}

	path := m.LaneGraph.GetBestPath(nearestStart.ParentID, nearestEnd.ParentID)
	for _, laneID := range path {
		lane, ok := m.Lanes[laneID]
		if !ok {
			continue
		}
		r.addRouteSection(laneID, lane.Borders.Center.Length, nearestStart, nearestEnd, lane.LeftOfReference)
	}

	r.initializeCenterLane()
	return r
}

// addRouteSection appends the section for laneID. The section spans
// [0, centerLength] except at its endpoints: if laneID is the start
// lane, it starts at nearestStart's local s; if it's the end lane, it
// ends at nearestEnd's local s. reverse (the lane's left_of_reference)
// swaps start/end so the traversal is monotone in route_s.
func (r *Route) addRouteSection(laneID uint64, centerLength float64, nearestStart, nearestEnd mapgeom.MapPoint, reverse bool) {
	startS, endS := 0.0, centerLength
	if laneID == nearestStart.ParentID {
		startS = nearestStart.S
	}
	if laneID == nearestEnd.ParentID {
		endS = nearestEnd.S
	}
	if reverse {
		startS, endS = endS, startS
	}

	routeS := 0.0
	if len(r.Sections) > 0 {
		last := r.Sections[len(r.Sections)-1]
		routeS = last.RouteS + math.Abs(last.EndS-last.StartS)
	}

	section := &RouteSection{LaneID: laneID, RouteS: routeS, StartS: startS, EndS: endS}
	r.Sections = append(r.Sections, section)
	r.LaneToSections[laneID] = section
}

// initializeCenterLane samples each section's lane center polyline
// between its start_s/end_s and reprojects each sample's local s into
// route_s, then sorts the whole run ascending by route_s.
func (r *Route) initializeCenterLane() {
	r.centerLane = r.centerLane[:0]

	for _, section := range r.Sections {
		lane, ok := r.Map.Lanes[section.LaneID]
		if !ok {
			continue
		}

		forward := section.StartS <= section.EndS
		lo, hi := section.StartS, section.EndS
		if !forward {
			lo, hi = hi, lo
		}

		for _, p := range lane.Borders.Center.InterpolatedPoints {
			if p.S < lo-1e-9 || p.S > hi+1e-9 {
				continue
			}

			var traveled float64
			if forward {
				traveled = p.S - section.StartS
			} else {
				traveled = section.StartS - p.S
			}

			routeS := section.RouteS + traveled
			r.centerLane = append(r.centerLane, centerLaneSample{
				S:     routeS,
				Point: mapgeom.MapPoint{X: p.X, Y: p.Y, S: routeS, ParentID: section.LaneID},
			})
		}
	}

	sort.Slice(r.centerLane, func(i, j int) bool { return r.centerLane[i].S < r.centerLane[j].S })
}

// GetLength returns the arc-length span of the route's center polyline.
func (r *Route) GetLength() float64 {
	if len(r.centerLane) == 0 {
		return 0
	}
	return r.centerLane[len(r.centerLane)-1].S - r.centerLane[0].S
}

// GetS projects state onto the route: the nearest quadtree point whose
// parent lane is part of this route, converted from local lane s to
// route_s. Returns +Inf if no route lane is nearby.
func (r *Route) GetS(state mapgeom.MapPoint) float64 {
	if r.Map == nil {
		return math.Inf(1)
	}

	minDist := math.Inf(1)
	nearest, ok := r.Map.Quadtree.GetNearestPoint(state.X, state.Y, &minDist, func(p mapgeom.MapPoint) bool {
		_, inRoute := r.LaneToSections[p.ParentID]
		return inRoute
	})
	if !ok {
		return math.Inf(1)
	}

	section := r.LaneToSections[nearest.ParentID]

	var distAlongSection float64
	if section.StartS < section.EndS {
		distAlongSection = nearest.S - section.StartS
	} else {
		distAlongSection = section.StartS - nearest.S
	}

	return section.RouteS + distAlongSection
}

// interpolate linearly interpolates the center polyline at distance,
// returning position and, when the bracketing segment is non-degenerate,
// its heading.
func (r *Route) interpolate(distance float64) (x, y, yaw float64, hasYaw bool) {
	n := len(r.centerLane)
	if n == 0 {
		return 0, 0, 0, false
	}
	if n == 1 {
		return r.centerLane[0].Point.X, r.centerLane[0].Point.Y, 0, false
	}

	upper := sort.Search(n, func(i int) bool { return r.centerLane[i].S >= distance })

	var lower int
	var frac float64

	switch {
	case upper == n:
		upper = n - 1
		lower = n - 2
		frac = 1.0
	case upper == 0:
		lower = 0
		upper = 1
		frac = 0.0
	default:
		lower = upper - 1
		s1 := r.centerLane[lower].S
		s2 := r.centerLane[upper].S
		denom := s2 - s1
		if math.Abs(denom) < 1e-9 {
			frac = 0.0
		} else {
			frac = (distance - s1) / denom
		}
	}

	p1 := r.centerLane[lower].Point
	p2 := r.centerLane[upper].Point

	x = p1.X + frac*(p2.X-p1.X)
	y = p1.Y + frac*(p2.Y-p1.Y)

	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	if math.Abs(dx) < 1e-9 && math.Abs(dy) < 1e-9 {
		return x, y, 0, false
	}
	return x, y, math.Atan2(dy, dx), true
}

// GetMapPointAtS interpolates position at route arc-length distance.
func (r *Route) GetMapPointAtS(distance float64) mapgeom.MapPoint {
	x, y, _, _ := r.interpolate(distance)
	return mapgeom.NewMapPoint(x, y)
}

// GetPoseAtS interpolates position and heading at route arc-length
// distance. Yaw is 0 when the bracketing segment is degenerate.
func (r *Route) GetPoseAtS(distance float64) mapgeom.Pose2d {
	x, y, yaw, _ := r.interpolate(distance)
	return mapgeom.Pose2d{X: x, Y: y, Yaw: yaw}
}

// GetShortenedRoute returns the center-polyline samples within
// [startS, startS+desiredLength].
func (r *Route) GetShortenedRoute(startS, desiredLength float64) []mapgeom.MapPoint {
	endS := startS + desiredLength
	points := make([]mapgeom.MapPoint, 0)
	for _, sample := range r.centerLane {
		if sample.S >= startS && sample.S <= endS {
			points = append(points, sample.Point)
		}
	}
	return points
}
