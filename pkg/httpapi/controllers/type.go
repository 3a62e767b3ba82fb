// Package controllers wires the usecases.MapService query surface to
// HTTP handlers: request decoding and validation, response encoding,
// and error translation.
package controllers

import (
	"github.com/go-roadmap/roadmap-core/pkg/httpapi/usecases"
	"github.com/go-roadmap/roadmap-core/pkg/roadmap"
)

// MapService is the subset of usecases.MapService the controllers
// drive, named locally the way the teacher's controllers package names
// its own service interfaces.
type MapService interface {
	NearestLane(x, y float64) (usecases.NearestLaneResult, error)
	BuildRoute(startX, startY, endX, endY float64) (usecases.RouteResult, error)
	Submap(x, y, width, height float64) (*roadmap.Map, error)
}
