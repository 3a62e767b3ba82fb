// Package routerhelper holds the RouteGroup type shared between
// pkg/httpapi's router assembly and pkg/httpapi/controllers' route
// registration, split into its own package the way the teacher splits
// router-helper from http-router to avoid a cyclic import between the
// two.
package routerhelper

import "github.com/julienschmidt/httprouter"

// RouteGroup registers routes under a fixed path prefix on a shared
// httprouter.Router.
type RouteGroup struct {
	router *httprouter.Router
	prefix string
}

// NewRouteGroup returns a RouteGroup that prefixes every registered
// path with prefix.
func NewRouteGroup(router *httprouter.Router, prefix string) *RouteGroup {
	return &RouteGroup{router: router, prefix: prefix}
}

// GET registers a GET handler under prefix+path.
func (g *RouteGroup) GET(path string, handle httprouter.Handle) {
	g.router.GET(g.prefix+path, handle)
}

// POST registers a POST handler under prefix+path.
func (g *RouteGroup) POST(path string, handle httprouter.Handle) {
	g.router.POST(g.prefix+path, handle)
}
