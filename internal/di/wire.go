//go:build wireinject

//go:generate wire
package di

import (
	"github.com/google/wire"

	"github.com/go-roadmap/roadmap-core/internal/config"
)

var defaultSet = wire.NewSet(
	config.New,
	NewLogger,
	NewBlobStore,
	NewMapCache,
	NewMap,
)

var serverSet = wire.NewSet(
	defaultSet,
	NewMapService,
	NewHTTPConfig,
	NewAPI,
)

func InitializeServer() (*Server, error) {
	panic(wire.Build(serverSet, wire.Struct(new(Server), "*")))
}
