//go:build !wireinject

// Code generated by Wire would normally live here; hand-authored in
// the same shape since no `wire` codegen step runs in this build.
package di

import (
	"github.com/go-roadmap/roadmap-core/internal/config"
)

// InitializeServer builds the full server-side dependency graph in the
// order defaultSet/serverSet declare in wire.go: config, then logger,
// then the blob store and cache built over it, then the map loaded
// from its snapshot, then the usecase and API layered on top.
func InitializeServer() (*Server, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, err
	}

	log, cleanup, err := NewLogger(cfg)
	if err != nil {
		return nil, err
	}

	store, err := NewBlobStore(cfg)
	if err != nil {
		cleanup()
		return nil, err
	}

	cache, err := NewMapCache(cfg, store)
	if err != nil {
		cleanup()
		return nil, err
	}

	m, err := NewMap(cfg)
	if err != nil {
		cleanup()
		return nil, err
	}

	mapService := NewMapService(log, m, cache)
	httpConfig := NewHTTPConfig(cfg)
	api := NewAPI(log)

	return &Server{
		API:        api,
		HTTPConfig: httpConfig,
		MapService: mapService,
		Cache:      cache,
		Log:        log,
		Cleanup:    cleanup,
	}, nil
}
