// Package di wires the road-map core's dependency graph the way the
// teacher's pkg/di does for its own service: config first, then
// logger, then the domain layers that read config, then the usecases
// and API that sit on top of them.
package di

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/go-roadmap/roadmap-core/internal/config"
	"github.com/go-roadmap/roadmap-core/internal/logging"
	"github.com/go-roadmap/roadmap-core/pkg/blobstore"
	"github.com/go-roadmap/roadmap-core/pkg/httpapi"
	"github.com/go-roadmap/roadmap-core/pkg/httpapi/controllers"
	"github.com/go-roadmap/roadmap-core/pkg/httpapi/usecases"
	"github.com/go-roadmap/roadmap-core/pkg/mapcache"
	"github.com/go-roadmap/roadmap-core/pkg/roadmap"
)

// Server bundles everything cmd/server needs to run: the assembled
// API, its listen config, the wired MapService, the MapCache whose
// Close must be called on shutdown, and the logger plus its cleanup.
type Server struct {
	API        *httpapi.API
	HTTPConfig httpapi.Config
	MapService controllers.MapService
	Cache      *mapcache.MapCache
	Log        *zap.Logger
	Cleanup    func()
}

// NewLogger builds the process-wide zap.Logger from cfg's log
// section.
func NewLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	return logging.New(cfg.Log)
}

// NewBlobStore selects and builds MapCache's persisted-blob backend
// per cfg.Cache.BlobBackend. The bolt backend keeps its database in a
// cache.bolt file inside the cache directory.
func NewBlobStore(cfg *config.Config) (blobstore.BlobStore, error) {
	switch cfg.Cache.BlobBackend {
	case "", "file":
		return blobstore.NewFileStore(cfg.Cache.Path, cfg.Cache.CompressThreshold)
	case "bolt":
		if err := os.MkdirAll(cfg.Cache.Path, 0o755); err != nil {
			return nil, fmt.Errorf("di: creating cache directory %q: %w", cfg.Cache.Path, err)
		}
		return blobstore.NewBoltStore(filepath.Join(cfg.Cache.Path, "cache.bolt"))
	default:
		return nil, fmt.Errorf("di: unknown cache.blob_backend %q", cfg.Cache.BlobBackend)
	}
}

// NewMapCache builds the two-level submap cache over store.
func NewMapCache(cfg *config.Config, store blobstore.BlobStore) (*mapcache.MapCache, error) {
	return mapcache.New(cfg.Cache.Path, store, cfg.Cache.RAMCapacity, cfg.Cache.DiskCapacity, cfg.Cache.Active)
}

// NewMap loads the pre-built Map snapshot cfg.Map.SnapshotPath points
// at. Producing that snapshot from a live BorderFeed is cmd/ingest's
// job, not the server's.
func NewMap(cfg *config.Config) (*roadmap.Map, error) {
	data, err := os.ReadFile(cfg.Map.SnapshotPath)
	if err != nil {
		return nil, fmt.Errorf("di: reading map snapshot %q: %w", cfg.Map.SnapshotPath, err)
	}
	return roadmap.DecodeSnapshot(data)
}

// NewMapService adapts usecases.Service to the controllers.MapService
// interface, the way the teacher's di package adapts usecases.New to
// controllers.SearchService.
func NewMapService(log *zap.Logger, m *roadmap.Map, cache *mapcache.MapCache) controllers.MapService {
	return usecases.New(log, m, cache)
}

// NewHTTPConfig projects the loaded config's HTTP section onto
// httpapi.Config. httpapi.Config has a single Timeout, taken from
// WriteTimeout and applied to both reads and writes; ReadTimeout is not
// used.
func NewHTTPConfig(cfg *config.Config) httpapi.Config {
	return httpapi.Config{Addr: cfg.HTTP.ListenAddr, Timeout: cfg.HTTP.WriteTimeout}
}

// NewAPI builds the assembled httpapi.API ready to Run.
func NewAPI(log *zap.Logger) *httpapi.API {
	return httpapi.NewAPI(log)
}
