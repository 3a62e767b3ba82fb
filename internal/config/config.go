// Package config loads the road-map core's runtime configuration via
// viper, the way the teacher's pkg/di/config does for its own service.
package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// Config holds every knob the ambient and domain stacks read at
// startup: quadtree sizing, border interpolation, cache limits, and
// the query HTTP API's listen settings.
type Config struct {
	Quadtree QuadtreeConfig `mapstructure:"quadtree"`
	Border   BorderConfig   `mapstructure:"border"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Map      MapConfig      `mapstructure:"map"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Log      LogConfig      `mapstructure:"log"`
}

// MapConfig points the server at a pre-built map snapshot; producing
// that snapshot (from a live BorderFeed) is cmd/ingest's job.
type MapConfig struct {
	SnapshotPath string `mapstructure:"snapshot_path"`
}

// QuadtreeConfig sizes the spatial index built over a Map.
type QuadtreeConfig struct {
	Capacity     int     `mapstructure:"capacity"`
	BoundaryHalf float64 `mapstructure:"boundary_half"` // default half-extent, meters, when no explicit boundary is given
}

// BorderConfig tunes border interpolation and spline preprocessing.
type BorderConfig struct {
	InterpolationSpacing  float64 `mapstructure:"interpolation_spacing"`
	KinkAngleThresholdDeg float64 `mapstructure:"kink_angle_threshold_deg"`
}

// CacheConfig configures MapCache and its BlobStore backend.
type CacheConfig struct {
	Path              string `mapstructure:"path"`
	RAMCapacity       int    `mapstructure:"ram_capacity"`
	DiskCapacity      int    `mapstructure:"disk_capacity"`
	Active            bool   `mapstructure:"active"`
	BlobBackend       string `mapstructure:"blob_backend"` // "file" or "bolt"
	CompressThreshold int    `mapstructure:"compress_threshold"`
}

// HTTPConfig configures the query API server.
type HTTPConfig struct {
	ListenAddr   string        `mapstructure:"listen_addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// LogConfig configures the zap logger built by internal/logging.
type LogConfig struct {
	Level      int    `mapstructure:"level"`
	TimeFormat string `mapstructure:"time_format"`
}

// New reads config.yaml from the current directory (or the path set
// via viper.AddConfigPath by the caller) and unmarshals it into a
// Config, applying defaults for anything left unset. A missing config
// file is a construction error, mirroring the teacher's handling of a
// missing .env/config.yaml.
func New() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil, errors.New("config.yaml has not been found in the current directory")
		}
		return nil, err
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("quadtree.capacity", 10)
	viper.SetDefault("quadtree.boundary_half", 5000.0)

	viper.SetDefault("border.interpolation_spacing", 0.5)
	viper.SetDefault("border.kink_angle_threshold_deg", 30.0)

	viper.SetDefault("cache.path", "cache/")
	viper.SetDefault("cache.ram_capacity", 64)
	viper.SetDefault("cache.disk_capacity", 256)
	viper.SetDefault("cache.active", true)
	viper.SetDefault("cache.blob_backend", "file")
	viper.SetDefault("cache.compress_threshold", 512)

	viper.SetDefault("map.snapshot_path", "map.snapshot")

	viper.SetDefault("http.listen_addr", ":8090")
	viper.SetDefault("http.read_timeout", 5*time.Second)
	viper.SetDefault("http.write_timeout", 10*time.Second)

	viper.SetDefault("log.level", 0) // zapcore.InfoLevel
	viper.SetDefault("log.time_format", time.RFC3339Nano)
}
