// Command ingest builds a Map from a BorderFeed and writes it out as
// the snapshot cmd/server loads at startup. The concrete feed backend
// here decodes the feed's own wire-format JSON records directly (no
// external line-string parsing, which is out of this module's scope)
// — swapping in a feed fed by a real upstream source only requires a
// different feed.BorderFeed implementation.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/go-roadmap/roadmap-core/internal/config"
	"github.com/go-roadmap/roadmap-core/internal/logging"
	"github.com/go-roadmap/roadmap-core/pkg/feed"
	"github.com/go-roadmap/roadmap-core/pkg/quadtree"
	"github.com/go-roadmap/roadmap-core/pkg/roadmap"
)

var (
	refLinesPath    = flag.String("reference-lines", "reference_lines.json", "path to the reference-line feed records, JSON-encoded")
	laneBordersPath = flag.String("lane-borders", "lane_borders.json", "path to the lane-border feed records, JSON-encoded")
	outputPath      = flag.String("o", "", "output path for the built map snapshot (defaults to map.snapshot_path from config.yaml)")
)

// jsonFeed implements feed.BorderFeed by decoding two flat JSON arrays
// already shaped like feed.ReferenceLineRecord/feed.LaneBorderRecord.
type jsonFeed struct {
	refLines    []feed.ReferenceLineRecord
	laneBorders []feed.LaneBorderRecord
}

func loadJSONFeed(refLinesPath, laneBordersPath string) (*jsonFeed, error) {
	refData, err := os.ReadFile(refLinesPath)
	if err != nil {
		return nil, err
	}
	borderData, err := os.ReadFile(laneBordersPath)
	if err != nil {
		return nil, err
	}

	f := &jsonFeed{}
	if err := json.Unmarshal(refData, &f.refLines); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(borderData, &f.laneBorders); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *jsonFeed) ReferenceLines() ([]feed.ReferenceLineRecord, error) {
	return f.refLines, nil
}

func (f *jsonFeed) LaneBorders() ([]feed.LaneBorderRecord, error) {
	return f.laneBorders, nil
}

func main() {
	flag.Parse()

	cfg, err := config.New()
	if err != nil {
		log.Fatalf("ingest: loading config: %v", err)
	}

	logger, cleanup, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("ingest: building logger: %v", err)
	}
	defer cleanup()

	snapshotPath := *outputPath
	if snapshotPath == "" {
		snapshotPath = cfg.Map.SnapshotPath
	}

	source, err := loadJSONFeed(*refLinesPath, *laneBordersPath)
	if err != nil {
		logger.Fatal("failed to load feed records", zap.Error(err))
	}

	half := cfg.Quadtree.BoundaryHalf
	boundary := quadtree.Boundary{XMin: -half, XMax: half, YMin: -half, YMax: half}

	m, err := feed.BuildMap(source, boundary, cfg.Quadtree.Capacity, logger)
	if err != nil {
		logger.Fatal("failed to build map from feed", zap.Error(err))
	}

	data, err := roadmap.EncodeSnapshot(m.Snapshot())
	if err != nil {
		logger.Fatal("failed to encode map snapshot", zap.Error(err))
	}

	if err := os.WriteFile(snapshotPath, data, 0o644); err != nil {
		logger.Fatal("failed to write map snapshot", zap.String("path", snapshotPath), zap.Error(err))
	}

	logger.Info("wrote map snapshot",
		zap.String("path", snapshotPath),
		zap.Int("lanes", len(m.Lanes)),
		zap.Int("roads", len(m.Roads)),
	)
}
