package feed

import (
	"github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/go-roadmap/roadmap-core/pkg/maperr"
	"github.com/go-roadmap/roadmap-core/pkg/mapborder"
	"github.com/go-roadmap/roadmap-core/pkg/quadtree"
	"github.com/go-roadmap/roadmap-core/pkg/roadgraph"
	"github.com/go-roadmap/roadmap-core/pkg/roadlane"
	"github.com/go-roadmap/roadmap-core/pkg/roadmap"
)

// BuildMap drives source through pairing (lane borders to their
// reference line), grouping (lanes to roads by street name),
// quadtree population and lane-graph construction, and returns the
// resulting Map. Reference lines whose lane borders are missing or
// malformed are skipped and logged, not fatal.
func BuildMap(source BorderFeed, boundary quadtree.Boundary, capacity int, logger *zap.Logger) (*roadmap.Map, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	refLines, err := source.ReferenceLines()
	if err != nil {
		return nil, maperr.Wrap(maperr.FeedFormatError, "read reference lines", err)
	}
	laneBorders, err := source.LaneBorders()
	if err != nil {
		return nil, maperr.Wrap(maperr.FeedFormatError, "read lane borders", err)
	}

	bordersByParent := make(map[uint64][]LaneBorderRecord, len(laneBorders))
	for _, b := range laneBorders {
		bordersByParent[b.ParentID] = append(bordersByParent[b.ParentID], b)
	}

	m := roadmap.New(boundary, capacity)
	roadsByName := make(map[string]*roadlane.Road)
	var nextRoadID uint64 = 1

	bar := progressbar.NewOptions(len(refLines),
		progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(15),
		progressbar.OptionSetDescription("[cyan]Building road map from border feed..."),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	skipped := 0
	for _, rl := range refLines {
		bar.Add(1)

		pair, ok := bordersByParent[rl.ID]
		if !ok || len(pair) < 2 {
			logger.Warn("reference line has fewer than two lane borders, skipping",
				zap.Uint64("reference_line_id", rl.ID))
			skipped++
			continue
		}

		inner := mapborder.Border{Points: RoundPoints(pair[0].Points)}
		outer := mapborder.Border{Points: RoundPoints(pair[1].Points)}

		road := roadFor(roadsByName, &nextRoadID, rl)

		lane, err := roadlane.NewLane(inner, outer, rl.ID, road.ID, false)
		if err != nil {
			logger.Warn("failed to build lane from border records, skipping",
				zap.Uint64("reference_line_id", rl.ID), zap.Error(err))
			skipped++
			continue
		}
		lane.SetMaterial(pair[0].Material)
		lane.SetType(pair[0].LineType, road.Category)

		reference := mapborder.Border{Points: RoundPoints(rl.Points)}
		reference.ComputeSValues()
		lane.Borders.Inner.ReparameterizeBasedOnReference(&reference)
		lane.Borders.Outer.ReparameterizeBasedOnReference(&reference)

		m.AddRoad(road)
		m.AddLane(lane)

		if rl.SuccessorID != 0 {
			m.LaneGraph.AddConnection(roadgraph.Connection{
				FromID: rl.ID,
				ToID:   rl.SuccessorID,
				Weight: lane.Length,
			})
		}
	}

	if skipped > 0 {
		logger.Warn("ingestion skipped malformed reference lines", zap.Int("skipped", skipped))
	}

	return m, nil
}

// roadFor returns the Road for rl's street name, creating and
// registering one with the next available id if it doesn't exist yet.
func roadFor(roadsByName map[string]*roadlane.Road, nextRoadID *uint64, rl ReferenceLineRecord) *roadlane.Road {
	name := NormalizeString(rl.StreetName)
	if road, ok := roadsByName[name]; ok {
		return road
	}

	road := roadlane.NewRoad(name, *nextRoadID, rl.Category, rl.OneWay)
	*nextRoadID++
	roadsByName[name] = road
	return road
}
