// Package feed adapts raw border-feed records (reference lines and
// lane borders from an external, out-of-scope collaborator) into the
// core's Border/Lane/Road/RoadGraph types.
package feed

import (
	"math"
	"strconv"
	"strings"

	"github.com/go-roadmap/roadmap-core/pkg/mapgeom"
)

// nullString is the normalized value for a missing string field.
const nullString = "NULL"

// coordinateDecimals is the number of decimal places coordinates are
// rounded to on ingest.
const coordinateDecimals = 6

// ReferenceLineRecord is one lane's reference line: its polyline,
// classification, and successor/predecessor links in the lane graph.
type ReferenceLineRecord struct {
	ID                      uint64
	Points                  []mapgeom.MapPoint
	StreetName              string
	Turn                    string
	Category                string
	OneWay                  bool
	LineType                string
	SuccessorID             uint64
	PredecessorID           uint64
	DatasourceDescriptionID int
}

// LaneBorderRecord is one border (inner or outer) of a lane, keyed back
// to its reference line via ParentID.
type LaneBorderRecord struct {
	ID                      uint64
	Points                  []mapgeom.MapPoint
	ParentID                uint64
	Material                string
	LineType                string
	DatasourceDescriptionID int
}

// BorderFeed is the collaborator the core ingests border data from.
// Its concrete backend (a remote feature fetch, a file reader) is out
// of scope here; BuildMap only needs the two record sets it produces.
type BorderFeed interface {
	ReferenceLines() ([]ReferenceLineRecord, error)
	LaneBorders() ([]LaneBorderRecord, error)
}

// NormalizeString returns s, or the literal "NULL" when s is empty.
func NormalizeString(s string) string {
	if s == "" {
		return nullString
	}
	return s
}

// NormalizeInt parses raw as an integer, defaulting to 0 when raw is
// empty or unparsable.
func NormalizeInt(raw string) int {
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}

// ParseOneWay case-insensitively parses a boolean oneway field.
func ParseOneWay(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}

// RoundCoordinate rounds v to coordinateDecimals decimal places.
func RoundCoordinate(v float64) float64 {
	scale := math.Pow(10, coordinateDecimals)
	return math.Round(v*scale) / scale
}

// RoundPoints returns points with each coordinate passed through
// RoundCoordinate.
func RoundPoints(points []mapgeom.MapPoint) []mapgeom.MapPoint {
	rounded := make([]mapgeom.MapPoint, len(points))
	for i, p := range points {
		rounded[i] = mapgeom.NewMapPoint(RoundCoordinate(p.X), RoundCoordinate(p.Y))
	}
	return rounded
}
