// Package roadlane models a drivable lane as a paired inner/outer
// border plus classification and speed-limit derivation, and a road as
// a named group of lanes sharing a reference line.
package roadlane

import (
	"github.com/go-roadmap/roadmap-core/pkg/mapborder"
	"github.com/go-roadmap/roadmap-core/pkg/mapgeom"
)

// LaneMaterial classifies a lane's surface.
type LaneMaterial int

const (
	Asphalt LaneMaterial = iota
	Concrete
	Pavement
	Cobble
	Vegetation
	Soil
	Gravel
)

// LaneType classifies a lane's use.
type LaneType int

const (
	Driving LaneType = iota
	Parking
	Restricted
	None
	Sidewalk
	Biking
	Shoulder
	Tram
	Bus
)

// RoadCategory classifies the road a lane's reference line belongs to.
type RoadCategory int

const (
	Unknown RoadCategory = iota
	Rural
	Motorway
	Town
	LowSpeed
	Pedestrian
	Bicycle
)

// Speed limits in m/s, 1 km/h = 0.27778 m/s.
const (
	DrivingSpeedLimitRural     = 100.0 * 0.27778
	DrivingSpeedLimitMotorway  = 130.0 * 0.27778
	DrivingSpeedLimitTown      = 50.0 * 0.27778
	DrivingSpeedLimitLowSpeed  = 30.0 * 0.27778
	ParkingSpeedLimit          = 5.0 * 0.27778
	RestrictedSpeedLimit       = 10.0 * 0.27778
	BikingSpeedLimit           = 25.0 * 0.27778
	PedestrianSpeedLimit       = 5.0 * 0.27778
	defaultSpeedLimit          = 2.0
)

var materialAliases = map[string]LaneMaterial{
	"asphalt":    Asphalt,
	"concrete":   Concrete,
	"pavement":   Pavement,
	"cobble":     Cobble,
	"vegetation": Vegetation,
	"soil":       Soil,
	"gravel":     Gravel,
}

var typeAliases = map[string]LaneType{
	"driving":    Driving,
	"parking":    Parking,
	"restricted": Restricted,
	"none":       None,
	"sidewalk":   Sidewalk,
	"walking":    Sidewalk, // both variants found in feed data
	"biking":     Biking,
	"Bicycle":    Biking, // both variants found in feed data
	"shoulder":   Shoulder,
	"bus":        Bus,
	"tram":       Tram,
}

var categoryAliases = map[string]RoadCategory{
	"unknown":    Unknown,
	"rural":      Rural,
	"motorway":   Motorway,
	"town":       Town,
	"low_speed":  LowSpeed,
	"pedestrian": Pedestrian,
	"bicycle":    Bicycle,
}

// Lane is a drivable segment paired from an inner and an outer border.
type Lane struct {
	ID              uint64
	RoadID          uint64
	Borders         mapborder.Borders
	Type            LaneType
	Material        LaneMaterial
	LeftOfReference bool
	Length          float64
	SpeedLimit      float64
}

// NewLane pairs left and right into inner/outer by leftOfReference,
// interpolates both at 0.5m spacing, derives the center border, and
// stamps id onto every point of the result.
func NewLane(left, right mapborder.Border, id, roadID uint64, leftOfReference bool) (*Lane, error) {
	borders := mapborder.Borders{}
	if leftOfReference {
		borders.Inner = right
		borders.Outer = left
	} else {
		borders.Inner = left
		borders.Outer = right
	}

	if err := mapborder.InterpolateBorders(&borders, 0.5); err != nil {
		return nil, err
	}
	if err := mapborder.ProcessCenter(&borders); err != nil {
		return nil, err
	}
	mapborder.SetParentID(&borders, id)

	length := left.ComputeLength()

	return &Lane{
		ID:              id,
		RoadID:          roadID,
		Borders:         borders,
		LeftOfReference: leftOfReference,
		Length:          length,
		SpeedLimit:      defaultSpeedLimit,
	}, nil
}

// GetWidth returns the straight-line distance between inner's and
// outer's spline points at the same arc-length s, 0 if either border
// has no interpolated samples yet.
func (l *Lane) GetWidth(s float64) float64 {
	if len(l.Borders.Inner.InterpolatedPoints) == 0 || len(l.Borders.Outer.InterpolatedPoints) == 0 {
		return 0.0
	}

	innerPoint, err := l.Borders.Inner.GetInterpolatedPoint(s)
	if err != nil {
		return 0.0
	}
	outerPoint, err := l.Borders.Outer.GetInterpolatedPoint(s)
	if err != nil {
		return 0.0
	}

	return mapgeom.Distance2D(innerPoint, outerPoint)
}

// SetMaterial resolves materialStr against the known alias table,
// falling back to Asphalt for anything unrecognized.
func (l *Lane) SetMaterial(materialStr string) {
	if m, ok := materialAliases[materialStr]; ok {
		l.Material = m
		return
	}
	l.Material = Asphalt
}

// SetType resolves typeStr against the known alias table (falling
// back to None), then derives SpeedLimit from the resolved type and
// roadCategory per the fixed table.
func (l *Lane) SetType(typeStr string, roadCategory RoadCategory) {
	t, ok := typeAliases[typeStr]
	if !ok {
		t = None
	}
	l.Type = t
	l.SpeedLimit = speedLimitFor(t, roadCategory)
}

func speedLimitFor(laneType LaneType, roadCategory RoadCategory) float64 {
	switch laneType {
	case Driving:
		switch roadCategory {
		case Rural:
			return DrivingSpeedLimitRural
		case Motorway:
			return DrivingSpeedLimitMotorway
		case Town:
			return DrivingSpeedLimitTown
		case LowSpeed:
			return DrivingSpeedLimitLowSpeed
		default:
			return DrivingSpeedLimitRural
		}
	case Parking:
		return ParkingSpeedLimit
	case Restricted:
		return RestrictedSpeedLimit
	case Sidewalk, Shoulder, Bus:
		return PedestrianSpeedLimit
	case Biking:
		return BikingSpeedLimit
	case Tram:
		return DrivingSpeedLimitTown
	default:
		return defaultSpeedLimit
	}
}

// GetSpeedLimit returns the lane's derived speed limit.
func (l *Lane) GetSpeedLimit() float64 {
	return l.SpeedLimit
}

// Road groups lanes sharing a reference line.
type Road struct {
	ID       uint64
	Name     string
	Category RoadCategory
	OneWay   bool
	LaneIDs  map[uint64]struct{}
}

// NewRoad builds a Road and resolves roadCategoryStr via SetCategory.
func NewRoad(name string, id uint64, roadCategoryStr string, oneWay bool) *Road {
	r := &Road{Name: name, ID: id, OneWay: oneWay, LaneIDs: make(map[uint64]struct{})}
	r.SetCategory(roadCategoryStr)
	return r
}

// SetCategory resolves roadCategoryStr against the known alias table,
// falling back to LowSpeed for anything unrecognized.
func (r *Road) SetCategory(roadCategoryStr string) {
	if c, ok := categoryAliases[roadCategoryStr]; ok {
		r.Category = c
		return
	}
	r.Category = LowSpeed
}

// AddLane records laneID as a member of the road.
func (r *Road) AddLane(laneID uint64) {
	r.LaneIDs[laneID] = struct{}{}
}
