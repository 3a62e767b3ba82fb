package roadlane

import (
	"math"
	"testing"

	"github.com/go-roadmap/roadmap-core/pkg/mapborder"
	"github.com/go-roadmap/roadmap-core/pkg/mapgeom"
)

func straightBorder(y float64) mapborder.Border {
	return mapborder.Border{Points: []mapgeom.MapPoint{
		mapgeom.NewMapPoint(0, y),
		mapgeom.NewMapPoint(100, y),
	}}
}

func TestNewLaneWidth(t *testing.T) {
	inner := straightBorder(0)
	outer := straightBorder(4)
	inner.ComputeSValues()
	outer.ComputeSValues()

	lane, err := NewLane(inner, outer, 1, 1, false)
	if err != nil {
		t.Fatalf("NewLane() error = %v", err)
	}

	if got := lane.GetWidth(50); math.Abs(got-4.0) > 1e-6 {
		t.Fatalf("GetWidth(50) = %v, want 4.0", got)
	}
}

func TestSetTypeDrivingSpeedLimits(t *testing.T) {
	lane := &Lane{}
	lane.SetType("driving", Motorway)
	if math.Abs(lane.SpeedLimit-DrivingSpeedLimitMotorway) > 1e-9 {
		t.Fatalf("SpeedLimit = %v, want %v", lane.SpeedLimit, DrivingSpeedLimitMotorway)
	}

	lane.SetType("driving", LowSpeed)
	if math.Abs(lane.SpeedLimit-DrivingSpeedLimitLowSpeed) > 1e-9 {
		t.Fatalf("SpeedLimit = %v, want %v", lane.SpeedLimit, DrivingSpeedLimitLowSpeed)
	}
}

func TestSetTypeAliases(t *testing.T) {
	lane := &Lane{}
	lane.SetType("walking", Unknown)
	if lane.Type != Sidewalk {
		t.Fatalf("Type = %v, want Sidewalk", lane.Type)
	}

	lane.SetType("Bicycle", Unknown)
	if lane.Type != Biking {
		t.Fatalf("Type = %v, want Biking", lane.Type)
	}
}

func TestSetTypeUnknownFallsBackToNone(t *testing.T) {
	lane := &Lane{}
	lane.SetType("spaceship-lane", Unknown)
	if lane.Type != None {
		t.Fatalf("Type = %v, want None", lane.Type)
	}
	if math.Abs(lane.SpeedLimit-defaultSpeedLimit) > 1e-9 {
		t.Fatalf("SpeedLimit = %v, want %v", lane.SpeedLimit, defaultSpeedLimit)
	}
}

func TestSetMaterialUnknownFallsBackToAsphalt(t *testing.T) {
	lane := &Lane{}
	lane.SetMaterial("moon-dust")
	if lane.Material != Asphalt {
		t.Fatalf("Material = %v, want Asphalt", lane.Material)
	}
}

func TestSetCategoryUnknownFallsBackToLowSpeed(t *testing.T) {
	road := NewRoad("B1", 1, "atlantis", false)
	if road.Category != LowSpeed {
		t.Fatalf("Category = %v, want LowSpeed", road.Category)
	}
}
