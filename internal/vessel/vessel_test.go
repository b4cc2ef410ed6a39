package vessel

import (
	"math"
	"testing"
)

func TestAdvancePositionMovesNorthAtCourseZero(t *testing.T) {
	lat, lon := AdvancePosition(0, 0, 60, 0, 3600) // 60 kn for 1 hour = 1 degree north
	if math.Abs(lat-1.0) > 1e-6 {
		t.Errorf("lat = %v, want ~1.0", lat)
	}
	if math.Abs(lon) > 1e-9 {
		t.Errorf("lon = %v, want ~0", lon)
	}
}

func TestAdvancePositionMovesEastAtCourseNinety(t *testing.T) {
	lat, lon := AdvancePosition(0, 0, 60, 90, 3600)
	if math.Abs(lat) > 1e-9 {
		t.Errorf("lat = %v, want ~0", lat)
	}
	if math.Abs(lon-1.0) > 1e-6 {
		t.Errorf("lon = %v, want ~1.0", lon)
	}
}

func TestHaversineDistanceZeroForSamePoint(t *testing.T) {
	d := HaversineDistanceM(37.8, -122.4, 37.8, -122.4)
	if d != 0 {
		t.Errorf("distance = %v, want 0", d)
	}
}

func TestBearingDegreesNorth(t *testing.T) {
	b := BearingDegrees(0, 0, 1, 0)
	if math.Abs(b) > 1e-6 {
		t.Errorf("bearing = %v, want ~0 (north)", b)
	}
}

func TestBearingDegreesEast(t *testing.T) {
	b := BearingDegrees(0, 0, 0, 1)
	if math.Abs(b-90) > 1e-6 {
		t.Errorf("bearing = %v, want ~90 (east)", b)
	}
}

func TestVesselTickClampsSpeedNonNegative(t *testing.T) {
	v := NewVessel(1, 42)
	v.SpeedKn = 0
	v.Noise = Noise{SpeedVariationKn: 5}
	for i := 0; i < 50; i++ {
		v.Tick(1)
		if v.SpeedKn < 0 {
			t.Fatalf("SpeedKn went negative: %v", v.SpeedKn)
		}
	}
}

func TestVesselTickNormalizesCourse(t *testing.T) {
	v := NewVessel(1, 7)
	v.CourseDeg = 350
	v.Noise = Noise{CourseVariationDeg: 30}
	for i := 0; i < 50; i++ {
		v.Tick(1)
		if v.CourseDeg < 0 || v.CourseDeg >= 360 {
			t.Fatalf("CourseDeg out of range: %v", v.CourseDeg)
		}
	}
}

func TestLinearPatternAdvancesAlongCourse(t *testing.T) {
	v := NewVessel(1, 1)
	v.SpeedKn = 10
	v.CourseDeg = 0
	v.Pattern = LinearPattern{}
	startLat := v.Latitude
	v.Tick(3600)
	if v.Latitude <= startLat {
		t.Errorf("expected latitude to increase, got %v -> %v", startLat, v.Latitude)
	}
}

func TestCircularPatternStaysNearRadius(t *testing.T) {
	v := NewVessel(1, 1)
	v.Latitude = 0.1
	v.Longitude = 0
	v.SpeedKn = 10
	pattern := CircularPattern{CenterLat: 0, CenterLon: 0, RadiusM: HaversineDistanceM(0, 0, 0.1, 0)}
	v.Pattern = pattern
	for i := 0; i < 200; i++ {
		v.Tick(60)
	}
	dist := HaversineDistanceM(0, 0, v.Latitude, v.Longitude)
	if dist > pattern.RadiusM*1.5 {
		t.Errorf("drifted too far from center: %v m, radius %v m", dist, pattern.RadiusM)
	}
}

func TestRandomWalkPatternStaysInBox(t *testing.T) {
	v := NewVessel(1, 3)
	v.Latitude = 0
	v.Longitude = 0
	v.SpeedKn = 100
	v.CourseDeg = 0
	v.Pattern = RandomWalkPattern{MinLat: -0.05, MaxLat: 0.05, MinLon: -0.05, MaxLon: 0.05}
	for i := 0; i < 100; i++ {
		v.Tick(60)
		if v.Latitude < -0.2 || v.Latitude > 0.2 {
			t.Fatalf("latitude escaped box: %v", v.Latitude)
		}
	}
}

func TestWaypointPatternAdvancesThroughWaypoints(t *testing.T) {
	v := NewVessel(1, 5)
	v.Latitude = 0
	v.Longitude = 0
	v.SpeedKn = 5
	wp := &WaypointPattern{
		Waypoints: []LatLon{
			{Latitude: 0.01, Longitude: 0},
			{Latitude: 0.01, Longitude: 0.01},
		},
		ToleranceM: 200,
	}
	v.Pattern = wp
	for i := 0; i < 100; i++ {
		v.Tick(30)
	}
	if wp.index == 0 {
		t.Error("expected waypoint index to advance past the first waypoint")
	}
}

func TestPositionReportReflectsVesselState(t *testing.T) {
	v := NewVessel(366123456, 1)
	v.Latitude = 37.8
	v.Longitude = -122.4
	v.SpeedKn = 12.3
	v.CourseDeg = 90
	pr := v.PositionReport(30)
	if pr.MMSI != v.MMSI || pr.SOGKnots != 12.3 || pr.TimestampSec != 30 {
		t.Errorf("unexpected position report: %+v", pr)
	}
}
