package vessel

// Pattern advances a Vessel's course and/or position for one tick,
// before noise and clamping are applied. Implementations correspond
// to spec.md §4.5's linear/circular/random_walk/waypoint patterns.
type Pattern interface {
	Advance(v *Vessel, dtSeconds float64)
}

// LinearPattern holds course constant except for the noise Vessel.Tick
// applies afterward; position advances along the current course.
type LinearPattern struct{}

func (LinearPattern) Advance(v *Vessel, dtSeconds float64) {
	v.Latitude, v.Longitude = AdvancePosition(v.Latitude, v.Longitude, v.SpeedKn, v.CourseDeg, dtSeconds)
}

// CircularPattern holds a vessel on a fixed-radius circle around a
// center point: course is set to the bearing from the center plus 90
// degrees (tangent to the circle), so the vessel continuously orbits.
type CircularPattern struct {
	CenterLat float64
	CenterLon float64
	RadiusM   float64
}

func (c CircularPattern) Advance(v *Vessel, dtSeconds float64) {
	bearing := BearingDegrees(c.CenterLat, c.CenterLon, v.Latitude, v.Longitude)
	v.CourseDeg = normalizeDegrees(bearing + 90)
	v.Latitude, v.Longitude = AdvancePosition(v.Latitude, v.Longitude, v.SpeedKn, v.CourseDeg, dtSeconds)

	if dist := HaversineDistanceM(c.CenterLat, c.CenterLon, v.Latitude, v.Longitude); dist > c.RadiusM {
		correctedBearing := BearingDegrees(v.Latitude, v.Longitude, c.CenterLat, c.CenterLon)
		v.Latitude, v.Longitude = AdvancePosition(v.Latitude, v.Longitude, v.SpeedKn*0.1, correctedBearing, dtSeconds)
	}
}

// RandomWalkPattern confines a vessel to a lat/lon box, reflecting its
// course off the boundary like a ball bouncing off a wall.
type RandomWalkPattern struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
}

func (b RandomWalkPattern) Advance(v *Vessel, dtSeconds float64) {
	newLat, newLon := AdvancePosition(v.Latitude, v.Longitude, v.SpeedKn, v.CourseDeg, dtSeconds)

	if newLat < b.MinLat || newLat > b.MaxLat {
		v.CourseDeg = normalizeDegrees(180 - v.CourseDeg)
		newLat, newLon = AdvancePosition(v.Latitude, v.Longitude, v.SpeedKn, v.CourseDeg, dtSeconds)
	}
	if newLon < b.MinLon || newLon > b.MaxLon {
		v.CourseDeg = normalizeDegrees(-v.CourseDeg)
		newLat, newLon = AdvancePosition(v.Latitude, v.Longitude, v.SpeedKn, v.CourseDeg, dtSeconds)
	}

	v.Latitude, v.Longitude = newLat, newLon
}

// LatLon is a waypoint coordinate.
type LatLon struct {
	Latitude  float64
	Longitude float64
}

// WaypointPattern steers a vessel toward the next waypoint in
// sequence, advancing to the following one once within ToleranceM.
// The pattern loops back to the first waypoint after the last.
type WaypointPattern struct {
	Waypoints  []LatLon
	ToleranceM float64

	index int
}

func (w *WaypointPattern) Advance(v *Vessel, dtSeconds float64) {
	if len(w.Waypoints) == 0 {
		v.Latitude, v.Longitude = AdvancePosition(v.Latitude, v.Longitude, v.SpeedKn, v.CourseDeg, dtSeconds)
		return
	}

	target := w.Waypoints[w.index%len(w.Waypoints)]
	v.CourseDeg = BearingDegrees(v.Latitude, v.Longitude, target.Latitude, target.Longitude)
	v.Latitude, v.Longitude = AdvancePosition(v.Latitude, v.Longitude, v.SpeedKn, v.CourseDeg, dtSeconds)

	if HaversineDistanceM(v.Latitude, v.Longitude, target.Latitude, target.Longitude) <= w.ToleranceM {
		w.index++
	}
}
