// Package vessel holds the simulated-entity data model: mobile
// vessels, base stations, and aids to navigation, plus the kinematics
// and movement patterns that advance a vessel's position each tick.
package vessel

import (
	"math/rand"

	"github.com/nmeasim/nmeasim/internal/ais"
)

// Noise configures the bounded random perturbation applied to speed
// and course each tick, per spec.md §4.5.
type Noise struct {
	SpeedVariationKn  float64 // uniform +/- this many knots
	CourseVariationDeg float64 // uniform +/- this many degrees
}

// Vessel is a single simulated AIS/GPS target: its static identity,
// current kinematic state, and the movement Pattern driving it.
type Vessel struct {
	MMSI       uint32
	Name       string
	Callsign   string
	ShipType   int
	Class      ais.Class
	Dimensions ais.Dimensions
	EPFD       ais.EPFDType
	IMO        uint32
	Voyage     ais.Voyage

	NavStatus ais.NavStatus
	Latitude  float64
	Longitude float64
	SpeedKn   float64
	CourseDeg float64
	HeadingDeg int

	Noise   Noise
	Pattern Pattern

	rng *rand.Rand
}

// NewVessel returns a Vessel seeded with an independent random source
// so concurrent tick updates across vessels never share rand state.
func NewVessel(mmsi uint32, seed int64) *Vessel {
	return &Vessel{MMSI: mmsi, rng: rand.New(rand.NewSource(seed))}
}

// Tick advances the vessel's kinematic state by dtSeconds: it applies
// the movement pattern (which may change course/speed/position
// directly), then bounded noise, then clamps speed and course into
// their valid ranges.
func (v *Vessel) Tick(dtSeconds float64) {
	if v.Pattern != nil {
		v.Pattern.Advance(v, dtSeconds)
	} else {
		v.Latitude, v.Longitude = AdvancePosition(v.Latitude, v.Longitude, v.SpeedKn, v.CourseDeg, dtSeconds)
	}

	if v.Noise.SpeedVariationKn > 0 {
		v.SpeedKn += (v.rng.Float64()*2 - 1) * v.Noise.SpeedVariationKn
	}
	if v.Noise.CourseVariationDeg > 0 {
		v.CourseDeg += (v.rng.Float64()*2 - 1) * v.Noise.CourseVariationDeg
	}

	v.SpeedKn = clampSpeed(v.SpeedKn)
	v.CourseDeg = normalizeDegrees(v.CourseDeg)
	v.HeadingDeg = int(v.CourseDeg)
}

// PositionReport snapshots the vessel's current kinematic state as an
// ais.PositionReport input, timestamped at timestampSec.
func (v *Vessel) PositionReport(timestampSec int) ais.PositionReport {
	return ais.PositionReport{
		MMSI:         v.MMSI,
		NavStatus:    v.NavStatus,
		RateOfTurn:   ais.ROTNotAvailable,
		SOGKnots:     v.SpeedKn,
		PositionAcc:  true,
		Longitude:    v.Longitude,
		Latitude:     v.Latitude,
		COGDegrees:   v.CourseDeg,
		HeadingDeg:   v.HeadingDeg,
		TimestampSec: timestampSec,
		RAIM:         false,
	}
}

// BaseStation is a fixed AIS station broadcasting type 4 reports.
type BaseStation struct {
	MMSI      uint32
	Latitude  float64
	Longitude float64
	EPFD      ais.EPFDType
}

// AidToNavigation is a fixed or virtual navigation aid broadcasting
// type 21 reports.
type AidToNavigation struct {
	MMSI          uint32
	AidType       int
	Name          string
	Latitude      float64
	Longitude     float64
	Dimensions    ais.Dimensions
	EPFD          ais.EPFDType
	VirtualAid    bool
	NameExtension string
}
