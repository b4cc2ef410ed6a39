// Package ais implements bit-exact AIS message payload encoding and
// decoding per ITU-R M.1371, plus the AIVDM fragmenter.
package ais

// Class distinguishes AIS Class A and Class B mobile stations.
type Class int

const (
	ClassA Class = iota
	ClassB
)

// NavStatus is the Class-A navigational status code (spec.md §3, 0-15).
type NavStatus int

const (
	NavUnderwayEngine        NavStatus = 0
	NavAtAnchor              NavStatus = 1
	NavNotUnderCommand       NavStatus = 2
	NavRestrictedManeuver    NavStatus = 3
	NavConstrainedByDraught  NavStatus = 4
	NavMoored                NavStatus = 5
	NavAground               NavStatus = 6
	NavFishing               NavStatus = 7
	NavUnderwaySailing       NavStatus = 8
	NavReserved9             NavStatus = 9
	NavReserved10            NavStatus = 10
	NavPowerDrivenTowingAstn NavStatus = 11
	NavReserved12            NavStatus = 12
	NavReserved13            NavStatus = 13
	NavAISSARTActive         NavStatus = 14
	NavNotDefined            NavStatus = 15
)

// EPFDType is the electronic position fixing device type (4 bits).
type EPFDType int

const (
	EPFDUndefined EPFDType = 0
	EPFDGPS       EPFDType = 1
	EPFDGLONASS   EPFDType = 2
	EPFDCombined  EPFDType = 3
	EPFDLoranC    EPFDType = 4
	EPFDChayka    EPFDType = 5
	EPFDIntegrated EPFDType = 6
	EPFDSurveyed  EPFDType = 7
	EPFDGalileo   EPFDType = 8
)

// Sentinel field values, per M.1371.
const (
	SOGNotAvailable        = 1023 // deci-knots
	COGNotAvailable        = 3600 // deci-degrees
	HeadingNotAvailable    = 511  // degrees
	ROTNotAvailable        = -128
	TimestampNotAvailable  = 60
	LongitudeNotAvailable  = 181 * 600000 // I4 sentinel, 1/10000 min
	LatitudeNotAvailable   = 91 * 600000
	MMSIMax                = 999999999
)

// Dimensions holds a vessel's or aid-to-navigation's reference point
// offsets in meters, per spec.md §3.
type Dimensions struct {
	ToBow      int // 0-511
	ToStern    int // 0-511
	ToPort     int // 0-63
	ToStarboard int // 0-63
}

// Voyage holds the optional destination/draught/ETA block reported in
// type 5 (Class A static & voyage data).
type Voyage struct {
	Destination string  // <= 20 chars
	DraughtM    float64 // 0-25.5m, 0.1m resolution
	ETAMonth    int     // 0 = not available
	ETADay      int
	ETAHour     int
	ETAMinute   int
}

// PositionReport is the common input to the Class A (type 1/2/3) and
// Class B (type 18/19) position encoders.
type PositionReport struct {
	MMSI         uint32
	NavStatus    NavStatus // Class A only
	RateOfTurn   int       // -128..127, ROTAIS units; ignored for Class B
	SOGKnots     float64   // 0-102.2, sentinel 102.3+ -> not available
	PositionAcc  bool
	Longitude    float64 // decimal degrees
	Latitude     float64
	COGDegrees   float64 // 0-359.9, >=360 -> not available
	HeadingDeg   int     // 0-359, 511 = not available
	TimestampSec int     // 0-59 UTC second, or sentinel 60-63
	Maneuver     int     // Class A only, 0-2
	RAIM         bool
	Radio        uint32

	// Class B (type 18) extras.
	CSUnit  bool
	Display bool
	DSC     bool
	Band    bool
	Msg22   bool
	Assigned bool
}

// StaticVoyageData is the input to the type 5 encoder (Class A static
// and voyage related data).
type StaticVoyageData struct {
	MMSI       uint32
	AISVersion int // 0-3
	IMO        uint32
	Callsign   string // <= 7 chars
	Name       string // <= 20 chars
	ShipType   int    // 0-99 (0-255 wire range)
	Dimensions Dimensions
	EPFD       EPFDType
	Voyage     Voyage
	DTE        bool // 1 = not available
}

// ClassBExtended is the input to the type 19 encoder (Class B extended
// position report, static portion appended to a position report).
type ClassBExtended struct {
	Position   PositionReport
	Regional   int
	Name       string
	ShipType   int
	Dimensions Dimensions
	EPFD       EPFDType
	RAIM       bool
	DTE        bool
	Assigned   bool
}

// StaticDataReportA is the type 24A part (vessel name only).
type StaticDataReportA struct {
	MMSI uint32
	Name string
}

// StaticDataReportB is the type 24B part (ship type, vendor, callsign,
// dimensions, or mothership MMSI for auxiliary craft).
type StaticDataReportB struct {
	MMSI          uint32
	ShipType      int
	VendorID      string // <= 7 chars
	Callsign      string // <= 7 chars
	Dimensions    Dimensions
	MothershipMMSI uint32 // used instead of Dimensions when non-zero, aux craft only
}

// BaseStationReport is the type 4 input.
type BaseStationReport struct {
	MMSI        uint32
	Year        int // 0 = not available
	Month       int
	Day         int
	Hour        int
	Minute      int
	Second      int
	PositionAcc bool
	Longitude   float64
	Latitude    float64
	EPFD        EPFDType
	RAIM        bool
	Radio       uint32
}

// AidToNavigation is the type 21 input.
type AidToNavigation struct {
	MMSI          uint32
	AidType       int // 0-31
	Name          string
	PositionAcc   bool
	Longitude     float64
	Latitude      float64
	Dimensions    Dimensions
	EPFD          EPFDType
	TimestampSec  int
	OffPosition   bool
	Regional      int
	RAIM          bool
	VirtualAid    bool
	Assigned      bool
	NameExtension string // appended past the 20-char name field, 0-14 extra chars
}
