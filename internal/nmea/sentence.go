package nmea

import (
	"fmt"
	"math"
	"time"
)

func formatTime(t time.Time) string {
	return t.UTC().Format("150405.000")
}

func formatLatitude(lat float64) (field, hemisphere string) {
	hemisphere = "N"
	if lat < 0 {
		hemisphere = "S"
	}
	abs := math.Abs(lat)
	deg := int(abs)
	min := (abs - float64(deg)) * 60
	return fmt.Sprintf("%02d%07.4f", deg, min), hemisphere
}

func formatLongitude(lon float64) (field, hemisphere string) {
	hemisphere = "E"
	if lon < 0 {
		hemisphere = "W"
	}
	abs := math.Abs(lon)
	deg := int(abs)
	min := (abs - float64(deg)) * 60
	return fmt.Sprintf("%03d%07.4f", deg, min), hemisphere
}

// GGAFix carries the fields FormatGGA needs beyond talker and time.
type GGAFix struct {
	HasFix      bool
	Latitude    float64
	Longitude   float64
	FixQuality  int
	NumSats     int
	HDOP        float64
	AltitudeM   float64
	GeoidSepM   float64
}

// FormatGGA renders a GGA (Global Positioning System Fix Data)
// sentence for talker (e.g. "GP") at time t.
func FormatGGA(talker string, t time.Time, fix GGAFix) string {
	if !fix.HasFix {
		return Frame(fmt.Sprintf("$%sGGA,%s,,,,,0,00,,,,,,,,", talker, formatTime(t)))
	}
	latField, latHem := formatLatitude(fix.Latitude)
	lonField, lonHem := formatLongitude(fix.Longitude)
	body := fmt.Sprintf("$%sGGA,%s,%s,%s,%s,%s,%d,%02d,%.1f,%.1f,M,%.1f,M,,",
		talker, formatTime(t), latField, latHem, lonField, lonHem,
		fix.FixQuality, fix.NumSats, fix.HDOP, fix.AltitudeM, fix.GeoidSepM)
	return Frame(body)
}

// RMCFix carries the fields FormatRMC needs beyond talker and time.
type RMCFix struct {
	HasFix     bool
	Latitude   float64
	Longitude  float64
	SOGKnots   float64
	COGDegrees float64
	MagVar     float64 // 0 means "not available"
	MagVarEW   string
	Mode       string // "A" autonomous, "D" DGPS, "E" dead reckoning
}

// FormatRMC renders an RMC (Recommended Minimum Navigation
// Information) sentence for talker at time t.
func FormatRMC(talker string, t time.Time, fix RMCFix) string {
	dateStr := t.UTC().Format("020106")
	if !fix.HasFix {
		return Frame(fmt.Sprintf("$%sRMC,%s,V,,,,,,,%s,,,N", talker, formatTime(t), dateStr))
	}
	latField, latHem := formatLatitude(fix.Latitude)
	lonField, lonHem := formatLongitude(fix.Longitude)
	magVarStr := ""
	if fix.MagVar != 0 {
		magVarStr = fmt.Sprintf("%.1f", fix.MagVar)
	}
	mode := fix.Mode
	if mode == "" {
		mode = "A"
	}
	body := fmt.Sprintf("$%sRMC,%s,A,%s,%s,%s,%s,%.1f,%.1f,%s,%s,%s,%s",
		talker, formatTime(t), latField, latHem, lonField, lonHem,
		fix.SOGKnots, fix.COGDegrees, dateStr, magVarStr, fix.MagVarEW, mode)
	return Frame(body)
}
