package nmea

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nmeasim/nmeasim/internal/simerr"
)

// Sentence is a parsed, checksum-validated NMEA line, split into its
// talker/sentence identity and comma-separated fields.
type Sentence struct {
	Talker     string // e.g. "GP", "AI"
	SentenceID string // e.g. "GGA", "RMC", "VDM"
	Fields     []string
	Raw        string
}

// Parse validates line's checksum and framing, then splits it into a
// Sentence. line may or may not carry a trailing \r\n.
func Parse(line string) (Sentence, error) {
	trimmed := strings.TrimRight(line, "\r\n")
	if len(trimmed) < 1 || (trimmed[0] != '$' && trimmed[0] != '!') {
		return Sentence{}, simerr.Field(simerr.KindParse, "prefix", "sentence must start with '$' or '!'")
	}

	star := strings.LastIndexByte(trimmed, '*')
	if star < 0 || star+3 > len(trimmed) {
		return Sentence{}, simerr.Field(simerr.KindParse, "checksum", "missing or truncated checksum")
	}

	body := trimmed[1:star]
	wantHex := trimmed[star+1:]
	want, err := strconv.ParseUint(wantHex, 16, 8)
	if err != nil {
		return Sentence{}, simerr.Wrap(simerr.KindParse, fmt.Sprintf("invalid checksum digits %q", wantHex), simerr.ErrMalformed)
	}
	if byte(want) != Checksum(body) {
		return Sentence{}, simerr.Wrap(simerr.KindParse, "checksum mismatch", simerr.ErrChecksum)
	}
	if len(trimmed) > MaxSentenceLength {
		return Sentence{}, simerr.Field(simerr.KindParse, "length", fmt.Sprintf("sentence exceeds %d characters", MaxSentenceLength))
	}

	fields := strings.Split(body, ",")
	if len(fields) == 0 || len(fields[0]) < 5 {
		return Sentence{}, simerr.Field(simerr.KindParse, "header", "sentence header too short")
	}
	header := fields[0]
	return Sentence{
		Talker:     header[:2],
		SentenceID: header[2:],
		Fields:     fields[1:],
		Raw:        trimmed,
	}, nil
}

// fieldError builds a parse error naming the offending field index,
// per spec.md §4.4's "parse failure with the offending field index."
func fieldError(index int, name string, err error) error {
	return simerr.Wrap(simerr.KindParse, fmt.Sprintf("field %d (%s): %v", index, name, err), simerr.ErrMalformed)
}

// GGAFields is the decoded content of a parsed GGA sentence.
type GGAFields struct {
	HasFix     bool
	TimeUTC    string
	Latitude   float64
	Longitude  float64
	FixQuality int
	NumSats    int
	HDOP       float64
	AltitudeM  float64
	GeoidSepM  float64
}

// ParseGGA extracts a GGAFields from an already-Parsed GGA sentence.
func ParseGGA(s Sentence) (GGAFields, error) {
	if len(s.Fields) < 14 {
		return GGAFields{}, fieldError(len(s.Fields), "count", fmt.Errorf("expected 14 fields, got %d", len(s.Fields)))
	}
	var g GGAFields
	g.TimeUTC = s.Fields[0]

	quality, err := parseIntField(s.Fields[5])
	if err != nil {
		return g, fieldError(5, "fix_quality", err)
	}
	g.FixQuality = quality
	g.HasFix = quality > 0

	if g.HasFix {
		lat, err := parseCoordinate(s.Fields[1], s.Fields[2])
		if err != nil {
			return g, fieldError(1, "latitude", err)
		}
		g.Latitude = lat

		lon, err := parseCoordinate(s.Fields[3], s.Fields[4])
		if err != nil {
			return g, fieldError(3, "longitude", err)
		}
		g.Longitude = lon

		numSats, err := parseIntField(s.Fields[6])
		if err != nil {
			return g, fieldError(6, "num_sats", err)
		}
		g.NumSats = numSats

		if s.Fields[7] != "" {
			hdop, err := strconv.ParseFloat(s.Fields[7], 64)
			if err != nil {
				return g, fieldError(7, "hdop", err)
			}
			g.HDOP = hdop
		}
		if s.Fields[8] != "" {
			alt, err := strconv.ParseFloat(s.Fields[8], 64)
			if err != nil {
				return g, fieldError(8, "altitude", err)
			}
			g.AltitudeM = alt
		}
		if s.Fields[10] != "" {
			geoid, err := strconv.ParseFloat(s.Fields[10], 64)
			if err != nil {
				return g, fieldError(10, "geoid_sep", err)
			}
			g.GeoidSepM = geoid
		}
	}
	return g, nil
}

// RMCFields is the decoded content of a parsed RMC sentence.
type RMCFields struct {
	HasFix     bool
	TimeUTC    string
	DateUTC    string
	Latitude   float64
	Longitude  float64
	SOGKnots   float64
	COGDegrees float64
}

// ParseRMC extracts an RMCFields from an already-Parsed RMC sentence.
func ParseRMC(s Sentence) (RMCFields, error) {
	if len(s.Fields) < 12 {
		return RMCFields{}, fieldError(len(s.Fields), "count", fmt.Errorf("expected 12 fields, got %d", len(s.Fields)))
	}
	var r RMCFields
	r.TimeUTC = s.Fields[0]
	r.HasFix = s.Fields[1] == "A"
	r.DateUTC = s.Fields[8]

	if r.HasFix {
		lat, err := parseCoordinate(s.Fields[2], s.Fields[3])
		if err != nil {
			return r, fieldError(2, "latitude", err)
		}
		r.Latitude = lat

		lon, err := parseCoordinate(s.Fields[4], s.Fields[5])
		if err != nil {
			return r, fieldError(4, "longitude", err)
		}
		r.Longitude = lon

		if s.Fields[6] != "" {
			sog, err := strconv.ParseFloat(s.Fields[6], 64)
			if err != nil {
				return r, fieldError(6, "sog", err)
			}
			r.SOGKnots = sog
		}
		if s.Fields[7] != "" {
			cog, err := strconv.ParseFloat(s.Fields[7], 64)
			if err != nil {
				return r, fieldError(7, "cog", err)
			}
			r.COGDegrees = cog
		}
	}
	return r, nil
}

// AIVDMFields is the decoded content of a parsed AIVDM sentence, ready
// to feed ais.Reassemble once all of a group's fragments have arrived.
type AIVDMFields struct {
	Count    int
	Index    int
	GroupID  int // -1 when the field is empty (single-fragment message)
	Channel  string
	Payload  string
	FillBits int
}

// ParseAIVDM extracts an AIVDMFields from an already-Parsed VDM/VDO
// sentence.
func ParseAIVDM(s Sentence) (AIVDMFields, error) {
	if len(s.Fields) < 6 {
		return AIVDMFields{}, fieldError(len(s.Fields), "count", fmt.Errorf("expected 6 fields, got %d", len(s.Fields)))
	}
	var a AIVDMFields
	count, err := parseIntField(s.Fields[0])
	if err != nil {
		return a, fieldError(0, "count", err)
	}
	a.Count = count

	index, err := parseIntField(s.Fields[1])
	if err != nil {
		return a, fieldError(1, "index", err)
	}
	a.Index = index

	a.GroupID = -1
	if s.Fields[2] != "" {
		g, err := parseIntField(s.Fields[2])
		if err != nil {
			return a, fieldError(2, "group_id", err)
		}
		a.GroupID = g
	}

	a.Channel = s.Fields[3]
	a.Payload = s.Fields[4]

	fill, err := parseIntField(s.Fields[5])
	if err != nil {
		return a, fieldError(5, "fill", err)
	}
	a.FillBits = fill

	return a, nil
}

func parseIntField(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("empty field")
	}
	return strconv.Atoi(s)
}

// parseCoordinate converts an NMEA DDMM.MMMM / DDDMM.MMMM field plus
// hemisphere letter into signed decimal degrees.
func parseCoordinate(field, hemisphere string) (float64, error) {
	if field == "" {
		return 0, fmt.Errorf("empty coordinate")
	}
	dotIdx := strings.IndexByte(field, '.')
	if dotIdx < 2 {
		return 0, fmt.Errorf("malformed coordinate %q", field)
	}
	degDigits := dotIdx - 2
	deg, err := strconv.Atoi(field[:degDigits])
	if err != nil {
		return 0, fmt.Errorf("malformed degrees in %q: %w", field, err)
	}
	min, err := strconv.ParseFloat(field[degDigits:], 64)
	if err != nil {
		return 0, fmt.Errorf("malformed minutes in %q: %w", field, err)
	}
	value := float64(deg) + min/60
	if hemisphere == "S" || hemisphere == "W" {
		value = -value
	}
	return value, nil
}
