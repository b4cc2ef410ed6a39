package nmea

import (
	"testing"
	"time"

	"github.com/nmeasim/nmeasim/internal/ais"
)

func TestFormatGGAMatchesReferenceSentence(t *testing.T) {
	ts := time.Date(2026, 1, 1, 4, 43, 57, 944000000, time.UTC)
	got := FormatGGA("GP", ts, GGAFix{
		HasFix: true, Latitude: 37.8046517, Longitude: -122.4054417,
		FixQuality: 1, NumSats: 8, HDOP: 1.2, AltitudeM: 0.0, GeoidSepM: 19.6,
	})
	want := "$GPGGA,044357.944,3748.2791,N,12224.3265,W,1,08,1.2,0.0,M,19.6,M,,*"
	if len(got) < len(want) || got[:len(want)] != want {
		t.Fatalf("FormatGGA = %q, want prefix %q", got, want)
	}
	if got[len(got)-2:] != "\r\n" {
		t.Errorf("sentence must end with CRLF, got %q", got)
	}
}

func TestParseGGARoundTrip(t *testing.T) {
	ts := time.Date(2026, 1, 1, 4, 43, 57, 944000000, time.UTC)
	line := FormatGGA("GP", ts, GGAFix{
		HasFix: true, Latitude: 37.8046517, Longitude: -122.4054417,
		FixQuality: 1, NumSats: 8, HDOP: 1.2, AltitudeM: 0.0, GeoidSepM: 19.6,
	})
	sentence, err := Parse(line)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if sentence.Talker != "GP" || sentence.SentenceID != "GGA" {
		t.Fatalf("Talker/SentenceID = %q/%q", sentence.Talker, sentence.SentenceID)
	}
	fields, err := ParseGGA(sentence)
	if err != nil {
		t.Fatalf("ParseGGA: %v", err)
	}
	if !fields.HasFix || fields.NumSats != 8 || fields.FixQuality != 1 {
		t.Errorf("unexpected fields: %+v", fields)
	}
	if diff := fields.Latitude - 37.8046517; diff > 1e-3 || diff < -1e-3 {
		t.Errorf("Latitude = %v, want ~37.8046517", fields.Latitude)
	}
	if diff := fields.Longitude - (-122.4054417); diff > 1e-3 || diff < -1e-3 {
		t.Errorf("Longitude = %v, want ~-122.4054417", fields.Longitude)
	}
}

func TestFormatGGANoFix(t *testing.T) {
	ts := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	got := FormatGGA("GP", ts, GGAFix{HasFix: false})
	sentence, err := Parse(got)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	fields, err := ParseGGA(sentence)
	if err != nil {
		t.Fatalf("ParseGGA: %v", err)
	}
	if fields.HasFix {
		t.Error("expected HasFix = false")
	}
}

func TestParseRejectsBadChecksum(t *testing.T) {
	_, err := Parse("$GPGGA,044357.944,3748.2791,N,12224.3265,W,1,08,1.2,0.0,M,19.6,M,,*00\r\n")
	if err == nil {
		t.Fatal("expected checksum error")
	}
}

func TestParseRejectsMissingPrefix(t *testing.T) {
	_, err := Parse("GPGGA,1,2,3*00\r\n")
	if err == nil {
		t.Fatal("expected prefix error")
	}
}

func TestFormatRMCRoundTrip(t *testing.T) {
	ts := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	line := FormatRMC("GP", ts, RMCFix{
		HasFix: true, Latitude: 42.35, Longitude: -70.9, SOGKnots: 12.3, COGDegrees: 90.0, Mode: "A",
	})
	sentence, err := Parse(line)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	fields, err := ParseRMC(sentence)
	if err != nil {
		t.Fatalf("ParseRMC: %v", err)
	}
	if !fields.HasFix || fields.SOGKnots != 12.3 || fields.COGDegrees != 90.0 {
		t.Errorf("unexpected fields: %+v", fields)
	}
}

func TestFormatAndParseAIVDMRoundTrip(t *testing.T) {
	p := ais.PositionReport{MMSI: 367001234, SOGKnots: 12.3, Longitude: -122.4, Latitude: 37.8, COGDegrees: 90.0, HeadingDeg: 90, TimestampSec: 30}
	bits, err := ais.EncodeClassAPosition(p, 1)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	f := ais.NewFragmenter(60)
	frags := f.Split(bits, "A")
	lines := FormatAIVDMSentences(frags, "A")
	if len(lines) != 1 {
		t.Fatalf("expected 1 sentence, got %d", len(lines))
	}
	sentence, err := Parse(lines[0])
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if sentence.SentenceID != "VDM" {
		t.Fatalf("SentenceID = %q, want VDM", sentence.SentenceID)
	}
	got, err := ParseAIVDM(sentence)
	if err != nil {
		t.Fatalf("ParseAIVDM: %v", err)
	}
	if got.Count != 1 || got.Index != 1 || got.GroupID != -1 || got.Channel != "A" {
		t.Errorf("unexpected fields: %+v", got)
	}
	backBits, err := ais.Reassemble([]ais.Fragment{{Count: got.Count, Index: got.Index, GroupID: got.GroupID, Payload: got.Payload, FillBits: got.FillBits}})
	if err != nil {
		t.Fatalf("Reassemble: %v", err)
	}
	decoded, _, err := ais.DecodeClassAPosition(backBits)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded.MMSI != p.MMSI {
		t.Errorf("MMSI = %d, want %d", decoded.MMSI, p.MMSI)
	}
}

func TestMaxAIVDMPayloadCharsUnder82(t *testing.T) {
	max := MaxAIVDMPayloadChars()
	if max <= 0 || max >= MaxSentenceLength {
		t.Fatalf("MaxAIVDMPayloadChars = %d, want a positive value below %d", max, MaxSentenceLength)
	}
}
