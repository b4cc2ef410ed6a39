package ais

import "testing"

func TestClassAPositionRoundTrip(t *testing.T) {
	cases := []PositionReport{
		{MMSI: 366123456, NavStatus: NavUnderwayEngine, RateOfTurn: 127, SOGKnots: 12.3, PositionAcc: true,
			Longitude: -122.4054417, Latitude: 37.8046517, COGDegrees: 271.4, HeadingDeg: 270, TimestampSec: 57,
			Maneuver: 1, RAIM: true, Radio: 12345},
		{MMSI: 1, NavStatus: NavNotDefined, RateOfTurn: -128, SOGKnots: 0, PositionAcc: false,
			Longitude: 0, Latitude: 0, COGDegrees: 0, HeadingDeg: HeadingNotAvailable, TimestampSec: 60},
	}
	for _, tc := range cases {
		bits, err := EncodeClassAPosition(tc, 1)
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		if len(bits) != 168 {
			t.Fatalf("expected 168 bits, got %d", len(bits))
		}
		got, msgID, err := DecodeClassAPosition(bits)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if msgID != 1 {
			t.Errorf("msgID = %d, want 1", msgID)
		}
		if got.MMSI != tc.MMSI {
			t.Errorf("MMSI = %d, want %d", got.MMSI, tc.MMSI)
		}
		if got.NavStatus != tc.NavStatus {
			t.Errorf("NavStatus = %v, want %v", got.NavStatus, tc.NavStatus)
		}
	}
}

func TestClassAPositionRejectsBadMMSI(t *testing.T) {
	_, err := EncodeClassAPosition(PositionReport{MMSI: 0}, 1)
	if err == nil {
		t.Fatal("expected error for MMSI 0")
	}
	_, err = EncodeClassAPosition(PositionReport{MMSI: MMSIMax + 1}, 1)
	if err == nil {
		t.Fatal("expected error for MMSI exceeding 9 digits")
	}
}

func TestClassBPositionRoundTrip(t *testing.T) {
	p := PositionReport{
		MMSI: 338123456, SOGKnots: 5.0, PositionAcc: true,
		Longitude: -70.9, Latitude: 42.35, COGDegrees: 90.1, HeadingDeg: 90, TimestampSec: 30,
		CSUnit: true, Display: false, DSC: true, Band: true, Msg22: false, Assigned: false, RAIM: false, Radio: 1,
	}
	bits, err := EncodeClassBPosition(p)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(bits) != 168 {
		t.Fatalf("expected 168 bits (per stated total), got %d", len(bits))
	}
	got, err := DecodeClassBPosition(bits)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.MMSI != p.MMSI || got.CSUnit != p.CSUnit || got.DSC != p.DSC {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, p)
	}
}

func TestBaseStationRoundTrip(t *testing.T) {
	b := BaseStationReport{
		MMSI: 3669999, Year: 2026, Month: 8, Day: 6, Hour: 12, Minute: 30, Second: 45,
		PositionAcc: true, Longitude: -71.05, Latitude: 42.36, EPFD: EPFDGPS, RAIM: true, Radio: 5,
	}
	bits, err := EncodeBaseStationReport(b)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(bits) != 168 {
		t.Fatalf("expected 168 bits, got %d", len(bits))
	}
	got, err := DecodeBaseStationReport(bits)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.MMSI != b.MMSI || got.Month != b.Month || got.EPFD != b.EPFD {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, b)
	}
}

func TestStaticVoyageDataRoundTrip(t *testing.T) {
	s := StaticVoyageData{
		MMSI: 366999999, AISVersion: 0, IMO: 9074729, Callsign: "WDH1234", Name: "EXAMPLE VESSEL",
		ShipType: 70, Dimensions: Dimensions{ToBow: 100, ToStern: 20, ToPort: 10, ToStarboard: 10},
		EPFD: EPFDGPS, Voyage: Voyage{Destination: "SAN FRANCISCO", DraughtM: 12.5, ETAMonth: 8, ETADay: 6, ETAHour: 14, ETAMinute: 30},
		DTE: false,
	}
	bits, err := EncodeStaticVoyageData(s)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(bits) != 424 {
		t.Fatalf("expected 424 bits, got %d", len(bits))
	}
	got, err := DecodeStaticVoyageData(bits)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.MMSI != s.MMSI || got.Callsign != s.Callsign || got.Name != s.Name || got.Voyage.Destination != s.Voyage.Destination {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, s)
	}
}

func TestClassBExtendedRoundTrip(t *testing.T) {
	e := ClassBExtended{
		Position: PositionReport{MMSI: 338111222, SOGKnots: 8.5, Longitude: -122.3, Latitude: 37.8, COGDegrees: 180, HeadingDeg: 180, TimestampSec: 12},
		Name:     "SMALL CRAFT", ShipType: 37, Dimensions: Dimensions{ToBow: 8, ToStern: 2, ToPort: 2, ToStarboard: 2},
		EPFD: EPFDGPS, RAIM: true, DTE: true, Assigned: false,
	}
	bits, err := EncodeClassBExtended(e)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(bits) != 312 {
		t.Fatalf("expected 312 bits, got %d", len(bits))
	}
	got, err := DecodeClassBExtended(bits)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Position.MMSI != e.Position.MMSI || got.Name != e.Name || got.RAIM != e.RAIM {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, e)
	}
}

func TestAidToNavigationRoundTrip(t *testing.T) {
	a := AidToNavigation{
		MMSI: 993669999, AidType: 1, Name: "SEA BUOY", PositionAcc: true,
		Longitude: -70.9, Latitude: 42.3, Dimensions: Dimensions{ToBow: 1, ToStern: 1, ToPort: 1, ToStarboard: 1},
		EPFD: EPFDGPS, TimestampSec: 15, VirtualAid: true, NameExtension: "NORTH CHANNEL",
	}
	bits, err := EncodeAidToNavigation(a)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeAidToNavigation(bits)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.MMSI != a.MMSI || got.Name != a.Name || got.NameExtension != a.NameExtension {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, a)
	}
}

func TestAidToNavigationWithoutExtensionRoundTrip(t *testing.T) {
	a := AidToNavigation{MMSI: 993669998, AidType: 6, Name: "LIGHTHOUSE", Longitude: 1, Latitude: 1}
	bits, err := EncodeAidToNavigation(a)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(bits) != 272 {
		t.Fatalf("expected 272-bit base with no extension, got %d", len(bits))
	}
	got, err := DecodeAidToNavigation(bits)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.NameExtension != "" {
		t.Errorf("NameExtension = %q, want empty", got.NameExtension)
	}
}

func TestStaticDataReportRoundTrip(t *testing.T) {
	a := StaticDataReportA{MMSI: 338123456, Name: "TENDER ONE"}
	bitsA, err := EncodeStaticDataReportA(a)
	if err != nil {
		t.Fatalf("encode A: %v", err)
	}
	if len(bitsA) != 160 {
		t.Fatalf("expected 160 bits, got %d", len(bitsA))
	}
	part, err := PeekPartNumber(bitsA)
	if err != nil || part != 0 {
		t.Fatalf("PeekPartNumber = %d, %v; want 0, nil", part, err)
	}
	gotA, err := DecodeStaticDataReportA(bitsA)
	if err != nil {
		t.Fatalf("decode A: %v", err)
	}
	if gotA.Name != a.Name {
		t.Errorf("Name = %q, want %q", gotA.Name, a.Name)
	}

	b := StaticDataReportB{MMSI: 338123456, ShipType: 36, VendorID: "ACME", Callsign: "WDH999",
		Dimensions: Dimensions{ToBow: 5, ToStern: 1, ToPort: 2, ToStarboard: 2}}
	bitsB, err := EncodeStaticDataReportB(b)
	if err != nil {
		t.Fatalf("encode B: %v", err)
	}
	if len(bitsB) != 168 {
		t.Fatalf("expected 168 bits, got %d", len(bitsB))
	}
	part, err = PeekPartNumber(bitsB)
	if err != nil || part != 1 {
		t.Fatalf("PeekPartNumber = %d, %v; want 1, nil", part, err)
	}
	gotB, err := DecodeStaticDataReportB(bitsB, false)
	if err != nil {
		t.Fatalf("decode B: %v", err)
	}
	if gotB.VendorID != b.VendorID || gotB.Callsign != b.Callsign || gotB.Dimensions != b.Dimensions {
		t.Errorf("round trip mismatch: got %+v, want %+v", gotB, b)
	}
}

func TestStaticDataReportBAuxiliaryMothership(t *testing.T) {
	b := StaticDataReportB{MMSI: 988123456, ShipType: 30, MothershipMMSI: 366123456}
	bits, err := EncodeStaticDataReportB(b)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeStaticDataReportB(bits, true)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.MothershipMMSI != b.MothershipMMSI {
		t.Errorf("MothershipMMSI = %d, want %d", got.MothershipMMSI, b.MothershipMMSI)
	}
}

func TestMessageDispatchEncode(t *testing.T) {
	m := Message{Type: MessagePositionA1, Position: PositionReport{MMSI: 366123456}}
	bits, err := Encode(m)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(bits) != 168 {
		t.Fatalf("expected 168 bits, got %d", len(bits))
	}

	_, err = Encode(Message{Type: MessageUnknown})
	if err == nil {
		t.Fatal("expected error for unknown message type")
	}
}
