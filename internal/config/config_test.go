package config

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleYAML = `
simulation:
  duration_seconds: 3600
  time_factor: 1.0
  tick_hz: 10

vessels:
  - mmsi: 367001234
    name: TEST VESSEL
    callsign: WTV1234
    class: A
    template: cargo
    position: { lat: 37.8, lon: -122.4 }
    initial_speed: 12.3
    initial_heading: 90

base_stations:
  - mmsi: 3669999
    position: { lat: 37.8, lon: -122.4 }

aids_to_navigation:
  - mmsi: 993669999
    aid_type: 1
    name: SEA BUOY
    position: { lat: 37.81, lon: -122.41 }

sentences:
  - type: GGA
    talker_id: GP
    rate_hz: 1
    enabled: true

outputs:
  - type: file
    path: out.nmea
    rotation_size_mb: 10
    max_files: 2
  - type: tcp
    addr: 0.0.0.0:10110
    max_clients: 4
`

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadParsesAllSections(t *testing.T) {
	doc, err := Load(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if doc.Simulation.DurationSeconds != 3600 {
		t.Errorf("duration_seconds = %v, want 3600", doc.Simulation.DurationSeconds)
	}
	if len(doc.Vessels) != 1 || doc.Vessels[0].MMSI != 367001234 {
		t.Fatalf("vessels = %+v", doc.Vessels)
	}
	if doc.Vessels[0].Template != "cargo" {
		t.Errorf("template = %q, want cargo", doc.Vessels[0].Template)
	}
	if len(doc.BaseStations) != 1 || doc.BaseStations[0].MMSI != 3669999 {
		t.Fatalf("base_stations = %+v", doc.BaseStations)
	}
	if len(doc.AidsToNav) != 1 || doc.AidsToNav[0].Name != "SEA BUOY" {
		t.Fatalf("aids_to_navigation = %+v", doc.AidsToNav)
	}
	if len(doc.Sentences) != 1 || doc.Sentences[0].Type != "GGA" {
		t.Fatalf("sentences = %+v", doc.Sentences)
	}
	if len(doc.Outputs) != 2 {
		t.Fatalf("outputs = %+v", doc.Outputs)
	}
}

func TestLoadDecodesFileOutput(t *testing.T) {
	doc, err := Load(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	fileOut, err := doc.Outputs[0].DecodeFile()
	if err != nil {
		t.Fatalf("DecodeFile: %v", err)
	}
	if fileOut.Path != "out.nmea" || fileOut.RotationMB != 10 || fileOut.MaxFiles != 2 {
		t.Errorf("file output = %+v", fileOut)
	}

	tcpOut, err := doc.Outputs[1].DecodeTCP()
	if err != nil {
		t.Fatalf("DecodeTCP: %v", err)
	}
	if tcpOut.Addr != "0.0.0.0:10110" || tcpOut.MaxClients != 4 {
		t.Errorf("tcp output = %+v", tcpOut)
	}
}

func TestLoadRejectsDuplicateMMSI(t *testing.T) {
	dup := `
vessels:
  - mmsi: 367001234
    name: ONE
    class: A
    position: { lat: 0, lon: 0 }
  - mmsi: 367001234
    name: TWO
    class: A
    position: { lat: 1, lon: 1 }
`
	if _, err := Load(writeConfig(t, dup)); err == nil {
		t.Fatalf("expected an error for a duplicate MMSI")
	}
}

func TestLoadRejectsMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected an error for a missing config file")
	}
}

func TestLoadDefaultsTickHzAndTimeFactor(t *testing.T) {
	minimal := "vessels: []\n"
	doc, err := Load(writeConfig(t, minimal))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.Simulation.TickHz != 10.0 {
		t.Errorf("tick_hz default = %v, want 10", doc.Simulation.TickHz)
	}
	if doc.Simulation.TimeFactor != 1.0 {
		t.Errorf("time_factor default = %v, want 1", doc.Simulation.TimeFactor)
	}
}
