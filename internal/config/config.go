// Package config loads and validates the YAML scenario document
// described in spec.md §6 using an explicit viper instance per load
// (never a package-level singleton, per SPEC_FULL.md's "no global
// mutable state" design note), then decodes the outputs[] discriminated
// union the way the original Python's OutputFactory dispatches on
// output_config.type.
package config

import (
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/nmeasim/nmeasim/internal/simerr"
)

// SimulationConfig is the `simulation` section.
type SimulationConfig struct {
	DurationSeconds float64 `mapstructure:"duration_seconds"`
	TimeFactor      float64 `mapstructure:"time_factor"`
	StartTime       string  `mapstructure:"start_time"`
	TickHz          float64 `mapstructure:"tick_hz"`
}

// PositionConfig is a lat/lon pair as it appears in vessel/base-station/
// aid-to-navigation config blocks.
type PositionConfig struct {
	Lat float64 `mapstructure:"lat"`
	Lon float64 `mapstructure:"lon"`
}

// DimensionsConfig mirrors ais.Dimensions in config form.
type DimensionsConfig struct {
	ToBow       int `mapstructure:"to_bow"`
	ToStern     int `mapstructure:"to_stern"`
	ToPort      int `mapstructure:"to_port"`
	ToStarboard int `mapstructure:"to_starboard"`
}

// MovementConfig is the `movement` block of a vessel, per spec.md §4.5.
type MovementConfig struct {
	Pattern        string             `mapstructure:"pattern"` // linear|circular|random_walk|waypoint
	RadiusM        float64            `mapstructure:"radius_m"`
	MinLat         float64            `mapstructure:"min_lat"`
	MaxLat         float64            `mapstructure:"max_lat"`
	MinLon         float64            `mapstructure:"min_lon"`
	MaxLon         float64            `mapstructure:"max_lon"`
	ToleranceM     float64            `mapstructure:"tolerance_m"`
	Waypoints      []PositionConfig   `mapstructure:"waypoints"`
	SpeedVariation float64            `mapstructure:"speed_variation_kn"`
	CourseVariation float64           `mapstructure:"course_variation_deg"`
}

// VoyageConfig is the optional `voyage_data` block of a vessel.
type VoyageConfig struct {
	Destination string  `mapstructure:"destination"`
	DraughtM    float64 `mapstructure:"draught"`
	ETAMonth    int     `mapstructure:"eta_month"`
	ETADay      int     `mapstructure:"eta_day"`
	ETAHour     int     `mapstructure:"eta_hour"`
	ETAMinute   int     `mapstructure:"eta_minute"`
}

// VesselConfig is one entry of `vessels[]`.
type VesselConfig struct {
	MMSI           uint32            `mapstructure:"mmsi"`
	Template       string            `mapstructure:"template"`
	Name           string            `mapstructure:"name"`
	Callsign       string            `mapstructure:"callsign"`
	Class          string            `mapstructure:"class"` // A|B
	ShipType       int               `mapstructure:"ship_type"`
	Position       PositionConfig    `mapstructure:"position"`
	InitialSpeed   float64           `mapstructure:"initial_speed"`
	InitialHeading float64           `mapstructure:"initial_heading"`
	Dimensions     DimensionsConfig  `mapstructure:"dimensions"`
	Movement       MovementConfig    `mapstructure:"movement"`
	Voyage         *VoyageConfig     `mapstructure:"voyage_data"`
}

// BaseStationConfig is one entry of `base_stations[]`.
type BaseStationConfig struct {
	MMSI     uint32         `mapstructure:"mmsi"`
	Position PositionConfig `mapstructure:"position"`
}

// AidToNavConfig is one entry of `aids_to_navigation[]`.
type AidToNavConfig struct {
	MMSI          uint32           `mapstructure:"mmsi"`
	AidType       int              `mapstructure:"aid_type"`
	Name          string           `mapstructure:"name"`
	Position      PositionConfig   `mapstructure:"position"`
	Dimensions    DimensionsConfig `mapstructure:"dimensions"`
	VirtualAid    bool             `mapstructure:"virtual_aid"`
	NameExtension string           `mapstructure:"name_extension"`
}

// SentenceConfig is one entry of `sentences[]`.
type SentenceConfig struct {
	Type     string  `mapstructure:"type"` // GGA|RMC
	TalkerID string  `mapstructure:"talker_id"`
	RateHz   float64 `mapstructure:"rate_hz"`
	Enabled  bool    `mapstructure:"enabled"`
}

// OutputConfig is the raw form of one `outputs[]` entry before its
// type-specific fields are decoded.
type OutputConfig struct {
	Type    string
	Enabled bool
	raw     map[string]any
}

// FileOutputConfig decodes an OutputConfig of type "file".
type FileOutputConfig struct {
	Path       string `mapstructure:"path"`
	LineEnding string `mapstructure:"line_ending"`
	RotationMB int    `mapstructure:"rotation_size_mb"`
	MaxFiles   int    `mapstructure:"max_files"`
}

// TCPOutputConfig decodes an OutputConfig of type "tcp".
type TCPOutputConfig struct {
	Addr          string `mapstructure:"addr"`
	MaxClients    int    `mapstructure:"max_clients"`
	ClientTimeout int    `mapstructure:"client_timeout_seconds"`
	SendTimeout   int    `mapstructure:"send_timeout_seconds"`
}

// UDPOutputConfig decodes an OutputConfig of type "udp".
type UDPOutputConfig struct {
	Addr      string `mapstructure:"addr"`
	Broadcast bool   `mapstructure:"broadcast"`
}

// SerialOutputConfig decodes an OutputConfig of type "serial".
type SerialOutputConfig struct {
	Port                 string `mapstructure:"port"`
	BaudRate             int    `mapstructure:"baud_rate"`
	ReconnectDelayMS     int    `mapstructure:"reconnect_delay_ms"`
	MaxReconnectAttempts int    `mapstructure:"max_reconnect_attempts"`
	SendIntervalMS       int    `mapstructure:"send_interval_ms"`
}

// Document is the fully typed configuration for one simulation run.
type Document struct {
	Simulation SimulationConfig
	Vessels    []VesselConfig
	BaseStations []BaseStationConfig
	AidsToNav  []AidToNavConfig
	Sentences  []SentenceConfig
	Outputs    []OutputConfig
}

// Load reads and parses the YAML document at path into a Document,
// using an instance-local viper.Viper (never viper's package-level
// singleton) so multiple documents can be loaded independently, e.g.
// in tests.
func Load(path string) (Document, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("simulation.tick_hz", 10.0)
	v.SetDefault("simulation.time_factor", 1.0)

	if err := v.ReadInConfig(); err != nil {
		return Document{}, simerr.Wrap(simerr.KindConfig, "reading config file", err)
	}

	var doc Document
	if err := v.UnmarshalKey("simulation", &doc.Simulation); err != nil {
		return Document{}, simerr.Wrap(simerr.KindConfig, "decoding simulation section", err)
	}
	if err := v.UnmarshalKey("vessels", &doc.Vessels); err != nil {
		return Document{}, simerr.Wrap(simerr.KindConfig, "decoding vessels section", err)
	}
	if err := v.UnmarshalKey("base_stations", &doc.BaseStations); err != nil {
		return Document{}, simerr.Wrap(simerr.KindConfig, "decoding base_stations section", err)
	}
	if err := v.UnmarshalKey("aids_to_navigation", &doc.AidsToNav); err != nil {
		return Document{}, simerr.Wrap(simerr.KindConfig, "decoding aids_to_navigation section", err)
	}
	if err := v.UnmarshalKey("sentences", &doc.Sentences); err != nil {
		return Document{}, simerr.Wrap(simerr.KindConfig, "decoding sentences section", err)
	}

	var rawOutputs []map[string]any
	if err := v.UnmarshalKey("outputs", &rawOutputs); err != nil {
		return Document{}, simerr.Wrap(simerr.KindConfig, "decoding outputs section", err)
	}
	for _, raw := range rawOutputs {
		outType, _ := raw["type"].(string)
		if outType == "" {
			return Document{}, simerr.Field(simerr.KindConfig, "outputs[].type", "output entry missing type")
		}
		enabled := true
		if e, ok := raw["enabled"].(bool); ok {
			enabled = e
		}
		doc.Outputs = append(doc.Outputs, OutputConfig{Type: outType, Enabled: enabled, raw: raw})
	}

	if err := doc.validate(); err != nil {
		return Document{}, err
	}
	return doc, nil
}

func (d Document) validate() error {
	if d.Simulation.TickHz <= 0 {
		return simerr.Field(simerr.KindConfig, "simulation.tick_hz", "must be positive")
	}
	if d.Simulation.TimeFactor <= 0 {
		return simerr.Field(simerr.KindConfig, "simulation.time_factor", "must be positive")
	}
	seen := make(map[uint32]bool)
	for _, v := range d.Vessels {
		if seen[v.MMSI] {
			return simerr.Field(simerr.KindConfig, "vessels[].mmsi", "duplicate MMSI in scenario")
		}
		seen[v.MMSI] = true
	}
	return nil
}

// ParsedStartTime parses SimulationConfig.StartTime as RFC3339 (spec.md §6's
// "ISO-8601 or null"). An empty string means "now", signaled by the ok
// return being false.
func (s SimulationConfig) ParsedStartTime() (t time.Time, ok bool, err error) {
	if s.StartTime == "" {
		return time.Time{}, false, nil
	}
	t, err = time.Parse(time.RFC3339, s.StartTime)
	if err != nil {
		return time.Time{}, false, simerr.Field(simerr.KindConfig, "simulation.start_time", "not RFC3339: "+err.Error())
	}
	return t, true, nil
}

// DecodeFile decodes an OutputConfig of type "file" into its
// type-specific fields, per the discriminated-union dispatch shape in
// original_source/simulator/outputs/factory.py.
func (o OutputConfig) DecodeFile() (FileOutputConfig, error) {
	var cfg FileOutputConfig
	if err := mapstructure.Decode(o.raw, &cfg); err != nil {
		return cfg, simerr.Wrap(simerr.KindConfig, "decoding file output", err)
	}
	return cfg, nil
}

// DecodeTCP decodes an OutputConfig of type "tcp".
func (o OutputConfig) DecodeTCP() (TCPOutputConfig, error) {
	var cfg TCPOutputConfig
	if err := mapstructure.Decode(o.raw, &cfg); err != nil {
		return cfg, simerr.Wrap(simerr.KindConfig, "decoding tcp output", err)
	}
	return cfg, nil
}

// DecodeUDP decodes an OutputConfig of type "udp".
func (o OutputConfig) DecodeUDP() (UDPOutputConfig, error) {
	var cfg UDPOutputConfig
	if err := mapstructure.Decode(o.raw, &cfg); err != nil {
		return cfg, simerr.Wrap(simerr.KindConfig, "decoding udp output", err)
	}
	return cfg, nil
}

// DecodeSerial decodes an OutputConfig of type "serial".
func (o OutputConfig) DecodeSerial() (SerialOutputConfig, error) {
	var cfg SerialOutputConfig
	if err := mapstructure.Decode(o.raw, &cfg); err != nil {
		return cfg, simerr.Wrap(simerr.KindConfig, "decoding serial output", err)
	}
	return cfg, nil
}
