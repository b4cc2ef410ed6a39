package main

import (
	"fmt"
	"time"

	"github.com/nmeasim/nmeasim/internal/ais"
	"github.com/nmeasim/nmeasim/internal/catalog"
	"github.com/nmeasim/nmeasim/internal/config"
	"github.com/nmeasim/nmeasim/internal/engine"
	"github.com/nmeasim/nmeasim/internal/logging"
	"github.com/nmeasim/nmeasim/internal/sink"
	"github.com/nmeasim/nmeasim/internal/vessel"
)

// buildVessels turns each vessels[] entry into a *vessel.Vessel,
// applying its named template (if any) before per-field overrides
// from the config, per spec.md §4.9's default-then-override shape.
func buildVessels(specs []config.VesselConfig) ([]*vessel.Vessel, error) {
	vessels := make([]*vessel.Vessel, 0, len(specs))
	for i, vc := range specs {
		var tmpl catalog.Template
		if vc.Template != "" {
			t, err := catalog.Lookup(vc.Template)
			if err != nil {
				return nil, err
			}
			tmpl = t
		}

		v := vessel.NewVessel(vc.MMSI, int64(vc.MMSI)+int64(i))
		v.Class = tmpl.Class
		v.ShipType = tmpl.ShipType
		v.Dimensions = tmpl.Dimensions

		v.Name = vc.Name
		v.Callsign = vc.Callsign
		if vc.Class != "" {
			v.Class = parseClass(vc.Class)
		}
		if vc.ShipType != 0 {
			v.ShipType = vc.ShipType
		}
		if vc.Dimensions != (config.DimensionsConfig{}) {
			v.Dimensions = ais.Dimensions{
				ToBow:       vc.Dimensions.ToBow,
				ToStern:     vc.Dimensions.ToStern,
				ToPort:      vc.Dimensions.ToPort,
				ToStarboard: vc.Dimensions.ToStarboard,
			}
		}
		v.EPFD = ais.EPFDGPS
		v.NavStatus = ais.NavUnderwayEngine
		v.Latitude = vc.Position.Lat
		v.Longitude = vc.Position.Lon
		v.SpeedKn = vc.InitialSpeed
		v.CourseDeg = vc.InitialHeading
		v.HeadingDeg = int(vc.InitialHeading)
		v.Noise = vessel.Noise{
			SpeedVariationKn:   vc.Movement.SpeedVariation,
			CourseVariationDeg: vc.Movement.CourseVariation,
		}
		if vc.Voyage != nil {
			v.Voyage = ais.Voyage{
				Destination: vc.Voyage.Destination,
				DraughtM:    vc.Voyage.DraughtM,
				ETAMonth:    vc.Voyage.ETAMonth,
				ETADay:      vc.Voyage.ETADay,
				ETAHour:     vc.Voyage.ETAHour,
				ETAMinute:   vc.Voyage.ETAMinute,
			}
		}

		pattern, err := buildPattern(vc.Movement)
		if err != nil {
			return nil, err
		}
		v.Pattern = pattern

		vessels = append(vessels, v)
	}
	return vessels, nil
}

func parseClass(s string) ais.Class {
	if s == "B" {
		return ais.ClassB
	}
	return ais.ClassA
}

func buildPattern(mc config.MovementConfig) (vessel.Pattern, error) {
	switch mc.Pattern {
	case "", "linear":
		return vessel.LinearPattern{}, nil
	case "circular":
		return vessel.CircularPattern{RadiusM: mc.RadiusM}, nil
	case "random_walk":
		return vessel.RandomWalkPattern{
			MinLat: mc.MinLat, MaxLat: mc.MaxLat,
			MinLon: mc.MinLon, MaxLon: mc.MaxLon,
		}, nil
	case "waypoint":
		waypoints := make([]vessel.LatLon, len(mc.Waypoints))
		for i, w := range mc.Waypoints {
			waypoints[i] = vessel.LatLon{Latitude: w.Lat, Longitude: w.Lon}
		}
		return &vessel.WaypointPattern{Waypoints: waypoints, ToleranceM: mc.ToleranceM}, nil
	default:
		return nil, fmt.Errorf("unknown movement pattern: %q", mc.Pattern)
	}
}

func buildBaseStations(specs []config.BaseStationConfig) []vessel.BaseStation {
	stations := make([]vessel.BaseStation, len(specs))
	for i, bc := range specs {
		stations[i] = vessel.BaseStation{
			MMSI:      bc.MMSI,
			Latitude:  bc.Position.Lat,
			Longitude: bc.Position.Lon,
			EPFD:      ais.EPFDGPS,
		}
	}
	return stations
}

func buildAidsToNav(specs []config.AidToNavConfig) []vessel.AidToNavigation {
	aids := make([]vessel.AidToNavigation, len(specs))
	for i, ac := range specs {
		aids[i] = vessel.AidToNavigation{
			MMSI:      ac.MMSI,
			AidType:   ac.AidType,
			Name:      ac.Name,
			Latitude:  ac.Position.Lat,
			Longitude: ac.Position.Lon,
			Dimensions: ais.Dimensions{
				ToBow:       ac.Dimensions.ToBow,
				ToStern:     ac.Dimensions.ToStern,
				ToPort:      ac.Dimensions.ToPort,
				ToStarboard: ac.Dimensions.ToStarboard,
			},
			EPFD:          ais.EPFDGPS,
			VirtualAid:    ac.VirtualAid,
			NameExtension: ac.NameExtension,
		}
	}
	return aids
}

func buildSentences(specs []config.SentenceConfig) []engine.SentenceSpec {
	sentences := make([]engine.SentenceSpec, 0, len(specs))
	for _, sc := range specs {
		if !sc.Enabled {
			continue
		}
		sentences = append(sentences, engine.SentenceSpec{
			Type:     sc.Type,
			TalkerID: sc.TalkerID,
			RateHz:   sc.RateHz,
		})
	}
	return sentences
}

// buildSinks constructs one sink.Sink per enabled outputs[] entry,
// dispatching on its type the way original_source's OutputFactory
// dispatches on output_config.type.
func buildSinks(specs []config.OutputConfig, log *logging.Logger) ([]sink.Sink, error) {
	sinks := make([]sink.Sink, 0, len(specs))
	for i, oc := range specs {
		if !oc.Enabled {
			continue
		}
		name := fmt.Sprintf("%s-%d", oc.Type, i)
		s, err := buildSink(name, oc)
		if err != nil {
			return nil, fmt.Errorf("output %d (%s): %w", i, oc.Type, err)
		}
		sinks = append(sinks, s)
	}
	return sinks, nil
}

func buildSink(name string, oc config.OutputConfig) (sink.Sink, error) {
	switch oc.Type {
	case "file":
		fc, err := oc.DecodeFile()
		if err != nil {
			return nil, err
		}
		return sink.NewFileSink(name, sink.FileConfig{
			Path:       fc.Path,
			LineEnding: fc.LineEnding,
			MaxSizeMB:  fc.RotationMB,
			MaxFiles:   fc.MaxFiles,
		}), nil
	case "tcp":
		tc, err := oc.DecodeTCP()
		if err != nil {
			return nil, err
		}
		return sink.NewTCPSink(name, sink.TCPConfig{
			Addr:          tc.Addr,
			MaxClients:    tc.MaxClients,
			ClientTimeout: time.Duration(tc.ClientTimeout) * time.Second,
			SendTimeout:   time.Duration(tc.SendTimeout) * time.Second,
		})
	case "udp":
		uc, err := oc.DecodeUDP()
		if err != nil {
			return nil, err
		}
		return sink.NewUDPSink(name, sink.UDPConfig{Addr: uc.Addr, Broadcast: uc.Broadcast})
	case "serial":
		sc, err := oc.DecodeSerial()
		if err != nil {
			return nil, err
		}
		return sink.NewSerialSink(name, sink.SerialConfig{
			Port:                 sc.Port,
			BaudRate:             sc.BaudRate,
			ReconnectDelay:       time.Duration(sc.ReconnectDelayMS) * time.Millisecond,
			MaxReconnectAttempts: sc.MaxReconnectAttempts,
			SendInterval:         time.Duration(sc.SendIntervalMS) * time.Millisecond,
		})
	default:
		return nil, fmt.Errorf("unknown output type: %q", oc.Type)
	}
}
