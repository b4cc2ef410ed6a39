// Command nmeasim runs a population of simulated AIS/GPS targets
// against a scenario YAML file, emitting NMEA 0183 and AIVDM sentences
// to any combination of file, TCP, UDP, and serial outputs.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/nmeasim/nmeasim/internal/config"
	"github.com/nmeasim/nmeasim/internal/engine"
	"github.com/nmeasim/nmeasim/internal/logging"
	"github.com/nmeasim/nmeasim/internal/sink"
	"github.com/nmeasim/nmeasim/internal/status"

	flag "github.com/spf13/pflag"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath  string
		durationSec float64
		adhocOut    string
		statusAddr  string
		logLevel    string
	)

	flag.StringVar(&configPath, "config", "", "path to the scenario YAML file (required)")
	flag.Float64Var(&durationSec, "duration", 0, "seconds to run before stopping automatically (default: simulation.duration_seconds, or until signaled)")
	flag.StringVar(&adhocOut, "output", "", "an extra ad hoc output, e.g. tcp:0.0.0.0:10110, udp:127.0.0.1:10111, file:/tmp/nmea.log")
	flag.StringVar(&statusAddr, "status-addr", "", "address to serve the debug status/tail server on, e.g. 127.0.0.1:8080 (default: disabled)")
	flag.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	log := logging.New(os.Stderr, logging.ParseLevel(logLevel))

	if configPath == "" {
		fmt.Fprintln(os.Stderr, "nmeasim: --config is required")
		flag.Usage()
		return 1
	}

	doc, err := config.Load(configPath)
	if err != nil {
		log.Error("failed to load scenario", "path", configPath, "error", err.Error())
		return 1
	}

	vessels, err := buildVessels(doc.Vessels)
	if err != nil {
		log.Error("failed to build vessels", "error", err.Error())
		return 1
	}
	baseStations := buildBaseStations(doc.BaseStations)
	aidsToNav := buildAidsToNav(doc.AidsToNav)

	sinks, err := buildSinks(doc.Outputs, log)
	if err != nil {
		log.Error("failed to bring up outputs", "error", err.Error())
		return 2
	}
	if adhocOut != "" {
		s, err := parseAdhocSink(adhocOut)
		if err != nil {
			log.Error("failed to bring up ad hoc output", "spec", adhocOut, "error", err.Error())
			return 2
		}
		sinks = append(sinks, s)
	}

	startTime, hasStart, err := doc.Simulation.ParsedStartTime()
	if err != nil {
		log.Error("bad start_time", "error", err.Error())
		return 1
	}
	if !hasStart {
		startTime = time.Now().UTC()
	}

	duration := time.Duration(durationSec * float64(time.Second))
	if duration <= 0 {
		duration = time.Duration(doc.Simulation.DurationSeconds * float64(time.Second))
	}

	eng := engine.New(engine.Config{
		TickHz:          doc.Simulation.TickHz,
		TimeFactor:      doc.Simulation.TimeFactor,
		DurationSeconds: duration.Seconds(),
		StartTime:       startTime,
		Sentences:       buildSentences(doc.Sentences),
	}, vessels, baseStations, aidsToNav, sinks, log)

	var statusSrv *status.Server
	if statusAddr != "" {
		statusSrv = status.New(eng, len(vessels), log)
		if err := eng.AddSink(statusSrv); err != nil {
			log.Error("failed to register status server", "error", err.Error())
			return 2
		}
		go func() {
			if err := statusSrv.Serve(statusAddr); err != nil {
				log.Error("status server exited", "error", err.Error())
			}
		}()
	}

	log.Info("starting simulation",
		"config", configPath,
		"vessels", len(vessels),
		"base_stations", len(baseStations),
		"aids_to_navigation", len(aidsToNav),
		"tick_hz", doc.Simulation.TickHz,
		"time_factor", doc.Simulation.TimeFactor,
	)

	if err := eng.Start(); err != nil {
		log.Error("failed to start engine", "error", err.Error())
		return 2
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	if duration > 0 {
		select {
		case <-time.After(duration):
		case <-sigChan:
		}
	} else {
		<-sigChan
	}

	if err := eng.Stop(); err != nil {
		log.Warn("error stopping engine", "error", err.Error())
	}
	if statusSrv != nil {
		if err := statusSrv.Shutdown(); err != nil {
			log.Warn("error stopping status server", "error", err.Error())
		}
	}

	stats := eng.Stats()
	log.Info("simulation stopped", "emitted", stats.Emitted, "encode_errors", stats.EncodeErrors)
	return 0
}

// parseAdhocSink builds a single sink.Sink from a "type:addr" (or
// "serial:port:baud") command-line spec, for a quick extra output
// without editing the scenario file.
func parseAdhocSink(spec string) (sink.Sink, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("expected type:target, got %q", spec)
	}
	kind, target := parts[0], parts[1]
	switch kind {
	case "tcp":
		return sink.NewTCPSink("adhoc-tcp", sink.TCPConfig{Addr: target, MaxClients: 8})
	case "udp":
		return sink.NewUDPSink("adhoc-udp", sink.UDPConfig{Addr: target})
	case "file":
		return sink.NewFileSink("adhoc-file", sink.FileConfig{Path: target}), nil
	case "serial":
		portParts := strings.SplitN(target, ":", 2)
		baud := 4800
		if len(portParts) == 2 {
			b, err := strconv.Atoi(portParts[1])
			if err != nil {
				return nil, fmt.Errorf("bad baud rate %q: %w", portParts[1], err)
			}
			baud = b
		}
		return sink.NewSerialSink("adhoc-serial", sink.SerialConfig{Port: portParts[0], BaudRate: baud})
	default:
		return nil, fmt.Errorf("unknown output kind %q", kind)
	}
}
