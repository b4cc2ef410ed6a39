package engine

import (
	"sync"
	"testing"
	"time"

	"github.com/nmeasim/nmeasim/internal/ais"
	"github.com/nmeasim/nmeasim/internal/scheduler"
	"github.com/nmeasim/nmeasim/internal/sink"
	"github.com/nmeasim/nmeasim/internal/vessel"
)

// captureSink is a Sink that records every sentence it receives, used
// to assert on engine output without touching real I/O.
type captureSink struct {
	mu    sync.Mutex
	lines []string
}

func (c *captureSink) Name() string { return "capture" }
func (c *captureSink) Send(sentence string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, sentence)
}
func (c *captureSink) Stats() sink.Stats { return sink.Stats{} }
func (c *captureSink) Close() error      { return nil }
func (c *captureSink) snapshot() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.lines))
	copy(out, c.lines)
	return out
}

func newTestVessel(mmsi uint32) *vessel.Vessel {
	v := vessel.NewVessel(mmsi, 1)
	v.Class = ais.ClassA
	v.Name = "TEST VESSEL"
	v.Callsign = "WTV1234"
	v.ShipType = 70
	v.Latitude = 37.8
	v.Longitude = -122.4
	v.SpeedKn = 10
	v.CourseDeg = 90
	v.NavStatus = ais.NavUnderwayEngine
	return v
}

func TestEngineLifecycleTransitions(t *testing.T) {
	eng := New(Config{TickHz: 50}, []*vessel.Vessel{newTestVessel(367001234)}, nil, nil, nil, nil)

	if eng.State() != StateCreated {
		t.Fatalf("initial state = %v, want created", eng.State())
	}
	if err := eng.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if eng.State() != StateRunning {
		t.Fatalf("state after Start = %v, want running", eng.State())
	}
	if err := eng.Start(); err == nil {
		t.Fatalf("expected a second Start to fail")
	}
	if err := eng.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if eng.State() != StateStopped {
		t.Fatalf("state after Stop = %v, want stopped", eng.State())
	}
	if err := eng.Stop(); err != nil {
		t.Fatalf("second Stop should be a no-op, got %v", err)
	}
}

func TestEngineEmitsGPSAndAISSentences(t *testing.T) {
	cs := &captureSink{}
	eng := New(Config{
		TickHz: 50,
		Sentences: []SentenceSpec{
			{Type: "GGA", TalkerID: "GP", RateHz: 20},
			{Type: "RMC", TalkerID: "GP", RateHz: 20},
		},
	}, []*vessel.Vessel{newTestVessel(367001234)}, nil, nil, []sink.Sink{cs}, nil)

	if err := eng.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	time.Sleep(200 * time.Millisecond)
	if err := eng.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	lines := cs.snapshot()
	if len(lines) == 0 {
		t.Fatalf("expected at least one sentence to be emitted")
	}

	var sawGGA, sawRMC, sawAIVDM bool
	for _, l := range lines {
		switch {
		case len(l) > 6 && l[0] == '$' && l[3:6] == "GGA":
			sawGGA = true
		case len(l) > 6 && l[0] == '$' && l[3:6] == "RMC":
			sawRMC = true
		case len(l) > 5 && l[:5] == "!AIVD":
			sawAIVDM = true
		}
	}
	if !sawGGA {
		t.Errorf("expected a GGA sentence among %v", lines)
	}
	if !sawRMC {
		t.Errorf("expected a RMC sentence among %v", lines)
	}
	if !sawAIVDM {
		t.Errorf("expected an AIVDM sentence among %v", lines)
	}
}

func TestCourseDeltaWrapsAcrossZero(t *testing.T) {
	if d := courseDelta(359, 1); d != 2 {
		t.Errorf("courseDelta(359, 1) = %v, want 2", d)
	}
	if d := courseDelta(10, 20); d != 10 {
		t.Errorf("courseDelta(10, 20) = %v, want 10", d)
	}
}

func TestVesselEntityClassesIncludesGPSSentences(t *testing.T) {
	v := newTestVessel(1)
	ent := vesselEntity{v: v, sentences: []sentenceRate{
		{class: scheduler.ClassGPSGGA, talkerID: "GP", interval: time.Second},
	}}
	classes := ent.Classes()
	found := false
	for _, c := range classes {
		if c == scheduler.ClassGPSGGA {
			found = true
		}
	}
	if !found {
		t.Errorf("expected ClassGPSGGA among %v", classes)
	}
}
