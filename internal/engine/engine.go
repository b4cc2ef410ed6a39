// Package engine implements the simulation tick loop, lifecycle state
// machine, and output bus described in spec.md §4.7 and §5: the
// engine is the sole writer of vessel state, the simulation clock, and
// scheduler state, and hands immutable sentence strings to the bus for
// fan-out to every enabled sink.
package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nmeasim/nmeasim/internal/ais"
	"github.com/nmeasim/nmeasim/internal/logging"
	"github.com/nmeasim/nmeasim/internal/nmea"
	"github.com/nmeasim/nmeasim/internal/scheduler"
	"github.com/nmeasim/nmeasim/internal/simerr"
	"github.com/nmeasim/nmeasim/internal/sink"
	"github.com/nmeasim/nmeasim/internal/vessel"
)

// State is a position in the Created -> Running -> Stopping -> Stopped
// lifecycle, per spec.md §4.7.
type State int

const (
	StateCreated State = iota
	StateRunning
	StateStopping
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// SentenceSpec is one resolved entry of the config's `sentences[]`
// section: a GPS sentence type all vessels emit at a fixed rate.
type SentenceSpec struct {
	Type     string // "GGA" or "RMC"
	TalkerID string
	RateHz   float64
}

// FixParams are the fields spec.md's GGA/RMC formatters need beyond a
// vessel's own kinematic state, held constant for the run.
type FixParams struct {
	FixQuality int
	NumSats    int
	HDOP       float64
	GeoidSepM  float64
}

// Config configures one Engine run.
type Config struct {
	TickHz          float64
	TimeFactor      float64
	DurationSeconds float64
	StartTime       time.Time
	DrainDeadline   time.Duration
	FragmentLimit   int // 0 -> nmea.MaxAIVDMPayloadChars()
	Sentences       []SentenceSpec
	Fix             FixParams
}

func (c Config) withDefaults() Config {
	if c.TickHz <= 0 {
		c.TickHz = 10
	}
	if c.TimeFactor <= 0 {
		c.TimeFactor = 1
	}
	if c.StartTime.IsZero() {
		c.StartTime = time.Now().UTC()
	}
	if c.DrainDeadline <= 0 {
		c.DrainDeadline = 2 * time.Second
	}
	if c.FragmentLimit <= 0 {
		c.FragmentLimit = nmea.MaxAIVDMPayloadChars()
	}
	if c.Fix.NumSats == 0 {
		c.Fix.FixQuality = 1
		c.Fix.NumSats = 8
		c.Fix.HDOP = 1.0
	}
	return c
}

// Stats reports cumulative engine counters, read via atomic snapshot
// per spec.md §5's "shared resources ... read via atomic snapshots."
type Stats struct {
	Emitted      uint64
	EncodeErrors uint64
}

// Engine is the sole owner and mutator of the simulated population and
// the simulation clock. All other components observe state only
// through the values it hands them at emission time.
type Engine struct {
	cfg          Config
	vessels      []*vessel.Vessel
	baseStations []vessel.BaseStation
	aidsToNav    []vessel.AidToNavigation
	sched        *scheduler.Scheduler
	frag         *ais.Fragmenter
	sinks        []sink.Sink
	log          *logging.Logger

	vesselByID      map[uint32]*vessel.Vessel
	baseStationByID map[uint32]vessel.BaseStation
	aidByID         map[uint32]vessel.AidToNavigation
	sentenceRates   []sentenceRate

	prevCourse map[uint32]float64
	channel    atomic.Uint64

	emitted      atomic.Uint64
	encodeErrors atomic.Uint64

	mu       sync.Mutex
	state    State
	simClock time.Time
	cancel   context.CancelFunc
	stopped  chan struct{}
}

// New builds an Engine for the given population and sinks. The engine
// starts in StateCreated; call Start to begin ticking.
func New(cfg Config, vessels []*vessel.Vessel, baseStations []vessel.BaseStation, aidsToNav []vessel.AidToNavigation, sinks []sink.Sink, log *logging.Logger) *Engine {
	if log == nil {
		log = logging.Default()
	}
	resolved := cfg.withDefaults()

	vesselByID := make(map[uint32]*vessel.Vessel, len(vessels))
	for _, v := range vessels {
		vesselByID[v.MMSI] = v
	}
	baseStationByID := make(map[uint32]vessel.BaseStation, len(baseStations))
	for _, b := range baseStations {
		baseStationByID[b.MMSI] = b
	}
	aidByID := make(map[uint32]vessel.AidToNavigation, len(aidsToNav))
	for _, a := range aidsToNav {
		aidByID[a.MMSI] = a
	}

	var rates []sentenceRate
	for _, spec := range resolved.Sentences {
		if spec.RateHz <= 0 {
			continue
		}
		var class scheduler.MessageClass
		switch spec.Type {
		case "GGA":
			class = scheduler.ClassGPSGGA
		case "RMC":
			class = scheduler.ClassGPSRMC
		default:
			continue
		}
		rates = append(rates, sentenceRate{
			class:    class,
			talkerID: spec.TalkerID,
			interval: time.Duration(float64(time.Second) / spec.RateHz),
		})
	}

	return &Engine{
		cfg:             resolved,
		vessels:         vessels,
		baseStations:    baseStations,
		aidsToNav:       aidsToNav,
		sched:           scheduler.New(),
		frag:            ais.NewFragmenter(resolved.FragmentLimit),
		sinks:           sinks,
		log:             log,
		vesselByID:      vesselByID,
		baseStationByID: baseStationByID,
		aidByID:         aidByID,
		sentenceRates:   rates,
		prevCourse:      make(map[uint32]float64, len(vessels)),
		state:           StateCreated,
	}
}

// AddSink registers an additional sink before the engine starts, e.g.
// a status.Server wired in after New because it needs the *Engine
// itself to serve status queries against. Returns an error if the
// engine is no longer in StateCreated.
func (e *Engine) AddSink(s sink.Sink) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StateCreated {
		return simerr.Wrap(simerr.KindConfig, "engine add sink", simerr.ErrAlreadyRunning)
	}
	e.sinks = append(e.sinks, s)
	return nil
}

// State returns the engine's current lifecycle state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Stats returns a point-in-time snapshot of the engine's counters.
func (e *Engine) Stats() Stats {
	return Stats{Emitted: e.emitted.Load(), EncodeErrors: e.encodeErrors.Load()}
}

// Start transitions Created -> Running and spawns the tick loop.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StateCreated {
		return simerr.Wrap(simerr.KindConfig, "engine start", simerr.ErrAlreadyRunning)
	}

	e.simClock = e.cfg.StartTime
	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.stopped = make(chan struct{})
	e.state = StateRunning

	go e.run(ctx)
	return nil
}

// Stop transitions Running -> Stopping -> Stopped, draining the output
// bus's sinks within the configured deadline before closing them.
// Idempotent: calling Stop when not Running is a no-op.
func (e *Engine) Stop() error {
	e.mu.Lock()
	if e.state != StateRunning {
		e.mu.Unlock()
		return nil
	}
	e.state = StateStopping
	cancel := e.cancel
	stopped := e.stopped
	e.mu.Unlock()

	cancel()
	select {
	case <-stopped:
	case <-time.After(e.cfg.DrainDeadline):
	}

	for _, s := range e.sinks {
		if err := s.Close(); err != nil {
			e.log.Warn("sink close failed", "sink", s.Name(), "error", err.Error())
		}
	}

	e.mu.Lock()
	e.state = StateStopped
	e.mu.Unlock()
	return nil
}

func (e *Engine) run(ctx context.Context) {
	defer close(e.stopped)

	dt := 1.0 / e.cfg.TickHz
	ticker := time.NewTicker(time.Duration(dt * float64(time.Second)))
	defer ticker.Stop()

	var durationTimer *time.Timer
	var durationChan <-chan time.Time
	if e.cfg.DurationSeconds > 0 {
		durationTimer = time.NewTimer(time.Duration(e.cfg.DurationSeconds * float64(time.Second)))
		durationChan = durationTimer.C
		defer durationTimer.Stop()
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-durationChan:
			go e.Stop()
			return
		case <-ticker.C:
			e.tick(dt)
		}
	}
}

// tick performs one full engine step, per spec.md §4.7: advance the
// clock, update kinematics, emit due GPS sentences, ask the scheduler
// for due AIS messages, encode/fragment/wrap them, and publish
// everything produced to the bus.
func (e *Engine) tick(dtSeconds float64) {
	e.simClock = e.simClock.Add(time.Duration(dtSeconds * e.cfg.TimeFactor * float64(time.Second)))

	entities := make([]scheduler.Entity, 0, len(e.vessels)+len(e.baseStations)+len(e.aidsToNav))
	for _, v := range e.vessels {
		prev := e.prevCourse[v.MMSI]
		v.Tick(dtSeconds * e.cfg.TimeFactor)
		changing := courseDelta(prev, v.CourseDeg) > courseChangeThresholdDeg
		e.prevCourse[v.MMSI] = v.CourseDeg
		entities = append(entities, vesselEntity{v: v, changingCourse: changing, sentences: e.sentenceRates})
	}
	for _, b := range e.baseStations {
		entities = append(entities, baseStationEntity{b: b})
	}
	for _, a := range e.aidsToNav {
		entities = append(entities, aidToNavEntity{a: a})
	}

	for _, due := range e.sched.Due(e.simClock, entities) {
		e.emitDue(due)
	}
}

// emitDue encodes and publishes the message identified by one due
// entry from the scheduler.
func (e *Engine) emitDue(due scheduler.DueEntry) {
	switch due.Class {
	case scheduler.ClassPositionReport, scheduler.ClassStaticVoyage, scheduler.ClassBExtended:
		v, ok := e.vesselByID[due.ID]
		if !ok {
			return
		}
		switch due.Class {
		case scheduler.ClassPositionReport:
			e.emitPositionReport(v)
		case scheduler.ClassStaticVoyage:
			e.emitStaticVoyage(v)
		case scheduler.ClassBExtended:
			e.emitClassBExtended(v)
		}
	case scheduler.ClassGPSGGA:
		if v, ok := e.vesselByID[due.ID]; ok {
			e.emitGGA(v)
		}
	case scheduler.ClassGPSRMC:
		if v, ok := e.vesselByID[due.ID]; ok {
			e.emitRMC(v)
		}
	case scheduler.ClassBaseStation:
		if b, ok := e.baseStationByID[due.ID]; ok {
			e.emitBaseStation(b)
		}
	case scheduler.ClassAidToNav:
		if a, ok := e.aidByID[due.ID]; ok {
			e.emitAidToNav(a)
		}
	}
}

func courseDelta(prev, cur float64) float64 {
	d := cur - prev
	if d < 0 {
		d = -d
	}
	if d > 180 {
		d = 360 - d
	}
	return d
}

func (e *Engine) nextChannel() string {
	if e.channel.Add(1)%2 == 0 {
		return "B"
	}
	return "A"
}

func (e *Engine) publish(sentence string) {
	e.emitted.Add(1)
	for _, s := range e.sinks {
		s.Send(sentence)
	}
}

func (e *Engine) publishAIS(bits []bool, channel string) {
	frags := e.frag.Split(bits, channel)
	for _, sentence := range nmea.FormatAIVDMSentences(frags, channel) {
		e.publish(sentence)
	}
}
