package engine

import (
	"time"

	"github.com/nmeasim/nmeasim/internal/ais"
	"github.com/nmeasim/nmeasim/internal/scheduler"
	"github.com/nmeasim/nmeasim/internal/vessel"
)

// courseChangeThresholdDeg is the per-tick course delta above which a
// Class-A vessel is considered to be "changing course" for the
// purposes of scheduler.ClassAInterval's 6s/3⅓s distinction. spec.md
// §4.6 doesn't define the threshold precisely; 3 degrees per tick is
// small enough to catch a deliberate turn without tripping on
// ordinary course noise.
const courseChangeThresholdDeg = 3.0

// vesselEntity adapts a *vessel.Vessel to scheduler.Entity, keeping
// internal/scheduler free of a vessel import per DESIGN.md.
type vesselEntity struct {
	v              *vessel.Vessel
	changingCourse bool
	sentences      []sentenceRate
}

// sentenceRate is one enabled GPS sentence config resolved for a
// vessel at engine-build time.
type sentenceRate struct {
	class    scheduler.MessageClass
	talkerID string
	interval time.Duration
}

func (e vesselEntity) SchedulerID() uint32 { return e.v.MMSI }

func (e vesselEntity) Classes() []scheduler.MessageClass {
	classes := []scheduler.MessageClass{scheduler.ClassPositionReport, scheduler.ClassStaticVoyage}
	if e.v.Class == ais.ClassB {
		classes = append(classes, scheduler.ClassBExtended)
	}
	for _, sr := range e.sentences {
		classes = append(classes, sr.class)
	}
	return classes
}

func (e vesselEntity) Interval(class scheduler.MessageClass) time.Duration {
	switch class {
	case scheduler.ClassPositionReport:
		if e.v.Class == ais.ClassA {
			return scheduler.ClassAInterval(e.v.NavStatus, e.v.SpeedKn, e.changingCourse)
		}
		return scheduler.ClassBInterval(e.v.SpeedKn)
	case scheduler.ClassStaticVoyage:
		return scheduler.StaticReportInterval
	case scheduler.ClassBExtended:
		return scheduler.ClassBExtInterval
	case scheduler.ClassGPSGGA, scheduler.ClassGPSRMC:
		for _, sr := range e.sentences {
			if sr.class == class {
				return sr.interval
			}
		}
	}
	return time.Minute
}

// baseStationEntity adapts vessel.BaseStation to scheduler.Entity.
type baseStationEntity struct {
	b vessel.BaseStation
}

func (e baseStationEntity) SchedulerID() uint32 { return e.b.MMSI }
func (e baseStationEntity) Classes() []scheduler.MessageClass {
	return []scheduler.MessageClass{scheduler.ClassBaseStation}
}
func (e baseStationEntity) Interval(scheduler.MessageClass) time.Duration {
	return scheduler.BaseStationInterval
}

// aidToNavEntity adapts vessel.AidToNavigation to scheduler.Entity.
type aidToNavEntity struct {
	a vessel.AidToNavigation
}

func (e aidToNavEntity) SchedulerID() uint32 { return e.a.MMSI }
func (e aidToNavEntity) Classes() []scheduler.MessageClass {
	return []scheduler.MessageClass{scheduler.ClassAidToNav}
}
func (e aidToNavEntity) Interval(scheduler.MessageClass) time.Duration {
	return scheduler.AidToNavInterval
}
