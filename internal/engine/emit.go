package engine

import (
	"github.com/nmeasim/nmeasim/internal/ais"
	"github.com/nmeasim/nmeasim/internal/nmea"
	"github.com/nmeasim/nmeasim/internal/scheduler"
	"github.com/nmeasim/nmeasim/internal/vessel"
)

func (e *Engine) talkerFor(class scheduler.MessageClass) string {
	for _, sr := range e.sentenceRates {
		if sr.class == class {
			return sr.talkerID
		}
	}
	return "GP"
}

func (e *Engine) emitGGA(v *vessel.Vessel) {
	sentence := nmea.FormatGGA(e.talkerFor(scheduler.ClassGPSGGA), e.simClock, nmea.GGAFix{
		HasFix:     true,
		Latitude:   v.Latitude,
		Longitude:  v.Longitude,
		FixQuality: e.cfg.Fix.FixQuality,
		NumSats:    e.cfg.Fix.NumSats,
		HDOP:       e.cfg.Fix.HDOP,
		AltitudeM:  0,
		GeoidSepM:  e.cfg.Fix.GeoidSepM,
	})
	e.publish(sentence)
}

func (e *Engine) emitRMC(v *vessel.Vessel) {
	sentence := nmea.FormatRMC(e.talkerFor(scheduler.ClassGPSRMC), e.simClock, nmea.RMCFix{
		HasFix:      true,
		Latitude:    v.Latitude,
		Longitude:   v.Longitude,
		SOGKnots:    v.SpeedKn,
		COGDegrees:  v.CourseDeg,
		MagVar:      0,
		MagVarEW:    "E",
		Mode:        "A",
	})
	e.publish(sentence)
}

func (e *Engine) timestampSec() int {
	return e.simClock.Second()
}

func (e *Engine) emitPositionReport(v *vessel.Vessel) {
	report := v.PositionReport(e.timestampSec())

	var bits []bool
	var err error
	channel := e.nextChannel()
	switch v.Class {
	case ais.ClassA:
		bits, err = ais.EncodeClassAPosition(report, 1)
	case ais.ClassB:
		bits, err = ais.EncodeClassBPosition(report)
	}
	if err != nil {
		e.encodeErrors.Add(1)
		e.log.Warn("position report encode failed", "mmsi", v.MMSI, "error", err.Error())
		return
	}
	e.publishAIS(bits, channel)
}

// emitStaticVoyage emits type 5 for Class A vessels and the type
// 24A+24B pair for Class B vessels, per spec.md §4.2.
func (e *Engine) emitStaticVoyage(v *vessel.Vessel) {
	if v.Class == ais.ClassB {
		e.emitStaticData24(v)
		return
	}
	bits, err := ais.EncodeStaticVoyageData(ais.StaticVoyageData{
		MMSI:       v.MMSI,
		AISVersion: 0,
		IMO:        v.IMO,
		Callsign:   v.Callsign,
		Name:       v.Name,
		ShipType:   v.ShipType,
		Dimensions: v.Dimensions,
		EPFD:       v.EPFD,
		Voyage:     v.Voyage,
		DTE:        false,
	})
	if err != nil {
		e.encodeErrors.Add(1)
		e.log.Warn("static voyage encode failed", "mmsi", v.MMSI, "error", err.Error())
		return
	}
	e.publishAIS(bits, e.nextChannel())
}

func (e *Engine) emitStaticData24(v *vessel.Vessel) {
	channel := e.nextChannel()

	partA, err := ais.EncodeStaticDataReportA(ais.StaticDataReportA{MMSI: v.MMSI, Name: v.Name})
	if err != nil {
		e.encodeErrors.Add(1)
		e.log.Warn("static data report A encode failed", "mmsi", v.MMSI, "error", err.Error())
		return
	}
	e.publishAIS(partA, channel)

	partB, err := ais.EncodeStaticDataReportB(ais.StaticDataReportB{
		MMSI:       v.MMSI,
		ShipType:   v.ShipType,
		Callsign:   v.Callsign,
		Dimensions: v.Dimensions,
	})
	if err != nil {
		e.encodeErrors.Add(1)
		e.log.Warn("static data report B encode failed", "mmsi", v.MMSI, "error", err.Error())
		return
	}
	e.publishAIS(partB, e.nextChannel())
}

func (e *Engine) emitClassBExtended(v *vessel.Vessel) {
	bits, err := ais.EncodeClassBExtended(ais.ClassBExtended{
		Position:   v.PositionReport(e.timestampSec()),
		Name:       v.Name,
		ShipType:   v.ShipType,
		Dimensions: v.Dimensions,
		EPFD:       v.EPFD,
	})
	if err != nil {
		e.encodeErrors.Add(1)
		e.log.Warn("class B extended encode failed", "mmsi", v.MMSI, "error", err.Error())
		return
	}
	e.publishAIS(bits, e.nextChannel())
}

func (e *Engine) emitBaseStation(b vessel.BaseStation) {
	now := e.simClock.UTC()
	bits, err := ais.EncodeBaseStationReport(ais.BaseStationReport{
		MMSI:        b.MMSI,
		Year:        now.Year(),
		Month:       int(now.Month()),
		Day:         now.Day(),
		Hour:        now.Hour(),
		Minute:      now.Minute(),
		Second:      now.Second(),
		PositionAcc: true,
		Longitude:   b.Longitude,
		Latitude:    b.Latitude,
		EPFD:        b.EPFD,
	})
	if err != nil {
		e.encodeErrors.Add(1)
		e.log.Warn("base station encode failed", "mmsi", b.MMSI, "error", err.Error())
		return
	}
	e.publishAIS(bits, e.nextChannel())
}

func (e *Engine) emitAidToNav(a vessel.AidToNavigation) {
	bits, err := ais.EncodeAidToNavigation(ais.AidToNavigation{
		MMSI:          a.MMSI,
		AidType:       a.AidType,
		Name:          a.Name,
		PositionAcc:   true,
		Longitude:     a.Longitude,
		Latitude:      a.Latitude,
		Dimensions:    a.Dimensions,
		EPFD:          a.EPFD,
		TimestampSec:  e.timestampSec(),
		VirtualAid:    a.VirtualAid,
		NameExtension: a.NameExtension,
	})
	if err != nil {
		e.encodeErrors.Add(1)
		e.log.Warn("aid to navigation encode failed", "mmsi", a.MMSI, "error", err.Error())
		return
	}
	e.publishAIS(bits, e.nextChannel())
}
