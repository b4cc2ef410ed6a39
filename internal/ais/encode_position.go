package ais

import "github.com/nmeasim/nmeasim/internal/bitstream"

// EncodeClassAPosition builds the 168-bit payload for message types
// 1, 2, or 3 (Position Report Class A). msgID selects which of the
// three message IDs is written; any value outside 1..3 is written as 1.
func EncodeClassAPosition(p PositionReport, msgID int) ([]bool, error) {
	if msgID < 1 || msgID > 3 {
		msgID = 1
	}
	if err := ValidateMMSI(p.MMSI); err != nil {
		return nil, err
	}

	w := bitstream.NewWriter()
	if err := writeHeader(w, msgID, p.MMSI); err != nil {
		return nil, err
	}
	if err := w.AppendUint(uint64(p.NavStatus), 4); err != nil {
		return nil, err
	}
	rot := p.RateOfTurn
	if rot < -128 {
		rot = -128
	}
	if rot > 127 {
		rot = 127
	}
	if err := w.AppendInt(int64(rot), 8); err != nil {
		return nil, err
	}
	if err := w.AppendUint(encodeSOG(p.SOGKnots), 10); err != nil {
		return nil, err
	}
	w.AppendBool(p.PositionAcc)
	if err := w.AppendInt(encodeLongitude(p.Longitude), 28); err != nil {
		return nil, err
	}
	if err := w.AppendInt(encodeLatitude(p.Latitude), 27); err != nil {
		return nil, err
	}
	if err := w.AppendUint(encodeCOG(p.COGDegrees), 12); err != nil {
		return nil, err
	}
	if err := w.AppendUint(encodeHeading(p.HeadingDeg), 9); err != nil {
		return nil, err
	}
	if err := w.AppendUint(uint64(clampTimestamp(p.TimestampSec)), 6); err != nil {
		return nil, err
	}
	if err := w.AppendUint(uint64(clamp(p.Maneuver, 0, 3)), 2); err != nil {
		return nil, err
	}
	if err := w.AppendUint(0, 3); err != nil { // spare
		return nil, err
	}
	w.AppendBool(p.RAIM)
	if err := w.AppendUint(uint64(p.Radio), 19); err != nil {
		return nil, err
	}
	return w.Bits(), nil
}

// DecodeClassAPosition is the inverse of EncodeClassAPosition.
func DecodeClassAPosition(bits []bool) (PositionReport, int, error) {
	r := bitstream.NewReader(bits)
	msgID, mmsi, err := readHeader(r)
	if err != nil {
		return PositionReport{}, 0, err
	}
	var p PositionReport
	p.MMSI = mmsi

	navStatus, err := r.ReadUint(4)
	if err != nil {
		return p, msgID, err
	}
	p.NavStatus = NavStatus(navStatus)

	rot, err := r.ReadInt(8)
	if err != nil {
		return p, msgID, err
	}
	p.RateOfTurn = int(rot)

	sog, err := r.ReadUint(10)
	if err != nil {
		return p, msgID, err
	}
	p.SOGKnots = decodeSOG(sog)

	acc, err := r.ReadBool()
	if err != nil {
		return p, msgID, err
	}
	p.PositionAcc = acc

	lon, err := r.ReadInt(28)
	if err != nil {
		return p, msgID, err
	}
	p.Longitude = decodeLongitude(lon)

	lat, err := r.ReadInt(27)
	if err != nil {
		return p, msgID, err
	}
	p.Latitude = decodeLatitude(lat)

	cog, err := r.ReadUint(12)
	if err != nil {
		return p, msgID, err
	}
	p.COGDegrees = decodeCOG(cog)

	heading, err := r.ReadUint(9)
	if err != nil {
		return p, msgID, err
	}
	p.HeadingDeg = decodeHeading(heading)

	ts, err := r.ReadUint(6)
	if err != nil {
		return p, msgID, err
	}
	p.TimestampSec = int(ts)

	maneuver, err := r.ReadUint(2)
	if err != nil {
		return p, msgID, err
	}
	p.Maneuver = int(maneuver)

	if _, err := r.ReadUint(3); err != nil { // spare
		return p, msgID, err
	}

	raim, err := r.ReadBool()
	if err != nil {
		return p, msgID, err
	}
	p.RAIM = raim

	radio, err := r.ReadUint(19)
	if err != nil {
		return p, msgID, err
	}
	p.Radio = uint32(radio)

	return p, msgID, nil
}

// EncodeClassBPosition builds the 168-bit payload for message type 18
// (Class B Standard Position Report). Includes the 2-bit regional
// reserved field ITU-R M.1371 places between timestamp and cs_unit --
// spec.md's field list omits it but its own stated 168-bit total only
// balances with it present; see DESIGN.md.
func EncodeClassBPosition(p PositionReport) ([]bool, error) {
	if err := ValidateMMSI(p.MMSI); err != nil {
		return nil, err
	}
	w := bitstream.NewWriter()
	if err := writeHeader(w, 18, p.MMSI); err != nil {
		return nil, err
	}
	if err := w.AppendUint(0, 8); err != nil { // reserved
		return nil, err
	}
	if err := w.AppendUint(encodeSOG(p.SOGKnots), 10); err != nil {
		return nil, err
	}
	w.AppendBool(p.PositionAcc)
	if err := w.AppendInt(encodeLongitude(p.Longitude), 28); err != nil {
		return nil, err
	}
	if err := w.AppendInt(encodeLatitude(p.Latitude), 27); err != nil {
		return nil, err
	}
	if err := w.AppendUint(encodeCOG(p.COGDegrees), 12); err != nil {
		return nil, err
	}
	if err := w.AppendUint(encodeHeading(p.HeadingDeg), 9); err != nil {
		return nil, err
	}
	if err := w.AppendUint(uint64(clampTimestamp(p.TimestampSec)), 6); err != nil {
		return nil, err
	}
	if err := w.AppendUint(0, 2); err != nil { // regional reserved
		return nil, err
	}
	w.AppendBool(p.CSUnit)
	w.AppendBool(p.Display)
	w.AppendBool(p.DSC)
	w.AppendBool(p.Band)
	w.AppendBool(p.Msg22)
	w.AppendBool(p.Assigned)
	w.AppendBool(p.RAIM)
	if err := w.AppendUint(uint64(p.Radio), 20); err != nil {
		return nil, err
	}
	return w.Bits(), nil
}

// DecodeClassBPosition is the inverse of EncodeClassBPosition.
func DecodeClassBPosition(bits []bool) (PositionReport, error) {
	r := bitstream.NewReader(bits)
	msgID, mmsi, err := readHeader(r)
	if err != nil {
		return PositionReport{}, err
	}
	_ = msgID
	var p PositionReport
	p.MMSI = mmsi

	if _, err := r.ReadUint(8); err != nil { // reserved
		return p, err
	}
	sog, err := r.ReadUint(10)
	if err != nil {
		return p, err
	}
	p.SOGKnots = decodeSOG(sog)

	acc, err := r.ReadBool()
	if err != nil {
		return p, err
	}
	p.PositionAcc = acc

	lon, err := r.ReadInt(28)
	if err != nil {
		return p, err
	}
	p.Longitude = decodeLongitude(lon)

	lat, err := r.ReadInt(27)
	if err != nil {
		return p, err
	}
	p.Latitude = decodeLatitude(lat)

	cog, err := r.ReadUint(12)
	if err != nil {
		return p, err
	}
	p.COGDegrees = decodeCOG(cog)

	heading, err := r.ReadUint(9)
	if err != nil {
		return p, err
	}
	p.HeadingDeg = decodeHeading(heading)

	ts, err := r.ReadUint(6)
	if err != nil {
		return p, err
	}
	p.TimestampSec = int(ts)

	if _, err := r.ReadUint(2); err != nil { // regional reserved
		return p, err
	}

	if p.CSUnit, err = r.ReadBool(); err != nil {
		return p, err
	}
	if p.Display, err = r.ReadBool(); err != nil {
		return p, err
	}
	if p.DSC, err = r.ReadBool(); err != nil {
		return p, err
	}
	if p.Band, err = r.ReadBool(); err != nil {
		return p, err
	}
	if p.Msg22, err = r.ReadBool(); err != nil {
		return p, err
	}
	if p.Assigned, err = r.ReadBool(); err != nil {
		return p, err
	}
	if p.RAIM, err = r.ReadBool(); err != nil {
		return p, err
	}
	radio, err := r.ReadUint(20)
	if err != nil {
		return p, err
	}
	p.Radio = uint32(radio)

	return p, nil
}

func clampTimestamp(sec int) int {
	if sec >= 0 && sec <= 59 {
		return sec
	}
	if sec >= 60 && sec <= 63 {
		return sec
	}
	return TimestampNotAvailable
}

func writeHeader(w *bitstream.Writer, msgID int, mmsi uint32) error {
	if err := w.AppendUint(uint64(msgID), 6); err != nil {
		return err
	}
	if err := w.AppendUint(0, 2); err != nil { // repeat indicator
		return err
	}
	return w.AppendUint(uint64(mmsi), 30)
}

func readHeader(r *bitstream.Reader) (msgID int, mmsi uint32, err error) {
	id, err := r.ReadUint(6)
	if err != nil {
		return 0, 0, err
	}
	if _, err = r.ReadUint(2); err != nil { // repeat indicator
		return 0, 0, err
	}
	m, err := r.ReadUint(30)
	if err != nil {
		return 0, 0, err
	}
	return int(id), uint32(m), nil
}
