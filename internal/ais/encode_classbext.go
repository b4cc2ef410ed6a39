package ais

import "github.com/nmeasim/nmeasim/internal/bitstream"

// EncodeClassBExtended builds the 312-bit payload for message type 19
// (Class B Extended Position Report). The first block mirrors type 18
// through the timestamp field; the remainder carries the static data
// a Class B unit only reports occasionally.
func EncodeClassBExtended(e ClassBExtended) ([]bool, error) {
	if err := ValidateMMSI(e.Position.MMSI); err != nil {
		return nil, err
	}
	w := bitstream.NewWriter()
	if err := writeHeader(w, 19, e.Position.MMSI); err != nil {
		return nil, err
	}
	if err := w.AppendUint(0, 8); err != nil { // reserved
		return nil, err
	}
	if err := w.AppendUint(encodeSOG(e.Position.SOGKnots), 10); err != nil {
		return nil, err
	}
	w.AppendBool(e.Position.PositionAcc)
	if err := w.AppendInt(encodeLongitude(e.Position.Longitude), 28); err != nil {
		return nil, err
	}
	if err := w.AppendInt(encodeLatitude(e.Position.Latitude), 27); err != nil {
		return nil, err
	}
	if err := w.AppendUint(encodeCOG(e.Position.COGDegrees), 12); err != nil {
		return nil, err
	}
	if err := w.AppendUint(encodeHeading(e.Position.HeadingDeg), 9); err != nil {
		return nil, err
	}
	if err := w.AppendUint(uint64(clampTimestamp(e.Position.TimestampSec)), 6); err != nil {
		return nil, err
	}
	if err := w.AppendUint(uint64(clamp(e.Regional, 0, 15)), 4); err != nil {
		return nil, err
	}
	if err := w.AppendString(e.Name, 20); err != nil {
		return nil, err
	}
	if err := w.AppendUint(uint64(clamp(e.ShipType, 0, 255)), 8); err != nil {
		return nil, err
	}
	if err := writeDimensions(w, e.Dimensions); err != nil {
		return nil, err
	}
	if err := w.AppendUint(uint64(e.EPFD), 4); err != nil {
		return nil, err
	}
	if err := w.AppendUint(boolToUint(e.RAIM), 1); err != nil {
		return nil, err
	}
	if err := w.AppendUint(boolToUint(e.DTE), 1); err != nil {
		return nil, err
	}
	if err := w.AppendUint(boolToUint(e.Assigned), 1); err != nil {
		return nil, err
	}
	if err := w.AppendUint(0, 4); err != nil { // spare
		return nil, err
	}
	return w.Bits(), nil
}

// DecodeClassBExtended is the inverse of EncodeClassBExtended.
func DecodeClassBExtended(bits []bool) (ClassBExtended, error) {
	r := bitstream.NewReader(bits)
	_, mmsi, err := readHeader(r)
	if err != nil {
		return ClassBExtended{}, err
	}
	var e ClassBExtended
	e.Position.MMSI = mmsi

	if _, err := r.ReadUint(8); err != nil { // reserved
		return e, err
	}
	sog, err := r.ReadUint(10)
	if err != nil {
		return e, err
	}
	e.Position.SOGKnots = decodeSOG(sog)

	if e.Position.PositionAcc, err = r.ReadBool(); err != nil {
		return e, err
	}
	lon, err := r.ReadInt(28)
	if err != nil {
		return e, err
	}
	e.Position.Longitude = decodeLongitude(lon)

	lat, err := r.ReadInt(27)
	if err != nil {
		return e, err
	}
	e.Position.Latitude = decodeLatitude(lat)

	cog, err := r.ReadUint(12)
	if err != nil {
		return e, err
	}
	e.Position.COGDegrees = decodeCOG(cog)

	heading, err := r.ReadUint(9)
	if err != nil {
		return e, err
	}
	e.Position.HeadingDeg = decodeHeading(heading)

	ts, err := r.ReadUint(6)
	if err != nil {
		return e, err
	}
	e.Position.TimestampSec = int(ts)

	regional, err := r.ReadUint(4)
	if err != nil {
		return e, err
	}
	e.Regional = int(regional)

	if e.Name, err = r.ReadString(20); err != nil {
		return e, err
	}

	shipType, err := r.ReadUint(8)
	if err != nil {
		return e, err
	}
	e.ShipType = int(shipType)

	if e.Dimensions, err = readDimensions(r); err != nil {
		return e, err
	}

	epfd, err := r.ReadUint(4)
	if err != nil {
		return e, err
	}
	e.EPFD = EPFDType(epfd)

	raim, err := r.ReadUint(1)
	if err != nil {
		return e, err
	}
	e.RAIM = raim != 0

	dte, err := r.ReadUint(1)
	if err != nil {
		return e, err
	}
	e.DTE = dte != 0

	assigned, err := r.ReadUint(1)
	if err != nil {
		return e, err
	}
	e.Assigned = assigned != 0

	if _, err := r.ReadUint(4); err != nil { // spare
		return e, err
	}

	return e, nil
}
