package ais

import "github.com/nmeasim/nmeasim/internal/bitstream"

// EncodeBaseStationReport builds the 168-bit payload for message type 4.
func EncodeBaseStationReport(b BaseStationReport) ([]bool, error) {
	if err := ValidateMMSI(b.MMSI); err != nil {
		return nil, err
	}
	w := bitstream.NewWriter()
	if err := writeHeader(w, 4, b.MMSI); err != nil {
		return nil, err
	}
	if err := w.AppendUint(uint64(clamp(b.Year, 0, 16383)), 14); err != nil {
		return nil, err
	}
	if err := w.AppendUint(uint64(clamp(b.Month, 0, 12)), 4); err != nil {
		return nil, err
	}
	if err := w.AppendUint(uint64(clamp(b.Day, 0, 31)), 5); err != nil {
		return nil, err
	}
	if err := w.AppendUint(uint64(clamp(b.Hour, 0, 24)), 5); err != nil {
		return nil, err
	}
	if err := w.AppendUint(uint64(clamp(b.Minute, 0, 60)), 6); err != nil {
		return nil, err
	}
	if err := w.AppendUint(uint64(clamp(b.Second, 0, 60)), 6); err != nil {
		return nil, err
	}
	w.AppendBool(b.PositionAcc)
	if err := w.AppendInt(encodeLongitude(b.Longitude), 28); err != nil {
		return nil, err
	}
	if err := w.AppendInt(encodeLatitude(b.Latitude), 27); err != nil {
		return nil, err
	}
	if err := w.AppendUint(uint64(b.EPFD), 4); err != nil {
		return nil, err
	}
	if err := w.AppendUint(0, 10); err != nil { // spare
		return nil, err
	}
	w.AppendBool(b.RAIM)
	if err := w.AppendUint(uint64(b.Radio), 19); err != nil {
		return nil, err
	}
	return w.Bits(), nil
}

// DecodeBaseStationReport is the inverse of EncodeBaseStationReport.
func DecodeBaseStationReport(bits []bool) (BaseStationReport, error) {
	r := bitstream.NewReader(bits)
	_, mmsi, err := readHeader(r)
	if err != nil {
		return BaseStationReport{}, err
	}
	var b BaseStationReport
	b.MMSI = mmsi

	fields := []struct {
		width int
		dst   *int
	}{
		{14, &b.Year}, {4, &b.Month}, {5, &b.Day}, {5, &b.Hour}, {6, &b.Minute}, {6, &b.Second},
	}
	for _, f := range fields {
		v, err := r.ReadUint(f.width)
		if err != nil {
			return b, err
		}
		*f.dst = int(v)
	}

	if b.PositionAcc, err = r.ReadBool(); err != nil {
		return b, err
	}
	lon, err := r.ReadInt(28)
	if err != nil {
		return b, err
	}
	b.Longitude = decodeLongitude(lon)

	lat, err := r.ReadInt(27)
	if err != nil {
		return b, err
	}
	b.Latitude = decodeLatitude(lat)

	epfd, err := r.ReadUint(4)
	if err != nil {
		return b, err
	}
	b.EPFD = EPFDType(epfd)

	if _, err := r.ReadUint(10); err != nil { // spare
		return b, err
	}
	if b.RAIM, err = r.ReadBool(); err != nil {
		return b, err
	}
	radio, err := r.ReadUint(19)
	if err != nil {
		return b, err
	}
	b.Radio = uint32(radio)

	return b, nil
}
