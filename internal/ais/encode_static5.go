package ais

import "github.com/nmeasim/nmeasim/internal/bitstream"

// EncodeStaticVoyageData builds the 424-bit payload for message type 5
// (Class A Static and Voyage Related Data).
func EncodeStaticVoyageData(s StaticVoyageData) ([]bool, error) {
	if err := ValidateMMSI(s.MMSI); err != nil {
		return nil, err
	}
	w := bitstream.NewWriter()
	if err := writeHeader(w, 5, s.MMSI); err != nil {
		return nil, err
	}
	if err := w.AppendUint(uint64(clamp(s.AISVersion, 0, 3)), 2); err != nil {
		return nil, err
	}
	if err := w.AppendUint(uint64(s.IMO), 30); err != nil {
		return nil, err
	}
	if err := w.AppendString(s.Callsign, 7); err != nil {
		return nil, err
	}
	if err := w.AppendString(s.Name, 20); err != nil {
		return nil, err
	}
	if err := w.AppendUint(uint64(clamp(s.ShipType, 0, 255)), 8); err != nil {
		return nil, err
	}
	if err := writeDimensions(w, s.Dimensions); err != nil {
		return nil, err
	}
	if err := w.AppendUint(uint64(s.EPFD), 4); err != nil {
		return nil, err
	}
	if err := w.AppendUint(uint64(clamp(s.Voyage.ETAMonth, 0, 12)), 4); err != nil {
		return nil, err
	}
	if err := w.AppendUint(uint64(clamp(s.Voyage.ETADay, 0, 31)), 5); err != nil {
		return nil, err
	}
	if err := w.AppendUint(uint64(clamp(s.Voyage.ETAHour, 0, 24)), 5); err != nil {
		return nil, err
	}
	if err := w.AppendUint(uint64(clamp(s.Voyage.ETAMinute, 0, 60)), 6); err != nil {
		return nil, err
	}
	if err := w.AppendUint(encodeDraught(s.Voyage.DraughtM), 8); err != nil {
		return nil, err
	}
	if err := w.AppendString(s.Voyage.Destination, 20); err != nil {
		return nil, err
	}
	w.AppendBool(s.DTE)
	if err := w.AppendUint(0, 1); err != nil { // spare
		return nil, err
	}
	return w.Bits(), nil
}

// DecodeStaticVoyageData is the inverse of EncodeStaticVoyageData.
func DecodeStaticVoyageData(bits []bool) (StaticVoyageData, error) {
	r := bitstream.NewReader(bits)
	_, mmsi, err := readHeader(r)
	if err != nil {
		return StaticVoyageData{}, err
	}
	var s StaticVoyageData
	s.MMSI = mmsi

	v, err := r.ReadUint(2)
	if err != nil {
		return s, err
	}
	s.AISVersion = int(v)

	imo, err := r.ReadUint(30)
	if err != nil {
		return s, err
	}
	s.IMO = uint32(imo)

	if s.Callsign, err = r.ReadString(7); err != nil {
		return s, err
	}
	if s.Name, err = r.ReadString(20); err != nil {
		return s, err
	}

	shipType, err := r.ReadUint(8)
	if err != nil {
		return s, err
	}
	s.ShipType = int(shipType)

	if s.Dimensions, err = readDimensions(r); err != nil {
		return s, err
	}

	epfd, err := r.ReadUint(4)
	if err != nil {
		return s, err
	}
	s.EPFD = EPFDType(epfd)

	fields := []struct {
		width int
		dst   *int
	}{
		{4, &s.Voyage.ETAMonth}, {5, &s.Voyage.ETADay}, {5, &s.Voyage.ETAHour}, {6, &s.Voyage.ETAMinute},
	}
	for _, f := range fields {
		val, err := r.ReadUint(f.width)
		if err != nil {
			return s, err
		}
		*f.dst = int(val)
	}

	draught, err := r.ReadUint(8)
	if err != nil {
		return s, err
	}
	s.Voyage.DraughtM = decodeDraught(draught)

	if s.Voyage.Destination, err = r.ReadString(20); err != nil {
		return s, err
	}
	if s.DTE, err = r.ReadBool(); err != nil {
		return s, err
	}
	if _, err := r.ReadUint(1); err != nil { // spare
		return s, err
	}
	return s, nil
}
