package ais

import "github.com/nmeasim/nmeasim/internal/bitstream"

// EncodeStaticDataReportA builds the 160-bit payload for message type
// 24, part A (vessel name).
func EncodeStaticDataReportA(s StaticDataReportA) ([]bool, error) {
	if err := ValidateMMSI(s.MMSI); err != nil {
		return nil, err
	}
	w := bitstream.NewWriter()
	if err := writeHeader(w, 24, s.MMSI); err != nil {
		return nil, err
	}
	if err := w.AppendUint(0, 2); err != nil { // part number = 0
		return nil, err
	}
	if err := w.AppendString(s.Name, 20); err != nil {
		return nil, err
	}
	return w.Bits(), nil
}

// DecodeStaticDataReportA is the inverse of EncodeStaticDataReportA.
// Callers should check the part number via PeekPartNumber before
// dispatching here.
func DecodeStaticDataReportA(bits []bool) (StaticDataReportA, error) {
	r := bitstream.NewReader(bits)
	_, mmsi, err := readHeader(r)
	if err != nil {
		return StaticDataReportA{}, err
	}
	if _, err := r.ReadUint(2); err != nil { // part number
		return StaticDataReportA{}, err
	}
	var s StaticDataReportA
	s.MMSI = mmsi
	if s.Name, err = r.ReadString(20); err != nil {
		return s, err
	}
	return s, nil
}

// EncodeStaticDataReportB builds the 168-bit payload for message type
// 24, part B (ship type, callsign, dimensions). When MothershipMMSI is
// nonzero the dimensions field is replaced by that MMSI, per M.1371's
// auxiliary-craft encoding.
func EncodeStaticDataReportB(s StaticDataReportB) ([]bool, error) {
	if err := ValidateMMSI(s.MMSI); err != nil {
		return nil, err
	}
	w := bitstream.NewWriter()
	if err := writeHeader(w, 24, s.MMSI); err != nil {
		return nil, err
	}
	if err := w.AppendUint(1, 2); err != nil { // part number = 1
		return nil, err
	}
	if err := w.AppendUint(uint64(clamp(s.ShipType, 0, 255)), 8); err != nil {
		return nil, err
	}
	if err := w.AppendString(s.VendorID, 7); err != nil {
		return nil, err
	}
	if err := w.AppendString(s.Callsign, 7); err != nil {
		return nil, err
	}
	if s.MothershipMMSI != 0 {
		if err := w.AppendUint(uint64(s.MothershipMMSI), 30); err != nil {
			return nil, err
		}
	} else {
		if err := writeDimensions(w, s.Dimensions); err != nil {
			return nil, err
		}
	}
	if err := w.AppendUint(0, 6); err != nil { // spare
		return nil, err
	}
	return w.Bits(), nil
}

// DecodeStaticDataReportB is the inverse of EncodeStaticDataReportB.
// isAuxiliary tells the decoder whether the 30-bit slot after callsign
// holds dimensions or a mothership MMSI; auxiliary craft (MMSI encoded
// with the 98 MID prefix) use the mothership form.
func DecodeStaticDataReportB(bits []bool, isAuxiliary bool) (StaticDataReportB, error) {
	r := bitstream.NewReader(bits)
	_, mmsi, err := readHeader(r)
	if err != nil {
		return StaticDataReportB{}, err
	}
	if _, err := r.ReadUint(2); err != nil { // part number
		return StaticDataReportB{}, err
	}
	var s StaticDataReportB
	s.MMSI = mmsi

	shipType, err := r.ReadUint(8)
	if err != nil {
		return s, err
	}
	s.ShipType = int(shipType)

	if s.VendorID, err = r.ReadString(7); err != nil {
		return s, err
	}
	if s.Callsign, err = r.ReadString(7); err != nil {
		return s, err
	}

	if isAuxiliary {
		mothership, err := r.ReadUint(30)
		if err != nil {
			return s, err
		}
		s.MothershipMMSI = uint32(mothership)
	} else {
		if s.Dimensions, err = readDimensions(r); err != nil {
			return s, err
		}
	}

	if _, err := r.ReadUint(6); err != nil { // spare
		return s, err
	}
	return s, nil
}

// PeekPartNumber reads the 2-bit type-24 part number without consuming
// the reader, so callers can pick DecodeStaticDataReportA or
// DecodeStaticDataReportB before decoding the rest of the payload.
func PeekPartNumber(bits []bool) (int, error) {
	r := bitstream.NewReader(bits)
	if _, _, err := readHeader(r); err != nil {
		return 0, err
	}
	part, err := r.ReadUint(2)
	if err != nil {
		return 0, err
	}
	return int(part), nil
}
