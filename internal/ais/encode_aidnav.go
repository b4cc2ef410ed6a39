package ais

import "github.com/nmeasim/nmeasim/internal/bitstream"

// nameExtensionChars caps the type 21 name_extension field at 14
// six-bit characters (84 bits). ITU-R M.1371 allows 0..88 bits in
// four-bit steps; 84 is the largest such width that decomposes into
// whole 6-bit characters, so the extension field always round-trips
// through AppendString/ReadString without a partial trailing char.
const nameExtensionChars = 14

// EncodeAidToNavigation builds the payload for message type 21 (Aid to
// Navigation Report). Length varies with NameExtension; callers get a
// fixed 272-bit base plus 0..84 extension bits.
func EncodeAidToNavigation(a AidToNavigation) ([]bool, error) {
	if err := ValidateMMSI(a.MMSI); err != nil {
		return nil, err
	}
	w := bitstream.NewWriter()
	if err := writeHeader(w, 21, a.MMSI); err != nil {
		return nil, err
	}
	if err := w.AppendUint(uint64(clamp(a.AidType, 0, 31)), 5); err != nil {
		return nil, err
	}
	if err := w.AppendString(a.Name, 20); err != nil {
		return nil, err
	}
	w.AppendBool(a.PositionAcc)
	if err := w.AppendInt(encodeLongitude(a.Longitude), 28); err != nil {
		return nil, err
	}
	if err := w.AppendInt(encodeLatitude(a.Latitude), 27); err != nil {
		return nil, err
	}
	if err := writeDimensions(w, a.Dimensions); err != nil {
		return nil, err
	}
	if err := w.AppendUint(uint64(a.EPFD), 4); err != nil {
		return nil, err
	}
	if err := w.AppendUint(uint64(clampTimestamp(a.TimestampSec)), 6); err != nil {
		return nil, err
	}
	w.AppendBool(a.OffPosition)
	if err := w.AppendUint(uint64(clamp(a.Regional, 0, 255)), 8); err != nil {
		return nil, err
	}
	w.AppendBool(a.RAIM)
	w.AppendBool(a.VirtualAid)
	w.AppendBool(a.Assigned)
	if err := w.AppendUint(0, 1); err != nil { // spare
		return nil, err
	}
	if a.NameExtension != "" {
		if err := w.AppendString(a.NameExtension, nameExtensionChars); err != nil {
			return nil, err
		}
	}
	return w.Bits(), nil
}

// DecodeAidToNavigation is the inverse of EncodeAidToNavigation. The
// name extension is decoded only when bits carries more than the
// 272-bit fixed base.
func DecodeAidToNavigation(bits []bool) (AidToNavigation, error) {
	r := bitstream.NewReader(bits)
	_, mmsi, err := readHeader(r)
	if err != nil {
		return AidToNavigation{}, err
	}
	var a AidToNavigation
	a.MMSI = mmsi

	aidType, err := r.ReadUint(5)
	if err != nil {
		return a, err
	}
	a.AidType = int(aidType)

	if a.Name, err = r.ReadString(20); err != nil {
		return a, err
	}
	if a.PositionAcc, err = r.ReadBool(); err != nil {
		return a, err
	}

	lon, err := r.ReadInt(28)
	if err != nil {
		return a, err
	}
	a.Longitude = decodeLongitude(lon)

	lat, err := r.ReadInt(27)
	if err != nil {
		return a, err
	}
	a.Latitude = decodeLatitude(lat)

	if a.Dimensions, err = readDimensions(r); err != nil {
		return a, err
	}

	epfd, err := r.ReadUint(4)
	if err != nil {
		return a, err
	}
	a.EPFD = EPFDType(epfd)

	ts, err := r.ReadUint(6)
	if err != nil {
		return a, err
	}
	a.TimestampSec = int(ts)

	if a.OffPosition, err = r.ReadBool(); err != nil {
		return a, err
	}
	regional, err := r.ReadUint(8)
	if err != nil {
		return a, err
	}
	a.Regional = int(regional)

	if a.RAIM, err = r.ReadBool(); err != nil {
		return a, err
	}
	if a.VirtualAid, err = r.ReadBool(); err != nil {
		return a, err
	}
	if a.Assigned, err = r.ReadBool(); err != nil {
		return a, err
	}
	if _, err := r.ReadUint(1); err != nil { // spare
		return a, err
	}

	if avail := r.Remaining() / 6; avail > 0 {
		if avail > nameExtensionChars {
			avail = nameExtensionChars
		}
		if a.NameExtension, err = r.ReadString(avail); err != nil {
			return a, err
		}
	}

	return a, nil
}
