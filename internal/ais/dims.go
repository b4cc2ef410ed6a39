package ais

import "github.com/nmeasim/nmeasim/internal/bitstream"

// writeDimensions appends the standard 30-bit to_bow(9)/to_stern(9)/
// to_port(6)/to_starboard(6) block used by types 5, 19, 21, 24B.
func writeDimensions(w *bitstream.Writer, d Dimensions) error {
	if err := w.AppendUint(uint64(clamp(d.ToBow, 0, 511)), 9); err != nil {
		return err
	}
	if err := w.AppendUint(uint64(clamp(d.ToStern, 0, 511)), 9); err != nil {
		return err
	}
	if err := w.AppendUint(uint64(clamp(d.ToPort, 0, 63)), 6); err != nil {
		return err
	}
	if err := w.AppendUint(uint64(clamp(d.ToStarboard, 0, 63)), 6); err != nil {
		return err
	}
	return nil
}

func readDimensions(r *bitstream.Reader) (Dimensions, error) {
	bow, err := r.ReadUint(9)
	if err != nil {
		return Dimensions{}, err
	}
	stern, err := r.ReadUint(9)
	if err != nil {
		return Dimensions{}, err
	}
	port, err := r.ReadUint(6)
	if err != nil {
		return Dimensions{}, err
	}
	starboard, err := r.ReadUint(6)
	if err != nil {
		return Dimensions{}, err
	}
	return Dimensions{
		ToBow:       int(bow),
		ToStern:     int(stern),
		ToPort:      int(port),
		ToStarboard: int(starboard),
	}, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func boolToUint(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
