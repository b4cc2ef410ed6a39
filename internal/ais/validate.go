package ais

import (
	"fmt"

	"github.com/nmeasim/nmeasim/internal/simerr"
)

// ErrUnknownMessageType is returned by Encode when a Message carries a
// Type with no matching encoder.
var ErrUnknownMessageType = simerr.New(simerr.KindEncode, "unknown ais message type")

// ValidateMMSI checks that mmsi is a 9-digit identifier, per spec.md
// §3's invariant.
func ValidateMMSI(mmsi uint32) error {
	if mmsi == 0 || mmsi > MMSIMax {
		return simerr.Wrap(simerr.KindEncode, fmt.Sprintf("mmsi %d is not a 9-digit identifier", mmsi), simerr.ErrBadField)
	}
	return nil
}
