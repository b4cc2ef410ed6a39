package ais

import (
	"sync/atomic"

	"github.com/nmeasim/nmeasim/internal/bitstream"
)

// Fragment is one piece of a (possibly single-fragment) AIVDM message,
// ready for NMEA envelope wrapping.
type Fragment struct {
	Count    int    // total fragments in this message
	Index    int    // 1-based position of this fragment
	GroupID  int    // 0-9, shared by all fragments of a multi-part message; -1 when Count == 1
	Payload  string // armored 6-bit payload for this fragment
	FillBits int    // trailing fill bits, nonzero only on the final fragment
}

// groupCounters tracks the monotonic mod-10 group sequence ID
// allocator, one counter per channel, per §4.3.
type groupCounters struct {
	a uint32
	b uint32
}

// nextGroupID returns the next group sequence ID for channel
// ("A" or "B"), wrapping 0..9.
func (g *groupCounters) nextGroupID(channel string) int {
	var counter *uint32
	if channel == "B" {
		counter = &g.b
	} else {
		counter = &g.a
	}
	n := atomic.AddUint32(counter, 1) - 1
	return int(n % 10)
}

// Fragmenter splits armored AIS payloads into one or more Fragments no
// longer than a configured per-fragment character limit, per §4.3.
type Fragmenter struct {
	limit    int
	counters groupCounters
}

// NewFragmenter returns a Fragmenter that splits payloads exceeding
// limit armored characters. Per the spec's open question, callers
// should derive limit from the NMEA envelope length rather than
// hardcoding 60.
func NewFragmenter(limit int) *Fragmenter {
	if limit <= 0 {
		limit = 60
	}
	return &Fragmenter{limit: limit}
}

// Split fragments bits (a raw, unarmored bit vector produced by one of
// the Encode* functions) for transmission on channel ("A" or "B").
// Fragment boundaries fall on 6-bit-character positions, so every
// fragment but the last carries zero fill bits.
func (f *Fragmenter) Split(bits []bool, channel string) []Fragment {
	payload, fill := bitstream.Armor(bits)
	if len(payload) <= f.limit {
		return []Fragment{{Count: 1, Index: 1, GroupID: -1, Payload: payload, FillBits: fill}}
	}

	n := (len(payload) + f.limit - 1) / f.limit
	groupID := f.counters.nextGroupID(channel)
	frags := make([]Fragment, 0, n)
	for i := 0; i < n; i++ {
		start := i * f.limit
		end := start + f.limit
		if end > len(payload) {
			end = len(payload)
		}
		fb := 0
		if i == n-1 {
			fb = fill
		}
		frags = append(frags, Fragment{
			Count:    n,
			Index:    i + 1,
			GroupID:  groupID,
			Payload:  payload[start:end],
			FillBits: fb,
		})
	}
	return frags
}

// Reassemble concatenates fragment payloads in index order and strips
// the final fill bits, reproducing the original bit vector. Fragments
// must already be sorted by Index.
func Reassemble(frags []Fragment) ([]bool, error) {
	var payload string
	fill := 0
	for _, f := range frags {
		payload += f.Payload
		fill = f.FillBits
	}
	return bitstream.Unarmor(payload, fill)
}
