package nmea

import (
	"fmt"
	"strconv"

	"github.com/nmeasim/nmeasim/internal/ais"
)

// FormatAIVDM wraps one AIS fragment in a `!AIVDM` sentence:
// `!AIVDM,<count>,<index>,<group_id_or_empty>,<channel>,<payload>,<fill>*<cs>\r\n`.
func FormatAIVDM(f ais.Fragment, channel string) string {
	group := ""
	if f.GroupID >= 0 {
		group = strconv.Itoa(f.GroupID)
	}
	body := fmt.Sprintf("!AIVDM,%d,%d,%s,%s,%s,%d", f.Count, f.Index, group, channel, f.Payload, f.FillBits)
	return Frame(body)
}

// FormatAIVDMSentences wraps every fragment of a multi-part AIS
// message, in order.
func FormatAIVDMSentences(frags []ais.Fragment, channel string) []string {
	out := make([]string, len(frags))
	for i, f := range frags {
		out[i] = FormatAIVDM(f, channel)
	}
	return out
}

// MaxAIVDMPayloadChars returns the largest AIVDM payload character
// count that keeps a framed sentence within MaxSentenceLength, sized
// for single-digit count/index/group/fill fields. Per the
// spec's redesign note, callers derive the fragmenter's per-fragment
// limit from this instead of hardcoding it.
func MaxAIVDMPayloadChars() int {
	skeleton := FormatAIVDM(ais.Fragment{Count: 9, Index: 9, GroupID: 9, FillBits: 5}, "A")
	overhead := len(skeleton) - len("\r\n")
	return MaxSentenceLength - overhead
}
