// Package nmea implements NMEA 0183 sentence formatting, checksum
// framing, AIVDM AIS encapsulation, and parsing.
package nmea

import "fmt"

// MaxSentenceLength is the NMEA 0183 line length limit, including the
// `$`/`!` prefix and checksum but excluding the trailing \r\n.
const MaxSentenceLength = 82

// Checksum XORs every byte of body, which must exclude the leading
// `$`/`!` and any trailing `*checksum`.
func Checksum(body string) byte {
	var cs byte
	for i := 0; i < len(body); i++ {
		cs ^= body[i]
	}
	return cs
}

// Frame appends the checksum and \r\n terminator to body, which must
// start with `$` or `!` and contain no `*`.
func Frame(body string) string {
	cs := Checksum(body[1:])
	return fmt.Sprintf("%s*%02X\r\n", body, cs)
}
