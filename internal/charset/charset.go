// Package charset resolves the text encoding of a QR BYTE-mode segment: an
// explicit ECI designator when present, otherwise a heuristic guess among
// the encodings QR producers commonly use.
package charset

import (
	"unicode/utf8"
)

// Name is a recognized character encoding, identified by its canonical
// Go/IANA name suitable for passing to golang.org/x/text/encoding lookups.
type Name string

const (
	ISO88591 Name = "ISO-8859-1"
	UTF8     Name = "UTF-8"
	ShiftJIS Name = "Shift_JIS"
	GB2312   Name = "GB2312"
)

// eciNameByValue maps the ECI designator values QR producers actually use
// to a charset name. Unlisted values fall back to the caller's default.
var eciNameByValue = map[int]Name{
	3:  ISO88591,
	20: ShiftJIS,
	29: GB2312,
	26: UTF8,
}

// ForECI resolves an ECI designator value to a charset name, or "" if the
// value isn't one this decoder recognizes.
func ForECI(value int) Name {
	return eciNameByValue[value]
}

// Guess picks a plausible charset for a BYTE-mode segment with no explicit
// ECI, in the absence of other hints: valid UTF-8 is assumed to be UTF-8
// (matching how most modern QR generators emit BYTE segments), otherwise
// ISO-8859-1, the mode's default per the QR standard.
func Guess(data []byte) Name {
	if utf8.Valid(data) && containsMultibyteUTF8(data) {
		return UTF8
	}
	return ISO88591
}

func containsMultibyteUTF8(data []byte) bool {
	for _, b := range data {
		if b >= 0x80 {
			return true
		}
	}
	return false
}
