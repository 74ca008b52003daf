package oned

import (
	"strings"

	"github.com/deepteams/barcode/internal/bitmatrix"
)

// code39Alphabet lists the 44 characters Code 39 can encode, in the same
// order as code39CharacterEncodings so that index i in one matches index i
// in the other.
const code39Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ-. *$/+%"

// code39CharacterEncodings packs each character's 9-element bar/space
// widths (3 of the 9 elements are wide) into a 9-bit field, one
// bit per element from MSB to LSB; a set bit denotes a wide element.
var code39CharacterEncodings = []int{
	0x034, 0x121, 0x061, 0x160, 0x031, 0x130, 0x070, 0x025, 0x124, 0x064, // 0-9
	0x109, 0x049, 0x148, 0x019, 0x118, 0x058, 0x00D, 0x10C, 0x04C, 0x01C, // A-J
	0x103, 0x043, 0x142, 0x013, 0x112, 0x052, 0x007, 0x106, 0x046, 0x016, // K-T
	0x181, 0x0C1, 0x1C0, 0x091, 0x190, 0x0D0, 0x085, 0x184, 0x0C4, 0x094, // U-Z,-,.,space,*
	0x0A8, 0x0A2, 0x08A, 0x02A, // $,/,+,%
}

// Code39Reader decodes Code 39 (also called "Code 3 of 9"): variable-width
// bars and spaces, 9 elements per character (5 bars + 4 spaces), framed by
// asterisk ("*") start/stop characters.
type Code39Reader struct {
	// ExtendedMode, if true, decodes the +/$/% escape sequences that
	// encode the full ASCII range into pairs of Code 39 characters.
	ExtendedMode bool
}

func (r Code39Reader) DecodeRow(rowNumber int, row *bitmatrix.BitArray) (*RowResult, error) {
	start, err := findCode39Start(row)
	if err != nil {
		return nil, err
	}

	counters := make([]int, 9)
	var sb strings.Builder
	nextStart := start
	lastStart := start
	for {
		nextStart = row.GetNextSet(nextStart)
		if err := recordPattern(row, nextStart, counters); err != nil {
			return nil, err
		}
		pattern, err := toNarrowWidePattern(counters)
		if err != nil {
			return nil, ErrNotFound
		}
		decoded, err := patternToChar(pattern)
		if err != nil {
			return nil, ErrNotFound
		}
		lastStart = nextStart
		for _, c := range counters {
			nextStart += c
		}
		if decoded == '*' {
			break
		}
		sb.WriteByte(decoded)
		if nextStart >= row.Size() {
			return nil, ErrNotFound
		}
	}

	text := sb.String()
	if len(text) == 0 {
		return nil, ErrNotFound
	}
	if r.ExtendedMode {
		expanded, err := decodeExtended(text)
		if err != nil {
			return nil, err
		}
		text = expanded
	}

	return &RowResult{
		Text:      text,
		Format:    "CODE_39",
		RowNumber: rowNumber,
		StartX:    start,
		EndX:      lastStart,
	}, nil
}

// findCode39Start scans for the first '*' start character, returning the
// position just past it, where the white gap before the first data
// character begins.
func findCode39Start(row *bitmatrix.BitArray) (int, error) {
	width := row.Size()
	rowOffset := row.GetNextSet(0)
	counters := make([]int, 9)
	counterPosition := 0
	patternStart := rowOffset
	isWhite := false
	for i := range counters {
		counters[i] = 0
	}

	for x := rowOffset; x < width; x++ {
		pixel := row.Get(x)
		if pixel != isWhite {
			counters[counterPosition]++
		} else {
			if counterPosition == 8 {
				pattern, err := toNarrowWidePattern(counters)
				if err == nil {
					if ch, err := patternToChar(pattern); err == nil && ch == '*' {
						if row.IsRange(maxInt(0, patternStart-((x-patternStart)/2)), patternStart, false) {
							return x, nil
						}
					}
				}
				patternStart += counters[0] + counters[1]
				copy(counters, counters[2:])
				counters[7] = 0
				counters[8] = 0
				counterPosition--
			} else {
				counterPosition++
			}
			counters[counterPosition] = 1
			isWhite = !isWhite
		}
	}
	return 0, ErrNotFound
}

// toNarrowWidePattern converts nine measured run widths into the 9-bit
// wide/narrow field used to index code39CharacterEncodings. It repeatedly
// raises the narrow/wide threshold until exactly three elements classify
// as wide (every Code 39 character has exactly 3 wide bars/spaces out of
// 9), then sanity-checks that the three wide runs are close enough in
// width to each other to be a real match rather than noise.
func toNarrowWidePattern(counters []int) (int, error) {
	numCounters := len(counters)
	maxNarrowCounter := 0
	for {
		minCounter := 1 << 30
		for _, c := range counters {
			if c < minCounter && c > maxNarrowCounter {
				minCounter = c
			}
		}
		if minCounter == 1<<30 {
			return 0, ErrNotFound
		}
		maxNarrowCounter = minCounter

		wideCounters := 0
		totalWideThreshold := 0
		pattern := 0
		for i, c := range counters {
			if c > maxNarrowCounter {
				pattern |= 1 << uint(numCounters-1-i)
				wideCounters++
				totalWideThreshold += c
			}
		}
		if wideCounters == 3 {
			for _, c := range counters {
				if c > maxNarrowCounter && c*2 >= totalWideThreshold {
					return 0, ErrNotFound
				}
			}
			return pattern, nil
		}
		if wideCounters > 3 {
			return 0, ErrNotFound
		}
	}
}

func patternToChar(pattern int) (byte, error) {
	for i, enc := range code39CharacterEncodings {
		if enc == pattern {
			return code39Alphabet[i], nil
		}
	}
	return 0, ErrNotFound
}

// decodeExtended un-escapes Code 39 full-ASCII pairs: "$X" controls,
// "%X" upper punctuation, "/X" and "+X" lowercase/mixed-case letters.
func decodeExtended(encoded string) (string, error) {
	var out strings.Builder
	for i := 0; i < len(encoded); i++ {
		c := encoded[i]
		if c == '+' || c == '$' || c == '%' || c == '/' {
			if i+1 >= len(encoded) {
				return "", ErrNotFound
			}
			next := encoded[i+1]
			decoded, err := decodeExtendedPair(c, next)
			if err != nil {
				return "", err
			}
			out.WriteByte(decoded)
			i++
		} else {
			out.WriteByte(c)
		}
	}
	return out.String(), nil
}

func decodeExtendedPair(escape, c byte) (byte, error) {
	switch escape {
	case '+':
		if c >= 'A' && c <= 'Z' {
			return c + 32, nil
		}
	case '$':
		if c >= 'A' && c <= 'Z' {
			return c - 'A' + 1, nil
		}
	case '%':
		switch {
		case c >= 'A' && c <= 'E':
			return c - 'A' + 27, nil
		case c >= 'F' && c <= 'J':
			return c - 'F' + 92, nil
		case c >= 'K' && c <= 'O':
			return c - 'K' + 123, nil
		case c >= 'P' && c <= 'T':
			return c - 'P' + 91, nil
		case c == 'U':
			return 0, nil
		case c == 'V':
			return '@', nil
		case c == 'W':
			return '`', nil
		case c == 'X' || c == 'Y' || c == 'Z':
			return 127, nil
		}
	case '/':
		if c >= 'A' && c <= 'O' {
			return c - 'A' + '!', nil
		}
		if c == 'Z' {
			return ':', nil
		}
	}
	return 0, ErrNotFound
}
