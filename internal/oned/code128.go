package oned

import (
	"strings"

	"github.com/deepteams/barcode/internal/bitmatrix"
)

// code128Patterns holds the 6-element bar/space widths for each of the 107
// data/control symbols valid in Code 128 (shared by subsets A, B and C,
// which share a single symbol table and differ only in how a code value
// is interpreted).
var code128Patterns = [107][6]int{
	{2, 1, 2, 2, 2, 2}, {2, 2, 2, 1, 2, 2}, {2, 2, 2, 2, 2, 1}, {1, 2, 1, 2, 2, 3},
	{1, 2, 1, 3, 2, 2}, {1, 3, 1, 2, 2, 2}, {1, 2, 2, 2, 1, 3}, {1, 2, 2, 3, 1, 2},
	{1, 3, 2, 2, 1, 2}, {2, 2, 1, 2, 1, 3}, {2, 2, 1, 3, 1, 2}, {2, 3, 1, 2, 1, 2},
	{1, 1, 2, 2, 3, 2}, {1, 2, 2, 1, 3, 2}, {1, 2, 2, 2, 3, 1}, {1, 1, 3, 2, 2, 2},
	{1, 2, 3, 1, 2, 2}, {1, 2, 3, 2, 2, 1}, {2, 2, 3, 2, 1, 1}, {2, 2, 1, 1, 3, 2},
	{2, 2, 1, 2, 3, 1}, {2, 1, 3, 2, 1, 2}, {2, 2, 3, 1, 1, 2}, {3, 1, 2, 1, 3, 1},
	{3, 1, 1, 2, 2, 2}, {3, 2, 1, 1, 2, 2}, {3, 2, 1, 2, 2, 1}, {3, 1, 2, 2, 1, 2},
	{3, 2, 2, 1, 1, 2}, {3, 2, 2, 2, 1, 1}, {2, 1, 2, 1, 2, 3}, {2, 1, 2, 3, 2, 1},
	{2, 3, 2, 1, 2, 1}, {1, 1, 1, 3, 2, 3}, {1, 3, 1, 1, 2, 3}, {1, 3, 1, 3, 2, 1},
	{1, 1, 2, 3, 1, 3}, {1, 3, 2, 1, 1, 3}, {1, 3, 2, 3, 1, 1}, {2, 1, 1, 3, 1, 3},
	{2, 3, 1, 1, 1, 3}, {2, 3, 1, 3, 1, 1}, {1, 1, 2, 1, 3, 3}, {1, 1, 2, 3, 3, 1},
	{1, 3, 2, 1, 3, 1}, {1, 1, 3, 1, 2, 3}, {1, 1, 3, 3, 2, 1}, {1, 3, 3, 1, 2, 1},
	{3, 1, 3, 1, 2, 1}, {2, 1, 1, 3, 3, 1}, {2, 3, 1, 1, 3, 1}, {2, 1, 3, 1, 1, 3},
	{2, 1, 3, 3, 1, 1}, {2, 1, 3, 1, 3, 1}, {3, 1, 1, 1, 2, 3}, {3, 1, 1, 3, 2, 1},
	{3, 3, 1, 1, 2, 1}, {3, 1, 2, 1, 1, 3}, {3, 1, 2, 3, 1, 1}, {3, 3, 2, 1, 1, 1},
	{3, 1, 4, 1, 1, 1}, {2, 2, 1, 4, 1, 1}, {4, 3, 1, 1, 1, 1}, {1, 1, 1, 2, 2, 4},
	{1, 1, 1, 4, 2, 2}, {1, 2, 1, 1, 2, 4}, {1, 2, 1, 4, 2, 1}, {1, 4, 1, 1, 2, 2},
	{1, 4, 1, 2, 2, 1}, {1, 1, 2, 2, 1, 4}, {1, 1, 2, 4, 1, 2}, {1, 2, 2, 1, 1, 4},
	{1, 2, 2, 4, 1, 1}, {1, 4, 2, 1, 1, 2}, {1, 4, 2, 2, 1, 1}, {2, 4, 1, 2, 1, 1},
	{2, 2, 1, 1, 1, 4}, {4, 1, 3, 1, 1, 1}, {2, 4, 1, 1, 1, 2}, {1, 3, 4, 1, 1, 1},
	{1, 1, 1, 2, 4, 2}, {1, 2, 1, 1, 4, 2}, {1, 2, 1, 2, 4, 1}, {1, 1, 4, 2, 1, 2},
	{1, 2, 4, 1, 1, 2}, {1, 2, 4, 2, 1, 1}, {4, 1, 1, 2, 1, 2}, {4, 2, 1, 1, 1, 2},
	{4, 2, 1, 2, 1, 1}, {2, 1, 2, 1, 4, 1}, {2, 1, 4, 1, 2, 1}, {4, 1, 2, 1, 2, 1},
	{1, 1, 1, 1, 4, 3}, {1, 1, 1, 3, 4, 1}, {1, 3, 1, 1, 4, 1}, {1, 1, 4, 1, 1, 3},
	{1, 1, 4, 3, 1, 1}, {4, 1, 1, 1, 1, 3}, {4, 1, 1, 3, 1, 1}, {1, 1, 3, 1, 4, 1},
	{1, 1, 4, 1, 3, 1}, {3, 1, 1, 1, 4, 1}, {4, 1, 1, 1, 3, 1}, {2, 1, 1, 4, 1, 2},
	{2, 1, 1, 2, 1, 4}, {2, 1, 1, 2, 3, 2}, {2, 3, 3, 1, 1, 1},
}

var code128StartPatternA = [6]int{2, 1, 1, 4, 1, 2}
var code128StartPatternB = [6]int{2, 1, 1, 2, 1, 4}
var code128StartPatternC = [6]int{2, 1, 1, 2, 3, 2}

const (
	code128CodeShift    = 98
	code128CodeCodeC    = 99
	code128CodeCodeB    = 100
	code128CodeCodeA    = 101
	code128CodeFNC1     = 102
	code128CodeStartA   = 103
	code128CodeStartB   = 104
	code128CodeStartC   = 105
	code128CodeStop     = 106
)

// Code128Reader decodes Code 128: a variable-length, high-density linear
// symbology with three interchangeable character subsets (A: control +
// upper ASCII, B: full ASCII, C: digit pairs), switchable mid-symbol.
type Code128Reader struct{}

type code128StartInfo struct {
	startCode int
	start     int
	end       int
}

func (Code128Reader) DecodeRow(rowNumber int, row *bitmatrix.BitArray) (*RowResult, error) {
	info, err := findCode128Start(row)
	if err != nil {
		return nil, err
	}

	var rawCodewords []byte
	var sb strings.Builder
	codeSet := 0
	switch info.startCode {
	case code128CodeStartA:
		codeSet = 1
	case code128CodeStartB:
		codeSet = 2
	case code128CodeStartC:
		codeSet = 3
	}

	counters := make([]int, 6)
	lastStart := info.start
	nextStart := info.end
	done := false
	isNextShifted := false
	checksumTotal := info.startCode
	multiplier := 0
	// textLenBeforeLastCodeword lets us trim the check-digit codeword's
	// rendered character back off once the loop discovers it was the last
	// data codeword before STOP, since it was appended speculatively like
	// any other codeword while decoding.
	textLenBeforeLastCodeword := 0

	for !done {
		lastStart = nextStart
		code, end, err := decodeCode128Char(row, counters, nextStart)
		if err != nil {
			return nil, err
		}
		nextStart = end
		rawCodewords = append(rawCodewords, byte(code))
		if code != code128CodeStop {
			multiplier++
			checksumTotal += multiplier * code
		}

		shift := isNextShifted
		isNextShifted = false
		if code != code128CodeStop {
			textLenBeforeLastCodeword = sb.Len()
		}

		switch code {
		case code128CodeStop:
			done = true
		case code128CodeFNC1:
			// not represented in plain text output
		case code128CodeShift:
			isNextShifted = true
			if codeSet == 1 {
				codeSet = 2
			} else if codeSet == 2 {
				codeSet = 1
			}
		case code128CodeCodeA:
			codeSet = 1
		case code128CodeCodeB:
			codeSet = 2
		case code128CodeCodeC:
			codeSet = 3
		default:
			appendCode128Char(&sb, codeSet, code, shift)
		}
	}

	// rawCodewords is [...data..., checkCodeword, stopCode]; the checksum
	// covers everything up to but not including the check codeword itself.
	if len(rawCodewords) < 2 {
		return nil, ErrNotFound
	}
	checkCodeword := int(rawCodewords[len(rawCodewords)-2])
	checksumTotal -= multiplier * checkCodeword
	if checksumTotal%103 != checkCodeword {
		return nil, errChecksum
	}

	text := sb.String()[:textLenBeforeLastCodeword]
	if len(text) == 0 {
		return nil, ErrNotFound
	}

	return &RowResult{
		Text:         text,
		Format:       "CODE_128",
		RowNumber:    rowNumber,
		StartX:       info.start,
		EndX:         lastStart,
		RawCodewords: rawCodewords,
	}, nil
}

// appendCode128Char renders a single code-128 value (0-102) as text per
// the active code set; codeSet 3 (C) pairs of digits are expanded inline
// rather than buffered, since each C value is itself two digits.
func appendCode128Char(sb *strings.Builder, codeSet, code int, shift bool) {
	switch codeSet {
	case 3: // C: digit pairs
		if code < 100 {
			if code < 10 {
				sb.WriteByte('0')
			}
			sb.WriteString(itoa(code))
		}
	case 1: // A: control chars + upper ASCII
		switch {
		case code < 64:
			ch := byte(code + ' ')
			if shift {
				ch = byte(code + ' ' + 128)
			}
			sb.WriteByte(ch)
		case code < 96:
			sb.WriteByte(byte(code - 64))
		}
	case 2: // B: full ASCII
		if code < 96 {
			sb.WriteByte(byte(code + ' '))
		}
	}
}

func itoa(v int) string {
	if v == 0 {
		return "0"
	}
	var buf [4]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}

func findCode128Start(row *bitmatrix.BitArray) (code128StartInfo, error) {
	width := row.Size()
	rowOffset := row.GetNextSet(0)
	counters := make([]int, 6)
	patternStart := rowOffset
	isWhite := false
	counterPosition := 0

	for x := rowOffset; x < width; x++ {
		pixel := row.Get(x)
		if pixel != isWhite {
			counters[counterPosition]++
		} else {
			if counterPosition == 5 {
				bestVariance := maxAvgVariance
				bestMatch := -1
				for _, candidate := range []struct {
					code    int
					pattern [6]int
				}{
					{code128CodeStartA, code128StartPatternA},
					{code128CodeStartB, code128StartPatternB},
					{code128CodeStartC, code128StartPatternC},
				} {
					variance := patternMatchVariance(counters, candidate.pattern[:], maxIndividualVariance)
					if variance < bestVariance {
						bestVariance = variance
						bestMatch = candidate.code
					}
				}
				if bestMatch >= 0 && row.IsRange(maxInt(0, patternStart-(x-patternStart)), patternStart, false) {
					return code128StartInfo{startCode: bestMatch, start: patternStart, end: x}, nil
				}
				patternStart += counters[0] + counters[1]
				copy(counters, counters[2:])
				counters[4] = 0
				counters[5] = 0
				counterPosition--
			} else {
				counterPosition++
			}
			counters[counterPosition] = 1
			isWhite = !isWhite
		}
	}
	return code128StartInfo{}, ErrNotFound
}

// decodeCode128Char reads the next 6-element symbol starting at start and
// matches it against the shared 107-entry pattern table.
func decodeCode128Char(row *bitmatrix.BitArray, counters []int, start int) (int, int, error) {
	if err := recordPattern(row, start, counters); err != nil {
		return 0, 0, err
	}
	bestVariance := maxAvgVariance
	bestMatch := -1
	for i, pattern := range code128Patterns {
		variance := patternMatchVariance(counters, pattern[:], maxIndividualVariance)
		if variance < bestVariance {
			bestVariance = variance
			bestMatch = i
		}
	}
	if bestMatch < 0 {
		return 0, 0, ErrNotFound
	}
	end := start
	for _, c := range counters {
		end += c
	}
	return bestMatch, end, nil
}
