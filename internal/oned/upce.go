package oned

import (
	"strings"

	"github.com/deepteams/barcode/internal/bitmatrix"
)

// upceEndPattern is UPC-E's 6-module end guard, distinct from UPC-A/EAN's
// plain 1:1:1 end guard since UPC-E has no middle guard to separate halves.
var upceEndPattern = []int{1, 1, 1, 1, 1, 1}

// numSysAndCheckDigitPatterns[numberSystem][checkDigit] is the 6-bit L/G
// parity pattern (as produced by decodeDigit across the six compressed
// digits) that encodes that combination, mirroring how EAN-13's left half
// encodes its implied first digit.
var numSysAndCheckDigitPatterns = [2][10]int{
	{0x38, 0x34, 0x32, 0x31, 0x2C, 0x26, 0x23, 0x2A, 0x29, 0x25},
	{0x07, 0x0B, 0x0D, 0x0E, 0x13, 0x19, 0x1C, 0x15, 0x16, 0x1A},
}

// UPCEReader decodes UPC-E symbols, the zero-suppressed 6-digit variant of
// UPC-A used on small packaging.
type UPCEReader struct{}

func (UPCEReader) DecodeRow(rowNumber int, row *bitmatrix.BitArray) (*RowResult, error) {
	startStart, startEnd, err := findStartGuardPattern(row)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	end := startEnd
	counters := make([]int, 4)
	lgPatternFound := 0

	for x := 0; x < 6 && end < row.Size(); x++ {
		digit, isG, next, err := decodeDigit(row, counters, end, lAndGPatterns)
		if err != nil {
			return nil, err
		}
		sb.WriteByte(byte('0' + digit))
		end = next
		if isG {
			lgPatternFound |= 1 << uint(5-x)
		}
	}

	numberSystem, checkDigit, err := determineNumSysAndCheckDigit(lgPatternFound)
	if err != nil {
		return nil, err
	}

	endStart, endEnd, err := findGuardPattern(row, end, true, upceEndPattern)
	if err != nil {
		return nil, err
	}
	_ = endStart

	compressed := sb.String()
	upcA, err := expandUPCE(numberSystem, compressed, checkDigit)
	if err != nil {
		return nil, err
	}
	if upcEANChecksum(upcA[:11]) != int(upcA[11]-'0') {
		return nil, errChecksum
	}

	return &RowResult{
		Text:       "0" + upcA,
		Format:     "UPC_E",
		RowNumber:  rowNumber,
		StartX:     startStart,
		EndX:       endEnd,
		CheckDigit: true,
	}, nil
}

func determineNumSysAndCheckDigit(lgPatternFound int) (numberSystem, checkDigit int, err error) {
	for ns := 0; ns < 2; ns++ {
		for cd := 0; cd < 10; cd++ {
			if numSysAndCheckDigitPatterns[ns][cd] == lgPatternFound {
				return ns, cd, nil
			}
		}
	}
	return 0, 0, ErrNotFound
}

// expandUPCE reconstructs the 11-digit UPC-A payload (number system digit
// plus 10 data digits) from a compressed 6-digit UPC-E code, re-inserting
// the run of zeros that zero-suppression removed. Which zero-suppression
// rule was used is determined by the last compressed digit, per the
// official UPC-E encoding table; checkDigit is appended as the 12th digit.
func expandUPCE(numberSystem int, compressed string, checkDigit int) (string, error) {
	if len(compressed) != 6 {
		return "", ErrNotFound
	}
	var out strings.Builder
	out.WriteByte(byte('0' + numberSystem))
	last := compressed[5]
	switch last {
	case '0', '1', '2':
		out.WriteString(compressed[0:2])
		out.WriteByte(last)
		out.WriteString("0000")
		out.WriteString(compressed[2:5])
	case '3':
		out.WriteString(compressed[0:3])
		out.WriteString("00000")
		out.WriteString(compressed[3:5])
	case '4':
		out.WriteString(compressed[0:4])
		out.WriteString("00000")
		out.WriteByte(compressed[4])
	default:
		out.WriteString(compressed[0:5])
		out.WriteString("0000")
		out.WriteByte(last)
	}
	out.WriteByte(byte('0' + checkDigit))
	return out.String(), nil
}
