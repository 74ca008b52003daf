package oned

import (
	"strings"

	"github.com/deepteams/barcode/internal/bitmatrix"
)

// EAN13Reader decodes EAN-13 symbols: a 1:1:1 start guard, six left-half
// digits (odd/even parity encoding the implied 13th digit), a 1:1:1:1:1
// middle guard, six right-half digits, and a 1:1:1 end guard.
type EAN13Reader struct{}

func (EAN13Reader) DecodeRow(rowNumber int, row *bitmatrix.BitArray) (*RowResult, error) {
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

	firstDigit, err := determineFirstDigit(lgPatternFound)
	if err != nil {
		return nil, err
	}

	middleStart, middleEnd, err := findGuardPattern(row, end, true, middlePattern)
	if err != nil {
		return nil, err
	}
	end = middleEnd
	_ = middleStart

	for x := 0; x < 6 && end < row.Size(); x++ {
		digit, _, next, err := decodeDigit(row, counters, end, lAndGPatterns)
		if err != nil {
			return nil, err
		}
		if digit >= 10 {
			return nil, ErrNotFound
		}
		sb.WriteByte(byte('0' + digit))
		end = next
	}

	endStart, endEnd, err := findGuardPattern(row, end, false, startEndPattern)
	if err != nil {
		return nil, err
	}
	_ = endStart

	digits := string(firstDigit) + sb.String()
	if len(digits) != 13 {
		return nil, ErrNotFound
	}
	check := upcEANChecksum(digits[:12])
	if byte('0'+check) != digits[12] {
		return nil, errChecksum
	}

	return &RowResult{
		Text:       digits,
		Format:     "EAN_13",
		RowNumber:  rowNumber,
		StartX:     startStart,
		EndX:       endEnd,
		CheckDigit: true,
	}, nil
}

// determineFirstDigit recovers the implied 13th digit from the L/G parity
// pattern of the six left-half digits.
func determineFirstDigit(lgPatternFound int) (byte, error) {
	for d, encoding := range firstDigitEncodings {
		if encoding == lgPatternFound {
			return byte('0' + d), nil
		}
	}
	return 0, ErrNotFound
}
