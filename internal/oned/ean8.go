package oned

import (
	"strings"

	"github.com/deepteams/barcode/internal/bitmatrix"
)

// EAN8Reader decodes EAN-8 symbols: a 1:1:1 start guard, four left-half
// digits (all "L" parity, no implied digit), a middle guard, four
// right-half digits, and an end guard.
type EAN8Reader struct{}

func (EAN8Reader) DecodeRow(rowNumber int, row *bitmatrix.BitArray) (*RowResult, error) {
	startStart, startEnd, err := findStartGuardPattern(row)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	end := startEnd
	counters := make([]int, 4)

	for x := 0; x < 4 && end < row.Size(); x++ {
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

	_, middleEnd, err := findGuardPattern(row, end, true, middlePattern)
	if err != nil {
		return nil, err
	}
	end = middleEnd

	for x := 0; x < 4 && end < row.Size(); x++ {
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

	_, endEnd, err := findGuardPattern(row, end, false, startEndPattern)
	if err != nil {
		return nil, err
	}

	digits := sb.String()
	if len(digits) != 8 {
		return nil, ErrNotFound
	}
	check := upcEANChecksum(digits[:7])
	if byte('0'+check) != digits[7] {
		return nil, errChecksum
	}

	return &RowResult{
		Text:       digits,
		Format:     "EAN_8",
		RowNumber:  rowNumber,
		StartX:     startStart,
		EndX:       endEnd,
		CheckDigit: true,
	}, nil
}
