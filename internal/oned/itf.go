package oned

import (
	"strings"

	"github.com/deepteams/barcode/internal/bitmatrix"
)

// itfStartPattern and itfEndPattern frame an ITF symbol; unlike most 1D
// symbologies ITF has no per-character start/stop codes, just these fixed
// guard runs.
var itfStartPattern = []int{1, 1, 1, 1}
var itfEndPattern = []int{2, 1, 1}

// itfPatterns holds each digit's five-element wide/narrow encoding (two of
// five elements wide, giving the symbology its name); interleaving packs
// two digits (one in bars, one in spaces) per ten-element group.
var itfPatterns = [10][5]int{
	{1, 1, 2, 2, 1}, {2, 1, 1, 1, 2}, {1, 2, 1, 1, 2}, {2, 2, 1, 1, 1}, {1, 1, 2, 1, 2},
	{2, 1, 2, 1, 1}, {1, 2, 2, 1, 1}, {1, 1, 1, 2, 2}, {2, 1, 1, 2, 1}, {1, 2, 1, 2, 1},
}

// ITFReader decodes Interleaved 2 of 5: an even number of digits
// interleaved two-per-group between bar widths and space widths.
type ITFReader struct{}

func (ITFReader) DecodeRow(rowNumber int, row *bitmatrix.BitArray) (*RowResult, error) {
	startStart, startEnd, err := findITFGuard(row, 0, itfStartPattern)
	if err != nil {
		return nil, err
	}

	endStart, err := findITFEndFrom(row, startEnd)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	counterDigitPair := make([]int, 10)
	counterBlack := make([]int, 5)
	counterWhite := make([]int, 5)

	pos := startEnd
	for pos < endStart {
		if err := recordPattern(row, pos, counterDigitPair); err != nil {
			return nil, err
		}
		for k := 0; k < 5; k++ {
			counterBlack[k] = counterDigitPair[k*2]
			counterWhite[k] = counterDigitPair[k*2+1]
		}
		blackDigit, err := decodeITFDigit(counterBlack)
		if err != nil {
			return nil, err
		}
		whiteDigit, err := decodeITFDigit(counterWhite)
		if err != nil {
			return nil, err
		}
		sb.WriteByte(byte('0' + blackDigit))
		sb.WriteByte(byte('0' + whiteDigit))
		for _, c := range counterDigitPair {
			pos += c
		}
	}

	text := sb.String()
	if len(text) == 0 || len(text)%2 != 0 {
		return nil, ErrNotFound
	}

	return &RowResult{
		Text:      text,
		Format:    "ITF",
		RowNumber: rowNumber,
		StartX:    startStart,
		EndX:      endStart,
	}, nil
}

func decodeITFDigit(counters []int) (int, error) {
	bestVariance := maxAvgVariance
	bestMatch := -1
	for i, pattern := range itfPatterns {
		variance := patternMatchVariance(counters, pattern[:], maxIndividualVariance)
		if variance < bestVariance {
			bestVariance = variance
			bestMatch = i
		}
	}
	if bestMatch < 0 {
		return 0, ErrNotFound
	}
	return bestMatch, nil
}

func findITFGuard(row *bitmatrix.BitArray, from int, pattern []int) (int, int, error) {
	return findGuardPattern(row, from, false, pattern)
}

// findITFEndFrom locates the trailing 2:1:1 end guard by scanning
// backward from the row's last set pixel, since ITF symbols carry no
// mid-symbol marker to anchor a forward scan against.
func findITFEndFrom(row *bitmatrix.BitArray, afterStart int) (int, error) {
	width := row.Size()
	end := width
	for end > afterStart && !row.Get(end-1) {
		end--
	}
	counters := make([]int, 3)
	// recordPatternInReverse locates where the end guard begins by
	// counting transitions leftward, then delegates to the forward
	// recordPattern, so counters already comes back in left-to-right order.
	if err := recordPatternInReverse(row, end, counters); err != nil {
		return 0, ErrNotFound
	}
	if patternMatchVariance(counters, itfEndPattern, maxIndividualVariance) >= maxAvgVariance {
		return 0, ErrNotFound
	}
	total := 0
	for _, c := range counters {
		total += c
	}
	return end - total, nil
}
