// Package oned implements the linear (1D) barcode readers: UPC-A, UPC-E,
// EAN-13, EAN-8, Code 39, Code 128, and Interleaved 2 of 5, sharing a
// common row-scanning schedule and run-length pattern matcher.
package oned

import (
	"fmt"

	"github.com/deepteams/barcode/internal/binarize"
	"github.com/deepteams/barcode/internal/bitmatrix"
)

// ErrNotFound is returned when no reader recognizes a row.
var ErrNotFound = fmt.Errorf("oned: not found")

// RowResult is what a row decoder returns on success.
type RowResult struct {
	Text            string
	Format          string
	RawCodewords    []byte
	StartX, EndX    int
	RowNumber       int
	CheckDigit      bool
}

// RowDecoder is the interface every symbology-specific 1D reader satisfies.
type RowDecoder interface {
	DecodeRow(rowNumber int, row *bitmatrix.BitArray) (*RowResult, error)
}

// maxAvgVariance and maxIndividualVariance bound how far a run of measured
// pixel widths may drift from an expected ratio pattern before
// patternMatchVariance rejects the match; both are the classic zxing
// tolerances, loose enough for print/scan noise but tight enough to reject
// unrelated patterns.
const (
	maxAvgVariance        = 0.42
	maxIndividualVariance = 0.7
)

// recordPattern walks row starting at start, alternating bit color with
// each run, and records run lengths into counters. It returns an error if
// the row runs out before every counter has a run.
func recordPattern(row *bitmatrix.BitArray, start int, counters []int) error {
	numCounters := len(counters)
	for i := range counters {
		counters[i] = 0
	}
	end := row.Size()
	if start >= end {
		return ErrNotFound
	}
	isWhite := !row.Get(start)
	counterPosition := 0
	i := start
	for i < end {
		if row.Get(i) != isWhite {
			counters[counterPosition]++
		} else {
			counterPosition++
			if counterPosition == numCounters {
				return nil
			}
			counters[counterPosition] = 1
			isWhite = !isWhite
		}
		i++
	}
	if counterPosition == numCounters-1 {
		return nil
	}
	return ErrNotFound
}

// recordPatternInReverse is recordPattern but scanning leftward from start,
// used to locate a pattern's leading edge when the trailing edge is known.
func recordPatternInReverse(row *bitmatrix.BitArray, start int, counters []int) error {
	numTransitionsLeft := len(counters)
	last := row.Get(start)
	for numTransitionsLeft >= 0 && start > 0 {
		start--
		if row.Get(start) != last {
			numTransitionsLeft--
			last = !last
		}
	}
	if numTransitionsLeft >= 0 {
		return ErrNotFound
	}
	return recordPattern(row, start+1, counters)
}

// patternMatchVariance scores how well a sequence of measured run widths
// matches an expected ratio pattern, both normalized against the total run
// length. Lower is a better match; a value above maxAvgVariance (or any
// single run off by more than maxIndividualVariance) means "no match".
func patternMatchVariance(counters, pattern []int, maxIndividualVariance float64) float64 {
	numCounters := len(counters)
	total := 0
	patternLength := 0
	for i := 0; i < numCounters; i++ {
		total += counters[i]
		patternLength += pattern[i]
	}
	if total < patternLength {
		return float64(^uint(0) >> 1) // no match possible; too short
	}
	unitBarWidth := float64(total) / float64(patternLength)
	maxIndividualVariance *= unitBarWidth

	totalVariance := 0.0
	for x := 0; x < numCounters; x++ {
		counter := float64(counters[x])
		scaledPattern := float64(pattern[x]) * unitBarWidth
		variance := counter - scaledPattern
		if variance < 0 {
			variance = -variance
		}
		if variance > maxIndividualVariance {
			return 1e18
		}
		totalVariance += variance
	}
	return totalVariance / float64(total)
}

// DecodeOneD runs decoder's DecodeRow across a sequence of rows sampled
// from image (middle row first, then spreading outward), returning the
// first successful match.
func DecodeOneD(bitmap *binarize.BinaryBitmap, decoder RowDecoder) (*RowResult, error) {
	width := bitmap.Width()
	height := bitmap.Height()

	middle := height / 2
	rowStep := maxInt(1, height/(200*2))
	maxLines := 1 + 2*100

	for x := 0; x < maxLines; x++ {
		rowStepsAboveOrBelow := (x + 1) / 2
		isAbove := x&0x1 == 0
		var rowNumber int
		if isAbove {
			rowNumber = middle + rowStep*rowStepsAboveOrBelow
		} else {
			rowNumber = middle - rowStep*rowStepsAboveOrBelow
		}
		if rowNumber < 0 || rowNumber >= height {
			break
		}
		row, err := bitmap.BlackRow(rowNumber)
		if err != nil {
			continue
		}
		result, err := decoder.DecodeRow(rowNumber, row)
		if err == nil {
			return result, nil
		}
	}
	_ = width
	return nil, ErrNotFound
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
