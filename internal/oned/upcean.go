package oned

import (
	"fmt"

	"github.com/deepteams/barcode/internal/bitmatrix"
)

// startEndPattern is the 1:1:1 guard bars bracketing a UPC/EAN symbol.
var startEndPattern = []int{1, 1, 1}

// middlePattern is the 1:1:1:1:1 guard in the center of an EAN-13/UPC-A symbol.
var middlePattern = []int{1, 1, 1, 1, 1}

// lAndGPatterns / lPatterns are the 7-module digit encodings for the left
// (odd-parity "L") and right ("C"/even-parity complement) halves.
var lPatterns = [10][4]int{
	{3, 2, 1, 1}, {2, 2, 2, 1}, {2, 1, 2, 2}, {1, 4, 1, 1}, {1, 1, 3, 2},
	{1, 2, 3, 1}, {1, 1, 1, 4}, {1, 3, 1, 2}, {1, 2, 1, 3}, {3, 1, 1, 2},
}

var lAndGPatterns = buildLAndG()

func buildLAndG() [20][4]int {
	var out [20][4]int
	for i := 0; i < 10; i++ {
		out[i] = lPatterns[i]
	}
	for i := 10; i < 20; i++ {
		widths := lPatterns[i-10]
		out[i] = [4]int{widths[3], widths[2], widths[1], widths[0]}
	}
	return out
}

// firstDigitEncodings[i] is a 6-bit field where bit k (from the MSB) tells
// whether the k-th digit of an EAN-13 symbol's left half was read with odd
// ("L", bit=0) or even ("G", bit=1) parity; that pattern identifies the
// implied leading digit.
var firstDigitEncodings = [10]int{0x00, 0x0B, 0x0D, 0xE, 0x13, 0x19, 0x1C, 0x15, 0x16, 0x1A}

var errChecksum = fmt.Errorf("oned: checksum error")

// findGuardPattern locates a run matching pattern starting at or after
// rowOffset, returning [start,end) of the matched run.
func findGuardPattern(row *bitmatrix.BitArray, rowOffset int, whiteFirst bool, pattern []int) (int, int, error) {
	width := row.Size()
	if whiteFirst {
		rowOffset = row.GetNextUnset(rowOffset)
	} else {
		rowOffset = row.GetNextSet(rowOffset)
	}
	counterPosition := 0
	counters := make([]int, len(pattern))
	patternStart := rowOffset
	isWhite := whiteFirst
	for x := rowOffset; x < width; x++ {
		pixel := row.Get(x)
		if pixel != isWhite {
			counters[counterPosition]++
		} else {
			if counterPosition == len(counters)-1 {
				if patternMatchVariance(counters, pattern, maxIndividualVariance) < maxAvgVariance {
					return patternStart, x, nil
				}
				patternStart += counters[0] + counters[1]
				copy(counters, counters[2:])
				counters[len(counters)-2] = 0
				counters[len(counters)-1] = 0
				counterPosition--
			} else {
				counterPosition++
			}
			counters[counterPosition] = 1
			isWhite = !isWhite
		}
	}
	return 0, 0, ErrNotFound
}

// findStartGuardPattern locates the left-hand 1:1:1 guard that opens every
// UPC/EAN symbol, skipping any quiet-zone runs too short to be real.
func findStartGuardPattern(row *bitmatrix.BitArray) (int, int, error) {
	foundStart := false
	startRange := [2]int{0, 0}
	nextStart := 0
	var err error
	for !foundStart {
		startRange[0], startRange[1], err = findGuardPattern(row, nextStart, false, startEndPattern)
		if err != nil {
			return 0, 0, err
		}
		start := startRange[0]
		nextStart = startRange[1]
		quietStart := start - (nextStart - start)
		if quietStart >= 0 {
			foundStart = row.IsRange(quietStart, start, false)
		} else {
			foundStart = true
		}
	}
	return startRange[0], startRange[1], nil
}

// decodeDigit matches the run at row[start:] against the L/G pattern
// family, returning the best-scoring digit 0-9 and whether it read as "G"
// parity (only meaningful for EAN-13's variable left half).
func decodeDigit(row *bitmatrix.BitArray, counters []int, start int, patterns [20][4]int) (int, bool, int, error) {
	if err := recordPattern(row, start, counters); err != nil {
		return 0, false, 0, err
	}
	bestVariance := maxAvgVariance
	bestMatch := -1
	for i, pattern := range patterns {
		variance := patternMatchVariance(counters, pattern[:], maxIndividualVariance)
		if variance < bestVariance {
			bestVariance = variance
			bestMatch = i
		}
	}
	if bestMatch < 0 {
		return 0, false, 0, ErrNotFound
	}
	end := start
	for _, c := range counters {
		end += c
	}
	return bestMatch % 10, bestMatch >= 10, end, nil
}

// upcEANChecksum computes the mod-10 weighted checksum over digits
// excluding any trailing check digit.
func upcEANChecksum(digits string) int {
	sum := 0
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if (len(digits)-1-i)%2 == 0 {
			sum += d * 3
		} else {
			sum += d
		}
	}
	return (10 - sum%10) % 10
}
