package detector

import (
	"math"

	"github.com/deepteams/barcode/internal/bitmatrix"
)

// AlignmentPattern is the small 1:1:1 ring pattern used by version-2+
// symbols to correct for perspective skew away from the three finders.
type AlignmentPattern struct {
	X, Y                float64
	EstimatedModuleSize float64
}

func (a *AlignmentPattern) aboutEquals(moduleSize, i, j float64) bool {
	if math.Abs(i-a.Y) <= moduleSize && math.Abs(j-a.X) <= moduleSize {
		moduleSizeDiff := math.Abs(moduleSize - a.EstimatedModuleSize)
		return moduleSizeDiff <= 1 || moduleSizeDiff <= a.EstimatedModuleSize
	}
	return false
}

// FindAlignmentPattern searches the moduleSize*(2*allowance+1)-wide square
// centered on (estAlignmentX, estAlignmentY) for a 1:1:1 dark/light/dark
// ring, which is all an alignment pattern looks like in cross-section.
// Candidates seen more than once (the ring crosses several scan rows) are
// merged by aboutEquals; the first pattern confirmed by a second sighting
// is returned, falling back to the first candidate seen at all if none
// repeats.
func FindAlignmentPattern(image *bitmatrix.BitMatrix, overallEstModuleSize, estAlignmentX, estAlignmentY, allowanceFactor float64) (*AlignmentPattern, bool) {
	allowance := int(allowanceFactor * overallEstModuleSize)
	alignmentAreaLeftX := maxInt(0, int(estAlignmentX)-allowance)
	alignmentAreaRightX := minInt(image.Width()-1, int(estAlignmentX)+allowance)
	if alignmentAreaRightX-alignmentAreaLeftX < int(overallEstModuleSize)*3 {
		return nil, false
	}
	alignmentAreaTopY := maxInt(0, int(estAlignmentY)-allowance)
	alignmentAreaBottomY := minInt(image.Height()-1, int(estAlignmentY)+allowance)

	var possible []*AlignmentPattern
	stateCount := make([]int, 3)
	for y := alignmentAreaTopY; y <= alignmentAreaBottomY; y++ {
		resetCounts(stateCount)
		currentState := 0
		for x := alignmentAreaLeftX; x <= alignmentAreaRightX; x++ {
			if image.Get(x, y) {
				if currentState == 1 {
					stateCount[1]++
				} else if currentState == 2 {
					if foundAlignmentPatternCross(stateCount, overallEstModuleSize) {
						if p := recordAlignmentCenter(&possible, stateCount, y, x, overallEstModuleSize); p != nil {
							return p, true
						}
					}
					stateCount[0] = stateCount[2]
					stateCount[1] = 1
					stateCount[2] = 0
					currentState = 1
				} else {
					currentState++
					stateCount[currentState]++
				}
			} else {
				if currentState == 1 {
					currentState++
				}
				stateCount[currentState]++
			}
		}
		if foundAlignmentPatternCross(stateCount, overallEstModuleSize) {
			if p := recordAlignmentCenter(&possible, stateCount, y, alignmentAreaRightX+1, overallEstModuleSize); p != nil {
				return p, true
			}
		}
	}

	if len(possible) > 0 {
		return possible[0], true
	}
	return nil, false
}

func foundAlignmentPatternCross(stateCount []int, moduleSize float64) bool {
	maxVariance := moduleSize / 2.0
	for _, c := range stateCount {
		if c == 0 || math.Abs(moduleSize-float64(c)) >= maxVariance {
			return false
		}
	}
	return true
}

// recordAlignmentCenter merges a newly observed ring cross-section into
// possible, returning the pattern if this is its second sighting
// (confirming it), or nil if it's a fresh or still-unconfirmed candidate.
func recordAlignmentCenter(possible *[]*AlignmentPattern, stateCount []int, i, j int, moduleSize float64) *AlignmentPattern {
	centerJ := centerFromEndAlign(stateCount, j)
	centerI := float64(i)

	for _, p := range *possible {
		if p.aboutEquals(moduleSize, centerI, centerJ) {
			return p
		}
	}
	*possible = append(*possible, &AlignmentPattern{X: centerJ, Y: centerI, EstimatedModuleSize: moduleSize})
	return nil
}

func centerFromEndAlign(stateCount []int, end int) float64 {
	return float64(end-stateCount[2]) - float64(stateCount[1])/2.0
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
