// Package detector locates a QR symbol's three finder patterns and,
// version permitting, its alignment pattern, then builds the perspective
// transform that lets the grid sampler read out a square module matrix.
package detector

import (
	"fmt"
	"math"
	"sort"

	"github.com/deepteams/barcode/internal/bitmatrix"
)

// ErrNotFound is returned when the image does not contain three finder
// patterns in a usable arrangement.
var ErrNotFound = fmt.Errorf("qrcode/detector: not found")

// FinderPattern is one of the three position-detection squares, with its
// estimated center, the pixel width of one ring module, and a count of how
// many scan rows contributed to it (used to prefer well-confirmed
// candidates over noise).
type FinderPattern struct {
	X, Y        float64
	EstimatedModuleSize float64
	Count       int
}

func (f *FinderPattern) aboutEquals(moduleSize, i, j float64) bool {
	if math.Abs(i-f.Y) <= moduleSize && math.Abs(j-f.X) <= moduleSize {
		moduleSizeDiff := math.Abs(moduleSize - f.EstimatedModuleSize)
		return moduleSizeDiff <= 1 || moduleSizeDiff <= f.EstimatedModuleSize
	}
	return false
}

func (f *FinderPattern) combineEstimate(i, j, newModuleSize float64) *FinderPattern {
	combinedCount := f.Count + 1
	combinedX := (float64(f.Count)*f.X + j) / float64(combinedCount)
	combinedY := (float64(f.Count)*f.Y + i) / float64(combinedCount)
	combinedModuleSize := (float64(f.Count)*f.EstimatedModuleSize + newModuleSize) / float64(combinedCount)
	return &FinderPattern{X: combinedX, Y: combinedY, EstimatedModuleSize: combinedModuleSize, Count: combinedCount}
}

// finderPatternFinder scans a binary image row by row looking for the
// 1:1:3:1:1 dark/light run-length ratio that marks a finder pattern ring,
// then cross-checks vertically and horizontally to reject false positives.
type finderPatternFinder struct {
	image     *bitmatrix.BitMatrix
	possible  []*FinderPattern
}

// Find scans image for finder patterns and returns the three best
// candidates, or ErrNotFound if fewer than three were confirmed.
func Find(image *bitmatrix.BitMatrix) ([3]*FinderPattern, error) {
	f := &finderPatternFinder{image: image}
	maxI := image.Height()
	maxJ := image.Width()

	done := false
	stateCount := make([]int, 5)
	// Step 3/4 of a module of the largest (97-module) symbol that could
	// fill the image height, at least one row, and every second row once a
	// center has been confirmed -- scanning every row is needless work once
	// the geometry is coarse enough to be found from a subsample.
	iSkip := (3 * maxI) / (4 * 97)
	if iSkip < 1 {
		iSkip = 1
	}

	for i := iSkip - 1; i < maxI && !done; i += iSkip {
		resetCounts(stateCount)
		currentState := 0
		for j := 0; j < maxJ; j++ {
			if image.Get(j, i) {
				if currentState&1 == 1 {
					currentState++
				}
				stateCount[currentState]++
			} else {
				if currentState&1 == 0 {
					if currentState == 4 {
						if foundPatternCross(stateCount) && f.handlePossibleCenter(stateCount, i, j) {
							iSkip = 2
							done = f.haveMultiplyConfirmedCenters()
							resetCounts(stateCount)
							currentState = 0
						} else {
							// Slide the window forward by two runs and keep counting.
							stateCount[0], stateCount[1], stateCount[2] = stateCount[2], stateCount[3], stateCount[4]
							stateCount[3], stateCount[4] = 1, 0
							currentState = 3
						}
					} else {
						currentState++
						stateCount[currentState]++
					}
				} else {
					stateCount[currentState]++
				}
			}
		}
		if foundPatternCross(stateCount) {
			confirmed := f.handlePossibleCenter(stateCount, i, maxJ)
			if confirmed {
				done = f.haveMultiplyConfirmedCenters()
			}
		}
	}

	patterns, err := f.selectBestPatterns()
	if err != nil {
		return [3]*FinderPattern{}, err
	}
	return orderBestPatterns(patterns), nil
}

func resetCounts(stateCount []int) {
	for i := range stateCount {
		stateCount[i] = 0
	}
}

// foundPatternCross reports whether the five run lengths observed are
// close enough to the 1:1:3:1:1 ratio that defines a finder ring.
func foundPatternCross(stateCount []int) bool {
	totalModuleSize := 0
	for _, c := range stateCount {
		if c == 0 {
			return false
		}
		totalModuleSize += c
	}
	if totalModuleSize < 7 {
		return false
	}
	moduleSize := float64(totalModuleSize) / 7.0
	maxVariance := moduleSize / 2.0
	return math.Abs(moduleSize-float64(stateCount[0])) < maxVariance &&
		math.Abs(moduleSize-float64(stateCount[1])) < maxVariance &&
		math.Abs(3*moduleSize-float64(stateCount[2])) < 3*maxVariance &&
		math.Abs(moduleSize-float64(stateCount[3])) < maxVariance &&
		math.Abs(moduleSize-float64(stateCount[4])) < maxVariance
}

func centerFromEnd(stateCount []int, end int) float64 {
	return float64(end-stateCount[4]-stateCount[3]) - float64(stateCount[2])/2.0
}

func (f *finderPatternFinder) crossCheckVertical(startI, centerJ, maxCount, originalStateCountTotal int) float64 {
	image := f.image
	maxI := image.Height()
	stateCount := make([]int, 5)

	i := startI
	for i >= 0 && image.Get(centerJ, i) {
		stateCount[2]++
		i--
	}
	if i < 0 {
		return math.NaN()
	}
	for i >= 0 && !image.Get(centerJ, i) && stateCount[1] <= maxCount {
		stateCount[1]++
		i--
	}
	if i < 0 || stateCount[1] > maxCount {
		return math.NaN()
	}
	for i >= 0 && image.Get(centerJ, i) && stateCount[0] <= maxCount {
		stateCount[0]++
		i--
	}
	if stateCount[0] > maxCount {
		return math.NaN()
	}

	i = startI + 1
	for i < maxI && image.Get(centerJ, i) {
		stateCount[2]++
		i++
	}
	if i == maxI {
		return math.NaN()
	}
	for i < maxI && !image.Get(centerJ, i) && stateCount[3] < maxCount {
		stateCount[3]++
		i++
	}
	if i == maxI || stateCount[3] >= maxCount {
		return math.NaN()
	}
	for i < maxI && image.Get(centerJ, i) && stateCount[4] < maxCount {
		stateCount[4]++
		i++
	}
	if stateCount[4] >= maxCount {
		return math.NaN()
	}

	stateCountTotal := stateCount[0] + stateCount[1] + stateCount[2] + stateCount[3] + stateCount[4]
	if 5*absInt(stateCountTotal-originalStateCountTotal) >= 2*originalStateCountTotal {
		return math.NaN()
	}
	if !foundPatternCross(stateCount) {
		return math.NaN()
	}
	return centerFromEnd(stateCount, i)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func (f *finderPatternFinder) crossCheckHorizontal(startJ, centerI, maxCount, originalStateCountTotal int) float64 {
	image := f.image
	maxJ := image.Width()
	stateCount := make([]int, 5)

	j := startJ
	for j >= 0 && image.Get(j, centerI) {
		stateCount[2]++
		j--
	}
	if j < 0 {
		return math.NaN()
	}
	for j >= 0 && !image.Get(j, centerI) && stateCount[1] <= maxCount {
		stateCount[1]++
		j--
	}
	if j < 0 || stateCount[1] > maxCount {
		return math.NaN()
	}
	for j >= 0 && image.Get(j, centerI) && stateCount[0] <= maxCount {
		stateCount[0]++
		j--
	}
	if stateCount[0] > maxCount {
		return math.NaN()
	}

	j = startJ + 1
	for j < maxJ && image.Get(j, centerI) {
		stateCount[2]++
		j++
	}
	if j == maxJ {
		return math.NaN()
	}
	for j < maxJ && !image.Get(j, centerI) && stateCount[3] < maxCount {
		stateCount[3]++
		j++
	}
	if j == maxJ || stateCount[3] >= maxCount {
		return math.NaN()
	}
	for j < maxJ && image.Get(j, centerI) && stateCount[4] < maxCount {
		stateCount[4]++
		j++
	}
	if stateCount[4] >= maxCount {
		return math.NaN()
	}

	stateCountTotal := stateCount[0] + stateCount[1] + stateCount[2] + stateCount[3] + stateCount[4]
	if 5*absInt(stateCountTotal-originalStateCountTotal) >= 2*originalStateCountTotal {
		return math.NaN()
	}
	if !foundPatternCross(stateCount) {
		return math.NaN()
	}
	return centerFromEnd(stateCount, j)
}

func (f *finderPatternFinder) handlePossibleCenter(stateCount []int, i, j int) bool {
	stateCountTotal := stateCount[0] + stateCount[1] + stateCount[2] + stateCount[3] + stateCount[4]
	centerJ := centerFromEnd(stateCount, j)
	centerI := f.crossCheckVertical(i, int(centerJ), stateCount[2], stateCountTotal)
	if math.IsNaN(centerI) {
		return false
	}
	centerJ = f.crossCheckHorizontal(int(centerJ), int(centerI), stateCount[2], stateCountTotal)
	if math.IsNaN(centerJ) {
		return false
	}

	estimatedModuleSize := float64(stateCountTotal) / 7.0
	for _, p := range f.possible {
		if p.aboutEquals(estimatedModuleSize, centerI, centerJ) {
			idx := -1
			for k, q := range f.possible {
				if q == p {
					idx = k
					break
				}
			}
			f.possible[idx] = p.combineEstimate(centerI, centerJ, estimatedModuleSize)
			return true
		}
	}
	f.possible = append(f.possible, &FinderPattern{X: centerJ, Y: centerI, EstimatedModuleSize: estimatedModuleSize, Count: 1})
	return true
}

func (f *finderPatternFinder) haveMultiplyConfirmedCenters() bool {
	confirmedCount := 0
	totalModuleSize := 0.0
	for _, p := range f.possible {
		if p.Count >= 2 {
			confirmedCount++
			totalModuleSize += p.EstimatedModuleSize
		}
	}
	if confirmedCount < 3 {
		return false
	}
	average := totalModuleSize / float64(confirmedCount)
	totalDeviation := 0.0
	for _, p := range f.possible {
		totalDeviation += math.Abs(p.EstimatedModuleSize - average)
	}
	return totalDeviation <= 0.05*totalModuleSize
}

// selectBestPatterns picks three finder-pattern candidates: with more than
// three, it drops those whose estimated module size lies further from the
// mean than max(20% of the mean, one standard deviation), then keeps the
// three whose module sizes are closest to the mean of the rest.
func (f *finderPatternFinder) selectBestPatterns() ([3]*FinderPattern, error) {
	startSize := len(f.possible)
	if startSize < 3 {
		return [3]*FinderPattern{}, ErrNotFound
	}

	possible := append([]*FinderPattern(nil), f.possible...)
	if startSize > 3 {
		totalModuleSize := 0.0
		square := 0.0
		for _, p := range possible {
			totalModuleSize += p.EstimatedModuleSize
			square += p.EstimatedModuleSize * p.EstimatedModuleSize
		}
		average := totalModuleSize / float64(len(possible))
		stdDev := math.Sqrt(square/float64(len(possible)) - average*average)
		sort.Slice(possible, func(a, b int) bool {
			dA := math.Abs(possible[a].EstimatedModuleSize - average)
			dB := math.Abs(possible[b].EstimatedModuleSize - average)
			return dA < dB
		})
		limit := math.Max(0.2*average, stdDev)
		for i := 0; i < len(possible) && len(possible) > 3; i++ {
			pattern := possible[i]
			if math.Abs(pattern.EstimatedModuleSize-average) > limit {
				possible = append(possible[:i], possible[i+1:]...)
				i--
			}
		}
	}

	if len(possible) > 3 {
		totalModuleSize := 0.0
		for _, p := range possible {
			totalModuleSize += p.EstimatedModuleSize
		}
		average := totalModuleSize / float64(len(possible))
		sort.Slice(possible, func(a, b int) bool {
			return centerDist(possible[a], average) < centerDist(possible[b], average)
		})
		possible = possible[:3]
	}

	return [3]*FinderPattern{possible[0], possible[1], possible[2]}, nil
}

func centerDist(p *FinderPattern, average float64) float64 {
	return math.Abs(p.EstimatedModuleSize - average)
}

func distance(a, b *FinderPattern) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// orderBestPatterns returns (bottomLeft, topLeft, topRight) ordered by
// chirality: the top-left pattern is the one opposite the longest side of
// the triangle the three centers form, and topRight/bottomLeft
// are then distinguished by which side of the topLeft->other line the
// third point falls on (a QR symbol's finder triad is always a right
// isoceles triangle with a consistent handedness).
func orderBestPatterns(patterns [3]*FinderPattern) [3]*FinderPattern {
	a, b, c := patterns[0], patterns[1], patterns[2]

	zeroOneDistance := distance(a, b)
	oneTwoDistance := distance(b, c)
	zeroTwoDistance := distance(a, c)

	var topLeft, topRight, bottomLeft *FinderPattern
	if oneTwoDistance >= zeroOneDistance && oneTwoDistance >= zeroTwoDistance {
		topLeft, topRight, bottomLeft = a, c, b
	} else if zeroTwoDistance >= oneTwoDistance && zeroTwoDistance >= zeroOneDistance {
		topLeft, topRight, bottomLeft = b, c, a
	} else {
		topLeft, topRight, bottomLeft = c, a, b
	}

	if crossProductZ(bottomLeft, topLeft, topRight) < 0 {
		topRight, bottomLeft = bottomLeft, topRight
	}

	return [3]*FinderPattern{bottomLeft, topLeft, topRight}
}

func crossProductZ(a, b, c *FinderPattern) float64 {
	bx, by := b.X, b.Y
	return (c.X-bx)*(a.Y-by) - (c.Y-by)*(a.X-bx)
}
