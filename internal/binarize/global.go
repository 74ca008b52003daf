// Package binarize converts 8-bit greyscale luminance into 1-bit bitmaps.
//
// Two interchangeable strategies are provided: GlobalHistogram, a coarse
// single-threshold binarizer suitable for 1D row scanning, and Hybrid, a
// locally-adaptive binarizer suitable for 2D matrix symbologies under
// uneven lighting.
package binarize

import (
	"fmt"

	"github.com/deepteams/barcode/internal/bitmatrix"
	"github.com/deepteams/barcode/internal/luminance"
)

// ErrNotFound is returned when an image is too low-contrast to binarize.
var ErrNotFound = fmt.Errorf("binarize: not found: image too low-contrast")

const luminanceBuckets = 32

// GlobalHistogram binarizes by locating the valley between the two tallest
// buckets of a 32-bucket luminance histogram.
type GlobalHistogram struct {
	source luminance.Source

	blackMatrix *bitmatrix.BitMatrix
	luminances  []byte
}

// NewGlobalHistogram wraps src.
func NewGlobalHistogram(src luminance.Source) *GlobalHistogram {
	return &GlobalHistogram{source: src}
}

// BlackRow computes the black/white row y directly from luminance, without
// caching.
func (g *GlobalHistogram) BlackRow(y int, reusable *bitmatrix.BitArray) (*bitmatrix.BitArray, error) {
	row := g.source.Row(y, nil)
	width := len(row)
	var histogram [luminanceBuckets]int
	for x := 0; x < width; x++ {
		histogram[row[x]>>3]++
	}
	threshold, err := estimateThreshold(histogram[:])
	if err != nil {
		return nil, err
	}

	var out *bitmatrix.BitArray
	if reusable == nil || reusable.Size() < width {
		out = bitmatrix.NewBitArray(width)
	} else {
		out = reusable
		out.Clear()
	}
	for x := 0; x < width; x++ {
		if int(row[x]) < threshold {
			out.Set(x)
		}
	}
	return out, nil
}

// BlackMatrix computes and caches the full black/white matrix using an
// evenly spaced subset of rows to build one global histogram.
func (g *GlobalHistogram) BlackMatrix() (*bitmatrix.BitMatrix, error) {
	if g.blackMatrix != nil {
		return g.blackMatrix, nil
	}
	width := g.source.Width()
	height := g.source.Height()
	pix := g.source.Matrix()

	var histogram [luminanceBuckets]int
	// Sample every (height/11)-th row from the top, at most 22 rows, rather
	// than every row of the image.
	const rowsToSample = 11
	rowStep := height / rowsToSample
	if rowStep < 1 {
		rowStep = 1
	}
	rowsSampled := 0
	for y := 0; y < height && rowsSampled < rowsToSample*2; y += rowStep {
		off := y * width
		for x := 0; x < width; x++ {
			histogram[pix[off+x]>>3]++
		}
		rowsSampled++
	}
	threshold, err := estimateThreshold(histogram[:])
	if err != nil {
		return nil, err
	}

	m := bitmatrix.NewBitMatrix(width, height)
	for y := 0; y < height; y++ {
		off := y * width
		for x := 0; x < width; x++ {
			if int(pix[off+x]) < threshold {
				m.Set(x, y)
			}
		}
	}
	g.blackMatrix = m
	return m, nil
}

// estimateThreshold finds the valley between the two tallest histogram
// buckets. Fails if the peaks are too close together (low contrast image).
func estimateThreshold(histogram []int) (int, error) {
	numBuckets := len(histogram)
	maxBucketCount := 0
	firstPeak, firstPeakCount := 0, 0
	for i, count := range histogram {
		if count > firstPeakCount {
			firstPeak = i
			firstPeakCount = count
		}
		if count > maxBucketCount {
			maxBucketCount = count
		}
	}
	secondPeak, secondPeakCount := 0, 0
	for i, count := range histogram {
		distToBiggest := i - firstPeak
		score := count * distToBiggest * distToBiggest
		if score > secondPeakCount {
			secondPeak = i
			secondPeakCount = score
		}
	}
	if secondPeakCount == 0 {
		// Every sample fell in one bucket: there is no second peak at all.
		return 0, ErrNotFound
	}
	if firstPeak > secondPeak {
		firstPeak, secondPeak = secondPeak, firstPeak
	}

	const minDistinctPeaks = 2 // minimum bucket distance between peaks
	if secondPeak-firstPeak <= numBuckets/16 && secondPeak-firstPeak < minDistinctPeaks+1 {
		return 0, ErrNotFound
	}

	// Find the valley between the two peaks with the lowest count.
	bestValley := secondPeak - 1
	bestValleyScore := -1
	for i := secondPeak - 1; i > firstPeak; i-- {
		fromFirst := i - firstPeak
		score := fromFirst * fromFirst * (secondPeak - i) * (histogram[firstPeak] - histogram[i])
		if score > bestValleyScore {
			bestValley = i
			bestValleyScore = score
		}
	}
	return bestValley << 3, nil
}
