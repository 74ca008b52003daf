package binarize

import (
	"github.com/deepteams/barcode/internal/bitmatrix"
	"github.com/deepteams/barcode/internal/luminance"
)

const (
	blockSize          = 8
	minDynamicRange    = 24
	minDarkFloor       = 20 // average below which a low-contrast block counts as dark
)

// Hybrid is a locally-adaptive binarizer: it partitions the image into
// 8x8 blocks, derives a threshold per block from local contrast, smooths
// thresholds across the 5-neighbour cross, then thresholds each pixel
// against its (smoothed) block. It tolerates uneven lighting far better
// than GlobalHistogram at a modest extra cost, without the expense of a
// true per-pixel adaptive threshold.
type Hybrid struct {
	source luminance.Source

	blackMatrix *bitmatrix.BitMatrix
}

// NewHybrid wraps src.
func NewHybrid(src luminance.Source) *Hybrid {
	return &Hybrid{source: src}
}

// BlackRow extracts row y from the cached full matrix.
func (h *Hybrid) BlackRow(y int, reusable *bitmatrix.BitArray) (*bitmatrix.BitArray, error) {
	m, err := h.BlackMatrix()
	if err != nil {
		return nil, err
	}
	return m.GetRow(y, reusable), nil
}

// BlackMatrix computes and caches the full binarized matrix.
func (h *Hybrid) BlackMatrix() (*bitmatrix.BitMatrix, error) {
	if h.blackMatrix != nil {
		return h.blackMatrix, nil
	}
	width := h.source.Width()
	height := h.source.Height()
	if width < blockSize*5 || height < blockSize*5 {
		// Too small for meaningful blocks; fall back to a global threshold.
		gh := NewGlobalHistogram(h.source)
		m, err := gh.BlackMatrix()
		if err != nil {
			return nil, err
		}
		h.blackMatrix = m
		return m, nil
	}

	pix := h.source.Matrix()
	blocksX := (width + blockSize - 1) / blockSize
	blocksY := (height + blockSize - 1) / blockSize

	blackPoints := make([][]int, blocksY)
	for by := 0; by < blocksY; by++ {
		blackPoints[by] = make([]int, blocksX)
		for bx := 0; bx < blocksX; bx++ {
			blackPoints[by][bx] = blockThreshold(pix, width, height, bx, by)
		}
	}

	m := bitmatrix.NewBitMatrix(width, height)
	for by := 0; by < blocksY; by++ {
		for bx := 0; bx < blocksX; bx++ {
			threshold := smoothedThreshold(blackPoints, bx, by)
			thresholdBlock(pix, width, height, bx, by, threshold, m)
		}
	}
	h.blackMatrix = m
	return m, nil
}

// blockThreshold computes the average luminance, min and max, of the
// (bx,by)'th 8x8 block, returning the average when the block's range is at
// least minDynamicRange. A lower-contrast block returns its average if that
// is below minDarkFloor and half its minimum otherwise; neighbouring blocks
// are not consulted.
func blockThreshold(pix []byte, width, height, bx, by int) int {
	xMin := bx * blockSize
	yMin := by * blockSize
	xMax := xMin + blockSize
	if xMax > width {
		xMax = width
	}
	yMax := yMin + blockSize
	if yMax > height {
		yMax = height
	}

	sum, min, max := 0, 255, 0
	count := 0
	for y := yMin; y < yMax; y++ {
		off := y * width
		for x := xMin; x < xMax; x++ {
			v := int(pix[off+x])
			sum += v
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
			count++
		}
	}
	average := sum / count
	if max-min < minDynamicRange {
		// Low-contrast block: likely uniform. If it is also dark, assume it
		// is part of a black region rather than letting noise decide.
		if average < minDarkFloor {
			return average
		}
		return min / 2
	}
	return average
}

// smoothedThreshold averages block (bx,by)'s threshold with its four
// cardinal neighbours (falling back to itself at the image border).
func smoothedThreshold(blackPoints [][]int, bx, by int) int {
	blocksY := len(blackPoints)
	blocksX := len(blackPoints[0])

	sum := blackPoints[by][bx]
	count := 1
	if by > 0 {
		sum += blackPoints[by-1][bx]
		count++
	}
	if by < blocksY-1 {
		sum += blackPoints[by+1][bx]
		count++
	}
	if bx > 0 {
		sum += blackPoints[by][bx-1]
		count++
	}
	if bx < blocksX-1 {
		sum += blackPoints[by][bx+1]
		count++
	}
	return sum / count
}

func thresholdBlock(pix []byte, width, height, bx, by, threshold int, m *bitmatrix.BitMatrix) {
	xMin := bx * blockSize
	yMin := by * blockSize
	xMax := xMin + blockSize
	if xMax > width {
		xMax = width
	}
	yMax := yMin + blockSize
	if yMax > height {
		yMax = height
	}
	for y := yMin; y < yMax; y++ {
		off := y * width
		for x := xMin; x < xMax; x++ {
			if int(pix[off+x]) <= threshold {
				m.Set(x, y)
			}
		}
	}
}
