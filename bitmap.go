package barcode

import (
	"github.com/deepteams/barcode/internal/binarize"
	"github.com/deepteams/barcode/internal/luminance"
	"github.com/deepteams/barcode/internal/pool"
)

// NewBitmapFromGray wraps an 8-bit grayscale pixel buffer (row-major, one
// byte per pixel, 0=black..255=white) as a BinaryBitmap ready for Decode.
func NewBitmapFromGray(pix []byte, width, height int) (*binarize.BinaryBitmap, error) {
	src, err := luminance.NewBase(pix, width, height)
	if err != nil {
		return nil, err
	}
	return binarize.NewBinaryBitmap(src, defaultBinarizerFactory), nil
}

// NewBitmapFromRows wraps a row-accessor function as a BinaryBitmap,
// useful when the caller's pixel source isn't already a contiguous byte
// slice (e.g. image.Gray with a Stride different from width).
func NewBitmapFromRows(rows func(y int) []byte, width, height int) (*binarize.BinaryBitmap, error) {
	pix := make([]byte, width*height)
	scratch := pool.Get(width)
	defer pool.Put(scratch)
	for y := 0; y < height; y++ {
		row := rows(y)
		if len(row) != width {
			n := copy(scratch[:width], row)
			for i := n; i < width; i++ {
				scratch[i] = 0
			}
			row = scratch[:width]
		}
		copy(pix[y*width:(y+1)*width], row)
	}
	return NewBitmapFromGray(pix, width, height)
}

func defaultBinarizerFactory(src luminance.Source) binarize.Binarizer {
	return binarize.NewHybrid(src)
}
