package barcode

import (
	"github.com/deepteams/barcode/internal/binarize"
	"github.com/deepteams/barcode/internal/multi"
)

func decodeMultiImpl(bitmap *binarize.BinaryBitmap, hints Hints) ([]*Result, error) {
	var results []*Result

	if hints.wantsQR() {
		matrix, err := bitmap.BlackMatrix()
		if err == nil {
			for _, f := range multi.DecodeAllQR(matrix) {
				results = append(results, qrResultToResult(f.Decoded, f.Det))
			}
		}
	}

	if hints.wants1D() {
		for _, f := range multi.DecodeAll1D(bitmap, hints.oneDFormatNames()) {
			results = append(results, oneDResultToResult(f.Row))
		}
	}

	if len(results) == 0 {
		return nil, ErrNotFound
	}
	return results, nil
}
