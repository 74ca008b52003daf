// Package multi locates more than one barcode symbol in a single image.
//
// QR Codes are found by repeated detect-decode-blank passes over the
// shared black matrix: each successful detect's bounding region is
// cleared before the next pass, so a previously found finder pattern
// cannot be redetected. 1D symbols are instead found by a separate scan of
// each of several horizontal bands of the image, since unlike QR's
// finder-pattern search a 1D row scan has no natural "already consumed"
// region to blank.
package multi

import (
	"github.com/deepteams/barcode/internal/binarize"
	"github.com/deepteams/barcode/internal/bitmatrix"
	"github.com/deepteams/barcode/internal/oned"
	"github.com/deepteams/barcode/internal/qrcode/decoder"
	"github.com/deepteams/barcode/internal/qrcode/detector"
)

// MaxSymbols caps how many of each kind DecodeAllQR/DecodeAll1D will
// return, guarding against a malformed matrix producing an unbounded
// detect/blank loop.
const MaxSymbols = 16

// QRFound pairs a decoded QR result with the detector state that located
// it, for the root package to build a Result from.
type QRFound struct {
	Decoded *decoder.DecodedResult
	Det     *detector.Result
}

// DecodeAllQR repeatedly detects and decodes QR symbols from matrix,
// blanking out each one's bounding box before searching for the next.
func DecodeAllQR(matrix *bitmatrix.BitMatrix) []QRFound {
	var found []QRFound
	for i := 0; i < MaxSymbols; i++ {
		det, err := detector.Detect(matrix)
		if err != nil {
			break
		}
		decoded, err := decoder.Decode(det.Bits)
		if err != nil {
			blankFinderRegion(matrix, det)
			continue
		}
		found = append(found, QRFound{Decoded: decoded, Det: det})
		blankFinderRegion(matrix, det)
	}
	return found
}

// blankFinderRegion clears the square bounding the three finder patterns
// (expanded by eight module widths) so a repeat detect pass can't re-find the
// same symbol.
func blankFinderRegion(matrix *bitmatrix.BitMatrix, det *detector.Result) {
	minX, minY := det.TopLeft.X, det.TopLeft.Y
	maxX, maxY := det.TopLeft.X, det.TopLeft.Y
	for _, p := range []struct{ X, Y float64 }{
		{det.TopLeft.X, det.TopLeft.Y},
		{det.TopRight.X, det.TopRight.Y},
		{det.BottomLeft.X, det.BottomLeft.Y},
	} {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	margin := det.TopLeft.EstimatedModuleSize * 8
	left := int(minX - margin)
	top := int(minY - margin)
	width := int(maxX-minX+2*margin) + 1
	height := int(maxY-minY+2*margin) + 1
	if width < 1 || height < 1 {
		return
	}
	matrix.ClearRegion(left, top, width, height)
}

// OneDFound pairs a decoded row result with the band of the image it was
// found in.
type OneDFound struct {
	Row *oned.RowResult
}

// DecodeAll1D splits bitmap into horizontal bands and runs a 1D decode
// independently in each, so that multiple linear symbols stacked
// vertically in one image are each found once rather than only the first
// one DecodeOneD's middle-out scan happens to hit.
func DecodeAll1D(bitmap *binarize.BinaryBitmap, formats []string) []OneDFound {
	height := bitmap.Height()
	if height == 0 {
		return nil
	}
	const bands = 8
	bandHeight := height / bands
	if bandHeight < 1 {
		bandHeight = height
	}

	var found []OneDFound
	seen := map[string]bool{}
	for start := 0; start+1 <= height; start += bandHeight {
		end := start + bandHeight
		if end > height {
			end = height
		}
		if end-start < 1 {
			continue
		}
		cropped, err := bitmap.Crop(0, start, bitmap.Width(), end-start)
		if err != nil {
			continue
		}
		row, err := oned.Decode(cropped, formats...)
		if err != nil {
			continue
		}
		key := row.Format + ":" + row.Text
		if seen[key] {
			continue
		}
		seen[key] = true
		row.RowNumber += start
		found = append(found, OneDFound{Row: row})
		if len(found) >= MaxSymbols {
			break
		}
	}
	return found
}
