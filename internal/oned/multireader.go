package oned

import (
	"github.com/deepteams/barcode/internal/binarize"
	"github.com/deepteams/barcode/internal/bitmatrix"
)

// MultiFormatOneDReader dispatches a row to each configured symbology
// reader in turn, returning the first match. EAN-13 is always tried ahead
// of UPC-A/UPC-E since a UPC-A symbol is wire-compatible with EAN-13 (just
// a leading zero) and the EAN-13 reader already recognizes it.
type MultiFormatOneDReader struct {
	readers []RowDecoder
}

// NewMultiFormatOneDReader builds a reader trying every supported 1D
// symbology. Pass formats to restrict to a subset; an empty list enables
// all of them.
func NewMultiFormatOneDReader(formats ...string) *MultiFormatOneDReader {
	want := func(name string) bool {
		if len(formats) == 0 {
			return true
		}
		for _, f := range formats {
			if f == name {
				return true
			}
		}
		return false
	}

	var readers []RowDecoder
	if want("EAN_13") || want("UPC_A") {
		readers = append(readers, EAN13Reader{})
	}
	if want("EAN_8") {
		readers = append(readers, EAN8Reader{})
	}
	if want("UPC_E") {
		readers = append(readers, UPCEReader{})
	}
	if want("CODE_39") {
		readers = append(readers, Code39Reader{})
	}
	if want("CODE_128") {
		readers = append(readers, Code128Reader{})
	}
	if want("ITF") {
		readers = append(readers, ITFReader{})
	}
	return &MultiFormatOneDReader{readers: readers}
}

func (r *MultiFormatOneDReader) DecodeRow(rowNumber int, row *bitmatrix.BitArray) (*RowResult, error) {
	for _, reader := range r.readers {
		result, err := reader.DecodeRow(rowNumber, row)
		if err == nil {
			maybeConvertEAN13ToUPCA(result)
			return result, nil
		}
	}
	return nil, ErrNotFound
}

// Decode scans bitmap for any configured 1D symbology, and on failure
// retries against a 90-degree rotation of the image to catch symbols
// photographed sideways.
func Decode(bitmap *binarize.BinaryBitmap, formats ...string) (*RowResult, error) {
	reader := NewMultiFormatOneDReader(formats...)
	if result, err := DecodeOneD(bitmap, reader); err == nil {
		return result, nil
	}
	if !bitmap.RotateSupported() {
		return nil, ErrNotFound
	}

	rotated, err := bitmap.RotateCounterClockwise()
	if err != nil {
		return nil, ErrNotFound
	}
	result, err := DecodeOneD(rotated, reader)
	if err != nil {
		return nil, ErrNotFound
	}
	// A point (x,y) in the rotated (width,height)-swapped image is
	// (rotatedHeight-1-y, x) in the original orientation, so StartX and
	// EndX, positions along a rotated row, are already original y
	// coordinates; RowNumber stays the row index in the rotated image.
	return result, nil
}
