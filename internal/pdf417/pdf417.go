// Package pdf417 is a placeholder for PDF417 symbol decoding.
//
// PDF417 is a stacked-row linear symbology with its own row-indicator
// codewords and a 929-codeword alphabet unrelated to QR's bit-matrix
// model; a real decoder would be closer in shape to internal/oned than to
// internal/qrcode. Reader exists only so the multi-format dispatcher and
// Format enum have a concrete type for every symbology named by the
// top-level scope.
package pdf417

import (
	"errors"

	"github.com/deepteams/barcode/internal/bitmatrix"
)

// ErrNotFound is returned unconditionally by Reader.Decode.
var ErrNotFound = errors.New("pdf417: decoding not implemented")

// Reader implements the 2D-symbology Reader interface shared with
// datamatrix and aztec.
type Reader struct{}

// Decode always fails; see package doc comment.
func (Reader) Decode(*bitmatrix.BitMatrix) (string, error) {
	return "", ErrNotFound
}
