// Package aztec is a placeholder for Aztec Code symbol decoding.
//
// A full implementation needs its own bullseye-finder detector (grounded
// differently than QR's three-square finder), its own mode-message
// decode, and a Reed-Solomon field sized per symbol variant. That detector
// shape is documented in DESIGN.md as the reason this stays a stub:
// Reader exists only so the multi-format dispatcher and Format enum have
// a concrete type for every symbology named by the top-level scope.
package aztec

import (
	"errors"

	"github.com/deepteams/barcode/internal/bitmatrix"
)

// ErrNotFound is returned unconditionally by Reader.Decode.
var ErrNotFound = errors.New("aztec: decoding not implemented")

// Reader implements the 2D-symbology Reader interface shared with
// datamatrix and pdf417.
type Reader struct{}

// Decode always fails; see package doc comment.
func (Reader) Decode(*bitmatrix.BitMatrix) (string, error) {
	return "", ErrNotFound
}
