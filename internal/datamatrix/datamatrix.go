// Package datamatrix is a placeholder for Data Matrix symbol decoding.
//
// Full ECC200 decode (an L-shaped finder pattern instead of QR's three
// squares, its own Reed-Solomon field, and its own bit-placement rules) is
// out of scope for this implementation; Reader exists only so the
// multi-format dispatcher and Format enum have a concrete type to
// reference for every symbology named by the top-level scope, the same
// way the teacher keeps a named but unimplemented codec path documented
// rather than silently absent.
package datamatrix

import (
	"errors"

	"github.com/deepteams/barcode/internal/bitmatrix"
)

// ErrNotFound is returned unconditionally by Reader.Decode.
var ErrNotFound = errors.New("datamatrix: decoding not implemented")

// Reader implements the 2D-symbology Reader interface shared with aztec
// and pdf417.
type Reader struct{}

// Decode always fails; see package doc comment.
func (Reader) Decode(*bitmatrix.BitMatrix) (string, error) {
	return "", ErrNotFound
}
