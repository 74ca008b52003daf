package binarize

import (
	"fmt"

	"github.com/deepteams/barcode/internal/bitmatrix"
	"github.com/deepteams/barcode/internal/luminance"
)

// Binarizer converts a luminance source to 1-bit rows/matrix.
type Binarizer interface {
	BlackRow(y int, reusable *bitmatrix.BitArray) (*bitmatrix.BitArray, error)
	BlackMatrix() (*bitmatrix.BitMatrix, error)
}

// Factory builds a Binarizer over a given source; BinaryBitmap holds one so
// it can reconstruct a binarizer of the same kind over a rotated or cropped
// view of its source.
type Factory func(luminance.Source) Binarizer

// BinaryBitmap pairs a luminance source with a Binarizer and caches both the
// full black matrix and every black row requested of it.
//
// This type caches every requested row (bounded by the image height) and is
// not safe for concurrent use -- callers needing concurrency construct one
// BinaryBitmap per decode instead of sharing one.
type BinaryBitmap struct {
	source    luminance.Source
	binarizer Binarizer
	factory   Factory

	matrix   *bitmatrix.BitMatrix
	rowCache map[int]*bitmatrix.BitArray
}

// NewBinaryBitmap builds a BinaryBitmap over source using binarizer built by
// factory.
func NewBinaryBitmap(source luminance.Source, factory Factory) *BinaryBitmap {
	return &BinaryBitmap{
		source:    source,
		binarizer: factory(source),
		factory:   factory,
		rowCache:  make(map[int]*bitmatrix.BitArray),
	}
}

func (b *BinaryBitmap) Width() int  { return b.source.Width() }
func (b *BinaryBitmap) Height() int { return b.source.Height() }

// BlackRow returns (and caches) the binarized row y.
func (b *BinaryBitmap) BlackRow(y int) (*bitmatrix.BitArray, error) {
	if y < 0 || y >= b.Height() {
		return nil, fmt.Errorf("binarize: illegal argument: row %d out of bounds for height %d", y, b.Height())
	}
	if row, ok := b.rowCache[y]; ok {
		return row, nil
	}
	row, err := b.binarizer.BlackRow(y, nil)
	if err != nil {
		return nil, err
	}
	b.rowCache[y] = row
	return row, nil
}

// BlackMatrix returns (and caches) the full binarized matrix.
func (b *BinaryBitmap) BlackMatrix() (*bitmatrix.BitMatrix, error) {
	if b.matrix != nil {
		return b.matrix, nil
	}
	m, err := b.binarizer.BlackMatrix()
	if err != nil {
		return nil, err
	}
	b.matrix = m
	return m, nil
}

// RotateSupported reports whether the underlying source can be rotated.
func (b *BinaryBitmap) RotateSupported() bool { return b.source.RotateSupported() }

// RotateCounterClockwise returns a fresh BinaryBitmap over the source
// rotated 90 degrees, with its own binarizer and empty caches.
func (b *BinaryBitmap) RotateCounterClockwise() (*BinaryBitmap, error) {
	rotated, err := b.source.RotateCounterClockwise()
	if err != nil {
		return nil, err
	}
	return NewBinaryBitmap(rotated, b.factory), nil
}

// CropSupported reports whether the underlying source can be cropped.
func (b *BinaryBitmap) CropSupported() bool { return b.source.CropSupported() }

// Crop returns a fresh BinaryBitmap over the cropped sub-rectangle.
func (b *BinaryBitmap) Crop(left, top, width, height int) (*BinaryBitmap, error) {
	cropped, err := b.source.Crop(left, top, width, height)
	if err != nil {
		return nil, err
	}
	return NewBinaryBitmap(cropped, b.factory), nil
}
