package oned

import (
	"testing"

	"github.com/deepteams/barcode/internal/binarize"
	"github.com/deepteams/barcode/internal/luminance"
)

// bitmapFromRow repeats a single scanline's worth of bits down several rows
// to build a BinaryBitmap suitable for Decode/DecodeOneD, mimicking a
// barcode photographed with negligible vertical distortion.
func bitmapFromRow(row []bool, height int) (*binarize.BinaryBitmap, error) {
	width := len(row)
	pix := make([]byte, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if row[x] {
				pix[y*width+x] = 0
			} else {
				pix[y*width+x] = 255
			}
		}
	}
	src, err := luminance.NewBase(pix, width, height)
	if err != nil {
		return nil, err
	}
	return binarize.NewBinaryBitmap(src, func(s luminance.Source) binarize.Binarizer {
		return binarize.NewHybrid(s)
	}), nil
}

func bitArrayToBools(row interface{ Size() int }, get func(int) bool) []bool {
	size := row.Size()
	out := make([]bool, size)
	for i := 0; i < size; i++ {
		out[i] = get(i)
	}
	return out
}

func TestMultiFormatOneDReaderDecodesEAN13(t *testing.T) {
	digits := ean13WithCheckDigit("400638133393")
	row := buildEAN13Row(digits, 2)
	bits := bitArrayToBools(row, row.Get)

	bitmap, err := bitmapFromRow(bits, 21)
	if err != nil {
		t.Fatalf("bitmapFromRow: %v", err)
	}

	result, err := Decode(bitmap, "EAN_13")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if result.Text != digits {
		t.Errorf("Text = %q, want %q", result.Text, digits)
	}
}

func TestMultiFormatOneDReaderRestrictsFormats(t *testing.T) {
	digits := ean13WithCheckDigit("400638133393")
	row := buildEAN13Row(digits, 2)
	bits := bitArrayToBools(row, row.Get)

	bitmap, err := bitmapFromRow(bits, 21)
	if err != nil {
		t.Fatalf("bitmapFromRow: %v", err)
	}

	if _, err := Decode(bitmap, "CODE_39"); err == nil {
		t.Fatal("expected not-found when EAN-13 isn't in the allowed format list")
	}
}
