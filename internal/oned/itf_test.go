package oned

import (
	"testing"

	"github.com/deepteams/barcode/internal/bitmatrix"
)

// buildITFRow renders an even-length digit string as Interleaved 2 of 5:
// start guard, pairs of digits interleaved bar-by-bar (one digit's five
// elements interleaved with the next digit's five), end guard.
func buildITFRow(digits string, moduleWidth int) *bitmatrix.BitArray {
	b := newRowBuilder(10 * moduleWidth)
	b.append(itfStartPattern, moduleWidth)
	for i := 0; i+1 < len(digits); i += 2 {
		black := itfPatterns[digits[i]-'0']
		white := itfPatterns[digits[i+1]-'0']
		pair := make([]int, 10)
		for k := 0; k < 5; k++ {
			pair[k*2] = black[k]
			pair[k*2+1] = white[k]
		}
		b.append(pair, moduleWidth)
	}
	b.append(itfEndPattern, moduleWidth)
	return b.build()
}

func TestITFReaderDecodeRow(t *testing.T) {
	digits := "0123456789"
	row := buildITFRow(digits, 3)

	result, err := (ITFReader{}).DecodeRow(0, row)
	if err != nil {
		t.Fatalf("DecodeRow: %v", err)
	}
	if result.Text != digits {
		t.Errorf("Text = %q, want %q", result.Text, digits)
	}
	if result.Format != "ITF" {
		t.Errorf("Format = %q, want ITF", result.Format)
	}
}

func TestITFReaderDecodesEvenLength(t *testing.T) {
	// ITF encodes digits in interleaved pairs, so a decoded text always has
	// an even number of digits; check that on a real two-digit decode.
	row := buildITFRow("01", 3)
	result, err := (ITFReader{}).DecodeRow(0, row)
	if err != nil {
		t.Fatalf("DecodeRow: %v", err)
	}
	if len(result.Text)%2 != 0 {
		t.Errorf("ITF text length must be even, got %q", result.Text)
	}
}
