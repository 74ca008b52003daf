package oned

import (
	"testing"

	"github.com/deepteams/barcode/internal/bitmatrix"
)

// buildCode128Row renders a codeset-B Code 128 symbol carrying one data
// codeword (so the text decodes to a single character), computing the
// trailing check codeword the same way DecodeRow's checksum validation
// expects: (startCode + 1*dataCode) % 103.
func buildCode128Row(dataCode int, moduleWidth int) *bitmatrix.BitArray {
	checkCode := (code128CodeStartB + 1*dataCode) % 103

	b := newRowBuilder(10 * moduleWidth)
	b.append(code128StartPatternB[:], moduleWidth)
	b.append(code128Patterns[dataCode][:], moduleWidth)
	b.append(code128Patterns[checkCode][:], moduleWidth)
	b.append(code128Patterns[code128CodeStop][:], moduleWidth)
	b.append([]int{2}, moduleWidth)
	return b.build()
}

func TestCode128ReaderDecodeRow(t *testing.T) {
	dataCode := int('A' - ' ') // codeset B value for 'A'
	row := buildCode128Row(dataCode, 3)

	result, err := (Code128Reader{}).DecodeRow(0, row)
	if err != nil {
		t.Fatalf("DecodeRow: %v", err)
	}
	if result.Text != "A" {
		t.Errorf("Text = %q, want %q", result.Text, "A")
	}
	if result.Format != "CODE_128" {
		t.Errorf("Format = %q, want CODE_128", result.Format)
	}
}

func TestCode128ReaderRejectsBadChecksum(t *testing.T) {
	dataCode := int('A' - ' ')
	row := buildCode128Row(dataCode, 3)
	// Corrupt the check codeword by drawing the data code's pattern in its
	// place: the check value read (33) no longer matches the checksum
	// computed from the start and data codes (34).
	badRow := buildCode128RowWithExplicitCheck(dataCode, dataCode, 3)

	if _, err := (Code128Reader{}).DecodeRow(0, row); err != nil {
		t.Fatalf("valid row should decode: %v", err)
	}
	if _, err := (Code128Reader{}).DecodeRow(0, badRow); err == nil {
		t.Fatal("expected checksum error for mismatched check codeword")
	}
}

// buildCode128RowWithExplicitCheck is like buildCode128Row but lets the
// caller supply an arbitrary (possibly wrong) check codeword value.
func buildCode128RowWithExplicitCheck(dataCode, checkCode int, moduleWidth int) *bitmatrix.BitArray {
	b := newRowBuilder(10 * moduleWidth)
	b.append(code128StartPatternB[:], moduleWidth)
	b.append(code128Patterns[dataCode][:], moduleWidth)
	b.append(code128Patterns[checkCode][:], moduleWidth)
	b.append(code128Patterns[code128CodeStop][:], moduleWidth)
	b.append([]int{2}, moduleWidth)
	return b.build()
}
