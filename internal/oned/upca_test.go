package oned

import "testing"

func TestUPCAReaderDecodeRow(t *testing.T) {
	digits := ean13WithCheckDigit("003600029145") // UPC-A 036000291452 as EAN-13
	row := buildEAN13Row(digits, 2)

	result, err := (UPCAReader{}).DecodeRow(0, row)
	if err != nil {
		t.Fatalf("DecodeRow: %v", err)
	}
	if want := digits[1:]; result.Text != want {
		t.Errorf("Text = %q, want %q", result.Text, want)
	}
	if result.Format != "UPC_A" {
		t.Errorf("Format = %q, want UPC_A", result.Format)
	}
}

func TestUPCAReaderRejectsNonZeroLeadingDigit(t *testing.T) {
	digits := ean13WithCheckDigit("400638133393")
	row := buildEAN13Row(digits, 2)

	if _, err := (UPCAReader{}).DecodeRow(0, row); err == nil {
		t.Fatal("expected error for EAN-13 text without leading zero")
	}
}

func TestMaybeConvertEAN13ToUPCA(t *testing.T) {
	result := &RowResult{Format: "EAN_13", Text: "0036000291452"}
	maybeConvertEAN13ToUPCA(result)
	if result.Format != "UPC_A" || result.Text != "036000291452" {
		t.Errorf("got Format=%q Text=%q", result.Format, result.Text)
	}

	notConverted := &RowResult{Format: "EAN_13", Text: "4006381333931"}
	maybeConvertEAN13ToUPCA(notConverted)
	if notConverted.Format != "EAN_13" {
		t.Errorf("non-zero-leading EAN-13 should not convert, got Format=%q", notConverted.Format)
	}
}
