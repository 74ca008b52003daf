package oned

import "testing"

func TestEAN13ReaderDecodeRow(t *testing.T) {
	digits := ean13WithCheckDigit("400638133393") // real-world GTIN prefix
	row := buildEAN13Row(digits, 2)

	result, err := (EAN13Reader{}).DecodeRow(0, row)
	if err != nil {
		t.Fatalf("DecodeRow: %v", err)
	}
	if result.Text != digits {
		t.Errorf("Text = %q, want %q", result.Text, digits)
	}
	if result.Format != "EAN_13" {
		t.Errorf("Format = %q, want EAN_13", result.Format)
	}
}

func TestEAN13ReaderRejectsBadChecksum(t *testing.T) {
	digits := ean13WithCheckDigit("400638133393")
	bad := digits[:12] + "9" // wrong check digit, assuming it's not already 9
	if bad[12] == digits[12] {
		bad = digits[:12] + "8"
	}
	row := buildEAN13Row(bad, 2)

	if _, err := (EAN13Reader{}).DecodeRow(0, row); err == nil {
		t.Fatal("expected checksum error, got nil")
	}
}

func TestDetermineFirstDigit(t *testing.T) {
	for want := byte('0'); want <= '9'; want++ {
		got, err := determineFirstDigit(firstDigitEncodings[want-'0'])
		if err != nil {
			t.Fatalf("digit %c: %v", want, err)
		}
		if got != want {
			t.Errorf("determineFirstDigit(%#x) = %c, want %c", firstDigitEncodings[want-'0'], got, want)
		}
	}
}

func TestUPCEANChecksum(t *testing.T) {
	cases := []struct {
		digits string
		want   int
	}{
		{"400638133393", 1},
		{"03600029145", 2},
	}
	for _, c := range cases {
		if got := upcEANChecksum(c.digits); got != c.want {
			t.Errorf("upcEANChecksum(%q) = %d, want %d", c.digits, got, c.want)
		}
	}
}
