package decoder_test

import (
	"testing"

	"github.com/deepteams/barcode/internal/qrcode/decoder"
	"github.com/deepteams/barcode/internal/qrtest"
)

func TestDecodeRoundTrip(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		level decoder.ErrorCorrectionLevel
	}{
		{"level L", "HELLO", decoder.ErrorCorrectionL},
		{"level M", "QR", decoder.ErrorCorrectionM},
		{"level Q short", "Go", decoder.ErrorCorrectionQ},
		{"level H short", "Hi", decoder.ErrorCorrectionH},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			matrix, err := qrtest.EncodeSymbol(c.text, c.level)
			if err != nil {
				t.Fatalf("EncodeSymbol: %v", err)
			}
			result, err := decoder.Decode(matrix)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if result.Text != c.text {
				t.Errorf("Text = %q, want %q", result.Text, c.text)
			}
			if result.ECLevel != c.level.String() {
				t.Errorf("ECLevel = %q, want %q", result.ECLevel, c.level.String())
			}
		})
	}
}

func TestDecodeCorrectsDamagedModules(t *testing.T) {
	matrix, err := qrtest.EncodeSymbol("SURVIVE", decoder.ErrorCorrectionH)
	if err != nil {
		t.Fatalf("EncodeSymbol: %v", err)
	}

	// Flip a handful of data-region modules; level H tolerates ~30% damage
	// and this is well under that, so Reed-Solomon should still recover it.
	for _, p := range [][2]int{{9, 9}, {10, 10}, {11, 11}} {
		matrix.Flip(p[0], p[1])
	}

	result, err := decoder.Decode(matrix)
	if err != nil {
		t.Fatalf("Decode with damaged modules: %v", err)
	}
	if result.Text != "SURVIVE" {
		t.Errorf("Text = %q, want SURVIVE", result.Text)
	}
	if result.NumErrorsCorrected == 0 {
		t.Error("expected NumErrorsCorrected > 0 after flipping modules")
	}
}

func TestDecodeRejectsEmptyMatrix(t *testing.T) {
	matrix, err := qrtest.EncodeSymbol("X", decoder.ErrorCorrectionL)
	if err != nil {
		t.Fatalf("EncodeSymbol: %v", err)
	}
	matrix.Clear()

	if _, err := decoder.Decode(matrix); err == nil {
		t.Fatal("expected an error decoding a blank matrix")
	}
}
