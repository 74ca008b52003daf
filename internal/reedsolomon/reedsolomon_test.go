package reedsolomon

import (
	"math/rand"
	"testing"
)

func TestGFArithmeticBasics(t *testing.T) {
	f := QRField
	for a := 1; a < 256; a++ {
		if f.Multiply(a, f.Inverse(a)) != 1 {
			t.Fatalf("a * inverse(a) != 1 for a=%d", a)
		}
	}
	if f.Multiply(0, 5) != 0 || f.Multiply(5, 0) != 0 {
		t.Fatal("multiply by zero should be zero")
	}
	if f.Add(7, 7) != 0 {
		t.Fatal("a xor a should be zero")
	}
}

func encodeMessage(t *testing.T, data []int, numEC int) []int {
	t.Helper()
	ec := Encode(QRField, data, numEC)
	out := make([]int, len(data)+len(ec))
	copy(out, data)
	copy(out[len(data):], ec)
	return out
}

func TestRoundTripNoErrors(t *testing.T) {
	data := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	numEC := 10
	codeword := encodeMessage(t, data, numEC)
	dec := NewDecoder(QRField)
	if err := dec.Decode(codeword, numEC); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	for i := range data {
		if codeword[i] != data[i] {
			t.Fatalf("data[%d] = %d, want %d", i, codeword[i], data[i])
		}
	}
}

func TestRoundTripWithCorrectableErrors(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	data := make([]int, 16)
	for i := range data {
		data[i] = rng.Intn(256)
	}
	numEC := 10 // corrects up to 5 symbol errors
	maxCorrectable := numEC / 2

	for trial := 0; trial < 20; trial++ {
		codeword := encodeMessage(t, data, numEC)
		corrupted := append([]int(nil), codeword...)
		positions := rng.Perm(len(corrupted))[:maxCorrectable]
		for _, p := range positions {
			orig := corrupted[p]
			var v int
			for {
				v = rng.Intn(256)
				if v != orig {
					break
				}
			}
			corrupted[p] = v
		}
		dec := NewDecoder(QRField)
		if err := dec.Decode(corrupted, numEC); err != nil {
			t.Fatalf("trial %d: Decode: %v", trial, err)
		}
		for i := range data {
			if corrupted[i] != data[i] {
				t.Fatalf("trial %d: data[%d] = %d, want %d", trial, i, corrupted[i], data[i])
			}
		}
	}
}

func TestTooManyErrorsFailsOrStaysOriginal(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	data := make([]int, 16)
	for i := range data {
		data[i] = rng.Intn(256)
	}
	numEC := 10
	tooMany := numEC/2 + 1

	for trial := 0; trial < 20; trial++ {
		codeword := encodeMessage(t, data, numEC)
		corrupted := append([]int(nil), codeword...)
		positions := rng.Perm(len(corrupted))[:tooMany]
		for _, p := range positions {
			orig := corrupted[p]
			var v int
			for {
				v = rng.Intn(256)
				if v != orig {
					break
				}
			}
			corrupted[p] = v
		}
		dec := NewDecoder(QRField)
		err := dec.Decode(corrupted, numEC)
		if err == nil {
			// If it claims success, the recovered message must actually be
			// correct -- a decoder must never report success on wrong data.
			for i := range data {
				if corrupted[i] != data[i] {
					t.Fatalf("trial %d: decoder reported success but produced wrong data at %d: got %d want %d",
						trial, i, corrupted[i], data[i])
				}
			}
		}
	}
}
