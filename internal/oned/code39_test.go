package oned

import "testing"

func TestPatternToCharRoundTrip(t *testing.T) {
	for i, want := range code39Alphabet {
		got, err := patternToChar(code39CharacterEncodings[i])
		if err != nil {
			t.Fatalf("patternToChar(%#x): %v", code39CharacterEncodings[i], err)
		}
		if got != byte(want) {
			t.Errorf("patternToChar(%#x) = %c, want %c", code39CharacterEncodings[i], got, want)
		}
	}
}

func TestPatternToCharUnknown(t *testing.T) {
	if _, err := patternToChar(0x1FF); err == nil {
		t.Fatal("expected error for a pattern not in the alphabet")
	}
}

func TestDecodeExtended(t *testing.T) {
	cases := []struct {
		encoded string
		want    string
	}{
		{"+A", "a"},
		{"+Z", "z"},
		{"$A", "\x01"},
		{"%U", "\x00"},
		{"%V", "@"},
		{"/A", "!"},
		{"/Z", ":"},
		{"HELLO", "HELLO"},
	}
	for _, c := range cases {
		got, err := decodeExtended(c.encoded)
		if err != nil {
			t.Fatalf("decodeExtended(%q): %v", c.encoded, err)
		}
		if got != c.want {
			t.Errorf("decodeExtended(%q) = %q, want %q", c.encoded, got, c.want)
		}
	}
}

func TestDecodeExtendedTrailingEscapeErrors(t *testing.T) {
	if _, err := decodeExtended("AB+"); err == nil {
		t.Fatal("expected error for a trailing escape character with no pair")
	}
}
