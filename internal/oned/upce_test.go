package oned

import "testing"

func TestExpandUPCE(t *testing.T) {
	cases := []struct {
		numberSystem int
		compressed   string
		checkDigit   int
		wantPrefix   string // 11 digits: number system + 10 expanded digits
	}{
		{0, "123450", 7, "01200000345"},
		{0, "123451", 7, "01210000345"},
		{0, "123452", 7, "01220000345"},
		{0, "123453", 7, "01230000045"},
		{0, "123454", 7, "01234000005"},
		{0, "123459", 7, "01234500009"},
	}
	for _, c := range cases {
		got, err := expandUPCE(c.numberSystem, c.compressed, c.checkDigit)
		if err != nil {
			t.Fatalf("expandUPCE(%d,%q,%d): %v", c.numberSystem, c.compressed, c.checkDigit, err)
		}
		want := c.wantPrefix + string(byte('0'+c.checkDigit))
		if got != want {
			t.Errorf("expandUPCE(%d,%q,%d) = %q, want %q", c.numberSystem, c.compressed, c.checkDigit, got, want)
		}
	}
}

func TestUPCEReaderDecodeRow(t *testing.T) {
	// compressed "12345" + last digit 3 expands (case '3': first 3 + 00000
	// + last 2) to number-system-prefixed UPC-A "0"+"123"+"00000"+"45".
	numberSystem := 0
	compressed := "123453"
	upcAPrefix := "0" + "123" + "00000" + "45" // 11 digits before check
	checkDigit := upcEANChecksum(upcAPrefix)

	row := buildUPCERow(numberSystem, compressed, checkDigit, 2)
	result, err := (UPCEReader{}).DecodeRow(0, row)
	if err != nil {
		t.Fatalf("DecodeRow: %v", err)
	}
	want := "0" + upcAPrefix + string(byte('0'+checkDigit))
	if result.Text != want {
		t.Errorf("Text = %q, want %q", result.Text, want)
	}
	if result.Format != "UPC_E" {
		t.Errorf("Format = %q, want UPC_E", result.Format)
	}
}
