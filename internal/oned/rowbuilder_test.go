package oned

import "github.com/deepteams/barcode/internal/bitmatrix"

// rowBuilder assembles a synthetic scanline by appending alternating
// black/white runs, for constructing test rows out of the same pattern
// tables the readers decode against.
type rowBuilder struct {
	widths []int
	black  bool
}

func newRowBuilder(quietZone int) *rowBuilder {
	return &rowBuilder{widths: []int{quietZone}, black: false}
}

// append adds one run per element of pattern, that many modules of
// moduleWidth pixels each; build alternates the runs' colors, starting with
// black after the quiet zone.
func (b *rowBuilder) append(pattern []int, moduleWidth int) {
	for _, units := range pattern {
		b.widths = append(b.widths, units*moduleWidth)
	}
}

func (b *rowBuilder) build() *bitmatrix.BitArray {
	total := 0
	for _, w := range b.widths {
		total += w
	}
	row := bitmatrix.NewBitArray(total + 8)
	pos := b.widths[0] // leading quiet zone, white
	black := true
	for _, w := range b.widths[1:] {
		if black {
			for k := 0; k < w; k++ {
				row.Set(pos + k)
			}
		}
		pos += w
		black = !black
	}
	return row
}

// buildEAN13Row renders a 13-digit EAN-13 payload (digits[12] the check
// digit) at the given per-module pixel width, reusing lAndGPatterns and
// firstDigitEncodings so the pixel widths are exactly what EAN13Reader
// expects rather than a hand re-derived table.
func buildEAN13Row(digits string, moduleWidth int) *bitmatrix.BitArray {
	b := newRowBuilder(10 * moduleWidth)
	b.append(startEndPattern, moduleWidth)

	parity := firstDigitEncodings[digits[0]-'0']
	for x := 0; x < 6; x++ {
		d := int(digits[x+1] - '0')
		isG := (parity>>uint(5-x))&1 == 1
		if isG {
			b.append(lAndGPatterns[10+d][:], moduleWidth)
		} else {
			b.append(lAndGPatterns[d][:], moduleWidth)
		}
	}

	b.append(middlePattern, moduleWidth)

	for x := 7; x < 13; x++ {
		d := int(digits[x] - '0')
		b.append(lAndGPatterns[d][:], moduleWidth)
	}

	b.append(startEndPattern, moduleWidth)
	return b.build()
}

// buildEAN8Row renders an 8-digit EAN-8 payload the same way, with no
// implied first digit: all 8 digits use the plain L pattern.
func buildEAN8Row(digits string, moduleWidth int) *bitmatrix.BitArray {
	b := newRowBuilder(10 * moduleWidth)
	b.append(startEndPattern, moduleWidth)
	for x := 0; x < 4; x++ {
		d := int(digits[x] - '0')
		b.append(lAndGPatterns[d][:], moduleWidth)
	}
	b.append(middlePattern, moduleWidth)
	for x := 4; x < 8; x++ {
		d := int(digits[x] - '0')
		b.append(lAndGPatterns[d][:], moduleWidth)
	}
	b.append(startEndPattern, moduleWidth)
	return b.build()
}

// buildUPCERow renders a compressed 6-digit UPC-E payload under the given
// number system and check digit, using numSysAndCheckDigitPatterns to pick
// each compressed digit's L/G parity exactly as UPCEReader expects.
func buildUPCERow(numberSystem int, compressed string, checkDigit int, moduleWidth int) *bitmatrix.BitArray {
	b := newRowBuilder(10 * moduleWidth)
	b.append(startEndPattern, moduleWidth)
	parity := numSysAndCheckDigitPatterns[numberSystem][checkDigit]
	for x := 0; x < 6; x++ {
		d := int(compressed[x] - '0')
		isG := (parity>>uint(5-x))&1 == 1
		if isG {
			b.append(lAndGPatterns[10+d][:], moduleWidth)
		} else {
			b.append(lAndGPatterns[d][:], moduleWidth)
		}
	}
	b.append(upceEndPattern, moduleWidth)
	return b.build()
}

// ean13WithCheckDigit appends a valid check digit to an otherwise-chosen
// 12-digit payload.
func ean13WithCheckDigit(first12 string) string {
	return first12 + string(byte('0'+upcEANChecksum(first12)))
}
