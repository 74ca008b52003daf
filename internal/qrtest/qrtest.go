// Package qrtest synthesizes version-1 QR symbols in-process for
// end-to-end decoder/detector tests, so the test suite needs no binary
// testdata fixtures. It is grounded on AshokShau-qrcode/encoder.go and
// nayuki-QR-Code-generator's bit-placement and BCH format-info encoding,
// reused only under _test.go files.
package qrtest

import (
	"fmt"

	"github.com/deepteams/barcode/internal/bitmatrix"
	"github.com/deepteams/barcode/internal/qrcode/decoder"
	"github.com/deepteams/barcode/internal/reedsolomon"
)

// formatGeneratorPoly and formatMask are the BCH(15,5) generator and XOR
// mask the QR standard defines for format information.
const (
	formatGeneratorPoly = 0x537
	formatMask          = 0x5412
)

// EncodeSymbol builds a version-1 QR module matrix (one bit per module,
// true meaning "dark") encoding text in byte mode at the given error
// correction level and mask pattern 0, suitable for decoder.Decode.
func EncodeSymbol(text string, level decoder.ErrorCorrectionLevel) (*bitmatrix.BitMatrix, error) {
	version, err := decoder.GetVersionForNumber(1)
	if err != nil {
		return nil, err
	}
	ecb := version.ECBlocksForLevel(level)
	if ecb.NumBlocks() != 1 {
		return nil, fmt.Errorf("qrtest: only single-block versions supported")
	}
	dataCodewords := ecb.Blocks[0].DataCodewords

	data, err := buildDataCodewords(text, version, dataCodewords)
	if err != nil {
		return nil, err
	}
	dataInts := make([]int, len(data))
	for i, b := range data {
		dataInts[i] = int(b)
	}
	ecInts := reedsolomon.Encode(reedsolomon.QRField, dataInts, ecb.ECCodewordsPerBlock)

	all := make([]byte, 0, len(data)+len(ecInts))
	all = append(all, data...)
	for _, v := range ecInts {
		all = append(all, byte(v))
	}

	dimension := version.Dimension()
	matrix := bitmatrix.NewSquareBitMatrix(dimension)
	drawFunctionPatterns(matrix, dimension)

	functionPattern := version.BuildFunctionPattern()
	placeCodewords(matrix, functionPattern, dimension, all)
	applyMask(matrix, functionPattern, dimension, 0)

	const mask = 0
	levelBits := formatLevelBits(level)
	writeFormatInformation(matrix, dimension, levelBits, mask)

	return matrix, nil
}

func formatLevelBits(level decoder.ErrorCorrectionLevel) int {
	switch level {
	case decoder.ErrorCorrectionL:
		return 1
	case decoder.ErrorCorrectionM:
		return 0
	case decoder.ErrorCorrectionQ:
		return 3
	case decoder.ErrorCorrectionH:
		return 2
	}
	return 0
}

// buildDataCodewords assembles the byte-mode bit stream (mode indicator,
// 8-bit character count, payload bytes, terminator, bit-padding) and pads
// it out to dataCodewords bytes with the standard 0xEC/0x11 alternation.
func buildDataCodewords(text string, version *decoder.Version, dataCodewords int) ([]byte, error) {
	if len(text) > 255 {
		return nil, fmt.Errorf("qrtest: text too long for version 1")
	}
	var bitsOut []bool
	appendBits := func(value, numBits int) {
		for i := numBits - 1; i >= 0; i-- {
			bitsOut = append(bitsOut, (value>>uint(i))&1 == 1)
		}
	}

	appendBits(0b0100, 4) // byte mode
	countBits := decoder.ModeByte.CharacterCountBits(version)
	appendBits(len(text), countBits)
	for i := 0; i < len(text); i++ {
		appendBits(int(text[i]), 8)
	}

	capacityBits := dataCodewords * 8
	if len(bitsOut) > capacityBits {
		return nil, fmt.Errorf("qrtest: text too long for this error correction level")
	}
	for i := 0; i < 4 && len(bitsOut) < capacityBits; i++ {
		bitsOut = append(bitsOut, false)
	}
	for len(bitsOut)%8 != 0 {
		bitsOut = append(bitsOut, false)
	}

	out := make([]byte, len(bitsOut)/8)
	for i, bit := range bitsOut {
		if bit {
			out[i/8] |= 1 << uint(7-i%8)
		}
	}

	pad := [2]byte{0xEC, 0x11}
	for i := 0; len(out) < dataCodewords; i++ {
		out = append(out, pad[i%2])
	}
	return out, nil
}

func setSquare(m *bitmatrix.BitMatrix, left, top, size int) {
	m.SetRegion(left, top, size, size)
}

func clearInnerSquare(m *bitmatrix.BitMatrix, left, top int) {
	// leaves a 1-module white ring, then a solid 3x3 dark core -- the
	// standard finder pattern, rendered by flipping the 5x5 interior of the
	// solid square and then setting the 3x3 core.
	for y := top + 1; y < top+6; y++ {
		for x := left + 1; x < left+6; x++ {
			m.Flip(x, y)
		}
	}
	m.SetRegion(left+2, top+2, 3, 3)
}

// drawFunctionPatterns renders the three finder patterns, their separators
// (left implicitly white, since the matrix starts all-clear), the timing
// patterns, and the dark module.
func drawFunctionPatterns(m *bitmatrix.BitMatrix, dimension int) {
	drawFinder := func(left, top int) {
		setSquare(m, left, top, 7)
		clearInnerSquare(m, left, top)
	}
	drawFinder(0, 0)
	drawFinder(dimension-7, 0)
	drawFinder(0, dimension-7)

	for i := 8; i < dimension-8; i++ {
		if i%2 == 0 {
			m.Set(i, 6)
			m.Set(6, i)
		}
	}

	m.Set(8, dimension-8) // dark module
}

// placeCodewords writes allBytes into the module grid following the same
// zigzag column traversal decoder.BitMatrixParser.ReadCodewords reads, so
// a decode of this matrix recovers allBytes exactly.
func placeCodewords(m, functionPattern *bitmatrix.BitMatrix, dimension int, allBytes []byte) {
	readingUp := true
	byteIndex := 0
	bitIndex := 0

	for j := dimension - 1; j > 0; j -= 2 {
		if j == 6 {
			j--
		}
		for count := 0; count < dimension; count++ {
			i := count
			if readingUp {
				i = dimension - 1 - count
			}
			for col := 0; col < 2; col++ {
				x := j - col
				if !functionPattern.Get(x, i) {
					if byteIndex < len(allBytes) {
						bit := (allBytes[byteIndex]>>uint(7-bitIndex))&1 == 1
						if bit {
							m.Set(x, i)
						}
						bitIndex++
						if bitIndex == 8 {
							bitIndex = 0
							byteIndex++
						}
					}
				}
			}
		}
		readingUp = !readingUp
	}
}

// applyMask flips every data-region module mask pattern 0 selects,
// leaving function-pattern modules (finder, separator, timing, format
// information, dark module) untouched -- exactly the encode-side mirror
// of decoder.UnmaskBitMatrix.
func applyMask(m, functionPattern *bitmatrix.BitMatrix, dimension, _ int) {
	for i := 0; i < dimension; i++ {
		for j := 0; j < dimension; j++ {
			if functionPattern.Get(j, i) {
				continue
			}
			if (i+j)%2 == 0 {
				m.Flip(j, i)
			}
		}
	}
}

// writeFormatInformation computes the BCH(15,5)-protected, XOR-masked
// format codeword for (levelBits, mask) and writes both redundant copies
// at the positions decoder.BitMatrixParser.ReadFormatInformation reads.
func writeFormatInformation(m *bitmatrix.BitMatrix, dimension, levelBits, mask int) {
	data := (levelBits << 3) | mask
	bchCode := calculateBCHCode(data<<10, formatGeneratorPoly)
	formatBits := ((data << 10) | bchCode) ^ formatMask

	bitAt := func(k int) bool { return (formatBits>>uint(14-k))&1 == 1 }

	// copyBit(i, j, value) in bitmatrixparser.go reads bits.Get(i, j), i.e.
	// Get(x=i, y=j); these loops mirror its exact (i, j) argument order so
	// a decode of this matrix reads the same 15 bits back in the same order.
	k := 0
	set := func(x, y int) {
		if bitAt(k) {
			m.Set(x, y)
		}
		k++
	}

	for i := 0; i < 6; i++ {
		set(i, 8)
	}
	set(7, 8)
	set(8, 8)
	set(8, 7)
	for j := 5; j >= 0; j-- {
		set(8, j)
	}

	k = 0
	for j := dimension - 1; j >= dimension-7; j-- {
		set(8, j)
	}
	for i := dimension - 8; i < dimension; i++ {
		set(i, 8)
	}
}

func bchDigitCount(v int) int {
	digits := 0
	for v != 0 {
		digits++
		v >>= 1
	}
	return digits
}

func calculateBCHCode(value, poly int) int {
	msbPoly := bchDigitCount(poly)
	for bchDigitCount(value) >= msbPoly {
		value ^= poly << uint(bchDigitCount(value)-msbPoly)
	}
	return value
}
