package decoder

import (
	"fmt"

	"github.com/deepteams/barcode/internal/bitmatrix"
)

// ErrFormat signals that the symbol's structural bits (format/version
// information, or the codeword count derived from them) don't parse as a
// valid QR code.
var ErrFormat = fmt.Errorf("qrcode/decoder: format error")

// BitMatrixParser reads format information, version information, and raw
// codewords out of a module grid that has already been sampled into a
// BitMatrix (one bit per module, true meaning "dark").
type BitMatrixParser struct {
	bits             *bitmatrix.BitMatrix
	parsedVersion    *Version
	parsedFormatInfo *FormatInformation
	mirror           bool
}

// NewBitMatrixParser validates that bits is a plausible QR module grid
// (square, a version-1..40 dimension) and wraps it.
func NewBitMatrixParser(bits *bitmatrix.BitMatrix) (*BitMatrixParser, error) {
	dimension := bits.Height()
	if dimension < 21 || dimension&0x03 != 1 {
		return nil, ErrFormat
	}
	return &BitMatrixParser{bits: bits}, nil
}

func (p *BitMatrixParser) copyBit(i, j, value int) int {
	var bit bool
	if p.mirror {
		bit = p.bits.Get(j, i)
	} else {
		bit = p.bits.Get(i, j)
	}
	if bit {
		return (value << 1) | 1
	}
	return value << 1
}

// ReadFormatInformation reads and decodes the two redundant copies of
// format information surrounding the top-left finder pattern.
func (p *BitMatrixParser) ReadFormatInformation() (*FormatInformation, error) {
	if p.parsedFormatInfo != nil {
		return p.parsedFormatInfo, nil
	}

	formatInfoBits1 := 0
	for i := 0; i < 6; i++ {
		formatInfoBits1 = p.copyBit(i, 8, formatInfoBits1)
	}
	formatInfoBits1 = p.copyBit(7, 8, formatInfoBits1)
	formatInfoBits1 = p.copyBit(8, 8, formatInfoBits1)
	formatInfoBits1 = p.copyBit(8, 7, formatInfoBits1)
	for j := 5; j >= 0; j-- {
		formatInfoBits1 = p.copyBit(8, j, formatInfoBits1)
	}

	dimension := p.bits.Height()
	formatInfoBits2 := 0
	jMin := dimension - 7
	for j := dimension - 1; j >= jMin; j-- {
		formatInfoBits2 = p.copyBit(8, j, formatInfoBits2)
	}
	for i := dimension - 8; i < dimension; i++ {
		formatInfoBits2 = p.copyBit(i, 8, formatInfoBits2)
	}

	parsed := DecodeFormatInformation(formatInfoBits1, formatInfoBits2)
	if parsed == nil {
		return nil, ErrFormat
	}
	p.parsedFormatInfo = parsed
	return parsed, nil
}

// ReadVersion reads version information: inferred from dimension alone for
// versions 1-6 (which carry no explicit version block), decoded from the
// redundant 18-bit fields for versions 7 and up.
func (p *BitMatrixParser) ReadVersion() (*Version, error) {
	if p.parsedVersion != nil {
		return p.parsedVersion, nil
	}

	dimension := p.bits.Height()
	provisional := (dimension - 17) / 4
	if provisional <= 6 {
		v, err := GetVersionForNumber(provisional)
		if err != nil {
			return nil, ErrFormat
		}
		p.parsedVersion = v
		return v, nil
	}

	ijMin := dimension - 11
	versionBits := 0
	for j := 5; j >= 0; j-- {
		for i := dimension - 9; i >= ijMin; i-- {
			versionBits = p.copyBit(i, j, versionBits)
		}
	}
	if v := DecodeVersionInformation(versionBits); v != nil && v.Dimension() == dimension {
		p.parsedVersion = v
		return v, nil
	}

	versionBits = 0
	for i := 5; i >= 0; i-- {
		for j := dimension - 9; j >= ijMin; j-- {
			versionBits = p.copyBit(i, j, versionBits)
		}
	}
	if v := DecodeVersionInformation(versionBits); v != nil && v.Dimension() == dimension {
		p.parsedVersion = v
		return v, nil
	}
	return nil, ErrFormat
}

// ReadCodewords unmasks the data region (restoring it afterward via
// Remask's inverse application) and walks the zigzag codeword order,
// skipping function-pattern modules, to recover the raw codeword bytes.
func (p *BitMatrixParser) ReadCodewords() ([]byte, error) {
	formatInfo, err := p.ReadFormatInformation()
	if err != nil {
		return nil, err
	}
	version, err := p.ReadVersion()
	if err != nil {
		return nil, err
	}

	dimension := p.bits.Height()
	UnmaskBitMatrix(p.bits, formatInfo.DataMask, dimension)

	functionPattern := version.BuildFunctionPattern()

	readingUp := true
	result := make([]byte, version.TotalCodewords)
	resultOffset := 0
	currentByte := 0
	bitsRead := 0

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
				if !functionPattern.Get(j-col, i) {
					bitsRead++
					currentByte <<= 1
					if p.bits.Get(j-col, i) {
						currentByte |= 1
					}
					if bitsRead == 8 {
						result[resultOffset] = byte(currentByte)
						resultOffset++
						bitsRead = 0
						currentByte = 0
					}
				}
			}
		}
		readingUp = !readingUp
	}

	if resultOffset != version.TotalCodewords {
		return nil, ErrFormat
	}
	return result, nil
}

// Remask re-applies the data mask, restoring the module grid to its
// original masked state after ReadCodewords unmasked it in place.
func (p *BitMatrixParser) Remask() {
	if p.parsedFormatInfo == nil {
		return
	}
	UnmaskBitMatrix(p.bits, p.parsedFormatInfo.DataMask, p.bits.Height())
}

// SetMirror selects whether subsequent reads transpose row/column, for a
// second decode attempt against a possibly horizontally-mirrored capture.
func (p *BitMatrixParser) SetMirror(mirror bool) {
	p.parsedVersion = nil
	p.parsedFormatInfo = nil
	p.mirror = mirror
}

// Mirror transposes the module grid in place.
func (p *BitMatrixParser) Mirror() {
	for x := 0; x < p.bits.Width(); x++ {
		for y := x + 1; y < p.bits.Height(); y++ {
			if p.bits.Get(x, y) != p.bits.Get(y, x) {
				p.bits.Flip(y, x)
				p.bits.Flip(x, y)
			}
		}
	}
}
