package decoder

import (
	"fmt"

	"github.com/deepteams/barcode/internal/bitmatrix"
	"github.com/deepteams/barcode/internal/reedsolomon"
)

// DecodedResult holds everything extracted from a symbol after successful
// decode: the text, the raw corrected byte stream, and enough bookkeeping
// for the caller to report symbology metadata.
type DecodedResult struct {
	Text                 string
	RawBytes             []byte
	ECLevel              string
	NumErrorsCorrected   int
	StructuredAppendSeq  int
	StructuredAppendPar  int
	HasStructuredAppend  bool
}

// Decode reads, corrects, and parses a sampled module grid (the output of
// geometry.SampleGrid) into a DecodedResult.
func Decode(bits *bitmatrix.BitMatrix) (*DecodedResult, error) {
	parser, err := NewBitMatrixParser(bits)
	if err != nil {
		return nil, err
	}
	result, err := decodeParser(parser)
	if err == nil {
		return result, nil
	}

	// Retry assuming the capture was mirrored (common when a QR code is
	// scanned off a reflective surface or through a mirror).
	parser.SetMirror(true)
	if _, verr := parser.ReadVersion(); verr != nil {
		return nil, err
	}
	if _, ferr := parser.ReadFormatInformation(); ferr != nil {
		return nil, err
	}
	parser.Mirror()
	result, merr := decodeParser(parser)
	if merr != nil {
		return nil, err
	}
	return result, nil
}

func decodeParser(parser *BitMatrixParser) (*DecodedResult, error) {
	version, err := parser.ReadVersion()
	if err != nil {
		return nil, err
	}
	formatInfo, err := parser.ReadFormatInformation()
	if err != nil {
		return nil, err
	}
	codewords, err := parser.ReadCodewords()
	if err != nil {
		return nil, err
	}
	dataBlocks := GetDataBlocks(codewords, version, formatInfo.ErrorCorrectionLevel)

	totalBytes := 0
	for _, db := range dataBlocks {
		totalBytes += db.NumDataCodewords()
	}
	resultBytes := make([]byte, totalBytes)
	resultOffset := 0

	dec := reedsolomon.NewDecoder(reedsolomon.QRField)
	numErrorsCorrected := 0
	for _, db := range dataBlocks {
		codewordBytes := db.Codewords()
		codewordInts := make([]int, len(codewordBytes))
		for i, c := range codewordBytes {
			codewordInts[i] = int(c)
		}
		numECCodewords := len(codewordBytes) - db.NumDataCodewords()
		if err := dec.Decode(codewordInts, numECCodewords); err != nil {
			return nil, fmt.Errorf("%w: block correction failed: %v", reedsolomon.ErrChecksum, err)
		}
		for i, c := range codewordBytes {
			if codewordInts[i] != int(c) {
				numErrorsCorrected++
			}
		}
		for i := 0; i < db.NumDataCodewords(); i++ {
			resultBytes[resultOffset] = byte(codewordInts[i])
			resultOffset++
		}
	}

	parsed, err := DecodeBitStream(resultBytes, version, formatInfo.ErrorCorrectionLevel)
	if err != nil {
		return nil, err
	}
	parsed.ECLevel = formatInfo.ErrorCorrectionLevel.String()
	parsed.NumErrorsCorrected = numErrorsCorrected
	return parsed, nil
}
