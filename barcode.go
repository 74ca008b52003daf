package barcode

import (
	"fmt"

	"github.com/deepteams/barcode/internal/binarize"
	"github.com/deepteams/barcode/internal/oned"
	"github.com/deepteams/barcode/internal/qrcode/decoder"
	"github.com/deepteams/barcode/internal/qrcode/detector"
)

// Decode locates and decodes the first symbol found in bitmap. It tries
// QR Code first (the only symbology this library fully decodes), then
// falls back to the 1D scanner; either stage can be disabled via
// hints.PossibleFormats.
func Decode(bitmap *binarize.BinaryBitmap, hints Hints) (*Result, error) {
	if hints.wantsQR() {
		if result, err := decodeQR(bitmap); err == nil {
			return result, nil
		}
	}
	if hints.wants1D() {
		formats := hints.oneDFormatNames()
		var row *oned.RowResult
		var err error
		if hints.TryHarder {
			row, err = oned.Decode(bitmap, formats...)
		} else {
			row, err = oned.DecodeOneD(bitmap, oned.NewMultiFormatOneDReader(formats...))
		}
		if err == nil {
			return oneDResultToResult(row), nil
		}
	}
	return nil, fmt.Errorf("%w", ErrNotFound)
}

// DecodeMulti locates and decodes every symbol findable in bitmap,
// delegating to internal/multi: repeated QR detect-and-blank passes, then
// a 1D scan of each of eight horizontal bands.
func DecodeMulti(bitmap *binarize.BinaryBitmap, hints Hints) ([]*Result, error) {
	return decodeMultiImpl(bitmap, hints)
}

func decodeQR(bitmap *binarize.BinaryBitmap) (*Result, error) {
	matrix, err := bitmap.BlackMatrix()
	if err != nil {
		return nil, err
	}
	det, err := detector.Detect(matrix)
	if err != nil {
		return nil, err
	}
	decoded, err := decoder.Decode(det.Bits)
	if err != nil {
		return nil, err
	}
	return qrResultToResult(decoded, det), nil
}

func qrResultToResult(decoded *decoder.DecodedResult, det *detector.Result) *Result {
	points := []ResultPoint{
		{X: det.BottomLeft.X, Y: det.BottomLeft.Y},
		{X: det.TopLeft.X, Y: det.TopLeft.Y},
		{X: det.TopRight.X, Y: det.TopRight.Y},
	}
	if det.AlignmentPattern != nil {
		points = append(points, ResultPoint{X: det.AlignmentPattern.X, Y: det.AlignmentPattern.Y})
	}
	meta := map[MetadataKey]any{
		MetadataErrorsCorrected: decoded.NumErrorsCorrected,
	}
	return &Result{
		Text:     decoded.Text,
		RawBytes: decoded.RawBytes,
		Format:   FormatQRCode,
		Points:   points,
		Metadata: meta,
	}
}

func oneDResultToResult(row *oned.RowResult) *Result {
	format := formatFromOneDName(row.Format)
	meta := map[MetadataKey]any{}
	return &Result{
		Text:   row.Text,
		Format: format,
		Points: []ResultPoint{
			{X: float64(row.StartX), Y: float64(row.RowNumber)},
			{X: float64(row.EndX), Y: float64(row.RowNumber)},
		},
		Metadata: meta,
	}
}

func formatFromOneDName(name string) Format {
	switch name {
	case "EAN_13":
		return FormatEAN13
	case "UPC_A":
		return FormatUPCA
	case "EAN_8":
		return FormatEAN8
	case "UPC_E":
		return FormatUPCE
	case "CODE_39":
		return FormatCode39
	case "CODE_128":
		return FormatCode128
	case "ITF":
		return FormatITF
	default:
		return FormatQRCode
	}
}
