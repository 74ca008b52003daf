package oned

import "github.com/deepteams/barcode/internal/bitmatrix"

// UPCAReader decodes UPC-A symbols, which are structurally EAN-13 symbols
// whose implied 13th digit is always 0; it delegates to EAN13Reader and
// strips that leading digit.
type UPCAReader struct {
	ean13 EAN13Reader
}

func (r UPCAReader) DecodeRow(rowNumber int, row *bitmatrix.BitArray) (*RowResult, error) {
	result, err := r.ean13.DecodeRow(rowNumber, row)
	if err != nil {
		return nil, err
	}
	if result.Text[0] != '0' {
		return nil, ErrNotFound
	}
	result.Text = result.Text[1:]
	result.Format = "UPC_A"
	return result, nil
}

// maybeConvertEAN13ToUPCA rewrites an EAN-13 result whose text begins with
// "0" into the equivalent UPC-A text, matching how UPC-A codes are
// represented on the wire as EAN-13 with a leading zero.
func maybeConvertEAN13ToUPCA(result *RowResult) {
	if result.Format == "EAN_13" && len(result.Text) == 13 && result.Text[0] == '0' {
		result.Text = result.Text[1:]
		result.Format = "UPC_A"
	}
}
