package barcode

// Format identifies which symbology produced a Result.
type Format int

const (
	FormatQRCode Format = iota
	FormatDataMatrix
	FormatAztec
	FormatPDF417
	FormatUPCA
	FormatUPCE
	FormatEAN8
	FormatEAN13
	FormatCode39
	FormatCode128
	FormatITF
)

func (f Format) String() string {
	switch f {
	case FormatQRCode:
		return "QR_CODE"
	case FormatDataMatrix:
		return "DATA_MATRIX"
	case FormatAztec:
		return "AZTEC"
	case FormatPDF417:
		return "PDF_417"
	case FormatUPCA:
		return "UPC_A"
	case FormatUPCE:
		return "UPC_E"
	case FormatEAN8:
		return "EAN_8"
	case FormatEAN13:
		return "EAN_13"
	case FormatCode39:
		return "CODE_39"
	case FormatCode128:
		return "CODE_128"
	case FormatITF:
		return "ITF"
	default:
		return "UNKNOWN"
	}
}

// MetadataKey names an entry in Result.Metadata.
type MetadataKey string

const (
	// MetadataRotation names the clockwise rotation (in degrees: 0 or 270)
	// of the image a symbol was found on. Decode and DecodeMulti do not set
	// this key.
	MetadataRotation MetadataKey = "rotation"
	// MetadataErrorsCorrected records how many codeword errors
	// Reed-Solomon corrected for a QR Code result.
	MetadataErrorsCorrected MetadataKey = "errorsCorrected"
)

// ResultPoint is a located feature of the symbol (a finder or alignment
// pattern center, a guard-pattern edge) reported alongside the decoded
// text so callers can draw an overlay.
type ResultPoint struct {
	X, Y float64
}

// Result is what Decode/DecodeMulti return for a located, decoded symbol.
type Result struct {
	Text     string
	RawBytes []byte
	Format   Format
	Points   []ResultPoint
	Metadata map[MetadataKey]any
}
