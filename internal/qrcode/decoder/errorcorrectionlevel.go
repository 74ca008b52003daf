package decoder

// ErrorCorrectionLevel is one of the four QR error-correction levels,
// trading symbol capacity for resilience to damage.
type ErrorCorrectionLevel int

const (
	ErrorCorrectionL ErrorCorrectionLevel = iota // ~7% recovery
	ErrorCorrectionM                             // ~15% recovery
	ErrorCorrectionQ                             // ~25% recovery
	ErrorCorrectionH                             // ~30% recovery
)

// Ordinal returns the index into Version.ecBlocks for this level.
func (e ErrorCorrectionLevel) Ordinal() int { return int(e) }

func (e ErrorCorrectionLevel) String() string {
	switch e {
	case ErrorCorrectionL:
		return "L"
	case ErrorCorrectionM:
		return "M"
	case ErrorCorrectionQ:
		return "Q"
	case ErrorCorrectionH:
		return "H"
	default:
		return "?"
	}
}

// errorCorrectionLevelForBits maps the 2-bit field read out of format
// information (bit order per the standard: 01=L, 00=M, 11=Q, 10=H).
var errorCorrectionLevelForBits = [4]ErrorCorrectionLevel{
	ErrorCorrectionM, ErrorCorrectionL, ErrorCorrectionH, ErrorCorrectionQ,
}

func errorCorrectionLevelForBitsValue(bits int) ErrorCorrectionLevel {
	return errorCorrectionLevelForBits[bits&0x3]
}
