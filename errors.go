package barcode

import "errors"

// These four sentinels are the taxonomy every decode-path error reduces
// to; component-specific errors wrap one of them with fmt.Errorf's %w so
// callers can errors.Is against the taxonomy while the wrapped message
// stays specific to where it failed.
var (
	ErrNotFound        = errors.New("barcode: symbol not found")
	ErrFormat          = errors.New("barcode: malformed symbol")
	ErrChecksum        = errors.New("barcode: checksum failed")
	ErrIllegalArgument = errors.New("barcode: illegal argument")
)
