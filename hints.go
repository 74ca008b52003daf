package barcode

// Hints tunes Decode/DecodeMulti. The zero value runs with every
// symbology enabled and no extra scanning effort, matching the teacher's
// convention of a plain options struct passed by value rather than a
// stringly-typed map.
type Hints struct {
	// PossibleFormats restricts scanning to these formats. Empty means
	// try everything.
	PossibleFormats []Format

	// TryHarder enables Decode's slower 1D fallback: a retry against a
	// 90-degree rotation of the image. The QR mirrored re-read is made
	// whether or not it is set, and DecodeMulti does not read it.
	TryHarder bool

	// PureBarcode marks the image as a cropped, axis-aligned symbol with no
	// surrounding scene. Decode and DecodeMulti do not read it.
	PureBarcode bool

	// Extra carries hints not otherwise named here, for forward
	// compatibility without breaking the Hints struct shape.
	Extra map[string]any
}

func (h Hints) wantsFormat(f Format) bool {
	if len(h.PossibleFormats) == 0 {
		return true
	}
	for _, want := range h.PossibleFormats {
		if want == f {
			return true
		}
	}
	return false
}

func (h Hints) wants1D() bool {
	oneD := []Format{FormatUPCA, FormatUPCE, FormatEAN8, FormatEAN13, FormatCode39, FormatCode128, FormatITF}
	if len(h.PossibleFormats) == 0 {
		return true
	}
	for _, f := range oneD {
		if h.wantsFormat(f) {
			return true
		}
	}
	return false
}

func (h Hints) wantsQR() bool { return h.wantsFormat(FormatQRCode) }

// oneDFormatNames returns the internal/oned format-name strings this
// Hints selects, for handing to oned.NewMultiFormatOneDReader.
func (h Hints) oneDFormatNames() []string {
	if len(h.PossibleFormats) == 0 {
		return nil
	}
	var names []string
	add := func(f Format, name string) {
		if h.wantsFormat(f) {
			names = append(names, name)
		}
	}
	add(FormatEAN13, "EAN_13")
	add(FormatUPCA, "EAN_13") // UPC-A rides EAN13Reader; see maybeConvertEAN13ToUPCA
	add(FormatEAN8, "EAN_8")
	add(FormatUPCE, "UPC_E")
	add(FormatCode39, "CODE_39")
	add(FormatCode128, "CODE_128")
	add(FormatITF, "ITF")
	return names
}
