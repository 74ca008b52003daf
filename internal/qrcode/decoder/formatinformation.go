package decoder

import "math/bits"

// FormatInformation is the 15-bit field (error correction level + data
// mask pattern) protected by BCH(15,5) and duplicated twice in every QR
// symbol so it can be recovered even if one copy is damaged.
type FormatInformation struct {
	ErrorCorrectionLevel ErrorCorrectionLevel
	DataMask             int
}

// formatInfoMaskQR is XORed into the 15-bit field when a symbol is written,
// so that no valid field is all zeros. The lookup table below already holds
// masked values, so bits read from a symbol are compared against it as read.
const formatInfoMaskQR = 0x5412

// formatInfoDecodeLookup pairs each valid masked codeword with the (level,
// mask) bits it encodes.
var formatInfoDecodeLookup = [][2]int{
	{0x5412, 0x00}, {0x5125, 0x01}, {0x5E7C, 0x02}, {0x5B4B, 0x03},
	{0x45F9, 0x04}, {0x40CE, 0x05}, {0x4F97, 0x06}, {0x4AA0, 0x07},
	{0x77C4, 0x08}, {0x72F3, 0x09}, {0x7DAA, 0x0A}, {0x789D, 0x0B},
	{0x662F, 0x0C}, {0x6318, 0x0D}, {0x6C41, 0x0E}, {0x6976, 0x0F},
	{0x1689, 0x10}, {0x13BE, 0x11}, {0x1CE7, 0x12}, {0x19D0, 0x13},
	{0x0762, 0x14}, {0x0255, 0x15}, {0x0D0C, 0x16}, {0x083B, 0x17},
	{0x355F, 0x18}, {0x3068, 0x19}, {0x3F31, 0x1A}, {0x3A06, 0x1B},
	{0x24B4, 0x1C}, {0x2183, 0x1D}, {0x2EDA, 0x1E}, {0x2BED, 0x1F},
}

// DecodeFormatInformation matches both copies of the masked format bits read
// from the symbol against the lookup table and returns an exact match, or
// else the entry closest in Hamming distance (at most 3) to either copy; if
// that fails it tries once more with the two copies swapped.
func DecodeFormatInformation(maskedBits1, maskedBits2 int) *FormatInformation {
	if fi := doDecodeFormatInformation(maskedBits1, maskedBits2); fi != nil {
		return fi
	}
	return doDecodeFormatInformation(maskedBits2, maskedBits1)
}

func doDecodeFormatInformation(maskedBits1, maskedBits2 int) *FormatInformation {
	bestDifference := 32
	bestFormatInfo := -1
	for _, entry := range formatInfoDecodeLookup {
		targetedMaskedBits := entry[0]
		if targetedMaskedBits == maskedBits1 || targetedMaskedBits == maskedBits2 {
			return newFormatInformation(entry[1])
		}
		bitsDifference := bits.OnesCount(uint(maskedBits1 ^ targetedMaskedBits))
		if bitsDifference < bestDifference {
			bestFormatInfo = entry[1]
			bestDifference = bitsDifference
		}
		if maskedBits1 != maskedBits2 {
			bitsDifference = bits.OnesCount(uint(maskedBits2 ^ targetedMaskedBits))
			if bitsDifference < bestDifference {
				bestFormatInfo = entry[1]
				bestDifference = bitsDifference
			}
		}
	}
	if bestDifference <= 3 {
		return newFormatInformation(bestFormatInfo)
	}
	return nil
}

func newFormatInformation(formatInfo int) *FormatInformation {
	return &FormatInformation{
		ErrorCorrectionLevel: errorCorrectionLevelForBitsValue(formatInfo >> 3),
		DataMask:             formatInfo & 0x07,
	}
}
