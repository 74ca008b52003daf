package decoder

import (
	"fmt"
	"strings"

	"github.com/deepteams/barcode/internal/bitio"
	"github.com/deepteams/barcode/internal/charset"
)

const gb2312SubsetValue = 1

var alphanumericChars = []byte("0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:")

// DecodeBitStream walks the data codewords' mode segments (NUMERIC,
// ALPHANUMERIC, BYTE, KANJI, HANZI, STRUCTURED_APPEND, FNC1, ECI) until a
// TERMINATOR or the stream runs out, building up the decoded text.
func DecodeBitStream(bytes []byte, version *Version, ecLevel ErrorCorrectionLevel) (*DecodedResult, error) {
	r := bitio.NewReader(bytes)
	var text strings.Builder
	currentCharset := charset.ISO88591
	eciAssigned := false
	result := &DecodedResult{}

	for r.Available() >= 4 {
		modeBits, err := r.ReadBits(4)
		if err != nil {
			return nil, err
		}
		mode := ModeForBits(modeBits)
		if mode == nil || mode == ModeTerminator {
			break
		}

		switch mode {
		case ModeFNC1FirstPosition, ModeFNC1SecondPosition:
			// No payload of its own; signals GS1/AIM formatting to the
			// application layer, which is out of scope here.
			continue
		case ModeStructuredAppend:
			if r.Available() < 16 {
				return nil, ErrFormat
			}
			seq, err := r.ReadBits(8)
			if err != nil {
				return nil, err
			}
			par, err := r.ReadBits(8)
			if err != nil {
				return nil, err
			}
			result.HasStructuredAppend = true
			result.StructuredAppendSeq = seq
			result.StructuredAppendPar = par
			continue
		case ModeECI:
			eciValue, err := readECIValue(r)
			if err != nil {
				return nil, err
			}
			if name := charset.ForECI(eciValue); name != "" {
				currentCharset = name
				eciAssigned = true
			}
			continue
		case ModeNumeric:
			if err := decodeNumericSegment(r, mode, version, &text); err != nil {
				return nil, err
			}
		case ModeAlphanumeric:
			if err := decodeAlphanumericSegment(r, mode, version, &text); err != nil {
				return nil, err
			}
		case ModeByte:
			decodedCharset, err := decodeByteSegment(r, mode, version, &text, currentCharset, eciAssigned)
			if err != nil {
				return nil, err
			}
			if !eciAssigned {
				currentCharset = decodedCharset
			}
		case ModeKanji:
			if err := decodeKanjiSegment(r, mode, version, &text); err != nil {
				return nil, err
			}
		case ModeHanzi:
			if err := decodeHanziSegment(r, mode, version, &text); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("%w: unsupported mode %s", ErrFormat, mode)
		}
	}

	result.Text = text.String()
	result.RawBytes = bytes
	return result, nil
}

func readECIValue(r *bitio.Reader) (int, error) {
	firstByte, err := r.ReadBits(8)
	if err != nil {
		return 0, err
	}
	switch {
	case firstByte&0x80 == 0:
		return firstByte & 0x7F, nil
	case firstByte&0xC0 == 0x80:
		secondByte, err := r.ReadBits(8)
		if err != nil {
			return 0, err
		}
		return (firstByte&0x3F)<<8 | secondByte, nil
	case firstByte&0xE0 == 0xC0:
		secondThirdBytes, err := r.ReadBits(16)
		if err != nil {
			return 0, err
		}
		return (firstByte&0x1F)<<16 | secondThirdBytes, nil
	default:
		return 0, fmt.Errorf("%w: bad ECI designator", ErrFormat)
	}
}

func decodeNumericSegment(r *bitio.Reader, mode *Mode, version *Version, text *strings.Builder) error {
	count, err := r.ReadBits(mode.CharacterCountBits(version))
	if err != nil {
		return err
	}
	for count >= 3 {
		if r.Available() < 10 {
			return ErrFormat
		}
		v, err := r.ReadBits(10)
		if err != nil {
			return err
		}
		if v >= 1000 {
			return ErrFormat
		}
		fmt.Fprintf(text, "%03d", v)
		count -= 3
	}
	switch count {
	case 2:
		if r.Available() < 7 {
			return ErrFormat
		}
		v, err := r.ReadBits(7)
		if err != nil {
			return err
		}
		if v >= 100 {
			return ErrFormat
		}
		fmt.Fprintf(text, "%02d", v)
	case 1:
		if r.Available() < 4 {
			return ErrFormat
		}
		v, err := r.ReadBits(4)
		if err != nil {
			return err
		}
		if v >= 10 {
			return ErrFormat
		}
		fmt.Fprintf(text, "%d", v)
	}
	return nil
}

func decodeAlphanumericSegment(r *bitio.Reader, mode *Mode, version *Version, text *strings.Builder) error {
	count, err := r.ReadBits(mode.CharacterCountBits(version))
	if err != nil {
		return err
	}
	for count > 1 {
		if r.Available() < 11 {
			return ErrFormat
		}
		v, err := r.ReadBits(11)
		if err != nil {
			return err
		}
		if err := appendAlphanumeric(text, v/45); err != nil {
			return err
		}
		if err := appendAlphanumeric(text, v%45); err != nil {
			return err
		}
		count -= 2
	}
	if count == 1 {
		if r.Available() < 6 {
			return ErrFormat
		}
		v, err := r.ReadBits(6)
		if err != nil {
			return err
		}
		if err := appendAlphanumeric(text, v); err != nil {
			return err
		}
	}
	return nil
}

func appendAlphanumeric(text *strings.Builder, v int) error {
	if v < 0 || v >= len(alphanumericChars) {
		return ErrFormat
	}
	text.WriteByte(alphanumericChars[v])
	return nil
}

func decodeByteSegment(r *bitio.Reader, mode *Mode, version *Version, text *strings.Builder, current charset.Name, eciAssigned bool) (charset.Name, error) {
	count, err := r.ReadBits(mode.CharacterCountBits(version))
	if err != nil {
		return "", err
	}
	if r.Available() < 8*count {
		return "", ErrFormat
	}
	readBytes := make([]byte, count)
	for i := 0; i < count; i++ {
		v, err := r.ReadBits(8)
		if err != nil {
			return "", err
		}
		readBytes[i] = byte(v)
	}
	guessed := current
	if !eciAssigned {
		guessed = charset.Guess(readBytes)
	}
	// Encodings other than UTF-8/ISO-8859-1 need a conversion table this
	// decoder does not carry; those bytes are emitted as Latin-1 text, same
	// as an unassigned ECI would be.
	for _, bb := range readBytes {
		text.WriteByte(bb)
	}
	return guessed, nil
}

func decodeKanjiSegment(r *bitio.Reader, mode *Mode, version *Version, text *strings.Builder) error {
	count, err := r.ReadBits(mode.CharacterCountBits(version))
	if err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		if r.Available() < 13 {
			return ErrFormat
		}
		v, err := r.ReadBits(13)
		if err != nil {
			return err
		}
		assembled := (v/0xC0)<<8 | (v % 0xC0)
		var shiftJIS int
		if assembled < 0x1F00 {
			shiftJIS = assembled + 0x8140
		} else {
			shiftJIS = assembled + 0xC140
		}
		text.WriteByte(byte(shiftJIS >> 8))
		text.WriteByte(byte(shiftJIS))
	}
	return nil
}

func decodeHanziSegment(r *bitio.Reader, mode *Mode, version *Version, text *strings.Builder) error {
	count, err := r.ReadBits(mode.CharacterCountBits(version))
	if err != nil {
		return err
	}
	if count == 0 {
		return nil
	}
	subset, err := r.ReadBits(4)
	if err != nil {
		return err
	}
	if subset != gb2312SubsetValue {
		return fmt.Errorf("%w: unsupported HANZI subset %d", ErrFormat, subset)
	}
	for i := 0; i < count; i++ {
		if r.Available() < 13 {
			return ErrFormat
		}
		v, err := r.ReadBits(13)
		if err != nil {
			return err
		}
		assembled := (v/0x060)<<8 | (v % 0x060)
		gb := assembled + 0xA1A1
		text.WriteByte(byte(gb >> 8))
		text.WriteByte(byte(gb))
	}
	return nil
}
