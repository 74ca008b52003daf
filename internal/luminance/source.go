// Package luminance provides the abstract 8-bit greyscale image source that
// sits at the top of the decode pipeline.
//
// A Source is immutable once constructed; the Invert, Crop and
// RotateCounterClockwise views are lazy and hold their parent by reference
// rather than copying sample data, mirroring how the WebP codec's container
// parser hands out read-only views over its backing buffer instead of
// duplicating it.
package luminance

import "fmt"

// Source is an 8-bit greyscale image provider: 0 is black, 255 is white.
type Source interface {
	Width() int
	Height() int

	// Row fills buf (allocating a new slice if buf is too short) with the
	// samples of row y and returns it.
	Row(y int, buf []byte) []byte

	// Matrix returns the full image as a row-major byte slice. Implementations
	// that can avoid a copy (the base case) return their backing buffer
	// directly; views that cannot (rotation) build it once.
	Matrix() []byte

	// CropSupported reports whether Crop can produce a meaningful sub-view.
	CropSupported() bool
	Crop(left, top, width, height int) (Source, error)

	// RotateSupported reports whether RotateCounterClockwise is implemented.
	RotateSupported() bool
	RotateCounterClockwise() (Source, error)
}

// Base is a Source over a plain row-major byte buffer. It is the leaf of
// every view chain.
type Base struct {
	width, height int
	pix           []byte
}

// NewBase builds a Source directly over pix, which must contain
// width*height samples in row-major order. pix is not copied.
func NewBase(pix []byte, width, height int) (*Base, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("luminance: illegal argument: non-positive dimensions %dx%d", width, height)
	}
	if len(pix) < width*height {
		return nil, fmt.Errorf("luminance: illegal argument: buffer too small for %dx%d", width, height)
	}
	return &Base{width: width, height: height, pix: pix}, nil
}

func (b *Base) Width() int  { return b.width }
func (b *Base) Height() int { return b.height }

func (b *Base) Row(y int, buf []byte) []byte {
	off := y * b.width
	if cap(buf) < b.width {
		buf = make([]byte, b.width)
	}
	buf = buf[:b.width]
	copy(buf, b.pix[off:off+b.width])
	return buf
}

func (b *Base) Matrix() []byte { return b.pix }

func (b *Base) CropSupported() bool { return true }

func (b *Base) Crop(left, top, width, height int) (Source, error) {
	return newCrop(b, left, top, width, height)
}

func (b *Base) RotateSupported() bool { return true }

func (b *Base) RotateCounterClockwise() (Source, error) {
	return newRotated(b), nil
}

// invertedSource negates every sample of its parent: 255-v.
type invertedSource struct {
	parent Source
}

// Invert returns a view over src with every sample replaced by 255-sample.
// Inverting an already-inverted source unwraps back to the original rather
// than nesting, so applying Invert twice is always a no-op.
func Invert(src Source) Source {
	if inv, ok := src.(*invertedSource); ok {
		return inv.parent
	}
	return &invertedSource{parent: src}
}

func (s *invertedSource) Width() int  { return s.parent.Width() }
func (s *invertedSource) Height() int { return s.parent.Height() }

func (s *invertedSource) Row(y int, buf []byte) []byte {
	buf = s.parent.Row(y, buf)
	invertInPlace(buf)
	return buf
}

func (s *invertedSource) Matrix() []byte {
	m := s.parent.Matrix()
	out := make([]byte, len(m))
	copy(out, m)
	invertInPlace(out)
	return out
}

func (s *invertedSource) CropSupported() bool { return s.parent.CropSupported() }

func (s *invertedSource) Crop(left, top, width, height int) (Source, error) {
	cropped, err := s.parent.Crop(left, top, width, height)
	if err != nil {
		return nil, err
	}
	return Invert(cropped), nil
}

func (s *invertedSource) RotateSupported() bool { return s.parent.RotateSupported() }

func (s *invertedSource) RotateCounterClockwise() (Source, error) {
	rotated, err := s.parent.RotateCounterClockwise()
	if err != nil {
		return nil, err
	}
	return Invert(rotated), nil
}

func invertInPlace(buf []byte) {
	for i, v := range buf {
		buf[i] = 255 - v
	}
}

// cropped is a sub-rectangle view over a parent Source.
type cropped struct {
	parent                  Source
	left, top, width, height int
}

func newCrop(parent Source, left, top, width, height int) (Source, error) {
	if left < 0 || top < 0 || width < 0 || height < 0 ||
		left+width > parent.Width() || top+height > parent.Height() {
		return nil, fmt.Errorf("luminance: illegal argument: crop (%d,%d,%d,%d) out of bounds for %dx%d",
			left, top, width, height, parent.Width(), parent.Height())
	}
	if left == 0 && top == 0 && width == parent.Width() && height == parent.Height() {
		return parent, nil
	}
	return &cropped{parent: parent, left: left, top: top, width: width, height: height}, nil
}

func (c *cropped) Width() int  { return c.width }
func (c *cropped) Height() int { return c.height }

func (c *cropped) Row(y int, buf []byte) []byte {
	if y < 0 || y >= c.height {
		panic(fmt.Sprintf("luminance: illegal argument: row %d out of bounds for height %d", y, c.height))
	}
	parentBuf := c.parent.Row(c.top+y, nil)
	if cap(buf) < c.width {
		buf = make([]byte, c.width)
	}
	buf = buf[:c.width]
	copy(buf, parentBuf[c.left:c.left+c.width])
	return buf
}

func (c *cropped) Matrix() []byte {
	out := make([]byte, c.width*c.height)
	for y := 0; y < c.height; y++ {
		row := c.Row(y, nil)
		copy(out[y*c.width:(y+1)*c.width], row)
	}
	return out
}

func (c *cropped) CropSupported() bool { return true }

func (c *cropped) Crop(left, top, width, height int) (Source, error) {
	return newCrop(c.parent, c.left+left, c.top+top, width, height)
}

func (c *cropped) RotateSupported() bool { return c.parent.RotateSupported() }

func (c *cropped) RotateCounterClockwise() (Source, error) {
	// Rotate the whole parent then re-crop into the rotated coordinate space
	// would require remapping the rectangle; views compose instead by
	// materializing this crop into a Base and rotating that, which keeps the
	// rotate formula in one place (see rotated below).
	base, err := NewBase(c.Matrix(), c.width, c.height)
	if err != nil {
		return nil, err
	}
	return newRotated(base), nil
}

// rotated exposes its parent rotated 90 degrees counterclockwise: width and
// height swap, and reading proceeds down what was a parent column.
//
// The offset arithmetic is easy to get subtly wrong at the edges, so the
// formula here was checked by hand against a small matrix rather than
// trusted by inspection: applying it four times restores the original
// source. Output row y, column x maps to parent column (parentWidth-1-y),
// parent row x.
type rotated struct {
	parent Source
	width  int // = parent.Height()
	height int // = parent.Width()
}

func newRotated(parent Source) *rotated {
	return &rotated{parent: parent, width: parent.Height(), height: parent.Width()}
}

func (r *rotated) Width() int  { return r.width }
func (r *rotated) Height() int { return r.height }

func (r *rotated) Row(y int, buf []byte) []byte {
	if y < 0 || y >= r.height {
		panic(fmt.Sprintf("luminance: illegal argument: row %d out of bounds for height %d", y, r.height))
	}
	if cap(buf) < r.width {
		buf = make([]byte, r.width)
	}
	buf = buf[:r.width]
	parentWidth := r.height // = parent.Width()
	m := r.parent.Matrix()
	for x := 0; x < r.width; x++ {
		buf[x] = m[x*parentWidth+(parentWidth-1-y)]
	}
	return buf
}

func (r *rotated) Matrix() []byte {
	out := make([]byte, r.width*r.height)
	rowBuf := make([]byte, r.width)
	for y := 0; y < r.height; y++ {
		rowBuf = r.Row(y, rowBuf)
		copy(out[y*r.width:(y+1)*r.width], rowBuf)
	}
	return out
}

func (r *rotated) CropSupported() bool { return false }

func (r *rotated) Crop(left, top, width, height int) (Source, error) {
	return nil, fmt.Errorf("luminance: illegal argument: crop not supported on a rotated view")
}

func (r *rotated) RotateSupported() bool { return true }

func (r *rotated) RotateCounterClockwise() (Source, error) {
	return newRotated(r), nil
}
