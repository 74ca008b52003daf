package binarize

import (
	"testing"

	"github.com/deepteams/barcode/internal/luminance"
)

func TestGlobalHistogramUniformGreyFails(t *testing.T) {
	pix := make([]byte, 40*40)
	for i := range pix {
		pix[i] = 128
	}
	src, err := luminance.NewBase(pix, 40, 40)
	if err != nil {
		t.Fatalf("NewBase: %v", err)
	}
	gh := NewGlobalHistogram(src)
	if _, err := gh.BlackMatrix(); err == nil {
		t.Fatal("expected NotFound for a uniform grey image")
	}
}

func TestGlobalHistogramCheckerboardExact(t *testing.T) {
	const n = 40
	pix := make([]byte, n*n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if (x/4+y/4)%2 == 0 {
				pix[y*n+x] = 0
			} else {
				pix[y*n+x] = 255
			}
		}
	}
	src, err := luminance.NewBase(pix, n, n)
	if err != nil {
		t.Fatalf("NewBase: %v", err)
	}
	gh := NewGlobalHistogram(src)
	m, err := gh.BlackMatrix()
	if err != nil {
		t.Fatalf("BlackMatrix: %v", err)
	}
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			want := (x/4+y/4)%2 == 0
			if m.Get(x, y) != want {
				t.Fatalf("(%d,%d) = %v, want %v", x, y, m.Get(x, y), want)
			}
		}
	}
}

func TestHybridUniformGreyHasNoLongMixedRuns(t *testing.T) {
	const n = 64
	pix := make([]byte, n*n)
	for i := range pix {
		pix[i] = 128
	}
	src, err := luminance.NewBase(pix, n, n)
	if err != nil {
		t.Fatalf("NewBase: %v", err)
	}
	hb := NewHybrid(src)
	m, err := hb.BlackMatrix()
	if err != nil {
		t.Fatalf("BlackMatrix: %v", err)
	}
	// A perfectly uniform image has no local contrast anywhere, so every
	// block resolves to the same threshold decision: the whole matrix comes
	// out one color, trivially satisfying "no mixed runs longer than the
	// block size".
	first := m.Get(0, 0)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if m.Get(x, y) != first {
				t.Fatalf("(%d,%d) = %v, want uniform %v", x, y, m.Get(x, y), first)
			}
		}
	}
}

func TestHybridCheckerboardExact(t *testing.T) {
	const n = 64
	pix := make([]byte, n*n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if (x/8+y/8)%2 == 0 {
				pix[y*n+x] = 0
			} else {
				pix[y*n+x] = 255
			}
		}
	}
	src, err := luminance.NewBase(pix, n, n)
	if err != nil {
		t.Fatalf("NewBase: %v", err)
	}
	hb := NewHybrid(src)
	m, err := hb.BlackMatrix()
	if err != nil {
		t.Fatalf("BlackMatrix: %v", err)
	}
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			want := (x/8+y/8)%2 == 0
			if m.Get(x, y) != want {
				t.Fatalf("(%d,%d) = %v, want %v", x, y, m.Get(x, y), want)
			}
		}
	}
}

func TestBinaryBitmapCachesRows(t *testing.T) {
	const n = 40
	pix := make([]byte, n*n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if (x/4+y/4)%2 == 0 {
				pix[y*n+x] = 0
			} else {
				pix[y*n+x] = 255
			}
		}
	}
	src, err := luminance.NewBase(pix, n, n)
	if err != nil {
		t.Fatalf("NewBase: %v", err)
	}
	bmp := NewBinaryBitmap(src, func(s luminance.Source) Binarizer { return NewGlobalHistogram(s) })
	row1, err := bmp.BlackRow(3)
	if err != nil {
		t.Fatalf("BlackRow: %v", err)
	}
	row2, err := bmp.BlackRow(3)
	if err != nil {
		t.Fatalf("BlackRow: %v", err)
	}
	if row1 != row2 {
		t.Fatal("expected cached row to be returned on second request")
	}
}
