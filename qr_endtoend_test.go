package barcode

import (
	"math"
	"math/rand"
	"testing"

	"github.com/deepteams/barcode/internal/bitmatrix"
	"github.com/deepteams/barcode/internal/qrcode/decoder"
	"github.com/deepteams/barcode/internal/qrtest"
)

// rasterizeQR renders a module matrix (as qrtest.EncodeSymbol produces) to
// an 8-bit grayscale pixel buffer at scale pixels per module, surrounded by
// a quietModules-wide white quiet zone -- the way a camera or scanner
// would actually capture a printed symbol, as opposed to decoder_test.go's
// direct one-bit-per-module matrix feed.
func rasterizeQR(matrix *bitmatrix.BitMatrix, scale, quietModules int) (pix []byte, width, height int) {
	dim := matrix.Width()
	modules := dim + 2*quietModules
	width = modules * scale
	height = modules * scale
	pix = make([]byte, width*height)
	for i := range pix {
		pix[i] = 255
	}
	for my := 0; my < dim; my++ {
		for mx := 0; mx < dim; mx++ {
			if !matrix.Get(mx, my) {
				continue
			}
			px0 := (mx + quietModules) * scale
			py0 := (my + quietModules) * scale
			for dy := 0; dy < scale; dy++ {
				row := (py0 + dy) * width
				for dx := 0; dx < scale; dx++ {
					pix[row+px0+dx] = 0
				}
			}
		}
	}
	return pix, width, height
}

// rotateImage nearest-neighbor rotates src by angle radians about its
// center into a white-padded canvas large enough to hold every rotated
// corner, the way a symbol photographed at an angle would appear.
func rotateImage(src []byte, width, height int, angle float64) (pix []byte, outW, outH int) {
	cos, sin := math.Cos(angle), math.Sin(angle)
	corners := [][2]float64{{0, 0}, {float64(width), 0}, {0, float64(height)}, {float64(width), float64(height)}}
	cx, cy := float64(width)/2, float64(height)/2
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range corners {
		dx, dy := c[0]-cx, c[1]-cy
		rx := dx*cos - dy*sin
		ry := dx*sin + dy*cos
		if rx < minX {
			minX = rx
		}
		if rx > maxX {
			maxX = rx
		}
		if ry < minY {
			minY = ry
		}
		if ry > maxY {
			maxY = ry
		}
	}
	outW = int(math.Ceil(maxX-minX)) + 2
	outH = int(math.Ceil(maxY-minY)) + 2
	ocx, ocy := float64(outW)/2, float64(outH)/2

	pix = make([]byte, outW*outH)
	for i := range pix {
		pix[i] = 255
	}
	// Inverse-map each output pixel back into src so every destination
	// pixel gets filled (no holes), rotating by -angle.
	invCos, invSin := math.Cos(-angle), math.Sin(-angle)
	for oy := 0; oy < outH; oy++ {
		for ox := 0; ox < outW; ox++ {
			dx, dy := float64(ox)-ocx, float64(oy)-ocy
			sx := dx*invCos - dy*invSin + cx
			sy := dx*invSin + dy*invCos + cy
			ix, iy := int(math.Round(sx)), int(math.Round(sy))
			if ix < 0 || iy < 0 || ix >= width || iy >= height {
				continue
			}
			pix[oy*outW+ox] = src[iy*width+ix]
		}
	}
	return pix, outW, outH
}

// addSaltPepperNoise flips roughly fraction of pix's pixels between black
// and white, using a fixed seed so the test is deterministic.
func addSaltPepperNoise(pix []byte, fraction float64, seed int64) []byte {
	out := make([]byte, len(pix))
	copy(out, pix)
	r := rand.New(rand.NewSource(seed))
	n := int(float64(len(out)) * fraction)
	for i := 0; i < n; i++ {
		idx := r.Intn(len(out))
		out[idx] = 255 - out[idx]
	}
	return out
}

func TestDecodeQREndToEnd(t *testing.T) {
	const text = "HELLO WORLD"
	matrix, err := qrtest.EncodeSymbol(text, decoder.ErrorCorrectionM)
	if err != nil {
		t.Fatalf("EncodeSymbol: %v", err)
	}

	pix, width, height := rasterizeQR(matrix, 6, 4)
	bitmap, err := NewBitmapFromGray(pix, width, height)
	if err != nil {
		t.Fatalf("NewBitmapFromGray: %v", err)
	}

	result, err := Decode(bitmap, Hints{})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if result.Text != text {
		t.Errorf("Text = %q, want %q", result.Text, text)
	}
	if result.Format != FormatQRCode {
		t.Errorf("Format = %v, want %v", result.Format, FormatQRCode)
	}
	if len(result.Points) < 3 {
		t.Errorf("Points = %v, want at least 3 finder-pattern points", result.Points)
	}
}

func TestDecodeQREndToEndScaled(t *testing.T) {
	// A coarser scale and a wider quiet zone than the basic test, showing
	// the detector's module-size estimate (calculateModuleSize) and
	// dimension computation (computeDimension) aren't tied to one
	// pixel-per-module ratio.
	const text = "SCALE"
	matrix, err := qrtest.EncodeSymbol(text, decoder.ErrorCorrectionQ)
	if err != nil {
		t.Fatalf("EncodeSymbol: %v", err)
	}

	pix, width, height := rasterizeQR(matrix, 3, 8)
	bitmap, err := NewBitmapFromGray(pix, width, height)
	if err != nil {
		t.Fatalf("NewBitmapFromGray: %v", err)
	}

	result, err := Decode(bitmap, Hints{})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if result.Text != text {
		t.Errorf("Text = %q, want %q", result.Text, text)
	}
}

func TestDecodeQREndToEndRotated(t *testing.T) {
	// A modest rotation -- well within what the finder-pattern search's
	// vertical and horizontal cross-checks tolerate -- exercises createTransform's
	// perspective mapping on a non-axis-aligned symbol instead of the
	// axis-aligned case the other end-to-end tests cover.
	const text = "ROTATE"
	matrix, err := qrtest.EncodeSymbol(text, decoder.ErrorCorrectionH)
	if err != nil {
		t.Fatalf("EncodeSymbol: %v", err)
	}

	base, bw, bh := rasterizeQR(matrix, 6, 4)
	const angleDegrees = 8.0
	pix, width, height := rotateImage(base, bw, bh, angleDegrees*math.Pi/180)

	bitmap, err := NewBitmapFromGray(pix, width, height)
	if err != nil {
		t.Fatalf("NewBitmapFromGray: %v", err)
	}

	result, err := Decode(bitmap, Hints{TryHarder: true})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if result.Text != text {
		t.Errorf("Text = %q, want %q", result.Text, text)
	}
}

func TestDecodeQREndToEndNoisy(t *testing.T) {
	// Error-correction level H (30% codeword recovery) so ~5% of pixels
	// flipping black<->white, which can corrupt at most a handful of
	// sampled modules, still leaves a readable symbol.
	const text = "NOISE"
	matrix, err := qrtest.EncodeSymbol(text, decoder.ErrorCorrectionH)
	if err != nil {
		t.Fatalf("EncodeSymbol: %v", err)
	}

	pix, width, height := rasterizeQR(matrix, 6, 4)
	noisy := addSaltPepperNoise(pix, 0.05, 42)

	bitmap, err := NewBitmapFromGray(noisy, width, height)
	if err != nil {
		t.Fatalf("NewBitmapFromGray: %v", err)
	}

	result, err := Decode(bitmap, Hints{TryHarder: true})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if result.Text != text {
		t.Errorf("Text = %q, want %q", result.Text, text)
	}
}
