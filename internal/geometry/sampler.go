package geometry

import (
	"fmt"

	"github.com/deepteams/barcode/internal/bitmatrix"
)

// ErrNotFound is returned when the sampling grid would read outside the
// bounds of the source bitmap -- usually because the detected quadrilateral
// was inaccurate.
var ErrNotFound = fmt.Errorf("geometry: sample grid out of bounds")

// SampleGrid reads a dimension x dimension module grid out of matrix,
// nearest-neighbor sampling through the perspective transform that maps the
// unit module grid onto the matrix's pixel coordinates. transform must map
// (0.5,0.5)..(dimension-0.5,dimension-0.5)-style module centers into image
// space; callers build it with SquareToQuadrilateral sized to dimension.
func SampleGrid(matrix *bitmatrix.BitMatrix, dimension int, transform *Transform) (*bitmatrix.BitMatrix, error) {
	return SampleGridXY(matrix, dimension, dimension, transform)
}

// SampleGridXY is SampleGrid with independent width/height module counts.
func SampleGridXY(matrix *bitmatrix.BitMatrix, dimensionX, dimensionY int, transform *Transform) (*bitmatrix.BitMatrix, error) {
	if dimensionX <= 0 || dimensionY <= 0 {
		return nil, fmt.Errorf("geometry: illegal argument: non-positive grid dimension")
	}
	bits := bitmatrix.NewBitMatrix(dimensionX, dimensionY)
	points := make([]Point, dimensionX)
	for y := 0; y < dimensionY; y++ {
		rowCenter := float64(y) + 0.5
		for x := range points {
			points[x] = Point{X: float64(x) + 0.5, Y: rowCenter}
		}
		transform.TransformPoints(points)
		for x, p := range points {
			px, py := nudge(p.X, matrix.Width()), nudge(p.Y, matrix.Height())
			if px < 0 || px >= matrix.Width() || py < 0 || py >= matrix.Height() {
				return nil, ErrNotFound
			}
			if matrix.Get(px, py) {
				bits.Set(x, y)
			}
		}
	}
	return bits, nil
}

// nudge truncates v to a sample column/row, pulling a point that
// drifted at most one pixel outside [0,bound) back onto the boundary --
// perspective rounding routinely lands the outermost row/column a hair
// outside the image even when the detected quadrilateral is otherwise
// sound. Anything beyond that one-pixel margin is left alone so the caller
// can reject it as out of bounds.
func nudge(v float64, bound int) int {
	i := int(v)
	if i < 0 && i >= -1 {
		return 0
	}
	if i >= bound && i <= bound {
		return bound - 1
	}
	return i
}
