package detector

import (
	"math"

	"github.com/deepteams/barcode/internal/bitmatrix"
	"github.com/deepteams/barcode/internal/geometry"
	"github.com/deepteams/barcode/internal/qrcode/decoder"
)

// Result is everything the decoder needs to read codewords out of a
// located symbol: the sampled module grid and the three finder-pattern
// centers (plus the alignment pattern, if one was used) for result-point
// reporting.
type Result struct {
	Bits               *bitmatrix.BitMatrix
	TopLeft            *FinderPattern
	TopRight           *FinderPattern
	BottomLeft         *FinderPattern
	AlignmentPattern   *AlignmentPattern // nil for version 1, which has none
}

// Detect locates a QR symbol's finder patterns in image, estimates its
// version and dimension, locates the alignment pattern if the version
// calls for one, and samples the resulting perspective-corrected grid.
func Detect(image *bitmatrix.BitMatrix) (*Result, error) {
	patterns, err := Find(image)
	if err != nil {
		return nil, err
	}
	bottomLeft, topLeft, topRight := patterns[0], patterns[1], patterns[2]

	moduleSize, err := calculateModuleSize(image, topLeft, topRight, bottomLeft)
	if err != nil {
		return nil, err
	}
	if moduleSize < 1 {
		return nil, ErrNotFound
	}

	dimension, err := computeDimension(topLeft, topRight, bottomLeft, moduleSize)
	if err != nil {
		return nil, err
	}
	version, err := decoder.GetProvisionalVersionForDimension(dimension)
	if err != nil {
		return nil, err
	}
	modulesBetweenFPCenters := float64(version.Dimension() - 7)

	var alignment *AlignmentPattern
	if len(version.AlignmentPatternCenters) > 0 {
		bottomRightX := topRight.X - topLeft.X + bottomLeft.X
		bottomRightY := topRight.Y - topLeft.Y + bottomLeft.Y
		correctionToTopLeft := 1 - 3/modulesBetweenFPCenters
		estAlignmentX := topLeft.X + correctionToTopLeft*(bottomRightX-topLeft.X)
		estAlignmentY := topLeft.Y + correctionToTopLeft*(bottomRightY-topLeft.Y)

		for _, allowanceFactor := range []float64{4, 8, 16, 32, 64} {
			if p, ok := FindAlignmentPattern(image, moduleSize, estAlignmentX, estAlignmentY, allowanceFactor); ok {
				alignment = p
				break
			}
		}
	}

	transform := createTransform(topLeft, topRight, bottomLeft, alignment, dimension)
	bits, err := geometry.SampleGrid(image, dimension, transform)
	if err != nil {
		return nil, err
	}

	return &Result{
		Bits:             bits,
		TopLeft:          topLeft,
		TopRight:         topRight,
		BottomLeft:       bottomLeft,
		AlignmentPattern: alignment,
	}, nil
}

func createTransform(topLeft, topRight, bottomLeft *FinderPattern, alignment *AlignmentPattern, dimension int) *geometry.Transform {
	dimMinusThree := float64(dimension) - 3.5
	var bottomRightX, bottomRightY, sourceBottomRightX, sourceBottomRightY float64
	if alignment != nil {
		bottomRightX, bottomRightY = alignment.X, alignment.Y
		sourceBottomRightX, sourceBottomRightY = dimMinusThree-3, dimMinusThree-3
	} else {
		bottomRightX = topRight.X - topLeft.X + bottomLeft.X
		bottomRightY = topRight.Y - topLeft.Y + bottomLeft.Y
		sourceBottomRightX, sourceBottomRightY = dimMinusThree, dimMinusThree
	}

	sourceToUnitSquare := geometry.QuadrilateralToSquare(
		3.5, 3.5,
		dimMinusThree, 3.5,
		sourceBottomRightX, sourceBottomRightY,
		3.5, dimMinusThree,
	)
	unitSquareToImage := geometry.SquareToQuadrilateral(
		topLeft.X, topLeft.Y,
		topRight.X, topRight.Y,
		bottomRightX, bottomRightY,
		bottomLeft.X, bottomLeft.Y,
	)
	return unitSquareToImage.Times(sourceToUnitSquare)
}

func calculateModuleSize(image *bitmatrix.BitMatrix, topLeft, topRight, bottomLeft *FinderPattern) (float64, error) {
	return (calculateModuleSizeOneWay(image, topLeft, topRight) +
		calculateModuleSizeOneWay(image, topLeft, bottomLeft)) / 2.0, nil
}

func calculateModuleSizeOneWay(image *bitmatrix.BitMatrix, a, b *FinderPattern) float64 {
	// Each run reaches from a pattern's center to its outer edge: 3.5 modules.
	sizeA := sizeOfBlackWhiteBlackRun(image, int(a.X), int(a.Y), int(b.X), int(b.Y))
	sizeB := sizeOfBlackWhiteBlackRun(image, int(b.X), int(b.Y), int(a.X), int(a.Y))
	if math.IsNaN(sizeA) {
		return sizeB / 3.5
	}
	if math.IsNaN(sizeB) {
		return sizeA / 3.5
	}
	return (sizeA + sizeB) / 7.0
}

// sizeOfBlackWhiteBlackRun walks the line from (fromX,fromY) toward
// (toX,toY) through a black run, a white run and a black run, and returns
// the distance from the start to the white pixel that ends them: starting
// at a finder pattern's center, that is the pattern's outer edge.
func sizeOfBlackWhiteBlackRun(image *bitmatrix.BitMatrix, fromX, fromY, toX, toY int) float64 {
	steep := absInt(toY-fromY) > absInt(toX-fromX)
	if steep {
		fromX, fromY = fromY, fromX
		toX, toY = toY, toX
	}

	dx := absInt(toX - fromX)
	dy := absInt(toY - fromY)
	errAcc := -dx / 2
	xstep := 1
	if fromX >= toX {
		xstep = -1
	}
	ystep := 1
	if fromY >= toY {
		ystep = -1
	}

	state := 0 // 0 in the first black run, 1 in the white run, 2 in the second black run
	xLimit := toX + xstep
	x, y := fromX, fromY
	for ; x != xLimit; x += xstep {
		realX, realY := x, y
		if steep {
			realX, realY = y, x
		}

		if (state == 1) == image.Get(realX, realY) {
			if state == 2 {
				return math.Hypot(float64(x-fromX), float64(y-fromY))
			}
			state++
		}

		errAcc += dy
		if errAcc > 0 {
			if y == toY {
				break
			}
			y += ystep
			errAcc -= dx
		}
	}
	if state == 2 {
		return math.Hypot(float64(toX-fromX+xstep), float64(toY-fromY))
	}
	return math.NaN()
}

func computeDimension(topLeft, topRight, bottomLeft *FinderPattern, moduleSize float64) (int, error) {
	tltrCentersDimension := round(distance(topLeft, topRight) / moduleSize)
	tlblCentersDimension := round(distance(topLeft, bottomLeft) / moduleSize)
	dimension := (tltrCentersDimension+tlblCentersDimension)/2 + 7

	switch dimension % 4 {
	case 0:
		dimension++
	case 2:
		dimension--
	}
	if dimension < 21 {
		return 0, ErrNotFound
	}
	return dimension, nil
}

func round(v float64) int { return int(math.Floor(v + 0.5)) }
