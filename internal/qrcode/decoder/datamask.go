package decoder

import "github.com/deepteams/barcode/internal/bitmatrix"

// dataMaskFormula is one of the 8 mask patterns a QR encoder may apply to
// the data region so that no single color dominates; isMasked(i,j) reports
// whether the module at (row i, column j) was flipped.
type dataMaskFormula func(i, j int) bool

var dataMaskFormulas = [8]dataMaskFormula{
	func(i, j int) bool { return (i+j)%2 == 0 },
	func(i, j int) bool { return i%2 == 0 },
	func(i, j int) bool { return j%3 == 0 },
	func(i, j int) bool { return (i+j)%3 == 0 },
	func(i, j int) bool { return (i/2+j/3)%2 == 0 },
	func(i, j int) bool { return (i*j)%2+(i*j)%3 == 0 },
	func(i, j int) bool { return ((i*j)%2+(i*j)%3)%2 == 0 },
	func(i, j int) bool { return ((i+j)%2+(i*j)%3)%2 == 0 },
}

// UnmaskBitMatrix flips every module of the dimension x dimension grid that
// dataMaskFormulas marks as masked for the given reference (reference is
// the 3-bit mask pattern index), function-pattern modules included.
func UnmaskBitMatrix(bits *bitmatrix.BitMatrix, reference int, dimension int) {
	formula := dataMaskFormulas[reference]
	for i := 0; i < dimension; i++ {
		for j := 0; j < dimension; j++ {
			if formula(i, j) {
				bits.Flip(j, i)
			}
		}
	}
}
