package reedsolomon

import "fmt"

// ErrChecksum is returned when a received codeword cannot be corrected --
// more errors are present than the block's parity can resolve.
var ErrChecksum = fmt.Errorf("reedsolomon: checksum failed")

// Decoder corrects codeword blocks over a single GF.
type Decoder struct {
	field *GF
}

// NewDecoder builds a Decoder over field.
func NewDecoder(field *GF) *Decoder {
	return &Decoder{field: field}
}

// Decode corrects received in place, given numECCodewords (the 2t trailing
// parity symbols). If the codeword is already valid, received is returned
// unchanged. Otherwise up to numECCodewords/2 symbol errors are located and
// fixed; exceeding that (or an error position landing outside the codeword)
// fails with ErrChecksum.
func (d *Decoder) Decode(received []int, numECCodewords int) error {
	f := d.field
	poly := NewPoly(f, received)

	syndromeCoefficients := make([]int, numECCodewords)
	hasError := false
	for i := 0; i < numECCodewords; i++ {
		evalAt := f.Exp(i + f.GeneratorBase())
		syndrome := poly.EvaluateAt(evalAt)
		syndromeCoefficients[numECCodewords-1-i] = syndrome
		if syndrome != 0 {
			hasError = true
		}
	}
	if !hasError {
		return nil
	}

	syndrome := NewPoly(f, syndromeCoefficients)
	monomialDeg := monomial(f, numECCodewords, 1)
	sigma, omega, err := runEuclideanAlgorithm(f, monomialDeg, syndrome, numECCodewords)
	if err != nil {
		return err
	}

	errorLocations, err := findErrorLocations(f, sigma)
	if err != nil {
		return err
	}
	errorMagnitudes := findErrorMagnitudes(f, omega, errorLocations)

	for i, loc := range errorLocations {
		position := len(received) - 1 - f.Log(loc)
		if position < 0 {
			return fmt.Errorf("%w: bad error location", ErrChecksum)
		}
		received[position] = f.Add(received[position], errorMagnitudes[i])
	}
	return nil
}

// runEuclideanAlgorithm runs the extended Euclidean algorithm on a = x^2t
// and b = the syndrome polynomial until the remainder's degree drops below
// rDegree, returning (sigma, omega) -- the error locator and error
// evaluator polynomials.
func runEuclideanAlgorithm(f *GF, a, b *Poly, rDegree int) (*Poly, *Poly, error) {
	if a.Degree() < b.Degree() {
		a, b = b, a
	}

	rLast, r := a, b
	tLast, t := NewPoly(f, []int{0}), NewPoly(f, []int{1})

	for r.Degree() >= rDegree/2 {
		rLastLast, tLastLast := rLast, tLast
		rLast, tLast = r, t

		if rLast.IsZero() {
			return nil, nil, fmt.Errorf("%w: r_{i-1} is zero", ErrChecksum)
		}
		r = rLastLast
		q := NewPoly(f, []int{0})
		denominatorLeadingTerm := rLast.Coefficient(rLast.Degree())
		dltInverse := f.Inverse(denominatorLeadingTerm)

		for r.Degree() >= rLast.Degree() && !r.IsZero() {
			degreeDiff := r.Degree() - rLast.Degree()
			scale := f.Multiply(r.Coefficient(r.Degree()), dltInverse)
			q = q.AddOrSubtract(monomial(f, degreeDiff, scale))
			r = r.AddOrSubtract(rLast.MultiplyByMonomial(degreeDiff, scale))
		}

		t = q.Multiply(tLast).AddOrSubtract(tLastLast)

		if r.Degree() >= rLast.Degree() {
			return nil, nil, fmt.Errorf("%w: division algorithm failed to reduce the degree", ErrChecksum)
		}
	}

	sigmaTildeAtZero := t.Coefficient(0)
	if sigmaTildeAtZero == 0 {
		return nil, nil, fmt.Errorf("%w: sigma tilde(0) is zero", ErrChecksum)
	}

	inverse := f.Inverse(sigmaTildeAtZero)
	sigma := t.MultiplyByMonomial(0, inverse)
	omega := r.MultiplyByMonomial(0, inverse)
	return sigma, omega, nil
}

// findErrorLocations performs a Chien search: brute-force evaluation of
// sigma at every nonzero field element to find its roots, which are the
// reciprocals of the error locations.
func findErrorLocations(f *GF, errorLocator *Poly) ([]int, error) {
	numErrors := errorLocator.Degree()
	if numErrors == 1 {
		return []int{errorLocator.Coefficient(1)}, nil
	}
	result := make([]int, 0, numErrors)
	for i := 1; i < f.Size() && len(result) < numErrors; i++ {
		if errorLocator.EvaluateAt(i) == 0 {
			result = append(result, f.Inverse(i))
		}
	}
	if len(result) != numErrors {
		return nil, fmt.Errorf("%w: error locator degree does not match number of roots", ErrChecksum)
	}
	return result, nil
}

// findErrorMagnitudes applies Forney's formula: magnitude_i =
// omega(X_i^-1) / sigma'(X_i^-1), where sigma' is the formal derivative of
// the error locator (odd-power terms only, over GF(2^m)).
func findErrorMagnitudes(f *GF, errorEvaluator *Poly, errorLocations []int) []int {
	s := len(errorLocations)
	result := make([]int, s)
	for i := 0; i < s; i++ {
		xiInverse := f.Inverse(errorLocations[i])
		errorLocatorDerivativeAtXiInverse := 1
		for j := 0; j < s; j++ {
			if i == j {
				continue
			}
			term := f.Multiply(errorLocations[j], xiInverse)
			var termPlus1 int
			if term&0x1 == 0 {
				termPlus1 = term | 1
			} else {
				termPlus1 = term &^ 1
			}
			errorLocatorDerivativeAtXiInverse = f.Multiply(errorLocatorDerivativeAtXiInverse, termPlus1)
		}
		result[i] = f.Multiply(errorEvaluator.EvaluateAt(xiInverse), f.Inverse(errorLocatorDerivativeAtXiInverse))
		if f.GeneratorBase() != 0 {
			result[i] = f.Multiply(result[i], xiInverse)
		}
	}
	return result
}
