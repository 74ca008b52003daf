package reedsolomon

import "fmt"

// Poly is a polynomial over a GF, stored as coefficients from the highest
// degree term to the constant term (coefficients[0] is the leading term),
// with no leading zero coefficients except for the zero polynomial itself.
type Poly struct {
	field        *GF
	coefficients []int
}

// NewPoly builds a polynomial from coefficients (highest degree first),
// trimming any leading zero terms.
func NewPoly(field *GF, coefficients []int) *Poly {
	if len(coefficients) == 0 {
		panic("reedsolomon: illegal argument: empty coefficients")
	}
	coeffs := coefficients
	if len(coeffs) > 1 && coeffs[0] == 0 {
		firstNonZero := 1
		for firstNonZero < len(coeffs) && coeffs[firstNonZero] == 0 {
			firstNonZero++
		}
		if firstNonZero == len(coeffs) {
			coeffs = []int{0}
		} else {
			coeffs = append([]int(nil), coeffs[firstNonZero:]...)
		}
	} else {
		coeffs = append([]int(nil), coeffs...)
	}
	return &Poly{field: field, coefficients: coeffs}
}

// Degree returns the polynomial's degree.
func (p *Poly) Degree() int { return len(p.coefficients) - 1 }

// IsZero reports whether p is the zero polynomial.
func (p *Poly) IsZero() bool { return p.coefficients[0] == 0 }

// Coefficient returns the coefficient of x^degree.
func (p *Poly) Coefficient(degree int) int {
	return p.coefficients[len(p.coefficients)-1-degree]
}

// EvaluateAt evaluates p(a) using Horner's method.
func (p *Poly) EvaluateAt(a int) int {
	if a == 0 {
		return p.Coefficient(0)
	}
	f := p.field
	if a == 1 {
		result := 0
		for _, c := range p.coefficients {
			result = f.Add(result, c)
		}
		return result
	}
	result := p.coefficients[0]
	for i := 1; i < len(p.coefficients); i++ {
		result = f.Add(f.Multiply(a, result), p.coefficients[i])
	}
	return result
}

// AddOrSubtract returns p + other (= p XOR other in GF(2^m)).
func (p *Poly) AddOrSubtract(other *Poly) *Poly {
	if p.IsZero() {
		return other
	}
	if other.IsZero() {
		return p
	}
	smaller, larger := p.coefficients, other.coefficients
	if len(smaller) > len(larger) {
		smaller, larger = larger, smaller
	}
	sumDiff := make([]int, len(larger))
	lengthDiff := len(larger) - len(smaller)
	copy(sumDiff, larger[:lengthDiff])
	for i := lengthDiff; i < len(larger); i++ {
		sumDiff[i] = p.field.Add(smaller[i-lengthDiff], larger[i])
	}
	return NewPoly(p.field, sumDiff)
}

// Multiply returns p * other.
func (p *Poly) Multiply(other *Poly) *Poly {
	if p.IsZero() || other.IsZero() {
		return NewPoly(p.field, []int{0})
	}
	a := p.coefficients
	b := other.coefficients
	product := make([]int, len(a)+len(b)-1)
	for i, ac := range a {
		if ac == 0 {
			continue
		}
		for j, bc := range b {
			if bc == 0 {
				continue
			}
			product[i+j] = p.field.Add(product[i+j], p.field.Multiply(ac, bc))
		}
	}
	return NewPoly(p.field, product)
}

// MultiplyByMonomial returns p * (coefficient * x^degree).
func (p *Poly) MultiplyByMonomial(degree, coefficient int) *Poly {
	if degree < 0 {
		panic("reedsolomon: illegal argument: negative degree")
	}
	if coefficient == 0 {
		return NewPoly(p.field, []int{0})
	}
	size := len(p.coefficients)
	product := make([]int, size+degree)
	for i, c := range p.coefficients {
		product[i] = p.field.Multiply(c, coefficient)
	}
	return NewPoly(p.field, product)
}

// QuotientRemainder divides p by other, returning (quotient, remainder).
func (p *Poly) QuotientRemainder(other *Poly) (*Poly, *Poly, error) {
	if other.IsZero() {
		return nil, nil, fmt.Errorf("reedsolomon: illegal argument: division by zero polynomial")
	}
	f := p.field
	quotient := NewPoly(f, []int{0})
	remainder := p

	denominatorLeadingTerm := other.Coefficient(other.Degree())
	inverseDenominatorLeadingTerm := f.Inverse(denominatorLeadingTerm)

	for remainder.Degree() >= other.Degree() && !remainder.IsZero() {
		degreeDiff := remainder.Degree() - other.Degree()
		scale := f.Multiply(remainder.Coefficient(remainder.Degree()), inverseDenominatorLeadingTerm)
		term := other.MultiplyByMonomial(degreeDiff, scale)
		iterationQuotient := monomial(f, degreeDiff, scale)
		quotient = quotient.AddOrSubtract(iterationQuotient)
		remainder = remainder.AddOrSubtract(term)
	}
	return quotient, remainder, nil
}

func monomial(f *GF, degree, coefficient int) *Poly {
	if coefficient == 0 {
		return NewPoly(f, []int{0})
	}
	coeffs := make([]int, degree+1)
	coeffs[0] = coefficient
	return NewPoly(f, coeffs)
}
