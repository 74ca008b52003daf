// Package reedsolomon implements GF(2^8) arithmetic and a generic
// Reed-Solomon decoder used to correct QR codeword blocks (and, per
// SPEC_FULL.md's domain-stack note, any other symbology built over the same
// field shape).
package reedsolomon

// GF is a Galois field GF(2^size) built from a primitive polynomial, with
// precomputed log/exp tables so multiply is a table lookup rather than a
// polynomial reduction on every call.
type GF struct {
	expTable []int
	logTable []int
	size     int
	primitive int
	generatorBase int
}

// QRField is the GF(256) field used by QR codes: primitive polynomial
// x^8+x^4+x^3+x^2+1 (0x11D), generator base 0.
var QRField = NewGF(0x11D, 256, 0)

// NewGF builds a GF(2^m) field (size = 2^m) from the given primitive
// polynomial. generatorBase is the exponent of the first consecutive root
// used by the Reed-Solomon generator polynomial (0 for QR).
func NewGF(primitive, size, generatorBase int) *GF {
	f := &GF{
		expTable:      make([]int, size),
		logTable:      make([]int, size),
		size:          size,
		primitive:     primitive,
		generatorBase: generatorBase,
	}
	x := 1
	for i := 0; i < size; i++ {
		f.expTable[i] = x
		x <<= 1
		if x >= size {
			x ^= primitive
			x &= size - 1
		}
	}
	for i := 0; i < size-1; i++ {
		f.logTable[f.expTable[i]] = i
	}
	return f
}

// Size returns 2^m, the number of field elements.
func (f *GF) Size() int { return f.size }

// GeneratorBase returns the exponent of the first root used by the RS
// generator polynomial.
func (f *GF) GeneratorBase() int { return f.generatorBase }

// Add is addition (and subtraction) in GF(2^m): bitwise xor.
func (f *GF) Add(a, b int) int { return a ^ b }

// Exp returns alpha^a.
func (f *GF) Exp(a int) int {
	a %= f.size - 1
	if a < 0 {
		a += f.size - 1
	}
	return f.expTable[a]
}

// Log returns the discrete log of a (a must be nonzero).
func (f *GF) Log(a int) int {
	if a == 0 {
		panic("reedsolomon: illegal argument: log(0)")
	}
	return f.logTable[a]
}

// Inverse returns the multiplicative inverse of a (a must be nonzero).
func (f *GF) Inverse(a int) int {
	if a == 0 {
		panic("reedsolomon: illegal argument: inverse(0)")
	}
	return f.expTable[f.size-1-f.logTable[a]]
}

// Multiply multiplies a and b in the field.
func (f *GF) Multiply(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	return f.expTable[(f.logTable[a]+f.logTable[b])%(f.size-1)]
}
