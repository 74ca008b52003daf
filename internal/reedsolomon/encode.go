package reedsolomon

// Encode computes numECCodewords parity symbols for dataCodewords, following
// the same generator-polynomial shift-register division used by QR encoders
// (grounded on the generator-polynomial construction common to Reed-Solomon
// QR implementations). It exists for test fixtures that need to synthesize
// valid encoded symbols to exercise the decoder above; production decode
// never calls it.
func Encode(field *GF, dataCodewords []int, numECCodewords int) []int {
	generator := generatorPoly(field, numECCodewords)

	remainder := make([]int, len(dataCodewords)+numECCodewords)
	copy(remainder, dataCodewords)

	genCoeffs := generator.coefficients // highest degree first, length numECCodewords+1, leading coeff 1
	for i := 0; i < len(dataCodewords); i++ {
		coef := remainder[i]
		if coef == 0 {
			continue
		}
		for j, g := range genCoeffs {
			if g == 0 {
				continue
			}
			remainder[i+j] = field.Add(remainder[i+j], field.Multiply(g, coef))
		}
	}
	return remainder[len(dataCodewords):]
}

// generatorPoly builds the generator polynomial prod_{i=0}^{n-1} (x - alpha^i)
// for an RS code with n parity symbols, rooted at generatorBase.
func generatorPoly(field *GF, numECCodewords int) *Poly {
	gen := NewPoly(field, []int{1})
	for i := 0; i < numECCodewords; i++ {
		term := NewPoly(field, []int{1, field.Exp(i + field.GeneratorBase())})
		gen = gen.Multiply(term)
	}
	return gen
}
