package fp

import (
	"math/big"
)

// Sqrt returns the square root of x rounded to prec bits. Negative
// operands return ErrNegSqrt; the caller decides whether that promotes
// to a complex result.
//
// The mantissa is left-shifted to roughly twice the target precision
// (keeping the exponent even) and the integer square root is taken. The
// integer root truncates below the guard bits, the same documented
// approximation discipline as Div.
func Sqrt(x Float, prec uint, mode RoundingMode) (Float, error) {
	if x.Sign() < 0 {
		return Zero, ErrNegSqrt
	}
	if x.Sign() == 0 {
		return Zero, nil
	}
	shift := 2*(int(prec)+8) - int(x.bc)
	if shift < 0 {
		shift = 0
	}
	// The result exponent is (exp-shift)/2, which must be exact.
	if (x.exp-shift)%2 != 0 {
		shift++
	}
	m := new(big.Int).Lsh(x.mant, uint(shift))
	m.Sqrt(m)
	return Normalize(m, (x.exp-shift)/2, prec, mode), nil
}
