package fp

import (
	"math/big"
)

// Float is a binary floating-point value represented as the canonical
// triple mant * 2^exp, where mant is a signed arbitrary-precision integer
// and bc is the bit length of |mant|.
//
// Invariants (established by Normalize):
//   - zero is represented uniquely as (0, 0, 0);
//   - a nonzero mantissa is odd (trailing zero bits are folded into exp);
//   - bc equals the exact bit length of |mant| and never exceeds the
//     precision that produced the value.
//
// Because the canonical form is unique, two Floats are numerically equal
// exactly when their triples are equal. Float is a value type: operations
// never mutate an operand's mantissa, so Floats may be copied freely.
type Float struct {
	mant *big.Int
	exp  int
	bc   uint
}

// Handy constants in canonical form.
var (
	Zero = Float{}
	One  = Float{mant: big.NewInt(1), exp: 0, bc: 1}
	Two  = Float{mant: big.NewInt(1), exp: 1, bc: 1}
	Half = Float{mant: big.NewInt(1), exp: -1, bc: 1}
	Ten  = Float{mant: big.NewInt(5), exp: 1, bc: 3}
)

var (
	intOne = big.NewInt(1)
	intTwo = big.NewInt(2)
	intTen = big.NewInt(10)
)

// Mant returns a copy of the mantissa. The copy may be mutated freely.
func (x Float) Mant() *big.Int {
	if x.mant == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(x.mant)
}

// Exp returns the binary exponent.
func (x Float) Exp() int { return x.exp }

// BitCount returns the bit length of the absolute mantissa (0 for zero).
func (x Float) BitCount() uint { return x.bc }

// Sign returns -1, 0 or +1 according to the sign of x.
func (x Float) Sign() int {
	if x.mant == nil {
		return 0
	}
	return x.mant.Sign()
}

// IsZero reports whether x is the canonical zero.
func (x Float) IsZero() bool { return x.Sign() == 0 }

// Eq reports whether x and y are identical triples. For normalized
// values this coincides with numeric equality.
func (x Float) Eq(y Float) bool {
	if x.Sign() == 0 {
		return y.Sign() == 0
	}
	if y.Sign() == 0 {
		return false
	}
	return x.exp == y.exp && x.bc == y.bc && x.mant.Cmp(y.mant) == 0
}

// mag returns the bit position of the most significant bit, i.e.
// floor(log2|x|) + 1. It is only meaningful for nonzero x.
func (x Float) mag() int { return int(x.bc) + x.exp }

// negExact returns -x without any rounding.
func (x Float) negExact() Float {
	if x.Sign() == 0 {
		return Zero
	}
	return Float{mant: new(big.Int).Neg(x.mant), exp: x.exp, bc: x.bc}
}

// half returns x/2 without any rounding.
func (x Float) half() Float {
	if x.Sign() == 0 {
		return Zero
	}
	return Float{mant: x.mant, exp: x.exp - 1, bc: x.bc}
}

// New rounds mant * 2^exp to prec bits and returns it in canonical form.
// The mantissa is copied; the caller keeps ownership of mant.
func New(mant *big.Int, exp int, prec uint, mode RoundingMode) Float {
	return Normalize(new(big.Int).Set(mant), exp, prec, mode)
}

// Normalize converts mant * 2^exp into canonical form at the given
// precision. If the mantissa carries more than prec bits it is
// right-shifted with rounding; trailing zero bits are then stripped into
// the exponent. The input mantissa is never mutated, but Normalize may
// retain ints it allocated itself, so internal callers can pass freshly
// computed values without an extra copy.
func Normalize(mant *big.Int, exp int, prec uint, mode RoundingMode) Float {
	if mant.Sign() == 0 {
		return Zero
	}
	m := mant
	bc := uint(m.BitLen())
	if bc > prec {
		m = shiftRight(m, bc-prec, mode)
		exp += int(bc - prec)
		if m.Sign() == 0 {
			// The whole mantissa rounded away (directed rounding of a
			// value far below the precision boundary).
			return Zero
		}
		// Rounding up through a power of two can grow the mantissa by
		// one bit; it then carries trailing zeros that the strip below
		// folds back into the exponent.
		bc = uint(m.BitLen())
	}
	if tz := m.TrailingZeroBits(); tz > 0 {
		m = new(big.Int).Rsh(m, tz)
		exp += int(tz)
		bc -= tz
	}
	if m == mant {
		m = new(big.Int).Set(mant)
	}
	return Float{mant: m, exp: exp, bc: bc}
}
