package fp

import (
	"math/big"
)

// Comparison results returned by Cmp.
const (
	Less    = -1
	Equal   = 0
	Greater = 1
)

// Cmp compares a and b and returns Less, Equal or Greater.
//
// A full-precision subtraction is comparatively expensive, so Cmp first
// tries to decide from signs, then from equal exponents, then from the
// position of the most significant bit. Only when the two magnitudes are
// genuinely close does it fall back to a low-precision subtraction and
// inspect the sign of the difference.
func Cmp(a, b Float) int {
	sa, sb := a.Sign(), b.Sign()
	if sb == 0 {
		return sa
	}
	if sa == 0 {
		return -sb
	}
	if sa > 0 && sb < 0 {
		return Greater
	}
	if sa < 0 && sb > 0 {
		return Less
	}

	// Same sign. Equal exponents reduce to an integer comparison.
	if a.exp == b.exp {
		return a.mant.Cmp(b.mant)
	}

	// Different exponents: compare most-significant-bit positions.
	pa, pb := a.mag(), b.mag()
	if pa != pb {
		if (pa > pb) == (sa > 0) {
			return Greater
		}
		return Less
	}

	// Similar magnitude, different exponents: subtract at minimal
	// precision and look at the sign of the result.
	return Sub(a, b, 5, RoundFloor).Sign()
}

// Pos rounds a to prec bits; the floating-point identity operation.
func Pos(a Float, prec uint, mode RoundingMode) Float {
	if a.Sign() == 0 {
		return Zero
	}
	return Normalize(a.mant, a.exp, prec, mode)
}

// Neg returns -a rounded to prec bits.
func Neg(a Float, prec uint, mode RoundingMode) Float {
	if a.Sign() == 0 {
		return Zero
	}
	return Normalize(new(big.Int).Neg(a.mant), a.exp, prec, mode)
}

// Abs returns |a| rounded to prec bits.
func Abs(a Float, prec uint, mode RoundingMode) Float {
	if a.Sign() < 0 {
		return Neg(a, prec, mode)
	}
	return Pos(a, prec, mode)
}

// NegExact returns -a with no rounding at all; the result carries the
// same mantissa magnitude, exponent and bitcount.
func NegExact(a Float) Float {
	return a.negExact()
}

// addFarGap is the exponent distance above which Add considers the
// cheap path for operands whose mantissas cannot overlap.
const addFarGap = 10

// Add returns a+b rounded to prec bits.
//
// The general algorithm shifts the operand with the larger exponent down
// to the smaller one, adds the aligned mantissas exactly and rounds once.
// Two fast paths avoid needless work: a zero operand short-circuits to a
// re-normalization of the other, and when the operands are so far apart
// that the smaller one lies entirely below the rounding boundary, the
// result is the larger operand alone (for nearest modes) or the larger
// operand with a single sentinel bit injected at a safe offset (for
// directed modes, where the invisible operand must still force the
// rounding direction).
func Add(a, b Float, prec uint, mode RoundingMode) Float {
	// Ensure a holds the larger exponent.
	if b.exp > a.exp {
		a, b = b, a
	}

	// Zero has exponent 0 by convention; without this check the other
	// operand's mantissa could be shifted by a huge bit count for
	// nothing.
	if b.Sign() == 0 {
		return Pos(a, prec, mode)
	}
	if a.Sign() == 0 {
		return Pos(b, prec, mode)
	}

	if a.exp-b.exp > addFarGap {
		bitdelta := a.mag() - b.mag()
		if bitdelta > int(prec)+5 {
			if mode.nearest() {
				return Pos(a, prec, mode)
			}
			// Inject a bit with b's sign just outside the precision
			// range instead of materializing the full-width shift.
			offset := bitdelta + 3
			if p := int(prec) + 3; offset > p {
				offset = p
			}
			m := new(big.Int).Lsh(a.mant, uint(offset))
			if b.Sign() > 0 {
				m.Add(m, intOne)
			} else {
				m.Sub(m, intOne)
			}
			return Normalize(m, a.exp-offset, prec, mode)
		}
	}

	m := new(big.Int).Lsh(a.mant, uint(a.exp-b.exp))
	m.Add(m, b.mant)
	return Normalize(m, b.exp, prec, mode)
}

// Sub returns a-b rounded to prec bits. The negation of b is exact, so
// the single rounding step happens in the addition.
func Sub(a, b Float, prec uint, mode RoundingMode) Float {
	return Add(a, b.negExact(), prec, mode)
}

// Mul returns a*b rounded to prec bits. The mantissa product is exact;
// rounding happens once in Normalize.
func Mul(a, b Float, prec uint, mode RoundingMode) Float {
	if a.Sign() == 0 || b.Sign() == 0 {
		return Zero
	}
	m := new(big.Int).Mul(a.mant, b.mant)
	return Normalize(m, a.exp+b.exp, prec, mode)
}

// divGuardBits is the number of extra quotient bits computed beyond the
// requested precision. The integer division truncates, so without a
// margin the final rounding could go the wrong way when the true
// quotient lies very close to a rounding boundary. Twelve bits make that
// chance vanishingly small but do not eliminate it; see the package
// documentation for the known limitation.
const divGuardBits = 12

// Div returns a/b rounded to prec bits. Dividing by zero returns
// ErrDivisionByZero.
//
// The dividend mantissa is padded so the integer quotient carries
// prec+divGuardBits significant bits before the final rounding. The
// padding makes incorrect rounding rare but not impossible; Div is a
// documented approximation, not a proven correctly-rounded division.
func Div(a, b Float, prec uint, mode RoundingMode) (Float, error) {
	if b.Sign() == 0 {
		return Zero, ErrDivisionByZero
	}
	if a.Sign() == 0 {
		return Zero, nil
	}
	extra := int(prec) - int(a.bc) + int(b.bc) + divGuardBits
	if extra < divGuardBits {
		extra = divGuardBits
	}
	m := new(big.Int).Lsh(a.mant, uint(extra))
	m.Quo(m, b.mant)
	return Normalize(m, a.exp-b.exp-extra, prec, mode), nil
}
