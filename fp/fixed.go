package fp

import (
	"math/big"
)

// Fixed-point helpers used by the elementary-function series. A
// fixed-point value at working precision wp is the integer
// round(x * 2^wp); series terms become exact integer operations with a
// single conversion back to Float at the end.

// toFixed returns x scaled to fixed point at wp fractional bits.
func toFixed(x Float, wp uint) *big.Int {
	if x.Sign() == 0 {
		return new(big.Int)
	}
	shift := x.exp + int(wp)
	if shift >= 0 {
		return new(big.Int).Lsh(x.mant, uint(shift))
	}
	return new(big.Int).Rsh(x.mant, uint(-shift))
}

// fromFixed converts a fixed-point value back to a Float rounded to prec
// bits.
func fromFixed(m *big.Int, wp, prec uint, mode RoundingMode) Float {
	return Normalize(m, -int(wp), prec, mode)
}

// fixMul returns (a*b) >> wp, the fixed-point product.
func fixMul(a, b *big.Int, wp uint) *big.Int {
	m := new(big.Int).Mul(a, b)
	return m.Rsh(m, wp)
}

// fixOne returns 1 in fixed point at wp bits.
func fixOne(wp uint) *big.Int {
	return new(big.Int).Lsh(intOne, wp)
}

func abs64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
