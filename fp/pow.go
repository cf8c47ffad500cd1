package fp

import (
	"math"
	"math/big"
	"math/bits"
)

// Pow returns a^n rounded to prec bits, for an integer exponent n.
//
// Small exponents are handled directly. A negative exponent computes the
// positive power at a slightly raised precision with directed rounding
// and inverts it once at the end; 0^n for negative n fails with
// ErrDivisionByZero.
//
// The general case is binary exponentiation. Each of the O(log n)
// squarings rounds, so the working precision is inflated by roughly
// 4*log2(n)+4 bits to keep the accumulated error below the final
// rounding boundary; every intermediate product is rounded toward zero
// and only the final Normalize applies the caller's precision and mode.
func Pow(a Float, n int64, prec uint, mode RoundingMode) (Float, error) {
	switch n {
	case 0:
		return One, nil
	case 1:
		return Pos(a, prec, mode), nil
	case 2:
		return Mul(a, a, prec, mode), nil
	case -1:
		return Div(One, a, prec, mode)
	}
	if n < 0 {
		if n == math.MinInt64 {
			// -n overflows back to n; peel one factor off first.
			p, err := Pow(a, n+1, prec+3, RoundFloor)
			if err != nil {
				return Zero, err
			}
			return Div(p, a, prec, mode)
		}
		p, err := Pow(a, -n, prec+3, RoundFloor)
		if err != nil {
			return Zero, err
		}
		return Div(One, p, prec, mode)
	}
	if a.Sign() == 0 {
		return Zero, nil
	}

	prec2 := prec + uint(4*bits.Len64(uint64(n))+4)
	base := Pos(a, prec2, RoundFloor)
	bm, be := base.mant, base.exp
	pm, pe := new(big.Int).Set(intOne), 0
	for n > 0 {
		if n&1 == 1 {
			r := Normalize(new(big.Int).Mul(pm, bm), pe+be, prec2, RoundFloor)
			pm, pe = r.mant, r.exp
			n--
		}
		r := Normalize(new(big.Int).Mul(bm, bm), be+be, prec2, RoundFloor)
		bm, be = r.mant, r.exp
		n >>= 1
	}
	return Normalize(pm, pe, prec, mode), nil
}
