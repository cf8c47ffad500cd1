package fp

import (
	"math"
	"math/big"
	"math/bits"
)

// The elementary functions below back the guard-digit algorithms in the
// mp package. Each reduces its argument, sums a fixed-point series at an
// inflated working precision and rounds once at the end, so the caller
// sees a result accurate to within a few units in the last place of the
// requested precision.

// expHalvings is the number of argument halvings applied before the
// exponential series; each halving costs one squaring afterwards but
// roughly octuples the series convergence rate.
const expHalvings = 8

// Exp returns e^x rounded to prec bits.
//
// The argument is reduced by x = t + n*ln2 with |t| <= ln2/2, t is
// halved expHalvings times, the series for e^t is summed in fixed point
// and squared back, and the 2^n factor lands in the exponent. Arguments
// whose magnitude exceeds the exponent range return ErrExponentRange.
func Exp(x Float, prec uint, mode RoundingMode) (Float, error) {
	if x.Sign() == 0 {
		return One, nil
	}
	if x.mag() > 62 {
		// The result exponent would be about x/ln2.
		return Zero, ErrExponentRange
	}
	wp := prec + 16

	var n int64
	t := x
	if x.mag() > 0 {
		n = int64(math.Round(Float64(x) / math.Ln2))
	}
	if n != 0 {
		// ln2 needs log2(n) extra bits so the cancellation in x - n*ln2
		// leaves wp accurate bits.
		extra := uint(bits.Len64(uint64(abs64(n))))
		wn := wp + extra
		ln2 := Ln2(wn, RoundHalfEven)
		t = Sub(x, Mul(FromInt64(n, wn, RoundHalfEven), ln2, wn, RoundHalfEven), wn, RoundHalfEven)
	}

	wq := wp + expHalvings
	X := toFixed(t, wq)
	X.Rsh(X, expHalvings)
	s := expSeries(X, wq)
	for i := 0; i < expHalvings; i++ {
		s = fixMul(s, s, wq)
	}
	return Normalize(s, int(n)-int(wq), prec, mode), nil
}

// expSeries sums e^x = sum x^k/k! for a fixed-point |x| << 1.
func expSeries(x *big.Int, wp uint) *big.Int {
	s := fixOne(wp)
	s.Add(s, x)
	term := new(big.Int).Set(x)
	for k := int64(2); term.Sign() != 0; k++ {
		term = fixMul(term, x, wp)
		term.Quo(term, big.NewInt(k))
		s.Add(s, term)
	}
	return s
}

// Log returns the natural logarithm of x rounded to prec bits. Zero and
// negative operands return ErrNonPositiveLog; the type layer promotes
// negative reals to a complex logarithm.
//
// x is split as m * 2^e with m in [0.5, 1); then
// ln x = 2*atanh((m-1)/(m+1)) + e*ln2, both terms summed in fixed point.
// When x is close to 1 the two terms cancel, so the working precision is
// raised by the size of the cancellation first.
func Log(x Float, prec uint, mode RoundingMode) (Float, error) {
	if x.Sign() <= 0 {
		return Zero, ErrNonPositiveLog
	}
	if x.Eq(One) {
		return Zero, nil
	}
	wp := prec + 16

	// Cancellation guard: ln x ~ x-1 near 1.
	d := Sub(x, One, 10, RoundHalfEven)
	if c := -d.mag(); c > 0 {
		wp += uint(c)
	}

	e := x.mag()
	if e != 0 {
		wp += uint(bits.Len64(uint64(abs64(int64(e)))))
	}

	m := Float{mant: x.mant, exp: -int(x.bc), bc: x.bc} // m in [0.5, 1)
	M := toFixed(m, wp)
	one := fixOne(wp)
	// atanh((m-1)/(m+1)) with m < 1 is -atanh((1-m)/(1+m)); the series
	// argument is kept positive so the fixed-point shifts truncate toward
	// zero instead of flooring a negative remainder.
	num := new(big.Int).Sub(one, M)
	den := new(big.Int).Add(M, one)
	num.Lsh(num, wp)
	u := num.Quo(num, den)

	lnm := atanhSeries(u, wp)
	lnm.Lsh(lnm, 1)
	lnm.Neg(lnm)

	if e != 0 {
		ln2 := toFixed(Ln2(wp+4, RoundHalfEven), wp)
		lnm.Add(lnm, ln2.Mul(ln2, big.NewInt(int64(e))))
	}
	return fromFixed(lnm, wp, prec, mode), nil
}

// atanhSeries sums atanh(x) = sum x^(2k+1)/(2k+1) for fixed-point
// 0 <= x <= 1/3. The argument must not be negative: the term update
// shifts right without a division, and an arithmetic shift would pin a
// negative term at -1 instead of letting it reach zero.
func atanhSeries(x *big.Int, wp uint) *big.Int {
	s := new(big.Int).Set(x)
	x2 := fixMul(x, x, wp)
	term := new(big.Int).Set(x)
	for k := int64(3); ; k += 2 {
		term = fixMul(term, x2, wp)
		if term.Sign() == 0 {
			break
		}
		s.Add(s, new(big.Int).Quo(term, big.NewInt(k)))
	}
	return s
}

// trigHalvings is the number of argument halvings before the sine and
// cosine series; they are undone by double-angle steps.
const trigHalvings = 8

// CosSin returns cos(x) and sin(x), each rounded to prec bits. Computing
// the pair costs one series evaluation; Cos and Sin discard one half.
//
// The argument is reduced modulo 2*pi into [-pi, pi], halved
// trigHalvings times, both series are summed together in fixed point and
// the double-angle identities rebuild the full angle.
func CosSin(x Float, prec uint, mode RoundingMode) (Float, Float) {
	if x.Sign() == 0 {
		return One, Zero
	}
	wp := prec + 16
	if mg := x.mag(); mg > 0 {
		// Bits lost to cancellation in the range reduction.
		wp += uint(mg)
	} else if mg < 0 {
		// A small argument enters the fixed-point form with only wp+mag
		// significant bits; widen so sin keeps full relative precision.
		wp += uint(-mg)
	}

	t := x
	if x.mag() > 2 {
		twoPi := Mul(Pi(wp+4, RoundHalfEven), Two, wp+4, RoundHalfEven)
		q, _ := Div(x, twoPi, uint(x.mag())+8, RoundHalfEven)
		n := roundInt(q)
		if n.Sign() != 0 {
			t = Sub(x, Mul(FromInt(n, wp+4, RoundHalfEven), twoPi, wp+4, RoundHalfEven), wp, RoundHalfEven)
		}
	}

	wq := wp + trigHalvings + 4
	X := toFixed(t, wq)
	X.Rsh(X, trigHalvings)
	c, s := cosSinSeries(X, wq)

	one := fixOne(wq)
	for i := 0; i < trigHalvings; i++ {
		nc := fixMul(c, c, wq)
		nc.Lsh(nc, 1)
		nc.Sub(nc, one)
		ns := fixMul(s, c, wq)
		ns.Lsh(ns, 1)
		c, s = nc, ns
	}
	return fromFixed(c, wq, prec, mode), fromFixed(s, wq, prec, mode)
}

// Cos returns cos(x) rounded to prec bits.
func Cos(x Float, prec uint, mode RoundingMode) Float {
	c, _ := CosSin(x, prec, mode)
	return c
}

// Sin returns sin(x) rounded to prec bits.
func Sin(x Float, prec uint, mode RoundingMode) Float {
	_, s := CosSin(x, prec, mode)
	return s
}

// cosSinSeries sums both Taylor series at once: the even-power terms of
// x^n/n! with alternating sign form cos, the odd-power ones sin.
func cosSinSeries(x *big.Int, wp uint) (c, s *big.Int) {
	c = fixOne(wp)
	s = new(big.Int)
	term := fixOne(wp)
	for n := int64(1); ; n++ {
		term = fixMul(term, x, wp)
		term.Quo(term, big.NewInt(n))
		if term.Sign() == 0 {
			break
		}
		switch n % 4 {
		case 0:
			c.Add(c, term)
		case 1:
			s.Add(s, term)
		case 2:
			c.Sub(c, term)
		case 3:
			s.Sub(s, term)
		}
	}
	return c, s
}

// atanReductions is the number of half-angle transformations applied
// before the arctangent series.
const atanReductions = 4

// Atan returns the arctangent of x rounded to prec bits.
//
// Arguments above 1 in magnitude are folded with
// atan(x) = pi/2 - atan(1/x); the remainder is shrunk with the
// half-angle identity atan(x) = 2*atan(x/(1+sqrt(1+x^2))) and summed as
// an alternating fixed-point series.
func Atan(x Float, prec uint, mode RoundingMode) Float {
	if x.Sign() == 0 {
		return Zero
	}
	wp := prec + 16
	if mg := x.mag(); mg < 0 {
		// The fixed-point form of a small argument keeps only wp+mag
		// significant bits; widen so the relative precision survives.
		wp += uint(-mg)
	}
	neg := x.Sign() < 0
	ax := x
	if neg {
		ax = x.negExact()
	}

	inv := false
	if Cmp(ax, One) > 0 {
		inv = true
		ax, _ = Div(One, ax, wp, RoundHalfEven)
	}

	for i := 0; i < atanReductions; i++ {
		sq := Mul(ax, ax, wp, RoundHalfEven)
		root, _ := Sqrt(Add(One, sq, wp, RoundHalfEven), wp, RoundHalfEven)
		ax, _ = Div(ax, Add(One, root, wp, RoundHalfEven), wp, RoundHalfEven)
	}

	X := toFixed(ax, wp)
	s := atanSeries(X, wp)
	res := Normalize(s, atanReductions-int(wp), wp, RoundHalfEven)

	if inv {
		halfPi := Pi(wp, RoundHalfEven).half()
		res = Sub(halfPi, res, wp, RoundHalfEven)
	}
	if neg {
		res = res.negExact()
	}
	return Pos(res, prec, mode)
}

// atanSeries sums atan(x) = sum (-1)^k x^(2k+1)/(2k+1) for fixed-point
// 0 <= x << 1.
func atanSeries(x *big.Int, wp uint) *big.Int {
	s := new(big.Int).Set(x)
	x2 := fixMul(x, x, wp)
	term := new(big.Int).Set(x)
	add := false
	for k := int64(3); ; k += 2 {
		term = fixMul(term, x2, wp)
		if term.Sign() == 0 {
			break
		}
		t := new(big.Int).Quo(term, big.NewInt(k))
		if add {
			s.Add(s, t)
		} else {
			s.Sub(s, t)
		}
		add = !add
	}
	return s
}

// Hypot returns sqrt(a^2 + b^2) rounded to prec bits.
func Hypot(a, b Float, prec uint, mode RoundingMode) Float {
	if a.Sign() == 0 {
		return Abs(b, prec, mode)
	}
	if b.Sign() == 0 {
		return Abs(a, prec, mode)
	}
	wp := prec + 8
	sum := Add(Mul(a, a, wp, RoundHalfEven), Mul(b, b, wp, RoundHalfEven), wp, RoundHalfEven)
	root, _ := Sqrt(sum, wp, RoundHalfEven)
	return Pos(root, prec, mode)
}

// roundInt returns x rounded to the nearest integer (half away from
// zero is irrelevant to its callers, which only need |error| <= 1).
func roundInt(x Float) *big.Int {
	shifted := Add(x, Half, uint(x.bc)+8, RoundHalfEven)
	return floorInt(shifted)
}

// floorInt returns floor(x) as an integer.
func floorInt(x Float) *big.Int {
	if x.Sign() == 0 {
		return new(big.Int)
	}
	if x.exp >= 0 {
		return new(big.Int).Lsh(x.mant, uint(x.exp))
	}
	// Arithmetic shift floors for negative mantissas.
	return new(big.Int).Rsh(x.mant, uint(-x.exp))
}
