package mp

import (
	"math/bits"

	"github.com/agbru/mpcalc/fp"
)

// Binary arithmetic over Number. Each operation promotes both operands
// through the central promotion table, dispatches on the Real/Complex
// pair and rounds the mathematically exact combination once, at the
// context's current precision and mode. A Complex on either side lifts
// the whole operation to Complex.

// Add returns x+y.
func (c *Context) Add(x, y Number) (Number, error) {
	px, py, err := c.promotePair(x, y)
	if err != nil {
		return nil, err
	}
	if a, b, ok := bothReal(px, py); ok {
		return Real{v: fp.Add(a.v, b.v, c.prec, c.mode)}, nil
	}
	return c.cAdd(complexify(px), complexify(py)), nil
}

// Sub returns x-y.
func (c *Context) Sub(x, y Number) (Number, error) {
	px, py, err := c.promotePair(x, y)
	if err != nil {
		return nil, err
	}
	if a, b, ok := bothReal(px, py); ok {
		return Real{v: fp.Sub(a.v, b.v, c.prec, c.mode)}, nil
	}
	return c.cSub(complexify(px), complexify(py)), nil
}

// Mul returns x*y.
func (c *Context) Mul(x, y Number) (Number, error) {
	px, py, err := c.promotePair(x, y)
	if err != nil {
		return nil, err
	}
	if a, b, ok := bothReal(px, py); ok {
		return Real{v: fp.Mul(a.v, b.v, c.prec, c.mode)}, nil
	}
	return c.cMul(complexify(px), complexify(py)), nil
}

// Div returns x/y; a zero divisor fails with ErrDivisionByZero.
func (c *Context) Div(x, y Number) (Number, error) {
	px, py, err := c.promotePair(x, y)
	if err != nil {
		return nil, err
	}
	if a, b, ok := bothReal(px, py); ok {
		v, err := fp.Div(a.v, b.v, c.prec, c.mode)
		if err != nil {
			return nil, err
		}
		return Real{v: v}, nil
	}
	return c.cDiv(complexify(px), complexify(py))
}

// Neg returns -x.
func (c *Context) Neg(x Number) (Number, error) {
	px, err := c.promote(x)
	if err != nil {
		return nil, err
	}
	if r, ok := px.(Real); ok {
		return Real{v: fp.Neg(r.v, c.prec, c.mode)}, nil
	}
	return c.cNeg(px.(Complex)), nil
}

// Abs returns |x|; for a Complex operand this is the real magnitude.
func (c *Context) Abs(x Number) (Real, error) {
	px, err := c.promote(x)
	if err != nil {
		return Real{}, err
	}
	if r, ok := px.(Real); ok {
		return Real{v: fp.Abs(r.v, c.prec, c.mode)}, nil
	}
	return c.cAbs(px.(Complex)), nil
}

// Round re-rounds a promoted number to the context's current precision
// and mode. The guard-digit algorithms call it after restoring their
// precision to land the working value on the caller's grid.
func (c *Context) Round(x Number) Number {
	switch v := x.(type) {
	case Real:
		return Real{v: fp.Pos(v.v, c.prec, c.mode)}
	case Complex:
		return Complex{
			re: Real{v: fp.Pos(v.re.v, c.prec, c.mode)},
			im: Real{v: fp.Pos(v.im.v, c.prec, c.mode)},
		}
	}
	return x
}

// Pow returns x^y. Integer exponents (Integer operands, or Real
// operands with an integral value) use binary exponentiation with the
// working precision inflated to absorb the O(log n) intermediate
// roundings; the exponent one half uses Sqrt; everything else goes
// through exp(y*ln x) at raised precision, which may produce a Complex
// result.
func (c *Context) Pow(x, y Number) (Number, error) {
	px, err := c.promote(x)
	if err != nil {
		return nil, err
	}
	if n, ok := integerExponent(y); ok {
		return c.powInt(px, n)
	}
	py, err := c.promote(y)
	if err != nil {
		return nil, err
	}
	if r, ok := py.(Real); ok {
		if r.v.Eq(halfFloat) {
			return c.Sqrt(px)
		}
		if n, ok := realAsInt64(r); ok {
			return c.powInt(px, n)
		}
	}
	return c.powGeneral(px, py)
}

var halfFloat = fp.Half

// integerExponent extracts an int64 exponent from the raw operand kinds
// without a promotion round trip.
func integerExponent(y Number) (int64, bool) {
	switch e := y.(type) {
	case Integer:
		return int64(e), true
	case Native:
		f := float64(e)
		if f == float64(int64(f)) {
			return int64(f), true
		}
	case Real:
		return realAsInt64(e)
	}
	return 0, false
}

// realAsInt64 reports whether r holds an integral value that fits an
// int64, and returns it. A canonical Float is integral exactly when its
// exponent is non-negative.
func realAsInt64(r Real) (int64, bool) {
	v := r.v
	if v.IsZero() {
		return 0, true
	}
	if v.Exp() < 0 || int(v.BitCount())+v.Exp() > 62 {
		return 0, false
	}
	return fp.Int(v).Int64(), true
}

func (c *Context) powInt(x Number, n int64) (Number, error) {
	if r, ok := x.(Real); ok {
		v, err := fp.Pow(r.v, n, c.prec, c.mode)
		if err != nil {
			return nil, err
		}
		return Real{v: v}, nil
	}
	return c.cPowInt(x.(Complex), n)
}

// cPowInt raises a complex base to an integer power by repeated
// squaring, mirroring the kernel's integer power: the working precision
// grows by about 4*log2(n)+4 bits so the per-step roundings stay below
// the final boundary, and only the last Round applies the caller's
// precision and mode.
func (c *Context) cPowInt(z Complex, n int64) (Number, error) {
	switch n {
	case 0:
		return Complex{re: Real{v: fp.One}}, nil
	case 1:
		return c.Round(z), nil
	case 2:
		return c.cMul(z, z), nil
	}
	if n < 0 {
		restore := c.ExtraPrec(4)
		p, err := c.cPowInt(z, -n)
		if err != nil {
			restore()
			return nil, err
		}
		q, err := c.cDiv(Complex{re: Real{v: fp.One}}, p.(Complex))
		restore()
		if err != nil {
			return nil, err
		}
		return c.Round(q), nil
	}

	restore := c.ExtraPrec(uint(4*bits.Len64(uint64(n)) + 4))
	acc := Complex{re: Real{v: fp.One}}
	base := z
	for n > 0 {
		if n&1 == 1 {
			acc = c.cMul(acc, base)
			n--
		}
		base = c.cMul(base, base)
		n >>= 1
	}
	restore()
	return c.Round(acc), nil
}

// powGeneral computes x^y as exp(y*ln x) with ten guard bits.
func (c *Context) powGeneral(x, y Number) (Number, error) {
	restore := c.ExtraPrec(10)
	e := newCalc(c)
	t := e.exp(e.mul(y, e.log(x)))
	restore()
	if e.err != nil {
		return nil, e.err
	}
	return c.Round(t), nil
}

func (c *Context) promotePair(x, y Number) (Number, Number, error) {
	px, err := c.promote(x)
	if err != nil {
		return nil, nil, err
	}
	py, err := c.promote(y)
	if err != nil {
		return nil, nil, err
	}
	return px, py, nil
}

func bothReal(x, y Number) (Real, Real, bool) {
	a, ok := x.(Real)
	if !ok {
		return Real{}, Real{}, false
	}
	b, ok := y.(Real)
	if !ok {
		return Real{}, Real{}, false
	}
	return a, b, true
}
