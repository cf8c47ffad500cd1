package mp

import (
	"github.com/agbru/mpcalc/fp"
)

// Pi returns the circle constant at the context's current precision.
func (c *Context) Pi() Real {
	return Real{v: fp.Pi(c.prec, c.mode)}
}

// E returns the base of the natural logarithm at the context's current
// precision.
func (c *Context) E() Real {
	return Real{v: fp.E(c.prec, c.mode)}
}

// Ln2 returns the natural logarithm of two at the context's current
// precision.
func (c *Context) Ln2() Real {
	return Real{v: fp.Ln2(c.prec, c.mode)}
}

// Sqrt returns the square root of x. A negative Real produces a purely
// imaginary Complex, unless the context traps complex results, in which
// case it fails with ComplexResultError.
func (c *Context) Sqrt(x Number) (Number, error) {
	px, err := c.promote(x)
	if err != nil {
		return nil, err
	}
	if r, ok := px.(Real); ok {
		if r.Sign() >= 0 {
			v, err := fp.Sqrt(r.v, c.prec, c.mode)
			if err != nil {
				return nil, err
			}
			return Real{v: v}, nil
		}
		if c.trapComplex {
			return nil, ComplexResultError{Op: "sqrt"}
		}
		v, err := fp.Sqrt(fp.NegExact(r.v), c.prec, c.mode)
		if err != nil {
			return nil, err
		}
		return Complex{im: Real{v: v}}, nil
	}
	return c.cSqrt(px.(Complex))
}

// cSqrt computes the principal complex square root with eight guard
// bits. For a = re(z) >= 0 the real part comes straight from the stable
// half-sum formula and the imaginary part from b/(2u); for a < 0 the
// roles swap, so the cancellation-prone half-difference is never formed.
func (c *Context) cSqrt(z Complex) (Number, error) {
	a, b := z.re.v, z.im.v
	if b.IsZero() {
		return c.Sqrt(z.re)
	}
	wp, mode := c.prec+8, c.mode
	r := fp.Hypot(a, b, wp, mode)

	var u, v fp.Float
	if a.Sign() >= 0 {
		t := fp.Mul(fp.Add(r, a, wp, mode), fp.Half, wp, mode)
		su, err := fp.Sqrt(t, wp, mode)
		if err != nil {
			return nil, err
		}
		u = su
		v, err = fp.Div(b, fp.Mul(u, fp.Two, wp, mode), wp, mode)
		if err != nil {
			return nil, err
		}
	} else {
		t := fp.Mul(fp.Sub(r, a, wp, mode), fp.Half, wp, mode)
		sv, err := fp.Sqrt(t, wp, mode)
		if err != nil {
			return nil, err
		}
		if b.Sign() < 0 {
			sv = fp.NegExact(sv)
		}
		v = sv
		u, err = fp.Div(b, fp.Mul(v, fp.Two, wp, mode), wp, mode)
		if err != nil {
			return nil, err
		}
	}
	return Complex{
		re: Real{v: fp.Pos(u, c.prec, c.mode)},
		im: Real{v: fp.Pos(v, c.prec, c.mode)},
	}, nil
}

// Exp returns e^x. A Complex argument uses the polar identity
// e^(a+bi) = e^a * (cos b + i sin b) with ten guard bits.
func (c *Context) Exp(x Number) (Number, error) {
	px, err := c.promote(x)
	if err != nil {
		return nil, err
	}
	if r, ok := px.(Real); ok {
		v, err := fp.Exp(r.v, c.prec, c.mode)
		if err != nil {
			return nil, err
		}
		return Real{v: v}, nil
	}
	z := px.(Complex)
	wp, mode := c.prec+10, c.mode
	m, err := fp.Exp(z.re.v, wp, mode)
	if err != nil {
		return nil, err
	}
	cosb, sinb := fp.CosSin(z.im.v, wp, mode)
	return Complex{
		re: Real{v: fp.Pos(fp.Mul(m, cosb, wp, mode), c.prec, c.mode)},
		im: Real{v: fp.Pos(fp.Mul(m, sinb, wp, mode), c.prec, c.mode)},
	}, nil
}

// Log returns the natural logarithm of x. Zero has no logarithm and
// fails with DomainError. A negative Real lands on the principal branch
// (ln|x| + pi*i), unless the context traps complex results. A Complex
// argument yields (ln|z|, arg z) with six guard bits.
func (c *Context) Log(x Number) (Number, error) {
	px, err := c.promote(x)
	if err != nil {
		return nil, err
	}
	if r, ok := px.(Real); ok {
		if r.IsZero() {
			return nil, DomainError{Op: "log", Reason: "logarithm of 0"}
		}
		if r.Sign() > 0 {
			v, err := fp.Log(r.v, c.prec, c.mode)
			if err != nil {
				return nil, err
			}
			return Real{v: v}, nil
		}
		if c.trapComplex {
			return nil, ComplexResultError{Op: "log"}
		}
		re, err := fp.Log(fp.NegExact(r.v), c.prec+6, c.mode)
		if err != nil {
			return nil, err
		}
		return Complex{
			re: Real{v: fp.Pos(re, c.prec, c.mode)},
			im: Real{v: fp.Pi(c.prec, c.mode)},
		}, nil
	}

	z := px.(Complex)
	if z.IsZero() {
		return nil, DomainError{Op: "log", Reason: "logarithm of 0"}
	}
	wp, mode := c.prec+6, c.mode
	r := fp.Hypot(z.re.v, z.im.v, wp, mode)
	re, err := fp.Log(r, wp, mode)
	if err != nil {
		return nil, err
	}
	arg, err := atan2Kernel(z.im.v, z.re.v, wp, mode)
	if err != nil {
		return nil, err
	}
	return Complex{
		re: Real{v: fp.Pos(re, c.prec, c.mode)},
		im: Real{v: fp.Pos(arg, c.prec, c.mode)},
	}, nil
}

// Cos returns the cosine of x. A Complex argument uses
// cos(a+bi) = cos a cosh b - i sin a sinh b with eight guard bits.
func (c *Context) Cos(x Number) (Number, error) {
	px, err := c.promote(x)
	if err != nil {
		return nil, err
	}
	if r, ok := px.(Real); ok {
		return Real{v: fp.Cos(r.v, c.prec, c.mode)}, nil
	}
	z := px.(Complex)
	cosa, sina, cosh, sinh, err := c.trigParts(z)
	if err != nil {
		return nil, err
	}
	wp, mode := c.prec+8, c.mode
	return Complex{
		re: Real{v: fp.Pos(fp.Mul(cosa, cosh, wp, mode), c.prec, c.mode)},
		im: Real{v: fp.Pos(fp.NegExact(fp.Mul(sina, sinh, wp, mode)), c.prec, c.mode)},
	}, nil
}

// Sin returns the sine of x. A Complex argument uses
// sin(a+bi) = sin a cosh b + i cos a sinh b with eight guard bits.
func (c *Context) Sin(x Number) (Number, error) {
	px, err := c.promote(x)
	if err != nil {
		return nil, err
	}
	if r, ok := px.(Real); ok {
		return Real{v: fp.Sin(r.v, c.prec, c.mode)}, nil
	}
	z := px.(Complex)
	cosa, sina, cosh, sinh, err := c.trigParts(z)
	if err != nil {
		return nil, err
	}
	wp, mode := c.prec+8, c.mode
	return Complex{
		re: Real{v: fp.Pos(fp.Mul(sina, cosh, wp, mode), c.prec, c.mode)},
		im: Real{v: fp.Pos(fp.Mul(cosa, sinh, wp, mode), c.prec, c.mode)},
	}, nil
}

// trigParts computes cos a, sin a, cosh b and sinh b for z = a+bi at
// eight extra bits. cosh and sinh come from one exponential and its
// reciprocal.
func (c *Context) trigParts(z Complex) (cosa, sina, cosh, sinh fp.Float, err error) {
	wp, mode := c.prec+8, c.mode
	cosa, sina = fp.CosSin(z.re.v, wp, mode)
	var eb, inv fp.Float
	eb, err = fp.Exp(z.im.v, wp, mode)
	if err != nil {
		return
	}
	inv, err = fp.Div(fp.One, eb, wp, mode)
	if err != nil {
		return
	}
	cosh = fp.Mul(fp.Add(eb, inv, wp, mode), fp.Half, wp, mode)
	sinh = fp.Mul(fp.Sub(eb, inv, wp, mode), fp.Half, wp, mode)
	return
}

// Atan returns the arc tangent of a real x. Complex arguments are out
// of scope and fail with DomainError.
func (c *Context) Atan(x Number) (Real, error) {
	px, err := c.promote(x)
	if err != nil {
		return Real{}, err
	}
	r, ok := px.(Real)
	if !ok {
		return Real{}, DomainError{Op: "atan", Reason: "not defined for complex arguments"}
	}
	return Real{v: fp.Atan(r.v, c.prec, c.mode)}, nil
}

// Atan2 returns the two-argument arc tangent of y/x, placing the result
// in the quadrant of (x, y). Both arguments must be real.
func (c *Context) Atan2(y, x Number) (Real, error) {
	ry, err := c.promoteReal(y)
	if err != nil {
		return Real{}, err
	}
	rx, err := c.promoteReal(x)
	if err != nil {
		return Real{}, err
	}
	v, err := atan2Kernel(ry.v, rx.v, c.prec+4, c.mode)
	if err != nil {
		return Real{}, err
	}
	return Real{v: fp.Pos(v, c.prec, c.mode)}, nil
}

// atan2Kernel implements the quadrant logic at working precision wp;
// the caller rounds the result. atan2(0, 0) is 0 by convention.
func atan2Kernel(y, x fp.Float, wp uint, mode fp.RoundingMode) (fp.Float, error) {
	if x.IsZero() {
		switch y.Sign() {
		case 0:
			return fp.Zero, nil
		case 1:
			return halfPi(wp, mode), nil
		default:
			return fp.NegExact(halfPi(wp, mode)), nil
		}
	}
	q, err := fp.Div(y, x, wp, mode)
	if err != nil {
		return fp.Zero, err
	}
	t := fp.Atan(q, wp, mode)
	if x.Sign() > 0 {
		return t, nil
	}
	pi := fp.Pi(wp, mode)
	if y.Sign() >= 0 {
		return fp.Add(t, pi, wp, mode), nil
	}
	return fp.Sub(t, pi, wp, mode), nil
}

func halfPi(wp uint, mode fp.RoundingMode) fp.Float {
	return fp.Mul(fp.Pi(wp, mode), fp.Half, wp, mode)
}

// Hypot returns sqrt(x^2 + y^2) for real arguments, without the
// overflow concerns a native implementation would have.
func (c *Context) Hypot(x, y Number) (Real, error) {
	rx, err := c.promoteReal(x)
	if err != nil {
		return Real{}, err
	}
	ry, err := c.promoteReal(y)
	if err != nil {
		return Real{}, err
	}
	return Real{v: fp.Hypot(rx.v, ry.v, c.prec, c.mode)}, nil
}
