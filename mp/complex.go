package mp

import (
	"github.com/agbru/mpcalc/fp"

	"golang.org/x/sync/errgroup"
)

// Complex is a complex number: a pair of Real components.
type Complex struct {
	re, im Real
}

// Re returns the real component.
func (z Complex) Re() Real { return z.re }

// Im returns the imaginary component.
func (z Complex) Im() Real { return z.im }

// IsZero reports whether both components are zero.
func (z Complex) IsZero() bool { return z.re.IsZero() && z.im.IsZero() }

// Eq reports component-wise exact equality with w.
func (z Complex) Eq(w Complex) bool { return z.re.Eq(w.re) && z.im.Eq(w.im) }

// Conj returns the complex conjugate, negated exactly (no rounding).
func (z Complex) Conj() Complex {
	return Complex{re: z.re, im: Real{v: fp.NegExact(z.im.v)}}
}

// DefaultParallelMulThreshold is the mantissa bit size above which the
// four partial products of a complex multiplication are computed
// concurrently. Below it the goroutine overhead outweighs the gain.
// Context.SetParallelThreshold overrides it per context.
const DefaultParallelMulThreshold = 4096

func (c *Context) cAdd(a, b Complex) Complex {
	return Complex{
		re: Real{v: fp.Add(a.re.v, b.re.v, c.prec, c.mode)},
		im: Real{v: fp.Add(a.im.v, b.im.v, c.prec, c.mode)},
	}
}

func (c *Context) cSub(a, b Complex) Complex {
	return Complex{
		re: Real{v: fp.Sub(a.re.v, b.re.v, c.prec, c.mode)},
		im: Real{v: fp.Sub(a.im.v, b.im.v, c.prec, c.mode)},
	}
}

func (c *Context) cNeg(a Complex) Complex {
	return Complex{
		re: Real{v: fp.Neg(a.re.v, c.prec, c.mode)},
		im: Real{v: fp.Neg(a.im.v, c.prec, c.mode)},
	}
}

// cMul multiplies two complex values as (ac-bd, ad+bc). When both
// imaginary parts are exactly zero the product stays on the real line:
// computing the general form there would round a component that is
// exactly zero and inject spurious noise. Very large mantissas compute
// the four partial products concurrently.
func (c *Context) cMul(x, y Complex) Complex {
	a, b := x.re.v, x.im.v
	d, e := y.re.v, y.im.v
	if b.IsZero() && e.IsZero() {
		return Complex{re: Real{v: fp.Mul(a, d, c.prec, c.mode)}}
	}

	var ad, be, ae, bd fp.Float
	if minBits(a, b, d, e) >= c.parallelThreshold() {
		var g errgroup.Group
		prec, mode := c.prec, c.mode
		g.Go(func() error { ad = fp.Mul(a, d, prec, mode); return nil })
		g.Go(func() error { be = fp.Mul(b, e, prec, mode); return nil })
		g.Go(func() error { ae = fp.Mul(a, e, prec, mode); return nil })
		g.Go(func() error { bd = fp.Mul(b, d, prec, mode); return nil })
		_ = g.Wait()
	} else {
		ad = fp.Mul(a, d, c.prec, c.mode)
		be = fp.Mul(b, e, c.prec, c.mode)
		ae = fp.Mul(a, e, c.prec, c.mode)
		bd = fp.Mul(b, d, c.prec, c.mode)
	}
	return Complex{
		re: Real{v: fp.Sub(ad, be, c.prec, c.mode)},
		im: Real{v: fp.Add(ae, bd, c.prec, c.mode)},
	}
}

// cDiv divides x by y via the conjugate: ((ac+bd)/m, (bc-ad)/m) with
// m = c^2 + d^2. A zero magnitude is a division by zero.
func (c *Context) cDiv(x, y Complex) (Complex, error) {
	a, b := x.re.v, x.im.v
	d, e := y.re.v, y.im.v
	mag := fp.Add(fp.Mul(d, d, c.prec, c.mode), fp.Mul(e, e, c.prec, c.mode), c.prec, c.mode)
	if mag.IsZero() {
		return Complex{}, ErrDivisionByZero
	}
	reNum := fp.Add(fp.Mul(a, d, c.prec, c.mode), fp.Mul(b, e, c.prec, c.mode), c.prec, c.mode)
	imNum := fp.Sub(fp.Mul(b, d, c.prec, c.mode), fp.Mul(a, e, c.prec, c.mode), c.prec, c.mode)
	re, err := fp.Div(reNum, mag, c.prec, c.mode)
	if err != nil {
		return Complex{}, err
	}
	im, err := fp.Div(imNum, mag, c.prec, c.mode)
	if err != nil {
		return Complex{}, err
	}
	return Complex{re: Real{v: re}, im: Real{v: im}}, nil
}

// cAbs returns |z| = hypot(re, im).
func (c *Context) cAbs(z Complex) Real {
	return Real{v: fp.Hypot(z.re.v, z.im.v, c.prec, c.mode)}
}

func minBits(vs ...fp.Float) uint {
	min := ^uint(0)
	for _, v := range vs {
		if bc := v.BitCount(); bc < min {
			min = bc
		}
	}
	return min
}
