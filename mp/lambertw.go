package mp

import (
	"github.com/agbru/mpcalc/fp"
)

// lambertwMaxIterations caps the Halley loop. The iteration converges
// cubically from the seed estimates, so hitting the cap means the seed
// was outside the basin, not that more steps would help.
const lambertwMaxIterations = 100

// LambertW computes the principal branch of the Lambert W function:
// the w satisfying w*e^w = z.
func (c *Context) LambertW(z Number) (Number, error) {
	return c.LambertWBranch(z, 0)
}

// LambertWBranch computes branch k of the Lambert W function.
//
// The computation runs with twenty guard bits: a seed estimate chosen
// by the region of z (near the branch point at -1/e, near the origin,
// or the logarithmic asymptote log(z) + 2*pi*i*k), refined by Halley
// iteration until successive values agree to within 2^15 units in the
// last place. A loop that fails to converge fails with
// NonConvergenceError rather than returning the unverified last
// iterate.
//
// z = 0 belongs to the principal branch only; every other branch has a
// logarithmic singularity there and fails with DomainError.
func (c *Context) LambertWBranch(z Number, k int64) (Number, error) {
	pz, err := c.promote(z)
	if err != nil {
		return nil, err
	}
	if isZero(pz) {
		if k == 0 {
			return c.Round(pz), nil
		}
		return nil, DomainError{Op: "lambertw", Reason: "branch point at 0 for nonzero branch"}
	}

	restore := c.ExtraPrec(20)
	w, err := c.lambertwSeed(pz, k)
	if err != nil {
		restore()
		return nil, err
	}

	weps := c.eps(16)
	two := Real{v: fp.Two}
	e := newCalc(c)
	for i := 0; i < lambertwMaxIterations; i++ {
		// Halley step for f(w) = w*e^w - z.
		ew := e.exp(w)
		wew := e.mul(w, ew)
		wewz := e.sub(wew, pz)
		den := e.sub(
			e.add(wew, ew),
			e.div(e.mul(e.add(w, two), wewz), e.add(e.mul(two, w), two)),
		)
		wn := e.sub(w, e.div(wewz, den))
		diff := e.abs(e.sub(wn, w))
		bound := e.abs(wn)
		if e.err != nil {
			restore()
			return nil, e.err
		}
		if fp.Cmp(diff.(Real).v, fp.Mul(weps, bound.(Real).v, c.prec, c.mode)) < 0 {
			restore()
			return c.Round(wn), nil
		}
		w = wn
	}
	restore()
	return nil, NonConvergenceError{Op: "lambertw", Iterations: lambertwMaxIterations}
}

// lambertwSeed picks the starting point for the Halley iteration. Near
// the origin the identity W(z) ~ z seeds the principal branch; near the
// branch point the real branch k = -1 seeds from log(-z); everywhere
// else the asymptotic log(z) + 2*pi*i*k dominates.
func (c *Context) lambertwSeed(z Number, k int64) (Number, error) {
	e := newCalc(c)
	u := e.exp(Real{v: fp.NegExact(fp.One)})
	absz := e.abs(z)
	if e.err != nil {
		return nil, e.err
	}

	zr, zIsReal := z.(Real)
	switch {
	case fp.Cmp(absz.(Real).v, u.(Real).v) <= 0:
		if k == 0 {
			return z, nil
		}
		if k == -1 && zIsReal && zr.Sign() < 0 {
			return e.finish(e.log(Real{v: fp.NegExact(zr.v)}))
		}
		return e.finish(c.logPlusBranch(e, z, k))
	case k == 0 && !zIsReal && belowSeedRadius(absz.(Real).v, c.prec):
		return z, nil
	default:
		return e.finish(c.logPlusBranch(e, z, k))
	}
}

// logPlusBranch returns log(z) + 2*pi*i*k.
func (c *Context) logPlusBranch(e *calc, z Number, k int64) Number {
	l := e.log(z)
	if k == 0 {
		return l
	}
	twoPiK := fp.Mul(fp.Pi(c.prec, c.mode), fp.FromInt64(2*k, c.prec, c.mode), c.prec, c.mode)
	return e.add(l, Complex{im: Real{v: twoPiK}})
}

// belowSeedRadius reports |z| <= 0.6, the radius inside which z itself
// is still a workable principal-branch seed for complex arguments.
func belowSeedRadius(absz fp.Float, prec uint) bool {
	limit, err := fp.FromString("0.6", prec, fp.RoundUp)
	if err != nil {
		return false
	}
	return fp.Cmp(absz, limit) <= 0
}

func (e *calc) finish(v Number) (Number, error) {
	if e.err != nil {
		return nil, e.err
	}
	return v, nil
}
