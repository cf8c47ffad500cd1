package mp

import (
	"github.com/agbru/mpcalc/fp"
)

// agmMaxIterations caps the AGM loop. Convergence is quadratic, so the
// iteration count grows with log2(prec) and a run that reaches the cap
// has stalled on a rounding plateau rather than slow convergence.
const agmMaxIterations = 1000

// AGM computes the arithmetic-geometric mean of x and y: the common
// limit of a' = (a+b)/2, b' = sqrt(ab). If either operand is zero the
// result is zero (the limit of the product). Operands whose product is
// negative leave the real line through the square root; under the
// trap-complex policy that fails instead.
//
// Iteration stops when |a-b| falls to sixteen units in the last place
// of the working precision, matching the quadratic convergence: each
// step roughly doubles the number of correct bits, so the final step
// lands well inside the requested precision.
func (c *Context) AGM(x, y Number) (Number, error) {
	a, b, err := c.promotePair(x, y)
	if err != nil {
		return nil, err
	}
	if isZero(a) || isZero(b) {
		return c.Mul(a, b)
	}

	weps := c.eps(5)
	half := Real{v: fp.Half}
	e := newCalc(c)
	for i := 0; i < agmMaxIterations; i++ {
		d := e.abs(e.sub(a, b))
		if e.err != nil {
			return nil, e.err
		}
		if fp.Cmp(d.(Real).v, weps) <= 0 {
			return c.Round(a), nil
		}
		an := e.mul(e.add(a, b), half)
		bn := e.sqrt(e.mul(a, b))
		if e.err != nil {
			return nil, e.err
		}
		a, b = an, bn
	}
	return nil, NonConvergenceError{Op: "agm", Iterations: agmMaxIterations}
}

func isZero(n Number) bool {
	switch v := n.(type) {
	case Real:
		return v.IsZero()
	case Complex:
		return v.IsZero()
	}
	return false
}
