package mp

import (
	"github.com/agbru/mpcalc/fp"
)

// AlmostEqual reports whether x and y agree to within the default
// tolerance of 2^(-prec+4) at the context's current precision, applied
// both absolutely and relatively. Complex operands compare by
// magnitude of the difference.
func (c *Context) AlmostEqual(x, y Number) (bool, error) {
	eps := Real{v: c.eps(4)}
	return c.AlmostEqualEps(x, y, eps, eps)
}

// AlmostEqualEps is AlmostEqual with explicit tolerances. relEps bounds
// |x-y| / max(|x|, |y|) and absEps bounds |x-y|; the test passes when
// either bound holds. A zero-valued tolerance is taken literally, so
// passing two zeros demands exact equality.
func (c *Context) AlmostEqualEps(x, y Number, relEps, absEps Real) (bool, error) {
	px, py, err := c.promotePair(x, y)
	if err != nil {
		return false, err
	}
	d, err := c.Sub(px, py)
	if err != nil {
		return false, err
	}
	diff, err := c.Abs(d)
	if err != nil {
		return false, err
	}
	if fp.Cmp(diff.v, absEps.v) <= 0 {
		return true, nil
	}
	ax, err := c.Abs(px)
	if err != nil {
		return false, err
	}
	ay, err := c.Abs(py)
	if err != nil {
		return false, err
	}
	// Relative error against the larger magnitude.
	m := ax
	if fp.Cmp(ay.v, ax.v) > 0 {
		m = ay
	}
	if m.IsZero() {
		// Both operands are zero and the absolute test already failed,
		// which can only happen with a negative absEps.
		return false, nil
	}
	rel, err := fp.Div(diff.v, m.v, c.prec, c.mode)
	if err != nil {
		return false, err
	}
	return fp.Cmp(rel, relEps.v) <= 0, nil
}
