package mp

import (
	"math"

	"github.com/agbru/mpcalc/fp"
)

// Default working precision: 53 bits, matching a native float64, and the
// 15 decimal digits that correspond to it.
const (
	DefaultPrec = 53
	DefaultDps  = 15
)

// log2of10 converts between binary and decimal precision.
const log2of10 = 3.321928094887362

// Context carries the working precision (tracked both in bits and in
// decimal digits), the active rounding mode and the trap-complex policy.
// Every operation reads the context at call time; nothing captures it at
// construction.
//
// A Context is not safe for concurrent use. Concurrent computations must
// each own a Context (or confine one to a single goroutine); the scoped
// elevation done by the guard-digit algorithms mutates it in place.
type Context struct {
	prec        uint
	dps         uint
	mode        fp.RoundingMode
	trapComplex bool
	parThresh   uint
}

// NewContext returns a context with the default precision and rounding
// mode (53 bits / 15 digits, half-even) and trap-complex disabled.
func NewContext() *Context {
	return &Context{prec: DefaultPrec, dps: DefaultDps, mode: fp.DefaultRoundingMode}
}

// Prec returns the working precision in bits.
func (c *Context) Prec() uint { return c.prec }

// Dps returns the working precision in decimal digits.
func (c *Context) Dps() uint { return c.dps }

// Mode returns the active rounding mode.
func (c *Context) Mode() fp.RoundingMode { return c.mode }

// SetMode sets the rounding mode and returns c.
func (c *Context) SetMode(mode fp.RoundingMode) *Context {
	c.mode = mode
	return c
}

// SetPrec sets the working precision to bits (clamped to >= 1),
// recomputes the equivalent decimal digit count and returns c.
func (c *Context) SetPrec(bits uint) *Context {
	if bits < 1 {
		bits = 1
	}
	c.prec = bits
	d := int(math.Round(float64(bits)/log2of10)) - 1
	if d < 1 {
		d = 1
	}
	c.dps = uint(d)
	return c
}

// SetDps sets the working precision to d decimal digits (clamped to
// >= 1), recomputes the equivalent bit count and returns c.
func (c *Context) SetDps(d uint) *Context {
	if d < 1 {
		d = 1
	}
	c.dps = d
	p := int(math.Round(float64(d+1) * log2of10))
	if p < 1 {
		p = 1
	}
	c.prec = uint(p)
	return c
}

// SetParallelThreshold sets the mantissa bit size above which complex
// multiplication parallelizes its partial products, and returns c.
// Zero restores the package default.
func (c *Context) SetParallelThreshold(bits uint) *Context {
	c.parThresh = bits
	return c
}

func (c *Context) parallelThreshold() uint {
	if c.parThresh == 0 {
		return DefaultParallelMulThreshold
	}
	return c.parThresh
}

// TrapComplex reports whether real operations that would produce a
// complex result fail instead of promoting.
func (c *Context) TrapComplex() bool { return c.trapComplex }

// SetTrapComplex sets the trap-complex policy and returns c.
func (c *Context) SetTrapComplex(trap bool) *Context {
	c.trapComplex = trap
	return c
}

// ExtraPrec raises the working precision by delta bits and returns a
// restore function. The caller must defer the restore so the prior
// precision comes back on every exit path, including failures:
//
//	defer c.ExtraPrec(20)()
//
// Restore reinstates the exact prior bit/digit pair rather than
// recomputing it, so repeated elevation round-trips do not drift.
func (c *Context) ExtraPrec(delta uint) (restore func()) {
	oldPrec, oldDps := c.prec, c.dps
	c.SetPrec(c.prec + delta)
	return func() {
		c.prec, c.dps = oldPrec, oldDps
	}
}

// eps returns 2^(-prec+n) as a kernel value, the building block for the
// tolerance and convergence thresholds.
func (c *Context) eps(n int) fp.Float {
	return fp.New(intOneBig, -int(c.prec)+n, c.prec, fp.RoundDown)
}
