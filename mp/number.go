package mp

import (
	"math/big"

	"github.com/agbru/mpcalc/fp"
)

var intOneBig = big.NewInt(1)

// Number is the closed variant over every value kind the arithmetic
// accepts. The concrete kinds are Integer, Native, Decimal, Real and
// Complex; promotion to Real or Complex happens in one central place
// (see promote), never in per-operation type chains.
type Number interface {
	isNumber()
}

// Integer is a machine integer operand. It promotes on the fast path:
// the mantissa is the integer itself with exponent zero.
type Integer int64

// Native is a native floating-point operand. Only finite values convert.
type Native float64

// Decimal is a decimal-formatted string operand, e.g. "3.5" or
// "1.25e-12". In arithmetic it converts through the decimal parser; in
// equality comparisons it is treated as text and never equal (see
// Context.Equal).
type Decimal string

func (Integer) isNumber() {}
func (Native) isNumber()  {}
func (Decimal) isNumber() {}
func (Real) isNumber()    {}
func (Complex) isNumber() {}

// NewNumber converts an arbitrary input into a Number, returning a Real
// for real-valued inputs and a Complex for complex-valued ones. Accepted
// kinds: Number, every Go integer type, *big.Int, float32/float64,
// complex64/complex128, string, and fp.Float. Anything else fails with
// UnrepresentableError.
func (c *Context) NewNumber(v any) (Number, error) {
	switch x := v.(type) {
	case Real:
		return x, nil
	case Complex:
		return x, nil
	case Integer, Native, Decimal:
		return c.promote(x.(Number))
	case int:
		return c.promote(Integer(x))
	case int8:
		return c.promote(Integer(x))
	case int16:
		return c.promote(Integer(x))
	case int32:
		return c.promote(Integer(x))
	case int64:
		return c.promote(Integer(x))
	case uint8:
		return c.promote(Integer(x))
	case uint16:
		return c.promote(Integer(x))
	case uint32:
		return c.promote(Integer(x))
	case uint:
		return Real{v: fp.FromInt(new(big.Int).SetUint64(uint64(x)), c.prec, c.mode)}, nil
	case uint64:
		return Real{v: fp.FromInt(new(big.Int).SetUint64(x), c.prec, c.mode)}, nil
	case float32:
		return c.promote(Native(x))
	case float64:
		return c.promote(Native(x))
	case string:
		return c.promote(Decimal(x))
	case *big.Int:
		return Real{v: fp.FromInt(x, c.prec, c.mode)}, nil
	case fp.Float:
		return Real{v: fp.Pos(x, c.prec, c.mode)}, nil
	case complex64:
		return c.newComplex128(complex128(x))
	case complex128:
		return c.newComplex128(x)
	}
	return nil, UnrepresentableError{Value: v}
}

// NewReal converts v like NewNumber but requires a real-valued result;
// a complex-valued input fails with UnrepresentableError. A Real input
// is re-rounded to the context's current precision.
func (c *Context) NewReal(v any) (Real, error) {
	if r, ok := v.(Real); ok {
		return Real{v: fp.Pos(r.v, c.prec, c.mode)}, nil
	}
	n, err := c.NewNumber(v)
	if err != nil {
		return Real{}, err
	}
	r, ok := n.(Real)
	if !ok {
		return Real{}, UnrepresentableError{Value: v}
	}
	return r, nil
}

// NewRealFromMantExp constructs a Real from a raw mantissa/exponent
// pair, rounded to the context precision. mant is not retained.
func (c *Context) NewRealFromMantExp(mant *big.Int, exp int) Real {
	return Real{v: fp.New(mant, exp, c.prec, c.mode)}
}

// NewComplex builds a Complex from two real-valued inputs.
func (c *Context) NewComplex(re, im any) (Complex, error) {
	r, err := c.NewReal(re)
	if err != nil {
		return Complex{}, err
	}
	i, err := c.NewReal(im)
	if err != nil {
		return Complex{}, err
	}
	return Complex{re: r, im: i}, nil
}

func (c *Context) newComplex128(z complex128) (Number, error) {
	re, err := fp.FromFloat64(real(z), c.prec, c.mode)
	if err != nil {
		return nil, UnrepresentableError{Value: z}
	}
	im, err := fp.FromFloat64(imag(z), c.prec, c.mode)
	if err != nil {
		return nil, UnrepresentableError{Value: z}
	}
	return Complex{re: Real{v: re}, im: Real{v: im}}, nil
}

// promote maps any Number onto the two computational kinds. The result
// is always a Real or a Complex; Real and Complex inputs pass through
// unchanged (re-rounding happens only on explicit construction).
func (c *Context) promote(n Number) (Number, error) {
	switch x := n.(type) {
	case Real, Complex:
		return x, nil
	case Integer:
		return Real{v: fp.FromInt64(int64(x), c.prec, c.mode)}, nil
	case Native:
		v, err := fp.FromFloat64(float64(x), c.prec, c.mode)
		if err != nil {
			return nil, UnrepresentableError{Value: float64(x)}
		}
		return Real{v: v}, nil
	case Decimal:
		v, err := fp.FromString(string(x), c.prec, c.mode)
		if err != nil {
			return nil, UnrepresentableError{Value: string(x)}
		}
		return Real{v: v}, nil
	}
	return nil, UnrepresentableError{Value: n}
}

// promoteReal is promote restricted to real results.
func (c *Context) promoteReal(n Number) (Real, error) {
	p, err := c.promote(n)
	if err != nil {
		return Real{}, err
	}
	r, ok := p.(Real)
	if !ok {
		return Real{}, UnrepresentableError{Value: n}
	}
	return r, nil
}

// complexify widens a promoted Number to Complex.
func complexify(n Number) Complex {
	switch x := n.(type) {
	case Complex:
		return x
	case Real:
		return Complex{re: x}
	}
	// promote never lets another kind through.
	panic("mp: complexify on unpromoted number")
}
