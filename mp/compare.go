package mp

import (
	"github.com/agbru/mpcalc/fp"
)

// Equal reports whether x and y represent the same value.
//
// Two rules depart from plain promotion. A Decimal operand compares as
// text, never as a number, so Equal(Decimal("3.5"), Native(3.5)) is
// false even though the two convert to the same Float; Cmp and the
// arithmetic operations do convert Decimals. And a conversion failure
// makes the operands unequal rather than failing, so Equal is total.
func (c *Context) Equal(x, y Number) bool {
	dx, okx := x.(Decimal)
	dy, oky := y.(Decimal)
	if okx || oky {
		return okx && oky && dx == dy
	}
	px, err := c.promote(x)
	if err != nil {
		return false
	}
	py, err := c.promote(y)
	if err != nil {
		return false
	}
	if a, b, ok := bothReal(px, py); ok {
		return a.Eq(b)
	}
	return complexify(px).Eq(complexify(py))
}

// Cmp orders x and y, returning -1, 0 or +1. Decimal operands convert
// numerically here, unlike in Equal. Complex operands have no ordering;
// comparing one fails with a DomainError.
func (c *Context) Cmp(x, y Number) (int, error) {
	px, py, err := c.promotePair(x, y)
	if err != nil {
		return 0, err
	}
	a, b, ok := bothReal(px, py)
	if !ok {
		return 0, DomainError{Op: "cmp", Reason: "no ordering relation is defined for complex numbers"}
	}
	return fp.Cmp(a.v, b.v), nil
}
