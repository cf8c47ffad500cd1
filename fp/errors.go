package fp

import (
	"errors"
	"fmt"
)

// Kernel error values. The mp package wraps these into its caller-facing
// error kinds; they are exported so errors.Is works across the layers.
var (
	// ErrDivisionByZero is returned when the divisor of Div (or the
	// implicit divisor of a negative power) is zero.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrNegSqrt is returned by Sqrt for a negative operand. The real
	// kernel cannot represent the complex result; the type layer decides
	// between promotion and trapping.
	ErrNegSqrt = errors.New("square root of a negative number")

	// ErrNonPositiveLog is returned by Log for a zero or negative
	// operand.
	ErrNonPositiveLog = errors.New("logarithm of a non-positive number")

	// ErrNonFinite is returned when converting a NaN or infinite native
	// float; the kernel has no non-finite representation.
	ErrNonFinite = errors.New("non-finite value")

	// ErrExponentRange is returned when a result's binary exponent would
	// not fit the exponent field (e.g. Exp of an astronomically large
	// argument).
	ErrExponentRange = errors.New("binary exponent out of range")
)

// SyntaxError reports a malformed decimal string passed to FromString.
type SyntaxError struct {
	// Input is the rejected string.
	Input string
}

// Error returns a message naming the rejected input.
func (e SyntaxError) Error() string {
	return fmt.Sprintf("invalid decimal number %q", e.Input)
}
