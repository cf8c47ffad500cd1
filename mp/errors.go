package mp

import (
	"fmt"

	"github.com/agbru/mpcalc/fp"
)

// ErrDivisionByZero is returned when a divisor (real, or the squared
// magnitude of a complex divisor) is zero. It is the kernel's sentinel,
// re-exported so callers need only this package.
var ErrDivisionByZero = fp.ErrDivisionByZero

// UnrepresentableError reports a construction input whose kind cannot be
// converted to a number. No partial result is produced.
type UnrepresentableError struct {
	// Value is the rejected input.
	Value any
}

// Error returns a message naming the rejected input's type.
func (e UnrepresentableError) Error() string {
	return fmt.Sprintf("cannot create number from %T (%v)", e.Value, e.Value)
}

// DomainError reports an operation applied outside its mathematical
// domain, such as the logarithm of zero or an ordering comparison
// between complex values.
type DomainError struct {
	// Op is the operation that failed.
	Op string
	// Reason describes the domain violation.
	Reason string
}

// Error returns the operation and the violated constraint.
func (e DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

// ComplexResultError reports that an operation restricted to reals would
// have produced a complex result while the context's trap-complex policy
// is active. With the policy off (the default) the operation promotes to
// Complex instead of failing.
type ComplexResultError struct {
	// Op is the operation whose result left the real line.
	Op string
}

// Error returns the trapped operation.
func (e ComplexResultError) Error() string {
	return fmt.Sprintf("%s: complex result with trap-complex enabled", e.Op)
}

// NonConvergenceError reports an iterative algorithm that exhausted its
// iteration ceiling without meeting its convergence criterion. The last
// estimate is deliberately not returned; a caller that wants a
// best-effort value must retry at a different precision explicitly.
type NonConvergenceError struct {
	// Op is the algorithm that failed to converge.
	Op string
	// Iterations is the ceiling that was exhausted.
	Iterations int
}

// Error returns the algorithm name and its iteration ceiling.
func (e NonConvergenceError) Error() string {
	return fmt.Sprintf("%s: no convergence after %d iterations", e.Op, e.Iterations)
}
