// Package fp implements the arbitrary-precision binary floating-point
// kernel: a canonical (mantissa, exponent, bitcount) representation and
// correctly-rounded arithmetic primitives parameterized by an explicit
// target precision and rounding mode.
//
// Every value is a Float triple meaning mantissa * 2^exponent, with the
// mantissa held as a math/big integer. Operations never mutate their
// operands; each result is produced by Normalize, which enforces the
// canonical-form invariants (odd mantissa, exact bitcount, bitcount
// bounded by the producing precision).
//
// The kernel is precision-agnostic: it has no working-precision state of
// its own. Callers (see the mp package) thread precision and rounding
// through every call.
package fp
