// Package mp provides the user-facing arbitrary-precision number types:
// Real and Complex values built on the fp kernel, a Context carrying the
// working precision and rounding mode that every operation threads
// through, mixed-type promotion over a closed Number variant, and the
// guard-digit algorithms (arithmetic-geometric mean, Lambert W) that
// temporarily raise the working precision, iterate and round back down.
//
// A Context is an explicit value, not ambient state. It must be confined
// to one goroutine; concurrent computations each take their own Context.
package mp
