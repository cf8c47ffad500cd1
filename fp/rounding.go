package fp

import (
	"fmt"
	"math/big"
	"strings"
)

// RoundingMode determines the direction in which a value is rounded when
// its mantissa must be truncated to fewer bits.
type RoundingMode uint8

// Supported rounding modes. RoundDown and RoundUp are magnitude-directed
// (toward and away from zero); RoundFloor and RoundCeiling are sign-aware
// (toward -inf and +inf); the three Half modes round to nearest and differ
// only in how they break exact halfway ties.
const (
	// RoundDown rounds toward zero (truncation).
	RoundDown RoundingMode = iota
	// RoundUp rounds away from zero whenever any dropped bit is set.
	RoundUp
	// RoundFloor rounds toward negative infinity.
	RoundFloor
	// RoundCeiling rounds toward positive infinity.
	RoundCeiling
	// RoundHalfDown rounds to nearest; exact halfway ties go toward zero.
	RoundHalfDown
	// RoundHalfUp rounds to nearest; exact halfway ties go away from zero.
	RoundHalfUp
	// RoundHalfEven rounds to nearest; exact halfway ties go to the value
	// whose retained mantissa has a 0 in its lowest bit. This is the
	// default mode.
	RoundHalfEven
)

// DefaultRoundingMode is the mode used when no explicit choice is made.
const DefaultRoundingMode = RoundHalfEven

// nearest reports whether the mode is a round-to-nearest mode. The
// addition fast path for widely separated operands is only valid for
// these modes; directed modes need a sentinel bit instead.
func (m RoundingMode) nearest() bool {
	return m >= RoundHalfDown
}

// String returns the lower-case name of the rounding mode.
func (m RoundingMode) String() string {
	switch m {
	case RoundDown:
		return "down"
	case RoundUp:
		return "up"
	case RoundFloor:
		return "floor"
	case RoundCeiling:
		return "ceiling"
	case RoundHalfDown:
		return "half-down"
	case RoundHalfUp:
		return "half-up"
	case RoundHalfEven:
		return "half-even"
	default:
		return fmt.Sprintf("RoundingMode(%d)", uint8(m))
	}
}

// ParseRoundingMode converts a mode name (as produced by String, ignoring
// case and a few common aliases) back into a RoundingMode.
func ParseRoundingMode(s string) (RoundingMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "down", "trunc", "truncate":
		return RoundDown, nil
	case "up":
		return RoundUp, nil
	case "floor":
		return RoundFloor, nil
	case "ceiling", "ceil":
		return RoundCeiling, nil
	case "half-down", "halfdown":
		return RoundHalfDown, nil
	case "half-up", "halfup":
		return RoundHalfUp, nil
	case "half-even", "halfeven", "nearest":
		return RoundHalfEven, nil
	}
	return DefaultRoundingMode, fmt.Errorf("unknown rounding mode %q", s)
}

// shiftRight drops the low k bits of x, rounding the retained value
// according to mode. The dropped bits are summarized as a guard bit (the
// highest dropped bit) and a sticky flag (the OR of all lower dropped
// bits), which together are sufficient for every supported mode.
func shiftRight(x *big.Int, k uint, mode RoundingMode) *big.Int {
	if k == 0 {
		return new(big.Int).Set(x)
	}
	neg := x.Sign() < 0
	abs := new(big.Int).Abs(x)
	q := new(big.Int).Rsh(abs, k)

	guard := abs.Bit(int(k-1)) == 1
	sticky := false
	if abs.Sign() != 0 && abs.TrailingZeroBits() < k-1 {
		sticky = true
	}

	if roundsAway(mode, neg, guard, sticky, q) {
		q.Add(q, intOne)
	}
	if neg {
		q.Neg(q)
	}
	return q
}

// roundsAway reports whether the retained magnitude q must be incremented
// by one unit in the last place. neg is the sign of the original value;
// guard and sticky summarize the dropped bits.
func roundsAway(mode RoundingMode, neg, guard, sticky bool, q *big.Int) bool {
	switch mode {
	case RoundDown:
		return false
	case RoundUp:
		return guard || sticky
	case RoundFloor:
		return neg && (guard || sticky)
	case RoundCeiling:
		return !neg && (guard || sticky)
	case RoundHalfUp:
		return guard
	case RoundHalfDown:
		return guard && sticky
	default: // RoundHalfEven
		if !guard {
			return false
		}
		if sticky {
			return true
		}
		// Exact halfway tie: round to even.
		return q.Bit(0) == 1
	}
}
