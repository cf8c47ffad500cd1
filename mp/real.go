package mp

import (
	"encoding/binary"
	"hash/fnv"
	"math"

	"github.com/agbru/mpcalc/fp"
)

// Real is a real number: one kernel Float, held already rounded to the
// context precision that was in effect when it was constructed. It is
// never re-rounded lazily; explicit re-construction (or Context.Round)
// applies a new precision.
type Real struct {
	v fp.Float
}

// Float returns the underlying kernel value.
func (x Real) Float() fp.Float { return x.v }

// Sign returns -1, 0 or +1 according to the sign of x.
func (x Real) Sign() int { return x.v.Sign() }

// IsZero reports whether x is zero.
func (x Real) IsZero() bool { return x.v.IsZero() }

// Eq reports exact (canonical triple) equality with y.
func (x Real) Eq(y Real) bool { return x.v.Eq(y.v) }

// Float64 returns the nearest native float; values beyond the float64
// range yield the signed infinity.
func (x Real) Float64() float64 { return fp.Float64(x.v) }

// Text renders x with dps significant decimal digits.
func (x Real) Text(dps int) string { return fp.Text(x.v, dps) }

// String renders x at the default 15 digits. Use Context.Format to
// render at the context's digit precision.
func (x Real) String() string { return x.Text(DefaultDps) }

// Hash returns a hash consistent with Eq. A Real within native float
// range hashes as the bit pattern of its nearest float64, so values that
// equal a native float or integer hash identically to that native value
// in hash-based containers. Values beyond the float64 range fall back to
// hashing the canonical triple; cross-type hash compatibility is lost
// for them.
func (x Real) Hash() uint64 {
	f := fp.Float64(x.v)
	if !math.IsInf(f, 0) {
		return math.Float64bits(f)
	}
	h := fnv.New64a()
	h.Write(x.v.Mant().Bytes())
	var buf [10]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(int64(x.v.Exp())))
	if x.v.Sign() < 0 {
		buf[8] = 1
	}
	buf[9] = byte(x.v.BitCount())
	h.Write(buf[:])
	return h.Sum64()
}
