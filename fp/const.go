package fp

import (
	"math/big"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/agbru/mpcalc/internal/metrics"
)

// constGuardBits is the extra precision at which a constant is computed
// before being cached; serving a cached value rounds it down, so the
// guard keeps that second rounding harmless in all but pathological
// cases.
const constGuardBits = 10

// constEntry is a memoized constant: the value and the precision it was
// computed at. A lookup hits only if the cached precision covers the
// request; otherwise the constant is recomputed and the entry
// overwritten.
type constEntry struct {
	prec uint
	val  Float
}

// constCacheSize bounds the number of distinct cached constants. The
// kernel uses three; the slack is for future constants.
const constCacheSize = 8

var constCache, _ = lru.New[string, constEntry](constCacheSize)

// cachedConst serves the named constant at prec bits, computing it with
// compute (which receives the guarded working precision) on a miss.
func cachedConst(name string, prec uint, mode RoundingMode, compute func(wp uint) Float) Float {
	wp := prec + constGuardBits
	if e, ok := constCache.Get(name); ok && e.prec >= wp {
		metrics.ConstCacheHits.Inc()
		return Pos(e.val, prec, mode)
	}
	metrics.ConstCacheMisses.Inc()
	v := compute(wp)
	constCache.Add(name, constEntry{prec: wp, val: v})
	return Pos(v, prec, mode)
}

// Pi returns the circle constant rounded to prec bits, computed with
// Machin's formula pi = 16*acot(5) - 4*acot(239) in integer arithmetic.
func Pi(prec uint, mode RoundingMode) Float {
	return cachedConst("pi", prec, mode, func(wp uint) Float {
		wq := wp + 10
		s := acotFixed(5, wq)
		s.Lsh(s, 2)
		s.Sub(s, acotFixed(239, wq))
		s.Lsh(s, 2)
		return fromFixed(s, wq, wp, RoundHalfEven)
	})
}

// Ln2 returns the natural logarithm of 2 rounded to prec bits, from
// ln2 = 2*atanh(1/3) summed in integer arithmetic.
func Ln2(prec uint, mode RoundingMode) Float {
	return cachedConst("ln2", prec, mode, func(wp uint) Float {
		wq := wp + 10
		s := acothHalfFixed(3, wq)
		s.Lsh(s, 1)
		return fromFixed(s, wq, wp, RoundHalfEven)
	})
}

// E returns Euler's number rounded to prec bits.
func E(prec uint, mode RoundingMode) Float {
	return cachedConst("e", prec, mode, func(wp uint) Float {
		v, _ := Exp(One, wp, RoundHalfEven)
		return v
	})
}

// acotFixed sums acot(q) = sum (-1)^k / ((2k+1) q^(2k+1)) in fixed
// point at wp bits.
func acotFixed(q int64, wp uint) *big.Int {
	qq := big.NewInt(q * q)
	pw := fixOne(wp)
	pw.Quo(pw, big.NewInt(q))
	s := new(big.Int)
	add := true
	for k := int64(1); pw.Sign() != 0; k += 2 {
		t := new(big.Int).Quo(pw, big.NewInt(k))
		if add {
			s.Add(s, t)
		} else {
			s.Sub(s, t)
		}
		pw.Quo(pw, qq)
		add = !add
	}
	return s
}

// acothHalfFixed sums atanh(1/q) = sum 1 / ((2k+1) q^(2k+1)) in fixed
// point at wp bits.
func acothHalfFixed(q int64, wp uint) *big.Int {
	qq := big.NewInt(q * q)
	pw := fixOne(wp)
	pw.Quo(pw, big.NewInt(q))
	s := new(big.Int)
	for k := int64(1); pw.Sign() != 0; k += 2 {
		s.Add(s, new(big.Int).Quo(pw, big.NewInt(k)))
		pw.Quo(pw, qq)
	}
	return s
}
