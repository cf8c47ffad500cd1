package fp

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// FromInt64 returns v rounded to prec bits.
func FromInt64(v int64, prec uint, mode RoundingMode) Float {
	return Normalize(big.NewInt(v), 0, prec, mode)
}

// FromInt returns v rounded to prec bits. v is not retained.
func FromInt(v *big.Int, prec uint, mode RoundingMode) Float {
	return New(v, 0, prec, mode)
}

// FromFloat64 converts a finite native float exactly (a float64 is a
// 53-bit binary float, so no rounding can occur until prec < 53) and then
// rounds to prec bits. NaN and infinities return ErrNonFinite.
func FromFloat64(f float64, prec uint, mode RoundingMode) (Float, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Zero, ErrNonFinite
	}
	if f == 0 {
		return Zero, nil
	}
	frac, exp := math.Frexp(f)
	// frac is in [0.5, 1); scaling by 2^53 yields an exact integer for
	// normal and subnormal inputs alike.
	mant := int64(frac * (1 << 53))
	return Normalize(big.NewInt(mant), exp-53, prec, mode), nil
}

// Float64 converts x to the nearest native float. Values beyond the
// float64 range yield the appropriately signed infinity.
func Float64(x Float) float64 {
	if x.Sign() == 0 {
		return 0
	}
	v := Pos(x, 53, RoundHalfEven)
	return math.Ldexp(float64(v.mant.Int64()), v.exp)
}

// Int truncates x toward zero and returns the integer part.
func Int(x Float) *big.Int {
	if x.Sign() == 0 {
		return new(big.Int)
	}
	if x.exp >= 0 {
		return new(big.Int).Lsh(x.mant, uint(x.exp))
	}
	m := new(big.Int).Abs(x.mant)
	m.Rsh(m, uint(-x.exp))
	if x.Sign() < 0 {
		m.Neg(m)
	}
	return m
}

// FromString parses a decimal string of the form
//
//	[+-]digits[.digits][(e|E)[+-]digits]
//
// and rounds the exact decimal value to prec bits. A malformed string
// returns a SyntaxError.
//
// A non-negative decimal exponent converts exactly (the value is an
// integer); a negative one divides by the corresponding power of ten
// with divGuardBits of padding, the same documented approximation used
// by Div.
func FromString(s string, prec uint, mode RoundingMode) (Float, error) {
	digits, dexp, neg, ok := parseDecimal(s)
	if !ok {
		return Zero, SyntaxError{Input: s}
	}
	if digits.Sign() == 0 {
		return Zero, nil
	}
	if neg {
		digits.Neg(digits)
	}
	if dexp >= 0 {
		scale := new(big.Int).Exp(intTen, big.NewInt(int64(dexp)), nil)
		return Normalize(digits.Mul(digits, scale), 0, prec, mode), nil
	}
	den := new(big.Int).Exp(intTen, big.NewInt(int64(-dexp)), nil)
	shift := int(prec) + divGuardBits + den.BitLen() - digits.BitLen()
	if shift < 0 {
		shift = 0
	}
	num := new(big.Int).Lsh(digits, uint(shift))
	num.Quo(num, den)
	return Normalize(num, -shift, prec, mode), nil
}

// parseDecimal splits s into an unsigned digit string value, a decimal
// exponent and a sign. ok is false if s is not a valid decimal number.
func parseDecimal(s string) (digits *big.Int, dexp int, neg bool, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, 0, false, false
	}
	switch s[0] {
	case '+':
		s = s[1:]
	case '-':
		neg = true
		s = s[1:]
	}
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		e, err := strconv.Atoi(s[i+1:])
		if err != nil {
			return nil, 0, false, false
		}
		dexp = e
		s = s[:i]
	}
	intPart := s
	if i := strings.IndexByte(s, '.'); i >= 0 {
		frac := s[i+1:]
		intPart = s[:i] + frac
		dexp -= len(frac)
	}
	if intPart == "" {
		return nil, 0, false, false
	}
	for i := 0; i < len(intPart); i++ {
		if intPart[i] < '0' || intPart[i] > '9' {
			return nil, 0, false, false
		}
	}
	digits, ok = new(big.Int).SetString(intPart, 10)
	return digits, dexp, neg, ok
}

// Text renders x as a decimal string with dps significant digits. The
// output parses back (via FromString at the producing precision) to a
// value that agrees with x within one unit of the last rendered digit.
//
// Values whose leading digit falls close to the decimal point are
// rendered positionally ("3.5", "0.0001"); more extreme magnitudes use
// exponent notation ("1.25e-12").
func Text(x Float, dps int) string {
	if dps < 1 {
		dps = 1
	}
	if x.Sign() == 0 {
		return "0.0"
	}

	digits, e10 := decimalDigits(x, dps)
	ds := digits.String()
	// decimalDigits guarantees exactly dps digits.
	var sb strings.Builder
	if x.Sign() < 0 {
		sb.WriteByte('-')
	}
	switch {
	case e10 < -6 || e10 >= dps+6:
		// d.ddd...e±x
		sb.WriteByte(ds[0])
		frac := strings.TrimRight(ds[1:], "0")
		sb.WriteByte('.')
		if frac == "" {
			sb.WriteByte('0')
		} else {
			sb.WriteString(frac)
		}
		sb.WriteByte('e')
		sb.WriteString(strconv.Itoa(e10))
	case e10 < 0:
		// 0.000ddd
		sb.WriteString("0.")
		sb.WriteString(strings.Repeat("0", -e10-1))
		sb.WriteString(strings.TrimRight(ds, "0"))
	case e10 >= dps-1:
		// All digits are integral; pad with zeros up to the point.
		sb.WriteString(ds)
		sb.WriteString(strings.Repeat("0", e10-(dps-1)))
		sb.WriteString(".0")
	default:
		sb.WriteString(ds[:e10+1])
		frac := strings.TrimRight(ds[e10+1:], "0")
		sb.WriteByte('.')
		if frac == "" {
			sb.WriteByte('0')
		} else {
			sb.WriteString(frac)
		}
	}
	return sb.String()
}

// decimalDigits returns an integer holding exactly dps significant
// decimal digits of |x|, rounded to nearest, together with the decimal
// exponent e10 of the leading digit (|x| ≈ 0.d1d2... * 10^(e10+1)).
func decimalDigits(x Float, dps int) (*big.Int, int) {
	// First estimate of the leading digit's exponent from the binary
	// magnitude; may be off by one, corrected below.
	e10 := int(math.Floor(float64(x.mag()-1) * ln2Overln10))

	d := scaleToDigits(x, dps, e10)
	lo := new(big.Int).Exp(intTen, big.NewInt(int64(dps-1)), nil)
	hi := new(big.Int).Mul(lo, intTen)
	for d.Cmp(hi) >= 0 {
		e10++
		d = scaleToDigits(x, dps, e10)
	}
	for d.Cmp(lo) < 0 {
		e10--
		d = scaleToDigits(x, dps, e10)
	}
	return d, e10
}

const ln2Overln10 = 0.3010299956639812

// scaleToDigits computes round(|x| * 10^(dps-1-e10)) as an integer.
func scaleToDigits(x Float, dps, e10 int) *big.Int {
	g := dps - 1 - e10
	num := new(big.Int).Abs(x.mant)
	den := big.NewInt(1)
	if g >= 0 {
		num.Mul(num, new(big.Int).Exp(intTen, big.NewInt(int64(g)), nil))
	} else {
		den.Exp(intTen, big.NewInt(int64(-g)), nil)
	}
	if x.exp >= 0 {
		num.Lsh(num, uint(x.exp))
	} else {
		den.Lsh(den, uint(-x.exp))
	}
	// Round the quotient to nearest.
	num.Lsh(num, 1)
	num.Add(num, den)
	num.Quo(num, den)
	num.Rsh(num, 1)
	return num
}
