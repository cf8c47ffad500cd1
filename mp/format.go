package mp

import (
	"fmt"
	"strings"

	"github.com/agbru/mpcalc/fp"
)

// Format renders a number at the context's decimal precision. Real
// values use positional or scientific notation as appropriate; Complex
// values render as "(re + imj)" with the sign folded into the
// separator. Non-promoted kinds render through promotion; if that
// fails, the raw operand is shown with a %v fallback so Format stays
// total.
func (c *Context) Format(x Number) string {
	p, err := c.promote(x)
	if err != nil {
		return fmt.Sprintf("%v", x)
	}
	switch v := p.(type) {
	case Real:
		return v.Text(int(c.dps))
	case Complex:
		return c.formatComplex(v, int(c.dps))
	}
	return fmt.Sprintf("%v", x)
}

// DebugString renders with two extra digits so values that Format would
// display identically become distinguishable, and tags the current
// precision. Intended for logs and failure messages, not output.
func (c *Context) DebugString(x Number) string {
	p, err := c.promote(x)
	if err != nil {
		return fmt.Sprintf("!%v", x)
	}
	dps := int(c.dps) + 2
	switch v := p.(type) {
	case Real:
		return fmt.Sprintf("%s @%d", v.Text(dps), c.prec)
	case Complex:
		return fmt.Sprintf("%s @%d", c.formatComplex(v, dps), c.prec)
	}
	return fmt.Sprintf("!%v", x)
}

func (c *Context) formatComplex(z Complex, dps int) string {
	re := fp.Text(z.re.v, dps)
	im := z.im.v
	sep := " + "
	if im.Sign() < 0 {
		sep = " - "
		im = fp.NegExact(im)
	}
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(re)
	b.WriteString(sep)
	b.WriteString(fp.Text(im, dps))
	b.WriteString("j)")
	return b.String()
}
