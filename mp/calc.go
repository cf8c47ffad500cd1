package mp

// calc is a sticky-error evaluation helper: a thin wrapper around a
// Context that lets a multi-step formula be written as a straight-line
// expression. The first error latches; every later step sees a nil
// operand or the latched error and passes through, so only the final
// err check is needed.
type calc struct {
	ctx *Context
	err error
}

func newCalc(c *Context) *calc { return &calc{ctx: c} }

func (e *calc) step(v Number, err error) Number {
	if e.err != nil {
		return nil
	}
	if err != nil {
		e.err = err
		return nil
	}
	return v
}

func (e *calc) bad(vs ...Number) bool {
	if e.err != nil {
		return true
	}
	for _, v := range vs {
		if v == nil {
			return true
		}
	}
	return false
}

func (e *calc) add(x, y Number) Number {
	if e.bad(x, y) {
		return nil
	}
	return e.step(e.ctx.Add(x, y))
}

func (e *calc) sub(x, y Number) Number {
	if e.bad(x, y) {
		return nil
	}
	return e.step(e.ctx.Sub(x, y))
}

func (e *calc) mul(x, y Number) Number {
	if e.bad(x, y) {
		return nil
	}
	return e.step(e.ctx.Mul(x, y))
}

func (e *calc) div(x, y Number) Number {
	if e.bad(x, y) {
		return nil
	}
	return e.step(e.ctx.Div(x, y))
}

func (e *calc) neg(x Number) Number {
	if e.bad(x) {
		return nil
	}
	return e.step(e.ctx.Neg(x))
}

func (e *calc) exp(x Number) Number {
	if e.bad(x) {
		return nil
	}
	return e.step(e.ctx.Exp(x))
}

func (e *calc) log(x Number) Number {
	if e.bad(x) {
		return nil
	}
	return e.step(e.ctx.Log(x))
}

func (e *calc) sqrt(x Number) Number {
	if e.bad(x) {
		return nil
	}
	return e.step(e.ctx.Sqrt(x))
}

func (e *calc) abs(x Number) Number {
	if e.bad(x) {
		return nil
	}
	r, err := e.ctx.Abs(x)
	return e.step(r, err)
}
