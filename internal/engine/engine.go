// Package engine coordinates the evaluation of calculator operations:
// it builds an arithmetic context from a request, dispatches the named
// operation, and supervises the computation under a cancellable
// context. It is the seam between the CLI/TUI layers and the mp
// package.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/agbru/mpcalc/fp"
	apperrors "github.com/agbru/mpcalc/internal/errors"
	"github.com/agbru/mpcalc/internal/logging"
	"github.com/agbru/mpcalc/internal/metrics"
	"github.com/agbru/mpcalc/mp"
)

// Request describes one evaluation: the operation, its decimal operands
// and the arithmetic context parameters.
type Request struct {
	// Op is the operation name (add, sub, mul, div, pow, sqrt, exp,
	// log, cos, sin, atan, atan2, hypot, agm, lambertw, pi, e).
	Op string
	// Operands are decimal strings, one per operation argument.
	Operands []string
	// Digits is the working precision in decimal digits; Prec, when
	// non-zero, overrides it with a bit count.
	Digits uint
	Prec   uint
	// Mode is the rounding mode.
	Mode fp.RoundingMode
	// TrapComplex makes real operations fail instead of promoting.
	TrapComplex bool
	// ParallelThreshold overrides the complex-product parallelism
	// threshold when non-zero.
	ParallelThreshold int
}

// Result is the outcome of one evaluation.
type Result struct {
	// Op echoes the request's operation name.
	Op string
	// Value is the computed number; nil when Err is set.
	Value mp.Number
	// Text is the value rendered at the request's digit precision.
	Text string
	// Duration is the wall time of the computation.
	Duration time.Duration
	// Err is the evaluation failure, if any.
	Err error
}

// Evaluator runs requests. It is stateless apart from its logger; each
// evaluation builds a fresh context, so one Evaluator may serve
// concurrent callers.
type Evaluator struct {
	log logging.Logger
}

// New creates an Evaluator logging through log.
func New(log logging.Logger) *Evaluator {
	return &Evaluator{log: log}
}

// operation binds a name to its arity and implementation.
type operation struct {
	arity int
	fn    func(c *mp.Context, args []mp.Number) (mp.Number, error)
}

var operations = map[string]operation{
	"add": {2, func(c *mp.Context, a []mp.Number) (mp.Number, error) { return c.Add(a[0], a[1]) }},
	"sub": {2, func(c *mp.Context, a []mp.Number) (mp.Number, error) { return c.Sub(a[0], a[1]) }},
	"mul": {2, func(c *mp.Context, a []mp.Number) (mp.Number, error) { return c.Mul(a[0], a[1]) }},
	"div": {2, func(c *mp.Context, a []mp.Number) (mp.Number, error) { return c.Div(a[0], a[1]) }},
	"pow": {2, func(c *mp.Context, a []mp.Number) (mp.Number, error) { return c.Pow(a[0], a[1]) }},
	"agm": {2, func(c *mp.Context, a []mp.Number) (mp.Number, error) { return c.AGM(a[0], a[1]) }},
	"atan2": {2, func(c *mp.Context, a []mp.Number) (mp.Number, error) {
		r, err := c.Atan2(a[0], a[1])
		return r, err
	}},
	"hypot": {2, func(c *mp.Context, a []mp.Number) (mp.Number, error) {
		r, err := c.Hypot(a[0], a[1])
		return r, err
	}},
	"sqrt": {1, func(c *mp.Context, a []mp.Number) (mp.Number, error) { return c.Sqrt(a[0]) }},
	"exp":  {1, func(c *mp.Context, a []mp.Number) (mp.Number, error) { return c.Exp(a[0]) }},
	"log":  {1, func(c *mp.Context, a []mp.Number) (mp.Number, error) { return c.Log(a[0]) }},
	"cos":  {1, func(c *mp.Context, a []mp.Number) (mp.Number, error) { return c.Cos(a[0]) }},
	"sin":  {1, func(c *mp.Context, a []mp.Number) (mp.Number, error) { return c.Sin(a[0]) }},
	"atan": {1, func(c *mp.Context, a []mp.Number) (mp.Number, error) {
		r, err := c.Atan(a[0])
		return r, err
	}},
	"lambertw": {1, func(c *mp.Context, a []mp.Number) (mp.Number, error) { return c.LambertW(a[0]) }},
	"pi":       {0, func(c *mp.Context, a []mp.Number) (mp.Number, error) { return c.Pi(), nil }},
	"e":        {0, func(c *mp.Context, a []mp.Number) (mp.Number, error) { return c.E(), nil }},
}

// Operations lists the supported operation names.
func Operations() []string {
	names := make([]string, 0, len(operations))
	for name := range operations {
		names = append(names, name)
	}
	return names
}

// Evaluate runs one request. The computation itself is uninterruptible
// once started, so Evaluate runs it on its own goroutine and abandons
// it when ctx expires; the abandoned goroutine finishes in the
// background and its result is discarded.
func (e *Evaluator) Evaluate(ctx context.Context, req Request) Result {
	start := time.Now()
	res := Result{Op: req.Op}

	op, ok := operations[req.Op]
	if !ok {
		res.Err = apperrors.ValidationError{Field: "op", Message: fmt.Sprintf("unknown operation %q", req.Op)}
		return res
	}
	if len(req.Operands) != op.arity {
		res.Err = apperrors.ValidationError{
			Field:   "op",
			Message: fmt.Sprintf("operation %q takes %d operand(s), got %d", req.Op, op.arity, len(req.Operands)),
		}
		return res
	}

	metrics.EngineEvaluations.Inc()

	type outcome struct {
		value mp.Number
		text  string
		err   error
	}
	done := make(chan outcome, 1)
	go func() {
		mc := e.newContext(req)
		args, err := parseOperands(mc, req.Operands)
		if err != nil {
			done <- outcome{err: err}
			return
		}
		v, err := op.fn(mc, args)
		if err != nil {
			done <- outcome{err: apperrors.EvaluationError{Cause: err}}
			return
		}
		done <- outcome{value: v, text: mc.Format(v)}
	}()

	select {
	case out := <-done:
		res.Value, res.Text, res.Err = out.value, out.text, out.err
	case <-ctx.Done():
		if ctx.Err() == context.DeadlineExceeded {
			res.Err = apperrors.TimeoutError{Operation: req.Op, Limit: time.Since(start).Round(time.Millisecond)}
		} else {
			res.Err = ctx.Err()
		}
	}
	res.Duration = time.Since(start)

	if res.Err != nil {
		e.log.Error("evaluation failed", res.Err,
			logging.String("op", req.Op),
			logging.Float64("seconds", res.Duration.Seconds()))
	} else {
		e.log.Debug("evaluation complete",
			logging.String("op", req.Op),
			logging.Float64("seconds", res.Duration.Seconds()))
	}
	return res
}

func (e *Evaluator) newContext(req Request) *mp.Context {
	mc := mp.NewContext()
	if req.Prec > 0 {
		mc.SetPrec(req.Prec)
	} else if req.Digits > 0 {
		mc.SetDps(req.Digits)
	}
	mc.SetMode(req.Mode)
	mc.SetTrapComplex(req.TrapComplex)
	if req.ParallelThreshold > 0 {
		mc.SetParallelThreshold(uint(req.ParallelThreshold))
	}
	return mc
}

func parseOperands(mc *mp.Context, operands []string) ([]mp.Number, error) {
	args := make([]mp.Number, len(operands))
	for i, s := range operands {
		n, err := mc.NewNumber(s)
		if err != nil {
			return nil, apperrors.ValidationError{
				Field:   "operand",
				Message: fmt.Sprintf("%q is not a number", s),
			}
		}
		args[i] = n
	}
	return args, nil
}
