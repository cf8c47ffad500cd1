package engine

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/agbru/mpcalc/fp"
	apperrors "github.com/agbru/mpcalc/internal/errors"
	"github.com/agbru/mpcalc/internal/logging"
	"github.com/agbru/mpcalc/mp"
)

func newTestEvaluator() *Evaluator {
	return New(logging.NewDefaultLogger())
}

func request(op string, operands ...string) Request {
	return Request{
		Op:       op,
		Operands: operands,
		Digits:   15,
		Mode:     fp.DefaultRoundingMode,
	}
}

func TestEvaluateBasicOperations(t *testing.T) {
	t.Parallel()
	e := newTestEvaluator()

	tests := []struct {
		name string
		req  Request
		want string
	}{
		{"add", request("add", "3.5", "2.25"), "5.75"},
		{"div", request("div", "7", "2"), "3.5"},
		{"pow", request("pow", "2", "10"), "1024.0"},
		{"hypot", request("hypot", "3", "4"), "5.0"},
		{"pi", request("pi"), "3.14159265358979"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := e.Evaluate(context.Background(), tt.req)
			if res.Err != nil {
				t.Fatalf("Evaluate(%s) failed: %v", tt.req.Op, res.Err)
			}
			if res.Text != tt.want {
				t.Errorf("Text = %q, want %q", res.Text, tt.want)
			}
			if res.Op != tt.req.Op {
				t.Errorf("Op = %q, want %q", res.Op, tt.req.Op)
			}
			if res.Value == nil {
				t.Error("Value should be set on success")
			}
			if res.Duration <= 0 {
				t.Error("Duration should be positive")
			}
		})
	}
}

func TestEvaluateHonorsDigits(t *testing.T) {
	t.Parallel()
	e := newTestEvaluator()

	req := request("sqrt", "2")
	req.Digits = 30
	res := e.Evaluate(context.Background(), req)
	if res.Err != nil {
		t.Fatalf("Evaluate failed: %v", res.Err)
	}
	if !strings.HasPrefix(res.Text, "1.4142135623730950488") {
		t.Errorf("Text = %q, want 30-digit square root of 2", res.Text)
	}
}

func TestEvaluatePrecOverridesDigits(t *testing.T) {
	t.Parallel()
	e := newTestEvaluator()

	req := request("div", "1", "3")
	req.Digits = 50
	req.Prec = 20 // ~7 decimal digits
	res := e.Evaluate(context.Background(), req)
	if res.Err != nil {
		t.Fatalf("Evaluate failed: %v", res.Err)
	}
	if len(res.Text) > 12 {
		t.Errorf("Text = %q, want short rendering at 20 bits", res.Text)
	}
}

func TestEvaluateUnknownOperation(t *testing.T) {
	t.Parallel()
	e := newTestEvaluator()

	res := e.Evaluate(context.Background(), request("cbrt", "8"))
	var ve apperrors.ValidationError
	if !errors.As(res.Err, &ve) {
		t.Fatalf("Err = %v, want ValidationError", res.Err)
	}
	if ve.Field != "op" {
		t.Errorf("Field = %q, want %q", ve.Field, "op")
	}
}

func TestEvaluateWrongArity(t *testing.T) {
	t.Parallel()
	e := newTestEvaluator()

	res := e.Evaluate(context.Background(), request("add", "1"))
	var ve apperrors.ValidationError
	if !errors.As(res.Err, &ve) {
		t.Fatalf("Err = %v, want ValidationError", res.Err)
	}
}

func TestEvaluateBadOperand(t *testing.T) {
	t.Parallel()
	e := newTestEvaluator()

	res := e.Evaluate(context.Background(), request("sqrt", "two"))
	var ve apperrors.ValidationError
	if !errors.As(res.Err, &ve) {
		t.Fatalf("Err = %v, want ValidationError", res.Err)
	}
	if ve.Field != "operand" {
		t.Errorf("Field = %q, want %q", ve.Field, "operand")
	}
}

func TestEvaluateDomainError(t *testing.T) {
	t.Parallel()
	e := newTestEvaluator()

	res := e.Evaluate(context.Background(), request("div", "1", "0"))
	var ee apperrors.EvaluationError
	if !errors.As(res.Err, &ee) {
		t.Fatalf("Err = %v, want EvaluationError", res.Err)
	}
	if !errors.Is(res.Err, mp.ErrDivisionByZero) {
		t.Errorf("Err = %v, want wrapped division by zero", res.Err)
	}
}

func TestEvaluateTrapComplex(t *testing.T) {
	t.Parallel()
	e := newTestEvaluator()

	req := request("sqrt", "-1")
	req.TrapComplex = true
	res := e.Evaluate(context.Background(), req)
	var cre mp.ComplexResultError
	if !errors.As(res.Err, &cre) {
		t.Fatalf("Err = %v, want ComplexResultError", res.Err)
	}

	// Untrapped, the same request yields a complex rendering.
	req.TrapComplex = false
	res = e.Evaluate(context.Background(), req)
	if res.Err != nil {
		t.Fatalf("Evaluate failed: %v", res.Err)
	}
	if !strings.Contains(res.Text, "j)") {
		t.Errorf("Text = %q, want complex rendering", res.Text)
	}
}

func TestEvaluateTimeout(t *testing.T) {
	t.Parallel()
	e := newTestEvaluator()

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()

	req := request("pi")
	req.Digits = 200_000
	res := e.Evaluate(ctx, req)
	var te apperrors.TimeoutError
	if !errors.As(res.Err, &te) {
		t.Fatalf("Err = %v, want TimeoutError", res.Err)
	}
	if te.Operation != "pi" {
		t.Errorf("Operation = %q, want %q", te.Operation, "pi")
	}
}

func TestEvaluateCanceled(t *testing.T) {
	t.Parallel()
	e := newTestEvaluator()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := request("pi")
	req.Digits = 200_000
	res := e.Evaluate(ctx, req)
	if !errors.Is(res.Err, context.Canceled) {
		t.Fatalf("Err = %v, want context.Canceled", res.Err)
	}
}

func TestOperationsListsEveryName(t *testing.T) {
	t.Parallel()
	got := Operations()
	sort.Strings(got)

	want := []string{
		"add", "agm", "atan", "atan2", "cos", "div", "e", "exp", "hypot",
		"lambertw", "log", "mul", "pi", "pow", "sin", "sqrt", "sub",
	}
	if len(got) != len(want) {
		t.Fatalf("Operations() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Operations() = %v, want %v", got, want)
		}
	}
}
