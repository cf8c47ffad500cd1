package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/agbru/mpcalc/fp"
	"github.com/agbru/mpcalc/internal/config"
	"github.com/agbru/mpcalc/internal/engine"
	apperrors "github.com/agbru/mpcalc/internal/errors"
	"github.com/agbru/mpcalc/internal/format"
	"github.com/agbru/mpcalc/internal/ui"
	"github.com/agbru/mpcalc/mp"
)

// PrintExecutionConfig shows the effective arithmetic settings before an
// evaluation. Skipped in quiet mode.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	theme := ui.GetCurrentTheme()
	fmt.Fprintf(out, "%sOperation:%s %s", theme.Bold, theme.Reset, cfg.Op)
	for _, operand := range cfg.Operands {
		fmt.Fprintf(out, " %s%s%s", theme.Primary, operand, theme.Reset)
	}
	fmt.Fprintln(out)
	if cfg.Prec > 0 {
		fmt.Fprintf(out, "%sPrecision:%s %d bits, %s rounding\n", theme.Bold, theme.Reset, cfg.Prec, cfg.Mode)
	} else {
		fmt.Fprintf(out, "%sPrecision:%s %d digits, %s rounding\n", theme.Bold, theme.Reset, cfg.Digits, cfg.Mode)
	}
	if cfg.TrapComplex {
		fmt.Fprintf(out, "%sComplex results:%s trapped\n", theme.Bold, theme.Reset)
	}
}

// DisplayResult renders a successful evaluation: the value, and in
// verbose mode the timing and the value's kind.
func DisplayResult(res engine.Result, verbose bool, out io.Writer) {
	theme := ui.GetCurrentTheme()
	fmt.Fprintf(out, "%s%s%s(...) = %s%s%s\n",
		theme.Info, res.Op, theme.Reset,
		theme.Success, res.Text, theme.Reset)
	if verbose {
		fmt.Fprintf(out, "%sComputed in %s%s\n",
			theme.Secondary, format.FormatExecutionDuration(res.Duration), theme.Reset)
		if _, ok := res.Value.(mp.Complex); ok {
			fmt.Fprintf(out, "%sResult left the real line.%s\n", theme.Secondary, theme.Reset)
		}
	}
}

// DisplayQuietResult prints only the value, for scripted consumption.
func DisplayQuietResult(res engine.Result, out io.Writer) {
	fmt.Fprintln(out, res.Text)
}

// HandleEvaluationError prints a diagnostic for err and returns the
// process exit code that classifies it.
func HandleEvaluationError(err error, out io.Writer) int {
	theme := ui.GetCurrentTheme()
	fmt.Fprintf(out, "%sError:%s %v\n", theme.Error, theme.Reset, err)
	return ExitCodeFor(err)
}

// ExitCodeFor maps an evaluation or configuration error to the
// application exit code taxonomy.
func ExitCodeFor(err error) int {
	if err == nil {
		return apperrors.ExitSuccess
	}

	var configErr apperrors.ConfigError
	var validationErr apperrors.ValidationError
	var precisionErr apperrors.PrecisionError
	if errors.As(err, &configErr) || errors.As(err, &validationErr) || errors.As(err, &precisionErr) {
		return apperrors.ExitErrorConfig
	}

	var timeoutErr apperrors.TimeoutError
	if errors.As(err, &timeoutErr) || errors.Is(err, context.DeadlineExceeded) {
		return apperrors.ExitErrorTimeout
	}
	if errors.Is(err, context.Canceled) {
		return apperrors.ExitErrorCanceled
	}

	var domainErr mp.DomainError
	var complexErr mp.ComplexResultError
	var convergeErr mp.NonConvergenceError
	var unrepErr mp.UnrepresentableError
	if errors.As(err, &domainErr) || errors.As(err, &complexErr) ||
		errors.As(err, &convergeErr) || errors.As(err, &unrepErr) ||
		errors.Is(err, fp.ErrDivisionByZero) ||
		errors.Is(err, fp.ErrNonFinite) ||
		errors.Is(err, fp.ErrExponentRange) {
		return apperrors.ExitErrorDomain
	}

	return apperrors.ExitErrorGeneric
}
