// Package config handles command-line flags and environment variable
// overrides for the calculator. Priority: CLI flags > environment
// variables > defaults.
package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/agbru/mpcalc/fp"
	apperrors "github.com/agbru/mpcalc/internal/errors"
)

// EnvPrefix is prepended to every environment variable the application reads.
const EnvPrefix = "MPCALC_"

// Default configuration values.
const (
	DefaultDigits  = 15
	DefaultTimeout = 1 * time.Minute
	DefaultMode    = "half-even"

	// MaxDigits bounds the requested decimal precision. The engine has no
	// intrinsic ceiling; the bound keeps a typo like "1e9 digits" from
	// looking like a hang.
	MaxDigits = 1_000_000
)

// AppConfig holds the complete runtime configuration.
type AppConfig struct {
	// Op is the operation to evaluate (add, sub, mul, div, pow, sqrt,
	// exp, log, cos, sin, atan, atan2, hypot, agm, lambertw, pi, e).
	Op string
	// Operands are the positional decimal arguments for the operation.
	Operands []string

	// Digits is the working precision in decimal digits.
	Digits uint
	// Prec is the working precision in bits; when set it overrides Digits.
	Prec uint
	// Mode names the rounding mode.
	Mode string
	// TrapComplex makes real operations fail instead of promoting to
	// complex results.
	TrapComplex bool

	// Timeout bounds the whole evaluation.
	Timeout time.Duration

	// Verbose enables debug logging; Quiet suppresses everything except
	// the result. Quiet wins when both are set.
	Verbose bool
	Quiet   bool

	// TUI starts the interactive terminal calculator instead of a
	// one-shot evaluation.
	TUI bool

	// MetricsAddr, when non-empty, serves Prometheus metrics on the
	// given address for the lifetime of the process.
	MetricsAddr string

	// ParallelThreshold is the mantissa bit size above which complex
	// multiplication parallelizes its partial products. Zero selects an
	// adaptive estimate from the host's core count.
	ParallelThreshold int
}

// ParseFlags parses args into an AppConfig, applying environment
// overrides for flags that were not set explicitly. The returned
// FlagSet's usage writes to errWriter.
func ParseFlags(args []string, errWriter io.Writer) (AppConfig, *flag.FlagSet, error) {
	cfg := AppConfig{}
	fs := flag.NewFlagSet("mpcalc", flag.ContinueOnError)
	fs.SetOutput(errWriter)

	fs.StringVar(&cfg.Op, "op", "", "operation to evaluate (add, sub, mul, div, pow, sqrt, exp, log, cos, sin, atan, atan2, hypot, agm, lambertw, pi, e)")
	digits := fs.Uint("digits", DefaultDigits, "working precision in decimal digits")
	prec := fs.Uint("prec", 0, "working precision in bits (overrides -digits)")
	fs.StringVar(&cfg.Mode, "mode", DefaultMode, "rounding mode (down, up, floor, ceiling, half-down, half-up, half-even)")
	fs.BoolVar(&cfg.TrapComplex, "trap-complex", false, "fail instead of returning complex results from real inputs")
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "evaluation timeout")
	fs.BoolVar(&cfg.Verbose, "v", false, "enable debug logging (shorthand)")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "enable debug logging")
	fs.BoolVar(&cfg.Quiet, "q", false, "print only the result (shorthand)")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "print only the result")
	fs.BoolVar(&cfg.TUI, "tui", false, "start the interactive terminal calculator")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9090)")
	fs.IntVar(&cfg.ParallelThreshold, "parallel-threshold", 0, "mantissa bits above which complex products parallelize (0 = adaptive)")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, fs, err
	}
	cfg.Digits = *digits
	cfg.Prec = *prec
	cfg.Operands = fs.Args()

	applyEnvOverrides(&cfg, fs)
	cfg = ApplyAdaptiveThresholds(cfg)
	return cfg, fs, nil
}

// operandCounts maps each operation to its required operand count.
var operandCounts = map[string]int{
	"add": 2, "sub": 2, "mul": 2, "div": 2, "pow": 2,
	"atan2": 2, "hypot": 2, "agm": 2,
	"sqrt": 1, "exp": 1, "log": 1, "cos": 1, "sin": 1,
	"atan": 1, "lambertw": 1,
	"pi": 0, "e": 0,
}

// Validate checks the configuration for consistency. Failures are
// ConfigError, ValidationError or PrecisionError values so the caller
// can map them to the configuration exit code.
func (c AppConfig) Validate() error {
	if c.TUI {
		return c.validatePrecision()
	}
	if c.Op == "" {
		return apperrors.NewConfigError("no operation given; use -op or -tui")
	}
	want, ok := operandCounts[c.Op]
	if !ok {
		return apperrors.ValidationError{Field: "op", Message: fmt.Sprintf("unknown operation %q", c.Op)}
	}
	if got := len(c.Operands); got != want {
		return apperrors.ValidationError{
			Field:   "op",
			Message: fmt.Sprintf("operation %q takes %d operand(s), got %d", c.Op, want, got),
		}
	}
	if _, err := fp.ParseRoundingMode(c.Mode); err != nil {
		return apperrors.ValidationError{Field: "mode", Message: fmt.Sprintf("unknown rounding mode %q", c.Mode)}
	}
	if c.Timeout <= 0 {
		return apperrors.ValidationError{Field: "timeout", Message: "must be positive"}
	}
	return c.validatePrecision()
}

func (c AppConfig) validatePrecision() error {
	if c.Prec == 0 && c.Digits == 0 {
		return apperrors.ValidationError{Field: "digits", Message: "must be positive"}
	}
	if c.Digits > MaxDigits {
		return apperrors.PrecisionError{Requested: c.Digits, Max: MaxDigits}
	}
	return nil
}
