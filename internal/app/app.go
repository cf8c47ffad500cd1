// Package app wires configuration, logging, the evaluation engine and
// the front ends (one-shot CLI, interactive TUI, metrics server) into a
// runnable application.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/mpcalc/fp"
	"github.com/agbru/mpcalc/internal/cli"
	"github.com/agbru/mpcalc/internal/config"
	apperrors "github.com/agbru/mpcalc/internal/errors"
	"github.com/agbru/mpcalc/internal/engine"
	"github.com/agbru/mpcalc/internal/logging"
	"github.com/agbru/mpcalc/internal/server"
	"github.com/agbru/mpcalc/internal/tui"
	"github.com/agbru/mpcalc/internal/ui"
)

// Application is one configured run of the calculator.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	Log       logging.Logger
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithLogger sets a custom logger for the application.
func WithLogger(log logging.Logger) AppOption {
	return func(a *Application) { a.Log = log }
}

// New creates an Application by parsing and validating command-line
// arguments. args includes the program name in args[0].
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}

	var cmdArgs []string
	if len(args) > 0 {
		cmdArgs = args[1:]
	}

	cfg, _, err := config.ParseFlags(cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(errWriter, "Error: %v\n", err)
		return nil, err
	}

	app.Config = cfg
	if app.Log == nil {
		app.Log = logging.NewDefaultLogger()
	}
	return app, nil
}

// Run executes the configured mode and returns a process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	switch {
	case a.Config.Quiet:
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case a.Config.Verbose:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	ui.InitTheme(false)

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(runCtx)
	if a.Config.MetricsAddr != "" {
		srv := server.New(a.Config.MetricsAddr, a.Log)
		g.Go(func() error { return srv.Run(gctx) })
	}

	var code int
	if a.Config.TUI {
		code = tui.Run(gctx, a.Config, Version, a.Log)
	} else {
		code = a.runEvaluate(gctx, out)
	}

	// Stop the metrics server once the foreground work is done.
	cancel()
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		a.Log.Error("metrics server failed", err)
		if code == apperrors.ExitSuccess {
			code = apperrors.ExitErrorGeneric
		}
	}
	return code
}

// runEvaluate performs a single -op evaluation.
func (a *Application) runEvaluate(ctx context.Context, out io.Writer) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()

	mode, err := fp.ParseRoundingMode(a.Config.Mode)
	if err != nil {
		return cli.HandleEvaluationError(err, a.ErrWriter)
	}
	req := engine.Request{
		Op:                a.Config.Op,
		Operands:          a.Config.Operands,
		Digits:            a.Config.Digits,
		Prec:              a.Config.Prec,
		Mode:              mode,
		TrapComplex:       a.Config.TrapComplex,
		ParallelThreshold: a.Config.ParallelThreshold,
	}

	eval := engine.New(a.Log)
	var res engine.Result
	if a.Config.Quiet {
		res = eval.Evaluate(ctx, req)
	} else {
		cli.PrintExecutionConfig(a.Config, out)
		res = cli.WithSpinner(out, req.Op, a.Config.Digits, func() engine.Result {
			return eval.Evaluate(ctx, req)
		})
	}

	if res.Err != nil {
		return cli.HandleEvaluationError(res.Err, a.ErrWriter)
	}
	if a.Config.Quiet {
		cli.DisplayQuietResult(res, out)
	} else {
		cli.DisplayResult(res, a.Config.Verbose, out)
	}
	return apperrors.ExitSuccess
}

// IsHelpError reports whether err came from the -help flag.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
