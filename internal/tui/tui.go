package tui

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/mpcalc/internal/config"
	"github.com/agbru/mpcalc/internal/engine"
	apperrors "github.com/agbru/mpcalc/internal/errors"
	"github.com/agbru/mpcalc/internal/logging"
)

// Run starts the interactive calculator and blocks until the user quits
// or ctx is canceled. It returns a process exit code.
func Run(ctx context.Context, cfg config.AppConfig, version string, log logging.Logger) int {
	// The theme may have been switched after package init (NO_COLOR,
	// --no-color), so rebuild the styles before rendering anything.
	initTUIStyles()

	model := NewModel(engine.New(log), cfg, version)
	prog := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if _, err := prog.Run(); err != nil {
		if ctx.Err() != nil {
			return apperrors.ExitErrorCanceled
		}
		fmt.Fprintf(os.Stderr, "tui error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}
