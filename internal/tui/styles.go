package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/mpcalc/internal/ui"
)

// Style variables for the interactive calculator.
// Initialized from the ui theme system via initTUIStyles().
var (
	headerStyle      lipgloss.Style
	titleStyle       lipgloss.Style
	versionStyle     lipgloss.Style
	panelStyle       lipgloss.Style
	promptStyle      lipgloss.Style
	inputEchoStyle   lipgloss.Style
	resultStyle      lipgloss.Style
	errorStyle       lipgloss.Style
	timingStyle      lipgloss.Style
	metricLabelStyle lipgloss.Style
	metricValueStyle lipgloss.Style
	footerKeyStyle   lipgloss.Style
	footerDescStyle  lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all TUI styles from the current ui theme.
// Called at package init and again from Run() after InitTheme has been invoked.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	versionStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text)

	promptStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	inputEchoStyle = lipgloss.NewStyle().
		Foreground(t.Info)

	resultStyle = lipgloss.NewStyle().
		Foreground(t.Success)

	errorStyle = lipgloss.NewStyle().
		Foreground(t.Error)

	timingStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	metricLabelStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	metricValueStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	footerKeyStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	footerDescStyle = lipgloss.NewStyle().
		Foreground(t.Dim)
}
