// Package tui implements the interactive terminal calculator: a
// read-eval loop with styled history, live precision control and a
// memory readout, built on Bubble Tea.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/mpcalc/fp"
	"github.com/agbru/mpcalc/internal/config"
	"github.com/agbru/mpcalc/internal/engine"
	"github.com/agbru/mpcalc/internal/format"
	"github.com/agbru/mpcalc/internal/metrics"
	"github.com/agbru/mpcalc/internal/sysmon"
)

// maxHistory bounds the retained history entries.
const maxHistory = 200

// sysTickInterval is how often the footer's system readout refreshes.
const sysTickInterval = 2 * time.Second

// entry is one evaluated line: the input as typed and its rendered
// outcome.
type entry struct {
	input    string
	output   string
	isErr    bool
	duration time.Duration
}

// resultMsg delivers a finished evaluation back to the update loop.
type resultMsg struct {
	input string
	res   engine.Result
}

// sysTickMsg carries a fresh system usage snapshot.
type sysTickMsg sysmon.Stats

func sampleSystem() tea.Cmd {
	return tea.Tick(sysTickInterval, func(time.Time) tea.Msg {
		return sysTickMsg(sysmon.Sample())
	})
}

// Model is the Bubble Tea model for the interactive calculator.
type Model struct {
	input   textinput.Model
	history []entry

	eval              *engine.Evaluator
	digits            uint
	mode              fp.RoundingMode
	trap              bool
	parallelThreshold int

	mem     *metrics.MemoryCollector
	sys     sysmon.Stats
	version string

	width  int
	height int
	busy   bool
	quit   bool
}

// NewModel builds the initial model from the application configuration.
func NewModel(eval *engine.Evaluator, cfg config.AppConfig, version string) Model {
	ti := textinput.New()
	ti.Placeholder = "op operand... (try: sqrt 2, or help)"
	ti.Prompt = promptStyle.Render("> ")
	ti.Focus()

	mode, err := fp.ParseRoundingMode(cfg.Mode)
	if err != nil {
		mode = fp.DefaultRoundingMode
	}
	digits := cfg.Digits
	if digits == 0 {
		digits = config.DefaultDigits
	}

	return Model{
		input:             ti,
		eval:              eval,
		digits:            digits,
		mode:              mode,
		trap:              cfg.TrapComplex,
		parallelThreshold: cfg.ParallelThreshold,
		mem:               metrics.NewMemoryCollector(),
		version:           version,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, sampleSystem())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quit = true
			return m, tea.Quit
		case tea.KeyEnter:
			if m.busy {
				return m, nil
			}
			line := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			if line == "" {
				return m, nil
			}
			return m.dispatch(line)
		}

	case sysTickMsg:
		m.sys = sysmon.Stats(msg)
		return m, sampleSystem()

	case resultMsg:
		m.busy = false
		e := entry{input: msg.input, duration: msg.res.Duration}
		if msg.res.Err != nil {
			e.isErr = true
			e.output = msg.res.Err.Error()
		} else {
			e.output = msg.res.Text
		}
		m.push(e)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// dispatch interprets one input line: either a calculator directive or
// an operation to evaluate on the engine.
func (m Model) dispatch(line string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(line)
	op, args := fields[0], fields[1:]

	switch op {
	case "quit", "exit":
		m.quit = true
		return m, tea.Quit

	case "help":
		m.push(entry{input: line, output: helpText()})
		return m, nil

	case "digits":
		if len(args) != 1 {
			m.push(entry{input: line, output: "usage: digits N", isErr: true})
			return m, nil
		}
		n, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil || n == 0 || n > config.MaxDigits {
			m.push(entry{input: line, output: fmt.Sprintf("digits must be between 1 and %d", config.MaxDigits), isErr: true})
			return m, nil
		}
		m.digits = uint(n)
		m.push(entry{input: line, output: "precision set to " + format.FormatGroupedCount(n) + " digits"})
		return m, nil

	case "mode":
		if len(args) != 1 {
			m.push(entry{input: line, output: "usage: mode half-even|floor|ceiling|down|up|half-down|half-up", isErr: true})
			return m, nil
		}
		mode, err := fp.ParseRoundingMode(args[0])
		if err != nil {
			m.push(entry{input: line, output: err.Error(), isErr: true})
			return m, nil
		}
		m.mode = mode
		m.push(entry{input: line, output: "rounding mode set to " + mode.String()})
		return m, nil

	case "trap":
		if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
			m.push(entry{input: line, output: "usage: trap on|off", isErr: true})
			return m, nil
		}
		m.trap = args[0] == "on"
		m.push(entry{input: line, output: "trap-complex " + args[0]})
		return m, nil
	}

	req := engine.Request{
		Op:                op,
		Operands:          args,
		Digits:            m.digits,
		Mode:              m.mode,
		TrapComplex:       m.trap,
		ParallelThreshold: m.parallelThreshold,
	}
	m.busy = true
	eval := m.eval
	return m, func() tea.Msg {
		return resultMsg{input: line, res: eval.Evaluate(context.Background(), req)}
	}
}

func (m *Model) push(e entry) {
	m.history = append(m.history, e)
	if len(m.history) > maxHistory {
		m.history = m.history[len(m.history)-maxHistory:]
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quit {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteByte('\n')
	b.WriteString(m.viewHistory())
	b.WriteByte('\n')
	b.WriteString(m.input.View())
	b.WriteByte('\n')
	b.WriteString(m.viewFooter())
	return b.String()
}

func (m Model) viewHeader() string {
	title := titleStyle.Render("mpcalc")
	ver := versionStyle.Render(m.version)
	settings := metricLabelStyle.Render("  digits ") +
		metricValueStyle.Render(format.FormatGroupedCount(uint64(m.digits))) +
		metricLabelStyle.Render("  mode ") +
		metricValueStyle.Render(m.mode.String())
	return headerStyle.Render(title + " " + ver + settings)
}

func (m Model) viewHistory() string {
	visible := m.historyWindow()
	if len(visible) == 0 {
		return panelStyle.Render(timingStyle.Render("type an operation, e.g.  sqrt 2"))
	}

	var lines []string
	for _, e := range visible {
		lines = append(lines, inputEchoStyle.Render("> "+e.input))
		style := resultStyle
		if e.isErr {
			style = errorStyle
		}
		for _, l := range strings.Split(e.output, "\n") {
			lines = append(lines, style.Render("  "+l))
		}
		if !e.isErr && e.duration > 0 {
			lines = append(lines, timingStyle.Render("  "+format.FormatExecutionDuration(e.duration)))
		}
	}
	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// historyWindow returns the tail of the history that fits the terminal.
func (m Model) historyWindow() []entry {
	if m.height == 0 || len(m.history) == 0 {
		return m.history
	}
	// Header, input line, footer and panel borders take about six rows;
	// three rows per entry is a workable estimate for the rest.
	rows := (m.height - 6) / 3
	if rows < 1 {
		rows = 1
	}
	if len(m.history) > rows {
		return m.history[len(m.history)-rows:]
	}
	return m.history
}

func (m Model) viewFooter() string {
	snap := m.mem.Snapshot()
	mem := metricLabelStyle.Render("heap ") +
		metricValueStyle.Render(format.FormatGroupedCount(snap.HeapAlloc/1024)+" KiB") +
		metricLabelStyle.Render("  "+m.sys.String())
	keys := footerKeyStyle.Render("enter") + footerDescStyle.Render(" evaluate  ") +
		footerKeyStyle.Render("esc") + footerDescStyle.Render(" quit")
	if m.busy {
		keys = footerDescStyle.Render("evaluating...")
	}
	return keys + "   " + mem
}

func helpText() string {
	return strings.Join([]string{
		"operations: add sub mul div pow sqrt exp log cos sin atan atan2 hypot agm lambertw pi e",
		"directives: digits N | mode <name> | trap on|off | quit",
		"operands are decimal strings; complex results render as (re + imj)",
	}, "\n")
}
