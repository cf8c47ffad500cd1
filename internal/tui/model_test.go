package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/mpcalc/fp"
	"github.com/agbru/mpcalc/internal/config"
	"github.com/agbru/mpcalc/internal/engine"
	"github.com/agbru/mpcalc/internal/logging"
	"github.com/agbru/mpcalc/internal/ui"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	ui.InitTheme(true)
	initTUIStyles()
	cfg := config.AppConfig{Digits: 20, Mode: "half-even"}
	return NewModel(engine.New(logging.NewDefaultLogger()), cfg, "test")
}

func typeLine(t *testing.T, m Model, line string) (Model, tea.Cmd) {
	t.Helper()
	m.input.SetValue(line)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(Model), cmd
}

func TestNewModelDefaults(t *testing.T) {
	t.Parallel()
	ui.InitTheme(true)

	m := NewModel(engine.New(logging.NewDefaultLogger()), config.AppConfig{}, "dev")
	if m.digits != config.DefaultDigits {
		t.Errorf("digits = %d, want default %d", m.digits, config.DefaultDigits)
	}
	if m.mode != fp.DefaultRoundingMode {
		t.Errorf("mode = %v, want default", m.mode)
	}
}

func TestDigitsDirective(t *testing.T) {
	m := newTestModel(t)

	m, _ = typeLine(t, m, "digits 50")
	if m.digits != 50 {
		t.Errorf("digits = %d, want 50", m.digits)
	}
	if len(m.history) != 1 || m.history[0].isErr {
		t.Fatalf("expected one successful history entry, got %+v", m.history)
	}

	m, _ = typeLine(t, m, "digits nope")
	last := m.history[len(m.history)-1]
	if !last.isErr {
		t.Error("invalid digits argument should produce an error entry")
	}
	if m.digits != 50 {
		t.Errorf("failed directive changed digits to %d", m.digits)
	}
}

func TestModeDirective(t *testing.T) {
	m := newTestModel(t)

	m, _ = typeLine(t, m, "mode floor")
	if m.mode != fp.RoundFloor {
		t.Errorf("mode = %v, want floor", m.mode)
	}

	m, _ = typeLine(t, m, "mode sideways")
	last := m.history[len(m.history)-1]
	if !last.isErr {
		t.Error("unknown mode should produce an error entry")
	}
	if m.mode != fp.RoundFloor {
		t.Errorf("failed directive changed mode to %v", m.mode)
	}
}

func TestTrapDirective(t *testing.T) {
	m := newTestModel(t)

	m, _ = typeLine(t, m, "trap on")
	if !m.trap {
		t.Error("trap on should enable trap-complex")
	}
	m, _ = typeLine(t, m, "trap off")
	if m.trap {
		t.Error("trap off should disable trap-complex")
	}
}

func TestQuitPaths(t *testing.T) {
	m := newTestModel(t)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !next.(Model).quit || cmd == nil {
		t.Error("ctrl+c should quit")
	}

	m2, cmd := typeLine(t, newTestModel(t), "quit")
	if !m2.quit || cmd == nil {
		t.Error("quit directive should quit")
	}
}

func TestEvaluateCommand(t *testing.T) {
	m := newTestModel(t)

	m, cmd := typeLine(t, m, "sqrt 2")
	if cmd == nil {
		t.Fatal("operation input should return an evaluation command")
	}
	if !m.busy {
		t.Error("model should be busy while an evaluation runs")
	}

	msg := cmd()
	res, ok := msg.(resultMsg)
	if !ok {
		t.Fatalf("evaluation produced %T, want resultMsg", msg)
	}
	if res.res.Err != nil {
		t.Fatalf("sqrt 2 failed: %v", res.res.Err)
	}
	if !strings.HasPrefix(res.res.Text, "1.414213562373095") {
		t.Errorf("sqrt 2 = %q", res.res.Text)
	}

	next, _ := m.Update(msg)
	m = next.(Model)
	if m.busy {
		t.Error("result message should clear busy")
	}
	if len(m.history) != 1 || m.history[0].isErr {
		t.Fatalf("history = %+v", m.history)
	}
}

func TestResultMsgError(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.Update(resultMsg{
		input: "log 0",
		res:   engine.Result{Op: "log", Err: errors.New("logarithm of 0")},
	})
	m = next.(Model)
	if len(m.history) != 1 || !m.history[0].isErr {
		t.Fatalf("history = %+v", m.history)
	}
	if !strings.Contains(m.history[0].output, "logarithm of 0") {
		t.Errorf("error entry output = %q", m.history[0].output)
	}
}

func TestHistoryCap(t *testing.T) {
	m := newTestModel(t)
	for i := 0; i < maxHistory+25; i++ {
		m.push(entry{input: "pi", output: "3.14"})
	}
	if len(m.history) != maxHistory {
		t.Errorf("history length = %d, want %d", len(m.history), maxHistory)
	}
}

func TestViewContainsSettings(t *testing.T) {
	m := newTestModel(t)
	m, _ = typeLine(t, m, "digits 42")

	view := m.View()
	for _, want := range []string{"mpcalc", "42", "half-even", "heap"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestHistoryWindow(t *testing.T) {
	m := newTestModel(t)
	for i := 0; i < 40; i++ {
		m.push(entry{input: "e", output: "2.71828", duration: time.Millisecond})
	}

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = next.(Model)

	visible := m.historyWindow()
	if len(visible) >= 40 {
		t.Errorf("window should trim history on a 24-row terminal, kept %d", len(visible))
	}
	if visible[len(visible)-1] != m.history[len(m.history)-1] {
		t.Error("window should keep the most recent entries")
	}
}
