package logging

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// TestFieldHelpers tests the Field constructor functions.
func TestFieldHelpers(t *testing.T) {
	t.Run("String creates field with key and string value", func(t *testing.T) {
		f := String("op", "sqrt")
		if f.Key != "op" {
			t.Errorf("String().Key = %q, want %q", f.Key, "op")
		}
		if f.Value != "sqrt" {
			t.Errorf("String().Value = %q, want %q", f.Value, "sqrt")
		}
	})

	t.Run("Int creates field with key and int value", func(t *testing.T) {
		f := Int("digits", 50)
		if f.Key != "digits" {
			t.Errorf("Int().Key = %q, want %q", f.Key, "digits")
		}
		if f.Value != 50 {
			t.Errorf("Int().Value = %v, want %v", f.Value, 50)
		}
	})

	t.Run("Uint64 creates field with key and uint64 value", func(t *testing.T) {
		f := Uint64("prec", 12345678901234567890)
		if f.Key != "prec" {
			t.Errorf("Uint64().Key = %q, want %q", f.Key, "prec")
		}
		if f.Value != uint64(12345678901234567890) {
			t.Errorf("Uint64().Value = %v, want %v", f.Value, uint64(12345678901234567890))
		}
	})

	t.Run("Float64 creates field with key and float64 value", func(t *testing.T) {
		f := Float64("seconds", 0.042)
		if f.Key != "seconds" {
			t.Errorf("Float64().Key = %q, want %q", f.Key, "seconds")
		}
		if f.Value != 0.042 {
			t.Errorf("Float64().Value = %v, want %v", f.Value, 0.042)
		}
	})

	t.Run("Err creates field with error key", func(t *testing.T) {
		testErr := errors.New("division by zero")
		f := Err(testErr)
		if f.Key != "error" {
			t.Errorf("Err().Key = %q, want %q", f.Key, "error")
		}
		if f.Value != testErr {
			t.Errorf("Err().Value = %v, want %v", f.Value, testErr)
		}
	})

	t.Run("Err with nil error", func(t *testing.T) {
		f := Err(nil)
		if f.Key != "error" {
			t.Errorf("Err(nil).Key = %q, want %q", f.Key, "error")
		}
		if f.Value != nil {
			t.Errorf("Err(nil).Value = %v, want nil", f.Value)
		}
	})
}

// TestNewZerologAdapter tests the ZerologAdapter constructor.
func TestNewZerologAdapter(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf)
	adapter := NewZerologAdapter(zl)

	if adapter == nil {
		t.Fatal("NewZerologAdapter returned nil")
	}

	adapter.Info("context ready")
	if !strings.Contains(buf.String(), "context ready") {
		t.Errorf("NewZerologAdapter logger not working, output: %s", buf.String())
	}
}

// TestNewDefaultLogger tests the default logger constructor.
func TestNewDefaultLogger(t *testing.T) {
	logger := NewDefaultLogger()
	if logger == nil {
		t.Fatal("NewDefaultLogger returned nil")
	}
}

// TestNewLogger tests the custom logger constructor.
func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "engine")

	if logger == nil {
		t.Fatal("NewLogger returned nil")
	}

	logger.Info("evaluation finished")
	output := buf.String()

	if !strings.Contains(output, "engine") {
		t.Errorf("NewLogger should include component field, got: %s", output)
	}
	if !strings.Contains(output, "evaluation finished") {
		t.Errorf("NewLogger should include message, got: %s", output)
	}
}

// TestZerologAdapter_Info tests the Info method.
func TestZerologAdapter_Info(t *testing.T) {
	tests := []struct {
		name     string
		msg      string
		fields   []Field
		contains []string
	}{
		{
			name:     "no fields",
			msg:      "constants cached",
			fields:   nil,
			contains: []string{"constants cached", "info"},
		},
		{
			name:     "with string field",
			msg:      "operation dispatched",
			fields:   []Field{String("op", "lambertw")},
			contains: []string{"operation dispatched", "lambertw"},
		},
		{
			name:     "with multiple fields",
			msg:      "evaluation finished",
			fields:   []Field{String("op", "agm"), Int("digits", 100)},
			contains: []string{"evaluation finished", "agm", "100"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(&buf, "engine")
			logger.Info(tt.msg, tt.fields...)

			output := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(output, want) {
					t.Errorf("output should contain %q, got: %s", want, output)
				}
			}
		})
	}
}

// TestZerologAdapter_Error tests the Error method.
func TestZerologAdapter_Error(t *testing.T) {
	tests := []struct {
		name     string
		msg      string
		err      error
		fields   []Field
		contains []string
	}{
		{
			name:     "with error",
			msg:      "evaluation failed",
			err:      errors.New("division by zero"),
			fields:   nil,
			contains: []string{"evaluation failed", "division by zero", "error"},
		},
		{
			name:     "with nil error",
			msg:      "precision clamped",
			err:      nil,
			fields:   nil,
			contains: []string{"precision clamped", "error"},
		},
		{
			name:     "with error and fields",
			msg:      "operand rejected",
			err:      errors.New("unrepresentable value"),
			fields:   []Field{String("op", "log"), Int("arg", 0)},
			contains: []string{"operand rejected", "unrepresentable value", "log", "0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(&buf, "engine")
			logger.Error(tt.msg, tt.err, tt.fields...)

			output := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(output, want) {
					t.Errorf("output should contain %q, got: %s", want, output)
				}
			}
		})
	}
}

// TestZerologAdapter_Debug tests the Debug method.
func TestZerologAdapter_Debug(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf).Level(zerolog.DebugLevel)
	logger := NewZerologAdapter(zl)

	logger.Debug("guard bits raised", Int("extra", 16))

	output := buf.String()
	if !strings.Contains(output, "guard bits raised") {
		t.Errorf("Debug output should contain message, got: %s", output)
	}
	if !strings.Contains(output, "debug") {
		t.Errorf("Debug output should contain level, got: %s", output)
	}
}

// TestZerologAdapter_Printf tests the Printf method.
func TestZerologAdapter_Printf(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "engine")

	logger.Printf("computed %s to %d digits", "pi", 1000)

	output := buf.String()
	if !strings.Contains(output, "computed pi to 1000 digits") {
		t.Errorf("Printf should format message, got: %s", output)
	}
}

// TestZerologAdapter_Println tests the Println method.
func TestZerologAdapter_Println(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "engine")

	logger.Println("mode", "half-even")

	output := buf.String()
	if !strings.Contains(output, "mode") || !strings.Contains(output, "half-even") {
		t.Errorf("Println should include all arguments, got: %s", output)
	}
}

// TestZerologAdapter_applyFields tests field application with all supported types.
func TestZerologAdapter_applyFields(t *testing.T) {
	tests := []struct {
		name     string
		field    Field
		contains string
	}{
		{"string field", Field{Key: "op", Value: "atan2"}, "atan2"},
		{"int field", Field{Key: "digits", Value: 42}, "42"},
		{"int64 field", Field{Key: "exp", Value: int64(9223372036854775807)}, "9223372036854775807"},
		{"uint64 field", Field{Key: "prec", Value: uint64(18446744073709551615)}, "18446744073709551615"},
		{"float64 field", Field{Key: "approx", Value: 3.14}, "3.14"},
		{"error field", Field{Key: "err", Value: errors.New("no convergence")}, "no convergence"},
		{"bool field", Field{Key: "trap_complex", Value: true}, "true"},
		{"interface field", Field{Key: "req", Value: struct{ Digits int }{Digits: 1}}, "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(&buf, "engine")
			logger.Info("evaluating", tt.field)

			output := buf.String()
			if !strings.Contains(output, tt.contains) {
				t.Errorf("applyFields should handle %s, output: %s", tt.name, output)
			}
		})
	}
}

// TestNewStdLoggerAdapter tests the StdLoggerAdapter constructor.
func TestNewStdLoggerAdapter(t *testing.T) {
	var buf bytes.Buffer
	stdLogger := log.New(&buf, "", 0)
	adapter := NewStdLoggerAdapter(stdLogger)

	if adapter == nil {
		t.Fatal("NewStdLoggerAdapter returned nil")
	}

	adapter.Info("evaluating")
	if !strings.Contains(buf.String(), "evaluating") {
		t.Errorf("StdLoggerAdapter not working, output: %s", buf.String())
	}
}

// TestStdLoggerAdapter_Info tests the StdLoggerAdapter Info method.
func TestStdLoggerAdapter_Info(t *testing.T) {
	tests := []struct {
		name     string
		msg      string
		fields   []Field
		contains []string
	}{
		{
			name:     "no fields",
			msg:      "context ready",
			fields:   nil,
			contains: []string{"[INFO]", "context ready"},
		},
		{
			name:     "with fields",
			msg:      "evaluation finished",
			fields:   []Field{String("op", "exp")},
			contains: []string{"[INFO]", "evaluation finished", "op", "exp"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			stdLogger := log.New(&buf, "", 0)
			adapter := NewStdLoggerAdapter(stdLogger)

			adapter.Info(tt.msg, tt.fields...)

			output := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(output, want) {
					t.Errorf("output should contain %q, got: %s", want, output)
				}
			}
		})
	}
}

// TestStdLoggerAdapter_Error tests the StdLoggerAdapter Error method.
func TestStdLoggerAdapter_Error(t *testing.T) {
	tests := []struct {
		name     string
		msg      string
		err      error
		fields   []Field
		contains []string
	}{
		{
			name:     "with error no fields",
			msg:      "evaluation failed",
			err:      errors.New("exponent out of range"),
			fields:   nil,
			contains: []string{"[ERROR]", "evaluation failed", "exponent out of range"},
		},
		{
			name:     "with error and fields",
			msg:      "operation failed",
			err:      errors.New("no convergence"),
			fields:   []Field{String("op", "lambertw")},
			contains: []string{"[ERROR]", "operation failed", "no convergence", "lambertw"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			stdLogger := log.New(&buf, "", 0)
			adapter := NewStdLoggerAdapter(stdLogger)

			adapter.Error(tt.msg, tt.err, tt.fields...)

			output := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(output, want) {
					t.Errorf("output should contain %q, got: %s", want, output)
				}
			}
		})
	}
}

// TestStdLoggerAdapter_Debug tests the StdLoggerAdapter Debug method.
func TestStdLoggerAdapter_Debug(t *testing.T) {
	tests := []struct {
		name     string
		msg      string
		fields   []Field
		contains []string
	}{
		{
			name:     "no fields",
			msg:      "series converged",
			fields:   nil,
			contains: []string{"[DEBUG]", "series converged"},
		},
		{
			name:     "with fields",
			msg:      "iteration",
			fields:   []Field{Int("step", 42)},
			contains: []string{"[DEBUG]", "iteration", "step", "42"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			stdLogger := log.New(&buf, "", 0)
			adapter := NewStdLoggerAdapter(stdLogger)

			adapter.Debug(tt.msg, tt.fields...)

			output := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(output, want) {
					t.Errorf("output should contain %q, got: %s", want, output)
				}
			}
		})
	}
}

// TestStdLoggerAdapter_Printf tests the StdLoggerAdapter Printf method.
func TestStdLoggerAdapter_Printf(t *testing.T) {
	var buf bytes.Buffer
	stdLogger := log.New(&buf, "", 0)
	adapter := NewStdLoggerAdapter(stdLogger)

	adapter.Printf("digits requested: %d", 123)

	output := buf.String()
	if !strings.Contains(output, "digits requested: 123") {
		t.Errorf("Printf should format string, got: %s", output)
	}
}

// TestStdLoggerAdapter_Println tests the StdLoggerAdapter Println method.
func TestStdLoggerAdapter_Println(t *testing.T) {
	var buf bytes.Buffer
	stdLogger := log.New(&buf, "", 0)
	adapter := NewStdLoggerAdapter(stdLogger)

	adapter.Println("sqrt", "2", "done")

	output := buf.String()
	if !strings.Contains(output, "sqrt") || !strings.Contains(output, "2") || !strings.Contains(output, "done") {
		t.Errorf("Println should include all args, got: %s", output)
	}
}

// TestLoggerInterface verifies both adapters implement the Logger interface.
func TestLoggerInterface(t *testing.T) {
	t.Run("ZerologAdapter implements Logger", func(t *testing.T) {
		var buf bytes.Buffer
		var _ Logger = NewLogger(&buf, "engine")
	})

	t.Run("StdLoggerAdapter implements Logger", func(t *testing.T) {
		var buf bytes.Buffer
		stdLogger := log.New(&buf, "", 0)
		var _ Logger = NewStdLoggerAdapter(stdLogger)
	})
}
