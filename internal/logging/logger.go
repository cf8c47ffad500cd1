package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Field is a structured logging key/value pair.
type Field struct {
	Key   string
	Value any
}

// String builds a string-valued field.
func String(key, value string) Field { return Field{Key: key, Value: value} }

// Int builds an int-valued field.
func Int(key string, value int) Field { return Field{Key: key, Value: value} }

// Uint64 builds a uint64-valued field.
func Uint64(key string, value uint64) Field { return Field{Key: key, Value: value} }

// Float64 builds a float64-valued field.
func Float64(key string, value float64) Field { return Field{Key: key, Value: value} }

// Err builds a field carrying an error under the conventional "error" key.
func Err(err error) Field { return Field{Key: "error", Value: err} }

// Logger is the logging interface the rest of the application depends
// on. It decouples call sites from the concrete backend so tests can
// substitute a buffer-backed logger and the CLI can pick plain or
// structured output at startup.
type Logger interface {
	Info(msg string, fields ...Field)
	Error(msg string, err error, fields ...Field)
	Debug(msg string, fields ...Field)
	Printf(format string, v ...any)
	Println(v ...any)
}

// ZerologAdapter adapts a zerolog.Logger to the Logger interface.
type ZerologAdapter struct {
	logger zerolog.Logger
}

// NewZerologAdapter wraps an existing zerolog logger.
func NewZerologAdapter(logger zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{logger: logger}
}

// NewDefaultLogger returns a logger writing human-readable output to
// stderr at the info level.
func NewDefaultLogger() *ZerologAdapter {
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return &ZerologAdapter{
		logger: zerolog.New(writer).Level(zerolog.InfoLevel).With().Timestamp().Logger(),
	}
}

// NewLogger returns a JSON logger writing to w, tagged with the given
// component name.
func NewLogger(w io.Writer, component string) *ZerologAdapter {
	return &ZerologAdapter{
		logger: zerolog.New(w).With().Timestamp().Str("component", component).Logger(),
	}
}

// Info logs at the info level.
func (a *ZerologAdapter) Info(msg string, fields ...Field) {
	applyFields(a.logger.Info(), fields).Msg(msg)
}

// Error logs at the error level. A nil err is allowed and simply omits
// the error field.
func (a *ZerologAdapter) Error(msg string, err error, fields ...Field) {
	ev := a.logger.Error()
	if err != nil {
		ev = ev.Err(err)
	}
	applyFields(ev, fields).Msg(msg)
}

// Debug logs at the debug level.
func (a *ZerologAdapter) Debug(msg string, fields ...Field) {
	applyFields(a.logger.Debug(), fields).Msg(msg)
}

// Printf logs a formatted message at the info level, for callers that
// expect a stdlib-style logger.
func (a *ZerologAdapter) Printf(format string, v ...any) {
	a.logger.Info().Msg(fmt.Sprintf(format, v...))
}

// Println logs its arguments at the info level, space-separated.
func (a *ZerologAdapter) Println(v ...any) {
	a.logger.Info().Msg(strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}

// applyFields attaches fields to an event, dispatching on the dynamic
// type so numbers keep their native JSON representation.
func applyFields(ev *zerolog.Event, fields []Field) *zerolog.Event {
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			ev = ev.Str(f.Key, v)
		case int:
			ev = ev.Int(f.Key, v)
		case int64:
			ev = ev.Int64(f.Key, v)
		case uint64:
			ev = ev.Uint64(f.Key, v)
		case float64:
			ev = ev.Float64(f.Key, v)
		case bool:
			ev = ev.Bool(f.Key, v)
		case error:
			ev = ev.AnErr(f.Key, v)
		default:
			ev = ev.Interface(f.Key, v)
		}
	}
	return ev
}

// StdLoggerAdapter adapts a stdlib *log.Logger to the Logger interface,
// rendering fields as trailing key=value pairs. It exists for contexts
// where structured output is unwanted, such as test harnesses.
type StdLoggerAdapter struct {
	logger *log.Logger
}

// NewStdLoggerAdapter wraps a stdlib logger.
func NewStdLoggerAdapter(logger *log.Logger) *StdLoggerAdapter {
	return &StdLoggerAdapter{logger: logger}
}

// Info logs with an [INFO] prefix.
func (a *StdLoggerAdapter) Info(msg string, fields ...Field) {
	a.logger.Println(formatStd("[INFO]", msg, fields))
}

// Error logs with an [ERROR] prefix, appending the error as a field.
func (a *StdLoggerAdapter) Error(msg string, err error, fields ...Field) {
	if err != nil {
		fields = append(fields, Err(err))
	}
	a.logger.Println(formatStd("[ERROR]", msg, fields))
}

// Debug logs with a [DEBUG] prefix.
func (a *StdLoggerAdapter) Debug(msg string, fields ...Field) {
	a.logger.Println(formatStd("[DEBUG]", msg, fields))
}

// Printf delegates to the wrapped logger.
func (a *StdLoggerAdapter) Printf(format string, v ...any) {
	a.logger.Printf(format, v...)
}

// Println delegates to the wrapped logger.
func (a *StdLoggerAdapter) Println(v ...any) {
	a.logger.Println(v...)
}

func formatStd(level, msg string, fields []Field) string {
	var b strings.Builder
	b.WriteString(level)
	b.WriteByte(' ')
	b.WriteString(msg)
	for _, f := range fields {
		fmt.Fprintf(&b, " %s=%v", f.Key, f.Value)
	}
	return b.String()
}
