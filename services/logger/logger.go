package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Level is the minimum severity a logger writes.
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	ErrorLevel
)

// Logger is the logging surface every service depends on.
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

// ZeroLogger implements Logger on top of zerolog.
type ZeroLogger struct {
	zl zerolog.Logger
}

// New builds the application logger for the given environment. "local"
// writes human readable console output, everything else writes JSON.
func New(env string, level Level) *ZeroLogger {
	var w io.Writer = os.Stdout
	if env == "local" {
		cw := zerolog.NewConsoleWriter()
		cw.TimeFormat = time.DateTime
		cw.Out = os.Stdout
		w = cw
	}

	zerolog.TimestampFieldName = "timestamp"
	zl := zerolog.New(w).
		Level(toZerolog(level)).
		With().
		Timestamp().
		Int("pid", os.Getpid()).
		Logger()

	return &ZeroLogger{zl: zl}
}

// NewWithWriter is used by tests and the CLI to capture output.
func NewWithWriter(w io.Writer, level Level) *ZeroLogger {
	return &ZeroLogger{zl: zerolog.New(w).Level(toZerolog(level)).With().Timestamp().Logger()}
}

// LevelFromEnv maps an ENV value to a default level.
func LevelFromEnv(env string) Level {
	switch env {
	case "local", "dev":
		return DebugLevel
	default:
		return InfoLevel
	}
}

func (l *ZeroLogger) Info(format string, v ...interface{}) {
	l.zl.Info().Msg(fmt.Sprintf(format, v...))
}

func (l *ZeroLogger) Error(format string, v ...interface{}) {
	l.zl.Error().Msg(fmt.Sprintf(format, v...))
}

func (l *ZeroLogger) Debug(format string, v ...interface{}) {
	l.zl.Debug().Msg(fmt.Sprintf(format, v...))
}

// Zerolog exposes the underlying logger for structured fields (request logs).
func (l *ZeroLogger) Zerolog() *zerolog.Logger {
	return &l.zl
}

func toZerolog(level Level) zerolog.Level {
	switch level {
	case DebugLevel:
		return zerolog.DebugLevel
	case ErrorLevel:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Nop discards everything.
type Nop struct{}

func (Nop) Info(string, ...interface{})  {}
func (Nop) Error(string, ...interface{}) {}
func (Nop) Debug(string, ...interface{}) {}
