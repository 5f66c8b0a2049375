// Package logging provides structured logging for the generator.
package logging

import (
	"io"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog with console formatting.
type Logger struct {
	zlog zerolog.Logger
}

// Options controls how a Logger renders.
type Options struct {
	// Verbose enables debug events.
	Verbose bool
	// NoColor disables ANSI colors in the console output.
	NoColor bool
	// Timestamps adds a time column. Off for go:generate runs.
	Timestamps bool
}

// New creates a console logger writing to w.
func New(w io.Writer, opts Options) *Logger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    opts.NoColor,
		TimeFormat: "15:04:05",
	}
	if !opts.Timestamps {
		output.PartsExclude = []string{zerolog.TimestampFieldName}
	}

	level := zerolog.InfoLevel
	if opts.Verbose {
		level = zerolog.DebugLevel
	}

	ctx := zerolog.New(output).Level(level).With()
	if opts.Timestamps {
		ctx = ctx.Timestamp()
	}

	return &Logger{zlog: ctx.Logger()}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{zlog: zerolog.Nop()}
}

// Info returns an info level event.
func (l *Logger) Info() *zerolog.Event {
	return l.zlog.Info()
}

// Error returns an error level event.
func (l *Logger) Error() *zerolog.Event {
	return l.zlog.Error()
}

// Debug returns a debug level event.
func (l *Logger) Debug() *zerolog.Event {
	return l.zlog.Debug()
}

// Warn returns a warn level event.
func (l *Logger) Warn() *zerolog.Event {
	return l.zlog.Warn()
}

// With creates a child logger context.
func (l *Logger) With() zerolog.Context {
	return l.zlog.With()
}

// Component returns a child logger tagged with the pipeline stage.
func (l *Logger) Component(name string) *Logger {
	return &Logger{zlog: l.zlog.With().Str("component", name).Logger()}
}

// Debugf logs a debug message with printf-style formatting.
// This is only shown when verbose mode is enabled.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.zlog.Debug().Msgf(format, args...)
}

// Infof logs an info message with printf-style formatting.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.zlog.Info().Msgf(format, args...)
}

// Warnf logs a warning message with printf-style formatting.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.zlog.Warn().Msgf(format, args...)
}
