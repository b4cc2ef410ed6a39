// Package logging wraps zerolog behind a small typed interface, so
// main, the engine, and the status server can log structured fields
// without depending on zerolog directly or reaching for a
// package-level logger singleton.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger exposes leveled structured logging. Instances are created
// once in main and passed to the engine and the status server as an
// explicit dependency, consistent with SPEC_FULL.md's "no package-level
// logger singleton" design note. The scheduler and the output sinks do
// not log.
type Logger struct {
	zl zerolog.Logger
}

// New builds a Logger writing JSON to w at the given level. main wires
// this to os.Stderr by default so structured logs never interleave
// with a stdout NMEA sink.
func New(w io.Writer, level zerolog.Level) *Logger {
	zl := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return &Logger{zl: zl}
}

// Default returns a Logger at info level writing to stderr.
func Default() *Logger {
	return New(os.Stderr, zerolog.InfoLevel)
}

// ParseLevel maps a --log-level flag value to a zerolog.Level,
// defaulting to info on an unrecognized string.
func ParseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// With returns a child Logger carrying an additional structured field
// on every subsequent entry, e.g. component/sink name.
func (l *Logger) With(key string, value any) *Logger {
	return &Logger{zl: l.zl.With().Interface(key, value).Logger()}
}

func (l *Logger) Debug(msg string, keysAndValues ...any) {
	l.zl.Debug().Fields(toFields(keysAndValues)).Msg(msg)
}

func (l *Logger) Info(msg string, keysAndValues ...any) {
	l.zl.Info().Fields(toFields(keysAndValues)).Msg(msg)
}

func (l *Logger) Warn(msg string, keysAndValues ...any) {
	l.zl.Warn().Fields(toFields(keysAndValues)).Msg(msg)
}

func (l *Logger) Error(msg string, keysAndValues ...any) {
	l.zl.Error().Fields(toFields(keysAndValues)).Msg(msg)
}

func toFields(keysAndValues []any) map[string]any {
	fields := make(map[string]any, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if key, ok := keysAndValues[i].(string); ok {
			fields[key] = keysAndValues[i+1]
		}
	}
	return fields
}
