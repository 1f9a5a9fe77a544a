package config

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the process logger writing to w. Console output is
// human-readable with RFC3339 timestamps; json emits one object per line.
// An unparsable level falls back to info.
func NewLogger(w io.Writer, level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	out := w
	if !strings.EqualFold(format, LogFormatJSON) {
		out = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
		}
	}

	return zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

// Logger builds the logger for c. debug forces the debug level.
func (c Config) Logger(w io.Writer, debug bool) zerolog.Logger {
	level := c.LogLevel
	if debug {
		level = zerolog.LevelDebugValue
	}
	return NewLogger(w, level, c.LogFormat)
}
