// Package logging builds the zerolog logger used for selfbuild diagnostics.
//
// Diagnostics always go to a separate stream (standard error by default) so
// they never interleave with the [INFO] and [CMD] lines on standard output.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultLevel keeps a healthy rebuild silent.
const DefaultLevel = zerolog.WarnLevel

// ParseLevel parses a level name; the empty string yields DefaultLevel.
func ParseLevel(s string) (zerolog.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultLevel, nil
	}
	return zerolog.ParseLevel(s)
}

// New returns a console logger writing to w at the given level. An invalid
// level falls back to DefaultLevel.
func New(w io.Writer, level string) zerolog.Logger {
	lvl, err := ParseLevel(level)
	if err != nil {
		lvl = DefaultLevel
	}
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    !isTerminal(w),
	}
	return zerolog.New(output).Level(lvl).With().Timestamp().Str("app", "selfbuild").Logger()
}

// Nop returns a logger that discards everything.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
