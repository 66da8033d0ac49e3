// Package telemetry provides the zerolog-backed default implementation
// of the package-wide Logger seam (see ../../logger.go).
package telemetry

import (
	"os"

	"github.com/rs/zerolog"
)

// adapter satisfies the package's Logger interface (Printf(format
// string, v ...any)) on top of a structured zerolog.Logger, so callers
// that never replace the default still get leveled, timestamped
// output instead of bare fmt.Printf text.
type adapter struct {
	zl zerolog.Logger
}

func (a adapter) Printf(format string, v ...any) {
	a.zl.Warn().Msgf(format, v...)
}

// Default builds the package-wide default logger: human-readable
// console output at warn level and above, writing to stderr.
func Default() adapter {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zl := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: false}).
		With().
		Timestamp().
		Str("component", "tavoo").
		Logger()
	return adapter{zl: zl}
}

// WithComponent returns a derived logger tagging every message with
// the given subsystem name (e.g. "caption", "clock", "bus").
func (a adapter) WithComponent(name string) adapter {
	return adapter{zl: a.zl.With().Str("component", name).Logger()}
}
