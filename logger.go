package tavoo

import "github.com/aznhe21/tavoo-go/internal/telemetry"

// Logger is the minimal logging seam the package writes diagnostics
// through: rejected `rate` notifications, and the bus's dropped-command
// warnings (a [Player]'s bus uses the logger in effect when [NewPlayer]
// ran). Malformed DRCS fonts and unrecognized opcodes are dropped by
// the caption package without being logged, and undecodable
// notifications are returned as errors by [bus.DecodeNotification]
// rather than logged here.
type Logger interface {
	Printf(format string, v ...any)
}

var pkgLogger Logger = telemetry.Default()

// SetLogger replaces the package-wide logger. Host applications that
// already maintain their own structured logger should call this once
// at startup.
func SetLogger(logger Logger) {
	pkgLogger = logger
}
