package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyCommand    = "command"
	KeyArgs       = "args"
	KeyBackend    = "backend"
	KeyTarget     = "target"
	KeyStage      = "stage"
	KeyPath       = "path"
	KeyDir        = "dir"
	KeyDurationMS = "duration_ms"
	KeyExitCode   = "exit_code"
	KeyCount      = "count"
	KeyStream     = "stream"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr     { return slog.String(KeyRunID, id) }
func Command(name string) slog.Attr { return slog.String(KeyCommand, name) }
func Args(args []string) slog.Attr  { return slog.Any(KeyArgs, args) }
func Backend(name string) slog.Attr { return slog.String(KeyBackend, name) }
func Target(name string) slog.Attr  { return slog.String(KeyTarget, name) }
func Stage(name string) slog.Attr   { return slog.String(KeyStage, name) }
func Path(p string) slog.Attr       { return slog.String(KeyPath, p) }
func Dir(d string) slog.Attr        { return slog.String(KeyDir, d) }
func ExitCode(code int) slog.Attr   { return slog.Int(KeyExitCode, code) }
func Count(n int) slog.Attr         { return slog.Int(KeyCount, n) }
func Stream(name string) slog.Attr  { return slog.String(KeyStream, name) }
func Duration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000)
}
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
