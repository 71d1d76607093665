//go:build !greydebug

package dynamo

import "log/slog"

// Check reports whether cond holds. A failed check is logged as a warning so
// the caller can clamp or skip; builds tagged greydebug panic instead.
func Check(cond bool, msg string, args ...any) bool {
	if !cond {
		slog.Warn(msg, args...)
	}
	return cond
}
