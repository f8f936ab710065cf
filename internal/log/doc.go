// Package log builds the slog loggers used across latinscan.
//
// Verse lines are untrusted input and are logged verbatim as attributes of
// failure and defect records. SafeHandler wraps any slog.Handler and makes
// those values safe for terminals and log files: control characters and
// bidirectional overrides are escaped, and very long values are truncated.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	logger.Warn("line defective", "line", 12, "text", text)
//
//	// Set as default logger
//	slog.SetDefault(logger)
package log
