// Package log provides logging functionality with automatic cleaning of
// document-derived values, built on top of the standard slog package.
//
// This package extends slog to provide:
//   - Automatic cleaning of markup snippets (whitespace, control bytes)
//   - Truncation of long document text in log attributes
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// # Why cleaning matters
//
// Checked documents are arbitrary markup. Element text and attribute values
// lifted from them can contain newlines, control characters, and very long
// runs of content. Logged as-is, these values split log lines, confuse
// line-oriented tooling, and flood output. The SnippetHandler guarantees
// that every string attribute prints as one clean, bounded log line.
//
// # Usage
//
//	// Create a logger
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//
//	// Use as a standard slog.Logger
//	logger.Debug("element text resolved",
//	    "text", elementText, // Cleaned and truncated automatically
//	    "target", "index.html",
//	)
//
//	// Set as default logger
//	slog.SetDefault(logger)
package log
