package log

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"unicode"
)

// snippetKeys contains attribute keys whose values carry document content.
// These values can be arbitrarily long and may span many lines, so they are
// always trimmed to a single-line snippet.
var snippetKeys = map[string]bool{
	"markup":   true,
	"html":     true,
	"content":  true,
	"text":     true,
	"snippet":  true,
	"fragment": true,
	"value":    true,
	"message":  true,
}

// MaxSnippetLen is the longest document-derived value that appears in a log
// line before truncation.
const MaxSnippetLen = 120

// Ellipsis marks a truncated snippet.
const Ellipsis = "..."

// SnippetHandler wraps an slog.Handler to keep document content log-safe.
// Checked documents are arbitrary markup: attribute values lifted from them
// can contain control bytes, newlines, and multi-kilobyte element text that
// would corrupt or flood log output. The handler collapses whitespace,
// strips control characters, and truncates long values before passing
// records to the underlying handler.
//
// Design decision: We use a handler wrapper rather than a custom logger
// because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Call sites stay honest: they log raw values and the handler
//     guarantees the output is clean
type SnippetHandler struct {
	// handler is the underlying slog handler that receives cleaned records.
	handler slog.Handler
}

// NewSnippetHandler creates a new SnippetHandler wrapping the given handler.
// All string attributes will be cleaned before being passed to the underlying
// handler. If handler is nil, the returned SnippetHandler will use
// slog.Default().Handler().
func NewSnippetHandler(handler slog.Handler) *SnippetHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &SnippetHandler{handler: handler}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *SnippetHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle cleans the record's attributes and passes it to the underlying handler.
func (h *SnippetHandler) Handle(ctx context.Context, r slog.Record) error {
	// Create a new record with cleaned attributes
	cleaned := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		cleaned.AddAttrs(h.cleanAttr(a))
		return true
	})

	return h.handler.Handle(ctx, cleaned)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are cleaned before being added.
func (h *SnippetHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	cleanedAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		cleanedAttrs[i] = h.cleanAttr(a)
	}
	return &SnippetHandler{handler: h.handler.WithAttrs(cleanedAttrs)}
}

// WithGroup returns a new handler with the given group name.
func (h *SnippetHandler) WithGroup(name string) slog.Handler {
	return &SnippetHandler{handler: h.handler.WithGroup(name)}
}

// cleanAttr cleans a single attribute, recursively handling groups.
func (h *SnippetHandler) cleanAttr(a slog.Attr) slog.Attr {
	// Handle groups recursively
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		cleanedAttrs := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			cleanedAttrs[i] = h.cleanAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(cleanedAttrs...)}
	}

	if a.Value.Kind() != slog.KindString {
		return a
	}

	strVal := a.Value.String()
	cleaned := CleanSnippet(strVal)

	// Document-derived keys are always truncated; other string values only
	// when they contain characters that would break a log line.
	if snippetKeys[strings.ToLower(a.Key)] {
		cleaned = TruncateSnippet(cleaned, MaxSnippetLen)
	}

	if cleaned != strVal {
		return slog.String(a.Key, cleaned)
	}
	return a
}

// CleanSnippet collapses runs of whitespace into single spaces and removes
// control characters. The result is always safe to print on one log line.
func CleanSnippet(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))

	inSpace := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			if !inSpace && sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			inSpace = true
		case unicode.IsControl(r):
			// Drop control characters entirely
		default:
			sb.WriteRune(r)
			inSpace = false
		}
	}

	return strings.TrimRight(sb.String(), " ")
}

// TruncateSnippet shortens s to at most maxLen characters, appending an
// ellipsis when truncation occurs. Truncation counts runes, not bytes, so
// multi-byte characters are never split.
func TruncateSnippet(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}

	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= len(Ellipsis) {
		return string(runes[:maxLen])
	}

	return strings.TrimRight(string(runes[:maxLen-len(Ellipsis)]), " ") + Ellipsis
}

// NewLogger creates a new slog.Logger with snippet handling.
// The logger keeps document-derived values clean in all log output.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
//
// Returns a *slog.Logger that can be used with slog.SetDefault() or passed
// to components that accept *slog.Logger.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	textHandler := slog.NewTextHandler(w, opts)
	snippetHandler := NewSnippetHandler(textHandler)

	return slog.New(snippetHandler)
}

// NewJSONLogger creates a new slog.Logger with snippet handling that outputs
// JSON format. Useful for structured log aggregation.
//
// Parameters:
//   - w: The io.Writer to write log output to
//   - verbose: If true, sets log level to Debug; otherwise Warn
//
// Returns a *slog.Logger configured for JSON output with snippet cleaning.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	jsonHandler := slog.NewJSONHandler(w, opts)
	snippetHandler := NewSnippetHandler(jsonHandler)

	return slog.New(snippetHandler)
}
