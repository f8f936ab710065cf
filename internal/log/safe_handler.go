package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMaxValueLen is the rune limit applied to string attributes by
// NewLogger and NewJSONLogger.
const DefaultMaxValueLen = 512

// truncationMarker is appended to values cut at the rune limit.
const truncationMarker = "…"

// bidiControls are the Unicode bidirectional formatting characters. They can
// reorder what a terminal displays without changing the logged bytes.
var bidiControls = map[rune]bool{
	'\u061C': true, // arabic letter mark
	'\u200E': true, // left-to-right mark
	'\u200F': true, // right-to-left mark
	'\u202A': true, '\u202B': true, '\u202C': true, '\u202D': true, '\u202E': true,
	'\u2066': true, '\u2067': true, '\u2068': true, '\u2069': true,
}

// SafeHandler wraps an slog.Handler and sanitizes string attributes and the
// record message before passing them on.
type SafeHandler struct {
	// handler is the underlying slog handler that receives sanitized records.
	handler slog.Handler

	// maxLen is the rune limit for string values; 0 disables truncation.
	maxLen int
}

// SafeHandlerOption configures a SafeHandler.
type SafeHandlerOption func(*SafeHandler)

// WithMaxValueLen sets the rune limit for string values. Zero or a negative
// value disables truncation.
func WithMaxValueLen(n int) SafeHandlerOption {
	return func(h *SafeHandler) {
		h.maxLen = max(n, 0)
	}
}

// NewSafeHandler creates a new SafeHandler wrapping the given handler.
// If handler is nil, the returned SafeHandler will use slog.Default().Handler().
func NewSafeHandler(handler slog.Handler, opts ...SafeHandlerOption) *SafeHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	h := &SafeHandler{handler: handler, maxLen: DefaultMaxValueLen}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *SafeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle sanitizes the record's message and attributes and passes it to the
// underlying handler.
func (h *SafeHandler) Handle(ctx context.Context, r slog.Record) error {
	sanitized := slog.NewRecord(r.Time, r.Level, h.sanitizeString(r.Message), r.PC)

	r.Attrs(func(a slog.Attr) bool {
		sanitized.AddAttrs(h.sanitizeAttr(a))
		return true
	})

	return h.handler.Handle(ctx, sanitized)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are sanitized before being added.
func (h *SafeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	sanitizedAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		sanitizedAttrs[i] = h.sanitizeAttr(a)
	}
	return &SafeHandler{handler: h.handler.WithAttrs(sanitizedAttrs), maxLen: h.maxLen}
}

// WithGroup returns a new handler with the given group name.
func (h *SafeHandler) WithGroup(name string) slog.Handler {
	return &SafeHandler{handler: h.handler.WithGroup(name), maxLen: h.maxLen}
}

// sanitizeAttr sanitizes a single attribute, recursively handling groups.
func (h *SafeHandler) sanitizeAttr(a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()

	switch a.Value.Kind() {
	case slog.KindGroup:
		attrs := a.Value.Group()
		sanitizedAttrs := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			sanitizedAttrs[i] = h.sanitizeAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(sanitizedAttrs...)}
	case slog.KindString:
		return slog.String(a.Key, h.sanitizeString(a.Value.String()))
	case slog.KindAny:
		// Errors and Stringers carry input text too.
		switch v := a.Value.Any().(type) {
		case error:
			return slog.String(a.Key, h.sanitizeString(v.Error()))
		case fmt.Stringer:
			return slog.String(a.Key, h.sanitizeString(v.String()))
		}
	}
	return a
}

// sanitizeString escapes unsafe runes and truncates s to the rune limit.
func (h *SafeHandler) sanitizeString(s string) string {
	if h.maxLen > 0 && utf8.RuneCountInString(s) > h.maxLen {
		s = string([]rune(s)[:h.maxLen]) + truncationMarker
	}
	if !needsEscape(s) {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if isUnsafeRune(r) {
			if r <= 0xFFFF {
				fmt.Fprintf(&sb, `\u%04X`, r)
			} else {
				fmt.Fprintf(&sb, `\U%08X`, r)
			}
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func needsEscape(s string) bool {
	for _, r := range s {
		if isUnsafeRune(r) {
			return true
		}
	}
	return false
}

// isUnsafeRune reports whether r must not reach a terminal unescaped.
// Tabs are kept.
func isUnsafeRune(r rune) bool {
	if r == '\t' {
		return false
	}
	return unicode.IsControl(r) || bidiControls[r] || r == utf8.RuneError
}

// NewLogger creates a new slog.Logger writing sanitized text records.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewSafeHandler(slog.NewTextHandler(w, handlerOptions(verbose))))
}

// NewJSONLogger creates a new slog.Logger writing sanitized JSON records.
// Useful for structured log aggregation.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewSafeHandler(slog.NewJSONHandler(w, handlerOptions(verbose))))
}

func handlerOptions(verbose bool) *slog.HandlerOptions {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return &slog.HandlerOptions{Level: level}
}
