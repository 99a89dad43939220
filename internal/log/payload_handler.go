package log

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
)

// DefaultMaxValueLen is the longest string value passed through unchanged.
const DefaultMaxValueLen = 120

// payloadKeys are attribute keys whose values are encoded file content.
// Their values are replaced by a short summary whenever they exceed payloadPreviewLen.
var payloadKeys = map[string]bool{
	"base64":   true,
	"b64":      true,
	"datauri":  true,
	"data_uri": true,
	"payload":  true,
	"content":  true,
	"encoded":  true,
}

// payloadPreviewLen is the number of leading characters kept from a payload value.
const payloadPreviewLen = 16

// PayloadHandler wraps an slog.Handler and shortens oversized attribute values
// before passing records on.
type PayloadHandler struct {
	handler slog.Handler
	maxLen  int
}

// NewPayloadHandler creates a PayloadHandler wrapping handler.
// If handler is nil, slog.Default().Handler() is used. A maxLen of zero or
// less selects DefaultMaxValueLen.
func NewPayloadHandler(handler slog.Handler, maxLen int) *PayloadHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	if maxLen <= 0 {
		maxLen = DefaultMaxValueLen
	}
	return &PayloadHandler{handler: handler, maxLen: maxLen}
}

// Enabled reports whether the underlying handler handles records at level.
func (h *PayloadHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle shortens the record's attributes and passes it to the underlying handler.
func (h *PayloadHandler) Handle(ctx context.Context, r slog.Record) error {
	shortened := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		shortened.AddAttrs(h.shortenAttr(a))
		return true
	})
	return h.handler.Handle(ctx, shortened)
}

// WithAttrs returns a new handler with the given attributes added.
func (h *PayloadHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		out[i] = h.shortenAttr(a)
	}
	return &PayloadHandler{handler: h.handler.WithAttrs(out), maxLen: h.maxLen}
}

// WithGroup returns a new handler with the given group name.
func (h *PayloadHandler) WithGroup(name string) slog.Handler {
	return &PayloadHandler{handler: h.handler.WithGroup(name), maxLen: h.maxLen}
}

// shortenAttr shortens a single attribute, recursively handling groups.
func (h *PayloadHandler) shortenAttr(a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		out := make([]slog.Attr, len(attrs))
		for i, ga := range attrs {
			out[i] = h.shortenAttr(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(out...)}
	}

	if a.Value.Kind() != slog.KindString {
		return a
	}

	s := a.Value.String()
	if payloadKeys[strings.ToLower(a.Key)] && len(s) > payloadPreviewLen {
		return slog.String(a.Key, summarize(s, payloadPreviewLen))
	}
	if len(s) > h.maxLen {
		return slog.String(a.Key, summarize(s, h.maxLen))
	}
	return a
}

// summarize keeps the first n bytes of s and notes the original length.
func summarize(s string, n int) string {
	return s[:n] + "...(" + strconv.Itoa(len(s)) + " chars)"
}

// NewLogger creates a text logger writing to w.
// verbose selects slog.LevelDebug, otherwise only warnings and errors are logged.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewPayloadHandler(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level(verbose)}), 0))
}

// NewJSONLogger creates a JSON logger writing to w.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewPayloadHandler(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level(verbose)}), 0))
}

func level(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}
