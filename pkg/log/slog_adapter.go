package log

import (
	"context"
	"encoding/hex"
	"log/slog"
	"sort"
)

// SlogAdapter writes codec events to an slog.Logger.
// Useful for development when you want to see payloads in the console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger. Payload events are logged at
// Debug level, error events at Warn.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("request_id", event.RequestID),
		slog.String("direction", event.Direction.String()),
		slog.String("layer", event.Layer.String()),
		slog.String("category", event.Category.String()),
	}

	// Add optional identifiers
	if event.Device != "" {
		attrs = append(attrs, slog.String("device", event.Device))
	}
	if event.Module != "" {
		attrs = append(attrs, slog.String("module", event.Module))
	}
	if event.Option != "" {
		attrs = append(attrs, slog.String("option", event.Option))
	}
	if event.WireTag != "" {
		attrs = append(attrs, slog.String("wire_tag", event.WireTag))
	}

	level := slog.LevelDebug
	switch {
	case event.Payload != nil:
		attrs = append(attrs,
			slog.Int("payload_size", event.Payload.Size),
			slog.String("payload", hex.EncodeToString(event.Payload.Data)),
		)
		if event.Payload.Truncated {
			attrs = append(attrs, slog.Bool("truncated", true))
		}
		if len(event.Payload.Values) > 0 {
			keys := make([]string, 0, len(event.Payload.Values))
			for k := range event.Payload.Values {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			values := make([]any, 0, len(keys))
			for _, k := range keys {
				values = append(values, slog.String(k, event.Payload.Values[k]))
			}
			attrs = append(attrs, slog.Group("values", values...))
		}
	case event.Error != nil:
		level = slog.LevelWarn
		attrs = append(attrs,
			slog.String("error_layer", event.Error.Layer.String()),
			slog.String("error_msg", event.Error.Message),
		)
		if event.Error.Context != "" {
			attrs = append(attrs, slog.String("error_context", event.Error.Context))
		}
	}

	a.logger.LogAttrs(context.Background(), level, "codec", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
