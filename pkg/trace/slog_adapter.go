package trace

import (
	"context"
	"log/slog"
)

// SlogAdapter writes trace events to an slog.Logger.
// Useful for development when you want to see the wire conversation
// in the console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session", event.SessionID),
		slog.String("direction", event.Direction.String()),
		slog.String("category", event.Category.String()),
	}

	if event.Resource != "" {
		attrs = append(attrs, slog.String("resource", event.Resource))
	}

	switch event.Category {
	case CategoryCommand, CategoryQuery:
		attrs = append(attrs, slog.String("command", event.Command))
	case CategoryResponse:
		attrs = append(attrs,
			slog.String("command", event.Command),
			slog.String("response", event.Response),
		)
	case CategoryState:
		attrs = append(attrs, slog.String("state", event.State))
	case CategoryError:
		attrs = append(attrs, slog.String("error", event.Message))
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "scpi", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
