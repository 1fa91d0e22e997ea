// Package telemetry sets up structured logging and tracing.
package telemetry

import (
	"io"
	"log/slog"
)

// NewLogger returns a slog logger writing json or text records to w, tagged
// with the service name and with the correlation id of the logging context.
func NewLogger(w io.Writer, format string, level slog.Level, service string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if format == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(contextHandler{handler}).With(slog.String("service", service))
}
