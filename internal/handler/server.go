package handler

import (
	"fmt"
	"log/slog"

	"github.com/valyala/fasthttp"

	"vat-engine/internal/config"
)

// NewServer builds the fasthttp server for h using the configured limits.
func NewServer(h *Handler, cfg config.Config) *fasthttp.Server {
	return &fasthttp.Server{
		Handler:               h.RequestHandler(),
		Name:                  cfg.ServiceName,
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		MaxRequestBodySize:    cfg.MaxBodySize,
		NoDefaultServerHeader: true,
		Logger:                serverLogger{h.logger},
	}
}

// serverLogger routes fasthttp's internal messages to slog.
type serverLogger struct {
	logger *slog.Logger
}

func (l serverLogger) Printf(format string, args ...any) {
	l.logger.Warn(fmt.Sprintf(format, args...), slog.String("component", "fasthttp"))
}
