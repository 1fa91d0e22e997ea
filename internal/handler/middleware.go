package handler

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/valyala/fasthttp"

	"vat-engine/internal/telemetry"
)

const CorrelationHeader = "X-Correlation-ID"

const correlationKey = "correlation_id"

// withLogging assigns the correlation id and logs each request on entry and
// exit. Bodies are only logged at debug level.
func (h *Handler) withLogging(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		id := telemetry.NewCorrelationID(string(ctx.Request.Header.Peek(CorrelationHeader)))
		ctx.SetUserValue(correlationKey, id)
		ctx.Response.Header.Set(CorrelationHeader, id)

		rctx := requestContext(ctx)
		start := time.Now()
		attrs := []any{
			slog.String("method", string(ctx.Method())),
			slog.String("path", string(ctx.Path())),
		}
		h.logger.InfoContext(rctx, "request received", attrs...)
		if h.logger.Enabled(rctx, slog.LevelDebug) {
			h.logger.DebugContext(rctx, "request body", slog.String("body", string(ctx.PostBody())))
		}

		next(ctx)

		if h.logger.Enabled(rctx, slog.LevelDebug) {
			h.logger.DebugContext(rctx, "response body", slog.String("body", string(ctx.Response.Body())))
		}
		h.logger.InfoContext(rctx, "request completed", append(attrs,
			slog.Int("status", ctx.Response.StatusCode()),
			slog.Duration("duration", time.Since(start)),
		)...)
	}
}

// withRecovery turns a panic into an internal error envelope.
func (h *Handler) withRecovery(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		defer func() {
			if r := recover(); r != nil {
				ctx.Response.ResetBody()
				h.writeError(ctx, fmt.Errorf("panic: %v", r))
			}
		}()
		next(ctx)
	}
}
