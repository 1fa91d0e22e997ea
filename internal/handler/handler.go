// Package handler exposes the calculation engine over HTTP.
package handler

import (
	"context"
	"fmt"
	"log/slog"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"vat-engine/internal/apperr"
	"vat-engine/internal/model"
	"vat-engine/internal/problem"
	"vat-engine/internal/telemetry"
)

const (
	CalculatePath = "/api/vatcalculator/calculate"
	HealthPath    = "/healthz"

	contentTypeJSON = "application/json; charset=utf-8"
)

// Processor runs a calculation request.
type Processor interface {
	Process(ctx context.Context, req *model.CalculationRequest) (model.CalculationResult, error)
}

type Handler struct {
	engine Processor
	mapper *problem.Mapper
	logger *slog.Logger
}

func New(engine Processor, mapper *problem.Mapper, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if mapper == nil {
		mapper = problem.NewMapper(logger)
	}
	return &Handler{engine: engine, mapper: mapper, logger: logger}
}

// RequestHandler returns the routing handler wrapped in request logging and
// panic recovery.
func (h *Handler) RequestHandler() fasthttp.RequestHandler {
	return h.withLogging(h.withRecovery(h.route))
}

func (h *Handler) route(ctx *fasthttp.RequestCtx) {
	switch string(ctx.Path()) {
	case CalculatePath:
		if !ctx.IsPost() {
			h.methodNotAllowed(ctx, fasthttp.MethodPost)
			return
		}
		h.HandleCalculation(ctx)
	case HealthPath:
		if !ctx.IsGet() {
			h.methodNotAllowed(ctx, fasthttp.MethodGet)
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, contentTypeJSON, model.HealthResponse{Status: "ok"})
	default:
		h.writeError(ctx, problem.NotFound())
	}
}

// HandleCalculation decodes a calculation request and writes either the
// result or a problem envelope.
func (h *Handler) HandleCalculation(ctx *fasthttp.RequestCtx) {
	body := ctx.PostBody()
	if len(body) == 0 {
		h.writeError(ctx, apperr.NewValidationError("body", "A non-empty request body is required."))
		return
	}

	var req model.CalculationRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.writeError(ctx, apperr.NewValidationError("body", "The request body is not valid JSON: "+err.Error()))
		return
	}

	res, err := h.engine.Process(requestContext(ctx), &req)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, contentTypeJSON, res)
}

func (h *Handler) methodNotAllowed(ctx *fasthttp.RequestCtx, allow string) {
	ctx.Response.Header.Set(fasthttp.HeaderAllow, allow)
	h.writeError(ctx, problem.MethodNotAllowed())
}

func (h *Handler) writeError(ctx *fasthttp.RequestCtx, err error) {
	d := h.mapper.Map(requestContext(ctx), err, string(ctx.Path()))
	writeJSON(ctx, d.Status, problem.ContentType, d)
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, contentType string, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		ctx.Error(fmt.Sprintf("encode response: %v", err), fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetStatusCode(status)
	ctx.SetContentType(contentType)
	ctx.SetBody(body)
}

// requestContext is the context handed to the engine and the mapper. It
// carries the correlation id assigned by withLogging.
func requestContext(ctx *fasthttp.RequestCtx) context.Context {
	id, _ := ctx.UserValue(correlationKey).(string)
	return telemetry.WithCorrelationID(ctx, id)
}
