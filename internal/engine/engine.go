// Package engine runs a calculation request through validation and
// calculation.
package engine

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"vat-engine/internal/apperr"
	"vat-engine/internal/calculator"
	"vat-engine/internal/model"
	"vat-engine/internal/result"
	"vat-engine/internal/validation"
)

const tracerName = "vat-engine/internal/engine"

const (
	OutcomeSuccess            = "SUCCESS"
	OutcomeValidationFailure  = "VALIDATION_FAILURE"
	OutcomeCalculationFailure = "CALCULATION_FAILURE"
)

// CalculateFunc derives a result from a validated request.
type CalculateFunc func(*model.CalculationRequest) result.Outcome[model.CalculationResult]

// Engine is safe for concurrent use.
type Engine struct {
	validator *validation.Validator
	calculate CalculateFunc
	tracer    trace.Tracer
}

type Option func(*Engine)

func WithValidator(v *validation.Validator) Option {
	return func(e *Engine) { e.validator = v }
}

func WithCalculator(fn CalculateFunc) Option {
	return func(e *Engine) { e.calculate = fn }
}

func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) { e.tracer = t }
}

func New(opts ...Option) *Engine {
	e := &Engine{
		validator: validation.New(),
		calculate: calculator.Calculate,
		tracer:    otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Process validates req and calculates the missing amounts. A rejected
// request returns *apperr.ValidationError and a failed calculation returns
// *apperr.DomainError. Cancellation is honoured before work starts and
// before the result is handed back.
func (e *Engine) Process(ctx context.Context, req *model.CalculationRequest) (model.CalculationResult, error) {
	ctx, span := e.tracer.Start(ctx, "engine.Process")
	defer span.End()

	if err := ctx.Err(); err != nil {
		return fail(span, "", err)
	}
	if req == nil {
		req = &model.CalculationRequest{}
	}

	if diags := e.validate(ctx, req); !diags.Empty() {
		return fail(span, OutcomeValidationFailure, &apperr.ValidationError{Diagnostics: diags})
	}

	out := e.calculateSpan(ctx, req)
	if derr := apperr.FromOutcome(out); derr != nil {
		return fail(span, OutcomeCalculationFailure, derr)
	}
	res, _ := out.Value()

	if err := ctx.Err(); err != nil {
		return fail(span, "", err)
	}
	span.SetAttributes(attribute.String("vat.outcome", OutcomeSuccess))
	return res, nil
}

func (e *Engine) validate(ctx context.Context, req *model.CalculationRequest) *model.FieldDiagnostics {
	_, span := e.tracer.Start(ctx, "validation.Validate")
	defer span.End()

	cardinality, _ := validation.Classify(req)
	diags := e.validator.Validate(req)
	span.SetAttributes(
		attribute.String("vat.cardinality", cardinality.String()),
		attribute.Int("vat.diagnostics", diags.Len()),
	)
	return diags
}

func (e *Engine) calculateSpan(ctx context.Context, req *model.CalculationRequest) result.Outcome[model.CalculationResult] {
	_, span := e.tracer.Start(ctx, "calculator.Calculate")
	defer span.End()

	if kind, ok := calculator.Branch(req); ok {
		span.SetAttributes(attribute.String("vat.amount_kind", kind.Name()))
	}
	out := e.calculate(req)
	if out.IsFailure() {
		span.SetStatus(codes.Error, out.Message())
	}
	return out
}

func fail(span trace.Span, outcome string, err error) (model.CalculationResult, error) {
	if outcome != "" {
		span.SetAttributes(attribute.String("vat.outcome", outcome))
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return model.CalculationResult{}, err
}
