package engine

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"vat-engine/internal/apperr"
	"vat-engine/internal/model"
	"vat-engine/internal/result"
	"vat-engine/internal/validation"
)

var s = model.String

func TestProcessNetAmount(t *testing.T) {
	res, err := New().Process(context.Background(), &model.CalculationRequest{
		NetAmount: s("100"),
		VatRate:   s("20"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]decimal.Decimal{
		"net":   decimal.NewFromInt(100),
		"gross": decimal.NewFromInt(120),
		"vat":   decimal.NewFromInt(20),
		"rate":  decimal.NewFromInt(20),
	}
	got := map[string]decimal.Decimal{
		"net":   res.NetAmount,
		"gross": res.GrossAmount,
		"vat":   res.VatAmount,
		"rate":  res.VatRate,
	}
	for k, w := range want {
		if !got[k].Equal(w) {
			t.Fatalf("%s: expected %s, got %s", k, w, got[k])
		}
	}
}

func TestProcessMissingAmount(t *testing.T) {
	_, err := New().Process(context.Background(), &model.CalculationRequest{VatRate: s("10")})

	var verr *apperr.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if got := verr.Diagnostics.Fields(); !reflect.DeepEqual(got, []string{""}) {
		t.Fatalf("expected the cross-field key, got %v", got)
	}
	if got := verr.Diagnostics.Messages(""); !reflect.DeepEqual(got, []string{validation.MsgAmountsMissing}) {
		t.Fatalf("unexpected messages %v", got)
	}
}

func TestProcessValidationPreventsCalculation(t *testing.T) {
	called := false
	e := New(WithCalculator(func(*model.CalculationRequest) result.Outcome[model.CalculationResult] {
		called = true
		return result.Success(model.CalculationResult{})
	}))

	_, err := e.Process(context.Background(), &model.CalculationRequest{NetAmount: s("abc"), VatRate: s("20")})
	if err == nil {
		t.Fatal("expected an error")
	}
	if called {
		t.Fatal("calculator must not run after a validation failure")
	}
}

func TestProcessCalculationFailure(t *testing.T) {
	e := New(WithCalculator(func(*model.CalculationRequest) result.Outcome[model.CalculationResult] {
		return result.Failure[model.CalculationResult]("Invalid request", "E1", "E2")
	}))

	_, err := e.Process(context.Background(), &model.CalculationRequest{NetAmount: s("1"), VatRate: s("20")})

	var derr *apperr.DomainError
	if !errors.As(err, &derr) {
		t.Fatalf("expected domain error, got %v", err)
	}
	if derr.Message != "Invalid request" || !reflect.DeepEqual(derr.Errors, []string{"E1", "E2"}) {
		t.Fatalf("unexpected domain error %+v", derr)
	}
}

func TestProcessCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Process(ctx, &model.CalculationRequest{NetAmount: s("1"), VatRate: s("20")})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestProcessAggregateValidator(t *testing.T) {
	e := New(WithValidator(validation.New(validation.WithAggregate(true))))

	_, err := e.Process(context.Background(), &model.CalculationRequest{})

	var verr *apperr.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if got := verr.Diagnostics.Fields(); !reflect.DeepEqual(got, []string{model.FieldVatRate, model.FieldRequest}) {
		t.Fatalf("expected rate and cross-field diagnostics, got %v", got)
	}
}

func TestProcessRecordsSpans(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	e := New(WithTracer(tp.Tracer("test")))
	if _, err := e.Process(context.Background(), &model.CalculationRequest{GrossAmount: s("120"), VatRate: s("20")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	names := map[string]bool{}
	for _, span := range sr.Ended() {
		names[span.Name()] = true
		if span.Name() != "calculator.Calculate" {
			continue
		}
		found := false
		for _, kv := range span.Attributes() {
			if string(kv.Key) == "vat.amount_kind" && kv.Value.AsString() == "gross" {
				found = true
			}
		}
		if !found {
			t.Fatalf("calculator span is missing the amount kind: %v", span.Attributes())
		}
	}
	for _, want := range []string{"engine.Process", "validation.Validate", "calculator.Calculate"} {
		if !names[want] {
			t.Fatalf("missing span %q, got %v", want, names)
		}
	}
}
