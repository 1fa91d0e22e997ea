package telemetry

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "json", slog.LevelInfo, "vat-engine")

	logger.Debug("hidden")
	logger.Info("hello", slog.String("k", "v"))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug record must be filtered: %s", out)
	}
	for _, want := range []string{`"msg":"hello"`, `"service":"vat-engine"`, `"k":"v"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %s in %s", want, out)
		}
	}
}

func TestNewLoggerText(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, "text", slog.LevelDebug, "svc").Debug("shown")

	if !strings.Contains(buf.String(), "msg=shown") || !strings.Contains(buf.String(), "service=svc") {
		t.Fatalf("unexpected text output %q", buf.String())
	}
}

func TestSetupTracingNoopWithoutEndpoint(t *testing.T) {
	shutdown, err := SetupTracing(context.Background(), "", "vat-engine")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetupTracingWithEndpoint(t *testing.T) {
	// Non-routable address: nothing is exported, shutdown still flushes.
	shutdown, err := SetupTracing(context.Background(), "http://192.0.2.1:4318", "vat-engine")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = shutdown(ctx)
}

func TestLoggerAddsCorrelationID(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "json", slog.LevelInfo, "svc").With(slog.String("component", "test"))

	ctx := WithCorrelationID(context.Background(), "3f1c2a8e-0000-4000-8000-000000000001")
	logger.InfoContext(ctx, "with id")
	logger.Info("without id")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 records, got %d", len(lines))
	}
	if !strings.Contains(lines[0], `"correlation_id":"3f1c2a8e-0000-4000-8000-000000000001"`) {
		t.Fatalf("missing correlation id: %s", lines[0])
	}
	if strings.Contains(lines[1], "correlation_id") {
		t.Fatalf("unexpected correlation id: %s", lines[1])
	}
	if CorrelationID(context.Background()) != "" {
		t.Fatal("empty context must have no correlation id")
	}
}

func TestNewCorrelationID(t *testing.T) {
	const supplied = "6F9619FF-8B86-4011-B42D-00C04FC964FF"
	if got := NewCorrelationID(supplied); got != "6f9619ff-8b86-4011-b42d-00c04fc964ff" {
		t.Fatalf("expected normalised supplied id, got %q", got)
	}
	for _, in := range []string{"", "not-a-uuid"} {
		got := NewCorrelationID(in)
		if _, err := uuid.Parse(got); err != nil {
			t.Fatalf("NewCorrelationID(%q) = %q, not a uuid", in, got)
		}
	}
}
