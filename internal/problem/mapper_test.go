package problem

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vat-engine/internal/apperr"
	"vat-engine/internal/model"
	"vat-engine/internal/result"
)

func newTestMapper() (*Mapper, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewMapper(logger), &buf
}

func encode(t *testing.T, d Details) map[string]any {
	t.Helper()
	b, err := json.Marshal(d)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))
	return out
}

func TestMapDomainError(t *testing.T) {
	m, logs := newTestMapper()
	err := &apperr.DomainError{Message: "M", Errors: []string{"E1", "E2"}}

	d := m.Map(context.Background(), fmt.Errorf("calculate: %w", err), "/api/vatcalculator/calculate")

	assert.Equal(t, "M", d.Title)
	assert.Equal(t, http.StatusBadRequest, d.Status)
	assert.Equal(t, []string{"E1", "E2"}, d.Errors)

	body := encode(t, d)
	assert.Equal(t, "M", body["title"])
	assert.EqualValues(t, 400, body["status"])
	assert.Equal(t, []any{"E1", "E2"}, body["errors"])
	assert.Equal(t, TypeBadRequest, body["type"])
	assert.Equal(t, "/api/vatcalculator/calculate", body["instance"])
	assert.Contains(t, logs.String(), `"level":"INFO"`)
}

func TestMapGenericError(t *testing.T) {
	m, logs := newTestMapper()

	d := m.Map(context.Background(), errors.New("M2"), "/x")

	assert.Equal(t, "M2", d.Title)
	assert.Equal(t, http.StatusInternalServerError, d.Status)

	body := encode(t, d)
	assert.Equal(t, "M2", body["title"])
	assert.NotContains(t, body, "errors")
	assert.Contains(t, logs.String(), `"level":"ERROR"`)
	assert.Contains(t, logs.String(), `"error":"M2"`)
}

func TestMapValidationErrorKeepsFieldOrder(t *testing.T) {
	m, _ := newTestMapper()
	diags := model.NewFieldDiagnostics()
	diags.Add(model.FieldVatRate, "rate")
	diags.Add(model.FieldRequest, "amounts")

	d := m.Map(context.Background(), &apperr.ValidationError{Diagnostics: diags}, "")

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type": "`+TypeValidation+`",
		"title": "`+TitleValidation+`",
		"status": 400,
		"errors": {"vatRate": ["rate"], "": ["amounts"]}
	}`, string(b))
	assert.Contains(t, string(b), `"errors":{"vatRate":["rate"],"":["amounts"]}`)
}

func TestMapStatusErrors(t *testing.T) {
	m, _ := newTestMapper()

	d := m.Map(context.Background(), NotFound(), "/nope")
	assert.Equal(t, http.StatusNotFound, d.Status)
	assert.Equal(t, TypeNotFound, d.Type)

	d = m.Map(context.Background(), MethodNotAllowed(), "/api/vatcalculator/calculate")
	assert.Equal(t, http.StatusMethodNotAllowed, d.Status)
	assert.Equal(t, "Method Not Allowed", d.Title)
}

func TestMapDomainErrorWithoutSubErrors(t *testing.T) {
	m, _ := newTestMapper()

	body := encode(t, m.Map(context.Background(), &apperr.DomainError{Message: "M"}, ""))
	assert.NotContains(t, body, "errors")

	body = encode(t, m.Map(context.Background(), apperr.FromOutcome(result.Failure[int]("M")), ""))
	assert.NotContains(t, body, "errors")
	assert.Equal(t, "M", body["title"])

	body = encode(t, m.Map(context.Background(), &apperr.DomainError{Message: "M", Errors: []string{}}, ""))
	assert.NotContains(t, body, "errors")
}
