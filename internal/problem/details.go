// Package problem renders every error leaving the service as a problem
// details envelope.
package problem

import (
	json "github.com/goccy/go-json"

	"vat-engine/internal/model"
)

const ContentType = "application/problem+json"

const (
	TypeBadRequest       = "https://tools.ietf.org/html/rfc7231#section-6.5.1"
	TypeValidation       = "https://tools.ietf.org/html/rfc9110#section-15.5.1"
	TypeNotFound         = "https://tools.ietf.org/html/rfc9110#section-15.5.5"
	TypeMethodNotAllowed = "https://tools.ietf.org/html/rfc9110#section-15.5.6"
	TypeInternal         = "https://tools.ietf.org/html/rfc9110#section-15.6.1"

	TitleValidation = "One or more validation errors occurred."
)

// Details is the uniform error envelope. At most one of Errors and Fields is
// set; either one is written under the "errors" key.
type Details struct {
	Type     string
	Title    string
	Status   int
	Instance string
	// Errors holds calculation sub-errors.
	Errors []string
	// Fields holds validation diagnostics.
	Fields *model.FieldDiagnostics
}

type wireDetails struct {
	Type     string `json:"type,omitempty"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Instance string `json:"instance,omitempty"`
	Errors   any    `json:"errors,omitempty"`
}

func (d Details) MarshalJSON() ([]byte, error) {
	w := wireDetails{
		Type:     d.Type,
		Title:    d.Title,
		Status:   d.Status,
		Instance: d.Instance,
	}
	switch {
	case d.Fields != nil:
		w.Errors = d.Fields
	case len(d.Errors) > 0:
		w.Errors = d.Errors
	}
	return json.Marshal(w)
}
