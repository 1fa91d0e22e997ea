package model

import (
	"bytes"

	json "github.com/goccy/go-json"
)

// FieldDiagnostics maps a field name to its validation messages. Fields keep
// the order in which they were first reported, and that order survives JSON
// encoding.
type FieldDiagnostics struct {
	fields  []string
	entries map[string][]string
}

func NewFieldDiagnostics() *FieldDiagnostics {
	return &FieldDiagnostics{entries: map[string][]string{}}
}

// Add appends message to the messages of field.
func (d *FieldDiagnostics) Add(field, message string) {
	if d.entries == nil {
		d.entries = map[string][]string{}
	}
	if _, ok := d.entries[field]; !ok {
		d.fields = append(d.fields, field)
	}
	d.entries[field] = append(d.entries[field], message)
}

// Len returns the number of fields with at least one message.
func (d *FieldDiagnostics) Len() int {
	if d == nil {
		return 0
	}
	return len(d.fields)
}

func (d *FieldDiagnostics) Empty() bool {
	return d.Len() == 0
}

// Fields returns the reported field names in order.
func (d *FieldDiagnostics) Fields() []string {
	if d == nil {
		return nil
	}
	out := make([]string, len(d.fields))
	copy(out, d.fields)
	return out
}

// Messages returns the messages reported for field.
func (d *FieldDiagnostics) Messages(field string) []string {
	if d == nil {
		return nil
	}
	msgs, ok := d.entries[field]
	if !ok {
		return nil
	}
	out := make([]string, len(msgs))
	copy(out, msgs)
	return out
}

// Map returns an unordered copy of the diagnostics.
func (d *FieldDiagnostics) Map() map[string][]string {
	out := make(map[string][]string, d.Len())
	if d == nil {
		return out
	}
	for _, f := range d.fields {
		out[f] = d.Messages(f)
	}
	return out
}

func (d *FieldDiagnostics) MarshalJSON() ([]byte, error) {
	if d == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range d.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f)
		if err != nil {
			return nil, err
		}
		msgs, err := json.Marshal(d.entries[f])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(msgs)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
