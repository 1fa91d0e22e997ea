package model

import (
	"reflect"
	"testing"
)

func TestFieldDiagnosticsKeepsInsertionOrder(t *testing.T) {
	d := NewFieldDiagnostics()
	d.Add(FieldVatRate, "rate")
	d.Add(FieldRequest, "cross")
	d.Add(FieldVatRate, "rate again")

	if got := d.Fields(); !reflect.DeepEqual(got, []string{FieldVatRate, FieldRequest}) {
		t.Fatalf("unexpected field order %v", got)
	}
	if got := d.Messages(FieldVatRate); !reflect.DeepEqual(got, []string{"rate", "rate again"}) {
		t.Fatalf("unexpected messages %v", got)
	}

	b, err := d.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"vatRate":["rate","rate again"],"":["cross"]}`
	if string(b) != want {
		t.Fatalf("expected %s, got %s", want, b)
	}
}

func TestFieldDiagnosticsNil(t *testing.T) {
	var d *FieldDiagnostics
	if !d.Empty() {
		t.Fatal("nil diagnostics must be empty")
	}
	if d.Messages("x") != nil {
		t.Fatal("nil diagnostics must have no messages")
	}
	if d.Fields() != nil {
		t.Fatal("nil diagnostics must have no fields")
	}
	if b, err := d.MarshalJSON(); err != nil || string(b) != "null" {
		t.Fatalf("unexpected nil encoding %s, %v", b, err)
	}
}
