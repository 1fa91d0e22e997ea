// Package validation checks raw calculation requests and reports ordered
// per-field diagnostics.
package validation

import "vat-engine/internal/model"

// Validator is stateless and safe for concurrent use.
type Validator struct {
	aggregate bool
}

type Option func(*Validator)

// WithAggregate makes the validator report rate and amount diagnostics
// together instead of stopping after the first failing group.
func WithAggregate(aggregate bool) Option {
	return func(v *Validator) {
		v.aggregate = aggregate
	}
}

func New(opts ...Option) *Validator {
	v := &Validator{}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate returns the diagnostics for req. Empty diagnostics mean the
// request can be calculated.
func (v *Validator) Validate(req *model.CalculationRequest) *model.FieldDiagnostics {
	diags := model.NewFieldDiagnostics()
	if req == nil {
		req = &model.CalculationRequest{}
	}

	if !rateRule.apply(req.VatRate, diags) && !v.aggregate {
		return diags
	}

	cardinality, kind := Classify(req)
	checkAmounts(req, cardinality, kind, diags)
	return diags
}

// checkAmounts applies the cross-field rule and, only when exactly one amount
// is supplied, the per-field rule for that amount.
func checkAmounts(req *model.CalculationRequest, cardinality Cardinality, kind model.AmountKind, diags *model.FieldDiagnostics) {
	switch cardinality {
	case CardinalityNone:
		diags.Add(model.FieldRequest, MsgAmountsMissing)
	case CardinalityMany:
		diags.Add(model.FieldRequest, MsgTooManyAmounts)
	case CardinalityOne:
		amountRules[kind].apply(req.Amount(kind), diags)
	}
}
