package validation

import (
	"fmt"

	"vat-engine/internal/model"
)

// check is a single predicate of a field rule together with the message
// reported when it fails.
type check struct {
	message string
	pass    func(raw *string) bool
}

// fieldRule runs its checks in order and stops at the first failure.
type fieldRule struct {
	field  string
	checks []check
}

func (r fieldRule) apply(raw *string, diags *model.FieldDiagnostics) bool {
	for _, c := range r.checks {
		if !c.pass(raw) {
			diags.Add(r.field, c.message)
			return false
		}
	}
	return true
}

func notEmpty(raw *string) bool {
	return !model.Blank(raw)
}

func numeric(raw *string) bool {
	if raw == nil {
		return false
	}
	_, err := model.ParseDecimal(*raw)
	return err == nil
}

func positive(raw *string) bool {
	if raw == nil {
		return false
	}
	d, err := model.ParseDecimal(*raw)
	return err == nil && d.IsPositive()
}

var rateRule = fieldRule{
	field: model.FieldVatRate,
	checks: []check{
		{message: MsgRateMissing, pass: notEmpty},
		{message: MsgRateNotNumeric, pass: numeric},
		{message: MsgRateInvalid, pass: positive},
	},
}

var amountRules = map[model.AmountKind]fieldRule{}

func init() {
	for _, kind := range model.AmountKinds {
		amountRules[kind] = fieldRule{
			field: kind.Field(),
			checks: []check{
				{message: fmt.Sprintf(MsgAmountMissing, kind.Name()), pass: notEmpty},
				{message: fmt.Sprintf(MsgAmountNotNumeric, kind.Name()), pass: numeric},
				{message: fmt.Sprintf(MsgAmountInvalid, kind.Name()), pass: positive},
			},
		}
	}
}
