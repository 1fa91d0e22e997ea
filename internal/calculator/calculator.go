// Package calculator derives the missing VAT amounts from a single supplied
// amount and a rate.
package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"vat-engine/internal/model"
	"vat-engine/internal/result"
)

// Places is the number of fractional digits kept for monetary values.
const Places = 2

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// Round rounds half to even at Places digits.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(Places)
}

type derivation func(amount, rate decimal.Decimal) model.CalculationResult

var derivations = map[model.AmountKind]derivation{
	model.AmountNet:   fromNet,
	model.AmountGross: fromGross,
	model.AmountVat:   fromVat,
}

// Calculate derives the two missing amounts. The first non-blank amount wins,
// in net, gross, vat order. It does not depend on the validator having run:
// unusable input yields a failure outcome.
func Calculate(req *model.CalculationRequest) result.Outcome[model.CalculationResult] {
	if req == nil || req.VatRate == nil {
		return result.Failure[model.CalculationResult](ErrInvalidRequest, ErrRateNotDecimal)
	}
	rate, err := model.ParseDecimal(*req.VatRate)
	if err != nil {
		return result.Failure[model.CalculationResult](ErrInvalidRequest, ErrRateNotDecimal)
	}
	if !rate.IsPositive() {
		return result.Failure[model.CalculationResult](ErrInvalidRequest, ErrRateNotPositive)
	}

	kind, ok := Branch(req)
	if !ok {
		return result.Failure[model.CalculationResult](ErrInvalidRequest, ErrAmountMissing)
	}
	amount, err := model.ParseDecimal(*req.Amount(kind))
	if err != nil {
		return result.Failure[model.CalculationResult](ErrInvalidRequest, fmt.Sprintf(ErrAmountNotDecimal, kind.Name()))
	}

	return result.Success(derivations[kind](amount, rate))
}

// Branch reports which amount Calculate derives from.
func Branch(req *model.CalculationRequest) (model.AmountKind, bool) {
	for _, kind := range model.AmountKinds {
		if !model.Blank(req.Amount(kind)) {
			return kind, true
		}
	}
	return 0, false
}

func fromNet(net, rate decimal.Decimal) model.CalculationResult {
	vat := Round(net.Mul(rate).Div(hundred))
	return model.CalculationResult{
		NetAmount:   Round(net),
		VatAmount:   vat,
		GrossAmount: Round(net.Add(vat)),
		VatRate:     rate,
	}
}

func fromGross(gross, rate decimal.Decimal) model.CalculationResult {
	net := Round(gross.Div(one.Add(rate.Div(hundred))))
	return model.CalculationResult{
		NetAmount:   net,
		VatAmount:   Round(gross.Sub(net)),
		GrossAmount: Round(gross),
		VatRate:     rate,
	}
}

func fromVat(vat, rate decimal.Decimal) model.CalculationResult {
	net := Round(vat.Mul(hundred).Div(rate))
	return model.CalculationResult{
		NetAmount:   net,
		VatAmount:   Round(vat),
		GrossAmount: Round(net.Add(vat)),
		VatRate:     rate,
	}
}
