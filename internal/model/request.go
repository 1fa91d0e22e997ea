package model

// CalculationRequest is the raw calculation input. Every field is text so that
// malformed values reach the validator instead of failing JSON decoding; a nil
// field was not supplied at all.
type CalculationRequest struct {
	NetAmount   *string `json:"netAmount,omitempty"`
	GrossAmount *string `json:"grossAmount,omitempty"`
	VatAmount   *string `json:"vatAmount,omitempty"`
	VatRate     *string `json:"vatRate,omitempty"`
}

// Amount returns the raw value supplied for the given amount kind.
func (r *CalculationRequest) Amount(kind AmountKind) *string {
	switch kind {
	case AmountNet:
		return r.NetAmount
	case AmountGross:
		return r.GrossAmount
	case AmountVat:
		return r.VatAmount
	}
	return nil
}

// String is a helper for building requests in code and tests.
func String(s string) *string {
	return &s
}
