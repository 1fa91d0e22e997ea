package model

import "github.com/shopspring/decimal"

func init() {
	// Amounts go over the wire as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// CalculationResult holds the resolved amounts. Monetary fields carry at most
// two fractional digits.
type CalculationResult struct {
	NetAmount   decimal.Decimal `json:"netAmount"`
	GrossAmount decimal.Decimal `json:"grossAmount"`
	VatAmount   decimal.Decimal `json:"vatAmount"`
	VatRate     decimal.Decimal `json:"vatRate"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
