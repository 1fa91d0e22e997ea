package calculator

// Failure messages reported in the Outcome.
const (
	ErrInvalidRequest   = "Invalid request"
	ErrRateNotDecimal   = "Vat rate must be a valid decimal number"
	ErrRateNotPositive  = "Vat rate must be greater than 0"
	ErrAmountMissing    = "At least one amount (net, gross or vat) must be provided"
	ErrAmountNotDecimal = "The %s amount must be a valid decimal number"
)
