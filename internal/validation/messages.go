package validation

const (
	MsgRateMissing    = "The vat rate to use in calculation is missing."
	MsgRateNotNumeric = "The vat rate value must be numeric."
	MsgRateInvalid    = "The provided vat rate is invalid, it must be greater than 0."

	MsgAmountsMissing = "At least one amount (net, gross, or VAT) should be provided"
	MsgTooManyAmounts = "Only one amount (net, gross, or VAT) should be provided"

	// Amount templates take the logical amount name.
	MsgAmountMissing    = "The %s amount to be calculated is missing."
	MsgAmountNotNumeric = "The %s value must be numeric."
	MsgAmountInvalid    = "The provided %s value is invalid, it must be greater than 0."
)
