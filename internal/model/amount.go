package model

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// AmountKind identifies one of the three mutually exclusive amounts.
type AmountKind int

const (
	AmountNet AmountKind = iota + 1
	AmountGross
	AmountVat
)

// AmountKinds lists the kinds in branch-selection order.
var AmountKinds = []AmountKind{AmountNet, AmountGross, AmountVat}

// Field names as they appear on the wire and as diagnostic keys.
const (
	FieldNetAmount   = "netAmount"
	FieldGrossAmount = "grossAmount"
	FieldVatAmount   = "vatAmount"
	FieldVatRate     = "vatRate"
	// FieldRequest keys diagnostics that span several fields.
	FieldRequest = ""
)

// Name is the logical name used in messages: "net", "gross" or "vat".
func (k AmountKind) Name() string {
	switch k {
	case AmountNet:
		return "net"
	case AmountGross:
		return "gross"
	case AmountVat:
		return "vat"
	}
	return "unknown"
}

// Field is the request field carrying the amount.
func (k AmountKind) Field() string {
	switch k {
	case AmountNet:
		return FieldNetAmount
	case AmountGross:
		return FieldGrossAmount
	case AmountVat:
		return FieldVatAmount
	}
	return FieldRequest
}

func (k AmountKind) String() string {
	return k.Name()
}

// MaxDigits bounds both the significant digits and the fractional digits of
// an accepted number.
const MaxDigits = 28

var (
	ErrExponent   = errors.New("exponent notation is not accepted")
	ErrOutOfRange = errors.New("number has too many digits")
)

// ParseDecimal parses plain decimal text, ignoring surrounding whitespace.
// Exponent notation and numbers beyond MaxDigits are rejected.
func ParseDecimal(raw string) (decimal.Decimal, error) {
	text := strings.TrimSpace(raw)
	if strings.ContainsAny(text, "eE") {
		return decimal.Decimal{}, ErrExponent
	}
	if digitCount(text) > 2*MaxDigits {
		return decimal.Decimal{}, ErrOutOfRange
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Decimal{}, err
	}
	coef := d.Coefficient()
	if len(coef.Abs(coef).String()) > MaxDigits || -d.Exponent() > MaxDigits {
		return decimal.Decimal{}, ErrOutOfRange
	}
	return d, nil
}

func digitCount(text string) int {
	n := 0
	for i := 0; i < len(text); i++ {
		if text[i] >= '0' && text[i] <= '9' {
			n++
		}
	}
	return n
}

// Blank reports whether raw is absent or holds only whitespace.
func Blank(raw *string) bool {
	return raw == nil || strings.TrimSpace(*raw) == ""
}
