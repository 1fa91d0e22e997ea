package validation

import "vat-engine/internal/model"

// Cardinality classifies how many amount fields a request supplies.
type Cardinality int

const (
	CardinalityNone Cardinality = iota
	CardinalityOne
	CardinalityMany
)

func (c Cardinality) String() string {
	switch c {
	case CardinalityNone:
		return "none"
	case CardinalityOne:
		return "one"
	default:
		return "many"
	}
}

// Classify counts the supplied (non-nil) amounts. When exactly one is
// supplied its kind is returned as well; an empty string still counts as
// supplied.
func Classify(req *model.CalculationRequest) (Cardinality, model.AmountKind) {
	var (
		count int
		kind  model.AmountKind
	)
	for _, k := range model.AmountKinds {
		if req.Amount(k) != nil {
			count++
			kind = k
		}
	}
	switch count {
	case 0:
		return CardinalityNone, 0
	case 1:
		return CardinalityOne, kind
	default:
		return CardinalityMany, 0
	}
}
