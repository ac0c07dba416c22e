package alerts

import (
	"strings"

	"nathanbeddoewebdev/slatf/internal/monitoring/domain"
)

// breachComparisons maps a guarantee operator to the comparison that fires
// when the guarantee is broken. A guarantee states what must hold; the alert
// watches for the opposite.
var breachComparisons = map[string]domain.Comparison{
	"<":  domain.ComparisonGT,
	"<=": domain.ComparisonGT,
	">":  domain.ComparisonLT,
	">=": domain.ComparisonLT,
	"=":  domain.ComparisonNE,
	"==": domain.ComparisonNE,
	"!=": domain.ComparisonEQ,
}

// BreachComparison returns the alert comparison for a guarantee operator.
// ok is false for operators without a single-threshold breach form, such
// as "between".
func BreachComparison(operator string) (c domain.Comparison, ok bool) {
	c, ok = breachComparisons[strings.TrimSpace(operator)]
	return c, ok
}
