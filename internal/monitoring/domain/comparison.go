package domain

// Comparison is a monitoring threshold comparison.
type Comparison string

const (
	ComparisonGT Comparison = "COMPARISON_GT"
	ComparisonGE Comparison = "COMPARISON_GE"
	ComparisonLT Comparison = "COMPARISON_LT"
	ComparisonLE Comparison = "COMPARISON_LE"
	ComparisonEQ Comparison = "COMPARISON_EQ"
	ComparisonNE Comparison = "COMPARISON_NE"
)
