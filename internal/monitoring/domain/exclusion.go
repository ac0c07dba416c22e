package domain

// ExclusionReason explains why a structured guarantee produced no alert.
type ExclusionReason string

const (
	// ReasonUnresolvedMetric: the metric is missing from the dictionary or
	// has no monitoring identifier.
	ReasonUnresolvedMetric ExclusionReason = "unresolved metric"
	// ReasonUnsupportedOperator: the operator has no single-threshold breach form.
	ReasonUnsupportedOperator ExclusionReason = "unsupported operator"
	// ReasonInvalidThreshold: the value is not a number.
	ReasonInvalidThreshold ExclusionReason = "non-numeric threshold"
)

// Exclusion records a structured guarantee that was silently left out of
// the output. Exclusions are informational; they never fail a compile.
type Exclusion struct {
	Plan    string
	Context string
	// Index is the guarantee's position within its group.
	Index  int
	Metric string
	Reason ExclusionReason
}
