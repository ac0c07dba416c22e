// Package sla holds the read-only SLA document model consumed by the
// monitoring compiler, and the YAML loader that builds it.
//
// Ordered maps in the source document (metrics, plans) are kept as slices
// so declaration order survives loading.
package sla

// Document is a structurally valid SLA document.
type Document struct {
	// ProjectID is the monitoring project taken from x-gcp-monitoring.projectId.
	ProjectID string
	Metrics   []Metric
	Plans     []Plan
}

// Metric is one entry of the document's metric dictionary.
type Metric struct {
	Name         string
	Type         string
	Unit         string
	Description  string
	MonitoringID string
	ResourceType string
	MetricKind   string
	ValueType    string
}

// Plan is a named offering with its own guarantees.
type Plan struct {
	Name          string
	Title         string
	Guarantees    []GuaranteeSource
	Objectives    []Objective
	SupportPolicy *SupportPolicy
}

// DisplayName returns the plan title, or its key when no title is set.
func (p Plan) DisplayName() string {
	if p.Title != "" {
		return p.Title
	}
	return p.Name
}

// Objective is a service-level objective grouping guarantees.
type Objective struct {
	Name       string
	Priority   string
	Guarantees []GuaranteeSource
}

// SupportPolicy is the x-support-policy block of a plan.
type SupportPolicy struct {
	Objectives    []Objective
	ContactPoints []ContactPoint
}

// ContactPoint is a named group of contact channels.
type ContactPoint struct {
	DisplayName string
	Channels    []ContactChannel
}

// ContactChannel is a single destination such as an email address or a phone number.
type ContactChannel struct {
	Type string
	URL  string
}
