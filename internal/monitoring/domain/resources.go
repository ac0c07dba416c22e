// Package domain defines the resources the SLA compiler produces: metric
// descriptors, notification channels, and alert policies, collected into a
// CompiledDocument that an emitter renders.
package domain

const (
	DefaultMetricKind = "GAUGE"
	DefaultValueType  = "DOUBLE"

	// Fixed aggregation applied to every alert condition.
	AlignmentPeriod  = "60s"
	PerSeriesAligner = "ALIGN_MEAN"

	// Combiner joins the conditions of an alert policy.
	Combiner = "OR"
)

// MetricDescriptor declares a monitored metric in the target system.
type MetricDescriptor struct {
	// Name is the metric dictionary key and the descriptor's identity.
	Name string
	// ResourceName is the generated Terraform resource identifier.
	ResourceName string
	MonitoringID string
	ResourceType string
	MetricKind   string
	ValueType    string
	Unit         string
	Description  string
}

// NotificationChannel is a deduplicated alert destination. Identity is
// (Type, Address).
type NotificationChannel struct {
	// Index is the stable 1-based position in first-appearance order.
	Index       int
	DisplayName string
	Type        string
	// Address is the channel URL with its scheme prefix removed.
	Address string
}

// ChannelKey is the identity of a NotificationChannel.
type ChannelKey struct {
	Type    string
	Address string
}

// Key returns the channel's identity.
func (c NotificationChannel) Key() ChannelKey {
	return ChannelKey{Type: c.Type, Address: c.Address}
}

// AlertPolicy fires when a guarantee is observed to be broken.
type AlertPolicy struct {
	DisplayName string
	// ResourceName is the generated Terraform resource identifier.
	ResourceName string
	// ConditionName is the display name of the single threshold condition.
	ConditionName  string
	Filter         string
	Comparison     Comparison
	ThresholdValue float64
	// DurationSeconds is how long the breach must persist before firing.
	DurationSeconds int64
	// Channels are the indices of the notification channels to notify.
	Channels []int
}

// CompiledDocument is the full output of one compile pass.
type CompiledDocument struct {
	ProjectID string
	Metrics   []MetricDescriptor
	Channels  []NotificationChannel
	Alerts    []AlertPolicy
}
