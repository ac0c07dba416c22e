// Package catalog resolves metric names referenced by guarantees to their
// monitoring-system identity, using the document's metric dictionary.
package catalog

import (
	"fmt"

	"nathanbeddoewebdev/slatf/internal/monitoring/domain"
	"nathanbeddoewebdev/slatf/internal/sla"
	"nathanbeddoewebdev/slatf/internal/util"
)

// DefaultResourceType is used when a resolvable metric declares no resource type.
const DefaultResourceType = "global"

// Catalog is an immutable view of a metric dictionary.
type Catalog struct {
	order   []string
	entries map[string]sla.Metric
}

// New builds a Catalog. When a name is declared twice the first entry wins.
func New(metrics []sla.Metric) *Catalog {
	c := &Catalog{
		order:   make([]string, 0, len(metrics)),
		entries: make(map[string]sla.Metric, len(metrics)),
	}
	for _, m := range metrics {
		if _, exists := c.entries[m.Name]; exists {
			continue
		}
		c.order = append(c.order, m.Name)
		c.entries[m.Name] = m
	}
	return c
}

// Resolve returns the descriptor for name. ok is false when the metric is
// not declared or carries no monitoring identifier.
func (c *Catalog) Resolve(name string) (desc domain.MetricDescriptor, ok bool) {
	m, exists := c.entries[name]
	if !exists || m.MonitoringID == "" {
		return domain.MetricDescriptor{}, false
	}

	desc = domain.MetricDescriptor{
		Name:         m.Name,
		MonitoringID: m.MonitoringID,
		ResourceType: m.ResourceType,
		MetricKind:   m.MetricKind,
		ValueType:    m.ValueType,
		Unit:         m.Unit,
		Description:  m.Description,
	}
	if desc.ResourceType == "" {
		desc.ResourceType = DefaultResourceType
	}
	if desc.MetricKind == "" {
		desc.MetricKind = domain.DefaultMetricKind
	}
	if desc.ValueType == "" {
		desc.ValueType = domain.DefaultValueType
	}
	return desc, true
}

// Descriptors returns the descriptors for every resolvable metric in
// referenced, in dictionary declaration order, each with a unique
// metric_<slug> resource name.
func (c *Catalog) Descriptors(referenced map[string]struct{}) []domain.MetricDescriptor {
	descs := make([]domain.MetricDescriptor, 0, len(referenced))
	taken := make(map[string]struct{}, len(referenced))
	for _, name := range c.order {
		if _, used := referenced[name]; !used {
			continue
		}
		desc, ok := c.Resolve(name)
		if !ok {
			continue
		}

		base := "metric_" + util.Slug(name)
		desc.ResourceName = base
		for n := 2; ; n++ {
			if _, dup := taken[desc.ResourceName]; !dup {
				break
			}
			desc.ResourceName = fmt.Sprintf("%s_%d", base, n)
		}
		taken[desc.ResourceName] = struct{}{}

		descs = append(descs, desc)
	}
	return descs
}
