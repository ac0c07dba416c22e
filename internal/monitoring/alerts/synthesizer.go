// Package alerts turns structured SLA guarantees into alert policies that
// fire when a guarantee is broken.
package alerts

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"nathanbeddoewebdev/slatf/internal/monitoring/catalog"
	"nathanbeddoewebdev/slatf/internal/monitoring/channels"
	"nathanbeddoewebdev/slatf/internal/monitoring/domain"
	"nathanbeddoewebdev/slatf/internal/sla"
	"nathanbeddoewebdev/slatf/internal/util"
)

// DefaultDuration applies to guarantees that declare no period.
const DefaultDuration = 60 * time.Second

// Options control alert synthesis.
type Options struct {
	// DefaultDuration is used when a guarantee has no period, or its period
	// is unusable: unparseable, out of range, or not a whole number of
	// seconds. Zero fires on the first breaching sample.
	DefaultDuration time.Duration

	// Scope selects the channels attached to each alert.
	Scope channels.Scope

	// Logger receives debug records for excluded guarantees. Nil discards.
	Logger *slog.Logger
}

// Result is the output of Synthesize.
type Result struct {
	Alerts []domain.AlertPolicy

	// Referenced holds every metric name used by at least one alert.
	Referenced map[string]struct{}

	// Exclusions lists structured guarantees that produced no alert.
	Exclusions []domain.Exclusion
}

// group is one ordered list of guarantees sharing a context label.
type group struct {
	context    string
	local      func(g int) string
	guarantees []sla.GuaranteeSource
}

// Synthesize walks each plan's direct guarantees, then its SLO guarantees,
// then its support-policy SLO guarantees, and emits one alert per eligible
// structured guarantee. It never fails: ineligible guarantees are left out.
func Synthesize(doc *sla.Document, cat *catalog.Catalog, reg *channels.Registry, opts Options) Result {
	s := synthesizer{
		cat:   cat,
		reg:   reg,
		opts:  opts,
		log:   opts.Logger,
		names: make(map[string]struct{}),
		res:   Result{Referenced: make(map[string]struct{})},
	}
	if s.log == nil {
		s.log = slog.New(slog.DiscardHandler)
	}

	for _, plan := range doc.Plans {
		for _, g := range planGroups(plan) {
			for i, src := range g.guarantees {
				s.add(plan, g, i, src)
			}
		}
	}

	return s.res
}

type synthesizer struct {
	cat   *catalog.Catalog
	reg   *channels.Registry
	opts  Options
	log   *slog.Logger
	names map[string]struct{}
	res   Result
}

// planGroups suffixes SLO alerts with <slo>_<guarantee> indices to match
// the reference Terraform output; keep them when renaming contexts.
func planGroups(plan sla.Plan) []group {
	groups := []group{{
		context:    "direct",
		local:      func(g int) string { return strconv.Itoa(g) },
		guarantees: plan.Guarantees,
	}}

	for s, slo := range plan.Objectives {
		groups = append(groups, group{
			context:    "slo_" + nameOrIndex(slo.Name, s),
			local:      func(g int) string { return fmt.Sprintf("%d_%d", s, g) },
			guarantees: slo.Guarantees,
		})
	}

	if plan.SupportPolicy != nil {
		for s, slo := range plan.SupportPolicy.Objectives {
			groups = append(groups, group{
				context:    "support_slo_" + nameOrIndex(slo.Name, s),
				local:      func(g int) string { return fmt.Sprintf("support_slo_%d_%d", s, g) },
				guarantees: slo.Guarantees,
			})
		}
	}

	return groups
}

func nameOrIndex(name string, i int) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	return strconv.Itoa(i)
}

func (s *synthesizer) add(plan sla.Plan, g group, i int, src sla.GuaranteeSource) {
	guarantee, ok := src.(sla.Structured)
	if !ok {
		return
	}

	desc, ok := s.cat.Resolve(guarantee.Metric)
	if !ok {
		s.exclude(plan, g, i, guarantee, domain.ReasonUnresolvedMetric)
		return
	}

	comparison, ok := BreachComparison(guarantee.Operator)
	if !ok {
		s.exclude(plan, g, i, guarantee, domain.ReasonUnsupportedOperator)
		return
	}

	threshold, err := strconv.ParseFloat(strings.TrimSpace(guarantee.Value), 64)
	if err != nil || math.IsNaN(threshold) || math.IsInf(threshold, 0) {
		s.exclude(plan, g, i, guarantee, domain.ReasonInvalidThreshold)
		return
	}

	s.res.Alerts = append(s.res.Alerts, domain.AlertPolicy{
		DisplayName:     fmt.Sprintf("SLA Breach: %s - %s - %s", plan.DisplayName(), g.context, guarantee.Metric),
		ResourceName:    s.resourceName(plan, g, i),
		ConditionName:   guarantee.Metric + " breach",
		Filter:          Filter(desc),
		Comparison:      comparison,
		ThresholdValue:  threshold,
		DurationSeconds: int64(s.duration(guarantee) / time.Second),
		Channels:        s.reg.For(plan.Name, s.opts.Scope),
	})
	s.res.Referenced[guarantee.Metric] = struct{}{}
}

func (s *synthesizer) exclude(plan sla.Plan, g group, i int, guarantee sla.Structured, reason domain.ExclusionReason) {
	s.log.Debug("guarantee excluded from alerting",
		"plan", plan.Name,
		"context", g.context,
		"index", i,
		"metric", guarantee.Metric,
		"reason", string(reason),
	)
	s.res.Exclusions = append(s.res.Exclusions, domain.Exclusion{
		Plan:    plan.Name,
		Context: g.context,
		Index:   i,
		Metric:  guarantee.Metric,
		Reason:  reason,
	})
}

func (s *synthesizer) duration(guarantee sla.Structured) time.Duration {
	period := strings.TrimSpace(guarantee.Period)
	if period == "" {
		return s.opts.DefaultDuration
	}

	d, err := ParsePeriod(period)
	if err == nil && d%time.Second != 0 {
		err = fmt.Errorf("period %q is not a whole number of seconds", period)
	}
	if err != nil {
		s.log.Debug("unusable period, using default duration",
			"metric", guarantee.Metric,
			"period", period,
			"default", s.opts.DefaultDuration,
		)
		return s.opts.DefaultDuration
	}
	return d
}

// resourceName builds alert_<plan>_<context>_<local>. Distinct plans whose
// names slug to the same text get a numeric suffix in document order.
func (s *synthesizer) resourceName(plan sla.Plan, g group, i int) string {
	base := "alert_" + util.Slug(plan.Name) + "_" + util.Slug(g.context) + "_" + g.local(i)

	name := base
	for n := 2; ; n++ {
		if _, taken := s.names[name]; !taken {
			break
		}
		name = fmt.Sprintf("%s_%d", base, n)
	}
	s.names[name] = struct{}{}
	return name
}

// Filter builds the monitoring filter selecting a metric on its resource type.
func Filter(desc domain.MetricDescriptor) string {
	return fmt.Sprintf(`resource.type = "%s" AND metric.type = "%s"`,
		escapeFilterValue(desc.ResourceType), escapeFilterValue(desc.MonitoringID))
}

var filterEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func escapeFilterValue(v string) string {
	return filterEscaper.Replace(v)
}
