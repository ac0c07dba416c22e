package alerts

import (
	"testing"
	"time"

	"nathanbeddoewebdev/slatf/internal/monitoring/catalog"
	"nathanbeddoewebdev/slatf/internal/monitoring/channels"
	"nathanbeddoewebdev/slatf/internal/monitoring/domain"
	"nathanbeddoewebdev/slatf/internal/sla"

	"github.com/google/go-cmp/cmp"
)

var testMetrics = []sla.Metric{
	{Name: "cpu_utilization", MonitoringID: "compute.googleapis.com/instance/cpu/utilization", ResourceType: "gce_instance"},
	{Name: "request_latency", MonitoringID: "custom.googleapis.com/latency", ResourceType: "global"},
	{Name: "uptime"},
}

func synthesize(doc *sla.Document, opts Options) Result {
	if opts.Scope == "" {
		opts.Scope = channels.ScopeGlobal
	}
	return Synthesize(doc, catalog.New(doc.Metrics), channels.Collect(doc), opts)
}

func resourceNames(alerts []domain.AlertPolicy) []string {
	names := make([]string, len(alerts))
	for i, a := range alerts {
		names[i] = a.ResourceName
	}
	return names
}

func TestSynthesize_GoldScenario(t *testing.T) {
	doc := &sla.Document{
		ProjectID: "p1",
		Metrics:   testMetrics,
		Plans: []sla.Plan{{
			Name: "Gold",
			Guarantees: []sla.GuaranteeSource{
				sla.Structured{Metric: "cpu_utilization", Operator: "<", Value: "80"},
			},
		}},
	}

	res := synthesize(doc, Options{DefaultDuration: DefaultDuration})

	want := []domain.AlertPolicy{{
		DisplayName:     "SLA Breach: Gold - direct - cpu_utilization",
		ResourceName:    "alert_gold_direct_0",
		ConditionName:   "cpu_utilization breach",
		Filter:          `resource.type = "gce_instance" AND metric.type = "compute.googleapis.com/instance/cpu/utilization"`,
		Comparison:      domain.ComparisonGT,
		ThresholdValue:  80,
		DurationSeconds: 60,
		Channels:        []int{},
	}}
	if diff := cmp.Diff(want, res.Alerts); diff != "" {
		t.Errorf("alerts mismatch (-want +got):\n%s", diff)
	}
	if _, ok := res.Referenced["cpu_utilization"]; !ok {
		t.Error("expected cpu_utilization to be referenced")
	}
}

func TestSynthesize_GroupOrderAndNames(t *testing.T) {
	doc := &sla.Document{
		Metrics: testMetrics,
		Plans: []sla.Plan{
			{
				Name:  "gold",
				Title: "Gold",
				SupportPolicy: &sla.SupportPolicy{
					Objectives: []sla.Objective{{
						Name:       "Incident Response",
						Guarantees: []sla.GuaranteeSource{sla.Structured{Metric: "request_latency", Operator: "<=", Value: "0.1"}},
					}},
				},
				Objectives: []sla.Objective{
					{
						Name:       "Latency Performance",
						Guarantees: []sla.GuaranteeSource{sla.Structured{Metric: "request_latency", Operator: "<", Value: "200"}},
					},
					{
						Guarantees: []sla.GuaranteeSource{
							sla.Structured{Metric: "cpu_utilization", Operator: "<", Value: "70"},
							sla.Structured{Metric: "cpu_utilization", Operator: "<", Value: "90"},
						},
					},
				},
				Guarantees: []sla.GuaranteeSource{
					sla.Structured{Metric: "cpu_utilization", Operator: "<", Value: "80", Period: "PT5M"},
				},
			},
			{
				Name:       "silver",
				Guarantees: []sla.GuaranteeSource{sla.Structured{Metric: "cpu_utilization", Operator: "<", Value: "90"}},
			},
		},
	}

	res := synthesize(doc, Options{DefaultDuration: DefaultDuration})

	want := []string{
		"alert_gold_direct_0",
		"alert_gold_slo_latency_performance_0_0",
		"alert_gold_slo_1_1_0",
		"alert_gold_slo_1_1_1",
		"alert_gold_support_slo_incident_response_support_slo_0_0",
		"alert_silver_direct_0",
	}
	if diff := cmp.Diff(want, resourceNames(res.Alerts)); diff != "" {
		t.Errorf("alert order mismatch (-want +got):\n%s", diff)
	}

	if got := res.Alerts[1].DisplayName; got != "SLA Breach: Gold - slo_Latency Performance - request_latency" {
		t.Errorf("DisplayName = %q", got)
	}
	if got := res.Alerts[4].DisplayName; got != "SLA Breach: Gold - support_slo_Incident Response - request_latency" {
		t.Errorf("DisplayName = %q", got)
	}
	if got := res.Alerts[0].DurationSeconds; got != 300 {
		t.Errorf("DurationSeconds = %d, want 300", got)
	}
	if got := res.Alerts[4].ThresholdValue; got != 0.1 {
		t.Errorf("ThresholdValue = %v, want 0.1", got)
	}
}

func TestSynthesize_Eligibility(t *testing.T) {
	doc := &sla.Document{
		Metrics: testMetrics,
		Plans: []sla.Plan{{
			Name: "gold",
			Guarantees: []sla.GuaranteeSource{
				sla.Measurement{Expression: "avg_over_time(cpu[5m]) < 80"},
				sla.Legacy{Limit: "PT4H"},
				sla.Structured{Metric: "uptime", Operator: ">=", Value: "99.9"},
				sla.Structured{Metric: "ghost", Operator: "<", Value: "1"},
				sla.Structured{Metric: "cpu_utilization", Operator: "between", Value: "6 and 12"},
				sla.Structured{Metric: "cpu_utilization", Operator: "<", Value: "200ms"},
				sla.Structured{Metric: "request_latency", Operator: ">", Value: "5"},
			},
		}},
	}

	res := synthesize(doc, Options{DefaultDuration: DefaultDuration})

	if diff := cmp.Diff([]string{"alert_gold_direct_6"}, resourceNames(res.Alerts)); diff != "" {
		t.Errorf("alerts mismatch (-want +got):\n%s", diff)
	}
	if res.Alerts[0].Comparison != domain.ComparisonLT {
		t.Errorf("Comparison = %s, want %s", res.Alerts[0].Comparison, domain.ComparisonLT)
	}

	wantExclusions := []domain.Exclusion{
		{Plan: "gold", Context: "direct", Index: 2, Metric: "uptime", Reason: domain.ReasonUnresolvedMetric},
		{Plan: "gold", Context: "direct", Index: 3, Metric: "ghost", Reason: domain.ReasonUnresolvedMetric},
		{Plan: "gold", Context: "direct", Index: 4, Metric: "cpu_utilization", Reason: domain.ReasonUnsupportedOperator},
		{Plan: "gold", Context: "direct", Index: 5, Metric: "cpu_utilization", Reason: domain.ReasonInvalidThreshold},
	}
	if diff := cmp.Diff(wantExclusions, res.Exclusions); diff != "" {
		t.Errorf("exclusions mismatch (-want +got):\n%s", diff)
	}

	if _, ok := res.Referenced["cpu_utilization"]; ok {
		t.Error("cpu_utilization has no alert and must not be referenced")
	}
}

func TestSynthesize_DurationPolicy(t *testing.T) {
	doc := &sla.Document{
		Metrics: testMetrics,
		Plans: []sla.Plan{{
			Name: "gold",
			Guarantees: []sla.GuaranteeSource{
				sla.Structured{Metric: "cpu_utilization", Operator: "<", Value: "80"},
				sla.Structured{Metric: "cpu_utilization", Operator: "<", Value: "80", Period: "PT15M"},
				sla.Structured{Metric: "cpu_utilization", Operator: "<", Value: "80", Period: "soon"},
				sla.Structured{Metric: "cpu_utilization", Operator: "<", Value: "80", Period: "P200000D"},
				sla.Structured{Metric: "cpu_utilization", Operator: "<", Value: "80", Period: "P100000W"},
				sla.Structured{Metric: "cpu_utilization", Operator: "<", Value: "80", Period: "PT1.5S"},
				sla.Structured{Metric: "cpu_utilization", Operator: "<", Value: "80", Period: "PT2.0S"},
			},
		}},
	}

	tests := []struct {
		name     string
		fallback time.Duration
		want     []int64
	}{
		{"sixty second default", DefaultDuration, []int64{60, 900, 60, 60, 60, 60, 2}},
		{"zero default", 0, []int64{0, 900, 0, 0, 0, 0, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := synthesize(doc, Options{DefaultDuration: tt.fallback})
			var got []int64
			for _, a := range res.Alerts {
				if a.DurationSeconds < 0 {
					t.Errorf("%s: negative duration %d", a.ResourceName, a.DurationSeconds)
				}
				got = append(got, a.DurationSeconds)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("durations mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSynthesize_ChannelScope(t *testing.T) {
	doc := &sla.Document{
		Metrics: testMetrics,
		Plans: []sla.Plan{
			{
				Name:       "gold",
				Guarantees: []sla.GuaranteeSource{sla.Structured{Metric: "cpu_utilization", Operator: "<", Value: "80"}},
				SupportPolicy: &sla.SupportPolicy{ContactPoints: []sla.ContactPoint{{
					DisplayName: "Ops",
					Channels:    []sla.ContactChannel{{Type: "email", URL: "mailto://ops@example.com"}},
				}}},
			},
			{
				Name:       "silver",
				Guarantees: []sla.GuaranteeSource{sla.Structured{Metric: "cpu_utilization", Operator: "<", Value: "90"}},
				SupportPolicy: &sla.SupportPolicy{ContactPoints: []sla.ContactPoint{{
					DisplayName: "Ops",
					Channels: []sla.ContactChannel{
						{Type: "email", URL: "mailto://ops@example.com"},
						{Type: "sms", URL: "tel://+1555"},
					},
				}}},
			},
		},
	}

	global := synthesize(doc, Options{Scope: channels.ScopeGlobal})
	for _, a := range global.Alerts {
		if diff := cmp.Diff([]int{1, 2}, a.Channels); diff != "" {
			t.Errorf("%s global channels mismatch (-want +got):\n%s", a.ResourceName, diff)
		}
	}

	perPlan := synthesize(doc, Options{Scope: channels.ScopePlan})
	if diff := cmp.Diff([]int{1}, perPlan.Alerts[0].Channels); diff != "" {
		t.Errorf("gold plan channels mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 2}, perPlan.Alerts[1].Channels); diff != "" {
		t.Errorf("silver plan channels mismatch (-want +got):\n%s", diff)
	}
}

func TestSynthesize_SlugCollision(t *testing.T) {
	doc := &sla.Document{
		Metrics: testMetrics,
		Plans: []sla.Plan{
			{Name: "a-b", Guarantees: []sla.GuaranteeSource{sla.Structured{Metric: "cpu_utilization", Operator: "<", Value: "1"}}},
			{Name: "a b", Guarantees: []sla.GuaranteeSource{sla.Structured{Metric: "cpu_utilization", Operator: "<", Value: "2"}}},
		},
	}

	res := synthesize(doc, Options{})

	want := []string{"alert_a_b_direct_0", "alert_a_b_direct_0_2"}
	if diff := cmp.Diff(want, resourceNames(res.Alerts)); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestFilter_EscapesQuotes(t *testing.T) {
	got := Filter(domain.MetricDescriptor{ResourceType: `odd"type`, MonitoringID: `custom\id`})
	want := `resource.type = "odd\"type" AND metric.type = "custom\\id"`
	if got != want {
		t.Errorf("Filter() = %q, want %q", got, want)
	}
}
