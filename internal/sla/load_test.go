package sla

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoad_ComplexSample(t *testing.T) {
	doc, err := Load(filepath.Join("testdata", "complex.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.ProjectID != "production-data-platform" {
		t.Errorf("ProjectID = %q, want %q", doc.ProjectID, "production-data-platform")
	}

	var metricNames []string
	for _, m := range doc.Metrics {
		metricNames = append(metricNames, m.Name)
	}
	wantMetrics := []string{"request_latency", "error_rate", "cpu_utilization", "uptime"}
	if diff := cmp.Diff(wantMetrics, metricNames); diff != "" {
		t.Errorf("metric order mismatch (-want +got):\n%s", diff)
	}

	var planNames []string
	for _, p := range doc.Plans {
		planNames = append(planNames, p.Name)
	}
	if diff := cmp.Diff([]string{"gold", "silver"}, planNames); diff != "" {
		t.Errorf("plan order mismatch (-want +got):\n%s", diff)
	}

	gold := doc.Plans[0]
	if gold.DisplayName() != "Gold" {
		t.Errorf("DisplayName() = %q, want %q", gold.DisplayName(), "Gold")
	}

	wantDirect := []GuaranteeSource{
		Structured{Metric: "cpu_utilization", Operator: "<", Value: "80", Period: "PT5M"},
		Measurement{Expression: "avg_over_time(http_errors[5m]) < 1"},
		Legacy{Limit: "PT4H"},
	}
	if diff := cmp.Diff(wantDirect, gold.Guarantees); diff != "" {
		t.Errorf("direct guarantees mismatch (-want +got):\n%s", diff)
	}

	if len(gold.Objectives) != 1 || gold.Objectives[0].Name != "Latency Performance" {
		t.Fatalf("unexpected objectives: %+v", gold.Objectives)
	}
	if gold.Objectives[0].Priority != "High" {
		t.Errorf("Priority = %q, want %q", gold.Objectives[0].Priority, "High")
	}

	if gold.SupportPolicy == nil {
		t.Fatal("expected support policy for gold")
	}
	wantContacts := []ContactPoint{
		{
			DisplayName: "SRE On-Call",
			Channels: []ContactChannel{
				{Type: "email", URL: "mailto://sre-alerts@example.com"},
				{Type: "sms", URL: "tel://+15550123456"},
			},
		},
		{
			DisplayName: "DevOps Support",
			Channels:    []ContactChannel{{Type: "email", URL: "mailto://support@example.com"}},
		},
	}
	if diff := cmp.Diff(wantContacts, gold.SupportPolicy.ContactPoints); diff != "" {
		t.Errorf("contact points mismatch (-want +got):\n%s", diff)
	}

	supportSLO := gold.SupportPolicy.Objectives[0].Guarantees[0]
	if diff := cmp.Diff(GuaranteeSource(Structured{Metric: "error_rate", Operator: "<=", Value: "0.1"}), supportSLO); diff != "" {
		t.Errorf("support SLO guarantee mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_GuaranteeModes(t *testing.T) {
	data := []byte(`
plans:
  standard:
    guarantees:
      - metric: requests-count
        operator: ">"
        value: "5"
        period: PT1H
      - measurement: ""
      - measurement: invalid
        limit: PT1H
      - period: P1D
`)
	doc, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var modes []Mode
	for _, g := range doc.Plans[0].Guarantees {
		modes = append(modes, g.Mode())
	}
	want := []Mode{ModeStructured, ModeMeasurement, ModeLegacy, ModeMeasurement}
	if diff := cmp.Diff(want, modes); diff != "" {
		t.Errorf("modes mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_EmptyDocument(t *testing.T) {
	doc, err := Parse(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.ProjectID != "" || len(doc.Plans) != 0 || len(doc.Metrics) != 0 {
		t.Errorf("expected empty document, got %+v", doc)
	}
}

func TestParse_NullSections(t *testing.T) {
	doc, err := Parse([]byte("metrics:\nplans:\n  bronze:\n    x-support-policy:\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Plans) != 1 || doc.Plans[0].SupportPolicy != nil {
		t.Errorf("unexpected plans: %+v", doc.Plans)
	}
}

func TestParse_Aliases(t *testing.T) {
	data := []byte(`
shared: &ops
  - type: email
    url: mailto://ops@example.com
plans:
  a:
    x-support-policy:
      contactPoints:
        - displayName: Ops
          channels: *ops
`)
	doc, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := doc.Plans[0].SupportPolicy.ContactPoints[0].Channels
	want := []ContactChannel{{Type: "email", URL: "mailto://ops@example.com"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("channels mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := map[string]string{
		"plans as list":       "plans:\n  - gold\n",
		"guarantees as map":   "plans:\n  gold:\n    guarantees:\n      a: b\n",
		"metric entry scalar": "metrics:\n  cpu: 12\n",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(data))
			if !errors.Is(err, ErrMalformed) {
				t.Errorf("expected ErrMalformed, got %v", err)
			}
		})
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("plans: [unterminated"))
	if err == nil {
		t.Fatal("expected error for invalid YAML, got nil")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}
