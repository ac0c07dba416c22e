package emitters

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/template"

	"nathanbeddoewebdev/slatf/internal/monitoring/domain"
)

// GoogleTerraform is the target name of the Google Cloud Monitoring
// Terraform emitter.
const GoogleTerraform = "gcp-terraform"

// RegisterGoogleTerraform adds the Google Cloud Monitoring Terraform target
// to the registry.
func RegisterGoogleTerraform() {
	Register(GoogleTerraform, func() Emitter { return NewTerraform() })
}

// Terraform renders Google Cloud Monitoring resources as Terraform HCL.
type Terraform struct {
	tmpl *template.Template
}

// NewTerraform parses the resource templates.
func NewTerraform() *Terraform {
	return &Terraform{
		tmpl: template.Must(template.New("terraform").Funcs(template.FuncMap{
			"q":         quote,
			"number":    formatNumber,
			"labelKey":  LabelKey,
			"channelID": channelID,
		}).Parse(terraformTemplate)),
	}
}

// Emit writes the provider header followed by descriptors, channels, and
// alert policies, each block followed by one blank line.
func (t *Terraform) Emit(w io.Writer, doc *domain.CompiledDocument) error {
	if strings.TrimSpace(doc.ProjectID) == "" {
		return fmt.Errorf("emitters: project ID is empty: %w", domain.ErrConfiguration)
	}
	if err := t.tmpl.Execute(w, doc); err != nil {
		return fmt.Errorf("emitters: render terraform: %w", err)
	}
	return nil
}

// LabelKey returns the notification channel label that carries the address
// for a channel type.
func LabelKey(channelType string) string {
	switch channelType {
	case "email":
		return "email_address"
	case "sms", "phone":
		return "number"
	case "slack":
		return "channel_name"
	case "pagerduty":
		return "service_key"
	default:
		return "url"
	}
}

func channelID(index int) string {
	return "channel_" + strconv.Itoa(index)
}

var hclEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
	"${", "$${",
	"%{", "%%{",
)

// quote renders s as an HCL string literal.
func quote(s string) string {
	return `"` + hclEscaper.Replace(s) + `"`
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

const terraformTemplate = `provider "google" {
  project = {{ q .ProjectID }}
}

{{ range .Metrics -}}
resource "google_monitoring_metric_descriptor" {{ q .ResourceName }} {
  description = {{ q .Description }}
  display_name = {{ q .Name }}
  type = {{ q .MonitoringID }}
  metric_kind = {{ q .MetricKind }}
  value_type = {{ q .ValueType }}
  unit = {{ q .Unit }}
}

{{ end -}}
{{ range .Channels -}}
resource "google_monitoring_notification_channel" {{ q (channelID .Index) }} {
  display_name = {{ q .DisplayName }}
  type         = {{ q .Type }}
  labels = {
    {{ q (labelKey .Type) }} = {{ q .Address }}
  }
}

{{ end -}}
{{ range .Alerts -}}
resource "google_monitoring_alert_policy" {{ q .ResourceName }} {
  display_name = {{ q .DisplayName }}
  combiner     = "OR"
  conditions {
    display_name = {{ q .ConditionName }}
    condition_threshold {
      filter     = {{ q .Filter }}
      duration   = "{{ .DurationSeconds }}s"
      comparison = {{ q (print .Comparison) }}
      threshold_value = {{ number .ThresholdValue }}
      aggregations {
        alignment_period   = "60s"
        per_series_aligner = "ALIGN_MEAN"
      }
    }
  }
  notification_channels = [
{{- range .Channels }}
    google_monitoring_notification_channel.{{ channelID . }}.name,
{{- end }}
  ]
}

{{ end -}}
`
