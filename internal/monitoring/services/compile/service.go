// Package compile runs the SLA-to-monitoring pipeline: resolve metrics,
// collect channels, synthesize alerts, and emit the target artifact.
package compile

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"nathanbeddoewebdev/slatf/internal/monitoring/alerts"
	"nathanbeddoewebdev/slatf/internal/monitoring/catalog"
	"nathanbeddoewebdev/slatf/internal/monitoring/channels"
	"nathanbeddoewebdev/slatf/internal/monitoring/domain"
	"nathanbeddoewebdev/slatf/internal/monitoring/emitters"
	"nathanbeddoewebdev/slatf/internal/sla"
)

// Options configure a Service. The zero value compiles to the
// gcp-terraform target with a 60s default duration and global channels.
type Options struct {
	// Target is the registered emitter name.
	Target string

	// ProjectOverride replaces the document's project ID when non-blank.
	ProjectOverride string

	// DefaultDuration applies to guarantees without a period. Nil selects
	// alerts.DefaultDuration; a pointer to zero selects "0s".
	DefaultDuration *time.Duration

	// ChannelScope selects which channels each alert notifies.
	ChannelScope channels.Scope

	Logger *slog.Logger
}

// Result is the output of one Compile call.
type Result struct {
	Text       string
	Document   *domain.CompiledDocument
	Exclusions []domain.Exclusion
}

// Service compiles SLA documents. It holds only configuration, so one
// Service can compile any number of documents, concurrently or not.
type Service struct {
	emitter         emitters.Emitter
	projectOverride string
	defaultDuration time.Duration
	scope           channels.Scope
	logger          *slog.Logger
}

// NewService validates opts and looks up the emitter target.
func NewService(opts Options) (*Service, error) {
	target := opts.Target
	if target == "" {
		target = emitters.GoogleTerraform
	}
	emitter, err := emitters.Get(target)
	if err != nil {
		return nil, err
	}

	duration := alerts.DefaultDuration
	if opts.DefaultDuration != nil {
		duration = *opts.DefaultDuration
	}
	if duration < 0 {
		return nil, fmt.Errorf("compile: default duration %s is negative: %w", duration, domain.ErrInvalidOption)
	}
	if duration%time.Second != 0 {
		return nil, fmt.Errorf("compile: default duration %s is not a whole number of seconds: %w", duration, domain.ErrInvalidOption)
	}

	scope, err := channels.ParseScope(string(opts.ChannelScope))
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Service{
		emitter:         emitter,
		projectOverride: strings.TrimSpace(opts.ProjectOverride),
		defaultDuration: duration,
		scope:           scope,
		logger:          logger,
	}, nil
}

// Compile recompiles doc from scratch. A blank project ID is a
// configuration error and produces no text. Guarantees that cannot become
// alerts are reported in Result.Exclusions, never as errors.
func (s *Service) Compile(doc *sla.Document) (*Result, error) {
	projectID := strings.TrimSpace(doc.ProjectID)
	if s.projectOverride != "" {
		projectID = s.projectOverride
	}
	if projectID == "" {
		return nil, fmt.Errorf("compile: monitoring project ID is not configured (set x-gcp-monitoring.projectId): %w", domain.ErrConfiguration)
	}

	cat := catalog.New(doc.Metrics)
	registry := channels.Collect(doc)
	synth := alerts.Synthesize(doc, cat, registry, alerts.Options{
		DefaultDuration: s.defaultDuration,
		Scope:           s.scope,
		Logger:          s.logger,
	})

	compiled := &domain.CompiledDocument{
		ProjectID: projectID,
		Metrics:   cat.Descriptors(synth.Referenced),
		Channels:  registry.Channels(),
		Alerts:    synth.Alerts,
	}

	var buf bytes.Buffer
	if err := s.emitter.Emit(&buf, compiled); err != nil {
		return nil, err
	}

	s.logger.Info("compiled SLA document",
		"project", projectID,
		"metrics", len(compiled.Metrics),
		"channels", len(compiled.Channels),
		"alerts", len(compiled.Alerts),
		"excluded", len(synth.Exclusions),
	)

	return &Result{
		Text:       buf.String(),
		Document:   compiled,
		Exclusions: synth.Exclusions,
	}, nil
}
