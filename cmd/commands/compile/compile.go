package compile

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"nathanbeddoewebdev/slatf/internal/config"
	"nathanbeddoewebdev/slatf/internal/logging"
	"nathanbeddoewebdev/slatf/internal/monitoring/channels"
	"nathanbeddoewebdev/slatf/internal/monitoring/domain"
	"nathanbeddoewebdev/slatf/internal/monitoring/emitters"
	compilesvc "nathanbeddoewebdev/slatf/internal/monitoring/services/compile"
	"nathanbeddoewebdev/slatf/internal/sla"
	"nathanbeddoewebdev/slatf/internal/tui"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

// Terminal hooks, replaced in tests.
var (
	stdinIsTerminal  = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }
	stdoutIsTerminal = func() bool { return term.IsTerminal(int(os.Stdout.Fd())) }
	stderrWidth      = func() int {
		w, _, err := term.GetSize(int(os.Stderr.Fd()))
		if err != nil {
			return 0
		}
		return w
	}
	promptProjectID = tui.PromptProjectID
	runPreview      = tui.RunPreview
)

// NewCommand returns the "compile" command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile FILE...",
		Short: "Compile SLA documents into monitoring resources",
		Long: `Compile one or more SLA documents into monitoring resources for the
selected target (default: gcp-terraform).

Every structured guarantee on a resolvable metric becomes an alert policy
that fires when the guarantee is broken. Guarantees that cannot be alerted
on are skipped and listed in the summary.

Without --out the artifacts are written to stdout in argument order. With
one FILE, --out names the output file; with several, --out is a directory
that receives <name>.tf per document.

Flags override SLATF_* environment variables, which override the config file.

Examples:
  slatf compile sla.yaml > monitoring.tf
  slatf compile sla.yaml --project my-project --out monitoring.tf
  slatf compile gold.yaml silver.yaml --out ./terraform
  slatf compile sla.yaml --channel-scope plan --default-duration 5m --preview`,
		Args:         cobra.MinimumNArgs(1),
		RunE:         runCompile,
		SilenceUsage: true,
	}

	cmd.Flags().String("project", "", "Monitoring project ID (overrides x-gcp-monitoring.projectId)")
	cmd.Flags().StringP("out", "o", "", "Output file (one document) or directory (several documents)")
	cmd.Flags().String("default-duration", "", "Alert duration for guarantees without a period (default 60s)")
	cmd.Flags().String("channel-scope", "", "Channels attached to each alert: global or plan (default global)")
	cmd.Flags().String("target", "", "Output target (default gcp-terraform)")
	cmd.Flags().Bool("preview", false, "Page through the generated artifact in the terminal")
	cmd.Flags().BoolP("quiet", "q", false, "Suppress the compile summary")
	cmd.Flags().String("log-level", "", "Diagnostic log level: debug, info, warn, error (default warn)")

	return cmd
}

// settings are the effective options after merging flags and config.
type settings struct {
	target string
	// project replaces the document's project ID (--project).
	project string
	// fallbackProject fills a blank document project ID (env or config file).
	fallbackProject string
	duration        *time.Duration
	scope           channels.Scope
	out             string
	preview         bool
	quiet           bool
}

func runCompile(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	s, level, err := resolveSettings(cmd, cfg)
	if err != nil {
		return err
	}
	logger := logging.New(cmd.ErrOrStderr(), level)

	svc, err := compilesvc.NewService(compilesvc.Options{
		Target:          s.target,
		ProjectOverride: s.project,
		DefaultDuration: s.duration,
		ChannelScope:    s.scope,
		Logger:          logger,
	})
	if err != nil {
		return err
	}

	outputs, err := outputPaths(args, s.out)
	if err != nil {
		return err
	}

	summaries, docs := compileAll(svc, args, s.fallbackProject)

	for i := range summaries {
		if !errors.Is(summaries[i].Err, domain.ErrConfiguration) || docs[i] == nil || !stdinIsTerminal() {
			continue
		}
		projectID, perr := promptProjectID(args[i])
		if perr != nil {
			logger.Warn("project prompt failed", "file", args[i], "error", perr)
			continue
		}
		docs[i].ProjectID = projectID
		summaries[i].Result, summaries[i].Err = svc.Compile(docs[i])
	}

	for i := range summaries {
		summaries[i].Output = outputs[i]
		if summaries[i].Err != nil {
			continue
		}
		if err := writeArtifact(cmd, s, outputs[i], summaries[i].Result.Text); err != nil {
			summaries[i].Err = err
		}
	}

	if !s.quiet {
		fmt.Fprintln(cmd.ErrOrStderr(), tui.RenderSummary(stderrWidth(), summaries))
	}

	if s.preview {
		previewAll(s, summaries, logger.Warn)
	}

	return batchError(summaries)
}

func resolveSettings(cmd *cobra.Command, cfg *config.Config) (settings, slog.Level, error) {
	flags := cmd.Flags()
	pick := func(name, fallback string) string {
		if flags.Changed(name) {
			v, _ := flags.GetString(name)
			return strings.TrimSpace(v)
		}
		return strings.TrimSpace(fallback)
	}

	s := settings{
		target:          pick("target", cfg.Target),
		fallbackProject: strings.TrimSpace(cfg.ProjectID),
		scope:           channels.Scope(pick("channel-scope", cfg.ChannelScope)),
	}
	s.project, _ = flags.GetString("project")
	s.project = strings.TrimSpace(s.project)
	s.out, _ = flags.GetString("out")
	s.preview, _ = flags.GetBool("preview")
	s.quiet, _ = flags.GetBool("quiet")

	if raw := pick("default-duration", cfg.DefaultDuration); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return s, 0, fmt.Errorf("invalid default duration %q: %w", raw, domain.ErrInvalidOption)
		}
		s.duration = &d
	}

	level, err := logging.ParseLevel(pick("log-level", cfg.LogLevel))
	if err != nil {
		return s, 0, fmt.Errorf("%w: %w", err, domain.ErrInvalidOption)
	}
	return s, level, nil
}

// compileAll loads and compiles each file concurrently. Per-file failures
// are recorded in the summaries; the batch always runs to completion.
// fallbackProject is used by documents that declare no project ID.
func compileAll(svc *compilesvc.Service, paths []string, fallbackProject string) ([]tui.FileSummary, []*sla.Document) {
	summaries := make([]tui.FileSummary, len(paths))
	docs := make([]*sla.Document, len(paths))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			summaries[i].Source = path
			doc, err := sla.Load(path)
			if err != nil {
				summaries[i].Err = err
				return nil
			}
			if strings.TrimSpace(doc.ProjectID) == "" {
				doc.ProjectID = fallbackProject
			}
			docs[i] = doc
			summaries[i].Result, summaries[i].Err = svc.Compile(doc)
			return nil
		})
	}
	_ = g.Wait()

	return summaries, docs
}

// outputPaths maps each input to its destination file; "" means stdout.
func outputPaths(inputs []string, out string) ([]string, error) {
	paths := make([]string, len(inputs))
	if out == "" {
		return paths, nil
	}
	if len(inputs) == 1 {
		paths[0] = out
		return paths, nil
	}

	seen := make(map[string]string, len(inputs))
	for i, in := range inputs {
		name := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in)) + ".tf"
		if prev, dup := seen[name]; dup {
			return nil, fmt.Errorf("%s and %s would both be written to %s: %w", prev, in, name, domain.ErrInvalidOption)
		}
		seen[name] = in
		paths[i] = filepath.Join(out, name)
	}
	return paths, nil
}

func writeArtifact(cmd *cobra.Command, s settings, path, text string) error {
	if path == "" {
		// The pager replaces the stdout dump on an interactive terminal.
		if s.preview && stdoutIsTerminal() {
			return nil
		}
		_, err := fmt.Fprint(cmd.OutOrStdout(), text)
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func previewAll(s settings, summaries []tui.FileSummary, warn func(string, ...any)) {
	if !stdoutIsTerminal() {
		warn("--preview ignored: stdout is not a terminal")
		return
	}
	target := s.target
	if target == "" {
		target = emitters.GoogleTerraform
	}
	for _, f := range summaries {
		if f.Err != nil {
			continue
		}
		status := fmt.Sprintf("%d alerts, %d excluded", len(f.Result.Document.Alerts), len(f.Result.Exclusions))
		if err := runPreview(f.Source, target, f.Result.Text, status); err != nil {
			warn("preview failed", "file", f.Source, "error", err)
			return
		}
	}
}

// batchError reports the first failure together with the failure count.
func batchError(summaries []tui.FileSummary) error {
	var first error
	failed := 0
	for _, f := range summaries {
		if f.Err != nil {
			failed++
			if first == nil {
				first = f.Err
			}
		}
	}
	switch {
	case failed == 0:
		return nil
	case len(summaries) == 1:
		return first
	default:
		return fmt.Errorf("%d of %d documents failed to compile: %w", failed, len(summaries), first)
	}
}
