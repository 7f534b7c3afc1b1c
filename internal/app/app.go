// Package app implements the application layer for respec.
package app

import (
	"context"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"go.trai.ch/respec/internal/adapters/catalog"
	"go.trai.ch/respec/internal/adapters/detector"
	"go.trai.ch/respec/internal/adapters/linear"
	"go.trai.ch/respec/internal/adapters/table"
	"go.trai.ch/respec/internal/adapters/telemetry"
	"go.trai.ch/respec/internal/core/domain"
	"go.trai.ch/respec/internal/core/ports"
	"go.trai.ch/respec/internal/engine/batch"
	"go.trai.ch/respec/internal/engine/pipeline"
	"go.trai.ch/respec/internal/engine/rules"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	workspace    ports.Workspace
	archiver     ports.Archiver
	ledger       ports.Ledger
	logger       ports.Logger

	stdout io.Writer
	stderr io.Writer
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	workspace ports.Workspace,
	archiver ports.Archiver,
	ledger ports.Ledger,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		workspace:    workspace,
		archiver:     archiver,
		ledger:       ledger,
		logger:       log,
	}
}

// WithOutput redirects reporter output. This is primarily used by tests.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// RunOptions configuration for the Run method. Zero values defer to
// respec.yaml and the built-in defaults.
type RunOptions struct {
	Workspace    string
	OSRelease    string
	Arch         string
	Jobs         int
	Timeout      time.Duration
	Packages     []string // restrict the batch to these manifest names
	Output       string   // reporter mode: auto, interactive, plain or ci
	DryRun       bool
	KeepTemplate bool
	Archive      bool
	Watch        bool
}

// Run sanitizes the workspace batch. With Watch set it keeps running,
// re-sanitizing descriptors as they change on disk.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	cfg, err := a.configLoader.Load(opts.Workspace)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}
	applyFlags(cfg, opts)

	mode := detector.ResolveMode(detector.DetectEnvironment(), opts.Output)
	reporter := linear.NewReporter(a.stdout, a.stderr, mode.Profile())
	setupOTel(telemetry.NewBridge(reporter))
	tracer := telemetry.NewOTelTracer("respec")

	runner, err := a.buildRunner(cfg, tracer, reporter)
	if err != nil {
		return err
	}

	if opts.Watch {
		return a.watch(ctx, cfg, runner, opts.Packages)
	}
	return a.runOnce(ctx, cfg, runner, opts.Packages)
}

// Check validates the configuration, rule catalog and override table
// without touching any descriptor.
func (a *App) Check(_ context.Context, workspace string) error {
	cfg, err := a.configLoader.Load(workspace)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	ruleSet, err := catalog.NewLoader(a.logger, cfg.NamePrefix).Load(cfg.CatalogPath)
	if err != nil {
		return zerr.Wrap(err, "invalid rule catalog")
	}
	if _, err := rules.NewCatalog(ruleSet); err != nil {
		return zerr.Wrap(err, "invalid rule catalog")
	}

	if _, err := table.NewLoader(a.logger).Load(cfg.OverridesPath); err != nil {
		return zerr.Wrap(err, "invalid override table")
	}

	a.logger.Info("configuration ok: " + strconv.Itoa(len(ruleSet)) + " rule(s)")
	return nil
}

// buildRunner assembles the engine for one configuration.
func (a *App) buildRunner(cfg *domain.Config, tracer ports.Tracer, reporter ports.Reporter) (*batch.Runner, error) {
	ruleSet, err := catalog.NewLoader(a.logger, cfg.NamePrefix).Load(cfg.CatalogPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load rule catalog")
	}
	cat, err := rules.NewCatalog(ruleSet)
	if err != nil {
		return nil, zerr.Wrap(err, "invalid rule catalog")
	}

	resolver, err := table.NewLoader(a.logger).Load(cfg.OverridesPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load override table")
	}

	pipe := pipeline.New(cat, resolver, a.logger)
	return batch.NewRunner(pipe, tracer, reporter, a.logger, cfg.Jobs, cfg.Timeout), nil
}

// runOnce processes the batch a single time and emits all outputs.
func (a *App) runOnce(ctx context.Context, cfg *domain.Config, runner *batch.Runner, only []string) error {
	refs, err := a.workspace.DiscoverPackages(cfg.Workspace, cfg.Manifest)
	if err != nil {
		return zerr.Wrap(err, "failed to discover packages")
	}
	refs = filterRefs(refs, only)

	b, refsByName := a.loadBatch(cfg, refs)

	outcomes, summary, err := runner.Run(ctx, b, cfg.OSRelease, cfg.Arch)
	if err != nil {
		return err
	}

	if !cfg.DryRun {
		if err := a.emit(ctx, cfg, refsByName, outcomes); err != nil {
			return err
		}
		if err := a.writeReport(cfg, outcomes, summary); err != nil {
			return err
		}
	}

	if summary.Failed > 0 {
		return domain.ErrBatchFailed
	}
	return nil
}

// loadBatch reads each discovered descriptor. Unreadable packages are
// skipped with a warning so the rest of the batch still runs.
func (a *App) loadBatch(cfg *domain.Config, refs []domain.PackageRef) (domain.Batch, map[string]domain.PackageRef) {
	b := domain.Batch{Items: make([]domain.BatchItem, 0, len(refs))}
	byName := make(map[string]domain.PackageRef, len(refs))

	for _, ref := range refs {
		raw, err := a.workspace.ReadDescriptor(ref)
		if err != nil {
			a.logger.Warn(ref.Name + ": skipping unreadable descriptor: " + err.Error())
			continue
		}
		b.Items = append(b.Items, domain.BatchItem{
			Meta: domain.PackageMeta{
				Name:      ref.Name,
				Arch:      cfg.Arch,
				OSRelease: cfg.OSRelease,
			},
			Ref: ref,
			Raw: raw,
		})
		byName[ref.Name] = ref
	}
	return b, byName
}

// emit writes corrected descriptors, drops templates and builds source
// archives for every package that reached a fixed point.
func (a *App) emit(ctx context.Context, cfg *domain.Config, refs map[string]domain.PackageRef, outcomes map[string]*domain.Outcome) error {
	names := make([]string, 0, len(outcomes))
	for name := range outcomes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		o := outcomes[name]
		if !o.IsCorrected() {
			continue
		}
		ref, ok := refs[name]
		if !ok {
			continue
		}

		meta := domain.PackageMeta{Name: name}
		descriptorName := meta.DescriptorName(cfg.NamePrefix)

		path, err := a.workspace.WriteCorrected(ref, descriptorName+".spec", o.Corrected)
		if err != nil {
			return zerr.With(err, "package", name)
		}
		a.logger.Info(name + ": wrote " + path)

		rec := domain.SanitizeRecord{Package: name, Digest: o.Digest, CorrectedAt: time.Now().UTC()}
		if err := a.ledger.Put(cfg.Workspace, rec); err != nil {
			a.logger.Warn(name + ": failed to update ledger: " + err.Error())
		}

		if !cfg.KeepTemplate {
			if err := a.workspace.RemoveTemplate(ref); err != nil {
				return zerr.With(err, "package", name)
			}
		}

		if cfg.Archive {
			archiveName := descriptorName + ".orig.tar.gz"
			if o.Version != "" {
				archiveName = descriptorName + "_" + o.Version + ".orig.tar.gz"
			}
			outPath := filepath.Join(ref.SpecDir, archiveName)
			if err := a.archiver.Archive(ctx, ref.SourceDir, outPath); err != nil {
				return zerr.With(err, "package", name)
			}
		}
	}
	return nil
}

// report is the serialized batch audit document.
type report struct {
	Summary  domain.Summary    `yaml:"summary"`
	Packages []*domain.Outcome `yaml:"packages"`
}

func (a *App) writeReport(cfg *domain.Config, outcomes map[string]*domain.Outcome, summary domain.Summary) error {
	names := make([]string, 0, len(outcomes))
	for name := range outcomes {
		names = append(names, name)
	}
	sort.Strings(names)

	doc := report{Summary: summary, Packages: make([]*domain.Outcome, 0, len(names))}
	for _, name := range names {
		doc.Packages = append(doc.Packages, outcomes[name])
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return zerr.Wrap(err, "failed to serialize report")
	}

	path := cfg.ReportPath
	if !filepath.IsAbs(path) {
		path = filepath.Join(cfg.Workspace, path)
	}
	return a.workspace.WriteReport(path, data)
}

// applyFlags overlays command-line options onto the file configuration.
func applyFlags(cfg *domain.Config, opts RunOptions) {
	if opts.OSRelease != "" {
		cfg.OSRelease = opts.OSRelease
	}
	if opts.Arch != "" {
		cfg.Arch = opts.Arch
	}
	if opts.Jobs > 0 {
		cfg.Jobs = opts.Jobs
	}
	if opts.Timeout > 0 {
		cfg.Timeout = opts.Timeout
	}
	cfg.DryRun = opts.DryRun
	cfg.KeepTemplate = cfg.KeepTemplate || opts.KeepTemplate
	cfg.Archive = cfg.Archive || opts.Archive
}

// filterRefs restricts discovery to the named packages. Unknown names
// are ignored; an empty filter keeps everything.
func filterRefs(refs []domain.PackageRef, only []string) []domain.PackageRef {
	if len(only) == 0 {
		return refs
	}
	want := make(map[string]struct{}, len(only))
	for _, name := range only {
		want[name] = struct{}{}
	}
	kept := refs[:0]
	for _, ref := range refs {
		if _, ok := want[ref.Name]; ok {
			kept = append(kept, ref)
		}
	}
	return kept
}

// setupOTel configures the OpenTelemetry SDK with the reporter bridge so
// package spans drive progress output.
func setupOTel(bridge *telemetry.Bridge) {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(bridge),
	)
	otel.SetTracerProvider(tp)
}
