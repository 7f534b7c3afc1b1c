// Package batch runs the sanitization pipeline over many packages with
// bounded parallelism. Packages are independent: one failure never stops
// the batch, and a hung package is cut off by its own timeout.
package batch

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"go.trai.ch/respec/internal/core/domain"
	"go.trai.ch/respec/internal/core/ports"
	"go.trai.ch/respec/internal/engine/pipeline"
	"golang.org/x/sync/errgroup"
)

// Runner fans a batch out over a worker pool.
type Runner struct {
	pipeline *pipeline.Pipeline
	tracer   ports.Tracer
	reporter ports.Reporter
	logger   ports.Logger

	jobs    int
	timeout time.Duration
}

// NewRunner creates a batch runner. jobs bounds worker parallelism;
// timeout is the per-package budget.
func NewRunner(p *pipeline.Pipeline, tracer ports.Tracer, reporter ports.Reporter, logger ports.Logger, jobs int, timeout time.Duration) *Runner {
	if jobs < 1 {
		jobs = 1
	}
	if timeout <= 0 {
		timeout = domain.DefaultPackageTimeout
	}
	return &Runner{
		pipeline: p,
		tracer:   tracer,
		reporter: reporter,
		logger:   logger,
		jobs:     jobs,
		timeout:  timeout,
	}
}

// Run processes every package in the batch and returns the outcome map
// keyed by package name, plus the aggregated summary.
func (r *Runner) Run(ctx context.Context, batch domain.Batch, osRelease, arch string) (map[string]*domain.Outcome, domain.Summary, error) {
	if len(batch.Items) == 0 {
		return nil, domain.Summary{}, domain.ErrNoPackages
	}

	names := make([]string, len(batch.Items))
	for i, item := range batch.Items {
		names[i] = item.Meta.Name
	}
	r.reporter.OnBatchStart(names, osRelease, arch)

	var (
		mu       sync.Mutex
		outcomes = make(map[string]*domain.Outcome, len(batch.Items))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.jobs)

	for _, item := range batch.Items {
		g.Go(func() error {
			o := r.runOne(gctx, item)
			mu.Lock()
			outcomes[item.Meta.Name] = o
			mu.Unlock()
			// Package failures stay package-local.
			return nil
		})
	}
	// Workers never return errors; Wait only joins them.
	_ = g.Wait()

	summary := domain.Summarize(outcomes)

	sort.Strings(names)
	for _, name := range names {
		r.reporter.OnOutcome(outcomes[name])
	}
	r.reporter.OnSummary(summary)

	return outcomes, summary, nil
}

// runOne corrects a single package under its own deadline and span.
// Progress events flow through the span: a telemetry bridge registered on
// the tracer provider turns span start and end into reporter calls.
func (r *Runner) runOne(ctx context.Context, item domain.BatchItem) *domain.Outcome {
	pctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	spanCtx, span := r.tracer.Start(pctx, item.Meta.Name)
	defer span.End()

	o := r.pipeline.Run(spanCtx, item)

	span.SetAttribute("respec.state", string(o.State))
	if o.Failure != nil {
		span.RecordError(errors.New(string(o.Failure.Reason) + ": " + o.Failure.Detail))
	}
	return o
}
