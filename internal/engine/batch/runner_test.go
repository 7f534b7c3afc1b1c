package batch_test

import (
	"context"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/respec/internal/core/domain"
	"go.trai.ch/respec/internal/core/ports"
	"go.trai.ch/respec/internal/core/ports/mocks"
	"go.trai.ch/respec/internal/engine/batch"
	"go.trai.ch/respec/internal/engine/overrides"
	"go.trai.ch/respec/internal/engine/pipeline"
	"go.trai.ch/respec/internal/engine/rules"
	"go.uber.org/mock/gomock"
)

const minimalDescriptor = `Name:           ros-jazzy-demo
Version:        1.0.0
BuildRequires:  python3-devel

%description
Demo.

%build
make
`

type runnerTestMocks struct {
	tracer   *mocks.MockTracer
	reporter *mocks.MockReporter
	logger   *mocks.MockLogger
}

// setupRunnerMocks wires permissive tracer, reporter and logger doubles.
func setupRunnerMocks(t *testing.T) runnerTestMocks {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := runnerTestMocks{
		tracer:   mocks.NewMockTracer(ctrl),
		reporter: mocks.NewMockReporter(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
	}

	span := mocks.NewMockSpan(ctrl)
	span.EXPECT().End().AnyTimes()
	span.EXPECT().RecordError(gomock.Any()).AnyTimes()
	span.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()
	m.tracer.EXPECT().Start(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
			return ctx, span
		},
	).AnyTimes()

	m.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	m.logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	m.logger.EXPECT().Error(gomock.Any()).AnyTimes()
	return m
}

func newTestPipeline(t *testing.T, logger ports.Logger, extra ...ports.Rule) *pipeline.Pipeline {
	t.Helper()
	rs := append([]ports.Rule{
		rules.NewPruneRule("prune-impersonated-tooling", 10, []string{"python3-devel"}),
	}, extra...)
	catalog, err := rules.NewCatalog(rs)
	require.NoError(t, err)
	table, err := overrides.NewTable([]overrides.Entry{
		{Identifier: "ros-jazzy-*", Decision: domain.DecisionKeep},
	})
	require.NoError(t, err)
	return pipeline.New(catalog, table, logger)
}

func item(name, raw string) domain.BatchItem {
	return domain.BatchItem{
		Meta: domain.PackageMeta{Name: name, Version: "1.0.0", Arch: "x86_64", OSRelease: "rhel9"},
		Raw:  raw,
	}
}

// TestRunner_PackageFailuresStayLocal verifies that a malformed package
// fails alone while the rest of the batch is corrected, and that the
// summary reflects both.
func TestRunner_PackageFailuresStayLocal(t *testing.T) {
	m := setupRunnerMocks(t)
	m.reporter.EXPECT().OnBatchStart(gomock.Len(3), "rhel9", "x86_64").Times(1)
	m.reporter.EXPECT().OnOutcome(gomock.Any()).Times(3)
	m.reporter.EXPECT().OnSummary(gomock.Any()).Times(1)

	r := batch.NewRunner(newTestPipeline(t, m.logger), m.tracer, m.reporter, m.logger, 2, time.Minute)

	outcomes, summary, err := r.Run(context.Background(), domain.Batch{Items: []domain.BatchItem{
		item("pkg_a", minimalDescriptor),
		item("pkg_b", "garbage line\n"),
		item("pkg_c", minimalDescriptor),
	}}, "rhel9", "x86_64")
	require.NoError(t, err)

	require.Len(t, outcomes, 3)
	assert.True(t, outcomes["pkg_a"].IsCorrected())
	assert.True(t, outcomes["pkg_c"].IsCorrected())
	require.NotNil(t, outcomes["pkg_b"].Failure)
	assert.Equal(t, domain.ReasonMalformedDescriptor, outcomes["pkg_b"].Failure.Reason)

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.Corrected)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1, summary.ByReason[string(domain.ReasonMalformedDescriptor)])
}

// TestRunner_EmptyBatch verifies the no-packages error.
func TestRunner_EmptyBatch(t *testing.T) {
	m := setupRunnerMocks(t)
	r := batch.NewRunner(newTestPipeline(t, m.logger), m.tracer, m.reporter, m.logger, 2, time.Minute)

	_, _, err := r.Run(context.Background(), domain.Batch{}, "rhel9", "x86_64")
	require.ErrorIs(t, err, domain.ErrNoPackages)
}

// TestRunner_PerPackageTimeout verifies that a hung package is cut off by
// its own deadline while the rest of the batch completes normally.
func TestRunner_PerPackageTimeout(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		m := setupRunnerMocks(t)
		m.reporter.EXPECT().OnBatchStart(gomock.Any(), gomock.Any(), gomock.Any()).Times(1)
		m.reporter.EXPECT().OnOutcome(gomock.Any()).AnyTimes()
		m.reporter.EXPECT().OnSummary(gomock.Any()).Times(1)

		ctrl := gomock.NewController(t)
		slow := mocks.NewMockRule(ctrl)
		slow.EXPECT().ID().Return("slow-rule").AnyTimes()
		slow.EXPECT().Class().Return(domain.ClassConvention).AnyTimes()
		slow.EXPECT().Priority().Return(0).AnyTimes()
		slow.EXPECT().Idempotent().Return(false).AnyTimes()
		slow.EXPECT().Applies(gomock.Any(), gomock.Any()).DoAndReturn(
			func(meta domain.PackageMeta, _ *domain.Descriptor) bool {
				return meta.Name == "pkg_hung"
			},
		).AnyTimes()
		slow.EXPECT().Apply(gomock.Any(), gomock.Any()).DoAndReturn(
			func(domain.PackageMeta, *domain.Descriptor) ([]domain.ChangeRecord, error) {
				time.Sleep(5 * time.Second)
				return nil, nil
			},
		).AnyTimes()

		r := batch.NewRunner(newTestPipeline(t, m.logger, slow), m.tracer, m.reporter, m.logger, 2, time.Second)

		outcomes, summary, err := r.Run(context.Background(), domain.Batch{Items: []domain.BatchItem{
			item("pkg_fast", minimalDescriptor),
			item("pkg_hung", minimalDescriptor),
		}}, "rhel9", "x86_64")
		require.NoError(t, err)

		assert.True(t, outcomes["pkg_fast"].IsCorrected())
		require.NotNil(t, outcomes["pkg_hung"].Failure)
		assert.Equal(t, domain.ReasonTimeout, outcomes["pkg_hung"].Failure.Reason)
		assert.Equal(t, 1, summary.Failed)
	})
}

// TestRunner_BoundedParallelism verifies that no more than jobs packages
// run at once.
func TestRunner_BoundedParallelism(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		m := setupRunnerMocks(t)
		m.reporter.EXPECT().OnBatchStart(gomock.Any(), gomock.Any(), gomock.Any()).Times(1)
		m.reporter.EXPECT().OnOutcome(gomock.Any()).AnyTimes()
		m.reporter.EXPECT().OnSummary(gomock.Any()).Times(1)

		var (
			mu      sync.Mutex
			active  int
			maxSeen int
		)
		ctrl := gomock.NewController(t)
		gauge := mocks.NewMockRule(ctrl)
		gauge.EXPECT().ID().Return("gauge").AnyTimes()
		gauge.EXPECT().Class().Return(domain.ClassConvention).AnyTimes()
		gauge.EXPECT().Priority().Return(0).AnyTimes()
		gauge.EXPECT().Idempotent().Return(false).AnyTimes()
		gauge.EXPECT().Applies(gomock.Any(), gomock.Any()).Return(true).AnyTimes()
		gauge.EXPECT().Apply(gomock.Any(), gomock.Any()).DoAndReturn(
			func(domain.PackageMeta, *domain.Descriptor) ([]domain.ChangeRecord, error) {
				mu.Lock()
				active++
				if active > maxSeen {
					maxSeen = active
				}
				mu.Unlock()
				time.Sleep(100 * time.Millisecond)
				mu.Lock()
				active--
				mu.Unlock()
				return nil, nil
			},
		).AnyTimes()

		r := batch.NewRunner(newTestPipeline(t, m.logger, gauge), m.tracer, m.reporter, m.logger, 2, time.Minute)

		_, summary, err := r.Run(context.Background(), domain.Batch{Items: []domain.BatchItem{
			item("pkg_1", minimalDescriptor),
			item("pkg_2", minimalDescriptor),
			item("pkg_3", minimalDescriptor),
			item("pkg_4", minimalDescriptor),
		}}, "rhel9", "x86_64")
		require.NoError(t, err)

		assert.Equal(t, 4, summary.Corrected)
		assert.LessOrEqual(t, maxSeen, 2)
		assert.Positive(t, maxSeen)
	})
}
