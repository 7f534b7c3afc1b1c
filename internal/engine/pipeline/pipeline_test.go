package pipeline_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/respec/internal/core/domain"
	"go.trai.ch/respec/internal/core/ports"
	"go.trai.ch/respec/internal/core/ports/mocks"
	"go.trai.ch/respec/internal/engine/overrides"
	"go.trai.ch/respec/internal/engine/pipeline"
	"go.trai.ch/respec/internal/engine/rules"
	"go.uber.org/mock/gomock"
)

const impersonatedDescriptor = `%global ros_distro humble
Name:           ros-jazzy-demo-pkg
Version:        1.2.3
Release:        1%{?dist}
Summary:        Demo package
License:        Apache-2.0
Source0:        demo_pkg-1.2.3.tar.gz
BuildRequires:  cmake >= 3.16
BuildRequires:  python3-devel
BuildRequires:  python3-pytest
BuildRequires:  libmystery-devel
Requires:       ros-jazzy-rclcpp

%description
Demo package built under impersonation.

%build
cmake -DCMAKE_INSTALL_PREFIX=/opt/ros/jazzy ..
make

%install
make install DESTDIR=%{buildroot}

%files
/opt/ros/jazzy
`

func testCatalog(t *testing.T, extra ...ports.Rule) *rules.Catalog {
	t.Helper()
	rs := []ports.Rule{
		rules.NewPruneRule("prune-impersonated-tooling", 10, []string{"python3-devel"}),
		rules.NewMacroRule("renorm-distro", 10,
			[]rules.MacroDef{
				{Name: "ros_distro", Expansion: "jazzy"},
				{Name: "debug_package", Expansion: "%{nil}", Insert: true},
			},
			[]string{"%bcond_without tests"},
		),
		rules.NewPathRule("remap-install-prefix", 10,
			[]rules.PrefixMap{{From: "/opt/ros/jazzy", To: "/usr/lib64/ros"}},
			[]string{"export AMENT_PREFIX_PATH=/usr/lib64/ros"},
		),
	}
	rs = append(rs, extra...)
	c, err := rules.NewCatalog(rs)
	require.NoError(t, err)
	return c
}

func testResolver(t *testing.T) ports.OverrideResolver {
	t.Helper()
	tbl, err := overrides.NewTable([]overrides.Entry{
		{Identifier: "python3-pytest", OSRelease: "rhel9", Decision: domain.DecisionRename, Replacement: "python3.11-pytest"},
		{Identifier: "cmake", OSRelease: "rhel", Decision: domain.DecisionKeep},
		{Identifier: "ros-jazzy-*", Decision: domain.DecisionKeep},
	})
	require.NoError(t, err)
	return tbl
}

func quietLogger(t *testing.T) *mocks.MockLogger {
	t.Helper()
	logger := mocks.NewMockLogger(gomock.NewController(t))
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	logger.EXPECT().Error(gomock.Any()).AnyTimes()
	return logger
}

func demoItem(raw string) domain.BatchItem {
	return domain.BatchItem{
		Meta: domain.PackageMeta{Name: "demo_pkg", Version: "1.2.3", Arch: "x86_64", OSRelease: "rhel9"},
		Raw:  raw,
	}
}

// TestPipeline_CorrectsImpersonatedDescriptor verifies the full pass: an
// uncorrected descriptor reaches Corrected with every divergence fixed
// and an audit trail ordered by rule class.
func TestPipeline_CorrectsImpersonatedDescriptor(t *testing.T) {
	p := pipeline.New(testCatalog(t), testResolver(t), quietLogger(t))

	o := p.Run(context.Background(), demoItem(impersonatedDescriptor))
	require.Nil(t, o.Failure)
	require.Equal(t, domain.StateCorrected, o.State)
	require.True(t, o.IsCorrected())
	assert.NotEmpty(t, o.Digest)

	assert.NotContains(t, o.Corrected, "python3-devel")
	assert.NotContains(t, o.Corrected, "/opt/ros/jazzy")
	assert.Contains(t, o.Corrected, "%global ros_distro jazzy")
	assert.Contains(t, o.Corrected, "%global debug_package %{nil}")
	assert.Contains(t, o.Corrected, "python3.11-pytest")
	assert.Contains(t, o.Corrected, "export AMENT_PREFIX_PATH=/usr/lib64/ros")

	// Change records arrive in class order, overrides last.
	var lastRank int
	for _, c := range o.Changes {
		rank := domain.ClassOrder(c.Class)
		require.GreaterOrEqual(t, rank, lastRank, "out-of-order change: %+v", c)
		lastRank = rank
	}

	// The unknown dependency is kept, flagged low-confidence.
	assert.Contains(t, o.Corrected, "libmystery-devel")
	assert.Equal(t, []string{"libmystery-devel"}, o.LowConfidence)

	entries := map[string]domain.Decision{}
	for _, e := range o.Dependencies {
		entries[e.Upstream] = e.Decision
	}
	assert.Equal(t, domain.DecisionRename, entries["python3-pytest"])
	assert.Equal(t, domain.DecisionKeep, entries["cmake"])
	assert.Equal(t, domain.DecisionUnresolved, entries["libmystery-devel"])
	assert.NotContains(t, entries, "python3-devel") // pruned before resolution
}

// TestPipeline_Deterministic verifies that the same input always yields
// byte-identical output and the same audit trail.
func TestPipeline_Deterministic(t *testing.T) {
	p := pipeline.New(testCatalog(t), testResolver(t), quietLogger(t))

	a := p.Run(context.Background(), demoItem(impersonatedDescriptor))
	b := p.Run(context.Background(), demoItem(impersonatedDescriptor))

	require.True(t, a.IsCorrected())
	require.True(t, b.IsCorrected())
	assert.Equal(t, a.Corrected, b.Corrected)
	assert.Equal(t, a.Digest, b.Digest)
	assert.Equal(t, a.Changes, b.Changes)
}

// TestPipeline_CorrectedInputIsFixedPoint verifies that re-running the
// pipeline on its own output changes nothing.
func TestPipeline_CorrectedInputIsFixedPoint(t *testing.T) {
	p := pipeline.New(testCatalog(t), testResolver(t), quietLogger(t))

	first := p.Run(context.Background(), demoItem(impersonatedDescriptor))
	require.True(t, first.IsCorrected())

	second := p.Run(context.Background(), demoItem(first.Corrected))
	require.True(t, second.IsCorrected())
	assert.Equal(t, first.Corrected, second.Corrected)
	assert.Empty(t, second.Changes)
}

// TestPipeline_MalformedDescriptor verifies the parse-failure taxonomy
// entry.
func TestPipeline_MalformedDescriptor(t *testing.T) {
	p := pipeline.New(testCatalog(t), testResolver(t), quietLogger(t))

	o := p.Run(context.Background(), demoItem("not a descriptor at all\n"))
	require.Equal(t, domain.StateFailed, o.State)
	require.NotNil(t, o.Failure)
	assert.Equal(t, domain.ReasonMalformedDescriptor, o.Failure.Reason)
	assert.Empty(t, o.Corrected)
}

// TestPipeline_AmbiguousCorrection verifies that conflicting install
// prefixes fail the package and name the originating rule.
func TestPipeline_AmbiguousCorrection(t *testing.T) {
	raw := `Name: demo

%build
cmake -DCMAKE_INSTALL_PREFIX=/usr/lib64/ros ..

%install
%py3_install --prefix /opt/other
`
	p := pipeline.New(testCatalog(t), testResolver(t), quietLogger(t))

	o := p.Run(context.Background(), demoItem(raw))
	require.Equal(t, domain.StateFailed, o.State)
	require.NotNil(t, o.Failure)
	assert.Equal(t, domain.ReasonAmbiguousCorrection, o.Failure.Reason)
	assert.Equal(t, "remap-install-prefix", o.Failure.Rule)
}

// TestPipeline_NonConvergentRule verifies that a rule which keeps
// changing the descriptor fails the package with the rule named.
func TestPipeline_NonConvergentRule(t *testing.T) {
	ctrl := gomock.NewController(t)
	drifter := mocks.NewMockRule(ctrl)
	drifter.EXPECT().ID().Return("drifter").AnyTimes()
	drifter.EXPECT().Class().Return(domain.ClassConvention).AnyTimes()
	drifter.EXPECT().Priority().Return(0).AnyTimes()
	drifter.EXPECT().Idempotent().Return(true).AnyTimes()
	drifter.EXPECT().Applies(gomock.Any(), gomock.Any()).Return(true).AnyTimes()
	drifter.EXPECT().Apply(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ domain.PackageMeta, d *domain.Descriptor) ([]domain.ChangeRecord, error) {
			d.Preamble.Append(domain.Directive{Raw: "# drift", Kind: domain.KindComment})
			return []domain.ChangeRecord{{Rule: "drifter", Class: domain.ClassConvention, Detail: "drift"}}, nil
		},
	).AnyTimes()

	p := pipeline.New(testCatalog(t, drifter), testResolver(t), quietLogger(t))

	o := p.Run(context.Background(), demoItem(impersonatedDescriptor))
	require.Equal(t, domain.StateFailed, o.State)
	require.NotNil(t, o.Failure)
	assert.Equal(t, domain.ReasonNonConvergentCorrection, o.Failure.Reason)
	assert.Equal(t, "drifter", o.Failure.Rule)
}

// TestPipeline_DeadlineExceeded verifies that an expired deadline maps to
// the Timeout failure reason.
func TestPipeline_DeadlineExceeded(t *testing.T) {
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	p := pipeline.New(testCatalog(t), testResolver(t), quietLogger(t))

	o := p.Run(ctx, demoItem(impersonatedDescriptor))
	require.Equal(t, domain.StateFailed, o.State)
	require.NotNil(t, o.Failure)
	assert.Equal(t, domain.ReasonTimeout, o.Failure.Reason)
}

// TestPipeline_QualifiedDependencyTags verifies that renaming or pinning
// a dependency declared with a scriptlet qualifier keeps the qualifier in
// the rewritten line.
func TestPipeline_QualifiedDependencyTags(t *testing.T) {
	tbl, err := overrides.NewTable([]overrides.Entry{
		{Identifier: "chkconfig", OSRelease: "rhel9", Decision: domain.DecisionRename, Replacement: "alternatives"},
		{Identifier: "initscripts", OSRelease: "rhel9", Decision: domain.DecisionPin, Version: "10.11"},
	})
	require.NoError(t, err)

	raw := `Name: demo_pkg
Version: 1.2.3
Requires(post): chkconfig
Requires(preun): initscripts

%description
Demo package.
`

	p := pipeline.New(testCatalog(t), tbl, quietLogger(t))
	o := p.Run(context.Background(), demoItem(raw))
	require.Nil(t, o.Failure)
	require.True(t, o.IsCorrected())

	assert.Contains(t, o.Corrected, "Requires(post): alternatives")
	assert.Contains(t, o.Corrected, "Requires(preun): initscripts = 10.11")
	assert.NotContains(t, o.Corrected, "chkconfig")
	assert.NotRegexp(t, `Requires:\s`, o.Corrected)
}
