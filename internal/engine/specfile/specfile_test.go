package specfile_test

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.trai.ch/respec/internal/core/domain"
	"go.trai.ch/respec/internal/engine/specfile"
)

const descriptorFixture = `Name: demo_pkg
Version: 1.2.3
Release: 1%{?dist}
Summary: Demo package
License: Apache-2.0

%description
Demo package.

%build
cmake ..

%files
/usr/lib64/ros
`

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	d, err := specfile.Parse(descriptorFixture)
	require.NoError(t, err)

	assert.Equal(t, descriptorFixture, specfile.Serialize(d))
}

func TestRoundTrip_NoTrailingNewline(t *testing.T) {
	t.Parallel()

	raw := "Name: demo_pkg\n\n%description\nDemo."
	d, err := specfile.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, raw, specfile.Serialize(d))
}

func TestSerialize_MutatedGolden(t *testing.T) {
	d, err := specfile.Parse(descriptorFixture)
	require.NoError(t, err)

	// Rewriting an existing tag and inserting a new one re-renders both
	// lines in canonical padded form; untouched lines keep their raw text.
	require.True(t, d.SetTag("Name", "ros-jazzy-demo-pkg"))
	require.True(t, d.SetTag("BuildArch", "noarch"))

	g := goldie.New(t)
	g.Assert(t, "mutated_descriptor", []byte(specfile.Serialize(d)))
}

func TestParse_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty input", raw: ""},
		{name: "whitespace only", raw: "  \n\t\n"},
		{name: "preamble garbage", raw: "this is not a descriptor\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := specfile.Parse(tt.raw)
			assert.ErrorIs(t, err, domain.ErrMalformedDescriptor)
		})
	}
}

func TestParse_ScriptletQualifier(t *testing.T) {
	t.Parallel()

	d, err := specfile.Parse("Name: demo\nRequires(post): chkconfig\n\n%description\nDemo.\n")
	require.NoError(t, err)

	var dir domain.Directive
	for _, dd := range d.Preamble.Directives {
		if dd.Key == "Requires" {
			dir = dd
		}
	}
	assert.Equal(t, domain.KindTag, dir.Kind)
	assert.Equal(t, "(post)", dir.Qualifier)
	assert.Equal(t, "chkconfig", dir.Value)
	assert.Equal(t, "Requires(post): alternatives", dir.WithValue("alternatives").Raw)
}
