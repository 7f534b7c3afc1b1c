package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/respec/internal/adapters/catalog"
	"go.trai.ch/respec/internal/core/domain"
	"go.trai.ch/respec/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const sampleCatalog = `
version: "1"
rules:
  - id: prune-impersonated-tooling
    class: prune
    priority: 10
    prune: [python3-devel, ament-*]
  - id: renorm-distro
    class: macro
    priority: 20
    macros:
      - name: ros_distro
        expansion: jazzy
        insert: true
    ensure: ["%bcond_without tests"]
  - id: remap-install-prefix
    class: path
    priority: 10
    prefixes:
      - from: /opt/ros/jazzy
        to: /usr/lib64/ros
  - id: demo-conventions
    class: convention
    priority: 30
    package: "demo_*"
    idempotent: false
    patches:
      - section: preamble
        action: set-tag
        tag: Source0
        value: "${pkg}_${version}.orig.tar.gz"
`

func newLoader(t *testing.T) *catalog.Loader {
	t.Helper()
	logger := mocks.NewMockLogger(gomock.NewController(t))
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	return catalog.NewLoader(logger, "ros-jazzy")
}

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestLoader_MaterializesRules verifies that every rule class round-trips
// from YAML into a typed rule with its declared identity.
func TestLoader_MaterializesRules(t *testing.T) {
	rs, err := newLoader(t).Load(writeCatalog(t, sampleCatalog))
	require.NoError(t, err)
	require.Len(t, rs, 4)

	byID := map[string]domain.RuleClass{}
	for _, r := range rs {
		byID[r.ID()] = r.Class()
	}
	assert.Equal(t, domain.ClassPrune, byID["prune-impersonated-tooling"])
	assert.Equal(t, domain.ClassMacro, byID["renorm-distro"])
	assert.Equal(t, domain.ClassPath, byID["remap-install-prefix"])
	assert.Equal(t, domain.ClassConvention, byID["demo-conventions"])

	for _, r := range rs {
		if r.ID() == "demo-conventions" {
			assert.False(t, r.Idempotent())
		}
	}
}

// TestLoader_UnknownClass verifies the catalog-validation taxonomy entry.
func TestLoader_UnknownClass(t *testing.T) {
	_, err := newLoader(t).Load(writeCatalog(t, "rules:\n  - id: x\n    class: mystery\n"))
	require.ErrorIs(t, err, domain.ErrUnknownRuleClass)
}

// TestLoader_MissingFile verifies the read-failure taxonomy entry.
func TestLoader_MissingFile(t *testing.T) {
	_, err := newLoader(t).Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrConfigReadFailed.Error())
}

// TestLoader_BuiltInRules verifies that an empty path selects the
// built-in catalog.
func TestLoader_BuiltInRules(t *testing.T) {
	rs, err := newLoader(t).Load("")
	require.NoError(t, err)
	require.NotEmpty(t, rs)

	classes := map[domain.RuleClass]bool{}
	for _, r := range rs {
		classes[r.Class()] = true
	}
	assert.True(t, classes[domain.ClassMacro])
	assert.True(t, classes[domain.ClassPath])
	assert.True(t, classes[domain.ClassConvention])
}
