package table_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/respec/internal/adapters/table"
	"go.trai.ch/respec/internal/core/domain"
	"go.trai.ch/respec/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newLoader(t *testing.T) *table.Loader {
	t.Helper()
	logger := mocks.NewMockLogger(gomock.NewController(t))
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	return table.NewLoader(logger)
}

// TestLoader_ResolvesLoadedEntries verifies the YAML round trip into a
// working resolver.
func TestLoader_ResolvesLoadedEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
version: "1"
entries:
  - identifier: python3-pytest
    os_release: rhel9
    decision: rename
    replacement: python3.11-pytest
  - identifier: ament-cmake-*
    os_release: "rhel*"
    decision: omit
`), 0o644))

	resolver, err := newLoader(t).Load(path)
	require.NoError(t, err)

	got := resolver.Resolve("python3-pytest", "rhel9")
	assert.Equal(t, domain.DecisionRename, got.Kind)
	assert.Equal(t, "python3.11-pytest", got.Replacement)

	got = resolver.Resolve("ament-cmake-gtest", "rhel9")
	assert.Equal(t, domain.DecisionOmit, got.Kind)

	got = resolver.Resolve("unlisted", "rhel9")
	assert.Equal(t, domain.DecisionKeep, got.Kind)
	assert.True(t, got.LowConfidence())
}

// TestLoader_EmptyPathKeepsEverything verifies the keep-default table.
func TestLoader_EmptyPathKeepsEverything(t *testing.T) {
	resolver, err := newLoader(t).Load("")
	require.NoError(t, err)

	got := resolver.Resolve("anything", "rhel9")
	assert.Equal(t, domain.DecisionKeep, got.Kind)
	assert.True(t, got.LowConfidence())
}

// TestLoader_InvalidDecision verifies that table validation surfaces at
// load time.
func TestLoader_InvalidDecision(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
entries:
  - identifier: foo
    decision: drop
`), 0o644))

	_, err := newLoader(t).Load(path)
	require.ErrorIs(t, err, domain.ErrInvalidDecision)
}
