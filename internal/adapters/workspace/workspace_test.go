package workspace_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/respec/internal/adapters/workspace"
	"go.trai.ch/respec/internal/core/domain"
	"go.trai.ch/respec/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newWorkspace(t *testing.T) *workspace.Workspace {
	t.Helper()
	logger := mocks.NewMockLogger(gomock.NewController(t))
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	return workspace.New(logger)
}

func seed(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

// TestWorkspace_DiscoverPackages verifies manifest parsing, template
// preference, single-spec fallback, and skipping of unusable packages.
func TestWorkspace_DiscoverPackages(t *testing.T) {
	root := t.TempDir()
	seed(t, root, map[string]string{
		"pkg_list.txt": "# generated\ndemo_pkg src/demo_pkg\nplain_pkg src/plain_pkg\nempty_pkg src/empty_pkg\nmulti_pkg src/multi_pkg\n",
		"repos/demo_pkg/template.spec":  "Name: demo\n",
		"repos/demo_pkg/leftover.spec":  "Name: stale\n",
		"repos/plain_pkg/ros-demo.spec": "Name: plain\n",
		"repos/multi_pkg/a.spec":        "Name: a\n",
		"repos/multi_pkg/b.spec":        "Name: b\n",
	})
	require.NoError(t, os.MkdirAll(filepath.Join(root, "repos/empty_pkg"), 0o755))

	refs, err := newWorkspace(t).DiscoverPackages(root, "pkg_list.txt")
	require.NoError(t, err)

	// empty_pkg (no descriptor) and multi_pkg (ambiguous) are skipped.
	require.Len(t, refs, 2)
	assert.Equal(t, "demo_pkg", refs[0].Name)
	assert.Equal(t, filepath.Join(root, "repos/demo_pkg/template.spec"), refs[0].SpecPath)
	assert.Equal(t, filepath.Join(root, "src/demo_pkg"), refs[0].SourceDir)
	assert.Equal(t, "plain_pkg", refs[1].Name)
	assert.Equal(t, filepath.Join(root, "repos/plain_pkg/ros-demo.spec"), refs[1].SpecPath)
}

// TestWorkspace_MissingManifest verifies the manifest taxonomy entry.
func TestWorkspace_MissingManifest(t *testing.T) {
	_, err := newWorkspace(t).DiscoverPackages(t.TempDir(), "pkg_list.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrManifestNotFound.Error())
}

// TestWorkspace_EmitAndRemoveTemplate verifies the read, write, remove
// round trip for a template-based package.
func TestWorkspace_EmitAndRemoveTemplate(t *testing.T) {
	root := t.TempDir()
	seed(t, root, map[string]string{
		"pkg_list.txt":                 "demo_pkg src/demo_pkg\n",
		"repos/demo_pkg/template.spec": "Name: demo\n",
	})
	ws := newWorkspace(t)

	refs, err := ws.DiscoverPackages(root, "pkg_list.txt")
	require.NoError(t, err)
	require.Len(t, refs, 1)

	raw, err := ws.ReadDescriptor(refs[0])
	require.NoError(t, err)
	assert.Equal(t, "Name: demo\n", raw)

	path, err := ws.WriteCorrected(refs[0], "ros-jazzy-demo-pkg.spec", "Name: corrected\n")
	require.NoError(t, err)
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Name: corrected\n", string(got))

	require.NoError(t, ws.RemoveTemplate(refs[0]))
	_, err = os.Stat(refs[0].SpecPath)
	assert.True(t, os.IsNotExist(err))

	// Removing a non-template input is a no-op.
	other := domain.PackageRef{SpecPath: path, SpecDir: refs[0].SpecDir}
	require.NoError(t, ws.RemoveTemplate(other))
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

// TestWorkspace_WriteReport verifies report emission with directory
// creation.
func TestWorkspace_WriteReport(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "out", "sanitize-report.yaml")

	require.NoError(t, newWorkspace(t).WriteReport(path, []byte("total: 3\n")))
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "total: 3\n", string(got))
}
