// Package workspace implements the on-disk layout the sanitizer works
// in: a manifest listing packages and a repos/ tree holding one
// generated descriptor per package.
package workspace

import (
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/respec/internal/core/domain"
	"go.trai.ch/respec/internal/core/ports"
	"go.trai.ch/zerr"
)

// Workspace implements ports.Workspace on the local filesystem.
type Workspace struct {
	Logger ports.Logger
}

// New creates a workspace adapter.
func New(logger ports.Logger) *Workspace {
	return &Workspace{Logger: logger}
}

// DiscoverPackages parses the manifest and locates each package's
// descriptor. Manifest lines are "<pkg_name> <pkg_path>"; blank lines
// and "#" comments are ignored. Packages without a usable descriptor are
// skipped with a warning so one broken checkout never blocks a batch.
func (w *Workspace) DiscoverPackages(root, manifest string) ([]domain.PackageRef, error) {
	manifestPath := manifest
	if !filepath.IsAbs(manifestPath) {
		manifestPath = filepath.Join(root, manifest)
	}

	// #nosec G304 -- manifestPath is anchored at the workspace root
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestNotFound.Error()), "path", manifestPath)
	}

	var refs []domain.PackageRef
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		name := fields[0]
		sourceDir := ""
		if len(fields) > 1 {
			sourceDir = fields[1]
			if !filepath.IsAbs(sourceDir) {
				sourceDir = filepath.Join(root, sourceDir)
			}
		}

		specDir := filepath.Join(root, domain.ReposDirName, name)
		specPath, err := w.findDescriptor(specDir)
		if err != nil {
			w.Logger.Warn(name + ": " + err.Error() + ", skipping")
			continue
		}

		refs = append(refs, domain.PackageRef{
			Name:      name,
			SourceDir: sourceDir,
			SpecDir:   specDir,
			SpecPath:  specPath,
		})
	}
	return refs, nil
}

// findDescriptor locates the package's descriptor: the generator's
// template when present, otherwise a single .spec file.
func (w *Workspace) findDescriptor(specDir string) (string, error) {
	templatePath := filepath.Join(specDir, domain.TemplateSpecName)
	if _, err := os.Stat(templatePath); err == nil {
		return templatePath, nil
	}

	matches, err := filepath.Glob(filepath.Join(specDir, "*.spec"))
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrDescriptorNotFound.Error())
	}
	switch len(matches) {
	case 0:
		return "", zerr.With(domain.ErrDescriptorNotFound, "dir", specDir)
	case 1:
		return matches[0], nil
	default:
		err := zerr.With(domain.ErrDescriptorAmbiguous, "dir", specDir)
		return "", zerr.With(err, "count", len(matches))
	}
}

// ReadDescriptor returns the raw descriptor text for a package.
func (w *Workspace) ReadDescriptor(ref domain.PackageRef) (string, error) {
	// #nosec G304 -- SpecPath comes from DiscoverPackages
	data, err := os.ReadFile(ref.SpecPath)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrDescriptorNotFound.Error()), "path", ref.SpecPath)
	}
	return string(data), nil
}

// WriteCorrected emits the corrected descriptor next to the input.
func (w *Workspace) WriteCorrected(ref domain.PackageRef, fileName, text string) (string, error) {
	path := filepath.Join(ref.SpecDir, fileName)
	if err := os.WriteFile(path, []byte(text), domain.FilePerm); err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrWorkspaceWriteFailed.Error()), "path", path)
	}
	return path, nil
}

// RemoveTemplate deletes the generator template after a successful
// emission. Removing a non-template input is a no-op: the corrected file
// may have been written over it.
func (w *Workspace) RemoveTemplate(ref domain.PackageRef) error {
	if filepath.Base(ref.SpecPath) != domain.TemplateSpecName {
		return nil
	}
	if err := os.Remove(ref.SpecPath); err != nil && !os.IsNotExist(err) {
		return zerr.With(zerr.Wrap(err, domain.ErrWorkspaceWriteFailed.Error()), "path", ref.SpecPath)
	}
	return nil
}

// WriteReport emits the batch report, creating parent directories as
// needed.
func (w *Workspace) WriteReport(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrWorkspaceWriteFailed.Error())
	}
	if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrWorkspaceWriteFailed.Error()), "path", path)
	}
	return nil
}
