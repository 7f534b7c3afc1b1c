package ports

import (
	"context"

	"go.trai.ch/respec/internal/core/domain"
)

// Workspace abstracts the on-disk layout the engine reads from and emits
// into: a manifest of packages and per-package descriptor directories.
//
//go:generate mockgen -source=workspace.go -destination=mocks/mock_workspace.go -package=mocks
type Workspace interface {
	// DiscoverPackages parses the manifest and locates each package's
	// descriptor. Packages without a usable descriptor are skipped with a
	// warning, not failed.
	DiscoverPackages(root, manifest string) ([]domain.PackageRef, error)

	// ReadDescriptor returns the raw descriptor text for a package.
	ReadDescriptor(ref domain.PackageRef) (string, error)

	// WriteCorrected emits the corrected descriptor under the given file
	// name and returns its path.
	WriteCorrected(ref domain.PackageRef, fileName, text string) (string, error)

	// RemoveTemplate deletes the template descriptor after a successful
	// emission. Removing a non-template input is a no-op.
	RemoveTemplate(ref domain.PackageRef) error

	// WriteReport emits the batch report.
	WriteReport(path string, data []byte) error
}

// Archiver emits a source archive for a corrected package.
type Archiver interface {
	// Archive writes a gzip-compressed tarball of srcDir to outPath.
	Archive(ctx context.Context, srcDir, outPath string) error
}
