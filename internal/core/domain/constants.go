package domain

import (
	"path/filepath"
	"time"
)

// Well-known workspace file names.
const (
	// ConfigFileName is the workspace configuration file.
	ConfigFileName = "respec.yaml"
	// TemplateSpecName is the descriptor emitted by the impersonated-OS
	// generator.
	TemplateSpecName = "template.spec"
	// ManifestName is the default package list file.
	ManifestName = "pkg_list.txt"
	// ReposDirName is the per-package descriptor directory.
	ReposDirName = "repos"
	// ReportFileName is the default batch report file.
	ReportFileName = "sanitize-report.yaml"
)

// Filesystem permissions.
const (
	FilePerm = 0o644
	DirPerm  = 0o755
)

// DefaultPackageTimeout bounds one package's pipeline run.
const DefaultPackageTimeout = 60 * time.Second

// LedgerPath returns the workspace-relative directory holding per-package
// sanitize ledger entries.
func LedgerPath() string {
	return filepath.Join(".respec", "ledger")
}
