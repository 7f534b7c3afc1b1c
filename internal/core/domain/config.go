package domain

import (
	"runtime"
	"time"
)

// Config is the effective engine configuration for one invocation, the
// merge of respec.yaml and command-line flags (flags win).
type Config struct {
	Workspace     string        // workspace root (contains repos/, manifest)
	Manifest      string        // package list path, relative to Workspace
	OSRelease     string        // target OS release string
	Arch          string        // target architecture
	NamePrefix    string        // descriptor name prefix, e.g. "ros-jazzy"
	CatalogPath   string        // rule catalog file
	OverridesPath string        // skip/override table file
	ReportPath    string        // batch report output
	Jobs          int           // worker limit
	Timeout       time.Duration // per-package pipeline timeout
	DryRun        bool          // run the pipeline, write nothing
	KeepTemplate  bool          // do not remove the template descriptor
	Archive       bool          // emit .orig.tar.gz source archives
}

// Normalize fills zero values with defaults.
func (c *Config) Normalize() {
	if c.Workspace == "" {
		c.Workspace = "."
	}
	if c.Manifest == "" {
		c.Manifest = ManifestName
	}
	if c.ReportPath == "" {
		c.ReportPath = ReportFileName
	}
	if c.Jobs <= 0 {
		c.Jobs = runtime.NumCPU()
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultPackageTimeout
	}
}
