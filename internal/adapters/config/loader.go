// Package config provides the configuration loader for respec.
package config

import (
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/respec/internal/core/domain"
	"go.trai.ch/respec/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	FS     FileSystem
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{FS: NewOSFS(), Logger: logger}
}

// Load reads respec.yaml from the workspace root. A missing file is not
// an error: every setting has a default or a flag.
func (l *Loader) Load(workspace string) (*domain.Config, error) {
	cfg := &domain.Config{Workspace: workspace}

	path := filepath.Join(workspace, domain.ConfigFileName)
	if _, err := l.FS.Stat(path); err != nil {
		if os.IsNotExist(err) {
			l.Logger.Info("no " + domain.ConfigFileName + " found, using defaults")
			cfg.Normalize()
			return cfg, nil
		}
		return nil, zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	var file File
	if err := readAndUnmarshalYAML(l.FS, path, &file); err != nil {
		return nil, err
	}

	cfg.OSRelease = file.OSRelease
	cfg.Arch = file.Arch
	cfg.NamePrefix = file.NamePrefix
	cfg.Manifest = file.Manifest
	cfg.CatalogPath = resolvePath(workspace, file.Catalog)
	cfg.OverridesPath = resolvePath(workspace, file.Overrides)
	cfg.ReportPath = file.Report
	cfg.Jobs = file.Jobs
	cfg.Timeout = time.Duration(file.TimeoutSeconds) * time.Second
	cfg.KeepTemplate = file.KeepTemplate
	cfg.Archive = file.Archive

	cfg.Normalize()
	return cfg, nil
}

// resolvePath anchors a relative config path at the workspace root.
func resolvePath(workspace, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(workspace, path)
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](fsys FileSystem, path string, target *T) error {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(data, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}
