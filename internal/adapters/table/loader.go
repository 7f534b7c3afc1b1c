// Package table loads the skip/override table from YAML.
package table

import (
	"os"

	"go.trai.ch/respec/internal/core/domain"
	"go.trai.ch/respec/internal/core/ports"
	"go.trai.ch/respec/internal/engine/overrides"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// File represents the structure of an override table YAML file.
type File struct {
	Version string     `yaml:"version"`
	Entries []EntryDTO `yaml:"entries"`
}

// EntryDTO is one curated override entry.
type EntryDTO struct {
	Identifier  string `yaml:"identifier"`
	OSRelease   string `yaml:"os_release"`
	Decision    string `yaml:"decision"`
	Replacement string `yaml:"replacement"`
	Version     string `yaml:"version"`
}

// Loader implements ports.TableLoader.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a table loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the override table. An empty path yields an empty table, so
// every dependency resolves to the keep-default.
func (l *Loader) Load(path string) (ports.OverrideResolver, error) {
	if path == "" {
		l.Logger.Info("no override table configured, keeping all dependencies")
		return overrides.NewTable(nil)
	}

	// #nosec G304 -- path comes from the workspace config
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}

	entries := make([]overrides.Entry, len(file.Entries))
	for i, dto := range file.Entries {
		entries[i] = overrides.Entry{
			Identifier:  dto.Identifier,
			OSRelease:   dto.OSRelease,
			Decision:    domain.Decision(dto.Decision),
			Replacement: dto.Replacement,
			Version:     dto.Version,
		}
	}
	return overrides.NewTable(entries)
}
