// Package catalog loads the transformation rule catalog from YAML and
// materializes the engine's rule instances.
package catalog

import (
	"os"

	"go.trai.ch/respec/internal/core/domain"
	"go.trai.ch/respec/internal/core/ports"
	"go.trai.ch/respec/internal/engine/rules"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.CatalogLoader.
type Loader struct {
	Logger ports.Logger

	// NamePrefix parametrizes the built-in rules used when no catalog
	// file is configured.
	NamePrefix string
}

// NewLoader creates a catalog loader.
func NewLoader(logger ports.Logger, namePrefix string) *Loader {
	return &Loader{Logger: logger, NamePrefix: namePrefix}
}

// Load reads the catalog file and builds the rule set. An empty path
// selects the built-in rules.
func (l *Loader) Load(path string) ([]ports.Rule, error) {
	if path == "" {
		l.Logger.Info("no rule catalog configured, using built-in rules")
		return DefaultRules(l.NamePrefix)
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

	rs := make([]ports.Rule, 0, len(file.Rules))
	for _, dto := range file.Rules {
		r, err := buildRule(dto)
		if err != nil {
			return nil, err
		}
		rs = append(rs, r)
	}
	return rs, nil
}

func buildRule(dto RuleDTO) (ports.Rule, error) {
	switch domain.RuleClass(dto.Class) {
	case domain.ClassPrune:
		return rules.NewPruneRule(dto.ID, dto.Priority, dto.Prune), nil

	case domain.ClassMacro:
		defs := make([]rules.MacroDef, len(dto.Macros))
		for i, m := range dto.Macros {
			defs[i] = rules.MacroDef{Name: m.Name, Expansion: m.Expansion, Insert: m.Insert}
		}
		return rules.NewMacroRule(dto.ID, dto.Priority, defs, dto.Ensure), nil

	case domain.ClassPath:
		prefixes := make([]rules.PrefixMap, len(dto.Prefixes))
		for i, p := range dto.Prefixes {
			prefixes[i] = rules.PrefixMap{From: p.From, To: p.To}
		}
		return rules.NewPathRule(dto.ID, dto.Priority, prefixes, dto.Exports), nil

	case domain.ClassConvention:
		patches := make([]rules.Patch, len(dto.Patches))
		for i, p := range dto.Patches {
			patches[i] = rules.Patch{
				Section: p.Section,
				Action:  p.Action,
				Tag:     p.Tag,
				Value:   p.Value,
				Match:   p.Match,
				Lines:   p.Lines,
			}
		}
		// Convention rules default to idempotent unless declared otherwise.
		idempotent := true
		if dto.Idempotent != nil {
			idempotent = *dto.Idempotent
		}
		return rules.NewConventionRule(dto.ID, dto.Priority, idempotent, dto.Package, patches)

	default:
		err := zerr.With(domain.ErrUnknownRuleClass, "rule", dto.ID)
		return nil, zerr.With(err, "class", dto.Class)
	}
}
