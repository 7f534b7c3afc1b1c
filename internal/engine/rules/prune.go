package rules

import (
	"path"
	"strings"

	"go.trai.ch/respec/internal/core/domain"
)

// PruneRule removes dependency directives referencing build tooling that
// exists on the impersonated OS but is absent on the target by design.
type PruneRule struct {
	base
	identifiers []string // exact identifiers or glob patterns
}

// NewPruneRule creates a prune rule for the given dependency identifiers.
func NewPruneRule(id string, priority int, identifiers []string) *PruneRule {
	return &PruneRule{
		base: base{
			id:         id,
			class:      domain.ClassPrune,
			priority:   priority,
			idempotent: true,
		},
		identifiers: identifiers,
	}
}

// Applies reports whether any dependency line matches the prune set.
func (r *PruneRule) Applies(_ domain.PackageMeta, d *domain.Descriptor) bool {
	found := false
	r.walk(d, func(*domain.Section, int, domain.Directive) { found = true })
	return found
}

// Apply removes every matching dependency directive.
func (r *PruneRule) Apply(_ domain.PackageMeta, d *domain.Descriptor) ([]domain.ChangeRecord, error) {
	var changes []domain.ChangeRecord

	prune := func(s *domain.Section) {
		kept := s.Directives[:0]
		for _, dir := range s.Directives {
			if r.matches(dir) {
				changes = append(changes, r.record(s.Name, "removed "+strings.TrimSpace(dir.Raw)))
				continue
			}
			kept = append(kept, dir)
		}
		s.Directives = kept
	}

	prune(d.Preamble)
	for _, s := range d.Sections {
		if !s.Opaque && strings.HasPrefix(s.Name, "%package") {
			prune(s)
		}
	}

	return changes, nil
}

func (r *PruneRule) matches(dir domain.Directive) bool {
	if !dir.IsDependency() {
		return false
	}
	ident := dir.DependencyIdentifier()
	for _, pattern := range r.identifiers {
		if pattern == ident {
			return true
		}
		if ok, err := path.Match(pattern, ident); err == nil && ok {
			return true
		}
	}
	return false
}

func (r *PruneRule) walk(d *domain.Descriptor, fn func(*domain.Section, int, domain.Directive)) {
	visit := func(s *domain.Section) {
		for i, dir := range s.Directives {
			if r.matches(dir) {
				fn(s, i, dir)
			}
		}
	}
	visit(d.Preamble)
	for _, s := range d.Sections {
		if !s.Opaque && strings.HasPrefix(s.Name, "%package") {
			visit(s)
		}
	}
}
