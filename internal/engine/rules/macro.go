package rules

import (
	"strings"

	"go.trai.ch/respec/internal/core/domain"
	"go.trai.ch/zerr"
)

// MacroDef is one macro renormalization target: the definition the target
// OS expects for a macro whose expansion diverges under impersonation.
type MacroDef struct {
	Name      string
	Expansion string
	// Insert adds the definition when the descriptor lacks it entirely.
	Insert bool
}

// MacroRule rewrites diverging macro definitions without touching their
// call sites, and ensures required guard lines exist in the preamble.
type MacroRule struct {
	base
	defs   []MacroDef
	ensure []string // raw guard lines, e.g. "%bcond_without tests"
}

// NewMacroRule creates a macro renormalization rule.
func NewMacroRule(id string, priority int, defs []MacroDef, ensure []string) *MacroRule {
	return &MacroRule{
		base: base{
			id:         id,
			class:      domain.ClassMacro,
			priority:   priority,
			idempotent: true,
		},
		defs:   defs,
		ensure: ensure,
	}
}

// Applies reports whether any definition or guard line needs work.
func (r *MacroRule) Applies(meta domain.PackageMeta, d *domain.Descriptor) bool {
	for _, def := range r.defs {
		current, ok := d.Macro(def.Name)
		if ok && current != expandMeta(def.Expansion, meta) {
			return true
		}
		if !ok && def.Insert {
			return true
		}
	}
	for _, line := range r.ensure {
		if !hasRawLine(d.Preamble, line) {
			return true
		}
	}
	return false
}

// Apply rewrites diverging definitions and inserts missing guards at the
// top of the preamble. A macro defined more than once with conflicting
// expansions is an ambiguous correction.
func (r *MacroRule) Apply(meta domain.PackageMeta, d *domain.Descriptor) ([]domain.ChangeRecord, error) {
	var changes []domain.ChangeRecord

	for _, def := range r.defs {
		want := expandMeta(def.Expansion, meta)

		indices := macroIndices(d.Preamble, def.Name)
		if len(indices) > 1 && conflicting(d.Preamble, indices) {
			err := zerr.With(domain.ErrAmbiguousCorrection, "macro", def.Name)
			return nil, zerr.With(err, "definitions", len(indices))
		}

		switch {
		case len(indices) > 0:
			for _, i := range indices {
				if d.Preamble.Directives[i].Value == want {
					continue
				}
				d.Preamble.Directives[i] = domain.FormatMacro(def.Name, want)
				changes = append(changes, r.record("", "redefined %"+def.Name+" to "+want))
			}
		case def.Insert:
			insertAtTop(d.Preamble, domain.FormatMacro(def.Name, want))
			changes = append(changes, r.record("", "defined %"+def.Name+" as "+want))
		}
	}

	for _, line := range r.ensure {
		if hasRawLine(d.Preamble, line) {
			continue
		}
		insertAtTop(d.Preamble, domain.Directive{Raw: line, Kind: domain.KindMacro, Key: macroKey(line)})
		changes = append(changes, r.record("", "inserted "+line))
	}

	return changes, nil
}

func macroIndices(s *domain.Section, name string) []int {
	var out []int
	for i, dir := range s.Directives {
		if dir.Kind == domain.KindMacro && dir.Key == name {
			out = append(out, i)
		}
	}
	return out
}

func conflicting(s *domain.Section, indices []int) bool {
	first := s.Directives[indices[0]].Value
	for _, i := range indices[1:] {
		if s.Directives[i].Value != first {
			return true
		}
	}
	return false
}

func hasRawLine(s *domain.Section, line string) bool {
	for _, dir := range s.Directives {
		if strings.TrimSpace(dir.Raw) == line {
			return true
		}
	}
	return false
}

// insertAtTop places a directive before the first tag line, after any
// leading macro block, matching where descriptor generators put globals.
func insertAtTop(s *domain.Section, dir domain.Directive) {
	at := 0
	for i, existing := range s.Directives {
		if existing.Kind == domain.KindTag {
			break
		}
		if existing.Kind == domain.KindMacro {
			at = i + 1
		}
	}
	s.Directives = append(s.Directives, domain.Directive{})
	copy(s.Directives[at+1:], s.Directives[at:])
	s.Directives[at] = dir
}

func macroKey(line string) string {
	fields := strings.Fields(strings.TrimPrefix(line, "%"))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
