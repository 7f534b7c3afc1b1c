package rules

import (
	"path"
	"regexp"
	"strings"

	"go.trai.ch/respec/internal/core/domain"
	"go.trai.ch/zerr"
)

// Patch actions supported by convention rules.
const (
	ActionSetTag         = "set-tag"
	ActionReplaceSection = "replace-section"
	ActionReplaceLine    = "replace-line"
	ActionAppend         = "append"
)

// Patch is one directive-level edit of a convention rule. Convention rules
// are pure data: adding a divergence for a new library is a catalog entry,
// not a code change.
type Patch struct {
	Section string   // "preamble", "%files", "%install", ...
	Action  string   // one of the Action constants
	Tag     string   // set-tag only
	Value   string   // set-tag value or replace-line replacement
	Match   string   // replace-line regexp
	Lines   []string // replace-section / append content

	matchRe *regexp.Regexp
}

// Compile validates and precompiles the patch.
func (p *Patch) Compile() error {
	switch p.Action {
	case ActionSetTag, ActionReplaceSection, ActionReplaceLine, ActionAppend:
	default:
		return zerr.With(zerr.New("unknown patch action"), "action", p.Action)
	}
	if p.Action == ActionReplaceLine {
		re, err := regexp.Compile(p.Match)
		if err != nil {
			return zerr.Wrap(err, "invalid patch match pattern")
		}
		p.matchRe = re
	}
	return nil
}

// ConventionRule applies packaging-convention patches for a library whose
// upstream structure is known to diverge on the target OS.
type ConventionRule struct {
	base
	pkgPattern string
	patches    []Patch
}

// NewConventionRule creates a convention-fix rule scoped to packages
// matching pkgPattern. Patches are compiled eagerly so a broken catalog
// entry fails at load time, not per package.
func NewConventionRule(id string, priority int, idempotent bool, pkgPattern string, patches []Patch) (*ConventionRule, error) {
	if _, err := path.Match(pkgPattern, "probe"); pkgPattern != "" && err != nil {
		return nil, zerr.With(zerr.Wrap(err, "invalid package pattern"), "rule", id)
	}
	compiled := make([]Patch, len(patches))
	copy(compiled, patches)
	for i := range compiled {
		if err := compiled[i].Compile(); err != nil {
			return nil, zerr.With(err, "rule", id)
		}
	}
	return &ConventionRule{
		base: base{
			id:         id,
			class:      domain.ClassConvention,
			priority:   priority,
			idempotent: idempotent,
		},
		pkgPattern: pkgPattern,
		patches:    compiled,
	}, nil
}

// Applies matches the rule's package pattern against the package name.
func (r *ConventionRule) Applies(meta domain.PackageMeta, _ *domain.Descriptor) bool {
	if r.pkgPattern == "" || r.pkgPattern == "*" {
		return true
	}
	if r.pkgPattern == meta.Name {
		return true
	}
	ok, err := path.Match(r.pkgPattern, meta.Name)
	return err == nil && ok
}

// Apply runs every patch in declaration order.
func (r *ConventionRule) Apply(meta domain.PackageMeta, d *domain.Descriptor) ([]domain.ChangeRecord, error) {
	var changes []domain.ChangeRecord

	for _, p := range r.patches {
		applied, err := r.applyPatch(p, meta, d)
		if err != nil {
			return nil, err
		}
		changes = append(changes, applied...)
	}
	return changes, nil
}

func (r *ConventionRule) applyPatch(p Patch, meta domain.PackageMeta, d *domain.Descriptor) ([]domain.ChangeRecord, error) {
	switch p.Action {
	case ActionSetTag:
		value := expandMeta(p.Value, meta)
		if d.SetTag(p.Tag, value) {
			return []domain.ChangeRecord{r.record("", "set "+p.Tag+" to "+value)}, nil
		}
		return nil, nil

	case ActionReplaceSection:
		return r.replaceSection(p, meta, d), nil

	case ActionReplaceLine:
		return r.replaceLines(p, meta, d), nil

	case ActionAppend:
		return r.appendLines(p, meta, d), nil
	}
	return nil, zerr.With(zerr.New("unknown patch action"), "action", p.Action)
}

func (r *ConventionRule) replaceSection(p Patch, meta domain.PackageMeta, d *domain.Descriptor) []domain.ChangeRecord {
	s := r.section(p, d)
	if s == nil {
		return nil
	}

	want := make([]domain.Directive, len(p.Lines))
	for i, line := range p.Lines {
		want[i] = domain.Directive{Raw: expandMeta(line, meta), Kind: domain.KindPlain}
	}
	if sameDirectives(s.Directives, want) {
		return nil
	}
	s.Directives = want
	return []domain.ChangeRecord{r.record(s.Name, "replaced section body")}
}

func (r *ConventionRule) replaceLines(p Patch, meta domain.PackageMeta, d *domain.Descriptor) []domain.ChangeRecord {
	s := r.section(p, d)
	if s == nil {
		return nil
	}

	var changes []domain.ChangeRecord
	replacement := expandMeta(p.Value, meta)
	for i, dir := range s.Directives {
		if !p.matchRe.MatchString(dir.Raw) {
			continue
		}
		rewritten := p.matchRe.ReplaceAllString(dir.Raw, replacement)
		if rewritten == dir.Raw {
			continue
		}
		s.Directives[i].Raw = rewritten
		changes = append(changes, r.record(s.Name, "rewrote "+strings.TrimSpace(rewritten)))
	}
	return changes
}

func (r *ConventionRule) appendLines(p Patch, meta domain.PackageMeta, d *domain.Descriptor) []domain.ChangeRecord {
	s := r.section(p, d)
	if s == nil {
		return nil
	}

	var changes []domain.ChangeRecord
	for _, line := range p.Lines {
		expanded := expandMeta(line, meta)
		if hasRawLine(s, expanded) {
			continue
		}
		s.Append(domain.Directive{Raw: expanded, Kind: domain.KindPlain})
		changes = append(changes, r.record(s.Name, "appended "+expanded))
	}
	return changes
}

// section resolves a patch target. "preamble" (or empty) addresses the
// preamble; otherwise the first section with the exact name wins.
func (r *ConventionRule) section(p Patch, d *domain.Descriptor) *domain.Section {
	if p.Section == "" || p.Section == "preamble" {
		return d.Preamble
	}
	s := d.Section(p.Section)
	if s == nil || s.Opaque {
		return nil
	}
	return s
}

func sameDirectives(a, b []domain.Directive) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Raw != b[i].Raw {
			return false
		}
	}
	return true
}
