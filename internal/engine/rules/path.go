package rules

import (
	"regexp"
	"sort"
	"strings"

	"go.trai.ch/respec/internal/core/domain"
	"go.trai.ch/zerr"
)

// Markers guarding injected export blocks against repeated injection.
const (
	ExportMarkerBegin = "# BEGIN respec-env"
	ExportMarkerEnd   = "# END respec-env"
)

// prefixFlagRe matches directives that declare an install prefix.
var prefixFlagRe = regexp.MustCompile(
	`(-DCMAKE_INSTALL_PREFIX|-DAMENT_PREFIX_PATH|-DCMAKE_PREFIX_PATH|--prefix)(?:\s+|=)"?([^\s"]+)"?`)

// PrefixMap remaps one impersonated-OS install prefix to the target's.
type PrefixMap struct {
	From string
	To   string
}

// PathRule rewrites hard-coded install prefixes to the target OS
// convention and injects environment exports into script sections.
type PathRule struct {
	base
	prefixes []PrefixMap
	exports  []string // lines injected into %build/%install/%check
}

// NewPathRule creates an install-path correction rule. Prefix maps are
// applied longest-From first so nested prefixes resolve deterministically.
func NewPathRule(id string, priority int, prefixes []PrefixMap, exports []string) *PathRule {
	sorted := make([]PrefixMap, len(prefixes))
	copy(sorted, prefixes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].From) > len(sorted[j].From)
	})
	return &PathRule{
		base: base{
			id:         id,
			class:      domain.ClassPath,
			priority:   priority,
			idempotent: true,
		},
		prefixes: sorted,
		exports:  exports,
	}
}

// Applies reports whether any script or files section references a mapped
// prefix or is missing a configured export block.
func (r *PathRule) Applies(meta domain.PackageMeta, d *domain.Descriptor) bool {
	for _, s := range r.targetSections(d) {
		for _, dir := range s.Directives {
			if r.rewrite(dir.Raw, meta) != dir.Raw {
				return true
			}
		}
	}
	if len(r.exports) > 0 {
		for _, s := range r.exportSections(d) {
			if !hasRawLine(s, ExportMarkerBegin) {
				return true
			}
		}
	}
	// Conflicting declarations must surface as a failure, not a skip.
	return r.checkPrefixConsensus(d) != nil
}

// Apply remaps prefixes across script and files sections, then verifies
// the descriptor ends up with a single install prefix. Two surviving,
// conflicting prefix declarations cannot be corrected uniquely and fail
// with domain.ErrAmbiguousCorrection naming both directives.
func (r *PathRule) Apply(meta domain.PackageMeta, d *domain.Descriptor) ([]domain.ChangeRecord, error) {
	var changes []domain.ChangeRecord

	for _, s := range r.targetSections(d) {
		for i, dir := range s.Directives {
			rewritten := r.rewrite(dir.Raw, meta)
			if rewritten == dir.Raw {
				continue
			}
			s.Directives[i].Raw = rewritten
			changes = append(changes, r.record(s.Name, "remapped prefix in "+strings.TrimSpace(rewritten)))
		}
	}

	if err := r.checkPrefixConsensus(d); err != nil {
		return nil, err
	}

	for _, s := range r.exportSections(d) {
		if len(r.exports) == 0 || hasRawLine(s, ExportMarkerBegin) {
			continue
		}
		block := make([]domain.Directive, 0, len(r.exports)+2)
		block = append(block, domain.Directive{Raw: ExportMarkerBegin, Kind: domain.KindComment})
		for _, line := range r.exports {
			block = append(block, domain.Directive{Raw: expandMeta(line, meta), Kind: domain.KindPlain})
		}
		block = append(block, domain.Directive{Raw: ExportMarkerEnd, Kind: domain.KindComment})
		s.Directives = append(block, s.Directives...)
		changes = append(changes, r.record(s.Name, "injected environment exports"))
	}

	return changes, nil
}

func (r *PathRule) rewrite(raw string, meta domain.PackageMeta) string {
	for _, p := range r.prefixes {
		raw = strings.ReplaceAll(raw, p.From, expandMeta(p.To, meta))
	}
	return raw
}

// checkPrefixConsensus collects every surviving install-prefix declaration
// and fails when more than one distinct prefix remains.
func (r *PathRule) checkPrefixConsensus(d *domain.Descriptor) error {
	seen := map[string]string{} // prefix -> first declaring directive
	for _, s := range r.targetSections(d) {
		for _, dir := range s.Directives {
			for _, m := range prefixFlagRe.FindAllStringSubmatch(dir.Raw, -1) {
				prefix := m[2]
				if _, ok := seen[prefix]; !ok {
					seen[prefix] = strings.TrimSpace(dir.Raw)
				}
			}
		}
	}
	if len(seen) <= 1 {
		return nil
	}

	conflicts := make([]string, 0, len(seen))
	for _, dir := range seen {
		conflicts = append(conflicts, dir)
	}
	sort.Strings(conflicts)

	err := zerr.With(domain.ErrAmbiguousCorrection, "cause", "conflicting install prefixes")
	return zerr.With(err, "directives", strings.Join(conflicts, " | "))
}

func (r *PathRule) targetSections(d *domain.Descriptor) []*domain.Section {
	var out []*domain.Section
	for _, s := range d.Sections {
		if s.Opaque {
			continue
		}
		switch sectionKeywordOf(s.Name) {
		case "%build", "%install", "%check", "%files":
			out = append(out, s)
		}
	}
	return out
}

func (r *PathRule) exportSections(d *domain.Descriptor) []*domain.Section {
	var out []*domain.Section
	for _, s := range d.Sections {
		if s.Opaque {
			continue
		}
		switch sectionKeywordOf(s.Name) {
		case "%build", "%install", "%check":
			out = append(out, s)
		}
	}
	return out
}

func sectionKeywordOf(name string) string {
	if i := strings.IndexByte(name, ' '); i >= 0 {
		return name[:i]
	}
	return name
}
