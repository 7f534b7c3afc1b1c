// Package rules implements the transformation rule catalog: the ordered,
// composable corrections applied to descriptors generated under OS
// impersonation.
package rules

import (
	"sort"
	"strings"

	"go.trai.ch/respec/internal/core/domain"
	"go.trai.ch/respec/internal/core/ports"
)

// base carries the catalog identity shared by every rule kind.
type base struct {
	id         string
	class      domain.RuleClass
	priority   int
	idempotent bool
}

func (b base) ID() string              { return b.id }
func (b base) Class() domain.RuleClass { return b.class }
func (b base) Priority() int           { return b.priority }
func (b base) Idempotent() bool        { return b.idempotent }

// record builds a change record attributed to the rule.
func (b base) record(section, detail string) domain.ChangeRecord {
	return domain.ChangeRecord{
		Rule:    b.id,
		Class:   b.class,
		Section: sectionLabel(section),
		Detail:  detail,
	}
}

func sectionLabel(name string) string {
	if name == "" {
		return "preamble"
	}
	return name
}

// expandMeta substitutes package-metadata placeholders in catalog values.
func expandMeta(s string, meta domain.PackageMeta) string {
	r := strings.NewReplacer(
		"${pkg}", meta.Name,
		"${pkg_hyphen}", strings.ReplaceAll(meta.Name, "_", "-"),
		"${version}", meta.Version,
		"${os_release}", meta.OSRelease,
		"${arch}", meta.Arch,
	)
	return r.Replace(s)
}

// sortRules orders a rule set deterministically: class rank, then
// priority, then id. Catalog file order is never load-bearing.
func sortRules(rs []ports.Rule) {
	sort.SliceStable(rs, func(i, j int) bool {
		ci, cj := domain.ClassOrder(rs[i].Class()), domain.ClassOrder(rs[j].Class())
		if ci != cj {
			return ci < cj
		}
		if rs[i].Priority() != rs[j].Priority() {
			return rs[i].Priority() < rs[j].Priority()
		}
		return rs[i].ID() < rs[j].ID()
	})
}
