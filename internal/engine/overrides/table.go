// Package overrides implements the skip/override table: the curated
// dependency decisions layered over the generic rule catalog.
package overrides

import (
	"path"
	"sort"
	"strings"

	"go.trai.ch/respec/internal/core/domain"
	"go.trai.ch/zerr"
)

// Entry is one curated override. Identifier is an exact upstream name or
// a glob pattern; OSRelease scopes the entry to an exact release
// ("rhel9"), a release family ("rhel", "rhel*") or every release ("").
type Entry struct {
	Identifier  string
	OSRelease   string
	Decision    domain.Decision
	Replacement string
	Version     string
}

// Table answers dependency lookups by longest-specific match: exact
// identifier scoped to the exact release beats exact identifier scoped
// to the family, which beats a pattern entry. Unmatched identifiers
// fall through to the conservative keep-default.
type Table struct {
	exact    map[string][]Entry
	patterns []Entry
}

// NewTable validates and indexes the entries.
func NewTable(entries []Entry) (*Table, error) {
	t := &Table{exact: make(map[string][]Entry)}

	for _, e := range entries {
		if err := validate(e); err != nil {
			return nil, err
		}
		if isPattern(e.Identifier) {
			t.patterns = append(t.patterns, e)
			continue
		}
		t.exact[e.Identifier] = append(t.exact[e.Identifier], e)
	}

	// Longer patterns are more specific; ties resolve lexicographically
	// so lookup order never depends on table file order.
	sort.SliceStable(t.patterns, func(i, j int) bool {
		a, b := t.patterns[i].Identifier, t.patterns[j].Identifier
		if len(a) != len(b) {
			return len(a) > len(b)
		}
		return a < b
	})
	for _, scoped := range t.exact {
		sort.SliceStable(scoped, func(i, j int) bool {
			a, b := scoped[i].OSRelease, scoped[j].OSRelease
			if len(a) != len(b) {
				return len(a) > len(b)
			}
			return a < b
		})
	}

	return t, nil
}

// Resolve looks the identifier up across the three strata.
func (t *Table) Resolve(identifier, osRelease string) domain.DependencyDecision {
	for _, e := range t.exact[identifier] {
		if e.OSRelease == osRelease {
			return decision(e, domain.StratumExactRelease)
		}
	}
	for _, e := range t.exact[identifier] {
		if releaseMatches(e.OSRelease, osRelease) {
			return decision(e, domain.StratumExactFamily)
		}
	}
	for _, e := range t.patterns {
		if !releaseMatches(e.OSRelease, osRelease) {
			continue
		}
		if ok, err := path.Match(e.Identifier, identifier); err == nil && ok {
			return decision(e, domain.StratumPattern)
		}
	}
	return domain.DependencyDecision{Kind: domain.DecisionKeep, Stratum: domain.StratumDefault}
}

func decision(e Entry, stratum int) domain.DependencyDecision {
	return domain.DependencyDecision{
		Kind:        e.Decision,
		Replacement: e.Replacement,
		Version:     e.Version,
		Stratum:     stratum,
	}
}

func validate(e Entry) error {
	if e.Identifier == "" {
		return zerr.With(domain.ErrInvalidOverridePattern, "cause", "empty identifier")
	}
	if _, err := path.Match(e.Identifier, "probe"); err != nil {
		return zerr.With(domain.ErrInvalidOverridePattern, "pattern", e.Identifier)
	}
	if e.OSRelease != "" {
		if _, err := path.Match(e.OSRelease, "probe"); err != nil {
			return zerr.With(domain.ErrInvalidOverridePattern, "pattern", e.OSRelease)
		}
	}

	switch e.Decision {
	case domain.DecisionOmit, domain.DecisionKeep:
	case domain.DecisionRename:
		if e.Replacement == "" {
			err := zerr.With(domain.ErrInvalidDecision, "identifier", e.Identifier)
			return zerr.With(err, "cause", "rename without replacement")
		}
	case domain.DecisionPin:
		if e.Version == "" {
			err := zerr.With(domain.ErrInvalidDecision, "identifier", e.Identifier)
			return zerr.With(err, "cause", "pin without version")
		}
	default:
		err := zerr.With(domain.ErrInvalidDecision, "identifier", e.Identifier)
		return zerr.With(err, "decision", string(e.Decision))
	}
	return nil
}

func isPattern(s string) bool {
	return strings.ContainsAny(s, "*?[")
}

// releaseMatches reports whether the entry scope covers the release:
// empty scope covers everything, a glob is matched against the release,
// and a bare family name covers every release of that family.
func releaseMatches(scope, osRelease string) bool {
	switch {
	case scope == "" || scope == "*":
		return true
	case scope == osRelease:
		return true
	}
	if ok, err := path.Match(scope, osRelease); err == nil && ok {
		return true
	}
	return scope == familyOf(osRelease)
}

// familyOf strips the version suffix from a release name ("rhel9" and
// "rhel9.4" both belong to "rhel").
func familyOf(release string) string {
	return strings.TrimRight(release, "0123456789.")
}
