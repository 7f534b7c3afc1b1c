package rules

import (
	"go.trai.ch/respec/internal/core/domain"
	"go.trai.ch/respec/internal/core/ports"
	"go.trai.ch/zerr"
)

// maxFixedPointPasses bounds how often an idempotent rule may keep
// reporting changes before it is treated as non-convergent.
const maxFixedPointPasses = 4

// Catalog holds the active rule set in its canonical application order:
// class rank first, then declared priority, then rule id.
type Catalog struct {
	rules []ports.Rule
}

// NewCatalog validates and orders the given rules. Rule ids must be
// unique across the whole catalog.
func NewCatalog(rs []ports.Rule) (*Catalog, error) {
	seen := make(map[string]struct{}, len(rs))
	for _, r := range rs {
		if _, ok := seen[r.ID()]; ok {
			return nil, zerr.With(domain.ErrDuplicateRuleID, "rule", r.ID())
		}
		seen[r.ID()] = struct{}{}

		switch r.Class() {
		case domain.ClassPrune, domain.ClassMacro, domain.ClassPath, domain.ClassConvention:
		default:
			return nil, zerr.With(domain.ErrUnknownRuleClass, "rule", r.ID())
		}
	}

	ordered := make([]ports.Rule, len(rs))
	copy(ordered, rs)
	sortRules(ordered)
	return &Catalog{rules: ordered}, nil
}

// Rules returns every rule in application order.
func (c *Catalog) Rules() []ports.Rule {
	return c.rules
}

// Class returns the rules of one class, preserving catalog order.
func (c *Catalog) Class(class domain.RuleClass) []ports.Rule {
	var out []ports.Rule
	for _, r := range c.rules {
		if r.Class() == class {
			out = append(out, r)
		}
	}
	return out
}

// ApplyClass runs every applicable rule of the class against the
// descriptor. A rule declared idempotent is re-applied until it reports
// no further changes; a rule that keeps changing the descriptor past the
// pass bound fails the package as non-convergent.
func (c *Catalog) ApplyClass(class domain.RuleClass, meta domain.PackageMeta, d *domain.Descriptor) ([]domain.ChangeRecord, error) {
	var changes []domain.ChangeRecord

	for _, r := range c.rules {
		if r.Class() != class || !r.Applies(meta, d) {
			continue
		}

		applied, err := r.Apply(meta, d)
		if err != nil {
			return nil, zerr.With(err, "rule", r.ID())
		}
		changes = append(changes, applied...)

		if !r.Idempotent() || len(applied) == 0 {
			continue
		}
		settled, err := c.settle(r, meta, d)
		if err != nil {
			return nil, err
		}
		changes = append(changes, settled...)
	}
	return changes, nil
}

// settle drives an idempotent rule to its fixed point and returns the
// change records of the extra passes. The first application already
// happened; further applications must converge to zero changes within
// the pass bound.
func (c *Catalog) settle(r ports.Rule, meta domain.PackageMeta, d *domain.Descriptor) ([]domain.ChangeRecord, error) {
	var settled []domain.ChangeRecord
	for pass := 1; pass < maxFixedPointPasses; pass++ {
		applied, err := r.Apply(meta, d)
		if err != nil {
			return nil, zerr.With(err, "rule", r.ID())
		}
		if len(applied) == 0 {
			return settled, nil
		}
		settled = append(settled, applied...)
	}
	return nil, zerr.With(domain.ErrNonConvergentCorrection, "rule", r.ID())
}
