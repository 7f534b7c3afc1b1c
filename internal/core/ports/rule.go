package ports

import "go.trai.ch/respec/internal/core/domain"

// Rule is one named, pure descriptor transformation.
//
// Apply must be deterministic and must not widen its own applicability
// through its prior output: re-running an idempotent rule on corrected
// input must be a no-op, which the pipeline validator enforces.
//
//go:generate mockgen -source=rule.go -destination=mocks/mock_rule.go -package=mocks
type Rule interface {
	// ID is the catalog identifier, unique across the catalog.
	ID() string
	// Class is the divergence category the rule belongs to; classes run in
	// the fixed order prune, macro, path, convention.
	Class() domain.RuleClass
	// Priority orders rules within a class; lower runs first, ties broken
	// by lexicographic ID.
	Priority() int
	// Idempotent declares whether re-application on corrected input is a
	// no-op. Idempotent rules may be driven to a fixed point; others run
	// exactly once per pass.
	Idempotent() bool
	// Applies reports whether the rule's pattern matches the descriptor.
	Applies(meta domain.PackageMeta, d *domain.Descriptor) bool
	// Apply mutates the descriptor and returns the applied-change records.
	// It returns domain.ErrAmbiguousCorrection when a unique correction
	// cannot be determined.
	Apply(meta domain.PackageMeta, d *domain.Descriptor) ([]domain.ChangeRecord, error)
}
