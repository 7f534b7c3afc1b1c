package ports

import "go.trai.ch/respec/internal/core/domain"

// OverrideResolver answers skip/override lookups for dependency lines.
// Implementations are immutable after load so a batch can share one
// resolver across workers without locking.
//
//go:generate mockgen -source=overrides.go -destination=mocks/mock_overrides.go -package=mocks
type OverrideResolver interface {
	// Resolve returns the decision for the given upstream identifier and
	// target OS release. Lookup is longest-specific-match over three
	// strata; unmatched identifiers resolve to keep at StratumDefault.
	Resolve(identifier, osRelease string) domain.DependencyDecision
}
