package ports

import "go.trai.ch/respec/internal/core/domain"

// Ledger persists per-package sanitization results between runs.
//
//go:generate mockgen -source=ledger.go -destination=mocks/mock_ledger.go -package=mocks
type Ledger interface {
	// Get retrieves the last record for a package. It returns nil without
	// an error when no record exists.
	Get(root, pkg string) (*domain.SanitizeRecord, error)

	// Put stores the record for a package.
	Put(root string, rec domain.SanitizeRecord) error
}
