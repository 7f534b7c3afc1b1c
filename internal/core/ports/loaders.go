package ports

import "go.trai.ch/respec/internal/core/domain"

// ConfigLoader reads the workspace configuration file.
//
//go:generate mockgen -source=loaders.go -destination=mocks/mock_loaders.go -package=mocks
type ConfigLoader interface {
	// Load reads respec.yaml from the workspace root. A missing file is not
	// an error; defaults apply.
	Load(workspace string) (*domain.Config, error)
}

// CatalogLoader reads the rule catalog configuration and materializes the
// ordered rule set.
type CatalogLoader interface {
	Load(path string) ([]Rule, error)
}

// TableLoader reads the skip/override table.
type TableLoader interface {
	Load(path string) (OverrideResolver, error)
}
