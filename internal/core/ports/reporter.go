package ports

import (
	"time"

	"go.trai.ch/respec/internal/core/domain"
)

// Reporter is the abstraction for batch progress output.
// It decouples the engine from presentation so the same event stream can
// drive CI logs or richer frontends.
//
//go:generate mockgen -source=reporter.go -destination=mocks/mock_reporter.go -package=mocks
type Reporter interface {
	// OnBatchStart is called once before any package runs.
	OnBatchStart(packages []string, osRelease, arch string)

	// OnPackageStart is called when a package's pipeline span begins.
	OnPackageStart(spanID, name string, startTime time.Time)

	// OnPackageComplete is called when a package's pipeline span ends.
	// err is nil unless the package failed.
	OnPackageComplete(spanID string, endTime time.Time, err error)

	// OnOutcome delivers the full audit record for a finished package.
	OnOutcome(outcome *domain.Outcome)

	// OnSummary is called once with the batch counts.
	OnSummary(summary domain.Summary)
}
