package domain

import "go.trai.ch/zerr"

var (
	// ErrMalformedDescriptor is returned when raw text cannot be split into
	// the expected section grammar.
	ErrMalformedDescriptor = zerr.New("malformed descriptor")

	// ErrAmbiguousCorrection is returned when a rule matches but cannot
	// determine a unique correction.
	ErrAmbiguousCorrection = zerr.New("ambiguous correction")

	// ErrNonConvergentCorrection is returned when re-running the pipeline on
	// its own output does not reach a fixed point.
	ErrNonConvergentCorrection = zerr.New("correction did not converge")

	// ErrUnknownRuleClass is returned when a catalog entry names a class the
	// engine does not implement.
	ErrUnknownRuleClass = zerr.New("unknown rule class")

	// ErrDuplicateRuleID is returned when two catalog entries share an id.
	ErrDuplicateRuleID = zerr.New("duplicate rule id")

	// ErrInvalidDecision is returned when an override entry carries a
	// decision kind outside {omit, rename, pin, keep}.
	ErrInvalidDecision = zerr.New("invalid dependency decision")

	// ErrInvalidOverridePattern is returned when an override identifier
	// pattern does not compile.
	ErrInvalidOverridePattern = zerr.New("invalid override pattern")

	// ErrConfigReadFailed is returned when a configuration file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when a configuration file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrManifestNotFound is returned when the package manifest is missing.
	ErrManifestNotFound = zerr.New("package manifest not found")

	// ErrDescriptorNotFound is returned when a package directory holds no
	// usable descriptor.
	ErrDescriptorNotFound = zerr.New("no descriptor found")

	// ErrDescriptorAmbiguous is returned when a package directory holds
	// multiple candidate descriptors and no template.
	ErrDescriptorAmbiguous = zerr.New("multiple descriptors found")

	// ErrWorkspaceWriteFailed is returned when emitting a corrected
	// descriptor or report fails.
	ErrWorkspaceWriteFailed = zerr.New("failed to write workspace file")

	// ErrArchiveFailed is returned when source archive emission fails.
	ErrArchiveFailed = zerr.New("failed to create source archive")

	// ErrBatchFailed is returned by the application when at least one
	// package in a batch did not reach Corrected.
	ErrBatchFailed = zerr.New("batch finished with failures")

	// ErrNoPackages is returned when discovery yields an empty batch.
	ErrNoPackages = zerr.New("no packages to process")

	// ErrLedgerReadFailed is returned when a ledger entry cannot be read.
	ErrLedgerReadFailed = zerr.New("failed to read ledger entry")

	// ErrLedgerParseFailed is returned when a ledger entry is not valid JSON.
	ErrLedgerParseFailed = zerr.New("failed to parse ledger entry")

	// ErrLedgerWriteFailed is returned when a ledger entry cannot be stored.
	ErrLedgerWriteFailed = zerr.New("failed to write ledger entry")
)
