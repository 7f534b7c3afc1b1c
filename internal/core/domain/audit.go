package domain

import (
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
)

// RuleClass partitions rules by divergence category. Classes run in the
// order they are declared here; within a class rules run by ascending
// priority, ties broken by rule id.
type RuleClass string

const (
	// ClassPrune removes build-tool directives absent on the target by design.
	ClassPrune RuleClass = "prune"
	// ClassMacro renormalizes macro definitions whose expansion diverges.
	ClassMacro RuleClass = "macro"
	// ClassPath remaps hard-coded install prefixes to the target convention.
	ClassPath RuleClass = "path"
	// ClassConvention applies per-library packaging-convention patches.
	ClassConvention RuleClass = "convention"
	// ClassOverride marks changes decided by the skip/override table
	// rather than a catalog rule. It is not a catalog class.
	ClassOverride RuleClass = "override"
)

// ClassOrder returns the fixed execution rank of a rule class.
func ClassOrder(c RuleClass) int {
	switch c {
	case ClassPrune:
		return 0
	case ClassMacro:
		return 1
	case ClassPath:
		return 2
	case ClassConvention:
		return 3
	default:
		return 4
	}
}

// PackageState is the pipeline state of one package.
type PackageState string

const (
	StateParsed             PackageState = "Parsed"
	StatePruned             PackageState = "Pruned"
	StateRenormalized       PackageState = "Renormalized"
	StatePathCorrected      PackageState = "PathCorrected"
	StateDependencyResolved PackageState = "DependencyResolved"
	StateValidated          PackageState = "Validated"
	StateCorrected          PackageState = "Corrected"
	StateFailed             PackageState = "Failed"
)

// FailureReason names the divergence class that stopped a package.
type FailureReason string

const (
	ReasonMalformedDescriptor     FailureReason = "MalformedDescriptor"
	ReasonAmbiguousCorrection     FailureReason = "AmbiguousCorrection"
	ReasonNonConvergentCorrection FailureReason = "NonConvergentCorrection"
	ReasonTimeout                 FailureReason = "Timeout"
	ReasonInternal                FailureReason = "Internal"
)

// ChangeRecord is one applied-change audit entry.
type ChangeRecord struct {
	Rule    string    `yaml:"rule"`
	Class   RuleClass `yaml:"class"`
	Section string    `yaml:"section"`
	Detail  string    `yaml:"detail"`
}

// Failure describes why a package did not reach Corrected.
type Failure struct {
	Rule   string        `yaml:"rule,omitempty"` // originating rule id, if any
	Reason FailureReason `yaml:"reason"`
	Detail string        `yaml:"detail"`
}

// Outcome is the per-package audit record.
type Outcome struct {
	Package       string            `yaml:"package"`
	Version       string            `yaml:"version,omitempty"`
	State         PackageState      `yaml:"state"`
	Changes       []ChangeRecord    `yaml:"changes,omitempty"`
	Dependencies  []DependencyEntry `yaml:"dependencies,omitempty"`
	LowConfidence []string          `yaml:"low_confidence,omitempty"`
	Failure       *Failure          `yaml:"failure,omitempty"`
	Digest        string            `yaml:"digest,omitempty"` // xxhash of the corrected text

	// Corrected holds the validated descriptor text. It is deliberately
	// excluded from the audit record; the text goes to the workspace, the
	// record goes to the report.
	Corrected string `yaml:"-"`
}

// IsCorrected reports whether the package reached a validated fixed point.
func (o *Outcome) IsCorrected() bool {
	return o.State == StateCorrected
}

// TextDigest returns the content digest used to identify descriptor text.
func TextDigest(text string) string {
	return strconv.FormatUint(xxhash.Sum64String(text), 16)
}

// SanitizeRecord is the persisted result of a package's last successful
// correction.
type SanitizeRecord struct {
	Package     string    `json:"package"`
	Digest      string    `json:"digest"` // TextDigest of the corrected text
	CorrectedAt time.Time `json:"corrected_at"`
}

// Summary aggregates a batch run.
type Summary struct {
	Total     int            `yaml:"total"`
	Corrected int            `yaml:"corrected"`
	Failed    int            `yaml:"failed"`
	ByReason  map[string]int `yaml:"by_reason,omitempty"`
}

// Summarize folds a set of outcomes into batch counts.
func Summarize(outcomes map[string]*Outcome) Summary {
	s := Summary{Total: len(outcomes), ByReason: make(map[string]int)}
	for _, o := range outcomes {
		if o.IsCorrected() {
			s.Corrected++
			continue
		}
		s.Failed++
		if o.Failure != nil {
			s.ByReason[string(o.Failure.Reason)]++
		}
	}
	if len(s.ByReason) == 0 {
		s.ByReason = nil
	}
	return s
}
