package domain

// Decision is the target-OS verdict for one upstream dependency.
type Decision string

const (
	// DecisionOmit drops the dependency line entirely.
	DecisionOmit Decision = "omit"
	// DecisionRename replaces the upstream identifier with a target one.
	DecisionRename Decision = "rename"
	// DecisionPin forces an exact version constraint.
	DecisionPin Decision = "pin"
	// DecisionKeep leaves the line untouched.
	DecisionKeep Decision = "keep"
	// DecisionUnresolved marks an identifier the table knows nothing
	// about; the conservative keep-default applies, flagged low-confidence.
	DecisionUnresolved Decision = "unresolved"
)

// Match strata for override lookups, most specific first.
const (
	StratumExactRelease = iota // exact identifier + exact OS release
	StratumExactFamily         // exact identifier + OS family wildcard
	StratumPattern             // identifier pattern + OS family wildcard
	StratumDefault             // no entry matched
)

// DependencyDecision is the result of one override-table lookup.
type DependencyDecision struct {
	Kind        Decision
	Replacement string // target identifier for rename
	Version     string // exact version for pin
	Stratum     int
}

// LowConfidence reports whether the decision came from the keep-default
// rather than an explicit table entry.
func (d DependencyDecision) LowConfidence() bool {
	return d.Stratum == StratumDefault
}

// DependencyEntry is one dependency line of a descriptor after resolution.
type DependencyEntry struct {
	Upstream string   `yaml:"upstream"`
	Resolved string   `yaml:"resolved,omitempty"`
	Decision Decision `yaml:"decision"`
}
