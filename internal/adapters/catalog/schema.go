package catalog

// File represents the structure of a rule catalog YAML file.
type File struct {
	Version string    `yaml:"version"`
	Rules   []RuleDTO `yaml:"rules"`
}

// RuleDTO is one catalog entry. The class decides which of the payload
// blocks is read.
type RuleDTO struct {
	ID         string `yaml:"id"`
	Class      string `yaml:"class"`
	Priority   int    `yaml:"priority"`
	Idempotent *bool  `yaml:"idempotent"` // nil means the class default

	// prune
	Prune []string `yaml:"prune"`

	// macro
	Macros []MacroDTO `yaml:"macros"`
	Ensure []string   `yaml:"ensure"`

	// path
	Prefixes []PrefixDTO `yaml:"prefixes"`
	Exports  []string    `yaml:"exports"`

	// convention
	Package string     `yaml:"package"`
	Patches []PatchDTO `yaml:"patches"`
}

// MacroDTO is one macro renormalization target.
type MacroDTO struct {
	Name      string `yaml:"name"`
	Expansion string `yaml:"expansion"`
	Insert    bool   `yaml:"insert"`
}

// PrefixDTO is one install-prefix remap.
type PrefixDTO struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// PatchDTO is one convention patch.
type PatchDTO struct {
	Section string   `yaml:"section"`
	Action  string   `yaml:"action"`
	Tag     string   `yaml:"tag"`
	Value   string   `yaml:"value"`
	Match   string   `yaml:"match"`
	Lines   []string `yaml:"lines"`
}
