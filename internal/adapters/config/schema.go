package config

// File represents the structure of the respec.yaml configuration file.
type File struct {
	Version    string `yaml:"version"`
	OSRelease  string `yaml:"os_release"`
	Arch       string `yaml:"arch"`
	NamePrefix string `yaml:"name_prefix"`

	Manifest  string `yaml:"manifest"`
	Catalog   string `yaml:"catalog"`
	Overrides string `yaml:"overrides"`
	Report    string `yaml:"report"`

	Jobs           int  `yaml:"jobs"`
	TimeoutSeconds int  `yaml:"timeout_seconds"`
	KeepTemplate   bool `yaml:"keep_template"`
	Archive        bool `yaml:"archive"`
}
