// Package domain contains the core model for build-descriptor sanitization.
package domain

import "strings"

// DirectiveKind classifies a single descriptor line.
type DirectiveKind string

const (
	// KindTag is a preamble tag line such as "Name: foo" or "BuildRequires: bar".
	KindTag DirectiveKind = "tag"
	// KindMacro is a macro definition or conditional such as "%global x y".
	KindMacro DirectiveKind = "macro"
	// KindComment is a "#" comment line.
	KindComment DirectiveKind = "comment"
	// KindBlank is an empty line.
	KindBlank DirectiveKind = "blank"
	// KindPlain is any other line (shell fragments, file paths, prose).
	KindPlain DirectiveKind = "plain"
)

// Dependency tags recognized in the preamble and %package sections.
const (
	TagBuildRequires = "BuildRequires"
	TagRequires      = "Requires"
	TagRecommends    = "Recommends"
	TagSupplements   = "Supplements"
)

// Directive is one line of a descriptor. Raw always holds the exact
// original text so an untouched directive serializes byte-identically.
type Directive struct {
	Raw       string
	Kind      DirectiveKind
	Key       string // tag or macro name, empty for plain/blank/comment lines
	Qualifier string // scriptlet qualifier on a tag, "(post)" in "Requires(post):"
	Value     string
}

// IsDependency reports whether the directive declares a dependency.
func (d Directive) IsDependency() bool {
	switch d.Key {
	case TagBuildRequires, TagRequires, TagRecommends, TagSupplements:
		return d.Kind == KindTag
	default:
		return false
	}
}

// WithValue re-renders a tag directive with a new value, keeping the key
// and any scriptlet qualifier intact.
func (d Directive) WithValue(value string) Directive {
	nd := FormatTag(d.Key+d.Qualifier, value)
	nd.Key = d.Key
	nd.Qualifier = d.Qualifier
	return nd
}

// DependencyIdentifier returns the bare dependency name, stripping any
// version constraint ("cmake >= 3.16" -> "cmake").
func (d Directive) DependencyIdentifier() string {
	fields := strings.Fields(d.Value)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Section is a named block of directives. The preamble is a section with
// an empty Name and Header.
type Section struct {
	Name           string // "%build", "%files", "%package devel", ...
	Header         string // raw header line, empty for the preamble
	Directives     []Directive
	OrderSensitive bool
	// Opaque marks a section whose grammar is not recognized. Opaque
	// sections pass through the engine untouched.
	Opaque bool
}

// Append adds a raw-only directive to the section.
func (s *Section) Append(dir Directive) {
	s.Directives = append(s.Directives, dir)
}

// Descriptor is the structural representation of one package's build
// recipe. It is constructed by specfile.Parse, mutated in place by rules,
// and consumed by specfile.Serialize.
type Descriptor struct {
	Preamble *Section
	Sections []*Section

	// trailingNewline preserves whether the source text ended with "\n".
	TrailingNewline bool
}

// Section returns the first section whose full name matches exactly, or
// nil. Use SectionsNamed to match a keyword across subpackage variants.
func (d *Descriptor) Section(name string) *Section {
	for _, s := range d.Sections {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// SectionsNamed returns every section whose keyword equals name.
func (d *Descriptor) SectionsNamed(name string) []*Section {
	var out []*Section
	for _, s := range d.Sections {
		if s.Name == name || strings.HasPrefix(s.Name, name+" ") {
			out = append(out, s)
		}
	}
	return out
}

// Tag returns the value of the first preamble tag with the given key.
func (d *Descriptor) Tag(key string) (string, bool) {
	for _, dir := range d.Preamble.Directives {
		if dir.Kind == KindTag && dir.Key == key {
			return dir.Value, true
		}
	}
	return "", false
}

// SetTag rewrites the first preamble tag with the given key, or inserts a
// new tag line after the last existing tag when the key is absent.
// It reports whether the descriptor changed.
func (d *Descriptor) SetTag(key, value string) bool {
	for i, dir := range d.Preamble.Directives {
		if dir.Kind == KindTag && dir.Key == key {
			if dir.Value == value {
				return false
			}
			d.Preamble.Directives[i] = FormatTag(key, value)
			return true
		}
	}

	insertAt := 0
	for i, dir := range d.Preamble.Directives {
		if dir.Kind == KindTag {
			insertAt = i + 1
		}
	}
	d.Preamble.Directives = append(d.Preamble.Directives, Directive{})
	copy(d.Preamble.Directives[insertAt+1:], d.Preamble.Directives[insertAt:])
	d.Preamble.Directives[insertAt] = FormatTag(key, value)
	return true
}

// Macro returns the expansion of the first %global/%define with the given
// name in the preamble.
func (d *Descriptor) Macro(name string) (string, bool) {
	for _, dir := range d.Preamble.Directives {
		if dir.Kind == KindMacro && dir.Key == name {
			return dir.Value, true
		}
	}
	return "", false
}

// FormatTag renders a tag directive in the conventional aligned form used
// by descriptor generators ("Name:           value").
func FormatTag(key, value string) Directive {
	padding := 15 - len(key) - 1
	if padding < 1 {
		padding = 1
	}
	raw := key + ":" + strings.Repeat(" ", padding) + value
	return Directive{Raw: raw, Kind: KindTag, Key: key, Value: value}
}

// FormatMacro renders a %global macro definition directive.
func FormatMacro(name, expansion string) Directive {
	return Directive{
		Raw:   "%global " + name + " " + expansion,
		Kind:  KindMacro,
		Key:   name,
		Value: expansion,
	}
}
