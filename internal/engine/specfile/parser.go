// Package specfile implements the descriptor model: parsing raw
// build-descriptor text into a structural representation and serializing
// it back. The pair is lossless: serialize(parse(x)) == x for any valid x
// that has not been structurally mutated.
package specfile

import (
	"regexp"
	"strings"

	"go.trai.ch/respec/internal/core/domain"
	"go.trai.ch/zerr"
)

var tagRe = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9_]*)(\([^)]*\))?:\s*(.*)$`)

// sectionKeywords are the %-headers that open a modeled section, mapped to
// whether directive order inside them is semantically significant.
var sectionKeywords = map[string]bool{
	"description": true,
	"package":     false,
	"prep":        true,
	"build":       true,
	"install":     true,
	"check":       true,
	"files":       false,
	"changelog":   true,
	"pre":         true,
	"post":        true,
	"preun":       true,
	"postun":      true,
}

// opaqueKeywords open sections the engine does not model. They are
// preserved verbatim and never touched by rules.
var opaqueKeywords = map[string]struct{}{
	"generate_buildrequires": {},
	"triggerin":              {},
	"triggerun":              {},
	"triggerpostun":          {},
	"filetriggerin":          {},
	"filetriggerun":          {},
	"sepolicy":               {},
	"sourcelist":             {},
	"patchlist":              {},
}

// macroKeywords are %-directives that live inside the preamble or a
// section body rather than opening a new section.
var macroKeywords = map[string]struct{}{
	"global":        {},
	"define":        {},
	"undefine":      {},
	"bcond_with":    {},
	"bcond_without": {},
	"if":            {},
	"ifarch":        {},
	"ifnarch":       {},
	"ifos":          {},
	"elif":          {},
	"else":          {},
	"endif":         {},
	"include":       {},
}

var macroWordRe = regexp.MustCompile(`^%\{?([A-Za-z_][A-Za-z0-9_]*)`)

// Parse splits raw descriptor text into the section grammar. It fails with
// domain.ErrMalformedDescriptor when the text cannot be split: empty
// input, a preamble line that is neither tag, macro, comment nor blank, or
// unbalanced conditionals.
func Parse(raw string) (*domain.Descriptor, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, zerr.With(domain.ErrMalformedDescriptor, "cause", "empty input")
	}

	lines := strings.Split(raw, "\n")
	trailing := false
	if lines[len(lines)-1] == "" {
		trailing = true
		lines = lines[:len(lines)-1]
	}

	d := &domain.Descriptor{
		Preamble:        &domain.Section{},
		TrailingNewline: trailing,
	}
	current := d.Preamble
	condDepth := 0

	for i, line := range lines {
		if word, args, ok := sectionHeader(line); ok {
			current = newSection(word, args, line)
			d.Sections = append(d.Sections, current)
			continue
		}

		dir, err := classify(line, current)
		if err != nil {
			err = zerr.With(err, "line", i+1)
			return nil, zerr.With(err, "text", line)
		}

		switch keyword(dir) {
		case "if", "ifarch", "ifnarch", "ifos":
			condDepth++
		case "endif":
			condDepth--
			if condDepth < 0 {
				err := zerr.With(domain.ErrMalformedDescriptor, "cause", "unbalanced %endif")
				return nil, zerr.With(err, "line", i+1)
			}
		}

		current.Append(dir)
	}

	if condDepth != 0 {
		return nil, zerr.With(domain.ErrMalformedDescriptor, "cause", "unterminated %if")
	}

	return d, nil
}

// sectionHeader reports whether the line opens a modeled or opaque section.
func sectionHeader(line string) (word, args string, ok bool) {
	if !strings.HasPrefix(line, "%") {
		return "", "", false
	}
	rest := line[1:]
	fields := strings.SplitN(rest, " ", 2)
	word = fields[0]
	if len(fields) == 2 {
		args = strings.TrimSpace(fields[1])
	}

	if _, known := sectionKeywords[word]; known {
		return word, args, true
	}
	if _, opaque := opaqueKeywords[word]; opaque {
		return word, args, true
	}
	return "", "", false
}

func newSection(word, args, header string) *domain.Section {
	name := "%" + word
	if args != "" {
		name += " " + args
	}
	_, opaque := opaqueKeywords[word]
	return &domain.Section{
		Name:           name,
		Header:         header,
		OrderSensitive: sectionKeywords[word],
		Opaque:         opaque,
	}
}

// classify turns one body line into a directive. Preamble lines must match
// the tag/macro/comment/blank grammar; section bodies are free-form.
func classify(line string, section *domain.Section) (domain.Directive, error) {
	trimmed := strings.TrimSpace(line)

	switch {
	case trimmed == "":
		return domain.Directive{Raw: line, Kind: domain.KindBlank}, nil
	case strings.HasPrefix(trimmed, "#"):
		return domain.Directive{Raw: line, Kind: domain.KindComment}, nil
	case strings.HasPrefix(trimmed, "%"):
		return classifyMacro(line, trimmed), nil
	}

	if m := tagRe.FindStringSubmatch(line); m != nil && tagContext(section) {
		return domain.Directive{
			Raw:       line,
			Kind:      domain.KindTag,
			Key:       m[1],
			Qualifier: m[2],
			Value:     strings.TrimSpace(m[3]),
		}, nil
	}

	if section.Name == "" {
		// Preamble accepts nothing else.
		return domain.Directive{}, zerr.With(domain.ErrMalformedDescriptor, "cause", "unrecognized preamble line")
	}

	return domain.Directive{Raw: line, Kind: domain.KindPlain}, nil
}

// tagContext reports whether tag lines carry meaning in the section: the
// preamble and %package subpackage blocks declare tags, script bodies do not.
func tagContext(section *domain.Section) bool {
	return section.Name == "" || strings.HasPrefix(section.Name, "%package")
}

func classifyMacro(line, trimmed string) domain.Directive {
	m := macroWordRe.FindStringSubmatch(trimmed)
	if m == nil {
		return domain.Directive{Raw: line, Kind: domain.KindPlain}
	}
	word := m[1]

	dir := domain.Directive{Raw: line, Kind: domain.KindMacro, Key: word}
	if word == "global" || word == "define" {
		// "%global name expansion"
		fields := strings.Fields(trimmed)
		if len(fields) >= 2 {
			dir.Key = fields[1]
		}
		if len(fields) >= 3 {
			dir.Value = strings.Join(fields[2:], " ")
		}
	}
	return dir
}

// keyword returns the %-directive word for conditional tracking.
func keyword(dir domain.Directive) string {
	if dir.Kind != domain.KindMacro {
		return ""
	}
	m := macroWordRe.FindStringSubmatch(strings.TrimSpace(dir.Raw))
	if m == nil {
		return ""
	}
	return m[1]
}
