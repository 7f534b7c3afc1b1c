package specfile

import (
	"strings"

	"go.trai.ch/respec/internal/core/domain"
)

// Serialize renders a descriptor back to raw text. Directives are emitted
// from their Raw form, so any section the engine did not touch round-trips
// byte-identically.
func Serialize(d *domain.Descriptor) string {
	var b strings.Builder
	first := true

	writeLine := func(raw string) {
		if !first {
			b.WriteString("\n")
		}
		b.WriteString(raw)
		first = false
	}

	for _, dir := range d.Preamble.Directives {
		writeLine(dir.Raw)
	}
	for _, s := range d.Sections {
		writeLine(s.Header)
		for _, dir := range s.Directives {
			writeLine(dir.Raw)
		}
	}

	if d.TrailingNewline {
		b.WriteString("\n")
	}
	return b.String()
}
