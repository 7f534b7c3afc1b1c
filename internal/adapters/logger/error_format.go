package logger

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// messager describes an error that can report its own message without the
// chain. This matches the Message() method of zerr.Error (go.trai.ch/zerr
// v0.3.0+); errors that lack it fall back to their full Error() string.
type messager interface {
	Message() string
}

// metadater describes an error carrying structured key/value metadata,
// matching zerr.Error's Metadata() method.
type metadater interface {
	Metadata() map[string]any
}

// errorEntry is one level of an unwound error chain.
type errorEntry struct {
	Message  string
	Metadata map[string]any
}

// collectErrorEntries walks the error chain from the outside in, producing
// one entry per message level. Traversal stops at the first error that does
// not expose a bare message, which is recorded with its full Error() text.
func collectErrorEntries(err error) []errorEntry {
	var entries []errorEntry

	for err != nil {
		m, ok := err.(messager)
		if !ok {
			entries = append(entries, errorEntry{Message: err.Error()})
			break
		}

		entry := errorEntry{Message: m.Message()}
		if md, ok := err.(metadater); ok {
			entry.Metadata = md.Metadata()
		}
		entries = append(entries, entry)
		err = errors.Unwrap(err)
	}

	return entries
}

// formatErrorEntries renders collected entries hierarchically. The first
// entry is the main error; the rest appear under a "Caused by:" header.
// Metadata keys are emitted in sorted order for stable output.
func formatErrorEntries(entries []errorEntry) string {
	var lines []string

	for i, entry := range entries {
		msgLines := strings.Split(entry.Message, "\n")

		if i == 0 {
			lines = append(lines, "Error: "+msgLines[0])
			for _, line := range msgLines[1:] {
				lines = append(lines, "       "+line)
			}
			lines = appendMetadata(lines, entry.Metadata, "       ")
			continue
		}

		if i == 1 {
			lines = append(lines, "", "  Caused by:")
		}
		lines = append(lines, "    → "+msgLines[0])
		for _, line := range msgLines[1:] {
			lines = append(lines, "      "+line)
		}
		lines = appendMetadata(lines, entry.Metadata, "      ")
	}

	return strings.Join(lines, "\n")
}

func appendMetadata(lines []string, metadata map[string]any, indent string) []string {
	if len(metadata) == 0 {
		return lines
	}

	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s%s: %v", indent, k, metadata[k]))
	}
	return lines
}
