// Package style defines the terminal palette and status glyphs used by the
// reporter and the console log handler.
package style

import "github.com/charmbracelet/lipgloss"

// Palette. Graphite carries neutral text, the remaining colors map to
// correction outcomes.
var (
	Graphite = lipgloss.Color("#5C6470")
	Moss     = lipgloss.Color("#2F9E57")
	Brick    = lipgloss.Color("#C0392B")
	Amber    = lipgloss.Color("#E8A013")
)

// Status glyphs. The plain-output reporter prints these without color, so
// they must stay meaningful on their own.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
)
