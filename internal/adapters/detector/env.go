// Package detector provides environment detection for output mode selection.
package detector

import (
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"go.trai.ch/respec/internal/ui/output"
)

// OutputMode represents the rendering mode for reporter output.
type OutputMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto OutputMode = iota
	// ModeInteractive uses the full color capabilities of the attached terminal.
	ModeInteractive
	// ModePlain restricts output to basic ANSI for CI log collectors.
	ModePlain
)

// DetectEnvironment returns the recommended output mode based on the environment.
// It checks if stderr is a TTY and if CI environment variables are set.
func DetectEnvironment() OutputMode {
	isTTY := term.IsTerminal(int(os.Stderr.Fd()))

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI {
		return ModePlain
	}
	return ModeInteractive
}

// ResolveMode applies user override flag to auto-detection.
// userFlag should be one of: "auto", "interactive", "plain", "ci", or empty.
func ResolveMode(autoDetected OutputMode, userFlag string) OutputMode {
	switch userFlag {
	case "interactive":
		return ModeInteractive
	case "plain", "ci":
		return ModePlain
	case "auto", "":
		return autoDetected
	default:
		return autoDetected
	}
}

// Profile returns the termenv profile selector for the mode.
func (m OutputMode) Profile() func() termenv.Profile {
	if m == ModeInteractive {
		return output.Profile
	}
	return output.ProfileANSI
}
