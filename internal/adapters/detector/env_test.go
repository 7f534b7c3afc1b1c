package detector_test

import (
	"testing"

	"github.com/muesli/termenv"

	"go.trai.ch/respec/internal/adapters/detector"
)

func TestDetectEnvironment(t *testing.T) {
	tests := []struct {
		name    string
		ciValue string
	}{
		{name: "CI=true forces plain mode", ciValue: "true"},
		{name: "CI=1 forces plain mode", ciValue: "1"},
		{name: "CI=false does not force plain", ciValue: "false"},
		{name: "No CI env var", ciValue: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.ciValue != "" {
				t.Setenv("CI", tt.ciValue)
			}

			mode := detector.DetectEnvironment()

			// Test processes never have a TTY on stderr, so detection
			// lands on plain regardless of the CI variable.
			if mode != detector.ModePlain {
				t.Errorf("Expected ModePlain with CI=%q, got %v", tt.ciValue, mode)
			}
		})
	}
}

func TestResolveMode(t *testing.T) {
	tests := []struct {
		name         string
		autoDetected detector.OutputMode
		userFlag     string
		expected     detector.OutputMode
	}{
		{
			name:         "auto respects auto-detection (interactive)",
			autoDetected: detector.ModeInteractive,
			userFlag:     "auto",
			expected:     detector.ModeInteractive,
		},
		{
			name:         "auto respects auto-detection (plain)",
			autoDetected: detector.ModePlain,
			userFlag:     "auto",
			expected:     detector.ModePlain,
		},
		{
			name:         "empty flag respects auto-detection",
			autoDetected: detector.ModeInteractive,
			userFlag:     "",
			expected:     detector.ModeInteractive,
		},
		{
			name:         "interactive overrides auto-detection",
			autoDetected: detector.ModePlain,
			userFlag:     "interactive",
			expected:     detector.ModeInteractive,
		},
		{
			name:         "plain overrides auto-detection",
			autoDetected: detector.ModeInteractive,
			userFlag:     "plain",
			expected:     detector.ModePlain,
		},
		{
			name:         "ci is alias for plain",
			autoDetected: detector.ModeInteractive,
			userFlag:     "ci",
			expected:     detector.ModePlain,
		},
		{
			name:         "invalid flag respects auto-detection",
			autoDetected: detector.ModeInteractive,
			userFlag:     "invalid",
			expected:     detector.ModeInteractive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detector.ResolveMode(tt.autoDetected, tt.userFlag)
			if got != tt.expected {
				t.Errorf("ResolveMode(%v, %q) = %v, want %v",
					tt.autoDetected, tt.userFlag, got, tt.expected)
			}
		})
	}
}

func TestOutputMode_Profile(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	if got := detector.ModePlain.Profile()(); got != termenv.ANSI {
		t.Errorf("ModePlain profile = %v, want ANSI", got)
	}
	if got := detector.ModeAuto.Profile()(); got != termenv.ANSI {
		t.Errorf("ModeAuto profile = %v, want ANSI", got)
	}
}
