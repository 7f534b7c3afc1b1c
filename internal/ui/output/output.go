// Package output builds termenv outputs with the color profile rules shared
// by the reporter and the console log handler.
package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
)

// noColor reports whether color output is suppressed via the NO_COLOR
// convention.
func noColor() bool {
	return os.Getenv("NO_COLOR") != ""
}

// Profile detects the color profile of the current terminal. NO_COLOR wins
// over whatever the terminal advertises.
func Profile() termenv.Profile {
	if noColor() {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// ProfileANSI returns the 16-color profile used for CI and piped output,
// where terminal detection is unreliable. NO_COLOR still disables color
// entirely.
func ProfileANSI() termenv.Profile {
	if noColor() {
		return termenv.Ascii
	}
	return termenv.ANSI
}

// New returns a termenv output on w using the detected terminal profile.
// A nil writer falls back to stderr.
func New(w io.Writer, opts ...termenv.OutputOption) *termenv.Output {
	return NewWithProfile(w, Profile, opts...)
}

// NewWithProfile returns a termenv output on w using the profile selected
// by profileFn. A nil writer falls back to stderr.
func NewWithProfile(w io.Writer, profileFn func() termenv.Profile, opts ...termenv.OutputOption) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}

	opts = append(opts,
		termenv.WithProfile(profileFn()),
		termenv.WithTTY(true),
	)

	return termenv.NewOutput(w, opts...)
}
