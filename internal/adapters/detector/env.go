// Package detector selects how build progress is presented.
package detector

import (
	"os"
	"strings"

	"go.trai.ch/bake/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/term"
)

// OutputMode represents the rendering mode for the application.
type OutputMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto OutputMode = iota
	// ModeTUI forces the interactive TUI renderer.
	ModeTUI
	// ModeLinear forces the linear CI renderer.
	ModeLinear
)

// String returns the flag value of the mode.
func (m OutputMode) String() string {
	switch m {
	case ModeTUI:
		return "tui"
	case ModeLinear:
		return "linear"
	default:
		return "auto"
	}
}

// ParseMode converts a flag value to an OutputMode. "ci" is an alias of "linear".
func ParseMode(s string) (OutputMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ModeAuto, nil
	case "tui":
		return ModeTUI, nil
	case "linear", "ci":
		return ModeLinear, nil
	default:
		return ModeAuto, zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "unknown output mode"), "output", s)
	}
}

// DetectEnvironment returns the recommended output mode based on the environment.
// The TUI draws on stderr, so it is only chosen when stderr is a terminal outside CI.
func DetectEnvironment() OutputMode {
	isTTY := term.IsTerminal(int(os.Stderr.Fd())) //nolint:gosec // file descriptors fit in int
	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI {
		return ModeLinear
	}
	return ModeTUI
}

// ResolveMode applies the user's choice to the detected mode.
func ResolveMode(detected, requested OutputMode) OutputMode {
	if requested == ModeAuto {
		return detected
	}
	return requested
}
