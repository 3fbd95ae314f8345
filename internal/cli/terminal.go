// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// terminal.go - Terminal detection for textanim commands.

package cli

import (
	"os"
	"sync"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// IsStdoutTTY returns true if stdout is a terminal.
func IsStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// IsStdinTTY returns true if stdin is a terminal.
func IsStdinTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// stdinIsTerminal is what play checks before taking over the screen.
var stdinIsTerminal = IsStdinTTY

// Terminal widths used for wrapping.
const (
	DefaultTerminalWidth = 80
	MinTerminalWidth     = 40
)

// GetTerminalWidth returns the width of stdout, DefaultTerminalWidth when
// it is not a terminal, and never less than MinTerminalWidth.
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return DefaultTerminalWidth
	}
	return max(width, MinTerminalWidth)
}

// colorProfile honors NO_COLOR and CLICOLOR_FORCE through termenv, plus
// FORCE_COLOR for piped output.
var colorProfile = sync.OnceValue(func() termenv.Profile {
	out := termenv.NewOutput(os.Stdout)
	p := out.EnvColorProfile()
	if p == termenv.Ascii && os.Getenv("FORCE_COLOR") != "" && !out.EnvNoColor() {
		return termenv.ANSI256
	}
	return p
})

// ColorsEnabled returns true if colored output should be used.
func ColorsEnabled() bool {
	return GetColorProfile() != termenv.Ascii
}

// GetColorProfile returns the color profile for stdout.
func GetColorProfile() termenv.Profile {
	return colorProfile()
}
