// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ThemeOptions selects how a Theme is built.
type ThemeOptions struct {
	// Name is "dark", "light", or "" to detect from the terminal.
	Name string

	// NoColor forces the Ascii profile.
	NoColor bool

	// Accent overrides the animated text color (#rrggbb).
	Accent string

	// Output is the terminal the theme renders for; nil means stdout.
	Output io.Writer
}

// Theme holds the styles for the previewer.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	ColorProfile termenv.Profile
	Renderer     *lipgloss.Renderer

	// Colors the animated text blends between, as hex
	TextHex       string
	BackgroundHex string

	Prefix   lipgloss.Style
	Suffix   lipgloss.Style
	Animated lipgloss.Style
	Glitch   lipgloss.Style
	Cursor   lipgloss.Style
	Help     lipgloss.Style
	Label    lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
	Success  lipgloss.Style
}

// NewTheme creates a theme for opts.
func NewTheme(opts ThemeOptions) *Theme {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	r := lipgloss.NewRenderer(out)

	profile := r.ColorProfile()
	if opts.NoColor {
		profile = termenv.Ascii
	}
	r.SetColorProfile(profile)

	isDark := true
	switch strings.ToLower(opts.Name) {
	case "light":
		isDark = false
	case "dark":
	default:
		isDark = r.HasDarkBackground()
	}
	r.SetHasDarkBackground(isDark)

	t := &Theme{
		IsDark:        isDark,
		ColorProfile:  profile,
		Renderer:      r,
		TextHex:       Pick(Cyan, isDark),
		BackgroundHex: Pick(Surface, isDark),
	}
	if opts.Accent != "" {
		t.TextHex = opts.Accent
	}
	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	ns := t.Renderer.NewStyle

	t.Prefix = ns().Foreground(Purple)
	t.Suffix = ns().Foreground(Purple)
	t.Animated = ns().Foreground(lipgloss.Color(t.TextHex))
	t.Glitch = ns().Foreground(Rose).Bold(true)
	t.Cursor = ns().Foreground(TextMuted)
	t.Help = ns().Foreground(TextMuted)
	t.Label = ns().Foreground(TextSecondary)
	t.Error = ns().Foreground(Rose).Bold(true)
	t.Warning = ns().Foreground(Amber)
	t.Success = ns().Foreground(Emerald)
}

// Plain reports whether the theme renders without color.
func (t *Theme) Plain() bool {
	return t.ColorProfile == termenv.Ascii
}
