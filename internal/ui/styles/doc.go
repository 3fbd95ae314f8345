// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the textanim previewer.

# Color System (colors.go)

All palette colors are Lip Gloss AdaptiveColor values so the preview reads
on both light and dark terminals:

	Purple  - prefix and suffix text
	Cyan    - animated text (default)
	Emerald - success output
	Amber   - warnings
	Rose    - errors, glitch frames

# Theme System (theme.go)

Theme binds a lipgloss.Renderer to a detected (or forced) termenv color
profile. With NoColor the profile is Ascii and every style renders plain.

	theme := styles.NewTheme(styles.ThemeOptions{Name: "dark"})
	fmt.Println(theme.Prefix.Render("We build "))

# Animation Helpers (animations.go)

Easing curves for interpolating style transitions between frames, and
Blend, which fades a foreground color toward the background to draw
partial opacity in a terminal.
*/
package styles
