// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// UNICODE: every "character" in textanim is a grapheme cluster. Typing or
// erasing by byte or rune would split flags, ZWJ emoji and combining accents.

// Graphemes splits s into grapheme clusters.
func Graphemes(s string) []string {
	if s == "" {
		return nil
	}
	out := make([]string, 0, len(s))
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// GraphemeLen returns the number of grapheme clusters in s.
func GraphemeLen(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// PrefixGraphemes returns the first n grapheme clusters of s.
// n <= 0 yields "", n past the end yields s.
func PrefixGraphemes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	var sb strings.Builder
	g := uniseg.NewGraphemes(s)
	for i := 0; i < n && g.Next(); i++ {
		sb.WriteString(g.Str())
	}
	return sb.String()
}

// DisplayWidth returns the number of terminal cells s occupies.
// East Asian wide characters count as 2.
func DisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}
