// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// suggest.go - Command suggestion for typo correction.

package cli

import (
	"strings"

	"github.com/jeranaias/textanim/internal/animator"
	"github.com/jeranaias/textanim/internal/config"
)

// validCommands is the list of all valid textanim commands and aliases.
var validCommands = []string{
	"play",
	"trace",
	"effects",
	"render",
	"config",
	"version",
	"help",
	// Aliases
	"preview", // play
	"html",    // render
}

// SuggestCommand returns a suggested command if the input is close to a valid command.
// Returns empty string if no good match is found.
// Uses Levenshtein distance with a threshold based on command length.
func SuggestCommand(input string) string {
	return closest(input, validCommands)
}

// SuggestEffect returns the known effect name closest to input.
func SuggestEffect(input string) string {
	names := make([]string, len(animator.EffectTypes))
	for i, e := range animator.EffectTypes {
		names[i] = string(e)
	}
	return closest(input, names)
}

// SuggestConfigKey returns the dotted config key closest to input.
func SuggestConfigKey(input string) string {
	return closest(input, config.GetAllKeys())
}

// closest returns the candidate within edit distance of input, or "".
func closest(input string, candidates []string) string {
	input = strings.ToLower(input)

	// Don't suggest for very short inputs (likely intentional)
	if len(input) < 2 {
		return ""
	}

	bestMatch := ""
	bestDistance := -1

	// Calculate maximum acceptable distance based on input length
	// For very short commands (<=3 chars): allow 1 edit
	// For short commands (4-5 chars): allow 2 edits (catches transpositions like "hepl" -> "help")
	// For medium commands (6-8 chars): allow 2 edits
	// For longer commands: allow 3 edits
	maxDistance := 1
	if len(input) >= 4 {
		maxDistance = 2
	}
	if len(input) > 8 {
		maxDistance = 3
	}

	for _, cmd := range candidates {
		distance := levenshteinDistance(input, cmd)

		// Skip exact matches (shouldn't happen if called correctly)
		if distance == 0 {
			return ""
		}

		// Update best match if this is closer
		if distance <= maxDistance && (bestDistance == -1 || distance < bestDistance) {
			bestDistance = distance
			bestMatch = cmd
		}
	}

	return bestMatch
}

// levenshteinDistance is the number of single-rune insertions, deletions
// or substitutions that turn a into b.
func levenshteinDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}

	row := make([]int, len(rb)+1)
	for j := range row {
		row[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		diag := row[0]
		row[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			next := min(row[j]+1, row[j-1]+1, diag+cost)
			diag, row[j] = row[j], next
		}
	}
	return row[len(rb)]
}
