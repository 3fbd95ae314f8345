// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// effects.go - The effects command.

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/textanim/internal/animator"
)

// effectDescriptions summarizes what each transition does on screen.
var effectDescriptions = map[animator.EffectType]string{
	animator.EffectTypewriter: "Deletes the current text one character at a time, then types the next with a blinking cursor.",
	animator.EffectMatrix:     "Scrambles into random glyphs and resolves the next text left to right.",
	animator.EffectFade:       "Fades out, swaps the text, and fades back in.",
	animator.EffectFlash:      "Blinks opacity rapidly and swaps the text at the midpoint.",
	animator.EffectBurst:      "Shrinks and fades out, then pops the next text in with an overshoot.",
	animator.EffectGlitch:     "Flickers between random glyph strings in a fixed-size box before settling.",
}

// EffectInfo is one row of the effects listing.
type EffectInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Default     bool   `json:"default,omitempty"`
}

// Effects lists the built-in effects in editor order.
func Effects() []EffectInfo {
	out := make([]EffectInfo, 0, len(animator.EffectTypes))
	for _, t := range animator.EffectTypes {
		out = append(out, EffectInfo{
			Name:        t.String(),
			Description: effectDescriptions[t],
			Default:     t == animator.DefaultEffect,
		})
	}
	return out
}

// effectsMarkdown renders the listing as a markdown document.
func effectsMarkdown() string {
	var sb strings.Builder
	sb.WriteString("# Effects\n\n")
	for _, e := range Effects() {
		name := "**" + e.Name + "**"
		if e.Default {
			name += " (default)"
		}
		fmt.Fprintf(&sb, "- %s: %s\n", name, e.Description)
	}
	sb.WriteString("\nUnknown names swap the text with no transition. ")
	sb.WriteString("With reduced motion every effect becomes a plain swap.\n")
	return sb.String()
}

// HandleEffects describes the available effects.
func HandleEffects(args Args, w io.Writer) error {
	if args.JSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(Effects())
	}

	md := effectsMarkdown()

	opts := []glamour.TermRendererOption{glamour.WithWordWrap(GetTerminalWidth())}
	if colorOutput(w, args) {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle("notty"))
	}
	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		_, err = io.WriteString(w, md)
		return err
	}
	out, err := renderer.Render(md)
	if err != nil {
		out = md
	}
	_, err = io.WriteString(w, out)
	return err
}
