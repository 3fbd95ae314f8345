// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package widget

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/jeranaias/textanim/internal/animator"
)

// Layout is the direction prefix, animated text and suffix are laid out in.
type Layout string

const (
	LayoutRow    Layout = "row"
	LayoutColumn Layout = "column"
)

// ParseLayout accepts "row" and "column" case-insensitively. Anything else
// is reported as an error and row is returned.
func ParseLayout(s string) (Layout, error) {
	switch Layout(strings.ToLower(strings.TrimSpace(s))) {
	case LayoutRow, "":
		return LayoutRow, nil
	case LayoutColumn:
		return LayoutColumn, nil
	}
	return LayoutRow, fmt.Errorf("unknown layout %q (want row or column)", s)
}

// Placeholder is shown when a block has no usable items.
const Placeholder = "Add text items in the editor"

// TemplateItems are the items a freshly inserted block starts with.
var TemplateItems = []string{"Your text here", "Add more text", "For animation"}

// Base block class names.
const (
	ClassBlock   = "text-animator"
	ClassWrapper = "wp-block-telex-block-text-animator"
)

// Block is one animator widget.
type Block struct {
	Name   string
	Prefix string
	Suffix string
	Layout Layout
	Config animator.Config
}

// Template returns the block the editor inserts by default.
func Template() Block {
	return Block{
		Name:   "template",
		Layout: LayoutRow,
		Config: animator.Config{
			TextStrings:       append([]string(nil), TemplateItems...),
			AnimationType:     animator.DefaultEffect,
			AnimationDuration: animator.DefaultAnimationDuration,
			DisplayDuration:   animator.DefaultDisplayDuration,
		},
	}
}

// Classes returns the block's class list: the base class, the effect
// modifier and the layout modifier.
func (b Block) Classes() []string {
	layout := b.Layout
	if layout == "" {
		layout = LayoutRow
	}
	effect := b.Config.AnimationType
	if effect == "" {
		effect = animator.DefaultEffect
	}
	return []string{
		ClassBlock,
		ClassBlock + "--" + string(effect),
		ClassBlock + "--layout-" + string(layout),
	}
}

// NormalizeItems trims every item, applies NFC normalization and drops
// empty ones. When nothing is left the result is the single Placeholder.
func NormalizeItems(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		it = strings.TrimSpace(norm.NFC.String(it))
		if it != "" {
			out = append(out, it)
		}
	}
	if len(out) == 0 {
		return []string{Placeholder}
	}
	return out
}
