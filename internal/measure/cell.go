// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package measure

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/jeranaias/textanim/internal/animator"
	"github.com/jeranaias/textanim/internal/util"
)

// CellMeasurer measures text in terminal cells. One line is one row unless
// Typography.LineHeight says otherwise.
type CellMeasurer struct{}

// NewCellMeasurer returns a CellMeasurer.
func NewCellMeasurer() CellMeasurer { return CellMeasurer{} }

// Measure implements animator.Measurer.
func (CellMeasurer) Measure(text string, t animator.Typography) animator.Size {
	lines := CellLines(text, t)

	lineHeight := t.LineHeight
	if lineHeight <= 0 {
		lineHeight = 1
	}
	var width float64
	for _, l := range lines {
		w := float64(util.DisplayWidth(l))
		if t.LetterSpacing != 0 {
			w += t.LetterSpacing * float64(util.GraphemeLen(l))
		}
		if w > width {
			width = w
		}
	}
	return animator.Size{Width: width, Height: float64(len(lines)) * lineHeight}
}

// CellLines splits text into the rows it occupies under t. Word wrapping
// breaks at spaces and falls back to a hard break for words longer than
// the limit; break-all always hard-breaks.
func CellLines(text string, t animator.Typography) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	limit := int(t.MaxWidth)
	if limit > 0 && t.WhiteSpace != animator.WhiteSpaceNoWrap {
		if t.WordBreak == animator.WordBreakAll {
			text = wrap.String(text, limit)
		} else {
			text = wrap.String(wordwrap.String(text, limit), limit)
		}
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return lines
}
