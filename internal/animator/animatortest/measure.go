// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package animatortest

import (
	"github.com/jeranaias/textanim/internal/animator"
	"github.com/jeranaias/textanim/internal/util"
)

// Default metrics for FixedMeasurer.
const (
	CharWidth  = 10
	LineHeight = 20
)

// FixedMeasurer reports CharWidth per grapheme on a single line of
// LineHeight, wrapping onto more lines when MaxWidth is set and the text
// is not nowrap. Empty text still occupies one line.
func FixedMeasurer() animator.Measurer {
	return animator.MeasureFunc(func(text string, t animator.Typography) animator.Size {
		n := util.GraphemeLen(text)
		w := float64(n * CharWidth)
		lines := 1
		if t.MaxWidth > 0 && t.WhiteSpace != animator.WhiteSpaceNoWrap && w > t.MaxWidth {
			perLine := int(t.MaxWidth) / CharWidth
			if perLine < 1 {
				perLine = 1
			}
			lines = (n + perLine - 1) / perLine
			w = float64(perLine * CharWidth)
		}
		return animator.Size{Width: w, Height: float64(lines * LineHeight)}
	})
}

// Recorder collects container mutations for assertions.
type Recorder struct {
	Mutations []animator.Mutation
}

// Attach subscribes the recorder to c.
func (r *Recorder) Attach(c *animator.Container) *Recorder {
	c.OnMutation(func(m animator.Mutation) {
		r.Mutations = append(r.Mutations, m)
	})
	return r
}

// Texts returns every text value written, in order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, m := range r.Mutations {
		if m.Kind == animator.MutationText {
			out = append(out, m.Value)
		}
	}
	return out
}

// Styles returns every style mutation.
func (r *Recorder) Styles() []animator.Mutation {
	var out []animator.Mutation
	for _, m := range r.Mutations {
		if m.Kind == animator.MutationStyle {
			out = append(out, m)
		}
	}
	return out
}

// Reset forgets recorded mutations.
func (r *Recorder) Reset() { r.Mutations = nil }
