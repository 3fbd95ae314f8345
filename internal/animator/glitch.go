// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package animator

import (
	"math"
	"time"

	"github.com/jeranaias/textanim/internal/util"
)

// Glitch pacing.
const (
	GlitchSteps      = 15
	GlitchFadeStep   = 20 * time.Millisecond
	glitchFadeTarget = "0.7"
)

// GlitchEffect hard-clips the container, scrambles it with random glyphs,
// then fades briefly into the next text. It sets AttrText to the next text
// for the duration so stylesheets can draw offset copies of it.
type GlitchEffect struct{}

func (GlitchEffect) Type() EffectType { return EffectGlitch }

func (GlitchEffect) Plan(t Transition) Sequence {
	interval := stepInterval(t.Duration, GlitchSteps)
	scrambleLen := util.GraphemeLen(t.Current) - 4
	if scrambleLen < 1 {
		scrambleLen = 1
	}

	seq := make(Sequence, 0, GlitchSteps+4)
	seq = append(seq, Step{Do: func(c *Container) {
		c.SetAttr(AttrText, t.Next)
		clip := GlitchClip(c, t.Current, t.Next)
		c.SetStyle(PropDisplay, "inline-block")
		c.SetStyle(PropWidth, Px(clip.Width))
		c.SetStyle(PropHeight, Px(clip.Height))
		c.SetStyle(PropOverflow, "hidden")
		c.SetStyle(PropVerticalAlign, "top")
	}})
	for i := 0; i < GlitchSteps; i++ {
		seq = append(seq, Step{Delay: interval, Do: func(c *Container) {
			c.SetText(randomText(t.Rand, scrambleLen))
		}})
	}
	seq = append(seq,
		Step{Delay: interval, Do: func(c *Container) {
			c.SetStyle(PropTransition, "opacity "+msString(GlitchFadeStep)+" ease")
			c.SetStyle(PropOpacity, glitchFadeTarget)
		}},
		Step{Delay: GlitchFadeStep, Do: func(c *Container) {
			c.SetText(t.Next)
			c.SetStyle(PropOpacity, "1")
		}},
		Step{Delay: GlitchFadeStep, Do: func(c *Container) {
			c.RemoveAttr(AttrText)
			c.ClearStyle(PropTransition, PropDisplay, PropWidth, PropHeight, PropOverflow, PropVerticalAlign)
		}},
	)
	return seq
}

// GlitchClip is the fixed box the glitch effect renders into: wide enough
// for the current box and both texts on one line, tall enough for the
// current box and the next text.
func GlitchClip(c *Container, current, next string) Size {
	typ := c.Typography()
	typ.WhiteSpace = WhiteSpaceNoWrap
	typ.MaxWidth = 0

	box := c.Size()
	curNat := c.Natural(current, typ)
	nextNat := c.Natural(next, typ)
	return Size{
		Width:  math.Max(box.Width, math.Max(curNat.Width, nextNat.Width)),
		Height: math.Max(box.Height, nextNat.Height),
	}
}
