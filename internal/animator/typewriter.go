// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package animator

import (
	"strings"
	"time"

	"github.com/jeranaias/textanim/internal/util"
)

// Typewriter pacing. These are fixed; the effect's length follows the text
// length, not AnimationDuration.
const (
	TypewriterEraseInterval = 30 * time.Millisecond
	TypewriterTypeInterval  = 50 * time.Millisecond
)

// TypewriterEffect erases the current text one character at a time, then
// types the next one. The block carries ClassTyping throughout.
type TypewriterEffect struct{}

func (TypewriterEffect) Type() EffectType { return EffectTypewriter }

func (TypewriterEffect) Plan(t Transition) Sequence {
	cur := util.Graphemes(t.Current)
	next := util.Graphemes(t.Next)

	seq := make(Sequence, 0, len(cur)+len(next)+3)
	seq = append(seq, Step{Do: func(c *Container) { c.AddClass(ClassTyping) }})

	for i := len(cur) - 1; i >= 0; i-- {
		seq = append(seq, Step{Delay: TypewriterEraseInterval, Do: setText(strings.Join(cur[:i], ""))})
	}
	// The erase ticker fires once more on an empty string before handing
	// over to the typing ticker.
	seq = append(seq, Step{Delay: TypewriterEraseInterval})

	for i := 1; i <= len(next); i++ {
		seq = append(seq, Step{Delay: TypewriterTypeInterval, Do: setText(strings.Join(next[:i], ""))})
	}
	seq = append(seq, Step{
		Delay: TypewriterTypeInterval,
		Do:    func(c *Container) { c.RemoveClass(ClassTyping) },
	})
	return seq
}
