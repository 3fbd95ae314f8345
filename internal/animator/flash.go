// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package animator

// FlashCount is the number of off/on flashes per transition.
const FlashCount = 3

// flashSwapStep is the 1-based step that swaps the text, mid-flash.
const flashSwapStep = FlashCount * 3 / 2

// FlashEffect toggles opacity FlashCount*2 times and swaps the text on
// step 4, while the text is briefly visible between two dark frames.
type FlashEffect struct{}

func (FlashEffect) Type() EffectType { return EffectFlash }

func (FlashEffect) Plan(t Transition) Sequence {
	steps := FlashCount * 2
	interval := stepInterval(t.Duration, steps)

	seq := make(Sequence, 0, steps)
	for k := 1; k <= steps; k++ {
		seq = append(seq, Step{Delay: interval, Do: func(c *Container) {
			if (k-1)%2 == 0 {
				c.SetStyle(PropOpacity, "0")
			} else {
				c.SetStyle(PropOpacity, "1")
			}
			if k == flashSwapStep {
				c.SetText(t.Next)
			}
			if k == steps {
				c.SetStyle(PropOpacity, "1")
			}
		}})
	}
	return seq
}
