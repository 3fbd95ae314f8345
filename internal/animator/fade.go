// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package animator

import (
	"fmt"
	"time"
)

// halves splits the animation into two phases, each at least one step long.
func halves(d time.Duration) time.Duration {
	return stepInterval(d, 2)
}

func msString(d time.Duration) string {
	return fmt.Sprintf("%dms", d.Milliseconds())
}

// FadeEffect fades out over the first half, swaps, and fades in over the
// second half. Hosts interpolate opacity using the transition property.
type FadeEffect struct{}

func (FadeEffect) Type() EffectType { return EffectFade }

func (FadeEffect) Plan(t Transition) Sequence {
	half := halves(t.Duration)
	return Sequence{
		{Do: func(c *Container) {
			c.SetStyle(PropTransition, "opacity "+msString(half)+" ease")
			c.SetStyle(PropOpacity, "0")
		}},
		{Delay: half, Do: func(c *Container) {
			c.SetText(t.Next)
			c.SetStyle(PropOpacity, "1")
		}},
		{Delay: half},
	}
}

// Burst transforms.
const (
	BurstOutTransform      = "scale(1.2) rotateY(90deg)"
	BurstIdentityTransform = "scale(1) rotateY(0deg)"
)

// BurstEffect scales and rotates the text away, swaps at the midpoint, and
// returns to identity.
type BurstEffect struct{}

func (BurstEffect) Type() EffectType { return EffectBurst }

func (BurstEffect) Plan(t Transition) Sequence {
	half := halves(t.Duration)
	return Sequence{
		{Do: func(c *Container) {
			c.SetStyle(PropTransition, fmt.Sprintf("transform %s ease, opacity %s ease", msString(half), msString(half)))
			c.SetStyle(PropTransform, BurstOutTransform)
			c.SetStyle(PropOpacity, "0")
		}},
		{Delay: half, Do: func(c *Container) {
			c.SetText(t.Next)
			c.SetStyle(PropTransform, BurstIdentityTransform)
			c.SetStyle(PropOpacity, "1")
		}},
		{Delay: half},
	}
}
