// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package animator

import (
	"strings"
	"time"
)

// EffectType names a transition effect.
type EffectType string

const (
	EffectTypewriter EffectType = "typewriter"
	EffectMatrix     EffectType = "matrix"
	EffectFade       EffectType = "fade"
	EffectFlash      EffectType = "flash"
	EffectBurst      EffectType = "burst"
	EffectGlitch     EffectType = "glitch"
)

// EffectTypes lists the built-in effects in editor order.
var EffectTypes = []EffectType{
	EffectTypewriter,
	EffectMatrix,
	EffectFade,
	EffectFlash,
	EffectBurst,
	EffectGlitch,
}

// Defaults applied when a duration is missing or not positive.
const (
	DefaultEffect            = EffectTypewriter
	DefaultAnimationDuration = 1000 * time.Millisecond
	DefaultDisplayDuration   = 2000 * time.Millisecond
)

// ParseEffectType normalizes case and surrounding space. It does not
// validate: unknown names are kept so the controller can fall back to a
// plain swap.
func ParseEffectType(s string) EffectType {
	return EffectType(strings.ToLower(strings.TrimSpace(s)))
}

// Known reports whether e is one of the built-in effects.
func (e EffectType) Known() bool {
	for _, t := range EffectTypes {
		if t == e {
			return true
		}
	}
	return false
}

func (e EffectType) String() string { return string(e) }

// Config is the immutable per-instance animation configuration.
type Config struct {
	TextStrings       []string
	AnimationType     EffectType
	AnimationDuration time.Duration
	DisplayDuration   time.Duration
}

// Period is the length of one full cycle: display plus transition.
func (c Config) Period() time.Duration {
	return c.DisplayDuration + c.AnimationDuration
}

// SimplePeriod is the cycle length in reduced-motion mode.
func (c Config) SimplePeriod() time.Duration {
	return c.DisplayDuration
}

// withDefaults substitutes defaults for non-positive durations and copies
// the string list so later edits by the caller cannot leak in.
func (c Config) withDefaults() Config {
	if c.AnimationDuration <= 0 {
		c.AnimationDuration = DefaultAnimationDuration
	}
	if c.DisplayDuration <= 0 {
		c.DisplayDuration = DefaultDisplayDuration
	}
	c.TextStrings = append([]string(nil), c.TextStrings...)
	return c
}
