// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"math"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

// =============================================================================
// EASING
// =============================================================================

// EasingFunc is a function that maps progress (0-1) to output (0-1).
type EasingFunc func(t float64) float64

// EaseLinear - constant speed
func EaseLinear(t float64) float64 {
	return t
}

// EaseInQuad - accelerating from zero
func EaseInQuad(t float64) float64 {
	return t * t
}

// EaseOutQuad - decelerating to zero
func EaseOutQuad(t float64) float64 {
	return t * (2 - t)
}

// EaseInOutQuad - acceleration until halfway, then deceleration.
// Closest quadratic to the CSS "ease" keyword.
func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

// EaseOutCubic - decelerating to zero (smoother)
func EaseOutCubic(t float64) float64 {
	t--
	return t*t*t + 1
}

// Progress is the eased fraction of d elapsed, clamped to [0, 1]. A zero
// duration is complete immediately.
func Progress(elapsed, d time.Duration, ease EasingFunc) float64 {
	if d <= 0 || elapsed >= d {
		return 1
	}
	if elapsed <= 0 {
		return 0
	}
	if ease == nil {
		ease = EaseLinear
	}
	return ease(float64(elapsed) / float64(d))
}

// Lerp interpolates between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// =============================================================================
// OPACITY
// =============================================================================

// Blend returns fg faded toward bg: opacity 1 is fg, 0 is bg. Colors are
// mixed in Lab space so mid-fade frames do not go muddy. Unparseable
// colors return fg unchanged.
func Blend(fgHex, bgHex string, opacity float64) string {
	fg, err := colorful.Hex(fgHex)
	if err != nil {
		return fgHex
	}
	bg, err := colorful.Hex(bgHex)
	if err != nil {
		return fgHex
	}
	opacity = math.Max(0, math.Min(1, opacity))
	return bg.BlendLab(fg, opacity).Clamped().Hex()
}

// =============================================================================
// TYPING
// =============================================================================

// TypingCursor characters for blinking cursor
var TypingCursor = []string{"_", " "}

// CursorBlinkRate is the rate at which the cursor blinks
var CursorBlinkRate = 530 * time.Millisecond

// CursorFrame returns the cursor glyph shown at elapsed.
func CursorFrame(elapsed time.Duration) string {
	if elapsed < 0 {
		elapsed = 0
	}
	return TypingCursor[int(elapsed/CursorBlinkRate)%len(TypingCursor)]
}
