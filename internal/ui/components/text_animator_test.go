// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"bytes"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/textanim/internal/animator"
	"github.com/jeranaias/textanim/internal/ui/styles"
	"github.com/jeranaias/textanim/internal/widget"
)

const ms = time.Millisecond

func plainTheme() *styles.Theme {
	return styles.NewTheme(styles.ThemeOptions{Name: "dark", NoColor: true, Output: &bytes.Buffer{}})
}

func testBlock(effect animator.EffectType, items ...string) widget.Block {
	return widget.Block{
		Name:   "test",
		Layout: widget.LayoutRow,
		Config: animator.Config{
			TextStrings:       items,
			AnimationType:     effect,
			AnimationDuration: 1000 * ms,
			DisplayDuration:   2000 * ms,
		},
	}
}

func newTestAnimator(t *testing.T, b widget.Block, reduced bool) (*TextAnimator, *clock.Mock) {
	t.Helper()
	clk := clock.NewMock()
	a := NewTextAnimator(TextAnimatorOptions{
		Block:         b,
		Theme:         plainTheme(),
		Clock:         clk,
		ReducedMotion: reduced,
		Rand:          rand.New(rand.NewPCG(1, 2)),
	})
	require.NoError(t, a.Err())
	t.Cleanup(a.Stop)
	return a, clk
}

// step advances the mock clock and runs whatever became due.
func step(a *TextAnimator, clk *clock.Mock, d time.Duration) {
	clk.Add(d)
	a.Scheduler().FireDue()
}

func TestTextAnimator_FadeView(t *testing.T) {
	a, clk := newTestAnimator(t, testBlock(animator.EffectFade, "Hello", "World"), false)
	assert.Contains(t, a.View(), "Hello")
	assert.NotNil(t, a.Init())

	step(a, clk, 3000*ms)
	require.True(t, a.Controller().IsAnimating())
	assert.InDelta(t, 1, a.Intensity(), 1e-9, "opacity eases out from fully visible")

	step(a, clk, 400*ms)
	assert.Less(t, a.Intensity(), 0.5)
	assert.NotContains(t, a.View(), "Hello")

	step(a, clk, 100*ms)
	assert.Equal(t, "World", a.Container().Text())
	assert.NotContains(t, a.View(), "World", "faded in from zero")

	step(a, clk, 500*ms)
	assert.False(t, a.Controller().IsAnimating())
	assert.InDelta(t, 1, a.Intensity(), 1e-9)
	assert.Contains(t, a.View(), "World")
}

func TestTextAnimator_LayoutLockHoldsWidth(t *testing.T) {
	a, clk := newTestAnimator(t, testBlock(animator.EffectTypewriter, "Hi", "Hello world"), false)
	assert.Equal(t, 2, lipgloss.Width(a.View()))

	step(a, clk, 3000*ms)
	step(a, clk, 30*ms)
	assert.Equal(t, "H", a.Container().Text())
	assert.Equal(t, 11, lipgloss.Width(a.View()), "locked to the wider item")
	assert.Equal(t, 1, lipgloss.Height(a.View()))
	assert.Contains(t, a.View(), "H"+styles.CursorFrame(3030*ms), "typing cursor")

	step(a, clk, 2*time.Second)
	assert.Equal(t, "Hello world", a.Container().Text())
	assert.False(t, a.Controller().IsAnimating())
	assert.Equal(t, 11, lipgloss.Width(a.View()))
}

func TestTextAnimator_GlitchClipsToEnvelope(t *testing.T) {
	a, clk := newTestAnimator(t, testBlock(animator.EffectGlitch, "Hello world", "Hi"), false)

	step(a, clk, 3000*ms)
	step(a, clk, 70*ms)
	w, ok := cells(a.Container().Styles()[animator.PropWidth])
	require.True(t, ok)
	assert.Equal(t, 11, w)
	assert.Equal(t, w, lipgloss.Width(a.View()))
	assert.NotEqual(t, "Hello world", a.Container().Text())
}

func TestTextAnimator_ReducedMotionToggle(t *testing.T) {
	a, clk := newTestAnimator(t, testBlock(animator.EffectMatrix, "one", "two"), false)
	require.NotNil(t, a.SetReducedMotion(true))
	assert.True(t, a.ReducedMotion())
	assert.Equal(t, "one", a.Container().Text())

	step(a, clk, 2000*ms)
	assert.Equal(t, "two", a.Container().Text())
	assert.False(t, a.Controller().IsAnimating())
	assert.Equal(t, 3, lipgloss.Width(a.View()))
}

func TestTextAnimator_StopDropsTimers(t *testing.T) {
	a, clk := newTestAnimator(t, testBlock(animator.EffectFlash, "a", "b"), false)
	step(a, clk, 3100*ms)
	require.True(t, a.Controller().IsAnimating())

	a.Stop()
	assert.Equal(t, animator.StateStopped, a.Controller().State())
	assert.Equal(t, 0, a.Scheduler().Pending())
	assert.Empty(t, a.Container().Styles())
	assert.Nil(t, a.Update(TimerFiredMsg{Scheduler: a.Scheduler().ID(), Timer: 1}))
}

func TestTextAnimator_ColumnLayout(t *testing.T) {
	b := testBlock(animator.EffectFade, "middle")
	b.Prefix = "top"
	b.Suffix = "bottom"
	b.Layout = widget.LayoutColumn
	a, _ := newTestAnimator(t, b, false)

	lines := strings.Split(a.View(), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "top", strings.TrimSpace(lines[0]))
	assert.Equal(t, "middle", strings.TrimSpace(lines[1]))

	b.Layout = widget.LayoutRow
	row, _ := newTestAnimator(t, b, false)
	assert.Equal(t, "topmiddlebottom", row.View())
}

func TestTextAnimator_WrapsToTerminalWidth(t *testing.T) {
	b := testBlock(animator.EffectFade, "alpha beta gamma")
	b.Prefix = "> "
	a, _ := newTestAnimator(t, b, false)

	a.SetTerminalWidth(12)
	assert.Equal(t, float64(10), a.Container().AvailableWidth())
	assert.Equal(t, 2, lipgloss.Height(a.View()))
}

func TestTextAnimator_FrameMessages(t *testing.T) {
	a, clk := newTestAnimator(t, testBlock(animator.EffectFade, "x", "y"), false)
	assert.Nil(t, a.Update(FrameMsg{Animator: a.ID()}), "idle widgets do not redraw")

	clk.Add(3000 * ms)
	due, ok := a.Scheduler().NextDue()
	require.True(t, ok)
	assert.Equal(t, clk.Now(), due)

	require.NotNil(t, a.Update(TimerFiredMsg{Scheduler: a.Scheduler().ID(), Timer: 1}))
	assert.Nil(t, a.Update(FrameMsg{Animator: uuid.New()}), "addressed to another widget")

	clk.Add(100 * ms)
	assert.NotNil(t, a.Update(FrameMsg{Animator: a.ID()}), "fade still running")

	step(a, clk, 2*time.Second)
	assert.False(t, a.Controller().IsAnimating())
	assert.Nil(t, a.Update(FrameMsg{Animator: a.ID()}))
}

func TestInitializeFailureRenders(t *testing.T) {
	a := NewTextAnimator(TextAnimatorOptions{
		Block: widget.Block{Name: "empty"},
		Theme: plainTheme(),
		Clock: clock.NewMock(),
	})
	assert.ErrorIs(t, a.Err(), animator.ErrNoTextStrings)
	assert.Contains(t, a.View(), "empty: ")
	a.Stop()
}

func TestParseTransition(t *testing.T) {
	got := parseTransition("transform 500ms ease, opacity 0.5s ease")
	assert.Equal(t, 500*ms, got["transform"])
	assert.Equal(t, 500*ms, got["opacity"])
	assert.Empty(t, parseTransition("none"))
}

func TestParseTransform(t *testing.T) {
	tests := []struct {
		in          string
		scale, rotY float64
	}{
		{animator.BurstOutTransform, 1.2, 90},
		{animator.BurstIdentityTransform, 1, 0},
		{"rotateY(-45deg)", 1, -45},
		{"", 1, 0},
	}
	for _, tc := range tests {
		s, r := parseTransform(tc.in)
		assert.Equal(t, tc.scale, s, tc.in)
		assert.Equal(t, tc.rotY, r, tc.in)
	}
}

func TestTween(t *testing.T) {
	start := time.Unix(0, 0)
	tw := settled(1).retarget(0, start, 100*ms)
	assert.True(t, tw.running(start.Add(50*ms)))
	assert.InDelta(t, 0.5, tw.at(start.Add(50*ms)), 1e-9)
	assert.False(t, tw.running(start.Add(100*ms)))
	assert.Equal(t, 0.0, tw.at(start.Add(time.Second)))

	instant := settled(0).retarget(1, start, 0)
	assert.Equal(t, 1.0, instant.at(start))
	assert.False(t, instant.running(start))
}
