// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package animator_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/textanim/internal/animator"
	"github.com/jeranaias/textanim/internal/animator/animatortest"
)

const ms = time.Millisecond

type harness struct {
	sched     *animatortest.Scheduler
	container *animator.Container
	rec       *animatortest.Recorder
	ctrl      *animator.Controller
}

func newHarness(t *testing.T, cfg animator.Config, opts ...animator.Option) *harness {
	t.Helper()
	h := &harness{
		sched:     animatortest.NewScheduler(),
		container: animator.NewContainer("", animatortest.FixedMeasurer()),
	}
	h.rec = (&animatortest.Recorder{}).Attach(h.container)
	opts = append([]animator.Option{animator.WithScheduler(h.sched), animator.WithRand(seeded())}, opts...)
	ctrl, err := animator.Initialize(cfg, h.container, opts...)
	require.NoError(t, err)
	h.ctrl = ctrl
	t.Cleanup(ctrl.Stop)
	return h
}

func (h *harness) style(p animator.Property) string {
	v, _ := h.container.Style(p)
	return v
}

// =============================================================================
// INITIALIZE
// =============================================================================

func TestInitialize_RejectsEmptyInput(t *testing.T) {
	sched := animatortest.NewScheduler()
	c := animator.NewContainer("untouched", nil)
	rec := (&animatortest.Recorder{}).Attach(c)

	ctrl, err := animator.Initialize(animator.Config{}, c, animator.WithScheduler(sched))
	assert.Nil(t, ctrl)
	assert.ErrorIs(t, err, animator.ErrNoTextStrings)
	assert.Empty(t, rec.Mutations)
	assert.Equal(t, 0, sched.Pending())
	assert.Equal(t, "untouched", c.Text())

	_, err = animator.Initialize(animator.Config{TextStrings: []string{"a"}}, nil, animator.WithScheduler(sched))
	assert.ErrorIs(t, err, animator.ErrNoContainer)
	assert.Equal(t, 0, sched.Pending())
}

func TestInitialize_RendersFirstStringAndAppliesDefaults(t *testing.T) {
	input := []string{"Hello", "World"}
	h := newHarness(t, animator.Config{TextStrings: input, AnimationType: animator.EffectFade})

	assert.Equal(t, "Hello", h.container.Text())
	assert.Equal(t, animator.StateShowing, h.ctrl.State())
	assert.Equal(t, 0, h.ctrl.Index())

	cfg := h.ctrl.Config()
	assert.Equal(t, animator.DefaultAnimationDuration, cfg.AnimationDuration)
	assert.Equal(t, animator.DefaultDisplayDuration, cfg.DisplayDuration)

	input[1] = "Changed"
	assert.Equal(t, []string{"Hello", "World"}, h.ctrl.Config().TextStrings)
}

// =============================================================================
// FULL-MOTION CYCLE
// =============================================================================

func TestController_TypewriterTimeline(t *testing.T) {
	h := newHarness(t, animator.Config{
		TextStrings:       []string{"Hello", "World"},
		AnimationType:     animator.EffectTypewriter,
		AnimationDuration: 1000 * ms,
		DisplayDuration:   500 * ms,
	})

	h.sched.Advance(1499 * ms)
	assert.Equal(t, "Hello", h.container.Text())
	assert.False(t, h.ctrl.IsAnimating())

	h.sched.Advance(1 * ms)
	assert.True(t, h.ctrl.IsAnimating())
	assert.Equal(t, animator.StateTransitioning, h.ctrl.State())
	assert.Equal(t, 1, h.ctrl.Index())
	assert.True(t, h.container.HasClass(animator.ClassAnimating))
	assert.True(t, h.container.HasClass(animator.ClassTyping))
	assert.Equal(t, "inline-block", h.style(animator.PropDisplay))
	assert.Equal(t, "top", h.style(animator.PropVerticalAlign))

	h.rec.Reset()
	h.sched.Advance(150 * ms)
	assert.Equal(t, []string{"Hell", "Hel", "He", "H", ""}, h.rec.Texts())

	h.sched.Advance(280 * ms) // t=1930
	assert.Equal(t, "World", h.container.Text())
	assert.True(t, h.ctrl.IsAnimating(), "final typing step still pending")

	h.sched.Advance(50 * ms) // t=1980
	assert.False(t, h.ctrl.IsAnimating())
	assert.Equal(t, animator.StateShowing, h.ctrl.State())
	assert.Equal(t, 1, h.ctrl.Completed())
	assert.Empty(t, h.container.Styles())
	assert.Empty(t, h.container.Classes())

	// next transition is on the original 1500ms grid
	h.sched.Advance(1019 * ms)
	assert.False(t, h.ctrl.IsAnimating())
	h.sched.Advance(1 * ms)
	assert.True(t, h.ctrl.IsAnimating())
	assert.Equal(t, 0, h.ctrl.Index())
}

func TestController_DropsTicksWhileAnimating(t *testing.T) {
	h := newHarness(t, animator.Config{
		TextStrings:       []string{"aaaaaaaaaa", "b"},
		AnimationType:     animator.EffectTypewriter,
		AnimationDuration: 10 * ms,
		DisplayDuration:   10 * ms,
	})

	// the typewriter ignores the 10ms budget: 10 erases, handoff, one
	// typed glyph and the final step end at 20+300+30+50+50 = 450ms
	h.sched.Advance(449 * ms)
	assert.True(t, h.ctrl.IsAnimating())
	assert.Equal(t, 1, h.ctrl.Index(), "dropped ticks do not advance the index")

	h.sched.Advance(1 * ms)
	assert.False(t, h.ctrl.IsAnimating())
	assert.Equal(t, 1, h.ctrl.Completed())
	assert.Equal(t, "b", h.container.Text())

	h.sched.Advance(10 * ms)
	assert.True(t, h.ctrl.IsAnimating())
	assert.Equal(t, 0, h.ctrl.Index())
}

func TestController_LayoutLockEnvelope(t *testing.T) {
	cfg := animator.Config{
		TextStrings:       []string{"Hi", "Hello there"},
		AnimationType:     animator.EffectFade,
		AnimationDuration: 100 * ms,
		DisplayDuration:   100 * ms,
	}

	t.Run("unconstrained", func(t *testing.T) {
		h := newHarness(t, cfg)
		h.sched.Advance(200 * ms)
		require.True(t, h.ctrl.IsAnimating())
		assert.Equal(t, "110px", h.style(animator.PropMinWidth))
		assert.Equal(t, "20px", h.style(animator.PropMinHeight))
	})

	t.Run("wraps within parent", func(t *testing.T) {
		h := newHarness(t, cfg)
		h.container.SetAvailableWidth(60)
		h.sched.Advance(200 * ms)
		require.True(t, h.ctrl.IsAnimating())
		assert.Equal(t, "60px", h.style(animator.PropMinWidth))
		assert.Equal(t, "40px", h.style(animator.PropMinHeight))
	})

	t.Run("shrinking keeps current extent", func(t *testing.T) {
		h := newHarness(t, animator.Config{
			TextStrings:       []string{"Hello there", "Hi"},
			AnimationType:     animator.EffectFade,
			AnimationDuration: 100 * ms,
			DisplayDuration:   100 * ms,
		})
		h.sched.Advance(200 * ms)
		assert.Equal(t, "110px", h.style(animator.PropMinWidth))
	})
}

func TestController_GlitchClipsToEnvelope(t *testing.T) {
	h := newHarness(t, animator.Config{
		TextStrings:       []string{"Hello", "Hi"},
		AnimationType:     animator.EffectGlitch,
		AnimationDuration: 150 * ms,
		DisplayDuration:   100 * ms,
	})
	h.sched.Advance(250 * ms)

	assert.Equal(t, "50px", h.style(animator.PropWidth))
	assert.Equal(t, "hidden", h.style(animator.PropOverflow))
	attr, _ := h.container.Attr(animator.AttrText)
	assert.Equal(t, "Hi", attr)

	// 16 steps of 10ms plus two 20ms fade steps
	h.sched.Advance(200 * ms)
	assert.Equal(t, 1, h.ctrl.Completed())
	assert.Equal(t, "Hi", h.container.Text())
	assert.Empty(t, h.container.Styles())
	_, ok := h.container.Attr(animator.AttrText)
	assert.False(t, ok)
}

func TestController_FlashSwapsMidFlash(t *testing.T) {
	h := newHarness(t, animator.Config{
		TextStrings:       []string{"One", "Two"},
		AnimationType:     animator.EffectFlash,
		AnimationDuration: 600 * ms,
		DisplayDuration:   400 * ms,
	})

	h.sched.Advance(1000*ms + 399*ms)
	assert.Equal(t, "One", h.container.Text())
	h.sched.Advance(1 * ms)
	assert.Equal(t, "Two", h.container.Text())

	h.sched.Advance(200 * ms)
	assert.False(t, h.ctrl.IsAnimating())
	assert.Empty(t, h.container.Styles(), "opacity override cleared after the last flash")
}

func TestController_UnknownEffectSwapsWithoutLock(t *testing.T) {
	h := newHarness(t, animator.Config{
		TextStrings:       []string{"A", "B"},
		AnimationType:     animator.ParseEffectType("spin"),
		AnimationDuration: 100 * ms,
		DisplayDuration:   100 * ms,
	})

	h.sched.Advance(200 * ms)
	assert.Equal(t, "B", h.container.Text())
	assert.False(t, h.ctrl.IsAnimating())
	assert.Equal(t, 1, h.ctrl.Completed())
	for _, m := range h.rec.Mutations {
		assert.Equal(t, animator.MutationText, m.Kind, "swap touches only the text")
	}
}

func TestController_EveryEffectCycles(t *testing.T) {
	for _, typ := range animator.EffectTypes {
		t.Run(string(typ), func(t *testing.T) {
			strs := []string{"alpha", "beta", "gamma"}
			var seen []string
			h := newHarness(t, animator.Config{
				TextStrings:       strs,
				AnimationType:     typ,
				AnimationDuration: 300 * ms,
				DisplayDuration:   2000 * ms,
			}, animator.WithCycleHook(func(i int, text string) {
				seen = append(seen, text)
			}))

			// each transition finishes well within its 2300ms period
			for k := 1; k <= 4; k++ {
				h.sched.Advance(2300 * ms)
			}
			h.sched.Advance(1500 * ms)

			assert.Equal(t, 4, h.ctrl.Completed())
			assert.Equal(t, []string{"beta", "gamma", "alpha", "beta"}, seen)
			assert.Equal(t, "beta", h.container.Text())
			assert.Empty(t, h.container.Styles())
			assert.Empty(t, h.container.Classes())
		})
	}
}

// =============================================================================
// REDUCED MOTION
// =============================================================================

func TestController_ReducedMotionSwapsOnDisplayPeriod(t *testing.T) {
	h := newHarness(t, animator.Config{
		TextStrings:       []string{"A", "B", "C"},
		AnimationType:     animator.EffectMatrix,
		AnimationDuration: 1000 * ms,
		DisplayDuration:   500 * ms,
	}, animator.WithReducedMotion(true))

	assert.True(t, h.ctrl.ReducedMotion())
	var got []string
	for i := 0; i < 3; i++ {
		h.sched.Advance(500 * ms)
		got = append(got, h.container.Text())
	}
	assert.Equal(t, []string{"B", "C", "A"}, got)
	assert.Equal(t, 3, h.ctrl.Completed())
	assert.Equal(t, []string{"A", "B", "C", "A"}, h.rec.Texts())
	assert.Empty(t, h.rec.Styles())
	assert.Empty(t, h.container.Classes())
	assert.False(t, h.ctrl.IsAnimating())
}

// =============================================================================
// STOP
// =============================================================================

func TestController_StopMidTransition(t *testing.T) {
	h := newHarness(t, animator.Config{
		TextStrings:       []string{"Hello", "World"},
		AnimationType:     animator.EffectTypewriter,
		AnimationDuration: 1000 * ms,
		DisplayDuration:   500 * ms,
	})

	h.sched.Advance(1600 * ms)
	require.True(t, h.ctrl.IsAnimating())
	shown := h.container.Text()

	h.ctrl.Stop()
	assert.Equal(t, animator.StateStopped, h.ctrl.State())
	assert.False(t, h.ctrl.IsAnimating())
	assert.Equal(t, 0, h.sched.Pending())
	assert.Empty(t, h.container.Styles())
	assert.Empty(t, h.container.Classes())
	assert.Equal(t, shown, h.container.Text())

	h.rec.Reset()
	h.ctrl.Stop()
	h.sched.Advance(10 * time.Second)
	assert.Empty(t, h.rec.Mutations)
	assert.Equal(t, 0, h.ctrl.Completed())
}

func TestController_StopWhileShowing(t *testing.T) {
	h := newHarness(t, animator.Config{TextStrings: []string{"A", "B"}}, animator.WithReducedMotion(true))
	h.ctrl.Stop()
	assert.Equal(t, 0, h.sched.Pending())
	h.sched.Advance(time.Minute)
	assert.Equal(t, "A", h.container.Text())
}

func TestController_InitializeFieldsSurviveStop(t *testing.T) {
	h := newHarness(t, animator.Config{TextStrings: []string{"A", "B"}}, animator.WithReducedMotion(true))
	id := h.ctrl.ID()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			_ = h.ctrl.Container()
			_ = h.ctrl.ReducedMotion()
		}
	}()
	h.sched.Advance(5 * time.Second)
	h.ctrl.Stop()
	<-done

	assert.Equal(t, id, h.ctrl.ID())
	assert.Same(t, h.container, h.ctrl.Container())
	assert.True(t, h.ctrl.ReducedMotion())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", animator.StateIdle.String())
	assert.Equal(t, "showing", animator.StateShowing.String())
	assert.Equal(t, "transitioning", animator.StateTransitioning.String())
	assert.Equal(t, "stopped", animator.StateStopped.String())
	assert.Equal(t, "unknown", animator.State(9).String())
}
