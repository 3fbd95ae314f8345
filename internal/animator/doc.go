// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package animator is the text-cycling runtime.

A Controller owns one Container (a text surface with inline style overrides)
and cycles it through Config.TextStrings. Every cycle shows the current
string for DisplayDuration, then plays one transition effect lasting roughly
AnimationDuration. Before each transition the container is pinned to the
larger of its current extent and the measured extent of the next string, so
the surrounding layout never reflows; the pin is released when the effect
completes.

# Execution Model

The runtime is single-threaded and cooperative. All work is scheduled
through a Scheduler and runs to completion when it fires. Effects are plain
Sequences of (delay, action) steps played one after another, and the
controller serializes every callback with its own mutex, so schedulers may
fire from any goroutine.

Schedulers:
  - RealtimeScheduler: wall clock, single loop goroutine
  - animatortest.Scheduler: virtual clock for tests
  - components.TeaScheduler: bubbletea commands, callbacks run in Update

# Effects

	typewriter  erase then type, fixed 30ms/50ms per character
	matrix      20-step left-to-right reveal over random glyphs
	fade        opacity out, swap, opacity in
	flash       six opacity toggles, swap on the fourth
	burst       scale/rotate out, swap, back to identity
	glitch      hard-clipped random scramble, short fade to the new text

Any other effect name degrades to an immediate swap with no layout lock.

# Usage

	c := animator.NewContainer("", measure.NewCellMeasurer())
	ctrl, err := animator.Initialize(cfg, c, animator.WithReducedMotion(prefersReduced))
	if err != nil {
		return // nothing to animate; leave the container as rendered
	}
	defer ctrl.Stop()
*/
package animator
