// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package animator

import (
	"sync"
	"time"
)

// Timer is a pending single-shot callback.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the
	// call stopped the timer (false if it already fired or was stopped).
	Stop() bool
}

// Scheduler runs f once after d. Implementations decide which goroutine f
// runs on; the controller serializes callbacks itself.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// serialScheduler wraps every callback in a shared mutex so callbacks from
// a multi-goroutine scheduler still execute one at a time.
type serialScheduler struct {
	inner Scheduler
	mu    *sync.Mutex
}

func (s serialScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return s.inner.AfterFunc(d, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		f()
	})
}

// =============================================================================
// SEQUENCES
// =============================================================================

// MinStepInterval is the floor for any duration-scaled step delay, so a tiny
// AnimationDuration can never produce a zero-delay loop.
const MinStepInterval = time.Millisecond

// Step is one timed action. Delay is measured from the previous step (or
// from the start for the first step). A step with zero Delay runs
// immediately after its predecessor in the same callback.
type Step struct {
	Delay time.Duration
	Do    func(c *Container)
}

// Sequence is an ordered list of steps played strictly one after another.
type Sequence []Step

// Duration is the total of all step delays.
func (s Sequence) Duration() time.Duration {
	var d time.Duration
	for _, st := range s {
		d += st.Delay
	}
	return d
}

// stepInterval divides total into n equal steps, clamped to MinStepInterval.
func stepInterval(total time.Duration, n int) time.Duration {
	if n <= 0 {
		return MinStepInterval
	}
	d := total / time.Duration(n)
	if d < MinStepInterval {
		return MinStepInterval
	}
	return d
}

// Playback is a Sequence in flight.
//
// Playback is not safe for concurrent use; the controller's serialized
// scheduler provides the ordering.
type Playback struct {
	seq       Sequence
	container *Container
	sched     Scheduler
	onDone    func()

	next      int
	waited    bool
	timer     Timer
	done      bool
	cancelled bool
}

// Play starts seq against c. Leading zero-delay steps run before Play
// returns; onDone is called exactly once, right after the last step, unless
// the playback is cancelled first. An empty sequence completes immediately.
func Play(seq Sequence, c *Container, sched Scheduler, onDone func()) *Playback {
	p := &Playback{seq: seq, container: c, sched: sched, onDone: onDone}
	p.advance()
	return p
}

func (p *Playback) advance() {
	for p.next < len(p.seq) {
		if p.cancelled {
			return
		}
		st := p.seq[p.next]
		if st.Delay > 0 && !p.waited {
			p.waited = true
			p.timer = p.sched.AfterFunc(st.Delay, p.fire)
			return
		}
		p.waited = false
		p.next++
		if st.Do != nil {
			st.Do(p.container)
		}
	}
	if p.done || p.cancelled {
		return
	}
	p.done = true
	if p.onDone != nil {
		p.onDone()
	}
}

func (p *Playback) fire() {
	p.timer = nil
	p.advance()
}

// Cancel stops the playback without calling onDone. Cancelling a finished
// playback is a no-op.
func (p *Playback) Cancel() {
	if p == nil || p.done || p.cancelled {
		return
	}
	p.cancelled = true
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}

// Done reports whether onDone has been called.
func (p *Playback) Done() bool {
	return p != nil && p.done
}

// StepsRun is the number of steps executed so far.
func (p *Playback) StepsRun() int {
	if p == nil {
		return 0
	}
	return p.next
}
