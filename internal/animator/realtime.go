// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package animator

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
)

// RealtimeScheduler fires callbacks on wall-clock time. All callbacks run
// on one loop goroutine, which gives hosts without their own event loop the
// same run-to-completion model the runtime assumes.
type RealtimeScheduler struct {
	clock  clock.Clock
	events chan func()
	quit   chan struct{}
	once   sync.Once
}

// NewRealtimeScheduler starts the loop. A nil clock uses the system clock.
func NewRealtimeScheduler(clk clock.Clock) *RealtimeScheduler {
	if clk == nil {
		clk = clock.New()
	}
	s := &RealtimeScheduler{
		clock:  clk,
		events: make(chan func(), 16),
		quit:   make(chan struct{}),
	}
	go s.loop()
	return s
}

func (s *RealtimeScheduler) loop() {
	for {
		select {
		case f := <-s.events:
			f()
		case <-s.quit:
			return
		}
	}
}

type realtimeTimer struct {
	timer   *clock.Timer
	stopped atomic.Bool
}

func (t *realtimeTimer) Stop() bool {
	if t.stopped.Swap(true) {
		return false
	}
	t.timer.Stop()
	return true
}

// AfterFunc implements Scheduler.
func (s *RealtimeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	t := &realtimeTimer{}
	run := func() {
		// Stop may land after the clock fired but before the loop ran us.
		if t.stopped.Swap(true) {
			return
		}
		f()
	}
	t.timer = s.clock.AfterFunc(d, func() {
		select {
		case s.events <- run:
		case <-s.quit:
		}
	})
	return t
}

// Close stops the loop. Pending callbacks are dropped. Close does not wait
// for the loop to exit, so it is safe to call from inside a callback.
func (s *RealtimeScheduler) Close() {
	s.once.Do(func() { close(s.quit) })
}
