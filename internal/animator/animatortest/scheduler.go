// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package animatortest provides deterministic test doubles for the
// animator runtime: a virtual-clock scheduler and fixed-metric measurers.
package animatortest

import (
	"sort"
	"sync"
	"time"

	"github.com/jeranaias/textanim/internal/animator"
)

// Scheduler is a virtual-clock animator.Scheduler. Nothing fires until
// Advance moves the clock; callbacks then run synchronously on the caller's
// goroutine in due-time order (ties in scheduling order).
type Scheduler struct {
	mu     sync.Mutex
	now    time.Duration
	seq    uint64
	timers []*timer
}

type timer struct {
	s       *Scheduler
	due     time.Duration
	seq     uint64
	fn      func()
	stopped bool
}

func (t *timer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.stopped {
		return false
	}
	t.stopped = true
	t.s.remove(t)
	return true
}

// NewScheduler returns a scheduler at virtual time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// AfterFunc implements animator.Scheduler.
func (s *Scheduler) AfterFunc(d time.Duration, f func()) animator.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d < 0 {
		d = 0
	}
	s.seq++
	t := &timer{s: s, due: s.now + d, seq: s.seq, fn: f}
	s.timers = append(s.timers, t)
	return t
}

func (s *Scheduler) remove(t *timer) {
	for i, x := range s.timers {
		if x == t {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return
		}
	}
}

// next pops the earliest timer due at or before limit.
func (s *Scheduler) next(limit time.Duration) *timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.timers) == 0 {
		return nil
	}
	sort.SliceStable(s.timers, func(i, j int) bool {
		if s.timers[i].due != s.timers[j].due {
			return s.timers[i].due < s.timers[j].due
		}
		return s.timers[i].seq < s.timers[j].seq
	})
	t := s.timers[0]
	if t.due > limit {
		return nil
	}
	s.timers = s.timers[1:]
	t.stopped = true
	s.now = t.due
	return t
}

// Advance moves the clock forward by d, running every callback that comes
// due, including ones scheduled by earlier callbacks within the window.
func (s *Scheduler) Advance(d time.Duration) {
	s.mu.Lock()
	limit := s.now + d
	s.mu.Unlock()

	for {
		t := s.next(limit)
		if t == nil {
			break
		}
		t.fn()
	}

	s.mu.Lock()
	s.now = limit
	s.mu.Unlock()
}

// RunUntilIdle fires timers until none remain or max callbacks have run.
// It returns the number of callbacks run.
func (s *Scheduler) RunUntilIdle(max int) int {
	n := 0
	for n < max {
		s.mu.Lock()
		if len(s.timers) == 0 {
			s.mu.Unlock()
			break
		}
		s.mu.Unlock()
		t := s.next(time.Duration(1<<62 - 1))
		if t == nil {
			break
		}
		t.fn()
		n++
	}
	return n
}

// Now is the virtual time elapsed since creation.
func (s *Scheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Pending is the number of timers not yet fired or stopped.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}
