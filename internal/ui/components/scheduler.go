// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"sort"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/jeranaias/textanim/internal/animator"
)

// =============================================================================
// MESSAGES
// =============================================================================

// TimerFiredMsg is delivered when a scheduled animator callback is due.
type TimerFiredMsg struct {
	Scheduler uuid.UUID
	Timer     uint64
}

// =============================================================================
// TEA SCHEDULER
// =============================================================================

// TeaScheduler is an animator.Scheduler whose timers are bubbletea commands.
// Callbacks run inside Update, on the program's goroutine, so the animator
// and the view never race.
//
// Usage:
//
//	cmd := sched.Flush()          // after anything that may schedule
//	sched.Handle(msg)             // in Update, for TimerFiredMsg
type TeaScheduler struct {
	mu      sync.Mutex
	id      uuid.UUID
	clock   clock.Clock
	nextID  uint64
	pending map[uint64]*teaTimer
	queued  []uint64
	stopped bool
}

type teaTimer struct {
	sched *TeaScheduler
	id    uint64
	due   time.Time
	fn    func()
}

func (t *teaTimer) Stop() bool {
	t.sched.mu.Lock()
	defer t.sched.mu.Unlock()
	if _, ok := t.sched.pending[t.id]; !ok {
		return false
	}
	delete(t.sched.pending, t.id)
	return true
}

// NewTeaScheduler creates a scheduler. A nil clock uses the system clock.
func NewTeaScheduler(clk clock.Clock) *TeaScheduler {
	if clk == nil {
		clk = clock.New()
	}
	return &TeaScheduler{
		id:      uuid.New(),
		clock:   clk,
		pending: make(map[uint64]*teaTimer),
	}
}

// ID identifies the scheduler in TimerFiredMsg.
func (s *TeaScheduler) ID() uuid.UUID { return s.id }

// AfterFunc implements animator.Scheduler. The timer only starts counting
// toward delivery once Flush hands it to the program.
func (s *TeaScheduler) AfterFunc(d time.Duration, f func()) animator.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	t := &teaTimer{sched: s, id: s.nextID, due: s.clock.Now().Add(d), fn: f}
	if !s.stopped {
		s.pending[t.id] = t
		s.queued = append(s.queued, t.id)
	}
	return t
}

// Flush returns commands for every timer scheduled since the last Flush.
func (s *TeaScheduler) Flush() tea.Cmd {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queued) == 0 {
		return nil
	}
	now := s.clock.Now()
	cmds := make([]tea.Cmd, 0, len(s.queued))
	for _, id := range s.queued {
		t, ok := s.pending[id]
		if !ok {
			continue
		}
		msg := TimerFiredMsg{Scheduler: s.id, Timer: id}
		delay := t.due.Sub(now)
		if delay < 0 {
			delay = 0
		}
		cmds = append(cmds, tea.Tick(delay, func(time.Time) tea.Msg { return msg }))
	}
	s.queued = s.queued[:0]
	return tea.Batch(cmds...)
}

// Handle runs the callback for msg. It reports false for messages that
// belong to another scheduler or to a timer that was stopped.
func (s *TeaScheduler) Handle(msg TimerFiredMsg) bool {
	if msg.Scheduler != s.id {
		return false
	}
	s.mu.Lock()
	t, ok := s.pending[msg.Timer]
	if ok {
		delete(s.pending, msg.Timer)
	}
	s.mu.Unlock()
	if !ok {
		return false
	}
	t.fn()
	return true
}

// FireDue runs every pending timer due at or before the clock's current
// time, earliest first, including timers scheduled by those callbacks. It
// returns the number of callbacks run. Headless replay drives the scheduler
// this way on a mock clock instead of through a program.
func (s *TeaScheduler) FireDue() int {
	fired := 0
	for {
		s.mu.Lock()
		now := s.clock.Now()
		var next *teaTimer
		for _, t := range s.pending {
			if t.due.After(now) {
				continue
			}
			if next == nil || t.due.Before(next.due) || (t.due.Equal(next.due) && t.id < next.id) {
				next = t
			}
		}
		if next != nil {
			delete(s.pending, next.id)
		}
		s.mu.Unlock()
		if next == nil {
			s.mu.Lock()
			s.queued = s.queued[:0]
			s.mu.Unlock()
			return fired
		}
		next.fn()
		fired++
	}
}

// NextDue returns the due time of the earliest pending timer.
func (s *TeaScheduler) NextDue() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	dues := make([]time.Time, 0, len(s.pending))
	for _, t := range s.pending {
		dues = append(dues, t.due)
	}
	if len(dues) == 0 {
		return time.Time{}, false
	}
	sort.Slice(dues, func(i, j int) bool { return dues[i].Before(dues[j]) })
	return dues[0], true
}

// Pending returns the number of timers not yet fired or stopped.
func (s *TeaScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Stop drops every pending timer; later AfterFunc calls are ignored.
func (s *TeaScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	s.pending = make(map[uint64]*teaTimer)
	s.queued = nil
}
