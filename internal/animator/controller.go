// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package animator

import (
	"io"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// STATE
// =============================================================================

// State is the controller's lifecycle state.
type State int

const (
	StateIdle State = iota
	StateShowing
	StateTransitioning
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateShowing:
		return "showing"
	case StateTransitioning:
		return "transitioning"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// CycleHook is called after every completed transition (or reduced-motion
// swap) with the new index and text. It runs with the controller locked and
// must not call back into the Controller.
type CycleHook func(index int, text string)

// =============================================================================
// OPTIONS
// =============================================================================

// Option configures a Controller.
type Option func(*Controller)

// WithScheduler sets the scheduler. Without it the controller creates and
// owns a RealtimeScheduler, closed by Stop.
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) { c.sched = s }
}

// WithReducedMotion selects the plain-swap cycle.
func WithReducedMotion(reduced bool) Option {
	return func(c *Controller) { c.reducedMotion = reduced }
}

// WithRand sets the random source used for scrambled glyphs.
func WithRand(r *rand.Rand) Option {
	return func(c *Controller) { c.rnd = r }
}

// WithLogger sets a logger for lifecycle debug output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithEffects replaces the effect registry.
func WithEffects(r *Registry) Option {
	return func(c *Controller) {
		if r != nil {
			c.effects = r
		}
	}
}

// WithCycleHook registers a CycleHook.
func WithCycleHook(h CycleHook) Option {
	return func(c *Controller) { c.onCycle = h }
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller cycles one Container through its Config.
//
// Thread Safety:
//   - All methods are safe for concurrent use.
//   - Scheduler callbacks are serialized by the controller's mutex.
//   - ID, Container and ReducedMotion read fields fixed by Initialize and
//     take no lock; the other accessors read cycle state under the mutex.
type Controller struct {
	mu sync.Mutex

	id            uuid.UUID
	cfg           Config
	container     *Container
	sched         Scheduler
	serial        serialScheduler
	ownedSched    *RealtimeScheduler
	effects       *Registry
	rnd           *rand.Rand
	reducedMotion bool
	logger        *slog.Logger
	onCycle       CycleHook

	index     int
	animating bool
	state     State
	completed int
	ticker    Timer
	playback  *Playback
}

// Initialize validates cfg, renders the first string into c and starts the
// cycle. It returns ErrNoTextStrings or ErrNoContainer without touching
// anything when there is nothing to animate.
func Initialize(cfg Config, c *Container, opts ...Option) (*Controller, error) {
	if len(cfg.TextStrings) == 0 {
		return nil, ErrNoTextStrings
	}
	if c == nil {
		return nil, ErrNoContainer
	}

	ctrl := &Controller{
		id:        uuid.New(),
		cfg:       cfg.withDefaults(),
		container: c,
		effects:   DefaultRegistry(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		state:     StateIdle,
	}
	for _, opt := range opts {
		opt(ctrl)
	}
	if ctrl.sched == nil {
		ctrl.ownedSched = NewRealtimeScheduler(nil)
		ctrl.sched = ctrl.ownedSched
	}
	ctrl.serial = serialScheduler{inner: ctrl.sched, mu: &ctrl.mu}
	ctrl.logger = ctrl.logger.With("controller", ctrl.id.String())

	ctrl.mu.Lock()
	ctrl.start()
	ctrl.mu.Unlock()
	return ctrl, nil
}

func (c *Controller) start() {
	c.container.SetText(c.cfg.TextStrings[0])
	c.state = StateShowing

	if c.reducedMotion {
		c.logger.Debug("cycle started", "mode", "reduced-motion", "period", c.cfg.SimplePeriod())
		c.arm(c.cfg.SimplePeriod(), c.simpleTick)
		return
	}
	c.logger.Debug("cycle started",
		"effect", c.cfg.AnimationType,
		"period", c.cfg.Period(),
		"strings", len(c.cfg.TextStrings))
	c.arm(c.cfg.Period(), c.tick)
}

// arm schedules a repeating tick. The next tick is armed before the current
// one runs, so the period does not drift with tick work.
func (c *Controller) arm(period time.Duration, tick func()) {
	c.ticker = c.serial.AfterFunc(period, func() {
		if c.state == StateStopped {
			return
		}
		c.arm(period, tick)
		tick()
	})
}

func (c *Controller) advance() string {
	c.index = (c.index + 1) % len(c.cfg.TextStrings)
	return c.cfg.TextStrings[c.index]
}

func (c *Controller) simpleTick() {
	next := c.advance()
	c.container.SetText(next)
	c.completed++
	if c.onCycle != nil {
		c.onCycle(c.index, next)
	}
}

func (c *Controller) tick() {
	if c.animating {
		// A transition is still running; drop the tick rather than queue it.
		c.logger.Debug("tick dropped", "index", c.index)
		return
	}
	c.transition(c.advance())
}

func (c *Controller) transition(next string) {
	effect, known := c.effects.Lookup(c.cfg.AnimationType)

	c.animating = true
	c.state = StateTransitioning
	current := c.container.Text()

	if known {
		c.lockLayout(next)
		c.container.AddClass(ClassAnimating)
	}

	seq := effect.Plan(Transition{
		Current:   current,
		Next:      next,
		Duration:  c.cfg.AnimationDuration,
		Rand:      c.rnd,
		Container: c.container,
	})
	p := Play(seq, c.container, c.serial, c.finish)
	if !p.Done() {
		c.playback = p
	}
}

// lockLayout pins the container to the larger of its current extent and
// the extent next would have, measured off-surface with the
// container's typography and the parent's available width.
func (c *Controller) lockLayout(next string) {
	current := c.container.Size()

	typ := c.container.Typography()
	typ.MaxWidth = c.container.AvailableWidth()
	envelope := current.Max(c.container.Natural(next, typ))

	c.container.SetStyle(PropDisplay, "inline-block")
	c.container.SetStyle(PropMinWidth, Px(envelope.Width))
	c.container.SetStyle(PropMinHeight, Px(envelope.Height))
	c.container.SetStyle(PropVerticalAlign, "top")
}

func (c *Controller) finish() {
	c.playback = nil
	c.reset()
	c.completed++
	if c.state != StateStopped {
		c.state = StateShowing
	}
	c.logger.Debug("transition complete", "index", c.index, "completed", c.completed)
	if c.onCycle != nil {
		c.onCycle(c.index, c.cfg.TextStrings[c.index])
	}
}

func (c *Controller) reset() {
	ResetContainer(c.container)
	c.animating = false
}

// ResetContainer clears every transition override, the styling hook
// attribute and the block state classes. It is idempotent.
func ResetContainer(c *Container) {
	c.ClearStyle(OverrideProperties...)
	c.RemoveAttr(AttrText)
	c.RemoveClass(ClassAnimating, ClassTyping)
}

// Stop cancels the cycle timer and any running transition, releases the
// layout lock and, if the controller created its own scheduler, closes it.
// The container keeps whatever text it shows. Stop is idempotent.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateStopped {
		return
	}
	c.state = StateStopped
	if c.ticker != nil {
		c.ticker.Stop()
		c.ticker = nil
	}
	if c.playback != nil {
		c.playback.Cancel()
		c.playback = nil
	}
	if c.animating {
		c.reset()
	}
	if c.ownedSched != nil {
		c.ownedSched.Close()
	}
	c.logger.Debug("controller stopped", "completed", c.completed)
}

// =============================================================================
// ACCESSORS
// =============================================================================

// ID identifies the controller instance in logs.
func (c *Controller) ID() uuid.UUID { return c.id }

// Config returns the effective configuration (defaults applied).
func (c *Controller) Config() Config {
	cfg := c.cfg
	cfg.TextStrings = append([]string(nil), c.cfg.TextStrings...)
	return cfg
}

// Container returns the driven surface.
func (c *Controller) Container() *Container { return c.container }

// Index is the position of the string currently shown or being
// transitioned to.
func (c *Controller) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

// IsAnimating reports whether a transition is in flight.
func (c *Controller) IsAnimating() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.animating
}

// State returns the lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Completed is the number of finished transitions (or reduced-motion swaps).
func (c *Controller) Completed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.completed
}

// ReducedMotion reports whether the controller runs the plain-swap cycle.
func (c *Controller) ReducedMotion() bool { return c.reducedMotion }
