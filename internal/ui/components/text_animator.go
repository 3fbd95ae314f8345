// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/benbjohnson/clock"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/textanim/internal/animator"
	"github.com/jeranaias/textanim/internal/measure"
	"github.com/jeranaias/textanim/internal/ui/styles"
	"github.com/jeranaias/textanim/internal/widget"
)

// FrameRate is how often an animating widget redraws.
const FrameRate = time.Second / 30

// FrameMsg redraws one TextAnimator while style transitions are running.
type FrameMsg struct {
	Animator uuid.UUID
}

// =============================================================================
// TWEENS
// =============================================================================

// tween interpolates one numeric style value the way a browser runs a CSS
// transition: from the value on screen to the new target over the
// transition duration.
type tween struct {
	from, to float64
	start    time.Time
	dur      time.Duration
}

func settled(v float64) tween {
	return tween{from: v, to: v}
}

func (tw tween) at(now time.Time) float64 {
	return styles.Lerp(tw.from, tw.to, styles.Progress(now.Sub(tw.start), tw.dur, styles.EaseInOutQuad))
}

func (tw tween) running(now time.Time) bool {
	return tw.from != tw.to && now.Sub(tw.start) < tw.dur
}

func (tw tween) retarget(to float64, now time.Time, dur time.Duration) tween {
	return tween{from: tw.at(now), to: to, start: now, dur: dur}
}

var (
	transitionPart = regexp.MustCompile(`^\s*([a-z-]+)\s+(\d+(?:\.\d+)?)(ms|s)\b`)
	scaleFunc      = regexp.MustCompile(`scale\(\s*(-?\d+(?:\.\d+)?)\s*\)`)
	rotateYFunc    = regexp.MustCompile(`rotateY\(\s*(-?\d+(?:\.\d+)?)deg\s*\)`)
)

// parseTransition reads "opacity 500ms ease, transform 1s" into per-property
// durations.
func parseTransition(v string) map[string]time.Duration {
	out := make(map[string]time.Duration)
	for _, part := range strings.Split(v, ",") {
		m := transitionPart.FindStringSubmatch(part)
		if m == nil {
			continue
		}
		n, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			continue
		}
		unit := time.Millisecond
		if m[3] == "s" {
			unit = time.Second
		}
		out[m[1]] = time.Duration(n * float64(unit))
	}
	return out
}

// parseTransform reads the scale and rotateY components of a transform.
// Missing components are identity.
func parseTransform(v string) (scale, rotateDeg float64) {
	scale = 1
	if m := scaleFunc.FindStringSubmatch(v); m != nil {
		if f, err := strconv.ParseFloat(m[1], 64); err == nil {
			scale = f
		}
	}
	if m := rotateYFunc.FindStringSubmatch(v); m != nil {
		if f, err := strconv.ParseFloat(m[1], 64); err == nil {
			rotateDeg = f
		}
	}
	return scale, rotateDeg
}

// =============================================================================
// TEXT ANIMATOR
// =============================================================================

// TextAnimatorOptions configures a TextAnimator.
type TextAnimatorOptions struct {
	Block         widget.Block
	Theme         *styles.Theme
	Clock         clock.Clock
	Measurer      animator.Measurer
	Typography    animator.Typography
	ReducedMotion bool

	// Width caps the animated text in cells; 0 follows the terminal.
	Width int

	Logger *slog.Logger
	Rand   *rand.Rand
}

// TextAnimator hosts one animator.Controller inside a bubbletea program and
// renders its container with lipgloss.
type TextAnimator struct {
	id    uuid.UUID
	opts  TextAnimatorOptions
	clock clock.Clock
	sched *TeaScheduler

	container *animator.Container
	ctrl      *animator.Controller
	err       error

	termWidth int
	started   time.Time
	framing   bool

	durations map[string]time.Duration
	opacity   tween
	scale     tween
	rotate    tween
}

// NewTextAnimator creates the widget and starts its cycle.
func NewTextAnimator(opts TextAnimatorOptions) *TextAnimator {
	if opts.Theme == nil {
		opts.Theme = styles.NewTheme(styles.ThemeOptions{})
	}
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	if opts.Measurer == nil {
		opts.Measurer = measure.NewCellMeasurer()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	a := &TextAnimator{
		id:    uuid.New(),
		opts:  opts,
		clock: opts.Clock,
	}
	a.start()
	return a
}

func (a *TextAnimator) start() {
	a.sched = NewTeaScheduler(a.clock)
	a.started = a.clock.Now()
	a.durations = map[string]time.Duration{}
	a.opacity, a.scale, a.rotate = settled(1), settled(1), settled(0)

	a.container = animator.NewContainer("", a.opts.Measurer)
	a.container.SetTypography(a.opts.Typography)
	a.applyWidth()
	a.container.OnMutation(a.observe)

	opts := []animator.Option{
		animator.WithScheduler(a.sched),
		animator.WithReducedMotion(a.opts.ReducedMotion),
		animator.WithLogger(a.opts.Logger.With("widget", a.opts.Block.Name)),
	}
	if a.opts.Rand != nil {
		opts = append(opts, animator.WithRand(a.opts.Rand))
	}
	a.ctrl, a.err = animator.Initialize(a.opts.Block.Config, a.container, opts...)
}

// observe keeps the style tweens in step with the container. It runs on the
// program goroutine, inside scheduler callbacks.
func (a *TextAnimator) observe(m animator.Mutation) {
	if m.Kind != animator.MutationStyle {
		return
	}
	now := a.clock.Now()
	switch animator.Property(m.Name) {
	case animator.PropTransition:
		if m.Removed {
			a.durations = map[string]time.Duration{}
		} else {
			a.durations = parseTransition(m.Value)
		}
	case animator.PropOpacity:
		target := 1.0
		if !m.Removed {
			if v, err := strconv.ParseFloat(strings.TrimSpace(m.Value), 64); err == nil {
				target = v
			}
		}
		a.opacity = a.opacity.retarget(target, now, a.durations["opacity"])
	case animator.PropTransform:
		scale, rot := 1.0, 0.0
		if !m.Removed {
			scale, rot = parseTransform(m.Value)
		}
		d := a.durations["transform"]
		a.scale = a.scale.retarget(scale, now, d)
		a.rotate = a.rotate.retarget(rot, now, d)
	}
}

// ID identifies the widget in FrameMsg.
func (a *TextAnimator) ID() uuid.UUID { return a.id }

// Name is the block name.
func (a *TextAnimator) Name() string { return a.opts.Block.Name }

// Err is the initialization error, if the block could not start.
func (a *TextAnimator) Err() error { return a.err }

// Controller returns the running controller, nil after a failed start.
func (a *TextAnimator) Controller() *animator.Controller { return a.ctrl }

// Container returns the animated surface.
func (a *TextAnimator) Container() *animator.Container { return a.container }

// Scheduler returns the widget's scheduler.
func (a *TextAnimator) Scheduler() *TeaScheduler { return a.sched }

// ReducedMotion reports the motion mode the widget runs in.
func (a *TextAnimator) ReducedMotion() bool { return a.opts.ReducedMotion }

// SetTerminalWidth updates the width offered to the animated text.
func (a *TextAnimator) SetTerminalWidth(w int) {
	a.termWidth = w
	a.applyWidth()
}

func (a *TextAnimator) applyWidth() {
	avail := a.opts.Width
	if avail <= 0 && a.termWidth > 0 {
		avail = a.termWidth
		if a.opts.Block.Layout != widget.LayoutColumn {
			avail -= lipgloss.Width(a.opts.Block.Prefix) + lipgloss.Width(a.opts.Block.Suffix)
		}
	}
	if avail < 1 {
		avail = 0
	}
	a.container.SetAvailableWidth(float64(avail))
}

// Stop disposes of the controller. The container returns to its initial
// state and no further timers fire.
func (a *TextAnimator) Stop() {
	if a.ctrl != nil {
		a.ctrl.Stop()
	}
	a.sched.Stop()
}

// Restart stops the widget and starts it again from the first item.
func (a *TextAnimator) Restart() tea.Cmd {
	a.Stop()
	a.start()
	return a.Init()
}

// SetReducedMotion switches motion mode. The preference is read at start,
// so the widget restarts.
func (a *TextAnimator) SetReducedMotion(reduced bool) tea.Cmd {
	a.opts.ReducedMotion = reduced
	return a.Restart()
}

// Init returns the commands for the first scheduled tick.
func (a *TextAnimator) Init() tea.Cmd {
	a.framing = false
	return a.sched.Flush()
}

// Update handles timer and frame messages addressed to this widget.
func (a *TextAnimator) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case TimerFiredMsg:
		if !a.sched.Handle(msg) {
			return nil
		}
		return tea.Batch(a.sched.Flush(), a.frame())

	case FrameMsg:
		if msg.Animator != a.id {
			return nil
		}
		a.framing = false
		return a.frame()
	}
	return nil
}

// frame schedules a redraw while anything is moving.
func (a *TextAnimator) frame() tea.Cmd {
	if a.framing || !a.moving() {
		return nil
	}
	a.framing = true
	id := a.id
	return tea.Tick(FrameRate, func(time.Time) tea.Msg { return FrameMsg{Animator: id} })
}

func (a *TextAnimator) moving() bool {
	now := a.clock.Now()
	if a.opacity.running(now) || a.scale.running(now) || a.rotate.running(now) {
		return true
	}
	return a.container.HasClass(animator.ClassTyping)
}

// Intensity is the visible share of the text: opacity times the
// foreshortening of the Y rotation.
func (a *TextAnimator) Intensity() float64 {
	now := a.clock.Now()
	v := a.opacity.at(now) * math.Abs(math.Cos(a.rotate.at(now)*math.Pi/180))
	return math.Max(0, math.Min(1, v))
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the block: prefix, animated text and suffix, joined by the
// block layout.
func (a *TextAnimator) View() string {
	t := a.opts.Theme
	if a.err != nil {
		return t.Error.Render(a.opts.Block.Name + ": " + a.err.Error())
	}

	parts := make([]string, 0, 3)
	if a.opts.Block.Prefix != "" {
		parts = append(parts, t.Prefix.Render(a.opts.Block.Prefix))
	}
	parts = append(parts, a.animatedView())
	if a.opts.Block.Suffix != "" {
		parts = append(parts, t.Suffix.Render(a.opts.Block.Suffix))
	}

	if a.opts.Block.Layout == widget.LayoutColumn {
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (a *TextAnimator) animatedView() string {
	t := a.opts.Theme
	c := a.container
	typo := c.Typography()
	typo.MaxWidth = c.AvailableWidth()

	styleMap := c.Styles()
	clipW, hasW := cells(styleMap[animator.PropWidth])
	clipH, hasH := cells(styleMap[animator.PropHeight])
	minW, _ := cells(styleMap[animator.PropMinWidth])
	minH, _ := cells(styleMap[animator.PropMinHeight])
	hidden := styleMap[animator.PropOverflow] == "hidden"

	if hasW && hidden {
		typo.WhiteSpace = animator.WhiteSpaceNoWrap
	}
	lines := measure.CellLines(c.Text(), typo)
	if c.HasClass(animator.ClassTyping) {
		lines[len(lines)-1] += t.Cursor.Render(styles.CursorFrame(a.clock.Now().Sub(a.started)))
	}

	if hidden {
		if hasW {
			for i, l := range lines {
				lines[i] = runewidth.Truncate(l, clipW, "")
			}
		}
		if hasH && len(lines) > clipH {
			lines = lines[:clipH]
		}
	}

	style := t.Animated
	if _, glitching := c.Attr(animator.AttrText); glitching {
		style = t.Glitch
	}
	intensity := a.Intensity()
	if t.Plain() {
		if intensity < 0.5 {
			for i, l := range lines {
				lines[i] = strings.Repeat(" ", lipgloss.Width(l))
			}
		}
	} else {
		base := t.TextHex
		if _, glitching := c.Attr(animator.AttrText); glitching {
			base = styles.Pick(styles.Rose, t.IsDark)
		}
		style = style.Foreground(lipgloss.Color(styles.Blend(base, t.BackgroundHex, intensity)))
	}
	if a.scale.at(a.clock.Now()) > 1.05 {
		style = style.Bold(true)
	}

	body := style.Render(strings.Join(lines, "\n"))
	box := t.Renderer.NewStyle()
	w := lipgloss.Width(body)
	h := lipgloss.Height(body)
	if hasW {
		w = clipW
	} else if minW > w {
		w = minW
	}
	if hasH {
		h = clipH
	} else if minH > h {
		h = minH
	}
	return box.Width(w).Height(h).Render(body)
}

// cells converts a px style value to whole cells.
func cells(v string) (int, bool) {
	f, ok := animator.ParsePx(v)
	if !ok {
		return 0, false
	}
	return int(math.Ceil(f)), true
}
