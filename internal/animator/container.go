// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package animator

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// =============================================================================
// STYLE VOCABULARY
// =============================================================================

// Property is an inline style property the runtime may override.
type Property string

const (
	PropOpacity       Property = "opacity"
	PropTransform     Property = "transform"
	PropDisplay       Property = "display"
	PropMinWidth      Property = "min-width"
	PropMinHeight     Property = "min-height"
	PropWidth         Property = "width"
	PropHeight        Property = "height"
	PropVerticalAlign Property = "vertical-align"
	PropOverflow      Property = "overflow"
	PropTransition    Property = "transition"
)

// OverrideProperties is every property a transition may set. All of them are
// cleared when a transition ends.
var OverrideProperties = []Property{
	PropOpacity,
	PropTransform,
	PropDisplay,
	PropMinWidth,
	PropMinHeight,
	PropWidth,
	PropHeight,
	PropVerticalAlign,
	PropOverflow,
	PropTransition,
}

// Block state classes and the effect styling hook attribute.
const (
	ClassAnimating = "text-animator--animating"
	ClassTyping    = "text-animator--typing"
	AttrText       = "data-text"
)

// Px formats a length in surface units ("12px"). For terminal hosts one
// unit is one cell.
func Px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

// ParsePx parses a value produced by Px.
func ParsePx(s string) (float64, bool) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// =============================================================================
// MEASUREMENT
// =============================================================================

// Size is a rendered extent in surface units.
type Size struct {
	Width  float64
	Height float64
}

// Max returns the per-axis maximum of s and o.
func (s Size) Max(o Size) Size {
	return Size{Width: math.Max(s.Width, o.Width), Height: math.Max(s.Height, o.Height)}
}

// White-space and word-break modes understood by measurers.
const (
	WhiteSpaceNormal = "normal"
	WhiteSpaceNoWrap = "nowrap"
	WordBreakNormal  = "normal"
	WordBreakAll     = "break-all"
)

// Typography is the subset of text styling that affects extent. An off-surface
// measurement copies it from the container.
type Typography struct {
	FontFamily    string
	FontSize      float64
	FontWeight    string
	LetterSpacing float64
	LineHeight    float64 // absolute line height; 0 lets the measurer decide
	WhiteSpace    string
	WordBreak     string
	MaxWidth      float64 // wrap limit; 0 means unconstrained
}

// Measurer reports the natural extent of text rendered with t.
type Measurer interface {
	Measure(text string, t Typography) Size
}

// MeasureFunc adapts a function to Measurer.
type MeasureFunc func(text string, t Typography) Size

// Measure implements Measurer.
func (f MeasureFunc) Measure(text string, t Typography) Size { return f(text, t) }

var zeroMeasurer = MeasureFunc(func(string, Typography) Size { return Size{} })

// =============================================================================
// MUTATIONS
// =============================================================================

// MutationKind identifies what a Mutation touched.
type MutationKind int

const (
	MutationText MutationKind = iota
	MutationStyle
	MutationAttr
	MutationClass
)

func (k MutationKind) String() string {
	switch k {
	case MutationText:
		return "text"
	case MutationStyle:
		return "style"
	case MutationAttr:
		return "attr"
	case MutationClass:
		return "class"
	default:
		return "unknown"
	}
}

// Mutation describes one change to a Container. Removed is set when a
// style, attribute or class was cleared.
type Mutation struct {
	Kind    MutationKind
	Name    string
	Value   string
	Removed bool
}

// =============================================================================
// CONTAINER
// =============================================================================

// Container is the single mutable text surface a Controller drives, plus
// its transient style overrides and the block state classes.
//
// Thread Safety:
//   - Reads are safe from any goroutine; the controller is the only writer.
//   - Observers run on the writer's goroutine after the lock is released.
type Container struct {
	mu         sync.RWMutex
	text       string
	styles     map[Property]string
	attrs      map[string]string
	classes    map[string]bool
	typography Typography
	available  float64
	measurer   Measurer
	observers  []func(Mutation)
}

// NewContainer creates a container showing text. A nil measurer reports
// zero extents, which turns layout locking into a no-op pin.
func NewContainer(text string, m Measurer) *Container {
	if m == nil {
		m = zeroMeasurer
	}
	return &Container{
		text:     text,
		styles:   make(map[Property]string),
		attrs:    make(map[string]string),
		classes:  make(map[string]bool),
		measurer: m,
		typography: Typography{
			WhiteSpace: WhiteSpaceNormal,
			WordBreak:  WordBreakNormal,
		},
	}
}

// OnMutation registers an observer called after every change.
func (c *Container) OnMutation(fn func(Mutation)) {
	c.mu.Lock()
	c.observers = append(c.observers, fn)
	c.mu.Unlock()
}

func (c *Container) notify(m Mutation) {
	c.mu.RLock()
	obs := c.observers
	c.mu.RUnlock()
	for _, fn := range obs {
		fn(m)
	}
}

// Text returns the current text content.
func (c *Container) Text() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.text
}

// SetText replaces the text content.
func (c *Container) SetText(s string) {
	c.mu.Lock()
	c.text = s
	c.mu.Unlock()
	c.notify(Mutation{Kind: MutationText, Value: s})
}

// Style returns an inline override and whether it is set.
func (c *Container) Style(p Property) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.styles[p]
	return v, ok
}

// Styles returns a copy of all inline overrides.
func (c *Container) Styles() map[Property]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[Property]string, len(c.styles))
	for k, v := range c.styles {
		out[k] = v
	}
	return out
}

// SetStyle sets an inline override.
func (c *Container) SetStyle(p Property, v string) {
	c.mu.Lock()
	c.styles[p] = v
	c.mu.Unlock()
	c.notify(Mutation{Kind: MutationStyle, Name: string(p), Value: v})
}

// ClearStyle removes overrides. Clearing an unset property is a no-op and
// produces no mutation.
func (c *Container) ClearStyle(props ...Property) {
	var cleared []Property
	c.mu.Lock()
	for _, p := range props {
		if _, ok := c.styles[p]; ok {
			delete(c.styles, p)
			cleared = append(cleared, p)
		}
	}
	c.mu.Unlock()
	for _, p := range cleared {
		c.notify(Mutation{Kind: MutationStyle, Name: string(p), Removed: true})
	}
}

// Attr returns an attribute value and whether it is set.
func (c *Container) Attr(name string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.attrs[name]
	return v, ok
}

// SetAttr sets an attribute.
func (c *Container) SetAttr(name, v string) {
	c.mu.Lock()
	c.attrs[name] = v
	c.mu.Unlock()
	c.notify(Mutation{Kind: MutationAttr, Name: name, Value: v})
}

// RemoveAttr removes an attribute if present.
func (c *Container) RemoveAttr(name string) {
	c.mu.Lock()
	_, ok := c.attrs[name]
	delete(c.attrs, name)
	c.mu.Unlock()
	if ok {
		c.notify(Mutation{Kind: MutationAttr, Name: name, Removed: true})
	}
}

// HasClass reports whether a block state class is present.
func (c *Container) HasClass(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.classes[name]
}

// Classes returns the block state classes in sorted order.
func (c *Container) Classes() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.classes))
	for k := range c.classes {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// AddClass adds a block state class.
func (c *Container) AddClass(name string) {
	c.mu.Lock()
	had := c.classes[name]
	c.classes[name] = true
	c.mu.Unlock()
	if !had {
		c.notify(Mutation{Kind: MutationClass, Name: name})
	}
}

// RemoveClass removes block state classes that are present.
func (c *Container) RemoveClass(names ...string) {
	var removed []string
	c.mu.Lock()
	for _, n := range names {
		if c.classes[n] {
			delete(c.classes, n)
			removed = append(removed, n)
		}
	}
	c.mu.Unlock()
	for _, n := range removed {
		c.notify(Mutation{Kind: MutationClass, Name: n, Removed: true})
	}
}

// Typography returns the container's text styling.
func (c *Container) Typography() Typography {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.typography
}

// SetTypography replaces the container's text styling.
func (c *Container) SetTypography(t Typography) {
	c.mu.Lock()
	c.typography = t
	c.mu.Unlock()
}

// AvailableWidth is the width the parent offers the text; 0 is unbounded.
func (c *Container) AvailableWidth() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.available
}

// SetAvailableWidth updates the parent's available width (host resize).
func (c *Container) SetAvailableWidth(w float64) {
	if w < 0 {
		w = 0
	}
	c.mu.Lock()
	c.available = w
	c.mu.Unlock()
}

// Size returns the container's rendered extent: the natural extent of its
// text within the available width, raised to min-width/min-height and
// replaced by width/height when those are set.
func (c *Container) Size() Size {
	c.mu.RLock()
	text, styles, t := c.text, c.styles, c.typography
	t.MaxWidth = c.available
	m := c.measurer
	w, hasW := ParsePx(styles[PropWidth])
	h, hasH := ParsePx(styles[PropHeight])
	minW, hasMinW := ParsePx(styles[PropMinWidth])
	minH, hasMinH := ParsePx(styles[PropMinHeight])
	c.mu.RUnlock()

	size := m.Measure(text, t)
	if hasMinW {
		size.Width = math.Max(size.Width, minW)
	}
	if hasMinH {
		size.Height = math.Max(size.Height, minH)
	}
	if hasW {
		size.Width = w
	}
	if hasH {
		size.Height = h
	}
	return size
}

// Natural measures text off-surface with typography t. It never mutates the
// container.
func (c *Container) Natural(text string, t Typography) Size {
	c.mu.RLock()
	m := c.measurer
	c.mu.RUnlock()
	return m.Measure(text, t)
}
