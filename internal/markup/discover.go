// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package markup

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/jeranaias/textanim/internal/animator"
	"github.com/jeranaias/textanim/internal/widget"
)

// Class names and data attributes of the block markup.
const (
	ClassAnimatedText = "text-animator__animated-text"
	ClassContent      = "text-animator__content"
	ClassPrefix       = "text-animator__prefix"
	ClassSuffix       = "text-animator__suffix"
	ClassItem         = "text-animator-item"
	ClassItemContent  = "text-animator-item__content"

	AttrTextStrings       = "data-text-strings"
	AttrAnimationType     = "data-animation-type"
	AttrAnimationDuration = "data-animation-duration"
	AttrDisplayDuration   = "data-display-duration"
)

// ErrNoAnimatedText marks a block without an animated-text element.
var ErrNoAnimatedText = errors.New("block has no " + ClassAnimatedText + " element")

// Found is one discovered block.
type Found struct {
	Block widget.Block

	// Node is the wrapper element; Target is the animated-text element,
	// nil when missing.
	Node   *html.Node
	Target *html.Node

	// Err is set when the block cannot be animated. It never affects
	// other blocks.
	Err error
}

// Parse reads an HTML document and discovers its blocks.
func Parse(r io.Reader) ([]Found, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}
	return Discover(doc), nil
}

// Discover returns every block under root in document order.
func Discover(root *html.Node) []Found {
	var out []Found
	walk(root, func(n *html.Node) bool {
		if !hasClass(n, widget.ClassWrapper) {
			return true
		}
		out = append(out, readBlock(n, len(out)))
		return false
	})
	return out
}

func readBlock(n *html.Node, index int) Found {
	f := Found{Node: n}

	effect := animator.DefaultEffect
	if v, ok := attr(n, AttrAnimationType); ok && v != "" {
		effect = animator.ParseEffectType(v)
	}
	b := widget.Block{
		Name:   fmt.Sprintf("block-%d", index+1),
		Layout: widget.LayoutRow,
		Config: animator.Config{
			AnimationType:     effect,
			AnimationDuration: parseMS(n, AttrAnimationDuration, animator.DefaultAnimationDuration),
			DisplayDuration:   parseMS(n, AttrDisplayDuration, animator.DefaultDisplayDuration),
		},
	}
	if id, ok := attr(n, "id"); ok && id != "" {
		b.Name = id
	}
	if hasClass(n, widget.ClassBlock+"--layout-"+string(widget.LayoutColumn)) {
		b.Layout = widget.LayoutColumn
	}
	if p := find(n, ClassPrefix); p != nil {
		b.Prefix = textContent(p)
	}
	if s := find(n, ClassSuffix); s != nil {
		b.Suffix = textContent(s)
	}

	if raw, ok := attr(n, AttrTextStrings); ok {
		var items []string
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			f.Err = fmt.Errorf("%s: invalid %s: %w", b.Name, AttrTextStrings, err)
			items = nil
		}
		b.Config.TextStrings = items
	} else {
		b.Config.TextStrings = widget.NormalizeItems(savedItems(n))
	}

	f.Target = find(n, ClassAnimatedText)
	switch {
	case f.Err != nil:
	case len(b.Config.TextStrings) == 0:
		f.Err = fmt.Errorf("%s: %w", b.Name, animator.ErrNoTextStrings)
	case f.Target == nil:
		f.Err = fmt.Errorf("%s: %w", b.Name, ErrNoAnimatedText)
	}
	f.Block = b
	return f
}

// savedItems extracts item text from editor-saved markup: item content
// spans first, whole item elements when there are none.
func savedItems(n *html.Node) []string {
	var items []string
	for _, el := range findAll(n, ClassItemContent) {
		items = append(items, textContent(el))
	}
	if len(strings.Join(items, "")) > 0 {
		return items
	}
	items = items[:0]
	for _, el := range findAll(n, ClassItem) {
		items = append(items, textContent(el))
	}
	return items
}

// parseMS reads a millisecond attribute the way a lenient integer parse
// does: leading digits count, anything unparseable or non-positive yields
// def.
func parseMS(n *html.Node, key string, def time.Duration) time.Duration {
	v, ok := attr(n, key)
	if !ok {
		return def
	}
	v = strings.TrimSpace(v)
	neg := false
	if strings.HasPrefix(v, "-") || strings.HasPrefix(v, "+") {
		neg = v[0] == '-'
		v = v[1:]
	}
	ms := 0
	digits := 0
	for _, r := range v {
		if r < '0' || r > '9' {
			break
		}
		ms = ms*10 + int(r-'0')
		digits++
		if ms > 1<<30 {
			break
		}
	}
	if digits == 0 || neg || ms == 0 {
		return def
	}
	return time.Duration(ms) * time.Millisecond
}

// =============================================================================
// NODE HELPERS
// =============================================================================

// walk visits n and its descendants depth-first. visit returns false to
// skip a node's children.
func walk(n *html.Node, visit func(*html.Node) bool) {
	if !visit(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

func attr(n *html.Node, key string) (string, bool) {
	if n.Type != html.ElementNode {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func hasClass(n *html.Node, class string) bool {
	v, ok := attr(n, "class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

// find returns the first descendant of n with class.
func find(n *html.Node, class string) *html.Node {
	all := findAll(n, class)
	if len(all) == 0 {
		return nil
	}
	return all[0]
}

func findAll(n *html.Node, class string) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, func(x *html.Node) bool {
			if hasClass(x, class) {
				out = append(out, x)
			}
			return true
		})
	}
	return out
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	walk(n, func(x *html.Node) bool {
		if x.Type == html.TextNode {
			sb.WriteString(x.Data)
		}
		return true
	})
	return strings.TrimSpace(sb.String())
}
