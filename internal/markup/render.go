// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package markup

import (
	"encoding/json"
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/jeranaias/textanim/internal/animator"
	"github.com/jeranaias/textanim/internal/widget"
)

// Render writes the front-end markup for b: the wrapper with its data
// attributes, then prefix, animated text (showing the first item) and
// suffix. Items are normalized first, so the output always has at least
// one item.
func Render(w io.Writer, b widget.Block) error {
	return html.Render(w, BlockNode(b))
}

// BlockNode builds the markup tree for b.
func BlockNode(b widget.Block) *html.Node {
	items := widget.NormalizeItems(b.Config.TextStrings)
	encoded, _ := json.Marshal(items) // a []string cannot fail to encode

	classes := append([]string{widget.ClassWrapper}, b.Classes()...)
	wrapper := element(atom.Div, map[string]string{
		"class":               strings.Join(classes, " "),
		AttrTextStrings:       string(encoded),
		AttrAnimationType:     string(effectOrDefault(b)),
		AttrAnimationDuration: msAttr(b.Config.AnimationDuration, animator.DefaultAnimationDuration),
		AttrDisplayDuration:   msAttr(b.Config.DisplayDuration, animator.DefaultDisplayDuration),
	})
	content := element(atom.Div, map[string]string{"class": ClassContent})
	wrapper.AppendChild(content)

	if b.Prefix != "" {
		content.AppendChild(textElement(atom.Span, ClassPrefix, b.Prefix))
	}
	content.AppendChild(textElement(atom.Span, ClassAnimatedText, items[0]))
	if b.Suffix != "" {
		content.AppendChild(textElement(atom.Span, ClassSuffix, b.Suffix))
	}
	return wrapper
}

func effectOrDefault(b widget.Block) animator.EffectType {
	if b.Config.AnimationType == "" {
		return animator.DefaultEffect
	}
	return b.Config.AnimationType
}

func msAttr(d, def time.Duration) string {
	if d <= 0 {
		d = def
	}
	return strconv.FormatInt(d.Milliseconds(), 10)
}

// element creates an element with attributes in key order.
func element(a atom.Atom, attrs map[string]string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for _, k := range []string{"class", AttrTextStrings, AttrAnimationType, AttrAnimationDuration, AttrDisplayDuration} {
		if v, ok := attrs[k]; ok {
			n.Attr = append(n.Attr, html.Attribute{Key: k, Val: v})
		}
	}
	return n
}

func textElement(a atom.Atom, class, text string) *html.Node {
	n := element(a, map[string]string{"class": class})
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return n
}
