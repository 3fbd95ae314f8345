// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package measure

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/go-fonts/latin-modern/lmroman10bold"
	"github.com/go-fonts/latin-modern/lmroman10regular"
	"github.com/tdewolff/canvas"

	"github.com/jeranaias/textanim/internal/animator"
	"github.com/jeranaias/textanim/internal/util"
)

// DefaultFontSize is used when Typography.FontSize is unset, in px.
const DefaultFontSize = 16.0

const (
	pxPerMm = 96.0 / 25.4
	ptPerPx = 0.75
)

// FontMeasurer measures text with embedded Latin Modern Roman metrics.
// FontFamily is ignored; FontWeight "bold" or >= 600 selects the bold cut.
//
// Thread Safety: Measure is safe for concurrent use.
type FontMeasurer struct {
	family *canvas.FontFamily

	mu    sync.Mutex
	faces map[faceKey]*canvas.FontFace
}

type faceKey struct {
	size float64
	bold bool
}

// NewFontMeasurer loads the embedded fonts.
func NewFontMeasurer() (*FontMeasurer, error) {
	family := canvas.NewFontFamily("textanim-measure")
	if err := family.LoadFont(lmroman10regular.TTF, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("load regular font: %w", err)
	}
	if err := family.LoadFont(lmroman10bold.TTF, 0, canvas.FontBold); err != nil {
		return nil, fmt.Errorf("load bold font: %w", err)
	}
	return &FontMeasurer{family: family, faces: make(map[faceKey]*canvas.FontFace)}, nil
}

func (m *FontMeasurer) face(t animator.Typography) *canvas.FontFace {
	size := t.FontSize
	if size <= 0 {
		size = DefaultFontSize
	}
	key := faceKey{size: size, bold: isBold(t.FontWeight)}

	m.mu.Lock()
	defer m.mu.Unlock()
	if f, ok := m.faces[key]; ok {
		return f
	}
	style := canvas.FontRegular
	if key.bold {
		style = canvas.FontBold
	}
	f := m.family.Face(size*ptPerPx, canvas.Black, style, canvas.FontNormal)
	m.faces[key] = f
	return f
}

func isBold(weight string) bool {
	switch strings.ToLower(strings.TrimSpace(weight)) {
	case "bold", "bolder", "600", "700", "800", "900":
		return true
	}
	return false
}

// Measure implements animator.Measurer.
func (m *FontMeasurer) Measure(text string, t animator.Typography) animator.Size {
	face := m.face(t)
	width := func(s string) float64 {
		w := face.TextWidth(s) * pxPerMm
		if t.LetterSpacing != 0 {
			w += t.LetterSpacing * float64(util.GraphemeLen(s))
		}
		return w
	}

	limit := t.MaxWidth
	if limit <= 0 || t.WhiteSpace == animator.WhiteSpaceNoWrap {
		limit = math.MaxFloat64
	}
	lines := greedyWrap(text, limit, t.WordBreak == animator.WordBreakAll, width)

	lineHeight := t.LineHeight
	if lineHeight <= 0 {
		lineHeight = face.Metrics().LineHeight * pxPerMm
	}
	var w float64
	for _, l := range lines {
		w = math.Max(w, l)
	}
	return animator.Size{Width: math.Ceil(w), Height: math.Ceil(float64(len(lines)) * lineHeight)}
}

// greedyWrap returns the width of each line. Explicit newlines always
// break. Text breaks at spaces first; a word wider than limit is split by
// grapheme. breakAll ignores spaces as break opportunities.
func greedyWrap(text string, limit float64, breakAll bool, width func(string) float64) []float64 {
	var lines []float64
	for _, para := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		var tokens []string
		if breakAll {
			tokens = util.Graphemes(para)
		} else {
			tokens = tokenize(para)
		}

		var line strings.Builder
		current := 0.0
		emit := func() {
			lines = append(lines, width(strings.TrimRight(line.String(), " ")))
			line.Reset()
			current = 0
		}
		appendToken := func(tok string) {
			line.WriteString(tok)
			current += width(tok)
		}

		for _, tok := range tokens {
			tw := width(tok)
			if current > 0 && current+tw > limit && strings.TrimSpace(tok) != "" {
				emit()
			}
			if tw <= limit {
				if current == 0 && strings.TrimSpace(tok) == "" {
					continue
				}
				appendToken(tok)
				continue
			}
			for _, g := range util.Graphemes(tok) {
				gw := width(g)
				if current > 0 && current+gw > limit {
					emit()
				}
				appendToken(g)
			}
		}
		emit()
	}
	return lines
}

// tokenize splits s into alternating runs of spaces and non-spaces.
func tokenize(s string) []string {
	var out []string
	start := 0
	for i := 1; i <= len(s); i++ {
		if i == len(s) || (s[i] == ' ') != (s[start] == ' ') {
			out = append(out, s[start:i])
			start = i
		}
	}
	return out
}
