// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package measure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/textanim/internal/animator"
)

// =============================================================================
// CELL MEASURER
// =============================================================================

func TestCellMeasurer(t *testing.T) {
	m := NewCellMeasurer()

	tests := []struct {
		name string
		text string
		typ  animator.Typography
		want animator.Size
	}{
		{"empty", "", animator.Typography{}, animator.Size{Width: 0, Height: 1}},
		{"ascii", "Hello", animator.Typography{}, animator.Size{Width: 5, Height: 1}},
		{"wide", "日本", animator.Typography{}, animator.Size{Width: 4, Height: 1}},
		{"newline", "ab\ncdef", animator.Typography{}, animator.Size{Width: 4, Height: 2}},
		{"word wrap", "hello there world", animator.Typography{MaxWidth: 11}, animator.Size{Width: 11, Height: 2}},
		{"nowrap", "hello there world", animator.Typography{MaxWidth: 11, WhiteSpace: animator.WhiteSpaceNoWrap}, animator.Size{Width: 17, Height: 1}},
		{"long word hard-breaks", "abcdefghij", animator.Typography{MaxWidth: 4}, animator.Size{Width: 4, Height: 3}},
		{"break-all", "ab cdef", animator.Typography{MaxWidth: 3, WordBreak: animator.WordBreakAll}, animator.Size{Width: 3, Height: 3}},
		{"line height", "a\nb", animator.Typography{LineHeight: 2}, animator.Size{Width: 1, Height: 4}},
		{"letter spacing", "abc", animator.Typography{LetterSpacing: 1}, animator.Size{Width: 6, Height: 1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, m.Measure(tc.text, tc.typ))
		})
	}
}

func TestCellLines(t *testing.T) {
	lines := CellLines("the quick brown fox", animator.Typography{MaxWidth: 10})
	assert.Equal(t, []string{"the quick", "brown fox"}, lines)
}

// =============================================================================
// FONT MEASURER
// =============================================================================

func newFont(t *testing.T) *FontMeasurer {
	t.Helper()
	m, err := NewFontMeasurer()
	require.NoError(t, err)
	return m
}

func TestFontMeasurer_Monotonic(t *testing.T) {
	m := newFont(t)
	short := m.Measure("Hi", animator.Typography{})
	long := m.Measure("Hello there", animator.Typography{})

	assert.Greater(t, short.Width, 0.0)
	assert.Greater(t, long.Width, short.Width)
	assert.Equal(t, short.Height, long.Height)

	big := m.Measure("Hi", animator.Typography{FontSize: 32})
	assert.Greater(t, big.Width, short.Width)
	assert.Greater(t, big.Height, short.Height)
}

func TestFontMeasurer_EmptyHasOneLine(t *testing.T) {
	m := newFont(t)
	empty := m.Measure("", animator.Typography{})
	one := m.Measure("x", animator.Typography{})
	assert.Equal(t, 0.0, empty.Width)
	assert.Equal(t, one.Height, empty.Height)
}

func TestFontMeasurer_Wrapping(t *testing.T) {
	m := newFont(t)
	text := "the quick brown fox jumps over the lazy dog"
	line := m.Measure(text, animator.Typography{})
	limit := line.Width / 2

	wrapped := m.Measure(text, animator.Typography{MaxWidth: limit})
	assert.LessOrEqual(t, wrapped.Width, limit+1)
	assert.Greater(t, wrapped.Height, line.Height)

	nowrap := m.Measure(text, animator.Typography{MaxWidth: limit, WhiteSpace: animator.WhiteSpaceNoWrap})
	assert.Equal(t, line, nowrap)

	lh := m.Measure(text, animator.Typography{MaxWidth: limit, LineHeight: 30})
	assert.Equal(t, 0.0, float64(int(lh.Height)%30))
}

func TestFontMeasurer_BoldAndSpacing(t *testing.T) {
	m := newFont(t)
	regular := m.Measure("Heading", animator.Typography{})
	bold := m.Measure("Heading", animator.Typography{FontWeight: "700"})
	spaced := m.Measure("Heading", animator.Typography{LetterSpacing: 2})

	assert.Greater(t, bold.Width, regular.Width)
	assert.InDelta(t, regular.Width+14, spaced.Width, 1)
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"a", "  ", "bc", " "}, tokenize("a  bc "))
	assert.Nil(t, tokenize(""))
}
