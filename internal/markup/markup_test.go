// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package markup

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/jeranaias/textanim/internal/animator"
	"github.com/jeranaias/textanim/internal/widget"
)

const page = `<!doctype html>
<html><body>
<div id="hero" class="wp-block-telex-block-text-animator text-animator text-animator--fade text-animator--layout-column"
     data-text-strings='["Fast","Secure"]' data-animation-type="fade"
     data-animation-duration="800" data-display-duration="2500ms">
  <div class="text-animator__content">
    <span class="text-animator__prefix">We are</span>
    <span class="text-animator__animated-text">Fast</span>
    <span class="text-animator__suffix">today.</span>
  </div>
</div>
<div class="wp-block-telex-block-text-animator" data-text-strings='[broken'>
  <span class="text-animator__animated-text">x</span>
</div>
<div class="wp-block-telex-block-text-animator">
  <div class="text-animator__items">
    <div class="text-animator-item"><span class="text-animator-item__content"> One </span></div>
    <div class="text-animator-item"><span class="text-animator-item__content"></span></div>
    <div class="text-animator-item"><span class="text-animator-item__content">Two</span></div>
  </div>
  <span class="text-animator__animated-text"></span>
</div>
<div class="wp-block-telex-block-text-animator" data-text-strings='["a"]'></div>
</body></html>`

func TestParse_Page(t *testing.T) {
	found, err := Parse(strings.NewReader(page))
	require.NoError(t, err)
	require.Len(t, found, 4)

	hero := found[0]
	require.NoError(t, hero.Err)
	assert.Equal(t, "hero", hero.Block.Name)
	assert.Equal(t, []string{"Fast", "Secure"}, hero.Block.Config.TextStrings)
	assert.Equal(t, animator.EffectFade, hero.Block.Config.AnimationType)
	assert.Equal(t, 800*time.Millisecond, hero.Block.Config.AnimationDuration)
	assert.Equal(t, 2500*time.Millisecond, hero.Block.Config.DisplayDuration)
	assert.Equal(t, widget.LayoutColumn, hero.Block.Layout)
	assert.Equal(t, "We are", hero.Block.Prefix)
	assert.Equal(t, "today.", hero.Block.Suffix)
	assert.NotNil(t, hero.Target)

	broken := found[1]
	assert.Error(t, broken.Err)
	assert.Empty(t, broken.Block.Config.TextStrings)
	assert.Equal(t, animator.EffectTypewriter, broken.Block.Config.AnimationType)
	assert.Equal(t, animator.DefaultAnimationDuration, broken.Block.Config.AnimationDuration)

	saved := found[2]
	require.NoError(t, saved.Err)
	assert.Equal(t, []string{"One", "Two"}, saved.Block.Config.TextStrings)
	assert.Equal(t, "block-3", saved.Block.Name)

	noTarget := found[3]
	assert.ErrorIs(t, noTarget.Err, ErrNoAnimatedText)
}

func TestParse_EmptyJSONListIsNotAnimated(t *testing.T) {
	found, err := Parse(strings.NewReader(`<div class="wp-block-telex-block-text-animator" data-text-strings="[]"><span class="text-animator__animated-text"></span></div>`))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.ErrorIs(t, found[0].Err, animator.ErrNoTextStrings)
}

func TestSavedItems_FallsBackToItemElements(t *testing.T) {
	found, err := Parse(strings.NewReader(`
<div class="wp-block-telex-block-text-animator">
  <div class="text-animator-item">Alpha</div>
  <div class="text-animator-item"><em>Beta</em></div>
  <span class="text-animator__animated-text"></span>
</div>`))
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha", "Beta"}, found[0].Block.Config.TextStrings)
}

func TestSavedItems_Placeholder(t *testing.T) {
	found, err := Parse(strings.NewReader(`<div class="wp-block-telex-block-text-animator"><span class="text-animator__animated-text"></span></div>`))
	require.NoError(t, err)
	assert.Equal(t, []string{widget.Placeholder}, found[0].Block.Config.TextStrings)
}

func TestParseMS(t *testing.T) {
	tests := map[string]time.Duration{
		"1500":   1500 * time.Millisecond,
		" 700ms": 700 * time.Millisecond,
		"abc":    time.Second,
		"":       time.Second,
		"-5":     time.Second,
		"0":      time.Second,
		"+300":   300 * time.Millisecond,
	}
	for in, want := range tests {
		n := &html.Node{Type: html.ElementNode, Data: "div", Attr: []html.Attribute{{Key: AttrAnimationDuration, Val: in}}}
		assert.Equal(t, want, parseMS(n, AttrAnimationDuration, time.Second), "input %q", in)
	}
}

func TestRender_RoundTrip(t *testing.T) {
	b := widget.Block{
		Prefix: "We build <fast>",
		Suffix: " apps",
		Layout: widget.LayoutColumn,
		Config: animator.Config{
			TextStrings:       []string{"  robust ", "délicieux \"apps\""},
			AnimationType:     animator.EffectGlitch,
			AnimationDuration: 900 * time.Millisecond,
		},
	}
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, b))
	out := buf.String()
	assert.Contains(t, out, `class="wp-block-telex-block-text-animator text-animator text-animator--glitch text-animator--layout-column"`)
	assert.Contains(t, out, `data-display-duration="2000"`)
	assert.Contains(t, out, "&lt;fast&gt;")

	found, err := Parse(&buf)
	require.NoError(t, err)
	require.Len(t, found, 1)
	got := found[0]
	require.NoError(t, got.Err)
	assert.Equal(t, []string{"robust", "délicieux \"apps\""}, got.Block.Config.TextStrings)
	assert.Equal(t, animator.EffectGlitch, got.Block.Config.AnimationType)
	assert.Equal(t, 900*time.Millisecond, got.Block.Config.AnimationDuration)
	assert.Equal(t, widget.LayoutColumn, got.Block.Layout)
	assert.Equal(t, "We build <fast>", got.Block.Prefix)
	assert.Equal(t, "apps", got.Block.Suffix)
	assert.Equal(t, "robust", textContent(got.Target))
}
