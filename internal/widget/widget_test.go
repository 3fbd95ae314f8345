// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package widget

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/textanim/internal/animator"
)

func TestNormalizeItems(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"trims and drops empties", []string{"  a ", "", "   ", "b"}, []string{"a", "b"}},
		{"nil gets placeholder", nil, []string{Placeholder}},
		{"all blank gets placeholder", []string{" ", "\t\n"}, []string{Placeholder}},
		{"nfc", []string{"e\u0301"}, []string{"\u00e9"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeItems(tc.in))
		})
	}
}

func TestParseLayout(t *testing.T) {
	l, err := ParseLayout(" Column ")
	require.NoError(t, err)
	assert.Equal(t, LayoutColumn, l)

	l, err = ParseLayout("")
	require.NoError(t, err)
	assert.Equal(t, LayoutRow, l)

	_, err = ParseLayout("grid")
	assert.Error(t, err)
}

func TestBlockClasses(t *testing.T) {
	b := Block{Layout: LayoutColumn, Config: animator.Config{AnimationType: animator.EffectGlitch}}
	assert.Equal(t, []string{"text-animator", "text-animator--glitch", "text-animator--layout-column"}, b.Classes())

	assert.Equal(t, []string{"text-animator", "text-animator--typewriter", "text-animator--layout-row"}, Block{}.Classes())
}

func TestTemplate(t *testing.T) {
	b := Template()
	assert.Equal(t, TemplateItems, b.Config.TextStrings)
	b.Config.TextStrings[0] = "changed"
	assert.Equal(t, "Your text here", TemplateItems[0])
}

func TestParse_List(t *testing.T) {
	data := []byte(`
widgets:
  - name: hero
    prefix: "We build "
    suffix: " apps."
    layout: column
    effect: Glitch
    animation_ms: 800
    display_ms: 2500
    items: [fast, " secure ", ""]
  - items: [one]
`)
	blocks, warnings, err := Parse(data)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, blocks, 2)

	hero := blocks[0]
	assert.Equal(t, "hero", hero.Name)
	assert.Equal(t, "We build ", hero.Prefix)
	assert.Equal(t, " apps.", hero.Suffix)
	assert.Equal(t, LayoutColumn, hero.Layout)
	assert.Equal(t, animator.EffectGlitch, hero.Config.AnimationType)
	assert.Equal(t, 800*time.Millisecond, hero.Config.AnimationDuration)
	assert.Equal(t, 2500*time.Millisecond, hero.Config.DisplayDuration)
	assert.Equal(t, []string{"fast", "secure"}, hero.Config.TextStrings)

	assert.Equal(t, "widget-2", blocks[1].Name)
	assert.Equal(t, animator.EffectTypewriter, blocks[1].Config.AnimationType)
	assert.Equal(t, LayoutRow, blocks[1].Layout)
}

func TestParse_SingleWidget(t *testing.T) {
	blocks, _, err := Parse([]byte("name: solo\neffect: fade\nitems: [a, b]\n"))
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, "solo", blocks[0].Name)
	assert.Equal(t, animator.EffectFade, blocks[0].Config.AnimationType)
}

func TestParse_Warnings(t *testing.T) {
	blocks, warnings, err := Parse([]byte(`
widgets:
  - name: w
    effect: spin
    animation_ms: 50
    display_ms: 9000
    items: ["  "]
`))
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, []string{Placeholder}, blocks[0].Config.TextStrings)

	fields := make([]string, 0, len(warnings))
	for _, w := range warnings {
		fields = append(fields, w.Field)
	}
	assert.Equal(t, []string{"effect", "animation_ms", "display_ms", "items"}, fields)
	assert.Contains(t, warnings[1].String(), "w.animation_ms: 50 outside editor range 200-3000")
}

func TestParse_Errors(t *testing.T) {
	tests := map[string]string{
		"unknown key": "widgets:\n  - colour: red\n",
		"bad layout":  "widgets:\n  - layout: grid\n    items: [a]\n",
		"empty":       "{}\n",
		"not yaml":    "widgets: [\n",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, _, err := Parse([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "w.yaml")
	require.NoError(t, os.WriteFile(path, []byte("items: [x]\n"), 0o600))

	blocks, _, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, blocks[0].Config.TextStrings)

	_, _, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
