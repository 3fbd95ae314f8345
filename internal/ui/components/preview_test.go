// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"errors"
	"testing"

	"github.com/benbjohnson/clock"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/textanim/internal/animator"
	"github.com/jeranaias/textanim/internal/widget"
)

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestPreview(t *testing.T) (*Preview, *clock.Mock) {
	t.Helper()
	clk := clock.NewMock()
	first := testBlock(animator.EffectTypewriter, "We build", "We ship")
	first.Name = "first"
	second := testBlock(animator.EffectFade, "fast", "slow")
	second.Name = "second"
	second.Prefix = "go "

	p := NewPreview(PreviewOptions{
		Title:    "demo",
		Blocks:   []widget.Block{first, second},
		Warnings: []string{"widget 1: display_ms out of range"},
		Theme:    plainTheme(),
		Clock:    clk,
	})
	t.Cleanup(p.Stop)
	return p, clk
}

func TestPreview_View(t *testing.T) {
	p, _ := newTestPreview(t)
	require.NotNil(t, p.Init())

	v := p.View()
	assert.Contains(t, v, "demo - 2 widget(s), motion")
	assert.Contains(t, v, "We build")
	assert.Contains(t, v, "go fast")
	assert.Contains(t, v, "warning: widget 1: display_ms out of range")
	assert.Contains(t, v, "quit")
}

func TestPreview_Keys(t *testing.T) {
	p, _ := newTestPreview(t)

	_, _ = p.Update(keyMsg("?"))
	assert.True(t, p.help.ShowAll)
	assert.Contains(t, p.View(), "toggle reduced motion")

	_, cmd := p.Update(keyMsg("m"))
	require.NotNil(t, cmd)
	assert.True(t, p.ReducedMotion())
	for _, a := range p.Animators() {
		assert.True(t, a.ReducedMotion())
	}
	assert.Contains(t, p.View(), "reduced motion")

	_, cmd = p.Update(keyMsg("r"))
	assert.NotNil(t, cmd)

	_, cmd = p.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, "", p.View())
	for _, a := range p.Animators() {
		assert.Equal(t, animator.StateStopped, a.Controller().State())
	}
}

func TestPreview_RoutesTimers(t *testing.T) {
	p, clk := newTestPreview(t)
	second := p.Animators()[1]

	clk.Add(3000 * ms)
	_, cmd := p.Update(TimerFiredMsg{Scheduler: second.Scheduler().ID(), Timer: 1})
	assert.NotNil(t, cmd)
	assert.True(t, second.Controller().IsAnimating())
	assert.False(t, p.Animators()[0].Controller().IsAnimating())
}

func TestPreview_Reload(t *testing.T) {
	p, _ := newTestPreview(t)
	old := p.Animators()

	_, cmd := p.Update(ReloadMsg{Err: errors.New("bad yaml")})
	assert.Nil(t, cmd)
	assert.Contains(t, p.View(), "reload failed: bad yaml")
	assert.Equal(t, old, p.Animators(), "a failed reload keeps the running widgets")

	_, cmd = p.Update(ReloadMsg{Blocks: []widget.Block{widget.Template()}})
	assert.NotNil(t, cmd)
	require.Len(t, p.Animators(), 1)
	assert.Contains(t, p.View(), widget.TemplateItems[0])
	assert.NotContains(t, p.View(), "reload failed")
	for _, a := range old {
		assert.Equal(t, animator.StateStopped, a.Controller().State())
		assert.Equal(t, 0, a.Scheduler().Pending())
	}
}

func TestPreview_WindowSize(t *testing.T) {
	p, _ := newTestPreview(t)
	_, _ = p.Update(tea.WindowSizeMsg{Width: 20, Height: 10})
	assert.Equal(t, float64(20), p.Animators()[0].Container().AvailableWidth())
	assert.Equal(t, float64(17), p.Animators()[1].Container().AvailableWidth())
}
