// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/benbjohnson/clock"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/textanim/internal/animator"
	"github.com/jeranaias/textanim/internal/ui/styles"
	"github.com/jeranaias/textanim/internal/widget"
)

// ReloadMsg replaces every widget on screen, as a page reload would. The
// old controllers are disposed of before the new ones start.
type ReloadMsg struct {
	Blocks   []widget.Block
	Warnings []string
	Err      error
}

// PreviewOptions configures the previewer.
type PreviewOptions struct {
	Title         string
	Blocks        []widget.Block
	Warnings      []string
	Theme         *styles.Theme
	Clock         clock.Clock
	Measurer      animator.Measurer
	Typography    animator.Typography
	ReducedMotion bool
	Width         int
	Logger        *slog.Logger
}

// Preview is the bubbletea model for `textanim play`: every block on its
// own line, with key bindings to restart and toggle reduced motion.
type Preview struct {
	opts      PreviewOptions
	animators []*TextAnimator
	warnings  []string
	loadErr   error

	keys     KeyMap
	help     help.Model
	width    int
	reloads  int
	quitting bool
}

// NewPreview creates the previewer and starts one controller per block.
func NewPreview(opts PreviewOptions) *Preview {
	if opts.Theme == nil {
		opts.Theme = styles.NewTheme(styles.ThemeOptions{})
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	h := help.New()
	h.Styles.ShortKey = opts.Theme.Label
	h.Styles.ShortDesc = opts.Theme.Help
	h.Styles.FullKey = opts.Theme.Label
	h.Styles.FullDesc = opts.Theme.Help

	p := &Preview{
		opts:     opts,
		warnings: opts.Warnings,
		keys:     DefaultKeyMap(),
		help:     h,
	}
	p.build(opts.Blocks)
	return p
}

func (p *Preview) build(blocks []widget.Block) {
	p.animators = make([]*TextAnimator, 0, len(blocks))
	for _, b := range blocks {
		a := NewTextAnimator(TextAnimatorOptions{
			Block:         b,
			Theme:         p.opts.Theme,
			Clock:         p.opts.Clock,
			Measurer:      p.opts.Measurer,
			Typography:    p.opts.Typography,
			ReducedMotion: p.opts.ReducedMotion,
			Width:         p.opts.Width,
			Logger:        p.opts.Logger,
		})
		if p.width > 0 {
			a.SetTerminalWidth(p.width)
		}
		if err := a.Err(); err != nil {
			p.opts.Logger.Warn("widget not started", "widget", b.Name, "error", err)
		}
		p.animators = append(p.animators, a)
	}
}

// Animators returns the widgets on screen.
func (p *Preview) Animators() []*TextAnimator { return p.animators }

// ReducedMotion reports the current motion mode.
func (p *Preview) ReducedMotion() bool { return p.opts.ReducedMotion }

// Stop disposes of every controller.
func (p *Preview) Stop() {
	for _, a := range p.animators {
		a.Stop()
	}
}

func (p *Preview) initAll() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(p.animators))
	for _, a := range p.animators {
		cmds = append(cmds, a.Init())
	}
	return tea.Batch(cmds...)
}

// Init implements tea.Model.
func (p *Preview) Init() tea.Cmd {
	return p.initAll()
}

// Update implements tea.Model.
func (p *Preview) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.Quit):
			p.quitting = true
			p.Stop()
			return p, tea.Quit
		case key.Matches(msg, p.keys.Help):
			p.help.ShowAll = !p.help.ShowAll
		case key.Matches(msg, p.keys.Restart):
			cmds := make([]tea.Cmd, 0, len(p.animators))
			for _, a := range p.animators {
				cmds = append(cmds, a.Restart())
			}
			return p, tea.Batch(cmds...)
		case key.Matches(msg, p.keys.Motion):
			p.opts.ReducedMotion = !p.opts.ReducedMotion
			p.opts.Logger.Info("motion preference changed", "reduced_motion", p.opts.ReducedMotion)
			cmds := make([]tea.Cmd, 0, len(p.animators))
			for _, a := range p.animators {
				cmds = append(cmds, a.SetReducedMotion(p.opts.ReducedMotion))
			}
			return p, tea.Batch(cmds...)
		}
		return p, nil

	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.help.Width = msg.Width
		for _, a := range p.animators {
			a.SetTerminalWidth(msg.Width)
		}
		return p, nil

	case ReloadMsg:
		p.reloads++
		if msg.Err != nil {
			p.loadErr = msg.Err
			p.opts.Logger.Warn("reload failed", "error", msg.Err)
			return p, nil
		}
		p.Stop()
		p.loadErr = nil
		p.warnings = msg.Warnings
		p.build(msg.Blocks)
		p.opts.Logger.Info("reloaded", "widgets", len(msg.Blocks))
		return p, p.initAll()

	case TimerFiredMsg, FrameMsg:
		cmds := make([]tea.Cmd, 0, 1)
		for _, a := range p.animators {
			if cmd := a.Update(msg); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return p, tea.Batch(cmds...)
	}
	return p, nil
}

// View implements tea.Model.
func (p *Preview) View() string {
	if p.quitting {
		return ""
	}
	t := p.opts.Theme
	var b strings.Builder

	title := p.opts.Title
	if title == "" {
		title = "textanim"
	}
	mode := "motion"
	if p.opts.ReducedMotion {
		mode = "reduced motion"
	}
	b.WriteString(t.Label.Render(fmt.Sprintf("%s - %d widget(s), %s", title, len(p.animators), mode)))
	b.WriteString("\n\n")

	for _, a := range p.animators {
		b.WriteString(a.View())
		b.WriteString("\n\n")
	}

	for _, w := range p.warnings {
		b.WriteString(t.Warning.Render("warning: " + w))
		b.WriteString("\n")
	}
	if p.loadErr != nil {
		b.WriteString(t.Error.Render("reload failed: " + p.loadErr.Error()))
		b.WriteString("\n")
	}
	b.WriteString(p.help.View(p.keys))
	return b.String()
}
