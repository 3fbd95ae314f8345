// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// play.go - The terminal previewer.

package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/textanim/internal/animator"
	"github.com/jeranaias/textanim/internal/config"
	"github.com/jeranaias/textanim/internal/logging"
	"github.com/jeranaias/textanim/internal/measure"
	"github.com/jeranaias/textanim/internal/ui/components"
	"github.com/jeranaias/textanim/internal/ui/styles"
)

// HandlePlay runs the previewer until the user quits.
func HandlePlay(args Args) error {
	p := args.Parser(animationBoolFlags...)

	cfg, warnings, err := loadConfig(args)
	if err != nil {
		return err
	}
	o, more, err := parseOverrides(p, cfg)
	if err != nil {
		return err
	}
	warnings = append(warnings, more...)

	in, err := readInput(p, 0, cfg, o)
	if err != nil {
		return err
	}
	warnings = append(warnings, in.warnings...)

	if p.BoolFlag("watch") && in.path == "" {
		return NewValidationErrorWithExample("--watch", "", "needs --html or --widget", "textanim play --widget widgets.yaml --watch")
	}

	if !stdinIsTerminal() {
		return NewCommandError("play", "start", "stdin is not a terminal (use trace for non-interactive output)", nil)
	}

	// The previewer owns the screen; logs go to a file or nowhere.
	if cfg.Logging.Output == "stdout" || cfg.Logging.Output == "stderr" {
		if args.Verbose {
			cfg.Logging.Output = "textanim.log"
		} else {
			cfg.Logging.Output = "discard"
		}
	}
	logger, err := logging.New(cfg.Logging, Version)
	if err != nil {
		return NewCommandError("play", "start", "cannot open log output", err)
	}
	defer logger.Close()

	theme := styles.NewTheme(styles.ThemeOptions{
		Name:    cfg.Display.Theme,
		NoColor: cfg.Display.NoColor || !ColorsEnabled(),
		Accent:  cfg.Display.Color,
	})

	preview := components.NewPreview(components.PreviewOptions{
		Title:         title(in),
		Blocks:        in.blocks,
		Warnings:      warnings,
		Theme:         theme,
		Measurer:      measure.NewCellMeasurer(),
		Typography:    typography(cfg),
		ReducedMotion: o.reduced,
		Width:         o.width,
		Logger:        logger.Logger,
	})
	defer preview.Stop()

	program := tea.NewProgram(preview)

	if p.BoolFlag("watch") {
		reload := func() {
			next, err := readInput(p, 0, cfg, o)
			if err != nil {
				program.Send(components.ReloadMsg{Err: err})
				return
			}
			program.Send(components.ReloadMsg{Blocks: next.blocks, Warnings: next.warnings})
		}
		watcher, err := WatchFile(in.path, DefaultWatchDebounce, logger.Logger, reload)
		if err != nil {
			return NewCommandError("play", "watch", in.path, err)
		}
		defer watcher.Close()
	}

	logger.Info("preview started", "widgets", len(in.blocks), "source", in.kind, "reduced_motion", o.reduced)
	if _, err := program.Run(); err != nil {
		return NewCommandError("play", "run", "terminal error", err)
	}
	return nil
}

func title(in *input) string {
	switch in.kind {
	case "html", "widget":
		return fmt.Sprintf("textanim - %s", in.path)
	case "template":
		return "textanim - template"
	default:
		return "textanim"
	}
}

// typography is the text styling the measurers see.
func typography(cfg *config.Config) animator.Typography {
	return animator.Typography{
		FontSize:      cfg.Display.FontSize,
		LetterSpacing: cfg.Display.LetterSpacing,
		WhiteSpace:    animator.WhiteSpaceNormal,
		WordBreak:     animator.WordBreakNormal,
	}
}
