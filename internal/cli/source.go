// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// source.go - Configuration and widget input shared by play, trace and render.

package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/jeranaias/textanim/internal/animator"
	"github.com/jeranaias/textanim/internal/config"
	"github.com/jeranaias/textanim/internal/markup"
	"github.com/jeranaias/textanim/internal/widget"
)

// Boolean flags understood by the animation commands.
var animationBoolFlags = []string{"reduced-motion", "watch", "force"}

// =============================================================================
// CONFIGURATION
// =============================================================================

// loadConfig loads the config file named by --config, or the default one.
// A broken default file is reported as a warning and defaults are used.
func loadConfig(args Args) (*config.Config, []string, error) {
	var warnings []string

	var cfg *config.Config
	if args.ConfigPath != "" {
		c, err := config.LoadFromPath(args.ConfigPath)
		if err != nil {
			return nil, nil, NewCommandError("config", "load", args.ConfigPath, err)
		}
		cfg = c
	} else {
		c, err := config.Load()
		if c == nil {
			return nil, nil, NewCommandError("config", "load", "invalid configuration", err)
		}
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("config: %v (using defaults)", err))
		}
		cfg = c
	}

	if args.NoColor {
		cfg.Display.NoColor = true
	}
	if args.Verbose {
		cfg.Logging.Level = "debug"
		if cfg.Logging.Output == "" || cfg.Logging.Output == "discard" {
			cfg.Logging.Output = "stderr"
		}
	}
	return cfg, warnings, nil
}

// =============================================================================
// ANIMATION OVERRIDES
// =============================================================================

// overrides are the per-run animation flags. They win over both the config
// defaults and the values stored in a widget or HTML file.
type overrides struct {
	effect    animator.EffectType
	animation animator.Config
	reduced   bool
	width     int
}

// parseOverrides reads --effect, --animation, --display, --reduced-motion
// and --width, and folds them into cfg.
func parseOverrides(p *ArgParser, cfg *config.Config) (overrides, []string, error) {
	var (
		o        overrides
		warnings []string
	)

	if name := p.Flag("effect"); name != "" {
		o.effect = animator.ParseEffectType(name)
		if !o.effect.Known() {
			msg := fmt.Sprintf("unknown effect %q, text will swap without animation", name)
			if s := SuggestEffect(name); s != "" {
				msg += fmt.Sprintf(" (did you mean %q?)", s)
			}
			warnings = append(warnings, msg)
		}
		cfg.Animation.Effect = string(o.effect)
	}

	d, ok, err := p.FlagMillis("animation")
	if err != nil {
		return o, nil, err
	}
	if ok {
		o.animation.AnimationDuration = d
		cfg.Animation.AnimationMS = int(d.Milliseconds())
	}

	d, ok, err = p.FlagMillis("display")
	if err != nil {
		return o, nil, err
	}
	if ok {
		o.animation.DisplayDuration = d
		cfg.Animation.DisplayMS = int(d.Milliseconds())
	}

	if p.BoolFlag("reduced-motion") {
		cfg.Motion.ReducedMotion = true
	}
	o.reduced = cfg.Motion.ReducedMotion

	if w := p.Flag("width"); w != "" {
		n, err := ParseIntWithValidation(w, "--width")
		if err != nil {
			return o, nil, NewValidationErrorWithExample("--width", w, "must be a positive number of cells", "--width 40")
		}
		cfg.Display.Width = n
	}
	o.width = cfg.Display.Width

	return o, warnings, nil
}

// apply gives b the override values and fills what is still unset from cfg.
func (o overrides) apply(b widget.Block, cfg *config.Config) widget.Block {
	if o.effect != "" {
		b.Config.AnimationType = o.effect
	}
	if o.animation.AnimationDuration > 0 {
		b.Config.AnimationDuration = o.animation.AnimationDuration
	}
	if o.animation.DisplayDuration > 0 {
		b.Config.DisplayDuration = o.animation.DisplayDuration
	}
	return cfg.FillBlock(b)
}

// =============================================================================
// INPUT
// =============================================================================

// input is the set of widgets one run animates.
type input struct {
	blocks   []widget.Block
	warnings []string

	// path is the file the widgets came from; empty for text and the
	// template. kind is "html", "widget", "text" or "template".
	path string
	kind string
}

// readInput resolves the widgets named by --html, --widget or positional
// text from index first on. The template is used when nothing is given.
func readInput(p *ArgParser, first int, cfg *config.Config, o overrides) (*input, error) {
	htmlPath, widgetPath := p.Flag("html"), p.Flag("widget")
	texts := p.PositionalFrom(first)

	given := 0
	for _, set := range []bool{htmlPath != "", widgetPath != "", len(texts) > 0} {
		if set {
			given++
		}
	}
	if given > 1 {
		return nil, NewValidationErrorWithExample("input", "", "use only one of --html, --widget or TEXT", "textanim play --widget widgets.yaml")
	}

	var (
		in  *input
		err error
	)
	switch {
	case htmlPath != "":
		in, err = readHTML(htmlPath)
	case widgetPath != "":
		in, err = readWidgets(widgetPath)
	case len(texts) > 0:
		b := widget.Block{
			Name:   "text",
			Config: cfg.AnimatorConfig(widget.NormalizeItems(texts)),
		}
		in = &input{blocks: []widget.Block{b}, kind: "text"}
	default:
		in = &input{blocks: []widget.Block{widget.Template()}, kind: "template"}
	}
	if err != nil {
		return nil, err
	}

	for i, b := range in.blocks {
		in.blocks[i] = o.apply(b, cfg)
	}
	return in, nil
}

func readHTML(path string) (*input, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, openError("html file", path, err)
	}
	defer f.Close()

	found, err := markup.Parse(f)
	if err != nil {
		return nil, &InputError{Path: path, Err: err}
	}

	in := &input{path: path, kind: "html"}
	for _, fb := range found {
		if fb.Err != nil {
			// The runtime skips a broken block and keeps the rest.
			in.warnings = append(in.warnings, fb.Err.Error())
			continue
		}
		in.blocks = append(in.blocks, fb.Block)
	}
	if len(in.blocks) == 0 {
		return nil, &InputError{Path: path, Err: errors.New("no animated text blocks found")}
	}
	return in, nil
}

func readWidgets(path string) (*input, error) {
	blocks, warns, err := widget.Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, openError("widget file", path, err)
		}
		return nil, &InputError{Path: path, Err: err}
	}
	in := &input{blocks: blocks, path: path, kind: "widget"}
	for _, w := range warns {
		in.warnings = append(in.warnings, w.String())
	}
	return in, nil
}

func openError(resource, path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return &NotFoundError{Resource: resource, ID: path}
	}
	return &InputError{Path: path, Err: err}
}

// printWarnings writes warnings to stderr, one per line.
func printWarnings(warnings []string) {
	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, RenderConditional(WarningStyle, "warning: ")+strings.TrimSpace(w))
	}
}
