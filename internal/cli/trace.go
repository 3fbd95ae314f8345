// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// trace.go - Deterministic mutation timelines on a virtual clock.

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/jeranaias/textanim/internal/animator"
	"github.com/jeranaias/textanim/internal/config"
	"github.com/jeranaias/textanim/internal/logging"
	"github.com/jeranaias/textanim/internal/measure"
	"github.com/jeranaias/textanim/internal/ui/components"
	"github.com/jeranaias/textanim/internal/widget"
)

// Trace defaults.
const (
	DefaultTraceCycles = 2
	DefaultTraceSeed   = 1
)

// TraceEvent is one container mutation, timestamped from Initialize.
type TraceEvent struct {
	At      time.Duration `json:"-"`
	MS      int64         `json:"t_ms"`
	Widget  string        `json:"widget"`
	Kind    string        `json:"kind"`
	Name    string        `json:"name,omitempty"`
	Value   string        `json:"value,omitempty"`
	Removed bool          `json:"removed,omitempty"`
}

// String formats the event as one aligned text line.
func (e TraceEvent) String() string {
	var detail string
	switch {
	case e.Kind == "text" || e.Kind == "cycle":
		detail = fmt.Sprintf("%q", e.Value)
	case e.Removed:
		detail = "-" + e.Name
	case e.Kind == "class":
		detail = "+" + e.Name
	default:
		detail = fmt.Sprintf("%s=%q", e.Name, e.Value)
	}
	return fmt.Sprintf("%7dms  %-12s %-6s %s", e.MS, e.Widget, e.Kind, detail)
}

// TraceOptions control a trace run.
type TraceOptions struct {
	// Cycles is the number of completed transitions to record.
	Cycles int

	// Seed feeds the scramble glyph generator.
	Seed uint64

	ReducedMotion  bool
	AvailableWidth float64
	Typography     animator.Typography
	Measurer       animator.Measurer
	Logger         *slog.Logger
}

// Trace runs b on a virtual clock until opts.Cycles transitions have
// completed and returns every mutation the container saw, ending with the
// ones Stop makes.
func Trace(b widget.Block, opts TraceOptions) ([]TraceEvent, error) {
	if opts.Cycles <= 0 {
		opts.Cycles = DefaultTraceCycles
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard().Logger
	}

	clk := clock.NewMock()
	start := clk.Now()
	sched := components.NewTeaScheduler(clk)
	defer sched.Stop()

	var events []TraceEvent
	record := func(e TraceEvent) {
		e.At = clk.Now().Sub(start)
		e.MS = e.At.Milliseconds()
		e.Widget = b.Name
		events = append(events, e)
	}

	c := animator.NewContainer("", opts.Measurer)
	c.SetTypography(opts.Typography)
	if opts.AvailableWidth > 0 {
		c.SetAvailableWidth(opts.AvailableWidth)
	}
	c.OnMutation(func(m animator.Mutation) {
		record(TraceEvent{Kind: m.Kind.String(), Name: m.Name, Value: m.Value, Removed: m.Removed})
	})

	ctrl, err := animator.Initialize(b.Config, c,
		animator.WithScheduler(sched),
		animator.WithRand(rand.New(rand.NewPCG(opts.Seed, opts.Seed))),
		animator.WithReducedMotion(opts.ReducedMotion),
		animator.WithLogger(opts.Logger.With("widget", b.Name)),
		animator.WithCycleHook(func(_ int, text string) {
			record(TraceEvent{Kind: "cycle", Value: text})
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("widget %s: %w", b.Name, err)
	}
	defer ctrl.Stop()

	limit := start.Add(traceBudget(ctrl.Config(), opts.Cycles, opts.ReducedMotion))
	for ctrl.Completed() < opts.Cycles {
		due, ok := sched.NextDue()
		if !ok || due.After(limit) {
			break
		}
		if d := due.Sub(clk.Now()); d > 0 {
			clk.Add(d)
		}
		sched.FireDue()
	}
	ctrl.Stop()

	if done := ctrl.Completed(); done < opts.Cycles {
		return events, fmt.Errorf("widget %s: %w after %d of %d cycles at %dms",
			b.Name, ErrTraceIncomplete, done, opts.Cycles, clk.Now().Sub(start).Milliseconds())
	}
	return events, nil
}

// ErrTraceIncomplete reports a trace that hit its time budget before the
// requested number of cycles completed. The events up to that point are
// still returned.
var ErrTraceIncomplete = errors.New("trace stopped early")

// traceBudget bounds the virtual time needed for cycles transitions.
// Effects with fixed step timings (typewriter) or clamped steps can outlast
// the period; ticks during a transition are dropped, so each cycle waits at
// most one period for a tick and then runs for its planned duration.
func traceBudget(cfg animator.Config, cycles int, reduced bool) time.Duration {
	if reduced {
		return time.Duration(cycles+1) * cfg.SimplePeriod()
	}

	period := cfg.Period()
	effect, _ := animator.DefaultRegistry().Lookup(cfg.AnimationType)
	n := len(cfg.TextStrings)

	budget := period
	for k := 0; k < cycles; k++ {
		seq := effect.Plan(animator.Transition{
			Current:  cfg.TextStrings[k%n],
			Next:     cfg.TextStrings[(k+1)%n],
			Duration: cfg.AnimationDuration,
		})
		budget += period + seq.Duration()
	}
	return budget
}

// =============================================================================
// COMMAND
// =============================================================================

// HandleTrace prints the mutation timeline of every widget in the input.
func HandleTrace(args Args, w io.Writer) error {
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
	printWarnings(append(warnings, in.warnings...))

	cycles, err := positiveFlag(p, "cycles", DefaultTraceCycles, "--cycles 3")
	if err != nil {
		return err
	}
	seed, err := positiveFlag(p, "seed", DefaultTraceSeed, "--seed 42")
	if err != nil {
		return err
	}

	kind := p.FlagOrDefault("measure", cfg.Display.Measurer)
	measurer, err := traceMeasurer(kind)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging, Version)
	if err != nil {
		return NewCommandError("trace", "start", "cannot open log output", err)
	}
	defer logger.Close()

	opts := TraceOptions{
		Cycles:         cycles,
		Seed:           uint64(seed),
		ReducedMotion:  o.reduced,
		AvailableWidth: float64(o.width),
		Typography:     typography(cfg),
		Measurer:       measurer,
		Logger:         logger.Logger,
	}

	var events []TraceEvent
	for _, b := range in.blocks {
		evs, err := Trace(b, opts)
		if errors.Is(err, ErrTraceIncomplete) {
			printWarnings([]string{err.Error()})
		} else if err != nil {
			return NewCommandError("trace", "run", b.Name, err)
		}
		events = append(events, evs...)
	}
	logger.Debug("trace complete", "widgets", len(in.blocks), "events", len(events))

	if args.JSON {
		var sb strings.Builder
		enc := json.NewEncoder(&sb)
		for _, e := range events {
			if err := enc.Encode(e); err != nil {
				return err
			}
		}
		return writeHighlighted(w, sb.String(), "json", colorOutput(w, args))
	}
	for _, e := range events {
		if _, err := fmt.Fprintln(w, e.String()); err != nil {
			return err
		}
	}
	return nil
}

// positiveFlag reads an integer flag that must be above zero.
func positiveFlag(p *ArgParser, name string, def int, example string) (int, error) {
	if !p.HasFlag(name) {
		return def, nil
	}
	n, err := p.FlagInt(name)
	if err != nil || n <= 0 {
		return 0, NewValidationErrorWithExample("--"+name, p.Flag(name), "must be a positive number", example)
	}
	return n, nil
}

func traceMeasurer(kind string) (animator.Measurer, error) {
	switch strings.ToLower(kind) {
	case "", config.MeasurerCells:
		return measure.NewCellMeasurer(), nil
	case config.MeasurerFont:
		m, err := measure.NewFontMeasurer()
		if err != nil {
			return nil, NewCommandError("trace", "measure", "cannot load font metrics", err)
		}
		return m, nil
	default:
		return nil, NewValidationErrorWithExample("--measure", kind, "must be cells or font", "--measure font")
	}
}

// colorOutput reports whether w is a color terminal.
func colorOutput(w io.Writer, args Args) bool {
	return w == io.Writer(os.Stdout) && !args.NoColor && ColorsEnabled()
}
