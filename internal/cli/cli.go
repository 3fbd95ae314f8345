// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Command routing and help text for textanim.

package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdPlay Command = iota
	CmdTrace
	CmdEffects
	CmdRender
	CmdConfig
	CmdVersion
	CmdHelp
	CmdUnknown
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	ConfigPath string // --config FILE
	Verbose    bool   // -v, --verbose: debug logging to stderr
	JSON       bool   // --json
	NoColor    bool   // --no-color

	// Name is the command word as typed (for suggestions).
	Name string

	// Raw holds the command's own arguments.
	Raw []string
}

// Parser parses the command's own arguments. Flags listed in bools never
// take a value.
func (a Args) Parser(bools ...string) *ArgParser {
	return NewArgParser(a.Raw, bools...)
}

const usageText = `textanim - cycle text through typewriter, matrix, fade, flash, burst and glitch transitions

Usage:
  textanim [play] [TEXT...]            Preview animated text in the terminal (default)
  textanim trace [TEXT...]             Print every container mutation on a virtual clock
  textanim effects                     Describe the available effects
  textanim render --widget FILE        Render widget definitions as block HTML
  textanim config [show|init|path|get|set]
                                       Configuration
  textanim version                     Show version information
  textanim help                        Show this help

Input (play, trace):
  TEXT...                 Items to cycle through
  --html FILE             Animate every block found in a saved HTML page
  --widget FILE           Animate the widgets defined in a YAML file
  (no input)              Animate the editor template items

Animation (play, trace):
  --effect NAME           typewriter, matrix, fade, flash, burst, glitch
  --animation MS          Transition duration in milliseconds
  --display MS            Time each item stays on screen in milliseconds
  --reduced-motion        Swap text without transitions
  --width N               Cap the animated text at N cells

Play:
  --watch                 Reload when the --html or --widget file changes

Trace:
  --cycles N              Stop each widget after N completed cycles (default: 2)
  --seed N                Seed for scrambled glyphs (default: 1)
  --measure cells|font    Measure extents in terminal cells or font pixels

Render:
  --output FILE           Write HTML to FILE instead of stdout

Config:
  textanim config show [--json]      Show the effective configuration
  textanim config init [--force]     Write a default config file
  textanim config path               Print the config file path
  textanim config get KEY            Print one value (e.g. animation.effect)
  textanim config set KEY VALUE      Change one value and save

Global Flags:
  --config FILE           Use FILE instead of ~/.textanim/config.toml
  --json                  JSON output (trace, config show, errors)
  --no-color              Disable colors
  -v, --verbose           Debug logging to stderr

Environment:
  TEXTANIM_EFFECT, TEXTANIM_ANIMATION_MS, TEXTANIM_DISPLAY_MS,
  TEXTANIM_REDUCED_MOTION, NO_MOTION, TEXTANIM_MEASURER, NO_COLOR,
  TEXTANIM_LOG_LEVEL, TEXTANIM_LOG_FORMAT, TEXTANIM_LOG_OUTPUT

Examples:
  textanim "We build" "We ship" "We scale" --effect glitch
  textanim play --widget widgets.yaml --watch
  textanim play --html page.html --reduced-motion
  textanim trace "Hello" "World" --effect matrix --cycles 1 --json
  textanim render --widget widgets.yaml --output block.html
  textanim config set animation.effect fade

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage(w io.Writer) {
	fmt.Fprintf(w, usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "textanim version %s\n", Version)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  Build date: %s\n", BuildDate)
	fmt.Fprintf(w, "  Go:         %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Parse parses argv (without the program name) into a command and args.
func Parse(argv []string) (Command, Args) {
	remaining, parsedArgs := parseGlobalFlags(argv)

	if len(remaining) == 0 {
		return CmdPlay, parsedArgs
	}

	cmd := strings.ToLower(remaining[0])
	parsedArgs.Name = cmd
	parsedArgs.Raw = remaining[1:]

	switch cmd {
	case "play", "preview":
		return CmdPlay, parsedArgs
	case "trace":
		return CmdTrace, parsedArgs
	case "effects":
		return CmdEffects, parsedArgs
	case "render", "html":
		return CmdRender, parsedArgs
	case "config":
		return CmdConfig, parsedArgs
	case "version", "--version":
		return CmdVersion, parsedArgs
	case "help", "-h", "--help":
		return CmdHelp, parsedArgs
	}

	// A lone word one edit away from a command is a typo; anything else
	// (including leading flags) is input to play.
	if len(remaining) == 1 && !strings.HasPrefix(cmd, "-") {
		if s := SuggestCommand(cmd); s != "" && levenshteinDistance(cmd, s) == 1 {
			return CmdUnknown, parsedArgs
		}
	}
	parsedArgs.Name = "play"
	parsedArgs.Raw = remaining
	return CmdPlay, parsedArgs
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	var parsedArgs Args

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch {
		case arg == "-v" || arg == "--verbose":
			parsedArgs.Verbose = true
		case arg == "--json":
			parsedArgs.JSON = true
		case arg == "--no-color":
			parsedArgs.NoColor = true
		case arg == "--config":
			if i+1 < len(args) {
				i++
				parsedArgs.ConfigPath = args[i]
			}
		case strings.HasPrefix(arg, "--config="):
			parsedArgs.ConfigPath = strings.TrimPrefix(arg, "--config=")
		default:
			remaining = append(remaining, arg)
		}
	}

	return remaining, parsedArgs
}

// UnknownCommandError reports a mistyped command with a suggestion.
func UnknownCommandError(name string) error {
	err := &ValidationError{Field: "command", Value: name, Reason: "unknown command"}
	if s := SuggestCommand(name); s != "" {
		err.Example = "textanim " + s
	}
	return err
}
