// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the command handlers for
// textanim.
//
// # Key Types
//
//   - Command: Enumeration of the CLI commands
//   - Args: Global flags plus the command's own raw arguments
//   - ArgParser: Flag and positional parsing for one command
//   - TraceEvent: One container mutation on the virtual clock
//   - FileWatcher: Debounced reload of widget and HTML files
//
// # Usage
//
//	cmd, args := cli.Parse(os.Args[1:])
//	switch cmd {
//	case cli.CmdPlay:
//	    err = cli.HandlePlay(args)
//	case cli.CmdTrace:
//	    err = cli.HandleTrace(args, os.Stdout)
//	// ... other commands
//	}
//
// # Commands Overview
//
//   - play: Terminal previewer (default; bare text is played)
//   - trace: Deterministic mutation timeline, text or JSON lines
//   - effects: Effect descriptions rendered as markdown
//   - render: Saved block HTML from widget definitions
//   - config: show, init, path, get, set
//
// Errors map to exit codes through GetExitCode; --json switches error
// output to a JSON object.
package cli
