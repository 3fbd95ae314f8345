// textanim - Cycle text through animated transitions in the terminal.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"os"

	"github.com/jeranaias/textanim/internal/cli"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse(os.Args[1:])

	var err error
	switch cmd {
	case cli.CmdPlay:
		err = cli.HandlePlay(args)
	case cli.CmdTrace:
		err = cli.HandleTrace(args, os.Stdout)
	case cli.CmdEffects:
		err = cli.HandleEffects(args, os.Stdout)
	case cli.CmdRender:
		err = cli.HandleRender(args, os.Stdout)
	case cli.CmdConfig:
		err = cli.HandleConfig(args, os.Stdout)
	case cli.CmdVersion:
		cli.PrintVersion(os.Stdout)
	case cli.CmdHelp:
		cli.PrintUsage(os.Stdout)
	default:
		err = cli.UnknownCommandError(args.Name)
	}

	if err != nil {
		cli.HandleErrorAndExit(err, args.JSON)
	}
}
