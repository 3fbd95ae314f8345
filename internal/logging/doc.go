// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging provides structured logging for textanim.
//
// It wraps log/slog so every component logs the same way:
//
//   - JSON or text output
//   - Default fields (service, version) on all entries
//   - Level filtering (debug, info, warn, error)
//   - Output to stdout, stderr, a file path, or nowhere ("discard")
//
// The previewer owns the terminal, so interactive sessions default to
// "discard" unless a log file is configured:
//
//	[logging]
//	level  = "debug"
//	format = "text"
//	output = "/tmp/textanim.log"
//
// # Usage
//
//	logger, err := logging.New(cfg.Logging, "0.2.0")
//	defer logger.Close()
//	logger.Info("widgets discovered", "count", len(blocks))
package logging
