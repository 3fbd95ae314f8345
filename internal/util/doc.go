// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across textanim.
//
// # Key Functions
//
// Text (grapheme-aware, so combining marks and emoji stay intact):
//   - Graphemes, GraphemeLen: split and count user-perceived characters
//   - PrefixGraphemes: the first n graphemes of a string
//   - DisplayWidth: terminal cell width of a string
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync
//
// # Usage
//
//	// Erase the last character of a label without splitting an emoji
//	label = util.PrefixGraphemes(label, util.GraphemeLen(label)-1)
//
//	// Write a config file atomically
//	err := util.AtomicWriteFile(path, data, 0600)
package util
