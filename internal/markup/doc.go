// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package markup finds text animator blocks in rendered HTML and renders
// blocks back to HTML.
//
// A block is any element carrying the wrapper class
// "wp-block-telex-block-text-animator". Its configuration is read from the
// data-text-strings (JSON array), data-animation-type,
// data-animation-duration and data-display-duration attributes. Blocks saved
// without data-text-strings fall back to the item markup inside them.
package markup
