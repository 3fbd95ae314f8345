// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package widget models a text animator block: the animated item list plus
// the static prefix and suffix around it and the layout direction.
//
// Blocks come from three places: YAML widget files (Load/Parse), HTML pages
// (package markup), and command-line text. All of them pass their items
// through NormalizeItems, so a block never reaches the animator with an
// empty list.
//
// Widget file format:
//
//	widgets:
//	  - name: hero
//	    prefix: "We build "
//	    suffix: " apps."
//	    layout: row
//	    effect: glitch
//	    animation_ms: 800
//	    display_ms: 2500
//	    items: [fast, secure, "really nice"]
//
// A file holding a single widget may omit the widgets list and put the
// fields at the top level.
package widget
