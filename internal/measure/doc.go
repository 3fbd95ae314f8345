// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package measure provides animator.Measurer implementations.
//
// CellMeasurer measures in terminal cells and is what the terminal preview
// uses. FontMeasurer measures proportional text with real font metrics
// (Latin Modern, embedded) in CSS pixels, for hosts that lay out like a
// browser and for trace output that should match one.
//
// Both honor Typography.MaxWidth as a wrap limit unless WhiteSpace is
// nowrap, and both report at least one line for empty text.
package measure
