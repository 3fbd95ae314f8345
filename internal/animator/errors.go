// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package animator

import "errors"

// Initialization failures. Hosts treat both as "nothing to animate" and
// leave whatever static text the surface already shows.
var (
	ErrNoTextStrings = errors.New("animator: no text strings")
	ErrNoContainer   = errors.New("animator: no text container")
)
