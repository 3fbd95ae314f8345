// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for textanim.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - AnimationConfig: default effect and timings for blocks
//   - MotionConfig: the reduced-motion preference
//   - DisplayConfig: terminal preview and measurement settings
//   - LoggingConfig: structured logging settings
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (TEXTANIM_*, NO_MOTION, NO_COLOR)
//   - ~/.textanim/config.toml
//   - ~/.textanim/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
//	}
//	acfg := cfg.AnimatorConfig([]string{"fast", "secure"})
package config
